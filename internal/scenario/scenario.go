// Package scenario replays recorded classification fixtures through the
// deterministic keyword cascade, so routing regressions surface without a
// generation backend.
package scenario

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/techflow/supportflow/internal/intent"
)

// #endregion imports

// #region fixture-types

// Fixture is the top-level JSON structure for a scenario fixture.
type Fixture struct {
	Description string `json:"description"`
	Cases       []Case `json:"cases"`
}

// Case is one recorded customer message with the expected routing outcome.
type Case struct {
	Name       string `json:"name"`
	Message    string `json:"message"`
	Email      string `json:"email"`
	WantIntent string `json:"want_intent"`
	WantRoute  string `json:"want_route"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// #endregion fixture-loader

// #region replay

// Result captures the outcome of replaying one case.
type Result struct {
	Name      string
	GotIntent intent.Intent
	GotRoute  intent.Route
	Passed    bool
	Reason    string
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalCases int
	Passed     int
	Failed     int
}

// Replay runs every case through the fallback classifier and compares the
// routing decision against the recorded expectation. Operates entirely
// in-memory with no generation calls.
func Replay(f *Fixture) []Result {
	results := make([]Result, 0, len(f.Cases))
	for _, c := range f.Cases {
		got := intent.ClassifyFallback(c.Message)
		route := intent.RouteFor(got)

		r := Result{Name: c.Name, GotIntent: got, GotRoute: route, Passed: true}
		if c.WantIntent != "" && string(got) != c.WantIntent {
			r.Passed = false
			r.Reason = fmt.Sprintf("intent %s, want %s", got, c.WantIntent)
		} else if c.WantRoute != "" && string(route) != c.WantRoute {
			r.Passed = false
			r.Reason = fmt.Sprintf("route %s, want %s", route, c.WantRoute)
		}
		results = append(results, r)
	}
	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result) Summary {
	s := Summary{TotalCases: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// #endregion replay
