package llm

// #region imports
import (
	"context"
	"strings"
	"sync"
)

// #endregion imports

// #region script-rule

// ScriptRule maps a substring match against the combined prompt to a reply.
type ScriptRule struct {
	Match string // matched case-insensitively against system+user text
	Reply string
}

// #endregion script-rule

// #region scripted-generator

// ScriptedGenerator implements Generator from a fixed rule list. First match
// wins; unmatched prompts get Default. Used by tests and offline chat mode.
type ScriptedGenerator struct {
	Rules   []ScriptRule
	Default string
	Fail    error // when set, every call fails with a GenerationError

	mu    sync.Mutex
	calls []Call
}

// Call records one Generate invocation for assertions.
type Call struct {
	System string
	User   string
}

// Generate replies per script. Never calls out.
func (s *ScriptedGenerator) Generate(_ context.Context, system, user string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{System: system, User: user})
	s.mu.Unlock()

	if s.Fail != nil {
		return "", &GenerationError{Op: "scripted", Err: s.Fail}
	}

	haystack := strings.ToLower(system + "\n" + user)
	for _, r := range s.Rules {
		if strings.Contains(haystack, strings.ToLower(r.Match)) {
			return r.Reply, nil
		}
	}
	return s.Default, nil
}

// Calls returns a copy of all recorded invocations.
func (s *ScriptedGenerator) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// LastCall returns the most recent invocation, or a zero Call.
func (s *ScriptedGenerator) LastCall() Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return Call{}
	}
	return s.calls[len(s.calls)-1]
}

// #endregion scripted-generator
