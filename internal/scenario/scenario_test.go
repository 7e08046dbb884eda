package scenario

// #region imports
import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// #endregion imports

// #region fixture-tests

const testFixture = `{
  "description": "routing smoke cases",
  "cases": [
    {"name": "hardship", "message": "can't afford care+ anymore, need to cancel", "want_intent": "cancellation", "want_route": "retention"},
    {"name": "technical", "message": "my phone won't charge anymore", "want_intent": "technical_support", "want_route": "technical_support"},
    {"name": "billing", "message": "got charged $15.99, what's the extra?", "want_intent": "billing", "want_route": "billing"},
    {"name": "wrong_expectation", "message": "hi there", "want_intent": "billing"}
  ]
}`

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(testFixture), 0o644))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, "routing smoke cases", f.Description)
	assert.Len(t, f.Cases, 4)
}

func TestLoadFixtureErrors(t *testing.T) {
	_, err := LoadFixture(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadFixture(path)
	assert.ErrorContains(t, err, "parse fixture")
}

// #endregion fixture-tests

// #region replay-tests

func TestReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(testFixture), 0o644))
	f, err := LoadFixture(path)
	require.NoError(t, err)

	results := Replay(f)
	require.Len(t, results, 4)

	assert.True(t, results[0].Passed)
	assert.True(t, results[1].Passed)
	assert.True(t, results[2].Passed)
	assert.False(t, results[3].Passed)
	assert.Contains(t, results[3].Reason, "want billing")

	s := Summarize(results)
	assert.Equal(t, 4, s.TotalCases)
	assert.Equal(t, 3, s.Passed)
	assert.Equal(t, 1, s.Failed)
}

func TestReplayEmptyExpectationsAlwaysPass(t *testing.T) {
	f := &Fixture{Cases: []Case{{Name: "anything", Message: "hello"}}}
	results := Replay(f)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
}

// #endregion replay-tests
