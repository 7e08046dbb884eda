package intent

// #region imports
import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techflow/supportflow/internal/llm"
	"github.com/techflow/supportflow/internal/policy"
)

// #endregion imports

// #region stubs

type stubSearcher struct {
	passages []policy.Passage
	err      error
}

func (s stubSearcher) Query(string, int) ([]policy.Passage, error) {
	return s.passages, s.err
}

// #endregion stubs

// #region classifier-tests

func TestClassifyUsesLLMReply(t *testing.T) {
	gen := &llm.ScriptedGenerator{
		Default: `{"intent":"billing","confidence":"high","reasoning":"charge question","next_agent":"billing"}`,
	}
	c := NewClassifier(gen, stubSearcher{}, nil, zerolog.Nop())

	got, profile, err := c.Classify(context.Background(), "got charged twice this month", "")
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.True(t, got.FromLLM)
	assert.Equal(t, IntentBilling, got.Intent)
	assert.Equal(t, RouteBilling, got.Route)
	assert.Equal(t, "high", got.Confidence)
	assert.Equal(t, "charge question", got.Rationale)
}

func TestClassifyFallsBackOnUnparseableReply(t *testing.T) {
	gen := &llm.ScriptedGenerator{Default: "I think this customer wants to cancel."}
	c := NewClassifier(gen, stubSearcher{}, nil, zerolog.Nop())

	got, _, err := c.Classify(context.Background(), "can't afford care+ anymore, need to cancel", "")
	require.NoError(t, err)
	assert.False(t, got.FromLLM)
	assert.Equal(t, IntentCancellation, got.Intent)
	assert.Equal(t, RouteRetention, got.Route)
	assert.Equal(t, "medium", got.Confidence)
}

func TestClassifyFallsBackOnInvalidIntentValue(t *testing.T) {
	gen := &llm.ScriptedGenerator{
		Default: `{"intent":"refund","confidence":"high","reasoning":"x","next_agent":"billing"}`,
	}
	c := NewClassifier(gen, stubSearcher{}, nil, zerolog.Nop())

	got, _, err := c.Classify(context.Background(), "my phone won't charge anymore", "")
	require.NoError(t, err)
	assert.False(t, got.FromLLM)
	assert.Equal(t, IntentTechnical, got.Intent)
}

func TestClassifyFallsBackOnMissingNextAgent(t *testing.T) {
	gen := &llm.ScriptedGenerator{
		Default: `{"intent":"general","confidence":"low","reasoning":"unclear"}`,
	}
	c := NewClassifier(gen, stubSearcher{}, nil, zerolog.Nop())

	got, _, err := c.Classify(context.Background(), "hi there", "")
	require.NoError(t, err)
	assert.False(t, got.FromLLM)
	assert.Equal(t, IntentGeneral, got.Intent)
}

func TestClassifyPropagatesGenerationFailure(t *testing.T) {
	gen := &llm.ScriptedGenerator{Fail: errors.New("api unreachable")}
	c := NewClassifier(gen, stubSearcher{}, nil, zerolog.Nop())

	_, _, err := c.Classify(context.Background(), "need to cancel", "")
	require.Error(t, err)
	assert.True(t, llm.IsGenerationError(err), "call failure must not be treated as a parse failure")
}

func TestClassifyLearnsEmailFromMessage(t *testing.T) {
	gen := &llm.ScriptedGenerator{
		Default: `{"intent":"cancellation","confidence":"high","reasoning":"x","next_agent":"retention"}`,
	}
	c := NewClassifier(gen, stubSearcher{}, nil, zerolog.Nop())

	got, _, err := c.Classify(context.Background(), "cancel my plan, sarah.chen@email.com", "")
	require.NoError(t, err)
	assert.Equal(t, "sarah.chen@email.com", got.Email)
}

func TestClassifyDegradesOnRetrievalFailure(t *testing.T) {
	gen := &llm.ScriptedGenerator{
		Default: `{"intent":"general","confidence":"low","reasoning":"x","next_agent":"none"}`,
	}
	c := NewClassifier(gen, stubSearcher{err: errors.New("index offline")}, nil, zerolog.Nop())

	_, _, err := c.Classify(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Contains(t, gen.LastCall().User, policy.NoContext)
}

// #endregion classifier-tests
