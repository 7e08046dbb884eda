package llm

// #region imports
import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// #endregion imports

// #region scripted-tests

func TestScriptedGeneratorFirstMatchWins(t *testing.T) {
	g := &ScriptedGenerator{
		Rules: []ScriptRule{
			{Match: "cancel", Reply: "first"},
			{Match: "cancel everything", Reply: "second"},
		},
		Default: "fallback",
	}

	out, err := g.Generate(context.Background(), "", "I want to CANCEL everything")
	require.NoError(t, err)
	assert.Equal(t, "first", out)

	out, err = g.Generate(context.Background(), "", "unrelated")
	require.NoError(t, err)
	assert.Equal(t, "fallback", out)
}

func TestScriptedGeneratorMatchesSystemText(t *testing.T) {
	g := &ScriptedGenerator{
		Rules: []ScriptRule{{Match: "retention specialist", Reply: "offer"}},
	}
	out, err := g.Generate(context.Background(), "You are a retention specialist.", "anything")
	require.NoError(t, err)
	assert.Equal(t, "offer", out)
}

func TestScriptedGeneratorFailAndRecording(t *testing.T) {
	g := &ScriptedGenerator{Fail: errors.New("down")}

	_, err := g.Generate(context.Background(), "sys", "usr")
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))

	calls := g.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "sys", calls[0].System)
	assert.Equal(t, "usr", g.LastCall().User)
}

// #endregion scripted-tests
