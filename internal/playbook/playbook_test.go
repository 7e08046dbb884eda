package playbook

// #region imports
import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// #endregion imports

// #region fixtures

const testPlaybook = `# Retention Playbook

Intro text about principles.

### Financial Hardship Cancellation

Acknowledge the hardship. Offer a pause first.

### Product Issue Retention

Apologize. Offer the replacement.

### Service Value Questioning

Explain the benefits. Offer a trial extension.

## Special Situations

Escalate legal threats to a supervisor.
`

// #endregion fixtures

// #region script-for-tests

func TestScriptForExtractsSections(t *testing.T) {
	p := New(testPlaybook)

	fin := p.ScriptFor("financial_hardship")
	assert.Contains(t, fin, "Offer a pause first")
	assert.NotContains(t, fin, "Offer the replacement")

	prod := p.ScriptFor("product_issues")
	assert.Contains(t, prod, "Offer the replacement")
	assert.NotContains(t, prod, "trial extension")

	sv := p.ScriptFor("service_value")
	assert.Contains(t, sv, "trial extension")
	assert.NotContains(t, sv, "Escalate legal threats")
}

func TestScriptForMissingSectionUsesFallback(t *testing.T) {
	p := New("no markers at all")
	assert.Equal(t, fallbackFinancial, p.ScriptFor("financial_hardship"))
	assert.Equal(t, fallbackProduct, p.ScriptFor("product_issues"))
	assert.Equal(t, fallbackService, p.ScriptFor("service_value"))
}

func TestScriptForUnknownReasonReturnsPrefix(t *testing.T) {
	long := make([]byte, genericPrefixLen*2)
	for i := range long {
		long[i] = 'x'
	}
	p := New(string(long))
	assert.Len(t, p.ScriptFor("something_else"), genericPrefixLen)

	short := New("short text")
	assert.Equal(t, "short text", short.ScriptFor("something_else"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playbook.md")
	require.NoError(t, os.WriteFile(path, []byte(testPlaybook), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, testPlaybook, p.Text())

	_, err = Load(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

// #endregion script-for-tests
