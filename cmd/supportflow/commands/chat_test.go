package commands

// #region imports
import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// #endregion imports

// #region prompt-tests

func TestPromptEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain address", "sarah.chen@email.com\n", "sarah.chen@email.com"},
		{"address inside a sentence", "it's sarah.chen@email.com thanks\n", "sarah.chen@email.com"},
		{"skipped with enter", "\n", ""},
		{"no address on the line", "sarah chen\n", ""},
		{"closed input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := promptEmail(bufio.NewScanner(strings.NewReader(tt.input)), &out)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "press Enter to skip")
		})
	}
}

// #endregion prompt-tests
