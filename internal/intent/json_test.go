package intent

// #region imports
import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// #endregion imports

// #region json-tests

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"intent":"billing"}`,
			want:  `{"intent":"billing"}`,
			ok:    true,
		},
		{
			name:  "object surrounded by prose",
			input: "Here is the classification:\n{\"intent\":\"general\"}\nHope that helps!",
			want:  `{"intent":"general"}`,
			ok:    true,
		},
		{
			name:  "nested braces",
			input: `{"a":{"b":1},"c":2}`,
			want:  `{"a":{"b":1},"c":2}`,
			ok:    true,
		},
		{
			name:  "braces inside string literals",
			input: `{"reasoning":"uses } and { freely"}`,
			want:  `{"reasoning":"uses } and { freely"}`,
			ok:    true,
		},
		{
			name:  "escaped quotes inside strings",
			input: `{"reasoning":"said \"cancel\" twice"}`,
			want:  `{"reasoning":"said \"cancel\" twice"}`,
			ok:    true,
		},
		{
			name:  "first outermost object wins",
			input: `{"first":1} {"second":2}`,
			want:  `{"first":1}`,
			ok:    true,
		},
		{
			name:  "no object",
			input: "sorry, I cannot classify that",
			ok:    false,
		},
		{
			name:  "unterminated object",
			input: `{"intent":"billing"`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "sarah.chen@email.com",
		ExtractEmail("hi, my account is sarah.chen@email.com and I want to cancel"))
	assert.Equal(t, "", ExtractEmail("no address here"))
}

// #endregion json-tests
