package intent

// #region imports
import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// #endregion imports

// #region reason-tests

func TestClassifyReason(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Reason
	}{
		{"affordability", "can't afford this anymore", ReasonFinancialHardship},
		{"money mention", "money is tight right now", ReasonFinancialHardship},
		{"overheating", "the phone keeps overheating", ReasonProductIssues},
		{"broken device", "screen is broken again", ReasonProductIssues},
		{"never used", "paying but never used it", ReasonServiceValue},
		{"not worth it", "not sure it's worth the price", ReasonServiceValue},
		{"financial outranks product", "can't afford repairs, phone has an issue too", ReasonFinancialHardship},
		{"no keywords defaults financial", "just cancel it please", ReasonFinancialHardship},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyReason(tt.message))
		})
	}
}

// #endregion reason-tests
