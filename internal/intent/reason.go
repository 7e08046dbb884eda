package intent

// #region imports
import "strings"

// #endregion imports

// #region reason-keywords

var financialKeywords = []string{
	"afford", "money", "cost", "expensive", "can't pay", "cant pay", "financial",
}

var productKeywords = []string{
	"overheat", "broken", "defect", "not working", "issue", "problem", "return",
}

var serviceValueKeywords = []string{
	"never used", "don't need", "dont need", "value", "worth", "useless", "waste",
}

// #endregion reason-keywords

// #region classify-reason

// ClassifyReason maps a cancellation message to its reason. First match wins;
// financial_hardship is the explicit default, not an error.
func ClassifyReason(message string) Reason {
	lower := strings.ToLower(message)
	if containsAny(lower, financialKeywords) {
		return ReasonFinancialHardship
	}
	if containsAny(lower, productKeywords) {
		return ReasonProductIssues
	}
	if containsAny(lower, serviceValueKeywords) {
		return ReasonServiceValue
	}
	return ReasonFinancialHardship
}

// #endregion classify-reason
