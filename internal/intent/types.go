// Package intent classifies customer messages: an LLM-primary intent
// classifier validated by a deterministic keyword cascade, plus the
// cancellation-reason cascade. The cascade is the authoritative behavior
// contract; the LLM path must agree with it on the canonical scenarios.
package intent

// #region intent

// Intent is the classified category of a customer message.
type Intent string

const (
	IntentCancellation Intent = "cancellation"
	IntentTechnical    Intent = "technical_support"
	IntentBilling      Intent = "billing"
	IntentGeneral      Intent = "general"
)

// valid reports whether s is a known intent value.
func valid(s string) bool {
	switch Intent(s) {
	case IntentCancellation, IntentTechnical, IntentBilling, IntentGeneral:
		return true
	}
	return false
}

// #endregion intent

// #region route

// Route is the handler role an intent dispatches to.
type Route string

const (
	RouteRetention Route = "retention"
	RouteTechnical Route = "technical_support"
	RouteBilling   Route = "billing"
	RouteNone      Route = "none"
)

// RouteFor maps an intent to its routing target.
func RouteFor(i Intent) Route {
	switch i {
	case IntentCancellation:
		return RouteRetention
	case IntentTechnical:
		return RouteTechnical
	case IntentBilling:
		return RouteBilling
	default:
		return RouteNone
	}
}

// #endregion route

// #region reason

// Reason is the classified cancellation reason.
type Reason string

const (
	ReasonFinancialHardship Reason = "financial_hardship"
	ReasonProductIssues     Reason = "product_issues"
	ReasonServiceValue      Reason = "service_value"
)

// #endregion reason

// #region classification

// Classification is the full output of intent classification for one message.
type Classification struct {
	Intent     Intent
	Route      Route
	Confidence string // "high" | "medium" | "low"
	Rationale  string
	Email      string // learned from the message when not supplied
	FromLLM    bool   // false when the keyword cascade produced the result
}

// #endregion classification
