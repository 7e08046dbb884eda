package intent

// #region imports
import "strings"

// #endregion imports

// #region phrase-sets

// cancellationPhrases trigger cancellation intent: explicit cancel/remove
// requests, affordability hardship, and custom payment-term requests.
var cancellationPhrases = []string{
	"cancel", "cancellation", "can't afford", "cant afford", "can't pay",
	"cant pay", "too expensive", "get rid of", "get rid", "remove",
	"discount", "custom billing", "billing arrangements", "payment plan",
	"special payment", "flexible payment", "change payment",
}

// technicalPhrases trigger technical_support intent, but only when no
// cancellation phrase is present.
var technicalPhrases = []string{
	"overheat", "charging", "won't charge", "wont charge", "phone won't",
	"phone wont", "not working", "technical", "troubleshoot",
}

// billingPhrases trigger billing intent, but only when no cancellation,
// affordability, or custom-payment phrase is present.
var billingPhrases = []string{
	"got charged", "charged", "what's the extra", "what is the extra",
	"billing", "statement", "bill", "unexpected charge",
}

// billingExclusions suppress the billing match when they co-occur; they
// signal affordability or payment-term intent, which outranks billing.
var billingExclusions = []string{
	"can't afford", "cant afford", "cancel", "custom", "arrangements", "get rid",
}

// #endregion phrase-sets

// #region rule-table

// rule pairs a predicate with the intent it yields. Rules are evaluated
// top-to-bottom; order encodes precedence (cancellation outranks both
// technical_support and billing whenever its phrases co-occur with theirs).
type rule struct {
	name    string
	matches func(lower string) bool
	intent  Intent
}

var fallbackRules = []rule{
	{
		name:   "cancellation",
		intent: IntentCancellation,
		matches: func(lower string) bool {
			return containsAny(lower, cancellationPhrases)
		},
	},
	{
		name:   "technical_support",
		intent: IntentTechnical,
		matches: func(lower string) bool {
			return containsAny(lower, technicalPhrases) && !strings.Contains(lower, "cancel")
		},
	},
	{
		name:   "billing",
		intent: IntentBilling,
		matches: func(lower string) bool {
			return containsAny(lower, billingPhrases) && !containsAny(lower, billingExclusions)
		},
	},
}

// #endregion rule-table

// #region classify-fallback

// ClassifyFallback runs the deterministic keyword cascade. It is used when
// the LLM output cannot be parsed, and it is the behavior contract the LLM
// path is tested against.
func ClassifyFallback(message string) Intent {
	lower := strings.ToLower(message)
	for _, r := range fallbackRules {
		if r.matches(lower) {
			return r.intent
		}
	}
	return IntentGeneral
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// #endregion classify-fallback
