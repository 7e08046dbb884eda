// Package retention plans negotiation responses for customers who want to
// cancel: offer selection under authorization limits, over-limit discount
// disclosure, playbook scripting, and cancellation-acceptance detection.
package retention

// #region imports
import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/techflow/supportflow/internal/catalog"
)

// #endregion imports

// #region gate

// percentPattern matches "30%" and "30 %".
var percentPattern = regexp.MustCompile(`(\d+)\s*%`)

// AuthorizationGate checks a customer message for discount requests that
// exceed the agent ceiling.
type AuthorizationGate struct {
	limits catalog.AgentLimits
}

// NewAuthorizationGate creates a gate for the given agent limits.
func NewAuthorizationGate(limits catalog.AgentLimits) *AuthorizationGate {
	return &AuthorizationGate{limits: limits}
}

// GateDecision is the gate output for one message.
type GateDecision struct {
	RequestedPercent int    // 0 when no percentage was requested
	OverLimit        bool   // requested percentage exceeds the agent ceiling
	Disclosure       string // mandatory disclosure instruction, empty unless OverLimit
	Reason           string // human-readable explanation
}

// #endregion gate

// #region evaluate

// Evaluate scans the message for an explicit percentage request. A request
// above the agent ceiling produces the mandatory disclosure instruction: the
// response must acknowledge the requested percentage first, then state the
// ceiling, then offer escalation, before presenting any alternative. A
// request at or below the ceiling passes.
func (g *AuthorizationGate) Evaluate(message string) GateDecision {
	lower := strings.ToLower(message)
	if !strings.Contains(lower, "discount") && !strings.Contains(lower, "%") {
		return GateDecision{Reason: "no discount request in message"}
	}

	m := percentPattern.FindStringSubmatch(message)
	if m == nil {
		return GateDecision{Reason: "no explicit percentage in message"}
	}
	requested, err := strconv.Atoi(m[1])
	if err != nil {
		return GateDecision{Reason: "unparseable percentage in message"}
	}

	if requested <= g.limits.MaxDiscountPercentage {
		return GateDecision{
			RequestedPercent: requested,
			Reason:           fmt.Sprintf("requested %d%% is within agent limit %d%%", requested, g.limits.MaxDiscountPercentage),
		}
	}

	return GateDecision{
		RequestedPercent: requested,
		OverLimit:        true,
		Disclosure:       buildDisclosure(requested, g.limits.MaxDiscountPercentage),
		Reason:           fmt.Sprintf("requested %d%% exceeds agent limit %d%%, manager approval required", requested, g.limits.MaxDiscountPercentage),
	}
}

// buildDisclosure renders the ordering-critical instruction block embedded in
// the generation prompt when a request exceeds the agent ceiling.
func buildDisclosure(requested, limit int) string {
	return fmt.Sprintf(
		"CRITICAL: CUSTOMER REQUESTED %d%% DISCOUNT - AGENT LIMIT IS %d%% - REQUIRES MANAGER APPROVAL\n\n"+
			"You MUST acknowledge this request FIRST before offering alternatives. "+
			"Say: \"I understand you are looking for a %d%% discount. "+
			"I can offer up to %d%% discount as an agent. "+
			"For higher discounts like %d%%, I will need to escalate to a manager "+
			"who can review your account. However, I can offer you these options right now...\"\n",
		requested, limit, requested, limit, requested)
}

// #endregion evaluate
