package retention

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/techflow/supportflow/internal/catalog"
	"github.com/techflow/supportflow/internal/directory"
	"github.com/techflow/supportflow/internal/intent"
	"github.com/techflow/supportflow/internal/llm"
	"github.com/techflow/supportflow/internal/playbook"
	"github.com/techflow/supportflow/internal/policy"
)

// #endregion imports

// #region planner

// Planner composes retention negotiation responses.
type Planner struct {
	gen      llm.Generator
	index    policy.Searcher
	catalogs *catalog.Holder
	playbook *playbook.Playbook
	log      zerolog.Logger
}

// NewPlanner wires the planner against an atomically swappable catalog.
func NewPlanner(gen llm.Generator, index policy.Searcher, catalogs *catalog.Holder, pb *playbook.Playbook, log zerolog.Logger) *Planner {
	return &Planner{gen: gen, index: index, catalogs: catalogs, playbook: pb, log: log}
}

// Plan is the planner output for one retention turn.
type Plan struct {
	Response                  string
	Offers                    []catalog.Offer // agent-authorized offers only
	ShouldProcessCancellation bool
	Reason                    intent.Reason
	Tier                      string
}

// #endregion planner

// #region plan

// Plan composes the negotiation response for a cancellation message.
//
// A catalog lookup failure (unknown reason/tier) and a generation-call
// failure are both fatal to the turn and propagate; retrieval failures
// degrade to the no-context placeholder.
func (p *Planner) Plan(ctx context.Context, message string, profile *directory.Customer, history []string) (Plan, error) {
	reason := intent.ClassifyReason(message)
	tier := "regular"
	if profile != nil && profile.Tier != "" {
		tier = profile.Tier
	}

	cat := p.catalogs.Get()
	offers, err := cat.OffersFor(tier, string(reason))
	if err != nil {
		return Plan{}, fmt.Errorf("retention plan: %w", err)
	}
	agentOffers, managerOffers := catalog.SplitByAuthorization(offers)
	limits := cat.Limits().Agent

	gate := NewAuthorizationGate(limits)
	decision := gate.Evaluate(message)
	if decision.OverLimit {
		p.log.Info().
			Int("requested", decision.RequestedPercent).
			Int("limit", limits.MaxDiscountPercentage).
			Msg("over-limit discount request, disclosure required")
	}

	script := p.playbook.ScriptFor(string(reason))
	requestContext, reasonContext := p.retrieveContexts(ctx, message, reason)

	system := p.buildSystemPrompt(profile, tier, reason, script, limits, decision, agentOffers, requestContext, reasonContext)
	user := buildUserPrompt(message, history)

	raw, err := p.gen.Generate(ctx, system, user)
	if err != nil {
		return Plan{}, fmt.Errorf("retention plan: %w", err)
	}

	response := StripReasoning(raw)
	plan := Plan{
		Response:                  response,
		Offers:                    agentOffers,
		ShouldProcessCancellation: AcceptsCancellation(response),
		Reason:                    reason,
		Tier:                      tier,
	}
	p.log.Debug().
		Str("reason", string(reason)).
		Str("tier", tier).
		Int("agent_offers", len(agentOffers)).
		Int("manager_offers", len(managerOffers)).
		Bool("process_cancellation", plan.ShouldProcessCancellation).
		Msg("retention plan composed")
	return plan, nil
}

// #endregion plan

// #region retrieval

// reasonQueries are the per-reason retrieval topics.
var reasonQueries = map[intent.Reason]string{
	intent.ReasonFinancialHardship: "payment pause, discount offers, downgrade options, refund procedures, financial hardship solutions",
	intent.ReasonProductIssues:     "device replacement, return policy, warranty coverage, overheating issues, product problems",
	intent.ReasonServiceValue:      "Care+ benefits, insurance value, coverage details, what's included, service value",
}

// retrieveContexts fetches the two policy bundles concurrently: one targeted
// at the literal customer request plus authorization terms, one at the
// reason-specific topic. Either failing degrades independently.
func (p *Planner) retrieveContexts(ctx context.Context, message string, reason intent.Reason) (string, string) {
	requestQuery := message + " authorization requirements manager approval agent limits"
	reasonQuery, ok := reasonQueries[reason]
	if !ok {
		reasonQuery = message + " cancellation solutions offers"
	}

	var requestContext, reasonContext string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		requestContext = p.queryOrDegrade(requestQuery)
		return nil
	})
	g.Go(func() error {
		reasonContext = p.queryOrDegrade(reasonQuery)
		return nil
	})
	// Both goroutines degrade internally and return nil.
	_ = g.Wait()
	return requestContext, reasonContext
}

func (p *Planner) queryOrDegrade(query string) string {
	passages, err := p.index.Query(query, 5)
	if err != nil {
		p.log.Warn().Err(err).Msg("policy retrieval failed, degrading to no context")
		return policy.NoContext
	}
	return policy.FormatContext(passages)
}

// #endregion retrieval

// #region prompts

func (p *Planner) buildSystemPrompt(
	profile *directory.Customer,
	tier string,
	reason intent.Reason,
	script string,
	limits catalog.AgentLimits,
	decision GateDecision,
	agentOffers []catalog.Offer,
	requestContext, reasonContext string,
) string {
	name := "Unknown"
	plan := "Unknown"
	var charge float64
	var tenure int
	if profile != nil {
		name = profile.Name
		plan = profile.PlanType
		charge = profile.MonthlyCharge
		tenure = profile.TenureMonths
	}

	var sb strings.Builder
	sb.WriteString("You are a customer retention specialist for TechFlow Electronics.\n")
	sb.WriteString("Your goal is to genuinely help customers solve their problems, not just prevent cancellations.\n\n")

	fmt.Fprintf(&sb, "CUSTOMER PROFILE:\n- Name: %s\n- Tier: %s\n- Plan: %s\n- Monthly Charge: $%.2f\n- Tenure: %d months\n\n",
		name, tier, plan, charge, tenure)
	fmt.Fprintf(&sb, "CANCELLATION REASON: %s\n\n",
		strings.ToUpper(strings.ReplaceAll(string(reason), "_", " ")))
	fmt.Fprintf(&sb, "SCENARIO-SPECIFIC PLAYBOOK SCRIPT:\n%s\n\n", script)
	fmt.Fprintf(&sb, "AGENT AUTHORIZATION LIMITS:\n- Maximum discount you can offer: %d%%\n- Can pause subscriptions: %v\n- Can downgrade plans: %v\n\n",
		limits.MaxDiscountPercentage, limits.CanPause, limits.CanDowngrade)

	if decision.OverLimit {
		sb.WriteString(decision.Disclosure)
		sb.WriteString("\n")
	}

	sb.WriteString("AGENT-APPROVED OFFERS (You can offer these without manager approval):\n")
	sb.WriteString(catalog.FormatOffers(agentOffers))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "COMPANY POLICY CONTEXT:\nCUSTOMER REQUEST ANALYSIS:\n%s\n\nGENERAL POLICY CONTEXT:\n%s\n\n",
		requestContext, reasonContext)

	fmt.Fprintf(&sb, `CRITICAL RULES:
1. CHECK THE "CUSTOMER REQUEST ANALYSIS" SECTION ABOVE - it contains authorization requirements from the policy documents
2. If the customer request requires manager approval per the policy documents, acknowledge that FIRST, then offer the agent-approved options
3. You are an AGENT - you can ONLY offer the agent-approved offers listed above
4. Maximum discount you can approve: %d%% - anything higher requires a manager
5. If the customer asks for a discount above %d%%, acknowledge it FIRST, then explain your limit, then offer to escalate, then present alternatives
6. Follow the playbook script for this scenario
7. Present ONE offer at a time using the playbook wording
8. Never fabricate offers outside the agent-approved list
9. Only accept cancellation if the customer insists after all agent-approved options
10. OUTPUT ONLY THE CUSTOMER-FACING MESSAGE - no explanations, no reasoning, no meta-commentary`,
		limits.MaxDiscountPercentage, limits.MaxDiscountPercentage)

	return sb.String()
}

func buildUserPrompt(message string, history []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Customer Message: %s\n\n", message)
	if len(history) > 0 {
		recent := history
		if len(recent) > 6 {
			recent = recent[len(recent)-6:]
		}
		sb.WriteString("Recent Conversation:\n")
		for _, line := range recent {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(`INSTRUCTIONS:
1. Check the "CUSTOMER REQUEST ANALYSIS" section in the policy context first
2. If the customer's request requires manager approval, acknowledge this FIRST
3. Then offer agent-approved alternatives from the list above
4. Present ONE specific offer at a time with exact details (costs, duration, savings)

IMPORTANT: Output ONLY the message to the customer. No explanations, no reasoning, no meta-commentary.`)
	return sb.String()
}

// #endregion prompts
