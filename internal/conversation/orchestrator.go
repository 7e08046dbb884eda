package conversation

// #region imports
import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/techflow/supportflow/internal/audit"
	"github.com/techflow/supportflow/internal/intent"
	"github.com/techflow/supportflow/internal/llm"
	"github.com/techflow/supportflow/internal/policy"
	"github.com/techflow/supportflow/internal/retention"
)

// #endregion imports

// #region phrase-sets

// insistencePhrases signal the customer rejects all offers and wants the
// cancellation finalized.
var insistencePhrases = []string{
	"still want to cancel",
	"just cancel",
	"cancel anyway",
	"no i want to cancel",
	"proceed with cancellation",
}

var billingAffirmatives = []string{"yes", "sure", "ok", "transfer", "connect"}

var technicalAffirmatives = []string{"yes", "sure", "ok", "schedule", "callback"}

// #endregion phrase-sets

// #region orchestrator

// Orchestrator is the top-level turn coordinator.
type Orchestrator struct {
	classifier *intent.Classifier
	planner    *retention.Planner
	gen        llm.Generator
	index      policy.Searcher
	audit      *audit.Log
	log        zerolog.Logger
}

// NewOrchestrator wires a fully assembled orchestrator.
func NewOrchestrator(
	classifier *intent.Classifier,
	planner *retention.Planner,
	gen llm.Generator,
	index policy.Searcher,
	auditLog *audit.Log,
	log zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		planner:    planner,
		gen:        gen,
		index:      index,
		audit:      auditLog,
		log:        log,
	}
}

// #endregion orchestrator

// #region turn

// Turn processes one customer message against the previous turn's state
// snapshot (nil for a new session) and returns the updated snapshot.
//
// Generation-call and catalog failures propagate as errors distinguishable
// from a terminal state; the orchestrator never routes on a guess.
func (o *Orchestrator) Turn(ctx context.Context, prev *State, message, email string) (*State, error) {
	st := prev.clone()

	// Reset rule: a standalone answered question must not leak routing
	// context into the next unrelated message.
	if st != nil && st.Completed && st.Intent == intent.IntentGeneral && st.ActiveRole == RoleNone {
		o.log.Debug().Str("conversation", st.ID).Msg("previous turn was a standalone answer, starting fresh")
		st = nil
	}

	if st == nil {
		st = &State{ID: uuid.New().String()}
	}
	st.Message = message
	st.Completed = false
	if email != "" && st.Email == "" {
		st.Email = email
	}
	st.History = append(st.History, "Customer: "+message)

	switch st.ActiveRole {
	case RoleRetention:
		return o.retentionTurn(ctx, st, false)
	case RoleBilling:
		return o.billingFollowup(st)
	case RoleTechnical:
		return o.technicalFollowup(st)
	default:
		return o.freshTurn(ctx, st)
	}
}

// #endregion turn

// #region fresh-turn

// freshTurn classifies the message and branches to the matching role.
func (o *Orchestrator) freshTurn(ctx context.Context, st *State) (*State, error) {
	cls, profile, err := o.classifier.Classify(ctx, st.Message, st.Email)
	if err != nil {
		return nil, err
	}
	st.Intent = cls.Intent
	if st.Email == "" {
		st.Email = cls.Email
	}
	if st.Profile == nil {
		st.Profile = profile
	}
	o.log.Info().
		Str("conversation", st.ID).
		Str("intent", string(cls.Intent)).
		Str("route", string(cls.Route)).
		Bool("from_llm", cls.FromLLM).
		Msg("intent classified")

	if cls.Route == intent.RouteNone {
		return o.answerGeneral(ctx, st)
	}

	o.appendResponse(st, Response{
		Role:      RoleGreeter,
		Text:      fmt.Sprintf("Intent classified: %s. Routing to %s.", cls.Intent, cls.Route),
		Rationale: cls.Rationale,
	})

	switch cls.Route {
	case intent.RouteRetention:
		st.ActiveRole = RoleRetention
		return o.retentionTurn(ctx, st, true)
	case intent.RouteTechnical:
		return o.technicalFirstTurn(st)
	case intent.RouteBilling:
		return o.billingFirstTurn(st)
	default:
		return o.answerGeneral(ctx, st)
	}
}

// answerGeneral answers a standalone question from policy context alone and
// ends the turn with no routing context.
func (o *Orchestrator) answerGeneral(ctx context.Context, st *State) (*State, error) {
	contextText := o.queryOrDegrade(st.Message, 5)

	system := `You are a helpful customer service representative for TechFlow Electronics.
Use the provided policy documents to answer customer questions accurately.
If the information is in the documents, provide a clear, helpful answer.
If the information is not available, politely say you'll need to connect them with a specialist.`
	user := fmt.Sprintf(`Customer Question: %s

Relevant Information from Policy Documents:
%s

Answer the customer's question using the information above. Be helpful and concise.`, st.Message, contextText)

	answer, err := o.gen.Generate(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("answer general question: %w", err)
	}

	o.appendResponse(st, Response{Role: RoleGreeter, Text: answer, Rationale: "answered from policy documents"})
	st.ActiveRole = RoleNone
	st.Completed = true
	return st, nil
}

// #endregion fresh-turn

// #region retention

// retentionTurn runs the planner and commits the cancellation when either
// the incoming message insists or the planner's own output concedes.
func (o *Orchestrator) retentionTurn(ctx context.Context, st *State, firstTurn bool) (*State, error) {
	insists := !firstTurn && containsAnyPhrase(st.Message, insistencePhrases)

	plan, err := o.planner.Plan(ctx, st.Message, st.Profile, st.History)
	if err != nil {
		return nil, err
	}

	o.appendResponse(st, Response{Role: RoleRetention, Text: plan.Response, Offers: plan.Offers})
	st.CancellationReason = plan.Reason
	st.ShouldProcessCancellation = plan.ShouldProcessCancellation
	st.ActiveRole = RoleRetention
	st.Completed = true

	if insists || plan.ShouldProcessCancellation {
		return o.processCancellation(ctx, st)
	}
	return st, nil
}

// processCancellation commits the cancellation: audit append, confirmation
// message, terminal state. An audit write failure is reported but the
// already-composed customer-facing flow is not rolled back.
func (o *Orchestrator) processCancellation(ctx context.Context, st *State) (*State, error) {
	customerID := "UNKNOWN"
	if st.Profile != nil {
		customerID = st.Profile.ID
	}
	action := "cancel_" + string(st.CancellationReason)

	if _, err := o.audit.Append(customerID, action); err != nil {
		o.log.Error().Err(err).Str("customer", customerID).Msg("audit write failed, compliance record missing")
	}

	confirmation := o.confirmationMessage(ctx, st, customerID)
	o.appendResponse(st, Response{Role: RoleProcessor, Text: confirmation})
	st.FinalAction = ActionCancellationProcessed
	st.ActiveRole = RoleNone
	st.Completed = true
	o.log.Info().Str("conversation", st.ID).Str("customer", customerID).Msg("cancellation processed")
	return st, nil
}

// confirmationMessage generates the cancellation confirmation; the audit row
// is already durable, so a generation failure here falls back to a fixed
// template instead of failing the turn.
func (o *Orchestrator) confirmationMessage(ctx context.Context, st *State, customerID string) string {
	system := `You are a customer service processor for TechFlow Electronics.
Your job is to: process cancellations professionally, confirm next steps, update customer records, provide billing information.
Be clear, professional, and helpful. Always confirm what happens next.`
	user := fmt.Sprintf(`Customer %s is canceling their Care+ service. Reason: %s
Generate a professional, empathetic confirmation message (2-3 sentences) that: 1) Confirms the cancellation 2) Explains what happens next (billing, service end date) 3) Thanks them for being a customer 4) Leaves door open for return. Be warm but professional.`,
		st.Email, st.CancellationReason)

	text, err := o.gen.Generate(ctx, system, user)
	if err != nil {
		o.log.Warn().Err(err).Msg("confirmation generation failed, using fallback template")
		return fmt.Sprintf("Your Care+ cancellation has been processed for account %s. "+
			"Your coverage continues until the end of the current billing period, and no further charges will be made. "+
			"Thank you for being a TechFlow customer; we'd be glad to have you back any time.", customerID)
	}
	return text
}

// #endregion retention

// #region technical

func (o *Orchestrator) technicalFirstTurn(st *State) (*State, error) {
	contextText := excerpt(o.queryOrDegrade(st.Message, 3), 500)

	text := fmt.Sprintf(`I understand you're experiencing technical issues. Let me connect you with our technical support team.

Based on your issue, here's some helpful information:
%s

Our technical specialist will be able to help you resolve this. Would you like me to schedule a callback, or would you prefer to speak with someone right now?`, contextText)

	o.appendResponse(st, Response{Role: RoleTechnical, Text: text})
	st.ActiveRole = RoleTechnical
	st.FinalAction = ActionRoutedTechnical
	st.Completed = true
	return st, nil
}

// technicalFollowup confirms a callback on an affirmative reply, otherwise
// elaborates with fresh troubleshooting context and keeps awaiting.
func (o *Orchestrator) technicalFollowup(st *State) (*State, error) {
	if containsAnyWord(st.Message, technicalAffirmatives) {
		o.appendResponse(st, Response{
			Role: RoleTechnical,
			Text: "Great! I'm scheduling a callback with our technical specialist for you. They'll call you within the next hour to help resolve your issue. Is there anything else I can help you with?",
		})
		st.ActiveRole = RoleNone
	} else {
		contextText := excerpt(o.queryOrDegrade(st.Message, 2), 300)
		o.appendResponse(st, Response{
			Role: RoleTechnical,
			Text: fmt.Sprintf("Let me provide some additional troubleshooting steps:\n\n%s\n\nWould you like me to schedule a callback with our technical specialist?", contextText),
		})
	}
	st.FinalAction = ActionTechnicalFollowup
	st.Completed = true
	return st, nil
}

// #endregion technical

// #region billing

func (o *Orchestrator) billingFirstTurn(st *State) (*State, error) {
	o.appendResponse(st, Response{
		Role: RoleBilling,
		Text: `I understand you have a billing question. Let me connect you with our billing department who can help clarify your charges.

For billing inquiries, our team can:
- Explain charges on your account
- Review payment history
- Adjust billing if there are errors
- Set up payment plans if needed

Would you like me to transfer you to billing now?`,
	})
	st.ActiveRole = RoleBilling
	st.FinalAction = ActionRoutedBilling
	st.Completed = true
	return st, nil
}

// billingFollowup confirms a transfer on an affirmative reply, otherwise
// elaborates with billing policy context and keeps awaiting.
func (o *Orchestrator) billingFollowup(st *State) (*State, error) {
	if containsAnyWord(st.Message, billingAffirmatives) {
		o.appendResponse(st, Response{
			Role: RoleBilling,
			Text: "Perfect! I'm connecting you with our billing department now. They'll be able to review your account and explain the charge in question. You should hear from them shortly. Is there anything else I can help you with?",
		})
		st.ActiveRole = RoleNone
	} else {
		contextText := excerpt(o.queryOrDegrade("billing charges, pricing, fees, account charges", 2), 300)
		o.appendResponse(st, Response{
			Role: RoleBilling,
			Text: fmt.Sprintf("I understand you'd like more information. Here's what I can tell you:\n\n%s\n\nOur billing team can provide the exact breakdown. Would you like me to connect you now?", contextText),
		})
	}
	st.FinalAction = ActionBillingFollowup
	st.Completed = true
	return st, nil
}

// #endregion billing

// #region helpers

func (o *Orchestrator) appendResponse(st *State, r Response) {
	st.Responses = append(st.Responses, r)
	st.History = append(st.History, "Agent: "+r.Text)
}

func (o *Orchestrator) queryOrDegrade(query string, k int) string {
	passages, err := o.index.Query(query, k)
	if err != nil {
		o.log.Warn().Err(err).Msg("policy retrieval failed, degrading to no context")
		return policy.NoContext
	}
	return policy.FormatContext(passages)
}

func containsAnyPhrase(message string, phrases []string) bool {
	lower := strings.ToLower(message)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// containsAnyWord matches whole words so "ok, transfer me" still counts but
// "yesterday" does not match "yes".
func containsAnyWord(message string, words []string) bool {
	fields := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return r != '\'' && (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

// excerpt truncates to at most n bytes without splitting a rune.
func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// #endregion helpers
