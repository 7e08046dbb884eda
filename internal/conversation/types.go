// Package conversation owns the per-session state machine: it routes each
// incoming message to the correct role handler based on the current state and
// decides terminal vs continuing status. The orchestrator exclusively owns
// the state for the duration of a turn and returns an updated snapshot; the
// caller holds it until the next turn.
package conversation

// #region imports
import (
	"github.com/techflow/supportflow/internal/catalog"
	"github.com/techflow/supportflow/internal/directory"
	"github.com/techflow/supportflow/internal/intent"
)

// #endregion imports

// #region role

// Role is a behavioral handler, not a thread or process.
type Role string

const (
	RoleNone      Role = "none"
	RoleGreeter   Role = "greeter"
	RoleRetention Role = "retention"
	RoleTechnical Role = "technical_support"
	RoleBilling   Role = "billing"
	RoleProcessor Role = "processor"
)

// #endregion role

// #region final-actions

// Final actions recorded on the state when a branch completes.
const (
	ActionCancellationProcessed = "cancellation_processed"
	ActionRoutedTechnical       = "routed_to_technical_support"
	ActionRoutedBilling         = "routed_to_billing"
	ActionBillingFollowup       = "billing_followup"
	ActionTechnicalFollowup     = "technical_support_followup"
)

// #endregion final-actions

// #region response

// Response is one emitted agent response with role-specific metadata.
type Response struct {
	Role      Role
	Text      string
	Offers    []catalog.Offer // retention only
	Rationale string          // greeter only
}

// #endregion response

// #region state

// State is the per-conversation session state, mutated turn by turn and
// owned by the orchestrator for the duration of each turn.
type State struct {
	ID      string
	Message string // current customer message
	Email   string // learned once, persists for the session

	Profile *directory.Customer // fetched once and cached
	Intent  intent.Intent

	ActiveRole Role
	History    []string   // interleaved customer and agent lines, append-only
	Responses  []Response // all emitted agent responses

	CancellationReason intent.Reason // set by retention turns

	FinalAction               string
	Completed                 bool // no further output expected this turn
	ShouldProcessCancellation bool // last turn's cancellation-intent flag
}

// clone returns a deep snapshot so the previous turn's state stays intact in
// the caller's hands.
func (s *State) clone() *State {
	if s == nil {
		return nil
	}
	cp := *s
	cp.History = append([]string(nil), s.History...)
	cp.Responses = append([]Response(nil), s.Responses...)
	if s.Profile != nil {
		p := *s.Profile
		cp.Profile = &p
	}
	return &cp
}

// ResponsesSince returns responses emitted after the first n, for transcript
// printers that only show output produced by the current turn.
func (s *State) ResponsesSince(n int) []Response {
	if s == nil || n >= len(s.Responses) {
		return nil
	}
	return s.Responses[n:]
}

// Terminal reports whether the session expects no further routing context:
// either a committed cancellation or a standalone answered question.
func (s *State) Terminal() bool {
	if s == nil {
		return false
	}
	return s.FinalAction == ActionCancellationProcessed ||
		(s.Completed && s.ActiveRole == RoleNone)
}

// #endregion state
