// Package catalog holds the immutable retention offer catalog and the
// authorization limit table, loaded once at startup from the rules file.
package catalog

// #region imports
import (
	"fmt"
	"strings"
)

// #endregion imports

// #region offer

// Offer is a single retention offer record. Numeric attributes are pointers
// so "absent" is distinguishable from zero when formatting details.
type Offer struct {
	Type           string   `json:"type"`
	Description    string   `json:"description"`
	Authorization  string   `json:"authorization,omitempty"` // "agent" | "manager" | "" (agent by default)
	Percentage     *int     `json:"percentage,omitempty"`
	DurationMonths *int     `json:"duration_months,omitempty"`
	Cost           *float64 `json:"cost,omitempty"`
	NewCost        *float64 `json:"new_cost,omitempty"`
	Savings        *float64 `json:"savings,omitempty"`
	Benefits       []string `json:"benefits,omitempty"`
}

// AuthAgent and AuthManager are the explicit authorization tags.
const (
	AuthAgent   = "agent"
	AuthManager = "manager"
)

// AgentAuthorized reports whether an agent may present this offer without
// escalation. An absent tag counts as agent-level; informational offers like
// explain_benefits rely on that default.
func (o Offer) AgentAuthorized() bool {
	return o.Authorization == "" || o.Authorization == AuthAgent
}

// #endregion offer

// #region limits

// AgentLimits caps what a front-line agent may offer.
type AgentLimits struct {
	MaxDiscountPercentage int  `json:"max_discount_percentage"`
	CanPause              bool `json:"can_pause"`
	CanDowngrade          bool `json:"can_downgrade"`
}

// ManagerLimits caps what a manager may approve.
type ManagerLimits struct {
	MaxDiscountPercentage int  `json:"max_discount_percentage"`
	CanCustomOffers       bool `json:"can_custom_offers"`
}

// AuthorizationLimits is the read-only per-role limit table.
type AuthorizationLimits struct {
	Agent   AgentLimits   `json:"agent"`
	Manager ManagerLimits `json:"manager"`
}

// #endregion limits

// #region misconfiguration-error

// MisconfigurationError reports a catalog lookup against an unknown reason or
// an unmapped tier. Distinct from an empty offer list: callers must treat it
// as fatal, not as "no offers configured".
type MisconfigurationError struct {
	Reason    string
	Tier      string
	Available []string
}

func (e *MisconfigurationError) Error() string {
	if e.Tier != "" {
		return fmt.Sprintf("offer catalog: no offers for tier %q under reason %q (known tiers: %s)",
			e.Tier, e.Reason, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("offer catalog: unknown reason %q (known reasons: %s)",
		e.Reason, strings.Join(e.Available, ", "))
}

// #endregion misconfiguration-error
