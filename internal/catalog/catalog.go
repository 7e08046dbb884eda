package catalog

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// #endregion imports

// #region reasons

// Cancellation reasons the catalog is keyed by.
const (
	ReasonFinancialHardship = "financial_hardship"
	ReasonProductIssues     = "product_issues"
	ReasonServiceValue      = "service_value"
)

// tierGroups maps customer tier to the financial_hardship group key.
var tierGroups = map[string]string{
	"premium": "premium_customers",
	"regular": "regular_customers",
	"new":     "new_customers",
}

// #endregion reasons

// #region catalog

// Catalog is the immutable offer catalog plus authorization limits.
// financial_hardship is tier-partitioned; product_issues and service_value
// are partitioned by sub-group only and ignore tier.
type Catalog struct {
	limits            AuthorizationLimits
	financialHardship map[string][]Offer
	productIssues     map[string][]Offer
	serviceValue      map[string][]Offer
}

// rulesFile mirrors the retention rules JSON layout.
type rulesFile struct {
	AuthorizationLevels AuthorizationLimits `json:"authorization_levels"`
	FinancialHardship   map[string][]Offer  `json:"financial_hardship"`
	ProductIssues       map[string][]Offer  `json:"product_issues"`
	ServiceValue        map[string][]Offer  `json:"service_value"`
}

// Load reads and validates the retention rules file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read retention rules %s: %w", path, err)
	}
	var rf rulesFile
	if err := json.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("parse retention rules %s: %w", path, err)
	}
	c := &Catalog{
		limits:            rf.AuthorizationLevels,
		financialHardship: rf.FinancialHardship,
		productIssues:     rf.ProductIssues,
		serviceValue:      rf.ServiceValue,
	}
	if c.limits.Agent.MaxDiscountPercentage <= 0 {
		return nil, fmt.Errorf("retention rules %s: agent max_discount_percentage missing", path)
	}
	if len(c.financialHardship) == 0 {
		return nil, fmt.Errorf("retention rules %s: financial_hardship block missing", path)
	}
	return c, nil
}

// Limits returns the read-only authorization limit table.
func (c *Catalog) Limits() AuthorizationLimits {
	return c.limits
}

// #endregion catalog

// #region offers-for

// OffersFor returns the ordered offer list for a tier and reason. Unknown
// reason or unmapped tier yields a MisconfigurationError, never a silent
// empty list.
func (c *Catalog) OffersFor(tier, reason string) ([]Offer, error) {
	switch reason {
	case ReasonFinancialHardship:
		group, ok := tierGroups[strings.ToLower(tier)]
		if !ok {
			return nil, &MisconfigurationError{Reason: reason, Tier: tier, Available: sortedKeys(tierGroups)}
		}
		offers, ok := c.financialHardship[group]
		if !ok {
			return nil, &MisconfigurationError{Reason: reason, Tier: tier, Available: sortedOfferKeys(c.financialHardship)}
		}
		return offers, nil

	case ReasonProductIssues:
		return flatten(c.productIssues), nil

	case ReasonServiceValue:
		return flatten(c.serviceValue), nil

	default:
		return nil, &MisconfigurationError{
			Reason:    reason,
			Available: []string{ReasonFinancialHardship, ReasonProductIssues, ReasonServiceValue},
		}
	}
}

// SplitByAuthorization partitions offers into agent-presentable and
// manager-required sets. Untagged offers land in the agent set.
func SplitByAuthorization(offers []Offer) (agent, manager []Offer) {
	for _, o := range offers {
		if o.AgentAuthorized() {
			agent = append(agent, o)
		} else {
			manager = append(manager, o)
		}
	}
	return agent, manager
}

// flatten concatenates all sub-groups in stable key order.
func flatten(groups map[string][]Offer) []Offer {
	var out []Offer
	for _, k := range sortedOfferKeys(groups) {
		out = append(out, groups[k]...)
	}
	return out
}

func sortedOfferKeys(m map[string][]Offer) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// #endregion offers-for

// #region format

// FormatOffers renders a numbered offer list with key numeric attributes for
// prompt embedding.
func FormatOffers(offers []Offer) string {
	if len(offers) == 0 {
		return "No offers available"
	}
	var sb strings.Builder
	for i, o := range offers {
		fmt.Fprintf(&sb, "%d. %s: %s\n", i+1, strings.ToUpper(o.Type), o.Description)
		var details []string
		if o.DurationMonths != nil {
			details = append(details, fmt.Sprintf("Duration: %d months", *o.DurationMonths))
		}
		if o.Cost != nil {
			details = append(details, fmt.Sprintf("Cost: $%.2f", *o.Cost))
		}
		if o.NewCost != nil {
			details = append(details, fmt.Sprintf("New monthly cost: $%.2f", *o.NewCost))
		}
		if o.Percentage != nil {
			details = append(details, fmt.Sprintf("Discount: %d%%", *o.Percentage))
		}
		if o.Savings != nil {
			details = append(details, fmt.Sprintf("Savings: $%.2f", *o.Savings))
		}
		if len(details) > 0 {
			fmt.Fprintf(&sb, "   Details: %s\n", strings.Join(details, ", "))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderText converts the catalog into readable text so the policy index can
// answer authorization questions from the rules themselves.
func (c *Catalog) RenderText() string {
	var sb strings.Builder

	sb.WriteString("AUTHORIZATION LEVELS:\n\nAGENT CAN:\n")
	fmt.Fprintf(&sb, "- Maximum discount: %d%%\n", c.limits.Agent.MaxDiscountPercentage)
	fmt.Fprintf(&sb, "- Can pause subscriptions: %v\n", c.limits.Agent.CanPause)
	fmt.Fprintf(&sb, "- Can downgrade plans: %v\n", c.limits.Agent.CanDowngrade)
	sb.WriteString("\nMANAGER CAN:\n")
	fmt.Fprintf(&sb, "- Maximum discount: %d%%\n", c.limits.Manager.MaxDiscountPercentage)
	fmt.Fprintf(&sb, "- Can create custom offers: %v\n", c.limits.Manager.CanCustomOffers)
	sb.WriteString("\n")

	renderGroups := func(title string, groups map[string][]Offer) {
		fmt.Fprintf(&sb, "%s:\n", title)
		for _, key := range sortedOfferKeys(groups) {
			fmt.Fprintf(&sb, "\n%s:\n", titleCase(key))
			for _, o := range groups[key] {
				auth := o.Authorization
				if auth == "" {
					auth = AuthAgent
				}
				if o.Type == "explain_benefits" && len(o.Benefits) > 0 {
					fmt.Fprintf(&sb, "- Benefits: %s\n", strings.Join(o.Benefits, ", "))
					continue
				}
				fmt.Fprintf(&sb, "- %s (Authorization: %s)\n", o.Description, auth)
				if o.Percentage != nil {
					fmt.Fprintf(&sb, "  Discount: %d%%\n", *o.Percentage)
				}
				if o.NewCost != nil {
					fmt.Fprintf(&sb, "  New cost: $%.2f\n", *o.NewCost)
				}
				if o.DurationMonths != nil {
					fmt.Fprintf(&sb, "  Duration: %d months\n", *o.DurationMonths)
				}
			}
		}
		sb.WriteString("\n")
	}

	renderGroups("FINANCIAL HARDSHIP OFFERS", c.financialHardship)
	renderGroups("PRODUCT ISSUES OFFERS", c.productIssues)
	renderGroups("SERVICE VALUE OFFERS", c.serviceValue)

	return sb.String()
}

func titleCase(key string) string {
	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// #endregion format

// #region holder

// Holder is an atomically swappable catalog reference. The rules watcher
// stores a freshly loaded catalog; per-turn readers take a snapshot.
type Holder struct {
	mu  sync.RWMutex
	cur *Catalog
}

// NewHolder wraps an initial catalog.
func NewHolder(c *Catalog) *Holder {
	return &Holder{cur: c}
}

// Get returns the current catalog snapshot.
func (h *Holder) Get() *Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cur
}

// Swap replaces the catalog for subsequent turns.
func (h *Holder) Swap(c *Catalog) {
	h.mu.Lock()
	h.cur = c
	h.mu.Unlock()
}

// #endregion holder
