// Package playbook extracts reason-specific negotiation scripts from the
// retention playbook text by named section markers.
package playbook

// #region imports
import (
	"fmt"
	"os"
	"strings"
)

// #endregion imports

// #region markers

const (
	markerFinancialHardship = "### Financial Hardship Cancellation"
	markerProductIssues     = "### Product Issue Retention"
	markerServiceValue      = "### Service Value Questioning"
	markerSpecialSituations = "## Special Situations"
)

// Per-reason fallback instructions used when a section marker is missing.
const (
	fallbackFinancial = "Lead with empathy. Acknowledge financial stress. Offer payment pause or downgrade options."
	fallbackProduct   = "Acknowledge the product issue. Offer replacement or technical support."
	fallbackService   = "Explain value. Offer trial extension or downgrade option."
)

// genericPrefixLen caps the playbook excerpt returned for an unrecognized
// reason.
const genericPrefixLen = 500

// #endregion markers

// #region playbook

// Playbook is the immutable negotiation script source.
type Playbook struct {
	text string
}

// Load reads the playbook file.
func Load(path string) (*Playbook, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read playbook %s: %w", path, err)
	}
	return New(string(raw)), nil
}

// New wraps playbook text directly. Used by tests and embedded defaults.
func New(text string) *Playbook {
	return &Playbook{text: text}
}

// Text returns the full playbook text, for indexing alongside the policy
// documents.
func (p *Playbook) Text() string {
	return p.text
}

// #endregion playbook

// #region script-for

// ScriptFor returns the negotiation script for a cancellation reason: the
// named playbook section when present, a short per-reason instruction when
// the section is missing, or a generic playbook prefix for an unrecognized
// reason.
func (p *Playbook) ScriptFor(reason string) string {
	switch reason {
	case "financial_hardship":
		if s, ok := p.section(markerFinancialHardship, markerProductIssues, markerServiceValue); ok {
			return s
		}
		return fallbackFinancial
	case "product_issues":
		if s, ok := p.section(markerProductIssues, markerServiceValue); ok {
			return s
		}
		return fallbackProduct
	case "service_value":
		if s, ok := p.section(markerServiceValue, markerSpecialSituations); ok {
			return s
		}
		return fallbackService
	default:
		if len(p.text) > genericPrefixLen {
			return p.text[:genericPrefixLen]
		}
		return p.text
	}
}

// section returns the text from the start marker up to the first of the end
// markers that follows it, or the rest of the playbook if none does.
func (p *Playbook) section(start string, ends ...string) (string, bool) {
	from := strings.Index(p.text, start)
	if from == -1 {
		return "", false
	}
	to := len(p.text)
	for _, end := range ends {
		if i := strings.Index(p.text[from:], end); i > 0 && from+i < to {
			to = from + i
		}
	}
	return strings.TrimSpace(p.text[from:to]), true
}

// #endregion script-for
