package intent

// #region imports
import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/techflow/supportflow/internal/directory"
	"github.com/techflow/supportflow/internal/llm"
	"github.com/techflow/supportflow/internal/policy"
)

// #endregion imports

// #region email-pattern

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// ExtractEmail returns the first email address found in the message, or "".
func ExtractEmail(message string) string {
	return emailPattern.FindString(message)
}

// #endregion email-pattern

// #region classifier

// Classifier is the LLM-primary intent classifier with the keyword cascade
// as its parse-failure fallback.
type Classifier struct {
	gen   llm.Generator
	index policy.Searcher
	dir   *directory.Store
	log   zerolog.Logger
}

// NewClassifier wires the classifier. dir may be nil when no customer
// directory is available.
func NewClassifier(gen llm.Generator, index policy.Searcher, dir *directory.Store, log zerolog.Logger) *Classifier {
	return &Classifier{gen: gen, index: index, dir: dir, log: log}
}

// llmResult mirrors the JSON object the classification prompt requests.
type llmResult struct {
	Intent     string `json:"intent"`
	Confidence string `json:"confidence"`
	Reasoning  string `json:"reasoning"`
	NextAgent  string `json:"next_agent"`
}

// #endregion classifier

// #region classify

// Classify determines the intent and routing target for a message.
//
// The LLM is the primary path; an unparseable or incomplete reply falls back
// to the deterministic cascade. A failed generation call is NOT a parse
// failure: it propagates as a GenerationError so the caller never routes on
// a guess.
func (c *Classifier) Classify(ctx context.Context, message, email string) (Classification, *directory.Customer, error) {
	if email == "" {
		email = ExtractEmail(message)
	}

	var profile *directory.Customer
	if email != "" && c.dir != nil {
		cust, err := c.dir.Lookup(email)
		switch {
		case err == nil:
			profile = &cust
		case errors.Is(err, directory.ErrCustomerNotFound):
			c.log.Debug().Str("email", email).Msg("no customer record, continuing without profile")
		default:
			c.log.Warn().Err(err).Msg("customer lookup failed, continuing without profile")
		}
	}

	contextText := c.retrieveContext(message)
	prompt := buildClassificationPrompt(message, email, profile, contextText)

	reply, err := c.gen.Generate(ctx, classifierSystemPrompt, prompt)
	if err != nil {
		return Classification{}, nil, fmt.Errorf("classify intent: %w", err)
	}

	result, ok := parseLLMReply(reply)
	if !ok {
		fb := ClassifyFallback(message)
		c.log.Debug().Str("intent", string(fb)).Msg("classifier reply unparseable, using keyword cascade")
		return Classification{
			Intent:     fb,
			Route:      RouteFor(fb),
			Confidence: "medium",
			Rationale:  truncate(reply, 200),
			Email:      email,
		}, profile, nil
	}

	in := Intent(result.Intent)
	return Classification{
		Intent:     in,
		Route:      RouteFor(in),
		Confidence: result.Confidence,
		Rationale:  result.Reasoning,
		Email:      email,
		FromLLM:    true,
	}, profile, nil
}

// parseLLMReply extracts and validates the classification object. Missing
// required fields or an unknown intent value count as a parse failure.
func parseLLMReply(reply string) (llmResult, bool) {
	obj, ok := ExtractJSONObject(reply)
	if !ok {
		return llmResult{}, false
	}
	var result llmResult
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return llmResult{}, false
	}
	if result.Intent == "" || result.NextAgent == "" || !valid(result.Intent) {
		return llmResult{}, false
	}
	return result, true
}

// retrieveContext fetches brief routing context; retrieval failure degrades
// to the no-context placeholder.
func (c *Classifier) retrieveContext(message string) string {
	passages, err := c.index.Query(
		fmt.Sprintf("Customer says: %s. What type of support do they need?", message), 2)
	if err != nil {
		c.log.Warn().Err(err).Msg("classifier context retrieval failed")
		return policy.NoContext
	}
	return policy.FormatContext(passages)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// #endregion classify

// #region prompt

const classifierSystemPrompt = `You are a customer service greeter for TechFlow Electronics. You classify customer intent precisely and reply only with the requested JSON object.`

func buildClassificationPrompt(message, email string, profile *directory.Customer, contextText string) string {
	var sb strings.Builder

	sb.WriteString(`Classify customer intent based on these rules:

INTENT CLASSIFICATION RULES:
1. "cancellation" - Customer wants to cancel Care+ service OR change payment terms. Includes:
   - "can't afford", "can't pay", "too expensive", "need to cancel", "want to cancel"
   - Financial hardship mentions
   - Requests for discounts/pauses due to affordability
   - "get rid of", "remove", "cancel my subscription"
   - "custom billing arrangements", "payment plan", "special payment terms", "flexible payment"
   - Any request to change how/when they pay due to financial reasons

2. "technical_support" - Technical issues WITHOUT cancellation intent:
   - Phone problems (overheating, charging, won't work)
   - Device issues
   - NO mention of cancellation or payment changes

3. "billing" - Questions about charges/statements WITHOUT cancellation intent:
   - "got charged X but thought Y", "what's the extra charge"
   - Questions about billing statements, charges, fees
   - NO mention of affordability, cancellation, or wanting to change payment terms

4. "general" - Everything else (greetings, unclear)

`)
	fmt.Fprintf(&sb, "Customer Message: %s\n\n", message)
	if profile != nil {
		fmt.Fprintf(&sb, "Customer Info: %s, Tier: %s\n\n", profile.Name, profile.Tier)
	}
	fmt.Fprintf(&sb, "Relevant Policy Context:\n%s\n\n", contextText)

	if email == "" {
		email = "not_provided"
	}
	fmt.Fprintf(&sb, `Classify intent. Respond in JSON:
{
    "intent": "cancellation|technical_support|billing|general",
    "confidence": "high|medium|low",
    "customer_email": "%s",
    "reasoning": "brief explanation",
    "next_agent": "retention|technical_support|billing|none"
}`, email)

	return sb.String()
}

// #endregion prompt
