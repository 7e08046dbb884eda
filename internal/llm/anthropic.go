package llm

// #region imports
import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// #endregion imports

// #region config

// AnthropicConfig holds provider settings for the Anthropic generator.
type AnthropicConfig struct {
	Model     string
	MaxTokens int64
	Timeout   time.Duration
}

// DefaultAnthropicConfig returns sensible defaults for conversational turns.
func DefaultAnthropicConfig() AnthropicConfig {
	return AnthropicConfig{
		Model:     string(anthropic.ModelClaudeSonnet4_0),
		MaxTokens: 1024,
		Timeout:   30 * time.Second,
	}
}

// #endregion config

// #region generator

// AnthropicGenerator implements Generator using the Anthropic Messages API.
// API key is read from ANTHROPIC_API_KEY unless passed explicitly.
type AnthropicGenerator struct {
	client anthropic.Client
	config AnthropicConfig
}

// NewAnthropicGenerator creates a generator using the ambient API key.
func NewAnthropicGenerator(cfg AnthropicConfig) *AnthropicGenerator {
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicConfig().Model
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultAnthropicConfig().MaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultAnthropicConfig().Timeout
	}
	return &AnthropicGenerator{
		client: anthropic.NewClient(),
		config: cfg,
	}
}

// NewAnthropicGeneratorWithKey creates a generator with an explicit API key.
func NewAnthropicGeneratorWithKey(apiKey string, cfg AnthropicConfig) *AnthropicGenerator {
	g := NewAnthropicGenerator(cfg)
	g.client = anthropic.NewClient(option.WithAPIKey(apiKey))
	return g
}

// #endregion generator

// #region generate

// Generate sends one system+user exchange and returns the text content.
// The call is bounded by the configured timeout; a timeout surfaces as a
// GenerationError like any other call failure.
func (g *AnthropicGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.config.Model),
		MaxTokens: g.config.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", &GenerationError{Op: "anthropic.messages.new", Err: err}
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// #endregion generate
