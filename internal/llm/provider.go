package llm

import (
	"context"

	"github.com/jayscottaf/pairscout/internal/model"
)

// Provider defines the interface for hosted completion services
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete runs one completion round-trip and returns the raw text.
	// Failures wrap *model.CompletionError; callers are expected to
	// degrade locally rather than propagate.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// System is the fixed instruction prompt
	System string

	// Messages are prior conversation turns plus the current utterance,
	// oldest first
	Messages []model.ConversationTurn

	// Temperature controls sampling; the pipeline keeps it low so repeated
	// calls with the same input stay reproducible
	Temperature float32

	// MaxTokens limits the response length
	MaxTokens int

	// JSONMode constrains output to a single JSON object where the provider
	// supports it; other providers get a prompt-level instruction
	JSONMode bool
}

// Config holds completion provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerSecond throttles calls across the process; 0 disables
	RequestsPerSecond float64
	Burst             int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:          mc.Provider,
		Model:             mc.Model,
		APIKey:            mc.APIKey,
		BaseURL:           mc.BaseURL,
		Timeout:           mc.Timeout,
		MaxTokens:         mc.MaxTokens,
		RequestsPerSecond: mc.RequestsPerSecond,
		Burst:             mc.Burst,
		HTTPProxy:         mc.HTTPProxy,
		HTTPSProxy:        mc.HTTPSProxy,
	}
}
