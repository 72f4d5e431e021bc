package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a new completion provider based on configuration.
// An empty provider name yields (nil, nil): completions disabled, with the
// pipeline falling back to its deterministic templates.
func NewProvider(config Config) (Provider, error) {
	name := strings.ToLower(config.Provider)

	var (
		p   Provider
		err error
	)

	switch name {
	case "openai":
		p, err = NewOpenAIProvider(config)

	case "anthropic", "claude":
		p, err = NewAnthropicProvider(config)

	case "ollama":
		p, err = NewOllamaProvider(config)

	case "":
		// No provider configured - return nil (completions disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown completion provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}

	if err != nil {
		return nil, err
	}

	if config.RequestsPerSecond > 0 {
		p = Throttled(p, config.RequestsPerSecond, config.Burst)
	}

	return p, nil
}
