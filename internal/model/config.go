package model

import "time"

// Config is the complete pairscout configuration.
// Hierarchy (highest to lowest priority): CLI flags, PAIRSCOUT_* environment
// variables, config file (~/.pairscout/config.yaml), defaults.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Search  SearchConfig  `yaml:"search"`
	Ranking RankingConfig `yaml:"ranking"`
	Intent  IntentConfig  `yaml:"intent"`
	Output  OutputConfig  `yaml:"output"`
}

// LLMConfig configures the completion provider
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic
	APIKey string `yaml:"api_key"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url"`

	// Timeout for API requests, seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens"`

	// RequestsPerSecond throttles completion calls; 0 disables throttling
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// SearchConfig configures the record search collaborator
type SearchConfig struct {
	// BaseURL of the hosting API's search endpoint; empty means the
	// local corpus file is used instead
	BaseURL string `yaml:"base_url"`

	// CorpusPath is a local JSON pairing corpus for offline use
	CorpusPath string `yaml:"corpus_path"`

	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// RankingConfig holds the tunable scoring constants. The normalization
// ceilings are tuned to one pairing population and are configuration,
// not hard-coded law.
type RankingConfig struct {
	// CreditCeiling normalizes credit to 0-100: min(credit/ceiling*100, 100)
	CreditCeiling float64 `yaml:"credit_ceiling"`

	// Efficiency band for normalization: values at or below the floor map
	// to 0, at or above the ceiling to 100
	EfficiencyFloor   float64 `yaml:"efficiency_floor"`
	EfficiencyCeiling float64 `yaml:"efficiency_ceiling"`

	// Composite weights. CreditWeight is fixed; the hold weight shifts
	// with the requester's seniority and the efficiency weight absorbs
	// the remainder so the three always sum to 1.
	CreditWeight     float64 `yaml:"credit_weight"`
	BaseHoldWeight   float64 `yaml:"base_hold_weight"`
	JuniorHoldWeight float64 `yaml:"junior_hold_weight"`
	SeniorHoldWeight float64 `yaml:"senior_hold_weight"`
}

// IntentConfig configures the intent extractor
type IntentConfig struct {
	// CacheTTL bounds in-process memoization of extracted intents.
	// Extraction must be reproducible for identical input, so reuse is
	// behavior-preserving.
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// HistoryWindow caps how many recent conversation turns feed the prompt
	HistoryWindow int `yaml:"history_window"`
}

// OutputConfig configures presentation
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`

	// MaxDisplay caps records shown when neither the query nor the caller
	// sets a limit; 0 means no cap
	MaxDisplay int `yaml:"max_display"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:          "",
			Model:             "",
			Timeout:           30,
			MaxTokens:         1000,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Search: SearchConfig{
			Timeout:   15 * time.Second,
			UserAgent: "pairscout/0.1 (+https://github.com/jayscottaf/pairscout)",
		},
		Ranking: DefaultRankingConfig(),
		Intent: IntentConfig{
			CacheTTL:        5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
			HistoryWindow:   4,
		},
		Output: OutputConfig{
			MaxDisplay: 0,
		},
	}
}

// DefaultRankingConfig returns the scoring constants tuned to the current
// pairing population.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		CreditCeiling:     30,
		EfficiencyFloor:   1.0,
		EfficiencyCeiling: 1.5,
		CreditWeight:      0.4,
		BaseHoldWeight:    0.3,
		JuniorHoldWeight:  0.4,
		SeniorHoldWeight:  0.2,
	}
}
