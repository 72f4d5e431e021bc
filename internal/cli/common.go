package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jayscottaf/pairscout/internal/llm"
	"github.com/jayscottaf/pairscout/internal/model"
	"github.com/jayscottaf/pairscout/internal/search"
)

// Shared flags for the query commands
var (
	corpusPath  string
	apiBaseURL  string
	llmProvider string
	llmModel    string
)

func addDataFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&corpusPath, "data", "", "local pairing corpus (JSON file)")
	cmd.Flags().StringVar(&apiBaseURL, "api", "", "base URL of a hosted pairing search API")
}

func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&llmProvider, "llm-provider", "", "completion provider (openai, anthropic, ollama; empty = deterministic templates only)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "completion model name")
}

// buildConfig assembles the effective configuration from defaults, config
// file values, environment, and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if corpusPath != "" {
		cfg.Search.CorpusPath = corpusPath
	}
	if apiBaseURL != "" {
		cfg.Search.BaseURL = apiBaseURL
	}

	// API keys always come from the environment, never the config file
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

// buildProvider creates the completion provider, reporting availability in
// verbose mode. Returns nil when completions are disabled.
func buildProvider(cfg *model.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, err
	}

	if verbose {
		if provider == nil {
			fmt.Fprintln(os.Stderr, "No completion provider configured; responses use deterministic templates.")
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if !provider.IsAvailable(ctx) {
				fmt.Fprintf(os.Stderr, "Warning: %s provider is not reachable; responses will degrade to templates.\n", provider.Name())
			}
		}
	}

	return provider, nil
}

// buildSearcher creates the record search collaborator: a hosted API client
// when a base URL is set, otherwise a local corpus searcher.
func buildSearcher(cfg *model.Config, logger *zap.Logger) (search.Searcher, error) {
	if cfg.Search.BaseURL != "" {
		return search.NewClient(cfg.Search.BaseURL, cfg.Search.Timeout, cfg.Search.UserAgent, logger), nil
	}

	if cfg.Search.CorpusPath == "" {
		return nil, fmt.Errorf("no pairing source: pass --data <corpus.json> or --api <url>")
	}

	pairings, err := search.LoadCorpus(cfg.Search.CorpusPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d pairings from %s\n", len(pairings), cfg.Search.CorpusPath)
	}

	return search.NewMemory(pairings), nil
}

// newLogger builds the structured logger backing the pipeline
func newLogger() *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	return zap.NewNop()
}

// printResult renders a query result to stdout
func printResult(result *model.QueryResult) {
	fmt.Println(result.Response)

	if len(result.Data) > 0 && verbose {
		fmt.Println()
		for _, p := range result.Data {
			fmt.Printf("  %-8s %6.2f credit  %6.2f block  %d days  %3.0f%% hold",
				p.PairingNumber, p.CreditHours, p.BlockHours, p.PairingDays, p.HoldProbability)
			if p.Breakdown != nil {
				fmt.Printf("  score %.1f", p.Score)
			}
			fmt.Println()
		}
		if result.Truncated {
			fmt.Println("  (list truncated)")
		}
	}
}
