package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jayscottaf/pairscout/internal/pipeline"
)

var (
	askTimeout   time.Duration
	askLimit     int
	askSeniority float64
	askLayover   bool
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a natural-language question about the pairing corpus",
	Long: `Ask translates a free-form question into a structured, validated query,
retrieves and deterministically ranks the matching pairings, and answers
with prose grounded strictly in those records.

Example:
  pairscout ask "4-day pairings with at least 20 credit hours" --data bid.json
  pairscout ask "top 5 by efficiency" --data bid.json --llm-provider openai
  pairscout ask "best layovers in Rome" --data bid.json --layover`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	addDataFlags(askCmd)
	addLLMFlags(askCmd)

	askCmd.Flags().DurationVar(&askTimeout, "timeout", 60*time.Second, "overall query timeout")
	askCmd.Flags().IntVar(&askLimit, "limit", 0, "cap displayed pairings (0 = use the question's limit)")
	askCmd.Flags().Float64Var(&askSeniority, "seniority", -1, "seniority percentile 0-100 (higher = more junior); biases composite ranking")
	askCmd.Flags().BoolVar(&askLayover, "layover", false, "rank by longest layover duration")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	searcher, err := buildSearcher(cfg, logger)
	if err != nil {
		return err
	}

	req := pipeline.QueryRequest{
		Message:        question,
		Limit:          askLimit,
		LongestLayover: askLayover,
	}
	if askSeniority >= 0 {
		seniority := askSeniority
		req.SenioritySignal = &seniority
	}

	p := pipeline.NewPipeline(cfg, provider, searcher, logger)
	result := p.RunQuery(ctx, req)

	if verbose && result.Intent != nil {
		fmt.Fprintf(os.Stderr, "Intent: filters=%v ranking=%s\n", result.Intent.Filters, result.Intent.Ranking)
	}

	printResult(result)
	return nil
}
