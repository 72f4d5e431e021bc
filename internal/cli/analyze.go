package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jayscottaf/pairscout/internal/pipeline"
)

var analyzeTimeout time.Duration

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <pairing-number>",
	Short: "Analyze a single pairing by its number",
	Long: `Analyze looks up one pairing and narrates its credit, efficiency, and
hold outlook. An unknown pairing number yields a plain message, not an
error.

Example:
  pairscout analyze P4312 --data bid.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addDataFlags(analyzeCmd)
	addLLMFlags(analyzeCmd)

	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 60*time.Second, "overall timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
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

	p := pipeline.NewPipeline(cfg, provider, searcher, logger)
	printResult(p.AnalyzeByNumber(ctx, args[0]))
	return nil
}
