package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jayscottaf/pairscout/internal/pipeline"
)

var compareTimeout time.Duration

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <pairing-number> <pairing-number> [more...]",
	Short: "Compare two or more pairings side by side",
	Long: `Compare looks up each pairing number and contrasts credit, block,
efficiency, and hold probability. Numbers that are not in the data set
are reported at the end of the answer.

Example:
  pairscout compare P4312 P4418 --data bid.json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	addDataFlags(compareCmd)
	addLLMFlags(compareCmd)

	compareCmd.Flags().DurationVar(&compareTimeout, "timeout", 60*time.Second, "overall timeout")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), compareTimeout)
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
	printResult(p.CompareByNumbers(ctx, args))
	return nil
}
