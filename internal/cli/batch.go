package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/versolabs/verso/internal/expand"
	"github.com/versolabs/verso/internal/worker"
)

var (
	batchConcurrency int
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Expand multiple stories from a file of ids/URLs",
	Long: `Batch reads article references (one per line, # for comments) and
expands them concurrently.

Example:
  verso batch articles.txt --concurrency 4`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 3, "number of parallel expansions")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	orchestrator := expand.New(cfg, storeFromConfig(cfg))

	processor := worker.NewBatchProcessor(orchestrator, batchConcurrency)

	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	succeeded := 0
	for _, result := range results {
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Ref, result.Error)
			continue
		}
		succeeded++
		fmt.Printf("✓ %s: %d facts, %d recommendations, %d related (%dms)\n",
			result.Ref, len(result.Result.FactChecks), len(result.Result.Recommendations),
			len(result.Result.RelatedArticles), result.Result.ProcessingTimeMs)
	}

	fmt.Printf("\n%d/%d expansions succeeded\n", succeeded, len(results))
	return nil
}
