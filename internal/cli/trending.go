package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/versolabs/verso/internal/expand"
)

var trendingLimit int

// trendingCmd represents the trending command
var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List trending expandable stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		cfg := loadConfig()
		orchestrator := expand.New(cfg, storeFromConfig(cfg))

		stories, err := orchestrator.Trending(ctx, trendingLimit)
		if err != nil {
			return err
		}

		return writeResult(stories, "")
	},
}

func init() {
	rootCmd.AddCommand(trendingCmd)

	trendingCmd.Flags().IntVar(&trendingLimit, "limit", 10, "maximum stories to list")
}
