package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/versolabs/verso/internal/expand"
	"github.com/versolabs/verso/internal/model"
	"github.com/versolabs/verso/internal/resolve"
	"github.com/versolabs/verso/internal/upstream"
)

var (
	expandNoFacts    bool
	expandNoRecs     bool
	expandNoRelated  bool
	expandSummary    string
	expandTimeout    time.Duration
	expandNoCache    bool
	expandOutputJSON string
)

// expandCmd represents the expand command
var expandCmd = &cobra.Command{
	Use:   "expand <article-id|url>",
	Short: "Expand a single story: fact checks, recommendations, related articles",
	Long: `Expand resolves an article by identifier or URL and enriches it with:
- Claim-level fact checks weighed by source credibility
- Topic-matched recommendations
- Related-article links

Example:
  verso expand article-8812
  verso expand https://example.com/news/climate-summit
  verso expand article-8812 --summary deep --json result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().BoolVar(&expandNoFacts, "no-facts", false, "skip fact verification")
	expandCmd.Flags().BoolVar(&expandNoRecs, "no-recommendations", false, "skip recommendations")
	expandCmd.Flags().BoolVar(&expandNoRelated, "no-related", false, "skip related articles")
	expandCmd.Flags().StringVar(&expandSummary, "summary", "standard", "summary level (brief, standard, deep)")
	expandCmd.Flags().DurationVar(&expandTimeout, "timeout", 30*time.Second, "overall request timeout")
	expandCmd.Flags().BoolVar(&expandNoCache, "no-cache", false, "disable the result cache")
	expandCmd.Flags().StringVar(&expandOutputJSON, "json", "", "write result JSON to a file instead of stdout")
}

func runExpand(cmd *cobra.Command, args []string) error {
	ref := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), expandTimeout)
	defer cancel()

	cfg := loadConfig()
	if expandNoCache {
		cfg.Cache.Enabled = false
	}

	orchestrator := expand.New(cfg, storeFromConfig(cfg))

	req := model.ExpandRequest{
		IncludeFacts:           !expandNoFacts,
		IncludeRecommendations: !expandNoRecs,
		IncludeRelated:         !expandNoRelated,
		SummaryLevel:           model.SummaryLevel(expandSummary),
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		req.ArticleURL = ref
	} else {
		req.ArticleID = ref
	}

	result, err := orchestrator.Expand(ctx, req)
	if err != nil {
		return fmt.Errorf("expand failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d fact checks (%s)\n", len(result.FactChecks), result.FactsStatus.State)
		fmt.Fprintf(os.Stderr, "✓ %d recommendations (%s)\n", len(result.Recommendations), result.RecommendationsStatus.State)
		fmt.Fprintf(os.Stderr, "✓ %d related articles (%s)\n", len(result.RelatedArticles), result.RelatedStatus.State)
		fmt.Fprintf(os.Stderr, "✓ credibility score %.2f, %dms, cache_hit=%v\n",
			result.CredibilityScore, result.ProcessingTimeMs, result.CacheHit)
	}

	return writeResult(result, expandOutputJSON)
}

// storeFromConfig wires the article store client when an endpoint is
// configured; URL-only usage works without one.
func storeFromConfig(cfg *model.Config) resolve.Store {
	if cfg.Upstream.StoreBaseURL == "" {
		return nil
	}
	return upstream.NewStoreClient(cfg.Upstream, cfg.HTTP)
}

func writeResult(result interface{}, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", path)
	}
	return nil
}
