package expand

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/versolabs/verso/internal/cache"
	"github.com/versolabs/verso/internal/logger"
	"github.com/versolabs/verso/internal/model"
)

const (
	defaultTrendingLimit = 10
	maxTrendingLimit     = 50
)

// Trending lists the most recent expandable stories, served from the
// short-TTL trending cache category and assembled from the article store
// on a miss.
func (o *Orchestrator) Trending(ctx context.Context, limit int) ([]model.StorySummary, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	if limit > maxTrendingLimit {
		limit = maxTrendingLimit
	}

	key := cache.Key("stories", strconv.Itoa(limit))
	if data, ok := o.cache.Get(cache.CategoryTrending, key); ok {
		var stories []model.StorySummary
		if err := json.Unmarshal(data, &stories); err == nil {
			return stories, nil
		}
	}

	if o.store == nil {
		return nil, fmt.Errorf("trending: no article store configured: %w", model.ErrUpstreamUnavailable)
	}

	articles, err := o.store.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent articles: %w", err)
	}

	stories := make([]model.StorySummary, 0, len(articles))
	for _, article := range articles {
		stories = append(stories, model.StorySummary{
			ID:           article.ID,
			Title:        article.Title,
			SourceURL:    article.SourceURL,
			PublishedAt:  article.PublishedAt,
			Topics:       article.Topics,
			IsExpandable: article.Body != "",
		})
	}

	if data, err := json.Marshal(stories); err == nil {
		if err := o.cache.Set(cache.CategoryTrending, key, data); err != nil {
			logger.Log.WithError(err).Warn("trending cache write failed")
		}
	}

	return stories, nil
}
