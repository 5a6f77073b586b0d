package related

import (
	"context"
	"sort"

	"github.com/versolabs/verso/internal/model"
)

// Index is the external related-article index collaborator.
type Index interface {
	SearchRelated(ctx context.Context, topics []string, limit int) ([]model.RelatedArticleLink, error)
}

// Finder queries the related-article index and returns a ranked, capped
// list of links. Upstream failure yields an empty list, not an error;
// only context expiry is reported so the orchestrator can mark the
// section degraded.
type Finder struct {
	index Index
	limit int
}

// NewFinder creates a finder returning up to limit links.
func NewFinder(index Index, cfg model.RelatedConfig) *Finder {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 5
	}
	return &Finder{index: index, limit: limit}
}

// Find returns related links sorted by relevance descending, ties broken
// by recency descending.
func (f *Finder) Find(ctx context.Context, topics []string) ([]model.RelatedArticleLink, error) {
	if len(topics) == 0 {
		return []model.RelatedArticleLink{}, nil
	}

	links, err := f.index.SearchRelated(ctx, topics, f.limit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return []model.RelatedArticleLink{}, nil
	}

	sort.SliceStable(links, func(a, b int) bool {
		if links[a].Relevance != links[b].Relevance {
			return links[a].Relevance > links[b].Relevance
		}
		return links[a].PublishedAt.After(links[b].PublishedAt)
	})

	if len(links) > f.limit {
		links = links[:f.limit]
	}
	if links == nil {
		links = []model.RelatedArticleLink{}
	}

	return links, nil
}
