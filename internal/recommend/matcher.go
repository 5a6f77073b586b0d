package recommend

import (
	"context"
	"sort"

	"github.com/versolabs/verso/internal/model"
)

// Catalog is the external catalog-query collaborator. Items come back in
// catalog insertion order, which is the documented tiebreak.
type Catalog interface {
	Query(ctx context.Context, topics []string) ([]model.CatalogItem, error)
}

// Matcher ranks catalog items against article topics. Matching is an
// ordered chain of strategies tried until the minimum result count is met;
// the final fixed-list tier guarantees a non-empty result for any request
// with at least one topic.
type Matcher struct {
	catalog    Catalog
	strategies []MatchStrategy
	cfg        model.RecommendConfig
}

// NewMatcher creates a matcher with the standard strategy chain:
// keyword match, curated category map, fixed fallback list.
func NewMatcher(catalog Catalog, cfg model.RecommendConfig) *Matcher {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.MinResults <= 0 {
		cfg.MinResults = 3
	}
	if cfg.MaxPerCategory <= 0 {
		cfg.MaxPerCategory = 2
	}

	return &Matcher{
		catalog: catalog,
		strategies: []MatchStrategy{
			&KeywordStrategy{},
			&CategoryMapStrategy{Map: cfg.CategoryMap},
			&FallbackStrategy{Items: DefaultFallbackItems()},
		},
		cfg: cfg,
	}
}

// Recommend returns the ranked, deduplicated, diversity-capped top-K.
// A failed catalog query degrades to the strategies that work without it;
// only context expiry surfaces as an error.
func (m *Matcher) Recommend(ctx context.Context, topics []string) ([]model.RecommendationCandidate, error) {
	if len(topics) == 0 {
		return []model.RecommendationCandidate{}, nil
	}

	items, err := m.catalog.Query(ctx, topics)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		items = nil // Catalog down: the fallback tier still answers
	}

	byID := make(map[string]model.RecommendationCandidate)
	for _, strategy := range m.strategies {
		for _, candidate := range strategy.Match(topics, items) {
			existing, seen := byID[candidate.ItemID]
			if !seen || candidate.Relevance > existing.Relevance {
				byID[candidate.ItemID] = candidate
			}
		}
		if len(byID) >= m.cfg.MinResults {
			break
		}
	}

	candidates := make([]model.RecommendationCandidate, 0, len(byID))
	for _, candidate := range byID {
		if candidate.Relevance >= m.cfg.RelevanceFloor {
			candidates = append(candidates, candidate)
		}
	}

	order := catalogOrder(items)
	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].Relevance != candidates[b].Relevance {
			return candidates[a].Relevance > candidates[b].Relevance
		}
		return order(candidates[a].ItemID) < order(candidates[b].ItemID)
	})

	return m.capDiversity(candidates), nil
}

// capDiversity enforces at most MaxPerCategory candidates per category in
// the final top-K, then truncates to TopK.
func (m *Matcher) capDiversity(candidates []model.RecommendationCandidate) []model.RecommendationCandidate {
	perCategory := make(map[string]int)
	result := make([]model.RecommendationCandidate, 0, m.cfg.TopK)

	for _, candidate := range candidates {
		if len(result) >= m.cfg.TopK {
			break
		}
		if candidate.Category != "" && perCategory[candidate.Category] >= m.cfg.MaxPerCategory {
			continue
		}
		perCategory[candidate.Category]++
		result = append(result, candidate)
	}

	return result
}

// catalogOrder maps item ids to catalog insertion positions; unknown ids
// (fallback tier) sort after catalog items.
func catalogOrder(items []model.CatalogItem) func(id string) int {
	positions := make(map[string]int, len(items))
	for i, item := range items {
		positions[item.ID] = i
	}
	return func(id string) int {
		if pos, ok := positions[id]; ok {
			return pos
		}
		return len(items) + 1
	}
}
