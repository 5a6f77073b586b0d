package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/versolabs/verso/internal/model"
)

type fakeCatalog struct {
	calls int
	items []model.CatalogItem
	err   error
}

func (f *fakeCatalog) Query(ctx context.Context, topics []string) ([]model.CatalogItem, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.items, f.err
}

func testCatalogItems() []model.CatalogItem {
	return []model.CatalogItem{
		{ID: "item-climate", Title: "Climate Policy Tracker", Category: "environment", Tags: []string{"climate", "policy"}},
		{ID: "item-oceans", Title: "Our Warming Oceans", Category: "environment", Description: "How climate shifts reshape marine life"},
		{ID: "item-markets", Title: "Markets Today", Category: "finance", Tags: []string{"economy"}},
		{ID: "item-carbon", Title: "Carbon Capture Explained", Category: "environment", Tags: []string{"climate"}},
		{ID: "item-chess", Title: "Chess Openings", Category: "games"},
	}
}

func TestRecommend_KeywordMatchesRankFirst(t *testing.T) {
	catalog := &fakeCatalog{items: testCatalogItems()}
	matcher := NewMatcher(catalog, model.DefaultConfig().Recommend)

	recs, err := matcher.Recommend(context.Background(), []string{"climate"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("Expected recommendations")
	}

	// Tag hits (weight 1.0) outrank description hits (weight 0.5).
	if recs[0].ItemID != "item-climate" {
		t.Errorf("Expected item-climate first, got %s", recs[0].ItemID)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Relevance > recs[i-1].Relevance {
			t.Errorf("Recommendations not sorted by relevance: %f after %f", recs[i].Relevance, recs[i-1].Relevance)
		}
	}
	for _, rec := range recs {
		if rec.ItemID == "item-chess" {
			t.Error("Unmatched item should not appear")
		}
	}
}

func TestRecommend_EqualScoresKeepCatalogOrder(t *testing.T) {
	catalog := &fakeCatalog{items: testCatalogItems()}
	matcher := NewMatcher(catalog, model.DefaultConfig().Recommend)

	recs, err := matcher.Recommend(context.Background(), []string{"climate"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// item-climate and item-carbon both score a full tag hit; the earlier
	// catalog entry must come first.
	posClimate, posCarbon := -1, -1
	for i, rec := range recs {
		switch rec.ItemID {
		case "item-climate":
			posClimate = i
		case "item-carbon":
			posCarbon = i
		}
	}
	if posClimate == -1 || posCarbon == -1 {
		t.Fatalf("Expected both tag-matched items, got %v", recs)
	}
	if posClimate > posCarbon {
		t.Error("Catalog insertion order must break relevance ties")
	}
}

func TestRecommend_DiversityCap(t *testing.T) {
	cfg := model.DefaultConfig().Recommend
	cfg.MaxPerCategory = 2
	catalog := &fakeCatalog{items: testCatalogItems()}
	matcher := NewMatcher(catalog, cfg)

	recs, err := matcher.Recommend(context.Background(), []string{"climate"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	perCategory := make(map[string]int)
	for _, rec := range recs {
		perCategory[rec.Category]++
	}
	if perCategory["environment"] > 2 {
		t.Errorf("Expected at most 2 environment items, got %d", perCategory["environment"])
	}
}

func TestRecommend_RelevanceFloor(t *testing.T) {
	cfg := model.DefaultConfig().Recommend
	cfg.RelevanceFloor = 0.2

	catalog := &fakeCatalog{items: testCatalogItems()}
	matcher := NewMatcher(catalog, cfg)

	// Four topics, one weak description match: 0.5/4 = 0.125 < floor.
	recs, err := matcher.Recommend(context.Background(), []string{"marine", "x1", "x2", "x3"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, rec := range recs {
		if rec.Relevance < cfg.RelevanceFloor {
			t.Errorf("Candidate %s scored %.3f, below the floor", rec.ItemID, rec.Relevance)
		}
	}
}

func TestRecommend_FallbackWhenNothingMatches(t *testing.T) {
	catalog := &fakeCatalog{items: testCatalogItems()}
	matcher := NewMatcher(catalog, model.DefaultConfig().Recommend)

	recs, err := matcher.Recommend(context.Background(), []string{"quantum-basketweaving"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("Expected the fallback tier to answer")
	}
	for _, rec := range recs {
		if rec.Strategy != "fallback" {
			t.Errorf("Expected fallback candidates only, got strategy %q", rec.Strategy)
		}
	}
}

func TestRecommend_CatalogFailureStillAnswers(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("catalog unavailable")}
	matcher := NewMatcher(catalog, model.DefaultConfig().Recommend)

	recs, err := matcher.Recommend(context.Background(), []string{"climate"})
	if err != nil {
		t.Fatalf("Expected degraded result, got error: %v", err)
	}
	if len(recs) == 0 {
		t.Error("Expected fallback recommendations when the catalog is down")
	}
}

func TestRecommend_ContextExpiryIsAnError(t *testing.T) {
	catalog := &fakeCatalog{items: testCatalogItems()}
	matcher := NewMatcher(catalog, model.DefaultConfig().Recommend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := matcher.Recommend(ctx, []string{"climate"}); err == nil {
		t.Error("Expected an error for an expired context")
	}
}

func TestRecommend_NoTopics(t *testing.T) {
	catalog := &fakeCatalog{items: testCatalogItems()}
	matcher := NewMatcher(catalog, model.DefaultConfig().Recommend)

	recs, err := matcher.Recommend(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Expected no recommendations without topics, got %d", len(recs))
	}
	if catalog.calls != 0 {
		t.Errorf("Expected no catalog query without topics, got %d", catalog.calls)
	}
}

func TestCategoryMapStrategy(t *testing.T) {
	strategy := &CategoryMapStrategy{Map: map[string][]string{
		"climate": {"science", "environment"},
	}}

	candidates := strategy.Match([]string{"climate"}, testCatalogItems())

	if len(candidates) == 0 {
		t.Fatal("Expected category-mapped candidates")
	}
	for _, c := range candidates {
		if c.Category != "environment" {
			t.Errorf("Unexpected category %q from the map tier", c.Category)
		}
		if c.Relevance != weightCategory {
			t.Errorf("Expected relevance %.2f for a single mapped topic, got %.2f", weightCategory, c.Relevance)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := normalize(2.0, 2); got != 1.0 {
		t.Errorf("normalize(2,2) = %f, want 1.0", got)
	}
	if got := normalize(5.0, 2); got != 1.0 {
		t.Errorf("Expected clamp to 1.0, got %f", got)
	}
	if got := normalize(1.0, 0); got != 0 {
		t.Errorf("Expected 0 for zero topics, got %f", got)
	}
}
