package related

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/versolabs/verso/internal/model"
)

type fakeIndex struct {
	calls int
	links []model.RelatedArticleLink
	err   error
}

func (f *fakeIndex) SearchRelated(ctx context.Context, topics []string, limit int) ([]model.RelatedArticleLink, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.links, f.err
}

func TestFind_SortsByRelevanceThenRecency(t *testing.T) {
	older := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	index := &fakeIndex{links: []model.RelatedArticleLink{
		{URL: "https://example.com/a", Relevance: 0.5, PublishedAt: older},
		{URL: "https://example.com/b", Relevance: 0.9, PublishedAt: older},
		{URL: "https://example.com/c", Relevance: 0.5, PublishedAt: newer},
	}}
	finder := NewFinder(index, model.RelatedConfig{Limit: 5})

	links, err := finder.Find(context.Background(), []string{"climate"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{
		"https://example.com/b", // highest relevance
		"https://example.com/c", // tie broken by recency
		"https://example.com/a",
	}
	if len(links) != len(want) {
		t.Fatalf("Expected %d links, got %d", len(want), len(links))
	}
	for i, url := range want {
		if links[i].URL != url {
			t.Errorf("Position %d: got %s, want %s", i, links[i].URL, url)
		}
	}
}

func TestFind_CapsAtLimit(t *testing.T) {
	var links []model.RelatedArticleLink
	for i := 0; i < 10; i++ {
		links = append(links, model.RelatedArticleLink{
			URL:       "https://example.com/article",
			Relevance: float64(i) / 10,
		})
	}
	finder := NewFinder(&fakeIndex{links: links}, model.RelatedConfig{Limit: 3})

	got, err := finder.Find(context.Background(), []string{"climate"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 links, got %d", len(got))
	}
}

func TestFind_UpstreamFailureYieldsEmptyList(t *testing.T) {
	finder := NewFinder(&fakeIndex{err: errors.New("index down")}, model.RelatedConfig{})

	links, err := finder.Find(context.Background(), []string{"climate"})
	if err != nil {
		t.Fatalf("Expected graceful degradation, got error: %v", err)
	}
	if links == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(links) != 0 {
		t.Errorf("Expected no links, got %d", len(links))
	}
}

func TestFind_ContextExpiryIsAnError(t *testing.T) {
	finder := NewFinder(&fakeIndex{}, model.RelatedConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := finder.Find(ctx, []string{"climate"}); err == nil {
		t.Error("Expected an error for an expired context")
	}
}

func TestFind_NoTopics(t *testing.T) {
	index := &fakeIndex{}
	finder := NewFinder(index, model.RelatedConfig{})

	links, err := finder.Find(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("Expected no links without topics, got %d", len(links))
	}
	if index.calls != 0 {
		t.Errorf("Expected no index query without topics, got %d", index.calls)
	}
}
