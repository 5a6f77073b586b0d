package recommend

import (
	"strings"

	"github.com/versolabs/verso/internal/model"
)

// MatchStrategy is one tier of the matching chain. Tiers are independent
// so each can be tested on its own.
type MatchStrategy interface {
	Name() string
	Match(topics []string, items []model.CatalogItem) []model.RecommendationCandidate
}

// Per-topic match quality weights. A tag hit is an exact catalog label;
// title and description hits are progressively weaker signals.
const (
	weightTag         = 1.0
	weightTitle       = 0.8
	weightDescription = 0.5
	weightCategory    = 0.5
)

// KeywordStrategy matches topics directly against catalog item metadata.
type KeywordStrategy struct{}

func (s *KeywordStrategy) Name() string { return "keyword" }

func (s *KeywordStrategy) Match(topics []string, items []model.CatalogItem) []model.RecommendationCandidate {
	var candidates []model.RecommendationCandidate

	for _, item := range items {
		title := strings.ToLower(item.Title)
		description := strings.ToLower(item.Description)

		tags := make(map[string]bool, len(item.Tags))
		for _, tag := range item.Tags {
			tags[strings.ToLower(tag)] = true
		}

		var weightSum float64
		var matched []string
		for _, topic := range topics {
			lower := strings.ToLower(topic)
			switch {
			case tags[lower]:
				weightSum += weightTag
			case strings.Contains(title, lower):
				weightSum += weightTitle
			case strings.Contains(description, lower):
				weightSum += weightDescription
			default:
				continue
			}
			matched = append(matched, topic)
		}

		if len(matched) == 0 {
			continue
		}

		candidates = append(candidates, candidate(item, normalize(weightSum, len(topics)), matched, s.Name()))
	}

	return candidates
}

// CategoryMapStrategy matches via a curated topic -> category lookup, the
// middle tier for when direct keyword matching comes up short.
type CategoryMapStrategy struct {
	Map map[string][]string
}

func (s *CategoryMapStrategy) Name() string { return "category_map" }

func (s *CategoryMapStrategy) Match(topics []string, items []model.CatalogItem) []model.RecommendationCandidate {
	var candidates []model.RecommendationCandidate

	for _, item := range items {
		category := strings.ToLower(item.Category)
		if category == "" {
			continue
		}

		var weightSum float64
		var matched []string
		for _, topic := range topics {
			for _, mapped := range s.Map[strings.ToLower(topic)] {
				if strings.EqualFold(mapped, category) {
					weightSum += weightCategory
					matched = append(matched, topic)
					break
				}
			}
		}

		if len(matched) == 0 {
			continue
		}

		candidates = append(candidates, candidate(item, normalize(weightSum, len(topics)), matched, s.Name()))
	}

	return candidates
}

// FallbackStrategy returns a fixed curated list, guaranteeing the stage
// never comes back empty when the article has topics at all.
type FallbackStrategy struct {
	Items []model.RecommendationCandidate
}

func (s *FallbackStrategy) Name() string { return "fallback" }

func (s *FallbackStrategy) Match(topics []string, _ []model.CatalogItem) []model.RecommendationCandidate {
	out := make([]model.RecommendationCandidate, len(s.Items))
	copy(out, s.Items)
	for i := range out {
		out[i].Strategy = s.Name()
	}
	return out
}

// DefaultFallbackItems is the curated editor's-choice list used when both
// matching tiers yield nothing for the article's topics.
func DefaultFallbackItems() []model.RecommendationCandidate {
	return []model.RecommendationCandidate{
		{
			ItemID:      "fallback-world-briefing",
			Title:       "The World in Brief",
			Creator:     "Editorial Desk",
			Description: "A curated primer on the stories shaping this week",
			Category:    "general",
			Relevance:   0.35,
		},
		{
			ItemID:      "fallback-explainers",
			Title:       "Explainers: How We Got Here",
			Creator:     "Editorial Desk",
			Description: "Background reading for today's headlines",
			Category:    "general",
			Relevance:   0.30,
		},
		{
			ItemID:      "fallback-long-reads",
			Title:       "Long Reads Worth Your Time",
			Creator:     "Editorial Desk",
			Description: "In-depth features picked by editors",
			Category:    "features",
			Relevance:   0.25,
		},
	}
}

// normalize maps the accumulated weight to [0,1]; monotonic in both the
// number of matched topics and their weights.
func normalize(weightSum float64, topicCount int) float64 {
	if topicCount == 0 {
		return 0
	}
	score := weightSum / float64(topicCount)
	if score > 1 {
		score = 1
	}
	return score
}

func candidate(item model.CatalogItem, relevance float64, matched []string, strategy string) model.RecommendationCandidate {
	return model.RecommendationCandidate{
		ItemID:        item.ID,
		Title:         item.Title,
		Creator:       item.Creator,
		Description:   item.Description,
		Category:      item.Category,
		Relevance:     relevance,
		MatchedTopics: matched,
		Strategy:      strategy,
	}
}
