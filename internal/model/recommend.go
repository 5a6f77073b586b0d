package model

// CatalogItem is a recommendable item from the external catalog collaborator.
// Items keep their catalog insertion order; the matcher uses it as the
// deterministic tiebreak for equal relevance scores.
type CatalogItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Creator     string   `json:"creator,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// RecommendationCandidate is one ranked recommendation.
type RecommendationCandidate struct {
	ItemID        string   `json:"item_id"`
	Title         string   `json:"title"`
	Creator       string   `json:"creator,omitempty"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Relevance     float64  `json:"relevance_score"` // [0,1], never below the configured floor
	MatchedTopics []string `json:"matched_topics,omitempty"`
	Strategy      string   `json:"strategy,omitempty"` // Which match tier produced it
}
