package model

import "time"

// RelatedArticleLink points to an article related to the current story.
type RelatedArticleLink struct {
	URL         string    `json:"url"`
	SourceName  string    `json:"source_name,omitempty"`
	Relevance   float64   `json:"relevance_score"`
	PublishedAt time.Time `json:"published_at"`
}
