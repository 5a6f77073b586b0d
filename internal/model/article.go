package model

import "time"

// Article is the resolved source story. It is owned by the article-storage
// collaborator and read-only inside the expansion pipeline.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	SourceURL   string    `json:"source_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Topics      []string  `json:"topics,omitempty"`    // Extracted topic labels
	Sentiment   string    `json:"sentiment,omitempty"` // positive, negative, neutral
}

// StorySummary is the lightweight article shape returned by the trending
// query. Expandable means the body is present so a full expansion can run.
type StorySummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SourceURL    string    `json:"source_url,omitempty"`
	PublishedAt  time.Time `json:"published_at"`
	Topics       []string  `json:"topics,omitempty"`
	IsExpandable bool      `json:"is_expandable"`
}
