package model

// SummaryLevel controls how much of the article the summary covers
type SummaryLevel string

const (
	SummaryBrief    SummaryLevel = "brief"
	SummaryStandard SummaryLevel = "standard"
	SummaryDeep     SummaryLevel = "deep"
)

// Valid reports whether the level is one of the known values.
func (l SummaryLevel) Valid() bool {
	switch l {
	case SummaryBrief, SummaryStandard, SummaryDeep:
		return true
	}
	return false
}

// ExpandRequest is the logical expansion request. Exactly one of ArticleID
// and ArticleURL must be set.
type ExpandRequest struct {
	ArticleID              string       `json:"article_id,omitempty"`
	ArticleURL             string       `json:"article_url,omitempty"`
	IncludeFacts           bool         `json:"include_facts"`
	IncludeRecommendations bool         `json:"include_recommendations"`
	IncludeRelated         bool         `json:"include_related"`
	SummaryLevel           SummaryLevel `json:"summary_level,omitempty"`
}

// DefaultExpandRequest returns a request with all sections enabled and the
// standard summary level, ready to take an article reference.
func DefaultExpandRequest() ExpandRequest {
	return ExpandRequest{
		IncludeFacts:           true,
		IncludeRecommendations: true,
		IncludeRelated:         true,
		SummaryLevel:           SummaryStandard,
	}
}

// Validate rejects malformed requests before any collaborator is called.
func (r *ExpandRequest) Validate() error {
	if r.ArticleID == "" && r.ArticleURL == "" {
		return &ValidationError{Reason: "one of article_id or article_url is required"}
	}
	if r.ArticleID != "" && r.ArticleURL != "" {
		return &ValidationError{Reason: "article_id and article_url are mutually exclusive"}
	}
	if r.SummaryLevel == "" {
		r.SummaryLevel = SummaryStandard
	}
	if !r.SummaryLevel.Valid() {
		return &ValidationError{Reason: "unknown summary_level: " + string(r.SummaryLevel)}
	}
	return nil
}

// SectionState distinguishes an empty section from a degraded one
type SectionState string

const (
	SectionOK       SectionState = "ok"       // Stage completed with data
	SectionEmpty    SectionState = "empty"    // Stage completed, nothing found
	SectionDegraded SectionState = "degraded" // Stage timed out or failed upstream
	SectionSkipped  SectionState = "skipped"  // Not requested
)

// SectionStatus is attached per enrichment section so callers can tell
// "no related articles" apart from "related lookup failed".
type SectionStatus struct {
	State  SectionState `json:"state"`
	Detail string       `json:"detail,omitempty"`
}

// Degraded reports whether the section failed rather than came up empty.
func (s SectionStatus) Degraded() bool { return s.State == SectionDegraded }

// ExpansionResult is the composed enrichment for one article. It is built
// once per cache miss and never mutated afterwards.
type ExpansionResult struct {
	ArticleID string   `json:"article_id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary,omitempty"`
	Topics    []string `json:"topics,omitempty"`
	Sentiment string   `json:"sentiment,omitempty"`

	CredibilityScore float64                   `json:"credibility_score"`
	FactChecks       []Verdict                 `json:"fact_checks"`
	Recommendations  []RecommendationCandidate `json:"recommendations"`
	RelatedArticles  []RelatedArticleLink      `json:"related_articles"`

	FactsStatus           SectionStatus `json:"facts_status"`
	RecommendationsStatus SectionStatus `json:"recommendations_status"`
	RelatedStatus         SectionStatus `json:"related_status"`

	ProcessingTimeMs int64 `json:"processing_time_ms"`
	CacheHit         bool  `json:"cache_hit"`
}
