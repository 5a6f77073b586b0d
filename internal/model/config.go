package model

import "time"

// Config is the full configuration tree for the expansion service. Every
// threshold, timeout, TTL and cap the pipeline uses lives here so the
// orchestrator stays testable with injected fakes.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Credibility CredibilityConfig `yaml:"credibility" mapstructure:"credibility"`
	Verify      VerifyConfig      `yaml:"verify" mapstructure:"verify"`
	Recommend   RecommendConfig   `yaml:"recommend" mapstructure:"recommend"`
	Related     RelatedConfig     `yaml:"related" mapstructure:"related"`
	Stages      StageConfig       `yaml:"stages" mapstructure:"stages"`
	Upstream    UpstreamConfig    `yaml:"upstream" mapstructure:"upstream"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig configures outbound HTTP behavior shared by the resolver and
// the upstream clients.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ServerConfig configures the HTTP API surface.
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// CacheConfig configures the result cache and its per-category TTLs.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	DiskDir string `yaml:"disk_dir" mapstructure:"disk_dir"` // Empty disables the disk layer

	ExpansionTTL       time.Duration `yaml:"expansion_ttl" mapstructure:"expansion_ttl"`
	FactsTTL           time.Duration `yaml:"facts_ttl" mapstructure:"facts_ttl"`
	RecommendationsTTL time.Duration `yaml:"recommendations_ttl" mapstructure:"recommendations_ttl"`
	RelatedTTL         time.Duration `yaml:"related_ttl" mapstructure:"related_ttl"`
	TrendingTTL        time.Duration `yaml:"trending_ttl" mapstructure:"trending_ttl"`
}

// CredibilityConfig is the injected source credibility table.
type CredibilityConfig struct {
	// MinScore is the credibility floor; evidence below it is discarded.
	MinScore float64 `yaml:"min_score" mapstructure:"min_score"`
	// DomainScores maps exact domains (and suffixes, e.g. "gov.uk") to
	// trust scores in [0,1].
	DomainScores map[string]float64 `yaml:"domain_scores" mapstructure:"domain_scores"`
	// DomainClasses maps domains to an explicit class when the suffix
	// heuristics are not enough.
	DomainClasses map[string]string `yaml:"domain_classes" mapstructure:"domain_classes"`
	// ClassScores is the default score per domain class for domains with
	// no explicit entry.
	ClassScores map[string]float64 `yaml:"class_scores" mapstructure:"class_scores"`
	// UnknownScore applies to domains that match nothing above.
	UnknownScore float64 `yaml:"unknown_score" mapstructure:"unknown_score"`
}

// VerifyConfig tunes the evidence verifier.
type VerifyConfig struct {
	MaxClaims       int           `yaml:"max_claims" mapstructure:"max_claims"`             // Cap on claims verified per article
	MaxConcurrent   int           `yaml:"max_concurrent" mapstructure:"max_concurrent"`     // Bound on parallel claim verifications
	ClaimTimeout    time.Duration `yaml:"claim_timeout" mapstructure:"claim_timeout"`       // Per-claim deadline; expiry means Unverified
	MajorityRatio   float64       `yaml:"majority_ratio" mapstructure:"majority_ratio"`     // Winning side must outweigh the other by this factor
	ConfidenceCap   float64       `yaml:"confidence_cap" mapstructure:"confidence_cap"`     // Heuristic evidence never yields full certainty
	MaxHitsPerClaim int           `yaml:"max_hits_per_claim" mapstructure:"max_hits_per_claim"`
}

// RecommendConfig tunes the topic relevance matcher.
type RecommendConfig struct {
	TopK           int                 `yaml:"top_k" mapstructure:"top_k"`
	MinResults     int                 `yaml:"min_results" mapstructure:"min_results"`         // Strategy chain runs until this many candidates
	RelevanceFloor float64             `yaml:"relevance_floor" mapstructure:"relevance_floor"` // Candidates below it are dropped, never zero-scored
	MaxPerCategory int                 `yaml:"max_per_category" mapstructure:"max_per_category"`
	CategoryMap    map[string][]string `yaml:"category_map" mapstructure:"category_map"` // Curated topic -> catalog categories
}

// RelatedConfig tunes the related-content finder.
type RelatedConfig struct {
	Limit int `yaml:"limit" mapstructure:"limit"`
}

// StageConfig holds the fan-out deadlines.
type StageConfig struct {
	FactsTimeout           time.Duration `yaml:"facts_timeout" mapstructure:"facts_timeout"`
	RecommendationsTimeout time.Duration `yaml:"recommendations_timeout" mapstructure:"recommendations_timeout"`
	RelatedTimeout         time.Duration `yaml:"related_timeout" mapstructure:"related_timeout"`
	OverallTimeout         time.Duration `yaml:"overall_timeout" mapstructure:"overall_timeout"`
}

// UpstreamConfig points at the external collaborators.
type UpstreamConfig struct {
	SearchBaseURL  string  `yaml:"search_base_url" mapstructure:"search_base_url"`
	CatalogBaseURL string  `yaml:"catalog_base_url" mapstructure:"catalog_base_url"`
	RelatedBaseURL string  `yaml:"related_base_url" mapstructure:"related_base_url"`
	StoreBaseURL   string  `yaml:"store_base_url" mapstructure:"store_base_url"`
	RatePerSecond  float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"` // Per-domain limit on search traffic
	RateBurst      int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LLMConfig configures the optional summary provider. Empty provider means
// the heuristic summarizer runs alone.
type LLMConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"` // "openai" or "" (heuristic only)
	Model     string        `yaml:"model" mapstructure:"model"`
	APIKey    string        `yaml:"-" mapstructure:"api_key"` // Never serialized to disk
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the representative defaults. All of them are
// tunable; none are load-bearing beyond illustrating intended behavior.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Verso/0.1 (+https://github.com/versolabs/verso)",
			MaxBodyBytes: 2_000_000,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:            true,
			ExpansionTTL:       30 * time.Minute,
			FactsTTL:           60 * time.Minute, // Facts change slowly
			RecommendationsTTL: 30 * time.Minute,
			RelatedTTL:         30 * time.Minute,
			TrendingTTL:        5 * time.Minute,
		},
		Credibility: CredibilityConfig{
			MinScore: 0.60,
			DomainScores: map[string]float64{
				"reuters.com":        0.95,
				"apnews.com":         0.95,
				"bbc.com":            0.90,
				"bbc.co.uk":          0.90,
				"nature.com":         0.95,
				"science.org":        0.95,
				"who.int":            0.95,
				"un.org":             0.90,
				"snopes.com":         0.85,
				"factcheck.org":      0.85,
				"politifact.com":     0.85,
				"en.wikipedia.org":   0.80,
				"britannica.com":     0.85,
				"nytimes.com":        0.85,
				"theguardian.com":    0.85,
				"washingtonpost.com": 0.85,
			},
			DomainClasses: map[string]string{
				"snopes.com":     string(DomainFactCheck),
				"factcheck.org":  string(DomainFactCheck),
				"politifact.com": string(DomainFactCheck),
			},
			ClassScores: map[string]float64{
				string(DomainGovernment): 0.90,
				string(DomainAcademic):   0.85,
				string(DomainFactCheck):  0.85,
				string(DomainNews):       0.70,
				string(DomainUnknown):    0.30,
			},
			UnknownScore: 0.30,
		},
		Verify: VerifyConfig{
			MaxClaims:       10,
			MaxConcurrent:   5,
			ClaimTimeout:    2 * time.Second,
			MajorityRatio:   1.5,
			ConfidenceCap:   0.95,
			MaxHitsPerClaim: 8,
		},
		Recommend: RecommendConfig{
			TopK:           5,
			MinResults:     3,
			RelevanceFloor: 0.2,
			MaxPerCategory: 2,
			CategoryMap: map[string][]string{
				"climate":     {"science", "environment"},
				"environment": {"science", "environment"},
				"economy":     {"business", "finance"},
				"finance":     {"business", "finance"},
				"health":      {"health", "science"},
				"technology":  {"technology"},
				"politics":    {"politics", "history"},
				"sports":      {"sports"},
				"science":     {"science"},
			},
		},
		Related: RelatedConfig{
			Limit: 5,
		},
		Stages: StageConfig{
			FactsTimeout:           3 * time.Second,
			RecommendationsTimeout: 1 * time.Second,
			RelatedTimeout:         1 * time.Second,
			OverallTimeout:         5 * time.Second,
		},
		Upstream: UpstreamConfig{
			RatePerSecond: 2,
			RateBurst:     5,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30 * time.Second,
			MaxTokens: 500,
		},
	}
}
