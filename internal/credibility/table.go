package credibility

import (
	"net/url"
	"strings"
	"sync"

	"github.com/versolabs/verso/internal/model"
)

// Table is the source credibility registry: it classifies evidence domains
// and resolves their trust scores from injected configuration. Lookups are
// read-only at request time; Reload swaps the configuration without
// disturbing in-flight requests.
type Table struct {
	mu           sync.RWMutex
	domainScores map[string]float64
	domainClass  map[string]model.DomainClass
	classScores  map[model.DomainClass]float64
	unknownScore float64
	minScore     float64
}

// NewTable builds a Table from configuration. A nil config falls back to
// the built-in defaults.
func NewTable(cfg *model.CredibilityConfig) *Table {
	if cfg == nil {
		cfg = &model.DefaultConfig().Credibility
	}

	t := &Table{}
	t.load(cfg)
	return t
}

func (t *Table) load(cfg *model.CredibilityConfig) {
	domainScores := make(map[string]float64, len(cfg.DomainScores))
	for domain, score := range cfg.DomainScores {
		domainScores[strings.ToLower(domain)] = score
	}

	domainClass := make(map[string]model.DomainClass, len(cfg.DomainClasses))
	for domain, class := range cfg.DomainClasses {
		domainClass[strings.ToLower(domain)] = parseClass(class)
	}

	classScores := make(map[model.DomainClass]float64, len(cfg.ClassScores))
	for class, score := range cfg.ClassScores {
		classScores[parseClass(class)] = score
	}

	t.mu.Lock()
	t.domainScores = domainScores
	t.domainClass = domainClass
	t.classScores = classScores
	t.unknownScore = cfg.UnknownScore
	t.minScore = cfg.MinScore
	t.mu.Unlock()
}

// Reload replaces the table contents from a fresh configuration.
func (t *Table) Reload(cfg *model.CredibilityConfig) {
	if cfg == nil {
		return
	}
	t.load(cfg)
}

// MinScore is the credibility floor below which evidence is discarded.
func (t *Table) MinScore() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.minScore
}

// Classify maps a domain to its class. Explicit entries win; otherwise
// TLD suffixes decide, defaulting to unknown.
func (t *Table) Classify(domain string) model.DomainClass {
	host := normalizeHost(domain)

	t.mu.RLock()
	defer t.mu.RUnlock()

	if class, ok := t.domainClass[host]; ok {
		return class
	}
	for mapped, class := range t.domainClass {
		if strings.HasSuffix(host, "."+mapped) {
			return class
		}
	}

	switch {
	case strings.HasSuffix(host, ".gov") || strings.Contains(host, ".gov."):
		return model.DomainGovernment
	case strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk"):
		return model.DomainAcademic
	case strings.HasSuffix(host, ".int"):
		return model.DomainGovernment
	}

	if _, ok := t.domainScores[host]; ok {
		return model.DomainNews
	}
	for scored := range t.domainScores {
		if strings.HasSuffix(host, "."+scored) {
			return model.DomainNews
		}
	}

	return model.DomainUnknown
}

// Score resolves the trust score for a domain: explicit entry, then suffix
// match, then the class default, then the unknown-domain score.
func (t *Table) Score(domain string) float64 {
	host := normalizeHost(domain)

	t.mu.RLock()
	if score, ok := t.domainScores[host]; ok {
		t.mu.RUnlock()
		return score
	}
	for scored, score := range t.domainScores {
		if strings.HasSuffix(host, "."+scored) {
			t.mu.RUnlock()
			return score
		}
	}
	t.mu.RUnlock()

	class := t.Classify(host)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if score, ok := t.classScores[class]; ok {
		return score
	}
	return t.unknownScore
}

// Trusted reports whether the domain clears the credibility floor.
func (t *Table) Trusted(domain string) bool {
	return t.Score(domain) >= t.MinScore()
}

// DomainOf extracts the host from a URL for classification.
func DomainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return normalizeHost(rawURL)
	}
	return normalizeHost(parsed.Host)
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	host = strings.TrimPrefix(host, "www.")
	return host
}

func parseClass(class string) model.DomainClass {
	switch strings.ToLower(class) {
	case "news":
		return model.DomainNews
	case "academic":
		return model.DomainAcademic
	case "government":
		return model.DomainGovernment
	case "fact_check", "factcheck":
		return model.DomainFactCheck
	default:
		return model.DomainUnknown
	}
}
