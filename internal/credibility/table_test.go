package credibility

import (
	"testing"

	"github.com/versolabs/verso/internal/model"
)

func TestTable_Score(t *testing.T) {
	table := NewTable(nil)

	tests := []struct {
		domain string
		want   float64
	}{
		{"reuters.com", 0.95},
		{"www.reuters.com", 0.95}, // www stripped
		{"bbc.co.uk:443", 0.90},   // port stripped
		{"news.bbc.co.uk", 0.90},  // suffix match
		{"cdc.gov", 0.90},         // class default for government
		{"random-blog.example", 0.30},
	}

	for _, tt := range tests {
		if got := table.Score(tt.domain); got != tt.want {
			t.Errorf("Score(%q) = %.2f, want %.2f", tt.domain, got, tt.want)
		}
	}
}

func TestTable_Classify(t *testing.T) {
	table := NewTable(nil)

	tests := []struct {
		domain string
		want   model.DomainClass
	}{
		{"snopes.com", model.DomainFactCheck}, // explicit entry
		{"cdc.gov", model.DomainGovernment},
		{"data.cdc.gov", model.DomainGovernment},
		{"mit.edu", model.DomainAcademic},
		{"ox.ac.uk", model.DomainAcademic},
		{"who.int", model.DomainGovernment},
		{"reuters.com", model.DomainNews}, // scored, so news
		{"random-blog.example", model.DomainUnknown},
	}

	for _, tt := range tests {
		if got := table.Classify(tt.domain); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.domain, got, tt.want)
		}
	}
}

func TestTable_Trusted(t *testing.T) {
	table := NewTable(nil)

	if !table.Trusted("reuters.com") {
		t.Error("Expected reuters.com to be trusted")
	}
	if table.Trusted("random-blog.example") {
		t.Error("Expected unknown domain to be untrusted")
	}
}

func TestTable_Reload(t *testing.T) {
	table := NewTable(nil)

	if table.Score("example.org") != 0.30 {
		t.Fatalf("Unexpected initial score: %.2f", table.Score("example.org"))
	}

	table.Reload(&model.CredibilityConfig{
		MinScore:     0.5,
		DomainScores: map[string]float64{"example.org": 0.88},
		UnknownScore: 0.1,
	})

	if got := table.Score("example.org"); got != 0.88 {
		t.Errorf("Score after reload = %.2f, want 0.88", got)
	}
	if got := table.MinScore(); got != 0.5 {
		t.Errorf("MinScore after reload = %.2f, want 0.5", got)
	}
	if got := table.Score("reuters.com"); got != 0.1 {
		t.Errorf("Expected old entries gone after reload, got %.2f", got)
	}
}

func TestDomainOf(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://www.reuters.com/world/article-1", "reuters.com"},
		{"http://bbc.co.uk:8080/news", "bbc.co.uk"},
		{"apnews.com", "apnews.com"},
	}

	for _, tt := range tests {
		if got := DomainOf(tt.rawURL); got != tt.want {
			t.Errorf("DomainOf(%q) = %q, want %q", tt.rawURL, got, tt.want)
		}
	}
}
