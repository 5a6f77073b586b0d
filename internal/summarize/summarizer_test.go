package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/versolabs/verso/internal/model"
)

type fakeProvider struct {
	summary string
	err     error
	calls   int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Summarize(ctx context.Context, article *model.Article, sentences int) (string, error) {
	f.calls++
	return f.summary, f.err
}

func testBody() string {
	return "First sentence here. Second sentence follows. Third one too. Fourth for depth. Fifth closes it. Sixth is extra."
}

func TestSentenceBudget(t *testing.T) {
	tests := []struct {
		level model.SummaryLevel
		want  int
	}{
		{model.SummaryBrief, 1},
		{model.SummaryStandard, 3},
		{model.SummaryDeep, 5},
		{"", 3}, // unknown falls back to standard
	}
	for _, tt := range tests {
		if got := SentenceBudget(tt.level); got != tt.want {
			t.Errorf("SentenceBudget(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLeadSentences(t *testing.T) {
	if got := LeadSentences(testBody(), 1); got != "First sentence here." {
		t.Errorf("One sentence: got %q", got)
	}

	got := LeadSentences(testBody(), 3)
	if !strings.HasSuffix(got, "Third one too.") {
		t.Errorf("Three sentences: got %q", got)
	}
	if strings.Contains(got, "Fourth") {
		t.Errorf("Budget exceeded: %q", got)
	}
}

func TestLeadSentences_ShortText(t *testing.T) {
	if got := LeadSentences("Only one sentence.", 5); got != "Only one sentence." {
		t.Errorf("Got %q", got)
	}
	if got := LeadSentences("No terminal punctuation", 2); got != "No terminal punctuation" {
		t.Errorf("Got %q", got)
	}
	if got := LeadSentences("", 3); got != "" {
		t.Errorf("Expected empty summary, got %q", got)
	}
}

func TestSummarize_HeuristicOnly(t *testing.T) {
	s := NewSummarizer(model.LLMConfig{})
	article := &model.Article{Body: testBody()}

	got := s.Summarize(context.Background(), article, model.SummaryBrief)
	if got != "First sentence here." {
		t.Errorf("Got %q", got)
	}
}

func TestSummarize_ProviderWins(t *testing.T) {
	provider := &fakeProvider{summary: "A model-written summary."}
	s := &Summarizer{provider: provider}

	got := s.Summarize(context.Background(), &model.Article{Body: testBody()}, model.SummaryStandard)
	if got != "A model-written summary." {
		t.Errorf("Got %q", got)
	}
	if provider.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", provider.calls)
	}
}

func TestSummarize_ProviderFailureFallsBack(t *testing.T) {
	s := &Summarizer{provider: &fakeProvider{err: errors.New("quota exceeded")}}

	got := s.Summarize(context.Background(), &model.Article{Body: testBody()}, model.SummaryBrief)
	if got != "First sentence here." {
		t.Errorf("Expected heuristic fallback, got %q", got)
	}
}

func TestSummarize_EmptyProviderOutputFallsBack(t *testing.T) {
	s := &Summarizer{provider: &fakeProvider{summary: "   "}}

	got := s.Summarize(context.Background(), &model.Article{Body: testBody()}, model.SummaryBrief)
	if got != "First sentence here." {
		t.Errorf("Expected heuristic fallback for blank provider output, got %q", got)
	}
}
