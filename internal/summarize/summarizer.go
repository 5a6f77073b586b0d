// Package summarize produces the article summary for an expansion result.
// The heuristic lead-sentence summarizer always works; an OpenAI-compatible
// provider can replace it when configured, and any provider failure falls
// back to the heuristic. Summaries never influence verdicts or scores.
package summarize

import (
	"context"
	"strings"

	"github.com/versolabs/verso/internal/logger"
	"github.com/versolabs/verso/internal/model"
)

// Provider generates a model-written summary.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, article *model.Article, sentences int) (string, error)
}

// Summarizer picks between the configured provider and the heuristic.
type Summarizer struct {
	provider Provider
}

// NewSummarizer builds a summarizer from configuration. An empty provider
// name means heuristic-only.
func NewSummarizer(cfg model.LLMConfig) *Summarizer {
	s := &Summarizer{}

	if cfg.Provider == "openai" {
		provider, err := NewOpenAIProvider(cfg)
		if err != nil {
			logger.Log.WithError(err).Warn("summary provider unavailable, using heuristic")
		} else {
			s.provider = provider
		}
	}

	return s
}

// SentenceBudget maps a summary level to its sentence count.
func SentenceBudget(level model.SummaryLevel) int {
	switch level {
	case model.SummaryBrief:
		return 1
	case model.SummaryDeep:
		return 5
	default:
		return 3
	}
}

// Summarize returns the summary for the article at the requested level.
// Never fails: provider errors degrade to the heuristic output.
func (s *Summarizer) Summarize(ctx context.Context, article *model.Article, level model.SummaryLevel) string {
	budget := SentenceBudget(level)

	if s.provider != nil {
		summary, err := s.provider.Summarize(ctx, article, budget)
		if err != nil {
			logger.Log.WithError(err).WithField("provider", s.provider.Name()).
				Warn("summary generation failed, using heuristic")
		} else if strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary)
		}
	}

	return LeadSentences(article.Body, budget)
}

// LeadSentences returns the first n sentences of the text, the classic
// news-wire fallback summary.
func LeadSentences(text string, n int) string {
	if n <= 0 {
		n = 1
	}

	text = strings.Join(strings.Fields(text), " ")

	var sentences []string
	var current strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || runes[i+1] == ' ' {
				sentence := strings.TrimSpace(current.String())
				if sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
				if len(sentences) == n {
					break
				}
			}
		}
	}
	if len(sentences) < n {
		if rest := strings.TrimSpace(current.String()); rest != "" {
			sentences = append(sentences, rest)
		}
	}

	return strings.Join(sentences, " ")
}
