package verify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/versolabs/verso/internal/credibility"
	"github.com/versolabs/verso/internal/model"
)

// Searcher is the external evidence search collaborator.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchHit, error)
}

// confidenceDamping keeps single-source verdicts from reaching the cap:
// the winning side's weight share is computed against total weight plus
// this constant.
const confidenceDamping = 0.25

// Verifier turns claims into verdicts by querying the evidence search
// service, weighing hits by source credibility, and computing a
// weighted-majority outcome. Verification is parallel across claims,
// bounded by MaxConcurrent, with a per-claim deadline that degrades to
// Unverified instead of failing the request.
type Verifier struct {
	searcher Searcher
	table    *credibility.Table
	cfg      model.VerifyConfig
}

// NewVerifier creates a verifier with the given collaborators.
func NewVerifier(searcher Searcher, table *credibility.Table, cfg model.VerifyConfig) *Verifier {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 5
	}
	if cfg.MajorityRatio <= 1 {
		cfg.MajorityRatio = 1.5
	}
	if cfg.ConfidenceCap <= 0 || cfg.ConfidenceCap > 1 {
		cfg.ConfidenceCap = 0.95
	}
	return &Verifier{searcher: searcher, table: table, cfg: cfg}
}

// VerifyAll verifies every claim concurrently and returns verdicts in
// claim order.
func (v *Verifier) VerifyAll(ctx context.Context, claims []model.Claim) []model.Verdict {
	if len(claims) == 0 {
		return []model.Verdict{}
	}
	if v.cfg.MaxClaims > 0 && len(claims) > v.cfg.MaxClaims {
		claims = claims[:v.cfg.MaxClaims]
	}

	verdicts := make([]model.Verdict, len(claims))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, v.cfg.MaxConcurrent)

	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				verdicts[idx] = unverified(c, "verification cancelled")
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			verdicts[idx] = v.VerifyClaim(ctx, c)
		}(i, claim)
	}

	wg.Wait()

	return verdicts
}

// VerifyClaim verifies a single claim. A timed-out or failed search yields
// Unverified rather than an error.
func (v *Verifier) VerifyClaim(ctx context.Context, claim model.Claim) model.Verdict {
	claimCtx := ctx
	if v.cfg.ClaimTimeout > 0 {
		var cancel context.CancelFunc
		claimCtx, cancel = context.WithTimeout(ctx, v.cfg.ClaimTimeout)
		defer cancel()
	}

	record, err := v.Gather(claimCtx, claim)
	if err != nil {
		if claimCtx.Err() != nil {
			return unverified(claim, "verification timed out")
		}
		return unverified(claim, "evidence search unavailable")
	}

	return v.Decide(claim, record)
}

// Gather runs the search query for a claim and classifies each hit.
func (v *Verifier) Gather(ctx context.Context, claim model.Claim) (model.EvidenceRecord, error) {
	record := model.EvidenceRecord{Claim: claim}

	hits, err := v.searcher.Search(ctx, BuildQuery(claim.Text))
	if err != nil {
		return record, fmt.Errorf("search claim %s: %w", claim.Hash(), err)
	}

	if v.cfg.MaxHitsPerClaim > 0 && len(hits) > v.cfg.MaxHitsPerClaim {
		hits = hits[:v.cfg.MaxHitsPerClaim]
	}

	keywords := claimKeywords(claim.Text)
	for _, hit := range hits {
		domain := hit.Domain
		if domain == "" {
			domain = credibility.DomainOf(hit.URL)
		}

		// Hits sharing no keywords with the claim say nothing about it.
		overlap := keywordOverlap(keywords, hit.Snippet)
		if overlap == 0 {
			continue
		}

		record.Sources = append(record.Sources, model.EvidenceSource{
			URL:         hit.URL,
			Domain:      domain,
			Class:       v.table.Classify(domain),
			Credibility: v.table.Score(domain),
			Supports:    !contradicts(hit.Snippet),
		})
	}

	return record, nil
}

// Decide computes the verdict from gathered evidence. Only sources above
// the credibility floor count; the winning side must outweigh the other by
// the majority ratio, otherwise the verdict is Mixed.
func (v *Verifier) Decide(claim model.Claim, record model.EvidenceRecord) model.Verdict {
	minScore := v.table.MinScore()

	var supportWeight, contradictWeight float64
	var supportURLs, contradictURLs []string

	for _, source := range record.Sources {
		if source.Credibility < minScore {
			continue
		}
		if source.Supports {
			supportWeight += source.Credibility
			supportURLs = append(supportURLs, source.URL)
		} else {
			contradictWeight += source.Credibility
			contradictURLs = append(contradictURLs, source.URL)
		}
	}

	if supportWeight == 0 && contradictWeight == 0 {
		return unverified(claim, "no sources met the minimum credibility threshold")
	}

	total := supportWeight + contradictWeight
	confidence := func(winning float64) float64 {
		c := winning / (total + confidenceDamping)
		if c > v.cfg.ConfidenceCap {
			c = v.cfg.ConfidenceCap
		}
		return c
	}

	switch {
	case supportWeight > contradictWeight*v.cfg.MajorityRatio:
		return model.Verdict{
			Claim:      claim.Text,
			Label:      model.VerdictTrue,
			Confidence: confidence(supportWeight),
			Sources:    supportURLs,
			Explanation: fmt.Sprintf("%d supporting vs %d contradicting trusted sources (weight %.2f vs %.2f)",
				len(supportURLs), len(contradictURLs), supportWeight, contradictWeight),
		}
	case contradictWeight > supportWeight*v.cfg.MajorityRatio:
		return model.Verdict{
			Claim:      claim.Text,
			Label:      model.VerdictFalse,
			Confidence: confidence(contradictWeight),
			Sources:    contradictURLs,
			Explanation: fmt.Sprintf("%d contradicting vs %d supporting trusted sources (weight %.2f vs %.2f)",
				len(contradictURLs), len(supportURLs), contradictWeight, supportWeight),
		}
	default:
		winning := supportWeight
		if contradictWeight > winning {
			winning = contradictWeight
		}
		return model.Verdict{
			Claim:      claim.Text,
			Label:      model.VerdictMixed,
			Confidence: confidence(winning),
			Sources:    append(supportURLs, contradictURLs...),
			Explanation: fmt.Sprintf("trusted sources disagree: weight %.2f supporting vs %.2f contradicting",
				supportWeight, contradictWeight),
		}
	}
}

func unverified(claim model.Claim, reason string) model.Verdict {
	return model.Verdict{
		Claim:       claim.Text,
		Label:       model.VerdictUnverified,
		Confidence:  0,
		Explanation: reason,
	}
}

var queryStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "to": true, "for": true,
	"with": true, "that": true, "this": true, "is": true, "are": true,
	"was": true, "were": true, "has": true, "have": true, "had": true,
	"been": true, "its": true, "it": true, "as": true, "by": true,
	"at": true, "be": true, "will": true, "would": true,
}

var negationMarkers = []string{
	"not", "no evidence", "false", "denied", "denies", "debunked",
	"hoax", "misleading", "never", "refuted", "disputed", "untrue",
}

// BuildQuery derives a search query from claim text: the content words,
// in order, capped to keep queries short.
func BuildQuery(claimText string) string {
	words := contentWords(claimText)
	if len(words) > 8 {
		words = words[:8]
	}
	return strings.Join(words, " ")
}

func contentWords(text string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if word == "" || queryStopwords[word] {
			continue
		}
		words = append(words, word)
	}
	return words
}

func claimKeywords(text string) map[string]bool {
	keywords := make(map[string]bool)
	for _, word := range contentWords(text) {
		if len(word) >= 3 {
			keywords[word] = true
		}
	}
	return keywords
}

// keywordOverlap counts claim keywords appearing in the snippet.
func keywordOverlap(keywords map[string]bool, snippet string) int {
	snippetWords := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(snippet)) {
		snippetWords[strings.Trim(word, ".,;:!?\"'()[]")] = true
	}

	count := 0
	for keyword := range keywords {
		if snippetWords[keyword] {
			count++
		}
	}
	return count
}

// contradicts flags snippets carrying negation or debunk language.
func contradicts(snippet string) bool {
	lower := strings.ToLower(snippet)
	for _, marker := range negationMarkers {
		if marker == "not" {
			// Bare "not" needs word-boundary care to avoid "notable" etc.
			if containsWord(lower, "not") {
				return true
			}
			continue
		}
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	for _, f := range strings.Fields(text) {
		if strings.Trim(f, ".,;:!?\"'()[]") == word {
			return true
		}
	}
	return false
}
