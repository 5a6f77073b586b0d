package extract

import (
	"sort"
	"strings"
	"unicode"

	"github.com/versolabs/verso/internal/model"
)

// ClaimExtractor pulls candidate factual claims out of article body text
// using pattern heuristics: numerals, proper nouns, and assertive verb
// phrases. A precision/cost tradeoff, not a correctness guarantee.
type ClaimExtractor struct {
	keywords  []string
	maxClaims int
}

// NewClaimExtractor creates an extractor capping output at maxClaims.
func NewClaimExtractor(maxClaims int) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = 10
	}
	return &ClaimExtractor{
		maxClaims: maxClaims,
		keywords: []string{
			"according to", "announced", "reported", "confirmed", "signed",
			"agreed", "approved", "established", "founded", "created",
			"discovered", "launched", "reached", "rose", "fell", "increased",
			"decreased", "won", "elected", "passed", "ruled", "banned",
			"is the first", "is the largest", "will", "shall", "must",
		},
	}
}

// Extract returns an ordered, deduplicated, capped sequence of claims.
// Empty or unparseable text yields an empty slice, never an error.
func (e *ClaimExtractor) Extract(body string) []model.Claim {
	body = strings.TrimSpace(body)
	if body == "" {
		return []model.Claim{}
	}

	sentences := splitSentences(body)

	var claims []model.Claim
	offset := 0
	for i, sentence := range sentences {
		salience, heuristic := e.score(sentence)
		if salience > 0 {
			claims = append(claims, model.Claim{
				Text:      strings.TrimSpace(sentence),
				Heuristic: heuristic,
				Sentence:  i,
				Offset:    offset,
				Salience:  salience,
			})
		}
		offset += len(sentence) + 1
	}

	claims = dedupeClaims(claims)

	// Keep the most salient, then restore document order.
	sort.SliceStable(claims, func(a, b int) bool {
		return claims[a].Salience > claims[b].Salience
	})
	if len(claims) > e.maxClaims {
		claims = claims[:e.maxClaims]
	}
	sort.SliceStable(claims, func(a, b int) bool {
		return claims[a].Sentence < claims[b].Sentence
	})

	if claims == nil {
		return []model.Claim{}
	}
	return claims
}

// score rates one sentence. Numerals weigh most: they usually mark the
// checkable assertions.
func (e *ClaimExtractor) score(sentence string) (int, string) {
	lower := strings.ToLower(sentence)
	salience := 0
	heuristic := ""

	if containsNumeral(sentence) {
		salience += 2
		heuristic = "numeral"
	}

	for _, keyword := range e.keywords {
		if strings.Contains(lower, keyword) {
			salience++
			if heuristic == "" {
				heuristic = "keyword:" + keyword
			}
			break // Only match once per sentence
		}
	}

	if properNounCount(sentence) >= 2 {
		salience++
		if heuristic == "" {
			heuristic = "proper_nouns"
		}
	}

	return salience, heuristic
}

func containsNumeral(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// properNounCount counts capitalized words past the sentence start.
func properNounCount(sentence string) int {
	words := strings.Fields(sentence)
	count := 0
	for i, word := range words {
		if i == 0 {
			continue
		}
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if trimmed == "" {
			continue
		}
		first := []rune(trimmed)[0]
		if unicode.IsUpper(first) {
			count++
		}
	}
	return count
}

// splitSentences splits text into sentences (simple heuristic)
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\t' {
				appendSentence(&sentences, current.String())
				current.Reset()
			}
		}
	}

	appendSentence(&sentences, current.String())

	return sentences
}

func appendSentence(sentences *[]string, raw string) {
	sentence := strings.TrimSpace(raw)
	if len(sentence) >= 20 && len(sentence) <= 500 {
		*sentences = append(*sentences, sentence)
	}
}

// dedupeClaims removes duplicate claims, keeping first occurrence.
func dedupeClaims(claims []model.Claim) []model.Claim {
	seen := make(map[string]bool)
	var unique []model.Claim

	for _, claim := range claims {
		key := strings.ToLower(strings.TrimSpace(claim.Text))
		if !seen[key] {
			seen[key] = true
			unique = append(unique, claim)
		}
	}

	return unique
}
