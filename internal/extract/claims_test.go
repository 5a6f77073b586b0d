package extract

import (
	"strings"
	"testing"

	"github.com/versolabs/verso/internal/model"
)

func TestClaimExtractor_BasicExtraction(t *testing.T) {
	extractor := NewClaimExtractor(10)

	body := `30 countries signed a climate agreement in 2025. ` +
		`The deal was announced after two weeks of negotiation. ` +
		`Nobody really knows what comes next.`

	claims := extractor.Extract(body)

	if len(claims) < 2 {
		t.Fatalf("Expected at least 2 claims, got %d", len(claims))
	}

	foundNumeral := false
	for _, claim := range claims {
		if strings.Contains(claim.Text, "30 countries signed") {
			foundNumeral = true
			if claim.Heuristic != "numeral" {
				t.Errorf("Expected heuristic 'numeral', got %q", claim.Heuristic)
			}
		}
	}
	if !foundNumeral {
		t.Error("Expected to find the numeral claim about 30 countries")
	}
}

func TestClaimExtractor_EmptyText(t *testing.T) {
	extractor := NewClaimExtractor(10)

	for _, body := range []string{"", "   ", "\n\n"} {
		claims := extractor.Extract(body)
		if claims == nil {
			t.Error("Expected empty slice, got nil")
		}
		if len(claims) != 0 {
			t.Errorf("Expected no claims for %q, got %d", body, len(claims))
		}
	}
}

func TestClaimExtractor_CapsClaimCount(t *testing.T) {
	extractor := NewClaimExtractor(3)

	var sb strings.Builder
	sentences := []string{
		"The ministry announced that 100 schools opened in 2024.",
		"Researchers reported that 45 species were discovered in Peru.",
		"The senate approved the budget of 12 billion in April.",
		"Officials confirmed that 7 bridges were rebuilt last autumn.",
		"The company launched 3 satellites from the new site.",
	}
	for _, s := range sentences {
		sb.WriteString(s)
		sb.WriteString(" ")
	}

	claims := extractor.Extract(sb.String())
	if len(claims) > 3 {
		t.Errorf("Expected at most 3 claims, got %d", len(claims))
	}
	if len(claims) == 0 {
		t.Fatal("Expected some claims")
	}

	// Document order must survive the salience cut.
	for i := 1; i < len(claims); i++ {
		if claims[i].Sentence < claims[i-1].Sentence {
			t.Errorf("Claims out of document order: %d before %d", claims[i].Sentence, claims[i-1].Sentence)
		}
	}
}

func TestClaimExtractor_Dedupe(t *testing.T) {
	extractor := NewClaimExtractor(10)

	body := "The city counted 500 new residents this year. The city counted 500 new residents this year."
	claims := extractor.Extract(body)

	if len(claims) != 1 {
		t.Errorf("Expected 1 deduplicated claim, got %d", len(claims))
	}
}

func TestClaimHash_Stable(t *testing.T) {
	a := model.Claim{Text: "The treaty was signed by 12 states."}
	b := model.Claim{Text: "  the treaty was signed by 12 states.  "}

	if a.Hash() != b.Hash() {
		t.Error("Expected hash to ignore case and surrounding whitespace")
	}
	c := model.Claim{Text: "A different claim entirely, number 9."}
	if a.Hash() == c.Hash() {
		t.Error("Expected different claims to hash differently")
	}
}

func TestSplitSentences_SkipsFragments(t *testing.T) {
	sentences := splitSentences("Short. This sentence is long enough to be kept around! Ok.")
	if len(sentences) != 1 {
		t.Fatalf("Expected 1 sentence, got %d: %v", len(sentences), sentences)
	}
	if !strings.Contains(sentences[0], "long enough") {
		t.Errorf("Unexpected sentence kept: %q", sentences[0])
	}
}
