package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Claim represents a factual assertion extracted from article text
type Claim struct {
	Text      string `json:"text"`                // Normalized claim text
	Heuristic string `json:"heuristic,omitempty"` // Which extraction rule matched (e.g., "numeral", "keyword:signed")
	Sentence  int    `json:"sentence,omitempty"`  // Sentence index in source body (0-based)
	Offset    int    `json:"offset,omitempty"`    // Byte offset of the sentence in the body
	Salience  int    `json:"salience,omitempty"`  // Extraction salience, higher ranks earlier
}

// Hash returns a stable digest of the normalized claim text, used as the
// cache sub-key for per-claim verdicts.
func (c Claim) Hash() string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(c.Text))))
	return hex.EncodeToString(sum[:8])
}
