package model

// DomainClass categorizes an evidence source domain
type DomainClass string

const (
	DomainNews       DomainClass = "news"
	DomainAcademic   DomainClass = "academic"
	DomainGovernment DomainClass = "government"
	DomainFactCheck  DomainClass = "fact_check"
	DomainUnknown    DomainClass = "unknown"
)

// SearchHit is one result from the external evidence search collaborator.
type SearchHit struct {
	URL     string `json:"url"`
	Domain  string `json:"domain"`
	Snippet string `json:"snippet"`
}

// EvidenceSource is a classified, scored search hit tied to one claim.
type EvidenceSource struct {
	URL         string      `json:"url"`
	Domain      string      `json:"domain"`
	Class       DomainClass `json:"class"`
	Credibility float64     `json:"credibility"` // Domain trust score in [0,1]
	Supports    bool        `json:"supports"`    // Supporting vs contradicting the claim
}

// EvidenceRecord pairs a claim with the evidence gathered for it.
type EvidenceRecord struct {
	Claim   Claim            `json:"claim"`
	Sources []EvidenceSource `json:"sources"`
}

// VerdictLabel is the fact-check outcome for one claim
type VerdictLabel string

const (
	VerdictTrue       VerdictLabel = "true"
	VerdictFalse      VerdictLabel = "false"
	VerdictMixed      VerdictLabel = "mixed"
	VerdictUnverified VerdictLabel = "unverified"
)

// Verdict is the terminal fact-verification output for one claim.
// Confidence is 0 exactly when the verdict is Unverified.
type Verdict struct {
	Claim       string       `json:"claim"`
	Label       VerdictLabel `json:"verdict"`
	Confidence  float64      `json:"confidence"` // [0,1], capped below 1 by config
	Sources     []string     `json:"sources,omitempty"`
	Explanation string       `json:"explanation,omitempty"`
}
