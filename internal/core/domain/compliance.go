package domain

// ComplianceRuleOutcome records how a single rule evaluated.
type ComplianceRuleOutcome struct {
	Name    string `json:"name"`
	Check   string `json:"check"`
	Passed  bool   `json:"passed"`
	Points  int    `json:"points"`
	Awarded int    `json:"awarded"`
}

// ComplianceResult is the score for one compliance scheme.
type ComplianceResult struct {
	Scheme   string                  `json:"scheme"`
	Period   Period                  `json:"period"`
	Score    int                     `json:"score"` // 0-100
	Issues   []string                `json:"issues"`
	Outcomes []ComplianceRuleOutcome `json:"outcomes"`
}
