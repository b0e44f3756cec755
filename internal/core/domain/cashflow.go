package domain

import "github.com/shopspring/decimal"

// ActivityType classifies an account for the cash flow summary.
type ActivityType string

const (
	ActivityCash      ActivityType = "cash"
	ActivityOperating ActivityType = "operating"
	ActivityInvesting ActivityType = "investing"
	ActivityFinancing ActivityType = "financing"
)

// ActivityClassifier maps an account to its cash flow activity. Cash and
// cash-equivalent accounts must be reported as ActivityCash. The boolean is
// false when the classifier has no mapping for the account.
type ActivityClassifier interface {
	ClassifyActivity(account Account) (ActivityType, bool)
}

// ActivityClassifierFunc adapts a plain function to ActivityClassifier.
type ActivityClassifierFunc func(account Account) (ActivityType, bool)

// ClassifyActivity calls f(account).
func (f ActivityClassifierFunc) ClassifyActivity(account Account) (ActivityType, bool) {
	return f(account)
}

// ActivityMapping binds an account code prefix to an activity. The longest
// matching prefix wins.
type ActivityMapping struct {
	CodePrefix string       `json:"codePrefix" mapstructure:"code_prefix"`
	Activity   ActivityType `json:"activity" mapstructure:"activity"`
}

// CashFlowLine is one account's contribution to an activity bucket.
type CashFlowLine struct {
	Account Account         `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// ActivityBucket sums net cash movement attributed to one activity.
type ActivityBucket struct {
	Activity ActivityType    `json:"activity"`
	Lines    []CashFlowLine  `json:"lines"`
	Total    decimal.Decimal `json:"total"`
}

// CashFlowSummary is the simplified three-bucket cash flow statement.
type CashFlowSummary struct {
	Period        Period          `json:"period"`
	Operating     ActivityBucket  `json:"operating"`
	Investing     ActivityBucket  `json:"investing"`
	Financing     ActivityBucket  `json:"financing"`
	NetCashChange decimal.Decimal `json:"netCashChange"`
	CashMovement  decimal.Decimal `json:"cashMovement"` // Direct sum over cash accounts
	Warnings      []string        `json:"warnings"`
}
