package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetailLevel toggles whether zero-balance accounts appear on a statement.
type DetailLevel string

const (
	DetailSummary  DetailLevel = "summary"
	DetailDetailed DetailLevel = "detailed"
)

// CurrentEarningsCode identifies the synthetic equity row that carries
// cumulative revenue minus expenses on the balance sheet.
const CurrentEarningsCode = "__current_earnings__"

// AccountBalance is the derived per-account aggregate. NetBalance follows the
// account's normal side.
type AccountBalance struct {
	Account     Account         `json:"account"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	NetBalance  decimal.Decimal `json:"netBalance"`
}

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists per-account debit and credit totals for a period.
type TrialBalance struct {
	Period      Period            `json:"period"`
	Category    *AccountCategory  `json:"category,omitempty"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Difference  decimal.Decimal   `json:"difference"` // TotalDebit - TotalCredit
	IsBalanced  bool              `json:"isBalanced"`
	Warnings    []string          `json:"warnings"`
}

// StatementSection groups balances of one category with their total.
type StatementSection struct {
	Category AccountCategory  `json:"category"`
	Accounts []AccountBalance `json:"accounts"`
	Total    decimal.Decimal  `json:"total"`
}

// BalanceSheet is the point-in-time statement of financial position.
type BalanceSheet struct {
	AsOf                   time.Time        `json:"asOf"`
	Detail                 DetailLevel      `json:"detail"`
	Assets                 StatementSection `json:"assets"`
	Liabilities            StatementSection `json:"liabilities"`
	Equity                 StatementSection `json:"equity"`
	TotalAssets            decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities       decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity            decimal.Decimal  `json:"totalEquity"`
	TotalLiabilitiesEquity decimal.Decimal  `json:"totalLiabilitiesEquity"`
	IsBalanced             bool             `json:"isBalanced"`
	Warnings               []string         `json:"warnings"`
}

// IncomeStatement reports revenue and expenses for a period.
type IncomeStatement struct {
	Period              Period           `json:"period"`
	Revenue             StatementSection `json:"revenue"`
	Expenses            StatementSection `json:"expenses"`
	TotalRevenue        decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses       decimal.Decimal  `json:"totalExpenses"`
	NetIncome           decimal.Decimal  `json:"netIncome"`
	NetIncomePercentage decimal.Decimal  `json:"netIncomePercentage"`
	Warnings            []string         `json:"warnings"`
}
