package domain

import "fmt"

// AccountCategory defines the fundamental accounting category of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// Categories lists every valid category in presentation order.
var Categories = []AccountCategory{Asset, Liability, Equity, Revenue, Expense}

// NormalSide indicates on which side an account's balance increases.
type NormalSide string

const (
	DebitNormal  NormalSide = "DEBIT"
	CreditNormal NormalSide = "CREDIT"
)

// IsValid reports whether c is one of the five known categories.
func (c AccountCategory) IsValid() bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalSide returns the side on which balances of this category increase.
// Asset and expense are debit-normal; the rest are credit-normal.
func (c AccountCategory) NormalSide() NormalSide {
	if c == Asset || c == Expense {
		return DebitNormal
	}
	return CreditNormal
}

// ParseAccountCategory converts user input into an AccountCategory.
func ParseAccountCategory(s string) (AccountCategory, error) {
	c := AccountCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown account category '%s'", s)
	}
	return c, nil
}

// Account represents a ledger account as resolved by the journal data source.
type Account struct {
	Code     string          `json:"code"`     // Unique human-readable identifier
	Name     string          `json:"name"`     // Display label
	Category AccountCategory `json:"category"` // Immutable once referenced by lines
}
