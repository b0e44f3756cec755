package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents a row of the loans table.
type Loan struct {
	LoanID       string          `db:"loan_id"`
	BorrowerName string          `db:"borrower_name"`
	Amount       decimal.Decimal `db:"amount"`
	InterestRate decimal.Decimal `db:"interest_rate"`
	TermMonths   int             `db:"term_months"`
	Status       string          `db:"status"`
	DisbursedOn  time.Time       `db:"disbursed_on"`
	Outstanding  decimal.Decimal `db:"outstanding"`
}

// LoanApplication represents a row of the loan_applications table.
type LoanApplication struct {
	ApplicationID   string          `db:"application_id"`
	ApplicantName   string          `db:"applicant_name"`
	RequestedAmount decimal.Decimal `db:"requested_amount"`
	Purpose         string          `db:"purpose"`
	Status          string          `db:"status"`
	AppliedOn       time.Time       `db:"applied_on"`
}
