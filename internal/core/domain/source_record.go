package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind discriminates the variants of LedgerSourceRecord.
type SourceKind string

const (
	SourceLoan        SourceKind = "LOAN"
	SourceApplication SourceKind = "APPLICATION"
)

// LedgerSourceRecord is a business record that feeds the loan ledger. It is a
// closed sum type: the only implementations are LoanRecord and
// ApplicationRecord.
type LedgerSourceRecord interface {
	Kind() SourceKind
	SourceID() string
	OccurredOn() time.Time
	Principal() decimal.Decimal
	isLedgerSource()
}

// LoanRecord is a disbursed loan.
type LoanRecord struct {
	LoanID       string          `json:"loanID"`
	BorrowerName string          `json:"borrowerName"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TermMonths   int             `json:"termMonths"`
	Status       string          `json:"status"`
	DisbursedOn  time.Time       `json:"disbursedOn"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// ApplicationRecord is a loan application that has not been disbursed.
type ApplicationRecord struct {
	ApplicationID   string          `json:"applicationID"`
	ApplicantName   string          `json:"applicantName"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	Purpose         string          `json:"purpose"`
	Status          string          `json:"status"`
	AppliedOn       time.Time       `json:"appliedOn"`
}

// Kind implements LedgerSourceRecord.
func (r LoanRecord) Kind() SourceKind { return SourceLoan }

// SourceID implements LedgerSourceRecord.
func (r LoanRecord) SourceID() string { return r.LoanID }

// OccurredOn implements LedgerSourceRecord.
func (r LoanRecord) OccurredOn() time.Time { return r.DisbursedOn }

// Principal implements LedgerSourceRecord.
func (r LoanRecord) Principal() decimal.Decimal { return r.Amount }

func (LoanRecord) isLedgerSource() {}

// Kind implements LedgerSourceRecord.
func (r ApplicationRecord) Kind() SourceKind { return SourceApplication }

// SourceID implements LedgerSourceRecord.
func (r ApplicationRecord) SourceID() string { return r.ApplicationID }

// OccurredOn implements LedgerSourceRecord.
func (r ApplicationRecord) OccurredOn() time.Time { return r.AppliedOn }

// Principal implements LedgerSourceRecord.
func (r ApplicationRecord) Principal() decimal.Decimal { return r.RequestedAmount }

func (ApplicationRecord) isLedgerSource() {}
