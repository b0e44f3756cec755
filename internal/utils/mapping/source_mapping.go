package mapping

import (
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/models"
)

// ToDomainLoan converts a model Loan to a domain LoanRecord
func ToDomainLoan(m models.Loan) domain.LoanRecord {
	return domain.LoanRecord{
		LoanID:       m.LoanID,
		BorrowerName: m.BorrowerName,
		Amount:       m.Amount,
		InterestRate: m.InterestRate,
		TermMonths:   m.TermMonths,
		Status:       m.Status,
		DisbursedOn:  m.DisbursedOn,
		Outstanding:  m.Outstanding,
	}
}

// ToDomainLoanSlice converts a slice of model Loans to domain LoanRecords
func ToDomainLoanSlice(ms []models.Loan) []domain.LoanRecord {
	ds := make([]domain.LoanRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}

// ToDomainApplication converts a model LoanApplication to a domain ApplicationRecord
func ToDomainApplication(m models.LoanApplication) domain.ApplicationRecord {
	return domain.ApplicationRecord{
		ApplicationID:   m.ApplicationID,
		ApplicantName:   m.ApplicantName,
		RequestedAmount: m.RequestedAmount,
		Purpose:         m.Purpose,
		Status:          m.Status,
		AppliedOn:       m.AppliedOn,
	}
}

// ToDomainApplicationSlice converts a slice of model LoanApplications to domain ApplicationRecords
func ToDomainApplicationSlice(ms []models.LoanApplication) []domain.ApplicationRecord {
	ds := make([]domain.ApplicationRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApplication(m)
	}
	return ds
}
