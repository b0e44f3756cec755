package dto

import (
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListLedgerSourcesParams defines parameters for listing ledger sources with token-based pagination
type ListLedgerSourcesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// LedgerSourceResponse is one loan or loan application. The loan fields are
// only present for kind LOAN and Purpose only for kind APPLICATION.
type LedgerSourceResponse struct {
	Kind         string           `json:"kind"`
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Date         string           `json:"date"`
	Principal    decimal.Decimal  `json:"principal"`
	Status       string           `json:"status"`
	InterestRate *decimal.Decimal `json:"interestRate,omitempty"`
	TermMonths   *int             `json:"termMonths,omitempty"`
	Outstanding  *decimal.Decimal `json:"outstanding,omitempty"`
	Purpose      *string          `json:"purpose,omitempty"`
}

// ListLedgerSourcesResponse wraps a page of ledger sources
type ListLedgerSourcesResponse struct {
	Sources   []LedgerSourceResponse `json:"sources"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToLedgerSourceResponse converts either source variant to its response DTO
func ToLedgerSourceResponse(r domain.LedgerSourceRecord) LedgerSourceResponse {
	resp := LedgerSourceResponse{
		Kind:      string(r.Kind()),
		ID:        r.SourceID(),
		Date:      r.OccurredOn().Format(DateFormat),
		Principal: r.Principal(),
	}
	switch v := r.(type) {
	case domain.LoanRecord:
		resp.Name = v.BorrowerName
		resp.Status = v.Status
		resp.InterestRate = &v.InterestRate
		resp.TermMonths = &v.TermMonths
		resp.Outstanding = &v.Outstanding
	case domain.ApplicationRecord:
		resp.Name = v.ApplicantName
		resp.Status = v.Status
		resp.Purpose = &v.Purpose
	}
	return resp
}

// ToListLedgerSourcesResponse converts a page of sources to its response DTO
func ToListLedgerSourcesResponse(records []domain.LedgerSourceRecord, nextToken *string) ListLedgerSourcesResponse {
	resp := ListLedgerSourcesResponse{
		Sources:   make([]LedgerSourceResponse, 0, len(records)),
		NextToken: nextToken,
	}
	for _, r := range records {
		resp.Sources = append(resp.Sources, ToLedgerSourceResponse(r))
	}
	return resp
}
