package dto

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodQuery_Period(t *testing.T) {
	p, err := PeriodQuery{FromDate: "2024-01-01", ToDate: "2024-01-31"}.Period()
	require.NoError(t, err)
	assert.True(t, p.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.End.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	// A single day is a valid period
	p, err = PeriodQuery{FromDate: "2024-01-31", ToDate: "2024-01-31"}.Period()
	require.NoError(t, err)
	assert.True(t, p.Contains(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))

	_, err = PeriodQuery{FromDate: "2024-02-01", ToDate: "2024-01-31"}.Period()
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = PeriodQuery{FromDate: "01/02/2024", ToDate: "2024-01-31"}.Period()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTrialBalanceQuery_CategoryFilter(t *testing.T) {
	assert.Nil(t, TrialBalanceQuery{}.CategoryFilter())
	c := TrialBalanceQuery{Category: "ASSET"}.CategoryFilter()
	require.NotNil(t, c)
	assert.Equal(t, domain.Asset, *c)
}

func TestToTrialBalanceResponse_InclusiveToDate(t *testing.T) {
	tb := &domain.TrialBalance{
		Period:      domain.NewPeriodInclusive(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)),
		TotalDebit:  decimal.NewFromInt(10),
		TotalCredit: decimal.NewFromInt(10),
		IsBalanced:  true,
	}

	resp := ToTrialBalanceResponse(tb)

	assert.Equal(t, "2024-01-01", resp.FromDate)
	assert.Equal(t, "2024-01-31", resp.ToDate)
	assert.NotNil(t, resp.Rows)
	assert.NotNil(t, resp.Warnings)
	assert.Nil(t, resp.Category)
}

func TestToLedgerSourceResponse_Variants(t *testing.T) {
	loan := ToLedgerSourceResponse(domain.LoanRecord{
		LoanID: "L1", BorrowerName: "Ana", Amount: decimal.NewFromInt(1000), TermMonths: 12,
		Status: "ACTIVE", DisbursedOn: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, "LOAN", loan.Kind)
	assert.Equal(t, "Ana", loan.Name)
	assert.Equal(t, "2024-03-05", loan.Date)
	require.NotNil(t, loan.TermMonths)
	assert.Equal(t, 12, *loan.TermMonths)
	assert.Nil(t, loan.Purpose)

	app := ToLedgerSourceResponse(domain.ApplicationRecord{
		ApplicationID: "A1", ApplicantName: "Ben", RequestedAmount: decimal.NewFromInt(500), Purpose: "equipment",
		AppliedOn: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, "APPLICATION", app.Kind)
	assert.True(t, decimal.NewFromInt(500).Equal(app.Principal))
	require.NotNil(t, app.Purpose)
	assert.Equal(t, "equipment", *app.Purpose)
	assert.Nil(t, app.TermMonths)
}

func TestIntegrityCheckRequest_AsOfDate(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 45, 0, 0, time.FixedZone("PHT", 8*3600))

	asOf, err := IntegrityCheckRequest{}.AsOfDate(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), asOf)

	asOf, err = IntegrityCheckRequest{AsOf: "2024-01-31"}.AsOfDate(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), asOf)

	_, err = IntegrityCheckRequest{AsOf: "31/01/2024"}.AsOfDate(now)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	resp := ToIntegrityCheckResponse(&domain.IntegrityRequest{TaskID: "t-1", Queue: "default", WorkplaceID: "wp-1", AsOf: asOf})
	assert.Equal(t, "2024-01-31", resp.AsOf)
}
