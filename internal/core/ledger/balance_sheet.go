package ledger

import (
	"fmt"
	"iter"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeBalanceSheet builds the statement of financial position from every
// posted line dated on or before asOf. Balances are cumulative, not
// period-scoped.
//
// Revenue and expense accounts are not listed individually; their cumulative
// net (revenue minus expenses) is carried as a single equity row coded
// domain.CurrentEarningsCode so that a consistent ledger satisfies
// assets = liabilities + equity before any closing entry is booked.
//
// In summary mode zero-balance accounts are dropped before grouping; in
// detailed mode they are kept.
func ComputeBalanceSheet(lines iter.Seq[domain.LedgerLine], asOf time.Time, detail domain.DetailLevel) (*domain.BalanceSheet, error) {
	if asOf.IsZero() {
		return nil, apperrors.NewInputError("asOf", "date is required")
	}
	switch detail {
	case domain.DetailSummary, domain.DetailDetailed:
	case "":
		detail = domain.DetailSummary
	default:
		return nil, apperrors.NewInputError("detail", fmt.Sprintf("unknown detail level '%s'", detail))
	}

	cutoff := dayAfter(asOf)

	acc := newAccumulator(true)
	err := acc.consume(lines, func(l domain.LedgerLine) bool {
		return l.EntryDate.Before(cutoff)
	})
	if err != nil {
		return nil, err
	}
	return balanceSheetFrom(acc, asOf, detail)
}

// dayAfter returns midnight of the day following asOf, the exclusive cutoff
// of a position as of that day.
func dayAfter(asOf time.Time) time.Time {
	return time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location()).AddDate(0, 0, 1)
}

func balanceSheetFrom(acc *accumulator, asOf time.Time, detail domain.DetailLevel) (*domain.BalanceSheet, error) {
	bs := &domain.BalanceSheet{
		AsOf:        asOf,
		Detail:      detail,
		Assets:      newSection(domain.Asset),
		Liabilities: newSection(domain.Liability),
		Equity:      newSection(domain.Equity),
	}

	earnings := decimal.Zero
	for _, t := range acc.sortedTotals() {
		if t.account.Category == "" {
			continue
		}
		b, err := t.balance()
		if err != nil {
			return nil, err
		}
		switch t.account.Category {
		case domain.Revenue:
			earnings = earnings.Add(b.NetBalance)
			continue
		case domain.Expense:
			earnings = earnings.Sub(b.NetBalance)
			continue
		}
		if detail == domain.DetailSummary && b.NetBalance.IsZero() {
			continue
		}
		switch t.account.Category {
		case domain.Asset:
			addToSection(&bs.Assets, b)
		case domain.Liability:
			addToSection(&bs.Liabilities, b)
		case domain.Equity:
			addToSection(&bs.Equity, b)
		}
	}

	if detail == domain.DetailDetailed || !earnings.IsZero() {
		addToSection(&bs.Equity, domain.AccountBalance{
			Account: domain.Account{
				Code:     domain.CurrentEarningsCode,
				Name:     "Current earnings",
				Category: domain.Equity,
			},
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
			NetBalance:  earnings,
		})
	}

	bs.TotalAssets = bs.Assets.Total
	bs.TotalLiabilities = bs.Liabilities.Total
	bs.TotalEquity = bs.Equity.Total
	bs.TotalLiabilitiesEquity = bs.TotalLiabilities.Add(bs.TotalEquity)
	bs.IsBalanced = bs.TotalAssets.Equal(bs.TotalLiabilitiesEquity)
	bs.Warnings = acc.warnings()
	return bs, nil
}
