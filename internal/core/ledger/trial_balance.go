package ledger

import (
	"fmt"
	"iter"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeTrialBalance lists debit and credit totals per account for posted
// lines dated inside period. When category is non-nil only accounts of that
// category are included. Accounts without activity are omitted and rows are
// ordered by account code.
//
// An unbalanced posted entry does not fail the computation: IsBalanced is
// false, Difference carries the delta and the entry is named in Warnings.
// Entry-level checks are skipped when a category filter is applied, since a
// filtered view is not expected to balance.
func ComputeTrialBalance(lines iter.Seq[domain.LedgerLine], period domain.Period, category *domain.AccountCategory) (*domain.TrialBalance, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if category != nil && !category.IsValid() {
		return nil, apperrors.NewInputError("category", fmt.Sprintf("unknown account category '%s'", *category))
	}

	acc := newAccumulator(category == nil)
	err := acc.consume(lines, func(l domain.LedgerLine) bool {
		if !period.Contains(l.EntryDate) {
			return false
		}
		return category == nil || l.Account.Category == *category
	})
	if err != nil {
		return nil, err
	}
	return trialBalanceFrom(acc, period, category), nil
}

func trialBalanceFrom(acc *accumulator, period domain.Period, category *domain.AccountCategory) *domain.TrialBalance {
	tb := &domain.TrialBalance{
		Period:      period,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	if category != nil {
		c := *category
		tb.Category = &c
	}

	for _, t := range acc.sortedTotals() {
		if !t.hasActivity() {
			continue
		}
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountCode: t.account.Code,
			AccountName: t.account.Name,
			Category:    t.account.Category,
			Debit:       t.debit,
			Credit:      t.credit,
		})
		tb.TotalDebit = tb.TotalDebit.Add(t.debit)
		tb.TotalCredit = tb.TotalCredit.Add(t.credit)
	}

	tb.Difference = tb.TotalDebit.Sub(tb.TotalCredit)
	tb.IsBalanced = tb.Difference.IsZero()
	tb.Warnings = acc.warnings()
	return tb
}
