package ledger

import (
	"iter"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
)

// Position is the cumulative state of a ledger as of one day: the trial
// balance of every posted line up to that day and the balance sheet built
// from the same totals.
type Position struct {
	TrialBalance          *domain.TrialBalance
	BalanceSheet          *domain.BalanceSheet
	UnbalancedEntries     int
	UncategorizedAccounts int
}

// ComputePosition derives the trial balance and the summary balance sheet as
// of asOf in a single pass over lines, so it can run directly on a streamed
// snapshot.
func ComputePosition(lines iter.Seq[domain.LedgerLine], asOf time.Time) (*Position, error) {
	if asOf.IsZero() {
		return nil, apperrors.NewInputError("asOf", "date is required")
	}
	cutoff := dayAfter(asOf)

	acc := newAccumulator(true)
	err := acc.consume(lines, func(l domain.LedgerLine) bool {
		return l.EntryDate.Before(cutoff)
	})
	if err != nil {
		return nil, err
	}

	bs, err := balanceSheetFrom(acc, asOf, domain.DetailSummary)
	if err != nil {
		return nil, err
	}
	return &Position{
		TrialBalance:          trialBalanceFrom(acc, domain.Period{End: cutoff}, nil),
		BalanceSheet:          bs,
		UnbalancedEntries:     len(acc.unbalancedEntries()),
		UncategorizedAccounts: len(acc.uncategorized),
	}, nil
}
