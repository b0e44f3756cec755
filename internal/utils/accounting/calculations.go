package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetBalance applies the normal-balance convention of the category to a pair
// of debit and credit totals.
//
// ASSET/EXPENSE (debit-normal)              -> debit - credit
// LIABILITY/EQUITY/REVENUE (credit-normal)  -> credit - debit
func NetBalance(category domain.AccountCategory, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch category {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account category '%s'", category)
	}
}

// SignedAmount returns the effect of a single line on its account's balance,
// positive when the line moves the balance towards its normal side.
func SignedAmount(line domain.LedgerLine) (decimal.Decimal, error) {
	return NetBalance(line.Account.Category, line.Debit, line.Credit)
}

// ValidateEntryBalance checks that an entry has at least two single-sided lines
// whose debits equal credits.
func ValidateEntryBalance(entry domain.JournalEntry) error {
	if len(entry.Lines) < 2 {
		return fmt.Errorf("journal entry %s must have at least two lines", entry.EntryID)
	}
	for i, line := range entry.Lines {
		if !line.IsSingleSided() {
			return fmt.Errorf("line %d of journal entry %s must carry exactly one non-negative debit or credit", i, entry.EntryID)
		}
	}
	debit, credit := entry.Totals()
	if !debit.Equal(credit) {
		return fmt.Errorf("journal entry %s does not balance: debit %s, credit %s", entry.EntryID, debit.String(), credit.String())
	}
	return nil
}
