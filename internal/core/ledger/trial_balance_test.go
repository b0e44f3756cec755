package ledger_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTrialBalance_SingleSale(t *testing.T) {
	entries := []domain.JournalEntry{
		posted("je-1", day(2024, 1, 10), debit(cash, 1000), credit(sales, 1000)),
	}

	tb, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
	require.NoError(t, err)

	require.Len(t, tb.Rows, 2)
	assert.Equal(t, "1000", tb.Rows[0].AccountCode)
	assert.True(t, tb.Rows[0].Debit.Equal(amt(1000)))
	assert.True(t, tb.Rows[0].Credit.IsZero())
	assert.Equal(t, "4000", tb.Rows[1].AccountCode)
	assert.True(t, tb.Rows[1].Debit.IsZero())
	assert.True(t, tb.Rows[1].Credit.Equal(amt(1000)))

	assert.True(t, tb.TotalDebit.Equal(amt(1000)))
	assert.True(t, tb.TotalCredit.Equal(amt(1000)))
	assert.True(t, tb.IsBalanced)
	assert.Empty(t, tb.Warnings)
}

func TestComputeTrialBalance_UnbalancedEntry(t *testing.T) {
	entries := []domain.JournalEntry{
		posted("je-1", day(2024, 1, 2), debit(cash, 1000), credit(capital, 1000)),
		posted("je-2", day(2024, 1, 5), debit(rent, 500), credit(cash, 300)),
		posted("je-3", day(2024, 1, 9), debit(cash, 250), credit(sales, 250)),
	}

	tb, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
	require.NoError(t, err)

	assert.False(t, tb.IsBalanced)
	assert.True(t, tb.Difference.Equal(amt(200)), "difference should be the entry delta, got %s", tb.Difference)
	assert.True(t, tb.TotalDebit.Sub(tb.TotalCredit).Equal(amt(200)))
	assert.Equal(t, []string{"journal entry je-2 is unbalanced by 200"}, tb.Warnings)
}

func TestComputeTrialBalance_BalancedEntriesAlwaysBalance(t *testing.T) {
	entries := []domain.JournalEntry{
		posted("je-1", day(2024, 1, 1), debit(cash, 5000), credit(capital, 5000)),
		posted("je-2", day(2024, 1, 3), debit(equipment, 1200), credit(cash, 200), credit(loan, 1000)),
		posted("je-3", day(2024, 1, 8), debit(rent, 300), debit(wages, 450), credit(cash, 750)),
		posted("je-4", day(2024, 1, 20), debit(cash, 900), credit(sales, 900)),
	}

	tb, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
	require.NoError(t, err)
	assert.True(t, tb.IsBalanced)
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))
	assert.True(t, tb.Difference.IsZero())
}

func TestComputeTrialBalance_ScopesPeriodAndStatus(t *testing.T) {
	draft := posted("je-draft", day(2024, 1, 15), debit(cash, 99), credit(sales, 99))
	draft.Status = domain.Draft
	voided := posted("je-void", day(2024, 1, 16), debit(cash, 77), credit(sales, 77))
	voided.Status = domain.Voided
	entries := []domain.JournalEntry{
		posted("je-dec", day(2023, 12, 31), debit(cash, 10), credit(sales, 10)),
		posted("je-jan", day(2024, 1, 31), debit(cash, 20), credit(sales, 20)),
		posted("je-feb", day(2024, 2, 1), debit(cash, 40), credit(sales, 40)),
		draft,
		voided,
	}

	tb, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
	require.NoError(t, err)
	assert.True(t, tb.TotalDebit.Equal(amt(20)), "only the posted January entry counts, got %s", tb.TotalDebit)
}

func TestComputeTrialBalance_OmitsZeroActivityAndSortsByCode(t *testing.T) {
	zero := posted("je-0", day(2024, 1, 4), debit(rent, 0), credit(loan, 0))
	entries := []domain.JournalEntry{
		posted("je-1", day(2024, 1, 2), debit(wages, 10), credit(cash, 10)),
		zero,
		posted("je-2", day(2024, 1, 3), debit(cash, 30), credit(capital, 30)),
	}

	tb, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
	require.NoError(t, err)

	codes := make([]string, 0, len(tb.Rows))
	for _, r := range tb.Rows {
		codes = append(codes, r.AccountCode)
	}
	assert.Equal(t, []string{"1000", "3000", "5100"}, codes)
}

func TestComputeTrialBalance_CategoryFilter(t *testing.T) {
	entries := []domain.JournalEntry{
		posted("je-1", day(2024, 1, 2), debit(rent, 500), credit(cash, 300)),
		posted("je-2", day(2024, 1, 3), debit(wages, 50), credit(cash, 50)),
	}
	expense := domain.Expense

	tb, err := ledger.ComputeTrialBalance(seqOf(entries...), january, &expense)
	require.NoError(t, err)
	require.NotNil(t, tb.Category)
	assert.Equal(t, domain.Expense, *tb.Category)
	require.Len(t, tb.Rows, 2)
	assert.True(t, tb.TotalDebit.Equal(amt(550)))
	assert.Empty(t, tb.Warnings, "entry checks are skipped for filtered views")
}

func TestComputeTrialBalance_InputErrors(t *testing.T) {
	t.Run("period start after end", func(t *testing.T) {
		_, err := ledger.ComputeTrialBalance(nil, domain.Period{Start: day(2024, 2, 1), End: day(2024, 1, 1)}, nil)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("unknown filter category", func(t *testing.T) {
		bogus := domain.AccountCategory("INCOME")
		_, err := ledger.ComputeTrialBalance(nil, january, &bogus)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})

	t.Run("unknown account category", func(t *testing.T) {
		odd := domain.Account{Code: "9000", Name: "Suspense", Category: "CONTRA"}
		entries := []domain.JournalEntry{posted("je-1", day(2024, 1, 2), debit(odd, 5), credit(cash, 5))}
		_, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
		var inputErr *apperrors.InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, "category", inputErr.Field)
	})

	t.Run("conflicting categories for one code", func(t *testing.T) {
		cashAsExpense := cash
		cashAsExpense.Category = domain.Expense
		entries := []domain.JournalEntry{
			posted("je-1", day(2024, 1, 2), debit(cash, 5), credit(sales, 5)),
			posted("je-2", day(2024, 1, 3), debit(cashAsExpense, 5), credit(sales, 5)),
		}
		_, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
	})
}

func TestComputeTrialBalance_MissingCategoryIsWarning(t *testing.T) {
	orphan := domain.Account{Code: "9999", Name: "Unmapped"}
	entries := []domain.JournalEntry{posted("je-1", day(2024, 1, 2), debit(orphan, 5), credit(cash, 5))}

	tb, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
	require.NoError(t, err)
	assert.True(t, tb.IsBalanced)
	assert.Contains(t, tb.Warnings, "account 9999 has no category")
}

func TestComputeTrialBalance_Idempotent(t *testing.T) {
	entries := []domain.JournalEntry{
		posted("je-1", day(2024, 1, 2), debit(cash, 1000), credit(capital, 1000)),
		posted("je-2", day(2024, 1, 5), debit(rent, 500), credit(cash, 300)),
	}
	first, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
	require.NoError(t, err)
	second, err := ledger.ComputeTrialBalance(seqOf(entries...), january, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
