package ledger_test

import (
	"encoding/json"
	"iter"
	"testing"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onceSeq yields lines like a database cursor: ranging over it a second time
// fails the test.
func onceSeq(t *testing.T, lines []domain.LedgerLine) iter.Seq[domain.LedgerLine] {
	t.Helper()
	used := false
	return func(yield func(domain.LedgerLine) bool) {
		if used {
			t.Fatal("line sequence ranged over more than once")
		}
		used = true
		for _, l := range lines {
			if !yield(l) {
				return
			}
		}
	}
}

func mixedLedger() []domain.LedgerLine {
	return linesOf(
		posted("je-1", day(2024, 1, 1), debit(cash, 5000), credit(capital, 5000)),
		posted("je-2", day(2024, 1, 3), debit(equipment, 1200), credit(cash, 1200)),
		posted("je-3", day(2024, 1, 8), debit(cash, 2000), credit(loan, 2000)),
		posted("je-4", day(2024, 1, 12), debit(cash, 900), credit(sales, 900)),
		posted("je-5", day(2024, 1, 15), debit(rent, 300), credit(cash, 300)),
		posted("je-6", day(2024, 1, 20), debit(wages, 450), credit(cash, 450)),
		posted("je-7", day(2024, 1, 28), debit(rent, 40), credit(cash, 25)),
	)
}

// statements runs every statement computation over one stream.
var statements = map[string]func(iter.Seq[domain.LedgerLine]) (any, error){
	"trial balance": func(s iter.Seq[domain.LedgerLine]) (any, error) {
		return ledger.ComputeTrialBalance(s, january, nil)
	},
	"balance sheet": func(s iter.Seq[domain.LedgerLine]) (any, error) {
		return ledger.ComputeBalanceSheet(s, day(2024, 1, 31), domain.DetailDetailed)
	},
	"income statement": func(s iter.Seq[domain.LedgerLine]) (any, error) {
		return ledger.ComputeIncomeStatement(s, january)
	},
	"cash flow": func(s iter.Seq[domain.LedgerLine]) (any, error) {
		return ledger.ComputeCashFlow(s, january, testClassifier())
	},
	"position": func(s iter.Seq[domain.LedgerLine]) (any, error) {
		return ledger.ComputePosition(s, day(2024, 1, 31))
	},
}

func TestStatements_SinglePass(t *testing.T) {
	for name, compute := range statements {
		t.Run(name, func(t *testing.T) {
			_, err := compute(onceSeq(t, mixedLedger()))
			require.NoError(t, err)
		})
	}
}

func TestStatements_IdenticalAcrossRuns(t *testing.T) {
	for name, compute := range statements {
		t.Run(name, func(t *testing.T) {
			first, err := compute(onceSeq(t, mixedLedger()))
			require.NoError(t, err)
			want, err := json.Marshal(first)
			require.NoError(t, err)

			for range 5 {
				again, err := compute(onceSeq(t, mixedLedger()))
				require.NoError(t, err)
				got, err := json.Marshal(again)
				require.NoError(t, err)
				assert.JSONEq(t, string(want), string(got))
				assert.Equal(t, want, got, "serialized bytes differ between runs")
			}
		})
	}
}

func TestComputePosition_MatchesStatements(t *testing.T) {
	asOf := day(2024, 1, 31)
	pos, err := ledger.ComputePosition(onceSeq(t, mixedLedger()), asOf)
	require.NoError(t, err)

	bs, err := ledger.ComputeBalanceSheet(onceSeq(t, mixedLedger()), asOf, domain.DetailSummary)
	require.NoError(t, err)
	tb, err := ledger.ComputeTrialBalance(onceSeq(t, mixedLedger()), domain.Period{End: day(2024, 2, 1)}, nil)
	require.NoError(t, err)

	assert.Equal(t, bs, pos.BalanceSheet)
	assert.Equal(t, tb, pos.TrialBalance)
	assert.Equal(t, 1, pos.UnbalancedEntries)
	assert.Zero(t, pos.UncategorizedAccounts)
	assert.False(t, pos.BalanceSheet.IsBalanced)
}

func TestComputePosition_RequiresDate(t *testing.T) {
	_, err := ledger.ComputePosition(onceSeq(t, mixedLedger()), time.Time{})
	assert.Error(t, err)
}
