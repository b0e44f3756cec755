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

func always(v bool) ledger.Predicate {
	return func(ledger.Evidence) bool { return v }
}

func TestComputeComplianceScore(t *testing.T) {
	rules := ledger.RuleSet{
		Name: "gaap",
		Rules: []ledger.Rule{
			{Name: "balanced", Check: "entries_balanced", Points: 40, FailureMessage: "unbalanced entries", Predicate: always(true)},
			{Name: "referenced", Check: "entries_have_reference", Points: 30, FailureMessage: "missing references", Predicate: always(false)},
			{Name: "described", Check: "entries_have_description", Points: 30, FailureMessage: "missing descriptions", Predicate: always(false)},
		},
	}

	result, err := ledger.ComputeComplianceScore(nil, january, rules)
	require.NoError(t, err)
	assert.Equal(t, "gaap", result.Scheme)
	assert.Equal(t, 40, result.Score)
	assert.Equal(t, []string{"missing references", "missing descriptions"}, result.Issues)
	require.Len(t, result.Outcomes, 3)
	assert.True(t, result.Outcomes[0].Passed)
	assert.Equal(t, 40, result.Outcomes[0].Awarded)
	assert.Equal(t, 0, result.Outcomes[1].Awarded)
}

func TestComputeComplianceScore_Clamped(t *testing.T) {
	rules := ledger.RuleSet{
		Name: "generous",
		Rules: []ledger.Rule{
			{Name: "a", Points: 80, Predicate: always(true)},
			{Name: "b", Points: 80, Predicate: always(true)},
		},
	}
	result, err := ledger.ComputeComplianceScore(nil, january, rules)
	require.NoError(t, err)
	assert.Equal(t, ledger.MaxComplianceScore, result.Score)
	assert.Empty(t, result.Issues)

	penalising := ledger.RuleSet{
		Name:  "penalising",
		Rules: []ledger.Rule{{Name: "a", Points: -20, Predicate: always(true)}},
	}
	result, err = ledger.ComputeComplianceScore(nil, january, penalising)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
}

func TestComputeComplianceScore_EvidenceSeesEntries(t *testing.T) {
	draft := posted("je-2", day(2024, 1, 4), debit(cash, 5), credit(sales, 5))
	draft.Status = domain.Draft
	entries := []domain.JournalEntry{
		posted("je-1", day(2024, 1, 3), debit(cash, 10), credit(sales, 10)),
		draft,
	}

	var seenEntries, seenLines int
	rules := ledger.RuleSet{Name: "inspect", Rules: []ledger.Rule{{
		Name:   "inspect",
		Points: 10,
		Predicate: func(e ledger.Evidence) bool {
			seenEntries = len(e.Entries)
			for range e.Lines() {
				seenLines++
			}
			return e.Period == january
		},
	}}}

	result, err := ledger.ComputeComplianceScore(entries, january, rules)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 2, seenEntries)
	assert.Equal(t, 4, seenLines)
}

func TestComputeComplianceScore_InputErrors(t *testing.T) {
	_, err := ledger.ComputeComplianceScore(nil, january, ledger.RuleSet{})
	assert.True(t, errors.Is(err, apperrors.ErrUnknownRuleSet))
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = ledger.ComputeComplianceScore(nil, january, ledger.RuleSet{Name: "x", Rules: []ledger.Rule{{Name: "nil"}}})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = ledger.ComputeComplianceScore(nil, domain.Period{Start: day(2024, 2, 1), End: day(2024, 1, 1)}, ledger.RuleSet{Name: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestComputeComplianceScore_WithPosition(t *testing.T) {
	var seen *domain.BalanceSheet
	rules := ledger.RuleSet{Name: "position", Rules: []ledger.Rule{{
		Name:          "balanced",
		Points:        10,
		NeedsPosition: true,
		Predicate: func(e ledger.Evidence) bool {
			seen = e.Position
			return e.Position != nil && e.Position.IsBalanced
		},
	}}}
	assert.True(t, rules.NeedsPosition())

	result, err := ledger.ComputeComplianceScore(nil, january, rules)
	require.NoError(t, err)
	assert.Nil(t, seen)
	assert.Equal(t, 0, result.Score)

	bs, err := ledger.ComputeBalanceSheet(seqOf(posted("je-1", day(2023, 6, 1), debit(cash, 10), credit(capital, 10))), day(2024, 1, 31), domain.DetailSummary)
	require.NoError(t, err)
	result, err = ledger.ComputeComplianceScore(nil, january, rules, ledger.WithPosition(bs))
	require.NoError(t, err)
	assert.Same(t, bs, seen)
	assert.Equal(t, 10, result.Score)
}
