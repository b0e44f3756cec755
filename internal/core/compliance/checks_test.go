package compliance

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, check string, params Params, entries ...domain.JournalEntry) bool {
	t.Helper()
	return evaluateWith(t, check, params, ledger.Evidence{Entries: entries, Period: q1})
}

func evaluateWith(t *testing.T, check string, params Params, evidence ledger.Evidence) bool {
	t.Helper()
	c, ok := NewRegistry().Lookup(check)
	require.True(t, ok, "check %s is registered", check)
	pred, err := c(params)
	require.NoError(t, err)
	return pred(evidence)
}

func TestChecks(t *testing.T) {
	unbalanced := cleanEntry("u", 6)
	unbalanced.Lines[1].Credit = decimal.NewFromInt(90)

	oneLine := cleanEntry("o", 7)
	oneLine.Lines = oneLine.Lines[:1]

	doubleSided := cleanEntry("d", 8)
	doubleSided.Lines[0].Credit = decimal.NewFromInt(5)

	uncategorized := cleanEntry("c", 9)
	uncategorized.Lines[1].Account.Category = ""

	reversedNoRef := cleanEntry("r", 10)
	reversedNoRef.Status = domain.Reversed
	reversedNoRef.Reference = ""

	recordedLate := cleanEntry("x", 11)
	recordedLate.CreatedAt = q1.End.Add(time.Minute)

	neverRecorded := cleanEntry("z", 12)
	neverRecorded.CreatedAt = time.Time{}

	draftLate := recordedLate
	draftLate.Status = domain.Draft

	draftUnbalanced := unbalanced
	draftUnbalanced.Status = domain.Draft

	tests := []struct {
		check   string
		entries []domain.JournalEntry
		want    bool
	}{
		{"entries_balanced", []domain.JournalEntry{cleanEntry("1", 1)}, true},
		{"entries_balanced", []domain.JournalEntry{unbalanced}, false},
		{"entries_balanced", []domain.JournalEntry{draftUnbalanced}, true},
		{"min_two_lines", []domain.JournalEntry{oneLine}, false},
		{"single_sided_lines", []domain.JournalEntry{doubleSided}, false},
		{"accounts_categorized", []domain.JournalEntry{uncategorized}, false},
		{"reversals_referenced", []domain.JournalEntry{reversedNoRef}, false},
		{"recorded_within_period", []domain.JournalEntry{cleanEntry("1", 1)}, true},
		{"recorded_within_period", []domain.JournalEntry{cleanEntry("1", 1), recordedLate}, false},
		{"recorded_within_period", []domain.JournalEntry{neverRecorded}, false},
		{"recorded_within_period", []domain.JournalEntry{draftLate}, true},
		{"no_unposted_drafts", []domain.JournalEntry{draftUnbalanced}, false},
		{"no_unposted_drafts", []domain.JournalEntry{cleanEntry("1", 1)}, true},
		{"trial_balance_balanced", []domain.JournalEntry{unbalanced}, false},
		{"trial_balance_balanced", []domain.JournalEntry{cleanEntry("1", 1)}, true},
		{"balance_sheet_balanced", []domain.JournalEntry{cleanEntry("1", 1)}, false},
		{"approved_by_other", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.check, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluate(t, tt.check, nil, tt.entries...))
		})
	}
}

func TestRatioCheckThreshold(t *testing.T) {
	missing := cleanEntry("m", 2)
	missing.Description = ""
	entries := []domain.JournalEntry{cleanEntry("1", 1), cleanEntry("2", 3), cleanEntry("3", 4), missing}

	assert.False(t, evaluate(t, "entries_have_description", nil, entries...))
	assert.True(t, evaluate(t, "entries_have_description", Params{"min_ratio": 0.75}, entries...))
	assert.False(t, evaluate(t, "entries_have_description", Params{"min_ratio": 0.8}, entries...))
}

func TestRecordedWithinPeriod_GraceDays(t *testing.T) {
	late := cleanEntry("l", 3)
	late.CreatedAt = q1.End.AddDate(0, 0, 2)

	assert.False(t, evaluate(t, "recorded_within_period", nil, late))
	assert.False(t, evaluate(t, "recorded_within_period", Params{"grace_days": 2}, late))
	assert.True(t, evaluate(t, "recorded_within_period", Params{"grace_days": 3}, late))

	c, _ := NewRegistry().Lookup("recorded_within_period")
	_, err := c(Params{"grace_days": -1})
	assert.Error(t, err)
	_, err = c(Params{"grace_days": 1.5})
	assert.Error(t, err)
}

func TestBalanceSheetBalanced_ReadsPosition(t *testing.T) {
	balanced := &domain.BalanceSheet{IsBalanced: true}
	off := &domain.BalanceSheet{IsBalanced: false}
	evidence := ledger.Evidence{Entries: []domain.JournalEntry{cleanEntry("1", 1)}, Period: q1}

	assert.False(t, evaluateWith(t, "balance_sheet_balanced", nil, evidence), "no position supplied")

	evidence.Position = balanced
	assert.True(t, evaluateWith(t, "balance_sheet_balanced", nil, evidence))

	evidence.Position = off
	assert.False(t, evaluateWith(t, "balance_sheet_balanced", nil, evidence), "in-period entries balance but the position does not")
	assert.True(t, NewRegistry().NeedsPosition("balance_sheet_balanced"))
}
