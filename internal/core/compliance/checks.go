package compliance

import (
	"fmt"
	"math"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/core/ledger"
)

// Params carries numeric tuning values for a check, e.g. min_ratio.
type Params map[string]float64

// Check builds a predicate from its configured parameters.
type Check func(params Params) (ledger.Predicate, error)

func every(pred func(domain.JournalEntry) bool) Check {
	return func(Params) (ledger.Predicate, error) {
		return func(e ledger.Evidence) bool {
			for _, entry := range e.Entries {
				if entry.IsPosted() && !pred(entry) {
					return false
				}
			}
			return true
		}, nil
	}
}

// ratio passes when at least min_ratio (default 1) of the posted entries
// satisfy pred. No posted entries passes.
func ratio(pred func(domain.JournalEntry) bool) Check {
	return func(params Params) (ledger.Predicate, error) {
		minRatio := 1.0
		if v, ok := params["min_ratio"]; ok {
			if v < 0 || v > 1 {
				return nil, fmt.Errorf("min_ratio must be between 0 and 1, got %v", v)
			}
			minRatio = v
		}
		return func(e ledger.Evidence) bool {
			total, ok := 0, 0
			for _, entry := range e.Entries {
				if !entry.IsPosted() {
					continue
				}
				total++
				if pred(entry) {
					ok++
				}
			}
			if total == 0 {
				return true
			}
			return float64(ok)/float64(total) >= minRatio
		}, nil
	}
}

func static(pred ledger.Predicate) Check {
	return func(Params) (ledger.Predicate, error) { return pred, nil }
}

func builtinChecks() map[string]Check {
	return map[string]Check{
		"entries_balanced": every(domain.JournalEntry.IsBalanced),
		"min_two_lines": every(func(entry domain.JournalEntry) bool {
			return len(entry.Lines) >= 2
		}),
		"single_sided_lines": every(func(entry domain.JournalEntry) bool {
			for _, l := range entry.Lines {
				if !l.IsSingleSided() {
					return false
				}
			}
			return true
		}),
		"accounts_categorized": every(func(entry domain.JournalEntry) bool {
			for _, l := range entry.Lines {
				if !l.Account.Category.IsValid() {
					return false
				}
			}
			return true
		}),
		"entries_have_reference": ratio(func(entry domain.JournalEntry) bool {
			return entry.Reference != ""
		}),
		"entries_have_description": ratio(func(entry domain.JournalEntry) bool {
			return entry.Description != ""
		}),
		"approved_by_other": ratio(func(entry domain.JournalEntry) bool {
			return entry.ApprovedBy != "" && entry.ApprovedBy != entry.CreatedBy
		}),
		"no_unposted_drafts": static(func(e ledger.Evidence) bool {
			for _, entry := range e.Entries {
				if entry.Status == domain.Draft && e.Period.Contains(entry.EntryDate) {
					return false
				}
			}
			return true
		}),
		"recorded_within_period": recordedWithin,
		"reversals_referenced": static(func(e ledger.Evidence) bool {
			for _, entry := range e.Entries {
				if entry.Status == domain.Reversed && entry.Reference == "" {
					return false
				}
			}
			return true
		}),
		"trial_balance_balanced": static(func(e ledger.Evidence) bool {
			tb, err := ledger.ComputeTrialBalance(e.Lines(), e.Period, nil)
			return err == nil && tb.IsBalanced
		}),
		"balance_sheet_balanced": static(func(e ledger.Evidence) bool {
			return e.Position != nil && e.Position.IsBalanced
		}),
	}
}

// positionChecks are the built-in checks that read Evidence.Position.
var positionChecks = []string{"balance_sheet_balanced"}

// recordedWithin passes when every posted entry was recorded before the
// period closed, extended by grace_days (default 0). Entries with no
// recording time fail.
func recordedWithin(params Params) (ledger.Predicate, error) {
	grace := 0.0
	if v, ok := params["grace_days"]; ok {
		if v < 0 || v != math.Trunc(v) {
			return nil, fmt.Errorf("grace_days must be a non-negative whole number, got %v", v)
		}
		grace = v
	}
	return func(e ledger.Evidence) bool {
		deadline := e.Period.End.AddDate(0, 0, int(grace))
		for _, entry := range e.Entries {
			if !entry.IsPosted() {
				continue
			}
			if entry.CreatedAt.IsZero() || !entry.CreatedAt.Before(deadline) {
				return false
			}
		}
		return true
	}, nil
}
