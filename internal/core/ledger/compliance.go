package ledger

import (
	"iter"
	"slices"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
)

// MaxComplianceScore caps the score of any rule set.
const MaxComplianceScore = 100

// Evidence is the immutable input every compliance predicate inspects.
// Entries include non-posted ones so that rules can reason about drafts and
// reversals; predicates that need period balances should use Lines.
// Position is the cumulative balance sheet at the close of the period and is
// nil unless the caller supplied it.
type Evidence struct {
	Entries  []domain.JournalEntry
	Period   domain.Period
	Position *domain.BalanceSheet
}

// EvidenceOption adds optional inputs to the evidence of a score.
type EvidenceOption func(*Evidence)

// WithPosition supplies the cumulative balance sheet as of the last day of
// the period.
func WithPosition(bs *domain.BalanceSheet) EvidenceOption {
	return func(e *Evidence) {
		e.Position = bs
	}
}

// Lines yields the lines of every entry; aggregation functions skip the
// non-posted ones themselves.
func (e Evidence) Lines() iter.Seq[domain.LedgerLine] {
	return func(yield func(domain.LedgerLine) bool) {
		for _, entry := range e.Entries {
			for _, line := range entry.LedgerLines() {
				if !yield(line) {
					return
				}
			}
		}
	}
}

// Predicate reports whether the evidence satisfies a rule.
type Predicate func(Evidence) bool

// Rule is one point-weighted check of a compliance scheme.
type Rule struct {
	Name           string
	Check          string // Name of the predicate in the registry, for reporting
	Points         int
	FailureMessage string
	Predicate      Predicate
	NeedsPosition  bool // Predicate reads Evidence.Position
}

// RuleSet is the configured list of rules for one compliance scheme.
type RuleSet struct {
	Name  string
	Rules []Rule
}

// NeedsPosition reports whether any rule reads the cumulative position, which
// costs a scan of the whole ledger history.
func (rs RuleSet) NeedsPosition() bool {
	for _, r := range rs.Rules {
		if r.NeedsPosition {
			return true
		}
	}
	return false
}

// ComputeComplianceScore evaluates every rule of the set against the entries.
// The score is the sum of the points of passing rules, capped at
// MaxComplianceScore; each failing rule contributes its failure message to
// Issues in rule order.
func ComputeComplianceScore(entries []domain.JournalEntry, period domain.Period, rules RuleSet, opts ...EvidenceOption) (*domain.ComplianceResult, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if rules.Name == "" {
		return nil, &apperrors.InputError{Field: "scheme", Reason: "rule set name is required", Err: apperrors.ErrUnknownRuleSet}
	}

	evidence := Evidence{Entries: slices.Clone(entries), Period: period}
	for _, opt := range opts {
		opt(&evidence)
	}
	result := &domain.ComplianceResult{
		Scheme:   rules.Name,
		Period:   period,
		Issues:   []string{},
		Outcomes: make([]domain.ComplianceRuleOutcome, 0, len(rules.Rules)),
	}

	score := 0
	for _, rule := range rules.Rules {
		if rule.Predicate == nil {
			return nil, apperrors.NewInputError("rule", "rule "+rule.Name+" has no predicate")
		}
		outcome := domain.ComplianceRuleOutcome{Name: rule.Name, Check: rule.Check, Points: rule.Points}
		if rule.Predicate(evidence) {
			outcome.Passed = true
			outcome.Awarded = rule.Points
			score += rule.Points
		} else {
			result.Issues = append(result.Issues, rule.FailureMessage)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.Score = min(max(score, 0), MaxComplianceScore)
	return result, nil
}
