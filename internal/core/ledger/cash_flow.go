package ledger

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/shopspring/decimal"
)

type cashContribution struct {
	account  domain.Account
	activity domain.ActivityType
	amount   decimal.Decimal // credit - debit of a non-cash line
}

type entryCashFlow struct {
	touchesCash   bool
	cash          decimal.Decimal // debit - credit over cash lines
	contributions []cashContribution
}

// ComputeCashFlow attributes the net cash effect of each posted entry dated
// inside period to the operating, investing or financing bucket.
//
// An entry participates only if at least one of its lines hits an account the
// classifier reports as domain.ActivityCash. Each non-cash line of such an
// entry contributes credit minus debit to the bucket of its own activity; for
// a balanced entry these contributions add up to the entry's cash movement.
// Non-cash accounts the classifier cannot map are treated as operating and
// reported in Warnings.
func ComputeCashFlow(lines iter.Seq[domain.LedgerLine], period domain.Period, classifier domain.ActivityClassifier) (*domain.CashFlowSummary, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if classifier == nil {
		return nil, apperrors.NewInputError("classifier", "an activity classifier is required")
	}

	entries := make(map[string]*entryCashFlow)
	unmapped := make(map[string]struct{})
	acc := newAccumulator(true)

	if lines != nil {
		for line := range lines {
			if line.EntryStatus != domain.Posted || !period.Contains(line.EntryDate) {
				continue
			}
			if err := acc.add(line); err != nil {
				return nil, err
			}
			flow, ok := entries[line.EntryID]
			if !ok {
				flow = &entryCashFlow{cash: decimal.Zero}
				entries[line.EntryID] = flow
			}

			activity, mapped := classifier.ClassifyActivity(line.Account)
			switch {
			case !mapped:
				unmapped[line.Account.Code] = struct{}{}
				activity = domain.ActivityOperating
			case activity == domain.ActivityCash:
				flow.touchesCash = true
				flow.cash = flow.cash.Add(line.Debit).Sub(line.Credit)
				continue
			case activity != domain.ActivityOperating && activity != domain.ActivityInvesting && activity != domain.ActivityFinancing:
				return nil, apperrors.NewInputError("activity", fmt.Sprintf("account %s classified with unknown activity '%s'", line.Account.Code, activity))
			}
			flow.contributions = append(flow.contributions, cashContribution{
				account:  line.Account,
				activity: activity,
				amount:   line.Credit.Sub(line.Debit),
			})
		}
	}

	buckets := map[domain.ActivityType]map[string]*domain.CashFlowLine{
		domain.ActivityOperating: {},
		domain.ActivityInvesting: {},
		domain.ActivityFinancing: {},
	}
	cashMovement := decimal.Zero
	for _, flow := range entries {
		if !flow.touchesCash {
			continue
		}
		cashMovement = cashMovement.Add(flow.cash)
		for _, c := range flow.contributions {
			bucket := buckets[c.activity]
			row, ok := bucket[c.account.Code]
			if !ok {
				row = &domain.CashFlowLine{Account: c.account, Amount: decimal.Zero}
				bucket[c.account.Code] = row
			}
			row.Amount = row.Amount.Add(c.amount)
		}
	}

	summary := &domain.CashFlowSummary{
		Period:       period,
		Operating:    buildBucket(domain.ActivityOperating, buckets[domain.ActivityOperating]),
		Investing:    buildBucket(domain.ActivityInvesting, buckets[domain.ActivityInvesting]),
		Financing:    buildBucket(domain.ActivityFinancing, buckets[domain.ActivityFinancing]),
		CashMovement: cashMovement,
	}
	summary.NetCashChange = summary.Operating.Total.Add(summary.Investing.Total).Add(summary.Financing.Total)

	warnings := acc.warnings()
	codes := make([]string, 0, len(unmapped))
	for code := range unmapped {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		warnings = append(warnings, fmt.Sprintf("account %s has no cash flow activity mapping; treated as operating", code))
	}
	if !summary.NetCashChange.Equal(summary.CashMovement) {
		warnings = append(warnings, fmt.Sprintf("net cash change %s differs from cash account movement %s",
			summary.NetCashChange.String(), summary.CashMovement.String()))
	}
	summary.Warnings = warnings
	return summary, nil
}

func buildBucket(activity domain.ActivityType, rows map[string]*domain.CashFlowLine) domain.ActivityBucket {
	bucket := domain.ActivityBucket{Activity: activity, Lines: []domain.CashFlowLine{}, Total: decimal.Zero}
	for _, row := range rows {
		if row.Amount.IsZero() {
			continue
		}
		bucket.Lines = append(bucket.Lines, *row)
		bucket.Total = bucket.Total.Add(row.Amount)
	}
	sort.Slice(bucket.Lines, func(i, j int) bool { return bucket.Lines[i].Account.Code < bucket.Lines[j].Account.Code })
	return bucket
}

// PrefixClassifier maps accounts to activities by longest matching code prefix.
type PrefixClassifier struct {
	mappings []domain.ActivityMapping
}

// NewPrefixClassifier builds a classifier from stored mappings. Later duplicates
// of the same prefix override earlier ones.
func NewPrefixClassifier(mappings []domain.ActivityMapping) *PrefixClassifier {
	byPrefix := make(map[string]domain.ActivityMapping, len(mappings))
	for _, m := range mappings {
		byPrefix[m.CodePrefix] = m
	}
	sorted := make([]domain.ActivityMapping, 0, len(byPrefix))
	for _, m := range byPrefix {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i].CodePrefix) != len(sorted[j].CodePrefix) {
			return len(sorted[i].CodePrefix) > len(sorted[j].CodePrefix)
		}
		return sorted[i].CodePrefix < sorted[j].CodePrefix
	})
	return &PrefixClassifier{mappings: sorted}
}

// ClassifyActivity implements domain.ActivityClassifier.
func (c *PrefixClassifier) ClassifyActivity(account domain.Account) (domain.ActivityType, bool) {
	for _, m := range c.mappings {
		if strings.HasPrefix(account.Code, m.CodePrefix) {
			return m.Activity, true
		}
	}
	return "", false
}
