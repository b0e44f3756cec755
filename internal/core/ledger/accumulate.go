// Package ledger derives financial statements from posted journal lines.
//
// Every function in this package is pure: it reads a single-pass sequence of
// lines, performs its group-by in one accumulation pass and returns a freshly
// allocated result. Nothing here touches a data store.
package ledger

import (
	"fmt"
	"iter"
	"sort"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type accountTotals struct {
	account domain.Account
	debit   decimal.Decimal
	credit  decimal.Decimal
}

func (t *accountTotals) hasActivity() bool {
	return !t.debit.IsZero() || !t.credit.IsZero()
}

func (t *accountTotals) balance() (domain.AccountBalance, error) {
	net, err := accounting.NetBalance(t.account.Category, t.debit, t.credit)
	if err != nil {
		return domain.AccountBalance{}, err
	}
	return domain.AccountBalance{
		Account:     t.account,
		TotalDebit:  t.debit,
		TotalCredit: t.credit,
		NetBalance:  net,
	}, nil
}

// accumulator groups lines by account code and, optionally, tracks the
// debit/credit delta of each entry so that unbalanced entries can be reported.
type accumulator struct {
	accounts      map[string]*accountTotals
	entryDelta    map[string]decimal.Decimal
	trackEntries  bool
	uncategorized map[string]struct{}
}

func newAccumulator(trackEntries bool) *accumulator {
	return &accumulator{
		accounts:      make(map[string]*accountTotals),
		entryDelta:    make(map[string]decimal.Decimal),
		trackEntries:  trackEntries,
		uncategorized: make(map[string]struct{}),
	}
}

// checkAccount validates the account carried by a line. An empty category is
// a data-integrity warning; an unrecognised one is an input error.
func checkAccount(acc domain.Account) error {
	if acc.Code == "" {
		return apperrors.NewInputError("account", "journal line references an account without a code")
	}
	if acc.Category != "" && !acc.Category.IsValid() {
		return apperrors.NewInputError("category", fmt.Sprintf("account %s has unknown category '%s'", acc.Code, acc.Category))
	}
	return nil
}

func (a *accumulator) add(line domain.LedgerLine) error {
	if err := checkAccount(line.Account); err != nil {
		return err
	}
	totals, ok := a.accounts[line.Account.Code]
	if !ok {
		totals = &accountTotals{account: line.Account, debit: decimal.Zero, credit: decimal.Zero}
		a.accounts[line.Account.Code] = totals
		if line.Account.Category == "" {
			a.uncategorized[line.Account.Code] = struct{}{}
		}
	} else if totals.account.Category != line.Account.Category {
		return apperrors.NewInputError("category", fmt.Sprintf("account %s is reported with conflicting categories '%s' and '%s'",
			line.Account.Code, totals.account.Category, line.Account.Category))
	}
	totals.debit = totals.debit.Add(line.Debit)
	totals.credit = totals.credit.Add(line.Credit)

	if a.trackEntries {
		a.entryDelta[line.EntryID] = a.entryDelta[line.EntryID].Add(line.Debit).Sub(line.Credit)
	}
	return nil
}

// consume drains lines, keeping only posted lines accepted by include.
func (a *accumulator) consume(lines iter.Seq[domain.LedgerLine], include func(domain.LedgerLine) bool) error {
	if lines == nil {
		return nil
	}
	for line := range lines {
		if line.EntryStatus != domain.Posted || !include(line) {
			continue
		}
		if err := a.add(line); err != nil {
			return err
		}
	}
	return nil
}

// sortedTotals returns the accumulated accounts ordered by code.
func (a *accumulator) sortedTotals() []*accountTotals {
	out := make([]*accountTotals, 0, len(a.accounts))
	for _, t := range a.accounts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].account.Code < out[j].account.Code })
	return out
}

// warnings lists data-integrity problems found while accumulating, in a
// deterministic order.
func (a *accumulator) warnings() []string {
	out := make([]string, 0)

	codes := make([]string, 0, len(a.uncategorized))
	for code := range a.uncategorized {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		out = append(out, fmt.Sprintf("account %s has no category", code))
	}

	for _, id := range a.unbalancedEntries() {
		out = append(out, fmt.Sprintf("journal entry %s is unbalanced by %s", id, a.entryDelta[id].String()))
	}
	return out
}

func (a *accumulator) unbalancedEntries() []string {
	ids := make([]string, 0)
	for id, delta := range a.entryDelta {
		if !delta.IsZero() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func validatePeriod(period domain.Period) error {
	if !period.IsValid() {
		return apperrors.NewInputError("period", fmt.Sprintf("start %s is after end %s",
			period.Start.Format("2006-01-02"), period.End.Format("2006-01-02")))
	}
	return nil
}

func newSection(category domain.AccountCategory) domain.StatementSection {
	return domain.StatementSection{Category: category, Accounts: []domain.AccountBalance{}, Total: decimal.Zero}
}

func addToSection(s *domain.StatementSection, b domain.AccountBalance) {
	s.Accounts = append(s.Accounts, b)
	s.Total = s.Total.Add(b.NetBalance)
}
