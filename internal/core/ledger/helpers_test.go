package ledger_test

import (
	"iter"
	"slices"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	cash      = domain.Account{Code: "1000", Name: "Cash", Category: domain.Asset}
	equipment = domain.Account{Code: "1500", Name: "Equipment", Category: domain.Asset}
	loan      = domain.Account{Code: "2000", Name: "Bank Loan", Category: domain.Liability}
	capital   = domain.Account{Code: "3000", Name: "Owner Capital", Category: domain.Equity}
	sales     = domain.Account{Code: "4000", Name: "Sales", Category: domain.Revenue}
	rent      = domain.Account{Code: "5000", Name: "Rent", Category: domain.Expense}
	wages     = domain.Account{Code: "5100", Name: "Wages", Category: domain.Expense}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func debit(a domain.Account, v int64) domain.JournalLine {
	return domain.JournalLine{Account: a, Debit: amt(v), Credit: decimal.Zero}
}

func credit(a domain.Account, v int64) domain.JournalLine {
	return domain.JournalLine{Account: a, Debit: decimal.Zero, Credit: amt(v)}
}

func posted(id string, date time.Time, lines ...domain.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     id,
		EntryDate:   date,
		Description: "entry " + id,
		Reference:   "REF-" + id,
		Status:      domain.Posted,
		CreatedBy:   "alice",
		ApprovedBy:  "bob",
		Lines:       lines,
	}
}

func linesOf(entries ...domain.JournalEntry) []domain.LedgerLine {
	var out []domain.LedgerLine
	for _, e := range entries {
		out = append(out, e.LedgerLines()...)
	}
	return out
}

func seqOf(entries ...domain.JournalEntry) iter.Seq[domain.LedgerLine] {
	return slices.Values(linesOf(entries...))
}

var january = domain.Period{Start: day(2024, 1, 1), End: day(2024, 2, 1)}
