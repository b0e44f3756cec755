package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft    JournalStatus = "DRAFT"
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
	Voided   JournalStatus = "VOIDED"
)

// JournalEntry represents one transaction together with the lines it owns.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	EntryDate   time.Time     `json:"entryDate"`
	Description string        `json:"description"`
	Reference   string        `json:"reference"`
	Status      JournalStatus `json:"status"`
	CreatedBy   string        `json:"createdBy"`
	ApprovedBy  string        `json:"approvedBy"` // Empty when the entry was never approved
	CreatedAt   time.Time     `json:"createdAt"`  // When the entry was recorded, as opposed to its accounting date
	Lines       []JournalLine `json:"lines"`
}

// JournalLine is one account movement within an entry. Exactly one of Debit
// and Credit is expected to be nonzero.
type JournalLine struct {
	Account Account         `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// IsPosted reports whether the entry participates in aggregation.
func (e JournalEntry) IsPosted() bool {
	return e.Status == Posted
}

// Totals returns the debit and credit sums of the entry's lines.
func (e JournalEntry) Totals() (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether total debits equal total credits.
func (e JournalEntry) IsBalanced() bool {
	debit, credit := e.Totals()
	return debit.Equal(credit)
}

// IsSingleSided reports whether exactly one side of the line is nonzero and
// neither side is negative.
func (l JournalLine) IsSingleSided() bool {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return false
	}
	return l.Debit.IsZero() != l.Credit.IsZero()
}

// LedgerLine is the flattened, denormalised view of a journal line that the
// aggregator consumes. It carries the owning entry's identity, date and status.
type LedgerLine struct {
	EntryID     string
	EntryDate   time.Time
	EntryStatus JournalStatus
	Account     Account
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// LedgerLines flattens the entry into ledger lines in line order.
func (e JournalEntry) LedgerLines() []LedgerLine {
	out := make([]LedgerLine, 0, len(e.Lines))
	for _, l := range e.Lines {
		out = append(out, LedgerLine{
			EntryID:     e.EntryID,
			EntryDate:   e.EntryDate,
			EntryStatus: e.Status,
			Account:     l.Account,
			Debit:       l.Debit,
			Credit:      l.Credit,
		})
	}
	return out
}
