package mapping

import (
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/models"
	"github.com/shopspring/decimal"
)

// ToDomainLedgerLine converts a joined line row to a domain LedgerLine
func ToDomainLedgerLine(m models.JournalLineRow) domain.LedgerLine {
	return domain.LedgerLine{
		EntryID:     m.EntryID,
		EntryDate:   m.EntryDate,
		EntryStatus: domain.JournalStatus(m.Status),
		Account:     toDomainAccount(m.AccountCode, m.AccountName, m.Category),
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}

// ToDomainJournalEntries groups rows ordered by entry into domain entries,
// preserving row order.
func ToDomainJournalEntries(rows []models.JournalEntryLineRow) []domain.JournalEntry {
	entries := make([]domain.JournalEntry, 0)
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.EntryID]
		if !ok {
			i = len(entries)
			index[r.EntryID] = i
			entries = append(entries, domain.JournalEntry{
				EntryID:     r.EntryID,
				EntryDate:   r.EntryDate,
				Description: r.Description,
				Reference:   r.Reference,
				Status:      domain.JournalStatus(r.Status),
				CreatedBy:   r.CreatedBy,
				ApprovedBy:  deref(r.ApprovedBy),
				CreatedAt:   r.CreatedAt,
				Lines:       []domain.JournalLine{},
			})
		}
		if r.AccountCode == nil {
			continue
		}
		entries[i].Lines = append(entries[i].Lines, domain.JournalLine{
			Account: toDomainAccount(*r.AccountCode, deref(r.AccountName), r.Category),
			Debit:   decimalOrZero(r.Debit),
			Credit:  decimalOrZero(r.Credit),
		})
	}
	return entries
}

// ToDomainActivityMappings converts mapping rows to domain mappings
func ToDomainActivityMappings(ms []models.ActivityMappingRow) []domain.ActivityMapping {
	ds := make([]domain.ActivityMapping, len(ms))
	for i, m := range ms {
		ds[i] = domain.ActivityMapping{CodePrefix: m.CodePrefix, Activity: domain.ActivityType(m.Activity)}
	}
	return ds
}

func toDomainAccount(code, name string, category *string) domain.Account {
	return domain.Account{Code: code, Name: name, Category: domain.AccountCategory(deref(category))}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
