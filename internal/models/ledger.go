package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLineRow is one journal line joined with its entry and account.
// Category is nil when the account was never classified.
type JournalLineRow struct {
	EntryID     string          `db:"entry_id"`
	EntryDate   time.Time       `db:"entry_date"`
	Status      string          `db:"status"`
	AccountCode string          `db:"account_code"`
	AccountName string          `db:"account_name"`
	Category    *string         `db:"category"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}

// JournalEntryLineRow is a journal entry header joined with one of its
// lines. The line columns are nil for entries without lines.
type JournalEntryLineRow struct {
	EntryID     string           `db:"entry_id"`
	EntryDate   time.Time        `db:"entry_date"`
	Description string           `db:"description"`
	Reference   string           `db:"reference"`
	Status      string           `db:"status"`
	CreatedBy   string           `db:"created_by"`
	ApprovedBy  *string          `db:"approved_by"`
	CreatedAt   time.Time        `db:"created_at"`
	AccountCode *string          `db:"account_code"`
	AccountName *string          `db:"account_name"`
	Category    *string          `db:"category"`
	Debit       *decimal.Decimal `db:"debit"`
	Credit      *decimal.Decimal `db:"credit"`
}

// ActivityMappingRow binds an account code prefix to a cash flow activity.
type ActivityMappingRow struct {
	CodePrefix string `db:"code_prefix"`
	Activity   string `db:"activity"`
}
