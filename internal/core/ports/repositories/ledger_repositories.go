package repositories

import (
	"context"
	"iter"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
)

// LineQuery scopes the posted lines handed to an aggregation.
type LineQuery struct {
	From *time.Time // Inclusive lower bound; nil reads from the start of the ledger
	To   time.Time  // Exclusive upper bound
}

// LedgerLineReader streams posted journal lines.
type LedgerLineReader interface {
	// LoadPostedLines runs fn with a single-pass sequence of the posted lines of
	// the workplace matching q. The sequence is only valid while fn runs and
	// every line comes from one consistent snapshot. A read failure that cuts
	// the sequence short is returned even when fn itself succeeded.
	LoadPostedLines(ctx context.Context, workplaceID string, q LineQuery, fn func(lines iter.Seq[domain.LedgerLine]) error) error
}

// LedgerEntryReader loads whole journal entries, including non-posted ones.
type LedgerEntryReader interface {
	// LoadEntries retrieves every entry dated inside period with its lines.
	LoadEntries(ctx context.Context, workplaceID string, period domain.Period) ([]domain.JournalEntry, error)
}

// ActivityMappingReader loads the cash flow classification of a workplace.
type ActivityMappingReader interface {
	// LoadActivityMappings retrieves the code prefix to activity mapping.
	LoadActivityMappings(ctx context.Context, workplaceID string) ([]domain.ActivityMapping, error)
}

// LedgerMetaReader exposes bookkeeping data about the ledgers themselves.
type LedgerMetaReader interface {
	// LedgerVersion returns a fingerprint that changes whenever any journal
	// entry of the workplace is written.
	LedgerVersion(ctx context.Context, workplaceID string) (string, error)

	// ListWorkplaceIDs lists every workplace that has at least one journal entry.
	ListWorkplaceIDs(ctx context.Context) ([]string, error)
}

// LedgerReader combines all ledger read interfaces
// This is a facade for clients that need access to all operations
type LedgerReader interface {
	LedgerLineReader
	LedgerEntryReader
	ActivityMappingReader
	LedgerMetaReader
}
