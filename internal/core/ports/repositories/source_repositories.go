package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
)

// SourceCursor is the keyset position of the last record of a page. Records
// are ordered by OccurredOn, then Kind, then ID, all descending.
type SourceCursor struct {
	OccurredOn time.Time
	Kind       domain.SourceKind
	ID         string
}

// LedgerSourceReader reads the records that originate ledger activity.
type LedgerSourceReader interface {
	// ListLoans retrieves up to limit loans of the workplace ordered after the cursor.
	ListLoans(ctx context.Context, workplaceID string, after *SourceCursor, limit int) ([]domain.LoanRecord, error)

	// ListApplications retrieves up to limit loan applications ordered after the cursor.
	ListApplications(ctx context.Context, workplaceID string, after *SourceCursor, limit int) ([]domain.ApplicationRecord, error)
}
