package services

import (
	"context"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
)

// LedgerSourceService defines read operations over loans and loan applications
type LedgerSourceService interface {
	// ListSources retrieves loans and applications merged into one list, newest
	// first, using token-based pagination. It returns the records, a token for
	// the next page, and an error.
	ListSources(ctx context.Context, workplaceID string, limit int, nextToken *string, userID string) ([]domain.LedgerSourceRecord, *string, error)
}
