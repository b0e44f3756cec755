package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
)

// IntegrityQueue hands integrity checks to the background worker.
type IntegrityQueue interface {
	EnqueueIntegrity(ctx context.Context, workplaceID string, asOf time.Time) (*domain.IntegrityRequest, error)
}

// IntegrityRequestSvc lets workplace admins run an integrity check outside
// the nightly schedule.
type IntegrityRequestSvc interface {
	// RequestIntegrityCheck queues a check of the workplace ledger as of asOf.
	RequestIntegrityCheck(ctx context.Context, workplaceID string, asOf time.Time, userID string) (*domain.IntegrityRequest, error)
}
