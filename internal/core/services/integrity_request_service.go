package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
)

// integrityRequestService implements the IntegrityRequestSvc interface
type integrityRequestService struct {
	BaseService
	queue portssvc.IntegrityQueue
}

// IntegrityRequestServiceOption is a functional option for configuring the integrity request service
type IntegrityRequestServiceOption func(*integrityRequestService)

// WithIntegrityRequestWorkplaceAuthorizer sets the workplace authorizer for the integrity request service.
func WithIntegrityRequestWorkplaceAuthorizer(authorizer portssvc.WorkplaceAuthorizerSvc) IntegrityRequestServiceOption {
	return func(s *integrityRequestService) {
		s.WorkplaceAuthorizer = authorizer
	}
}

// NewIntegrityRequestService creates the service that queues on-demand
// integrity checks. A nil queue makes every request fail as unavailable.
func NewIntegrityRequestService(queue portssvc.IntegrityQueue, options ...IntegrityRequestServiceOption) portssvc.IntegrityRequestSvc {
	svc := &integrityRequestService{queue: queue}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IntegrityRequestSvc = (*integrityRequestService)(nil)

// RequestIntegrityCheck queues a check; only workplace admins may trigger one.
func (s *integrityRequestService) RequestIntegrityCheck(ctx context.Context, workplaceID string, asOf time.Time, userID string) (*domain.IntegrityRequest, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to request an integrity check",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID))
		return nil, err
	}
	if asOf.IsZero() {
		return nil, apperrors.NewInputError("asOf", "date is required")
	}
	if s.queue == nil {
		return nil, fmt.Errorf("integrity queue is not configured: %w", apperrors.ErrUnavailable)
	}

	req, err := s.queue.EnqueueIntegrity(ctx, workplaceID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to enqueue integrity check",
			slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to enqueue integrity check: %w: %w", apperrors.ErrUnavailable, err)
	}

	s.LogInfo(ctx, "Integrity check queued",
		slog.String("workplace_id", workplaceID),
		slog.String("task_id", req.TaskID),
		slog.String("as_of", asOf.Format(dateFormat)))
	return req, nil
}
