package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_aggregator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
)

// workplaceService implements the WorkplaceAuthorizerSvc interface
type workplaceService struct {
	BaseService
	workplaceRepo portsrepo.WorkplaceMembershipReader
}

// NewWorkplaceService creates a new workplace service with the provided dependencies
func NewWorkplaceService(workplaceRepo portsrepo.WorkplaceMembershipReader) portssvc.WorkplaceAuthorizerSvc {
	return &workplaceService{workplaceRepo: workplaceRepo}
}

// Ensure workplaceService implements the WorkplaceAuthorizerSvc interface
var _ portssvc.WorkplaceAuthorizerSvc = (*workplaceService)(nil)

// AuthorizeUserAction checks if a user has required permissions for a workplace
func (s *workplaceService) AuthorizeUserAction(ctx context.Context, userID, workplaceID string, requiredRole domain.UserWorkplaceRole) error {
	if userID == "" {
		return apperrors.ErrForbidden
	}

	membership, err := s.workplaceRepo.FindUserWorkplaceRole(ctx, userID, workplaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of workplace",
				slog.String("user_id", userID),
				slog.String("workplace_id", workplaceID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user workplace role",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID))
		return err
	}

	// Check if user has required role or higher
	if !membership.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}

	return nil
}
