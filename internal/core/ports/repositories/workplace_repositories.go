package repositories

import (
	"context"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
)

// WorkplaceMembershipReader defines read operations for workplace memberships
type WorkplaceMembershipReader interface {
	// FindUserWorkplaceRole retrieves the role of a user in a workplace.
	// Returns apperrors.ErrNotFound when the user is not a member.
	FindUserWorkplaceRole(ctx context.Context, userID, workplaceID string) (*domain.UserWorkplace, error)
}
