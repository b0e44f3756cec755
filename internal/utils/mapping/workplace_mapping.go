package mapping

import (
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/models"
)

// ToDomainUserWorkplace converts a model UserWorkplace to a domain UserWorkplace
func ToDomainUserWorkplace(m models.UserWorkplace) domain.UserWorkplace {
	return domain.UserWorkplace{
		UserID:      m.UserID,
		WorkplaceID: m.WorkplaceID,
		Role:        domain.UserWorkplaceRole(m.Role),
		JoinedAt:    m.JoinedAt,
	}
}
