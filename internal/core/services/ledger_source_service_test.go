package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_aggregator/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_aggregator/internal/core/services"
	"github.com/SscSPs/ledger_aggregator/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func loan(id string, d int) domain.LoanRecord {
	return domain.LoanRecord{LoanID: id, BorrowerName: "Borrower " + id, Amount: decimal.NewFromInt(1000), DisbursedOn: day(2024, 3, d)}
}

func application(id string, d int) domain.ApplicationRecord {
	return domain.ApplicationRecord{ApplicationID: id, ApplicantName: "Applicant " + id, RequestedAmount: decimal.NewFromInt(500), AppliedOn: day(2024, 3, d)}
}

func sourceIDs(records []domain.LedgerSourceRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.SourceID())
	}
	return ids
}

func TestListSources_MergesNewestFirst(t *testing.T) {
	repo := new(MockSourceRepository)
	repo.On("ListLoans", mock.Anything, "wp-1", (*portsrepo.SourceCursor)(nil), 4).
		Return([]domain.LoanRecord{loan("L2", 9), loan("L1", 5)}, nil).Once()
	repo.On("ListApplications", mock.Anything, "wp-1", (*portsrepo.SourceCursor)(nil), 4).
		Return([]domain.ApplicationRecord{application("A2", 9), application("A1", 7)}, nil).Once()

	svc := services.NewLedgerSourceService(repo)
	records, token, err := svc.ListSources(context.Background(), "wp-1", 3, nil, "user-1")

	require.NoError(t, err)
	// LOAN sorts after APPLICATION descending, so it comes first on the same day
	assert.Equal(t, []string{"L2", "A2", "A1"}, sourceIDs(records))
	require.NotNil(t, token)

	at, kind, id, err := pagination.DecodeKeysetToken(*token)
	require.NoError(t, err)
	assert.True(t, at.Equal(day(2024, 3, 7)))
	assert.Equal(t, "APPLICATION", kind)
	assert.Equal(t, "A1", id)
	repo.AssertExpectations(t)
}

func TestListSources_LastPageHasNoToken(t *testing.T) {
	repo := new(MockSourceRepository)
	cursor := &portsrepo.SourceCursor{OccurredOn: day(2024, 3, 7), Kind: domain.SourceApplication, ID: "A1"}
	repo.On("ListLoans", mock.Anything, "wp-1", cursor, 21).Return([]domain.LoanRecord{loan("L1", 5)}, nil).Once()
	repo.On("ListApplications", mock.Anything, "wp-1", cursor, 21).Return([]domain.ApplicationRecord{}, nil).Once()

	token := pagination.EncodeKeysetToken(day(2024, 3, 7), "APPLICATION", "A1")
	records, next, err := services.NewLedgerSourceService(repo).ListSources(context.Background(), "wp-1", 0, &token, "user-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"L1"}, sourceIDs(records))
	assert.Nil(t, next)
	repo.AssertExpectations(t)
}

func TestListSources_ClampsLimit(t *testing.T) {
	repo := new(MockSourceRepository)
	repo.On("ListLoans", mock.Anything, "wp-1", (*portsrepo.SourceCursor)(nil), 101).Return([]domain.LoanRecord{}, nil).Once()
	repo.On("ListApplications", mock.Anything, "wp-1", (*portsrepo.SourceCursor)(nil), 101).Return([]domain.ApplicationRecord{}, nil).Once()

	records, next, err := services.NewLedgerSourceService(repo).ListSources(context.Background(), "wp-1", 5000, nil, "user-1")

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Nil(t, next)
	repo.AssertExpectations(t)
}

func TestListSources_BadToken(t *testing.T) {
	repo := new(MockSourceRepository)
	svc := services.NewLedgerSourceService(repo)

	bad := "%%%"
	_, _, err := svc.ListSources(context.Background(), "wp-1", 10, &bad, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	wrongKind := pagination.EncodeKeysetToken(day(2024, 3, 7), "INVOICE", "I1")
	_, _, err = svc.ListSources(context.Background(), "wp-1", 10, &wrongKind, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.AssertNotCalled(t, "ListLoans", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListSources_Forbidden(t *testing.T) {
	workplaces := new(MockWorkplaceRepository)
	workplaces.On("FindUserWorkplaceRole", mock.Anything, "user-1", "wp-1").
		Return(&domain.UserWorkplace{UserID: "user-1", WorkplaceID: "wp-1", Role: domain.RoleRemoved}, nil).Once()
	repo := new(MockSourceRepository)

	svc := services.NewLedgerSourceService(repo,
		services.WithLedgerSourceWorkplaceAuthorizer(services.NewWorkplaceService(workplaces)))
	_, _, err := svc.ListSources(context.Background(), "wp-1", 10, nil, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "ListLoans", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
