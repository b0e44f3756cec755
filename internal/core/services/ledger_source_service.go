package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_aggregator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/SscSPs/ledger_aggregator/internal/utils/pagination"
)

const (
	defaultSourceLimit = 20
	maxSourceLimit     = 100
)

// ledgerSourceService implements the LedgerSourceService interface
type ledgerSourceService struct {
	BaseService
	sourceRepo portsrepo.LedgerSourceReader
}

// LedgerSourceServiceOption is a functional option for configuring the ledger source service
type LedgerSourceServiceOption func(*ledgerSourceService)

// WithLedgerSourceWorkplaceAuthorizer sets the workplace authorizer for the ledger source service.
func WithLedgerSourceWorkplaceAuthorizer(authorizer portssvc.WorkplaceAuthorizerSvc) LedgerSourceServiceOption {
	return func(s *ledgerSourceService) {
		s.WorkplaceAuthorizer = authorizer
	}
}

// NewLedgerSourceService creates a new ledger source service
func NewLedgerSourceService(repo portsrepo.LedgerSourceReader, options ...LedgerSourceServiceOption) portssvc.LedgerSourceService {
	svc := &ledgerSourceService{sourceRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSourceService = (*ledgerSourceService)(nil)

// ListSources merges loans and applications newest first, paginated with a
// keyset token over (date, kind, id).
func (s *ledgerSourceService) ListSources(ctx context.Context, workplaceID string, limit int, nextToken *string, userID string) ([]domain.LedgerSourceRecord, *string, error) {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to list ledger sources",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID))
		return nil, nil, err
	}

	if limit <= 0 {
		limit = defaultSourceLimit
	}
	limit = min(limit, maxSourceLimit)

	after, err := decodeSourceCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	// Each source can contribute at most limit+1 rows to the merged page.
	loans, err := s.sourceRepo.ListLoans(ctx, workplaceID, after, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans", slog.String("workplace_id", workplaceID))
		return nil, nil, fmt.Errorf("failed to list loans: %w", err)
	}
	applications, err := s.sourceRepo.ListApplications(ctx, workplaceID, after, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loan applications", slog.String("workplace_id", workplaceID))
		return nil, nil, fmt.Errorf("failed to list loan applications: %w", err)
	}

	records := make([]domain.LedgerSourceRecord, 0, len(loans)+len(applications))
	for _, l := range loans {
		records = append(records, l)
	}
	for _, a := range applications {
		records = append(records, a)
	}
	slices.SortFunc(records, compareSourcesDesc)

	var token *string
	if len(records) > limit {
		records = records[:limit]
		last := records[limit-1]
		t := pagination.EncodeKeysetToken(last.OccurredOn(), string(last.Kind()), last.SourceID())
		token = &t
	}

	s.LogDebug(ctx, "Ledger sources listed successfully",
		slog.String("workplace_id", workplaceID),
		slog.Int("count", len(records)),
		slog.Bool("has_more", token != nil))
	return records, token, nil
}

func decodeSourceCursor(nextToken *string) (*portsrepo.SourceCursor, error) {
	if nextToken == nil || *nextToken == "" {
		return nil, nil
	}
	at, kind, id, err := pagination.DecodeKeysetToken(*nextToken)
	if err != nil {
		return nil, &apperrors.InputError{Field: "nextToken", Reason: "malformed pagination token", Err: err}
	}
	switch domain.SourceKind(kind) {
	case domain.SourceLoan, domain.SourceApplication:
	default:
		return nil, apperrors.NewInputError("nextToken", fmt.Sprintf("unknown source kind '%s'", kind))
	}
	return &portsrepo.SourceCursor{OccurredOn: at, Kind: domain.SourceKind(kind), ID: id}, nil
}

// compareSourcesDesc orders records by date, kind and id, all descending,
// matching the keyset order of the repository queries.
func compareSourcesDesc(a, b domain.LedgerSourceRecord) int {
	if c := b.OccurredOn().Compare(a.OccurredOn()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Kind(), a.Kind()); c != 0 {
		return c
	}
	return cmp.Compare(b.SourceID(), a.SourceID())
}
