package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_aggregator/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_aggregator/internal/models"
	"github.com/SscSPs/ledger_aggregator/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSourceRepository reads loans and loan applications.
type PgxSourceRepository struct {
	BaseRepository
}

func newPgxSourceRepository(pool *pgxpool.Pool) portsrepo.LedgerSourceReader {
	return &PgxSourceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerSourceReader = (*PgxSourceRepository)(nil)

// Both queries order by (date, kind, id) descending. The kind is a constant
// per table so that the service can merge pages of the two tables with a
// single keyset cursor; $2 is NULL on the first page. Text keys compare under
// the "C" collation, byte order, matching the merge done in Go whatever the
// database default collation.
const (
	listLoansQuery = `
		SELECT loan_id, borrower_name, amount, interest_rate, term_months, status, disbursed_on, outstanding
		FROM loans
		WHERE workplace_id = $1
			AND ($2::date IS NULL OR (disbursed_on, 'LOAN'::text COLLATE "C", loan_id::text COLLATE "C") < ($2::date, $3::text COLLATE "C", $4::text COLLATE "C"))
		ORDER BY disbursed_on DESC, loan_id COLLATE "C" DESC
		LIMIT $5
	`
	listApplicationsQuery = `
		SELECT application_id, applicant_name, requested_amount, purpose, status, applied_on
		FROM loan_applications
		WHERE workplace_id = $1
			AND ($2::date IS NULL OR (applied_on, 'APPLICATION'::text COLLATE "C", application_id::text COLLATE "C") < ($2::date, $3::text COLLATE "C", $4::text COLLATE "C"))
		ORDER BY applied_on DESC, application_id COLLATE "C" DESC
		LIMIT $5
	`
)

func cursorArgs(after *portsrepo.SourceCursor) []any {
	if after == nil {
		return []any{nil, nil, nil}
	}
	return []any{after.OccurredOn, string(after.Kind), after.ID}
}

// ListLoans retrieves up to limit loans of the workplace ordered after the cursor.
func (r *PgxSourceRepository) ListLoans(ctx context.Context, workplaceID string, after *portsrepo.SourceCursor, limit int) ([]domain.LoanRecord, error) {
	args := append([]any{workplaceID}, cursorArgs(after)...)
	rows, err := r.Pool.Query(ctx, listLoansQuery, append(args, limit)...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query loans for workplace "+workplaceID, err)
	}
	loans, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Loan])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect loan rows", err)
	}
	return mapping.ToDomainLoanSlice(loans), nil
}

// ListApplications retrieves up to limit loan applications ordered after the cursor.
func (r *PgxSourceRepository) ListApplications(ctx context.Context, workplaceID string, after *portsrepo.SourceCursor, limit int) ([]domain.ApplicationRecord, error) {
	args := append([]any{workplaceID}, cursorArgs(after)...)
	rows, err := r.Pool.Query(ctx, listApplicationsQuery, append(args, limit)...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query loan applications for workplace "+workplaceID, err)
	}
	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LoanApplication])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect loan application rows", err)
	}
	return mapping.ToDomainApplicationSlice(apps), nil
}
