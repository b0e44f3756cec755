package pgsql

import (
	"context"
	"iter"
	"strconv"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_aggregator/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_aggregator/internal/models"
	"github.com/SscSPs/ledger_aggregator/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository reads journal data for aggregation.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

const postedLinesQuery = `
	SELECT
		e.entry_id, e.entry_date, e.status,
		a.code AS account_code, a.name AS account_name, a.category,
		l.debit, l.credit
	FROM journal_lines l
	JOIN journal_entries e ON e.entry_id = l.entry_id
	JOIN accounts a ON a.workplace_id = e.workplace_id AND a.code = l.account_code
	WHERE e.workplace_id = $1
		AND e.status = 'POSTED'
		AND ($2::date IS NULL OR e.entry_date >= $2::date)
		AND e.entry_date < $3::date
	ORDER BY e.entry_date, e.entry_id, l.line_no
`

// LoadPostedLines streams the posted lines inside a read only snapshot
// transaction that stays open until fn returns.
func (r *PgxLedgerRepository) LoadPostedLines(ctx context.Context, workplaceID string, q portsrepo.LineQuery, fn func(iter.Seq[domain.LedgerLine]) error) (err error) {
	tx, err := r.BeginSnapshot(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil && err == nil {
			err = rbErr
		}
	}()

	rows, err := tx.Query(ctx, postedLinesQuery, workplaceID, q.From, q.To)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query ledger lines for workplace "+workplaceID, err)
	}
	defer rows.Close()

	var scanErr error
	seq := func(yield func(domain.LedgerLine) bool) {
		for rows.Next() {
			var row models.JournalLineRow
			if scanErr = rows.Scan(
				&row.EntryID,
				&row.EntryDate,
				&row.Status,
				&row.AccountCode,
				&row.AccountName,
				&row.Category,
				&row.Debit,
				&row.Credit,
			); scanErr != nil {
				return
			}
			if !yield(mapping.ToDomainLedgerLine(row)) {
				return
			}
		}
	}

	if err := fn(seq); err != nil {
		return err
	}
	if scanErr != nil {
		return apperrors.NewAppError(500, "failed to scan ledger line", scanErr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed to iterate ledger lines", err)
	}
	return nil
}

// LoadEntries retrieves every entry dated inside period, whatever its status.
func (r *PgxLedgerRepository) LoadEntries(ctx context.Context, workplaceID string, period domain.Period) ([]domain.JournalEntry, error) {
	query := `
		SELECT
			e.entry_id, e.entry_date, e.description, e.reference, e.status,
			e.created_by, e.approved_by, e.created_at,
			a.code AS account_code, a.name AS account_name, a.category,
			l.debit, l.credit
		FROM journal_entries e
		LEFT JOIN journal_lines l ON l.entry_id = e.entry_id
		LEFT JOIN accounts a ON a.workplace_id = e.workplace_id AND a.code = l.account_code
		WHERE e.workplace_id = $1
			AND e.entry_date >= $2::date
			AND e.entry_date < $3::date
		ORDER BY e.entry_date, e.entry_id, l.line_no
	`
	rows, err := r.Pool.Query(ctx, query, workplaceID, period.Start, period.End)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for workplace "+workplaceID, err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntryLineRow])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect journal entry rows", err)
	}
	return mapping.ToDomainJournalEntries(collected), nil
}

// LoadActivityMappings retrieves the cash flow classification of a workplace.
func (r *PgxLedgerRepository) LoadActivityMappings(ctx context.Context, workplaceID string) ([]domain.ActivityMapping, error) {
	query := `
		SELECT code_prefix, activity
		FROM account_activity_mappings
		WHERE workplace_id = $1
		ORDER BY code_prefix
	`
	rows, err := r.Pool.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activity mappings", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ActivityMappingRow])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect activity mapping rows", err)
	}
	return mapping.ToDomainActivityMappings(collected), nil
}

// LedgerVersion returns the workplace revision, which a trigger on
// journal_entries bumps for every entry insert, update or delete. Line writes
// touch their entry, so they bump it too.
func (r *PgxLedgerRepository) LedgerVersion(ctx context.Context, workplaceID string) (string, error) {
	query := `
		SELECT COALESCE((SELECT revision FROM ledger_revisions WHERE workplace_id = $1), 0)
	`
	var revision int64
	if err := r.Pool.QueryRow(ctx, query, workplaceID).Scan(&revision); err != nil {
		return "", apperrors.NewAppError(500, "failed to read ledger version", err)
	}
	return formatLedgerVersion(revision), nil
}

func formatLedgerVersion(revision int64) string {
	return "r" + strconv.FormatInt(revision, 10)
}

// ListWorkplaceIDs lists every workplace with at least one journal entry.
func (r *PgxLedgerRepository) ListWorkplaceIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT workplace_id FROM journal_entries ORDER BY workplace_id`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledger workplaces", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect workplace ids", err)
	}
	return ids, nil
}
