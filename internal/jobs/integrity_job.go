package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/SscSPs/ledger_aggregator/internal/middleware"
	"github.com/SscSPs/ledger_aggregator/internal/platform/metrics"
	"github.com/hibiken/asynq"
)

// IntegrityJob checks that each workplace ledger still balances.
type IntegrityJob struct {
	integrity portssvc.IntegritySvc
	logger    *slog.Logger
	metrics   *metrics.Metrics
	clock     func() time.Time
}

// NewIntegrityJob initialises the integrity handler. Logger and metrics are optional.
func NewIntegrityJob(integrity portssvc.IntegritySvc, logger *slog.Logger, m *metrics.Metrics) *IntegrityJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntegrityJob{
		integrity: integrity,
		logger:    logger,
		metrics:   m,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes one integrity run. A failing workplace does not stop the
// others; their errors are joined and the task is retried.
func (j *IntegrityJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.integrity == nil {
		return errors.New("ledger integrity: handler not configured")
	}
	var payload IntegrityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("ledger integrity: decode payload: %v: %w", err, asynq.SkipRetry)
	}
	asOf, err := j.asOf(payload)
	if err != nil {
		return fmt.Errorf("ledger integrity: %v: %w", err, asynq.SkipRetry)
	}

	tracker := j.metrics.TrackJob(TaskLedgerIntegrity)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger.With(slog.String("job", TaskLedgerIntegrity), slog.String("as_of", asOf.Format(time.DateOnly)))
	ctx = middleware.WithLogger(ctx, logger)
	start := time.Now()
	logger.Info("Starting ledger integrity check")

	workplaces := []string{payload.WorkplaceID}
	if payload.WorkplaceID == "" {
		workplaces, err = j.integrity.ListWorkplaceIDs(ctx)
		if err != nil {
			logger.Error("Failed to list workplaces", slog.String("error", err.Error()))
			return err
		}
	}

	var errs []error
	unhealthy := 0
	for _, workplaceID := range workplaces {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		report, err := j.integrity.CheckIntegrity(ctx, workplaceID, asOf)
		if err != nil {
			errs = append(errs, fmt.Errorf("workplace %s: %w", workplaceID, err))
			continue
		}
		if !report.Healthy() {
			unhealthy++
			j.logUnhealthy(logger, report)
		}
	}

	logger.Info("Completed ledger integrity check",
		slog.Int("workplaces", len(workplaces)),
		slog.Int("unhealthy", unhealthy),
		slog.Int("failed", len(errs)),
		slog.Duration("duration", time.Since(start)),
	)
	return errors.Join(errs...)
}

func (j *IntegrityJob) asOf(payload IntegrityPayload) (time.Time, error) {
	if payload.AsOf == "" {
		now := j.clock()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	asOf, err := time.Parse(time.DateOnly, payload.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid asOf %q", payload.AsOf)
	}
	return asOf, nil
}

func (j *IntegrityJob) logUnhealthy(logger *slog.Logger, report *domain.IntegrityReport) {
	logger.Warn("Ledger integrity issue detected",
		slog.String("workplace_id", report.WorkplaceID),
		slog.String("trial_balance_difference", report.TrialBalanceDifference.String()),
		slog.String("balance_sheet_difference", report.BalanceSheetDifference.String()),
		slog.Int("unbalanced_entries", report.UnbalancedEntries),
		slog.Int("uncategorized_accounts", report.UncategorizedAccounts),
		slog.Any("warnings", report.Warnings),
	)
}
