package services

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_aggregator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/SscSPs/ledger_aggregator/internal/platform/metrics"
)

// integrityService implements the IntegritySvc interface
type integrityService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	metrics    *metrics.Metrics
}

// IntegrityServiceOption is a functional option for configuring the integrity service
type IntegrityServiceOption func(*integrityService)

// WithIntegrityMetrics counts the imbalances found by each check.
func WithIntegrityMetrics(m *metrics.Metrics) IntegrityServiceOption {
	return func(s *integrityService) {
		s.metrics = m
	}
}

// NewIntegrityService creates the service behind the scheduled ledger checks.
func NewIntegrityService(repo portsrepo.LedgerReader, options ...IntegrityServiceOption) portssvc.IntegritySvc {
	svc := &integrityService{ledgerRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IntegritySvc = (*integrityService)(nil)

// ListWorkplaceIDs lists the workplaces that carry a ledger.
func (s *integrityService) ListWorkplaceIDs(ctx context.Context) ([]string, error) {
	ids, err := s.ledgerRepo.ListWorkplaceIDs(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workplaces with a ledger")
		return nil, fmt.Errorf("failed to list workplaces: %w", err)
	}
	return ids, nil
}

// CheckIntegrity recomputes the whole-ledger trial balance and the balance
// sheet as of asOf from one snapshot and reports every discrepancy.
func (s *integrityService) CheckIntegrity(ctx context.Context, workplaceID string, asOf time.Time) (*domain.IntegrityReport, error) {
	if asOf.IsZero() {
		return nil, apperrors.NewInputError("asOf", "date is required")
	}
	cutoff := domain.NewPeriodInclusive(asOf, asOf).End

	var position *ledger.Position
	err := s.ledgerRepo.LoadPostedLines(ctx, workplaceID, portsrepo.LineQuery{To: cutoff}, func(seq iter.Seq[domain.LedgerLine]) error {
		var err error
		position, err = ledger.ComputePosition(seq, asOf)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to check ledger integrity",
			slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to check ledger integrity: %w", err)
	}

	tb, bs := position.TrialBalance, position.BalanceSheet
	unbalanced := position.UnbalancedEntries
	uncategorized := position.UncategorizedAccounts
	report := &domain.IntegrityReport{
		WorkplaceID:            workplaceID,
		AsOf:                   asOf,
		TrialBalanceDifference: tb.Difference,
		BalanceSheetDifference: bs.TotalAssets.Sub(bs.TotalLiabilitiesEquity),
		UnbalancedEntries:      unbalanced,
		UncategorizedAccounts:  uncategorized,
		Warnings:               tb.Warnings,
	}

	s.metrics.AddImbalances("unbalanced_entry", unbalanced)
	if !bs.IsBalanced {
		s.metrics.AddImbalances("balance_sheet", 1)
	}

	if report.Healthy() {
		s.LogInfo(ctx, "Ledger integrity check passed",
			slog.String("workplace_id", workplaceID),
			slog.Int("account_count", len(tb.Rows)))
	} else {
		s.LogWarn(ctx, "Ledger integrity check found discrepancies",
			slog.String("workplace_id", workplaceID),
			slog.String("trial_balance_difference", report.TrialBalanceDifference.String()),
			slog.String("balance_sheet_difference", report.BalanceSheetDifference.String()),
			slog.Int("unbalanced_entries", unbalanced),
			slog.Int("uncategorized_accounts", uncategorized))
	}
	return report, nil
}
