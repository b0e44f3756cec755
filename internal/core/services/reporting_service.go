package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_aggregator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/SscSPs/ledger_aggregator/internal/platform/cache"
	"github.com/SscSPs/ledger_aggregator/internal/platform/metrics"
	"golang.org/x/sync/singleflight"
)

const dateFormat = "2006-01-02"

// RuleSetProvider resolves a compliance scheme name to its rule set.
type RuleSetProvider interface {
	RuleSet(scheme string) (ledger.RuleSet, error)
}

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	cache      *cache.Cache
	metrics    *metrics.Metrics
	rules      RuleSetProvider
	flights    singleflight.Group
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingWorkplaceAuthorizer sets the workplace authorizer for the reporting service.
func WithReportingWorkplaceAuthorizer(authorizer portssvc.WorkplaceAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.WorkplaceAuthorizer = authorizer
	}
}

// WithReportCache stores computed reports in the given cache.
func WithReportCache(c *cache.Cache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = c
	}
}

// WithReportMetrics records report counts, durations and imbalances.
func WithReportMetrics(m *metrics.Metrics) ReportingServiceOption {
	return func(s *reportingService) {
		s.metrics = m
	}
}

// WithRuleSets sets the compliance rule sets used by ComplianceScore.
func WithRuleSets(provider RuleSetProvider) ReportingServiceOption {
	return func(s *reportingService) {
		s.rules = provider
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.LedgerReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		ledgerRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance for the period
func (s *reportingService) TrialBalance(ctx context.Context, workplaceID string, period domain.Period, category *domain.AccountCategory, userID string) (*domain.TrialBalance, error) {
	if err := s.authorizeReport(ctx, "trial balance", userID, workplaceID); err != nil {
		return nil, err
	}
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	categoryParam := "all"
	if category != nil {
		if !category.IsValid() {
			return nil, apperrors.NewInputError("category", fmt.Sprintf("unknown account category '%s'", *category))
		}
		categoryParam = string(*category)
	}

	tb, err := computeReport(ctx, s, "trial_balance", workplaceID, periodParams(period, categoryParam),
		func(ctx context.Context) (*domain.TrialBalance, error) {
			var tb *domain.TrialBalance
			err := s.loadLines(ctx, workplaceID, periodQuery(period), func(lines iter.Seq[domain.LedgerLine]) error {
				var err error
				tb, err = ledger.ComputeTrialBalance(lines, period, category)
				return err
			})
			if err != nil {
				return nil, err
			}
			if !tb.IsBalanced {
				s.metrics.AddImbalances("trial_balance", 1)
				s.LogWarn(ctx, "Trial balance does not balance",
					slog.String("workplace_id", workplaceID),
					slog.String("difference", tb.Difference.String()))
			}
			return tb, nil
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate trial balance",
			slog.String("workplace_id", workplaceID),
			slog.String("from", period.Start.Format(dateFormat)),
			slog.String("to", period.End.Format(dateFormat)))
		return nil, err
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("workplace_id", workplaceID),
		slog.Int("row_count", len(tb.Rows)))
	return tb, nil
}

// BalanceSheet generates the balance sheet as of the given date, inclusive
func (s *reportingService) BalanceSheet(ctx context.Context, workplaceID string, asOf time.Time, detail domain.DetailLevel, userID string) (*domain.BalanceSheet, error) {
	if err := s.authorizeReport(ctx, "balance sheet", userID, workplaceID); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		return nil, apperrors.NewInputError("asOf", "date is required")
	}
	switch detail {
	case "":
		detail = domain.DetailSummary
	case domain.DetailSummary, domain.DetailDetailed:
	default:
		return nil, apperrors.NewInputError("detail", fmt.Sprintf("unknown detail level '%s'", detail))
	}

	cutoff := domain.NewPeriodInclusive(asOf, asOf).End
	bs, err := computeReport(ctx, s, "balance_sheet", workplaceID, []string{asOf.Format(dateFormat), string(detail)},
		func(ctx context.Context) (*domain.BalanceSheet, error) {
			var bs *domain.BalanceSheet
			err := s.loadLines(ctx, workplaceID, portsrepo.LineQuery{To: cutoff}, func(lines iter.Seq[domain.LedgerLine]) error {
				var err error
				bs, err = ledger.ComputeBalanceSheet(lines, asOf, detail)
				return err
			})
			if err != nil {
				return nil, err
			}
			if !bs.IsBalanced {
				s.metrics.AddImbalances("balance_sheet", 1)
				s.LogWarn(ctx, "Balance sheet does not balance",
					slog.String("workplace_id", workplaceID),
					slog.String("total_assets", bs.TotalAssets.String()),
					slog.String("total_liabilities_equity", bs.TotalLiabilitiesEquity.String()))
			}
			return bs, nil
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate balance sheet",
			slog.String("workplace_id", workplaceID),
			slog.String("asOf", asOf.Format(dateFormat)))
		return nil, err
	}

	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("workplace_id", workplaceID),
		slog.String("asOf", asOf.Format(dateFormat)),
		slog.Bool("balanced", bs.IsBalanced))
	return bs, nil
}

// IncomeStatement generates revenue, expenses and net income for the period
func (s *reportingService) IncomeStatement(ctx context.Context, workplaceID string, period domain.Period, userID string) (*domain.IncomeStatement, error) {
	if err := s.authorizeReport(ctx, "income statement", userID, workplaceID); err != nil {
		return nil, err
	}
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	is, err := computeReport(ctx, s, "income_statement", workplaceID, periodParams(period),
		func(ctx context.Context) (*domain.IncomeStatement, error) {
			var is *domain.IncomeStatement
			err := s.loadLines(ctx, workplaceID, periodQuery(period), func(lines iter.Seq[domain.LedgerLine]) error {
				var err error
				is, err = ledger.ComputeIncomeStatement(lines, period)
				return err
			})
			return is, err
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate income statement",
			slog.String("workplace_id", workplaceID),
			slog.String("from", period.Start.Format(dateFormat)),
			slog.String("to", period.End.Format(dateFormat)))
		return nil, err
	}

	s.LogInfo(ctx, "Income statement generated successfully",
		slog.String("workplace_id", workplaceID),
		slog.String("net_income", is.NetIncome.String()))
	return is, nil
}

// CashFlow summarises cash movement per activity for the period
func (s *reportingService) CashFlow(ctx context.Context, workplaceID string, period domain.Period, userID string) (*domain.CashFlowSummary, error) {
	if err := s.authorizeReport(ctx, "cash flow", userID, workplaceID); err != nil {
		return nil, err
	}
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	mappings, err := s.ledgerRepo.LoadActivityMappings(ctx, workplaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load activity mappings",
			slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to load activity mappings: %w", err)
	}
	if len(mappings) == 0 {
		return nil, apperrors.NewInputError("activityMappings", "workplace has no cash flow activity mappings")
	}
	classifier := ledger.NewPrefixClassifier(mappings)

	cf, err := computeReport(ctx, s, "cash_flow", workplaceID, periodParams(period, mappingsFingerprint(mappings)),
		func(ctx context.Context) (*domain.CashFlowSummary, error) {
			var cf *domain.CashFlowSummary
			err := s.loadLines(ctx, workplaceID, periodQuery(period), func(lines iter.Seq[domain.LedgerLine]) error {
				var err error
				cf, err = ledger.ComputeCashFlow(lines, period, classifier)
				return err
			})
			return cf, err
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate cash flow summary",
			slog.String("workplace_id", workplaceID),
			slog.String("from", period.Start.Format(dateFormat)),
			slog.String("to", period.End.Format(dateFormat)))
		return nil, err
	}

	s.LogInfo(ctx, "Cash flow summary generated successfully",
		slog.String("workplace_id", workplaceID),
		slog.String("net_cash_change", cf.NetCashChange.String()))
	return cf, nil
}

// ComplianceScore evaluates the named scheme against the entries of the period
func (s *reportingService) ComplianceScore(ctx context.Context, workplaceID, scheme string, period domain.Period, userID string) (*domain.ComplianceResult, error) {
	if err := s.authorizeReport(ctx, "compliance score", userID, workplaceID); err != nil {
		return nil, err
	}
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	if s.rules == nil {
		return nil, &apperrors.InputError{Field: "scheme", Reason: "no compliance rule sets are configured", Err: apperrors.ErrUnknownRuleSet}
	}
	rules, err := s.rules.RuleSet(scheme)
	if err != nil {
		return nil, err
	}

	result, err := computeReport(ctx, s, "compliance", workplaceID, periodParams(period, rules.Name),
		func(ctx context.Context) (*domain.ComplianceResult, error) {
			entries, err := s.ledgerRepo.LoadEntries(ctx, workplaceID, period)
			if err != nil {
				return nil, fmt.Errorf("failed to load journal entries: %w", err)
			}
			var opts []ledger.EvidenceOption
			if rules.NeedsPosition() {
				var bs *domain.BalanceSheet
				err := s.loadLines(ctx, workplaceID, portsrepo.LineQuery{To: period.End}, func(lines iter.Seq[domain.LedgerLine]) error {
					var err error
					bs, err = ledger.ComputeBalanceSheet(lines, lastDay(period), domain.DetailSummary)
					return err
				})
				if err != nil {
					return nil, err
				}
				opts = append(opts, ledger.WithPosition(bs))
			}
			return ledger.ComputeComplianceScore(entries, period, rules, opts...)
		})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute compliance score",
			slog.String("workplace_id", workplaceID),
			slog.String("scheme", scheme))
		return nil, err
	}

	s.LogInfo(ctx, "Compliance score computed successfully",
		slog.String("workplace_id", workplaceID),
		slog.String("scheme", result.Scheme),
		slog.Int("score", result.Score))
	return result, nil
}

// authorizeReport checks read access (ReadOnly is sufficient for viewing reports).
func (s *reportingService) authorizeReport(ctx context.Context, report, userID, workplaceID string) error {
	if err := s.AuthorizeUser(ctx, userID, workplaceID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view "+report+" report",
			slog.String("user_id", userID),
			slog.String("workplace_id", workplaceID))
		return err
	}
	return nil
}

func (s *reportingService) loadLines(ctx context.Context, workplaceID string, q portsrepo.LineQuery, fn func(iter.Seq[domain.LedgerLine]) error) error {
	if err := s.ledgerRepo.LoadPostedLines(ctx, workplaceID, q, fn); err != nil {
		return fmt.Errorf("failed to load ledger lines: %w", err)
	}
	return nil
}

// computeReport runs build at most once per cache key at a time and serves
// the result from the report cache when present. The key embeds the ledger
// version so that any write to the workplace ledger yields a fresh key.
// Concurrent callers of one key share the returned value, which must be
// treated as read-only.
func computeReport[T any](ctx context.Context, s *reportingService, statement, workplaceID string, params []string, build func(context.Context) (*T, error)) (*T, error) {
	tracker := s.metrics.TrackReport(statement)

	version, err := s.ledgerRepo.LedgerVersion(ctx, workplaceID)
	if err != nil {
		return nil, tracker.End(fmt.Errorf("failed to read ledger version: %w", err))
	}
	parts := append([]string{"ledger", statement, workplaceID, version}, params...)
	key, err := s.cache.BuildKey(ctx, parts...)
	if err != nil {
		s.LogWarn(ctx, "Report cache unavailable, computing without it",
			slog.String("statement", statement),
			slog.String("error", err.Error()))
		key = strings.Join(parts, ":")
	}

	resultChan := s.flights.DoChan(key, func() (any, error) {
		// The flight outlives any single caller, so it keeps their values but not their cancellation.
		flightCtx := context.WithoutCancel(ctx)
		report := new(T)
		hit, err := s.cache.FetchJSON(flightCtx, key, report, func(ctx context.Context) (any, error) {
			return build(ctx)
		})
		if err != nil {
			return nil, err
		}
		s.metrics.CacheLookup(statement, hit)
		return report, nil
	})

	select {
	case <-ctx.Done():
		return nil, tracker.End(ctx.Err())
	case res := <-resultChan:
		if res.Err != nil {
			return nil, tracker.End(res.Err)
		}
		return res.Val.(*T), tracker.End(nil)
	}
}

func checkPeriod(period domain.Period) error {
	if period.Start.IsZero() || period.End.IsZero() {
		return apperrors.NewInputError("period", "fromDate and toDate are required")
	}
	if !period.IsValid() {
		return apperrors.NewInputError("period", fmt.Sprintf("start %s is after end %s",
			period.Start.Format(dateFormat), period.End.Format(dateFormat)))
	}
	return nil
}

// lastDay is the final calendar day covered by period.
func lastDay(period domain.Period) time.Time {
	last := period.End.AddDate(0, 0, -1)
	if last.Before(period.Start) {
		return period.Start
	}
	return last
}

func periodQuery(period domain.Period) portsrepo.LineQuery {
	from := period.Start
	return portsrepo.LineQuery{From: &from, To: period.End}
}

func periodParams(period domain.Period, extra ...string) []string {
	return append([]string{period.Start.Format(dateFormat), period.End.Format(dateFormat)}, extra...)
}

// mappingsFingerprint hashes the activity mappings so a reclassification
// never serves a cash flow computed under the old mapping.
func mappingsFingerprint(mappings []domain.ActivityMapping) string {
	h := fnv.New64a()
	for _, m := range mappings {
		fmt.Fprintf(h, "%s=%s;", m.CodePrefix, m.Activity)
	}
	return fmt.Sprintf("%x", h.Sum64())
}
