package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance lists debit and credit totals per account for the period,
	// optionally restricted to one account category.
	TrialBalance(ctx context.Context, workplaceID string, period domain.Period, category *domain.AccountCategory, userID string) (*domain.TrialBalance, error)

	// BalanceSheet generates the statement of financial position as of a date.
	BalanceSheet(ctx context.Context, workplaceID string, asOf time.Time, detail domain.DetailLevel, userID string) (*domain.BalanceSheet, error)

	// IncomeStatement generates revenue, expenses and net income for the period.
	IncomeStatement(ctx context.Context, workplaceID string, period domain.Period, userID string) (*domain.IncomeStatement, error)

	// CashFlow summarises cash movement per activity for the period.
	CashFlow(ctx context.Context, workplaceID string, period domain.Period, userID string) (*domain.CashFlowSummary, error)

	// ComplianceScore evaluates the named compliance scheme against the period.
	ComplianceScore(ctx context.Context, workplaceID, scheme string, period domain.Period, userID string) (*domain.ComplianceResult, error)
}

// IntegritySvc defines the scheduled ledger health checks
type IntegritySvc interface {
	// ListWorkplaceIDs lists the workplaces that carry a ledger.
	ListWorkplaceIDs(ctx context.Context) ([]string, error)

	// CheckIntegrity recomputes the trial balance and balance sheet as of a date
	// and reports any imbalance found.
	CheckIntegrity(ctx context.Context, workplaceID string, asOf time.Time) (*domain.IntegrityReport, error)
}
