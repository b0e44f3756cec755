package services_test

import (
	"context"
	"iter"
	"sync/atomic"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_aggregator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerReader ---
type MockLedgerRepository struct {
	mock.Mock
	passes atomic.Int32 // iterations over streamed lines
}

var _ portsrepo.LedgerReader = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) LoadPostedLines(ctx context.Context, workplaceID string, q portsrepo.LineQuery, fn func(iter.Seq[domain.LedgerLine]) error) error {
	args := m.Called(ctx, workplaceID, q)
	if err := args.Error(1); err != nil {
		return err
	}
	var lines []domain.LedgerLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.LedgerLine)
	}
	return fn(m.oneShot(lines))
}

// oneShot mirrors the row stream of a snapshot: it can be ranged over once.
func (m *MockLedgerRepository) oneShot(lines []domain.LedgerLine) iter.Seq[domain.LedgerLine] {
	var used atomic.Bool
	return func(yield func(domain.LedgerLine) bool) {
		if used.Swap(true) {
			panic("ledger line stream ranged over twice")
		}
		m.passes.Add(1)
		for _, l := range lines {
			if !yield(l) {
				return
			}
		}
	}
}

// Passes reports how many times streamed lines were ranged over.
func (m *MockLedgerRepository) Passes() int {
	return int(m.passes.Load())
}

func (m *MockLedgerRepository) LoadEntries(ctx context.Context, workplaceID string, period domain.Period) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, workplaceID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) LoadActivityMappings(ctx context.Context, workplaceID string) ([]domain.ActivityMapping, error) {
	args := m.Called(ctx, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityMapping), args.Error(1)
}

func (m *MockLedgerRepository) LedgerVersion(ctx context.Context, workplaceID string) (string, error) {
	args := m.Called(ctx, workplaceID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerRepository) ListWorkplaceIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock LedgerSourceReader ---
type MockSourceRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerSourceReader = (*MockSourceRepository)(nil)

func (m *MockSourceRepository) ListLoans(ctx context.Context, workplaceID string, after *portsrepo.SourceCursor, limit int) ([]domain.LoanRecord, error) {
	args := m.Called(ctx, workplaceID, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanRecord), args.Error(1)
}

func (m *MockSourceRepository) ListApplications(ctx context.Context, workplaceID string, after *portsrepo.SourceCursor, limit int) ([]domain.ApplicationRecord, error) {
	args := m.Called(ctx, workplaceID, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationRecord), args.Error(1)
}

// --- Mock WorkplaceMembershipReader ---
type MockWorkplaceRepository struct {
	mock.Mock
}

var _ portsrepo.WorkplaceMembershipReader = (*MockWorkplaceRepository)(nil)

func (m *MockWorkplaceRepository) FindUserWorkplaceRole(ctx context.Context, userID, workplaceID string) (*domain.UserWorkplace, error) {
	args := m.Called(ctx, userID, workplaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserWorkplace), args.Error(1)
}

// --- Fixtures ---
var (
	cashAccount    = domain.Account{Code: "1000", Name: "Cash", Category: domain.Asset}
	loanAccount    = domain.Account{Code: "2000", Name: "Bank loan", Category: domain.Liability}
	capitalAccount = domain.Account{Code: "3000", Name: "Capital", Category: domain.Equity}
	salesAccount   = domain.Account{Code: "4000", Name: "Sales", Category: domain.Revenue}
	rentAccount    = domain.Account{Code: "5000", Name: "Rent", Category: domain.Expense}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func line(entryID string, date time.Time, acc domain.Account, debit, credit int64) domain.LedgerLine {
	return domain.LedgerLine{
		EntryID:     entryID,
		EntryDate:   date,
		EntryStatus: domain.Posted,
		Account:     acc,
		Debit:       decimal.NewFromInt(debit),
		Credit:      decimal.NewFromInt(credit),
	}
}

// sampleLines books capital, a sale and rent within January 2024.
func sampleLines() []domain.LedgerLine {
	return []domain.LedgerLine{
		line("je-1", day(2024, 1, 2), cashAccount, 1000, 0),
		line("je-1", day(2024, 1, 2), capitalAccount, 0, 1000),
		line("je-2", day(2024, 1, 10), cashAccount, 500, 0),
		line("je-2", day(2024, 1, 10), salesAccount, 0, 500),
		line("je-3", day(2024, 1, 20), rentAccount, 200, 0),
		line("je-3", day(2024, 1, 20), cashAccount, 0, 200),
	}
}

var january = domain.NewPeriodInclusive(day(2024, 1, 1), day(2024, 1, 31))

// --- Mock IntegrityQueue ---
type MockIntegrityQueue struct {
	mock.Mock
}

var _ portssvc.IntegrityQueue = (*MockIntegrityQueue)(nil)

func (m *MockIntegrityQueue) EnqueueIntegrity(ctx context.Context, workplaceID string, asOf time.Time) (*domain.IntegrityRequest, error) {
	args := m.Called(ctx, workplaceID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityRequest), args.Error(1)
}
