package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/SscSPs/ledger_aggregator/internal/platform/metrics"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockIntegrity struct {
	mock.Mock
}

func (m *mockIntegrity) ListWorkplaceIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockIntegrity) CheckIntegrity(ctx context.Context, workplaceID string, asOf time.Time) (*domain.IntegrityReport, error) {
	args := m.Called(ctx, workplaceID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntegrityReport), args.Error(1)
}

var fixedNow = time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC)

func newTestJob(svc *mockIntegrity) *IntegrityJob {
	job := NewIntegrityJob(svc, nil, metrics.NewMetrics(prometheus.NewRegistry()))
	job.clock = func() time.Time { return fixedNow }
	return job
}

func task(t *testing.T, payload IntegrityPayload) *asynq.Task {
	t.Helper()
	tk, err := NewIntegrityTask(payload)
	require.NoError(t, err)
	return tk
}

func TestNewIntegrityTask(t *testing.T) {
	tk := task(t, IntegrityPayload{WorkplaceID: "wp-1", AsOf: "2024-01-31"})
	assert.Equal(t, TaskLedgerIntegrity, tk.Type())

	var decoded IntegrityPayload
	require.NoError(t, json.Unmarshal(tk.Payload(), &decoded))
	assert.Equal(t, "wp-1", decoded.WorkplaceID)
	assert.Equal(t, "2024-01-31", decoded.AsOf)
}

func TestIntegrityJob_ChecksEveryWorkplaceAsOfToday(t *testing.T) {
	svc := new(mockIntegrity)
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	svc.On("ListWorkplaceIDs", mock.Anything).Return([]string{"wp-1", "wp-2"}, nil).Once()
	svc.On("CheckIntegrity", mock.Anything, "wp-1", today).
		Return(&domain.IntegrityReport{WorkplaceID: "wp-1", AsOf: today}, nil).Once()
	svc.On("CheckIntegrity", mock.Anything, "wp-2", today).
		Return(&domain.IntegrityReport{
			WorkplaceID:            "wp-2",
			AsOf:                   today,
			TrialBalanceDifference: decimal.NewFromInt(5),
			UnbalancedEntries:      1,
			Warnings:               []string{"entry je-7 does not balance"},
		}, nil).Once()

	err := newTestJob(svc).Handle(context.Background(), task(t, IntegrityPayload{}))

	require.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestIntegrityJob_SingleWorkplaceWithDate(t *testing.T) {
	svc := new(mockIntegrity)
	asOf := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	svc.On("CheckIntegrity", mock.Anything, "wp-9", asOf).
		Return(&domain.IntegrityReport{WorkplaceID: "wp-9", AsOf: asOf}, nil).Once()

	err := newTestJob(svc).Handle(context.Background(), task(t, IntegrityPayload{WorkplaceID: "wp-9", AsOf: "2024-01-31"}))

	require.NoError(t, err)
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "ListWorkplaceIDs", mock.Anything)
}

func TestIntegrityJob_ContinuesPastFailingWorkplace(t *testing.T) {
	svc := new(mockIntegrity)
	boom := errors.New("snapshot aborted")
	svc.On("ListWorkplaceIDs", mock.Anything).Return([]string{"wp-1", "wp-2"}, nil).Once()
	svc.On("CheckIntegrity", mock.Anything, "wp-1", mock.Anything).Return(nil, boom).Once()
	svc.On("CheckIntegrity", mock.Anything, "wp-2", mock.Anything).
		Return(&domain.IntegrityReport{WorkplaceID: "wp-2"}, nil).Once()

	err := newTestJob(svc).Handle(context.Background(), task(t, IntegrityPayload{}))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "wp-1")
	assert.False(t, errors.Is(err, asynq.SkipRetry))
	svc.AssertExpectations(t)
}

func TestIntegrityJob_BadPayloadSkipsRetry(t *testing.T) {
	svc := new(mockIntegrity)
	job := newTestJob(svc)

	err := job.Handle(context.Background(), asynq.NewTask(TaskLedgerIntegrity, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = job.Handle(context.Background(), task(t, IntegrityPayload{AsOf: "31/01/2024"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	svc.AssertNotCalled(t, "ListWorkplaceIDs", mock.Anything)
}

func TestIntegrityJob_ListFailure(t *testing.T) {
	svc := new(mockIntegrity)
	svc.On("ListWorkplaceIDs", mock.Anything).Return(nil, errors.New("pool closed")).Once()

	err := newTestJob(svc).Handle(context.Background(), task(t, IntegrityPayload{}))

	require.Error(t, err)
	svc.AssertNotCalled(t, "CheckIntegrity", mock.Anything, mock.Anything, mock.Anything)
}

func TestIntegrityJob_NotConfigured(t *testing.T) {
	var job *IntegrityJob
	assert.Error(t, job.Handle(context.Background(), asynq.NewTask(TaskLedgerIntegrity, nil)))
}
