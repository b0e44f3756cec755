package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/hibiken/asynq"
)

// Worker wraps the asynq server and optional scheduler.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// TaskHandler binds a task type to its handler.
type TaskHandler struct {
	Type    string
	Handler asynq.HandlerFunc
}

// CronRegistration wires a cron expression to a prepared task.
type CronRegistration struct {
	Spec    string
	Task    *asynq.Task
	Options []asynq.Option
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts   asynq.RedisConnOpt
	Logger      *slog.Logger
	Concurrency int
	Handlers    []TaskHandler
	Cron        []CronRegistration
}

// NewWorker constructs a Worker instance.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.RedisOpts == nil {
		return nil, errors.New("worker: redis connection required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 2
	}

	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			QueueDefault: 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			cfg.Logger.Error("Task failed", slog.String("task", task.Type()), slog.String("error", err.Error()))
		}),
	})
	mux := asynq.NewServeMux()
	for _, h := range cfg.Handlers {
		if h.Type == "" || h.Handler == nil {
			continue
		}
		mux.HandleFunc(h.Type, h.Handler)
	}

	var scheduler *asynq.Scheduler
	if len(cfg.Cron) > 0 {
		scheduler = asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
		for _, entry := range cfg.Cron {
			if entry.Spec == "" || entry.Task == nil {
				continue
			}
			if _, err := scheduler.Register(entry.Spec, entry.Task, entry.Options...); err != nil {
				return nil, err
			}
		}
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return err
		}
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	w.logger.Info("Worker started")
	select {
	case <-ctx.Done():
		if w.scheduler != nil {
			w.scheduler.Shutdown()
		}
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		if w.scheduler != nil {
			w.scheduler.Shutdown()
		}
		return err
	}
}

// Client submits integrity tasks on demand.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an asynq client.
func NewClient(redisOpts asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

var _ portssvc.IntegrityQueue = (*Client)(nil)

// EnqueueIntegrity queues a check of one workplace as of a date. Repeated
// requests for the same workplace and date while one is pending collapse
// into the first.
func (c *Client) EnqueueIntegrity(ctx context.Context, workplaceID string, asOf time.Time) (*domain.IntegrityRequest, error) {
	date := asOf.Format(time.DateOnly)
	task, err := NewIntegrityTask(IntegrityPayload{WorkplaceID: workplaceID, AsOf: date})
	if err != nil {
		return nil, err
	}
	req := &domain.IntegrityRequest{
		TaskID:      onDemandTaskID(workplaceID, date),
		Queue:       QueueDefault,
		WorkplaceID: workplaceID,
		AsOf:        asOf,
	}
	info, err := c.client.EnqueueContext(ctx, task, asynq.TaskID(req.TaskID))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return req, nil
	}
	if err != nil {
		return nil, err
	}
	req.Queue = info.Queue
	return req, nil
}

func onDemandTaskID(workplaceID, date string) string {
	return "integrity:" + workplaceID + ":" + date
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
