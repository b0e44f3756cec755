package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/ledger_aggregator/internal/core/services"
	"github.com/SscSPs/ledger_aggregator/internal/jobs"
	"github.com/SscSPs/ledger_aggregator/internal/platform/config"
	"github.com/SscSPs/ledger_aggregator/internal/platform/metrics"
	"github.com/SscSPs/ledger_aggregator/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_aggregator/pkg/database"
	"github.com/hibiken/asynq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error("REDIS_ADDR is required by the integrity worker")
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	// Job metrics go to the default registerer; the worker exposes no HTTP surface
	jobMetrics := metrics.NewMetrics(nil)
	repos := pgsql.NewRepositoryProvider(dbPool)
	integrity := services.NewIntegrityService(repos.LedgerRepo, services.WithIntegrityMetrics(jobMetrics))
	integrityJob := jobs.NewIntegrityJob(integrity, logger, jobMetrics)

	integrityTask, err := jobs.NewIntegrityTask(jobs.IntegrityPayload{})
	if err != nil {
		logger.Error("Failed to build integrity task", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cron []jobs.CronRegistration
	if cfg.IntegrityCron != "" {
		cron = append(cron, jobs.CronRegistration{
			Spec:    cfg.IntegrityCron,
			Task:    integrityTask,
			Options: []asynq.Option{asynq.MaxRetry(3)},
		})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLedgerIntegrity, Handler: integrityJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("Failed to initialize worker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Integrity worker starting", slog.String("cron", cfg.IntegrityCron))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
