package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/core/compliance"
	"github.com/SscSPs/ledger_aggregator/internal/core/services"
	"github.com/SscSPs/ledger_aggregator/internal/handlers"
	"github.com/SscSPs/ledger_aggregator/internal/jobs"
	"github.com/SscSPs/ledger_aggregator/internal/middleware"
	"github.com/SscSPs/ledger_aggregator/internal/platform/cache"
	"github.com/SscSPs/ledger_aggregator/internal/platform/config"
	"github.com/SscSPs/ledger_aggregator/internal/platform/metrics"
	"github.com/SscSPs/ledger_aggregator/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_aggregator/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Ledger Aggregator API
// @version 1.0
// @description Financial statements, compliance scores and loan sources computed from a double-entry ledger.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL, logger)
		if err != nil {
			logger.Error("Database migrations failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}
	}

	// Report cache; a missing or unreachable Redis only disables caching
	redisClient, closeRedis := cache.Connect(ctx, cfg.RedisAddr, logger)
	defer closeRedis()
	reportCache := cache.NewCache(redisClient, cfg.ReportCacheTTL, logger)
	if err := reportCache.ListenForInvalidation(ctx, cache.BumpChannel); err != nil {
		logger.Warn("Failed to subscribe to cache invalidation", slog.String("error", err.Error()))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(registry)

	catalog, err := compliance.LoadCatalog(cfg.ComplianceRulesFile, compliance.NewRegistry())
	if err != nil {
		logger.Error("Failed to load compliance rules", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Compliance rules loaded", slog.Any("schemes", catalog.Schemes()))

	// On-demand integrity checks go through the worker's queue
	var integrityQueue *jobs.Client
	if redisClient != nil {
		integrityQueue = jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := integrityQueue.Close(); err != nil {
				logger.Warn("Failed to close task queue client", slog.String("error", err.Error()))
			}
		}()
	}

	repoProvider := pgsql.NewRepositoryProvider(dbPool)
	deps := services.Dependencies{
		Cache:    reportCache,
		Metrics:  appMetrics,
		RuleSets: catalog,
	}
	if integrityQueue != nil {
		deps.Queue = integrityQueue
	}
	serviceContainer := services.NewServiceContainer(repoProvider, deps)

	limiterInstance, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, metrics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics(appMetrics))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(r, cfg, serviceContainer, middleware.RateLimit(limiterInstance))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
