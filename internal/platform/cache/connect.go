package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Connect dials Redis at addr and pings it. When addr is empty or the server
// does not answer it returns a nil client, which disables caching; the
// returned close func is always safe to call.
func Connect(ctx context.Context, addr string, logger *slog.Logger) (*redis.Client, func()) {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, report cache disabled",
			slog.String("addr", addr),
			slog.String("error", err.Error()))
		closeClient()
		return nil, func() {}
	}
	return client, closeClient
}
