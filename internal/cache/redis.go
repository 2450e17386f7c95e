package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const pingTimeout = 3 * time.Second

// InitRedis connects to addr, which may be host:port or a redis:// URL. An unreachable server
// yields a nil client so callers run uncached.
func InitRedis(ctx context.Context, addr string, logger zerolog.Logger) *redis.Client {
	logger = logger.With().Str("component", "redis").Logger()
	if strings.TrimSpace(addr) == "" {
		logger.Info().Msg("REDIS_URL not set, running without cache")
		return nil
	}

	opts, err := options(addr)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid REDIS_URL, running without cache")
		return nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", opts.Addr).Msg("Redis unreachable, running without cache")
		_ = client.Close()
		return nil
	}
	logger.Info().Str("addr", opts.Addr).Msg("Connected to Redis")
	return client
}

func options(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		return redis.ParseURL(addr)
	}
	return &redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}, nil
}
