// Package app assembles providers, caches and services from configuration for the binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"signal-desk/internal/cache"
	"signal-desk/internal/config"
	"signal-desk/internal/db"
	"signal-desk/internal/job"
	"signal-desk/internal/provider"
	"signal-desk/internal/repository"
	"signal-desk/internal/service"
	"signal-desk/internal/signal"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type App struct {
	Engine   *signal.Engine
	Analysis *service.AnalysisService
	Quotes   *service.QuoteService
	Warmer   *job.QuoteWarmer

	pool  *pgxpool.Pool
	redis *redis.Client
}

func Build(ctx context.Context, cfg *config.Config, tracer trace.Tracer, logger zerolog.Logger) (*App, error) {
	strategies, err := config.LoadStrategies(cfg.StrategyConfigPath, signal.DefaultStrategies())
	if err != nil {
		return nil, err
	}
	selector, err := signal.NewSelector(strategies)
	if err != nil {
		return nil, fmt.Errorf("strategy config: %w", err)
	}
	engine := signal.NewEngine(selector,
		signal.WithCalibrationThreshold(cfg.CalibrationThreshold),
		signal.WithReasonLimit(cfg.ReasonLimit),
		signal.WithLogger(logger),
	)

	pool, err := db.InitPostgres(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	a := &App{Engine: engine, pool: pool}

	var archive provider.Archive
	if pool != nil {
		bars := repository.NewBarRepository(pool, tracer)
		if err := bars.EnsureSchema(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("bar archive schema: %w", err)
		}
		archive = bars
	}

	a.redis = cache.InitRedis(ctx, cfg.RedisURL, logger)

	fetchTimeout := time.Duration(cfg.FetchTimeoutSecs) * time.Second
	yahoo := provider.NewYahooClient(cfg.YahooBaseURL, fetchTimeout)
	binance := provider.NewBinanceClient(cfg.BinanceBaseURL, fetchTimeout)

	series := provider.NewCachedSeriesProvider(
		a.redis,
		time.Duration(cfg.SeriesCacheSecs)*time.Second,
		provider.NewSeriesLadder(yahoo, archive, logger),
		"series",
	)
	live := provider.NewCachedLivePriceProvider(
		a.redis,
		time.Duration(cfg.PriceCacheSecs)*time.Second,
		provider.NewLiveChain(logger, yahoo, binance),
		"price",
	)

	a.Analysis = service.NewAnalysisService(tracer, series, live, engine, fetchTimeout, logger)
	a.Quotes = service.NewQuoteService(tracer, yahoo)
	a.Warmer = job.NewQuoteWarmer(tracer, live, cfg.QuoteWarmSpec, logger)
	return a, nil
}

// Close releases the database pool and Redis client.
func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
