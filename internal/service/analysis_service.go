package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"signal-desk/internal/domain"
	"signal-desk/internal/provider"
	"signal-desk/internal/signal"
)

const defaultFetchTimeout = 10 * time.Second

type AnalysisEngine interface {
	Strategy(mode domain.Mode) (domain.StrategyConfig, error)
	Evaluate(in signal.Input) (*domain.Analysis, error)
}

// AnalysisService fetches the series and live price for a request concurrently and hands both
// to the engine.
type AnalysisService struct {
	tracer  trace.Tracer
	series  provider.SeriesProvider
	live    provider.LivePriceProvider
	engine  AnalysisEngine
	timeout time.Duration
	logger  zerolog.Logger
}

func NewAnalysisService(
	tracer trace.Tracer,
	series provider.SeriesProvider,
	live provider.LivePriceProvider,
	engine AnalysisEngine,
	timeout time.Duration,
	logger zerolog.Logger,
) *AnalysisService {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &AnalysisService{
		tracer:  tracer,
		series:  series,
		live:    live,
		engine:  engine,
		timeout: timeout,
		logger:  logger.With().Str("component", "analysis-service").Logger(),
	}
}

// Analyze validates the request and returns a full analysis. Validation failures wrap
// domain.ErrUnsupportedSymbol or domain.ErrUnsupportedMode; everything else wraps
// domain.ErrNoResult.
func (s *AnalysisService) Analyze(ctx context.Context, symbol, mode string) (*domain.Analysis, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze")
	defer span.End()

	inst, ok := domain.LookupInstrument(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSymbol, symbol)
	}
	m, err := domain.ParseMode(mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, mode)
	}
	span.SetAttributes(attribute.String("symbol", inst.Symbol), attribute.String("mode", string(m)))

	if s.series == nil || s.engine == nil {
		return nil, fmt.Errorf("analysis service is not fully initialized")
	}
	cfg, err := s.engine.Strategy(m)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		bars    domain.Series
		label   string
		live    float64
		hasLive bool
	)
	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		var err error
		bars, label, err = s.series.FetchSeries(gctx, inst, cfg.Interval, cfg.LookbackPeriod)
		if err != nil {
			return fmt.Errorf("fetch series: %w", err)
		}
		return nil
	})
	if s.live != nil {
		g.Go(func() error {
			price, err := s.live.FetchLivePrice(gctx, inst)
			if err != nil {
				s.logger.Debug().Err(err).Str("symbol", inst.Symbol).Msg("live price unavailable, using raw close")
				return nil
			}
			live, hasLive = price, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "series unavailable")
		s.logger.Warn().Err(err).Str("symbol", inst.Symbol).Str("mode", string(m)).Msg("analysis fetch failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrNoResult, err)
	}

	analysis, err := s.engine.Evaluate(signal.Input{
		Instrument:   inst,
		Mode:         m,
		Series:       bars,
		SourceLabel:  label,
		LivePrice:    live,
		HasLivePrice: hasLive,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("bias", string(analysis.Bias)),
		attribute.Bool("live", analysis.Calibration.IsLive),
		attribute.Int("bars", analysis.BarCount),
	)
	return analysis, nil
}
