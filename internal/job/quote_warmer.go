package job

import (
	"context"
	"fmt"
	"sync/atomic"

	"signal-desk/internal/domain"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const warmConcurrency = 2

type PriceRefresher interface {
	Refresh(ctx context.Context, inst domain.Instrument) (float64, error)
}

// QuoteWarmer keeps the cached live price of every instrument fresh on a cron schedule.
type QuoteWarmer struct {
	tracer      trace.Tracer
	refresher   PriceRefresher
	spec        string
	instruments []domain.Instrument
	logger      zerolog.Logger
	runs        atomic.Int64
}

func NewQuoteWarmer(tracer trace.Tracer, refresher PriceRefresher, spec string, logger zerolog.Logger) *QuoteWarmer {
	return &QuoteWarmer{
		tracer:      tracer,
		refresher:   refresher,
		spec:        spec,
		instruments: domain.Instruments,
		logger:      logger.With().Str("component", "quote-warmer").Logger(),
	}
}

// Start warms once, then on every tick of the schedule. Blocks until ctx is cancelled.
// An empty spec or missing refresher disables the warmer.
func (w *QuoteWarmer) Start(ctx context.Context) error {
	if w.refresher == nil || w.spec == "" {
		w.logger.Info().Msg("quote warmer disabled")
		<-ctx.Done()
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(w.spec, func() { w.WarmAll(ctx) }); err != nil {
		return fmt.Errorf("register quote warmer %q: %w", w.spec, err)
	}

	w.WarmAll(ctx)
	c.Start()
	w.logger.Info().Str("spec", w.spec).Msg("quote warmer started")

	<-ctx.Done()
	<-c.Stop().Done()
	w.logger.Info().Msg("quote warmer stopped")
	return nil
}

// WarmAll refreshes every instrument and returns how many refreshes succeeded.
func (w *QuoteWarmer) WarmAll(ctx context.Context) int {
	ctx, span := w.tracer.Start(ctx, "quote-warmer.warm-all")
	defer span.End()
	w.runs.Add(1)

	var ok atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for _, inst := range w.instruments {
		g.Go(func() error {
			price, err := w.refresher.Refresh(gctx, inst)
			if err != nil {
				w.logger.Debug().Err(err).Str("symbol", inst.Symbol).Msg("quote refresh failed")
				return nil
			}
			ok.Add(1)
			w.logger.Debug().Str("symbol", inst.Symbol).Float64("price", price).Msg("quote refreshed")
			return nil
		})
	}
	_ = g.Wait()

	span.SetAttributes(attribute.Int("refreshed", int(ok.Load())), attribute.Int("instruments", len(w.instruments)))
	return int(ok.Load())
}

// Runs reports how many warm passes have started.
func (w *QuoteWarmer) Runs() int64 {
	return w.runs.Load()
}
