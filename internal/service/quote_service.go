package service

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"signal-desk/internal/domain"
	"signal-desk/internal/provider"
)

const (
	quoteInterval = "1h"
	quoteRange    = "2d"
)

// QuoteService summarises the last two days of hourly bars as a price and change.
type QuoteService struct {
	tracer trace.Tracer
	charts provider.ChartSource
}

func NewQuoteService(tracer trace.Tracer, charts provider.ChartSource) *QuoteService {
	return &QuoteService{tracer: tracer, charts: charts}
}

func (s *QuoteService) Snapshot(ctx context.Context, symbol string) (domain.PriceSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, "quote-service.snapshot")
	defer span.End()

	inst, ok := domain.LookupInstrument(symbol)
	if !ok {
		return domain.PriceSnapshot{Symbol: symbol}, fmt.Errorf("%w: %q", domain.ErrUnsupportedSymbol, symbol)
	}
	span.SetAttributes(attribute.String("symbol", inst.Symbol))

	bars, err := s.charts.Chart(ctx, inst.PrimaryTicker(), quoteInterval, quoteRange)
	if err != nil {
		span.RecordError(err)
		return domain.PriceSnapshot{Symbol: symbol}, fmt.Errorf("quote %s: %w", inst.Symbol, err)
	}
	if len(bars) == 0 || bars[0].Close == 0 {
		return domain.PriceSnapshot{Symbol: symbol}, fmt.Errorf("quote %s: %w", inst.Symbol, domain.ErrDataUnavailable)
	}

	places := inst.Precision
	if places <= 0 {
		places = 2
	}
	price := bars.Last().Close
	prev := bars[0].Close
	change := price - prev
	return domain.PriceSnapshot{
		Symbol:  symbol,
		Price:   roundTo(price, places),
		Change:  roundTo(change, places),
		Percent: roundTo(change/prev*100, 2),
	}, nil
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
