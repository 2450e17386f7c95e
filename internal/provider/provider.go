// Package provider fetches historical series and live quotes from upstream market data sources.
package provider

import (
	"context"
	"errors"

	"signal-desk/internal/domain"
)

var ErrNoData = errors.New("no data returned")

// SeriesProvider returns a series for an instrument plus a label naming where it came from.
type SeriesProvider interface {
	FetchSeries(ctx context.Context, inst domain.Instrument, interval, period string) (domain.Series, string, error)
}

// LivePriceProvider returns the current reference price of an instrument.
type LivePriceProvider interface {
	FetchLivePrice(ctx context.Context, inst domain.Instrument) (float64, error)
}

// ChartSource fetches raw bars for a single upstream ticker.
type ChartSource interface {
	Chart(ctx context.Context, ticker, interval, rng string) (domain.Series, error)
}

// Archive persists fetched series and serves them back when upstream is unavailable.
type Archive interface {
	UpsertBars(ctx context.Context, symbol, interval string, bars domain.Series) error
	RecentBars(ctx context.Context, symbol, interval string, limit int) (domain.Series, error)
}
