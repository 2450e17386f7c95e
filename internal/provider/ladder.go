package provider

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"signal-desk/internal/domain"
)

const (
	minUsableBars  = 15
	backupInterval = "60m"
	backupRange    = "1mo"
	backupLabel    = "H1 (Backup)"
	archiveLabel   = "Archive"
	archiveLimit   = 500
)

// SeriesLadder walks an instrument's sources in order, then a one-hour backup of the primary
// ticker, then the archive. Successful upstream fetches are archived on the way.
type SeriesLadder struct {
	charts  ChartSource
	archive Archive
	logger  zerolog.Logger
}

func NewSeriesLadder(charts ChartSource, archive Archive, logger zerolog.Logger) *SeriesLadder {
	return &SeriesLadder{
		charts:  charts,
		archive: archive,
		logger:  logger.With().Str("component", "series-ladder").Logger(),
	}
}

func (l *SeriesLadder) FetchSeries(ctx context.Context, inst domain.Instrument, interval, period string) (domain.Series, string, error) {
	var errs []error

	for _, src := range inst.SeriesSources {
		bars, err := l.charts.Chart(ctx, src.Ticker, interval, period)
		if err == nil && len(bars) > minUsableBars {
			l.store(ctx, inst, interval, bars)
			return bars, rungLabel(interval, src.Label), nil
		}
		if err == nil {
			err = fmt.Errorf("%s: only %d bars", src.Ticker, len(bars))
		}
		l.logger.Debug().Err(err).Str("symbol", inst.Symbol).Str("ticker", src.Ticker).Msg("series source skipped")
		errs = append(errs, err)
	}

	bars, err := l.charts.Chart(ctx, inst.PrimaryTicker(), backupInterval, backupRange)
	if err == nil && len(bars) > 0 {
		l.store(ctx, inst, backupInterval, bars)
		return bars, backupLabel, nil
	}
	if err != nil {
		errs = append(errs, err)
	}

	if l.archive != nil {
		bars, err := l.archive.RecentBars(ctx, inst.Symbol, interval, archiveLimit)
		if err == nil && len(bars) > 0 {
			l.logger.Info().Str("symbol", inst.Symbol).Str("interval", interval).Int("bars", len(bars)).Msg("serving archived series")
			return bars, rungLabel(interval, archiveLabel), nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	return nil, "", fmt.Errorf("%s %s/%s: %w", inst.Symbol, interval, period, errors.Join(append(errs, domain.ErrDataUnavailable)...))
}

func (l *SeriesLadder) store(ctx context.Context, inst domain.Instrument, interval string, bars domain.Series) {
	if l.archive == nil {
		return
	}
	if err := l.archive.UpsertBars(ctx, inst.Symbol, interval, bars); err != nil {
		l.logger.Warn().Err(err).Str("symbol", inst.Symbol).Str("interval", interval).Msg("archive write failed")
	}
}

func rungLabel(interval, source string) string {
	if source == "" {
		return interval
	}
	return fmt.Sprintf("%s (%s)", interval, source)
}

// LiveChain asks each provider in turn and returns the first usable price.
type LiveChain struct {
	providers []LivePriceProvider
	logger    zerolog.Logger
}

func NewLiveChain(logger zerolog.Logger, providers ...LivePriceProvider) *LiveChain {
	return &LiveChain{
		providers: providers,
		logger:    logger.With().Str("component", "live-price").Logger(),
	}
}

func (c *LiveChain) FetchLivePrice(ctx context.Context, inst domain.Instrument) (float64, error) {
	var errs []error
	for _, p := range c.providers {
		price, err := p.FetchLivePrice(ctx, inst)
		if err == nil && price > 0 && !math.IsInf(price, 0) && !math.IsNaN(price) {
			return price, nil
		}
		if err == nil {
			err = fmt.Errorf("unusable price %v", price)
		}
		c.logger.Debug().Err(err).Str("symbol", inst.Symbol).Msg("live price source failed")
		errs = append(errs, err)
	}
	return 0, fmt.Errorf("%s live price: %w", inst.Symbol, errors.Join(append(errs, ErrNoData)...))
}
