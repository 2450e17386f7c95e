package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal-desk/internal/domain"
)

type stubCharts struct {
	series map[string]domain.Series
	calls  []string
}

func (s *stubCharts) Chart(ctx context.Context, ticker, interval, rng string) (domain.Series, error) {
	key := fmt.Sprintf("%s|%s|%s", ticker, interval, rng)
	s.calls = append(s.calls, key)
	bars, ok := s.series[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNoData)
	}
	return bars, nil
}

type stubArchive struct {
	stored   map[string]int
	recent   domain.Series
	writeErr error
}

func (s *stubArchive) UpsertBars(ctx context.Context, symbol, interval string, bars domain.Series) error {
	if s.stored == nil {
		s.stored = map[string]int{}
	}
	s.stored[symbol+"|"+interval] += len(bars)
	return s.writeErr
}

func (s *stubArchive) RecentBars(ctx context.Context, symbol, interval string, limit int) (domain.Series, error) {
	if len(s.recent) == 0 {
		return nil, errors.New("archive empty")
	}
	return s.recent, nil
}

func bars(n int) domain.Series {
	out := make(domain.Series, n)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		p := 2000 + float64(i)
		out[i] = domain.Bar{Time: start.Add(time.Duration(i) * time.Hour), Open: p, High: p + 1, Low: p - 1, Close: p + 0.5}
	}
	return out
}

func goldInstrument(t *testing.T) domain.Instrument {
	t.Helper()
	inst, ok := domain.LookupInstrument("XAUUSD")
	require.True(t, ok)
	return inst
}

func TestSeriesLadderPrefersSpot(t *testing.T) {
	charts := &stubCharts{series: map[string]domain.Series{
		"XAUUSD=X|1d|1y": bars(40),
		"GC=F|1d|1y":     bars(40),
	}}
	archive := &stubArchive{}
	ladder := NewSeriesLadder(charts, archive, zerolog.Nop())

	got, label, err := ladder.FetchSeries(context.Background(), goldInstrument(t), "1d", "1y")
	require.NoError(t, err)
	assert.Len(t, got, 40)
	assert.Equal(t, "1d (Spot)", label)
	assert.Equal(t, []string{"XAUUSD=X|1d|1y"}, charts.calls)
	assert.Equal(t, 40, archive.stored["XAUUSD|1d"])
}

func TestSeriesLadderFallsBackToFutures(t *testing.T) {
	charts := &stubCharts{series: map[string]domain.Series{
		"XAUUSD=X|15m|5d": bars(15),
		"GC=F|15m|5d":     bars(200),
	}}
	ladder := NewSeriesLadder(charts, nil, zerolog.Nop())

	got, label, err := ladder.FetchSeries(context.Background(), goldInstrument(t), "15m", "5d")
	require.NoError(t, err)
	assert.Len(t, got, 200)
	assert.Equal(t, "15m (Futures)", label)
}

func TestSeriesLadderBackupInterval(t *testing.T) {
	charts := &stubCharts{series: map[string]domain.Series{
		"XAUUSD=X|60m|1mo": bars(12),
	}}
	ladder := NewSeriesLadder(charts, nil, zerolog.Nop())

	got, label, err := ladder.FetchSeries(context.Background(), goldInstrument(t), "1d", "1y")
	require.NoError(t, err)
	assert.Len(t, got, 12)
	assert.Equal(t, "H1 (Backup)", label)
	assert.Equal(t, []string{"XAUUSD=X|1d|1y", "GC=F|1d|1y", "XAUUSD=X|60m|1mo"}, charts.calls)
}

func TestSeriesLadderServesArchiveLast(t *testing.T) {
	archive := &stubArchive{recent: bars(30)}
	ladder := NewSeriesLadder(&stubCharts{}, archive, zerolog.Nop())

	got, label, err := ladder.FetchSeries(context.Background(), goldInstrument(t), "60m", "1mo")
	require.NoError(t, err)
	assert.Len(t, got, 30)
	assert.Equal(t, "60m (Archive)", label)
}

func TestSeriesLadderExhausted(t *testing.T) {
	ladder := NewSeriesLadder(&stubCharts{}, &stubArchive{}, zerolog.Nop())

	btc, _ := domain.LookupInstrument("BTCUSD")
	_, _, err := ladder.FetchSeries(context.Background(), btc, "15m", "5d")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestSeriesLadderArchiveWriteFailureIsIgnored(t *testing.T) {
	charts := &stubCharts{series: map[string]domain.Series{"BTC-USD|1d|1y": bars(60)}}
	archive := &stubArchive{writeErr: errors.New("disk full")}
	ladder := NewSeriesLadder(charts, archive, zerolog.Nop())

	btc, _ := domain.LookupInstrument("BTCUSD")
	got, label, err := ladder.FetchSeries(context.Background(), btc, "1d", "1y")
	require.NoError(t, err)
	assert.Len(t, got, 60)
	assert.Equal(t, "1d", label)
}

type stubLive struct {
	price float64
	err   error
	calls int
}

func (s *stubLive) FetchLivePrice(ctx context.Context, inst domain.Instrument) (float64, error) {
	s.calls++
	return s.price, s.err
}

func TestLiveChainFallsThrough(t *testing.T) {
	first := &stubLive{err: errors.New("yahoo down")}
	second := &stubLive{price: 0}
	third := &stubLive{price: 2350.25}
	chain := NewLiveChain(zerolog.Nop(), first, second, third)

	price, err := chain.FetchLivePrice(context.Background(), goldInstrument(t))
	require.NoError(t, err)
	assert.Equal(t, 2350.25, price)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestLiveChainAllFail(t *testing.T) {
	chain := NewLiveChain(zerolog.Nop(), &stubLive{err: errors.New("down")})
	_, err := chain.FetchLivePrice(context.Background(), goldInstrument(t))
	assert.True(t, errors.Is(err, ErrNoData))
}
