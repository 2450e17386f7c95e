package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal-desk/internal/domain"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "timestamp": [1700003600, 1700000000, 1700007200],
      "indicators": {"quote": [{
        "open":   [2001.0, 2000.0, 2002.0],
        "high":   [2003.5, 2002.0, 2004.0],
        "low":    [2000.5, 1999.0, 2001.0],
        "close":  [2002.5, 2001.0, null],
        "volume": [120, 100, null]
      }]}
    }],
    "error": null
  }
}`

func TestYahooChartParsesAndSortsBars(t *testing.T) {
	var gotPath, gotInterval, gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotInterval = r.URL.Query().Get("interval")
		gotRange = r.URL.Query().Get("range")
		_, _ = w.Write([]byte(chartPayload))
	}))
	defer srv.Close()

	client := NewYahooClient(srv.URL, time.Second)
	bars, err := client.Chart(context.Background(), "XAUUSD=X", "60m", "1mo")
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/XAUUSD=X", gotPath)
	assert.Equal(t, "60m", gotInterval)
	assert.Equal(t, "1mo", gotRange)

	require.Len(t, bars, 2)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), bars[0].Time)
	assert.Equal(t, 2001.0, bars[0].Close)
	assert.Equal(t, 2002.5, bars[1].Close)
	assert.Equal(t, 120.0, bars[1].Volume)
}

func TestYahooChartErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http status", status: http.StatusTooManyRequests, body: `{}`},
		{name: "api error", status: http.StatusOK, body: `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{name: "empty result", status: http.StatusOK, body: `{"chart":{"result":[],"error":null}}`},
		{name: "garbage", status: http.StatusOK, body: `<html>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewYahooClient(srv.URL, time.Second).Chart(context.Background(), "GC=F", "1d", "1y")
			assert.Error(t, err)
		})
	}
}

func TestYahooChartAllNullBarsIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[{"timestamp":[1],"indicators":{"quote":[{"open":[null],"high":[null],"low":[null],"close":[null],"volume":[null]}]}}],"error":null}`))
	}))
	defer srv.Close()

	_, err := NewYahooClient(srv.URL, time.Second).Chart(context.Background(), "BTC-USD", "15m", "5d")
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestYahooFetchLivePriceUsesLiveTicker(t *testing.T) {
	var gotPath, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotInterval = r.URL.Query().Get("interval")
		_, _ = w.Write([]byte(chartPayload))
	}))
	defer srv.Close()

	inst, ok := domain.LookupInstrument("gold")
	require.True(t, ok)

	price, err := NewYahooClient(srv.URL, time.Second).FetchLivePrice(context.Background(), inst)
	require.NoError(t, err)
	assert.Equal(t, 2002.5, price)
	assert.Equal(t, "/v8/finance/chart/XAUUSD=X", gotPath)
	assert.Equal(t, "1m", gotInterval)
}

func TestYahooChartHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewYahooClient(srv.URL, 5*time.Second).Chart(ctx, "XAUUSD=X", "1d", "1y")
	assert.Error(t, err)
}
