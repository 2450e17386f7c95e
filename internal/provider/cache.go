package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"signal-desk/internal/domain"
)

type cachedSeries struct {
	Label string        `json:"label"`
	Bars  domain.Series `json:"bars"`
}

// CachedSeriesProvider decorates a SeriesProvider with a Redis read-through cache.
type CachedSeriesProvider struct {
	inner     SeriesProvider
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachedSeriesProvider falls back to a one minute TTL and the "series" namespace.
func NewCachedSeriesProvider(rdb *redis.Client, ttl time.Duration, inner SeriesProvider, namespace string) *CachedSeriesProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "series"
	}
	return &CachedSeriesProvider{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

func (c *CachedSeriesProvider) FetchSeries(ctx context.Context, inst domain.Instrument, interval, period string) (domain.Series, string, error) {
	if c.rdb == nil {
		return c.inner.FetchSeries(ctx, inst, interval, period)
	}

	key := fmt.Sprintf("%s:%s:%s:%s", c.namespace, safe(inst.Symbol), safe(interval), safe(period))

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var hit cachedSeries
		if err := json.Unmarshal(b, &hit); err == nil && len(hit.Bars) > 0 {
			return hit.Bars, hit.Label, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	bars, label, err := c.inner.FetchSeries(ctx, inst, interval, period)
	if err != nil {
		return nil, "", err
	}

	if b, err := json.Marshal(cachedSeries{Label: label, Bars: bars}); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return bars, label, nil
}

// CachedLivePriceProvider decorates a LivePriceProvider with a short-lived Redis cache.
type CachedLivePriceProvider struct {
	inner     LivePriceProvider
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

func NewCachedLivePriceProvider(rdb *redis.Client, ttl time.Duration, inner LivePriceProvider, namespace string) *CachedLivePriceProvider {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if namespace == "" {
		namespace = "price"
	}
	return &CachedLivePriceProvider{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

func (c *CachedLivePriceProvider) FetchLivePrice(ctx context.Context, inst domain.Instrument) (float64, error) {
	if c.rdb == nil {
		return c.inner.FetchLivePrice(ctx, inst)
	}

	key := c.key(inst)
	if s, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if price, err := strconv.ParseFloat(s, 64); err == nil && price > 0 {
			return price, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}
	return c.Refresh(ctx, inst)
}

// Refresh bypasses the cache, fetches upstream and stores the result.
func (c *CachedLivePriceProvider) Refresh(ctx context.Context, inst domain.Instrument) (float64, error) {
	price, err := c.inner.FetchLivePrice(ctx, inst)
	if err != nil {
		return 0, err
	}
	if c.rdb != nil {
		_ = c.rdb.Set(ctx, c.key(inst), strconv.FormatFloat(price, 'f', -1, 64), c.ttl).Err()
	}
	return price, nil
}

func (c *CachedLivePriceProvider) key(inst domain.Instrument) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(inst.Symbol))
}

func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
