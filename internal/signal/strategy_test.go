package signal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signal-desk/internal/domain"
)

func TestDefaultStrategies(t *testing.T) {
	sel, err := NewSelector(nil)
	require.NoError(t, err)

	tests := []struct {
		mode     domain.Mode
		interval string
		period   string
		sl, tp   float64
		kind     domain.StrategyKind
		label    string
	}{
		{domain.ModeScalping, "15m", "5d", 0.6, 1.2, domain.KindTrendFollow, "M15"},
		{domain.ModeDaytrade, "60m", "1mo", 1.5, 2.0, domain.KindPullback, "H1"},
		{domain.ModeSwing, "1d", "1y", 2.5, 3.5, domain.KindMeanReversion, "D1"},
	}
	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			cfg, err := sel.Select(tc.mode)
			require.NoError(t, err)
			assert.Equal(t, tc.mode, cfg.Mode)
			assert.Equal(t, tc.interval, cfg.Interval)
			assert.Equal(t, tc.period, cfg.LookbackPeriod)
			assert.Equal(t, tc.sl, cfg.SLMultiplier)
			assert.Equal(t, tc.tp, cfg.TPMultiplier)
			assert.Equal(t, tc.kind, cfg.Kind)
			assert.Equal(t, tc.label, cfg.TimeframeLabel)
			assert.Equal(t, 10, cfg.MinBars)
			assert.NoError(t, ValidateStrategy(cfg))
		})
	}

	_, err = sel.Select(domain.Mode("position"))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedMode))
}

func TestNewSelectorOverrides(t *testing.T) {
	custom := DefaultStrategies()[domain.ModeSwing]
	custom.SLMultiplier = 3
	custom.Kind = domain.KindPullback

	sel, err := NewSelector(map[domain.Mode]domain.StrategyConfig{domain.ModeSwing: custom})
	require.NoError(t, err)

	cfg, err := sel.Select(domain.ModeSwing)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.SLMultiplier)
	assert.Equal(t, domain.KindPullback, cfg.Kind)

	scalping, err := sel.Select(domain.ModeScalping)
	require.NoError(t, err)
	assert.Equal(t, DefaultStrategies()[domain.ModeScalping], scalping)
}

func TestNewSelectorRejectsInvalidConfig(t *testing.T) {
	bad := DefaultStrategies()[domain.ModeDaytrade]
	bad.Kind = "martingale"
	_, err := NewSelector(map[domain.Mode]domain.StrategyConfig{domain.ModeDaytrade: bad})
	assert.Error(t, err)

	bad = DefaultStrategies()[domain.ModeDaytrade]
	bad.TPMultiplier = 0
	_, err = NewSelector(map[domain.Mode]domain.StrategyConfig{domain.ModeDaytrade: bad})
	assert.Error(t, err)

	_, err = NewSelector(map[domain.Mode]domain.StrategyConfig{"position": DefaultStrategies()[domain.ModeSwing]})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedMode))
}
