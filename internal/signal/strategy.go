package signal

import (
	"fmt"

	"signal-desk/internal/domain"
)

// DefaultStrategies returns the built-in configuration of every trading mode.
func DefaultStrategies() map[domain.Mode]domain.StrategyConfig {
	return map[domain.Mode]domain.StrategyConfig{
		domain.ModeScalping: {
			Mode:               domain.ModeScalping,
			Interval:           "15m",
			LookbackPeriod:     "5d",
			SLMultiplier:       0.6,
			TPMultiplier:       1.2,
			TimeframeLabel:     "M15",
			Kind:               domain.KindTrendFollow,
			MinBars:            10,
			EntryCapATR:        3,
			MetalStopCap:       5,
			ADXGate:            20,
			OrderBlockLookback: 20,
			SwingLookback:      10,
		},
		domain.ModeDaytrade: {
			Mode:               domain.ModeDaytrade,
			Interval:           "60m",
			LookbackPeriod:     "1mo",
			SLMultiplier:       1.5,
			TPMultiplier:       2.0,
			TimeframeLabel:     "H1",
			Kind:               domain.KindPullback,
			MinBars:            10,
			EntryCapATR:        3,
			MetalStopCap:       10,
			OrderBlockLookback: 30,
			SwingLookback:      24,
		},
		domain.ModeSwing: {
			Mode:               domain.ModeSwing,
			Interval:           "1d",
			LookbackPeriod:     "1y",
			SLMultiplier:       2.5,
			TPMultiplier:       3.5,
			TimeframeLabel:     "D1",
			Kind:               domain.KindMeanReversion,
			MinBars:            10,
			EntryCapATR:        3,
			MetalStopCap:       25,
			OrderBlockLookback: 50,
			SwingLookback:      20,
		},
	}
}

// Selector maps a mode to its strategy configuration.
type Selector struct {
	configs map[domain.Mode]domain.StrategyConfig
}

// NewSelector validates the given table. Modes missing from it keep their defaults.
func NewSelector(configs map[domain.Mode]domain.StrategyConfig) (*Selector, error) {
	table := DefaultStrategies()
	for mode, cfg := range configs {
		if _, ok := table[mode]; !ok {
			return nil, fmt.Errorf("strategy %q: %w", mode, domain.ErrUnsupportedMode)
		}
		cfg.Mode = mode
		if err := ValidateStrategy(cfg); err != nil {
			return nil, err
		}
		table[mode] = cfg
	}
	return &Selector{configs: table}, nil
}

// Select returns the configuration of a mode.
func (s *Selector) Select(mode domain.Mode) (domain.StrategyConfig, error) {
	cfg, ok := s.configs[mode]
	if !ok {
		return domain.StrategyConfig{}, domain.ErrUnsupportedMode
	}
	return cfg, nil
}

func ValidateStrategy(cfg domain.StrategyConfig) error {
	switch {
	case cfg.Interval == "" || cfg.LookbackPeriod == "":
		return fmt.Errorf("strategy %q: interval and lookback period are required", cfg.Mode)
	case cfg.SLMultiplier <= 0 || cfg.TPMultiplier <= 0:
		return fmt.Errorf("strategy %q: sl and tp multipliers must be positive", cfg.Mode)
	case !cfg.Kind.IsValid():
		return fmt.Errorf("strategy %q: unknown strategy kind %q", cfg.Mode, cfg.Kind)
	case cfg.MinBars < 2:
		return fmt.Errorf("strategy %q: min bars must be at least 2", cfg.Mode)
	case cfg.EntryCapATR <= 0:
		return fmt.Errorf("strategy %q: entry cap must be positive", cfg.Mode)
	case cfg.MetalStopCap < 0 || cfg.ADXGate < 0:
		return fmt.Errorf("strategy %q: caps and gates cannot be negative", cfg.Mode)
	case cfg.OrderBlockLookback < 2 || cfg.SwingLookback < 1:
		return fmt.Errorf("strategy %q: lookback windows too short", cfg.Mode)
	}
	return nil
}
