package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"signal-desk/internal/domain"
)

type strategyFile struct {
	Modes map[string]strategyOverride `yaml:"modes"`
}

// strategyOverride leaves unset keys at their defaults.
type strategyOverride struct {
	Interval           *string  `yaml:"interval"`
	LookbackPeriod     *string  `yaml:"lookback_period"`
	SLMultiplier       *float64 `yaml:"sl_multiplier"`
	TPMultiplier       *float64 `yaml:"tp_multiplier"`
	TimeframeLabel     *string  `yaml:"timeframe_label"`
	Kind               *string  `yaml:"strategy_kind"`
	MinBars            *int     `yaml:"min_bars"`
	EntryCapATR        *float64 `yaml:"entry_cap_atr"`
	MetalStopCap       *float64 `yaml:"metal_stop_cap"`
	ADXGate            *float64 `yaml:"adx_gate"`
	OrderBlockLookback *int     `yaml:"order_block_lookback"`
	SwingLookback      *int     `yaml:"swing_lookback"`
}

// LoadStrategies reads a YAML strategy file and layers it over base. An empty path returns base
// unchanged.
func LoadStrategies(path string, base map[domain.Mode]domain.StrategyConfig) (map[domain.Mode]domain.StrategyConfig, error) {
	if path == "" {
		return base, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy file: %w", err)
	}
	return ParseStrategies(raw, base)
}

func ParseStrategies(raw []byte, base map[domain.Mode]domain.StrategyConfig) (map[domain.Mode]domain.StrategyConfig, error) {
	var file strategyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse strategy file: %w", err)
	}

	out := make(map[domain.Mode]domain.StrategyConfig, len(base))
	for mode, cfg := range base {
		out[mode] = cfg
	}

	for name, override := range file.Modes {
		mode, err := domain.ParseMode(name)
		if err != nil {
			return nil, fmt.Errorf("strategy file mode %q: %w", name, err)
		}
		cfg := out[mode]
		cfg.Mode = mode
		override.apply(&cfg)
		out[mode] = cfg
	}
	return out, nil
}

func (o strategyOverride) apply(cfg *domain.StrategyConfig) {
	if o.Interval != nil {
		cfg.Interval = *o.Interval
	}
	if o.LookbackPeriod != nil {
		cfg.LookbackPeriod = *o.LookbackPeriod
	}
	if o.SLMultiplier != nil {
		cfg.SLMultiplier = *o.SLMultiplier
	}
	if o.TPMultiplier != nil {
		cfg.TPMultiplier = *o.TPMultiplier
	}
	if o.TimeframeLabel != nil {
		cfg.TimeframeLabel = *o.TimeframeLabel
	}
	if o.Kind != nil {
		cfg.Kind = domain.StrategyKind(*o.Kind)
	}
	if o.MinBars != nil {
		cfg.MinBars = *o.MinBars
	}
	if o.EntryCapATR != nil {
		cfg.EntryCapATR = *o.EntryCapATR
	}
	if o.MetalStopCap != nil {
		cfg.MetalStopCap = *o.MetalStopCap
	}
	if o.ADXGate != nil {
		cfg.ADXGate = *o.ADXGate
	}
	if o.OrderBlockLookback != nil {
		cfg.OrderBlockLookback = *o.OrderBlockLookback
	}
	if o.SwingLookback != nil {
		cfg.SwingLookback = *o.SwingLookback
	}
}
