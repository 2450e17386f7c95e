package mcp

import (
	"context"

	"signal-desk/internal/domain"
)

// Analyzer runs a full analysis for a symbol and mode.
type Analyzer interface {
	Analyze(ctx context.Context, symbol, mode string) (*domain.Analysis, error)
}

// Quoter returns the two-day price snapshot of a symbol.
type Quoter interface {
	Snapshot(ctx context.Context, symbol string) (domain.PriceSnapshot, error)
}

// StrategyReader exposes the active per-mode configuration.
type StrategyReader interface {
	Strategy(mode domain.Mode) (domain.StrategyConfig, error)
}
