package mcp

import (
	"fmt"
	"strings"
	"time"

	"signal-desk/internal/domain"
)

type analyzeSymbolInput struct {
	Symbol string `json:"symbol" jsonschema:"instrument symbol or alias (e.g. XAUUSD, GOLD, BTC)"`
	Mode   string `json:"mode,omitempty" jsonschema:"trading mode: scalping, daytrade or swing (default daytrade)"`
}

type analyzeSymbolOutput struct {
	Symbol      string            `json:"symbol"`
	Mode        string            `json:"mode"`
	Bias        string            `json:"bias"`
	WeakTrend   bool              `json:"weak_trend"`
	Price       float64           `json:"price"`
	SourceLabel string            `json:"source_label"`
	Reasons     []string          `json:"reasons"`
	Buy         domain.TradeSetup `json:"buy_setup"`
	Sell        domain.TradeSetup `json:"sell_setup"`
	AsOf        string            `json:"as_of"`
	Reply       string            `json:"reply"`
}

func newAnalyzeSymbolOutput(a *domain.Analysis, reply string) analyzeSymbolOutput {
	return analyzeSymbolOutput{
		Symbol:      a.Symbol,
		Mode:        string(a.Mode),
		Bias:        string(a.Bias),
		WeakTrend:   a.WeakTrend,
		Price:       a.Price,
		SourceLabel: a.SourceLabel,
		Reasons:     a.Reasons,
		Buy:         a.Buy,
		Sell:        a.Sell,
		AsOf:        a.AsOf.UTC().Format(time.RFC3339),
		Reply:       reply,
	}
}

type quoteGetInput struct {
	Symbol string `json:"symbol" jsonschema:"instrument symbol or alias (e.g. XAUUSD, BTC)"`
}

type quoteGetOutput struct {
	Quote domain.PriceSnapshot `json:"quote"`
}

func normalizeSymbol(symbol string) (string, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "", fmt.Errorf("symbol is required")
	}
	inst, ok := domain.LookupInstrument(symbol)
	if !ok {
		return "", fmt.Errorf("unsupported symbol: %s", strings.ToUpper(symbol))
	}
	return inst.Symbol, nil
}

func normalizeMode(mode string) (domain.Mode, error) {
	if strings.TrimSpace(mode) == "" {
		return domain.ModeDaytrade, nil
	}
	m, err := domain.ParseMode(mode)
	if err != nil {
		return "", fmt.Errorf("unsupported mode: %s", mode)
	}
	return m, nil
}
