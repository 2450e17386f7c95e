package domain

import (
	"strings"
)

// InstrumentClass drives pip scaling and the metal-only stop cap.
type InstrumentClass string

const (
	ClassMetal    InstrumentClass = "metal"
	ClassCrypto   InstrumentClass = "crypto"
	ClassForex    InstrumentClass = "forex"
	ClassForexJPY InstrumentClass = "forex_jpy"
)

// PipScale converts a price distance into display pips/points.
func (c InstrumentClass) PipScale() float64 {
	switch c {
	case ClassMetal, ClassForexJPY:
		return 100
	case ClassCrypto:
		return 1
	default:
		return 10000
	}
}

// SeriesSource is one rung of the historical data ladder for an instrument.
type SeriesSource struct {
	Ticker string
	Label  string
}

type Instrument struct {
	Symbol        string
	Name          string
	Class         InstrumentClass
	Aliases       []string
	SeriesSources []SeriesSource
	LiveTicker    string
	BinanceSymbol string
	Precision     int
}

// PrimaryTicker is the ticker used for backup series fetches and quote snapshots.
func (i Instrument) PrimaryTicker() string {
	if len(i.SeriesSources) == 0 {
		return i.Symbol
	}
	return i.SeriesSources[0].Ticker
}

var Instruments = []Instrument{
	{
		Symbol:  "XAUUSD",
		Name:    "Gold Spot",
		Class:   ClassMetal,
		Aliases: []string{"GOLD", "XAU", "GC=F", "XAUUSD=X"},
		SeriesSources: []SeriesSource{
			{Ticker: "XAUUSD=X", Label: "Spot"},
			{Ticker: "GC=F", Label: "Futures"},
		},
		LiveTicker:    "XAUUSD=X",
		BinanceSymbol: "PAXGUSDT",
		Precision:     2,
	},
	{
		Symbol:        "BTCUSD",
		Name:          "Bitcoin",
		Class:         ClassCrypto,
		Aliases:       []string{"BTC", "BTC-USD", "BTCUSDT"},
		SeriesSources: []SeriesSource{{Ticker: "BTC-USD"}},
		LiveTicker:    "BTC-USD",
		BinanceSymbol: "BTCUSDT",
		Precision:     2,
	},
	{
		Symbol:        "EURUSD",
		Name:          "Euro / US Dollar",
		Class:         ClassForex,
		Aliases:       []string{"EURUSD=X", "EUR/USD"},
		SeriesSources: []SeriesSource{{Ticker: "EURUSD=X"}},
		LiveTicker:    "EURUSD=X",
		Precision:     5,
	},
	{
		Symbol:        "USDJPY",
		Name:          "US Dollar / Japanese Yen",
		Class:         ClassForexJPY,
		Aliases:       []string{"USDJPY=X", "JPY=X", "USD/JPY"},
		SeriesSources: []SeriesSource{{Ticker: "USDJPY=X"}},
		LiveTicker:    "USDJPY=X",
		Precision:     3,
	},
}

var SupportedSymbols = func() []string {
	out := make([]string, 0, len(Instruments))
	for _, inst := range Instruments {
		out = append(out, inst.Symbol)
	}
	return out
}()

var instrumentIndex = func() map[string]Instrument {
	idx := make(map[string]Instrument, len(Instruments)*4)
	for _, inst := range Instruments {
		idx[inst.Symbol] = inst
		for _, alias := range inst.Aliases {
			idx[alias] = inst
		}
	}
	return idx
}()

// LookupInstrument resolves a canonical symbol or any known alias, case-insensitively.
func LookupInstrument(symbol string) (Instrument, bool) {
	inst, ok := instrumentIndex[strings.ToUpper(strings.TrimSpace(symbol))]
	return inst, ok
}

type Mode string

const (
	ModeScalping Mode = "scalping"
	ModeDaytrade Mode = "daytrade"
	ModeSwing    Mode = "swing"
)

var SupportedModes = []Mode{ModeScalping, ModeDaytrade, ModeSwing}

// ParseMode accepts a mode name; anything unknown is rejected.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	for _, supported := range SupportedModes {
		if m == supported {
			return m, nil
		}
	}
	return "", ErrUnsupportedMode
}

type StrategyKind string

const (
	KindTrendFollow   StrategyKind = "trend_follow"
	KindPullback      StrategyKind = "pullback"
	KindMeanReversion StrategyKind = "mean_reversion"
)

func (k StrategyKind) IsValid() bool {
	switch k {
	case KindTrendFollow, KindPullback, KindMeanReversion:
		return true
	}
	return false
}

// StrategyConfig holds every tunable of one trading mode.
type StrategyConfig struct {
	Mode           Mode         `json:"mode" yaml:"-"`
	Interval       string       `json:"interval"`
	LookbackPeriod string       `json:"lookback_period"`
	SLMultiplier   float64      `json:"sl_multiplier"`
	TPMultiplier   float64      `json:"tp_multiplier"`
	TimeframeLabel string       `json:"timeframe_label"`
	Kind           StrategyKind `json:"strategy_kind"`

	MinBars            int     `json:"min_bars"`
	EntryCapATR        float64 `json:"entry_cap_atr"`
	MetalStopCap       float64 `json:"metal_stop_cap"`
	ADXGate            float64 `json:"adx_gate"`
	OrderBlockLookback int     `json:"order_block_lookback"`
	SwingLookback      int     `json:"swing_lookback"`
}

// RewardRatio is the configured take-profit to stop-loss distance ratio.
func (c StrategyConfig) RewardRatio() float64 {
	if c.SLMultiplier == 0 {
		return 0
	}
	return c.TPMultiplier / c.SLMultiplier
}

type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasSideway Bias = "SIDEWAY"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

type PriceSnapshot struct {
	Symbol  string  `json:"symbol"`
	Price   float64 `json:"price"`
	Change  float64 `json:"change"`
	Percent float64 `json:"percent"`
}
