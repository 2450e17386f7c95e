package domain

import "time"

type CalibrationResult struct {
	CalibratedPrice float64 `json:"calibrated_price"`
	RawPrice        float64 `json:"raw_price"`
	Offset          float64 `json:"offset"`
	IsLive          bool    `json:"is_live"`
}

// IndicatorSet is a bit set naming indicators.
type IndicatorSet uint16

const (
	IndicatorATR IndicatorSet = 1 << iota
	IndicatorRSI
	IndicatorEMA50
	IndicatorEMA200
	IndicatorADX
	IndicatorBollinger
	IndicatorStoch
	IndicatorMACD
)

func (s IndicatorSet) Has(ind IndicatorSet) bool {
	return s&ind != 0
}

type IndicatorSnapshot struct {
	ATR        float64 `json:"atr"`
	RSI        float64 `json:"rsi"`
	EMA50      float64 `json:"ema50"`
	EMA200     float64 `json:"ema200"`
	ADX        float64 `json:"adx"`
	BBLower    float64 `json:"bb_lower"`
	BBMid      float64 `json:"bb_mid"`
	BBUpper    float64 `json:"bb_upper"`
	StochK     float64 `json:"stoch_k"`
	MACDLine   float64 `json:"macd_line"`
	MACDSignal float64 `json:"macd_signal"`

	// Defaulted names every indicator that resolved to its documented default.
	Defaulted IndicatorSet `json:"defaulted"`
}

type ReversalPattern string

const (
	PatternNone             ReversalPattern = ""
	PatternBullishEngulfing ReversalPattern = "bullish_engulfing"
	PatternBearishEngulfing ReversalPattern = "bearish_engulfing"
	PatternHammer           ReversalPattern = "hammer"
	PatternShootingStar     ReversalPattern = "shooting_star"
)

func (p ReversalPattern) IsBullish() bool {
	return p == PatternBullishEngulfing || p == PatternHammer
}

func (p ReversalPattern) IsBearish() bool {
	return p == PatternBearishEngulfing || p == PatternShootingStar
}

type StructureLevels struct {
	BullishOrderBlock *float64        `json:"bullish_order_block,omitempty"`
	BearishOrderBlock *float64        `json:"bearish_order_block,omitempty"`
	FiboBuyZone       [2]float64      `json:"fibo_buy_zone"`
	FiboSellZone      [2]float64      `json:"fibo_sell_zone"`
	Pivot             float64         `json:"pivot"`
	Resistance1       float64         `json:"resistance1"`
	Support1          float64         `json:"support1"`
	RecentHigh        float64         `json:"recent_high"`
	RecentLow         float64         `json:"recent_low"`
	Pattern           ReversalPattern `json:"reversal_pattern,omitempty"`
}

type ScoreState struct {
	BullScore int      `json:"bull_score"`
	BearScore int      `json:"bear_score"`
	Reasons   []string `json:"reasons"`
}

// Bias classifies the scores; ties are sideways.
func (s ScoreState) Bias() Bias {
	switch {
	case s.BullScore > s.BearScore:
		return BiasBullish
	case s.BearScore > s.BullScore:
		return BiasBearish
	default:
		return BiasSideway
	}
}

// TopReasons returns at most n reasons in firing order without touching the scores.
func (s ScoreState) TopReasons(n int) []string {
	if n <= 0 || len(s.Reasons) == 0 {
		return nil
	}
	if n > len(s.Reasons) {
		n = len(s.Reasons)
	}
	return append([]string(nil), s.Reasons[:n]...)
}

type TradeSetup struct {
	Side           Side    `json:"side"`
	Entry          float64 `json:"entry"`
	StopLoss       float64 `json:"stop_loss"`
	TakeProfit     float64 `json:"take_profit"`
	RiskDistance   float64 `json:"risk_distance"`
	RewardDistance float64 `json:"reward_distance"`
	PipDistance    int     `json:"pips"`
}

type Analysis struct {
	Symbol         string            `json:"symbol"`
	Mode           Mode              `json:"mode"`
	Strategy       StrategyKind      `json:"strategy"`
	Bias           Bias              `json:"bias"`
	WeakTrend      bool              `json:"weak_trend,omitempty"`
	Price          float64           `json:"price"`
	Calibration    CalibrationResult `json:"calibration"`
	TimeframeLabel string            `json:"timeframe_label"`
	SourceLabel    string            `json:"source_label"`
	Indicators     IndicatorSnapshot `json:"indicators"`
	Structure      StructureLevels   `json:"structure"`
	Score          ScoreState        `json:"score"`
	Reasons        []string          `json:"reasons"`
	Buy            TradeSetup        `json:"buy_setup"`
	Sell           TradeSetup        `json:"sell_setup"`
	BarCount       int               `json:"bar_count"`
	AsOf           time.Time         `json:"as_of"`
}
