package signal

import (
	"fmt"
	"math"

	"signal-desk/internal/domain"
)

const (
	rsiBullMomentum   = 55.0
	rsiBearMomentum   = 45.0
	rsiOversold       = 30.0
	rsiOverbought     = 70.0
	orderBlockNearATR = 2.0
	strongTrendADX    = 25.0
)

type scorer struct {
	state domain.ScoreState
}

func (s *scorer) bull(points int, reason string, args ...any) {
	s.state.BullScore += points
	s.state.Reasons = append(s.state.Reasons, fmt.Sprintf(reason, args...))
}

func (s *scorer) bear(points int, reason string, args ...any) {
	s.state.BearScore += points
	s.state.Reasons = append(s.state.Reasons, fmt.Sprintf(reason, args...))
}

func (s *scorer) note(reason string, args ...any) {
	s.state.Reasons = append(s.state.Reasons, fmt.Sprintf(reason, args...))
}

// Score accumulates bull and bear points. Reasons are kept in firing order: trend, momentum,
// structure, then the informational ADX and MACD notes.
func Score(price float64, ind domain.IndicatorSnapshot, levels domain.StructureLevels) domain.ScoreState {
	var s scorer

	switch {
	case price > ind.EMA50:
		s.bull(2, "price above EMA50 (%.2f)", ind.EMA50)
	case price < ind.EMA50:
		s.bear(2, "price below EMA50 (%.2f)", ind.EMA50)
	}

	if ind.RSI > rsiBullMomentum {
		s.bull(1, "RSI bullish momentum (%.1f)", ind.RSI)
	}
	if ind.RSI < rsiBearMomentum {
		s.bear(1, "RSI bearish momentum (%.1f)", ind.RSI)
	}
	if ind.RSI < rsiOversold {
		s.bull(2, "RSI oversold (%.1f)", ind.RSI)
	}
	if ind.RSI > rsiOverbought {
		s.bear(2, "RSI overbought (%.1f)", ind.RSI)
	}

	if ob := levels.BullishOrderBlock; ob != nil && math.Abs(price-*ob) <= orderBlockNearATR*ind.ATR {
		s.bull(2, "near bullish order block (%.2f)", *ob)
	}
	if ob := levels.BearishOrderBlock; ob != nil && math.Abs(price-*ob) <= orderBlockNearATR*ind.ATR {
		s.bear(2, "near bearish order block (%.2f)", *ob)
	}

	if price <= ind.BBLower {
		s.bull(1, "price at lower Bollinger band")
	}
	if price >= ind.BBUpper {
		s.bear(1, "price at upper Bollinger band")
	}

	switch {
	case levels.Pattern.IsBullish():
		s.bull(1, "%s pattern", patternName(levels.Pattern))
	case levels.Pattern.IsBearish():
		s.bear(1, "%s pattern", patternName(levels.Pattern))
	}

	if ind.ADX >= strongTrendADX {
		s.note("strong trend (ADX %.1f)", ind.ADX)
	} else {
		s.note("weak trend (ADX %.1f)", ind.ADX)
	}

	if !ind.Defaulted.Has(domain.IndicatorMACD) {
		switch {
		case ind.MACDLine > ind.MACDSignal:
			s.note("MACD above signal")
		case ind.MACDLine < ind.MACDSignal:
			s.note("MACD below signal")
		}
	}

	return s.state
}

func patternName(p domain.ReversalPattern) string {
	switch p {
	case domain.PatternBullishEngulfing:
		return "bullish engulfing"
	case domain.PatternBearishEngulfing:
		return "bearish engulfing"
	case domain.PatternHammer:
		return "hammer"
	case domain.PatternShootingStar:
		return "shooting star"
	}
	return string(p)
}
