package signal

import (
	"iter"
	"math"

	"signal-desk/internal/domain"
)

const (
	orderBlockStrengthATR = 0.5
	fiboLookback          = 50
	fiboDeep              = 0.618
	fiboShallow           = 0.5
)

type orderBlock struct {
	index   int
	bullish bool
	level   float64
}

// orderBlocks yields order-block candidates inside the trailing window, newest first.
// A bullish block is a down-close bar whose successor closes at least half an ATR above its
// high; its level is the bar's low. Bearish blocks mirror that with the bar's high.
func orderBlocks(series domain.Series, lookback int, atr float64) iter.Seq[orderBlock] {
	return func(yield func(orderBlock) bool) {
		start := max(len(series)-lookback, 0)
		for i := len(series) - 2; i >= start; i-- {
			bar, next := series[i], series[i+1]
			if bar.Close < bar.Open && next.Close-bar.High >= orderBlockStrengthATR*atr {
				if !yield(orderBlock{index: i, bullish: true, level: bar.Low}) {
					return
				}
			}
			if bar.Close > bar.Open && bar.Low-next.Close >= orderBlockStrengthATR*atr {
				if !yield(orderBlock{index: i, level: bar.High}) {
					return
				}
			}
		}
	}
}

// DetectStructure finds order blocks, Fibonacci zones, classic pivots, swing extremes and the
// latest reversal pattern. Every price level is shifted by the calibration offset.
func DetectStructure(series domain.Series, atr, offset float64, cfg domain.StrategyConfig) domain.StructureLevels {
	var levels domain.StructureLevels
	if len(series) == 0 {
		return levels
	}

	for ob := range orderBlocks(series, cfg.OrderBlockLookback, atr) {
		level := ob.level + offset
		if ob.bullish && levels.BullishOrderBlock == nil {
			levels.BullishOrderBlock = &level
		}
		if !ob.bullish && levels.BearishOrderBlock == nil {
			levels.BearishOrderBlock = &level
		}
		if levels.BullishOrderBlock != nil && levels.BearishOrderBlock != nil {
			break
		}
	}

	hi, lo := extremes(series.Tail(fiboLookback))
	span := hi - lo
	levels.FiboBuyZone = [2]float64{hi - span*fiboDeep + offset, hi - span*fiboShallow + offset}
	levels.FiboSellZone = [2]float64{lo + span*fiboDeep + offset, lo + span*fiboShallow + offset}

	ref := series.Last()
	if len(series) >= 2 {
		ref = series[len(series)-2]
	}
	pivot := (ref.High + ref.Low + ref.Close) / 3
	levels.Pivot = pivot + offset
	levels.Resistance1 = 2*pivot - ref.Low + offset
	levels.Support1 = 2*pivot - ref.High + offset

	recentHigh, recentLow := extremes(series.Tail(cfg.SwingLookback))
	levels.RecentHigh = recentHigh + offset
	levels.RecentLow = recentLow + offset

	if len(series) >= 2 {
		levels.Pattern = detectPattern(series[len(series)-2], series.Last())
	}
	return levels
}

func extremes(series domain.Series) (hi, lo float64) {
	if len(series) == 0 {
		return 0, 0
	}
	hi, lo = math.Inf(-1), math.Inf(1)
	for _, b := range series {
		hi = math.Max(hi, b.High)
		lo = math.Min(lo, b.Low)
	}
	return hi, lo
}

// detectPattern checks engulfing first, then single-bar hammer/shooting star on the last bar.
func detectPattern(prev, last domain.Bar) domain.ReversalPattern {
	prevDown := prev.Close < prev.Open
	prevUp := prev.Close > prev.Open
	lastUp := last.Close > last.Open
	lastDown := last.Close < last.Open

	switch {
	case prevDown && lastUp && last.Open <= prev.Close && last.Close >= prev.Open:
		return domain.PatternBullishEngulfing
	case prevUp && lastDown && last.Open >= prev.Close && last.Close <= prev.Open:
		return domain.PatternBearishEngulfing
	}

	body := math.Abs(last.Close - last.Open)
	if body == 0 {
		return domain.PatternNone
	}
	lowerWick := math.Min(last.Open, last.Close) - last.Low
	upperWick := last.High - math.Max(last.Open, last.Close)

	switch {
	case lowerWick >= 2*body && upperWick < body:
		return domain.PatternHammer
	case upperWick >= 2*body && lowerWick < body:
		return domain.PatternShootingStar
	}
	return domain.PatternNone
}
