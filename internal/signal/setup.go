package signal

import (
	"fmt"
	"math"

	"signal-desk/internal/domain"
)

const (
	trendOrderBlockATR     = 2.0
	pullbackOrderBlockATR  = 3.0
	reversionOrderBlockATR = 1.0
	trendStepATR           = 0.5
	stochExhaustedHigh     = 80.0
	stochExhaustedLow      = 20.0
	nudgeATR               = 0.15
)

type entryInputs struct {
	price  float64
	bias   domain.Bias
	ind    domain.IndicatorSnapshot
	levels domain.StructureLevels
}

// entryPlanner is implemented by the three strategy kinds only.
type entryPlanner interface {
	selectEntries(in entryInputs) (buy, sell float64)
}

type trendFollow struct{}

type pullback struct{}

type meanReversion struct{}

func plannerFor(kind domain.StrategyKind) (entryPlanner, error) {
	switch kind {
	case domain.KindTrendFollow:
		return trendFollow{}, nil
	case domain.KindPullback:
		return pullback{}, nil
	case domain.KindMeanReversion:
		return meanReversion{}, nil
	}
	return nil, fmt.Errorf("unknown strategy kind %q", kind)
}

func (trendFollow) selectEntries(in entryInputs) (float64, float64) {
	switch in.bias {
	case domain.BiasBullish:
		return trendBuyEntry(in), in.ind.BBUpper
	case domain.BiasBearish:
		return in.ind.BBLower, trendSellEntry(in)
	default:
		return in.ind.BBLower, in.ind.BBUpper
	}
}

func trendBuyEntry(in entryInputs) float64 {
	atr := in.ind.ATR
	if ob := in.levels.BullishOrderBlock; ob != nil && *ob < in.price && in.price-*ob <= trendOrderBlockATR*atr {
		return *ob
	}
	if in.ind.StochK >= stochExhaustedHigh {
		if level, ok := dynamicSupport(in); ok {
			return level
		}
	}
	return in.price - trendStepATR*atr
}

func trendSellEntry(in entryInputs) float64 {
	atr := in.ind.ATR
	if ob := in.levels.BearishOrderBlock; ob != nil && *ob > in.price && *ob-in.price <= trendOrderBlockATR*atr {
		return *ob
	}
	if in.ind.StochK <= stochExhaustedLow {
		if level, ok := dynamicResistance(in); ok {
			return level
		}
	}
	return in.price + trendStepATR*atr
}

// dynamicSupport is EMA50 below price, or the Bollinger mid when EMA50 is only a default.
func dynamicSupport(in entryInputs) (float64, bool) {
	if !in.ind.Defaulted.Has(domain.IndicatorEMA50) {
		return in.ind.EMA50, in.ind.EMA50 < in.price
	}
	if !in.ind.Defaulted.Has(domain.IndicatorBollinger) && in.ind.BBMid < in.price {
		return in.ind.BBMid, true
	}
	return 0, false
}

func dynamicResistance(in entryInputs) (float64, bool) {
	if !in.ind.Defaulted.Has(domain.IndicatorEMA50) {
		return in.ind.EMA50, in.ind.EMA50 > in.price
	}
	if !in.ind.Defaulted.Has(domain.IndicatorBollinger) && in.ind.BBMid > in.price {
		return in.ind.BBMid, true
	}
	return 0, false
}

func (pullback) selectEntries(in entryInputs) (float64, float64) {
	atr := in.ind.ATR
	emaDefined := !in.ind.Defaulted.Has(domain.IndicatorEMA50)

	buy := in.ind.BBMid
	if ob := in.levels.BullishOrderBlock; ob != nil && math.Abs(in.price-*ob) <= pullbackOrderBlockATR*atr {
		buy = *ob
	} else if emaDefined && in.ind.EMA50 < in.price {
		buy = in.ind.EMA50
	}

	sell := in.ind.BBMid
	if ob := in.levels.BearishOrderBlock; ob != nil && math.Abs(in.price-*ob) <= pullbackOrderBlockATR*atr {
		sell = *ob
	} else if emaDefined && in.ind.EMA50 > in.price {
		sell = in.ind.EMA50
	}
	return buy, sell
}

func (meanReversion) selectEntries(in entryInputs) (float64, float64) {
	atr := in.ind.ATR

	buy := in.ind.BBLower
	if ob := in.levels.BullishOrderBlock; ob != nil && math.Abs(*ob-in.ind.BBLower) <= reversionOrderBlockATR*atr {
		buy = *ob
	}
	sell := in.ind.BBUpper
	if ob := in.levels.BearishOrderBlock; ob != nil && math.Abs(*ob-in.ind.BBUpper) <= reversionOrderBlockATR*atr {
		sell = *ob
	}
	return buy, sell
}

// clampEntry applies the entry cap and then forces the entry onto the correct side of price.
func clampEntry(side domain.Side, entry, price, atr, capATR float64) float64 {
	dir := 1.0
	if side == domain.SideBuy {
		dir = -1.0
	}

	if math.Abs(entry-price) > capATR*atr {
		entry = price + dir*math.Min(1, capATR)*atr
	}
	if side == domain.SideBuy && entry >= price || side == domain.SideSell && entry <= price {
		entry = price + dir*nudgeATR*atr
	}
	return entry
}

// stopDistances derives SL/TP distances from ATR. Metals have a hard dollar cap on the stop
// and the target shrinks with it.
func stopDistances(atr float64, cfg domain.StrategyConfig, class domain.InstrumentClass) (sl, tp float64) {
	sl = atr * cfg.SLMultiplier
	tp = atr * cfg.TPMultiplier
	if class == domain.ClassMetal && cfg.MetalStopCap > 0 && sl > cfg.MetalStopCap {
		sl = cfg.MetalStopCap
		tp = cfg.MetalStopCap * cfg.RewardRatio()
	}
	return sl, tp
}

func buildSetup(side domain.Side, entry, sl, tp, pipScale float64) domain.TradeSetup {
	setup := domain.TradeSetup{
		Side:           side,
		Entry:          entry,
		RiskDistance:   sl,
		RewardDistance: tp,
		PipDistance:    Pips(sl, pipScale),
	}
	if side == domain.SideBuy {
		setup.StopLoss = entry - sl
		setup.TakeProfit = entry + tp
	} else {
		setup.StopLoss = entry + sl
		setup.TakeProfit = entry - tp
	}
	return setup
}

// Pips converts a price distance into whole display units.
func Pips(distance, scale float64) int {
	return int(math.Round(math.Abs(distance) * scale))
}

// buildSetups produces the buy and sell plans for one analysis.
func buildSetups(in entryInputs, cfg domain.StrategyConfig, class domain.InstrumentClass) (buy, sell domain.TradeSetup, err error) {
	planner, err := plannerFor(cfg.Kind)
	if err != nil {
		return buy, sell, err
	}

	buyEntry, sellEntry := planner.selectEntries(in)
	buyEntry = clampEntry(domain.SideBuy, buyEntry, in.price, in.ind.ATR, cfg.EntryCapATR)
	sellEntry = clampEntry(domain.SideSell, sellEntry, in.price, in.ind.ATR, cfg.EntryCapATR)

	sl, tp := stopDistances(in.ind.ATR, cfg, class)
	scale := class.PipScale()
	return buildSetup(domain.SideBuy, buyEntry, sl, tp, scale), buildSetup(domain.SideSell, sellEntry, sl, tp, scale), nil
}

func checkSetups(price float64, buy, sell domain.TradeSetup) error {
	values := []float64{buy.Entry, buy.StopLoss, buy.TakeProfit, sell.Entry, sell.StopLoss, sell.TakeProfit}
	for _, v := range values {
		if !isFinite(v) {
			return fmt.Errorf("non-finite setup level: %w", domain.ErrComputeFault)
		}
	}
	if !(buy.StopLoss < buy.Entry && buy.Entry < price && buy.Entry < buy.TakeProfit) {
		return fmt.Errorf("buy setup out of order (sl %.5f entry %.5f tp %.5f price %.5f): %w",
			buy.StopLoss, buy.Entry, buy.TakeProfit, price, domain.ErrComputeFault)
	}
	if !(sell.TakeProfit < sell.Entry && sell.Entry > price && sell.Entry < sell.StopLoss) {
		return fmt.Errorf("sell setup out of order (tp %.5f entry %.5f sl %.5f price %.5f): %w",
			sell.TakeProfit, sell.Entry, sell.StopLoss, price, domain.ErrComputeFault)
	}
	return nil
}
