package signal

import (
	"math"

	"signal-desk/internal/domain"
)

const (
	atrPeriod        = 14
	rsiPeriod        = 14
	emaFastPeriod    = 50
	emaSlowPeriod    = 200
	adxPeriod        = 14
	bollingerPeriod  = 20
	bollingerStdDevs = 2.0
	stochPeriod      = 14
	stochSmoothing   = 3
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9

	atrFallbackRatio = 0.005
	neutralRSI       = 50.0
	neutralADX       = 25.0
	neutralStoch     = 50.0
)

// ComputeIndicators builds the snapshot for one canonical series. Price-valued indicators are
// shifted by the calibration offset; anything undefined resolves to its documented default and
// is recorded in Defaulted.
func ComputeIndicators(series domain.Series, cal domain.CalibrationResult) domain.IndicatorSnapshot {
	price := cal.CalibratedPrice
	offset := cal.Offset
	closes := series.Closes()

	var snap domain.IndicatorSnapshot

	if v, ok := averageTrueRange(series, atrPeriod); ok {
		snap.ATR = v
	} else {
		snap.ATR = price * atrFallbackRatio
		snap.Defaulted |= domain.IndicatorATR
	}

	if v, ok := relativeStrength(closes, rsiPeriod); ok {
		snap.RSI = v
	} else {
		snap.RSI = neutralRSI
		snap.Defaulted |= domain.IndicatorRSI
	}

	if v, ok := exponentialAverage(closes, emaFastPeriod); ok {
		snap.EMA50 = v + offset
	} else {
		snap.EMA50 = price
		snap.Defaulted |= domain.IndicatorEMA50
	}

	if v, ok := exponentialAverage(closes, emaSlowPeriod); ok {
		snap.EMA200 = v + offset
	} else {
		snap.EMA200 = price
		snap.Defaulted |= domain.IndicatorEMA200
	}

	if v, ok := averageDirectionalIndex(series, adxPeriod); ok {
		snap.ADX = v
	} else {
		snap.ADX = neutralADX
		snap.Defaulted |= domain.IndicatorADX
	}

	if lower, mid, upper, ok := bollingerBands(closes, bollingerPeriod, bollingerStdDevs); ok {
		snap.BBLower, snap.BBMid, snap.BBUpper = lower+offset, mid+offset, upper+offset
	} else {
		snap.BBLower, snap.BBMid, snap.BBUpper = price-snap.ATR, price, price+snap.ATR
		snap.Defaulted |= domain.IndicatorBollinger
	}

	if v, ok := stochasticRSI(closes, rsiPeriod, stochPeriod, stochSmoothing); ok {
		snap.StochK = v
	} else {
		snap.StochK = neutralStoch
		snap.Defaulted |= domain.IndicatorStoch
	}

	if line, sig, ok := macdLatest(closes); ok {
		snap.MACDLine, snap.MACDSignal = line, sig
	} else {
		snap.Defaulted |= domain.IndicatorMACD
	}

	return snap
}

func averageTrueRange(series domain.Series, period int) (float64, bool) {
	if len(series) < period+1 {
		return 0, false
	}
	var sum float64
	for i := len(series) - period; i < len(series); i++ {
		sum += trueRange(series[i], series[i-1].Close)
	}
	atr := sum / float64(period)
	if !isFinite(atr) || atr <= 0 {
		return 0, false
	}
	return atr, true
}

func trueRange(bar domain.Bar, prevClose float64) float64 {
	return math.Max(bar.High-bar.Low, math.Max(math.Abs(bar.High-prevClose), math.Abs(bar.Low-prevClose)))
}

func relativeStrength(closes []float64, period int) (float64, bool) {
	series := rsiSeries(closes, period)
	if len(series) == 0 {
		return 0, false
	}
	last := series[len(series)-1]
	return last, isFinite(last)
}

func exponentialAverage(closes []float64, period int) (float64, bool) {
	if len(closes) < period {
		return 0, false
	}
	series := emaSeries(closes, period)
	last := series[len(series)-1]
	return last, isFinite(last)
}

func bollingerBands(closes []float64, period int, stdDevs float64) (lower, mid, upper float64, ok bool) {
	if len(closes) < period {
		return 0, 0, 0, false
	}
	mean, std := meanStd(closes[len(closes)-period:])
	if !isFinite(mean) || !isFinite(std) {
		return 0, 0, 0, false
	}
	return mean - stdDevs*std, mean, mean + stdDevs*std, true
}

// averageDirectionalIndex is Wilder's ADX: smoothed +DM/-DM over smoothed true range, then a
// Wilder average of DX.
func averageDirectionalIndex(series domain.Series, period int) (float64, bool) {
	n := len(series)
	if n < 2*period+1 {
		return 0, false
	}

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := series[i].High - series[i-1].High
		down := series[i-1].Low - series[i].Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
		tr[i] = trueRange(series[i], series[i-1].Close)
	}

	var smTR, smPlus, smMinus float64
	for i := 1; i <= period; i++ {
		smTR += tr[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}

	p := float64(period)
	dx := make([]float64, 0, n-period)
	for i := period; i < n; i++ {
		if i > period {
			smTR = smTR - smTR/p + tr[i]
			smPlus = smPlus - smPlus/p + plusDM[i]
			smMinus = smMinus - smMinus/p + minusDM[i]
		}
		if smTR == 0 {
			return 0, false
		}
		plusDI := 100 * smPlus / smTR
		minusDI := 100 * smMinus / smTR
		sum := plusDI + minusDI
		if sum == 0 {
			dx = append(dx, 0)
			continue
		}
		dx = append(dx, 100*math.Abs(plusDI-minusDI)/sum)
	}
	if len(dx) < period {
		return 0, false
	}

	var adx float64
	for _, v := range dx[:period] {
		adx += v
	}
	adx /= p
	for _, v := range dx[period:] {
		adx = (adx*(p-1) + v) / p
	}
	return adx, isFinite(adx)
}

// stochasticRSI returns the smoothed %K of the stochastic oscillator applied to RSI values.
func stochasticRSI(closes []float64, rsiLen, stochLen, smoothing int) (float64, bool) {
	rsi := rsiSeries(closes, rsiLen)
	if len(rsi) < rsiLen+stochLen+smoothing-1 {
		return 0, false
	}

	var sum float64
	for j := len(rsi) - smoothing; j < len(rsi); j++ {
		window := rsi[j-stochLen+1 : j+1]
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range window {
			if math.IsNaN(v) {
				return 0, false
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if hi == lo {
			sum += neutralStoch
			continue
		}
		sum += 100 * (rsi[j] - lo) / (hi - lo)
	}
	k := sum / float64(smoothing)
	return k, isFinite(k)
}

func macdLatest(closes []float64) (line, signal float64, ok bool) {
	if len(closes) < macdSlowPeriod+macdSignalPeriod {
		return 0, 0, false
	}
	macdLine, signalLine := macdSeries(closes, macdFastPeriod, macdSlowPeriod, macdSignalPeriod)
	line = macdLine[len(macdLine)-1]
	signal = signalLine[len(signalLine)-1]
	return line, signal, isFinite(line) && isFinite(signal)
}

// rsiSeries is NaN until the first full period and wherever the average loss is zero.
func rsiSeries(closes []float64, period int) []float64 {
	if len(closes) <= period {
		return nil
	}
	series := make([]float64, len(closes))
	for i := range series {
		series[i] = math.NaN()
	}

	var gainSum float64
	var lossSum float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	series[period] = rsiFromAvg(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain := math.Max(delta, 0)
		loss := math.Max(-delta, 0)
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		series[i] = rsiFromAvg(avgGain, avgLoss)
	}

	return series
}

func rsiFromAvg(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return math.NaN()
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

func macdSeries(values []float64, fast, slow, signal int) ([]float64, []float64) {
	fastEMA := emaSeries(values, fast)
	slowEMA := emaSeries(values, slow)
	macdLine := make([]float64, len(values))
	for i := range values {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := emaSeries(macdLine, signal)
	return macdLine, signalLine
}

func emaSeries(values []float64, period int) []float64 {
	if len(values) == 0 {
		return nil
	}
	alpha := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if len(values) == 1 {
		return mean, 0
	}
	for _, v := range values {
		d := v - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(len(values)))
	return mean, std
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
