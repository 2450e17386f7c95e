package signal

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"signal-desk/internal/domain"
)

const (
	DefaultReasonLimit = 3
	liveSuffix         = " (Live)"
)

type stage string

const (
	stageCalibrate stage = "calibrate"
	stageIndicate  stage = "indicate"
	stageStructure stage = "detect_structure"
	stageScore     stage = "score"
	stageSetup     stage = "build_setup"
)

// Input is everything one evaluation needs. The series may be unsorted; the engine normalizes
// a copy.
type Input struct {
	Instrument   domain.Instrument
	Mode         domain.Mode
	Series       domain.Series
	SourceLabel  string
	LivePrice    float64
	HasLivePrice bool
}

// Engine runs calibrate, indicate, detect structure, score and build setup over one series.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	selector    *Selector
	threshold   float64
	reasonLimit int
	logger      zerolog.Logger
}

type Option func(*Engine)

func WithCalibrationThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold >= 0 {
			e.threshold = threshold
		}
	}
}

func WithReasonLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.reasonLimit = limit
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.With().Str("component", "signal-engine").Logger()
	}
}

func NewEngine(selector *Selector, opts ...Option) *Engine {
	if selector == nil {
		selector, _ = NewSelector(nil)
	}
	e := &Engine{
		selector:    selector,
		threshold:   DefaultCalibrationThreshold,
		reasonLimit: DefaultReasonLimit,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy exposes the configuration the engine will use for a mode.
func (e *Engine) Strategy(mode domain.Mode) (domain.StrategyConfig, error) {
	return e.selector.Select(mode)
}

// Evaluate returns a full analysis or an error wrapping domain.ErrNoResult. Unsupported modes
// are reported as domain.ErrUnsupportedMode.
func (e *Engine) Evaluate(in Input) (result *domain.Analysis, err error) {
	cfg, err := e.selector.Select(in.Mode)
	if err != nil {
		return nil, err
	}

	series := domain.NormalizeSeries(in.Series)
	if len(series) < cfg.MinBars {
		e.logger.Debug().
			Str("symbol", in.Instrument.Symbol).
			Str("mode", string(in.Mode)).
			Int("bars", len(series)).
			Int("min_bars", cfg.MinBars).
			Msg("series too short")
		return nil, fmt.Errorf("%w: %w", domain.ErrNoResult, domain.ErrDataUnavailable)
	}
	if last := series.Last().Close; !isFinite(last) || last <= 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoResult, domain.ErrDataUnavailable)
	}

	current := stageCalibrate
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = e.fault(in, current, fmt.Errorf("panic: %v: %w", r, domain.ErrComputeFault))
		}
	}()

	cal := Calibrate(series.Last().Close, in.LivePrice, in.HasLivePrice, e.threshold)
	price := cal.CalibratedPrice

	current = stageIndicate
	ind := ComputeIndicators(series, cal)
	if err := checkIndicators(ind); err != nil {
		return nil, e.fault(in, current, err)
	}

	current = stageStructure
	levels := DetectStructure(series, ind.ATR, cal.Offset, cfg)
	if err := checkStructure(levels); err != nil {
		return nil, e.fault(in, current, err)
	}

	current = stageScore
	score := Score(price, ind, levels)
	bias := score.Bias()
	reasons := score.TopReasons(e.reasonLimit)
	weak := false
	if cfg.ADXGate > 0 && ind.ADX < cfg.ADXGate {
		weak = true
		bias = domain.BiasSideway
		gate := fmt.Sprintf("ADX below %.0f: weak trend, treated as sideways", cfg.ADXGate)
		reasons = append([]string{gate}, reasons...)
		if len(reasons) > e.reasonLimit {
			reasons = reasons[:e.reasonLimit]
		}
	}

	current = stageSetup
	buy, sell, err := buildSetups(entryInputs{price: price, bias: bias, ind: ind, levels: levels}, cfg, in.Instrument.Class)
	if err != nil {
		return nil, e.fault(in, current, fmt.Errorf("%w: %w", err, domain.ErrComputeFault))
	}
	if err := checkSetups(price, buy, sell); err != nil {
		return nil, e.fault(in, current, err)
	}

	return &domain.Analysis{
		Symbol:         in.Instrument.Symbol,
		Mode:           cfg.Mode,
		Strategy:       cfg.Kind,
		Bias:           bias,
		WeakTrend:      weak,
		Price:          price,
		Calibration:    cal,
		TimeframeLabel: cfg.TimeframeLabel,
		SourceLabel:    sourceLabel(in.SourceLabel, cfg.TimeframeLabel, cal.IsLive),
		Indicators:     ind,
		Structure:      levels,
		Score:          score,
		Reasons:        reasons,
		Buy:            buy,
		Sell:           sell,
		BarCount:       len(series),
		AsOf:           series.Last().Time,
	}, nil
}

func (e *Engine) fault(in Input, at stage, cause error) error {
	e.logger.Error().
		Err(cause).
		Str("symbol", in.Instrument.Symbol).
		Str("mode", string(in.Mode)).
		Str("stage", string(at)).
		Msg("analysis aborted")
	return fmt.Errorf("%w: %s: %w", domain.ErrNoResult, at, cause)
}

func sourceLabel(provider, timeframe string, live bool) string {
	label := strings.TrimSpace(provider)
	if label == "" {
		label = timeframe
	}
	if live {
		label += liveSuffix
	}
	return label
}

func checkIndicators(ind domain.IndicatorSnapshot) error {
	values := map[string]float64{
		"atr": ind.ATR, "rsi": ind.RSI, "ema50": ind.EMA50, "ema200": ind.EMA200, "adx": ind.ADX,
		"bb_lower": ind.BBLower, "bb_mid": ind.BBMid, "bb_upper": ind.BBUpper, "stoch_k": ind.StochK,
		"macd_line": ind.MACDLine, "macd_signal": ind.MACDSignal,
	}
	for name, v := range values {
		if !isFinite(v) {
			return fmt.Errorf("indicator %s is not finite: %w", name, domain.ErrComputeFault)
		}
	}
	if ind.ATR <= 0 {
		return fmt.Errorf("non-positive atr %.8f: %w", ind.ATR, domain.ErrComputeFault)
	}
	return nil
}

func checkStructure(levels domain.StructureLevels) error {
	values := []float64{
		levels.FiboBuyZone[0], levels.FiboBuyZone[1], levels.FiboSellZone[0], levels.FiboSellZone[1],
		levels.Pivot, levels.Resistance1, levels.Support1, levels.RecentHigh, levels.RecentLow,
	}
	if levels.BullishOrderBlock != nil {
		values = append(values, *levels.BullishOrderBlock)
	}
	if levels.BearishOrderBlock != nil {
		values = append(values, *levels.BearishOrderBlock)
	}
	for _, v := range values {
		if !isFinite(v) {
			return fmt.Errorf("structure level is not finite: %w", domain.ErrComputeFault)
		}
	}
	return nil
}
