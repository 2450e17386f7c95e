package domain

import (
	"errors"
	"testing"
	"time"
)

func TestLookupInstrumentAliases(t *testing.T) {
	for _, alias := range []string{"xauusd", "GOLD", " gc=f ", "XAUUSD=X"} {
		inst, ok := LookupInstrument(alias)
		if !ok {
			t.Fatalf("expected %q to resolve", alias)
		}
		if inst.Symbol != "XAUUSD" || inst.Class != ClassMetal {
			t.Fatalf("unexpected instrument for %q: %+v", alias, inst)
		}
	}
	if _, ok := LookupInstrument("DOGE"); ok {
		t.Fatal("expected unknown symbol to be rejected")
	}
}

func TestPipScale(t *testing.T) {
	cases := map[InstrumentClass]float64{
		ClassMetal:    100,
		ClassForexJPY: 100,
		ClassCrypto:   1,
		ClassForex:    10000,
	}
	for class, want := range cases {
		if got := class.PipScale(); got != want {
			t.Fatalf("%s: expected scale %v, got %v", class, want, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Swing ")
	if err != nil || m != ModeSwing {
		t.Fatalf("expected swing, got %q (%v)", m, err)
	}
	if _, err := ParseMode("hodl"); !errors.Is(err, ErrUnsupportedMode) {
		t.Fatalf("expected ErrUnsupportedMode, got %v", err)
	}
}

func TestNormalizeSeriesSortsAndDedupes(t *testing.T) {
	base := time.Unix(0, 0).UTC()
	in := []Bar{
		{Time: base.Add(2 * time.Hour), Close: 3},
		{Time: base, Close: 1},
		{Time: base.Add(time.Hour), Close: 2},
		{Time: base.Add(time.Hour), Close: 2.5},
	}
	got := NormalizeSeries(in)
	if len(got) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(got))
	}
	if got[0].Close != 1 || got[1].Close != 2.5 || got[2].Close != 3 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if in[0].Close != 3 {
		t.Fatal("input slice must not be reordered")
	}
}

func TestScoreStateBiasAndTopReasons(t *testing.T) {
	s := ScoreState{BullScore: 3, BearScore: 1, Reasons: []string{"a", "b", "c", "d"}}
	if s.Bias() != BiasBullish {
		t.Fatalf("expected bullish, got %s", s.Bias())
	}
	if top := s.TopReasons(2); len(top) != 2 || top[0] != "a" || top[1] != "b" {
		t.Fatalf("unexpected top reasons: %+v", top)
	}
	if s.BullScore != 3 || len(s.Reasons) != 4 {
		t.Fatal("truncation must not alter the score state")
	}
	if (ScoreState{BullScore: 2, BearScore: 2}).Bias() != BiasSideway {
		t.Fatal("expected tie to be sideways")
	}
}

func TestStrategyConfigRewardRatio(t *testing.T) {
	c := StrategyConfig{SLMultiplier: 1.5, TPMultiplier: 3}
	if c.RewardRatio() != 2 {
		t.Fatalf("expected ratio 2, got %v", c.RewardRatio())
	}
	if (StrategyConfig{}).RewardRatio() != 0 {
		t.Fatal("expected zero ratio for empty config")
	}
}
