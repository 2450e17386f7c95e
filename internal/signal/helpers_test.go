package signal

import (
	"math"
	"time"

	"signal-desk/internal/domain"
)

var seriesStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func gold() domain.Instrument {
	inst, _ := domain.LookupInstrument("XAUUSD")
	return inst
}

func bitcoin() domain.Instrument {
	inst, _ := domain.LookupInstrument("BTCUSD")
	return inst
}

// trendSeries opens every bar at the previous close and moves it by step, with wicks of half a step.
func trendSeries(n int, start, step float64) domain.Series {
	out := make(domain.Series, 0, n)
	prev := start
	wick := math.Abs(step) / 2
	for i := 0; i < n; i++ {
		open := prev
		closeVal := open + step
		out = append(out, domain.Bar{
			Time:  seriesStart.Add(time.Duration(i) * 24 * time.Hour),
			Open:  open,
			High:  math.Max(open, closeVal) + wick,
			Low:   math.Min(open, closeVal) - wick,
			Close: closeVal,
		})
		prev = closeVal
	}
	return out
}

// alternatingSeries flips between an up bar and a down bar of the same size and identical range.
func alternatingSeries(n int, base float64) domain.Series {
	out := make(domain.Series, 0, n)
	for i := 0; i < n; i++ {
		open, closeVal := base, base+1
		if i%2 == 1 {
			open, closeVal = base+1, base
		}
		out = append(out, domain.Bar{
			Time:  seriesStart.Add(time.Duration(i) * time.Hour),
			Open:  open,
			High:  base + 1.5,
			Low:   base - 0.5,
			Close: closeVal,
		})
	}
	return out
}

func sineSeries(n int, base, amplitude float64) domain.Series {
	out := make(domain.Series, 0, n)
	prev := base
	for i := 0; i < n; i++ {
		closeVal := base + amplitude*math.Sin(float64(i)/3)
		out = append(out, domain.Bar{
			Time:  seriesStart.Add(time.Duration(i) * 15 * time.Minute),
			Open:  prev,
			High:  math.Max(prev, closeVal) + 0.3,
			Low:   math.Min(prev, closeVal) - 0.3,
			Close: closeVal,
		})
		prev = closeVal
	}
	return out
}

func flatBar(i int, price float64) domain.Bar {
	return domain.Bar{
		Time:  seriesStart.Add(time.Duration(i) * time.Hour),
		Open:  price,
		High:  price + 0.2,
		Low:   price - 0.2,
		Close: price,
	}
}
