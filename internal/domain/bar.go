package domain

import (
	"sort"
	"time"
)

type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Series is ascending by Time with no duplicate timestamps once normalized.
type Series []Bar

// Last returns the newest bar. The series must not be empty.
func (s Series) Last() Bar {
	return s[len(s)-1]
}

// Tail returns the trailing n bars, or the whole series when it is shorter.
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return nil
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

func (s Series) Closes() []float64 {
	values := make([]float64, len(s))
	for i := range s {
		values[i] = s[i].Close
	}
	return values
}

// NormalizeSeries sorts bars by time and keeps the latest copy of any duplicated timestamp.
// The input is not modified.
func NormalizeSeries(in []Bar) Series {
	out := make(Series, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})

	deduped := out[:0]
	for _, b := range out {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(b.Time) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return deduped
}
