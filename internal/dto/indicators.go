package dto

import (
	"math"
	"time"
)

// IndicatorRow is one time-indexed row of the technical indicator snapshot.
// Warm-up rows carry NaN for indicators whose rolling window is not yet full.
type IndicatorRow struct {
	Date       time.Time `json:"date"`
	Close      float64   `json:"close"`
	MA7        float64   `json:"ma7"`
	MA14       float64   `json:"ma14"`
	MA30       float64   `json:"ma30"`
	Volatility float64   `json:"volatility"`
	Momentum   float64   `json:"momentum"`
	RSI        float64   `json:"rsi"`
	ATR        float64   `json:"atr"`
}

// IndicatorSeries is a time-ordered indicator snapshot, one row per trading day.
type IndicatorSeries []IndicatorRow

func (s IndicatorSeries) Len() int {
	return len(s)
}

// Last returns the most recent row. The boolean is false for an empty series.
func (s IndicatorSeries) Last() (IndicatorRow, bool) {
	if len(s) == 0 {
		return IndicatorRow{}, false
	}
	return s[len(s)-1], true
}

// VolatilityColumn returns all non-NaN volatility values in time order.
func (s IndicatorSeries) VolatilityColumn() []float64 {
	values := make([]float64, 0, len(s))
	for _, row := range s {
		if !math.IsNaN(row.Volatility) {
			values = append(values, row.Volatility)
		}
	}
	return values
}

// After returns the rows on or after the given date.
func (s IndicatorSeries) After(t time.Time) IndicatorSeries {
	for i, row := range s {
		if !row.Date.Before(t) {
			return s[i:]
		}
	}
	return IndicatorSeries{}
}
