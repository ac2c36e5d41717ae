package indicator

import (
	"math"

	"sol-advisor/internal/dto"
)

const (
	maShortWindow    = 7
	maMidWindow      = 14
	maLongWindow     = 30
	volatilityWindow = 14
	atrWindow        = 14
	momentumLookback = 10
	rsiWindow        = 14
)

// Build derives the technical indicator snapshot from daily candles: simple
// moving averages over 7/14/30 closes, 14-day rolling volatility of returns,
// 14-day ATR, 10-day momentum and a 14-day RSI. Rows inside a rolling warm-up
// window carry NaN, matching the NaN-tolerant snapshot contract.
func Build(candles []dto.Candle) dto.IndicatorSeries {
	n := len(candles)
	if n == 0 {
		return dto.IndicatorSeries{}
	}

	closes := make([]float64, n)
	for i, c := range candles {
		closes[i] = c.Close
	}

	series := make(dto.IndicatorSeries, n)
	trueRanges := trueRanges(candles)
	returns := dailyReturns(closes)

	for i := 0; i < n; i++ {
		row := dto.IndicatorRow{
			Date:       candles[i].Date,
			Close:      closes[i],
			MA7:        rollingMean(closes, i, maShortWindow),
			MA14:       rollingMean(closes, i, maMidWindow),
			MA30:       rollingMean(closes, i, maLongWindow),
			Volatility: rollingStd(returns, i-1, volatilityWindow),
			ATR:        rollingMean(trueRanges, i, atrWindow),
			Momentum:   momentum(closes, i),
			RSI:        rsi(closes, i),
		}
		series[i] = row
	}

	return series
}

func dailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = closes[i]/closes[i-1] - 1
	}
	return returns
}

func trueRanges(candles []dto.Candle) []float64 {
	ranges := make([]float64, len(candles))
	for i, c := range candles {
		hl := c.High - c.Low
		if i == 0 {
			ranges[i] = hl
			continue
		}
		prevClose := candles[i-1].Close
		hc := math.Abs(c.High - prevClose)
		lc := math.Abs(c.Low - prevClose)
		ranges[i] = math.Max(hl, math.Max(hc, lc))
	}
	return ranges
}

// rollingMean averages values[end-window+1 .. end]; NaN while warming up.
func rollingMean(values []float64, end, window int) float64 {
	if end < window-1 || end >= len(values) {
		return math.NaN()
	}
	return Mean(values[end-window+1 : end+1])
}

func rollingStd(values []float64, end, window int) float64 {
	if end < window-1 || end >= len(values) {
		return math.NaN()
	}
	return Std(values[end-window+1 : end+1])
}

func momentum(closes []float64, i int) float64 {
	if i < momentumLookback {
		return math.NaN()
	}
	return closes[i] - closes[i-momentumLookback]
}

// rsi computes a simple-average RSI over the trailing window of deltas.
func rsi(closes []float64, i int) float64 {
	if i < rsiWindow {
		return math.NaN()
	}
	var gain, loss float64
	for j := i - rsiWindow + 1; j <= i; j++ {
		delta := closes[j] - closes[j-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	gain /= rsiWindow
	loss /= rsiWindow
	if loss == 0 {
		if gain == 0 {
			return math.NaN()
		}
		return 100
	}
	rs := gain / loss
	return 100 - 100/(1+rs)
}
