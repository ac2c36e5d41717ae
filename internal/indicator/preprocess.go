package indicator

import (
	"math"

	"sol-advisor/internal/dto"
)

// iqrMultiplier bounds daily returns at Q1/Q3 +/- 3*IQR before a close is
// treated as an outlier.
const iqrMultiplier = 3.0

// CleanCandles forward-fills non-positive closes and smooths extreme outliers
// detected on daily returns with the IQR method. It returns a cleaned copy and
// the number of closes that were interpolated.
func CleanCandles(candles []dto.Candle) ([]dto.Candle, int) {
	if len(candles) == 0 {
		return nil, 0
	}

	cleaned := make([]dto.Candle, len(candles))
	copy(cleaned, candles)

	// Forward fill missing closes.
	for i := 1; i < len(cleaned); i++ {
		if cleaned[i].Close <= 0 || math.IsNaN(cleaned[i].Close) {
			cleaned[i].Close = cleaned[i-1].Close
		}
	}

	returns := make([]float64, 0, len(cleaned)-1)
	for i := 1; i < len(cleaned); i++ {
		returns = append(returns, cleaned[i].Close/cleaned[i-1].Close-1)
	}
	if len(returns) < 4 {
		return cleaned, 0
	}

	q1 := Quantile(returns, 0.25)
	q3 := Quantile(returns, 0.75)
	iqr := q3 - q1
	lower := q1 - iqrMultiplier*iqr
	upper := q3 + iqrMultiplier*iqr

	outliers := 0
	for i := 1; i < len(cleaned); i++ {
		r := returns[i-1]
		if r < lower || r > upper {
			outliers++
			cleaned[i].Close = interpolateClose(cleaned, i)
		}
	}

	return cleaned, outliers
}

// interpolateClose replaces the close at index i with the linear interpolation
// between its neighbors, falling back to the previous close at the edges.
func interpolateClose(candles []dto.Candle, i int) float64 {
	if i <= 0 {
		return candles[i].Close
	}
	if i >= len(candles)-1 {
		return candles[i-1].Close
	}
	return (candles[i-1].Close + candles[i+1].Close) / 2
}
