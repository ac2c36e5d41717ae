package forecast

import (
	"fmt"
	"math"
	"time"

	"sol-advisor/internal/dto"
	"sol-advisor/internal/indicator"
)

// minFitPoints is the smallest close series the model accepts; anything below
// cannot estimate weekday seasonality on top of the trend.
const minFitPoints = 30

// intervalZ is the z-score of the 95% prediction interval.
const intervalZ = 1.96

// Model is a fitted trend-plus-seasonality forecaster: an ordinary
// least-squares linear trend over the close series with additive day-of-week
// offsets estimated from the residuals, and symmetric residual-std bands.
type Model struct {
	intercept   float64
	slope       float64
	seasonal    [7]float64
	residualStd float64
	start       time.Time
	fitted      int
}

// Fit trains the model on daily closes, ascending by date.
func Fit(candles []dto.Candle) (*Model, error) {
	if len(candles) < minFitPoints {
		return nil, fmt.Errorf("%w: need at least %d closes to fit, got %d", dto.ErrInvalidInput, minFitPoints, len(candles))
	}

	n := len(candles)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, c := range candles {
		if c.Close <= 0 || math.IsNaN(c.Close) {
			return nil, fmt.Errorf("%w: non-positive close at %s", dto.ErrInvalidInput, c.Date.Format("2006-01-02"))
		}
		xs[i] = float64(i)
		ys[i] = c.Close
	}

	slope, intercept := leastSquares(xs, ys)

	m := &Model{
		intercept: intercept,
		slope:     slope,
		start:     candles[0].Date,
		fitted:    n,
	}

	// Weekday offsets from the trend residuals.
	var sums [7]float64
	var counts [7]int
	for i, c := range candles {
		res := ys[i] - (intercept + slope*float64(i))
		wd := int(c.Date.Weekday())
		sums[wd] += res
		counts[wd]++
	}
	for wd := range m.seasonal {
		if counts[wd] > 0 {
			m.seasonal[wd] = sums[wd] / float64(counts[wd])
		}
	}

	residuals := make([]float64, n)
	for i, c := range candles {
		residuals[i] = ys[i] - m.valueAt(i, c.Date)
	}
	m.residualStd = indicator.Std(residuals)

	return m, nil
}

// Predict returns the forecast curve covering every fitted date plus
// horizonDays future daily points with 95% bounds.
func (m *Model) Predict(candles []dto.Candle, horizonDays int) []dto.ForecastPoint {
	points := make([]dto.ForecastPoint, 0, len(candles)+horizonDays)

	for i, c := range candles {
		points = append(points, m.point(i, c.Date))
	}

	last := candles[len(candles)-1].Date
	for d := 1; d <= horizonDays; d++ {
		date := last.AddDate(0, 0, d)
		points = append(points, m.point(len(candles)-1+d, date))
	}

	return points
}

func (m *Model) point(index int, date time.Time) dto.ForecastPoint {
	value := m.valueAt(index, date)
	band := intervalZ * m.residualStd
	return dto.ForecastPoint{
		Date:       date,
		Forecast:   value,
		LowerBound: value - band,
		UpperBound: value + band,
	}
}

func (m *Model) valueAt(index int, date time.Time) float64 {
	return m.intercept + m.slope*float64(index) + m.seasonal[int(date.Weekday())]
}

func leastSquares(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	meanX := indicator.Mean(xs)
	meanY := indicator.Mean(ys)

	var num, den float64
	for i := range xs {
		num += (xs[i] - meanX) * (ys[i] - meanY)
		den += (xs[i] - meanX) * (xs[i] - meanX)
	}
	if den == 0 || n < 2 {
		return 0, meanY
	}
	return num / den, meanY - (num/den)*meanX
}
