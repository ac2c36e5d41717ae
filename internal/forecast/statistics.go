package forecast

import (
	"time"

	"sol-advisor/internal/dto"
	"sol-advisor/internal/indicator"
)

// Future filters the curve to points strictly after now.
func Future(points []dto.ForecastPoint, now time.Time) []dto.ForecastPoint {
	future := make([]dto.ForecastPoint, 0, len(points))
	for _, p := range points {
		if p.Date.After(now) {
			future = append(future, p)
		}
	}
	return future
}

// Statistics summarizes the future portion of the forecast curve against the
// current price. The boolean is false when no future points remain.
func Statistics(points []dto.ForecastPoint, currentPrice float64, closes []float64, now time.Time) (dto.ForecastStats, bool) {
	future := Future(points, now)
	if len(future) == 0 {
		return dto.ForecastStats{}, false
	}

	forecast7d := future[min(6, len(future)-1)].Forecast
	forecast30d := future[min(29, len(future)-1)].Forecast

	minIdx, maxIdx := 0, 0
	var uncertaintySum float64
	for i, p := range future {
		if p.Forecast < future[minIdx].Forecast {
			minIdx = i
		}
		if p.Forecast > future[maxIdx].Forecast {
			maxIdx = i
		}
		uncertaintySum += p.UpperBound - p.LowerBound
	}
	meanUncertainty := uncertaintySum / float64(len(future))

	confidence := 100 * (1 - min(meanUncertainty/currentPrice/4, 1))

	var histVolatility float64
	if len(closes) > 2 {
		returns := make([]float64, 0, len(closes)-1)
		for i := 1; i < len(closes); i++ {
			returns = append(returns, closes[i]/closes[i-1]-1)
		}
		histVolatility = indicator.Std(returns)
	}

	return dto.ForecastStats{
		CurrentPrice:         currentPrice,
		Forecast7d:           forecast7d,
		Forecast30d:          forecast30d,
		Change7dPct:          (forecast7d - currentPrice) / currentPrice * 100,
		Change30dPct:         (forecast30d - currentPrice) / currentPrice * 100,
		LocalMin:             future[minIdx].Forecast,
		LocalMax:             future[maxIdx].Forecast,
		MinDate:              future[minIdx].Date,
		MaxDate:              future[maxIdx].Date,
		BestBuyTime:          future[minIdx].Date,
		BestSellTime:         future[maxIdx].Date,
		ConfidenceLevel:      confidence,
		MeanUncertainty:      meanUncertainty,
		HistoricalVolatility: histVolatility,
	}, true
}

// SupportResistance derives forecast-based support/resistance levels: support
// at the future local minimum, resistance at the local maximum.
func SupportResistance(points []dto.ForecastPoint, currentPrice float64, now time.Time) (dto.PriceLevels, bool) {
	future := Future(points, now)
	if len(future) == 0 {
		return dto.PriceLevels{}, false
	}

	support := future[0].Forecast
	resistance := future[0].Forecast
	for _, p := range future {
		if p.Forecast < support {
			support = p.Forecast
		}
		if p.Forecast > resistance {
			resistance = p.Forecast
		}
	}

	return dto.PriceLevels{
		Support:               support,
		Resistance:            resistance,
		Pivot:                 (support + resistance) / 2,
		SupportDistancePct:    (support - currentPrice) / currentPrice * 100,
		ResistanceDistancePct: (resistance - currentPrice) / currentPrice * 100,
	}, true
}
