package dto

import "time"

// ForecastPoint is one row of the forecast curve, covering both fitted
// historical dates and future predicted dates.
type ForecastPoint struct {
	Date       time.Time `json:"date"`
	Forecast   float64   `json:"forecast"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
}

// ForecastStats summarizes the future portion of a forecast curve.
type ForecastStats struct {
	CurrentPrice         float64   `json:"current_price"`
	Forecast7d           float64   `json:"forecast_7d"`
	Forecast30d          float64   `json:"forecast_30d"`
	Change7dPct          float64   `json:"change_7d_pct"`
	Change30dPct         float64   `json:"change_30d_pct"`
	LocalMin             float64   `json:"local_min"`
	LocalMax             float64   `json:"local_max"`
	MinDate              time.Time `json:"min_date"`
	MaxDate              time.Time `json:"max_date"`
	BestBuyTime          time.Time `json:"best_buy_time"`
	BestSellTime         time.Time `json:"best_sell_time"`
	ConfidenceLevel      float64   `json:"confidence_level"`
	MeanUncertainty      float64   `json:"mean_uncertainty"`
	HistoricalVolatility float64   `json:"historical_volatility"`
}

// PriceLevels holds forecast-derived support/resistance levels.
type PriceLevels struct {
	Support               float64 `json:"support"`
	Resistance            float64 `json:"resistance"`
	Pivot                 float64 `json:"pivot"`
	SupportDistancePct    float64 `json:"support_distance_pct"`
	ResistanceDistancePct float64 `json:"resistance_distance_pct"`
}
