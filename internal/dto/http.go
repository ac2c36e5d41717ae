package dto

import "time"

// AnalyzeRequest configures one run of the analysis pipeline.
type AnalyzeRequest struct {
	Range       string `json:"range" validate:"omitempty,oneof=1y 2y 5y 10y"`
	HorizonDays int    `json:"horizon_days" validate:"omitempty,min=7,max=365"`
}

// BacktestRequest configures one backtest run.
type BacktestRequest struct {
	Range          string `json:"range" validate:"omitempty,oneof=1y 2y 5y 10y"`
	LookbackMonths int    `json:"lookback_months" validate:"omitempty,min=1,max=60"`
}

// AnalysisResult is the full output of one analysis pipeline run.
type AnalysisResult struct {
	Symbol        string        `json:"symbol"`
	GeneratedAt   time.Time     `json:"generated_at"`
	CurrentPrice  float64       `json:"current_price"`
	Signal        *Signal       `json:"signal"`
	Risk          RiskLevels    `json:"risk"`
	ForecastStats ForecastStats `json:"forecast_stats"`
	Levels        PriceLevels   `json:"levels"`
	Indicators    IndicatorRow  `json:"indicators"`
}
