package dto

import "time"

type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
	SignalHold SignalType = "HOLD"
)

// Signal is the immutable result of one scoring run of the signal engine.
type Signal struct {
	Type              SignalType `json:"type"`
	Reason            string     `json:"reason"`
	Confidence        float64    `json:"confidence"`
	Timestamp         time.Time  `json:"timestamp"`
	CurrentPrice      float64    `json:"current_price"`
	ForecastPrice     *float64   `json:"forecast_price"`
	ExpectedUpsidePct float64    `json:"expected_upside_pct"`
	Details           []string   `json:"details"`
}

// RiskLevels holds stop-loss/take-profit levels derived from ATR and the
// forecast extrema. Recomputed fresh on every call, never stored.
type RiskLevels struct {
	StopLoss        float64 `json:"stop_loss"`
	TakeProfit      float64 `json:"take_profit"`
	RiskAmount      float64 `json:"risk_amount"`
	RewardAmount    float64 `json:"reward_amount"`
	RiskRewardRatio float64 `json:"risk_reward_ratio"`
}
