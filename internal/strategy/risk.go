package strategy

import (
	"fmt"
	"math"

	"sol-advisor/internal/dto"
)

const (
	atrStopLossMultiple   = 1.5
	atrTakeProfitMultiple = 3.0
	forecastStopLossAdj   = 0.98
	forecastTakeProfitAdj = 1.02
)

// CalculateRiskLevels derives stop-loss/take-profit levels from an ATR band
// and a forecast-extrema band, keeping the more conservative side of each:
// the higher stop-loss floor and the lower take-profit ceiling.
func CalculateRiskLevels(currentPrice, atr float64, stats dto.ForecastStats) (dto.RiskLevels, error) {
	if currentPrice <= 0 || math.IsNaN(currentPrice) {
		return dto.RiskLevels{}, fmt.Errorf("%w: current price must be positive, got %f", dto.ErrInvalidInput, currentPrice)
	}
	if atr < 0 || math.IsNaN(atr) {
		return dto.RiskLevels{}, fmt.Errorf("%w: atr must be non-negative, got %f", dto.ErrInvalidInput, atr)
	}

	stopLossATR := currentPrice - atr*atrStopLossMultiple
	takeProfitATR := currentPrice + atr*atrTakeProfitMultiple

	localMin := stats.LocalMin
	localMax := stats.LocalMax
	if localMin == 0 {
		localMin = currentPrice
	}
	if localMax == 0 {
		localMax = currentPrice
	}

	stopLossForecast := localMin * forecastStopLossAdj
	takeProfitForecast := localMax * forecastTakeProfitAdj

	stopLoss := max(stopLossATR, stopLossForecast)
	takeProfit := min(takeProfitATR, takeProfitForecast)

	ratio := 0.0
	if currentPrice > stopLoss {
		ratio = (takeProfit - currentPrice) / (currentPrice - stopLoss)
	}

	return dto.RiskLevels{
		StopLoss:        stopLoss,
		TakeProfit:      takeProfit,
		RiskAmount:      currentPrice - stopLoss,
		RewardAmount:    takeProfit - currentPrice,
		RiskRewardRatio: ratio,
	}, nil
}
