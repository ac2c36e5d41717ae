package strategy

import (
	"math"
	"testing"

	"sol-advisor/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRiskLevels(t *testing.T) {
	stats := dto.ForecastStats{LocalMin: 90, LocalMax: 105}

	levels, err := CalculateRiskLevels(100, 2, stats)
	require.NoError(t, err)

	// ATR band wins on both sides: 100-1.5*2=97 beats 90*0.98, and
	// 100+3*2=106 beats 105*1.02.
	assert.InDelta(t, 97.0, levels.StopLoss, 1e-9)
	assert.InDelta(t, 106.0, levels.TakeProfit, 1e-9)
	assert.InDelta(t, 3.0, levels.RiskAmount, 1e-9)
	assert.InDelta(t, 6.0, levels.RewardAmount, 1e-9)
	assert.InDelta(t, 2.0, levels.RiskRewardRatio, 1e-9)
}

func TestCalculateRiskLevels_ForecastBandWins(t *testing.T) {
	stats := dto.ForecastStats{LocalMin: 99, LocalMax: 101}

	levels, err := CalculateRiskLevels(100, 5, stats)
	require.NoError(t, err)

	assert.InDelta(t, 99*0.98, levels.StopLoss, 1e-9)
	assert.InDelta(t, 101*1.02, levels.TakeProfit, 1e-9)
}

func TestCalculateRiskLevels_MissingForecastExtrema(t *testing.T) {
	levels, err := CalculateRiskLevels(100, 2, dto.ForecastStats{})
	require.NoError(t, err)

	// Zero extrema fall back to the current price.
	assert.InDelta(t, 98.0, levels.StopLoss, 1e-9)
	assert.InDelta(t, 102.0, levels.TakeProfit, 1e-9)
	assert.InDelta(t, 1.0, levels.RiskRewardRatio, 1e-9)
}

func TestCalculateRiskLevels_DegenerateStopLoss(t *testing.T) {
	// With zero ATR the stop-loss lands on the price itself and the ratio is
	// reported as zero instead of dividing by zero.
	levels, err := CalculateRiskLevels(100, 0, dto.ForecastStats{})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, levels.StopLoss, 1e-9)
	assert.Equal(t, 0.0, levels.RiskRewardRatio)
}

func TestCalculateRiskLevels_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		atr   float64
	}{
		{name: "zero price", price: 0, atr: 1},
		{name: "negative price", price: -10, atr: 1},
		{name: "nan price", price: math.NaN(), atr: 1},
		{name: "negative atr", price: 100, atr: -1},
		{name: "nan atr", price: 100, atr: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateRiskLevels(tt.price, tt.atr, dto.ForecastStats{})
			assert.ErrorIs(t, err, dto.ErrInvalidInput)
		})
	}
}
