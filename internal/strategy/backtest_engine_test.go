package strategy

import (
	"testing"
	"time"

	"sol-advisor/config"
	"sol-advisor/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBacktestConfig() config.BacktestConfig {
	return config.BacktestConfig{
		InitialCapital:      10000,
		PositionSizePct:     0.95,
		StopLossPct:         0.05,
		TakeProfitPct:       0.15,
		LookbackMonths:      12,
		AllowSameBarReentry: true,
	}
}

func dailyCandles(start time.Time, closes []float64) []dto.Candle {
	candles := make([]dto.Candle, len(closes))
	for i, c := range closes {
		candles[i] = dto.Candle{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return candles
}

// bullishIndicators always satisfies the entry rule and never the exit rule,
// so positions close only on stop-loss or take-profit.
func bullishIndicators(candles []dto.Candle) dto.IndicatorSeries {
	series := make(dto.IndicatorSeries, len(candles))
	for i, c := range candles {
		series[i] = dto.IndicatorRow{
			Date:       c.Date,
			Close:      c.Close,
			MA7:        c.Close * 0.99,
			MA14:       c.Close * 0.98,
			MA30:       c.Close * 0.97,
			Volatility: 0.02,
			Momentum:   1,
			RSI:        55,
			ATR:        1,
		}
	}
	return series
}

// bearishIndicators keeps the moving averages above the close so no entry
// ever fires.
func bearishIndicators(candles []dto.Candle) dto.IndicatorSeries {
	series := make(dto.IndicatorSeries, len(candles))
	for i, c := range candles {
		series[i] = dto.IndicatorRow{
			Date:       c.Date,
			Close:      c.Close,
			MA7:        c.Close * 1.01,
			MA14:       c.Close * 1.02,
			MA30:       c.Close * 1.03,
			Volatility: 0.02,
			Momentum:   1,
			RSI:        55,
			ATR:        1,
		}
	}
	return series
}

func risingCloses(start, count int) []float64 {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = float64(start + i)
	}
	return closes
}

func TestBacktestEngine_TakeProfitRun(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := dailyCandles(start, risingCloses(100, 61))
	engine := NewBacktestEngine(testBacktestConfig())

	result, err := engine.Run(candles, bullishIndicators(candles), 12)
	require.NoError(t, err)

	// A straight rise enters on the second bar and keeps taking profit at the
	// 15% target: 101->117, 117->135, 135->156.
	require.Equal(t, 3, result.TotalTrades)
	assert.Equal(t, 3, result.WinningTrades)
	assert.Equal(t, 0, result.LosingTrades)
	assert.Equal(t, 100.0, result.WinRatePct)
	assert.Equal(t, 0.0, result.MaxDrawdownPct)

	assert.Equal(t, 101.0, result.Trades[0].EntryPrice)
	assert.Equal(t, 117.0, result.Trades[0].ExitPrice)
	assert.Equal(t, 117.0, result.Trades[1].EntryPrice)
	assert.Equal(t, 135.0, result.Trades[1].ExitPrice)
	assert.Equal(t, 135.0, result.Trades[2].EntryPrice)
	assert.Equal(t, 156.0, result.Trades[2].ExitPrice)

	// No losing trades means the profit factor is reported as zero, not
	// infinity.
	assert.Equal(t, 0.0, result.ProfitFactor)
	assert.Equal(t, 0.0, result.AvgLoss)
	assert.Positive(t, result.AvgWin)
	assert.Positive(t, result.TotalReturnPct)

	var pnlSum float64
	for _, trade := range result.Trades {
		pnlSum += trade.PnL
	}
	assert.InDelta(t, 10000+pnlSum, result.FinalCapital, 1e-6)

	// One equity point per bar of the window, seeded with the initial capital.
	require.Len(t, result.EquityCurve, len(candles))
	assert.Equal(t, 10000.0, result.EquityCurve[0])
}

func TestBacktestEngine_StopLossExit(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := append(risingCloses(100, 21), 111, 105, 100, 100, 100)
	candles := dailyCandles(start, closes)
	engine := NewBacktestEngine(testBacktestConfig())

	result, err := engine.Run(candles, bullishIndicators(candles), 12)
	require.NoError(t, err)

	require.GreaterOrEqual(t, result.LosingTrades, 1)
	assert.Negative(t, result.AvgLoss)
	assert.Negative(t, result.MaxDrawdownPct)
	assert.Positive(t, result.ProfitFactor)

	var pnlSum float64
	for _, trade := range result.Trades {
		pnlSum += trade.PnL
	}
	assert.InDelta(t, 10000+pnlSum, result.FinalCapital, 1e-6)
}

func TestBacktestEngine_NoTrades(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := dailyCandles(start, risingCloses(100, 40))
	engine := NewBacktestEngine(testBacktestConfig())

	result, err := engine.Run(candles, bearishIndicators(candles), 12)
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalTrades)
	assert.Equal(t, 0.0, result.WinRatePct)
	assert.Equal(t, 0.0, result.TotalReturnPct)
	assert.Equal(t, 10000.0, result.FinalCapital)
	assert.Empty(t, result.Trades)

	// Statistics still report the market itself on a flat account.
	assert.InDelta(t, 39.0, result.BuyHoldReturnPct, 1e-9)

	require.Len(t, result.EquityCurve, len(candles))
	for _, equity := range result.EquityCurve {
		assert.Equal(t, 10000.0, equity)
	}
}

func TestBacktestEngine_SameBarReentry(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := dailyCandles(start, risingCloses(100, 61))

	reentry := NewBacktestEngine(testBacktestConfig())
	withReentry, err := reentry.Run(candles, bullishIndicators(candles), 12)
	require.NoError(t, err)

	cfg := testBacktestConfig()
	cfg.AllowSameBarReentry = false
	delayed := NewBacktestEngine(cfg)
	withoutReentry, err := delayed.Run(candles, bullishIndicators(candles), 12)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(withReentry.Trades), 2)
	require.GreaterOrEqual(t, len(withoutReentry.Trades), 2)

	// With reentry the second position opens on the exit bar itself; without
	// it the entry slips to the next bar.
	assert.Equal(t, withReentry.Trades[0].ExitDate, withReentry.Trades[1].EntryDate)
	assert.Equal(t, 117.0, withReentry.Trades[1].EntryPrice)
	assert.Equal(t, 118.0, withoutReentry.Trades[1].EntryPrice)
}

func TestBacktestEngine_LookbackWindow(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := dailyCandles(start, risingCloses(100, 800))
	engine := NewBacktestEngine(testBacktestConfig())

	result, err := engine.Run(candles, bullishIndicators(candles), 12)
	require.NoError(t, err)

	lastDate := candles[len(candles)-1].Date
	windowStart := lastDate.AddDate(0, 0, -12*30)
	assert.False(t, result.StartDate.Before(windowStart))
	assert.Equal(t, lastDate, result.EndDate)
	assert.LessOrEqual(t, len(result.EquityCurve), 12*30+1)
}

func TestBacktestEngine_InvalidLookback(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := dailyCandles(start, risingCloses(100, 40))
	engine := NewBacktestEngine(testBacktestConfig())

	for _, lookback := range []int{0, -3} {
		result, err := engine.Run(candles, bullishIndicators(candles), lookback)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, dto.ErrInvalidInput)
	}
}

func TestBacktestEngine_EmptyInput(t *testing.T) {
	engine := NewBacktestEngine(testBacktestConfig())

	result, err := engine.Run(nil, dto.IndicatorSeries{}, 12)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalTrades)
	assert.Empty(t, result.Trades)
	assert.Empty(t, result.EquityCurve)
}

func TestBacktestEngine_MissingIndicatorDefaults(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := dailyCandles(start, risingCloses(100, 30))
	engine := NewBacktestEngine(testBacktestConfig())

	// Shorter indicator slice than candles: bars without a row fall back to
	// neutral defaults and the simulation still covers every bar.
	result, err := engine.Run(candles, bullishIndicators(candles)[:5], 12)
	require.NoError(t, err)
	require.Len(t, result.EquityCurve, len(candles))

	// The default MA equals the close, so no new entry fires once the rows
	// run out.
	for _, trade := range result.Trades {
		assert.True(t, trade.EntryDate.Before(candles[5].Date))
	}
}
