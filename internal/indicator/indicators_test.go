package indicator

import (
	"math"
	"testing"
	"time"

	"sol-advisor/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func risingCandles(count int) []dto.Candle {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]dto.Candle, count)
	for i := range candles {
		c := 100.0 + float64(i)
		candles[i] = dto.Candle{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return candles
}

func TestBuild_WarmupRowsAreNaN(t *testing.T) {
	series := Build(risingCandles(40))
	require.Len(t, series, 40)

	assert.True(t, math.IsNaN(series[5].MA7))
	assert.False(t, math.IsNaN(series[6].MA7))

	assert.True(t, math.IsNaN(series[12].MA14))
	assert.False(t, math.IsNaN(series[13].MA14))

	assert.True(t, math.IsNaN(series[28].MA30))
	assert.False(t, math.IsNaN(series[29].MA30))

	assert.True(t, math.IsNaN(series[9].Momentum))
	assert.False(t, math.IsNaN(series[10].Momentum))

	assert.True(t, math.IsNaN(series[13].RSI))
	assert.False(t, math.IsNaN(series[14].RSI))

	// Volatility needs 14 returns, one bar more than the other windows.
	assert.True(t, math.IsNaN(series[13].Volatility))
	assert.False(t, math.IsNaN(series[14].Volatility))

	assert.True(t, math.IsNaN(series[12].ATR))
	assert.False(t, math.IsNaN(series[13].ATR))
}

func TestBuild_KnownValues(t *testing.T) {
	series := Build(risingCandles(40))

	// MA7 at index 6 averages closes 100..106.
	assert.InDelta(t, 103.0, series[6].MA7, 1e-9)
	// 10-day momentum on a one-per-day rise.
	assert.InDelta(t, 10.0, series[10].Momentum, 1e-9)
	// All deltas positive: RSI saturates at 100.
	assert.InDelta(t, 100.0, series[14].RSI, 1e-9)
	// Candles span high-low of 2 every day, so ATR settles at 2.
	assert.InDelta(t, 2.0, series[13].ATR, 1e-6)
}

func TestBuild_FlatCloses(t *testing.T) {
	candles := risingCandles(20)
	for i := range candles {
		candles[i].Close = 100
		candles[i].High = 101
		candles[i].Low = 99
	}
	series := Build(candles)

	// No gains and no losses leaves RSI undefined.
	assert.True(t, math.IsNaN(series[15].RSI))
	assert.InDelta(t, 100.0, series[7].MA7, 1e-9)
	assert.InDelta(t, 0.0, series[15].Volatility, 1e-9)
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil))
}

func TestIndicatorSeries_VolatilityColumn(t *testing.T) {
	series := Build(risingCandles(20))
	column := series.VolatilityColumn()

	// Warm-up NaNs are excluded from the percentile column.
	require.Len(t, column, 20-14)
	for _, v := range column {
		assert.False(t, math.IsNaN(v))
	}
}
