package strategy

import (
	"fmt"
	"math"
	"time"

	"sol-advisor/config"
	"sol-advisor/internal/dto"
	"sol-advisor/internal/forecast"
	"sol-advisor/internal/indicator"
)

// minFutureForecastRows is the hard floor below which no scoring happens.
const minFutureForecastRows = 7

// Condition weights of the BUY rule bank.
const (
	weightBuyTrend       = 20
	weightBuyMomentum    = 18
	weightBuyNearMin5    = 20
	weightBuyNearMin10   = 12
	weightBuyNearMin15   = 8
	weightBuyRSIOversold = 22
	weightBuyRSILow      = 12
	weightBuyMAFull      = 18
	weightBuyMAMid       = 12
	weightBuyMAShort     = 8
)

// Condition weights of the SELL rule bank.
const (
	weightSellTrend         = 18
	weightSellMomentum      = 16
	weightSellMomentumWeak  = 8
	weightSellNearMax5      = 20
	weightSellNearMax10     = 14
	weightSellNearMax15     = 10
	weightSellRSIOverbought = 22
	weightSellRSIElevated   = 12
	weightSellVolExtreme    = 15
	weightSellVolHigh       = 10
	weightSellDeathCross    = 18
	weightSellMACrossover   = 10
)

// SignalEngine classifies the current market state into BUY/SELL/HOLD with a
// bounded confidence and an explanatory condition trail. Every generated
// signal is appended to the engine-owned history; instances are not safe for
// concurrent use.
type SignalEngine struct {
	buyMomentumThreshold float64
	rsiOversold          float64
	rsiOverbought        float64
	now                  func() time.Time
	history              []dto.Signal
}

func NewSignalEngine(cfg config.SignalConfig) *SignalEngine {
	return &SignalEngine{
		buyMomentumThreshold: cfg.BuyMomentumThreshold,
		rsiOversold:          cfg.RSIOversold,
		rsiOverbought:        cfg.RSIOverbought,
		now:                  time.Now,
	}
}

// History returns the append-only signal history of this engine instance.
func (e *SignalEngine) History() []dto.Signal {
	return e.history
}

// Generate scores the current market state against the forecast curve and the
// latest indicator row. With fewer than 7 future forecast rows it returns a
// HOLD floor signal with confidence 20 and no further computation.
func (e *SignalEngine) Generate(currentPrice float64, points []dto.ForecastPoint, indicators dto.IndicatorSeries) (*dto.Signal, error) {
	if currentPrice <= 0 || math.IsNaN(currentPrice) {
		return nil, fmt.Errorf("%w: current price must be positive, got %f", dto.ErrInvalidInput, currentPrice)
	}

	latest, ok := indicators.Last()
	if !ok {
		return nil, fmt.Errorf("%w: empty indicator snapshot", dto.ErrInvalidInput)
	}
	if anyNaN(latest.RSI, latest.Momentum, latest.Volatility, latest.MA7, latest.MA14, latest.MA30) {
		return nil, fmt.Errorf("%w: indicator snapshot has no scalar values on the latest row", dto.ErrInvalidInput)
	}

	future := forecast.Future(points, e.now())
	if len(future) < minFutureForecastRows {
		return e.createSignal(dto.SignalHold, "Insufficient forecast data", 20, currentPrice, nil, nil), nil
	}

	forecast7d := future[min(6, len(future)-1)].Forecast
	localMin := future[0].Forecast
	localMax := future[0].Forecast
	for _, p := range future {
		localMin = min(localMin, p.Forecast)
		localMax = max(localMax, p.Forecast)
	}

	forecastTrend := forecast7d - currentPrice
	distanceToMin := math.Abs(currentPrice-localMin) / localMin
	distanceToMax := math.Abs(currentPrice-localMax) / localMax

	signalStrength := 0.0
	var details []string
	buyConditions := 0
	sellConditions := 0

	// ===== BUY rule bank =====

	if forecastTrend > 0 {
		buyConditions++
		signalStrength += weightBuyTrend
		details = append(details, "✓ Forecasted uptrend detected")
	} else {
		details = append(details, "✗ Forecasted downtrend")
	}

	if latest.Momentum > e.buyMomentumThreshold {
		buyConditions++
		signalStrength += weightBuyMomentum
		details = append(details, fmt.Sprintf("✓ Positive momentum: %.2f", latest.Momentum))
	} else {
		details = append(details, fmt.Sprintf("✗ Weak momentum: %.2f", latest.Momentum))
	}

	switch {
	case distanceToMin < 0.05:
		buyConditions++
		signalStrength += weightBuyNearMin5
		details = append(details, "✓ Near local minimum (5% threshold)")
	case distanceToMin < 0.10:
		signalStrength += weightBuyNearMin10
		details = append(details, "✓ Near local minimum (10% threshold)")
	case distanceToMin < 0.15:
		signalStrength += weightBuyNearMin15
		details = append(details, "✓ Near local minimum (15% threshold)")
	}

	switch {
	case latest.RSI < e.rsiOversold:
		buyConditions++
		signalStrength += weightBuyRSIOversold
		details = append(details, fmt.Sprintf("✓ RSI oversold: %.2f", latest.RSI))
	case latest.RSI < 40:
		signalStrength += weightBuyRSILow
		details = append(details, fmt.Sprintf("✓ RSI neutral-low: %.2f", latest.RSI))
	}

	switch {
	case currentPrice > latest.MA7 && latest.MA7 > latest.MA14 && latest.MA14 > latest.MA30:
		buyConditions++
		signalStrength += weightBuyMAFull
		details = append(details, "✓ Price above all moving averages")
	case currentPrice > latest.MA7 && latest.MA7 > latest.MA14:
		signalStrength += weightBuyMAMid
		details = append(details, "✓ Price above MA7 and MA14")
	case currentPrice > latest.MA7:
		signalStrength += weightBuyMAShort
		details = append(details, "✓ Price above MA7")
	}

	// ===== SELL rule bank =====

	if forecastTrend < 0 {
		sellConditions++
		signalStrength += weightSellTrend
		details = append(details, "✓ Forecasted downtrend")
	}

	switch {
	case latest.Momentum < -e.buyMomentumThreshold:
		sellConditions++
		signalStrength += weightSellMomentum
		details = append(details, fmt.Sprintf("✓ Negative momentum: %.2f", latest.Momentum))
	case latest.Momentum < 0:
		signalStrength += weightSellMomentumWeak
		details = append(details, fmt.Sprintf("✓ Weakening momentum: %.2f", latest.Momentum))
	}

	switch {
	case distanceToMax < 0.05:
		sellConditions++
		signalStrength += weightSellNearMax5
		details = append(details, "✓ Near local maximum (5% threshold)")
	case distanceToMax < 0.10:
		signalStrength += weightSellNearMax10
		details = append(details, "✓ Near local maximum (10% threshold)")
	case distanceToMax < 0.15:
		signalStrength += weightSellNearMax15
		details = append(details, "✓ Near local maximum (15% threshold)")
	}

	switch {
	case latest.RSI > e.rsiOverbought:
		sellConditions++
		signalStrength += weightSellRSIOverbought
		details = append(details, fmt.Sprintf("✓ RSI overbought: %.2f", latest.RSI))
	case latest.RSI > 60:
		signalStrength += weightSellRSIElevated
		details = append(details, fmt.Sprintf("✓ RSI elevated: %.2f", latest.RSI))
	}

	// Volatility percentiles are recomputed from the full snapshot on every
	// call so refreshed snapshots never see stale thresholds.
	volColumn := indicators.VolatilityColumn()
	switch {
	case latest.Volatility > indicator.Quantile(volColumn, 0.90):
		sellConditions++
		signalStrength += weightSellVolExtreme
		details = append(details, fmt.Sprintf("✓ Extreme volatility risk: %.2f", latest.Volatility))
	case latest.Volatility > indicator.Quantile(volColumn, 0.75):
		signalStrength += weightSellVolHigh
		details = append(details, fmt.Sprintf("✓ High volatility risk: %.2f", latest.Volatility))
	}

	switch {
	case latest.MA7 < latest.MA14 && latest.MA14 < latest.MA30:
		sellConditions++
		signalStrength += weightSellDeathCross
		details = append(details, "✓ Death cross detected (MA7 < MA14 < MA30)")
	case latest.MA7 < latest.MA14:
		signalStrength += weightSellMACrossover
		details = append(details, "✓ Bearish MA crossover (MA7 < MA14)")
	}

	// ===== Decision tree, first match wins =====

	switch {
	case buyConditions >= 3 && forecastTrend > 0 && latest.Momentum > 0:
		reason := fmt.Sprintf("Strong buy signal with %d conditions met", buyConditions)
		return e.createSignal(dto.SignalBuy, reason, min(95, signalStrength+45), currentPrice, &forecast7d, details), nil

	case buyConditions >= 2 && forecastTrend > 0:
		reason := fmt.Sprintf("Buy signal with %d conditions met", buyConditions)
		return e.createSignal(dto.SignalBuy, reason, min(85, signalStrength+35), currentPrice, &forecast7d, details), nil

	case buyConditions >= 1 && forecastTrend > 0:
		reason := fmt.Sprintf("Weak buy signal - %d condition(s) met", buyConditions)
		return e.createSignal(dto.SignalBuy, reason, min(70, signalStrength+25), currentPrice, &forecast7d, details), nil

	case sellConditions >= 3 || (latest.RSI > e.rsiOverbought && forecastTrend < 0):
		reason := fmt.Sprintf("Strong sell signal with %d conditions met", sellConditions)
		return e.createSignal(dto.SignalSell, reason, min(90, signalStrength+40), currentPrice, &forecast7d, details), nil

	case sellConditions >= 2:
		reason := fmt.Sprintf("Sell signal with %d conditions met", sellConditions)
		return e.createSignal(dto.SignalSell, reason, min(75, signalStrength+25), currentPrice, &forecast7d, details), nil

	default:
		return e.createSignal(dto.SignalHold, "Mixed signals - Hold current position", max(50, min(65, signalStrength+10)), currentPrice, &forecast7d, details), nil
	}
}

// createSignal clamps confidence to [0,100], records the signal in the
// engine-owned history and returns it.
func (e *SignalEngine) createSignal(signalType dto.SignalType, reason string, confidence, currentPrice float64, forecastPrice *float64, details []string) *dto.Signal {
	upside := 0.0
	if forecastPrice != nil {
		upside = (*forecastPrice - currentPrice) / currentPrice * 100
	}
	if details == nil {
		details = []string{}
	}

	signal := dto.Signal{
		Type:              signalType,
		Reason:            reason,
		Confidence:        min(100, max(0, confidence)),
		Timestamp:         e.now(),
		CurrentPrice:      currentPrice,
		ForecastPrice:     forecastPrice,
		ExpectedUpsidePct: upside,
		Details:           details,
	}

	e.history = append(e.history, signal)
	return &signal
}

func anyNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
