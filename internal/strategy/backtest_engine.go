package strategy

import (
	"fmt"
	"math"
	"time"

	"sol-advisor/config"
	"sol-advisor/internal/dto"
)

const (
	backtestRSICeiling   = 70
	backtestRSIExit      = 75
	backtestMomentumExit = -0.5
	daysPerMonth         = 30
)

type position int

const (
	positionNone position = iota
	positionLong
)

// BacktestEngine replays a simplified long-only MA/RSI/momentum rule
// bar-by-bar over a historical window. The entry/exit rule set is
// intentionally decoupled from the signal engine: it drives simulated
// execution rather than advisory scoring. Instances own their trade list and
// equity curve and are not safe for concurrent use.
type BacktestEngine struct {
	initialCapital      float64
	positionSizePct     float64
	stopLossPct         float64
	takeProfitPct       float64
	allowSameBarReentry bool

	trades      []dto.Trade
	equityCurve []float64
}

func NewBacktestEngine(cfg config.BacktestConfig) *BacktestEngine {
	return &BacktestEngine{
		initialCapital:      cfg.InitialCapital,
		positionSizePct:     cfg.PositionSizePct,
		stopLossPct:         cfg.StopLossPct,
		takeProfitPct:       cfg.TakeProfitPct,
		allowSameBarReentry: cfg.AllowSameBarReentry,
	}
}

// Trades returns the trades recorded by the most recent Run.
func (e *BacktestEngine) Trades() []dto.Trade {
	return e.trades
}

// EquityCurve returns the per-bar capital snapshots of the most recent Run,
// seeded with the initial capital.
func (e *BacktestEngine) EquityCurve() []float64 {
	return e.equityCurve
}

// Run restricts both inputs to the trailing lookback window and simulates the
// strategy. An empty window yields an empty result, not an error.
func (e *BacktestEngine) Run(candles []dto.Candle, indicators dto.IndicatorSeries, lookbackMonths int) (*dto.BacktestResult, error) {
	if lookbackMonths <= 0 {
		return nil, fmt.Errorf("%w: lookback months must be positive, got %d", dto.ErrInvalidInput, lookbackMonths)
	}

	e.trades = nil
	e.equityCurve = nil

	if len(candles) == 0 {
		return &dto.BacktestResult{Trades: []dto.Trade{}, EquityCurve: []float64{}}, nil
	}

	start := candles[len(candles)-1].Date.AddDate(0, 0, -lookbackMonths*daysPerMonth)
	window := filterCandles(candles, start)
	indicatorWindow := indicators.After(start)

	if len(window) == 0 {
		return &dto.BacktestResult{Trades: []dto.Trade{}, EquityCurve: []float64{}}, nil
	}

	capital := e.initialCapital
	pos := positionNone
	var entryPrice float64
	var entryDate time.Time

	e.equityCurve = append(e.equityCurve, capital)

	for i := 1; i < len(window); i++ {
		date := window[i].Date
		closePrice := window[i].Close

		ma7, ma14, ma30, rsiValue, momentumValue := barIndicators(indicatorWindow, i, closePrice)

		buySignal := closePrice > ma7 && ma7 > ma14 && ma14 > ma30 &&
			rsiValue < backtestRSICeiling && momentumValue > 0
		sellSignal := closePrice < ma7 || rsiValue > backtestRSIExit || momentumValue < backtestMomentumExit

		closedThisBar := false
		if pos == positionLong {
			lossPct := (entryPrice - closePrice) / entryPrice
			gainPct := (closePrice - entryPrice) / entryPrice

			if lossPct > e.stopLossPct || gainPct > e.takeProfitPct || sellSignal {
				pnl := (closePrice - entryPrice) * (capital * e.positionSizePct / entryPrice)
				capital += pnl

				e.trades = append(e.trades, dto.Trade{
					EntryDate:  entryDate,
					ExitDate:   date,
					EntryPrice: entryPrice,
					ExitPrice:  closePrice,
					ReturnPct:  gainPct * 100,
					PnL:        pnl,
				})

				pos = positionNone
				closedThisBar = true
			}
		}

		// The entry check runs after the exit check on the same bar, so a
		// position closed this bar may re-open immediately. That ordering
		// affects trade counts and is the documented default; the reentry
		// switch turns it off.
		if pos == positionNone && buySignal && (e.allowSameBarReentry || !closedThisBar) {
			pos = positionLong
			entryPrice = closePrice
			entryDate = date
		}

		e.equityCurve = append(e.equityCurve, capital)
	}

	return e.calculateStatistics(window), nil
}

// barIndicators reads the indicator row for bar i, substituting the close for
// missing MAs, 50 for missing RSI and 0 for missing momentum.
func barIndicators(indicators dto.IndicatorSeries, i int, closePrice float64) (ma7, ma14, ma30, rsiValue, momentumValue float64) {
	ma7, ma14, ma30 = closePrice, closePrice, closePrice
	rsiValue = 50
	momentumValue = 0

	if i >= len(indicators) {
		return
	}

	row := indicators[i]
	if !math.IsNaN(row.MA7) {
		ma7 = row.MA7
	}
	if !math.IsNaN(row.MA14) {
		ma14 = row.MA14
	}
	if !math.IsNaN(row.MA30) {
		ma30 = row.MA30
	}
	if !math.IsNaN(row.RSI) {
		rsiValue = row.RSI
	}
	if !math.IsNaN(row.Momentum) {
		momentumValue = row.Momentum
	}
	return
}

func (e *BacktestEngine) calculateStatistics(window []dto.Candle) *dto.BacktestResult {
	result := &dto.BacktestResult{
		StartDate:    window[0].Date,
		EndDate:      window[len(window)-1].Date,
		Trades:       append([]dto.Trade{}, e.trades...),
		EquityCurve:  append([]float64{}, e.equityCurve...),
		FinalCapital: e.equityCurve[len(e.equityCurve)-1],
	}

	firstClose := window[0].Close
	lastClose := window[len(window)-1].Close
	if firstClose > 0 {
		result.BuyHoldReturnPct = (lastClose - firstClose) / firstClose * 100
	}

	result.TotalReturnPct = (result.FinalCapital - e.initialCapital) / e.initialCapital * 100

	if len(e.trades) == 0 {
		return result
	}

	var grossProfit, grossLoss, returnSum float64
	for _, trade := range e.trades {
		result.TotalTrades++
		returnSum += trade.ReturnPct
		if trade.PnL > 0 {
			result.WinningTrades++
			grossProfit += trade.PnL
		} else if trade.PnL < 0 {
			result.LosingTrades++
			grossLoss += -trade.PnL
		}
	}

	result.WinRatePct = float64(result.WinningTrades) / float64(result.TotalTrades) * 100
	result.AvgTradeReturnPct = returnSum / float64(result.TotalTrades)

	// Profit factor reports 0 rather than infinity when nothing was lost.
	if grossLoss > 0 {
		result.ProfitFactor = grossProfit / grossLoss
	}
	if result.WinningTrades > 0 {
		result.AvgWin = grossProfit / float64(result.WinningTrades)
	}
	if result.LosingTrades > 0 {
		result.AvgLoss = -grossLoss / float64(result.LosingTrades)
	}

	result.MaxDrawdownPct = maxDrawdown(e.equityCurve)

	return result
}

// maxDrawdown returns the deepest peak-to-trough decline of the equity curve
// as a negative percentage.
func maxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}
	peak := equity[0]
	worst := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (v - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst * 100
}

func filterCandles(candles []dto.Candle, start time.Time) []dto.Candle {
	for i, c := range candles {
		if !c.Date.Before(start) {
			return candles[i:]
		}
	}
	return nil
}
