package dto

import "time"

// Trade records one closed long position during a backtest.
type Trade struct {
	EntryDate  time.Time `json:"entry_date"`
	ExitDate   time.Time `json:"exit_date"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	ReturnPct  float64   `json:"return_pct"`
	PnL        float64   `json:"pnl"`
}

// BacktestResult summarizes one backtest run.
type BacktestResult struct {
	Symbol            string    `json:"symbol"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	TotalTrades       int       `json:"total_trades"`
	WinningTrades     int       `json:"winning_trades"`
	LosingTrades      int       `json:"losing_trades"`
	WinRatePct        float64   `json:"win_rate_pct"`
	TotalReturnPct    float64   `json:"total_return_pct"`
	AvgTradeReturnPct float64   `json:"avg_trade_return_pct"`
	MaxDrawdownPct    float64   `json:"max_drawdown_pct"`
	ProfitFactor      float64   `json:"profit_factor"`
	BuyHoldReturnPct  float64   `json:"buy_hold_return_pct"`
	AvgWin            float64   `json:"avg_win"`
	AvgLoss           float64   `json:"avg_loss"`
	FinalCapital      float64   `json:"final_capital"`
	Trades            []Trade   `json:"trades"`
	EquityCurve       []float64 `json:"equity_curve"`
}
