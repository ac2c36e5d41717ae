package report

import (
	"fmt"
	"strings"

	"sol-advisor/internal/dto"
)

const lineWidth = 70

func header(title string) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", lineWidth))
	b.WriteString("\n")
	pad := (lineWidth - len(title)) / 2
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", lineWidth))
	b.WriteString("\n")
	return b.String()
}

// Summary renders the full analysis summary as plain text.
func Summary(result *dto.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(header(fmt.Sprintf("%s PRICE PREDICTION ANALYSIS SUMMARY", result.Symbol)))

	stats := result.ForecastStats
	b.WriteString("\n[PRICE OVERVIEW]\n")
	fmt.Fprintf(&b, "   Current Price:           $%10.2f\n", result.CurrentPrice)
	fmt.Fprintf(&b, "   7-Day Forecast:          $%10.2f (%+.2f%%)\n", stats.Forecast7d, stats.Change7dPct)
	fmt.Fprintf(&b, "   30-Day Forecast:         $%10.2f (%+.2f%%)\n", stats.Forecast30d, stats.Change30dPct)

	levels := result.Levels
	b.WriteString("\n[TECHNICAL LEVELS]\n")
	fmt.Fprintf(&b, "   Support Level:           $%10.2f (%+.2f%%)\n", levels.Support, levels.SupportDistancePct)
	fmt.Fprintf(&b, "   Resistance Level:        $%10.2f (%+.2f%%)\n", levels.Resistance, levels.ResistanceDistancePct)
	fmt.Fprintf(&b, "   Pivot Point:             $%10.2f\n", levels.Pivot)

	ind := result.Indicators
	b.WriteString("\n[TECHNICAL INDICATORS]\n")
	fmt.Fprintf(&b, "   RSI (14):                %15.2f %s\n", ind.RSI, rsiLabel(ind.RSI))
	fmt.Fprintf(&b, "   Volatility (14-day):     %15.4f\n", ind.Volatility)
	fmt.Fprintf(&b, "   Momentum (10-day):       %15.2f\n", ind.Momentum)

	b.WriteString("\n[MOVING AVERAGES]\n")
	fmt.Fprintf(&b, "   MA7:                     $%10.2f\n", ind.MA7)
	fmt.Fprintf(&b, "   MA14:                    $%10.2f\n", ind.MA14)
	fmt.Fprintf(&b, "   MA30:                    $%10.2f\n", ind.MA30)

	if result.Signal != nil {
		b.WriteString("\n[TRADING SIGNAL]\n")
		fmt.Fprintf(&b, "   Signal Type:             %15s\n", result.Signal.Type)
		fmt.Fprintf(&b, "   Confidence:              %14.0f%%\n", result.Signal.Confidence)
		fmt.Fprintf(&b, "   Expected Upside:         %14.2f%%\n", result.Signal.ExpectedUpsidePct)
		fmt.Fprintf(&b, "   Reason:                  %s\n", result.Signal.Reason)
		for _, detail := range result.Signal.Details {
			fmt.Fprintf(&b, "      %s\n", detail)
		}
	}

	b.WriteString("\n[RISK MANAGEMENT]\n")
	fmt.Fprintf(&b, "   Stop Loss:               $%10.2f\n", result.Risk.StopLoss)
	fmt.Fprintf(&b, "   Take Profit:             $%10.2f\n", result.Risk.TakeProfit)
	fmt.Fprintf(&b, "   Risk/Reward Ratio:       %11.2f\n", result.Risk.RiskRewardRatio)

	b.WriteString("\n[OPTIMAL TRADING TIMES]\n")
	if !stats.BestBuyTime.IsZero() {
		fmt.Fprintf(&b, "   Best Buy Date:           %15s ($%.2f)\n", stats.BestBuyTime.Format("2006-01-02"), stats.LocalMin)
	}
	if !stats.BestSellTime.IsZero() {
		fmt.Fprintf(&b, "   Best Sell Date:          %15s ($%.2f)\n", stats.BestSellTime.Format("2006-01-02"), stats.LocalMax)
	}

	b.WriteString(strings.Repeat("=", lineWidth))
	b.WriteString("\n")
	return b.String()
}

func rsiLabel(rsi float64) string {
	switch {
	case rsi > 70:
		return "(Overbought)"
	case rsi < 30:
		return "(Oversold)"
	default:
		return "(Neutral)"
	}
}

// Backtest renders the backtest report as plain text.
func Backtest(result *dto.BacktestResult, lookbackMonths int) string {
	var b strings.Builder
	b.WriteString(header(fmt.Sprintf("BACKTEST REPORT (%d-Month Historical Test)", lookbackMonths)))

	b.WriteString("\n[TRADE STATISTICS]\n")
	fmt.Fprintf(&b, "   Total Trades:            %10d\n", result.TotalTrades)
	fmt.Fprintf(&b, "   Winning Trades:          %10d\n", result.WinningTrades)
	fmt.Fprintf(&b, "   Losing Trades:           %10d\n", result.LosingTrades)
	fmt.Fprintf(&b, "   Win Rate:                %9.1f%%\n", result.WinRatePct)

	b.WriteString("\n[PERFORMANCE METRICS]\n")
	fmt.Fprintf(&b, "   Strategy Return:         %9.2f%%\n", result.TotalReturnPct)
	fmt.Fprintf(&b, "   Buy & Hold Return:       %9.2f%%\n", result.BuyHoldReturnPct)
	fmt.Fprintf(&b, "   Avg Trade Return:        %9.2f%%\n", result.AvgTradeReturnPct)
	fmt.Fprintf(&b, "   Max Drawdown:            %9.2f%%\n", result.MaxDrawdownPct)
	fmt.Fprintf(&b, "   Profit Factor:           %15.2f\n", result.ProfitFactor)

	if result.WinningTrades > 0 {
		b.WriteString("\n[TRADE QUALITY]\n")
		fmt.Fprintf(&b, "   Avg Win:                 $%10.2f\n", result.AvgWin)
		fmt.Fprintf(&b, "   Avg Loss:                $%10.2f\n", result.AvgLoss)
	}

	b.WriteString("\n")
	switch {
	case result.TotalTrades == 0:
		b.WriteString("[WARNING] No trades generated in backtest period\n")
	case result.WinRatePct > 50:
		b.WriteString("[OK] Positive win rate - Strategy shows promise\n")
	default:
		b.WriteString("[WARNING] Low win rate - Strategy may need refinement\n")
	}

	if result.TotalReturnPct > result.BuyHoldReturnPct {
		b.WriteString("[OK] Outperformed buy & hold strategy\n")
	} else {
		b.WriteString("[INFO] Underperformed buy & hold - Consider position sizing\n")
	}

	b.WriteString(strings.Repeat("=", lineWidth))
	b.WriteString("\n")
	return b.String()
}
