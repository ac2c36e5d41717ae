package alert

import (
	"fmt"
	"strings"

	"sol-advisor/internal/dto"
	"sol-advisor/pkg/utils"
)

const divider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

const disclaimer = "⚠️  DISCLAIMER: This is a statistical forecast, NOT financial advice.\n" +
	"Always conduct your own research before trading."

// FormatAlert builds the alert message body for the generated signal.
func FormatAlert(result *dto.AnalysisResult) string {
	signal := result.Signal
	timestamp := result.GeneratedAt.Format("2006-01-02 15:04:05")

	switch signal.Type {
	case dto.SignalBuy:
		return formatBuy(result, timestamp)
	case dto.SignalSell:
		return formatSell(result, timestamp)
	default:
		return formatHold(result, timestamp)
	}
}

func formatBuy(result *dto.AnalysisResult, timestamp string) string {
	signal := result.Signal
	var b strings.Builder
	b.WriteString("🔥 BUY SIGNAL TRIGGERED 🔥\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", timestamp)
	fmt.Fprintf(&b, "Current Price: %s\n", utils.FormatPrice(signal.CurrentPrice))
	fmt.Fprintf(&b, "Expected Upside: %s over 7-30 days\n", utils.FormatPercentage(signal.ExpectedUpsidePct))
	fmt.Fprintf(&b, "Confidence Level: %.0f%%\n", signal.Confidence)
	b.WriteString("\nRisk Management:\n")
	fmt.Fprintf(&b, "Stop Loss: %s\n", utils.FormatPrice(result.Risk.StopLoss))
	fmt.Fprintf(&b, "Take Profit: %s\n", utils.FormatPrice(result.Risk.TakeProfit))
	b.WriteString("\n" + disclaimer + "\n")
	b.WriteString(divider)
	return b.String()
}

func formatSell(result *dto.AnalysisResult, timestamp string) string {
	signal := result.Signal
	var b strings.Builder
	b.WriteString("⚠️ SELL SIGNAL TRIGGERED ⚠️\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", timestamp)
	fmt.Fprintf(&b, "Current Price: %s\n", utils.FormatPrice(signal.CurrentPrice))
	fmt.Fprintf(&b, "Downside Risk: %.2f%%\n", abs(signal.ExpectedUpsidePct))
	fmt.Fprintf(&b, "Confidence Level: %.0f%%\n", signal.Confidence)
	b.WriteString("\nAction: Consider closing positions or reducing exposure.\n")
	b.WriteString("\n" + disclaimer + "\n")
	b.WriteString(divider)
	return b.String()
}

func formatHold(result *dto.AnalysisResult, timestamp string) string {
	signal := result.Signal
	var b strings.Builder
	b.WriteString("📊 HOLD SIGNAL 📊\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Timestamp: %s\n", timestamp)
	fmt.Fprintf(&b, "Current Price: %s\n", utils.FormatPrice(signal.CurrentPrice))
	b.WriteString("\nAction: Hold current position. Mixed signals detected.\n")
	b.WriteString("Wait for clearer setup before entering new positions.\n")
	b.WriteString(divider)
	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
