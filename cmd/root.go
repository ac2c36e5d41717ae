package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sol-advisor",
	Short: "SOL-USD price forecasting and trading signal advisor",
	Long: `sol-advisor fetches SOL-USD market data, builds technical indicators
and a price forecast, and turns them into rule-based trading signals.
It can run a one-shot analysis, replay the strategy over history,
serve the pipeline over HTTP, or watch the market on a schedule.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
}
