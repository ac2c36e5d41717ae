package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sol-advisor/internal/dto"
	"sol-advisor/internal/report"
	"sol-advisor/internal/repository"
	"sol-advisor/internal/service"

	"github.com/spf13/cobra"
)

var (
	backtestRange    string
	backtestLookback int
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay the trading strategy over historical data",
	Run:   runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestRange, "range", "", "history range to fetch (1y, 2y, 5y, 10y)")
	backtestCmd.Flags().IntVar(&backtestLookback, "lookback-months", 0, "number of months to simulate")
}

func runBacktest(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo, err := repository.NewRepository(appDep.cfg, appDep.cache, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.dispatcher)

	lookback := backtestLookback
	if lookback == 0 {
		lookback = appDep.cfg.Backtest.LookbackMonths
	}

	result, err := services.BacktestService.RunBacktest(ctx, dto.BacktestRequest{
		Range:          backtestRange,
		LookbackMonths: lookback,
	})
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	fmt.Println(report.Backtest(result, lookback))
}
