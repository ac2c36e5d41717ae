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
	analyzeRange   string
	analyzeHorizon int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot analysis and print the signal report",
	Run:   runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRange, "range", "", "history range to fetch (1y, 2y, 5y, 10y)")
	analyzeCmd.Flags().IntVar(&analyzeHorizon, "horizon", 0, "forecast horizon in days")
}

func runAnalyze(cmd *cobra.Command, args []string) {
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

	result, err := services.AnalysisService.Analyze(ctx, dto.AnalyzeRequest{
		Range:       analyzeRange,
		HorizonDays: analyzeHorizon,
	})
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	fmt.Println(report.Summary(result))
}
