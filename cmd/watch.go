package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sol-advisor/internal/dto"
	"sol-advisor/internal/repository"
	"sol-advisor/internal/service"
	"sol-advisor/pkg/logger"
	"sol-advisor/pkg/utils"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis on a schedule and send alerts",
	Run:   runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo, err := repository.NewRepository(appDep.cfg, appDep.cache, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.dispatcher)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(appDep.cfg.Scheduler.CronSpec, func() {
		utils.GoSafe(func() {
			if _, err := services.AnalysisService.Analyze(ctx, dto.AnalyzeRequest{}); err != nil {
				appDep.log.ErrorContext(ctx, "Scheduled analysis failed", logger.ErrorField(err))
			}
		})
	})
	if err != nil {
		log.Fatalf("Failed to schedule analysis: %v", err)
	}

	appDep.log.Info("Starting market watch",
		logger.StringField("cron_spec", appDep.cfg.Scheduler.CronSpec),
		logger.StringField("symbol", appDep.cfg.YahooFinance.Symbol),
	)
	scheduler.Start()

	// First run happens immediately, the scheduler covers the rest.
	if _, err := services.AnalysisService.Analyze(ctx, dto.AnalyzeRequest{}); err != nil {
		appDep.log.ErrorContext(ctx, "Initial analysis failed", logger.ErrorField(err))
	}

	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
