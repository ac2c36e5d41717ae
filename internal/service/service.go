package service

import (
	"sol-advisor/config"
	"sol-advisor/internal/alert"
	"sol-advisor/internal/repository"
	"sol-advisor/pkg/logger"
)

type Service struct {
	AnalysisService AnalysisService
	BacktestService BacktestService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	dispatcher *alert.Dispatcher,
) *Service {
	return &Service{
		AnalysisService: NewAnalysisService(cfg, log, repo.YahooFinanceRepo, dispatcher),
		BacktestService: NewBacktestService(cfg, log, repo.YahooFinanceRepo),
	}
}
