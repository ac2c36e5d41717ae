package service

import (
	"context"

	"sol-advisor/config"
	"sol-advisor/internal/dto"
	"sol-advisor/internal/indicator"
	"sol-advisor/internal/repository"
	"sol-advisor/internal/strategy"
	"sol-advisor/pkg/logger"
)

// BacktestService replays the rule-based strategy over historical data.
type BacktestService interface {
	RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error)
}

type backtestService struct {
	cfg       *config.Config
	log       *logger.Logger
	yahooRepo repository.YahooFinanceRepository
}

func NewBacktestService(
	cfg *config.Config,
	log *logger.Logger,
	yahooRepo repository.YahooFinanceRepository,
) BacktestService {
	return &backtestService{
		cfg:       cfg,
		log:       log,
		yahooRepo: yahooRepo,
	}
}

func (s *backtestService) RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResult, error) {
	if req.Range == "" {
		req.Range = s.cfg.Forecast.HistoryRange
	}
	if req.LookbackMonths == 0 {
		req.LookbackMonths = s.cfg.Backtest.LookbackMonths
	}
	symbol := s.cfg.YahooFinance.Symbol

	data, err := s.yahooRepo.Get(ctx, dto.GetStockDataParam{Symbol: symbol, Range: req.Range, Interval: "1d"})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch historical data for backtest", logger.ErrorField(err))
		return nil, err
	}

	candles, _ := indicator.CleanCandles(data.Candles)
	indicators := indicator.Build(candles)

	engine := strategy.NewBacktestEngine(s.cfg.Backtest)
	result, err := engine.Run(candles, indicators, req.LookbackMonths)
	if err != nil {
		s.log.ErrorContext(ctx, "Backtest failed", logger.ErrorField(err))
		return nil, err
	}
	result.Symbol = symbol

	s.log.InfoContext(ctx, "Backtest simulation completed",
		logger.StringField("symbol", symbol),
		logger.IntField("total_trades", result.TotalTrades),
		logger.Float64Field("total_return_pct", result.TotalReturnPct),
	)

	return result, nil
}
