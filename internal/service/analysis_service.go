package service

import (
	"context"
	"math"
	"time"

	"sol-advisor/config"
	"sol-advisor/internal/alert"
	"sol-advisor/internal/dto"
	"sol-advisor/internal/forecast"
	"sol-advisor/internal/indicator"
	"sol-advisor/internal/repository"
	"sol-advisor/internal/strategy"
	"sol-advisor/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// AnalysisService runs the full forecasting and signal pipeline for one
// symbol: fetch, clean, indicators, forecast, signal, risk levels, alert.
type AnalysisService interface {
	Analyze(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalysisResult, error)
}

type analysisService struct {
	cfg        *config.Config
	log        *logger.Logger
	yahooRepo  repository.YahooFinanceRepository
	dispatcher *alert.Dispatcher
}

func NewAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	yahooRepo repository.YahooFinanceRepository,
	dispatcher *alert.Dispatcher,
) AnalysisService {
	return &analysisService{
		cfg:        cfg,
		log:        log,
		yahooRepo:  yahooRepo,
		dispatcher: dispatcher,
	}
}

func (s *analysisService) Analyze(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalysisResult, error) {
	if req.Range == "" {
		req.Range = s.cfg.Forecast.HistoryRange
	}
	if req.HorizonDays == 0 {
		req.HorizonDays = s.cfg.Forecast.HorizonDays
	}
	symbol := s.cfg.YahooFinance.Symbol

	var (
		data         *dto.StockData
		currentPrice float64
	)

	// History and the latest quote come from separate requests; fetch both
	// before the synchronous pipeline starts.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = s.yahooRepo.Get(gctx, dto.GetStockDataParam{Symbol: symbol, Range: req.Range, Interval: "1d"})
		return err
	})
	g.Go(func() error {
		var err error
		currentPrice, _, err = s.yahooRepo.GetLatestPrice(gctx, symbol)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch market data", logger.ErrorField(err))
		return nil, err
	}

	s.log.InfoContext(ctx, "Market data fetched",
		logger.StringField("symbol", symbol),
		logger.IntField("candles", len(data.Candles)),
		logger.Float64Field("current_price", currentPrice),
	)

	candles, smoothed := indicator.CleanCandles(data.Candles)
	if smoothed > 0 {
		s.log.DebugContext(ctx, "Smoothed outlier closes", logger.IntField("count", smoothed))
	}

	indicators := indicator.Build(candles)

	model, err := forecast.Fit(candles)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to fit forecast model", logger.ErrorField(err))
		return nil, err
	}
	points := model.Predict(candles, req.HorizonDays)

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	now := time.Now()
	stats, _ := forecast.Statistics(points, currentPrice, closes, now)
	levels, _ := forecast.SupportResistance(points, currentPrice, now)

	engine := strategy.NewSignalEngine(s.cfg.Signal)
	signal, err := engine.Generate(currentPrice, points, indicators)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to generate signal", logger.ErrorField(err))
		return nil, err
	}

	latest, _ := indicators.Last()
	atr := latest.ATR
	if math.IsNaN(atr) {
		atr = 0
	}
	risk, err := strategy.CalculateRiskLevels(currentPrice, atr, stats)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to calculate risk levels", logger.ErrorField(err))
		return nil, err
	}

	result := &dto.AnalysisResult{
		Symbol:        symbol,
		GeneratedAt:   now,
		CurrentPrice:  currentPrice,
		Signal:        signal,
		Risk:          risk,
		ForecastStats: stats,
		Levels:        levels,
		Indicators:    latest,
	}

	s.log.InfoContext(ctx, "Signal generated",
		logger.StringField("type", string(signal.Type)),
		logger.Float64Field("confidence", signal.Confidence),
		logger.StringField("reason", signal.Reason),
	)

	s.dispatcher.Send(ctx, result)

	return result, nil
}
