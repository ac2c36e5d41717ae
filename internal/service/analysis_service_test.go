package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sol-advisor/config"
	"sol-advisor/internal/alert"
	"sol-advisor/internal/dto"
	"sol-advisor/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubYahooRepo struct {
	data *dto.StockData
	err  error
}

func (s *stubYahooRepo) Get(_ context.Context, _ dto.GetStockDataParam) (*dto.StockData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func (s *stubYahooRepo) GetLatestPrice(_ context.Context, _ string) (float64, time.Time, error) {
	if s.err != nil {
		return 0, time.Time{}, s.err
	}
	last := s.data.Candles[len(s.data.Candles)-1]
	return last.Close, last.Date, nil
}

type captureNotifier struct {
	messages []string
}

func (n *captureNotifier) Notify(_ context.Context, _ dto.SignalType, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		YahooFinance: config.YahooFinanceConfig{Symbol: "SOL-USD"},
		Signal: config.SignalConfig{
			BuyMomentumThreshold: 0,
			RSIOversold:          30,
			RSIOverbought:        70,
		},
		Backtest: config.BacktestConfig{
			InitialCapital:      10000,
			PositionSizePct:     0.95,
			StopLossPct:         0.05,
			TakeProfitPct:       0.15,
			LookbackMonths:      12,
			AllowSameBarReentry: true,
		},
		Forecast: config.ForecastConfig{HorizonDays: 30, HistoryRange: "5y"},
	}
}

// marketData ends at the current day so the forecast horizon extends into the
// future from the perspective of the pipeline.
func marketData(bars int) *dto.StockData {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	candles := make([]dto.Candle, bars)
	for i := range candles {
		c := 100.0 + 0.5*float64(i) + 3.0*float64(i%5)
		candles[i] = dto.Candle{
			Date:   end.AddDate(0, 0, i-bars+1),
			Open:   c,
			High:   c + 2,
			Low:    c - 2,
			Close:  c,
			Volume: 1000,
		}
	}
	return &dto.StockData{
		Symbol:      "SOL-USD",
		MarketPrice: candles[bars-1].Close,
		Range:       "5y",
		Interval:    "1d",
		Candles:     candles,
	}
}

func serviceTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestAnalysisService_Analyze(t *testing.T) {
	cfg := testConfig()
	log := serviceTestLogger(t)
	repo := &stubYahooRepo{data: marketData(200)}
	notifier := &captureNotifier{}
	dispatcher := alert.NewDispatcher(log, notifier)

	svc := NewAnalysisService(cfg, log, repo, dispatcher)

	result, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{})
	require.NoError(t, err)

	assert.Equal(t, "SOL-USD", result.Symbol)
	assert.False(t, result.GeneratedAt.IsZero())
	assert.Positive(t, result.CurrentPrice)

	require.NotNil(t, result.Signal)
	assert.GreaterOrEqual(t, result.Signal.Confidence, 0.0)
	assert.LessOrEqual(t, result.Signal.Confidence, 100.0)
	assert.Contains(t, []dto.SignalType{dto.SignalBuy, dto.SignalSell, dto.SignalHold}, result.Signal.Type)

	assert.Less(t, result.Risk.StopLoss, result.CurrentPrice)
	assert.Greater(t, result.Risk.TakeProfit, result.CurrentPrice)

	// Every analysis run pushes exactly one alert.
	assert.Len(t, notifier.messages, 1)
	assert.Len(t, dispatcher.Log(), 1)
}

func TestAnalysisService_FetchFailure(t *testing.T) {
	cfg := testConfig()
	log := serviceTestLogger(t)
	repo := &stubYahooRepo{err: errors.New("upstream unavailable")}
	dispatcher := alert.NewDispatcher(log)

	svc := NewAnalysisService(cfg, log, repo, dispatcher)

	result, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{})
	assert.Nil(t, result)
	assert.Error(t, err)
	assert.Empty(t, dispatcher.Log())
}

func TestAnalysisService_TooLittleHistory(t *testing.T) {
	cfg := testConfig()
	log := serviceTestLogger(t)
	repo := &stubYahooRepo{data: marketData(10)}
	dispatcher := alert.NewDispatcher(log)

	svc := NewAnalysisService(cfg, log, repo, dispatcher)

	_, err := svc.Analyze(context.Background(), dto.AnalyzeRequest{})
	assert.ErrorIs(t, err, dto.ErrInvalidInput)
}

func TestBacktestService_RunBacktest(t *testing.T) {
	cfg := testConfig()
	log := serviceTestLogger(t)
	repo := &stubYahooRepo{data: marketData(400)}

	svc := NewBacktestService(cfg, log, repo)

	result, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{})
	require.NoError(t, err)

	assert.Equal(t, "SOL-USD", result.Symbol)
	assert.NotEmpty(t, result.EquityCurve)
	assert.Positive(t, result.FinalCapital)
	assert.False(t, result.StartDate.After(result.EndDate))
}

func TestBacktestService_FetchFailure(t *testing.T) {
	cfg := testConfig()
	log := serviceTestLogger(t)
	repo := &stubYahooRepo{err: errors.New("upstream unavailable")}

	svc := NewBacktestService(cfg, log, repo)

	result, err := svc.RunBacktest(context.Background(), dto.BacktestRequest{})
	assert.Nil(t, result)
	assert.Error(t, err)
}
