package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sol-advisor/config"
	"sol-advisor/internal/dto"
	"sol-advisor/pkg/cache"
	"sol-advisor/pkg/httpclient"
	"sol-advisor/pkg/logger"

	"golang.org/x/time/rate"
)

const keyStockData = "yahoo:stock-data:%s:%s:%s"

type YahooFinanceRepository interface {
	Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
	GetLatestPrice(ctx context.Context, symbol string) (float64, time.Time, error)
}

type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	inmemoryCache  cache.Cache
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a new instance of yahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFinanceRepository{
		httpClient:     httpclient.New(cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout),
		cfg:            cfg,
		logger:         log,
		inmemoryCache:  inmemoryCache,
		requestLimiter: requestLimiter,
	}
}

func (r *yahooFinanceRepository) Get(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	if param.Symbol == "" {
		param.Symbol = r.cfg.YahooFinance.Symbol
	}
	if param.Interval == "" {
		param.Interval = "1d"
	}

	cacheKey := fmt.Sprintf(keyStockData, param.Symbol, param.Range, param.Interval)
	if cached, found := cache.GetTyped[*dto.StockData](r.inmemoryCache, cacheKey); found {
		return cached, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/" + param.Symbol

	period1, period2 := r.mapRangeToUnix(param.Range)
	if period1 == 0 || period2 == 0 {
		return nil, fmt.Errorf("%w: invalid range %q", dto.ErrInvalidInput, param.Range)
	}
	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", period1),
		"period2":        fmt.Sprintf("%d", period2),
		"interval":       param.Interval,
		"includePrePost": "false",
		"events":         "div,split",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Yahoo Finance API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error: %v", yahooResp.Chart.Error)
	}

	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data returned for symbol: %s", param.Symbol)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data available for symbol: %s", param.Symbol)
	}

	quote := result.Indicators.Quote[0]

	var candles []dto.Candle
	for i, timestamp := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue
		}

		// Zero prices mean missing data for the bar.
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 || quote.Close[i] == 0 {
			continue
		}

		candles = append(candles, dto.Candle{
			Date:   time.Unix(timestamp, 0).UTC(),
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: quote.Volume[i],
		})
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("no valid OHLCV data found for symbol: %s", param.Symbol)
	}

	marketPrice := candles[len(candles)-1].Close
	if result.Meta.RegularMarketPrice > 0 {
		marketPrice = result.Meta.RegularMarketPrice
	}

	data := &dto.StockData{
		Symbol:      param.Symbol,
		MarketPrice: marketPrice,
		Range:       param.Range,
		Interval:    param.Interval,
		Candles:     candles,
	}

	r.inmemoryCache.Set(cacheKey, data, r.cfg.YahooFinance.CacheDuration)

	return data, nil
}

// GetLatestPrice fetches the most recent close for the symbol.
func (r *yahooFinanceRepository) GetLatestPrice(ctx context.Context, symbol string) (float64, time.Time, error) {
	data, err := r.Get(ctx, dto.GetStockDataParam{Symbol: symbol, Range: "1d", Interval: "1d"})
	if err != nil {
		return 0, time.Time{}, err
	}

	last := data.Candles[len(data.Candles)-1]
	if data.MarketPrice > 0 {
		return data.MarketPrice, last.Date, nil
	}
	return last.Close, last.Date, nil
}

// mapRangeToUnix converts a range string to a unix timestamp window.
func (r *yahooFinanceRepository) mapRangeToUnix(rangeStr string) (int64, int64) {
	now := time.Now()
	switch rangeStr {
	case "1d":
		return now.AddDate(0, 0, -1).Unix(), now.Unix()
	case "1m":
		return now.AddDate(0, 0, -30).Unix(), now.Unix()
	case "3m":
		return now.AddDate(0, 0, -90).Unix(), now.Unix()
	case "6m":
		return now.AddDate(0, 0, -180).Unix(), now.Unix()
	case "1y":
		return now.AddDate(-1, 0, 0).Unix(), now.Unix()
	case "2y":
		return now.AddDate(-2, 0, 0).Unix(), now.Unix()
	case "5y":
		return now.AddDate(-5, 0, 0).Unix(), now.Unix()
	case "10y":
		return now.AddDate(-10, 0, 0).Unix(), now.Unix()
	default:
		return 0, 0
	}
}
