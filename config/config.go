package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger             `mapstructure:"logger"`
	API          API                `mapstructure:"api"`
	YahooFinance YahooFinanceConfig `mapstructure:"yahoo_finance"`
	Cache        Cache              `mapstructure:"cache"`
	Telegram     TelegramConfig     `mapstructure:"telegram"`
	Scheduler    Scheduler          `mapstructure:"scheduler"`
	Signal       SignalConfig       `mapstructure:"signal"`
	Backtest     BacktestConfig     `mapstructure:"backtest"`
	Forecast     ForecastConfig     `mapstructure:"forecast"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type YahooFinanceConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	Symbol              string        `mapstructure:"symbol"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheDuration       time.Duration `mapstructure:"cache_duration"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type TelegramConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	BotToken string        `mapstructure:"bot_token"`
	ChatID   int64         `mapstructure:"chat_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type Scheduler struct {
	CronSpec string `mapstructure:"cron_spec"`
}

// SignalConfig holds the tunable thresholds of the signal engine.
type SignalConfig struct {
	BuyMomentumThreshold float64 `mapstructure:"buy_momentum_threshold"`
	RSIOversold          float64 `mapstructure:"rsi_oversold"`
	RSIOverbought        float64 `mapstructure:"rsi_overbought"`
}

// BacktestConfig holds the simulation parameters of the backtest engine.
type BacktestConfig struct {
	InitialCapital      float64 `mapstructure:"initial_capital"`
	PositionSizePct     float64 `mapstructure:"position_size_pct"`
	StopLossPct         float64 `mapstructure:"stop_loss_pct"`
	TakeProfitPct       float64 `mapstructure:"take_profit_pct"`
	LookbackMonths      int     `mapstructure:"lookback_months"`
	AllowSameBarReentry bool    `mapstructure:"allow_same_bar_reentry"`
}

type ForecastConfig struct {
	HorizonDays  int    `mapstructure:"horizon_days"`
	HistoryRange string `mapstructure:"history_range"`
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.symbol", "SOL-USD")
	viper.SetDefault("yahoo_finance.timeout", "15s")
	viper.SetDefault("yahoo_finance.max_request_per_minute", 30)
	viper.SetDefault("yahoo_finance.cache_duration", "5m")
	viper.SetDefault("cache.default_expiration", "10m")
	viper.SetDefault("cache.cleanup_interval", "30m")
	viper.SetDefault("telegram.timeout", "10s")
	viper.SetDefault("scheduler.cron_spec", "0 * * * *")
	viper.SetDefault("signal.buy_momentum_threshold", 0.0)
	viper.SetDefault("signal.rsi_oversold", 30.0)
	viper.SetDefault("signal.rsi_overbought", 70.0)
	viper.SetDefault("backtest.initial_capital", 10000.0)
	viper.SetDefault("backtest.position_size_pct", 0.95)
	viper.SetDefault("backtest.stop_loss_pct", 0.05)
	viper.SetDefault("backtest.take_profit_pct", 0.15)
	viper.SetDefault("backtest.lookback_months", 12)
	viper.SetDefault("backtest.allow_same_bar_reentry", true)
	viper.SetDefault("forecast.horizon_days", 30)
	viper.SetDefault("forecast.history_range", "5y")
}

func Load() (*Config, error) {
	// .env is optional, used for local development only.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
