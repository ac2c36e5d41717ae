package cmd

import (
	"context"
	"time"

	"sol-advisor/config"
	"sol-advisor/internal/alert"
	"sol-advisor/pkg/cache"
	"sol-advisor/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gopkg.in/telebot.v3"
)

type AppDependency struct {
	cfg         *config.Config
	log         *logger.Logger
	validator   *goValidator.Validate
	echo        *echo.Echo
	cache       cache.Cache
	telegramBot *telebot.Bot
	dispatcher  *alert.Dispatcher
}

func NewAppDependency(ctx context.Context) (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	notifiers := []alert.Notifier{alert.NewConsoleNotifier()}

	var telegramBot *telebot.Bot
	if cfg.Telegram.Enabled {
		pref := telebot.Settings{
			Token:  cfg.Telegram.BotToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				log.Error("Telegram bot error", zap.Error(err))
			},
		}
		telegramBot, err = telebot.NewBot(pref)
		if err != nil {
			log.Error("Failed to create telegram bot", zap.Error(err))
			return nil, err
		}
		notifiers = append(notifiers, alert.NewTelegramNotifier(telegramBot, cfg.Telegram.ChatID))
	}

	return &AppDependency{
		cfg:         cfg,
		log:         log,
		validator:   goValidator.New(),
		echo:        echo.New(),
		cache:       cache.NewCache(cfg.Cache.DefaultExpiration, cfg.Cache.CleanupInterval),
		telegramBot: telegramBot,
		dispatcher:  alert.NewDispatcher(log, notifiers...),
	}, nil
}

func (d *AppDependency) Close() error {
	d.log.Info("Closing app dependency")
	// Sync can fail on console sinks; flushing is best effort.
	_ = d.log.Sync()
	return nil
}
