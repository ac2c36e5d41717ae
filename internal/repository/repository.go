package repository

import (
	"sol-advisor/config"
	"sol-advisor/pkg/cache"
	"sol-advisor/pkg/logger"
)

type Repository struct {
	YahooFinanceRepo YahooFinanceRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) (*Repository, error) {
	return &Repository{
		YahooFinanceRepo: NewYahooFinanceRepository(cfg, log, inmemoryCache),
	}, nil
}
