package service

import (
	"github.com/patabima/patabima/internal/cache"
	"github.com/patabima/patabima/internal/config"
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/domain/quote"
	"github.com/patabima/patabima/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache

	PricingConfigRepo pricing.Repository
	QuoteRepo         quote.Repository
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	cache cache.Cache,
	pricingConfigRepo pricing.Repository,
	quoteRepo quote.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:            logger,
		Config:            config,
		Cache:             cache,
		PricingConfigRepo: pricingConfigRepo,
		QuoteRepo:         quoteRepo,
	}
}
