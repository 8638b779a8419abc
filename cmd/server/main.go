package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/patabima/patabima/internal/api"
	v1 "github.com/patabima/patabima/internal/api/v1"
	"github.com/patabima/patabima/internal/cache"
	"github.com/patabima/patabima/internal/config"
	"github.com/patabima/patabima/internal/domain/pricing"
	ierr "github.com/patabima/patabima/internal/errors"
	"github.com/patabima/patabima/internal/logger"
	"github.com/patabima/patabima/internal/postgres"
	"github.com/patabima/patabima/internal/repository"
	"github.com/patabima/patabima/internal/service"
	"github.com/patabima/patabima/internal/validator"
)

// @title PataBima Rating API
// @version 1.0
// @description Insurance premium rating and quotation service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewPricingConfigRepository,
			repository.NewQuoteRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewPricingConfigService,
			service.NewRatingService,
			service.NewQuoteService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			seedDefaultConfig,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	pricingConfigService service.PricingConfigService,
	ratingService service.RatingService,
	quoteService service.QuoteService,
) api.Handlers {
	return api.Handlers{
		Health:        v1.NewHealthHandler(logger),
		PricingConfig: v1.NewPricingConfigHandler(pricingConfigService, logger),
		Rating:        v1.NewRatingHandler(ratingService, logger),
		Quote:         v1.NewQuoteHandler(quoteService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

// seedDefaultConfig installs the built-in rule tables as version 1 when
// the store is empty, so a fresh deployment can price immediately
func seedDefaultConfig(repo pricing.Repository, log *logger.Logger) error {
	ctx := context.Background()

	_, err := repo.GetCurrent(ctx)
	if err == nil {
		return nil
	}
	if !ierr.IsNotFound(err) {
		return err
	}

	if err := repo.CreateVersion(ctx, pricing.DefaultConfig()); err != nil {
		return err
	}
	log.Infow("seeded default pricing config", "version", 1)
	return nil
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
