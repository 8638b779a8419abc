package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/patabima/patabima/internal/api/v1"
	"github.com/patabima/patabima/internal/rest/middleware"
)

type Handlers struct {
	Health        *v1.HealthHandler
	PricingConfig *v1.PricingConfigHandler
	Rating        *v1.RatingHandler
	Quote         *v1.QuoteHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Pricing config routes
	pricing := router.Group("/pricing/config")
	{
		pricing.GET("", handlers.PricingConfig.GetCurrent)
		pricing.POST("", handlers.PricingConfig.Propose)
		pricing.GET("/history", handlers.PricingConfig.GetHistory)
		pricing.GET("/versions/:version", handlers.PricingConfig.GetVersion)
		pricing.GET("/export", handlers.PricingConfig.Export)
		pricing.POST("/import", handlers.PricingConfig.Import)
	}

	// Rating routes
	rating := router.Group("/rating")
	{
		rating.POST("/:product_type/compute", handlers.Rating.ComputePremium)
	}

	// Quote routes
	quotes := router.Group("/quotes")
	{
		quotes.POST("", handlers.Quote.CreateQuote)
		quotes.GET("", handlers.Quote.ListQuotes)
		quotes.POST("/expire-drafts", handlers.Quote.ExpireStaleDrafts)
		quotes.GET("/:id", handlers.Quote.GetQuote)
		quotes.POST("/:id/transition", handlers.Quote.Transition)
		quotes.GET("/:id/audit", handlers.Quote.Audit)
	}
}
