package testutil

import (
	"context"
	"time"

	"github.com/patabima/patabima/internal/cache"
	"github.com/patabima/patabima/internal/config"
	"github.com/patabima/patabima/internal/domain/pricing"
	"github.com/patabima/patabima/internal/domain/quote"
	"github.com/patabima/patabima/internal/logger"
	"github.com/patabima/patabima/internal/types"
	"github.com/patabima/patabima/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	PricingConfigRepo pricing.Repository
	QuoteRepo         quote.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  cache.Cache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()

	log, err := logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	s.logger = log
	s.config = cfg
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.now = time.Now().UTC()

	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)

	s.stores = Stores{
		PricingConfigRepo: NewInMemoryPricingConfigStore(),
		QuoteRepo:         NewInMemoryQuoteStore(),
	}
	s.cache = cache.NewInMemoryCache(s.config)
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.cache.Flush(s.ctx)
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
