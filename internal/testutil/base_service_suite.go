package testutil

import (
	"context"
	"time"

	"github.com/minimall/minimall/internal/cache"
	"github.com/minimall/minimall/internal/config"
	"github.com/minimall/minimall/internal/domain/commission"
	"github.com/minimall/minimall/internal/domain/coupon"
	"github.com/minimall/minimall/internal/domain/levelconfig"
	"github.com/minimall/minimall/internal/domain/member"
	"github.com/minimall/minimall/internal/domain/order"
	"github.com/minimall/minimall/internal/domain/product"
	"github.com/minimall/minimall/internal/domain/promotion"
	"github.com/minimall/minimall/internal/domain/settings"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
	"github.com/minimall/minimall/internal/types"
	"github.com/minimall/minimall/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	MemberRepo      member.Repository
	ProductRepo     product.Repository
	CouponRepo      coupon.Repository
	PromotionRepo   promotion.Repository
	OrderRepo       order.Repository
	CommissionRepo  commission.Repository
	LevelConfigRepo levelconfig.Repository
	SettingsRepo    settings.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	db     postgres.IClient
	cache  cache.Cache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo

	// Initialize validator
	validator.NewValidator()

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.cache = cache.NewInMemoryCache()
	// fresh config per test so config mutations never leak between tests
	s.config = config.GetDefaultConfig()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = types.SetUserID(s.ctx, "user_test")
	s.ctx = types.SetRequestID(s.ctx, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		MemberRepo:      NewInMemoryMemberStore(),
		ProductRepo:     NewInMemoryProductStore(),
		CouponRepo:      NewInMemoryCouponStore(),
		PromotionRepo:   NewInMemoryPromotionStore(),
		OrderRepo:       NewInMemoryOrderStore(),
		CommissionRepo:  NewInMemoryCommissionStore(),
		LevelConfigRepo: NewInMemoryLevelConfigStore(),
		SettingsRepo:    NewInMemorySettingsStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.MemberRepo.(*InMemoryMemberStore).Clear()
	s.stores.ProductRepo.(*InMemoryProductStore).Clear()
	s.stores.CouponRepo.(*InMemoryCouponStore).Clear()
	s.stores.PromotionRepo.(*InMemoryPromotionStore).Clear()
	s.stores.OrderRepo.(*InMemoryOrderStore).Clear()
	s.stores.CommissionRepo.(*InMemoryCommissionStore).Clear()
	s.stores.LevelConfigRepo.(*InMemoryLevelConfigStore).Clear()
	s.stores.SettingsRepo.(*InMemorySettingsStore).Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the mock db client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
