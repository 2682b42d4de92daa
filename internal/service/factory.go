package service

import (
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
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache

	// Repositories
	MemberRepo      member.Repository
	ProductRepo     product.Repository
	CouponRepo      coupon.Repository
	PromotionRepo   promotion.Repository
	OrderRepo       order.Repository
	CommissionRepo  commission.Repository
	LevelConfigRepo levelconfig.Repository
	SettingsRepo    settings.Repository
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	memberRepo member.Repository,
	productRepo product.Repository,
	couponRepo coupon.Repository,
	promotionRepo promotion.Repository,
	orderRepo order.Repository,
	commissionRepo commission.Repository,
	levelConfigRepo levelconfig.Repository,
	settingsRepo settings.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:          logger,
		Config:          config,
		DB:              db,
		Cache:           cache,
		MemberRepo:      memberRepo,
		ProductRepo:     productRepo,
		CouponRepo:      couponRepo,
		PromotionRepo:   promotionRepo,
		OrderRepo:       orderRepo,
		CommissionRepo:  commissionRepo,
		LevelConfigRepo: levelConfigRepo,
		SettingsRepo:    settingsRepo,
	}
}
