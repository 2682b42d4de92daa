package repository

import (
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
	postgresRepo "github.com/minimall/minimall/internal/repository/postgres"
)

func NewMemberRepository(db *postgres.DB, logger *logger.Logger) member.Repository {
	return postgresRepo.NewMemberRepository(db, logger)
}

func NewProductRepository(db *postgres.DB, logger *logger.Logger) product.Repository {
	return postgresRepo.NewProductRepository(db, logger)
}

func NewCouponRepository(db *postgres.DB, logger *logger.Logger) coupon.Repository {
	return postgresRepo.NewCouponRepository(db, logger)
}

func NewPromotionRepository(db *postgres.DB, logger *logger.Logger) promotion.Repository {
	return postgresRepo.NewPromotionRepository(db, logger)
}

func NewOrderRepository(db *postgres.DB, logger *logger.Logger) order.Repository {
	return postgresRepo.NewOrderRepository(db, logger)
}

func NewCommissionRepository(db *postgres.DB, logger *logger.Logger) commission.Repository {
	return postgresRepo.NewCommissionRepository(db, logger)
}

func NewLevelConfigRepository(db *postgres.DB, logger *logger.Logger) levelconfig.Repository {
	return postgresRepo.NewLevelConfigRepository(db, logger)
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) settings.Repository {
	return postgresRepo.NewSettingsRepository(db, logger)
}
