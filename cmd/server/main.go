package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minimall/minimall/internal/api"
	v1 "github.com/minimall/minimall/internal/api/v1"
	"github.com/minimall/minimall/internal/cache"
	"github.com/minimall/minimall/internal/config"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
	"github.com/minimall/minimall/internal/repository"
	"github.com/minimall/minimall/internal/service"
	"github.com/minimall/minimall/internal/types"
	"github.com/minimall/minimall/internal/validator"
	"go.uber.org/fx"
)

// @title Minimall Pricing API
// @version 1.0
// @description Order pricing and multi-tier commission service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	validator.NewValidator()

	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,
			provideDBClient,

			// Repositories
			repository.NewMemberRepository,
			repository.NewProductRepository,
			repository.NewCouponRepository,
			repository.NewPromotionRepository,
			repository.NewOrderRepository,
			repository.NewCommissionRepository,
			repository.NewLevelConfigRepository,
			repository.NewSettingsRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewMemberService,
			service.NewProductService,
			service.NewCouponService,
			service.NewCouponLedgerService,
			service.NewPromotionService,
			service.NewCommissionConfigService,
			service.NewCommissionService,
			service.NewPricingService,
			service.NewOrderService,
			service.NewSettingsService,
			service.NewMemberRefresher,
			service.NewReservationReaper,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
			startMemberRefresher,
			startReservationReaper,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	memberService service.MemberService,
	productService service.ProductService,
	couponService service.CouponService,
	promotionService service.PromotionService,
	commissionService service.CommissionService,
	commissionConfigService service.CommissionConfigService,
	pricingService service.PricingService,
	orderService service.OrderService,
	settingsService service.SettingsService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(logger),
		Pricing:     v1.NewPricingHandler(pricingService, logger),
		Order:       v1.NewOrderHandler(orderService, commissionService, logger),
		Member:      v1.NewMemberHandler(memberService, orderService, commissionService, logger),
		Product:     v1.NewProductHandler(productService, logger),
		Coupon:      v1.NewCouponHandler(couponService, logger),
		Promotion:   v1.NewPromotionHandler(promotionService, logger),
		LevelConfig: v1.NewLevelConfigHandler(commissionConfigService, logger),
		Settings:    v1.NewSettingsHandler(settingsService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
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

func startMemberRefresher(
	lc fx.Lifecycle,
	refresher *service.MemberRefresher,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting member activity refresher...")
			refresher.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			refresher.Stop()
			return nil
		},
	})
}

func startReservationReaper(
	lc fx.Lifecycle,
	reaper *service.ReservationReaper,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting coupon reservation reaper...")
			reaper.Start(context.Background())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			reaper.Stop()
			return nil
		},
	})
}
