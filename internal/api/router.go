package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/minimall/minimall/internal/api/v1"
	"github.com/minimall/minimall/internal/config"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/rest/middleware"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Pricing     *v1.PricingHandler
	Order       *v1.OrderHandler
	Member      *v1.MemberHandler
	Product     *v1.ProductHandler
	Coupon      *v1.CouponHandler
	Promotion   *v1.PromotionHandler
	LevelConfig *v1.LevelConfigHandler
	Settings    *v1.SettingsHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Pricing routes
	pricing := router.Group("/pricing")
	{
		pricing.POST("/quote", handlers.Pricing.Quote)
	}

	// Order routes
	orders := router.Group("/orders")
	{
		orders.POST("", handlers.Order.CreateOrder)
		orders.GET("/:id", handlers.Order.GetOrder)
		orders.GET("/:id/commissions", handlers.Order.ListOrderCommissions)
	}

	// Member routes
	members := router.Group("/members")
	{
		members.POST("", handlers.Member.CreateMember)
		members.GET("/:id", handlers.Member.GetMember)
		members.GET("/:id/orders", handlers.Member.ListMemberOrders)
		members.GET("/:id/commissions", handlers.Member.ListMemberCommissions)
	}

	// Product routes
	products := router.Group("/products")
	{
		products.POST("", handlers.Product.CreateProduct)
		products.GET("/:id", handlers.Product.GetProduct)
	}

	// Coupon routes
	coupons := router.Group("/coupons")
	{
		coupons.POST("", handlers.Coupon.CreateCoupon)
		coupons.GET("", handlers.Coupon.ListCoupons)
		coupons.GET("/:id", handlers.Coupon.GetCoupon)
	}

	// Promotion routes
	promotions := router.Group("/promotions")
	{
		promotions.POST("", handlers.Promotion.CreatePromotion)
		promotions.GET("", handlers.Promotion.ListPromotions)
		promotions.GET("/:id", handlers.Promotion.GetPromotion)
	}

	// Commission level config routes
	levelConfigs := router.Group("/level-configs")
	{
		levelConfigs.POST("", handlers.LevelConfig.CreateLevelConfig)
		levelConfigs.GET("", handlers.LevelConfig.ListLevelConfigs)
	}

	// System settings routes
	settings := router.Group("/settings")
	{
		settings.GET("", handlers.Settings.GetSettings)
		settings.PUT("", handlers.Settings.UpdateSettings)
	}
}
