package service

import (
	"github.com/minimall/minimall/internal/testutil"
)

// newTestServiceParams wires ServiceParams against the suite's in-memory stores
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		Cache:           s.GetCache(),
		MemberRepo:      stores.MemberRepo,
		ProductRepo:     stores.ProductRepo,
		CouponRepo:      stores.CouponRepo,
		PromotionRepo:   stores.PromotionRepo,
		OrderRepo:       stores.OrderRepo,
		CommissionRepo:  stores.CommissionRepo,
		LevelConfigRepo: stores.LevelConfigRepo,
		SettingsRepo:    stores.SettingsRepo,
	}
}
