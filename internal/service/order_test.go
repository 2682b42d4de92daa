package service

import (
	"context"
	"testing"
	"time"

	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/domain/coupon"
	"github.com/minimall/minimall/internal/domain/levelconfig"
	"github.com/minimall/minimall/internal/domain/member"
	"github.com/minimall/minimall/internal/domain/order"
	"github.com/minimall/minimall/internal/domain/product"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/testutil"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderServiceSuite struct {
	testutil.BaseServiceTestSuite
	orderSvc   OrderService
	pricingSvc PricingService
	params     ServiceParams
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)

	couponLedger := NewCouponLedgerService(s.params)
	s.pricingSvc = NewPricingService(s.params, couponLedger, NewPromotionService(s.params))
	commissionSvc := NewCommissionService(s.params, NewCommissionConfigService(s.params))
	s.orderSvc = NewOrderService(s.params, s.pricingSvc, couponLedger, commissionSvc)

	s.seedFixtures()
}

func (s *OrderServiceSuite) seedFixtures() {
	referrerID := "m1"
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:               "m1",
		Name:             "Referrer",
		DistributorLevel: 1,
		MemberLevel:      1,
		Active:           true,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:         "buyer",
		Name:       "Buyer",
		ReferrerID: &referrerID,
		Active:     true,
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}))

	s.NoError(s.params.ProductRepo.Create(s.GetContext(), &product.Product{
		ID:        "prod-1",
		Name:      "Widget",
		UnitPrice: decimal.NewFromInt(100),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))

	s.NoError(s.params.LevelConfigRepo.Create(s.GetContext(), &levelconfig.Config{
		ID:    types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEVEL_CONFIG),
		Level: 1,
		TierRates: []levelconfig.TierRate{
			{TierDepth: 1, Rate: decimal.NewFromFloat(0.05)},
		},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *OrderServiceSuite) TestCreateOrderDistributesCommission() {
	resp, err := s.orderSvc.CreateOrder(s.GetContext(), &dto.CreateOrderRequest{
		PricingRequest: dto.PricingRequest{
			ProductID: "prod-1",
			Quantity:  1,
			MemberID:  "buyer",
		},
	})
	s.NoError(err)

	s.NotEmpty(resp.Order.ID)
	s.NotEmpty(resp.Order.OrderNo)
	s.Equal(1, resp.CommissionCreated)
	s.True(resp.Pricing.FinalPrice.Equal(decimal.NewFromInt(100)))

	// commission amount = finalPrice × tier-1 rate
	records, err := s.params.CommissionRepo.ListByOrder(s.GetContext(), resp.Order.ID)
	s.NoError(err)
	s.Require().Len(records, 1)
	s.Equal("m1", records[0].BeneficiaryMemberID)
	s.True(records[0].Amount.Equal(decimal.NewFromInt(5)))

	// order creation refreshes the buyer's last order timestamp
	buyer, err := s.params.MemberRepo.Get(s.GetContext(), "buyer")
	s.NoError(err)
	s.NotNil(buyer.LastOrderAt)
}

func (s *OrderServiceSuite) TestCreateOrderPersistsAppliedCoupons() {
	now := time.Now().UTC()
	s.NoError(s.params.CouponRepo.Create(s.GetContext(), &coupon.Coupon{
		ID:           "coupon-1",
		Code:         "TEN",
		Name:         "Ten off",
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(10),
		TotalCount:   5,
		ValidFrom:    now.Add(-time.Hour),
		ValidTo:      now.Add(time.Hour),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))

	resp, err := s.orderSvc.CreateOrder(s.GetContext(), &dto.CreateOrderRequest{
		PricingRequest: dto.PricingRequest{
			ProductID:      "prod-1",
			Quantity:       1,
			MemberID:       "buyer",
			AppliedCoupons: []string{"coupon-1"},
		},
	})
	s.NoError(err)
	s.True(resp.Pricing.FinalPrice.Equal(decimal.NewFromInt(90)))

	o, err := s.params.OrderRepo.Get(s.GetContext(), resp.Order.ID)
	s.NoError(err)
	s.Equal([]string{"coupon-1"}, o.CouponIDs)
	s.Equal(types.OrderStatusPending, o.OrderStatus)
	s.Require().Len(o.LineItems, 1)
	s.Equal("prod-1", o.LineItems[0].ProductID)

	// the reservation stays consumed
	c, err := s.params.CouponRepo.Get(s.GetContext(), "coupon-1")
	s.NoError(err)
	s.Equal(1, c.UsedCount)
}

func (s *OrderServiceSuite) TestCreateOrderNoReferrer() {
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:        "loner",
		Name:      "No referrer",
		Active:    true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))

	resp, err := s.orderSvc.CreateOrder(s.GetContext(), &dto.CreateOrderRequest{
		PricingRequest: dto.PricingRequest{
			ProductID: "prod-1",
			Quantity:  1,
			MemberID:  "loner",
		},
	})
	s.NoError(err)
	s.Equal(0, resp.CommissionCreated)
}

func (s *OrderServiceSuite) seedSingleUseCoupon(id string) {
	now := time.Now().UTC()
	s.NoError(s.params.CouponRepo.Create(s.GetContext(), &coupon.Coupon{
		ID:           id,
		Code:         "CODE-" + id,
		Name:         "Coupon " + id,
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(10),
		TotalCount:   1,
		ValidFrom:    now.Add(-time.Hour),
		ValidTo:      now.Add(time.Hour),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))
}

// An order created from a previewed quote consumes the preview's coupon hold;
// a single-use coupon must not be double-counted by the second pricing pass.
func (s *OrderServiceSuite) TestCreateOrderConsumesQuoteHold() {
	s.seedSingleUseCoupon("coupon-1")

	quote, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID:      "prod-1",
		Quantity:       1,
		MemberID:       "buyer",
		AppliedCoupons: []string{"coupon-1"},
	})
	s.NoError(err)
	s.NotEmpty(quote.QuoteID)
	s.Equal([]string{"coupon-1"}, quote.AppliedCoupons)

	resp, err := s.orderSvc.CreateOrder(s.GetContext(), &dto.CreateOrderRequest{
		PricingRequest: dto.PricingRequest{
			QuoteID:        quote.QuoteID,
			ProductID:      "prod-1",
			Quantity:       1,
			MemberID:       "buyer",
			AppliedCoupons: []string{"coupon-1"},
		},
	})
	s.NoError(err)
	s.True(resp.Pricing.FinalPrice.Equal(decimal.NewFromInt(90)))

	o, err := s.params.OrderRepo.Get(s.GetContext(), resp.Order.ID)
	s.NoError(err)
	s.Equal([]string{"coupon-1"}, o.CouponIDs)

	c, err := s.params.CouponRepo.Get(s.GetContext(), "coupon-1")
	s.NoError(err)
	s.Equal(1, c.UsedCount)
}

type failingOrderRepo struct {
	order.Repository
}

func (f *failingOrderRepo) Create(ctx context.Context, o *order.Order) error {
	return ierr.NewError("insert failed").
		WithHint("Failed to create order").
		Mark(ierr.ErrDatabase)
}

// When order persistence fails the coupon stock reserved by the quote must be
// handed back.
func (s *OrderServiceSuite) TestCreateOrderPersistFailureReleasesCoupon() {
	s.seedSingleUseCoupon("coupon-1")

	params := s.params
	params.OrderRepo = &failingOrderRepo{Repository: s.params.OrderRepo}

	couponLedger := NewCouponLedgerService(params)
	pricingSvc := NewPricingService(params, couponLedger, NewPromotionService(params))
	commissionSvc := NewCommissionService(params, NewCommissionConfigService(params))
	orderSvc := NewOrderService(params, pricingSvc, couponLedger, commissionSvc)

	_, err := orderSvc.CreateOrder(s.GetContext(), &dto.CreateOrderRequest{
		PricingRequest: dto.PricingRequest{
			ProductID:      "prod-1",
			Quantity:       1,
			MemberID:       "buyer",
			AppliedCoupons: []string{"coupon-1"},
		},
	})
	s.Error(err)

	c, err := s.params.CouponRepo.Get(s.GetContext(), "coupon-1")
	s.NoError(err)
	s.Equal(0, c.UsedCount)

	orders, err := s.params.OrderRepo.ListByMember(s.GetContext(), "buyer")
	s.NoError(err)
	s.Empty(orders)
}

func (s *OrderServiceSuite) TestCreateOrderValidationFailureHasNoSideEffects() {
	_, err := s.orderSvc.CreateOrder(s.GetContext(), &dto.CreateOrderRequest{
		PricingRequest: dto.PricingRequest{
			ProductID: "prod-1",
			Quantity:  -1,
			MemberID:  "buyer",
		},
	})
	s.Error(err)

	orders, err := s.params.OrderRepo.ListByMember(s.GetContext(), "buyer")
	s.NoError(err)
	s.Empty(orders)
}
