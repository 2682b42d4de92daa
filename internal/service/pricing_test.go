package service

import (
	"context"
	"testing"
	"time"

	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/domain/coupon"
	"github.com/minimall/minimall/internal/domain/member"
	"github.com/minimall/minimall/internal/domain/product"
	"github.com/minimall/minimall/internal/domain/promotion"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/testutil"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PricingServiceSuite struct {
	testutil.BaseServiceTestSuite
	pricingSvc PricingService
	params     ServiceParams
}

func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceSuite))
}

func (s *PricingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
	s.pricingSvc = NewPricingService(
		s.params,
		NewCouponLedgerService(s.params),
		NewPromotionService(s.params),
	)
	s.seedCatalog()
}

func (s *PricingServiceSuite) seedCatalog() {
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:        "member-1",
		Name:      "Buyer",
		Active:    true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))

	s.NoError(s.params.ProductRepo.Create(s.GetContext(), &product.Product{
		ID:        "prod-1",
		Name:      "Widget",
		UnitPrice: decimal.NewFromInt(200),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *PricingServiceSuite) seedCoupon(id string, value int64, totalCount int) {
	now := time.Now().UTC()
	s.NoError(s.params.CouponRepo.Create(s.GetContext(), &coupon.Coupon{
		ID:           id,
		Code:         "CODE-" + id,
		Name:         "Coupon " + id,
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(value),
		TotalCount:   totalCount,
		ValidFrom:    now.Add(-time.Hour),
		ValidTo:      now.Add(time.Hour),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *PricingServiceSuite) TestQuoteFixedCouponWithFreeShipping() {
	s.seedCoupon("coupon-1", 10, 100)

	now := time.Now().UTC()
	s.NoError(s.params.PromotionRepo.Create(s.GetContext(), &promotion.Promotion{
		ID:   "promo-ship",
		Name: "Free shipping over 99",
		Type: types.PromotionTypeFreeShipping,
		Rules: types.PromotionRules{
			FreeShipping: &types.FreeShippingRules{MinAmount: decimal.NewFromInt(99)},
		},
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Status:    types.PromotionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}))

	resp, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID:         "prod-1",
		Quantity:          1,
		MemberID:          "member-1",
		AppliedCoupons:    []string{"coupon-1"},
		AppliedPromotions: []string{"promo-ship"},
	})
	s.NoError(err)

	s.True(resp.Pricing.OriginalAmount.Equal(decimal.NewFromInt(200)))
	s.True(resp.Pricing.FinalPrice.Equal(decimal.NewFromInt(190)))
	s.True(resp.Pricing.Savings.Equal(decimal.NewFromInt(10)))
	s.True(resp.Pricing.SavingsRate.Equal(decimal.NewFromFloat(0.05)))
	s.True(resp.Pricing.FreeShipping)
	s.Equal([]string{"coupon-1"}, resp.AppliedCoupons)
	s.Equal([]string{"promo-ship"}, resp.AppliedPromotions)
}

func (s *PricingServiceSuite) TestQuotePriceBounds() {
	// Discounts larger than the subtotal clamp the final price at zero
	s.seedCoupon("coupon-big", 500, 10)

	resp, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID:      "prod-1",
		Quantity:       1,
		MemberID:       "member-1",
		AppliedCoupons: []string{"coupon-big"},
	})
	s.NoError(err)

	s.True(resp.Pricing.FinalPrice.GreaterThanOrEqual(decimal.Zero))
	s.True(resp.Pricing.FinalPrice.LessThanOrEqual(resp.Pricing.OriginalAmount))
	s.True(resp.Pricing.Savings.Equal(resp.Pricing.OriginalAmount.Sub(resp.Pricing.FinalPrice)))
}

func (s *PricingServiceSuite) TestQuoteSkipsExhaustedCoupon() {
	s.seedCoupon("coupon-empty", 10, 1)
	_, err := s.params.CouponRepo.ReserveUsage(s.GetContext(), "coupon-empty")
	s.NoError(err)

	resp, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID:      "prod-1",
		Quantity:       1,
		MemberID:       "member-1",
		AppliedCoupons: []string{"coupon-empty"},
	})
	s.NoError(err)

	s.Empty(resp.AppliedCoupons)
	s.True(resp.Pricing.FinalPrice.Equal(decimal.NewFromInt(200)))
	s.Require().Len(resp.Pricing.Discounts, 1)
	entry := resp.Pricing.Discounts[0]
	s.False(entry.Applied)
	s.Equal(types.CouponFailureExhausted, entry.Reason)
	s.True(entry.Amount.IsZero())
}

func (s *PricingServiceSuite) TestQuotePointsCappedByMaxRate() {
	// 10000 points at 0.01 would be 100, but the cap is 50% of 200 = 100;
	// 30000 points would be 300, capped at 100.
	resp, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID:  "prod-1",
		Quantity:   1,
		MemberID:   "member-1",
		PointUsage: &dto.PointUsage{Points: 30000},
	})
	s.NoError(err)

	s.True(resp.Pricing.FinalPrice.Equal(decimal.NewFromInt(100)))
	s.Equal(int64(30000), resp.Pricing.PointsUsed)
}

func (s *PricingServiceSuite) TestQuoteSkuOverridePrice() {
	override := decimal.NewFromInt(150)
	s.NoError(s.params.ProductRepo.CreateSKU(s.GetContext(), &product.SKU{
		ID:            "sku-1",
		ProductID:     "prod-1",
		Spec:          "large",
		PriceOverride: &override,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}))

	skuID := "sku-1"
	resp, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID: "prod-1",
		SkuID:     &skuID,
		Quantity:  2,
		MemberID:  "member-1",
	})
	s.NoError(err)
	s.True(resp.Pricing.OriginalAmount.Equal(decimal.NewFromInt(300)))
}

func (s *PricingServiceSuite) TestQuoteUnknownProduct() {
	_, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID: "prod-missing",
		Quantity:  1,
		MemberID:  "member-1",
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PricingServiceSuite) TestQuoteInvalidQuantity() {
	_, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID: "prod-1",
		Quantity:  0,
		MemberID:  "member-1",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingServiceSuite) TestQuoteUnknownMember() {
	_, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID: "prod-1",
		Quantity:  1,
		MemberID:  "member-missing",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

type flakyCouponRepo struct {
	coupon.Repository
	failID string
}

func (f *flakyCouponRepo) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	if id == f.failID {
		return nil, ierr.NewError("connection reset").
			WithHint("Failed to get coupon").
			Mark(ierr.ErrDatabase)
	}
	return f.Repository.Get(ctx, id)
}

// A hard failure partway through coupon application fails the whole quote and
// hands back the holds already taken, so no stock leaks.
func (s *PricingServiceSuite) TestQuoteHardFailureReleasesHolds() {
	s.seedCoupon("coupon-1", 10, 5)

	params := s.params
	params.CouponRepo = &flakyCouponRepo{Repository: s.params.CouponRepo, failID: "coupon-broken"}

	pricingSvc := NewPricingService(
		params,
		NewCouponLedgerService(params),
		NewPromotionService(params),
	)

	_, err := pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID:      "prod-1",
		Quantity:       1,
		MemberID:       "member-1",
		AppliedCoupons: []string{"coupon-1", "coupon-broken"},
	})
	s.Error(err)

	c, err := s.params.CouponRepo.Get(s.GetContext(), "coupon-1")
	s.NoError(err)
	s.Equal(0, c.UsedCount)
}

func (s *PricingServiceSuite) TestQuoteTooManyCoupons() {
	_, err := s.pricingSvc.Quote(s.GetContext(), &dto.PricingRequest{
		ProductID:      "prod-1",
		Quantity:       1,
		MemberID:       "member-1",
		AppliedCoupons: []string{"c1", "c2", "c3", "c4"},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
