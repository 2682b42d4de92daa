package service

import (
	"testing"
	"time"

	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/domain/promotion"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/testutil"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PromotionServiceSuite struct {
	testutil.BaseServiceTestSuite
	promotionSvc PromotionService
	params       ServiceParams
}

func TestPromotionService(t *testing.T) {
	suite.Run(t, new(PromotionServiceSuite))
}

func (s *PromotionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
	s.promotionSvc = NewPromotionService(s.params)
}

func (s *PromotionServiceSuite) activePromotion(id string, t types.PromotionType, rules types.PromotionRules) *promotion.Promotion {
	now := time.Now().UTC()
	return &promotion.Promotion{
		ID:        id,
		Name:      id,
		Type:      t,
		Rules:     rules,
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Status:    types.PromotionStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PromotionServiceSuite) TestSelectApplicableOrdering() {
	now := time.Now().UTC()
	candidates := []*promotion.Promotion{
		s.activePromotion("thresh", types.PromotionTypeThresholdDiscount, types.PromotionRules{
			ThresholdDiscount: &types.ThresholdDiscountRules{
				MinAmount:      decimal.NewFromInt(100),
				DiscountAmount: decimal.NewFromInt(20),
			},
		}),
		s.activePromotion("pct", types.PromotionTypePercentageDiscount, types.PromotionRules{
			PercentageDiscount: &types.PercentageDiscountRules{DiscountRate: decimal.NewFromFloat(0.1)},
		}),
		s.activePromotion("fixed", types.PromotionTypeFixedDiscount, types.PromotionRules{
			FixedDiscount: &types.FixedDiscountRules{DiscountAmount: decimal.NewFromInt(15)},
		}),
	}

	selected := s.promotionSvc.SelectApplicable(decimal.NewFromInt(200), candidates, now)
	s.Require().Len(selected, 3)
	s.Equal("fixed", selected[0].ID)
	s.Equal("pct", selected[1].ID)
	s.Equal("thresh", selected[2].ID)
}

func (s *PromotionServiceSuite) TestSameTypeKeepsLargestDiscount() {
	now := time.Now().UTC()
	candidates := []*promotion.Promotion{
		s.activePromotion("fixed-small", types.PromotionTypeFixedDiscount, types.PromotionRules{
			FixedDiscount: &types.FixedDiscountRules{DiscountAmount: decimal.NewFromInt(5)},
		}),
		s.activePromotion("fixed-big", types.PromotionTypeFixedDiscount, types.PromotionRules{
			FixedDiscount: &types.FixedDiscountRules{DiscountAmount: decimal.NewFromInt(25)},
		}),
	}

	selected := s.promotionSvc.SelectApplicable(decimal.NewFromInt(200), candidates, now)
	s.Require().Len(selected, 1)
	s.Equal("fixed-big", selected[0].ID)
}

func (s *PromotionServiceSuite) TestFreeShippingRequiresMinAmount() {
	now := time.Now().UTC()
	candidates := []*promotion.Promotion{
		s.activePromotion("ship", types.PromotionTypeFreeShipping, types.PromotionRules{
			FreeShipping: &types.FreeShippingRules{MinAmount: decimal.NewFromInt(99)},
		}),
	}

	selected := s.promotionSvc.SelectApplicable(decimal.NewFromInt(50), candidates, now)
	s.Empty(selected)

	selected = s.promotionSvc.SelectApplicable(decimal.NewFromInt(150), candidates, now)
	s.Len(selected, 1)
}

func (s *PromotionServiceSuite) TestInactiveAndExpiredExcluded() {
	now := time.Now().UTC()

	inactive := s.activePromotion("inactive", types.PromotionTypeFixedDiscount, types.PromotionRules{
		FixedDiscount: &types.FixedDiscountRules{DiscountAmount: decimal.NewFromInt(10)},
	})
	inactive.Status = types.PromotionStatusInactive

	ended := s.activePromotion("ended", types.PromotionTypeFixedDiscount, types.PromotionRules{
		FixedDiscount: &types.FixedDiscountRules{DiscountAmount: decimal.NewFromInt(10)},
	})
	ended.StartTime = now.Add(-48 * time.Hour)
	ended.EndTime = now.Add(-24 * time.Hour)

	selected := s.promotionSvc.SelectApplicable(decimal.NewFromInt(200), []*promotion.Promotion{inactive, ended}, now)
	s.Empty(selected)
}

func (s *PromotionServiceSuite) TestCreatePromotionRejectsMismatchedRules() {
	now := time.Now().UTC()
	_, err := s.promotionSvc.CreatePromotion(s.GetContext(), &dto.CreatePromotionRequest{
		Name: "bad",
		Type: types.PromotionTypeFixedDiscount,
		Rules: types.PromotionRules{
			FreeShipping: &types.FreeShippingRules{MinAmount: decimal.NewFromInt(99)},
		},
		StartTime: now,
		EndTime:   now.Add(time.Hour),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PromotionServiceSuite) TestCreateAndListPromotions() {
	now := time.Now().UTC()
	resp, err := s.promotionSvc.CreatePromotion(s.GetContext(), &dto.CreatePromotionRequest{
		Name: "10 percent off",
		Type: types.PromotionTypePercentageDiscount,
		Rules: types.PromotionRules{
			PercentageDiscount: &types.PercentageDiscountRules{DiscountRate: decimal.NewFromFloat(0.1)},
		},
		StartTime: now,
		EndTime:   now.Add(time.Hour),
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)

	list, err := s.promotionSvc.ListPromotions(s.GetContext())
	s.NoError(err)
	s.Equal(1, list.Total)
}
