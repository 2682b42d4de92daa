package service

import (
	"context"
	"time"

	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/cache"
	"github.com/minimall/minimall/internal/domain/promotion"
	"github.com/minimall/minimall/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PromotionService evaluates and administers promotions
type PromotionService interface {
	// SelectApplicable filters the candidates down to the promotions that apply
	// to the given order amount at the given instant. Amount-based promotions of
	// the same type are mutually exclusive; the one with the largest discount
	// wins. Free shipping promotions are selected independently because they
	// affect the shipping fee, not the product subtotal.
	SelectApplicable(orderAmount decimal.Decimal, candidates []*promotion.Promotion, now time.Time) []*promotion.Promotion

	CreatePromotion(ctx context.Context, req *dto.CreatePromotionRequest) (*dto.PromotionResponse, error)
	GetPromotion(ctx context.Context, id string) (*dto.PromotionResponse, error)
	ListPromotions(ctx context.Context) (*dto.ListPromotionsResponse, error)
}

type promotionService struct {
	ServiceParams
}

func NewPromotionService(params ServiceParams) PromotionService {
	return &promotionService{ServiceParams: params}
}

// selectionOrder fixes the evaluation order of amount-based promotion types
var selectionOrder = []types.PromotionType{
	types.PromotionTypeFixedDiscount,
	types.PromotionTypePercentageDiscount,
	types.PromotionTypeThresholdDiscount,
}

func (s *promotionService) SelectApplicable(orderAmount decimal.Decimal, candidates []*promotion.Promotion, now time.Time) []*promotion.Promotion {
	eligible := lo.Filter(candidates, func(p *promotion.Promotion, _ int) bool {
		return p != nil && p.IsEligible(now) && p.AppliesTo(orderAmount)
	})

	var selected []*promotion.Promotion
	for _, t := range selectionOrder {
		ofType := lo.Filter(eligible, func(p *promotion.Promotion, _ int) bool {
			return p.Type == t
		})
		if len(ofType) == 0 {
			continue
		}

		best := lo.MaxBy(ofType, func(a, b *promotion.Promotion) bool {
			return a.DiscountFor(orderAmount).GreaterThan(b.DiscountFor(orderAmount))
		})
		selected = append(selected, best)
	}

	for _, p := range eligible {
		if p.Type == types.PromotionTypeFreeShipping {
			selected = append(selected, p)
		}
	}

	return selected
}

func (s *promotionService) CreatePromotion(ctx context.Context, req *dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPromotion(ctx)
	if err := s.PromotionRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixPromotion)

	s.Logger.Infow("created promotion",
		"promotion_id", p.ID,
		"type", p.Type,
	)
	return &dto.PromotionResponse{Promotion: p}, nil
}

func (s *promotionService) GetPromotion(ctx context.Context, id string) (*dto.PromotionResponse, error) {
	p, err := s.PromotionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.PromotionResponse{Promotion: p}, nil
}

func (s *promotionService) ListPromotions(ctx context.Context) (*dto.ListPromotionsResponse, error) {
	promotions, err := s.PromotionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(promotions, func(p *promotion.Promotion, _ int) *dto.PromotionResponse {
		return &dto.PromotionResponse{Promotion: p}
	})
	return &dto.ListPromotionsResponse{Items: items, Total: len(items)}, nil
}
