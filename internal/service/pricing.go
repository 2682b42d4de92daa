package service

import (
	"context"
	"time"

	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/domain/promotion"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
)

// PricingService turns a prospective order into a deterministic quote. The
// discount order is fixed: promotions, then coupons, then points, each working
// on the running amount, with the final price clamped at zero.
type PricingService interface {
	Quote(ctx context.Context, req *dto.PricingRequest) (*dto.PricingResponse, error)
}

type pricingService struct {
	ServiceParams
	couponLedger CouponLedgerService
	promotionSvc PromotionService
}

func NewPricingService(params ServiceParams, couponLedger CouponLedgerService, promotionSvc PromotionService) PricingService {
	return &pricingService{
		ServiceParams: params,
		couponLedger:  couponLedger,
		promotionSvc:  promotionSvc,
	}
}

func (s *pricingService) Quote(ctx context.Context, req *dto.PricingRequest) (*dto.PricingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if len(req.AppliedCoupons) > s.Config.Pricing.MaxCouponsPerOrder {
		return nil, ierr.NewError("too many coupons").
			WithHint("Too many coupons applied to one order").
			WithReportableDetails(map[string]any{
				"applied": len(req.AppliedCoupons),
				"max":     s.Config.Pricing.MaxCouponsPerOrder,
			}).
			Mark(ierr.ErrValidation)
	}

	if _, err := s.MemberRepo.Get(ctx, req.MemberID); err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Member does not exist").
				WithReportableDetails(map[string]any{"member_id": req.MemberID}).
				Mark(ierr.ErrValidation)
		}
		return nil, err
	}

	unitPrice, err := s.resolveUnitPrice(ctx, req)
	if err != nil {
		return nil, err
	}

	// The quote id keys every coupon hold this quote takes. A client that
	// previews first sends the same id when creating the order, so the order
	// consumes the preview's holds instead of taking new ones.
	quoteID := req.QuoteID
	if quoteID == "" {
		quoteID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE)
	}

	originalAmount := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	running := originalAmount
	now := time.Now().UTC()

	result := &dto.PricingResult{
		OriginalAmount: originalAmount,
		Discounts:      []dto.DiscountEntry{},
	}

	// Promotions
	candidates, err := s.loadPromotions(ctx, req.AppliedPromotions)
	if err != nil {
		return nil, err
	}

	selected := s.promotionSvc.SelectApplicable(originalAmount, candidates, now)
	appliedPromotions := make([]string, 0, len(selected))
	for _, p := range selected {
		appliedPromotions = append(appliedPromotions, p.ID)

		if p.Type == types.PromotionTypeFreeShipping {
			result.FreeShipping = true
			continue
		}

		discount := p.DiscountFor(running)
		running = running.Sub(discount)
		result.Discounts = append(result.Discounts, dto.DiscountEntry{
			Source:   types.DiscountSourcePromotion,
			SourceID: p.ID,
			Amount:   discount,
			Applied:  true,
		})
	}

	// Coupons. A failed reservation drops that coupon only; the quote still
	// succeeds. A hard failure afterwards must release every hold this quote
	// has taken.
	appliedCoupons := make([]string, 0, len(req.AppliedCoupons))
	for _, couponID := range req.AppliedCoupons {
		reservation, err := s.couponLedger.Reserve(ctx, quoteID, couponID, running)
		if err != nil {
			code, ok := couponFailureCode(err)
			if !ok {
				if relErr := s.couponLedger.ReleaseQuote(ctx, quoteID); relErr != nil {
					s.Logger.Errorw("failed to release coupon holds of failed quote",
						"quote_id", quoteID,
						"error", relErr,
					)
				}
				return nil, err
			}

			s.Logger.Infow("skipping coupon",
				"coupon_id", couponID,
				"reason", code,
			)
			result.Discounts = append(result.Discounts, dto.DiscountEntry{
				Source:   types.DiscountSourceCoupon,
				SourceID: couponID,
				Amount:   decimal.Zero,
				Applied:  false,
				Reason:   code,
			})
			continue
		}

		appliedCoupons = append(appliedCoupons, couponID)
		running = running.Sub(reservation.Discount)
		result.Discounts = append(result.Discounts, dto.DiscountEntry{
			Source:   types.DiscountSourceCoupon,
			SourceID: couponID,
			Amount:   reservation.Discount,
			Applied:  true,
		})
	}

	// Points
	if req.PointUsage != nil && req.PointUsage.Points > 0 {
		maxRedeemable := originalAmount.Mul(s.Config.Pricing.MaxPointDiscountRate)
		discount := decimal.NewFromInt(req.PointUsage.Points).Mul(s.Config.Pricing.PointConversionRate)
		if discount.GreaterThan(maxRedeemable) {
			discount = maxRedeemable
		}

		running = running.Sub(discount)
		result.PointsUsed = req.PointUsage.Points
		result.Discounts = append(result.Discounts, dto.DiscountEntry{
			Source:  types.DiscountSourcePoints,
			Amount:  discount,
			Applied: true,
		})
	}

	if running.IsNegative() {
		running = decimal.Zero
	}

	result.FinalPrice = running
	result.Savings = originalAmount.Sub(running)
	if originalAmount.IsPositive() {
		result.SavingsRate = result.Savings.Div(originalAmount)
	} else {
		result.SavingsRate = decimal.Zero
	}

	return &dto.PricingResponse{
		QuoteID:           quoteID,
		Pricing:           result,
		AppliedCoupons:    appliedCoupons,
		AppliedPromotions: appliedPromotions,
	}, nil
}

func (s *pricingService) resolveUnitPrice(ctx context.Context, req *dto.PricingRequest) (decimal.Decimal, error) {
	p, err := s.ProductRepo.Get(ctx, req.ProductID)
	if err != nil {
		return decimal.Zero, err
	}

	if req.SkuID == nil {
		return p.UnitPrice, nil
	}

	sku, err := s.ProductRepo.GetSKU(ctx, *req.SkuID)
	if err != nil {
		return decimal.Zero, err
	}
	if sku.ProductID != req.ProductID {
		return decimal.Zero, ierr.NewError("sku does not belong to product").
			WithHint("SKU does not belong to the given product").
			WithReportableDetails(map[string]any{
				"product_id": req.ProductID,
				"sku_id":     *req.SkuID,
			}).
			Mark(ierr.ErrValidation)
	}

	return sku.EffectivePrice(p), nil
}

func (s *pricingService) loadPromotions(ctx context.Context, ids []string) ([]*promotion.Promotion, error) {
	candidates := make([]*promotion.Promotion, 0, len(ids))
	for _, id := range ids {
		p, err := s.PromotionRepo.Get(ctx, id)
		if err != nil {
			if ierr.IsNotFound(err) {
				s.Logger.Debugw("ignoring unknown promotion", "promotion_id", id)
				continue
			}
			return nil, err
		}
		candidates = append(candidates, p)
	}
	return candidates, nil
}

// couponFailureCode maps a reservation error to the reason code surfaced in a
// skipped discount entry. Non-coupon errors return false and fail the quote.
func couponFailureCode(err error) (types.CouponFailureCode, bool) {
	switch {
	case ierr.IsCouponExpired(err):
		return types.CouponFailureExpired, true
	case ierr.IsCouponExhausted(err):
		return types.CouponFailureExhausted, true
	case ierr.IsMinAmountNotMet(err):
		return types.CouponFailureMinAmountNotMet, true
	case ierr.IsCouponInvalid(err):
		return types.CouponFailureInvalid, true
	default:
		return "", false
	}
}
