package promotion

import (
	"time"

	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
)

// Promotion represents a storewide promotion with a type-specific rule payload
type Promotion struct {
	ID        string                `json:"id" db:"id"`
	Name      string                `json:"name" db:"name"`
	Type      types.PromotionType   `json:"type" db:"type"`
	Rules     types.PromotionRules  `json:"rules" db:"rules"`
	StartTime time.Time             `json:"start_time" db:"start_time"`
	EndTime   time.Time             `json:"end_time" db:"end_time"`
	Status    types.PromotionStatus `json:"status" db:"status"`
	CreatedAt time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt time.Time             `json:"updated_at" db:"updated_at"`
}

// IsEligible reports whether the promotion can apply at the given instant:
// status active and now within [StartTime, EndTime).
func (p *Promotion) IsEligible(now time.Time) bool {
	if p.Status != types.PromotionStatusActive {
		return false
	}
	return !now.Before(p.StartTime) && now.Before(p.EndTime)
}

// DiscountFor returns the subtotal discount this promotion yields for the given
// order amount. Free shipping promotions return zero here because they affect
// the shipping fee component, not the product subtotal.
func (p *Promotion) DiscountFor(orderAmount decimal.Decimal) decimal.Decimal {
	switch p.Type {
	case types.PromotionTypeFixedDiscount:
		if p.Rules.FixedDiscount == nil {
			return decimal.Zero
		}
		if p.Rules.FixedDiscount.DiscountAmount.GreaterThan(orderAmount) {
			return orderAmount
		}
		return p.Rules.FixedDiscount.DiscountAmount
	case types.PromotionTypePercentageDiscount:
		if p.Rules.PercentageDiscount == nil {
			return decimal.Zero
		}
		return orderAmount.Mul(p.Rules.PercentageDiscount.DiscountRate)
	case types.PromotionTypeThresholdDiscount:
		r := p.Rules.ThresholdDiscount
		if r == nil || orderAmount.LessThan(r.MinAmount) {
			return decimal.Zero
		}
		if r.DiscountAmount.GreaterThan(orderAmount) {
			return orderAmount
		}
		return r.DiscountAmount
	default:
		return decimal.Zero
	}
}

// AppliesTo reports whether the type-specific rule admits the given order amount
func (p *Promotion) AppliesTo(orderAmount decimal.Decimal) bool {
	switch p.Type {
	case types.PromotionTypeFreeShipping:
		return p.Rules.FreeShipping != nil && orderAmount.GreaterThanOrEqual(p.Rules.FreeShipping.MinAmount)
	case types.PromotionTypeFixedDiscount:
		return p.Rules.FixedDiscount != nil
	case types.PromotionTypePercentageDiscount:
		return p.Rules.PercentageDiscount != nil
	case types.PromotionTypeThresholdDiscount:
		return p.Rules.ThresholdDiscount != nil && orderAmount.GreaterThanOrEqual(p.Rules.ThresholdDiscount.MinAmount)
	default:
		return false
	}
}
