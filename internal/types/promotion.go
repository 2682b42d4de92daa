package types

import (
	"github.com/shopspring/decimal"
)

// PromotionType represents the kind of promotion being offered
type PromotionType string

const (
	// PromotionTypeFreeShipping waives the shipping fee above a minimum amount
	PromotionTypeFreeShipping PromotionType = "free_shipping"
	// PromotionTypeFixedDiscount subtracts a fixed amount from the subtotal
	PromotionTypeFixedDiscount PromotionType = "fixed_discount"
	// PromotionTypePercentageDiscount subtracts a percentage of the subtotal
	PromotionTypePercentageDiscount PromotionType = "percentage_discount"
	// PromotionTypeThresholdDiscount subtracts a fixed amount once the subtotal
	// reaches a threshold
	PromotionTypeThresholdDiscount PromotionType = "threshold_discount"
)

// PromotionStatus represents the lifecycle status of a promotion
type PromotionStatus string

const (
	PromotionStatusActive   PromotionStatus = "active"
	PromotionStatusInactive PromotionStatus = "inactive"
	PromotionStatusExpired  PromotionStatus = "expired"
)

// PromotionRules is a tagged variant holding the type-specific rule payload of a
// promotion. Exactly one field is set, matching the promotion's type, so the
// type-specific handling stays exhaustive at build time instead of poking at an
// untyped map.
type PromotionRules struct {
	FreeShipping       *FreeShippingRules       `json:"free_shipping,omitempty"`
	FixedDiscount      *FixedDiscountRules      `json:"fixed_discount,omitempty"`
	PercentageDiscount *PercentageDiscountRules `json:"percentage_discount,omitempty"`
	ThresholdDiscount  *ThresholdDiscountRules  `json:"threshold_discount,omitempty"`
}

// FreeShippingRules waives the shipping fee for orders at or above MinAmount
type FreeShippingRules struct {
	MinAmount decimal.Decimal `json:"min_amount"`
}

// FixedDiscountRules subtracts DiscountAmount from the product subtotal
type FixedDiscountRules struct {
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// PercentageDiscountRules subtracts DiscountRate (0..1) of the product subtotal
type PercentageDiscountRules struct {
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

// ThresholdDiscountRules subtracts DiscountAmount once the subtotal reaches MinAmount
type ThresholdDiscountRules struct {
	MinAmount      decimal.Decimal `json:"min_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// RulesForType returns the payload matching the given promotion type, or false
// when the payload for that type is missing.
func (r PromotionRules) RulesForType(t PromotionType) (any, bool) {
	switch t {
	case PromotionTypeFreeShipping:
		return r.FreeShipping, r.FreeShipping != nil
	case PromotionTypeFixedDiscount:
		return r.FixedDiscount, r.FixedDiscount != nil
	case PromotionTypePercentageDiscount:
		return r.PercentageDiscount, r.PercentageDiscount != nil
	case PromotionTypeThresholdDiscount:
		return r.ThresholdDiscount, r.ThresholdDiscount != nil
	default:
		return nil, false
	}
}
