package coupon

import (
	"time"

	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
)

// Coupon represents a discount coupon entity. UsedCount never exceeds
// TotalCount; stock consumption goes through the repository's atomic
// check-and-increment so concurrent reservations cannot oversell.
type Coupon struct {
	ID             string                   `json:"id" db:"id"`
	Code           string                   `json:"code" db:"code"`
	Name           string                   `json:"name" db:"name"`
	DiscountType   types.CouponDiscountType `json:"discount_type" db:"discount_type"`
	Value          decimal.Decimal          `json:"value" db:"value"`
	MinOrderAmount decimal.Decimal          `json:"min_order_amount" db:"min_order_amount"`
	TotalCount     int                      `json:"total_count" db:"total_count"`
	UsedCount      int                      `json:"used_count" db:"used_count"`
	ValidFrom      time.Time                `json:"valid_from" db:"valid_from"`
	ValidTo        time.Time                `json:"valid_to" db:"valid_to"`

	types.BaseModel
}

// Reservation is one quote's hold on a single unit of coupon stock. A reserved
// row is counted in the coupon's UsedCount; consuming or releasing it settles
// that unit. Holds that are neither consumed nor released are reclaimed once
// ExpiresAt passes.
type Reservation struct {
	ID        string                        `json:"id" db:"id"`
	CouponID  string                        `json:"coupon_id" db:"coupon_id"`
	QuoteID   string                        `json:"quote_id" db:"quote_id"`
	Status    types.CouponReservationStatus `json:"status" db:"status"`
	ExpiresAt time.Time                     `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time                     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at" db:"updated_at"`
}

// IsWithinWindow reports whether now falls inside [ValidFrom, ValidTo)
func (c *Coupon) IsWithinWindow(now time.Time) bool {
	return !now.Before(c.ValidFrom) && now.Before(c.ValidTo)
}

// HasStock reports whether at least one redemption remains
func (c *Coupon) HasStock() bool {
	return c.UsedCount < c.TotalCount
}

// CalculateDiscount calculates the discount amount for a given order amount.
// Fixed coupons discount min(value, orderAmount); percentage coupons discount
// orderAmount × value, optionally capped by maxPercentageDiscount when that
// ceiling is positive.
func (c *Coupon) CalculateDiscount(orderAmount decimal.Decimal, maxPercentageDiscount decimal.Decimal) decimal.Decimal {
	switch c.DiscountType {
	case types.CouponDiscountTypeFixed:
		if c.Value.GreaterThan(orderAmount) {
			return orderAmount
		}
		return c.Value
	case types.CouponDiscountTypePercentage:
		discount := orderAmount.Mul(c.Value)
		if maxPercentageDiscount.IsPositive() && discount.GreaterThan(maxPercentageDiscount) {
			return maxPercentageDiscount
		}
		return discount
	default:
		return decimal.Zero
	}
}
