package dto

import (
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
	"github.com/minimall/minimall/internal/validator"
	"github.com/shopspring/decimal"
)

// PointUsage carries the loyalty points a buyer wants to redeem on a quote
type PointUsage struct {
	Points int64 `json:"points"`
}

// PricingRequest represents the request to price a prospective order.
// QuoteID is optional: a client that previewed first passes the quote id it
// got back, so the order consumes the preview's coupon holds instead of
// reserving again. The server generates one when it is absent.
type PricingRequest struct {
	QuoteID           string      `json:"quote_id,omitempty"`
	ProductID         string      `json:"product_id" validate:"required"`
	SkuID             *string     `json:"sku_id,omitempty"`
	Quantity          int         `json:"quantity" validate:"required,gt=0"`
	MemberID          string      `json:"member_id" validate:"required"`
	AppliedCoupons    []string    `json:"applied_coupons,omitempty"`
	AppliedPromotions []string    `json:"applied_promotions,omitempty"`
	PointUsage        *PointUsage `json:"point_usage,omitempty"`
}

// Validate validates the PricingRequest
func (r *PricingRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.ProductID == "" {
		return ierr.NewError("product_id is required").
			WithHint("Please provide a product id").
			Mark(ierr.ErrValidation)
	}

	if r.MemberID == "" {
		return ierr.NewError("member_id is required").
			WithHint("Please provide a member id").
			Mark(ierr.ErrValidation)
	}

	if r.Quantity <= 0 {
		return ierr.NewError("quantity must be positive").
			WithHint("Quantity must be greater than zero").
			WithReportableDetails(map[string]any{"quantity": r.Quantity}).
			Mark(ierr.ErrValidation)
	}

	if r.PointUsage != nil && r.PointUsage.Points < 0 {
		return ierr.NewError("points must not be negative").
			WithHint("Point usage must not be negative").
			WithReportableDetails(map[string]any{"points": r.PointUsage.Points}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// DiscountEntry is one line of the quote's discount breakdown. Skipped entries
// carry Applied=false and a Reason; their Amount is zero.
type DiscountEntry struct {
	Source   types.DiscountSource    `json:"source"`
	SourceID string                  `json:"source_id,omitempty"`
	Amount   decimal.Decimal         `json:"amount"`
	Applied  bool                    `json:"applied"`
	Reason   types.CouponFailureCode `json:"reason,omitempty"`
}

// PricingResult is the outcome of running the pricing engine for one request
type PricingResult struct {
	OriginalAmount decimal.Decimal `json:"original_amount"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	Savings        decimal.Decimal `json:"savings"`
	SavingsRate    decimal.Decimal `json:"savings_rate"`
	Discounts      []DiscountEntry `json:"discounts"`
	FreeShipping   bool            `json:"free_shipping"`
	PointsUsed     int64           `json:"points_used"`
}

// PricingResponse wraps the result with the ids that actually applied. The
// quote id ties this quote's coupon holds to the order later created from it;
// holds of quotes never turned into orders expire and return their stock.
type PricingResponse struct {
	QuoteID           string         `json:"quote_id"`
	Pricing           *PricingResult `json:"pricing"`
	AppliedCoupons    []string       `json:"applied_coupons"`
	AppliedPromotions []string       `json:"applied_promotions"`
}
