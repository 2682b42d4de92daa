package dto

import (
	"context"
	"time"

	"github.com/minimall/minimall/internal/domain/coupon"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
	"github.com/minimall/minimall/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest represents the request to create a new coupon
type CreateCouponRequest struct {
	Code           string                   `json:"code" validate:"required"`
	Name           string                   `json:"name" validate:"required"`
	DiscountType   types.CouponDiscountType `json:"discount_type" validate:"required,oneof=fixed percentage"`
	Value          decimal.Decimal          `json:"value" validate:"required"`
	MinOrderAmount decimal.Decimal          `json:"min_order_amount"`
	TotalCount     int                      `json:"total_count" validate:"required,gt=0"`
	ValidFrom      time.Time                `json:"valid_from" validate:"required"`
	ValidTo        time.Time                `json:"valid_to" validate:"required"`
}

// Validate validates the CreateCouponRequest
func (r *CreateCouponRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Code == "" {
		return ierr.NewError("code is required").
			WithHint("Please provide a coupon code").
			Mark(ierr.ErrValidation)
	}

	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide a coupon name").
			Mark(ierr.ErrValidation)
	}

	switch r.DiscountType {
	case types.CouponDiscountTypeFixed, types.CouponDiscountTypePercentage:
	default:
		return ierr.NewError("invalid discount type").
			WithHint("Discount type must be fixed or percentage").
			WithReportableDetails(map[string]any{"discount_type": r.DiscountType}).
			Mark(ierr.ErrValidation)
	}

	if !r.Value.IsPositive() {
		return ierr.NewError("value must be positive").
			WithHint("Coupon value must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	if r.DiscountType == types.CouponDiscountTypePercentage && r.Value.GreaterThan(decimal.NewFromInt(1)) {
		return ierr.NewError("percentage value out of range").
			WithHint("Percentage coupon value must be between 0 and 1").
			Mark(ierr.ErrValidation)
	}

	if r.MinOrderAmount.IsNegative() {
		return ierr.NewError("min_order_amount must not be negative").
			WithHint("Minimum order amount must not be negative").
			Mark(ierr.ErrValidation)
	}

	if r.TotalCount <= 0 {
		return ierr.NewError("total_count must be positive").
			WithHint("Total count must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	if !r.ValidTo.After(r.ValidFrom) {
		return ierr.NewError("invalid validity window").
			WithHint("valid_to must be after valid_from").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToCoupon converts the request into a domain coupon
func (r *CreateCouponRequest) ToCoupon(ctx context.Context) *coupon.Coupon {
	return &coupon.Coupon{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COUPON),
		Code:           r.Code,
		Name:           r.Name,
		DiscountType:   r.DiscountType,
		Value:          r.Value,
		MinOrderAmount: r.MinOrderAmount,
		TotalCount:     r.TotalCount,
		UsedCount:      0,
		ValidFrom:      r.ValidFrom,
		ValidTo:        r.ValidTo,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	*coupon.Coupon
}

// ListCouponsResponse represents the list of coupons
type ListCouponsResponse struct {
	Items []*CouponResponse `json:"items"`
	Total int               `json:"total"`
}
