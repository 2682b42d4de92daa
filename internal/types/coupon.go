package types

// CouponDiscountType represents the type of coupon discount (fixed or percentage)
type CouponDiscountType string

const (
	// CouponDiscountTypeFixed represents a fixed amount coupon discount
	CouponDiscountTypeFixed CouponDiscountType = "fixed"
	// CouponDiscountTypePercentage represents a percentage-based coupon discount
	CouponDiscountTypePercentage CouponDiscountType = "percentage"
)

// CouponReservationStatus tracks the lifecycle of a quote's hold on one unit
// of coupon stock. A hold is reserved until the order consumes it or it is
// handed back, either explicitly or by timeout.
type CouponReservationStatus string

const (
	// ReservationStatusReserved marks a live hold counted against used_count
	ReservationStatusReserved CouponReservationStatus = "reserved"
	// ReservationStatusConsumed marks a hold redeemed by a created order
	ReservationStatusConsumed CouponReservationStatus = "consumed"
	// ReservationStatusReleased marks a hold handed back to stock
	ReservationStatusReleased CouponReservationStatus = "released"
)

// CouponFailureCode classifies why a coupon reservation was rejected.
// These codes surface as the `reason` of skipped discount entries in a quote.
type CouponFailureCode string

const (
	CouponFailureInvalid         CouponFailureCode = "coupon_invalid"
	CouponFailureExpired         CouponFailureCode = "coupon_expired"
	CouponFailureExhausted       CouponFailureCode = "coupon_exhausted"
	CouponFailureMinAmountNotMet CouponFailureCode = "min_amount_not_met"
)
