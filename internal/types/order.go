package types

// OrderStatus represents the settlement status of an order
type OrderStatus string

const (
	// OrderStatusPending is an order created but not yet settled
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusSettled is an order whose payment has settled
	OrderStatusSettled OrderStatus = "settled"
	// OrderStatusCancelled is an order abandoned or voided before settlement
	OrderStatusCancelled OrderStatus = "cancelled"
)

// DiscountSource identifies which mechanism produced a discount entry in a quote
type DiscountSource string

const (
	DiscountSourcePromotion DiscountSource = "promotion"
	DiscountSourceCoupon    DiscountSource = "coupon"
	DiscountSourcePoints    DiscountSource = "points"
)
