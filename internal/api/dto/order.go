package dto

import (
	"github.com/minimall/minimall/internal/domain/order"
)

// CreateOrderRequest creates an order from the same inputs a quote takes
type CreateOrderRequest struct {
	PricingRequest
}

// OrderSummary is the minimal order identity returned after creation
type OrderSummary struct {
	ID      string `json:"id"`
	OrderNo string `json:"order_no"`
}

// CreateOrderResponse reports the created order and how many commission
// records distribution produced. CommissionCreated is informational; zero is a
// normal outcome.
type CreateOrderResponse struct {
	Order             OrderSummary   `json:"order"`
	CommissionCreated int            `json:"commission_created"`
	Pricing           *PricingResult `json:"pricing"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	*order.Order
}
