package order

import (
	"context"
)

// Repository defines the interface for order data access
type Repository interface {
	// Create persists the order together with its line items
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	ListByMember(ctx context.Context, memberID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}
