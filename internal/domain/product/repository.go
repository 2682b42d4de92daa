package product

import (
	"context"
)

// Repository defines the interface for product and SKU data access
type Repository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	CreateSKU(ctx context.Context, sku *SKU) error
	GetSKU(ctx context.Context, id string) (*SKU, error)
	ListSKUs(ctx context.Context, productID string) ([]*SKU, error)
}
