package testutil

import (
	"context"

	"github.com/minimall/minimall/internal/domain/product"
	ierr "github.com/minimall/minimall/internal/errors"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	products *InMemoryStore[*product.Product]
	skus     *InMemoryStore[*product.SKU]
}

// NewInMemoryProductStore creates a new in-memory product store
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		products: NewInMemoryStore[*product.Product](),
		skus:     NewInMemoryStore[*product.SKU](),
	}
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ierr.NewError("product cannot be nil").
			WithHint("Product cannot be nil").
			Mark(ierr.ErrValidation)
	}
	copied := *p
	return s.products.Create(ctx, p.ID, &copied)
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("product not found").
			WithHint("Product not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (s *InMemoryProductStore) CreateSKU(ctx context.Context, sku *product.SKU) error {
	if sku == nil {
		return ierr.NewError("sku cannot be nil").
			WithHint("SKU cannot be nil").
			Mark(ierr.ErrValidation)
	}
	copied := *sku
	if sku.PriceOverride != nil {
		price := *sku.PriceOverride
		copied.PriceOverride = &price
	}
	return s.skus.Create(ctx, sku.ID, &copied)
}

func (s *InMemoryProductStore) GetSKU(ctx context.Context, id string) (*product.SKU, error) {
	sku, err := s.skus.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("sku not found").
			WithHint("SKU not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	copied := *sku
	return &copied, nil
}

func (s *InMemoryProductStore) ListSKUs(ctx context.Context, productID string) ([]*product.SKU, error) {
	return s.skus.List(ctx, productID, func(ctx context.Context, sku *product.SKU, filter interface{}) bool {
		return sku.ProductID == filter.(string)
	}, nil)
}

// Clear removes all products and SKUs
func (s *InMemoryProductStore) Clear() {
	s.products.Clear()
	s.skus.Clear()
}
