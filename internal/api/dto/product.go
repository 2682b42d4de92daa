package dto

import (
	"context"

	"github.com/minimall/minimall/internal/domain/product"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
	"github.com/minimall/minimall/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents the request to create a new product
type CreateProductRequest struct {
	Name      string             `json:"name" validate:"required"`
	UnitPrice decimal.Decimal    `json:"unit_price" validate:"required"`
	SKUs      []CreateSKURequest `json:"skus,omitempty"`
}

// CreateSKURequest represents one SKU to create alongside a product
type CreateSKURequest struct {
	Spec          string           `json:"spec" validate:"required"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

// Validate validates the CreateProductRequest
func (r *CreateProductRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Please provide a product name").
			Mark(ierr.ErrValidation)
	}

	if r.UnitPrice.IsNegative() {
		return ierr.NewError("unit_price must not be negative").
			WithHint("Unit price must not be negative").
			Mark(ierr.ErrValidation)
	}

	for _, sku := range r.SKUs {
		if sku.Spec == "" {
			return ierr.NewError("sku spec is required").
				WithHint("Please provide a spec for each SKU").
				Mark(ierr.ErrValidation)
		}
		if sku.PriceOverride != nil && sku.PriceOverride.IsNegative() {
			return ierr.NewError("price_override must not be negative").
				WithHint("SKU price override must not be negative").
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

// ToProduct converts the request into a domain product
func (r *CreateProductRequest) ToProduct(ctx context.Context) *product.Product {
	return &product.Product{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:      r.Name,
		UnitPrice: r.UnitPrice,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

// ProductResponse represents a product and its SKUs in API responses
type ProductResponse struct {
	*product.Product
	SKUs []*product.SKU `json:"skus,omitempty"`
}
