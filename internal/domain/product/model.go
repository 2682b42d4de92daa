package product

import (
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
)

// Product represents a sellable product with a base unit price
type Product struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`

	types.BaseModel
}

// SKU is a concrete variant of a product. PriceOverride, when set, replaces the
// product's unit price for this variant.
type SKU struct {
	ID            string           `json:"id" db:"id"`
	ProductID     string           `json:"product_id" db:"product_id"`
	Spec          string           `json:"spec" db:"spec"`
	PriceOverride *decimal.Decimal `json:"price_override" db:"price_override"`

	types.BaseModel
}

// EffectivePrice returns the SKU override price when present, otherwise the
// product's base unit price.
func (s *SKU) EffectivePrice(p *Product) decimal.Decimal {
	if s != nil && s.PriceOverride != nil {
		return *s.PriceOverride
	}
	return p.UnitPrice
}
