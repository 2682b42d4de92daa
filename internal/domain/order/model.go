package order

import (
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
)

// Order represents a confirmed purchase. Orders are created once and never
// mutated except for status transitions.
type Order struct {
	ID             string            `json:"id" db:"id"`
	OrderNo        string            `json:"order_no" db:"order_no"`
	MemberID       string            `json:"member_id" db:"member_id"`
	OriginalAmount decimal.Decimal   `json:"original_amount" db:"original_amount"`
	FinalPrice     decimal.Decimal   `json:"final_price" db:"final_price"`
	PointsUsed     int64             `json:"points_used" db:"points_used"`
	CouponIDs      []string          `json:"coupon_ids" db:"-"`
	PromotionIDs   []string          `json:"promotion_ids" db:"-"`
	OrderStatus    types.OrderStatus `json:"order_status" db:"order_status"`
	LineItems      []*LineItem       `json:"line_items" db:"-"`

	types.BaseModel
}

// LineItem is a single product/SKU position on an order
type LineItem struct {
	ID        string          `json:"id" db:"id"`
	OrderID   string          `json:"order_id" db:"order_id"`
	ProductID string          `json:"product_id" db:"product_id"`
	SkuID     *string         `json:"sku_id" db:"sku_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`

	types.BaseModel
}

// Subtotal returns quantity × unit price for the line
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
