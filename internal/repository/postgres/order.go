package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/minimall/minimall/internal/domain/order"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
)

type orderRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOrderRepository(db *postgres.DB, logger *logger.Logger) order.Repository {
	return &orderRepository{db: db, logger: logger}
}

// orderRow persists the applied coupon/promotion id lists as text arrays
type orderRow struct {
	*order.Order
	CouponIDs    pq.StringArray `db:"coupon_ids"`
	PromotionIDs pq.StringArray `db:"promotion_ids"`
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	row := &orderRow{
		Order:        o,
		CouponIDs:    pq.StringArray(o.CouponIDs),
		PromotionIDs: pq.StringArray(o.PromotionIDs),
	}

	query := `
		INSERT INTO orders (
			id, order_no, member_id, original_amount, final_price, points_used,
			coupon_ids, promotion_ids, order_status,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :order_no, :member_id, :original_amount, :final_price, :points_used,
			:coupon_ids, :promotion_ids, :order_status,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating order", "order_id", o.ID, "order_no", o.OrderNo)

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create order").
			Mark(ierr.ErrDatabase)
	}

	lineQuery := `
		INSERT INTO order_line_items (
			id, order_id, product_id, sku_id, quantity, unit_price,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :order_id, :product_id, :sku_id, :quantity, :unit_price,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	for _, li := range o.LineItems {
		if _, err := r.db.NamedExecContext(ctx, lineQuery, li); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create order line item").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	return r.getBy(ctx, `SELECT * FROM orders WHERE id = $1`, id)
}

func (r *orderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return r.getBy(ctx, `SELECT * FROM orders WHERE order_no = $1`, orderNo)
}

func (r *orderRepository) getBy(ctx context.Context, query string, arg interface{}) (*order.Order, error) {
	var row orderRow
	row.Order = &order.Order{}

	err := r.db.GetQuerier(ctx).GetContext(ctx, &row, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("order not found").
				WithHint("Order not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get order").
			Mark(ierr.ErrDatabase)
	}

	o := row.Order
	o.CouponIDs = []string(row.CouponIDs)
	o.PromotionIDs = []string(row.PromotionIDs)

	lineQuery := `SELECT * FROM order_line_items WHERE order_id = $1 ORDER BY created_at`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &o.LineItems, lineQuery, o.ID); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get order line items").
			Mark(ierr.ErrDatabase)
	}
	return o, nil
}

func (r *orderRepository) ListByMember(ctx context.Context, memberID string) ([]*order.Order, error) {
	var rows []*orderRow
	query := `SELECT * FROM orders WHERE member_id = $1 ORDER BY created_at DESC`

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, memberID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list orders").
			Mark(ierr.ErrDatabase)
	}

	orders := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o := row.Order
		o.CouponIDs = []string(row.CouponIDs)
		o.PromotionIDs = []string(row.PromotionIDs)
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE orders SET order_status = $1, updated_at = NOW() WHERE id = $2`

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, status, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update order status").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
