package testutil

import (
	"context"
	"time"

	"github.com/minimall/minimall/internal/domain/order"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
)

// InMemoryOrderStore implements order.Repository
type InMemoryOrderStore struct {
	*InMemoryStore[*order.Order]
}

// NewInMemoryOrderStore creates a new in-memory order store
func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		InMemoryStore: NewInMemoryStore[*order.Order](),
	}
}

func copyOrder(o *order.Order) *order.Order {
	if o == nil {
		return nil
	}

	copied := *o
	copied.CouponIDs = append([]string(nil), o.CouponIDs...)
	copied.PromotionIDs = append([]string(nil), o.PromotionIDs...)
	copied.LineItems = make([]*order.LineItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		item := *li
		copied.LineItems = append(copied.LineItems, &item)
	}
	return &copied
}

func (s *InMemoryOrderStore) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return ierr.NewError("order cannot be nil").
			WithHint("Order cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, o.ID, copyOrder(o))
}

func (s *InMemoryOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("order not found").
			WithHint("Order not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyOrder(o), nil
}

func (s *InMemoryOrderStore) GetByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	orders, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, o *order.Order, _ interface{}) bool {
		return o.OrderNo == orderNo
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ierr.NewError("order not found").
			WithHint("Order not found").
			WithReportableDetails(map[string]interface{}{"order_no": orderNo}).
			Mark(ierr.ErrNotFound)
	}
	return copyOrder(orders[0]), nil
}

func (s *InMemoryOrderStore) ListByMember(ctx context.Context, memberID string) ([]*order.Order, error) {
	orders, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, o *order.Order, _ interface{}) bool {
		return o.MemberID == memberID
	}, func(i, j *order.Order) bool {
		return i.CreatedAt.After(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	result := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, copyOrder(o))
	}
	return result, nil
}

func (s *InMemoryOrderStore) UpdateStatus(ctx context.Context, id string, status string) error {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("order not found").
			WithHint("Order not found").
			Mark(ierr.ErrNotFound)
	}

	copied := copyOrder(o)
	copied.OrderStatus = types.OrderStatus(status)
	copied.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, id, copied)
}
