package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/minimall/minimall/internal/domain/coupon"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
)

// InMemoryCouponStore implements coupon.Repository. Stock mutations and
// reservation transitions go through a store-level mutex so concurrent calls
// observe the same atomicity the SQL conditional updates provide.
type InMemoryCouponStore struct {
	*InMemoryStore[*coupon.Coupon]
	reservations *InMemoryStore[*coupon.Reservation]
	reserveMu    sync.Mutex
}

// NewInMemoryCouponStore creates a new in-memory coupon store
func NewInMemoryCouponStore() *InMemoryCouponStore {
	return &InMemoryCouponStore{
		InMemoryStore: NewInMemoryStore[*coupon.Coupon](),
		reservations:  NewInMemoryStore[*coupon.Reservation](),
	}
}

func copyCoupon(c *coupon.Coupon) *coupon.Coupon {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

func (s *InMemoryCouponStore) Create(ctx context.Context, c *coupon.Coupon) error {
	if c == nil {
		return ierr.NewError("coupon cannot be nil").
			WithHint("Coupon cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, copyCoupon(c))
}

func (s *InMemoryCouponStore) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("coupon not found").
			WithHint("Coupon not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return copyCoupon(c), nil
}

func (s *InMemoryCouponStore) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	coupons, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, c *coupon.Coupon, _ interface{}) bool {
		return c.Code == code
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(coupons) == 0 {
		return nil, ierr.NewError("coupon not found").
			WithHint("Coupon not found").
			WithReportableDetails(map[string]interface{}{"code": code}).
			Mark(ierr.ErrNotFound)
	}
	return copyCoupon(coupons[0]), nil
}

func (s *InMemoryCouponStore) Update(ctx context.Context, c *coupon.Coupon) error {
	if c == nil {
		return ierr.NewError("coupon cannot be nil").
			WithHint("Coupon cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCoupon(c))
}

func (s *InMemoryCouponStore) List(ctx context.Context) ([]*coupon.Coupon, error) {
	coupons, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *coupon.Coupon) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	result := make([]*coupon.Coupon, 0, len(coupons))
	for _, c := range coupons {
		result = append(result, copyCoupon(c))
	}
	return result, nil
}

func (s *InMemoryCouponStore) ReserveUsage(ctx context.Context, id string) (bool, error) {
	s.reserveMu.Lock()
	defer s.reserveMu.Unlock()

	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return false, ierr.NewError("coupon not found").
			WithHint("Coupon not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}

	if c.UsedCount >= c.TotalCount {
		return false, nil
	}

	copied := copyCoupon(c)
	copied.UsedCount++
	if err := s.InMemoryStore.Update(ctx, id, copied); err != nil {
		return false, err
	}
	return true, nil
}

func (s *InMemoryCouponStore) ReleaseUsage(ctx context.Context, id string) error {
	s.reserveMu.Lock()
	defer s.reserveMu.Unlock()

	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return ierr.NewError("coupon not found").
			WithHint("Coupon not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}

	if c.UsedCount == 0 {
		return nil
	}

	copied := copyCoupon(c)
	copied.UsedCount--
	return s.InMemoryStore.Update(ctx, id, copied)
}

func copyReservation(r *coupon.Reservation) *coupon.Reservation {
	if r == nil {
		return nil
	}
	copied := *r
	return &copied
}

func (s *InMemoryCouponStore) CreateReservation(ctx context.Context, r *coupon.Reservation) error {
	if r == nil {
		return ierr.NewError("reservation cannot be nil").
			WithHint("Reservation cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.reservations.Create(ctx, r.ID, copyReservation(r))
}

func (s *InMemoryCouponStore) GetActiveReservation(ctx context.Context, quoteID, couponID string) (*coupon.Reservation, error) {
	reservations, err := s.reservations.List(ctx, nil, func(ctx context.Context, r *coupon.Reservation, _ interface{}) bool {
		return r.QuoteID == quoteID && r.CouponID == couponID && r.Status == types.ReservationStatusReserved
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(reservations) == 0 {
		return nil, ierr.NewError("reservation not found").
			WithHint("No active reservation for this quote and coupon").
			WithReportableDetails(map[string]interface{}{
				"quote_id":  quoteID,
				"coupon_id": couponID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyReservation(reservations[0]), nil
}

func (s *InMemoryCouponStore) ListActiveReservationsByQuote(ctx context.Context, quoteID string) ([]*coupon.Reservation, error) {
	reservations, err := s.reservations.List(ctx, nil, func(ctx context.Context, r *coupon.Reservation, _ interface{}) bool {
		return r.QuoteID == quoteID && r.Status == types.ReservationStatusReserved
	}, nil)
	if err != nil {
		return nil, err
	}

	result := make([]*coupon.Reservation, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, copyReservation(r))
	}
	return result, nil
}

func (s *InMemoryCouponStore) ListExpiredReservations(ctx context.Context, before time.Time) ([]*coupon.Reservation, error) {
	reservations, err := s.reservations.List(ctx, nil, func(ctx context.Context, r *coupon.Reservation, _ interface{}) bool {
		return r.Status == types.ReservationStatusReserved && !r.ExpiresAt.After(before)
	}, nil)
	if err != nil {
		return nil, err
	}

	result := make([]*coupon.Reservation, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, copyReservation(r))
	}
	return result, nil
}

func (s *InMemoryCouponStore) TransitionReservation(ctx context.Context, id string, from, to types.CouponReservationStatus) (bool, error) {
	s.reserveMu.Lock()
	defer s.reserveMu.Unlock()

	r, err := s.reservations.Get(ctx, id)
	if err != nil {
		return false, ierr.NewError("reservation not found").
			WithHint("Reservation not found").
			WithReportableDetails(map[string]interface{}{"id": id}).
			Mark(ierr.ErrNotFound)
	}

	if r.Status != from {
		return false, nil
	}

	copied := copyReservation(r)
	copied.Status = to
	copied.UpdatedAt = time.Now().UTC()
	if err := s.reservations.Update(ctx, id, copied); err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes all coupons and reservations
func (s *InMemoryCouponStore) Clear() {
	s.InMemoryStore.Clear()
	s.reservations.Clear()
}
