package coupon

import (
	"context"
	"time"

	"github.com/minimall/minimall/internal/types"
)

// Repository defines the interface for coupon data access
type Repository interface {
	Create(ctx context.Context, coupon *Coupon) error
	Get(ctx context.Context, id string) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	Update(ctx context.Context, coupon *Coupon) error
	List(ctx context.Context) ([]*Coupon, error)
	// ReserveUsage atomically checks used_count < total_count and increments
	// used_count. It returns false when the stock is exhausted. Concurrent
	// reservations against the same coupon must never both succeed past the cap.
	ReserveUsage(ctx context.Context, id string) (bool, error)
	// ReleaseUsage is the compensating decrement for a reservation whose order
	// was abandoned or failed. The counter never drops below zero.
	ReleaseUsage(ctx context.Context, id string) error

	// CreateReservation records a hold taken by ReserveUsage so it can later be
	// consumed by an order or reclaimed after expiry.
	CreateReservation(ctx context.Context, reservation *Reservation) error
	// GetActiveReservation returns the reserved hold a quote already has on a
	// coupon, or a not-found error when none exists.
	GetActiveReservation(ctx context.Context, quoteID, couponID string) (*Reservation, error)
	ListActiveReservationsByQuote(ctx context.Context, quoteID string) ([]*Reservation, error)
	ListExpiredReservations(ctx context.Context, before time.Time) ([]*Reservation, error)
	// TransitionReservation moves a hold from one status to another and reports
	// whether the row actually transitioned. A false result means another path
	// (order consumption or expiry sweep) settled the hold first.
	TransitionReservation(ctx context.Context, id string, from, to types.CouponReservationStatus) (bool, error)
}
