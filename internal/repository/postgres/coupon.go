package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/minimall/minimall/internal/domain/coupon"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/logger"
	"github.com/minimall/minimall/internal/postgres"
	"github.com/minimall/minimall/internal/types"
)

type couponRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCouponRepository(db *postgres.DB, logger *logger.Logger) coupon.Repository {
	return &couponRepository{db: db, logger: logger}
}

func (r *couponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	query := `
		INSERT INTO coupons (
			id, code, name, discount_type, value, min_order_amount,
			total_count, used_count, valid_from, valid_to,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :code, :name, :discount_type, :value, :min_order_amount,
			:total_count, :used_count, :valid_from, :valid_to,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating coupon", "coupon_id", c.ID, "code", c.Code)

	_, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create coupon").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *couponRepository) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	var c coupon.Coupon
	query := `SELECT * FROM coupons WHERE id = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id, "deleted")
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("coupon not found").
				WithHint("Coupon not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var c coupon.Coupon
	query := `SELECT * FROM coupons WHERE code = $1 AND status != $2`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, code, "deleted")
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("coupon not found").
				WithHint("Coupon not found").
				WithReportableDetails(map[string]any{"code": code}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *couponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	c.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE coupons SET
			name = :name,
			discount_type = :discount_type,
			value = :value,
			min_order_amount = :min_order_amount,
			total_count = :total_count,
			valid_from = :valid_from,
			valid_to = :valid_to,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update coupon").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *couponRepository) List(ctx context.Context) ([]*coupon.Coupon, error) {
	var coupons []*coupon.Coupon
	query := `SELECT * FROM coupons WHERE status != $1 ORDER BY created_at DESC`

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &coupons, query, "deleted")
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list coupons").
			Mark(ierr.ErrDatabase)
	}
	return coupons, nil
}

// ReserveUsage relies on a single conditional UPDATE so the stock check and the
// increment are one atomic statement; two concurrent reservations can never
// both pass the used_count < total_count predicate for the last unit.
func (r *couponRepository) ReserveUsage(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = $1
		WHERE id = $2 AND used_count < total_count`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to reserve coupon usage").
			Mark(ierr.ErrDatabase)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to reserve coupon usage").
			Mark(ierr.ErrDatabase)
	}
	return affected == 1, nil
}

func (r *couponRepository) ReleaseUsage(ctx context.Context, id string) error {
	query := `
		UPDATE coupons
		SET used_count = used_count - 1, updated_at = $1
		WHERE id = $2 AND used_count > 0`

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to release coupon usage").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *couponRepository) CreateReservation(ctx context.Context, res *coupon.Reservation) error {
	query := `
		INSERT INTO coupon_reservations (
			id, coupon_id, quote_id, status, expires_at, created_at, updated_at
		) VALUES (
			:id, :coupon_id, :quote_id, :status, :expires_at, :created_at, :updated_at
		)`

	r.logger.Debugw("creating coupon reservation",
		"reservation_id", res.ID,
		"coupon_id", res.CouponID,
		"quote_id", res.QuoteID,
	)

	_, err := r.db.NamedExecContext(ctx, query, res)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create coupon reservation").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *couponRepository) GetActiveReservation(ctx context.Context, quoteID, couponID string) (*coupon.Reservation, error) {
	var res coupon.Reservation
	query := `SELECT * FROM coupon_reservations WHERE quote_id = $1 AND coupon_id = $2 AND status = $3`

	err := r.db.GetQuerier(ctx).GetContext(ctx, &res, query, quoteID, couponID, types.ReservationStatusReserved)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("reservation not found").
				WithHint("No active reservation for this quote and coupon").
				WithReportableDetails(map[string]any{
					"quote_id":  quoteID,
					"coupon_id": couponID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get coupon reservation").
			Mark(ierr.ErrDatabase)
	}
	return &res, nil
}

func (r *couponRepository) ListActiveReservationsByQuote(ctx context.Context, quoteID string) ([]*coupon.Reservation, error) {
	var reservations []*coupon.Reservation
	query := `SELECT * FROM coupon_reservations WHERE quote_id = $1 AND status = $2`

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &reservations, query, quoteID, types.ReservationStatusReserved)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list coupon reservations").
			Mark(ierr.ErrDatabase)
	}
	return reservations, nil
}

func (r *couponRepository) ListExpiredReservations(ctx context.Context, before time.Time) ([]*coupon.Reservation, error) {
	var reservations []*coupon.Reservation
	query := `SELECT * FROM coupon_reservations WHERE status = $1 AND expires_at <= $2`

	err := r.db.GetQuerier(ctx).SelectContext(ctx, &reservations, query, types.ReservationStatusReserved, before)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list expired coupon reservations").
			Mark(ierr.ErrDatabase)
	}
	return reservations, nil
}

// TransitionReservation is a conditional update on the current status, so the
// consume path and the expiry sweep can race without settling a hold twice.
func (r *couponRepository) TransitionReservation(ctx context.Context, id string, from, to types.CouponReservationStatus) (bool, error) {
	query := `
		UPDATE coupon_reservations
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`

	res, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to update coupon reservation").
			Mark(ierr.ErrDatabase)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to update coupon reservation").
			Mark(ierr.ErrDatabase)
	}
	return affected == 1, nil
}
