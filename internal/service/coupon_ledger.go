package service

import (
	"context"
	"time"

	"github.com/minimall/minimall/internal/domain/coupon"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
)

// CouponReservation is a successful hold on one unit of coupon stock together
// with the discount it yields for the quoted amount.
type CouponReservation struct {
	CouponID string
	QuoteID  string
	Discount decimal.Decimal
}

// CouponLedgerService guards coupon stock. Every hold is keyed by the quote
// that took it: the order created from that quote consumes the hold instead of
// taking a second unit, an explicit release or a hard quote failure hands it
// back, and holds of abandoned quotes are reclaimed once their TTL passes.
type CouponLedgerService interface {
	Reserve(ctx context.Context, quoteID, couponID string, orderAmount decimal.Decimal) (*CouponReservation, error)
	// Commit marks the quote's holds as consumed so the expiry sweep leaves
	// them alone. Called once the order is durable.
	Commit(ctx context.Context, quoteID string) error
	// ReleaseQuote hands back every live hold of a quote and returns the stock
	ReleaseQuote(ctx context.Context, quoteID string) error
	// ReleaseExpired reclaims stock held by quotes that were never confirmed.
	// It returns how many holds were released.
	ReleaseExpired(ctx context.Context) (int, error)
}

type couponLedgerService struct {
	ServiceParams
}

func NewCouponLedgerService(params ServiceParams) CouponLedgerService {
	return &couponLedgerService{ServiceParams: params}
}

func (s *couponLedgerService) Reserve(ctx context.Context, quoteID, couponID string, orderAmount decimal.Decimal) (*CouponReservation, error) {
	c, err := s.CouponRepo.Get(ctx, couponID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Coupon does not exist").
				WithReportableDetails(map[string]any{"coupon_id": couponID}).
				Mark(ierr.ErrCouponInvalid)
		}
		return nil, err
	}

	if c.Status != types.StatusActive {
		return nil, ierr.NewError("coupon is not active").
			WithHint("Coupon is not active").
			WithReportableDetails(map[string]any{"coupon_id": couponID}).
			Mark(ierr.ErrCouponInvalid)
	}

	now := time.Now().UTC()
	if !c.IsWithinWindow(now) {
		return nil, ierr.NewError("coupon outside validity window").
			WithHint("Coupon is expired or not yet valid").
			WithReportableDetails(map[string]any{
				"coupon_id":  couponID,
				"valid_from": c.ValidFrom,
				"valid_to":   c.ValidTo,
			}).
			Mark(ierr.ErrCouponExpired)
	}

	if orderAmount.LessThan(c.MinOrderAmount) {
		return nil, ierr.NewError("order amount below coupon minimum").
			WithHint("Order amount does not meet the coupon minimum").
			WithReportableDetails(map[string]any{
				"coupon_id":        couponID,
				"min_order_amount": c.MinOrderAmount,
				"order_amount":     orderAmount,
			}).
			Mark(ierr.ErrMinAmountNotMet)
	}

	discount := c.CalculateDiscount(orderAmount, s.Config.Pricing.MaxPercentageCouponDiscount)

	// An order created from an earlier quote re-prices with the same quote id;
	// reuse that quote's hold instead of consuming a second unit.
	if _, err := s.CouponRepo.GetActiveReservation(ctx, quoteID, couponID); err == nil {
		s.Logger.Debugw("reusing coupon hold",
			"coupon_id", couponID,
			"quote_id", quoteID,
		)
		return &CouponReservation{
			CouponID: couponID,
			QuoteID:  quoteID,
			Discount: discount,
		}, nil
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	reserved, err := s.CouponRepo.ReserveUsage(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, ierr.NewError("coupon stock exhausted").
			WithHint("Coupon has no redemptions left").
			WithReportableDetails(map[string]any{"coupon_id": couponID}).
			Mark(ierr.ErrCouponExhausted)
	}

	hold := &coupon.Reservation{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COUPON_RESERVATION),
		CouponID:  couponID,
		QuoteID:   quoteID,
		Status:    types.ReservationStatusReserved,
		ExpiresAt: now.Add(s.Config.Pricing.ReservationTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CouponRepo.CreateReservation(ctx, hold); err != nil {
		// the increment must not outlive a hold we failed to record
		if relErr := s.CouponRepo.ReleaseUsage(ctx, couponID); relErr != nil {
			s.Logger.Errorw("failed to release unrecorded coupon hold",
				"coupon_id", couponID,
				"quote_id", quoteID,
				"error", relErr,
			)
		}
		return nil, err
	}

	s.Logger.Debugw("reserved coupon usage",
		"coupon_id", couponID,
		"quote_id", quoteID,
		"order_amount", orderAmount,
		"discount", discount,
		"expires_at", hold.ExpiresAt,
	)

	return &CouponReservation{
		CouponID: couponID,
		QuoteID:  quoteID,
		Discount: discount,
	}, nil
}

func (s *couponLedgerService) Commit(ctx context.Context, quoteID string) error {
	holds, err := s.CouponRepo.ListActiveReservationsByQuote(ctx, quoteID)
	if err != nil {
		return err
	}

	for _, hold := range holds {
		ok, err := s.CouponRepo.TransitionReservation(ctx, hold.ID,
			types.ReservationStatusReserved, types.ReservationStatusConsumed)
		if err != nil {
			return err
		}
		if !ok {
			s.Logger.Warnw("coupon hold already settled before commit",
				"reservation_id", hold.ID,
				"coupon_id", hold.CouponID,
				"quote_id", quoteID,
			)
		}
	}
	return nil
}

func (s *couponLedgerService) ReleaseQuote(ctx context.Context, quoteID string) error {
	holds, err := s.CouponRepo.ListActiveReservationsByQuote(ctx, quoteID)
	if err != nil {
		return err
	}

	for _, hold := range holds {
		ok, err := s.CouponRepo.TransitionReservation(ctx, hold.ID,
			types.ReservationStatusReserved, types.ReservationStatusReleased)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := s.CouponRepo.ReleaseUsage(ctx, hold.CouponID); err != nil {
			return err
		}
		s.Logger.Debugw("released coupon usage",
			"coupon_id", hold.CouponID,
			"quote_id", quoteID,
		)
	}
	return nil
}

func (s *couponLedgerService) ReleaseExpired(ctx context.Context) (int, error) {
	expired, err := s.CouponRepo.ListExpiredReservations(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	released := 0
	for _, hold := range expired {
		ok, err := s.CouponRepo.TransitionReservation(ctx, hold.ID,
			types.ReservationStatusReserved, types.ReservationStatusReleased)
		if err != nil {
			s.Logger.Errorw("failed to expire coupon hold",
				"reservation_id", hold.ID,
				"coupon_id", hold.CouponID,
				"error", err,
			)
			continue
		}
		if !ok {
			continue
		}
		if err := s.CouponRepo.ReleaseUsage(ctx, hold.CouponID); err != nil {
			s.Logger.Errorw("failed to return expired coupon stock",
				"reservation_id", hold.ID,
				"coupon_id", hold.CouponID,
				"error", err,
			)
			continue
		}
		released++
	}
	return released, nil
}
