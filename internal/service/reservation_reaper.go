package service

import (
	"context"
	"time"
)

// ReservationReaper periodically returns coupon stock held by quotes that were
// never turned into orders. Expiry is the release path for abandoned quotes;
// orders consume their quote's holds before the TTL runs out.
type ReservationReaper struct {
	ServiceParams
	ledger CouponLedgerService
	stop   chan struct{}
	done   chan struct{}
}

func NewReservationReaper(params ServiceParams, ledger CouponLedgerService) *ReservationReaper {
	return &ReservationReaper{
		ServiceParams: params,
		ledger:        ledger,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Start launches the sweep loop
func (r *ReservationReaper) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop terminates the sweep loop and waits for it to exit
func (r *ReservationReaper) Stop() {
	close(r.stop)
	<-r.done
}

func (r *ReservationReaper) run(ctx context.Context) {
	defer close(r.done)

	interval := r.Config.Pricing.ReservationSweepInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.Logger.Infow("reservation reaper started", "interval", interval)

	for {
		select {
		case <-r.stop:
			r.Logger.Infow("reservation reaper stopped")
			return
		case <-ctx.Done():
			r.Logger.Infow("reservation reaper context cancelled")
			return
		case <-ticker.C:
			r.SweepOnce(ctx)
		}
	}
}

// SweepOnce reclaims every expired coupon hold once. A failed sweep is logged
// and retried on the next tick.
func (r *ReservationReaper) SweepOnce(ctx context.Context) {
	released, err := r.ledger.ReleaseExpired(ctx)
	if err != nil {
		r.Logger.Errorw("reservation sweep failed", "error", err)
		return
	}
	if released > 0 {
		r.Logger.Infow("reclaimed expired coupon holds", "released", released)
	}
}
