package service

import (
	"testing"
	"time"

	"github.com/minimall/minimall/internal/domain/coupon"
	"github.com/minimall/minimall/internal/testutil"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReservationReaperSuite struct {
	testutil.BaseServiceTestSuite
	reaper *ReservationReaper
	ledger CouponLedgerService
	params ServiceParams
}

func TestReservationReaper(t *testing.T) {
	suite.Run(t, new(ReservationReaperSuite))
}

func (s *ReservationReaperSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
	s.ledger = NewCouponLedgerService(s.params)
	s.reaper = NewReservationReaper(s.params, s.ledger)
}

func (s *ReservationReaperSuite) TestSweepReturnsAbandonedStock() {
	now := time.Now().UTC()
	s.NoError(s.params.CouponRepo.Create(s.GetContext(), &coupon.Coupon{
		ID:           "coupon-1",
		Code:         "SWEEP",
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(10),
		TotalCount:   1,
		ValidFrom:    now.Add(-time.Hour),
		ValidTo:      now.Add(time.Hour),
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))

	s.params.Config.Pricing.ReservationTTL = -time.Minute
	_, err := s.ledger.Reserve(s.GetContext(), "quote-stale", "coupon-1", decimal.NewFromInt(100))
	s.NoError(err)

	s.reaper.SweepOnce(s.GetContext())

	c, err := s.params.CouponRepo.Get(s.GetContext(), "coupon-1")
	s.NoError(err)
	s.Equal(0, c.UsedCount)

	// a second sweep finds nothing left to reclaim
	s.reaper.SweepOnce(s.GetContext())
	c, err = s.params.CouponRepo.Get(s.GetContext(), "coupon-1")
	s.NoError(err)
	s.Equal(0, c.UsedCount)
}
