package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/minimall/minimall/internal/domain/coupon"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/testutil"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/suite"
)

type CouponLedgerSuite struct {
	testutil.BaseServiceTestSuite
	ledger CouponLedgerService
	params ServiceParams
}

func TestCouponLedger(t *testing.T) {
	suite.Run(t, new(CouponLedgerSuite))
}

func (s *CouponLedgerSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
	s.ledger = NewCouponLedgerService(s.params)
}

func (s *CouponLedgerSuite) seedCoupon(c *coupon.Coupon) {
	if c.BaseModel.Status == "" {
		c.BaseModel = types.GetDefaultBaseModel(s.GetContext())
	}
	s.NoError(s.params.CouponRepo.Create(s.GetContext(), c))
}

func (s *CouponLedgerSuite) validWindow() (time.Time, time.Time) {
	now := time.Now().UTC()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

func (s *CouponLedgerSuite) usedCount(couponID string) int {
	c, err := s.params.CouponRepo.Get(s.GetContext(), couponID)
	s.NoError(err)
	return c.UsedCount
}

func (s *CouponLedgerSuite) TestReserveFixedCoupon() {
	from, to := s.validWindow()
	s.seedCoupon(&coupon.Coupon{
		ID:           "coupon-1",
		Code:         "TEN",
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(10),
		TotalCount:   5,
		ValidFrom:    from,
		ValidTo:      to,
	})

	res, err := s.ledger.Reserve(s.GetContext(), "quote-1", "coupon-1", decimal.NewFromInt(100))
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(10)))
	s.Equal("quote-1", res.QuoteID)
	s.Equal(1, s.usedCount("coupon-1"))
}

func (s *CouponLedgerSuite) TestReserveExpiredCoupon() {
	now := time.Now().UTC()
	s.seedCoupon(&coupon.Coupon{
		ID:           "coupon-old",
		Code:         "OLD",
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(10),
		TotalCount:   5,
		ValidFrom:    now.Add(-48 * time.Hour),
		ValidTo:      now.Add(-24 * time.Hour),
	})

	_, err := s.ledger.Reserve(s.GetContext(), "quote-1", "coupon-old", decimal.NewFromInt(100))
	s.Error(err)
	s.True(ierr.IsCouponExpired(err))
}

func (s *CouponLedgerSuite) TestReserveBelowMinAmount() {
	from, to := s.validWindow()
	s.seedCoupon(&coupon.Coupon{
		ID:             "coupon-min",
		Code:           "MIN",
		DiscountType:   types.CouponDiscountTypeFixed,
		Value:          decimal.NewFromInt(10),
		MinOrderAmount: decimal.NewFromInt(500),
		TotalCount:     5,
		ValidFrom:      from,
		ValidTo:        to,
	})

	_, err := s.ledger.Reserve(s.GetContext(), "quote-1", "coupon-min", decimal.NewFromInt(100))
	s.Error(err)
	s.True(ierr.IsMinAmountNotMet(err))
}

func (s *CouponLedgerSuite) TestReserveUnknownCoupon() {
	_, err := s.ledger.Reserve(s.GetContext(), "quote-1", "coupon-missing", decimal.NewFromInt(100))
	s.Error(err)
	s.True(ierr.IsCouponInvalid(err))
}

func (s *CouponLedgerSuite) TestPercentageCouponCappedDiscount() {
	from, to := s.validWindow()
	s.seedCoupon(&coupon.Coupon{
		ID:           "coupon-pct",
		Code:         "PCT",
		DiscountType: types.CouponDiscountTypePercentage,
		Value:        decimal.NewFromFloat(0.2),
		TotalCount:   5,
		ValidFrom:    from,
		ValidTo:      to,
	})

	s.params.Config.Pricing.MaxPercentageCouponDiscount = decimal.NewFromInt(15)

	res, err := s.ledger.Reserve(s.GetContext(), "quote-1", "coupon-pct", decimal.NewFromInt(100))
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(15)))
}

// Concurrent reservations against a coupon with totalCount = N must never
// succeed more than N times.
func (s *CouponLedgerSuite) TestConcurrentReservationsRespectStock() {
	from, to := s.validWindow()
	const totalCount = 10
	const attempts = 100

	s.seedCoupon(&coupon.Coupon{
		ID:           "coupon-hot",
		Code:         "HOT",
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(5),
		TotalCount:   totalCount,
		ValidFrom:    from,
		ValidTo:      to,
	})

	var succeeded atomic.Int64
	var wg conc.WaitGroup
	for i := 0; i < attempts; i++ {
		quoteID := fmt.Sprintf("quote-%d", i)
		wg.Go(func() {
			if _, err := s.ledger.Reserve(s.GetContext(), quoteID, "coupon-hot", decimal.NewFromInt(100)); err == nil {
				succeeded.Add(1)
			}
		})
	}
	wg.Wait()

	s.Equal(int64(totalCount), succeeded.Load())
	s.Equal(totalCount, s.usedCount("coupon-hot"))
}

// Pricing the same quote twice, as happens when an order is created from a
// previewed quote, must reuse the existing hold rather than consume a second
// unit of stock.
func (s *CouponLedgerSuite) TestReserveReusesHoldForSameQuote() {
	from, to := s.validWindow()
	s.seedCoupon(&coupon.Coupon{
		ID:           "coupon-once",
		Code:         "ONCE",
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(10),
		TotalCount:   1,
		ValidFrom:    from,
		ValidTo:      to,
	})

	first, err := s.ledger.Reserve(s.GetContext(), "quote-1", "coupon-once", decimal.NewFromInt(100))
	s.NoError(err)

	second, err := s.ledger.Reserve(s.GetContext(), "quote-1", "coupon-once", decimal.NewFromInt(100))
	s.NoError(err)
	s.True(first.Discount.Equal(second.Discount))
	s.Equal(1, s.usedCount("coupon-once"))
}

func (s *CouponLedgerSuite) TestReleaseQuoteReturnsStock() {
	from, to := s.validWindow()
	s.seedCoupon(&coupon.Coupon{
		ID:           "coupon-rel",
		Code:         "REL",
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(5),
		TotalCount:   5,
		ValidFrom:    from,
		ValidTo:      to,
	})

	_, err := s.ledger.Reserve(s.GetContext(), "quote-1", "coupon-rel", decimal.NewFromInt(100))
	s.NoError(err)
	s.Equal(1, s.usedCount("coupon-rel"))

	s.NoError(s.ledger.ReleaseQuote(s.GetContext(), "quote-1"))
	s.Equal(0, s.usedCount("coupon-rel"))

	// releasing again is a no-op; the counter never goes negative
	s.NoError(s.ledger.ReleaseQuote(s.GetContext(), "quote-1"))
	s.Equal(0, s.usedCount("coupon-rel"))
}

// An abandoned quote must not keep coupon stock forever: once its TTL passes,
// the sweep returns the unit and a later buyer can redeem the coupon.
func (s *CouponLedgerSuite) TestExpiredHoldIsReclaimed() {
	from, to := s.validWindow()
	s.seedCoupon(&coupon.Coupon{
		ID:           "coupon-last",
		Code:         "LAST",
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(10),
		TotalCount:   1,
		ValidFrom:    from,
		ValidTo:      to,
	})

	s.params.Config.Pricing.ReservationTTL = -time.Minute

	_, err := s.ledger.Reserve(s.GetContext(), "quote-abandoned", "coupon-last", decimal.NewFromInt(100))
	s.NoError(err)
	s.Equal(1, s.usedCount("coupon-last"))

	released, err := s.ledger.ReleaseExpired(s.GetContext())
	s.NoError(err)
	s.Equal(1, released)
	s.Equal(0, s.usedCount("coupon-last"))

	s.params.Config.Pricing.ReservationTTL = 15 * time.Minute
	res, err := s.ledger.Reserve(s.GetContext(), "quote-real", "coupon-last", decimal.NewFromInt(100))
	s.NoError(err)
	s.True(res.Discount.Equal(decimal.NewFromInt(10)))
}

// Holds consumed by an order survive the expiry sweep; only unconfirmed
// quotes give their stock back.
func (s *CouponLedgerSuite) TestCommittedHoldIsNotReclaimed() {
	from, to := s.validWindow()
	s.seedCoupon(&coupon.Coupon{
		ID:           "coupon-keep",
		Code:         "KEEP",
		DiscountType: types.CouponDiscountTypeFixed,
		Value:        decimal.NewFromInt(10),
		TotalCount:   5,
		ValidFrom:    from,
		ValidTo:      to,
	})

	s.params.Config.Pricing.ReservationTTL = -time.Minute

	_, err := s.ledger.Reserve(s.GetContext(), "quote-1", "coupon-keep", decimal.NewFromInt(100))
	s.NoError(err)
	s.NoError(s.ledger.Commit(s.GetContext(), "quote-1"))

	released, err := s.ledger.ReleaseExpired(s.GetContext())
	s.NoError(err)
	s.Equal(0, released)
	s.Equal(1, s.usedCount("coupon-keep"))
}
