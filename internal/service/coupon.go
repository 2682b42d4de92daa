package service

import (
	"context"

	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/domain/coupon"
	"github.com/samber/lo"
)

// CouponService administers coupons. Stock consumption is not here; it lives
// in the coupon ledger.
type CouponService interface {
	CreateCoupon(ctx context.Context, req *dto.CreateCouponRequest) (*dto.CouponResponse, error)
	GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error)
	ListCoupons(ctx context.Context) (*dto.ListCouponsResponse, error)
}

type couponService struct {
	ServiceParams
}

func NewCouponService(params ServiceParams) CouponService {
	return &couponService{ServiceParams: params}
}

func (s *couponService) CreateCoupon(ctx context.Context, req *dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToCoupon(ctx)
	if err := s.CouponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created coupon",
		"coupon_id", c.ID,
		"code", c.Code,
		"total_count", c.TotalCount,
	)
	return &dto.CouponResponse{Coupon: c}, nil
}

func (s *couponService) GetCoupon(ctx context.Context, id string) (*dto.CouponResponse, error) {
	c, err := s.CouponRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CouponResponse{Coupon: c}, nil
}

func (s *couponService) ListCoupons(ctx context.Context) (*dto.ListCouponsResponse, error) {
	coupons, err := s.CouponRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(coupons, func(c *coupon.Coupon, _ int) *dto.CouponResponse {
		return &dto.CouponResponse{Coupon: c}
	})
	return &dto.ListCouponsResponse{Items: items, Total: len(items)}, nil
}
