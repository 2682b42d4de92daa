package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/domain/order"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
)

// OrderService creates orders from quotes and exposes order reads
type OrderService interface {
	// CreateOrder prices the request, persists the order in a transaction and
	// then distributes commission. Commission failures never fail the order;
	// distribution is retried idempotently and the response reports how many
	// records were created.
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error)
	ListOrdersByMember(ctx context.Context, memberID string) ([]*dto.OrderResponse, error)
}

type orderService struct {
	ServiceParams
	pricingSvc    PricingService
	couponLedger  CouponLedgerService
	commissionSvc CommissionService
}

func NewOrderService(
	params ServiceParams,
	pricingSvc PricingService,
	couponLedger CouponLedgerService,
	commissionSvc CommissionService,
) OrderService {
	return &orderService{
		ServiceParams: params,
		pricingSvc:    pricingSvc,
		couponLedger:  couponLedger,
		commissionSvc: commissionSvc,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	quote, err := s.pricingSvc.Quote(ctx, &req.PricingRequest)
	if err != nil {
		return nil, err
	}

	o := s.buildOrder(ctx, req, quote)

	// The order consumes the quote's coupon holds in the same transaction that
	// makes it durable. If persistence fails the holds are handed back.
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.OrderRepo.Create(ctx, o); err != nil {
			return err
		}
		if err := s.MemberRepo.TouchLastOrderAt(ctx, o.MemberID); err != nil {
			return err
		}
		return s.couponLedger.Commit(ctx, quote.QuoteID)
	})
	if err != nil {
		if relErr := s.couponLedger.ReleaseQuote(ctx, quote.QuoteID); relErr != nil {
			s.Logger.Errorw("failed to release coupon holds of failed order",
				"quote_id", quote.QuoteID,
				"error", relErr,
			)
		}
		return nil, err
	}

	s.Logger.Infow("created order",
		"order_id", o.ID,
		"order_no", o.OrderNo,
		"member_id", o.MemberID,
		"final_price", o.FinalPrice,
	)

	commissionCreated := s.distributeWithRetry(ctx, o)

	return &dto.CreateOrderResponse{
		Order: dto.OrderSummary{
			ID:      o.ID,
			OrderNo: o.OrderNo,
		},
		CommissionCreated: commissionCreated,
		Pricing:           quote.Pricing,
	}, nil
}

func (s *orderService) buildOrder(ctx context.Context, req *dto.CreateOrderRequest, quote *dto.PricingResponse) *order.Order {
	orderID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER)
	base := types.GetDefaultBaseModel(ctx)

	lineItem := &order.LineItem{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER_LINE_ITEM),
		OrderID:   orderID,
		ProductID: req.ProductID,
		SkuID:     req.SkuID,
		Quantity:  req.Quantity,
		UnitPrice: quote.Pricing.OriginalAmount.Div(decimal.NewFromInt(int64(req.Quantity))),
		BaseModel: base,
	}

	return &order.Order{
		ID:             orderID,
		OrderNo:        types.GenerateOrderNo(time.Now().UTC().Format("20060102")),
		MemberID:       req.MemberID,
		OriginalAmount: quote.Pricing.OriginalAmount,
		FinalPrice:     quote.Pricing.FinalPrice,
		PointsUsed:     quote.Pricing.PointsUsed,
		CouponIDs:      quote.AppliedCoupons,
		PromotionIDs:   quote.AppliedPromotions,
		OrderStatus:    types.OrderStatusPending,
		LineItems:      []*order.LineItem{lineItem},
		BaseModel:      base,
	}
}

// distributeWithRetry runs commission distribution after the order is durable.
// Idempotent record creation makes blind retries safe. Exhausted retries leave
// a zero count; the order outcome is never blocked on commission.
func (s *orderService) distributeWithRetry(ctx context.Context, o *order.Order) int {
	var created int

	policy := backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(),
		uint64(s.Config.Commission.RetryAttempts-1),
	), ctx)

	err := backoff.Retry(func() error {
		result, err := s.commissionSvc.Distribute(ctx, o)
		if err != nil {
			s.Logger.Warnw("commission distribution attempt failed",
				"order_id", o.ID,
				"error", err,
			)
			return err
		}
		created = result.CreatedCount
		return nil
	}, policy)
	if err != nil {
		s.Logger.Errorw("commission distribution abandoned",
			"order_id", o.ID,
			"error", err,
		)
	}

	return created
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := s.OrderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.OrderResponse{Order: o}, nil
}

func (s *orderService) ListOrdersByMember(ctx context.Context, memberID string) ([]*dto.OrderResponse, error) {
	orders, err := s.OrderRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, &dto.OrderResponse{Order: o})
	}
	return result, nil
}
