package service

import (
	"context"

	"github.com/minimall/minimall/internal/domain/commission"
	"github.com/minimall/minimall/internal/domain/order"
	"github.com/minimall/minimall/internal/types"
)

// DistributeResult reports the outcome of one distribution run. CreatedCount
// zero is a normal outcome, not an error.
type DistributeResult struct {
	CreatedCount int
	Records      []*commission.Record
}

// CommissionService distributes multi-tier commission along the referral chain
// of an order's buyer.
type CommissionService interface {
	Distribute(ctx context.Context, o *order.Order) (*DistributeResult, error)
	ListByOrder(ctx context.Context, orderID string) ([]*commission.Record, error)
	ListByBeneficiary(ctx context.Context, memberID string) ([]*commission.Record, error)
}

type commissionService struct {
	ServiceParams
	configSvc CommissionConfigService
}

func NewCommissionService(params ServiceParams, configSvc CommissionConfigService) CommissionService {
	return &commissionService{
		ServiceParams: params,
		configSvc:     configSvc,
	}
}

// Distribute walks the referrerId chain upward from the buyer with an explicit
// visited set and a hard depth cap. A cycle aborts further traversal but keeps
// the records already created; inactive or non-qualifying ancestors are
// skipped without consuming the record budget of deeper tiers.
func (s *commissionService) Distribute(ctx context.Context, o *order.Order) (*DistributeResult, error) {
	result := &DistributeResult{Records: []*commission.Record{}}

	settings, err := s.SettingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	buyer, err := s.MemberRepo.Get(ctx, o.MemberID)
	if err != nil {
		return nil, err
	}

	visited := map[string]struct{}{buyer.ID: {}}
	current := buyer.ReferrerID

	for depth := 1; depth <= s.Config.Commission.MaxTierDepth && current != nil; depth++ {
		ancestorID := *current
		if _, seen := visited[ancestorID]; seen {
			s.Logger.Warnw("referrer cycle detected, aborting traversal",
				"order_id", o.ID,
				"member_id", ancestorID,
				"tier_depth", depth,
			)
			break
		}
		visited[ancestorID] = struct{}{}

		ancestor, err := s.MemberRepo.Get(ctx, ancestorID)
		if err != nil {
			s.Logger.Warnw("referrer not found, aborting traversal",
				"order_id", o.ID,
				"member_id", ancestorID,
				"tier_depth", depth,
			)
			break
		}
		current = ancestor.ReferrerID

		if settings.ActiveMemberCheckEnabled && !ancestor.Active {
			s.Logger.Debugw("skipping inactive referrer",
				"order_id", o.ID,
				"member_id", ancestor.ID,
				"tier_depth", depth,
			)
			continue
		}

		tierRate, err := s.configSvc.RateFor(ctx, ancestor.DistributorLevel, depth)
		if err != nil {
			return nil, err
		}
		if tierRate == nil || ancestor.MemberLevel < tierRate.MinMemberLevel {
			s.Logger.Debugw("skipping non-qualifying referrer",
				"order_id", o.ID,
				"member_id", ancestor.ID,
				"distributor_level", ancestor.DistributorLevel,
				"tier_depth", depth,
			)
			continue
		}

		rec := &commission.Record{
			ID:                  types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMMISSION_RECORD),
			OrderID:             o.ID,
			BeneficiaryMemberID: ancestor.ID,
			TierDepth:           depth,
			Rate:                tierRate.Rate,
			Amount:              o.FinalPrice.Mul(tierRate.Rate),
			CommissionStatus:    types.CommissionStatusPending,
			BaseModel:           types.GetDefaultBaseModel(ctx),
		}

		created, err := s.CommissionRepo.CreateIdempotent(ctx, rec)
		if err != nil {
			return nil, err
		}
		if created {
			result.CreatedCount++
			result.Records = append(result.Records, rec)

			s.Logger.Infow("created commission record",
				"order_id", o.ID,
				"beneficiary_member_id", ancestor.ID,
				"tier_depth", depth,
				"amount", rec.Amount,
			)
		}
	}

	return result, nil
}

func (s *commissionService) ListByOrder(ctx context.Context, orderID string) ([]*commission.Record, error) {
	return s.CommissionRepo.ListByOrder(ctx, orderID)
}

func (s *commissionService) ListByBeneficiary(ctx context.Context, memberID string) ([]*commission.Record, error) {
	return s.CommissionRepo.ListByBeneficiary(ctx, memberID)
}
