package service

import (
	"testing"
	"time"

	"github.com/minimall/minimall/internal/domain/levelconfig"
	"github.com/minimall/minimall/internal/domain/member"
	"github.com/minimall/minimall/internal/domain/order"
	"github.com/minimall/minimall/internal/testutil"
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CommissionServiceSuite struct {
	testutil.BaseServiceTestSuite
	commissionSvc CommissionService
	params        ServiceParams
}

func TestCommissionService(t *testing.T) {
	suite.Run(t, new(CommissionServiceSuite))
}

func (s *CommissionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
	s.commissionSvc = NewCommissionService(s.params, NewCommissionConfigService(s.params))
}

func (s *CommissionServiceSuite) seedMember(id string, referrerID *string, distributorLevel int, active bool) {
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:               id,
		Name:             id,
		ReferrerID:       referrerID,
		DistributorLevel: distributorLevel,
		MemberLevel:      1,
		Active:           active,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *CommissionServiceSuite) seedLevelConfig(level int, rates ...levelconfig.TierRate) {
	s.NoError(s.params.LevelConfigRepo.Create(s.GetContext(), &levelconfig.Config{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LEVEL_CONFIG),
		Level:     level,
		TierRates: rates,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *CommissionServiceSuite) newOrder(memberID string, finalPrice int64) *order.Order {
	return &order.Order{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		OrderNo:    types.GenerateOrderNo("20260831"),
		MemberID:   memberID,
		FinalPrice: decimal.NewFromInt(finalPrice),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
}

func ref(s string) *string { return &s }

func (s *CommissionServiceSuite) TestSingleQualifyingTier() {
	// m2 referred m1 referred the buyer; only m1's level qualifies (tier 1)
	s.seedMember("m2", nil, 0, true)
	s.seedMember("m1", ref("m2"), 1, true)
	s.seedMember("buyer", ref("m1"), 0, true)
	s.seedLevelConfig(1, levelconfig.TierRate{TierDepth: 1, Rate: decimal.NewFromFloat(0.05)})

	result, err := s.commissionSvc.Distribute(s.GetContext(), s.newOrder("buyer", 100))
	s.NoError(err)

	s.Equal(1, result.CreatedCount)
	s.Require().Len(result.Records, 1)
	rec := result.Records[0]
	s.Equal("m1", rec.BeneficiaryMemberID)
	s.Equal(1, rec.TierDepth)
	s.True(rec.Amount.Equal(decimal.NewFromInt(5)))
}

func (s *CommissionServiceSuite) TestDistributeIsIdempotent() {
	s.seedMember("m1", nil, 1, true)
	s.seedMember("buyer", ref("m1"), 0, true)
	s.seedLevelConfig(1, levelconfig.TierRate{TierDepth: 1, Rate: decimal.NewFromFloat(0.05)})

	o := s.newOrder("buyer", 100)

	first, err := s.commissionSvc.Distribute(s.GetContext(), o)
	s.NoError(err)
	s.Equal(1, first.CreatedCount)

	second, err := s.commissionSvc.Distribute(s.GetContext(), o)
	s.NoError(err)
	s.Equal(0, second.CreatedCount)

	records, err := s.params.CommissionRepo.ListByOrder(s.GetContext(), o.ID)
	s.NoError(err)
	s.Len(records, 1)
}

func (s *CommissionServiceSuite) TestNoReferrer() {
	s.seedMember("buyer", nil, 0, true)

	result, err := s.commissionSvc.Distribute(s.GetContext(), s.newOrder("buyer", 100))
	s.NoError(err)
	s.Equal(0, result.CreatedCount)
	s.Empty(result.Records)
}

func (s *CommissionServiceSuite) TestReferrerCycleTerminates() {
	// a -> b -> a: traversal must stop at the repeated member, keeping the
	// record created before the cycle was detected
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:               "a",
		Name:             "a",
		ReferrerID:       ref("b"),
		DistributorLevel: 1,
		MemberLevel:      1,
		Active:           true,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:               "b",
		Name:             "b",
		ReferrerID:       ref("a"),
		DistributorLevel: 1,
		MemberLevel:      1,
		Active:           true,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.seedLevelConfig(1,
		levelconfig.TierRate{TierDepth: 1, Rate: decimal.NewFromFloat(0.05)},
		levelconfig.TierRate{TierDepth: 2, Rate: decimal.NewFromFloat(0.03)},
	)

	result, err := s.commissionSvc.Distribute(s.GetContext(), s.newOrder("a", 100))
	s.NoError(err)

	// b gets tier 1; the walk then reaches a again and aborts
	s.Equal(1, result.CreatedCount)
	s.Require().Len(result.Records, 1)
	s.Equal("b", result.Records[0].BeneficiaryMemberID)
}

func (s *CommissionServiceSuite) TestStaleReferrerExcluded() {
	stale := time.Now().UTC().Add(-40 * 24 * time.Hour)
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:               "m1",
		Name:             "m1",
		DistributorLevel: 1,
		MemberLevel:      1,
		LastActiveAt:     &stale,
		Active:           false,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}))
	s.seedMember("buyer", ref("m1"), 0, true)
	s.seedLevelConfig(1, levelconfig.TierRate{TierDepth: 1, Rate: decimal.NewFromFloat(0.05)})

	settings := types.GetDefaultSystemSettings()
	settings.ActiveMemberCheckEnabled = true
	settings.ActiveMemberCheckDays = 30
	s.NoError(s.params.SettingsRepo.Update(s.GetContext(), settings))

	result, err := s.commissionSvc.Distribute(s.GetContext(), s.newOrder("buyer", 100))
	s.NoError(err)
	s.Equal(0, result.CreatedCount)
}

func (s *CommissionServiceSuite) TestInactiveReferrerStillPaidWhenCheckDisabled() {
	s.seedMember("m1", nil, 1, false)
	s.seedMember("buyer", ref("m1"), 0, true)
	s.seedLevelConfig(1, levelconfig.TierRate{TierDepth: 1, Rate: decimal.NewFromFloat(0.05)})

	result, err := s.commissionSvc.Distribute(s.GetContext(), s.newOrder("buyer", 100))
	s.NoError(err)
	s.Equal(1, result.CreatedCount)
}

func (s *CommissionServiceSuite) TestMinMemberLevelGate() {
	s.seedMember("m1", nil, 1, true) // member level 1
	s.seedMember("buyer", ref("m1"), 0, true)
	s.seedLevelConfig(1, levelconfig.TierRate{
		TierDepth:      1,
		Rate:           decimal.NewFromFloat(0.05),
		MinMemberLevel: 5,
	})

	result, err := s.commissionSvc.Distribute(s.GetContext(), s.newOrder("buyer", 100))
	s.NoError(err)
	s.Equal(0, result.CreatedCount)
}

func (s *CommissionServiceSuite) TestDepthCapStopsTraversal() {
	// chain of 5 qualifying ancestors but MaxTierDepth is 3
	s.seedMember("m5", nil, 1, true)
	s.seedMember("m4", ref("m5"), 1, true)
	s.seedMember("m3", ref("m4"), 1, true)
	s.seedMember("m2", ref("m3"), 1, true)
	s.seedMember("m1", ref("m2"), 1, true)
	s.seedMember("buyer", ref("m1"), 0, true)
	s.seedLevelConfig(1,
		levelconfig.TierRate{TierDepth: 1, Rate: decimal.NewFromFloat(0.05)},
		levelconfig.TierRate{TierDepth: 2, Rate: decimal.NewFromFloat(0.03)},
		levelconfig.TierRate{TierDepth: 3, Rate: decimal.NewFromFloat(0.01)},
	)

	result, err := s.commissionSvc.Distribute(s.GetContext(), s.newOrder("buyer", 100))
	s.NoError(err)
	s.Equal(3, result.CreatedCount)
}
