package service

import (
	"testing"
	"time"

	"github.com/minimall/minimall/internal/domain/member"
	"github.com/minimall/minimall/internal/testutil"
	"github.com/minimall/minimall/internal/types"
	"github.com/stretchr/testify/suite"
)

type MemberRefresherSuite struct {
	testutil.BaseServiceTestSuite
	refresher *MemberRefresher
	params    ServiceParams
}

func TestMemberRefresher(t *testing.T) {
	suite.Run(t, new(MemberRefresherSuite))
}

func (s *MemberRefresherSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
	s.refresher = NewMemberRefresher(s.params)
}

func (s *MemberRefresherSuite) seedMember(id string, lastActiveAt *time.Time, active bool) {
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:           id,
		Name:         id,
		LastActiveAt: lastActiveAt,
		Active:       active,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *MemberRefresherSuite) enableCheck(days int, condition types.ActiveMemberCondition) {
	settings := types.GetDefaultSystemSettings()
	settings.ActiveMemberCheckEnabled = true
	settings.ActiveMemberCheckDays = days
	settings.ActiveMemberCondition = condition
	s.NoError(s.params.SettingsRepo.Update(s.GetContext(), settings))
}

func (s *MemberRefresherSuite) TestRefreshAllFlagsStaleMembers() {
	fresh := time.Now().UTC().Add(-24 * time.Hour)
	stale := time.Now().UTC().Add(-40 * 24 * time.Hour)
	s.seedMember("fresh", &fresh, true)
	s.seedMember("stale", &stale, true)
	s.seedMember("never", nil, true)

	s.enableCheck(30, types.ActiveMemberConditionLastActiveAt)
	s.NoError(s.refresher.RefreshAll(s.GetContext()))

	m, err := s.params.MemberRepo.Get(s.GetContext(), "fresh")
	s.NoError(err)
	s.True(m.Active)

	m, err = s.params.MemberRepo.Get(s.GetContext(), "stale")
	s.NoError(err)
	s.False(m.Active)

	m, err = s.params.MemberRepo.Get(s.GetContext(), "never")
	s.NoError(err)
	s.False(m.Active)
}

func (s *MemberRefresherSuite) TestRefreshAllNoOpWhenDisabled() {
	stale := time.Now().UTC().Add(-40 * 24 * time.Hour)
	s.seedMember("stale", &stale, true)

	s.NoError(s.refresher.RefreshAll(s.GetContext()))

	m, err := s.params.MemberRepo.Get(s.GetContext(), "stale")
	s.NoError(err)
	s.True(m.Active)
}

func (s *MemberRefresherSuite) TestRefreshAllRevivesActiveMember() {
	recent := time.Now().UTC().Add(-time.Hour)
	s.seedMember("back", &recent, false)

	s.enableCheck(30, types.ActiveMemberConditionLastActiveAt)
	s.NoError(s.refresher.RefreshAll(s.GetContext()))

	m, err := s.params.MemberRepo.Get(s.GetContext(), "back")
	s.NoError(err)
	s.True(m.Active)
}

func (s *MemberRefresherSuite) TestLastOrderAtCondition() {
	ordered := time.Now().UTC().Add(-2 * 24 * time.Hour)
	s.NoError(s.params.MemberRepo.Create(s.GetContext(), &member.Member{
		ID:          "orderer",
		Name:        "orderer",
		LastOrderAt: &ordered,
		Active:      false,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}))

	s.enableCheck(30, types.ActiveMemberConditionLastOrderAt)
	s.NoError(s.refresher.RefreshAll(s.GetContext()))

	m, err := s.params.MemberRepo.Get(s.GetContext(), "orderer")
	s.NoError(err)
	s.True(m.Active)
}
