package service

import (
	"testing"

	"github.com/minimall/minimall/internal/api/dto"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/testutil"
	"github.com/minimall/minimall/internal/types"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceSuite struct {
	testutil.BaseServiceTestSuite
	settingsSvc SettingsService
	params      ServiceParams
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceSuite))
}

func (s *SettingsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
	s.settingsSvc = NewSettingsService(s.params)
}

func (s *SettingsServiceSuite) TestGetReturnsDefaultsInitially() {
	resp, err := s.settingsSvc.GetSettings(s.GetContext())
	s.NoError(err)
	s.Equal(types.GetDefaultSystemSettings(), resp.SystemSettings)
}

func (s *SettingsServiceSuite) TestUpdateClampsOutOfRangeValues() {
	resp, err := s.settingsSvc.UpdateSettings(s.GetContext(), &dto.UpdateSettingsRequest{
		ActiveMemberCheckEnabled:       true,
		ActiveMemberCheckDays:          0,
		ActiveMemberCondition:          types.ActiveMemberConditionLastOrderAt,
		ActiveMemberCheckIntervalHours: 10000,
	})
	s.NoError(err)

	s.Equal(types.MinActiveMemberCheckDays, resp.ActiveMemberCheckDays)
	s.Equal(types.MaxActiveMemberCheckIntervalHours, resp.ActiveMemberCheckIntervalHours)
	s.True(resp.ActiveMemberCheckEnabled)
}

func (s *SettingsServiceSuite) TestUpdateRejectsUnknownCondition() {
	_, err := s.settingsSvc.UpdateSettings(s.GetContext(), &dto.UpdateSettingsRequest{
		ActiveMemberCondition: "lastLoginAt",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SettingsServiceSuite) TestUpdateInvalidatesCachedRead() {
	first, err := s.settingsSvc.GetSettings(s.GetContext())
	s.NoError(err)
	s.False(first.ActiveMemberCheckEnabled)

	_, err = s.settingsSvc.UpdateSettings(s.GetContext(), &dto.UpdateSettingsRequest{
		ActiveMemberCheckEnabled:       true,
		ActiveMemberCheckDays:          15,
		ActiveMemberCondition:          types.ActiveMemberConditionLastActiveAt,
		ActiveMemberCheckIntervalHours: 12,
	})
	s.NoError(err)

	second, err := s.settingsSvc.GetSettings(s.GetContext())
	s.NoError(err)
	s.True(second.ActiveMemberCheckEnabled)
	s.Equal(15, second.ActiveMemberCheckDays)
}
