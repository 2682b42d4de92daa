package service

import (
	"context"

	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/cache"
	"github.com/minimall/minimall/internal/types"
)

// SettingsService reads and updates the process-wide system settings
type SettingsService interface {
	GetSettings(ctx context.Context) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	ServiceParams
}

func NewSettingsService(params ServiceParams) SettingsService {
	return &settingsService{ServiceParams: params}
}

func (s *settingsService) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	key := cache.GenerateKey(cache.PrefixSettings, "system")
	if cached, found := s.Cache.Get(ctx, key); found {
		if settings, ok := cached.(types.SystemSettings); ok {
			return &dto.SettingsResponse{SystemSettings: settings}, nil
		}
	}

	settings, err := s.SettingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, settings, cache.DefaultExpiration)
	return &dto.SettingsResponse{SystemSettings: settings}, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	settings := req.ToSystemSettings()
	if err := s.SettingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixSettings)

	s.Logger.Infow("updated system settings",
		"active_member_check_enabled", settings.ActiveMemberCheckEnabled,
		"active_member_check_days", settings.ActiveMemberCheckDays,
		"active_member_condition", settings.ActiveMemberCondition,
		"active_member_check_interval_hours", settings.ActiveMemberCheckIntervalHours,
	)
	return &dto.SettingsResponse{SystemSettings: settings}, nil
}
