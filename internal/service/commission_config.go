package service

import (
	"context"

	"github.com/minimall/minimall/internal/api/dto"
	"github.com/minimall/minimall/internal/cache"
	"github.com/minimall/minimall/internal/domain/levelconfig"
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/samber/lo"
)

// CommissionConfigService resolves per-tier commission rates for distributor
// levels. Reads are served from cache; the ladder changes rarely.
type CommissionConfigService interface {
	// RateFor returns the tier rate entry for the given distributor level and
	// tier depth, or nil when the level does not qualify at that depth. A nil
	// result is a non-event, not an error.
	RateFor(ctx context.Context, distributorLevel int, tierDepth int) (*levelconfig.TierRate, error)

	CreateLevelConfig(ctx context.Context, cfg *levelconfig.Config) (*levelconfig.Config, error)
	ListLevelConfigs(ctx context.Context) (*dto.ListLevelConfigsResponse, error)
}

type commissionConfigService struct {
	ServiceParams
}

func NewCommissionConfigService(params ServiceParams) CommissionConfigService {
	return &commissionConfigService{ServiceParams: params}
}

func (s *commissionConfigService) RateFor(ctx context.Context, distributorLevel int, tierDepth int) (*levelconfig.TierRate, error) {
	cfg, err := s.getConfig(ctx, distributorLevel)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return cfg.RateAt(tierDepth), nil
}

func (s *commissionConfigService) getConfig(ctx context.Context, level int) (*levelconfig.Config, error) {
	key := cache.GenerateKey(cache.PrefixLevelConfig, level)
	if cached, found := s.Cache.Get(ctx, key); found {
		if cfg, ok := cached.(*levelconfig.Config); ok {
			return cfg, nil
		}
	}

	cfg, err := s.LevelConfigRepo.GetByLevel(ctx, level)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, cfg, cache.DefaultExpiration)
	return cfg, nil
}

func (s *commissionConfigService) CreateLevelConfig(ctx context.Context, cfg *levelconfig.Config) (*levelconfig.Config, error) {
	if err := s.LevelConfigRepo.Create(ctx, cfg); err != nil {
		return nil, err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixLevelConfig)

	s.Logger.Infow("created distributor level config",
		"level", cfg.Level,
		"tiers", len(cfg.TierRates),
	)
	return cfg, nil
}

func (s *commissionConfigService) ListLevelConfigs(ctx context.Context) (*dto.ListLevelConfigsResponse, error) {
	configs, err := s.LevelConfigRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(configs, func(cfg *levelconfig.Config, _ int) *dto.LevelConfigResponse {
		return &dto.LevelConfigResponse{Config: cfg}
	})
	return &dto.ListLevelConfigsResponse{Items: items, Total: len(items)}, nil
}
