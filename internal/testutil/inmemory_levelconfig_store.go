package testutil

import (
	"context"

	"github.com/minimall/minimall/internal/domain/levelconfig"
	ierr "github.com/minimall/minimall/internal/errors"
)

// InMemoryLevelConfigStore implements levelconfig.Repository
type InMemoryLevelConfigStore struct {
	*InMemoryStore[*levelconfig.Config]
}

// NewInMemoryLevelConfigStore creates a new in-memory level config store
func NewInMemoryLevelConfigStore() *InMemoryLevelConfigStore {
	return &InMemoryLevelConfigStore{
		InMemoryStore: NewInMemoryStore[*levelconfig.Config](),
	}
}

func copyLevelConfig(cfg *levelconfig.Config) *levelconfig.Config {
	if cfg == nil {
		return nil
	}
	copied := *cfg
	copied.TierRates = append([]levelconfig.TierRate(nil), cfg.TierRates...)
	return &copied
}

func (s *InMemoryLevelConfigStore) Create(ctx context.Context, cfg *levelconfig.Config) error {
	if cfg == nil {
		return ierr.NewError("level config cannot be nil").
			WithHint("Level config cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, cfg.ID, copyLevelConfig(cfg))
}

func (s *InMemoryLevelConfigStore) GetByLevel(ctx context.Context, level int) (*levelconfig.Config, error) {
	configs, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, cfg *levelconfig.Config, _ interface{}) bool {
		return cfg.Level == level
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, ierr.NewError("level config not found").
			WithHint("Distributor level config not found").
			WithReportableDetails(map[string]interface{}{"level": level}).
			Mark(ierr.ErrNotFound)
	}
	return copyLevelConfig(configs[0]), nil
}

func (s *InMemoryLevelConfigStore) List(ctx context.Context) ([]*levelconfig.Config, error) {
	configs, err := s.InMemoryStore.List(ctx, nil, nil, func(i, j *levelconfig.Config) bool {
		return i.Level < j.Level
	})
	if err != nil {
		return nil, err
	}

	result := make([]*levelconfig.Config, 0, len(configs))
	for _, cfg := range configs {
		result = append(result, copyLevelConfig(cfg))
	}
	return result, nil
}

func (s *InMemoryLevelConfigStore) Update(ctx context.Context, cfg *levelconfig.Config) error {
	if cfg == nil {
		return ierr.NewError("level config cannot be nil").
			WithHint("Level config cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, cfg.ID, copyLevelConfig(cfg))
}
