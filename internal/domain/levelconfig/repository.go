package levelconfig

import (
	"context"
)

// Repository defines the interface for distributor level config data access
type Repository interface {
	Create(ctx context.Context, config *Config) error
	GetByLevel(ctx context.Context, level int) (*Config, error)
	List(ctx context.Context) ([]*Config, error)
	Update(ctx context.Context, config *Config) error
}
