package promotion

import (
	"context"
)

// Repository defines the interface for promotion data access
type Repository interface {
	Create(ctx context.Context, promotion *Promotion) error
	Get(ctx context.Context, id string) (*Promotion, error)
	Update(ctx context.Context, promotion *Promotion) error
	List(ctx context.Context) ([]*Promotion, error)
	ListActive(ctx context.Context) ([]*Promotion, error)
}
