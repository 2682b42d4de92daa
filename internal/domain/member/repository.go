package member

import (
	"context"
)

// Repository defines the interface for member data access
type Repository interface {
	Create(ctx context.Context, member *Member) error
	Get(ctx context.Context, id string) (*Member, error)
	Update(ctx context.Context, member *Member) error
	ListAll(ctx context.Context) ([]*Member, error)
	// SetActive updates only the active flag. The active member refresher is
	// the sole caller.
	SetActive(ctx context.Context, id string, active bool) error
	// TouchLastOrderAt records the timestamp of the member's latest order
	TouchLastOrderAt(ctx context.Context, id string) error
}
