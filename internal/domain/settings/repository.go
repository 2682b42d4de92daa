package settings

import (
	"context"

	"github.com/minimall/minimall/internal/types"
)

// Repository persists the process-wide system settings. Get returns the
// defaults when nothing has been stored yet.
type Repository interface {
	Get(ctx context.Context) (types.SystemSettings, error)
	Update(ctx context.Context, settings types.SystemSettings) error
}
