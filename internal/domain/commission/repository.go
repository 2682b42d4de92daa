package commission

import (
	"context"
)

// Repository defines the interface for commission record data access
type Repository interface {
	// CreateIdempotent inserts the record unless one already exists for the
	// same (order, beneficiary) pair. It returns true when a new record was
	// created and false when the pair was already present; the conflict is a
	// no-op success, not an error.
	CreateIdempotent(ctx context.Context, record *Record) (bool, error)
	Get(ctx context.Context, id string) (*Record, error)
	ListByOrder(ctx context.Context, orderID string) ([]*Record, error)
	ListByBeneficiary(ctx context.Context, memberID string) ([]*Record, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}
