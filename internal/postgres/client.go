package postgres

import "context"

// IClient is the transactional surface services depend on. *DB implements it;
// tests substitute a client that runs the function without a real transaction.
type IClient interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ IClient = (*DB)(nil)
