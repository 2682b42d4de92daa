package testutil

import (
	"context"

	"github.com/minimall/minimall/internal/types"
)

// SetupContext returns a context carrying the identifiers middleware normally sets
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, "user_test")
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	return ctx
}
