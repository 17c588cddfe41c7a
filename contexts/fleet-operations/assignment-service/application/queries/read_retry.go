package queries

import "context"

// withReadRetry re-runs an idempotent read once when the store fails.
// Mutations are never retried; only the query use cases go through here.
func withReadRetry(ctx context.Context, read func(context.Context) error) error {
	err := read(ctx)
	if err == nil || ctx.Err() != nil {
		return err
	}
	return read(ctx)
}
