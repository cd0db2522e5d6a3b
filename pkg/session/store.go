package session

import "context"

// Store is the key-value capability the session manager persists through.
// Implementations return ErrNotFound from Get for absent keys; Delete of an
// absent key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
