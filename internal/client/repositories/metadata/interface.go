// Package metadata is the key/value table of the local database. It holds
// client state that is not an entity, such as the session credentials.
package metadata

import (
	"context"
)

// Repository reads and writes metadata keys. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
