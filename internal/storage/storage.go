// Package storage defines the key-value persistence adapter consumed
// by the stores. Implementations live in the file, valkeystore and
// mock subpackages.
package storage

import "context"

// Store is a durable string key-value store. Get returns
// serviceerr.ErrNotFound for a missing key. Delete of a missing key is
// not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Keys used by the stores.
const (
	KeyToken     = "token"
	KeyUser      = "user"
	KeyFavorites = "favorites"
)
