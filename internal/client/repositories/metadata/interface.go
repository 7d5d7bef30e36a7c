// Package metadata persists small key/value records (installation salt,
// verification token) in the local SQLite database. It is the default secure
// storage backend of the vault.
package metadata

import (
	"context"
)

// Repository is key/value storage. Get returns common.ErrorNotFound for an
// absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
