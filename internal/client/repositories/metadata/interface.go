// Package metadata is the device key-value store the account service persists
// into. Values are opaque bytes; a missing key reads as (nil, nil).
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete of an absent key is not an error.
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Transactor is implemented by repositories that can run several operations
// atomically. fn receives a Repository bound to the transaction; returning an
// error rolls everything back.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
