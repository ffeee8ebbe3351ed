// Package kvstore implements the durable string-keyed storage every other
// component persists through: one value per key, no schema, no expiry.
package kvstore

import "context"

// Store is the persistence contract exposed to the product and session
// stores. Get returns (nil, nil) when the key is absent; absence is not
// an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
