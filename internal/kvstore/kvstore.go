// Package kvstore provides the persistent string-keyed storage the
// application depends on, with bolt, sqlite, and in-memory backends.
package kvstore

import "context"

// Store is an asynchronous string-keyed byte store. A missing key is
// reported through the ok return, never as an error; errors indicate the
// store itself is unavailable. Implementations must retain a written
// value until it is overwritten or deleted.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been written or was deleted.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}
