// Package kv provides the durable string key-value capability used to cache
// client-side registration state. Callers depend on the Store interface and
// never on a storage technology.
package kv

import "context"

// Store persists string values under string keys.
// Get returns sentinel.ErrNotFound (possibly wrapped) for missing keys.
// Remove of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
