package kvstore

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the persistence capability used by the checklist, summary,
// session and retention layers. Every read goes straight to the backend and
// every write is an immediate durable write - there is no caching layer on top.
type KeyValueStore interface {
	// Get returns the value for the given key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value for the given key entirely.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// ListKeys returns all keys starting with the given prefix.
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
