// Package kv defines the key-value store boundary the survey domain is
// built on, plus the embedded backends that implement it.
//
// The contract is deliberately small: point get, single-key put, and an
// exhaustive prefix scan in the store's native key order. Both backends
// deliver read-your-writes consistency within one instance, which is all
// the domain layer relies on.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no record.
var ErrNotFound = errors.New("kv: key not found")

// Pair is one key/value entry produced by a prefix scan.
type Pair struct {
	Key   string
	Value []byte
}

// Store is the persistence boundary. Implementations are safe for
// concurrent use; serialization of domain-level check-then-write
// sequences is the caller's responsibility.
type Store interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes value at key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// List returns every pair whose key starts with prefix, in the
	// store's native key order. A prefix with no matches yields an
	// empty slice, not an error.
	List(ctx context.Context, prefix string) ([]Pair, error)

	// Close releases the backend's resources.
	Close() error
}
