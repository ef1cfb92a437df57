// Package storage provides pluggable persistence backends for serialized
// training data.
//
// The Sink interface uses a simple key-value pattern:
//   - Keys are strings, with hierarchical paths via "/" separators
//   - Values are binary data ([]byte)
//   - Operations are context-aware for cancellation and timeouts
//
// Implementations:
//   - filestore.Store: local filesystem backend
//   - objectstore.Store: NATS JetStream ObjectStore backend
//
// All implementations must be safe for concurrent use from multiple
// goroutines.
package storage

import "context"

// Sink is the pluggable backend interface for persistence operations.
// It is a superset of the narrow training.Sink interface, so any Sink
// implementation can back TrainingData.Persist directly.
type Sink interface {
	// Put stores binary data at the specified key, overwriting any
	// existing value.
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves the data stored at the specified key. Returns an
	// error when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns all keys with the given prefix, in lexicographic
	// order. An empty prefix lists every key; no matches yield an empty
	// slice.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the data at the specified key. Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, key string) error
}
