// Package objectstore implements the storage.Sink interface on a NATS
// JetStream ObjectStore bucket, for deployments that persist training data
// through the messaging infrastructure instead of a local disk.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Config holds the ObjectStore backend configuration.
type Config struct {
	// BucketName is the ObjectStore bucket to use. Created on demand.
	BucketName string

	// Description is attached to the bucket when it is created.
	Description string
}

// Validate checks required fields.
func (c Config) Validate() error {
	if c.BucketName == "" {
		return fmt.Errorf("objectstore: bucket name is required")
	}
	return nil
}

// Store is a NATS JetStream ObjectStore-backed sink.
type Store struct {
	bucket jetstream.ObjectStore
	logger *slog.Logger
}

// New connects the store to its bucket, creating the bucket when it does
// not exist yet.
func New(ctx context.Context, nc *nats.Conn, cfg Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("objectstore.New: jetstream init failed: %w", err)
	}

	bucket, err := js.CreateOrUpdateObjectStore(ctx, jetstream.ObjectStoreConfig{
		Bucket:      cfg.BucketName,
		Description: cfg.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore.New: bucket setup failed: %w", err)
	}

	logger.Debug("object store ready", "bucket", cfg.BucketName)
	return &Store{bucket: bucket, logger: logger}, nil
}

// Put stores data under key, overwriting any existing object.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if _, err := s.bucket.PutBytes(ctx, key, data); err != nil {
		return fmt.Errorf("objectstore.Put: store failed: %w", err)
	}
	s.logger.Debug("object stored", "key", key, "bytes", len(data))
	return nil
}

// Get retrieves the data stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.GetBytes(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("objectstore.Get: retrieve failed: %w", err)
	}
	return data, nil
}

// List returns all keys in the bucket with the given prefix, sorted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	infos, err := s.bucket.List(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoObjectsFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("objectstore.List: list failed: %w", err)
	}

	keys := []string{}
	for _, info := range infos {
		if strings.HasPrefix(info.Name, prefix) {
			keys = append(keys, info.Name)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the object stored under key. Missing keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if errors.Is(err, jetstream.ErrObjectNotFound) {
			return nil
		}
		return fmt.Errorf("objectstore.Delete: remove failed: %w", err)
	}
	return nil
}
