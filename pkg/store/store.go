// Package store persists serialized scene documents.
//
// Documents are addressed by content: [Key] hashes the encoded document, so
// storing the same scene twice yields the same key. Backends:
//
//   - [FileStore]: JSON entry files under a directory (CLI default)
//   - [RedisStore]: shared store for the HTTP server
//   - [MongoStore]: durable document collection
//   - [NullStore]: stores nothing
//
// Wrap a backend with [Instrument] to report hits, misses and writes through
// the observability store hooks.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/scenedoc/pkg/observability"
)

// Store is a key-value store for encoded documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the document stored under key. ok is false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// instrumented reports store events to the registered observability hooks.
type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so every Get and Set is reported to
// observability.Store() under the given backend name.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := s.Store.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Store().OnStoreHit(ctx, s.backend)
		} else {
			observability.Store().OnStoreMiss(ctx, s.backend)
		}
	}
	return data, ok, err
}

func (s *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.Store.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Store().OnStoreSet(ctx, s.backend, len(data))
	return nil
}
