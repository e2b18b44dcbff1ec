// Package kvstore provides the key-value persistence backends behind the
// activity log.
//
// A Store holds opaque string values under string keys. Three backends are
// available:
//   - MemoryStore keeps values in process memory (tests, throwaway sessions)
//   - FileStore writes one JSON file per key under a data directory
//     (default ~/.carbontrack/data), using atomic temp-file renames and a
//     cross-process lockfile
//   - RedisStore keeps values in Redis under a key prefix
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Common store errors.
var (
	ErrNotFound   = errors.New("key not found")
	ErrInvalidKey = errors.New("key cannot be empty")
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Store is a minimal key-value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Options selects and configures a backend for Open.
type Options struct {
	Backend   string
	Directory string
	Redis     RedisOptions
}

// Open constructs the backend named in opts.Backend.
// The returned close function releases backend resources and is never nil.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	case BackendFile, "":
		fs, err := NewFileStore(opts.Directory)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case BackendRedis:
		rs := NewRedisStore(opts.Redis)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, noop, err
		}
		return rs, rs.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported store backend: %q", opts.Backend)
	}
}

// MemoryStore is an in-memory Store. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Remove implements Store.
func (m *MemoryStore) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
