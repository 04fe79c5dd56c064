// Package cache provides the incremental-build cache: a persistent map from
// source file to the content hash it had the last time it was built.
// Sources whose hash is unchanged skip rendering and writing; they are
// still registered in the manifest, which must always be complete.
package cache

import (
	"context"
	"errors"
)

// ErrMiss indicates the key is not present in the cache
var ErrMiss = errors.New("cache miss")

// Cache is the incremental-build cache interface
type Cache interface {
	// Get returns the stored value for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// Close releases cache resources.
	Close() error
}

// Options contains cache configuration options
type Options struct {
	Directory string
	InMemory  bool
	Logger    bool
}
