// Package cache provides byte-level caching for the infinigrid CLI.
//
// The Cache interface abstracts storage so callers can swap backends without
// code changes:
//   - FileCache: persistent, for CLI usage (feed responses, saved snapshots)
//   - NullCache: disabled caching, for tests and --no-cache runs
//
// Keys are produced by a Keyer so that the key layout stays consistent across
// the feed client and the snapshot commands. Use NewScopedKeyer to namespace
// keys when several demos share one cache directory.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface for cached byte payloads.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means no
	// expiration; a negative ttl stores an already-expired entry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// FeedKeyOpts are the request parameters that distinguish feed pages.
type FeedKeyOpts struct {
	After  string // group key to page forward from
	Before string // group key to page backward from
	Count  int    // requested batch size
}

// Keyer generates cache keys for the different cached payload types.
type Keyer interface {
	// FeedKey generates a key for a cached feed response.
	FeedKey(source string, opts FeedKeyOpts) string

	// SnapshotKey generates a key for a saved grid status snapshot.
	SnapshotKey(name string) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FeedKey hashes the source URL and paging options into a stable key.
func (k *DefaultKeyer) FeedKey(source string, opts FeedKeyOpts) string {
	return hashKey("feed", source, opts)
}

// SnapshotKey generates a key for a named snapshot.
func (k *DefaultKeyer) SnapshotKey(name string) string {
	return "snapshot:" + name
}
