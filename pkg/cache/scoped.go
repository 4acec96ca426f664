package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several demo profiles share one cache directory and
// need separate key spaces.
//
// Example usage:
//
//	// Profile-specific keys
//	profileKeyer := NewScopedKeyer(NewDefaultKeyer(), "profile:demo:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FeedKey generates a prefixed key for feed response caching.
func (k *ScopedKeyer) FeedKey(source string, opts FeedKeyOpts) string {
	return k.prefix + k.inner.FeedKey(source, opts)
}

// SnapshotKey generates a prefixed key for snapshot caching.
func (k *ScopedKeyer) SnapshotKey(name string) string {
	return k.prefix + k.inner.SnapshotKey(name)
}
