// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout cycles, window eviction, viewport triggers,
// and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGridHooks(&myGridHooks{})
//	    observability.SetWatcherHooks(&myWatcherHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Grid().OnLayoutStart(count, isAppend)
//	// ... place and commit ...
//	observability.Grid().OnLayoutComplete(count, cropped, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Grid Hooks
// =============================================================================

// GridHooks receives events from the windowed layout engine.
type GridHooks interface {
	// OnLayoutStart records the start of a layout cycle.
	// count is the number of incoming items; isAppend is the insertion direction.
	OnLayoutStart(count int, isAppend bool)

	// OnLayoutComplete records a finished layout cycle.
	// cropped is the number of items evicted from the window during the cycle.
	OnLayoutComplete(count, cropped int, duration time.Duration)

	// OnEvict records a window eviction.
	// fromTop indicates the eviction end; count is the number of items removed.
	OnEvict(fromTop bool, count int)
}

// =============================================================================
// Watcher Hooks
// =============================================================================

// WatcherHooks receives events from the viewport trigger machine.
type WatcherHooks interface {
	// OnTrigger records an append/prepend request fired by a scroll signal.
	OnTrigger(isAppend bool, scrollTop float64)

	// OnResize records a debounced viewport resize and the resulting column count.
	OnResize(width, height float64, columns int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGridHooks is a no-op implementation of GridHooks.
type NoopGridHooks struct{}

func (NoopGridHooks) OnLayoutStart(int, bool)                  {}
func (NoopGridHooks) OnLayoutComplete(int, int, time.Duration) {}
func (NoopGridHooks) OnEvict(bool, int)                        {}

// NoopWatcherHooks is a no-op implementation of WatcherHooks.
type NoopWatcherHooks struct{}

func (NoopWatcherHooks) OnTrigger(bool, float64)        {}
func (NoopWatcherHooks) OnResize(float64, float64, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gridHooks    GridHooks    = NoopGridHooks{}
	watcherHooks WatcherHooks = NoopWatcherHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetGridHooks registers custom grid hooks.
// This should be called once at application startup before any layout cycles run.
func SetGridHooks(h GridHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gridHooks = h
	}
}

// SetWatcherHooks registers custom watcher hooks.
// This should be called once at application startup before viewport signals arrive.
func SetWatcherHooks(h WatcherHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		watcherHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Grid returns the registered grid hooks.
func Grid() GridHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gridHooks
}

// Watcher returns the registered watcher hooks.
func Watcher() WatcherHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return watcherHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gridHooks = NoopGridHooks{}
	watcherHooks = NoopWatcherHooks{}
	cacheHooks = NoopCacheHooks{}
}
