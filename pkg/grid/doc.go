// Package grid implements a windowed masonry layout engine for unbounded,
// continuously growing card feeds.
//
// The engine renders cards into fixed-width columns while keeping the number
// of simultaneously materialized cards bounded no matter how far the user
// scrolls. Cards are appended at the bottom or prepended at the top in
// batches; once the configured window capacity is exceeded, each insertion
// evicts cards from the opposite end, never splitting a batch that shares a
// group key.
//
// # Architecture
//
// The package is built from small single-purpose components:
//
//   - columnTracker: per-column logical heights and the masonry placement rule
//   - layout engine: batch placement, prepend shifting, and dead-space removal
//   - windowManager: the ordered window of materialized items and its
//     group-aware eviction policy
//   - watcher: the scroll/resize trigger machine that requests more items
//   - Grid: the orchestrator sequencing insert, resource wait, placement,
//     eviction, commit, and scroll compensation
//
// The visual layer is not part of this package. Positioning, element
// creation/removal, and viewport access go through the Renderer, Viewport,
// and ReadyDetector interfaces, so the same engine drives a terminal canvas
// in the demo and plain fakes in tests.
//
// # Usage
//
//	g, err := grid.New(grid.Options{ColumnWidth: 30, Capacity: 24}, renderer, viewport, ready)
//	if err != nil {
//	    return err
//	}
//	g.OnAppend(func(ev grid.AppendEvent) {
//	    g.Insert(feed.Next(), feed.GroupKey(), false)
//	})
//	g.OnLayoutComplete(func(ev grid.LayoutCompleteEvent) {
//	    refresh()
//	})
//	g.Insert(first, "group-0", false)
//
// Viewport scroll and resize signals are forwarded with OnScroll and
// OnResize; the grid decides when to fire append/prepend requests.
//
// # Concurrency
//
// A single layout cycle is in flight at a time. Signals arriving while a
// cycle runs are dropped, not queued; the next cycle re-reads viewport state
// from scratch. All exported methods are safe for concurrent use: internal
// state is guarded by one mutex, since debounce timers and resource-ready
// callbacks may fire on other goroutines.
package grid
