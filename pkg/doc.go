// Package pkg provides the core libraries for Infinigrid windowed masonry layout.
//
// # Overview
//
// Infinigrid keeps a bounded window of cards materialized over an effectively
// infinite feed: as the viewport scrolls, new cards are appended or prepended
// at the window edges and cards at the far edge are recycled, so memory stays
// proportional to the viewport rather than to the feed. The pkg directory is
// organized into three main areas:
//
//  1. [grid] - Domain logic (masonry placement, windowing, scroll watching)
//  2. [feed] - Card sources (deterministic generator, HTTP server and client)
//  3. infra - Caching, snapshots, errors, observability
//
// # Architecture
//
// The typical data flow through Infinigrid:
//
//	Feed source (generator or HTTP)
//	         ↓
//	    [feed] package (pages of cards, group keys)
//	         ↓
//	    [grid] package (window + masonry placement + recycling)
//	         ↓
//	    Renderer/Viewport (TUI canvas, or any host surface)
//
// # Quick Start
//
// Create a grid over a deterministic feed and insert the first page:
//
//	import (
//	    "github.com/gridkit/infinigrid/pkg/feed"
//	    "github.com/gridkit/infinigrid/pkg/grid"
//	)
//
//	// 1. Build a grid bound to a renderer and viewport
//	g, _ := grid.New(grid.Options{
//	    ColumnWidth: 100,
//	    Gutter:      10,
//	    Capacity:    24,
//	}, renderer, viewport, nil)
//
//	// 2. Fetch a page and append it as one group
//	gen := feed.NewGenerator(1, 6)
//	page, _ := gen.After("")
//	els := make([]grid.Element, len(page.Cards))
//	for i := range page.Cards {
//	    els[i] = &page.Cards[i]
//	}
//	g.Insert(els, page.GroupKey, false)
//
// # Main Packages
//
// [grid] - The layout engine. Column height tracking with the min-height
// placement rule, a bounded item window with group-atomic recycling, scroll
// and resize trigger handling with offset compensation, and snapshot
// save/restore via [grid.Status].
//
// [feed] - Card sources. A seeded deterministic generator, a chi HTTP server
// exposing it, and a caching client for remote feeds.
//
// [cache] - HTTP response caching with file and null backends, plus retry
// with exponential backoff for transient failures.
//
// [snapshotio] - Versioned JSON import/export of grid snapshots.
//
// [errors] - Structured errors with stable codes and user-facing messages.
//
// [observability] - Optional hook points (cache hits, fetch timing) for
// embedding hosts.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/grid/...      # Specific package
//
// [grid]: https://pkg.go.dev/github.com/gridkit/infinigrid/pkg/grid
// [feed]: https://pkg.go.dev/github.com/gridkit/infinigrid/pkg/feed
// [cache]: https://pkg.go.dev/github.com/gridkit/infinigrid/pkg/cache
// [snapshotio]: https://pkg.go.dev/github.com/gridkit/infinigrid/pkg/snapshotio
// [errors]: https://pkg.go.dev/github.com/gridkit/infinigrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/gridkit/infinigrid/pkg/observability
// [grid.Status]: https://pkg.go.dev/github.com/gridkit/infinigrid/pkg/grid#Status
package pkg
