package grid

import (
	"math"
	"sync"
	"time"

	"github.com/gridkit/infinigrid/pkg/errors"
	"github.com/gridkit/infinigrid/pkg/observability"
)

// Grid is the public-facing controller. It sequences each layout cycle:
// accept new elements, wait for external resources, place items into
// columns, evict the far end of the window, commit positions to the
// renderer, compensate scroll, and notify subscribers.
//
// Exactly one cycle is in flight at a time. Insertions and viewport signals
// arriving mid-cycle are dropped, not queued; the next cycle re-reads
// viewport state from scratch.
type Grid struct {
	mu       sync.Mutex
	opts     Options
	renderer Renderer
	viewport Viewport
	ready    ReadyDetector

	cols    *columnTracker
	engine  *layoutEngine
	window  *windowManager
	watcher *watcher
	events  emitter

	processing bool
}

// New creates a Grid. The renderer and viewport are required; pass a nil
// ReadyDetector when element sizes are always known up front.
func New(opts Options, r Renderer, vp Viewport, rd ReadyDetector) (*Grid, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "renderer is required")
	}
	if vp == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "viewport is required")
	}
	if rd == nil {
		rd = ImmediateReady{}
	}

	g := &Grid{
		opts:     opts,
		renderer: r,
		viewport: vp,
		ready:    rd,
		window:   newWindowManager(opts.Capacity),
	}
	g.cols = newColumnTracker(opts.ColumnWidth, opts.Gutter, opts.EqualSize)
	g.cols.reset(g.effectiveColumns(vp.Width()))
	g.engine = &layoutEngine{cols: g.cols, window: g.window}
	g.watcher = newWatcher(g)
	return g, nil
}

// Insert supplies a batch of new elements tagged with groupKey at the bottom
// (prepend false) or top (prepend true) of the feed, and returns the number
// of elements accepted.
//
// Insert returns 0 without touching any state when the batch is empty, when
// a layout cycle is already in flight, or when prepending before the window
// has ever reached capacity (there is nothing above the top to restore).
// Rejected insertions are not queued; the owner retries on the next trigger.
func (g *Grid) Insert(els []Element, groupKey string, prepend bool) int {
	if len(els) == 0 {
		return 0
	}

	g.mu.Lock()
	if g.processing {
		g.mu.Unlock()
		return 0
	}
	if prepend && !g.window.recycling() {
		g.mu.Unlock()
		return 0
	}
	g.processing = true
	g.watcher.cancelPoll()
	items := g.window.itemize(els, groupKey)
	offset := g.viewport.ScrollOffset()
	g.mu.Unlock()

	observability.Grid().OnLayoutStart(len(items), !prepend)
	start := time.Now()

	g.renderer.Insert(els, prepend)
	pending := g.ready.Pending(els)
	g.ready.Await(pending, func() {
		g.finishCycle(items, prepend, offset, start)
	})
	return len(els)
}

// finishCycle runs once all external resources for the batch have settled.
// It measures, places, evicts, commits, compensates, and notifies.
func (g *Grid) finishCycle(items []*Item, prepend bool, offset float64, start time.Time) {
	g.mu.Lock()

	for _, it := range items {
		if it.Size.IsZero() {
			it.Size = g.renderer.Measure(it.Element)
		}
	}

	d := g.engine.layoutItems(false, items, !prepend)
	g.window.insert(items, prepend)

	cropped := 0
	fromTop := !prepend
	if overflow := g.window.overflow(); overflow > 0 {
		if n := g.window.delimiterIndex(fromTop, overflow); n > 0 {
			evicted := g.window.evict(fromTop, n)
			for _, it := range evicted {
				g.renderer.Remove(it.Element)
			}
			cropped = len(evicted)
			g.cols.rebuild(g.window.slice())
			if !fromTop {
				// Bottom eviction rewinds the equal-size placement cycle so
				// the next append continues where the evicted items sat.
				g.cols.placed -= cropped
				if g.cols.placed < 0 {
					g.cols.placed = 0
				}
			}
		}
	}

	g.commitLocked()

	if prepend && d != 0 {
		// Content above the viewport grew by d; move the scroll position
		// with it so the same items stay in view.
		offset += d
		g.viewport.SetScrollOffset(offset)
		g.watcher.prev = offset
		g.watcher.prevValid = true
	}

	// Warm the edge cache for the next trigger evaluation.
	g.window.topItem()
	g.window.bottomItem()

	g.processing = false
	if prepend {
		g.watcher.schedulePoll()
	}
	ev := LayoutCompleteEvent{
		Target:       items,
		IsAppend:     !prepend,
		Distance:     d,
		CroppedCount: cropped,
	}
	g.mu.Unlock()

	if cropped > 0 {
		observability.Grid().OnEvict(fromTop, cropped)
	}
	observability.Grid().OnLayoutComplete(len(items), cropped, time.Since(start))
	g.events.emitComplete(ev)
}

// Layout recommits the current window to the renderer. When force is true
// the column state is reset and every item is re-placed in rank order first.
// Layout is a no-op while a cycle is in flight.
func (g *Grid) Layout(force bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.processing {
		return
	}
	if force {
		g.engine.layoutItems(true, nil, true)
	}
	g.commitLocked()
}

// Remove deletes the single item holding el, independent of the window's
// capacity policy, and returns its summary. It fails with ITEM_NOT_FOUND
// when no windowed item holds el.
func (g *Grid) Remove(el Element) (ItemStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	it, ok := g.window.remove(el)
	if !ok {
		return ItemStatus{}, errors.New(errors.ErrCodeItemNotFound, "no windowed item holds the given element")
	}
	g.renderer.Remove(el)
	g.cols.rebuild(g.window.slice())
	g.renderer.SetContainerHeight(g.engine.contentHeight())
	return it.Status(), nil
}

// Clear evicts every item, resets column state, and returns the grid to
// idle. The configured options are retained.
func (g *Grid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, it := range g.window.slice() {
		g.renderer.Remove(it.Element)
	}
	g.window.clear()
	g.cols.reset(g.cols.count())
	g.processing = false
	g.watcher.reset()
	g.renderer.SetContainerHeight(0)
}

// IsProcessing reports whether a layout cycle is in flight.
func (g *Grid) IsProcessing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.processing
}

// IsRecycling reports whether the window has reached capacity, i.e. whether
// insertions evict from the far end.
func (g *Grid) IsRecycling() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.window.recycling()
}

// GroupKeys returns the distinct group keys currently present in the window,
// in first-occurrence rank order.
func (g *Grid) GroupKeys() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.window.groupKeys()
}

// WindowLen returns the number of currently materialized items.
func (g *Grid) WindowLen() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.window.len()
}

// ContentHeight returns the extent of the placed window.
func (g *Grid) ContentHeight() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.engine.contentHeight()
}

// Columns returns the effective column count.
func (g *Grid) Columns() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cols.count()
}

// commitLocked pushes every windowed item's position and the container
// extent to the renderer. Callers must hold g.mu.
func (g *Grid) commitLocked() {
	for _, it := range g.window.slice() {
		g.renderer.SetPosition(it.Element, it.Position)
	}
	g.renderer.SetContainerHeight(g.engine.contentHeight())
}

// effectiveColumns derives the column count from the viewport width, unless
// the configuration pins it.
func (g *Grid) effectiveColumns(width float64) int {
	if g.opts.Columns > 0 {
		return g.opts.Columns
	}
	n := int(math.Floor((width + g.opts.Gutter) / (g.opts.ColumnWidth + g.opts.Gutter)))
	if n < 1 {
		n = 1
	}
	return n
}
