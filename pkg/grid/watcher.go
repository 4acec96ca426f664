package grid

import (
	"time"

	"github.com/gridkit/infinigrid/pkg/observability"
)

// watcher is the trigger state machine. It turns raw viewport scroll and
// resize signals into append/prepend requests, debounces resizes, and runs
// the bounded post-prepend polling loop for platforms that fail to deliver
// a scroll signal after a synthetic position correction.
//
// The watcher shares the grid's mutex: every method below assumes g.mu is
// held unless stated otherwise. Timer callbacks re-acquire it through the
// Grid entry points.
type watcher struct {
	g *Grid

	// prev is the last processed scroll offset; a signal that repeats it is
	// an idempotent no-op. prevValid is false until the first signal and
	// after resizes, forcing a fresh edge evaluation.
	prev      float64
	prevValid bool

	// Pending debounced resize. A single timer handle per purpose, replaced
	// on each new signal rather than stacked.
	pendingW    float64
	pendingH    float64
	resizeTimer *time.Timer

	// Post-prepend polling loop.
	pollTimer  *time.Timer
	pollBudget int
}

func newWatcher(g *Grid) *watcher {
	return &watcher{g: g}
}

// trigger is a decided append/prepend request.
type trigger struct {
	isAppend  bool
	scrollTop float64
}

// OnScroll consumes a viewport scroll signal. The scroll direction selects
// which edge item to test against the threshold; when the edge is within
// threshold distance of the viewport, an append (bottom) or prepend (top)
// request is emitted.
//
// Signals are ignored while a layout cycle is in flight and when the offset
// has not moved since the last processed signal.
func (g *Grid) OnScroll() {
	g.mu.Lock()
	tr, ok := g.watcher.evaluateScroll()
	g.mu.Unlock()
	if !ok {
		return
	}

	observability.Watcher().OnTrigger(tr.isAppend, tr.scrollTop)
	if tr.isAppend {
		g.events.emitAppend(AppendEvent{ScrollTop: tr.scrollTop})
	} else {
		g.events.emitPrepend(PrependEvent{ScrollTop: tr.scrollTop})
	}
}

// evaluateScroll implements the scroll transition of the state machine.
func (w *watcher) evaluateScroll() (trigger, bool) {
	g := w.g
	if g.processing {
		return trigger{}, false
	}

	offset := g.viewport.ScrollOffset()
	if g.opts.ElasticOverscroll && offset <= 0 {
		// Rubber-banding reports the absolute top; firing a prepend here
		// would loop on touch platforms.
		return trigger{}, false
	}
	if w.prevValid && offset == w.prev {
		return trigger{}, false
	}
	down := !w.prevValid || offset > w.prev
	w.prev = offset
	w.prevValid = true

	if down {
		it := g.window.bottomItem()
		if it == nil {
			return trigger{}, false
		}
		if it.Bottom()-(offset+g.viewport.Height()) <= g.opts.Threshold {
			return trigger{isAppend: true, scrollTop: offset}, true
		}
		return trigger{}, false
	}

	it := g.window.topItem()
	if it == nil || !g.window.recycling() {
		return trigger{}, false
	}
	if offset-it.Position.Y <= g.opts.Threshold {
		// Remove now-superfluous space before requesting the prepend and
		// carry the scroll position along so the view does not jump.
		if d := g.engine.fit(); d > 0 {
			g.commitLocked()
			offset += d
			g.viewport.SetScrollOffset(offset)
			w.prev = offset
		}
		return trigger{isAppend: false, scrollTop: offset}, true
	}
	return trigger{}, false
}

// OnResize consumes a viewport resize signal. The resize is debounced: a new
// signal before the debounce interval elapses cancels and restarts the
// pending apply. Once stable, a changed column count triggers a full
// relayout and invalidates the cached previous offset.
func (g *Grid) OnResize(width, height float64) {
	g.mu.Lock()
	w := g.watcher
	w.pendingW, w.pendingH = width, height
	if w.resizeTimer != nil {
		w.resizeTimer.Stop()
	}
	w.resizeTimer = time.AfterFunc(g.opts.ResizeDebounce, g.applyResize)
	g.mu.Unlock()
}

// applyResize runs after the debounce interval with no newer resize signal.
func (g *Grid) applyResize() {
	g.mu.Lock()
	w := g.watcher
	w.resizeTimer = nil
	w.prevValid = false
	width, height := w.pendingW, w.pendingH
	cols := g.effectiveColumns(width)
	if cols != g.cols.count() && !g.processing {
		g.cols.reset(cols)
		g.engine.layoutItems(true, nil, true)
		g.commitLocked()
	}
	g.mu.Unlock()

	observability.Watcher().OnResize(width, height, cols)
}

// schedulePoll arms the post-prepend double-check loop.
func (w *watcher) schedulePoll() {
	w.cancelPoll()
	w.pollBudget = w.g.opts.PrependRetries
	w.pollTimer = time.AfterFunc(w.g.opts.PrependRetryInterval, w.g.prependPoll)
}

// cancelPoll stops the polling loop. Any later cycle start cancels it.
func (w *watcher) cancelPoll() {
	if w.pollTimer != nil {
		w.pollTimer.Stop()
		w.pollTimer = nil
	}
	w.pollBudget = 0
}

// cancelResize drops a pending debounced resize.
func (w *watcher) cancelResize() {
	if w.resizeTimer != nil {
		w.resizeTimer.Stop()
		w.resizeTimer = nil
	}
}

// reset returns the watcher to its initial state.
func (w *watcher) reset() {
	w.prevValid = false
	w.cancelPoll()
	w.cancelResize()
}

// prependPoll re-checks whether the viewport is still pinned at the absolute
// top after a prepend completed. Some platforms swallow the scroll signal
// that should follow a synthetic position correction; without this check the
// user would be stuck at the top with no way to trigger the next prepend.
// The loop stops when the offset moves away from the top, when a new cycle
// starts, or when the attempt budget runs out.
func (g *Grid) prependPoll() {
	g.mu.Lock()
	w := g.watcher
	w.pollTimer = nil
	if g.processing || w.pollBudget <= 0 {
		g.mu.Unlock()
		return
	}
	w.pollBudget--

	offset := g.viewport.ScrollOffset()
	if offset > 0 {
		w.pollBudget = 0
		g.mu.Unlock()
		return
	}
	fire := g.window.recycling() && g.window.topItem() != nil
	if w.pollBudget > 0 {
		w.pollTimer = time.AfterFunc(g.opts.PrependRetryInterval, g.prependPoll)
	}
	g.mu.Unlock()

	if fire {
		observability.Watcher().OnTrigger(false, offset)
		g.events.emitPrepend(PrependEvent{ScrollTop: offset})
	}
}
