package grid

import (
	"fmt"

	"github.com/gridkit/infinigrid/pkg/errors"
)

// Status is a structural snapshot of the grid: configuration, window
// contents with positions and group keys, column heights, and the transient
// flags a restore needs. It is a shallow copy, not a durable store; the
// snapshotio package handles serialization for callers that persist it.
type Status struct {
	Options      Options      `json:"options"`
	Items        []ItemStatus `json:"items"`
	Columns      []float64    `json:"columns"`
	Recycling    bool         `json:"recycling"`
	ScrollOffset float64      `json:"scroll_offset"`
	Placed       int          `json:"placed"`
}

// GetStatus produces a snapshot of the current state. The snapshot shares no
// mutable state with the grid and carries no element handles.
func (g *Grid) GetStatus() *Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := &Status{
		Options:      g.opts,
		Items:        make([]ItemStatus, g.window.len()),
		Columns:      append([]float64(nil), g.cols.heights...),
		Recycling:    g.window.recycling(),
		ScrollOffset: g.viewport.ScrollOffset(),
		Placed:       g.cols.placed,
	}
	for i, it := range g.window.slice() {
		st.Items[i] = it.Status()
	}
	return st
}

// SetStatus restores a snapshot produced by GetStatus. The visual elements
// are recreated by the caller (the snapshot cannot carry live handles) and
// supplied in the same order as st.Items.
//
// A malformed snapshot, a mismatched element count, or a snapshot produced
// under incompatible options is rejected with a typed error and the grid is
// left completely unchanged. On success the column state is rebuilt from the
// snapshot and edge items are recomputed from the restored window; no cached
// references from before the restore survive.
func (g *Grid) SetStatus(st *Status, els []Element) error {
	if st == nil || st.Items == nil || st.Columns == nil {
		return errors.New(errors.ErrCodeInvalidSnapshot, "snapshot is missing required fields")
	}
	if len(els) != len(st.Items) {
		return errors.New(errors.ErrCodeInvalidSnapshot,
			"snapshot has %d items but %d elements were supplied", len(st.Items), len(els))
	}
	for i, is := range st.Items {
		if is.Column < 0 || is.Column >= len(st.Columns) {
			return errors.New(errors.ErrCodeInvalidSnapshot,
				"item %d references column %d outside the %d snapshot columns", i, is.Column, len(st.Columns))
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.opts.compatible(st.Options) {
		return errors.New(errors.ErrCodeSnapshotMismatch,
			"snapshot was produced under a different grid configuration")
	}

	// Release whatever is currently materialized before rebuilding.
	for _, it := range g.window.slice() {
		g.renderer.Remove(it.Element)
	}
	g.window.clear()

	g.cols.reset(len(st.Columns))
	copy(g.cols.heights, st.Columns)
	g.cols.placed = st.Placed

	items := make([]*Item, len(st.Items))
	maxKey := 0
	for i, is := range st.Items {
		items[i] = &Item{
			Key:      is.Key,
			GroupKey: is.GroupKey,
			Size:     is.Size,
			Column:   is.Column,
			Position: is.Position,
			Element:  els[i],
		}
		var n int
		if _, err := fmt.Sscanf(is.Key, "item-%d", &n); err == nil && n > maxKey {
			maxKey = n
		}
	}
	if g.opts.EqualSize && len(items) > 0 {
		g.cols.itemSize = items[0].Size
	}
	// Keep key generation ahead of the restored keys.
	if maxKey > g.window.nextKey {
		g.window.nextKey = maxKey
	}
	g.window.insert(items, false)

	g.renderer.Insert(els, false)
	g.commitLocked()
	g.viewport.SetScrollOffset(st.ScrollOffset)

	g.processing = false
	g.watcher.reset()
	g.window.topItem()
	g.window.bottomItem()
	return nil
}
