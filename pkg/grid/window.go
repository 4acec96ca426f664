package grid

import "fmt"

// windowManager owns the ordered sequence of currently materialized items,
// rank 0 being the visual top. It enforces the bounded-window policy:
// insertions at one end evict from the other, extended outward so that items
// sharing a group key are always evicted together.
//
// Edge items are cached and invalidated on every mutation, then recomputed
// lazily; callers never hold a reference that can dangle across an eviction.
type windowManager struct {
	items    []*Item
	capacity int // <= 0 disables recycling
	nextKey  int

	top    *Item // cached edge, nil until recomputed
	bottom *Item
}

func newWindowManager(capacity int) *windowManager {
	return &windowManager{capacity: capacity}
}

// len returns the window length.
func (w *windowManager) len() int {
	return len(w.items)
}

// slice returns the window in rank order. The returned slice is the
// manager's own backing array; callers must not retain it across mutations.
func (w *windowManager) slice() []*Item {
	return w.items
}

// itemize converts raw external elements into Items tagged with groupKey,
// preserving input order. It is pure: the window itself is not touched until
// insert is called after placement.
func (w *windowManager) itemize(els []Element, groupKey string) []*Item {
	items := make([]*Item, len(els))
	for i, el := range els {
		w.nextKey++
		items[i] = &Item{
			Key:      fmt.Sprintf("item-%d", w.nextKey),
			GroupKey: groupKey,
			Element:  el,
		}
	}
	return items
}

// insert adds placed items at the top or bottom of the window.
func (w *windowManager) insert(items []*Item, prepend bool) {
	if len(items) == 0 {
		return
	}
	if prepend {
		w.items = append(items, w.items...)
	} else {
		w.items = append(w.items, items...)
	}
	w.invalidateEdges()
}

// overflow returns how many items exceed capacity, or 0 when recycling is
// disabled.
func (w *windowManager) overflow() int {
	if w.capacity <= 0 {
		return 0
	}
	if n := len(w.items) - w.capacity; n > 0 {
		return n
	}
	return 0
}

// recycling reports whether the window has reached capacity, i.e. whether
// insertions now trigger eviction.
func (w *windowManager) recycling() bool {
	return w.capacity > 0 && len(w.items) >= w.capacity
}

// delimiterIndex returns the number of items that must be evicted from the
// given end to clear overflow without splitting a group: the smallest count
// >= overflow whose cut lands on a group boundary. It returns -1 when no
// boundary-respecting cut exists inside the window; the caller must then
// evict nothing and accept temporary overflow, because capacity is advisory
// and group integrity is not.
func (w *windowManager) delimiterIndex(fromTop bool, overflow int) int {
	n := len(w.items)
	if overflow <= 0 || overflow >= n {
		return -1
	}
	for k := overflow; k < n; k++ {
		cut := k
		if !fromTop {
			cut = n - k
		}
		if w.boundaryAt(cut) {
			return k
		}
	}
	return -1
}

// boundaryAt reports whether a group boundary exists between ranks i-1 and i.
// Items without a group key form singleton groups, so any cut next to them is
// a boundary.
func (w *windowManager) boundaryAt(i int) bool {
	if i <= 0 || i >= len(w.items) {
		return false
	}
	a, b := w.items[i-1].GroupKey, w.items[i].GroupKey
	return a == "" || b == "" || a != b
}

// evict removes count items from the top (fromTop) or bottom of the window
// and returns them in rank order so the caller can release their elements.
// count is expected to come from delimiterIndex and therefore land on a group
// boundary.
func (w *windowManager) evict(fromTop bool, count int) []*Item {
	if count <= 0 || count > len(w.items) {
		return nil
	}
	var out []*Item
	if fromTop {
		out = w.items[:count]
		w.items = w.items[count:]
	} else {
		out = w.items[len(w.items)-count:]
		w.items = w.items[:len(w.items)-count]
	}
	w.invalidateEdges()
	return out
}

// remove deletes the single item holding el, independent of the capacity
// policy. It reports false when no item holds el.
func (w *windowManager) remove(el Element) (*Item, bool) {
	for i, it := range w.items {
		if it.Element == el {
			w.items = append(w.items[:i], w.items[i+1:]...)
			w.invalidateEdges()
			return it, true
		}
	}
	return nil, false
}

// groupKeys returns the distinct non-empty group keys currently present, in
// first-occurrence rank order.
func (w *windowManager) groupKeys() []string {
	seen := make(map[string]bool, len(w.items))
	var keys []string
	for _, it := range w.items {
		if it.GroupKey == "" || seen[it.GroupKey] {
			continue
		}
		seen[it.GroupKey] = true
		keys = append(keys, it.GroupKey)
	}
	return keys
}

// topItem returns the rank-0 item, or nil for an empty window.
func (w *windowManager) topItem() *Item {
	if w.top == nil && len(w.items) > 0 {
		w.top = w.items[0]
	}
	return w.top
}

// bottomItem returns the rank N-1 item, or nil for an empty window.
func (w *windowManager) bottomItem() *Item {
	if w.bottom == nil && len(w.items) > 0 {
		w.bottom = w.items[len(w.items)-1]
	}
	return w.bottom
}

// invalidateEdges drops the cached edge items; they are recomputed on next
// access.
func (w *windowManager) invalidateEdges() {
	w.top = nil
	w.bottom = nil
}

// clear empties the window.
func (w *windowManager) clear() {
	w.items = nil
	w.invalidateEdges()
}
