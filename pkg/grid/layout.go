package grid

// layoutEngine places batches of items into columns and keeps the window's
// geometry consistent across appends, prepends, and full relayouts.
type layoutEngine struct {
	cols   *columnTracker
	window *windowManager
}

// layoutItems positions add into the grid. When relayout is true the column
// state is reset and every windowed item is re-placed in rank order before
// add is placed. Appending places items after the current bottom edge;
// prepending places them above the current top and shifts the whole window
// down by the inserted block's height, preserving visual continuity without
// re-measuring existing items.
//
// The return value is the distance existing items were shifted down (zero for
// appends and relayouts); the orchestrator uses it for scroll compensation.
func (e *layoutEngine) layoutItems(relayout bool, add []*Item, isAppend bool) float64 {
	if relayout {
		e.cols.reset(e.cols.count())
		for _, it := range e.window.slice() {
			e.cols.place(it)
		}
	}
	if len(add) == 0 {
		return 0
	}

	if isAppend || e.window.len() == 0 {
		for _, it := range add {
			e.cols.place(it)
		}
		return 0
	}

	// Prepend: lay the block out as its own masonry starting at y=0, then
	// push the existing window down by the block's total height. The block
	// tracker shares column geometry but accumulates independently.
	block := newColumnTracker(e.cols.columnWidth, e.cols.gutter, e.cols.equalSize)
	block.reset(e.cols.count())
	for _, it := range add {
		block.place(it)
	}
	d := block.logicalHeight()
	for _, it := range e.window.slice() {
		it.Position.Y += d
	}
	e.cols.raise(d)
	return d
}

// fit removes dead space above the window's first item: every item shifts up
// by the smallest top offset present, and the shifted distance is returned so
// the caller can compensate the scroll position. Calling fit again without
// intervening insertions returns 0.
func (e *layoutEngine) fit() float64 {
	items := e.window.slice()
	if len(items) == 0 {
		return 0
	}
	d := items[0].Position.Y
	for _, it := range items[1:] {
		if it.Position.Y < d {
			d = it.Position.Y
		}
	}
	if d <= 0 {
		return 0
	}
	for _, it := range items {
		it.Position.Y -= d
	}
	e.cols.lower(d)
	return d
}

// contentHeight returns the extent of the placed window, the bottom edge of
// its lowest item. Unlike the tracker's logicalHeight it stays correct after
// bottom-end evictions.
func (e *layoutEngine) contentHeight() float64 {
	h := 0.0
	for _, it := range e.window.slice() {
		if b := it.Bottom(); b > h {
			h = b
		}
	}
	return h
}
