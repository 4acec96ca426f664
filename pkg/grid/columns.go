package grid

// columnTracker maintains per-column logical heights and assigns incoming
// items to columns. Placement follows the masonry rule: an item lands in the
// column with the least accumulated height, ties broken by the lowest column
// index. In equal-size mode items cycle columns by rank modulo column count,
// which keeps placement O(1) under the uniform-height assumption.
type columnTracker struct {
	heights     []float64
	columnWidth float64
	gutter      float64
	equalSize   bool
	itemSize    Size // uniform size captured from the first placed item
	placed      int  // monotonic placement rank for equal-size cycling
}

func newColumnTracker(columnWidth, gutter float64, equalSize bool) *columnTracker {
	return &columnTracker{
		columnWidth: columnWidth,
		gutter:      gutter,
		equalSize:   equalSize,
	}
}

// reset clears all logical heights and sizes the tracker for n columns.
func (c *columnTracker) reset(n int) {
	if n < 1 {
		n = 1
	}
	c.heights = make([]float64, n)
	c.placed = 0
	c.itemSize = Size{}
}

// count returns the configured column count.
func (c *columnTracker) count() int {
	return len(c.heights)
}

// place assigns it to a column, computes its position from the column's
// current height, and advances that column by the item's height.
func (c *columnTracker) place(it *Item) {
	col := 0
	if c.equalSize {
		if c.itemSize.IsZero() {
			c.itemSize = it.Size
		} else {
			it.Size = c.itemSize
		}
		col = c.placed % len(c.heights)
	} else {
		col = c.minColumn()
	}

	it.Column = col
	it.Position = Point{
		X: float64(col) * (c.columnWidth + c.gutter),
		Y: c.heights[col],
	}
	c.heights[col] += it.Size.Height + c.gutter
	c.placed++
}

// minColumn returns the index of the shortest column, preferring the lowest
// index on ties.
func (c *columnTracker) minColumn() int {
	col := 0
	for i := 1; i < len(c.heights); i++ {
		if c.heights[i] < c.heights[col] {
			col = i
		}
	}
	return col
}

// logicalHeight returns the maximum column height, which defines the overall
// content extent.
func (c *columnTracker) logicalHeight() float64 {
	h := 0.0
	for _, v := range c.heights {
		if v > h {
			h = v
		}
	}
	return h
}

// raise shifts every column down by d. Used when a prepended block is placed
// above the current top.
func (c *columnTracker) raise(d float64) {
	for i := range c.heights {
		c.heights[i] += d
	}
}

// lower shifts every column up by d, clamping at zero. Used by fit after dead
// space above the window is removed.
func (c *columnTracker) lower(d float64) {
	for i := range c.heights {
		c.heights[i] -= d
		if c.heights[i] < 0 {
			c.heights[i] = 0
		}
	}
}

// rebuild recomputes column heights from the remaining window items after an
// eviction, so the next placement continues from real content bottoms instead
// of stale cursors.
func (c *columnTracker) rebuild(items []*Item) {
	for i := range c.heights {
		c.heights[i] = 0
	}
	for _, it := range items {
		if it.Column < 0 || it.Column >= len(c.heights) {
			continue
		}
		bottom := it.Bottom() + c.gutter
		if bottom > c.heights[it.Column] {
			c.heights[it.Column] = bottom
		}
	}
}
