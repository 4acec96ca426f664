package grid

import "testing"

func newTestEngine(columns int) *layoutEngine {
	cols := newColumnTracker(100, 10, false)
	cols.reset(columns)
	return &layoutEngine{cols: cols, window: newWindowManager(0)}
}

func sizedItems(e *layoutEngine, heights ...float64) []*Item {
	els := make([]Element, len(heights))
	for i := range heights {
		els[i] = i
	}
	items := e.window.itemize(els, "")
	for i, it := range items {
		it.Size = Size{Width: 100, Height: heights[i]}
	}
	return items
}

func TestLayoutAppend(t *testing.T) {
	e := newTestEngine(2)
	items := sizedItems(e, 100, 60, 40)
	if d := e.layoutItems(false, items, true); d != 0 {
		t.Errorf("append must not shift existing content, got %v", d)
	}
	e.window.insert(items, false)

	// 100 and 60 fill the first row; 40 lands under the shorter column 1.
	if items[2].Column != 1 || items[2].Position.Y != 70 {
		t.Errorf("third item: col=%d y=%v, expected col=1 y=70", items[2].Column, items[2].Position.Y)
	}
	if h := e.contentHeight(); h != 110 {
		t.Errorf("expected content height 110, got %v", h)
	}
}

func TestLayoutPrependShiftsWindow(t *testing.T) {
	e := newTestEngine(2)
	base := sizedItems(e, 100, 100)
	e.layoutItems(false, base, true)
	e.window.insert(base, false)

	block := sizedItems(e, 50, 80)
	d := e.layoutItems(false, block, false)
	e.window.insert(block, true)

	// Block masonry: columns reach 60 and 90, so the shift is 90.
	if d != 90 {
		t.Fatalf("expected shift 90, got %v", d)
	}
	if base[0].Position.Y != 90 {
		t.Errorf("existing item must move down by the shift, got y=%v", base[0].Position.Y)
	}
	if block[0].Position.Y != 0 {
		t.Errorf("prepended block must start at the top, got y=%v", block[0].Position.Y)
	}
	// Column cursors follow the shift so the next append lands below
	// existing content, not inside it.
	if e.cols.heights[0] != 200 {
		t.Errorf("expected column 0 cursor 200, got %v", e.cols.heights[0])
	}
}

func TestLayoutPrependIntoEmptyWindow(t *testing.T) {
	e := newTestEngine(2)
	items := sizedItems(e, 100)
	if d := e.layoutItems(false, items, false); d != 0 {
		t.Errorf("prepend into empty window must not shift, got %v", d)
	}
}

func TestLayoutRelayout(t *testing.T) {
	e := newTestEngine(2)
	items := sizedItems(e, 100, 100, 100)
	e.layoutItems(false, items, true)
	e.window.insert(items, false)

	// Grow to three columns and re-place: all three items fit in one row.
	e.cols.reset(3)
	e.layoutItems(true, nil, true)
	for i, it := range e.window.slice() {
		if it.Column != i || it.Position.Y != 0 {
			t.Errorf("item %d: col=%d y=%v after relayout", i, it.Column, it.Position.Y)
		}
	}
}

func TestFit(t *testing.T) {
	e := newTestEngine(2)
	items := sizedItems(e, 100, 100, 100, 100)
	e.layoutItems(false, items, true)
	e.window.insert(items, false)

	// Evicting the first row leaves dead space above the window.
	e.window.evict(true, 2)
	before := e.contentHeight()

	d := e.fit()
	if d != 110 {
		t.Fatalf("expected fit shift 110, got %v", d)
	}
	if top := e.window.topItem(); top.Position.Y != 0 {
		t.Errorf("top item must sit at y=0 after fit, got %v", top.Position.Y)
	}
	if h := e.contentHeight(); h != before-110 {
		t.Errorf("content height must shrink by the shift: %v -> %v", before, h)
	}

	// fit is idempotent until the next insertion.
	if d := e.fit(); d != 0 {
		t.Errorf("second fit must be a no-op, got %v", d)
	}
}

func TestFitEmptyWindow(t *testing.T) {
	e := newTestEngine(2)
	if d := e.fit(); d != 0 {
		t.Errorf("fit on empty window must return 0, got %v", d)
	}
}

func TestContentHeightAfterBottomEviction(t *testing.T) {
	e := newTestEngine(2)
	items := sizedItems(e, 100, 100, 100, 100)
	e.layoutItems(false, items, true)
	e.window.insert(items, false)

	e.window.evict(false, 2)
	if h := e.contentHeight(); h != 100 {
		t.Errorf("expected content height 100 after bottom eviction, got %v", h)
	}
}
