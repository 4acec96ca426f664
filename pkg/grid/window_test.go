package grid

import "testing"

func mkWindow(capacity int, groups ...string) *windowManager {
	w := newWindowManager(capacity)
	for _, gk := range groups {
		w.insert(w.itemize([]Element{gk + "-el"}, gk), false)
	}
	return w
}

func TestWindowItemize(t *testing.T) {
	w := newWindowManager(10)
	items := w.itemize([]Element{"a", "b"}, "g1")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Key != "item-1" || items[1].Key != "item-2" {
		t.Errorf("unexpected keys %q, %q", items[0].Key, items[1].Key)
	}
	if items[0].GroupKey != "g1" {
		t.Errorf("expected group g1, got %q", items[0].GroupKey)
	}
	// Keys keep increasing across batches.
	more := w.itemize([]Element{"c"}, "")
	if more[0].Key != "item-3" {
		t.Errorf("expected item-3, got %q", more[0].Key)
	}
}

func TestWindowInsertOrder(t *testing.T) {
	w := newWindowManager(10)
	w.insert(w.itemize([]Element{"b", "c"}, ""), false)
	w.insert(w.itemize([]Element{"a"}, ""), true)
	w.insert(w.itemize([]Element{"d"}, ""), false)

	want := []Element{"a", "b", "c", "d"}
	for i, it := range w.slice() {
		if it.Element != want[i] {
			t.Errorf("rank %d: expected %v, got %v", i, want[i], it.Element)
		}
	}
	if w.topItem().Element != "a" || w.bottomItem().Element != "d" {
		t.Errorf("edges: got top=%v bottom=%v", w.topItem().Element, w.bottomItem().Element)
	}
}

func TestWindowOverflowAndRecycling(t *testing.T) {
	w := newWindowManager(3)
	if w.recycling() {
		t.Error("empty window should not be recycling")
	}
	w.insert(w.itemize([]Element{1, 2, 3}, ""), false)
	if !w.recycling() {
		t.Error("window at capacity should be recycling")
	}
	if n := w.overflow(); n != 0 {
		t.Errorf("at capacity: expected overflow 0, got %d", n)
	}
	w.insert(w.itemize([]Element{4, 5}, ""), false)
	if n := w.overflow(); n != 2 {
		t.Errorf("expected overflow 2, got %d", n)
	}

	// Unbounded window never overflows.
	u := newWindowManager(-1)
	u.insert(u.itemize([]Element{1, 2, 3, 4}, ""), false)
	if u.recycling() || u.overflow() != 0 {
		t.Error("capacity < 0 must disable recycling")
	}
}

func TestWindowDelimiterIndex(t *testing.T) {
	// Groups of two: g1={0,1} g2={2,3} g3={4,5}.
	w := mkWindow(4)
	w.insert(w.itemize([]Element{0, 1}, "g1"), false)
	w.insert(w.itemize([]Element{2, 3}, "g2"), false)
	w.insert(w.itemize([]Element{4, 5}, "g3"), false)

	// Overflow 2 from the top lands exactly on the g1/g2 boundary.
	if n := w.delimiterIndex(true, 2); n != 2 {
		t.Errorf("expected cut 2, got %d", n)
	}
	// Overflow 1 must extend to the whole of g1.
	if n := w.delimiterIndex(true, 1); n != 2 {
		t.Errorf("expected cut rounded up to 2, got %d", n)
	}
	// From the bottom, overflow 1 rounds up to all of g3.
	if n := w.delimiterIndex(false, 1); n != 2 {
		t.Errorf("expected bottom cut 2, got %d", n)
	}

	// A single group spanning the whole window has no valid cut.
	solid := newWindowManager(2)
	solid.insert(solid.itemize([]Element{0, 1, 2}, "only"), false)
	if n := solid.delimiterIndex(true, 1); n != -1 {
		t.Errorf("expected -1 for unsplittable window, got %d", n)
	}

	// Ungrouped items are singleton groups: any cut is valid.
	loose := newWindowManager(2)
	loose.insert(loose.itemize([]Element{0, 1, 2}, ""), false)
	if n := loose.delimiterIndex(true, 1); n != 1 {
		t.Errorf("expected cut 1 for ungrouped items, got %d", n)
	}
}

func TestWindowEvict(t *testing.T) {
	w := newWindowManager(10)
	w.insert(w.itemize([]Element{0, 1, 2, 3}, ""), false)

	out := w.evict(true, 2)
	if len(out) != 2 || out[0].Element != 0 || out[1].Element != 1 {
		t.Fatalf("top evict: got %v", out)
	}
	if w.len() != 2 || w.topItem().Element != 2 {
		t.Errorf("after top evict: len=%d top=%v", w.len(), w.topItem().Element)
	}

	out = w.evict(false, 1)
	if len(out) != 1 || out[0].Element != 3 {
		t.Errorf("bottom evict: got %v", out)
	}
	if w.bottomItem().Element != 2 {
		t.Errorf("after bottom evict: bottom=%v", w.bottomItem().Element)
	}
}

func TestWindowRemove(t *testing.T) {
	w := newWindowManager(10)
	w.insert(w.itemize([]Element{"a", "b", "c"}, ""), false)

	it, ok := w.remove("b")
	if !ok || it.Element != "b" {
		t.Fatalf("expected to remove b, got %v ok=%v", it, ok)
	}
	if w.len() != 2 {
		t.Errorf("expected len 2, got %d", w.len())
	}
	if _, ok := w.remove("zzz"); ok {
		t.Error("removing an unknown element should report false")
	}
}

func TestWindowGroupKeys(t *testing.T) {
	w := newWindowManager(20)
	w.insert(w.itemize([]Element{0, 1}, "g1"), false)
	w.insert(w.itemize([]Element{2}, ""), false)
	w.insert(w.itemize([]Element{3}, "g2"), false)
	w.insert(w.itemize([]Element{4}, "g1"), false)

	keys := w.groupKeys()
	if len(keys) != 2 || keys[0] != "g1" || keys[1] != "g2" {
		t.Errorf("expected [g1 g2], got %v", keys)
	}
}

func TestWindowEdgeInvalidation(t *testing.T) {
	w := newWindowManager(10)
	w.insert(w.itemize([]Element{"a", "b"}, ""), false)
	_ = w.topItem()
	_ = w.bottomItem()

	w.insert(w.itemize([]Element{"z"}, ""), true)
	if w.topItem().Element != "z" {
		t.Errorf("cached top must be invalidated by prepend, got %v", w.topItem().Element)
	}

	w.clear()
	if w.topItem() != nil || w.bottomItem() != nil {
		t.Error("cleared window must have nil edges")
	}
}
