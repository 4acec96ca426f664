package grid

import "fmt"

// Element is an opaque handle to a visual element owned by the Renderer.
// Handles must be comparable; the grid compares them with == when resolving
// explicit removals.
type Element = any

// Size is a measured width and height in layout units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsZero reports whether the size has not been measured yet.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Point is a computed top-left position in layout units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Item is one materialized card in the window.
//
// Key and GroupKey are stable for the item's lifetime. Column and Position
// are mutated only by the layout engine during a layout pass. Element points
// at the external visual element and is released when the item is evicted.
type Item struct {
	Key      string
	GroupKey string
	Size     Size
	Column   int
	Position Point
	Element  Element
}

// Bottom returns the y coordinate of the item's lower edge.
func (it *Item) Bottom() float64 {
	return it.Position.Y + it.Size.Height
}

// Status returns the serializable summary of the item.
func (it *Item) Status() ItemStatus {
	return ItemStatus{
		Key:      it.Key,
		GroupKey: it.GroupKey,
		Size:     it.Size,
		Column:   it.Column,
		Position: it.Position,
	}
}

// ItemStatus is the snapshot form of an Item. It carries everything needed
// to rebuild the item except the visual element, which is recreated by the
// caller on restore.
type ItemStatus struct {
	Key      string `json:"key"`
	GroupKey string `json:"group_key,omitempty"`
	Size     Size   `json:"size"`
	Column   int    `json:"column"`
	Position Point  `json:"position"`
}

// String implements fmt.Stringer for debug output.
func (it *Item) String() string {
	return fmt.Sprintf("item(%s group=%s col=%d y=%.0f h=%.0f)",
		it.Key, it.GroupKey, it.Column, it.Position.Y, it.Size.Height)
}
