package grid

// Renderer abstracts the visual element layer. The grid owns geometry; the
// renderer owns pixels (or terminal cells). Implementations are not expected
// to be goroutine-safe; the grid serializes all calls.
type Renderer interface {
	// Measure returns the element's size. Called once per item before its
	// first placement; equal-size grids only measure the first item.
	Measure(el Element) Size

	// SetPosition moves an element to the given top-left position.
	SetPosition(el Element, pos Point)

	// Insert adds elements to the host container, at the start when prepend
	// is true, otherwise at the end.
	Insert(els []Element, prepend bool)

	// Remove releases an evicted element.
	Remove(el Element)

	// SetContainerHeight resizes the host container to the content extent.
	SetContainerHeight(h float64)
}

// Viewport exposes the scrollable view over the container.
type Viewport interface {
	// Width returns the viewport width, used to derive the column count.
	Width() float64

	// Height returns the viewport height.
	Height() float64

	// ScrollOffset returns the current scroll position from the top.
	ScrollOffset() float64

	// SetScrollOffset moves the scroll position, used for compensation after
	// prepends and fits so the view does not visibly jump.
	SetScrollOffset(offset float64)
}

// ReadyDetector reports which elements are still waiting on external
// resources (images, async content) and signals when they settle.
//
// Await must eventually invoke done exactly once, including for an empty
// pending list: callers rely on a uniform asynchronous contract. Invoking
// done synchronously is allowed; the grid is correct either way.
type ReadyDetector interface {
	Pending(els []Element) []Element
	Await(pending []Element, done func())
}

// ImmediateReady is a ReadyDetector for elements whose sizes are always
// known up front. Await invokes done synchronously.
type ImmediateReady struct{}

// Pending reports no pending elements.
func (ImmediateReady) Pending([]Element) []Element { return nil }

// Await invokes done immediately.
func (ImmediateReady) Await(_ []Element, done func()) { done() }

var _ ReadyDetector = ImmediateReady{}
