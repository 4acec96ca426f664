package grid

// AppendEvent asks the owner to supply the next batch of elements at the
// bottom of the feed. ScrollTop is the offset that produced the trigger.
type AppendEvent struct {
	ScrollTop float64
}

// PrependEvent asks the owner to re-supply a previously evicted batch at the
// top of the feed. ScrollTop is the offset after fit compensation.
type PrependEvent struct {
	ScrollTop float64
}

// LayoutCompleteEvent reports a finished layout cycle.
type LayoutCompleteEvent struct {
	// Target holds the items placed during the cycle.
	Target []*Item

	// IsAppend is the cycle's insertion direction.
	IsAppend bool

	// Distance is how far existing content moved down (prepends only).
	Distance float64

	// CroppedCount is the number of items evicted to keep the window within
	// capacity.
	CroppedCount int
}

// emitter fans events out to subscribed handlers. Handlers run on the
// goroutine that completed the cycle, outside the grid's lock, so they may
// call back into the grid.
type emitter struct {
	append   []func(AppendEvent)
	prepend  []func(PrependEvent)
	complete []func(LayoutCompleteEvent)
}

func (e *emitter) emitAppend(ev AppendEvent) {
	for _, fn := range e.append {
		fn(ev)
	}
}

func (e *emitter) emitPrepend(ev PrependEvent) {
	for _, fn := range e.prepend {
		fn(ev)
	}
}

func (e *emitter) emitComplete(ev LayoutCompleteEvent) {
	for _, fn := range e.complete {
		fn(ev)
	}
}

// OnAppend subscribes to append requests. Subscriptions are not removable;
// register them before the grid starts receiving viewport signals.
func (g *Grid) OnAppend(fn func(AppendEvent)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events.append = append(g.events.append, fn)
}

// OnPrepend subscribes to prepend requests.
func (g *Grid) OnPrepend(fn func(PrependEvent)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events.prepend = append(g.events.prepend, fn)
}

// OnLayoutComplete subscribes to layout completion notifications.
func (g *Grid) OnLayoutComplete(fn func(LayoutCompleteEvent)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events.complete = append(g.events.complete, fn)
}
