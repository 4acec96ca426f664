package cli

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/gridkit/infinigrid/pkg/feed"
	"github.com/gridkit/infinigrid/pkg/grid"
)

// Unit-to-cell mapping. Grid geometry is in abstract layout units; the
// canvas maps 100 units (one column width) to 24 terminal cells and 20
// units to one row, so a 60-unit card is a 3-row box.
const (
	cellUnit = 100.0 / 24
	rowUnit  = 20.0
)

// =============================================================================
// Canvas - Renderer and Viewport over a terminal buffer
// =============================================================================

// cardElement is the renderer-side handle for one feed card.
type cardElement struct {
	card feed.Card
}

type placedCard struct {
	pos  grid.Point
	size grid.Size
}

// canvas implements grid.Renderer and grid.Viewport over a virtual text
// buffer. It has its own mutex because the grid's debounce and poll timers
// call into it from goroutines other than the bubbletea update loop.
type canvas struct {
	mu       sync.Mutex
	cols     int // terminal columns
	rows     int // terminal rows available for cards
	offset   float64
	contentH float64
	cards    map[*cardElement]placedCard
}

func newCanvas() *canvas {
	return &canvas{cards: make(map[*cardElement]placedCard)}
}

func (c *canvas) setSize(cols, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cols = cols
	c.rows = rows
}

// Measure returns the card's intrinsic size from the feed.
func (c *canvas) Measure(el grid.Element) grid.Size {
	card := el.(*cardElement).card
	return grid.Size{Width: card.Width, Height: card.Height}
}

// SetPosition records the card's committed position.
func (c *canvas) SetPosition(el grid.Element, pos grid.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pc, ok := c.cards[el.(*cardElement)]; ok {
		pc.pos = pos
		c.cards[el.(*cardElement)] = pc
	}
}

// Insert materializes cards on the canvas. Order does not matter here; the
// grid owns geometry and the view sorts by position.
func (c *canvas) Insert(els []grid.Element, _ bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, el := range els {
		ce := el.(*cardElement)
		c.cards[ce] = placedCard{size: grid.Size{Width: ce.card.Width, Height: ce.card.Height}}
	}
}

// Remove releases an evicted card.
func (c *canvas) Remove(el grid.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cards, el.(*cardElement))
}

// SetContainerHeight records the content extent for scroll clamping.
func (c *canvas) SetContainerHeight(h float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contentH = h
}

// Width reports the viewport width in layout units.
func (c *canvas) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.cols) * cellUnit
}

// Height reports the viewport height in layout units.
func (c *canvas) Height() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.rows) * rowUnit
}

// ScrollOffset reports the scroll position in layout units.
func (c *canvas) ScrollOffset() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}

// SetScrollOffset moves the scroll position. Clamping happens in scrollBy;
// synthetic corrections from the grid are applied verbatim.
func (c *canvas) SetScrollOffset(offset float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = offset
}

// scrollBy shifts the offset by delta units, clamped to the content.
func (c *canvas) scrollBy(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset += delta
	max := c.contentH - float64(c.rows)*rowUnit
	if c.offset > max {
		c.offset = max
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

// bottomVisible returns the card whose top edge sits lowest inside the
// viewport, used by the demo's delete binding.
func (c *canvas) bottomVisible() *cardElement {
	c.mu.Lock()
	defer c.mu.Unlock()
	viewBottom := c.offset + float64(c.rows)*rowUnit
	var best *cardElement
	bestY := -1.0
	for ce, pc := range c.cards {
		if pc.pos.Y >= c.offset-pc.size.Height && pc.pos.Y < viewBottom && pc.pos.Y > bestY {
			best = ce
			bestY = pc.pos.Y
		}
	}
	return best
}

// render draws the visible slice of the card buffer as plain terminal rows.
func (c *canvas) render() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cols < 1 || c.rows < 1 {
		return nil
	}

	buf := make([][]rune, c.rows)
	for i := range buf {
		buf[i] = make([]rune, c.cols)
		for j := range buf[i] {
			buf[i][j] = ' '
		}
	}

	for ce, pc := range c.cards {
		x := int(pc.pos.X / cellUnit)
		y := int((pc.pos.Y - c.offset) / rowUnit)
		w := int(pc.size.Width / cellUnit)
		h := int(pc.size.Height / rowUnit)
		if h < 2 {
			h = 2
		}
		drawBox(buf, y, x, h, w, ce.card.Title)
	}

	lines := make([]string, len(buf))
	for i, row := range buf {
		lines[i] = string(row)
	}
	return lines
}

// drawBox blits a bordered box with a title into buf, clipping to the
// buffer bounds.
func drawBox(buf [][]rune, top, left, height, width int, title string) {
	put := func(r, c int, ch rune) {
		if r < 0 || r >= len(buf) || c < 0 || c >= len(buf[r]) {
			return
		}
		buf[r][c] = ch
	}

	bottom := top + height - 1
	right := left + width - 1
	for col := left + 1; col < right; col++ {
		put(top, col, '─')
		put(bottom, col, '─')
	}
	for row := top + 1; row < bottom; row++ {
		put(row, left, '│')
		put(row, right, '│')
	}
	put(top, left, '╭')
	put(top, right, '╮')
	put(bottom, left, '╰')
	put(bottom, right, '╯')

	maxTitle := width - 4
	if maxTitle > 0 {
		runes := []rune(title)
		if len(runes) > maxTitle {
			runes = runes[:maxTitle]
		}
		for i, ch := range runes {
			put(top+1, left+2+i, ch)
		}
	}
}

// =============================================================================
// Page Sources
// =============================================================================

// pageSource supplies pages in both directions, hiding whether the feed is
// local or remote.
type pageSource interface {
	After(ctx context.Context, key string) (feed.Page, error)
	Before(ctx context.Context, key string) (feed.Page, error)
}

// =============================================================================
// Demo Model
// =============================================================================

type (
	appendRequestMsg  struct{ scrollTop float64 }
	prependRequestMsg struct{ scrollTop float64 }
	layoutDoneMsg     struct{ ev grid.LayoutCompleteEvent }
	pageMsg           struct {
		page    feed.Page
		prepend bool
	}
	fetchErrMsg struct{ err error }
)

// demoModel is the bubbletea model for the interactive grid demo.
type demoModel struct {
	g      *grid.Grid
	canvas *canvas
	src    pageSource
	logger *log.Logger

	program  *tea.Program
	savePath string

	loading bool
	status  string
	fatal   error
}

func newDemoModel(g *grid.Grid, cv *canvas, src pageSource, logger *log.Logger, savePath string) *demoModel {
	return &demoModel{
		g:        g,
		canvas:   cv,
		src:      src,
		logger:   logger,
		savePath: savePath,
		status:   "loading feed",
	}
}

// setProgram wires the running program so grid events arriving on other
// goroutines can be forwarded into the update loop. Must be called before
// the program runs.
func (m *demoModel) setProgram(p *tea.Program) {
	m.program = p
	m.g.OnAppend(func(ev grid.AppendEvent) {
		p.Send(appendRequestMsg{scrollTop: ev.ScrollTop})
	})
	m.g.OnPrepend(func(ev grid.PrependEvent) {
		p.Send(prependRequestMsg{scrollTop: ev.ScrollTop})
	})
	m.g.OnLayoutComplete(func(ev grid.LayoutCompleteEvent) {
		p.Send(layoutDoneMsg{ev: ev})
	})
}

func (m *demoModel) Init() tea.Cmd {
	// Resumed sessions already have a window; fresh ones load page 0.
	if m.g.WindowLen() > 0 {
		m.status = fmt.Sprintf("restored %d cards", m.g.WindowLen())
		return nil
	}
	return m.fetchCmd("", false)
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.canvas.setSize(msg.Width, msg.Height-2)
		m.g.OnResize(float64(msg.Width)*cellUnit, float64(msg.Height-2)*rowUnit)
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(-rowUnit)
		case tea.MouseButtonWheelDown:
			m.scroll(rowUnit)
		}
		return m, nil

	case appendRequestMsg:
		return m, m.requestPage(false)

	case prependRequestMsg:
		return m, m.requestPage(true)

	case pageMsg:
		m.loading = false
		els := make([]grid.Element, len(msg.page.Cards))
		for i, card := range msg.page.Cards {
			els[i] = &cardElement{card: card}
		}
		if n := m.g.Insert(els, msg.page.GroupKey, msg.prepend); n == 0 {
			m.status = "insert dropped, retrying on next trigger"
		} else {
			m.status = fmt.Sprintf("loaded %s", msg.page.GroupKey)
		}
		return m, nil

	case fetchErrMsg:
		m.loading = false
		m.status = "feed error: " + msg.err.Error()
		m.logger.Error("fetch page", "error", msg.err)
		return m, nil

	case layoutDoneMsg:
		if msg.ev.CroppedCount > 0 {
			m.status = fmt.Sprintf("window %d cards, recycled %d", m.g.WindowLen(), msg.ev.CroppedCount)
		}
		return m, nil
	}
	return m, nil
}

func (m *demoModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if err := m.saveSnapshot(); err != nil {
			m.logger.Error("save snapshot", "error", err)
		}
		return m, tea.Quit
	case "up", "k":
		m.scroll(-rowUnit)
	case "down", "j":
		m.scroll(rowUnit)
	case "pgup":
		m.scroll(-m.canvas.Height())
	case "pgdown", " ":
		m.scroll(m.canvas.Height())
	case "r":
		m.g.Layout(true)
		m.status = "relayout"
	case "d":
		if el := m.canvas.bottomVisible(); el != nil {
			if st, err := m.g.Remove(el); err == nil {
				m.status = "removed " + st.Key
			}
		}
	case "c":
		m.g.Clear()
		m.canvas.SetScrollOffset(0)
		m.status = "cleared"
		return m, m.fetchCmd("", false)
	case "s":
		if err := m.saveSnapshot(); err != nil {
			m.status = "save failed: " + err.Error()
		} else if m.savePath != "" {
			m.status = "saved " + m.savePath
		}
	}
	return m, nil
}

func (m *demoModel) View() string {
	if m.fatal != nil {
		return "error: " + m.fatal.Error() + "\n"
	}

	header := StyleTitle.Render(" infinigrid ") +
		styleStatusBar.Render(fmt.Sprintf(" %d cards · offset %.0f · %s", m.g.WindowLen(), m.canvas.ScrollOffset(), m.status))

	body := ""
	for _, line := range m.canvas.render() {
		body += line + "\n"
	}

	help := helpLine("j/k", "scroll", "space", "page", "r", "relayout", "d", "delete", "c", "clear", "s", "save", "q", "quit")
	return header + "\n" + body + help
}

// scroll moves the viewport and feeds the signal to the trigger machine.
func (m *demoModel) scroll(delta float64) {
	m.canvas.scrollBy(delta)
	m.g.OnScroll()
}

// requestPage turns a grid trigger into a fetch command, keyed off the
// current window edges. At most one fetch runs at a time; the grid
// re-triggers on the next scroll if a request was dropped.
func (m *demoModel) requestPage(prepend bool) tea.Cmd {
	if m.loading {
		return nil
	}
	keys := m.g.GroupKeys()
	key := ""
	if prepend {
		if len(keys) == 0 {
			return nil
		}
		key = keys[0]
	} else if len(keys) > 0 {
		key = keys[len(keys)-1]
	}
	m.loading = true
	return m.fetchCmd(key, prepend)
}

func (m *demoModel) fetchCmd(key string, prepend bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var (
			page feed.Page
			err  error
		)
		if prepend {
			page, err = m.src.Before(ctx, key)
		} else {
			page, err = m.src.After(ctx, key)
		}
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return pageMsg{page: page, prepend: prepend}
	}
}

func (m *demoModel) saveSnapshot() error {
	if m.savePath == "" {
		return nil
	}
	return saveStatus(m.g, m.savePath)
}
