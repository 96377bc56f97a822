// Package backend provides terminal backend abstraction for the renderer.
package backend

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/keycalc/internal/input/key"
)

// EventType identifies the type of backend event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventRedraw is posted by timers that change what is on screen, such
	// as the error display reverting.
	EventRedraw
	// EventClosed is returned once the backend has shut down.
	EventClosed
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventRedraw:
		return "redraw"
	case EventClosed:
		return "closed"
	default:
		return "none"
	}
}

// Event represents a backend event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// Style is the appearance of one cell.
type Style struct {
	Foreground colorful.Color
	Background colorful.Color
	Bold       bool
}

// Cell is one rendered screen position.
type Cell struct {
	Rune  rune
	Combc []rune
	Style Style
}

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current dimensions.
	Size() (width, height int)

	// SetContent sets a cell. Positions outside the screen are ignored.
	SetContent(x, y int, mainc rune, combc []rune, style Style)

	// Clear fills the screen with spaces in style.
	Clear(style Style)

	// Show flushes pending changes to the display.
	Show()

	// PollEvent waits for and returns the next event.
	PollEvent() Event

	// PostEvent queues a synthetic event. Safe to call from any goroutine.
	PostEvent(event Event)
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	width, height int
	cells         [][]Cell
	shows         int
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = Cell{Rune: ' '}
		}
	}
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {
	b.PostEvent(Event{Type: EventClosed})
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetContent(x, y int, mainc rune, combc []rune, style Style) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = Cell{Rune: mainc, Combc: combc, Style: style}
	}
}

func (b *NullBackend) Clear(style Style) {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = Cell{Rune: ' ', Style: style}
		}
	}
}

func (b *NullBackend) Show() { b.shows++ }

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Cell returns the cell at the given position for testing.
func (b *NullBackend) Cell(x, y int) Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return Cell{}
}

// Line returns row y as text for testing.
func (b *NullBackend) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var out []rune
	for _, c := range b.cells[y] {
		out = append(out, c.Rune)
		out = append(out, c.Combc...)
	}
	return string(out)
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	return b.shows
}

// Resize simulates a terminal resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
