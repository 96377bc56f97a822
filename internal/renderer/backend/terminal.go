package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/keycalc/internal/input/key"
)

// redrawRequest is the payload of interrupt events posted for EventRedraw.
type redrawRequest struct{}

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Init()
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetContent(x, y int, mainc rune, combc []rune, style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, mainc, combc, convertStyle(style))
}

func (t *Terminal) Clear(style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetStyle(convertStyle(style))
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// PollEvent blocks until a key, resize or redraw event arrives. Events the
// calculator has no use for (mouse, paste, focus) are skipped.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventClosed}
		}
		if out := convertEvent(ev); out.Type != EventNone {
			return out
		}
	}
}

func (t *Terminal) PostEvent(event Event) {
	switch event.Type {
	case EventRedraw:
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(redrawRequest{})) // best-effort; queue may be full
	case EventKey:
		k, r, mod := convertToTcellKey(event.Key)
		_ = t.screen.PostEvent(tcell.NewEventKey(k, r, mod))
	}
}

// convertColor converts a palette color to a tcell true color.
func convertColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background)).
		Bold(s.Bold)
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKey(e)
		if !ok {
			return Event{}
		}
		return Event{Type: EventKey, Key: k}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		if _, ok := e.Data().(redrawRequest); ok {
			return Event{Type: EventRedraw}
		}
		return Event{}

	default:
		return Event{}
	}
}

// convertKey converts a tcell key event to a key.Event. Control
// characters become Ctrl plus the lowercase letter so that "<C-c>" style
// bindings match.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())

	switch k := e.Key(); k {
	case tcell.KeyRune:
		return key.NewRuneEvent(e.Rune(), mods), true
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods.Without(key.ModCtrl)), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			r := 'a' + rune(k-tcell.KeyCtrlA)
			return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
		}
		return key.Event{}, false
	}
}

// convertToTcellKey converts a key.Event to tcell key, rune and modifiers.
func convertToTcellKey(ev key.Event) (tcell.Key, rune, tcell.ModMask) {
	mod := convertToTcellMod(ev.Modifiers)

	switch ev.Key {
	case key.KeyRune:
		if ev.Modifiers.Has(key.ModCtrl) && ev.Rune >= 'a' && ev.Rune <= 'z' {
			return tcell.KeyCtrlA + tcell.Key(ev.Rune-'a'), 0, mod
		}
		return tcell.KeyRune, ev.Rune, mod
	case key.KeyEscape:
		return tcell.KeyEscape, 0, mod
	case key.KeyEnter:
		return tcell.KeyEnter, 0, mod
	case key.KeyTab:
		return tcell.KeyTab, 0, mod
	case key.KeyBackspace:
		return tcell.KeyBackspace2, 0, mod
	case key.KeyDelete:
		return tcell.KeyDelete, 0, mod
	case key.KeyUp:
		return tcell.KeyUp, 0, mod
	case key.KeyDown:
		return tcell.KeyDown, 0, mod
	case key.KeyLeft:
		return tcell.KeyLeft, 0, mod
	case key.KeyRight:
		return tcell.KeyRight, 0, mod
	default:
		return tcell.KeyRune, ev.Rune, mod
	}
}

// convertMod converts tcell modifier mask to key.Modifier.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}

// convertToTcellMod converts key.Modifier to tcell.ModMask.
func convertToTcellMod(m key.Modifier) tcell.ModMask {
	var result tcell.ModMask
	if m.Has(key.ModShift) {
		result |= tcell.ModShift
	}
	if m.Has(key.ModCtrl) {
		result |= tcell.ModCtrl
	}
	if m.Has(key.ModAlt) {
		result |= tcell.ModAlt
	}
	if m.Has(key.ModMeta) {
		result |= tcell.ModMeta
	}
	return result
}
