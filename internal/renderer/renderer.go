package renderer

import (
	"strings"
	"sync"
	"time"

	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/renderer/backend"
	"github.com/dshills/keycalc/internal/renderer/theme"
)

// DefaultErrorDuration is how long "Error" stays on the display after a
// failed evaluation.
const DefaultErrorDuration = 800 * time.Millisecond

// LegendItem is one entry of the key legend, e.g. {"Enter/=", "evaluate"}.
type LegendItem struct {
	Keys  string
	Label string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the initial theme.
func WithTheme(t theme.Theme) Option {
	return func(r *Renderer) { r.theme = t }
}

// WithShowMemory toggles the memory indicator.
func WithShowMemory(show bool) Option {
	return func(r *Renderer) { r.showMemory = show }
}

// WithErrorDuration sets how long "Error" is shown. Zero keeps it until the
// next operation.
func WithErrorDuration(d time.Duration) Option {
	return func(r *Renderer) { r.errorFor = d }
}

// WithLegend sets the key legend shown at the bottom of the screen.
func WithLegend(items []LegendItem) Option {
	return func(r *Renderer) { r.legend = items }
}

// Renderer draws engine views onto a backend.
type Renderer struct {
	mu sync.Mutex

	backend backend.Backend

	// Configuration
	theme      theme.Theme
	showMemory bool
	errorFor   time.Duration
	legend     []LegendItem

	// Error display state
	flash      bool
	flashTimer *time.Timer

	frames uint64
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts ...Option) *Renderer {
	r := &Renderer{
		backend:    b,
		theme:      theme.Light(),
		showMemory: true,
		errorFor:   DefaultErrorDuration,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetTheme replaces the theme. The caller renders afterwards.
func (r *Renderer) SetTheme(t theme.Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = t
}

// Theme returns the current theme.
func (r *Renderer) Theme() theme.Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.theme
}

// SetShowMemory toggles the memory indicator.
func (r *Renderer) SetShowMemory(show bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.showMemory = show
}

// SetErrorDuration changes how long "Error" is shown.
func (r *Renderer) SetErrorDuration(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorFor = d
}

// SetLegend replaces the key legend.
func (r *Renderer) SetLegend(items []LegendItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.legend = append([]LegendItem(nil), items...)
}

// FlashError shows "Error" in place of the display while the view reports a
// failed evaluation. After the error duration the display reverts and an
// EventRedraw is posted to the backend so the owner redraws.
func (r *Renderer) FlashError() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flash = true
	if r.flashTimer != nil {
		r.flashTimer.Stop()
		r.flashTimer = nil
	}
	if r.errorFor <= 0 {
		return
	}
	r.flashTimer = time.AfterFunc(r.errorFor, func() {
		r.mu.Lock()
		r.flash = false
		r.flashTimer = nil
		r.mu.Unlock()
		r.backend.PostEvent(backend.Event{Type: backend.EventRedraw})
	})
}

// ErrorShowing reports whether "Error" would currently replace a failed
// view's display.
func (r *Renderer) ErrorShowing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flash
}

// Close stops any pending error revert.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.flashTimer != nil {
		r.flashTimer.Stop()
		r.flashTimer = nil
	}
	r.flash = false
}

// Frames returns the number of frames drawn.
func (r *Renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Render draws v:
//
//	keycalc                   M
//
//	                      12+3.5
//	────────────────────────────
//	                  2+3 = 5
//	                Memory M+ = 5
//	...
//	0-9 digit  + - * / op  Enter/= evaluate ...
func (r *Renderer) Render(v engine.View) {
	r.mu.Lock()
	th := r.theme
	showMemory := r.showMemory
	flash := r.flash && v.Failed
	legend := r.legend
	r.frames++
	r.mu.Unlock()

	base := backend.Style{Foreground: th.Foreground, Background: th.Background}
	muted := backend.Style{Foreground: th.Muted(), Background: th.Background}
	accent := backend.Style{Foreground: th.Accent, Background: th.Background, Bold: true}

	r.backend.Clear(base)
	w, h := r.backend.Size()
	if w < 4 || h < 1 {
		r.backend.Show()
		return
	}
	inner := w - 2
	right := w - 1

	// Title bar and memory indicator
	drawText(r.backend, 1, 0, truncateRight("keycalc", inner-2), accent)
	if showMemory && v.Memory != 0 {
		drawRight(r.backend, right, 0, "M", accent)
	}

	// Display
	if h > 2 {
		text, st := v.DisplayText, base
		if flash {
			text, st = engine.DisplayError, backend.Style{Foreground: th.Error, Background: th.Background}
		}
		st.Bold = true
		drawRight(r.backend, right, 2, truncateLeft(text, inner), st)
	}
	if h > 3 {
		drawText(r.backend, 1, 3, strings.Repeat("─", inner), muted)
	}

	// Legend occupies the bottom rows; history fills what is left.
	legendLines := wrapLegend(legend, inner)
	legendTop := h - len(legendLines)
	if legendTop < 4 {
		legendLines = nil
		legendTop = h
	}
	for i, line := range legendLines {
		x := 1
		for j, item := range line {
			if j > 0 {
				x = drawText(r.backend, x, legendTop+i, legendGap, muted)
			}
			x = drawText(r.backend, x, legendTop+i, item.Keys, accent)
			x = drawText(r.backend, x, legendTop+i, " "+item.Label, muted)
		}
	}

	historyBottom := legendTop
	if len(legendLines) > 0 {
		historyBottom-- // blank row above the legend
	}
	for i, line := range v.HistoryLines {
		y := 4 + i
		if y >= historyBottom {
			break
		}
		drawRight(r.backend, right, y, truncateLeft(line, inner), muted)
	}

	r.backend.Show()
}
