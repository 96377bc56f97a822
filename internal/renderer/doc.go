// Package renderer draws the calculator screen.
//
// The screen shows, top to bottom: a title bar with the memory indicator,
// the right-aligned display, the history lines (newest first) and a key
// legend:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer                      │
//	│  layout │ theme │ error display timer   │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// Text is measured in terminal cells with grapheme clusters, so the display
// stays right-aligned regardless of the characters in it.
//
// After a failed evaluation the owner calls FlashError; the display shows
// "Error" until the error duration elapses, then the renderer posts an
// EventRedraw to the backend and the next Render shows the display again.
//
// Usage:
//
//	b, _ := backend.NewTerminal()
//	r := renderer.New(b, renderer.WithTheme(theme.Dark()))
//	r.Render(eng.ViewState())
package renderer
