package app

import (
	"errors"
	"time"

	"github.com/dshills/keycalc/internal/engine/expr"
	"github.com/dshills/keycalc/internal/input/keymap"
	"github.com/dshills/keycalc/internal/prefs"
	"github.com/dshills/keycalc/internal/renderer"
	"github.com/dshills/keycalc/internal/renderer/backend"
	"github.com/dshills/keycalc/internal/renderer/theme"
)

// Run opens the display and processes input until quit, backend close or
// Shutdown. A quit key returns nil.
func (app *Application) Run() error {
	if app.closed.Load() {
		return ErrClosed
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return NewComponentError("backend", "create terminal", err)
		}
		b = term
		app.mu.Lock()
		app.backend = b
		app.mu.Unlock()
	}

	if err := b.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer b.Shutdown()

	ui := app.config.UI()
	r := renderer.New(b,
		renderer.WithTheme(app.buildTheme(app.ThemeName())),
		renderer.WithShowMemory(ui.ShowMemory),
		renderer.WithErrorDuration(ui.ErrorDisplay),
		renderer.WithLegend(BuildLegend(app.keymaps)),
	)
	app.mu.Lock()
	app.renderer = r
	app.mu.Unlock()
	defer r.Close()

	app.logger.Debug("event loop started")
	return app.eventLoop(b, r)
}

func (app *Application) eventLoop(b backend.Backend, r *renderer.Renderer) error {
	events := app.startInputPolling(b)
	app.render(r)

	for {
		select {
		case <-app.done:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			err := app.handleBackendEvent(ev)
			if errors.Is(err, ErrQuit) || errors.Is(err, errBackendClosed) {
				return nil
			}
			app.render(r)
		}
	}
}

func (app *Application) render(r *renderer.Renderer) {
	start := time.Now()
	r.Render(app.engine.ViewState())
	app.metrics.RecordRender(time.Since(start))
}

var errBackendClosed = errors.New("backend closed")

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel.
//
// PollEvent is blocking, so the goroutine exits once the backend is shut
// down and returns EventClosed.
func (app *Application) startInputPolling(b backend.Backend) <-chan backend.Event {
	events := make(chan backend.Event, 64)

	go func() {
		defer close(events)
		for {
			ev := b.PollEvent()
			select {
			case events <- ev:
			case <-app.done:
				return
			}
			if ev.Type == backend.EventClosed {
				return
			}
		}
	}()

	return events
}

// handleBackendEvent processes a backend event. Resize and redraw events
// need nothing beyond the render the loop performs after every event.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventClosed:
		return errBackendClosed
	default:
		return nil
	}
}

// handleKeyEvent looks up the key and dispatches its action. Unbound keys
// are ignored.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	action, ok := app.keymaps.Action(ev.Key)
	app.metrics.RecordKey(ok)
	if !ok {
		app.logger.Debug("unbound key %s", ev.Key)
		return nil
	}

	err := app.Dispatch(action)
	if errors.Is(err, ErrQuit) {
		return err
	}
	return nil
}

// Dispatch performs one action. Evaluation failures are logged, flash
// "Error" on screen and return an *OperationError; quit returns ErrQuit.
func (app *Application) Dispatch(action keymap.Action) error {
	if app.closed.Load() {
		return ErrClosed
	}

	app.metrics.RecordAction()
	before := app.engine.ViewState().DisplayText
	err := keymap.Apply(app.engine, action)
	if action.Kind == keymap.KindEvaluate {
		app.metrics.RecordEvaluation(err != nil)
	}
	switch {
	case err == nil:
		return nil

	case errors.Is(err, keymap.ErrNotEngineAction):
		switch action.Kind {
		case keymap.KindTheme:
			app.ToggleTheme()
			return nil
		case keymap.KindQuit:
			return ErrQuit
		}
		return nil

	default:
		opErr := NewOperationError(action.String(), before, err)
		app.logEvalFailure(before, err)

		app.mu.Lock()
		r := app.renderer
		app.mu.Unlock()
		if r != nil && action.Kind == keymap.KindEvaluate {
			r.FlashError()
		}
		return opErr
	}
}

// logEvalFailure logs a failed evaluation at warn level with its kind.
func (app *Application) logEvalFailure(expression string, err error) {
	log := app.logger.WithComponent("engine")
	var e *expr.Error
	if errors.As(err, &e) {
		log = log.WithFields(map[string]any{"kind": e.Kind, "pos": e.Pos})
	}
	log.Warn("evaluation of %q failed: %v", expression, err)
}

// ToggleTheme switches between light and dark and saves the choice.
func (app *Application) ToggleTheme() {
	app.mu.Lock()
	app.themeName = theme.Toggle(app.themeName)
	name := app.themeName
	r := app.renderer
	app.mu.Unlock()

	app.prefs.Set(prefs.KeyTheme, name)
	if err := app.prefs.Save(); err != nil {
		app.logger.WithComponent("prefs").Warn("saving theme: %v", err)
	}
	if r != nil {
		r.SetTheme(app.buildTheme(name))
	}
	app.logger.Debug("theme %s", name)
}
