package app

import (
	"context"
	"io"

	"github.com/dshills/keycalc/internal/batch"
	"github.com/dshills/keycalc/internal/input/keymap"
	"github.com/dshills/keycalc/internal/repl"
)

// NewRunner returns a batch runner over the application's engine. Theme
// actions toggle the saved theme and evaluation failures are logged.
func (app *Application) NewRunner(opts ...batch.Option) *batch.Runner {
	base := []batch.Option{
		batch.WithHandler(app.handleLineAction),
		batch.WithEvalHook(app.logEvalFailure),
	}
	return batch.New(app.engine, append(base, opts...)...)
}

func (app *Application) handleLineAction(a keymap.Action) error {
	switch a.Kind {
	case keymap.KindTheme:
		app.ToggleTheme()
	case keymap.KindQuit:
		return batch.ErrQuit
	}
	return nil
}

// RunBatch feeds token lines from in and prints each display to out.
func (app *Application) RunBatch(ctx context.Context, in io.Reader, out io.Writer, keepGoing bool) error {
	if app.closed.Load() {
		return ErrClosed
	}
	app.logger.Debug("batch mode")
	return app.NewRunner(batch.WithKeepGoing(keepGoing)).Run(ctx, in, out)
}

// RunREPL runs the interactive line mode on the terminal.
func (app *Application) RunREPL(ctx context.Context, out io.Writer, historyFile string) error {
	if app.closed.Load() {
		return ErrClosed
	}
	var opts []repl.Option
	if historyFile != "" {
		opts = append(opts, repl.WithHistoryFile(historyFile))
	}
	app.logger.Debug("repl mode")
	return repl.New(app.NewRunner(batch.WithKeepGoing(true)), out, opts...).Run(ctx)
}
