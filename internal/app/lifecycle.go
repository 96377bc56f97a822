package app

import (
	"time"

	"github.com/dshills/keycalc/internal/export"
)

// Shutdown stops Run, writes the history export when requested, saves
// preferences and releases resources. It is safe to call more than once
// and from any goroutine; only the first call does work.
func (app *Application) Shutdown() error {
	var errs ErrorList

	app.closeOnce.Do(func() {
		app.closed.Store(true)
		close(app.done)

		app.mu.Lock()
		r := app.renderer
		app.mu.Unlock()
		if r != nil {
			r.Close()
		}

		if app.opts.ExportPath != "" && app.engine != nil {
			snap := export.Take(app.engine, app.session.String(), time.Now().UTC())
			if err := export.WriteFile(app.opts.ExportPath, snap); err != nil {
				errs.Add(NewComponentError("export", "write "+app.opts.ExportPath, err))
			} else {
				app.logger.Info("exported %d history entries to %s", len(snap.History), app.opts.ExportPath)
			}
		}

		if app.prefs != nil {
			errs.Add(wrapComponent("prefs", "save", app.prefs.Save()))
		}
		if app.scripts != nil {
			errs.Add(wrapComponent("script", "close", app.scripts.Close()))
		}
		if app.config != nil {
			errs.Add(wrapComponent("config", "close", app.config.Close()))
		}

		for _, err := range errs.Unwrap() {
			app.logger.Error("shutdown: %v", err)
		}
		m := app.metrics.Snapshot()
		app.logger.WithFields(map[string]any{
			"actions":     m.Actions,
			"evaluations": m.Evaluations,
			"failures":    m.EvalFailures,
		}).Info("stopped after %s", m.Uptime.Round(time.Millisecond))

		if app.logFile != nil {
			errs.Add(wrapComponent("logging", "close", app.logFile.Close()))
		}
	})

	return errs.AsError()
}

func wrapComponent(component, action string, err error) error {
	if err == nil {
		return nil
	}
	return NewComponentError(component, action, err)
}
