package app

import (
	"context"
	"io"

	"github.com/dshills/keycalc/internal/config"
	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/input/keymap"
	"github.com/dshills/keycalc/internal/plugin/lua"
	"github.com/dshills/keycalc/internal/prefs"
	"github.com/dshills/keycalc/internal/renderer/backend"
	"github.com/dshills/keycalc/internal/renderer/theme"
)

// bootstrap initializes components in dependency order:
//
//  1. Configuration
//  2. Logging
//  3. Preferences
//  4. Engine
//  5. Key bindings
//  6. Theme
//  7. Scripting
func (app *Application) bootstrap(ctx context.Context) error {
	// 1. Configuration
	app.config = config.New(
		config.WithPath(app.opts.ConfigPath),
		config.WithWatcher(app.opts.WatchConfig),
	)
	if err := app.config.Load(ctx); err != nil {
		return NewComponentError("config", "load "+app.config.Path(), err)
	}

	// 2. Logging
	if err := app.initLogging(); err != nil {
		return err
	}
	app.logger.Info("starting, config %s", app.config.Path())

	// 3. Preferences
	path := app.opts.PrefsPath
	if path == "" {
		path = prefs.DefaultPath()
	}
	app.prefs = prefs.New(path)
	if err := app.prefs.Load(); err != nil {
		app.logger.WithComponent("prefs").Warn("ignoring preferences: %v", err)
	}

	// 4. Engine
	ec := app.config.Engine()
	app.engine = engine.New(
		engine.WithMaxHistory(ec.HistorySize),
		engine.WithPrecision(ec.Precision),
	)

	// 5. Key bindings
	app.keymaps = keymap.NewRegistry()
	if err := keymap.LoadDefaults(app.keymaps); err != nil {
		return NewComponentError("keymap", "load defaults", err)
	}
	app.loadUserKeymap(app.config.Keymap())

	// 6. Theme
	app.configTheme = app.config.UI().Theme
	app.themeName = app.resolveTheme()

	// 7. Scripting
	out := app.opts.ScriptOutput
	if out == nil {
		out = io.Discard
	}
	app.scripts = lua.NewState(lua.WithOutput(out))
	lua.OpenCalc(app.scripts, app.engine)

	log := app.logger.WithComponent("script")
	for _, path := range app.config.Scripts().Startup {
		if err := app.scripts.DoFile(ctx, path); err != nil {
			log.Warn("startup script %s: %v", path, err)
		}
	}
	for _, path := range app.opts.Scripts {
		if err := app.scripts.DoFile(ctx, path); err != nil {
			return NewComponentError("script", "run "+path, err)
		}
		log.Debug("ran %s", path)
	}

	app.config.OnReload(app.applyConfig)
	return nil
}

// initLogging builds the session logger. The log file, when configured,
// takes precedence over discarding but not over Options.LogOutput.
func (app *Application) initLogging() error {
	lc := app.config.Logging()
	level := lc.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}

	out := app.opts.LogOutput
	if out == nil {
		out = io.Discard
		if lc.File != "" {
			f, err := OpenLogFile(lc.File)
			if err != nil {
				return NewComponentError("logging", "open "+lc.File, err)
			}
			app.logFile = f
			out = f
		}
	}

	app.logger = NewSessionLogger(LoggerConfig{
		Level:  ParseLogLevel(level),
		Output: out,
		Prefix: "keycalc",
	}, app.session)
	return nil
}

// resolveTheme picks the theme: the -theme flag, then ui.theme, then the
// saved preference, then light.
func (app *Application) resolveTheme() string {
	if app.opts.Theme != "" {
		return app.opts.Theme
	}
	if app.configTheme != "" {
		return app.configTheme
	}
	if name, ok := app.prefs.Get(prefs.KeyTheme); ok {
		if _, err := theme.ByName(name); err == nil {
			return name
		}
	}
	return theme.NameLight
}

// buildTheme returns the named theme with the config palette applied. Bad
// names or colors fall back to the built-in values.
func (app *Application) buildTheme(name string) theme.Theme {
	log := app.logger.WithComponent("theme")

	t, err := theme.ByName(name)
	if err != nil {
		log.Warn("%v, using %s", err, theme.NameLight)
		t = theme.Light()
	}

	p := app.config.Palette(t.Name)
	custom, err := t.WithPalette(theme.Palette{
		Background: p.Background,
		Foreground: p.Foreground,
		Accent:     p.Accent,
		Error:      p.Error,
	})
	if err != nil {
		log.Warn("palette %s: %v", t.Name, err)
		return t
	}
	return custom
}

// loadUserKeymap replaces the user keymap with the [keymap] overrides.
func (app *Application) loadUserKeymap(bindings map[string]string) {
	app.keymaps.Unregister(keymap.UserName)
	if len(bindings) == 0 {
		return
	}

	km := keymap.FromMap(keymap.UserName, bindings).
		WithPriority(keymap.UserPriority).
		WithSource(app.config.Path())
	if err := app.keymaps.Register(km); err != nil {
		app.logger.WithComponent("keymap").Warn("ignoring user keymap: %v", err)
	}
}

// applyConfig re-applies reloadable settings after the config file
// changes. Engine sizing takes effect on the next start.
func (app *Application) applyConfig(c *config.Config) {
	app.logger.SetLevel(ParseLogLevel(c.Logging().Level))
	if app.opts.LogLevel != "" {
		app.logger.SetLevel(ParseLogLevel(app.opts.LogLevel))
	}

	app.loadUserKeymap(c.Keymap())

	ui := c.UI()
	app.mu.Lock()
	if ui.Theme != app.configTheme {
		app.configTheme = ui.Theme
		app.themeName = app.resolveTheme()
	}
	name := app.themeName
	r := app.renderer
	b := app.backend
	app.mu.Unlock()

	if r != nil {
		r.SetTheme(app.buildTheme(name))
		r.SetShowMemory(ui.ShowMemory)
		r.SetErrorDuration(ui.ErrorDisplay)
		r.SetLegend(BuildLegend(app.keymaps))
	}
	if b != nil && app.running.Load() {
		b.PostEvent(backend.Event{Type: backend.EventRedraw})
	}
	app.logger.Info("configuration reloaded")
}
