// Package app wires the calculator together: configuration, the engine,
// key bindings, rendering, scripting and the batch and REPL front-ends.
package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/keycalc/internal/config"
	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/input/keymap"
	"github.com/dshills/keycalc/internal/plugin/lua"
	"github.com/dshills/keycalc/internal/prefs"
	"github.com/dshills/keycalc/internal/renderer"
	"github.com/dshills/keycalc/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// PrefsPath overrides the default preference file location.
	PrefsPath string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// LogOutput receives log lines. When nil, logs go to logging.file or
	// are discarded.
	LogOutput io.Writer

	// Theme overrides ui.theme and the saved preference when set.
	Theme string

	// Scripts are Lua files run after the startup scripts. Unlike startup
	// scripts, a failure here fails New.
	Scripts []string

	// ScriptOutput receives print() output from scripts. Defaults to
	// io.Discard.
	ScriptOutput io.Writer

	// ExportPath, when set, receives a JSON history export at shutdown.
	ExportPath string

	// WatchConfig enables live reload of the config file.
	WatchConfig bool
}

// Application is the main application structure.
type Application struct {
	mu sync.Mutex

	opts    Options
	session uuid.UUID
	logger  *Logger
	logFile io.Closer
	metrics *Metrics

	// Core components
	config   *config.Config
	prefs    *prefs.Store
	engine   *engine.Engine
	keymaps  *keymap.Registry
	scripts  *lua.State
	backend  backend.Backend
	renderer *renderer.Renderer

	// Theme state
	themeName   string
	configTheme string

	// Lifecycle
	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
}

// New creates the application from opts. It loads configuration and
// preferences, builds the engine and key bindings and runs startup
// scripts. Call Shutdown to release resources.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		session: uuid.New(),
		logger:  NullLogger,
		metrics: NewMetrics(),
		done:    make(chan struct{}),
	}

	if err := app.bootstrap(context.Background()); err != nil {
		app.opts.ExportPath = ""
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// Session returns the session ID carried by logs and exports.
func (app *Application) Session() uuid.UUID {
	return app.session
}

// Engine returns the calculator engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Keymaps returns the key binding registry.
func (app *Application) Keymaps() *keymap.Registry {
	return app.keymaps
}

// Logger returns the session logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// ThemeName returns the active theme name.
func (app *Application) ThemeName() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.themeName
}

// SetBackend sets the display backend used by Run. Without one, Run opens
// the terminal.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	return nil
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}
