// Package config provides the configuration system for keycalc.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← KEYCALC_THEME, KEYCALC_LOG_LEVEL, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← $XDG_CONFIG_HOME/keycalc/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// Command-line flags are applied by the caller on top of the typed sections.
//
// # Sub-packages
//
//   - loader: TOML and environment variable loading, DeepMerge
//   - watcher: fsnotify-based file watching for live reload
//
// # Configuration File
//
//	[engine]
//	history_size = 6
//	precision = 12
//
//	[ui]
//	theme = "dark"
//	error_display_ms = 800
//	show_memory = true
//
//	[ui.palette.dark]
//	background = "#1e1e2e"
//	accent = "#f9e2af"
//
//	[logging]
//	level = "info"
//	file = "/tmp/keycalc.log"
//
//	[keymap]
//	"s" = "sign"
//	"<C-l>" = "clear"
//
//	[scripts]
//	startup = ["~/.config/keycalc/init.lua"]
//
// # Usage
//
//	cfg := config.New(config.WithWatcher(true))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	defer cfg.Close()
//
//	cfg.OnReload(func(c *config.Config) {
//	    // re-apply theme and keymap
//	})
//
//	engineCfg := cfg.Engine()
//
// # Error Handling
//
// Load and Reload return *loader.ParseError for malformed TOML and a joined
// list of *ValidationError for bad values; errors.Is(err,
// ErrValidationFailed) reports the latter. Typed getters return *TypeError,
// which matches ErrTypeMismatch.
package config
