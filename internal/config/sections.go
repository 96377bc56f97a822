package config

import "time"

// Section accessor methods return snapshot structs. Values have passed
// validation, so accessors fall back to the defaults only when a setting is
// missing altogether.

// EngineConfig holds calculator engine settings.
type EngineConfig struct {
	// HistorySize is the number of history entries kept.
	HistorySize int

	// Precision is the number of decimal places results are rounded to.
	Precision int
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme is "light", "dark" or empty to follow the saved preference.
	Theme string

	// ErrorDisplay is how long "Error" stays on the display.
	ErrorDisplay time.Duration

	// ShowMemory shows the memory indicator.
	ShowMemory bool
}

// PaletteConfig holds #rrggbb color overrides for one theme. Empty fields
// keep the built-in colors.
type PaletteConfig struct {
	Background string
	Foreground string
	Accent     string
	Error      string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string

	// File is the log file path. Empty discards logs in terminal mode.
	File string
}

// ScriptsConfig holds scripting settings.
type ScriptsConfig struct {
	// Startup lists Lua scripts run when the calculator starts.
	Startup []string
}

// Engine returns the engine settings.
func (c *Config) Engine() EngineConfig {
	return EngineConfig{
		HistorySize: c.intOr("engine.history_size", 6),
		Precision:   c.intOr("engine.precision", 12),
	}
}

// UI returns the presentation settings.
func (c *Config) UI() UIConfig {
	theme, _ := c.GetString("ui.theme")
	show, err := c.GetBool("ui.show_memory")
	if err != nil {
		show = true
	}
	return UIConfig{
		Theme:        theme,
		ErrorDisplay: time.Duration(c.intOr("ui.error_display_ms", 800)) * time.Millisecond,
		ShowMemory:   show,
	}
}

// Palette returns the color overrides for theme.
func (c *Config) Palette(theme string) PaletteConfig {
	m, err := c.GetStringMap("ui.palette." + theme)
	if err != nil {
		return PaletteConfig{}
	}
	return PaletteConfig{
		Background: m["background"],
		Foreground: m["foreground"],
		Accent:     m["accent"],
		Error:      m["error"],
	}
}

// Logging returns the logging settings.
func (c *Config) Logging() LoggingConfig {
	level, err := c.GetString("logging.level")
	if err != nil {
		level = "info"
	}
	file, _ := c.GetString("logging.file")
	return LoggingConfig{Level: level, File: file}
}

// Keymap returns the "<key>" = "<action>" overrides.
func (c *Config) Keymap() map[string]string {
	m, err := c.GetStringMap("keymap")
	if err != nil {
		return map[string]string{}
	}
	return m
}

// Scripts returns the scripting settings.
func (c *Config) Scripts() ScriptsConfig {
	startup, _ := c.GetStringSlice("scripts.startup")
	return ScriptsConfig{Startup: startup}
}

func (c *Config) intOr(path string, def int) int {
	v, err := c.GetInt(path)
	if err != nil {
		return def
	}
	return v
}
