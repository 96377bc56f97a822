package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dshills/keycalc/internal/config/loader"
	"github.com/dshills/keycalc/internal/config/watcher"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "KEYCALC_"

// Config provides access to the keycalc configuration: built-in defaults,
// overlaid by the TOML file, overlaid by KEYCALC_* environment variables.
type Config struct {
	mu sync.RWMutex

	// Layers, lowest priority first.
	defaults map[string]any
	file     map[string]any
	env      map[string]any
	merged   map[string]any
	loaded   bool

	// File watcher for live reload
	watcher *watcher.Watcher

	handlers []func(*Config)

	// Options
	path          string
	envPrefix     string
	enableWatcher bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets the configuration file path.
func WithPath(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.path = path
		}
	}
}

// WithEnvPrefix sets the environment variable prefix, including the
// trailing underscore.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// New creates a new Config with the given options. Until Load is called it
// serves the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		defaults:  defaultConfig(),
		path:      DefaultPath(),
		envPrefix: EnvPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.merged = loader.Clone(c.defaults)
	return c
}

// Load reads the config file and environment, validates the result and,
// when enabled and the file's directory exists, starts watching the file. A
// missing file is not an error.
func (c *Config) Load(_ context.Context) error {
	file, err := loader.NewTOMLLoader(c.path).Load()
	if err != nil {
		return err
	}
	env, err := loader.NewEnvLoader(c.envPrefix).Load()
	if err != nil {
		return err
	}

	merged := c.merge(file, env)
	if err := validate(merged); err != nil {
		return err
	}

	c.mu.Lock()
	c.file, c.env, c.merged = file, env, merged
	c.loaded = true
	start := c.enableWatcher && c.watcher == nil && dirExists(filepath.Dir(c.path))
	c.mu.Unlock()

	if start {
		if err := c.startWatcher(); err != nil {
			return fmt.Errorf("watching %s: %w", c.path, err)
		}
	}
	return nil
}

// Reload re-reads the config file. An invalid file leaves the current
// configuration in place and returns the error. Reload handlers run after
// a successful reload.
func (c *Config) Reload() error {
	c.mu.RLock()
	loaded := c.loaded
	env := c.env
	c.mu.RUnlock()
	if !loaded {
		return ErrNotLoaded
	}

	file, err := loader.NewTOMLLoader(c.path).Load()
	if err != nil {
		return err
	}
	merged := c.merge(file, env)
	if err := validate(merged); err != nil {
		return err
	}

	c.mu.Lock()
	c.file, c.merged = file, merged
	handlers := append([]func(*Config){}, c.handlers...)
	c.mu.Unlock()

	for _, h := range handlers {
		h(c)
	}
	return nil
}

// OnReload registers fn to run after each successful reload.
func (c *Config) OnReload(fn func(*Config)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, fn)
}

// Close stops the file watcher.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		return w.Close()
	}
	return nil
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}

// Merged returns a copy of the merged configuration map.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

func (c *Config) merge(file, env map[string]any) map[string]any {
	merged := loader.Clone(c.defaults)
	merged = loader.DeepMerge(merged, loader.Clone(file))
	return loader.DeepMerge(merged, loader.Clone(env))
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

func (c *Config) startWatcher() error {
	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := w.Watch(c.path); err != nil {
		_ = w.Close()
		return err
	}
	w.OnChange(func(watcher.Event) {
		// Errors keep the previous configuration; the next save retries.
		_ = c.Reload()
	})

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()
	return nil
}

// Get returns the value at the given dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.GetByPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	return asString(path, v)
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	return asInt(path, v)
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	return asBool(path, v)
}

// GetStringSlice returns a string slice at the given path. A single string
// is returned as a one-element slice.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	return asStringSlice(path, v)
}

// GetStringMap returns a table of strings at the given path.
func (c *Config) GetStringMap(path string) (map[string]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	return asStringMap(path, v)
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

func asInt(path string, v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

func asBool(path string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

func asStringSlice(path string, v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil, nil
		}
		return []string{val}, nil
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

func asStringMap(path string, v any) (map[string]string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "table", Actual: typeName(v)}
	}
	result := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			return nil, &TypeError{Path: path + "." + k, Expected: "string", Actual: typeName(item)}
		}
		result[k] = s
	}
	return result, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/keycalc/config.toml, falling back to
// ~/.config.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keycalc", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "keycalc", "config.toml")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"engine": map[string]any{
			"history_size": 6,
			"precision":    12,
		},
		"ui": map[string]any{
			// Empty follows the saved preference, else light.
			"theme":            "",
			"error_display_ms": 800,
			"show_memory":      true,
			"palette":          map[string]any{},
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"keymap": map[string]any{},
		"scripts": map[string]any{
			"startup": []any{},
		},
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float"
	case []any, []string:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// sortedKeys returns the keys of m in order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
