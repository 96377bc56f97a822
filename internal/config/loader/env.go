package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "KEYCALC_")
	mapping map[string]string // Env var -> config path
}

// NewEnvLoader creates a new environment variable loader with the default
// short names (PREFIX_THEME, PREFIX_LOG_LEVEL, ...).
// The prefix should include the trailing underscore (e.g., "KEYCALC_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable
// mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{prefix: prefix, mapping: mapping}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":        "logging.level",
		prefix + "LOG_FILE":         "logging.file",
		prefix + "THEME":            "ui.theme",
		prefix + "ERROR_DISPLAY_MS": "ui.error_display_ms",
		prefix + "SHOW_MEMORY":      "ui.show_memory",
		prefix + "HISTORY_SIZE":     "engine.history_size",
		prefix + "PRECISION":        "engine.precision",
	}
}

// Load reads environment variables and returns a configuration map.
// Mapped names are applied first; other prefixed variables of the form
// PREFIX_SECTION_NAME map to section.name.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}

	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}
		if path, ok := l.envToPath(name); ok {
			setByPath(config, path, parseValue(value))
		}
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts KEYCALC_ENGINE_HISTORY_SIZE to engine.history_size.
// Names without a section part are rejected.
func (l *EnvLoader) envToPath(env string) (string, bool) {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return "", false
	}
	return section + "." + setting, true
}

// parseValue converts an environment string to bool, int, float or string.
// "1" and "0" stay integers so numeric settings can be zero.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// GetByPath returns the value at a dot-separated path.
func GetByPath(data map[string]any, path string) (any, bool) {
	current := any(data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}
