package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/keycalc/internal/config/loader"
	"github.com/dshills/keycalc/internal/input/key"
	"github.com/dshills/keycalc/internal/input/keymap"
)

// Themes lists the accepted ui.theme values. Empty follows the saved
// preference.
var Themes = []string{"", "light", "dark"}

// LogLevels lists the accepted logging.level values.
var LogLevels = []string{"debug", "info", "warn", "warning", "error"}

var paletteFields = []string{"background", "foreground", "accent", "error"}

// Validate checks the merged configuration. Every problem is reported; the
// result matches ErrValidationFailed.
func (c *Config) Validate() error {
	return validate(c.Merged())
}

func validate(m map[string]any) error {
	v := &validator{data: m}

	v.intRange("engine.history_size", 1, 100)
	v.intRange("engine.precision", 0, 15)

	v.enum("ui.theme", Themes)
	v.intRange("ui.error_display_ms", 0, 10000)
	v.boolean("ui.show_memory")
	v.palettes("ui.palette")

	v.enum("logging.level", LogLevels)
	v.str("logging.file")

	v.keymap("keymap")
	v.stringSlice("scripts.startup")

	return errors.Join(v.errs...)
}

type validator struct {
	data map[string]any
	errs []error
}

func (v *validator) fail(path string, value any, code ValidationErrorCode, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
		Code:    code,
	})
}

func (v *validator) get(path string) (any, bool) {
	return loader.GetByPath(v.data, path)
}

func (v *validator) typeFail(path string, value any, err error) {
	v.fail(path, value, ErrCodeTypeMismatch, "%v", err)
}

func (v *validator) intRange(path string, lo, hi int) {
	raw, ok := v.get(path)
	if !ok {
		return
	}
	n, err := asInt(path, raw)
	if err != nil {
		v.typeFail(path, raw, err)
		return
	}
	if n < lo || n > hi {
		v.fail(path, raw, ErrCodeOutOfRange, "must be between %d and %d", lo, hi)
	}
}

func (v *validator) enum(path string, allowed []string) {
	raw, ok := v.get(path)
	if !ok {
		return
	}
	s, err := asString(path, raw)
	if err != nil {
		v.typeFail(path, raw, err)
		return
	}
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return
		}
	}
	v.fail(path, raw, ErrCodeInvalidEnum, "must be one of %q", allowed)
}

func (v *validator) boolean(path string) {
	if raw, ok := v.get(path); ok {
		if _, err := asBool(path, raw); err != nil {
			v.typeFail(path, raw, err)
		}
	}
}

func (v *validator) str(path string) {
	if raw, ok := v.get(path); ok {
		if _, err := asString(path, raw); err != nil {
			v.typeFail(path, raw, err)
		}
	}
}

func (v *validator) stringSlice(path string) {
	if raw, ok := v.get(path); ok {
		if _, err := asStringSlice(path, raw); err != nil {
			v.typeFail(path, raw, err)
		}
	}
}

func (v *validator) palettes(path string) {
	raw, ok := v.get(path)
	if !ok {
		return
	}
	themes, ok := raw.(map[string]any)
	if !ok {
		v.typeFail(path, raw, &TypeError{Path: path, Expected: "table", Actual: typeName(raw)})
		return
	}

	for _, theme := range sortedKeys(themes) {
		themePath := path + "." + theme
		colors, err := asStringMap(themePath, themes[theme])
		if err != nil {
			v.typeFail(themePath, themes[theme], err)
			continue
		}
		for _, field := range sortedKeys(colors) {
			fieldPath := themePath + "." + field
			if !contains(paletteFields, field) {
				v.fail(fieldPath, colors[field], ErrCodeUnknownSetting, "unknown palette color")
				continue
			}
			if _, err := colorful.Hex(colors[field]); err != nil {
				v.fail(fieldPath, colors[field], ErrCodePatternMismatch, "must be a #rrggbb color")
			}
		}
	}
}

func (v *validator) keymap(path string) {
	raw, ok := v.get(path)
	if !ok {
		return
	}
	bindings, err := asStringMap(path, raw)
	if err != nil {
		v.typeFail(path, raw, err)
		return
	}

	for _, spec := range sortedKeys(bindings) {
		p := path + "." + spec
		if _, err := key.Parse(spec); err != nil {
			v.fail(p, spec, ErrCodePatternMismatch, "%v", err)
		}
		if _, err := keymap.ParseAction(bindings[spec]); err != nil {
			v.fail(p, bindings[spec], ErrCodeInvalidEnum, "%v", err)
		}
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
