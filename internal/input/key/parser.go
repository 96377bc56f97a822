package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "7", "+", "m", "M", "%"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+C", "Alt+Enter"
//   - Vim-style: "<C-c>", "<CR>", "<Esc>", "<BS>", "<Space>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// A lone character is always literal, so "+", "<" and "-" bind the
	// keys themselves.
	if runes := []rune(spec); len(runes) == 1 {
		return parseKeyWithModifiers(spec, ModNone)
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if strings.HasSuffix(spec, "++") {
		return parseModifierStyle(spec[:len(spec)-2], "+")
	}
	if i := strings.LastIndex(spec, "+"); i > 0 {
		return parseModifierStyle(spec[:i], spec[i+1:])
	}

	return parseKeyWithModifiers(spec, ModNone)
}

// parseVimStyle parses the inside of "<C-c>", "<S-Tab>", "<CR>".
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	// "<C-->" binds Ctrl with the '-' key
	keyPart := inner
	var mods Modifier
	if i := strings.LastIndex(inner[:len(inner)-1], "-"); i >= 0 {
		keyPart = inner[i+1:]
		for _, p := range strings.Split(inner[:i], "-") {
			mod := ModifierFromName(p)
			if mod == ModNone || len(p) != 1 {
				return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
			}
			mods = mods.With(mod)
		}
	}

	return parseKeyWithModifiers(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+Alt" and the key after the last '+'.
func parseModifierStyle(modPart, keyPart string) (Event, error) {
	var mods Modifier
	for _, p := range strings.Split(modPart, "+") {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKeyWithModifiers(keyPart, mods)
}

// parseKeyWithModifiers parses a key part with already-known modifiers.
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	if keyPart != " " {
		keyPart = strings.TrimSpace(keyPart)
	}
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	case "minus":
		return NewRuneEvent('-', mods), nil
	case "plus":
		return NewRuneEvent('+', mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		if mods.Has(ModCtrl) {
			r = unicode.ToLower(r)
		} else if unicode.IsUpper(r) {
			// Uppercase letters have implicit Shift
			mods = mods.With(ModShift)
		}
		return NewRuneEvent(r, mods), nil
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// NormalizeSpec parses and re-formats a key specification to its canonical
// form.
func NormalizeSpec(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return event.String(), nil
}
