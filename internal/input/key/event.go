package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if any modifier is pressed.
// For character events Shift alone does not count, since it changes the
// character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// String returns the canonical form used as a keymap lookup key.
// Examples: "7", "+", "M", "Space", "C-c", "Enter", "S-Tab".
func (e Event) String() string {
	var parts []string

	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "M")
	}
	// Shift is part of the character for runes
	if e.Modifiers.Has(ModShift) && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		r := e.Rune
		if e.Modifiers.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		parts = append(parts, string(r))
	default:
		parts = append(parts, e.Key.String())
	}

	return strings.Join(parts, "-")
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.String() == other.String()
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
