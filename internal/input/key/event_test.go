package key

import (
	"testing"
)

func TestNewRuneEvent(t *testing.T) {
	e := NewRuneEvent('7', ModNone)
	if e.Key != KeyRune {
		t.Errorf("NewRuneEvent key = %v, want KeyRune", e.Key)
	}
	if e.Rune != '7' {
		t.Errorf("NewRuneEvent rune = %q, want '7'", e.Rune)
	}
	if !e.IsRune() {
		t.Error("NewRuneEvent should be a rune event")
	}
}

func TestNewSpecialEvent(t *testing.T) {
	e := NewSpecialEvent(KeyEnter, ModNone)
	if e.Key != KeyEnter {
		t.Errorf("NewSpecialEvent key = %v, want KeyEnter", e.Key)
	}
	if e.IsRune() {
		t.Error("special event should not be a rune event")
	}
	if !e.Key.IsSpecial() {
		t.Error("KeyEnter should be special")
	}
}

func TestEventIsModified(t *testing.T) {
	tests := []struct {
		event Event
		want  bool
	}{
		{NewRuneEvent('m', ModNone), false},
		{NewRuneEvent('M', ModShift), false},
		{NewRuneEvent('c', ModCtrl), true},
		{NewSpecialEvent(KeyTab, ModShift), true},
		{NewSpecialEvent(KeyEnter, ModNone), false},
	}

	for _, tt := range tests {
		if got := tt.event.IsModified(); got != tt.want {
			t.Errorf("%#v IsModified() = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('7', ModNone), "7"},
		{NewRuneEvent('+', ModNone), "+"},
		{NewRuneEvent('M', ModShift), "M"},
		{NewRuneEvent('M', ModNone), "M"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewRuneEvent('C', ModCtrl), "C-c"},
		{NewRuneEvent('x', ModCtrl|ModAlt), "C-A-x"},
		{NewSpecialEvent(KeyEnter, ModNone), "Enter"},
		{NewSpecialEvent(KeyBackspace, ModNone), "BS"},
		{NewSpecialEvent(KeyEscape, ModNone), "Esc"},
		{NewSpecialEvent(KeyTab, ModShift), "S-Tab"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("%#v String() = %q, want %q", tt.event, got, tt.want)
		}
	}
}

func TestEventMatches(t *testing.T) {
	tests := []struct {
		event Event
		spec  string
		want  bool
	}{
		{NewRuneEvent('c', ModCtrl), "<C-c>", true},
		{NewRuneEvent('c', ModCtrl), "Ctrl+C", true},
		{NewRuneEvent('c', ModNone), "<C-c>", false},
		{NewSpecialEvent(KeyEnter, ModNone), "<CR>", true},
		{NewSpecialEvent(KeyEnter, ModNone), "Return", true},
		{NewRuneEvent('=', ModNone), "=", true},
		{NewRuneEvent('M', ModNone), "M", true},
		{NewRuneEvent('m', ModNone), "M", false},
		{NewRuneEvent('+', ModNone), "bogus+key", false},
	}

	for _, tt := range tests {
		if got := tt.event.Matches(tt.spec); got != tt.want {
			t.Errorf("%#v Matches(%q) = %v, want %v", tt.event, tt.spec, got, tt.want)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"Enter", KeyEnter},
		{" esc ", KeyEscape},
		{"BS", KeyBackspace},
		{"del", KeyDelete},
		{"unknown", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mods Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModShift, "Ctrl+Shift"},
		{ModCtrl | ModAlt | ModShift | ModMeta, "Ctrl+Alt+Shift+Meta"},
	}

	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mods, got, tt.want)
		}
	}

	if ModCtrl.With(ModAlt).Without(ModCtrl) != ModAlt {
		t.Error("With/Without did not round-trip")
	}
}
