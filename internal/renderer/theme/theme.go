// Package theme defines the calculator's light and dark color schemes.
package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme names.
const (
	NameLight = "light"
	NameDark  = "dark"
)

// ErrUnknownTheme is returned by ByName for names other than light and
// dark.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme is a named set of colors.
type Theme struct {
	Name       string
	Background colorful.Color
	Foreground colorful.Color
	Accent     colorful.Color
	Error      colorful.Color
}

// Palette holds "#rrggbb" overrides. Empty fields keep the theme color.
type Palette struct {
	Background string
	Foreground string
	Accent     string
	Error      string
}

// Light returns the default light theme.
func Light() Theme {
	return Theme{
		Name:       NameLight,
		Background: mustHex("#f4f4f6"),
		Foreground: mustHex("#1f1f24"),
		Accent:     mustHex("#e07b00"),
		Error:      mustHex("#c62828"),
	}
}

// Dark returns the dark theme.
func Dark() Theme {
	return Theme{
		Name:       NameDark,
		Background: mustHex("#1c1c1e"),
		Foreground: mustHex("#f2f2f7"),
		Accent:     mustHex("#ff9f0a"),
		Error:      mustHex("#ff453a"),
	}
}

// ByName returns the built-in theme called name (case-insensitive).
func ByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameLight:
		return Light(), nil
	case NameDark:
		return Dark(), nil
	default:
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// Toggle returns the name of the other built-in theme. Anything that is
// not dark toggles to dark.
func Toggle(name string) string {
	if strings.EqualFold(name, NameDark) {
		return NameLight
	}
	return NameDark
}

// WithPalette returns t with the non-empty palette colors applied.
func (t Theme) WithPalette(p Palette) (Theme, error) {
	fields := []struct {
		hex string
		dst *colorful.Color
		tag string
	}{
		{p.Background, &t.Background, "background"},
		{p.Foreground, &t.Foreground, "foreground"},
		{p.Accent, &t.Accent, "accent"},
		{p.Error, &t.Error, "error"},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return t, fmt.Errorf("%s palette %s: %w", t.Name, f.tag, err)
		}
		*f.dst = c
	}
	return t, nil
}

// Muted is the foreground blended halfway toward the background in Lab
// space, used for history lines and the key legend.
func (t Theme) Muted() colorful.Color {
	return t.Foreground.BlendLab(t.Background, 0.45).Clamped()
}

// IsDark reports whether the background is dark.
func (t Theme) IsDark() bool {
	l, _, _ := t.Background.Lab()
	return l < 0.5
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
