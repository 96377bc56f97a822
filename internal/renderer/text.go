package renderer

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/keycalc/internal/renderer/backend"
)

const (
	ellipsis  = "…"
	legendGap = "  "
)

// drawText draws s starting at column x, one grapheme cluster per cell run,
// and returns the column after the last cluster.
func drawText(b backend.Backend, x, y int, s string, st backend.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		b.SetContent(x, y, runes[0], runes[1:], st)
		x += g.Width()
	}
	return x
}

// drawRight draws s so that its last cell sits just before column end.
func drawRight(b backend.Backend, end, y int, s string, st backend.Style) {
	drawText(b, end-uniseg.StringWidth(s), y, s, st)
}

// truncateLeft keeps the rightmost clusters of s that fit in width cells,
// marking the cut with an ellipsis. The end of a long expression is the
// part being typed.
func truncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var clusters []string
	var widths []int
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
		widths = append(widths, g.Width())
	}

	budget := width - uniseg.StringWidth(ellipsis)
	i := len(clusters)
	for i > 0 && widths[i-1] <= budget {
		budget -= widths[i-1]
		i--
	}

	out := ellipsis
	for _, c := range clusters[i:] {
		out += c
	}
	return out
}

// truncateRight keeps the leftmost clusters of s that fit in width cells.
func truncateRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	budget := width - uniseg.StringWidth(ellipsis)
	out := ""
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if g.Width() > budget {
			break
		}
		budget -= g.Width()
		out += g.Str()
	}
	return out + ellipsis
}

// wrapLegend packs items into lines no wider than width.
func wrapLegend(items []LegendItem, width int) [][]LegendItem {
	var lines [][]LegendItem
	var line []LegendItem
	used := 0
	for _, item := range items {
		w := uniseg.StringWidth(item.Keys) + 1 + uniseg.StringWidth(item.Label)
		if w > width {
			continue
		}
		if len(line) > 0 && used+len(legendGap)+w > width {
			lines = append(lines, line)
			line, used = nil, 0
		}
		if len(line) > 0 {
			used += len(legendGap)
		}
		line = append(line, item)
		used += w
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}
