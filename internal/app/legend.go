package app

import (
	"strings"

	"github.com/dshills/keycalc/internal/input/keymap"
	"github.com/dshills/keycalc/internal/renderer"
)

// BuildLegend summarizes the effective bindings as legend items, one per
// action, in binding order. The ten digit bindings collapse into "0-9".
func BuildLegend(r *keymap.Registry) []renderer.LegendItem {
	var (
		items  []renderer.LegendItem
		index  = make(map[string]int)
		digits []string
	)

	for _, pb := range r.AllBindings() {
		a := pb.Resolved
		if a.Kind == keymap.KindToken && a.Token >= '0' && a.Token <= '9' {
			if len(digits) == 0 {
				index["digit"] = len(items)
				items = append(items, renderer.LegendItem{Label: "digit"})
			}
			digits = append(digits, pb.Keys)
			continue
		}

		name := a.String()
		if i, ok := index[name]; ok {
			items[i].Keys += "/" + pb.Keys
			continue
		}

		label := strings.ToLower(pb.Description)
		if label == "" {
			label = name
		}
		index[name] = len(items)
		items = append(items, renderer.LegendItem{Keys: pb.Keys, Label: label})
	}

	if i, ok := index["digit"]; ok {
		items[i].Keys = digitKeys(digits)
	}
	return items
}

func digitKeys(keys []string) string {
	if strings.Join(keys, "") == "0123456789" {
		return "0-9"
	}
	return strings.Join(keys, "/")
}
