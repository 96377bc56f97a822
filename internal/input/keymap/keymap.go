package keymap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/keycalc/internal/input/key"
)

// Keymap holds a named set of key bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Priority determines precedence when several keymaps bind the same
	// key. Higher priority wins. Default is 0.
	Priority int

	// Source indicates where this keymap was defined.
	// Examples: "default", "config"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// FromMap builds a keymap from "<key>" = "<action>" pairs such as the
// [keymap] table of the config file. Pairs are added in key order.
func FromMap(name string, m map[string]string) *Keymap {
	km := NewKeymap(name)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		km.Add(k, m[k])
	}
	return km
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with resolved bindings.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse resolves every binding's key and action.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	for i, b := range k.Bindings {
		if strings.TrimSpace(b.Keys) == "" {
			return nil, fmt.Errorf("binding %d: empty keys", i)
		}
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		action, err := ParseAction(b.Action)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding:  b,
			Event:    ev,
			Resolved: action,
		})
	}

	return parsed, nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Priority: k.Priority,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	copy(clone.Bindings, k.Bindings)
	return clone
}
