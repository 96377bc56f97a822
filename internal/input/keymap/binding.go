package keymap

import (
	"github.com/dshills/keycalc/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key that triggers this binding.
	// Formats: "7", "+", "Enter", "<C-c>", "Ctrl+C"
	Keys string

	// Action is the action name, see ParseAction.
	Action string

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings in the key legend.
	Category string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// ParsedBinding is a binding with its key and action resolved.
type ParsedBinding struct {
	Binding
	Event    key.Event
	Resolved Action
}

// Match checks if this binding is triggered by ev.
func (pb *ParsedBinding) Match(ev key.Event) bool {
	return pb != nil && pb.Event.Equals(ev)
}
