// Package keymap maps key presses to calculator actions.
//
// # Key Concepts
//
// Action: what the calculator should do, named by strings such as
// "digit:7", "op:+", "evaluate" or "memory:M+". The same vocabulary is used
// by key bindings, the config file, batch input and scripts.
//
// Keymap: a named, prioritized collection of bindings.
//
// Registry: holds every keymap and resolves a key.Event to the winning
// binding. User keymaps (priority 10) override the defaults (priority 0).
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	keymap.LoadDefaults(registry)
//
//	user := keymap.FromMap(keymap.UserName, cfg.Keymap).
//	    WithPriority(keymap.UserPriority)
//	registry.Register(user)
//
//	if action, ok := registry.Action(ev); ok {
//	    // dispatch action
//	}
package keymap
