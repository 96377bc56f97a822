// Package key provides key event types and parsing for the input system.
//
// This package defines the types for representing keyboard input:
//
//   - Key: identifies a special key or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift and Meta
//   - Event: a single key press with modifiers
//
// # Key Specifications
//
// Key specifications can be written in several formats:
//
//   - Single characters: "7", "+", "%", "m", "M"
//   - Special keys: "Enter", "Escape", "Backspace", "Space"
//   - With modifiers: "Ctrl+C", "Alt+Enter"
//   - Vim-style: "<C-c>", "<CR>", "<Esc>", "<BS>"
//
// Event.String returns the canonical form ("C-c", "Enter", "+") that the
// keymap uses as its lookup key.
package key
