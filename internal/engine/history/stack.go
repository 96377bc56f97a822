package history

import (
	"fmt"
	"time"

	"github.com/dshills/keycalc/internal/engine/expr"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 6

// Entry records one evaluation or memory operation.
type Entry struct {
	// Expression is the evaluated text, or "Memory <action>".
	Expression string
	// Result is the value produced.
	Result float64
	// Time is when the entry was recorded.
	Time time.Time
}

// String renders the entry as "expression = result".
func (e Entry) String() string {
	return fmt.Sprintf("%s = %s", e.Expression, expr.FormatNumber(e.Result))
}

// History is a bounded, newest-first list of entries.
type History struct {
	entries    []Entry
	maxEntries int
}

// New creates a history holding at most maxEntries entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultCapacity
	}
	return &History{
		entries:    make([]Entry, 0, maxEntries+1),
		maxEntries: maxEntries,
	}
}

// Push records an entry at the front, evicting the oldest beyond capacity.
func (h *History) Push(e Entry) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	h.entries = append(h.entries, Entry{})
	copy(h.entries[1:], h.entries)
	h.entries[0] = e

	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[:h.maxEntries]
	}
}

// Entries returns a copy of the entries, newest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Lines returns the rendered entries, newest first.
func (h *History) Lines() []string {
	lines := make([]string, len(h.entries))
	for i, e := range h.entries {
		lines[i] = e.String()
	}
	return lines
}

// Latest returns the newest entry.
func (h *History) Latest() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[0], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of entries.
func (h *History) Capacity() int {
	return h.maxEntries
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}
