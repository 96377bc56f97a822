// Package history keeps the calculator's recent operations.
//
// A History is a bounded stack, newest entry first. Pushing past capacity
// evicts the oldest entry:
//
//	h := history.New(6)
//	h.Push(history.Entry{Expression: "2+3", Result: 5})
//	h.Lines() // ["2+3 = 5"]
//
// Entries are immutable values; Entries returns a copy.
package history
