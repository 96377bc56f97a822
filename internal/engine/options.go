package engine

import (
	"github.com/dshills/keycalc/internal/engine/expr"
	"github.com/dshills/keycalc/internal/engine/history"
)

// Default configuration values.
const (
	DefaultMaxHistory = history.DefaultCapacity
	DefaultPrecision  = expr.DefaultPrecision
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMaxHistory sets the number of history entries kept.
func WithMaxHistory(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxHistory = max
		}
	}
}

// WithPrecision sets the number of decimal places results are rounded to.
func WithPrecision(places int) Option {
	return func(e *Engine) {
		if places >= 0 && places <= 15 {
			e.precision = places
		}
	}
}

// WithMemory sets the initial memory register value.
func WithMemory(v float64) Option {
	return func(e *Engine) {
		e.memory = v
	}
}
