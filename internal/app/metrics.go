package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts session activity. All methods are safe for concurrent
// use.
type Metrics struct {
	// Input handling
	keyCount     atomic.Uint64
	unboundKeys  atomic.Uint64
	actionCount  atomic.Uint64
	evalCount    atomic.Uint64
	evalFailures atomic.Uint64

	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKey records a key event; bound reports whether it had an action.
func (m *Metrics) RecordKey(bound bool) {
	m.keyCount.Add(1)
	if !bound {
		m.unboundKeys.Add(1)
	}
}

// RecordAction records a dispatched action.
func (m *Metrics) RecordAction() {
	m.actionCount.Add(1)
}

// RecordEvaluation records an evaluation and whether it failed.
func (m *Metrics) RecordEvaluation(failed bool) {
	m.evalCount.Add(1)
	if failed {
		m.evalFailures.Add(1)
	}
}

// RecordRender records render timing.
func (m *Metrics) RecordRender(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.renderCount.Add(1)
	m.renderTotalNs.Add(ns)

	// Update max (atomic compare-and-swap loop)
	for {
		old := m.renderMaxNs.Load()
		if ns <= old || m.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	renders := m.renderCount.Load()
	var avg time.Duration
	if renders > 0 {
		avg = time.Duration(m.renderTotalNs.Load() / int64(renders))
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Keys:         m.keyCount.Load(),
		UnboundKeys:  m.unboundKeys.Load(),
		Actions:      m.actionCount.Load(),
		Evaluations:  m.evalCount.Load(),
		EvalFailures: m.evalFailures.Load(),
		Renders:      renders,
		AvgRender:    avg,
		MaxRender:    time.Duration(m.renderMaxNs.Load()),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Keys         uint64
	UnboundKeys  uint64
	Actions      uint64
	Evaluations  uint64
	EvalFailures uint64
	Renders      uint64
	AvgRender    time.Duration
	MaxRender    time.Duration
}

// FailureRate returns the percentage of evaluations that failed.
func (s MetricsSnapshot) FailureRate() float64 {
	if s.Evaluations == 0 {
		return 0
	}
	return float64(s.EvalFailures) / float64(s.Evaluations) * 100
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
