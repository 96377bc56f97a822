package engine

import (
	"testing"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupEngineWithBuffer(b *testing.B, keys string) *Engine {
	b.Helper()
	e := New()
	for _, r := range keys {
		e.AppendToken(r)
	}
	return e
}

// ============================================================================
// Edit Benchmarks
// ============================================================================

func BenchmarkAppendToken(b *testing.B) {
	keys := []rune("12.5+3*-4/0.25-")
	e := New()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if i%64 == 0 {
			e.Clear()
		}
		e.AppendToken(keys[i%len(keys)])
	}
}

func BenchmarkToggleSign(b *testing.B) {
	e := setupEngineWithBuffer(b, "12+34*56")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.ToggleSign()
	}
}

// ============================================================================
// Evaluation Benchmarks
// ============================================================================

func BenchmarkEvaluate(b *testing.B) {
	e := New()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, r := range "(12.5+3)*-4/0.25" {
			e.AppendToken(r)
		}
		_, _ = e.Evaluate()
	}
}

func BenchmarkMemoryOp(b *testing.B) {
	e := setupEngineWithBuffer(b, "1+2*3")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.MemoryOp(MemoryAdd)
	}
}

// ============================================================================
// Read Benchmarks
// ============================================================================

func BenchmarkViewState(b *testing.B) {
	e := New()
	for i := 0; i < DefaultMaxHistory; i++ {
		for _, r := range "2+3" {
			e.AppendToken(r)
		}
		_, _ = e.Evaluate()
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.ViewState()
	}
}
