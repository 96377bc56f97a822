package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
)

// press feeds each rune of keys to AppendToken.
func press(e *Engine, keys string) {
	for _, r := range keys {
		e.AppendToken(r)
	}
}

// evaluate types keys and evaluates, failing the test on error.
func evaluate(t *testing.T, e *Engine, keys string) Outcome {
	t.Helper()
	press(e, keys)
	out, err := e.Evaluate()
	if err != nil {
		t.Fatalf("Evaluate(%q) unexpected error: %v", keys, err)
	}
	return out
}

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	v := e.ViewState()
	if v.DisplayText != "0" {
		t.Errorf("expected display %q, got %q", "0", v.DisplayText)
	}
	if len(v.HistoryLines) != 0 {
		t.Errorf("expected empty history, got %v", v.HistoryLines)
	}
	if v.Memory != 0 {
		t.Errorf("expected memory 0, got %v", v.Memory)
	}
	if _, ok := e.LastResult(); ok {
		t.Error("expected no last result")
	}
}

func TestEvaluate(t *testing.T) {
	e := New()
	out := evaluate(t, e, "2+3")

	if !out.OK || out.Display != "5" {
		t.Errorf("expected OK display %q, got %+v", "5", out)
	}
	if out.Entry == nil || out.Entry.Expression != "2+3" || out.Entry.Result != 5 {
		t.Errorf("unexpected entry: %+v", out.Entry)
	}
	if e.Buffer() != "" {
		t.Errorf("expected empty buffer, got %q", e.Buffer())
	}
	if r, ok := e.LastResult(); !ok || r != 5 {
		t.Errorf("expected last result 5, got %v (set=%v)", r, ok)
	}

	v := e.ViewState()
	if v.DisplayText != "5" {
		t.Errorf("expected display %q, got %q", "5", v.DisplayText)
	}
	if len(v.HistoryLines) != 1 || v.HistoryLines[0] != "2+3 = 5" {
		t.Errorf("unexpected history: %v", v.HistoryLines)
	}
}

func TestEvaluateRoundsFloatNoise(t *testing.T) {
	e := New()
	out := evaluate(t, e, "0.1+0.2")
	if out.Display != "0.3" {
		t.Errorf("expected display %q, got %q", "0.3", out.Display)
	}
	if r, _ := e.LastResult(); r != 0.3 {
		t.Errorf("expected exactly 0.3, got %v", r)
	}
}

func TestEvaluateFailureKeepsState(t *testing.T) {
	e := New()
	evaluate(t, e, "2+3")

	press(e, "1/0")
	out, err := e.Evaluate()
	if err == nil {
		t.Fatal("expected error for 1/0")
	}
	if !errors.Is(err, ErrNonFinite) {
		t.Errorf("expected ErrNonFinite, got %v", err)
	}
	if out.OK || out.Display != DisplayError {
		t.Errorf("expected failed outcome with %q, got %+v", DisplayError, out)
	}
	if e.Buffer() != "1/0" {
		t.Errorf("expected buffer preserved, got %q", e.Buffer())
	}
	if r, ok := e.LastResult(); !ok || r != 5 {
		t.Errorf("expected last result 5 preserved, got %v (set=%v)", r, ok)
	}
	if len(e.History()) != 1 {
		t.Errorf("expected no history entry for failure, got %d entries", len(e.History()))
	}

	v := e.ViewState()
	if !v.Failed {
		t.Error("expected view to report failure")
	}
	if v.DisplayText != "1/0" {
		t.Errorf("expected display to keep buffer, got %q", v.DisplayText)
	}

	e.Backspace()
	if e.ViewState().Failed {
		t.Error("failure flag should clear on the next operation")
	}
}

func TestEvaluateErrorKinds(t *testing.T) {
	tests := []struct {
		keys   string
		target error
	}{
		{"0/0", ErrNonFinite},
		{"5+", ErrMalformed},
		{"5--3", ErrMalformed},
		{".", ErrMalformed},
	}
	for _, tt := range tests {
		e := New()
		press(e, tt.keys)
		if _, err := e.Evaluate(); !errors.Is(err, tt.target) {
			t.Errorf("%q: expected %v, got %v", tt.keys, tt.target, err)
		}
	}

	// Seeding from a result in exponent form yields text outside the
	// allow-list.
	e := New()
	evaluate(t, e, "0.0000001")
	press(e, "+1")
	if e.Buffer() != "1e-7+1" {
		t.Fatalf("expected buffer %q, got %q", "1e-7+1", e.Buffer())
	}
	if _, err := e.Evaluate(); !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("expected ErrInvalidCharacter, got %v", err)
	}
}

func TestEvaluateEmpty(t *testing.T) {
	e := New()
	out, err := e.Evaluate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Display != "0" || out.Entry != nil {
		t.Errorf("unexpected outcome: %+v", out)
	}

	evaluate(t, e, "4*2")
	out, err = e.Evaluate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Display != "8" || out.Entry != nil {
		t.Errorf("expected no-op outcome showing 8, got %+v", out)
	}
	if len(e.History()) != 1 {
		t.Errorf("expected one history entry, got %d", len(e.History()))
	}
}

// ============================================================================
// Digits and Decimal Points
// ============================================================================

func TestAppendDigits(t *testing.T) {
	tests := []struct {
		keys     string
		expected string
	}{
		{"123", "123"},
		{"05", "5"},
		{"00", "0"},
		{"0.05", "0.05"},
		{"12+07", "12+7"},
		{"5*-07", "5*-7"},
		{"-0", "-0"},
		{"-09", "-9"},
		{"100", "100"},
	}
	for _, tt := range tests {
		e := New()
		press(e, tt.keys)
		if e.Buffer() != tt.expected {
			t.Errorf("keys %q: expected buffer %q, got %q", tt.keys, tt.expected, e.Buffer())
		}
	}
}

func TestAppendDecimal(t *testing.T) {
	tests := []struct {
		keys     string
		expected string
	}{
		{"1..2", "1.2"},
		{"1.2.3", "1.23"},
		{".", "."},
		{"1.5+.", "1.5+."},
		{"1.2+3.4.", "1.2+3.4"},
		{"5*-.5.", "5*-.5"},
	}
	for _, tt := range tests {
		e := New()
		press(e, tt.keys)
		if e.Buffer() != tt.expected {
			t.Errorf("keys %q: expected buffer %q, got %q", tt.keys, tt.expected, e.Buffer())
		}
	}
}

func TestAtMostOneDecimalPerSegment(t *testing.T) {
	keys := []rune("0123456789.+-*/.%±")
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		e := New()
		for i := 0; i < 40; i++ {
			if rng.Intn(10) == 0 {
				e.Backspace()
				continue
			}
			e.AppendToken(keys[rng.Intn(len(keys))])

			parts := strings.FieldsFunc(e.Buffer(), func(r rune) bool {
				return strings.ContainsRune("+-*/", r)
			})
			for _, p := range parts {
				if strings.Count(p, ".") > 1 {
					t.Fatalf("segment %q of %q holds more than one '.'", p, e.Buffer())
				}
			}
		}
	}
}

// ============================================================================
// Operators
// ============================================================================

func TestAppendOperator(t *testing.T) {
	tests := []struct {
		name     string
		keys     string
		expected string
	}{
		{"empty ignores plus", "+", ""},
		{"empty ignores times", "*/", ""},
		{"empty minus seeds sign", "-", "-"},
		{"append", "5+", "5+"},
		{"replace trailing", "5+*", "5*"},
		{"unary minus after binary", "5*-", "5*-"},
		{"second minus replaces unary", "5*--", "5*-"},
		{"plus replaces unary minus", "5*-+", "5*+"},
		{"minus after minus appends", "5--", "5--"},
		{"sign replaced by minus", "--", "-"},
		{"sign replaced by plus", "-+", "+"},
		{"after decimal point", "5.+", "5.+"},
		{"negative operand", "5*-3", "5*-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			press(e, tt.keys)
			if e.Buffer() != tt.expected {
				t.Errorf("keys %q: expected buffer %q, got %q", tt.keys, tt.expected, e.Buffer())
			}
		})
	}
}

func TestOperatorContinuesFromResult(t *testing.T) {
	e := New()
	evaluate(t, e, "2-7")

	press(e, "*")
	if e.Buffer() != "-5*" {
		t.Fatalf("expected buffer %q, got %q", "-5*", e.Buffer())
	}
	out := evaluate(t, e, "2")
	if out.Display != "-10" {
		t.Errorf("expected -10, got %q", out.Display)
	}
}

func TestAppendTokenIgnoresUnknown(t *testing.T) {
	e := New()
	press(e, "1x(y)2 ")
	if e.Buffer() != "12" {
		t.Errorf("expected buffer %q, got %q", "12", e.Buffer())
	}
}

// ============================================================================
// Sign and Percent
// ============================================================================

func TestToggleSign(t *testing.T) {
	tests := []struct {
		keys     string
		expected string
	}{
		{"42", "-42"},
		{"12+34", "12+-34"},
		{"12+-34", "12+34"},
		{"5*", "5*-"},
		{"5*-", "5*"},
		{"-", ""},
		{"1.5/2", "1.5/-2"},
	}
	for _, tt := range tests {
		e := New()
		press(e, tt.keys)
		e.ToggleSign()
		if e.Buffer() != tt.expected {
			t.Errorf("keys %q: expected buffer %q, got %q", tt.keys, tt.expected, e.Buffer())
		}
	}
}

func TestToggleSignTwiceRestoresSegment(t *testing.T) {
	for _, keys := range []string{"7", "12+34", "5*-3", "0.5", "9/3.25", "1-2-3"} {
		e := New()
		press(e, keys)
		before := e.Buffer()
		e.AppendToken(TokenSign)
		e.AppendToken(TokenSign)
		if e.Buffer() != before {
			t.Errorf("keys %q: expected %q after double toggle, got %q", keys, before, e.Buffer())
		}
	}
}

func TestToggleSignEmptyBuffer(t *testing.T) {
	e := New()
	e.ToggleSign()
	if e.Buffer() != "-" {
		t.Errorf("expected buffer %q, got %q", "-", e.Buffer())
	}

	e = New()
	evaluate(t, e, "2+3")
	e.ToggleSign()
	if r, _ := e.LastResult(); r != -5 {
		t.Errorf("expected last result -5, got %v", r)
	}
	if e.Buffer() != "" {
		t.Errorf("expected empty buffer, got %q", e.Buffer())
	}
	if d := e.ViewState().DisplayText; d != "-5" {
		t.Errorf("expected display %q, got %q", "-5", d)
	}
}

func TestApplyPercent(t *testing.T) {
	tests := []struct {
		keys     string
		expected string
	}{
		{"10+50", "10+0.5"},
		{"50", "0.5"},
		{"5*-20", "5*-0.2"},
		{"10+", "10+"},
		{"-", "-"},
		{"0.07", "0.0007"},
		{"3.", "0.03"},
	}
	for _, tt := range tests {
		e := New()
		press(e, tt.keys)
		e.AppendToken(TokenPercent)
		if e.Buffer() != tt.expected {
			t.Errorf("keys %q: expected buffer %q, got %q", tt.keys, tt.expected, e.Buffer())
		}
	}
}

func TestApplyPercentEmptyBuffer(t *testing.T) {
	e := New()
	e.ApplyPercent()
	if d := e.ViewState().DisplayText; d != "0" {
		t.Errorf("expected display %q, got %q", "0", d)
	}

	evaluate(t, e, "25*2")
	e.ApplyPercent()
	if r, _ := e.LastResult(); r != 0.5 {
		t.Errorf("expected last result 0.5, got %v", r)
	}
	if len(e.History()) != 1 {
		t.Errorf("percent must not add history, got %d entries", len(e.History()))
	}
	if e.Buffer() != "" {
		t.Errorf("expected empty buffer, got %q", e.Buffer())
	}
}

// ============================================================================
// Backspace and Clear
// ============================================================================

func TestBackspace(t *testing.T) {
	e := New()
	press(e, "12+")
	e.Backspace()
	if e.Buffer() != "12" {
		t.Errorf("expected buffer %q, got %q", "12", e.Buffer())
	}
}

func TestBackspaceEmptyClearsResult(t *testing.T) {
	e := New()
	evaluate(t, e, "6*7")

	e.Backspace()
	if _, ok := e.LastResult(); ok {
		t.Error("expected last result cleared")
	}
	if e.Buffer() != "" {
		t.Errorf("expected empty buffer, got %q", e.Buffer())
	}
	if d := e.ViewState().DisplayText; d != "0" {
		t.Errorf("expected display %q, got %q", "0", d)
	}
}

func TestClear(t *testing.T) {
	e := New()
	evaluate(t, e, "1+1")
	press(e, "3")
	if err := e.MemoryOp(MemoryAdd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.Clear()
	if e.Buffer() != "" {
		t.Errorf("expected empty buffer, got %q", e.Buffer())
	}
	if _, ok := e.LastResult(); ok {
		t.Error("expected last result cleared")
	}
	if e.Memory() == 0 {
		t.Error("clear must not touch memory")
	}
	if len(e.History()) != 2 {
		t.Errorf("clear must not touch history, got %d entries", len(e.History()))
	}
}

// ============================================================================
// History
// ============================================================================

func TestHistoryEviction(t *testing.T) {
	e := New()
	for i := 1; i <= 7; i++ {
		evaluate(t, e, fmt.Sprintf("%d+1", i))
	}

	lines := e.ViewState().HistoryLines
	if len(lines) != 6 {
		t.Fatalf("expected 6 history lines, got %d", len(lines))
	}
	if lines[0] != "7+1 = 8" {
		t.Errorf("expected newest %q, got %q", "7+1 = 8", lines[0])
	}
	if lines[5] != "2+1 = 3" {
		t.Errorf("expected oldest %q, got %q", "2+1 = 3", lines[5])
	}
}

func TestWithOptions(t *testing.T) {
	e := New(WithMaxHistory(2), WithPrecision(2), WithMemory(4))
	if e.Memory() != 4 {
		t.Errorf("expected memory 4, got %v", e.Memory())
	}
	if e.Precision() != 2 {
		t.Errorf("expected precision 2, got %d", e.Precision())
	}

	out := evaluate(t, e, "1/3")
	if out.Display != "0.33" {
		t.Errorf("expected 0.33, got %q", out.Display)
	}
	evaluate(t, e, "1+1")
	evaluate(t, e, "2+2")
	if n := len(e.History()); n != 2 {
		t.Errorf("expected 2 history entries, got %d", n)
	}

	e = New(WithMaxHistory(-1), WithPrecision(99))
	if e.Precision() != DefaultPrecision {
		t.Errorf("expected default precision, got %d", e.Precision())
	}
}

// ============================================================================
// Memory
// ============================================================================

func TestMemoryOperations(t *testing.T) {
	e := New()

	press(e, "2+3")
	mustMemory(t, e, MemoryAdd)
	if e.Memory() != 5 {
		t.Fatalf("expected memory 5, got %v", e.Memory())
	}
	if e.Buffer() != "2+3" {
		t.Errorf("M+ must not change the buffer, got %q", e.Buffer())
	}

	if _, err := e.Evaluate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mustMemory(t, e, MemoryAdd) // last result 5
	if e.Memory() != 10 {
		t.Fatalf("expected memory 10, got %v", e.Memory())
	}

	press(e, "4")
	mustMemory(t, e, MemorySubtract)
	if e.Memory() != 6 {
		t.Fatalf("expected memory 6, got %v", e.Memory())
	}

	mustMemory(t, e, MemoryRecall)
	if e.Buffer() != "6" {
		t.Errorf("expected MR to replace buffer with %q, got %q", "6", e.Buffer())
	}

	mustMemory(t, e, MemoryClear)
	if e.Memory() != 0 {
		t.Errorf("expected memory 0, got %v", e.Memory())
	}

	expected := []string{
		"Memory MC = 0",
		"Memory MR = 6",
		"Memory M- = 6",
		"Memory M+ = 10",
		"2+3 = 5",
		"Memory M+ = 5",
	}
	lines := e.ViewState().HistoryLines
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %v", len(expected), lines)
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestMemoryClearAlwaysRecords(t *testing.T) {
	e := New(WithMemory(42))
	mustMemory(t, e, MemoryClear)
	mustMemory(t, e, MemoryClear)

	if e.Memory() != 0 {
		t.Errorf("expected memory 0, got %v", e.Memory())
	}
	lines := e.ViewState().HistoryLines
	if len(lines) != 2 || lines[0] != "Memory MC = 0" || lines[1] != "Memory MC = 0" {
		t.Errorf("unexpected history: %v", lines)
	}
}

func TestMemoryCurrentValueFallback(t *testing.T) {
	tests := []struct {
		keys     string
		expected float64
	}{
		{"", 0},
		{"3/0+4", 4},
		{"5--3", -3},
		{"7*", 0},
		{"-", 0},
		{"0.1+0.2", 0.3},
	}
	for _, tt := range tests {
		e := New()
		press(e, tt.keys)
		mustMemory(t, e, MemoryAdd)
		if e.Memory() != tt.expected {
			t.Errorf("keys %q: expected memory %v, got %v", tt.keys, tt.expected, e.Memory())
		}
		if e.Buffer() != strings.TrimSpace(tt.keys) {
			t.Errorf("keys %q: buffer changed to %q", tt.keys, e.Buffer())
		}
	}
}

func TestMemoryRounding(t *testing.T) {
	e := New()
	press(e, "0.1")
	mustMemory(t, e, MemoryAdd)
	e.Clear()
	press(e, "0.2")
	mustMemory(t, e, MemoryAdd)
	if e.Memory() != 0.3 {
		t.Errorf("expected memory exactly 0.3, got %v", e.Memory())
	}
}

func TestMemoryUnknownAction(t *testing.T) {
	e := New()
	err := e.MemoryOp("M*")
	if !errors.Is(err, ErrUnknownMemoryAction) {
		t.Errorf("expected ErrUnknownMemoryAction, got %v", err)
	}
	if len(e.History()) != 0 {
		t.Error("unknown action must not add history")
	}
}

func TestParseMemoryAction(t *testing.T) {
	tests := []struct {
		in       string
		expected MemoryAction
		ok       bool
	}{
		{"M+", MemoryAdd, true},
		{"m-", MemorySubtract, true},
		{" mr ", MemoryRecall, true},
		{"MC", MemoryClear, true},
		{"MS", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := ParseMemoryAction(tt.in)
		if (err == nil) != tt.ok || got != tt.expected {
			t.Errorf("ParseMemoryAction(%q) = (%q, %v), expected %q ok=%v", tt.in, got, err, tt.expected, tt.ok)
		}
	}
}

func mustMemory(t *testing.T, e *Engine, action MemoryAction) {
	t.Helper()
	if err := e.MemoryOp(action); err != nil {
		t.Fatalf("MemoryOp(%s) unexpected error: %v", action, err)
	}
}

// ============================================================================
// Concurrency
// ============================================================================

func TestConcurrentViewState(t *testing.T) {
	e := New()
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = e.ViewState()
			}
		}()
	}

	for j := 0; j < 100; j++ {
		press(e, "1+2")
		_, _ = e.Evaluate()
	}
	wg.Wait()

	if r, _ := e.LastResult(); r != 3 {
		t.Errorf("expected last result 3, got %v", r)
	}
}
