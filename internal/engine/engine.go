package engine

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/dshills/keycalc/internal/engine/buffer"
	"github.com/dshills/keycalc/internal/engine/expr"
	"github.com/dshills/keycalc/internal/engine/history"
)

// Tokens accepted by AppendToken besides digits, '.' and + - * /.
const (
	TokenSign    = '±'
	TokenPercent = '%'
)

// DisplayError is shown in place of the display after a failed evaluation.
const DisplayError = "Error"

// Entry is a recorded evaluation or memory operation.
type Entry = history.Entry

// MemoryAction names a memory register operation.
type MemoryAction string

// Memory actions.
const (
	MemoryAdd      MemoryAction = "M+"
	MemorySubtract MemoryAction = "M-"
	MemoryRecall   MemoryAction = "MR"
	MemoryClear    MemoryAction = "MC"
)

// ParseMemoryAction converts "M+", "M-", "MR" or "MC" (any case) to a
// MemoryAction.
func ParseMemoryAction(s string) (MemoryAction, error) {
	switch a := MemoryAction(strings.ToUpper(strings.TrimSpace(s))); a {
	case MemoryAdd, MemorySubtract, MemoryRecall, MemoryClear:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMemoryAction, s)
}

// View is what the presentation layer renders.
type View struct {
	// DisplayText is the buffer when non-empty, else the last result or "0".
	DisplayText string
	// HistoryLines are rendered history entries, newest first.
	HistoryLines []string
	// Memory is the memory register.
	Memory float64
	// Failed is true when the most recent operation was a failed Evaluate.
	Failed bool
}

// Outcome reports the result of Evaluate.
type Outcome struct {
	OK bool
	// Display is the text to show: the result, the unchanged display for a
	// no-op, or DisplayError.
	Display string
	// Entry is the history entry recorded by a successful evaluation.
	Entry *Entry
}

// Engine owns the expression buffer, last result, memory register and
// history of one calculator.
//
// All operations are total: bad input is a no-op or, for Evaluate, a
// recoverable error that leaves the state untouched. Methods are safe for
// concurrent use.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	history *history.History

	lastResult float64
	hasResult  bool
	memory     float64
	failed     bool

	// Configuration
	maxHistory int
	precision  int
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxHistory: DefaultMaxHistory,
		precision:  DefaultPrecision,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.New()
	e.history = history.New(e.maxHistory)
	return e
}

// AppendToken applies one keystroke: a digit, '.', an operator,
// TokenSign or TokenPercent. Other runes are ignored.
func (e *Engine) AppendToken(tok rune) {
	switch {
	case tok == TokenSign:
		e.ToggleSign()
		return
	case tok == TokenPercent:
		e.ApplyPercent()
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.failed = false

	switch {
	case tok >= '0' && tok <= '9':
		e.appendDigit(byte(tok))
	case tok == '.':
		if !strings.Contains(e.buf.Segment(), ".") {
			e.buf.Append(".")
		}
	case tok < 0x80 && buffer.IsOperator(byte(tok)):
		e.appendOperator(byte(tok))
	}
}

// appendDigit appends d, replacing a lone leading zero in the segment.
func (e *Engine) appendDigit(d byte) {
	seg := e.buf.Segment()
	if strings.TrimPrefix(seg, "-") == "0" {
		e.buf.ReplaceSegment(seg[:len(seg)-1] + string(d))
		return
	}
	e.buf.Append(string(d))
}

// appendOperator applies the operator rules: continue from the last result,
// seed a leading minus, replace a trailing operator, or append.
func (e *Engine) appendOperator(op byte) {
	if e.buf.IsEmpty() {
		if e.hasResult {
			e.buf.Set(expr.FormatNumber(e.lastResult) + string(op))
		} else if op == '-' {
			e.buf.Set("-")
		}
		return
	}

	if !buffer.IsOperator(e.buf.LastChar()) {
		e.buf.Append(string(op))
		return
	}

	// A '-' after a binary operator starts a negative operand ("5*-").
	// Any other combination replaces the trailing operator.
	if op == '-' && buffer.IsDigit(e.buf.CharBeforeLast()) {
		e.buf.Append("-")
		return
	}
	e.buf.ReplaceLast(string(op))
}

// Clear resets the buffer and the last result.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.failed = false
	e.buf.Reset()
	e.hasResult = false
	e.lastResult = 0
}

// Evaluate computes the buffer. On success the result is recorded in the
// history, becomes the last result and the buffer is cleared. On failure
// the state is left untouched so the input can be corrected, the returned
// Outcome carries DisplayError and the error wraps the *expr.Error.
func (e *Engine) Evaluate() (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.failed = false
	text := strings.TrimSpace(e.buf.String())
	if text == "" {
		return Outcome{OK: true, Display: e.displayLocked()}, nil
	}

	v, err := expr.EvalPrecision(text, e.precision)
	if err != nil {
		e.failed = true
		return Outcome{Display: DisplayError}, fmt.Errorf("evaluate %q: %w", text, err)
	}

	entry := history.Entry{Expression: text, Result: v}
	e.history.Push(entry)
	entry, _ = e.history.Latest()

	e.lastResult = v
	e.hasResult = true
	e.buf.Reset()

	return Outcome{OK: true, Display: expr.FormatNumber(v), Entry: &entry}, nil
}

// Backspace removes the last buffer character, or forgets the last result
// when the buffer is already empty.
func (e *Engine) Backspace() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.failed = false
	if !e.buf.TrimLast() {
		e.hasResult = false
		e.lastResult = 0
	}
}

// ToggleSign negates the current segment. With an empty buffer it negates
// the last result, or starts a negative number when there is none.
func (e *Engine) ToggleSign() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.failed = false
	if e.buf.IsBlank() {
		if e.hasResult {
			e.lastResult = -e.lastResult
		} else {
			e.buf.Set("-")
		}
		return
	}

	seg := e.buf.Segment()
	switch {
	case seg == "":
		e.buf.Append("-")
	case seg[0] == '-':
		e.buf.ReplaceSegment(seg[1:])
	default:
		e.buf.ReplaceSegment("-" + seg)
	}
}

// ApplyPercent divides the current segment by 100. With an empty buffer it
// divides the last result instead. Non-numeric segments are left alone.
func (e *Engine) ApplyPercent() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.failed = false
	if e.buf.IsBlank() {
		if e.hasResult {
			e.lastResult = expr.Round(e.lastResult/100, e.precision)
		}
		return
	}

	seg := e.buf.Segment()
	if seg == "" {
		return
	}
	v, ok := expr.ParseLeadingFloat(seg)
	if !ok || math.IsInf(v, 0) {
		return
	}
	e.buf.ReplaceSegment(expr.FormatPlain(expr.Round(v/100, e.precision)))
}

// MemoryOp applies a memory action and records "Memory <action>" in the
// history. It only fails for an unknown action.
func (e *Engine) MemoryOp(action MemoryAction) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch action {
	case MemoryAdd, MemorySubtract, MemoryRecall, MemoryClear:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMemoryAction, action)
	}

	e.failed = false
	current := e.currentValueLocked()
	switch action {
	case MemoryAdd:
		e.memory = expr.Round(e.memory+current, e.precision)
	case MemorySubtract:
		e.memory = expr.Round(e.memory-current, e.precision)
	case MemoryRecall:
		e.buf.Set(expr.FormatNumber(e.memory))
	case MemoryClear:
		e.memory = 0
	}

	e.history.Push(history.Entry{
		Expression: "Memory " + string(action),
		Result:     e.memory,
	})
	return nil
}

// currentValueLocked resolves the value memory operations act on: the last
// result for an empty buffer, else the evaluated buffer, else the number in
// the trailing segment, else 0.
func (e *Engine) currentValueLocked() float64 {
	if e.buf.IsBlank() {
		if e.hasResult {
			return e.lastResult
		}
		return 0
	}

	if v, err := expr.EvalPrecision(e.buf.String(), e.precision); err == nil {
		return v
	}

	v, ok := expr.ParseLeadingFloat(strings.TrimSpace(e.buf.Segment()))
	if !ok || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// ViewState returns what the presentation layer should render.
func (e *Engine) ViewState() View {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return View{
		DisplayText:  e.displayLocked(),
		HistoryLines: e.history.Lines(),
		Memory:       e.memory,
		Failed:       e.failed,
	}
}

func (e *Engine) displayLocked() string {
	if !e.buf.IsEmpty() {
		return e.buf.String()
	}
	if e.hasResult {
		return expr.FormatNumber(e.lastResult)
	}
	return "0"
}

// Buffer returns the expression text.
func (e *Engine) Buffer() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.String()
}

// LastResult returns the last result and whether one is set.
func (e *Engine) LastResult() (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastResult, e.hasResult
}

// Memory returns the memory register.
func (e *Engine) Memory() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.memory
}

// History returns the history entries, newest first.
func (e *Engine) History() []Entry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.Entries()
}

// Precision returns the number of decimal places results are rounded to.
func (e *Engine) Precision() int {
	return e.precision
}
