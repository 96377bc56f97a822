// Package engine provides the expression engine behind the keycalc
// calculator.
//
// The engine owns four pieces of state: the expression buffer being typed,
// the last evaluated result, a memory register and a short history of
// operations. Callers (key dispatch, scripts, batch input) invoke one
// operation per keystroke and render the View that results.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: the expression text and its segment arithmetic
//   - expr: safe evaluation, rounding and number formatting
//   - history: bounded newest-first list of recorded operations
//
// # Basic Usage
//
//	e := engine.New()
//
//	for _, r := range "2+3" {
//	    e.AppendToken(r)
//	}
//	out, err := e.Evaluate() // out.Display == "5"
//
//	e.ViewState().HistoryLines // ["2+3 = 5"]
//
// # Editing Rules
//
// Keystrokes are interpreted against the current segment, the number after
// the last binary operator:
//
//   - a digit replaces a lone "0" segment instead of following it
//   - '.' is ignored when the segment already holds one
//   - an operator typed over a trailing operator replaces it, except that
//     '-' after a binary operator starts a negative operand ("5*-")
//   - an operator typed into an empty buffer continues from the last result
//   - TokenSign negates the segment; TokenPercent divides it by 100
//
// # Errors
//
// Evaluate reports failures as errors wrapping *expr.Error; use errors.Is
// with ErrInvalidCharacter, ErrMalformed or ErrNonFinite. A failed
// evaluation leaves the buffer and last result untouched and marks the
// View as Failed until the next operation. Memory operations never fail on
// bad input; an unparseable buffer counts as 0.
//
// # Configuration
//
//	e := engine.New(
//	    engine.WithMaxHistory(10),
//	    engine.WithPrecision(8),
//	)
package engine
