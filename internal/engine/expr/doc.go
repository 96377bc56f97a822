// Package expr evaluates calculator expressions.
//
// The accepted language is deliberately small: decimal literals, the binary
// operators + - * /, prefix + and -, and parentheses. Evaluation never hands
// the text to an interpreter; a recursive-descent parser computes the value
// directly with float64 arithmetic.
//
// # Evaluation
//
//	v, err := expr.Eval("0.1+0.2") // v == 0.3
//
// Eval strips whitespace, checks the text against an allow-list, parses and
// computes the value, rejects non-finite results and finally rounds to
// DefaultPrecision decimal places so that binary floating-point noise does not
// leak into results.
//
// # Errors
//
// Every failure is an *Error carrying a Kind:
//
//   - KindInvalidCharacter: a symbol outside [0-9+-*/().] is present
//   - KindMalformed: the text is not a well-formed expression
//   - KindNonFinite: the value is infinite or NaN (division by zero)
//
// The sentinels ErrInvalidCharacter, ErrMalformed and ErrNonFinite match
// through errors.Is.
//
// # Numbers as text
//
// FormatNumber renders a float64 the way the calculator displays it (shortest
// round-trip digits, exponent form outside [1e-7, 1e21)). ParseLeadingFloat
// reads the longest numeric prefix of a string.
package expr
