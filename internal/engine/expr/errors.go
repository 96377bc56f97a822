package expr

import (
	"errors"
	"fmt"
)

// Kind classifies evaluation failures.
type Kind int

const (
	// KindInvalidCharacter indicates a symbol outside the allow-list.
	KindInvalidCharacter Kind = iota + 1

	// KindMalformed indicates a syntactically invalid expression.
	KindMalformed

	// KindNonFinite indicates the result is infinite or NaN.
	KindNonFinite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidCharacter:
		return "InvalidCharacter"
	case KindMalformed:
		return "MalformedExpression"
	case KindNonFinite:
		return "NonFiniteResult"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinel errors, one per Kind.
var (
	ErrInvalidCharacter = errors.New("invalid character in expression")
	ErrMalformed        = errors.New("malformed expression")
	ErrNonFinite        = errors.New("result is not a finite number")
)

// sentinel returns the sentinel error for a kind.
func (k Kind) sentinel() error {
	switch k {
	case KindInvalidCharacter:
		return ErrInvalidCharacter
	case KindMalformed:
		return ErrMalformed
	case KindNonFinite:
		return ErrNonFinite
	default:
		return nil
	}
}

// Error describes a failed evaluation.
type Error struct {
	Kind Kind
	// Pos is the byte offset into the whitespace-stripped text, or -1.
	Pos int
	// Msg gives detail, e.g. the unexpected token.
	Msg string
}

func newError(kind Kind, pos int, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Pos:  pos,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := e.Kind.sentinel()
	if base == nil {
		base = errors.New(e.Kind.String())
	}
	switch {
	case e.Msg != "" && e.Pos >= 0:
		return fmt.Sprintf("%v at offset %d: %s", base, e.Pos, e.Msg)
	case e.Msg != "":
		return fmt.Sprintf("%v: %s", base, e.Msg)
	default:
		return base.Error()
	}
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind.sentinel()
}

// KindOf reports the Kind of err, or 0 if err is not an evaluation error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
