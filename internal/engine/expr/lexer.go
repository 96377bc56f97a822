package expr

import (
	"strconv"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	pos  int
	text string
	num  float64
}

// allowed reports whether r may appear in an expression.
func allowed(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '(', ')', '.':
		return true
	}
	return r >= '0' && r <= '9'
}

// stripSpace removes all Unicode whitespace.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// validate checks s against the allow-list.
func validate(s string) error {
	for i, r := range s {
		if !allowed(r) {
			return newError(KindInvalidCharacter, i, "unexpected %q", r)
		}
	}
	return nil
}

type lexer struct {
	s string
	i int
}

// next scans one token. The input has already passed validate.
func (l *lexer) next() (token, error) {
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}, nil
	}

	start := l.i
	c := l.s[l.i]
	switch c {
	case '+', '-':
		// "++" and "--" are increment/decrement tokens, which have no
		// meaning applied to a literal.
		if l.i+1 < len(l.s) && l.s[l.i+1] == c {
			return token{}, newError(KindMalformed, start, "unexpected %q", l.s[start:start+2])
		}
		l.i++
		if c == '+' {
			return token{kind: tokPlus, pos: start, text: "+"}, nil
		}
		return token{kind: tokMinus, pos: start, text: "-"}, nil
	case '*':
		l.i++
		return token{kind: tokStar, pos: start, text: "*"}, nil
	case '/':
		l.i++
		return token{kind: tokSlash, pos: start, text: "/"}, nil
	case '(':
		l.i++
		return token{kind: tokLParen, pos: start, text: "("}, nil
	case ')':
		l.i++
		return token{kind: tokRParen, pos: start, text: ")"}, nil
	}

	return l.number()
}

// number scans a decimal literal: digits, an optional '.', more digits.
// At least one digit is required and a leading zero may not be followed by
// another digit.
func (l *lexer) number() (token, error) {
	start := l.i
	digits := 0
	for l.i < len(l.s) && isDigit(l.s[l.i]) {
		l.i++
		digits++
	}
	intPart := l.s[start:l.i]
	if l.i < len(l.s) && l.s[l.i] == '.' {
		l.i++
		for l.i < len(l.s) && isDigit(l.s[l.i]) {
			l.i++
			digits++
		}
	}
	text := l.s[start:l.i]
	if digits == 0 {
		return token{}, newError(KindMalformed, start, "unexpected %q", text)
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return token{}, newError(KindMalformed, start, "leading zero in %q", text)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Only range errors reach here; ParseFloat returns ±Inf for them,
		// which the finiteness check reports.
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return token{}, newError(KindMalformed, start, "bad number %q", text)
		}
	}
	return token{kind: tokNumber, pos: start, text: text, num: v}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
