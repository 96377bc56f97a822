package expr

import (
	"math"
)

// DefaultPrecision is the number of decimal places results are rounded to.
const DefaultPrecision = 12

// Eval evaluates text and rounds the result to DefaultPrecision places.
// An empty (or all-whitespace) text evaluates to 0.
func Eval(text string) (float64, error) {
	return EvalPrecision(text, DefaultPrecision)
}

// EvalPrecision is Eval with an explicit rounding precision.
// A negative precision disables rounding.
func EvalPrecision(text string, places int) (float64, error) {
	v, err := evalRaw(text)
	if err != nil {
		return 0, err
	}
	if places < 0 {
		return v, nil
	}
	return Round(v, places), nil
}

// evalRaw parses and computes text without rounding.
func evalRaw(text string) (float64, error) {
	s := stripSpace(text)
	if s == "" {
		return 0, nil
	}
	if err := validate(s); err != nil {
		return 0, err
	}

	p := &parser{lex: lexer{s: s}}
	if err := p.advance(); err != nil {
		return 0, err
	}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.tok.kind != tokEOF {
		return 0, p.unexpected()
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, newError(KindNonFinite, -1, "%v", v)
	}
	return v, nil
}

// parser is a recursive-descent evaluator over the grammar
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = ("+" | "-") unary | primary
//	primary = number | "(" expr ")"
type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) unexpected() error {
	if p.tok.kind == tokEOF {
		return newError(KindMalformed, p.tok.pos, "unexpected end of input")
	}
	return newError(KindMalformed, p.tok.pos, "unexpected %s", p.tok.kind)
}

func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return 0, err
		}
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == tokPlus {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return 0, err
		}
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == tokStar {
			left *= right
		} else {
			// IEEE division: x/0 is ±Inf, 0/0 is NaN. Only the final
			// value has to be finite.
			left /= right
		}
	}
	return left, nil
}

func (p *parser) unary() (float64, error) {
	switch p.tok.kind {
	case tokMinus:
		if err := p.advance(); err != nil {
			return 0, err
		}
		v, err := p.unary()
		return -v, err
	case tokPlus:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return p.unary()
	}
	return p.primary()
}

func (p *parser) primary() (float64, error) {
	switch p.tok.kind {
	case tokNumber:
		v := p.tok.num
		if err := p.advance(); err != nil {
			return 0, err
		}
		return v, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return 0, err
		}
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.tok.kind != tokRParen {
			if p.tok.kind == tokEOF {
				return 0, newError(KindMalformed, p.tok.pos, "missing ')'")
			}
			return 0, p.unexpected()
		}
		if err := p.advance(); err != nil {
			return 0, err
		}
		return v, nil
	}
	return 0, p.unexpected()
}
