package expr

import (
	"errors"
	"math"
	"testing"
)

func TestEval(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"", 0},
		{"   ", 0},
		{"2+3", 5},
		{"2 + 3", 5},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10/4", 2.5},
		{"10-4-3", 3},
		{"100/10/5", 2},
		{"5*-3", -15},
		{"5-+3", 2},
		{"-5", -5},
		{"-(2+3)", -5},
		{"+-3", -3},
		{".5+.5", 1},
		{"5.+1", 6},
		{"0.5*2", 1},
		{"0", 0},
		{"0.1+0.2", 0.3},
		{"1/3", 0.333333333333},
		{"2/3", 0.666666666667},
		{"1/(1/0)", 0},
		{"((((7))))", 7},
	}

	for _, tt := range tests {
		got, err := Eval(tt.input)
		if err != nil {
			t.Errorf("Eval(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Eval(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"2+a", KindInvalidCharacter},
		{"2^3", KindInvalidCharacter},
		{"1e5", KindInvalidCharacter},
		{"5++", KindMalformed},
		{"5--3", KindMalformed},
		{"5+", KindMalformed},
		{"*5", KindMalformed},
		{"(2+3", KindMalformed},
		{"2+3)", KindMalformed},
		{"()", KindMalformed},
		{".", KindMalformed},
		{"1.2.3", KindMalformed},
		{"05", KindMalformed},
		{"2(3)", KindMalformed},
		{"5**2", KindMalformed},
		{"1/0", KindNonFinite},
		{"-1/0", KindNonFinite},
		{"0/0", KindNonFinite},
		{"1/0-1/0", KindNonFinite},
	}

	for _, tt := range tests {
		_, err := Eval(tt.input)
		if err == nil {
			t.Errorf("Eval(%q) expected %v error, got nil", tt.input, tt.kind)
			continue
		}
		if k := KindOf(err); k != tt.kind {
			t.Errorf("Eval(%q) kind = %v, expected %v (err: %v)", tt.input, k, tt.kind, err)
		}
	}
}

func TestEvalErrorsIs(t *testing.T) {
	_, err := Eval("1/0")
	if !errors.Is(err, ErrNonFinite) {
		t.Errorf("expected errors.Is(err, ErrNonFinite), got %v", err)
	}

	_, err = Eval("1$2")
	if !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("expected errors.Is(err, ErrInvalidCharacter), got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Pos != 1 {
		t.Errorf("expected offset 1, got %d", e.Pos)
	}

	_, err = Eval("5+")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected errors.Is(err, ErrMalformed), got %v", err)
	}
	if errors.Is(err, ErrNonFinite) {
		t.Error("malformed error should not match ErrNonFinite")
	}
}

func TestEvalPrecision(t *testing.T) {
	got, err := EvalPrecision("1/3", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.33 {
		t.Errorf("expected 0.33, got %v", got)
	}

	got, err = EvalPrecision("0.1+0.2", -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == 0.3 {
		t.Error("expected unrounded sum to differ from 0.3")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in       float64
		places   int
		expected float64
	}{
		{0.1 + 0.2, 12, 0.3},
		{-0.1 - 0.2, 12, -0.3},
		{1.005, 2, 1.01},
		{2.5, 0, 3},
		{1e300, 12, 1e300},
	}

	for _, tt := range tests {
		got := Round(tt.in, tt.places)
		if got != tt.expected {
			t.Errorf("Round(%v, %d) = %v, expected %v", tt.in, tt.places, got, tt.expected)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{5, "5"},
		{-15, "-15"},
		{0.5, "0.5"},
		{0.3, "0.3"},
		{2.5, "2.5"},
		{123.456, "123.456"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e21, "1.5e+21"},
		{1e-6, "0.000001"},
		{1.5e-7, "1.5e-7"},
		{1e-7, "1e-7"},
		{0.333333333333, "0.333333333333"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		got := FormatNumber(tt.in)
		if got != tt.expected {
			t.Errorf("FormatNumber(%v) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestFormatPlain(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0.5, "0.5"},
		{-12, "-12"},
		{1e-9, "0.000000001"},
		{1.5e21, "1500000000000000000000"},
		{math.Copysign(0, -1), "0"},
	}
	for _, tt := range tests {
		if got := FormatPlain(tt.in); got != tt.expected {
			t.Errorf("FormatPlain(%v) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"50", 50, true},
		{"-50", -50, true},
		{"5.", 5, true},
		{".5", 0.5, true},
		{"12abc", 12, true},
		{"5)", 5, true},
		{"1e3", 1000, true},
		{"1e", 1, true},
		{"  7", 7, true},
		{"", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"(5", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseLeadingFloat(tt.in)
		if ok != tt.ok || (ok && got != tt.expected) {
			t.Errorf("ParseLeadingFloat(%q) = (%v, %v), expected (%v, %v)", tt.in, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindInvalidCharacter, "InvalidCharacter"},
		{KindMalformed, "MalformedExpression"},
		{KindNonFinite, "NonFiniteResult"},
		{Kind(99), "Kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, expected %q", int(tt.kind), got, tt.expected)
		}
	}
}
