package buffer

import "strings"

// Buffer is an expression under construction.
type Buffer struct {
	text string
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewFromString creates a buffer holding text.
func NewFromString(text string) *Buffer {
	return &Buffer{text: text}
}

// String returns the buffer text.
func (b *Buffer) String() string {
	return b.text
}

// Len returns the length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.text == ""
}

// IsBlank returns true if the buffer holds only whitespace.
func (b *Buffer) IsBlank() bool {
	return strings.TrimSpace(b.text) == ""
}

// LastChar returns the final byte, or 0 for an empty buffer.
func (b *Buffer) LastChar() byte {
	if b.text == "" {
		return 0
	}
	return b.text[len(b.text)-1]
}

// CharBeforeLast returns the byte preceding the final one, or 0.
func (b *Buffer) CharBeforeLast() byte {
	if len(b.text) < 2 {
		return 0
	}
	return b.text[len(b.text)-2]
}

// LastBinaryOperator returns the index of the last binary operator, or -1.
func (b *Buffer) LastBinaryOperator() int {
	for i := len(b.text) - 1; i >= 0; i-- {
		if IsOperator(b.text[i]) && b.isBinaryAt(i) {
			return i
		}
	}
	return -1
}

// isBinaryAt reports whether the operator at i joins two operands.
// '*' and '/' always do; '+' and '-' are signs at the start of the text or
// after another operator or '('.
func (b *Buffer) isBinaryAt(i int) bool {
	c := b.text[i]
	if c == '*' || c == '/' {
		return true
	}
	if i == 0 {
		return false
	}
	prev := b.text[i-1]
	return !IsOperator(prev) && prev != '('
}

// Segment returns the text after the last binary operator.
func (b *Buffer) Segment() string {
	return b.text[b.LastBinaryOperator()+1:]
}

// Prefix returns the text up to and including the last binary operator.
func (b *Buffer) Prefix() string {
	return b.text[:b.LastBinaryOperator()+1]
}

// Append adds s to the end.
func (b *Buffer) Append(s string) {
	b.text += s
}

// ReplaceSegment swaps the current segment for s, keeping the prefix.
func (b *Buffer) ReplaceSegment(s string) {
	b.text = b.Prefix() + s
}

// ReplaceLast swaps the final byte for s. An empty buffer just receives s.
func (b *Buffer) ReplaceLast(s string) {
	if b.text == "" {
		b.text = s
		return
	}
	b.text = b.text[:len(b.text)-1] + s
}

// TrimLast removes the final byte. It reports false if the buffer was empty.
func (b *Buffer) TrimLast() bool {
	if b.text == "" {
		return false
	}
	b.text = b.text[:len(b.text)-1]
	return true
}

// Set replaces the whole text.
func (b *Buffer) Set(text string) {
	b.text = text
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.text = ""
}

// IsOperator reports whether c is one of + - * /.
func IsOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/':
		return true
	}
	return false
}

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
