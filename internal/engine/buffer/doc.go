// Package buffer holds the calculator's in-progress expression text.
//
// A Buffer is a flat string of digits, '.', operators and parentheses. Most
// editing rules work on the current segment: the text after the last binary
// operator, i.e. the number being typed. A '-' or '+' at the start of the
// buffer, or directly after another operator or '(', is a sign and belongs to
// the segment:
//
//	"12+34"   segment "34",  prefix "12+"
//	"5*-3"    segment "-3",  prefix "5*"
//	"-7"      segment "-7",  prefix ""
//	"5*"      segment "",    prefix "5*"
//
// Buffer is not safe for concurrent use; the engine serializes access.
package buffer
