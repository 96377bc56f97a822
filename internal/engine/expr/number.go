package expr

import (
	"math"
	"strconv"
	"strings"
)

// epsilon is the gap between 1 and the next float64, added before scaling so
// that values like 1.005 round the way a reader expects.
const epsilon = 2.220446049250313e-16

// Round rounds v to the given number of decimal places, halves away from
// zero. Values too large to scale are returned unchanged; they carry no
// fractional digits at that magnitude anyway.
func Round(v float64, places int) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	p := math.Pow(10, float64(places))
	scaled := (v + epsilon) * p
	if math.IsInf(scaled, 0) {
		return v
	}
	return math.Round(scaled) / p
}

// FormatNumber renders v as the calculator displays it: the shortest digit
// string that round-trips, in plain decimal notation when 1e-7 <= |v| < 1e21
// and in d.ddde±n form otherwise. Negative zero renders as "0".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	negative := v < 0
	if negative {
		v = -v
	}

	// 'e' with precision -1 yields the shortest round-trip significand,
	// e.g. "1.2345e+02".
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	mant, expText, _ := strings.Cut(sci, "e")
	exp, _ := strconv.Atoi(expText)
	digits := strings.Replace(mant, ".", "", 1)
	k := len(digits)
	n := exp + 1 // value = 0.<digits> * 10^n

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	switch {
	case k <= n && n <= 21:
		b.WriteString(digits)
		b.WriteString(strings.Repeat("0", n-k))
	case 0 < n && n <= 21:
		b.WriteString(digits[:n])
		b.WriteByte('.')
		b.WriteString(digits[n:])
	case -6 < n && n <= 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -n))
		b.WriteString(digits)
	default:
		b.WriteByte(digits[0])
		if k > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		b.WriteByte('e')
		if n-1 >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(n - 1))
	}
	return b.String()
}

// FormatPlain renders v like FormatNumber but never in exponent form, so the
// text can be fed back into an expression.
func FormatPlain(v float64) string {
	s := FormatNumber(v)
	if !strings.ContainsRune(s, 'e') {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseLeadingFloat parses the longest prefix of s that forms a decimal
// number (optional sign, digits, optional fraction, optional exponent),
// ignoring leading whitespace and any trailing text. It reports false when
// no digits are found.
func ParseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0, false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return 0, false
		}
	}
	return v, true
}
