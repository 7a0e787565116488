package numeric

import "math"

// FormatECMA formats f exactly as the ECMAScript Number::toString algorithm
// (ECMA-262, radix 10) would, reusing the same shortest-digit generator as
// FormatFloat. This is not part of the JSON core's own grammar (JSON numbers
// always carry a '.' or 'e' to distinguish Float from Int; ECMAScript's
// grammar does not) — it exists solely so the conformance package can
// demonstrate byte-identical agreement with
// github.com/cyberphone/json-canonicalization (RFC 8785 JCS), which mandates
// ECMA-262 number formatting.
func FormatECMA(f float64) (string, error) {
	if isNaNOrInf(f) {
		return "", ErrNotFinite
	}
	if f == 0 {
		return "0", nil
	}

	negative := f < 0
	if negative {
		f = -f
	}

	digits, n := shortestDigits(f)
	return formatECMAGrammar(negative, digits, n), nil
}

func isNaNOrInf(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

func formatECMAGrammar(negative bool, digits string, n int) string {
	k := len(digits)

	var buf []byte
	if negative {
		buf = append(buf, '-')
	}

	switch {
	case k <= n && n <= 21:
		buf = append(buf, digits...)
		for i := 0; i < n-k; i++ {
			buf = append(buf, '0')
		}
	case 0 < n && n <= 21:
		buf = append(buf, digits[:n]...)
		buf = append(buf, '.')
		buf = append(buf, digits[n:]...)
	case -6 < n && n <= 0:
		buf = append(buf, '0', '.')
		for i := 0; i < -n; i++ {
			buf = append(buf, '0')
		}
		buf = append(buf, digits...)
	default:
		buf = append(buf, digits[0])
		if k > 1 {
			buf = append(buf, '.')
			buf = append(buf, digits[1:]...)
		}
		buf = append(buf, 'e')
		exp := n - 1
		if exp >= 0 {
			buf = append(buf, '+')
		}
		buf = appendIntNoPlus(buf, exp)
	}

	return string(buf)
}
