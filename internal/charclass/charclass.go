// Package charclass provides the 256-entry byte classification tables shared
// by the decoder and the encoder. Both engines index these tables directly in
// their hot loops rather than branching on byte ranges, and both the scalar
// scan and any future SIMD-assisted scan must agree with the predicates
// defined here.
package charclass

// EscapeJSON reports, for each byte value, whether that byte must be escaped
// when writing a JSON string in the default "json" escape mode: control
// characters, the quote, and the backslash.
var EscapeJSON [256]bool

// EscapeHTML is EscapeJSON plus '<', '>', and '&', used in HTML-safe
// encoding mode to keep JSON embeddable inside a <script> tag. The JSON
// solidus '/' is never escaped by this encoder; RFC 8259 never requires it
// and HTML's "</script>" concern is already covered by escaping '<'.
var EscapeHTML [256]bool

// Digit reports whether a byte is an ASCII decimal digit.
var Digit [256]bool

// Whitespace reports whether a byte is insignificant JSON whitespace:
// space, tab, newline, or carriage return.
var Whitespace [256]bool

func init() {
	for b := 0; b < 0x20; b++ {
		EscapeJSON[b] = true
		EscapeHTML[b] = true
	}
	EscapeJSON['"'] = true
	EscapeJSON['\\'] = true
	EscapeHTML['"'] = true
	EscapeHTML['\\'] = true
	EscapeHTML['<'] = true
	EscapeHTML['>'] = true
	EscapeHTML['&'] = true

	for b := '0'; b <= '9'; b++ {
		Digit[b] = true
	}

	Whitespace[' '] = true
	Whitespace['\t'] = true
	Whitespace['\n'] = true
	Whitespace['\r'] = true
}

// NextWhitespaceEnd returns the index of the first byte in b (starting at
// from) that is not whitespace, or len(b) if the remainder is all
// whitespace. On amd64/arm64 the Go runtime's bytes.IndexByte-class routines
// are themselves vectorized; layering a bespoke SIMD scan on top would
// duplicate that work without a measurable win for tables this small, so the
// scalar loop below is the only implementation.
func NextWhitespaceEnd(b []byte, from int) int {
	i := from
	for i < len(b) && Whitespace[b[i]] {
		i++
	}
	return i
}

// NextDigitEnd returns the index of the first byte in b (starting at from)
// that is not an ASCII digit, or len(b) if the remainder is all digits.
func NextDigitEnd(b []byte, from int) int {
	i := from
	for i < len(b) && Digit[b[i]] {
		i++
	}
	return i
}

// NextStringBoundary returns the index of the first byte in b (starting at
// from) that is '"', '\\', or a control character (< 0x20), or len(b) if none
// is found. This is the decoder's string fast-path scan.
func NextStringBoundary(b []byte, from int) int {
	i := from
	for i < len(b) {
		c := b[i]
		if c == '"' || c == '\\' || c < 0x20 {
			return i
		}
		i++
	}
	return len(b)
}

// NextEscapeBoundary returns the index of the first byte in b (starting at
// from) that must be escaped under the given table, or len(b) if none is
// found. This is the encoder's string fast-path scan. The result equals
// from when the byte at from must itself be escaped, so a caller makes
// progress by copying [from, p) and then consuming the byte at p itself,
// as the encoder does.
func NextEscapeBoundary(b []byte, from int, table *[256]bool) int {
	i := from
	for i < len(b) {
		if table[b[i]] {
			return i
		}
		i++
	}
	return len(b)
}
