package encode

import (
	"unicode/utf16"

	"github.com/lattice-json/corejson/internal/charclass"
)

const (
	lineSeparator      = ' '
	paragraphSeparator = ' '
)

// encodeString appends s as a quoted, escaped JSON string literal per the
// configured EscapeMode. ASCII runs between escape-worthy bytes are copied
// in bulk via charclass.NextEscapeBoundary rather than inspected one byte at
// a time, exactly the fast-path scan that package documents itself as
// serving.
func (e *encoder) encodeString(buf []byte, s string) []byte {
	data := []byte(s)
	table := &charclass.EscapeJSON
	if e.opts.Escape == EscapeHTMLSafe {
		table = &charclass.EscapeHTML
	}

	buf = append(buf, '"')
	i := 0
	for i < len(data) {
		if data[i] < 0x80 {
			next := charclass.NextEscapeBoundary(data, i, table)
			if e.opts.Escape != EscapeJSON {
				// End the verbatim run at the first non-ASCII byte so the
				// rune switch below can escape it.
				for j := i; j < next; j++ {
					if data[j] >= 0x80 {
						next = j
						break
					}
				}
			}
			buf = append(buf, data[i:next]...)
			i = next
			if i >= len(data) || data[i] >= 0x80 {
				continue
			}
			b := data[i]
			if escaped, consumed := appendMandatoryEscape(buf, b); consumed {
				buf = escaped
				i++
				continue
			}
			escaped, _ := appendHTMLEscape(buf, b)
			buf = escaped
			i++
			continue
		}

		r, size := decodeRuneAt(data, i)
		if i+size > len(data) {
			size = len(data) - i
		}

		switch e.opts.Escape {
		case EscapeUnicodeSafe:
			buf = appendUnicodeEscapeRune(buf, r)
		case EscapeHTMLSafe, EscapeJSSafe:
			if r == lineSeparator || r == paragraphSeparator {
				buf = appendUnicodeEscapeRune(buf, r)
			} else {
				buf = append(buf, data[i:i+size]...)
			}
		default:
			buf = append(buf, data[i:i+size]...)
		}
		i += size
	}
	buf = append(buf, '"')
	return buf
}

// appendMandatoryEscape handles the RFC 8259 minimum: quote, backslash, and
// control characters. Every EscapeMode includes these.
func appendMandatoryEscape(buf []byte, b byte) ([]byte, bool) {
	switch b {
	case '"':
		return append(buf, '\\', '"'), true
	case '\\':
		return append(buf, '\\', '\\'), true
	case '\b':
		return append(buf, '\\', 'b'), true
	case '\t':
		return append(buf, '\\', 't'), true
	case '\n':
		return append(buf, '\\', 'n'), true
	case '\f':
		return append(buf, '\\', 'f'), true
	case '\r':
		return append(buf, '\\', 'r'), true
	default:
		if b < 0x20 {
			return append(buf, '\\', 'u', '0', '0', hexDigit(b>>4), hexDigit(b&0x0F)), true
		}
		return buf, false
	}
}

// appendHTMLEscape escapes the extra ASCII characters that make output
// unsafe to embed verbatim inside an HTML <script> element.
func appendHTMLEscape(buf []byte, b byte) ([]byte, bool) {
	switch b {
	case '<':
		return append(buf, '\\', 'u', '0', '0', '3', 'c'), true
	case '>':
		return append(buf, '\\', 'u', '0', '0', '3', 'e'), true
	case '&':
		return append(buf, '\\', 'u', '0', '0', '2', '6'), true
	default:
		return buf, false
	}
}

func appendUnicodeEscapeRune(buf []byte, r rune) []byte {
	if r > 0xFFFF {
		r1, r2 := utf16.EncodeRune(r)
		buf = appendUnicodeEscapeUnit(buf, uint16(r1))
		return appendUnicodeEscapeUnit(buf, uint16(r2))
	}
	return appendUnicodeEscapeUnit(buf, uint16(r))
}

func appendUnicodeEscapeUnit(buf []byte, u uint16) []byte {
	return append(buf, '\\', 'u', hexDigit(byte(u>>12)), hexDigit(byte(u>>8)), hexDigit(byte(u>>4)), hexDigit(byte(u)))
}

// decodeRuneAt decodes the rune starting at byte offset i, assuming s[i] is
// a valid UTF-8 lead byte (Value's invariant guarantees this for Str).
func decodeRuneAt(s []byte, i int) (rune, int) {
	for _, r := range string(s[i:]) {
		return r, utf8SeqLen(s[i])
	}
	return 0, 1
}

func hexDigit(b byte) byte {
	b &= 0x0F
	if b < 10 {
		return '0' + b
	}
	return 'a' + (b - 10)
}

func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b < 0xE0:
		return 2
	case b < 0xF0:
		return 3
	default:
		return 4
	}
}
