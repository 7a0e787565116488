package decode

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/lattice-json/corejson/internal/charclass"
	"github.com/lattice-json/corejson/jsonerr"
)

// parseString parses a JSON string literal at d.pos, returning the decoded
// text. When the string contains no escape sequences, raw is the
// corresponding slice of d.data (the content between the quotes) and
// fastPath is true; callers that need the pre-escape source bytes (the
// object-key intern path) use this to avoid re-deriving them.
func (d *Decoder) parseString() (decoded string, raw []byte, fastPath bool, err error) {
	if err := d.expectByte('"'); err != nil {
		return "", nil, false, err
	}
	contentStart := d.pos
	var buf []byte
	flush := contentStart

	for {
		if d.pos >= len(d.data) {
			return "", nil, false, d.errAt(jsonerr.UnexpectedEOF, contentStart, "unterminated string")
		}
		b := d.data[d.pos]

		switch {
		case b == '"':
			end := d.pos
			d.pos++
			if buf == nil {
				span := d.data[contentStart:end]
				return string(span), span, true, nil
			}
			buf = append(buf, d.data[flush:end]...)
			return string(buf), nil, false, nil

		case b == '\\':
			buf = append(buf, d.data[flush:d.pos]...)
			d.pos++
			r, err := d.parseEscape()
			if err != nil {
				return "", nil, false, err
			}
			var tmp [4]byte
			n := utf8.EncodeRune(tmp[:], r)
			buf = append(buf, tmp[:n]...)
			flush = d.pos

		case b < 0x20:
			return "", nil, false, d.errAt(jsonerr.UnescapedControl, d.pos,
				fmt.Sprintf("unescaped control character 0x%02X in string", b))

		default:
			// Skip straight to the next quote, backslash, or control byte
			// instead of decoding one rune at a time; this is precisely the
			// decoder's string fast-path scan charclass.NextStringBoundary
			// documents itself as serving.
			next := charclass.NextStringBoundary(d.data, d.pos)
			chunk := d.data[d.pos:next]
			if d.opts.ValidateStrings {
				if bad := firstInvalidUTF8(chunk); bad >= 0 {
					return "", nil, false, d.errAt(jsonerr.InvalidUTF8, d.pos+bad,
						fmt.Sprintf("invalid UTF-8 byte 0x%02X in string", chunk[bad]))
				}
			}
			d.pos = next
		}
	}
}

// firstInvalidUTF8 returns the index of the first byte in b that begins an
// invalid UTF-8 encoding, or -1 if b is entirely valid UTF-8.
func firstInvalidUTF8(b []byte) int {
	i := 0
	for i < len(b) {
		r, sz := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && sz <= 1 {
			return i
		}
		i += sz
	}
	return -1
}

// parseEscape consumes the character(s) following a '\' and returns the
// decoded rune.
func (d *Decoder) parseEscape() (rune, error) {
	if d.pos >= len(d.data) {
		return 0, d.errAt(jsonerr.UnexpectedEOF, d.pos, "unterminated escape sequence")
	}
	b := d.data[d.pos]
	d.pos++
	if b == 'u' {
		return d.parseUnicodeEscape()
	}
	if r, ok := simpleEscape(b); ok {
		return r, nil
	}
	return 0, d.errAt(jsonerr.BadEscape, d.pos-1, fmt.Sprintf("invalid escape character %q", string(b)))
}

func simpleEscape(b byte) (rune, bool) {
	switch b {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case '/':
		return '/', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	default:
		return 0, false
	}
}

// parseUnicodeEscape parses \uXXXX, following through a second \uXXXX when
// the first half is a high surrogate. A lone surrogate of either kind is
// rejected with kind lone-surrogate rather than substituted with U+FFFD.
func (d *Decoder) parseUnicodeEscape() (rune, error) {
	escStart := d.pos - 2 // position of the 'u' minus the leading backslash already consumed
	r1, err := d.readHex4()
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(r1) {
		return r1, nil
	}
	if r1 >= 0xDC00 {
		return 0, d.errAt(jsonerr.LoneSurrogate, escStart, fmt.Sprintf("lone low surrogate U+%04X", r1))
	}
	if d.pos+1 >= len(d.data) || d.data[d.pos] != '\\' || d.data[d.pos+1] != 'u' {
		return 0, d.errAt(jsonerr.LoneSurrogate, escStart, fmt.Sprintf("lone high surrogate U+%04X", r1))
	}
	d.pos += 2
	r2, err := d.readHex4()
	if err != nil {
		return 0, err
	}
	if r2 < 0xDC00 || r2 > 0xDFFF {
		return 0, d.errAt(jsonerr.LoneSurrogate, escStart,
			fmt.Sprintf("high surrogate U+%04X not followed by a low surrogate", r1))
	}
	return utf16.DecodeRune(r1, r2), nil
}

// readHex4 reads exactly 4 hex digits and returns their value.
func (d *Decoder) readHex4() (rune, error) {
	if d.pos+4 > len(d.data) {
		return 0, d.errAt(jsonerr.BadEscape, d.pos, "incomplete \\u escape")
	}
	var v rune
	for i := 0; i < 4; i++ {
		c := d.data[d.pos+i]
		var digit rune
		switch {
		case c >= '0' && c <= '9':
			digit = rune(c - '0')
		case c >= 'a' && c <= 'f':
			digit = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			digit = rune(c-'A') + 10
		default:
			return 0, d.errAt(jsonerr.BadEscape, d.pos, fmt.Sprintf("invalid hex digit %q in \\u escape", string(c)))
		}
		v = v<<4 | digit
	}
	d.pos += 4
	return v, nil
}
