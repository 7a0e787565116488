// Package decode implements the JSON core's decoder: a recursive-descent
// parser from an immutable byte sequence to a value.Value tree, configurable
// via Options.
package decode

import (
	"errors"
	"fmt"

	"github.com/lattice-json/corejson/depth"
	"github.com/lattice-json/corejson/internal/charclass"
	"github.com/lattice-json/corejson/internkeys"
	"github.com/lattice-json/corejson/jsonerr"
	"github.com/lattice-json/corejson/numeric"
	"github.com/lattice-json/corejson/value"
)

// Decoder holds the state for a single decode invocation. A Decoder is not
// safe for concurrent or repeated use; construct a fresh one per input.
type Decoder struct {
	data  []byte
	pos   int
	opts  Options
	guard depth.Guard
	cache *internkeys.Cache
}

// NewDecoder prepares a Decoder over data using opts.
func NewDecoder(data []byte, opts Options) *Decoder {
	d := &Decoder{data: data, opts: opts}
	if opts.Keys == KeysIntern {
		d.cache = &internkeys.Cache{}
	}
	return d
}

// Decode parses data as a single complete JSON text under opts. It is a
// convenience wrapper around NewDecoder(data, opts).Decode().
func Decode(data []byte, opts Options) (value.Value, error) {
	return NewDecoder(data, opts).Decode()
}

// Decode parses exactly one JSON value from d's input, requiring the
// remainder (after trailing whitespace) to be empty.
func (d *Decoder) Decode() (value.Value, error) {
	if d.opts.MaxBytes > 0 && len(d.data) > d.opts.MaxBytes {
		return value.Value{}, jsonerr.NewDecode(jsonerr.InputTooLarge, d.data, 0,
			fmt.Sprintf("input size %d exceeds configured maximum %d", len(d.data), d.opts.MaxBytes))
	}
	d.skipWhitespace()
	v, err := d.parseValue()
	if err != nil {
		return value.Value{}, err
	}
	d.skipWhitespace()
	if d.pos != len(d.data) {
		return value.Value{}, d.errAt(jsonerr.TrailingData, d.pos, "trailing content after JSON value")
	}
	return v, nil
}

func (d *Decoder) errAt(kind jsonerr.Kind, pos int, message string) *jsonerr.Error {
	return jsonerr.NewDecode(kind, d.data, pos, message)
}

func (d *Decoder) peek() (byte, bool) {
	if d.pos >= len(d.data) {
		return 0, false
	}
	return d.data[d.pos], true
}

func (d *Decoder) expectByte(b byte) error {
	c, ok := d.peek()
	if !ok {
		return d.errAt(jsonerr.UnexpectedEOF, d.pos, fmt.Sprintf("expected %q, reached end of input", string(b)))
	}
	if c != b {
		return d.errAt(jsonerr.UnexpectedChar, d.pos, fmt.Sprintf("expected %q, got %q", string(b), string(c)))
	}
	d.pos++
	return nil
}

func (d *Decoder) skipWhitespace() {
	d.pos = charclass.NextWhitespaceEnd(d.data, d.pos)
}

func isDigit(b byte) bool { return charclass.Digit[b] }

func (d *Decoder) parseValue() (value.Value, error) {
	c, ok := d.peek()
	if !ok {
		return value.Value{}, d.errAt(jsonerr.UnexpectedEOF, d.pos, "unexpected end of input")
	}
	switch c {
	case '{':
		return d.parseObject()
	case '[':
		return d.parseArray()
	case '"':
		decoded, _, _, err := d.parseString()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewStr(decoded), nil
	case 't':
		return d.parseLiteral("true", value.NewBool(true))
	case 'f':
		return d.parseLiteral("false", value.NewBool(false))
	case 'n':
		return d.parseLiteral("null", value.NewNull())
	case '-':
		return d.parseNumber()
	default:
		if isDigit(c) {
			return d.parseNumber()
		}
		return value.Value{}, d.errAt(jsonerr.UnexpectedChar, d.pos, fmt.Sprintf("unexpected character %q", string(c)))
	}
}

func (d *Decoder) parseLiteral(lit string, v value.Value) (value.Value, error) {
	if d.pos+len(lit) > len(d.data) || string(d.data[d.pos:d.pos+len(lit)]) != lit {
		return value.Value{}, d.errAt(jsonerr.UnknownAtom, d.pos, fmt.Sprintf("invalid literal, expected %q", lit))
	}
	d.pos += len(lit)
	return v, nil
}

func (d *Decoder) parseArray() (value.Value, error) {
	if err := d.guard.Enter(); err != nil {
		return value.Value{}, d.errAt(jsonerr.DepthExceeded, d.pos, err.Error())
	}
	defer d.guard.Leave()

	d.pos++ // '['
	d.skipWhitespace()

	var items []value.Value
	if c, ok := d.peek(); ok && c == ']' {
		d.pos++
		return value.NewArr(items), nil
	}

	for {
		d.skipWhitespace()
		v, err := d.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
		d.skipWhitespace()
		c, ok := d.peek()
		if !ok {
			return value.Value{}, d.errAt(jsonerr.UnexpectedEOF, d.pos, "unexpected end of input in array")
		}
		switch c {
		case ']':
			d.pos++
			return value.NewArr(items), nil
		case ',':
			d.pos++
		default:
			return value.Value{}, d.errAt(jsonerr.UnexpectedChar, d.pos, fmt.Sprintf("expected ',' or ']' in array, got %q", string(c)))
		}
	}
}

func (d *Decoder) parseObject() (value.Value, error) {
	if err := d.guard.Enter(); err != nil {
		return value.Value{}, d.errAt(jsonerr.DepthExceeded, d.pos, err.Error())
	}
	defer d.guard.Leave()

	d.pos++ // '{'
	d.skipWhitespace()

	var members []value.Member
	seen := make(map[string]int)

	if c, ok := d.peek(); ok && c == '}' {
		d.pos++
		return d.finishObject(members), nil
	}

	for {
		d.skipWhitespace()
		keyStart := d.pos
		key, err := d.parseKey()
		if err != nil {
			return value.Value{}, err
		}
		d.skipWhitespace()
		if err := d.expectByte(':'); err != nil {
			return value.Value{}, err
		}
		d.skipWhitespace()
		v, err := d.parseValue()
		if err != nil {
			return value.Value{}, err
		}

		if idx, dup := seen[key]; dup {
			if d.opts.DuplicateKeys == DuplicateKeysError {
				return value.Value{}, d.errAt(jsonerr.DuplicateKey, keyStart, fmt.Sprintf("duplicate object key %q", key))
			}
			members[idx].Value = v
		} else {
			seen[key] = len(members)
			members = append(members, value.Member{Key: key, Value: v})
		}

		d.skipWhitespace()
		c, ok := d.peek()
		if !ok {
			return value.Value{}, d.errAt(jsonerr.UnexpectedEOF, d.pos, "unexpected end of input in object")
		}
		switch c {
		case '}':
			d.pos++
			return d.finishObject(members), nil
		case ',':
			d.pos++
		default:
			return value.Value{}, d.errAt(jsonerr.UnexpectedChar, d.pos, fmt.Sprintf("expected ',' or '}' in object, got %q", string(c)))
		}
	}
}

func (d *Decoder) finishObject(members []value.Member) value.Value {
	if d.opts.Objects == ObjectsOrdered {
		return value.NewOrderedObj(members)
	}
	return value.NewObj(members)
}

// parseKey parses an object member name and applies the configured Keys
// mode.
func (d *Decoder) parseKey() (string, error) {
	start := d.pos
	if c, ok := d.peek(); !ok || c != '"' {
		return "", d.errAt(jsonerr.BadKeyType, d.pos, "object keys must be strings")
	}
	decoded, raw, fastPath, err := d.parseString()
	if err != nil {
		return "", err
	}

	switch d.opts.Keys {
	case KeysIntern:
		if fastPath && d.cache != nil {
			if cached, ok := d.cache.Lookup(raw); ok {
				return cached, nil
			}
			d.cache.Insert(raw, decoded)
		}
		return decoded, nil
	case KeysAtoms:
		if d.opts.Atoms == nil {
			return "", d.errAt(jsonerr.BadKeyType, start, "keys: atoms requires Options.Atoms")
		}
		return d.opts.Atoms.Intern(decoded), nil
	case KeysAtomsStrict:
		if d.opts.Atoms == nil {
			return "", d.errAt(jsonerr.BadKeyType, start, "keys: atoms-strict requires Options.Atoms")
		}
		sym, ok := d.opts.Atoms.Lookup(decoded)
		if !ok {
			return "", d.errAt(jsonerr.UnknownAtom, start, fmt.Sprintf("unknown atom %q", decoded))
		}
		return sym, nil
	case KeysTransform:
		if d.opts.KeyTransform == nil {
			return "", d.errAt(jsonerr.BadKeyType, start, "keys: transform requires Options.KeyTransform")
		}
		return d.opts.KeyTransform(decoded), nil
	default:
		return decoded, nil
	}
}

func (d *Decoder) parseNumber() (value.Value, error) {
	start := d.pos
	if d.pos < len(d.data) && d.data[d.pos] == '-' {
		d.pos++
	}
	if err := d.scanIntegerDigits(); err != nil {
		return value.Value{}, err
	}
	intDigits := d.pos - start
	if d.data[start] == '-' {
		intDigits--
	}
	if d.opts.MaxIntegerDigits > 0 && intDigits > d.opts.MaxIntegerDigits {
		return value.Value{}, d.errAt(jsonerr.DigitLimit, start, "integer part exceeds the configured digit limit")
	}
	isFloat := false

	if d.pos < len(d.data) && d.data[d.pos] == '.' {
		isFloat = true
		d.pos++
		if d.pos >= len(d.data) || !isDigit(d.data[d.pos]) {
			return value.Value{}, d.errAt(jsonerr.BadNumber, d.pos, "expected digit after decimal point")
		}
		d.pos = charclass.NextDigitEnd(d.data, d.pos)
	}

	if d.pos < len(d.data) && (d.data[d.pos] == 'e' || d.data[d.pos] == 'E') {
		isFloat = true
		d.pos++
		if d.pos < len(d.data) && (d.data[d.pos] == '+' || d.data[d.pos] == '-') {
			d.pos++
		}
		if d.pos >= len(d.data) || !isDigit(d.data[d.pos]) {
			return value.Value{}, d.errAt(jsonerr.BadNumber, d.pos, "expected digit in exponent")
		}
		d.pos = charclass.NextDigitEnd(d.data, d.pos)
	}

	raw := d.data[start:d.pos]

	if !isFloat {
		n, err := numeric.ParseInt(raw, d.opts.MaxIntegerDigits)
		if err != nil {
			if errors.Is(err, numeric.ErrDigitLimit) {
				return value.Value{}, d.errAt(jsonerr.DigitLimit, start, "integer literal exceeds the configured digit limit")
			}
			return value.Value{}, d.errAt(jsonerr.BadNumber, start, err.Error())
		}
		return value.NewInt(n), nil
	}

	if d.opts.Floats == FloatsDecimal {
		return value.NewDecimal(canonicalizeDecimal(raw)), nil
	}
	f, err := numeric.ParseFloat(raw)
	if err != nil {
		if errors.Is(err, numeric.ErrOverflow) {
			return value.Value{}, d.errAt(jsonerr.NumberOverflow, start, "number overflows a 64-bit float")
		}
		return value.Value{}, d.errAt(jsonerr.BadNumber, start, err.Error())
	}
	return value.NewFloat(f), nil
}

// scanIntegerDigits scans the integer part of a number token, rejecting
// leading zeros per the JSON grammar ("0" is a valid integer part on its
// own, but "01" is not).
func (d *Decoder) scanIntegerDigits() error {
	if d.pos >= len(d.data) {
		return d.errAt(jsonerr.UnexpectedEOF, d.pos, "unexpected end of input in number")
	}
	if d.data[d.pos] == '0' {
		d.pos++
		if d.pos < len(d.data) && isDigit(d.data[d.pos]) {
			return d.errAt(jsonerr.BadNumber, d.pos, "leading zero in number")
		}
		return nil
	}
	if !isDigit(d.data[d.pos]) {
		return d.errAt(jsonerr.BadNumber, d.pos, fmt.Sprintf("invalid number character %q", string(d.data[d.pos])))
	}
	d.pos = charclass.NextDigitEnd(d.data, d.pos)
	return nil
}

// canonicalizeDecimal normalizes a validated JSON number token for the
// Decimal variant: a lower-case exponent marker with no explicit '+' sign.
// It never touches significant digits, preserving the literal's precision.
func canonicalizeDecimal(raw []byte) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == 'E' {
			c = 'e'
		}
		out = append(out, c)
		if c == 'e' && i+1 < len(raw) && raw[i+1] == '+' {
			i++
		}
	}
	return string(out)
}
