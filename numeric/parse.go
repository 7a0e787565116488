package numeric

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

// ErrDigitLimit is returned when a number's integer part is longer than the
// configured max_integer_digits.
var ErrDigitLimit = errors.New("numeric: integer digit count exceeds configured limit")

// ErrOverflow is returned when a number's exponent magnitude overflows
// binary64 range (spec kind "number-overflow").
var ErrOverflow = errors.New("numeric: exponent magnitude overflows binary64 range")

// Int is the arbitrary-precision signed integer variant of a JSON number. It
// stores a small fast case (Big == nil) and a big case separately, per the
// data model's "implementation MAY store a small fast case and a big case
// separately."
type Int struct {
	Small int64
	Big   *big.Int // non-nil only when the value does not fit in int64
}

// IsBig reports whether the value required the arbitrary-precision case.
func (i Int) IsBig() bool { return i.Big != nil }

// String renders the integer in decimal.
func (i Int) String() string {
	if i.Big != nil {
		return i.Big.String()
	}
	return strconv.FormatInt(i.Small, 10)
}

// AppendInt appends the decimal representation of i to buf.
func AppendInt(buf []byte, i Int) []byte {
	if i.Big != nil {
		return i.Big.Append(buf, 10)
	}
	return strconv.AppendInt(buf, i.Small, 10)
}

// ParseInt parses a validated JSON integer token (no '.', 'e', or 'E'; the
// caller's grammar scan has already confirmed this is a well-formed integer
// literal: optional '-', then '0' alone or a nonzero digit followed by
// digits). maxDigits bounds the integer part's digit count (0 = unlimited);
// exceeding it returns ErrDigitLimit before any big.Int allocation is
// attempted, bounding worst-case parse cost on adversarial input.
func ParseInt(tok []byte, maxDigits int) (Int, error) {
	digits := len(tok)
	if len(tok) > 0 && tok[0] == '-' {
		digits--
	}
	if maxDigits > 0 && digits > maxDigits {
		return Int{}, ErrDigitLimit
	}

	if v, err := strconv.ParseInt(string(tok), 10, 64); err == nil {
		return Int{Small: v}, nil
	}

	b, ok := new(big.Int).SetString(string(tok), 10)
	if !ok {
		return Int{}, strconv.ErrSyntax
	}
	return Int{Big: b}, nil
}

// ParseFloat parses a validated JSON float token using correctly-rounded
// string-to-double conversion. A token whose magnitude overflows binary64
// range (rounds to ±Inf) yields ErrOverflow: the JSONTestSuite leaves its
// i_number_* overflow cases to the implementation, and this one rejects
// them. A token whose magnitude
// underflows to zero is accepted and returns 0.
func ParseFloat(tok []byte) (float64, error) {
	f, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if math.IsInf(f, 0) {
				return 0, ErrOverflow
			}
			return f, nil
		}
		return 0, err
	}
	return f, nil
}
