// Package numeric implements JSON number parsing and formatting: an int64
// fast path with a math/big.Int fallback for arbitrary-precision integers,
// and a shortest-round-trip IEEE-754 double formatter.
package numeric

import (
	"errors"
	"math"
	"math/big"
)

// ErrNotFinite is returned by FormatFloat for NaN and ±Infinity, which have
// no JSON representation; callers surface this as encode error kind
// "non-finite-float".
var ErrNotFinite = errors.New("numeric: value is not finite (NaN or Infinity)")

var bigTen = big.NewInt(10)

// FormatFloat formats an IEEE-754 double as the shortest decimal string that
// re-parses to the identical value, in JSON number grammar: '.' as the
// decimal point, no trailing '.', no '+' before the exponent sign, lower-case
// 'e', and "0.0" for zero. Digit generation (shortestDigits, in this file) is
// shared with the RFC 8785 ECMAScript-grammar formatter in numeric/ecma.go;
// only the surface grammar differs.
func FormatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", ErrNotFinite
	}

	negative := math.Signbit(f)
	if negative {
		f = -f
	}
	if f == 0 {
		if negative {
			return "-0.0", nil
		}
		return "0.0", nil
	}

	digits, n := shortestDigits(f)
	return formatJSON(negative, digits, n), nil
}

// formatJSON applies JSON's number grammar to a shortest-digit-string /
// decimal-exponent pair (value = 0.<digits> * 10^n), the same piece
// numeric/ecma.go's ECMA-262 formatter starts from, diverging at the point
// where the two grammars disagree (trailing ".0" is mandatory here; '+'
// before a positive exponent is forbidden here).
func formatJSON(negative bool, digits string, n int) string {
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
		buf = append(buf, '.', '0')
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
		buf = appendIntNoPlus(buf, exp)
	}

	return string(buf)
}

func appendIntNoPlus(buf []byte, v int) []byte {
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	if v == 0 {
		return append(buf, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(buf, tmp[i:]...)
}

// shortestDigits implements Steele & White's free-format algorithm (the one
// Burger & Dybvig later restated in terms of exact rational arithmetic):
// track the candidate value as a fraction num/den alongside the two gaps to
// its floating-point neighbors, scale that fraction to land the decimal
// point in the right place, then peel off one base-10 digit per iteration
// until the remaining gap is no longer provably narrower than the rounding
// error. Returns (digits, k) where value = 0.<digits> * 10^k.
func shortestDigits(f float64) (string, int) {
	bits := splitFloatBits(f)
	frac := newFraction(bits)

	k := roughLog10(f)
	rescale(frac, k)
	k = settleExponent(frac, bits.roundEven, k)

	return peelDigits(frac, bits.roundEven, k)
}

// floatBits is value = mant * 2^exp2, plus whether f sits exactly on a
// binade boundary (its neighbor gap above is then twice as wide as the gap
// below) and whether ties round toward an even significand.
type floatBits struct {
	mant       uint64
	exp2       int
	atBoundary bool
	roundEven  bool
}

// fraction holds the Steele & White state: the candidate value as num/den,
// and the distances (upGap, downGap) to the midpoints with its floating-point
// neighbors above and below.
type fraction struct {
	num, den, upGap, downGap *big.Int
}

func splitFloatBits(f float64) floatBits {
	bits := math.Float64bits(f)
	mantissaBits := bits & ((uint64(1) << 52) - 1)
	biasedExp := int(significandExponent(bits))

	mant := mantissaBits
	exp2 := 1 - 1023 - 52
	if biasedExp != 0 {
		mant = (uint64(1) << 52) | mantissaBits
		exp2 = biasedExp - 1023 - 52
	}

	return floatBits{
		mant:       mant,
		exp2:       exp2,
		atBoundary: biasedExp > 1 && mantissaBits == 0,
		roundEven:  mant%2 == 0,
	}
}

// newFraction builds the initial num/den/upGap/downGap quadruple for bits.
// At a binade boundary the upper neighbor is twice as far away as the lower
// one, so the ratio is scaled by an extra factor of two to keep upGap and
// downGap as integers; the four cases below are exp2 non-negative or
// negative, crossed with atBoundary or not.
func newFraction(bits floatBits) *fraction {
	fr := &fraction{num: new(big.Int), den: new(big.Int), upGap: new(big.Int), downGap: new(big.Int)}

	switch {
	case bits.exp2 >= 0 && !bits.atBoundary:
		fr.num.SetUint64(bits.mant)
		shiftLeft(fr.num, bits.exp2+1)
		fr.den.SetInt64(2)
		fr.upGap.SetInt64(1)
		shiftLeft(fr.upGap, bits.exp2)
		fr.downGap.Set(fr.upGap)

	case bits.exp2 >= 0 && bits.atBoundary:
		fr.num.SetUint64(bits.mant)
		shiftLeft(fr.num, bits.exp2+2)
		fr.den.SetInt64(4)
		fr.upGap.SetInt64(1)
		shiftLeft(fr.upGap, bits.exp2+1)
		fr.downGap.SetInt64(1)
		shiftLeft(fr.downGap, bits.exp2)

	case bits.exp2 < 0 && !bits.atBoundary:
		fr.num.SetUint64(bits.mant)
		shiftLeft(fr.num, 1)
		fr.den.SetInt64(1)
		shiftLeft(fr.den, -bits.exp2+1)
		fr.upGap.SetInt64(1)
		fr.downGap.SetInt64(1)

	default: // exp2 < 0 && atBoundary
		fr.num.SetUint64(bits.mant)
		shiftLeft(fr.num, 2)
		fr.den.SetInt64(1)
		shiftLeft(fr.den, -bits.exp2+2)
		fr.upGap.SetInt64(2)
		fr.downGap.SetInt64(1)
	}
	return fr
}

// rescale multiplies num or den by 10^|k| so the fraction's value is roughly
// in [0.1, 1) scaled by 10^k, per roughLog10's estimate.
func rescale(fr *fraction, k int) {
	switch {
	case k > 0:
		fr.den.Mul(fr.den, tenToThe(k))
	case k < 0:
		p := tenToThe(-k)
		fr.num.Mul(fr.num, p)
		fr.upGap.Mul(fr.upGap, p)
		fr.downGap.Mul(fr.downGap, p)
	}
}

// settleExponent corrects roughLog10's estimate by at most one digit in
// either direction: growing den if the upper neighbor already reached the
// next power of ten, or shrinking the scale (growing num/upGap/downGap by
// 10 instead) while the fraction is still below where digit emission should
// start.
func settleExponent(fr *fraction, roundEven bool, k int) int {
	aboveTopGap := new(big.Int).Add(fr.num, fr.upGap)
	if pastUpper(aboveTopGap, fr.den, roundEven) {
		fr.den.Mul(fr.den, bigTen)
		k++
	}

	for {
		scaledNum := new(big.Int).Mul(fr.num, bigTen)
		if !shortOfLower(scaledNum, fr.den, roundEven) {
			return k
		}
		scaledTopGap := new(big.Int).Mul(new(big.Int).Add(fr.num, fr.upGap), bigTen)
		if !shortOfLower(scaledTopGap, fr.den, roundEven) {
			return k
		}
		fr.num.Mul(fr.num, bigTen)
		fr.upGap.Mul(fr.upGap, bigTen)
		fr.downGap.Mul(fr.downGap, bigTen)
		k--
	}
}

// shortOfLower reports whether scaled*10 would still land below the next
// digit boundary on the low side, with the even/odd tie rule baked into the
// strictness of the comparison.
func shortOfLower(lhs, rhs *big.Int, roundEven bool) bool {
	if roundEven {
		return lhs.Cmp(rhs) < 0
	}
	return lhs.Cmp(rhs) <= 0
}

// pastUpper is shortOfLower's mirror image for the high neighbor.
func pastUpper(lhs, rhs *big.Int, roundEven bool) bool {
	if roundEven {
		return lhs.Cmp(rhs) >= 0
	}
	return lhs.Cmp(rhs) > 0
}

// peelDigits emits one base-10 digit per loop iteration by long division,
// stopping once the remainder is closer to either neighbor's midpoint than
// to the next representable digit.
func peelDigits(fr *fraction, roundEven bool, k int) (string, int) {
	var digits [30]byte
	count := 0
	quot, rem := new(big.Int), new(big.Int)

	for {
		fr.num.Mul(fr.num, bigTen)
		fr.upGap.Mul(fr.upGap, bigTen)
		fr.downGap.Mul(fr.downGap, bigTen)

		quot.DivMod(fr.num, fr.den, rem)
		d := int(quot.Int64())
		fr.num.Set(rem)

		closeToLow := withinLowerGap(fr.num, fr.downGap, roundEven)
		aboveTopGap := new(big.Int).Add(fr.num, fr.upGap)
		closeToHigh := pastUpper(aboveTopGap, fr.den, roundEven)

		if !closeToLow && !closeToHigh {
			digits[count] = byte('0' + d)
			count++
			continue
		}

		digits[count] = roundFinalDigit(d, closeToLow, closeToHigh, fr.num, fr.den)
		count++
		break
	}

	k = propagateCarry(digits[:], count, &count, k)
	return string(digits[:count]), k
}

// withinLowerGap is peelDigits' termination test against the low neighbor.
func withinLowerGap(lhs, rhs *big.Int, roundEven bool) bool {
	if roundEven {
		return lhs.Cmp(rhs) <= 0
	}
	return lhs.Cmp(rhs) < 0
}

// roundFinalDigit picks the last emitted digit when the loop must stop: if
// only one neighbor's gap was reached the digit rounds away from it, and if
// both were reached simultaneously the exact remainder decides, falling
// back to round-to-even on a true midpoint.
func roundFinalDigit(d int, closeToLow, closeToHigh bool, num, den *big.Int) byte {
	switch {
	case closeToLow && !closeToHigh:
		return byte('0' + d)
	case !closeToLow && closeToHigh:
		return byte('0' + d + 1)
	default:
		doubled := new(big.Int).Lsh(num, 1)
		switch doubled.Cmp(den) {
		case -1:
			return byte('0' + d)
		case 1:
			return byte('0' + d + 1)
		default:
			if d%2 == 0 {
				return byte('0' + d)
			}
			return byte('0' + d + 1)
		}
	}
}

// propagateCarry resolves any digit that rounded up past '9' by carrying
// into its predecessor, growing the buffer by one place and bumping k if the
// carry ripples all the way to the front, then trims trailing zeros left
// behind by the carry.
func propagateCarry(digits []byte, count int, countPtr *int, k int) int {
	for i := count - 1; i > 0; i-- {
		if digits[i] > '9' {
			digits[i] = '0'
			digits[i-1]++
		}
	}
	if count > 0 && digits[0] > '9' {
		copy(digits[1:count+1], digits[0:count])
		digits[0] = '1'
		digits[1] = '0'
		count++
		k++
	}
	for count > 1 && digits[count-1] == '0' {
		count--
	}
	*countPtr = count
	return k
}

// significandExponent extracts the 11-bit biased binary exponent field from
// a float64's raw bit pattern.
func significandExponent(bits uint64) uint16 {
	hi := byte((bits >> 56) & 0xFF)
	lo := byte((bits >> 48) & 0xFF)
	return (uint16(hi&0x7F) << 4) | uint16(lo>>4)
}

func shiftLeft(z *big.Int, n int) {
	for i := 0; i < n; i++ {
		z.Lsh(z, 1)
	}
}

// roughLog10 estimates ceil(log10(f)) for f > 0 from its binary exponent,
// giving settleExponent a starting point it corrects by at most one digit.
func roughLog10(f float64) int {
	bits := math.Float64bits(f)
	biasedExp := int(significandExponent(bits))

	var log2f float64
	if biasedExp == 0 {
		log2f = math.Log2(f)
	} else {
		log2f = float64(biasedExp-1023) + math.Log2(1.0+float64(bits&((1<<52)-1))/float64(uint64(1)<<52))
	}

	return int(math.Ceil(log2f / math.Log2(10)))
}

var tenPowers [700]*big.Int

func init() {
	tenPowers[0] = big.NewInt(1)
	for i := 1; i < len(tenPowers); i++ {
		tenPowers[i] = new(big.Int).Mul(tenPowers[i-1], bigTen)
	}
}

// tenToThe returns 10^n as a *big.Int the caller must not mutate; cached for
// the range any float64 exponent can require, computed on demand beyond it.
func tenToThe(n int) *big.Int {
	if n >= 0 && n < len(tenPowers) {
		return tenPowers[n]
	}
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}
