package bigfloat

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"math/bits"
	"strings"
)

var floatZero Float

// SetString sets z to the value of s and returns z and a boolean indicating
// success. s must be a floating-point number of the same format as accepted
// by Parse, with base argument 0. The entire string (not just a prefix) must
// be valid for success. If the operation failed, the value of z is undefined
// but the returned value is nil.
func (z *Float) SetString(s string) (*Float, bool) {
	if f, _, err := z.Parse(s, 0); err == nil {
		return f, true
	}
	return nil, false
}

// scan is like Parse but reads the longest possible prefix representing a valid
// floating point number from an io.ByteScanner rather than a string. It serves
// as the implementation of Parse. It does not recognize ±Inf and does not expect
// EOF at the end.
func (z *Float) scan(r io.ByteScanner, base int) (f *Float, b int, err error) {
	prec := z.prec
	if prec == 0 {
		prec = 64
	}

	// A reasonable value in case of an error.
	z.form = zero

	// sign
	z.neg, err = scanSign(r)
	if err != nil {
		return
	}

	// mantissa
	var mant big.Int
	var fcount int // fractional digit count; valid if <= 0
	b, fcount, err = scanMantissa(&mant, r, base)
	if err != nil {
		return
	}

	// exponent
	var exp int64
	var ebase int
	exp, ebase, err = scanExponent(r, true, base == 0)
	if err != nil {
		return
	}

	// special-case 0
	if mant.Sign() == 0 {
		z.prec = prec
		z.acc = Exact
		z.form = zero
		f = z
		return
	}
	// mant > 0

	// The mantissa may have a radix point (fcount <= 0) and there may be a
	// nonzero exponent exp. Both reduce to a power of 10 and a power of 2
	// which setScaledInt applies exactly before rounding once.

	// determine binary or decimal exponent contribution of radix point
	var exp2, exp10 int64
	if fcount < 0 {
		// The mantissa has a radix point ddd.dddd; and
		// -fcount is the number of digits to the right
		// of '.'. Adjust relevant exponent accordingly.
		d := int64(fcount)
		switch b {
		case 10:
			exp10 = d
		case 8:
			exp2 = d * 3 // octal digits are 3 bits each
		case 16:
			exp2 = d * 4 // hexadecimal digits are 4 bits each
		case 2:
			exp2 = d
		default:
			panic("unexpected mantissa base")
		}
	}

	// take actual exponent into account
	switch ebase {
	case 10:
		exp10 += exp
	case 2:
		exp2 += exp
	default:
		panic("unexpected exponent base")
	}

	z.prec = prec
	z.setScaledInt(&mant, exp10, exp2)
	f = z
	return
}

// exactPow10Limit is the largest decimal exponent for which setScaledInt
// works with an exact power of ten.
const exactPow10Limit = 1 << 14

// setScaledInt sets z to m × 10**exp10 × 2**exp2, correctly rounded for
// decimal exponents up to exactPow10Limit in absolute value. The sign of z and
// its precision must be set. m must be positive and is clobbered.
func (z *Float) setScaledInt(m *big.Int, exp10, exp2 int64) {
	// Bail out early on exponents that certainly over- or underflow. The
	// result is 2**e with e within a few bits of this estimate.
	e := float64(exp2) + float64(m.BitLen()) + float64(exp10)*math.Log2(10)
	if e > MaxExp+2 {
		z.acc = makeAcc(!z.neg)
		z.form = inf
		return
	}
	if e < MinExp-2 {
		z.acc = makeAcc(z.neg)
		z.form = zero
		return
	}

	switch {
	case exp10 >= 0 && exp10 <= exactPow10Limit:
		mulInt(&z.mant, m, pow10(uint64(exp10)))
		z.setBits(exp2, false)
	case exp10 < 0 && -exp10 <= exactPow10Limit:
		z.setQuo(m, pow10(uint64(-exp10)), exp2)
	default:
		// Huge decimal exponent: scale with a rounded power of ten at
		// extra precision.
		n := uint64(exp10)
		if exp10 < 0 {
			n = uint64(-exp10)
		}
		p := uint(z.prec) + 64 + uint(bits.Len64(n))
		t := new(Float).SetPrec(p).SetInt(m)
		pw := new(Float).SetPrec(p).SetUint64(1)
		ten := new(Float).SetPrec(p).SetUint64(10)
		for ; n > 0; n >>= 1 {
			if n&1 != 0 {
				pw.Mul(pw, ten)
			}
			ten.Mul(ten, ten)
		}
		if exp10 < 0 {
			t.Quo(t, pw)
		} else {
			t.Mul(t, pw)
		}
		t.neg = z.neg
		z.Set(t.SetMantExp(t, int(exp2)))
	}
}

// Parse parses s which must contain a text representation of a floating-point
// number with a mantissa in the given conversion base (the exponent is always
// a decimal number), or a string representing an infinite value.
//
// For base 0, an underscore character “_” may appear between a base prefix
// and an adjacent digit, and between successive digits; such underscores do
// not change the value of the number, or the returned digit count. Incorrect
// placement of underscores is reported as an error if there are no other
// errors. If base != 0, underscores are not recognized and thus terminate
// scanning like any other character that is not a valid radix point or digit.
//
// It sets z to the (possibly rounded) value of the corresponding floating-
// point value, and returns z, the actual base b, and an error err, if any. The
// entire string (not just a prefix) must be consumed for success. If z's
// precision is 0, it is changed to 64 before rounding takes effect. The number
// must be of the form:
//
//	number    = [ sign ] ( float | "inf" | "Inf" ) .
//	sign      = "+" | "-" .
//	float     = ( mantissa | prefix pmantissa ) [ exponent ] .
//	prefix    = "0" [ "b" | "B" | "o" | "O" | "x" | "X" ] .
//	mantissa  = digits "." [ digits ] | digits | "." digits .
//	pmantissa = [ "_" ] digits "." [ digits ] | [ "_" ] digits | "." digits .
//	exponent  = ( "e" | "E" | "p" | "P" ) [ sign ] digits .
//	digits    = digit { [ "_" ] digit } .
//	digit     = "0" ... "9" | "a" ... "z" | "A" ... "Z" .
//
// The base argument must be 0, 2, 8, 10, or 16. Providing an invalid base
// argument will lead to a run-time panic.
//
// For base 0, the number prefix determines the actual base: A prefix of “0b”
// or “0B” selects base 2, “0o” or “0O” selects base 8, and “0x” or “0X”
// selects base 16. Otherwise, the actual base is 10 and no prefix is accepted.
// The octal prefix "0" is not supported (a leading "0" is simply considered a
// "0").
//
// A "p" or "P" exponent indicates a base 2 (rather then base 10) exponent; for
// instance, "0x1.fffffffffffffp1023" (using base 0) represents the maximum
// float64 value. For hexadecimal mantissae, the exponent character must be one
// of 'p' or 'P', if present (an "e" or "E" exponent indicator cannot be
// distinguished from a mantissa digit).
//
// The value is rounded once, so that decimal input is converted with correct
// rounding.
//
// The returned *Float f is nil and the value of z is valid but not defined if
// an error is reported.
func (z *Float) Parse(s string, base int) (f *Float, b int, err error) {
	// scan doesn't handle ±Inf
	if len(s) == 3 && (s == "Inf" || s == "inf") {
		f = z.SetInf(false)
		return
	}
	if len(s) == 4 && (s[0] == '+' || s[0] == '-') && (s[1:] == "Inf" || s[1:] == "inf") {
		f = z.SetInf(s[0] == '-')
		return
	}

	r := strings.NewReader(s)
	if f, b, err = z.scan(r, base); err != nil {
		return
	}

	// entire string must have been consumed
	if ch, err2 := r.ReadByte(); err2 == nil {
		err = fmt.Errorf("expected end of string, found %q", ch)
	} else if err2 != io.EOF {
		err = err2
	}
	if err != nil {
		f = nil
	}

	return
}

// ParseFloat is like f.Parse(s, base) with f set to the given precision
// and rounding mode.
func ParseFloat(s string, base int, prec uint, mode RoundingMode) (f *Float, b int, err error) {
	return new(Float).SetPrec(prec).SetMode(mode).Parse(s, base)
}

var _ fmt.Scanner = &floatZero // *Float must implement fmt.Scanner

// Scan is a support routine for fmt.Scanner; it sets z to the value of
// the scanned number. It accepts formats whose verbs are supported by
// fmt.Scan for floating point values, which are:
// 'b' (binary), 'e', 'E', 'f', 'F', 'g' and 'G'.
// Scan doesn't handle ±Inf.
func (z *Float) Scan(s fmt.ScanState, ch rune) error {
	s.SkipSpace()
	_, _, err := z.scan(byteReader{s}, 0)
	return err
}

// scanMantissa sets z to the digits of the mantissa read from r, ignoring
// the radix point, and returns the actual base b, and the number of digits
// to the right of the radix point, negated, in fcount. fcount is 0 if there
// is no radix point.
//
// For base 0, a prefix "0b", "0o" or "0x" selects the base, and '_' may
// separate the prefix from the digits and successive digits.
func scanMantissa(z *big.Int, r io.ByteScanner, base int) (b, fcount int, err error) {
	// reject invalid bases
	if base != 0 && base != 2 && base != 8 && base != 10 && base != 16 {
		panic(fmt.Sprintf("invalid number base %d", base))
	}

	// prev encodes the previously seen char: it is one
	// of '_', '0' (a digit), or '.' (anything else). A
	// valid separator '_' may only occur after a digit
	// and if base == 0.
	prev := '.'
	invalSep := false

	// one char look-ahead
	ch, err := r.ReadByte()

	// determine actual base
	b, prefix := base, 0
	count := 0
	var digits []byte
	if base == 0 {
		// actual base is 10 unless there's a base prefix
		b = 10
		if err == nil && ch == '0' {
			prev = '0'
			count = 1
			digits = append(digits, '0')
			ch, err = r.ReadByte()
			if err == nil {
				// possibly one of 0b, 0B, 0o, 0O, 0x, 0X
				switch ch {
				case 'b', 'B':
					b, prefix = 2, 'b'
				case 'o', 'O':
					b, prefix = 8, 'o'
				case 'x', 'X':
					b, prefix = 16, 'x'
				}
				if prefix != 0 {
					count = 0 // prefix is not counted
					digits = digits[:0]
					ch, err = r.ReadByte()
				}
			}
		}
	}

	dp := -1 // position of radix point
	for err == nil {
		if ch == '.' && dp < 0 {
			if prev == '_' {
				invalSep = true
			}
			prev = '.'
			dp = count
		} else if ch == '_' && base == 0 {
			if prev != '0' {
				invalSep = true
			}
			prev = '_'
		} else {
			// convert rune into digit value d1
			var d1 int
			switch {
			case '0' <= ch && ch <= '9':
				d1 = int(ch - '0')
			case 'a' <= ch && ch <= 'z':
				d1 = int(ch - 'a' + 10)
			case 'A' <= ch && ch <= 'Z':
				d1 = int(ch - 'A' + 10)
			default:
				d1 = b + 1
			}
			if d1 >= b {
				_ = r.UnreadByte() // ch does not belong to number anymore
				break
			}
			prev = '0'
			count++
			digits = append(digits, ch)
		}
		ch, err = r.ReadByte()
	}

	if err == io.EOF {
		err = nil
	}

	// other errors take precedence over invalid separators
	if err == nil && (invalSep || prev == '_') {
		err = errInvalSep
	}

	if count == 0 {
		// no digits found
		if prefix == 'o' {
			// there was only the octal prefix 0o; but unlike
			// integers, a lone "0o" is not a valid number
			err = errNoDigits
		}
		if err == nil {
			err = errNoDigits // fraction ok, but no digits
		}
		return
	}
	// count > 0

	if _, ok := z.SetString(string(digits), b); !ok && err == nil {
		err = errNoDigits
	}

	// adjust count for fraction, if any
	if dp >= 0 {
		// 0 <= dp <= count
		fcount = dp - count
	}

	return
}
