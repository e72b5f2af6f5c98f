// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements Float-to-string conversion functions.

package bigfloat

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Text converts the floating-point number x to a string according
// to the given format and precision prec. The format is one of:
//
//	'e'	-d.dddde±dd, decimal exponent, at least two (possibly 0) exponent digits
//	'E'	-d.ddddE±dd, decimal exponent, at least two (possibly 0) exponent digits
//	'f'	-ddddd.dddd, no exponent
//	'g'	like 'e' for large exponents, like 'f' otherwise
//	'G'	like 'E' for large exponents, like 'f' otherwise
//	'b'	-ddddddp±dd, decimal mantissa, binary exponent (x.Prec() mantissa bits)
//	'p'	-0x.dddp±dd, hexadecimal mantissa, binary exponent
//
// For the binary exponent formats, the mantissa is printed in normalized
// form:
//
//	'b'	decimal integer mantissa using x.Prec() bits, or -0
//	'p'	hexadecimal fraction with 0.5 <= 0.mantissa < 1.0, or -0
//
// If format is a different character, Text returns a "%" followed by the
// unrecognized format character.
//
// The precision prec controls the number of digits (excluding the exponent)
// printed by the 'e', 'E', 'f', 'g', and 'G' formats. For 'e', 'E', and 'f'
// it is the number of digits after the decimal point. For 'g' and 'G' it is
// the total number of digits. A negative precision selects the smallest
// number of decimal digits necessary to represent the value x uniquely using
// x.Prec() mantissa bits. The prec value is ignored for the 'b' and 'p'
// formats.
//
// Decimal digits are correctly rounded, with ties to even.
func (x *Float) Text(format byte, prec int) string {
	cap := 10
	if prec > 0 {
		cap += prec
	}
	return string(x.Append(make([]byte, 0, cap), format, prec))
}

// String formats x like x.Text('g', 10).
// (String must be called explicitly, Float.Format does not support %s verb.)
func (x *Float) String() string {
	return x.Text('g', 10)
}

// Append appends to buf the string form of the floating-point number x,
// as generated by x.Text, and returns the extended buffer.
func (x *Float) Append(buf []byte, fmt byte, prec int) []byte {
	// sign
	if x.neg {
		buf = append(buf, '-')
	}

	// Inf
	if x.form == inf {
		if !x.neg {
			buf = append(buf, '+')
		}
		return append(buf, "Inf"...)
	}

	// pick off easy formats
	switch fmt {
	case 'b':
		return x.fmtB(buf)
	case 'p':
		return x.fmtP(buf)
	}

	// Algorithm:
	//   1) convert Float to decimal
	//   2) round to desired precision
	//   3) read digits out and format
	//
	// Steps 1 and 2 happen at once with exact integer arithmetic.

	// 1) and 2): convert to decimal with the requested number of digits
	var d decimal // == 0.0
	shortest := prec < 0
	if x.form == finite {
		switch {
		case shortest:
			d = x.shortestDec()
		case fmt == 'e' || fmt == 'E':
			d = x.sigDec(1 + prec)
		case fmt == 'f':
			d = x.fixedDec(prec)
		case fmt == 'g' || fmt == 'G':
			if prec == 0 {
				prec = 1
			}
			d = x.sigDec(prec)
		}
	}

	if shortest {
		// precision for shortest representation mode
		switch fmt {
		case 'e', 'E':
			prec = len(d.mant) - 1
		case 'f':
			prec = max(len(d.mant)-d.exp, 0)
		case 'g', 'G':
			prec = len(d.mant)
		}
	}

	// 3) read digits out and format
	switch fmt {
	case 'e', 'E':
		return fmtE(buf, fmt, prec, d)
	case 'f':
		return fmtF(buf, prec, d)
	case 'g', 'G':
		// trim trailing fractional zeros in %e format
		eprec := prec
		if eprec > len(d.mant) && len(d.mant) >= d.exp {
			eprec = len(d.mant)
		}
		// %e is used if the exponent from the conversion
		// is less than -4 or greater than or equal to the precision.
		// If precision was the shortest possible, use eprec = 6 for
		// this decision.
		if shortest {
			eprec = 6
		}
		exp := d.exp - 1
		if exp < -4 || exp >= eprec {
			if prec > len(d.mant) {
				prec = len(d.mant)
			}
			return fmtE(buf, fmt+'e'-'g', prec-1, d)
		}
		if prec > d.exp {
			prec = len(d.mant)
		}
		return fmtF(buf, max(prec-d.exp, 0), d)
	}

	// unknown format
	if x.neg {
		buf = buf[:len(buf)-1] // sign was added prematurely - remove it again
	}
	return append(buf, '%', fmt)
}

// decimal represents the value 0.mant × 10**exp. mant holds ASCII digits
// without trailing zeros; it is empty for zero.
type decimal struct {
	mant []byte
	exp  int
}

func (d *decimal) at(i int) byte {
	if 0 <= i && i < len(d.mant) {
		return d.mant[i]
	}
	return '0'
}

// makeDecimal returns the decimal for n × 10**e, n >= 0.
func makeDecimal(n *big.Int, e int64) decimal {
	if n.Sign() == 0 {
		return decimal{}
	}
	s := n.Append(nil, 10)
	d := decimal{exp: len(s) + int(e)}
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	d.mant = s[:i]
	return d
}

// scaledInt returns |x| × 10**q rounded to the nearest integer, with ties to
// even. x must be finite.
func (x *Float) scaledInt(q int64) *big.Int {
	num := new(big.Int).Set(&x.mant)
	den := big.NewInt(1)
	if q >= 0 {
		mulInt(num, num, pow10(uint64(q)))
	} else {
		den.Set(pow10(uint64(-q)))
	}
	if lsb := x.lsb(); lsb >= 0 {
		num.Lsh(num, uint(lsb))
	} else {
		den.Lsh(den, uint(-lsb))
	}
	r := getInt()
	defer putInt(r)
	num.QuoRem(num, den, r)
	r.Lsh(r, 1)
	if c := r.Cmp(den); c > 0 || c == 0 && num.Bit(0) != 0 {
		num.Add(num, bigOne)
	}
	return num
}

// fixedDec returns |x| rounded to prec fractional decimal digits.
func (x *Float) fixedDec(prec int) decimal {
	if prec < 0 {
		prec = 0
	}
	return makeDecimal(x.scaledInt(int64(prec)), -int64(prec))
}

// sigDigits returns the n significant decimal digits of |x| as an integer
// 10**(n-1) <= m < 10**n, and k such that |x| ≈ m × 10**(k+1-n).
func (x *Float) sigDigits(n int) (m *big.Int, k int64) {
	// |x| >= 2**(x.exp-1) so that this underestimates k by at most one,
	// float64 rounding aside.
	k = int64(math.Floor(float64(int64(x.exp)-1) * math.Log10(2)))
	lo := pow10(uint64(n - 1))
	hi := pow10(uint64(n))
	for {
		m = x.scaledInt(int64(n) - 1 - k)
		switch {
		case m.Cmp(hi) >= 0:
			k++
		case m.Cmp(lo) < 0:
			k--
		default:
			return m, k
		}
	}
}

// sigDec returns |x| rounded to n significant decimal digits.
func (x *Float) sigDec(n int) decimal {
	if n < 1 {
		n = 1
	}
	m, k := x.sigDigits(n)
	return makeDecimal(m, k+1-int64(n))
}

// roundTrips reports whether m × 10**e converts back to |x| at x's
// precision.
func (x *Float) roundTrips(m *big.Int, e int64) bool {
	var y Float
	y.prec = x.prec
	y.setScaledInt(new(big.Int).Set(m), e, 0)
	return y.form == finite && y.exp == x.exp && y.mant.Cmp(&x.mant) == 0
}

// shortestDec returns the shortest decimal that converts back to |x| at x's
// precision with ToNearestEven rounding.
func (x *Float) shortestDec() decimal {
	// enough digits to distinguish x from its neighbors
	hi := int(math.Ceil(float64(x.prec)*math.Log10(2))) + 1
	try := func(n int) (decimal, bool) {
		m, k := x.sigDigits(n)
		e := k + 1 - int64(n)
		return makeDecimal(m, e), x.roundTrips(m, e)
	}

	d, _ := try(hi)
	lo := 1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if dm, ok := try(mid); ok {
			d, hi = dm, mid
		} else {
			lo = mid + 1
		}
	}
	return d
}

// %e: d.ddddde±dd
func fmtE(buf []byte, fmt byte, prec int, d decimal) []byte {
	// first digit
	ch := byte('0')
	if len(d.mant) > 0 {
		ch = d.mant[0]
	}
	buf = append(buf, ch)

	// .moredigits
	if prec > 0 {
		buf = append(buf, '.')
		i := 1
		m := min(len(d.mant), prec+1)
		if i < m {
			buf = append(buf, d.mant[i:m]...)
			i = m
		}
		for ; i <= prec; i++ {
			buf = append(buf, '0')
		}
	}

	// e±
	buf = append(buf, fmt)
	var exp int64
	if len(d.mant) > 0 {
		exp = int64(d.exp) - 1 // -1 because first digit was printed before '.'
	}
	if exp < 0 {
		ch = '-'
		exp = -exp
	} else {
		ch = '+'
	}
	buf = append(buf, ch)

	// dd...d
	if exp < 10 {
		buf = append(buf, '0') // at least 2 exponent digits
	}
	return strconv.AppendInt(buf, exp, 10)
}

// %f: ddddddd.ddddd
func fmtF(buf []byte, prec int, d decimal) []byte {
	// integer, padded with zeros as needed
	if d.exp > 0 {
		m := min(len(d.mant), d.exp)
		buf = append(buf, d.mant[:m]...)
		for ; m < d.exp; m++ {
			buf = append(buf, '0')
		}
	} else {
		buf = append(buf, '0')
	}

	// fraction
	if prec > 0 {
		buf = append(buf, '.')
		for i := 0; i < prec; i++ {
			buf = append(buf, d.at(d.exp+i))
		}
	}

	return buf
}

// fmtB appends the string of x in the format mantissa "p" exponent
// with a decimal mantissa and a binary exponent, or 0" if x is zero,
// and returns the extended buffer.
// The mantissa is normalized such that is uses x.Prec() binary digits.
// The sign of x is ignored, and x must not be an Inf.
// (The caller handles Inf before invoking fmtB.)
func (x *Float) fmtB(buf []byte) []byte {
	if x.form == zero {
		return append(buf, '0')
	}

	if debugFloat && x.form != finite {
		panic("non-finite float")
	}
	// x != 0

	// adjust mantissa to use exactly x.prec bits
	m := new(big.Int).Lsh(&x.mant, uint(x.prec)-uint(x.mant.BitLen()))
	buf = m.Append(buf, 10)

	// exponent
	buf = append(buf, 'p')
	e := int64(x.exp) - int64(x.prec)
	if e >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, e, 10)
}

// fmtP appends the string of x in the format "0x." mantissa "p" exponent
// with a hexadecimal mantissa and a binary exponent, or "0" if x is zero,
// and returns the extended buffer.
// The mantissa is normalized such that 0.5 <= 0.mantissa < 1.0.
// The sign of x is ignored, and x must not be an Inf.
// (The caller handles Inf before invoking fmtP.)
func (x *Float) fmtP(buf []byte) []byte {
	if x.form == zero {
		return append(buf, '0')
	}

	if debugFloat && x.form != finite {
		panic("non-finite float")
	}
	// x != 0

	// align the mantissa to a nibble boundary
	m := new(big.Int).Lsh(&x.mant, uint(3*x.mant.BitLen())%4)
	buf = append(buf, "0x."...)
	buf = append(buf, strings.TrimRight(m.Text(16), "0")...)
	buf = append(buf, 'p')
	if x.exp >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, int64(x.exp), 10)
}

var _ fmt.Formatter = &floatZero // *Float must implement fmt.Formatter

// Format implements fmt.Formatter. It accepts all the regular
// formats for floating-point numbers ('b', 'e', 'E', 'f', 'F',
// 'g', 'G', 'p') as well as 'v'. See (*Float).Text for the
// interpretation of 'p'. The 'v' format is handled like 'g'.
// Format also supports the minimum precision in digits, the output
// field width, as well as the format flags '+' and ' ' for sign
// control, '0' for space or zero padding, and '-' for left or right
// justification. See the fmt package for details.
func (x *Float) Format(s fmt.State, format rune) {
	prec, hasPrec := s.Precision()
	if !hasPrec {
		prec = 6 // default precision for 'e', 'f'
	}

	switch format {
	case 'e', 'E', 'f', 'b', 'p':
		// nothing to do
	case 'F':
		// (*Float).Text doesn't support 'F'; handle like 'f'
		format = 'f'
	case 'v':
		// handle like 'g'
		format = 'g'
		fallthrough
	case 'g', 'G':
		if !hasPrec {
			prec = -1
		}
	default:
		fmt.Fprintf(s, "%%!%c(*bigfloat.Float=%s)", format, x.String())
		return
	}
	var buf []byte
	buf = x.Append(buf, byte(format), prec)
	if buf == nil {
		buf = []byte("?") // should never happen, but don't crash
	}

	// len(buf) > 0
	var sign string
	switch {
	case buf[0] == '-':
		sign = "-"
		buf = buf[1:]
	case buf[0] == '+':
		// +Inf
		sign = "+"
		if s.Flag(' ') {
			sign = " "
		}
		buf = buf[1:]
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}

	var padding int
	if width, hasWidth := s.Width(); hasWidth && width > len(sign)+len(buf) {
		padding = width - len(sign) - len(buf)
	}

	switch {
	case s.Flag('0') && !x.IsInf():
		// 0-padding on left
		writeMultiple(s, sign, 1)
		writeMultiple(s, "0", padding)
		s.Write(buf)
	case s.Flag('-'):
		// padding on right
		writeMultiple(s, sign, 1)
		s.Write(buf)
		writeMultiple(s, " ", padding)
	default:
		// padding on left
		writeMultiple(s, " ", padding)
		writeMultiple(s, sign, 1)
		s.Write(buf)
	}
}

// write count copies of text to s
func writeMultiple(s fmt.State, text string, count int) {
	if len(text) > 0 {
		b := []byte(text)
		for ; count > 0; count-- {
			s.Write(b)
		}
	}
}
