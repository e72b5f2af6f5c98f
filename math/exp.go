package math

import (
	"math/bits"

	"github.com/db47h/bigfloat"
)

// Exp sets z to the rounded value of e^x, and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// Exp overflows to +Inf and underflows to +0.
func Exp(z, x *bigfloat.Float) *bigfloat.Float {
	prec := resultPrec(z, x)

	// special cases
	switch {
	case x.IsZero():
		return z.SetPrec(prec).SetInt64(1)
	case x.IsInf() && x.Signbit():
		return z.SetPrec(prec).SetInt64(0)
	case x.IsInf():
		return z.SetPrec(prec).SetInf(false)
	case x.MantExp(nil) > 31:
		// |x| >= 2**31 is way beyond the exponent range of a Float
		if x.Signbit() {
			return z.SetPrec(prec).SetInt64(0)
		}
		return z.SetPrec(prec).SetInf(false)
	}

	y, k := expReduce(x, prec+guardBits(prec))
	y.Add(y, one)
	return z.SetPrec(prec).Set(y.SetMantExp(y, k))
}

// Expm1 sets z to the rounded value of e^x-1, and returns z. It is more
// accurate than Exp(z, x) - 1 when x is near zero.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
func Expm1(z, x *bigfloat.Float) *bigfloat.Float {
	prec := resultPrec(z, x)

	// special cases
	switch {
	case x.IsZero():
		return z.SetPrec(prec).Set(x)
	case x.IsInf() && x.Signbit():
		return z.SetPrec(prec).SetInt64(-1)
	case x.IsInf():
		return z.SetPrec(prec).SetInf(false)
	case x.MantExp(nil) > 31:
		if x.Signbit() {
			return z.SetPrec(prec).SetInt64(-1)
		}
		return z.SetPrec(prec).SetInf(false)
	}

	y, k := expReduce(x, prec+guardBits(prec))
	if k != 0 {
		// |x| > log(2)/2: no significant cancellation in e^x-1.
		y.Add(y, one)
		y.SetMantExp(y, k)
		y.Sub(y, one)
	}
	return z.SetPrec(prec).Set(y)
}

// expReduce returns y and k such that e^x = 2**k × (1+y), with y computed to
// prec bits and |y| < 1/2. x must be finite with |x| < 2**31. k is clamped to
// a range where 2**k × (1+y) is out of the exponent range of a Float whenever
// the actual k is.
//
// x = k×log(2) + r with |r| <= log(2)/2, and e^r = 1 + y is computed from
// expm1(r/2**s) with s squarings.
func expReduce(x *bigfloat.Float, prec uint) (*bigfloat.Float, int) {
	var (
		ex = x.MantExp(nil)
		s  = 1 << (bits.Len(prec) / 2) // about √prec
		// k×log(2) must be accurate to prec bits after the decimal point and
		// each squaring loses a bit.
		p = prec + uint(s)
		r = newFloat(p + uint(max(ex, 0))).Set(x)
		k int64
	)

	if ex > 0 {
		// k = round(x/log(2))
		l2 := ln2(r.Prec())
		q := newFloat(64).Quo(x, l2)
		if q.Signbit() {
			q.Sub(q, half)
		} else {
			q.Add(q, half)
		}
		k, _ = q.Int64()
		q.SetInt64(k)
		r.Sub(r, q.SetPrec(r.Prec()).Mul(q, l2))
	}

	// r/2**s ~ 2**-s
	if s += r.MantExp(nil); s < 0 {
		s = 0
	}
	r.SetMantExp(r, -s)

	y := expm1T(newFloat(p), r)
	t := newFloat(p)
	for i := 0; i < s; i++ {
		// e^2a - 1 = (e^a - 1)×(e^a + 1)
		y.Mul(y, t.Add(y, two))
	}

	switch {
	case k > bigfloat.MaxExp:
		k = bigfloat.MaxExp + 1
	case k < bigfloat.MinExp-1:
		k = bigfloat.MinExp - 2
	}
	return y, int(k)
}

// expm1T sets z to the rounded value of e^x-1, and returns z. It uses the
// Taylor series of e^x-1 which converges quickly for small x.
// The precision of z must be non zero and the caller is responsible
// for allocating guard bits and rounding down z. z and x must be distinct.
//
// For example, get e^x-1 with the same precision as x:
//
//	z.SetPrec(x.Prec()+64)
//	expm1T(z, x).SetPrec(x.Prec())
func expm1T(z, x *bigfloat.Float) *bigfloat.Float {
	if x.IsZero() {
		return z.Set(x)
	}

	var (
		p = z.Prec()
		t = newFloat(p).Set(x) // x^n/n!
		n = new(bigfloat.Float)
	)
	z.Set(x)
	for i := int64(2); ; i++ {
		t.Mul(t, x)
		t.Quo(t, n.SetInt64(i))
		if negligible(t, z, p) {
			break
		}
		z.Add(z, t)
	}
	return z
}
