package bigfloat

import (
	"math/big"
)

// SetBigFloat sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to the precision of x (and rounding
// will have no effect).
func (z *Float) SetBigFloat(x *big.Float) *Float {
	prec := x.Prec()
	if z.prec == 0 {
		z.prec = uint32(prec)
	}
	z.acc = Exact
	z.neg = x.Signbit()
	switch {
	case x.IsInf():
		z.form = inf
		return z
	case x.Sign() == 0:
		z.form = zero
		return z
	}
	// x = mant × 2**exp with mant an integer of at most prec bits
	var m big.Float
	exp := x.MantExp(&m)
	m.SetMantExp(&m, int(prec))
	m.Int(&z.mant)
	z.mant.Abs(&z.mant)
	z.setBits(int64(exp)-int64(prec), false)
	return z
}

// BigFloat returns x as a *big.Float with the precision of x, or of z if z
// is non-nil and has a nonzero precision. Values whose exponent does not fit
// the range of big.Float overflow to ±Inf or underflow to ±0.
func (x *Float) BigFloat(z *big.Float) *big.Float {
	if z == nil {
		z = new(big.Float)
	}
	if z.Prec() == 0 {
		prec := x.prec
		if prec == 0 {
			prec = 64
		}
		z.SetPrec(uint(prec))
	}
	switch x.form {
	case zero:
		z.SetInt64(0)
		if x.neg {
			z.Neg(z)
		}
		return z
	case inf:
		return z.SetInf(x.neg)
	}
	m := new(big.Int).Set(&x.mant)
	if x.neg {
		m.Neg(m)
	}
	var t big.Float
	t.SetPrec(uint(x.mant.BitLen())).SetInt(m)
	return z.SetMantExp(&t, int(x.lsb()))
}
