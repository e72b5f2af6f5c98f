package math

import (
	"math/big"

	"github.com/db47h/bigfloat"
)

// Sin sets z to the rounded value of sin(x), and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// The function panics with an ErrNaN of class bigfloat.DomainError if x is an
// infinity. The value of z is undefined in that case.
func Sin(z, x *bigfloat.Float) *bigfloat.Float {
	return sinCos(z, x, false)
}

// Cos sets z to the rounded value of cos(x), and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// The function panics with an ErrNaN of class bigfloat.DomainError if x is an
// infinity. The value of z is undefined in that case.
func Cos(z, x *bigfloat.Float) *bigfloat.Float {
	return sinCos(z, x, true)
}

func sinCos(z, x *bigfloat.Float, cos bool) *bigfloat.Float {
	prec := resultPrec(z, x)

	// special cases
	if x.IsInf() {
		if cos {
			panic(domainNaN("cosine of infinity"))
		}
		panic(domainNaN("sine of infinity"))
	}
	if x.IsZero() {
		if cos {
			return z.SetPrec(prec).SetInt64(1)
		}
		return z.SetPrec(prec).Set(x)
	}

	p := prec + guardBits(prec)
	r, q := reduceHalfPi(x, p)
	if cos {
		// cos(x) = sin(x + π/2)
		q++
	}
	t := newFloat(p)
	switch q % 4 {
	case 0:
		sinT(t, r)
	case 1:
		cosT(t, r)
	case 2:
		sinT(t, r).Neg(t)
	case 3:
		cosT(t, r).Neg(t)
	}
	return z.SetPrec(prec).Set(t)
}

// reduceHalfPi returns r and q such that x = r + k×π/2 with |r| <= π/4 and
// q = k mod 4. The relative error of r is below 2**-prec: the working
// precision is raised until the subtraction of k×π/2 from x leaves enough
// significant bits.
func reduceHalfPi(x *bigfloat.Float, prec uint) (*bigfloat.Float, uint) {
	ex := x.MantExp(nil)
	if ex < 0 {
		// |x| < 1/2 < π/4
		return newFloat(prec).Set(x), 0
	}

	var (
		ki = new(big.Int)
		p  = prec + uint(ex) + 8
	)
	for {
		hp := newFloat(p).SetMantExp(pi(p), -1)

		// k = round(x/(π/2))
		q := newFloat(p).Quo(x, hp)
		if q.Signbit() {
			q.Sub(q, half)
		} else {
			q.Add(q, half)
		}
		q.Int(ki)

		// The error of k×π/2 is about 2**(ex-p), which must be small
		// compared to r.
		r := newFloat(p).Mul(new(bigfloat.Float).SetInt(ki), hp)
		r.Sub(x, r)
		if !r.IsZero() {
			need := prec + uint(ex-r.MantExp(nil)) + 2
			if p >= need {
				return r, uint(ki.Bit(0)) | uint(ki.Bit(1))<<1
			}
			p = need + 32
			continue
		}
		p *= 2
	}
}

// sinT sets z to the rounded value of sin(x) computed with its Taylor series
// and returns z. z and x must be distinct, and |x| should not exceed π/4.
func sinT(z, x *bigfloat.Float) *bigfloat.Float {
	var (
		p  = z.Prec()
		x2 = newFloat(p).Mul(x, x)
		t  = newFloat(p).Set(x) // (-1)^n × x^(2n+1)/(2n+1)!
		d  = new(bigfloat.Float)
	)
	z.Set(x)
	for n := int64(1); ; n++ {
		t.Mul(t, x2)
		t.Quo(t, d.SetInt64(2*n*(2*n+1)))
		t.Neg(t)
		if negligible(t, z, p) {
			break
		}
		z.Add(z, t)
	}
	return z
}

// cosT sets z to the rounded value of cos(x) computed with its Taylor series
// and returns z. z and x must be distinct, and |x| should not exceed π/4.
func cosT(z, x *bigfloat.Float) *bigfloat.Float {
	var (
		p  = z.Prec()
		x2 = newFloat(p).Mul(x, x)
		t  = newFloat(p).SetInt64(1) // (-1)^n × x^2n/(2n)!
		d  = new(bigfloat.Float)
	)
	z.SetInt64(1)
	for n := int64(1); ; n++ {
		t.Mul(t, x2)
		t.Quo(t, d.SetInt64((2*n-1)*2*n))
		t.Neg(t)
		if negligible(t, z, p) {
			break
		}
		z.Add(z, t)
	}
	return z
}
