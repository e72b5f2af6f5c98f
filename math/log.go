package math

import (
	"sync"

	"github.com/db47h/bigfloat"
)

// Log sets z to the natural logarithm of x, and returns z.
//
// If z's precision is 0, it is changed to x's precision before the operation.
// Rounding is performed according to z's precision and rounding mode.
//
// The function panics with an ErrNaN of class bigfloat.DomainError if x <= 0.
// The value of z is undefined in that case.
func Log(z, x *bigfloat.Float) *bigfloat.Float {
	// Log uses the Salamin algorithm described in Michael Beeler, R. William
	// Gosper, Richard Schroeppel, HAKMEM, Artificial Intelligence Memo No. 239,
	// Item 143, and a series for atanh when x is close to 1.
	prec := resultPrec(z, x)

	// special cases
	switch x.Sign() {
	case -1:
		panic(domainNaN("natural logarithm of a negative number"))
	case 0:
		panic(domainNaN("natural logarithm of zero"))
	}
	// ln(+inf) = +inf
	if x.IsInf() {
		return z.SetPrec(prec).SetInf(false)
	}
	// ln(1) = 0
	if x.Cmp(one) == 0 {
		return z.SetPrec(prec).SetInt64(0)
	}

	t := log(newFloat(prec+guardBits(prec)), x)
	return z.SetPrec(prec).Set(t)
}

// log sets z to log(x) computed with z's precision and returns z. x must be
// finite, positive and different from 1. z and x must be distinct.
func log(z, x *bigfloat.Float) *bigfloat.Float {
	p := z.Prec()
	if d := newFloat(p).Sub(x, one); d.MantExp(nil) < -8 {
		return logAtanh(z, x)
	}

	// scale x by 2**m so that s = x×2**m > 2/sqrt(epsilon) with
	// epsilon = 2**-p, that is s > 2**(p/2+1).
	m := int(p)/2 + 2 - x.MantExp(nil)
	s := newFloat(p).SetMantExp(x, m)

	t := newFloat(p).SetInt64(1)
	u := newFloat(p).Quo(four, s)
	agm(z, t, u)
	t.Mul(z, two)
	z.Quo(pi(p), t)
	if m != 0 {
		// scale back: z-m×log(2)
		t.SetInt64(int64(m))
		z.Sub(z, t.Mul(t, ln2(p)))
	}
	return z
}

// logAtanh sets z to log(x) = 2×atanh((x-1)/(x+1)) and returns z. The series
// converges quickly for x close to 1.
func logAtanh(z, x *bigfloat.Float) *bigfloat.Float {
	var (
		p  = z.Prec()
		s  = newFloat(p).Sub(x, one)
		d  = newFloat(p).Add(x, one)
		s2 = newFloat(p)
		t  = newFloat(p)
		k  = new(bigfloat.Float)
	)
	s.Quo(s, d)
	s2.Mul(s, s)
	z.Set(s)
	// d holds s**(2n+1)
	d.Set(s)
	for n := int64(1); ; n++ {
		d.Mul(d, s2)
		t.Quo(d, k.SetInt64(2*n+1))
		if negligible(t, z, p) {
			break
		}
		z.Add(z, t)
	}
	return z.Mul(z, two)
}

var ln2Cache struct {
	sync.Mutex
	v *bigfloat.Float
}

// Ln2 sets z to the natural logarithm of 2 rounded to z's precision and
// rounding mode, and returns z. If z's precision is 0, it is changed to
// bigfloat.DefaultPrec.
func Ln2(z *bigfloat.Float) *bigfloat.Float {
	if z.Prec() == 0 {
		z.SetPrec(bigfloat.DefaultPrec)
	}
	return z.Set(ln2(z.Prec()))
}

// ln2 returns log(2) with at least prec+guardBits(prec) bits. The returned
// value must not be modified.
func ln2(prec uint) *bigfloat.Float {
	p := prec + guardBits(prec)
	ln2Cache.Lock()
	defer ln2Cache.Unlock()
	if ln2Cache.v == nil || ln2Cache.v.Prec() < p {
		ln2Cache.v = agmLn2(p)
	}
	return ln2Cache.v
}

// agmLn2 computes log(2) to prec bits.
//
// This is a special case of log() where x = 2**m is already large enough to
// skip pre-scaling: log(x) = m×log(2), so the result only needs to be divided
// by m.
func agmLn2(prec uint) *bigfloat.Float {
	m := int(prec)/2 + 2
	var (
		z = newFloat(prec)
		a = newFloat(prec).SetInt64(1)
		b = newFloat(prec).SetMantExp(four, -m)
		t = newFloat(prec)
	)
	agm(z, a, b)
	t.Mul(z, two)
	z.Quo(pi(prec), t)
	return z.Quo(z, t.SetInt64(int64(m)))
}

// agm sets z to the arithmetic-geometric mean of a, b and returns z.
// a, b and z must be distinct. a and b are not preserved.
func agm(z, a, b *bigfloat.Float) *bigfloat.Float {
	var (
		prec = z.Prec()
		t    = newFloat(prec)
	)

	for {
		t.Set(a)
		a.Mul(z.Add(a, b), half) // a_n+1 = (a_n+b_n)/2
		b.Sqrt(z.Mul(t, b))      // b_n+1 = sqrt(a_n × b_n)
		if converged(z.Sub(a, b), a, prec) {
			break
		}
	}
	return z.Set(a)
}
