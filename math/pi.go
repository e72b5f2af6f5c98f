package math

import (
	"sync"

	"github.com/db47h/bigfloat"
)

// piCache holds π with enough bits for the largest precision requested so
// far. A cached value is never modified, a more precise one replaces it.
var piCache struct {
	sync.Mutex
	v *bigfloat.Float
}

// Pi sets z to π rounded to z's precision and rounding mode, and returns z.
// If z's precision is 0, it is changed to bigfloat.DefaultPrec.
//
// Pi is safe for concurrent use with distinct receivers.
func Pi(z *bigfloat.Float) *bigfloat.Float {
	if z.Prec() == 0 {
		z.SetPrec(bigfloat.DefaultPrec)
	}
	return z.Set(pi(z.Prec()))
}

// pi returns π with at least prec+guardBits(prec) bits. The returned value
// must not be modified.
func pi(prec uint) *bigfloat.Float {
	p := prec + guardBits(prec)
	piCache.Lock()
	defer piCache.Unlock()
	if piCache.v == nil || piCache.v.Prec() < p {
		piCache.v = gaussLegendre(p)
	}
	return piCache.v
}

// gaussLegendre computes π with the Gauss-Legendre algorithm to prec bits.
func gaussLegendre(prec uint) *bigfloat.Float {
	var (
		a = newFloat(prec).SetInt64(1)
		b = newFloat(prec).Sqrt(half) // 1/√2
		t = newFloat(prec).Set(quarter)
		// powers of two are exact at any precision
		p = newFloat(prec).SetInt64(1)
		u = newFloat(prec)
		z = newFloat(prec)
	)

	for {
		u.Set(a)                 // a_n
		a.Mul(z.Add(a, b), half) // a_n+1
		b.Sqrt(z.Mul(u, b))      // b_n+1

		// t_n+1 = t_n - p×(a_n - a_n+1)²
		z.Sub(u, a)
		u.Mul(z, z)
		t.Sub(t, u.Mul(u, p))

		if converged(z.Sub(a, b), a, prec) {
			break
		}
		p.Mul(p, two)
	}
	z.Add(a, b)
	u.Mul(z, z)
	t.Mul(t, four)
	return z.Quo(u, t)
}
