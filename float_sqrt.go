// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

// Sqrt sets z to the rounded square root of x, and returns it.
//
// If z's precision is 0, it is changed to x's precision before the
// operation. Rounding is performed according to z's precision and
// rounding mode. The result is correctly rounded.
//
// The function panics with ErrNaN if x < 0. The value of z is undefined
// in that case.
func (z *Float) Sqrt(x *Float) *Float {
	if debugFloat {
		x.validate()
	}

	if z.prec == 0 {
		z.prec = x.prec
	}

	if x.Sign() == -1 {
		// following IEEE754-2008 (section 7.2)
		panic(domainNaN("square root of negative operand"))
	}

	// handle ±0 and +∞
	if x.form != finite {
		z.acc = Exact
		z.form = x.form
		z.neg = x.neg // IEEE754-2008 requires √±0 = ±0
		return z
	}

	// x = m × 2**l. Scale m by 2**s so that m' = m × 2**s has at least
	// 2(prec+2) bits and l-s is even, then
	//
	//	√x = √m' × 2**((l-s)/2)
	//
	// where the integer square root of m' has at least prec+2 bits and is
	// exact iff its square is m'.
	l := x.lsb()
	s := 2*(int64(z.prec)+2) - int64(x.mant.BitLen())
	if s < 0 {
		s = 0
	}
	if (l-s)&1 != 0 {
		s++
	}

	m, r := getInt(), getInt()
	m.Lsh(&x.mant, uint(s))
	r.Sqrt(m)
	sq := getInt().Mul(r, r)
	sticky := sq.Cmp(m) != 0

	z.neg = false
	z.mant.Set(r)
	putInt(m)
	putInt(r)
	putInt(sq)
	z.setBits((l-s)/2, sticky)
	return z
}
