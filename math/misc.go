// Package math implements elementary functions for bigfloat.Float values.
//
// Functions follow the conventions of bigfloat.Float methods: the result is
// stored in the receiver z and returned; if z's precision is 0, it is changed
// to the precision of the argument before the operation. Results are computed
// with guard bits and rounded once to z's precision and rounding mode.
package math

import (
	"math/bits"

	"github.com/db47h/bigfloat"
)

// constants
var (
	one     = bigfloat.NewFloat(1)
	two     = bigfloat.NewFloat(2)
	four    = bigfloat.NewFloat(4)
	half    = bigfloat.NewFloat(0.5)
	quarter = bigfloat.NewFloat(0.25)
)

// guardBits returns the number of extra bits of working precision used to get
// a result with prec bits.
func guardBits(prec uint) uint {
	return 64 + 2*uint(bits.Len(prec))
}

// newFloat returns a new Float with precision prec, rounding to nearest even.
func newFloat(prec uint) *bigfloat.Float {
	return new(bigfloat.Float).SetPrec(prec)
}

// resultPrec returns the precision of the result of a function of x stored
// in z.
func resultPrec(z, x *bigfloat.Float) uint {
	if prec := z.Prec(); prec != 0 {
		return prec
	}
	if prec := x.Prec(); prec != 0 {
		return prec
	}
	return bigfloat.DefaultPrec
}

// converged reports whether the difference d between two successive
// approximations of a value close to a is below the precision prec.
func converged(d, a *bigfloat.Float, prec uint) bool {
	return d.IsZero() || d.MantExp(nil) <= a.MantExp(nil)-int(prec)+4
}

// negligible reports whether adding the series term t to the partial sum s
// cannot change s at precision prec.
func negligible(t, s *bigfloat.Float, prec uint) bool {
	return t.IsZero() || t.MantExp(nil) < s.MantExp(nil)-int(prec)-1
}

func domainNaN(msg string) bigfloat.ErrNaN {
	return bigfloat.ErrNaN{Msg: msg, Class: &bigfloat.DomainError}
}
