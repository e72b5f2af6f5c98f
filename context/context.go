// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package context provides IEEE-754 style contexts for Floats, and the
// process-wide default precision.
//
// All factory functions of the form
//
//	func (c *Context) NewT(x T) *bigfloat.Float
//
// create a new bigfloat.Float set to the value of x, and rounded using c's
// precision and rounding mode.
//
// Operators that set a receiver z to function of other Float arguments like:
//
//	func (c *Context) UnaryOp(z, x *bigfloat.Float) *bigfloat.Float
//	func (c *Context) BinaryOp(z, x, y *bigfloat.Float) *bigfloat.Float
//
// set z to the result of z.Op(args), rounded using the c's precision and
// rounding mode and return z.
//
// A Context catches errors: if an operation generates a NaN, divides by zero
// or requests an invalid precision, the operation will silently succeed with
// an undefined result. Further operations with the context will be no-ops
// (they simply return the receiver z) until (*Context).Err is called to check
// for errors. Errors belong to one of the classes bigfloat.InvalidPrecision,
// bigfloat.DivisionByZero or bigfloat.DomainError.
//
// A Context with a precision of 0 follows the default precision: every
// operation reads DefaultPrec at the time it is performed.
package context

import (
	"math/big"

	"github.com/db47h/bigfloat"
	"github.com/db47h/bigfloat/math"
)

const handleNaNs = true

// A Context is a wrapper around Floats that facilitates management of
// rounding modes, precision and error handling.
//
// A Context is not safe for concurrent use.
type Context struct {
	prec uint32
	mode bigfloat.RoundingMode
	err  error
}

// New creates a new context with the given precision and rounding mode. If
// prec is 0, the context follows the default precision. An invalid precision
// is recorded as an error of the context.
func New(prec uint, mode bigfloat.RoundingMode) *Context {
	return new(Context).SetMode(mode).SetPrec(prec)
}

// Default returns a new context that follows the default precision and rounds
// to nearest even.
func Default() *Context {
	return new(Context)
}

// Mode returns the rounding mode of c.
func (c *Context) Mode() bigfloat.RoundingMode {
	return c.mode
}

// Prec returns the mantissa precision of c in bits. If c follows the default
// precision, this is the current value of DefaultPrec.
func (c *Context) Prec() uint {
	if c.prec == 0 {
		return DefaultPrec()
	}
	return uint(c.prec)
}

// IsDefault reports whether c follows the default precision.
func (c *Context) IsDefault() bool {
	return c.prec == 0
}

// SetMode sets c's rounding mode to mode and returns c.
func (c *Context) SetMode(mode bigfloat.RoundingMode) *Context {
	c.mode = mode
	return c
}

// SetPrec sets c's precision to prec and returns c.
//
// If prec == 0, c follows the default precision. If prec is not a valid
// precision, c's precision is left unchanged and an InvalidPrecision error is
// recorded.
func (c *Context) SetPrec(prec uint) *Context {
	// special case
	if prec == 0 {
		c.prec = 0
		return c
	}
	// general case
	if err := bigfloat.ValidPrec(prec); err != nil {
		if c.err == nil {
			c.err = err
		}
		return c
	}
	c.prec = uint32(prec)
	return c
}

// New returns a new bigfloat.Float with value 0, precision and rounding mode
// set to c's precision and rounding mode.
func (c *Context) New() *bigfloat.Float {
	return new(bigfloat.Float).SetMode(c.mode).SetPrec(c.Prec())
}

// NewInt returns a new *bigfloat.Float set to the (possibly rounded) value of
// x.
func (c *Context) NewInt(x *big.Int) *bigfloat.Float {
	return c.New().SetInt(x)
}

// NewInt64 returns a new *bigfloat.Float set to the (possibly rounded) value
// of x.
func (c *Context) NewInt64(x int64) *bigfloat.Float {
	return c.New().SetInt64(x)
}

// NewUint64 returns a new *bigfloat.Float set to the (possibly rounded) value
// of x.
func (c *Context) NewUint64(x uint64) *bigfloat.Float {
	return c.New().SetUint64(x)
}

// NewFloat returns a new *bigfloat.Float set to the (possibly rounded) value
// of x.
func (c *Context) NewFloat(x *big.Float) *bigfloat.Float {
	return c.New().SetBigFloat(x)
}

// NewFloat64 returns a new *bigfloat.Float set to the (possibly rounded) value
// of x. A NaN x is recorded as a DomainError and the result is nil.
func (c *Context) NewFloat64(x float64) (f *bigfloat.Float) {
	if handleNaNs {
		defer c.handleNaN(&f, nil)
	}
	return c.New().SetFloat64(x)
}

// NewRat returns a new *bigfloat.Float set to the (possibly rounded) value of
// x.
func (c *Context) NewRat(x *big.Rat) *bigfloat.Float {
	return c.New().SetRat(x)
}

// NewString returns a new Float with the value of s and a boolean indicating
// success. s must be a floating-point number of the same format as accepted by
// (*bigfloat.Float).Parse, with base argument 0. The entire string (not just a
// prefix) must be valid for success. If the operation failed, the value of f
// is undefined but the returned value is nil. f's precision and rounding mode
// are set to c's precision and rounding mode.
func (c *Context) NewString(s string) (f *bigfloat.Float, success bool) {
	return c.New().SetString(s)
}

// ParseFloat is like f.Parse(s, base) with f set to c's precision and rounding
// mode.
func (c *Context) ParseFloat(s string, base int) (f *bigfloat.Float, b int, err error) {
	return bigfloat.ParseFloat(s, base, c.Prec(), c.mode)
}

// Err returns the first error encountered since the last call to Err and clears
// the error state.
func (c *Context) Err() (err error) {
	err = c.err
	c.err = nil
	return
}

// handleNaN recovers from an ErrNaN panic: the error is recorded in c and the
// result *r of the interrupted operation is set to z. Other panics are
// propagated.
func (c *Context) handleNaN(r **bigfloat.Float, z *bigfloat.Float) {
	if err := recover(); err != nil {
		nan, ok := err.(bigfloat.ErrNaN)
		if !ok {
			panic(err)
		}
		if c.err = nan.Unwrap(); c.err == nil {
			c.err = nan
		}
		*r = z
	}
}

// target returns the Float that receives the result of an operation on args
// with c's precision and rounding mode, to be copied to z afterwards. This is
// z itself unless z is one of args and its precision must change.
func (c *Context) target(z *bigfloat.Float, args ...*bigfloat.Float) *bigfloat.Float {
	prec := c.Prec()
	if z.Prec() != prec {
		for _, x := range args {
			if x == z {
				return new(bigfloat.Float).SetMode(c.mode).SetPrec(prec)
			}
		}
		// the current value of z is irrelevant, don't round it
		z.SetPrec(0).SetPrec(prec)
	}
	return z.SetMode(c.mode)
}

// Round sets z's to the value of x and returns z rounded using c's precision
// and rounding mode.
func (c *Context) Round(z, x *bigfloat.Float) *bigfloat.Float {
	if handleNaNs {
		if c.err != nil {
			return z
		}
	}
	return z.Copy(c.target(z, x).Set(x))
}

// Add sets z to the rounded sum x+y and returns z.
func (c *Context) Add(z, x, y *bigfloat.Float) (r *bigfloat.Float) {
	if handleNaNs {
		if c.err != nil {
			return z
		}
		defer c.handleNaN(&r, z)
	}
	return z.Copy(c.target(z, x, y).Add(x, y))
}

// Sub sets z to the rounded difference x-y and returns z.
func (c *Context) Sub(z, x, y *bigfloat.Float) (r *bigfloat.Float) {
	if handleNaNs {
		if c.err != nil {
			return z
		}
		defer c.handleNaN(&r, z)
	}
	return z.Copy(c.target(z, x, y).Sub(x, y))
}

// FMA sets z to x * y + u, computed with only one rounding. That is, FMA
// performs the fused multiply-add of x, y, and u.
func (c *Context) FMA(z, x, y, u *bigfloat.Float) (r *bigfloat.Float) {
	if handleNaNs {
		if c.err != nil {
			return z
		}
		defer c.handleNaN(&r, z)
	}
	return z.Copy(c.target(z, x, y, u).FMA(x, y, u))
}

// Mul sets z to the rounded product x×y and returns z.
func (c *Context) Mul(z, x, y *bigfloat.Float) (r *bigfloat.Float) {
	if handleNaNs {
		if c.err != nil {
			return z
		}
		defer c.handleNaN(&r, z)
	}
	return z.Copy(c.target(z, x, y).Mul(x, y))
}

// Quo sets z to the rounded quotient x/y and returns z.
//
// A zero divisor is recorded as a DivisionByZero error and z is left
// unchanged.
func (c *Context) Quo(z, x, y *bigfloat.Float) (r *bigfloat.Float) {
	if handleNaNs {
		if c.err != nil {
			return z
		}
		if y.IsZero() {
			c.err = bigfloat.DivisionByZero.New("%s/0", x.Text('g', 10))
			return z
		}
		defer c.handleNaN(&r, z)
	}
	return z.Copy(c.target(z, x, y).Quo(x, y))
}

// Neg sets z to the (possibly rounded) value of x with its sign negated,
// and returns z.
func (c *Context) Neg(z, x *bigfloat.Float) *bigfloat.Float {
	if handleNaNs {
		if c.err != nil {
			return z
		}
	}
	return c.Round(z, x).Neg(z)
}

// Abs sets z to the (possibly rounded) value |x| (the absolute value of x)
// and returns z.
func (c *Context) Abs(z, x *bigfloat.Float) *bigfloat.Float {
	if handleNaNs {
		if c.err != nil {
			return z
		}
	}
	return c.Round(z, x).Abs(z)
}

// Sqrt sets z to the rounded square root of x, and returns z.
func (c *Context) Sqrt(z, x *bigfloat.Float) (r *bigfloat.Float) {
	if handleNaNs {
		if c.err != nil {
			return z
		}
		defer c.handleNaN(&r, z)
	}
	return z.Copy(c.target(z, x).Sqrt(x))
}

// Exp sets z to the rounded value of e^x, and returns z.
func (c *Context) Exp(z, x *bigfloat.Float) *bigfloat.Float {
	if handleNaNs {
		if c.err != nil {
			return z
		}
	}
	return z.Copy(math.Exp(c.target(z, x), x))
}

// Log sets z to the rounded natural logarithm of x, and returns z.
func (c *Context) Log(z, x *bigfloat.Float) (r *bigfloat.Float) {
	if handleNaNs {
		if c.err != nil {
			return z
		}
		defer c.handleNaN(&r, z)
	}
	return z.Copy(math.Log(c.target(z, x), x))
}

// Sin sets z to the rounded value of sin(x), and returns z.
func (c *Context) Sin(z, x *bigfloat.Float) (r *bigfloat.Float) {
	if handleNaNs {
		if c.err != nil {
			return z
		}
		defer c.handleNaN(&r, z)
	}
	return z.Copy(math.Sin(c.target(z, x), x))
}

// Cos sets z to the rounded value of cos(x), and returns z.
func (c *Context) Cos(z, x *bigfloat.Float) (r *bigfloat.Float) {
	if handleNaNs {
		if c.err != nil {
			return z
		}
		defer c.handleNaN(&r, z)
	}
	return z.Copy(math.Cos(c.target(z, x), x))
}

// Pi sets z to the value of π rounded using c's precision and rounding mode,
// and returns z.
func (c *Context) Pi(z *bigfloat.Float) *bigfloat.Float {
	if handleNaNs {
		if c.err != nil {
			return z
		}
	}
	return math.Pi(c.target(z))
}
