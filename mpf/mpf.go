// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mpf provides immutable arbitrary-precision floating-point values.
//
// A Float either has an explicit precision, given when it was constructed, or
// is tagged with the default precision of package context. Binary operations
// on two default-tagged values are computed at the default precision in effect
// at the time of the operation and return a default-tagged value. Otherwise,
// the result has the largest precision of both operands and is explicit.
// Functions of one argument use the precision of the argument, or the current
// default precision for a default-tagged argument.
//
// All results are rounded to nearest even. Operations never modify their
// operands, so Floats can be shared freely between goroutines.
package mpf

import (
	"github.com/db47h/bigfloat"
	"github.com/db47h/bigfloat/context"
	"github.com/db47h/bigfloat/math"
)

// A Float is an immutable floating-point value. The zero value is a
// default-tagged 0.
type Float struct {
	x        *bigfloat.Float
	explicit bool
}

// Notation selects the output format of Float.Text.
type Notation int

// Supported notations.
const (
	Fixed      Notation = iota // -ddd.dddd
	Scientific                 // -d.dddde±dd
)

// New returns a default-tagged Float with the value of f rounded to the
// current default precision. New panics with an ErrNaN if f is a NaN.
func New(f float64) Float {
	return Float{x: newFloat(context.DefaultPrec()).SetFloat64(f)}
}

// NewInt returns a default-tagged Float with the value of i rounded to the
// current default precision.
func NewInt(i int64) Float {
	return Float{x: newFloat(context.DefaultPrec()).SetInt64(i)}
}

// Parse returns a default-tagged Float with the value of s rounded to the
// current default precision. s has the format accepted by
// (*bigfloat.Float).Parse with base 0.
func Parse(s string) (Float, error) {
	x, _, err := bigfloat.ParseFloat(s, 0, context.DefaultPrec(), bigfloat.ToNearestEven)
	if err != nil {
		return Float{}, err
	}
	return Float{x: x}, nil
}

// NewPrec returns a Float with the value of f rounded to prec bits. It
// returns an InvalidPrecision error if prec is not a valid precision, and a
// DomainError if f is a NaN.
func NewPrec(f float64, prec uint) (z Float, err error) {
	if err := bigfloat.ValidPrec(prec); err != nil {
		return Float{}, err
	}
	defer func() {
		if e := recover(); e != nil {
			nan, ok := e.(bigfloat.ErrNaN)
			if !ok {
				panic(e)
			}
			z, err = Float{}, nan.Unwrap()
		}
	}()
	return Float{x: newFloat(prec).SetFloat64(f), explicit: true}, nil
}

// NewIntPrec returns a Float with the value of i rounded to prec bits. It
// returns an InvalidPrecision error if prec is not a valid precision.
func NewIntPrec(i int64, prec uint) (Float, error) {
	if err := bigfloat.ValidPrec(prec); err != nil {
		return Float{}, err
	}
	return Float{x: newFloat(prec).SetInt64(i), explicit: true}, nil
}

// ParsePrec is like Parse, with an explicit precision of prec bits.
func ParsePrec(s string, prec uint) (Float, error) {
	if err := bigfloat.ValidPrec(prec); err != nil {
		return Float{}, err
	}
	x, _, err := bigfloat.ParseFloat(s, 0, prec, bigfloat.ToNearestEven)
	if err != nil {
		return Float{}, err
	}
	return Float{x: x, explicit: true}, nil
}

// NewBig returns a Float with the value and precision of x. It returns an
// InvalidPrecision error if x's precision is not a valid precision.
func NewBig(x *bigfloat.Float) (Float, error) {
	if err := bigfloat.ValidPrec(x.Prec()); err != nil {
		return Float{}, err
	}
	return Float{x: new(bigfloat.Float).Copy(x), explicit: true}, nil
}

// Pi returns a default-tagged π at the current default precision.
func Pi() Float {
	return Float{x: math.Pi(newFloat(context.DefaultPrec()))}
}

// PiPrec returns π rounded to prec bits.
func PiPrec(prec uint) (Float, error) {
	if err := bigfloat.ValidPrec(prec); err != nil {
		return Float{}, err
	}
	return Float{x: math.Pi(newFloat(prec)), explicit: true}, nil
}

func newFloat(prec uint) *bigfloat.Float {
	return new(bigfloat.Float).SetPrec(prec)
}

var zero = new(bigfloat.Float)

// val returns the value of x. It must not be modified.
func (x Float) val() *bigfloat.Float {
	if x.x == nil {
		return zero
	}
	return x.x
}

// unaryPrec returns the precision of functions of x.
func (x Float) unaryPrec() uint {
	if x.explicit {
		return x.x.Prec()
	}
	return context.DefaultPrec()
}

// binaryPrec returns the precision of binary operations on x and y, and
// whether the result is explicit.
func binaryPrec(x, y Float) (uint, bool) {
	if !x.explicit && !y.explicit {
		return context.DefaultPrec(), false
	}
	return max(x.Prec(), y.Prec()), true
}

// Add returns x+y.
//
// Add panics with an ErrNaN if x and y are infinities of opposite signs.
func (x Float) Add(y Float) Float {
	prec, explicit := binaryPrec(x, y)
	return Float{x: newFloat(prec).Add(x.val(), y.val()), explicit: explicit}
}

// Sub returns x-y.
//
// Sub panics with an ErrNaN if x and y are infinities of the same sign.
func (x Float) Sub(y Float) Float {
	prec, explicit := binaryPrec(x, y)
	return Float{x: newFloat(prec).Sub(x.val(), y.val()), explicit: explicit}
}

// Mul returns x×y.
//
// Mul panics with an ErrNaN if one operand is zero and the other an infinity.
func (x Float) Mul(y Float) Float {
	prec, explicit := binaryPrec(x, y)
	return Float{x: newFloat(prec).Mul(x.val(), y.val()), explicit: explicit}
}

// Quo returns x/y. It returns a DivisionByZero error if y is zero, and a
// DomainError if both x and y are infinities.
func (x Float) Quo(y Float) (Float, error) {
	prec, explicit := binaryPrec(x, y)
	ctx := context.New(prec, bigfloat.ToNearestEven)
	z := ctx.Quo(ctx.New(), x.val(), y.val())
	if err := ctx.Err(); err != nil {
		return Float{}, err
	}
	return Float{x: z, explicit: explicit}, nil
}

// Neg returns -x.
func (x Float) Neg() Float {
	return Float{x: newFloat(x.unaryPrec()).Neg(x.val()), explicit: x.explicit}
}

// Abs returns |x|.
func (x Float) Abs() Float {
	return Float{x: newFloat(x.unaryPrec()).Abs(x.val()), explicit: x.explicit}
}

// apply returns f(x) computed with a context at the precision of functions of
// x, or the error recorded by the context.
func apply(x Float, f func(ctx *context.Context, z, x *bigfloat.Float) *bigfloat.Float) (Float, error) {
	ctx := context.New(x.unaryPrec(), bigfloat.ToNearestEven)
	z := f(ctx, ctx.New(), x.val())
	if err := ctx.Err(); err != nil {
		return Float{}, err
	}
	return Float{x: z, explicit: x.explicit}, nil
}

func must(z Float, err error) Float {
	if err != nil {
		panic(err)
	}
	return z
}

// Sqrt returns the square root of x. It returns a DomainError if x < 0.
func Sqrt(x Float) (Float, error) {
	return apply(x, (*context.Context).Sqrt)
}

// Log returns the natural logarithm of x. It returns a DomainError if x <= 0.
func Log(x Float) (Float, error) {
	return apply(x, (*context.Context).Log)
}

// Exp returns e**x.
func Exp(x Float) Float {
	return must(apply(x, (*context.Context).Exp))
}

// Sin returns the sine of x. Sin panics with an ErrNaN if x is an infinity.
func Sin(x Float) Float {
	return Float{x: math.Sin(newFloat(x.unaryPrec()), x.val()), explicit: x.explicit}
}

// Cos returns the cosine of x. Cos panics with an ErrNaN if x is an infinity.
func Cos(x Float) Float {
	return Float{x: math.Cos(newFloat(x.unaryPrec()), x.val()), explicit: x.explicit}
}

// Text converts x to a string with digits digits after the decimal point in
// the given notation. A negative digits selects the smallest number of digits
// necessary to represent x uniquely.
func (x Float) Text(digits int, n Notation) string {
	if n == Scientific {
		return x.val().Text('e', digits)
	}
	return x.val().Text('f', digits)
}

// String returns the shortest decimal representation of x that parses back
// to x at x's precision, in %g format.
func (x Float) String() string {
	return x.val().Text('g', -1)
}

// Float64 returns the float64 value nearest to x, and the accuracy of the
// conversion.
func (x Float) Float64() (float64, bigfloat.Accuracy) {
	return x.val().Float64()
}

// Prec returns the precision of x in bits.
func (x Float) Prec() uint {
	if x.x == nil {
		return context.DefaultPrec()
	}
	return x.x.Prec()
}

// IsDefaultPrec reports whether x is tagged with the default precision.
func (x Float) IsDefaultPrec() bool {
	return !x.explicit
}

// Cmp compares x and y and returns -1 if x < y, 0 if x == y and +1 if x > y.
func (x Float) Cmp(y Float) int {
	return x.val().Cmp(y.val())
}

// Sign returns -1 if x < 0, 0 if x is ±0 and +1 if x > 0.
func (x Float) Sign() int {
	return x.val().Sign()
}

// Big returns a copy of the value of x, with x's precision. The zero Float
// yields a 0 at the current default precision.
func (x Float) Big() *bigfloat.Float {
	if x.x == nil {
		return newFloat(context.DefaultPrec())
	}
	return new(bigfloat.Float).Copy(x.x)
}

// MarshalText implements the encoding.TextMarshaler interface. Only the value
// of x is marshaled, in the shortest form that parses back to the same value.
func (x Float) MarshalText() ([]byte, error) {
	return x.val().MarshalText()
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The result
// is a default-tagged value at the current default precision.
func (x *Float) UnmarshalText(text []byte) error {
	z := newFloat(context.DefaultPrec())
	if err := z.UnmarshalText(text); err != nil {
		return err
	}
	*x = Float{x: z}
	return nil
}
