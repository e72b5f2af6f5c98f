package bigfloat

import (
	"fmt"
	"math"
	"math/big"
)

// A nonzero finite Float represents a multi-precision binary floating point
// number
//
//	sign × mantissa × 2**exponent
//
// with 0.5 <= mantissa < 1.0, and MinExp <= exponent <= MaxExp. A Float may
// also be zero (+0, -0) or infinite (+Inf, -Inf). All Floats are ordered, and
// the ordering of two Floats x and y is defined by x.Cmp(y).
//
// Each Float value also has a precision, rounding mode, and accuracy. The
// precision is the maximum number of mantissa bits available to represent the
// value. The rounding mode specifies how a result should be rounded to fit
// into the mantissa bits, and accuracy describes the rounding error with
// respect to the exact result.
//
// Unless specified otherwise, all operations (including setters) that specify
// a *Float variable for the result (usually via the receiver with the
// exception of MantExp), round the numeric result according to the precision
// and rounding mode of the result variable.
//
// If the provided result precision is 0 (see below), it is set to the
// precision of the argument with the largest precision value before any
// rounding takes place, and the rounding mode remains unchanged. Thus,
// uninitialized Floats provided as result arguments will have their precision
// set to a reasonable value determined by the operands, and their mode is the
// zero value for RoundingMode (ToNearestEven).
//
// By setting the desired precision to 24 or 53 and using matching rounding
// mode (typically ToNearestEven), Float operations produce the same results as
// the corresponding float32 or float64 IEEE-754 arithmetic for operands that
// correspond to normal (i.e., not denormal) float32 or float64 numbers.
// Exponent underflow and overflow lead to a 0 or an Infinity for different
// values than IEEE-754 because Float exponents have a much larger range.
//
// The zero (uninitialized) value for a Float is ready to use and represents
// the number +0.0 exactly, with precision 0 and rounding mode ToNearestEven.
//
// Operations always take pointer arguments (*Float) rather than Float values,
// and each unique Float value requires its own unique *Float pointer. To
// "copy" a Float value, an existing (or newly allocated) Float must be set to
// a new value using the Float.Set method; shallow copies of Floats are not
// supported and may lead to errors.
type Float struct {
	mant big.Int
	exp  int32
	prec uint32
	mode RoundingMode
	acc  Accuracy
	form form
	neg  bool
}

// NewFloat allocates and returns a new Float set to x, with precision 53 and
// rounding mode ToNearestEven. NewFloat panics with ErrNaN if x is a NaN.
func NewFloat(x float64) *Float {
	if math.IsNaN(x) {
		panic(domainNaN("NewFloat(NaN)"))
	}
	return new(Float).SetFloat64(x)
}

// SetPrec sets z's precision to prec and returns the (possibly) rounded value
// of z. Rounding occurs according to z's rounding mode if the mantissa cannot
// be represented in prec bits without loss of precision. SetPrec(0) maps all
// finite values to ±0; infinite values remain unchanged. If prec > MaxPrec, it
// is set to MaxPrec.
func (z *Float) SetPrec(prec uint) *Float {
	z.acc = Exact // optimistically assume no rounding is needed

	// special case
	if prec == 0 {
		z.prec = 0
		if z.form == finite {
			// truncate z to 0
			z.acc = makeAcc(z.neg)
			z.form = zero
		}
		return z
	}

	// general case
	if prec > MaxPrec {
		prec = MaxPrec
	}
	old := z.prec
	z.prec = uint32(prec)
	if z.prec < old {
		z.round()
	}
	return z
}

// SetMode sets z's rounding mode to mode and returns an exact z.
// z remains unchanged otherwise.
// z.SetMode(z.Mode()) is a cheap way to set z's accuracy to Exact.
func (z *Float) SetMode(mode RoundingMode) *Float {
	z.mode = mode
	z.acc = Exact
	return z
}

// Prec returns the mantissa precision of x in bits.
// The result may be 0 for |x| == 0 and |x| == Inf.
func (x *Float) Prec() uint {
	return uint(x.prec)
}

// MinPrec returns the minimum precision required to represent x exactly
// (i.e., the smallest prec before x.SetPrec(prec) would start rounding x).
// The result is 0 for |x| == 0 and |x| == Inf.
func (x *Float) MinPrec() uint {
	if x.form != finite {
		return 0
	}
	return uint(x.mant.BitLen())
}

// Mode returns the rounding mode of x.
func (x *Float) Mode() RoundingMode {
	return x.mode
}

// Acc returns the accuracy of x produced by the most recent operation.
func (x *Float) Acc() Accuracy {
	return x.acc
}

// Sign returns:
//
//	-1 if x <   0
//	 0 if x is ±0
//	+1 if x >   0
func (x *Float) Sign() int {
	if debugFloat {
		x.validate()
	}
	if x.form == zero {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// MantExp breaks x into its mantissa and exponent components and returns the
// exponent. If a non-nil mant argument is provided its value is set to the
// mantissa of x, with the same precision and rounding mode as x. The
// components satisfy x == mant × 2**exp, with 0.5 <= |mant| < 1.0. Calling
// MantExp with a nil argument is an efficient way to get the exponent of the
// receiver.
//
// Special cases are:
//
//	(  ±0).MantExp(mant) = 0, with mant set to   ±0
//	(±Inf).MantExp(mant) = 0, with mant set to ±Inf
//
// x and mant may be the same in which case x is set to its mantissa value.
func (x *Float) MantExp(mant *Float) (exp int) {
	if debugFloat {
		x.validate()
	}
	if x.form == finite {
		exp = int(x.exp)
	}
	if mant != nil {
		mant.Copy(x)
		if mant.form == finite {
			mant.exp = 0
		}
	}
	return
}

func (z *Float) setExpAndRound(exp int64) {
	if exp < MinExp {
		// underflow
		z.acc = makeAcc(z.neg)
		z.form = zero
		return
	}

	if exp > MaxExp {
		// overflow
		z.acc = makeAcc(!z.neg)
		z.form = inf
		return
	}

	z.form = finite
	z.exp = int32(exp)
	z.round()
}

// SetMantExp sets z to mant × 2**exp and returns z. The components satisfy
// the same requirements as the result of x.MantExp. SetMantExp is an inverse
// of MantExp but does not require 0.5 <= |mant| < 1.0. Specifically, for a
// given x of type *Float, SetMantExp relates to MantExp as follows:
//
//	mant := new(Float)
//	new(Float).SetMantExp(mant, x.MantExp(mant)).Cmp(x) == 0
//
// Special cases are:
//
//	z.SetMantExp(  ±0, exp) =   ±0
//	z.SetMantExp(±Inf, exp) = ±Inf
//
// z and mant may be the same in which case z's exponent is set to exp.
func (z *Float) SetMantExp(mant *Float, exp int) *Float {
	if debugFloat {
		z.validate()
		mant.validate()
	}
	z.Set(mant)
	if z.form != finite {
		return z
	}
	acc := z.acc
	z.setExpAndRound(int64(z.exp) + int64(exp))
	if z.form == finite {
		// scaling is exact
		z.acc = acc
	}
	return z
}

// Signbit reports whether x is negative or negative zero.
func (x *Float) Signbit() bool {
	return x.neg
}

// IsInf reports whether x is +Inf or -Inf.
func (x *Float) IsInf() bool {
	return x.form == inf
}

// IsZero reports whether x is ±0.
func (x *Float) IsZero() bool {
	return x.form == zero
}

// IsInt reports whether x is an integer.
// ±Inf values are not integers.
func (x *Float) IsInt() bool {
	if debugFloat {
		x.validate()
	}
	// special cases
	if x.form != finite {
		return x.form == zero
	}
	// x.form == finite
	if x.exp <= 0 {
		return false
	}
	// x.exp > 0
	return int64(x.exp) >= int64(x.mant.BitLen())
}

// lsb returns the exponent of the least significant mantissa bit of the
// finite x, that is x == mant × 2**lsb.
func (x *Float) lsb() int64 {
	return int64(x.exp) - int64(x.mant.BitLen())
}

func (x *Float) validate() {
	if !debugFloat {
		// avoid performance bugs
		panic("validate called but debugFloat is not set")
	}
	if x.form != finite {
		return
	}
	if x.mant.Sign() <= 0 {
		panic(fmt.Sprintf("nonzero finite number with mantissa %s", x.mant.String()))
	}
	if x.mant.Bit(0) == 0 {
		panic(fmt.Sprintf("mantissa %s of %s has trailing zero bits", x.mant.String(), x.Text('p', 0)))
	}
	if x.prec == 0 {
		panic("zero precision finite number")
	}
	if uint(x.mant.BitLen()) > uint(x.prec) {
		panic(fmt.Sprintf("mantissa of %s has %d bits > prec %d", x.Text('p', 0), x.mant.BitLen(), x.prec))
	}
}

// round rounds z according to z.mode to z.prec bits and sets z.acc
// accordingly. z's mantissa must be free of trailing zero bits, or empty.
//
// CAUTION: The rounding modes ToNegativeInf, ToPositiveInf are affected by the
// sign of z. For correct rounding, the sign of z must be set correctly before
// calling round.
func (z *Float) round() {
	z.acc = Exact
	if z.form != finite {
		// ±0 or ±Inf => nothing left to do
		return
	}
	// z.form == finite && z.mant != 0
	bits := uint(z.mant.BitLen())
	if bits <= uint(z.prec) {
		// mantissa fits => nothing to do
		return
	}

	// bits > z.prec: mantissa too large => round
	n := bits - uint(z.prec) // number of bits to drop, n >= 1
	r := z.mant.Bit(int(n - 1))
	sbit := z.mant.TrailingZeroBits() < n-1
	z.mant.Rsh(&z.mant, n)

	if r != 0 || sbit {
		inc := false
		switch z.mode {
		case ToNegativeInf:
			inc = z.neg
		case ToZero:
			// nothing to do
		case ToNearestEven:
			inc = r != 0 && (sbit || z.mant.Bit(0) != 0)
		case ToNearestAway:
			inc = r != 0
		case AwayFromZero:
			inc = true
		case ToPositiveInf:
			inc = !z.neg
		default:
			panic("unreachable")
		}

		// A positive result (!z.neg) is Above the exact result if we increment,
		// and it's Below if we truncate (Exact results require no rounding).
		// For a negative result (z.neg) it is exactly the opposite.
		z.acc = makeAcc(inc != z.neg)

		if inc {
			z.mant.Add(&z.mant, bigOne)
			if uint(z.mant.BitLen()) > uint(z.prec) {
				// mantissa overflow: z.mant == 1 << z.prec
				z.mant.Rsh(&z.mant, 1)
				if z.exp >= MaxExp {
					// exponent overflow
					z.form = inf
					return
				}
				z.exp++
			}
		}
	}

	normInt(&z.mant)

	if debugFloat {
		z.validate()
	}
}

// setBits sets the mantissa of z to the value in z.mant scaled by 2**lsb,
// normalizes and rounds it. The sign of z must be set. If sticky is set, the
// exact value lies strictly between z.mant × 2**lsb and (z.mant+1) × 2**lsb;
// z.mant must then have at least z.prec+1 bits.
func (z *Float) setBits(lsb int64, sticky bool) {
	if sticky {
		if debugFloat && uint(z.mant.BitLen()) <= uint(z.prec) {
			panic("sticky bit with a mantissa that fits the precision")
		}
		z.mant.Lsh(&z.mant, 1)
		z.mant.SetBit(&z.mant, 0, 1)
		lsb--
	}
	if z.mant.Sign() == 0 {
		z.acc = Exact
		z.form = zero
		return
	}
	lsb += int64(normInt(&z.mant))
	z.setExpAndRound(lsb + int64(z.mant.BitLen()))
}

// SetUint64 sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to 64 (and rounding will have
// no effect).
func (z *Float) SetUint64(x uint64) *Float {
	return z.setBits64(false, x)
}

// SetInt64 sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to 64 (and rounding will have
// no effect).
func (z *Float) SetInt64(x int64) *Float {
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	// We cannot simply call z.SetUint64(uint64(u)) and change
	// the sign afterwards because the sign affects rounding.
	return z.setBits64(x < 0, u)
}

func (z *Float) setBits64(neg bool, x uint64) *Float {
	if z.prec == 0 {
		z.prec = 64
	}
	z.acc = Exact
	z.neg = neg
	if x == 0 {
		z.form = zero
		return z
	}
	// x != 0
	z.mant.SetUint64(x)
	z.setBits(0, false)
	return z
}

// SetFloat64 sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to 53 (and rounding will have
// no effect). SetFloat64 panics with ErrNaN if x is a NaN.
func (z *Float) SetFloat64(x float64) *Float {
	if z.prec == 0 {
		z.prec = 53
	}
	if math.IsNaN(x) {
		panic(domainNaN("Float.SetFloat64(NaN)"))
	}
	z.acc = Exact
	z.neg = math.Signbit(x) // handle -0, -Inf correctly
	if x == 0 {
		z.form = zero
		return z
	}
	if math.IsInf(x, 0) {
		z.form = inf
		return z
	}
	fmant, exp := math.Frexp(x) // get normalized mantissa
	// 0.5 <= |fmant| < 1.0 so that the scaled mantissa is an exact 53 bits
	// integer
	z.mant.SetUint64(uint64(math.Abs(fmant) * (1 << 53)))
	z.setBits(int64(exp)-53, false)
	return z
}

// SetInt sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to the larger of x.BitLen()
// or 64 (and rounding will have no effect).
func (z *Float) SetInt(x *big.Int) *Float {
	bits := uint32(x.BitLen())
	if z.prec == 0 {
		z.prec = umax32(bits, 64)
	}
	z.acc = Exact
	z.neg = x.Sign() < 0
	if bits == 0 {
		z.form = zero
		return z
	}
	// x != 0
	z.mant.Abs(x)
	z.setBits(0, false)
	return z
}

// SetRat sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to the largest of a.BitLen(),
// b.BitLen(), or 64; with x = a/b.
func (z *Float) SetRat(x *big.Rat) *Float {
	if x.IsInt() {
		return z.SetInt(x.Num())
	}
	a, b := x.Num(), x.Denom()
	if z.prec == 0 {
		z.prec = umax32(umax32(uint32(a.BitLen()), uint32(b.BitLen())), 64)
	}
	z.neg = a.Sign() < 0
	na := getInt().Abs(a)
	z.setQuo(na, b, 0)
	putInt(na)
	return z
}

// SetInf sets z to the infinite Float -Inf if signbit is
// set, or +Inf if signbit is not set, and returns z. The
// precision of z is unchanged and the result is always
// Exact.
func (z *Float) SetInf(signbit bool) *Float {
	z.acc = Exact
	z.form = inf
	z.neg = signbit
	return z
}

// Set sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to the precision of x
// before setting z (and rounding will have no effect).
// Rounding is performed according to z's precision and rounding
// mode; and z's accuracy reports the result error relative to the
// exact (not rounded) result.
func (z *Float) Set(x *Float) *Float {
	if debugFloat {
		x.validate()
	}
	z.acc = Exact
	if z != x {
		z.form = x.form
		z.neg = x.neg
		if x.form == finite {
			z.exp = x.exp
			z.mant.Set(&x.mant)
		}
		if z.prec == 0 {
			z.prec = x.prec
		} else if z.prec < x.prec {
			z.round()
		}
	}
	return z
}

// Copy sets z to x, with the same precision, rounding mode, and
// accuracy as x, and returns z. x is not changed even if z and
// x are the same.
func (z *Float) Copy(x *Float) *Float {
	if debugFloat {
		x.validate()
	}
	if z != x {
		z.prec = x.prec
		z.mode = x.mode
		z.acc = x.acc
		z.form = x.form
		z.neg = x.neg
		if z.form == finite {
			z.mant.Set(&x.mant)
			z.exp = x.exp
		}
	}
	return z
}

// Uint64 returns the unsigned integer resulting from truncating x
// towards zero. If 0 <= x <= math.MaxUint64, the result is Exact
// if x is an integer and Below otherwise.
// The result is (0, Above) for x < 0, and (math.MaxUint64, Below)
// for x > math.MaxUint64.
func (x *Float) Uint64() (uint64, Accuracy) {
	if debugFloat {
		x.validate()
	}

	switch x.form {
	case finite:
		if x.neg {
			return 0, Above
		}
		// 0 < x < +Inf
		if x.exp <= 0 {
			// 0 < x < 1
			return 0, Below
		}
		// 1 <= x < Inf
		if x.exp <= 64 {
			i, acc := x.Int(nil)
			return i.Uint64(), acc
		}
		// x too large
		return math.MaxUint64, Below

	case zero:
		return 0, Exact

	case inf:
		if x.neg {
			return 0, Above
		}
		return math.MaxUint64, Below
	}

	panic("unreachable")
}

// Int64 returns the integer resulting from truncating x towards zero.
// If math.MinInt64 <= x <= math.MaxInt64, the result is Exact if x is
// an integer, and Above (x < 0) or Below (x > 0) otherwise.
// The result is (math.MinInt64, Above) for x < math.MinInt64,
// and (math.MaxInt64, Below) for x > math.MaxInt64.
func (x *Float) Int64() (int64, Accuracy) {
	if debugFloat {
		x.validate()
	}

	switch x.form {
	case finite:
		// 0 < |x| < +Inf
		acc := makeAcc(x.neg)
		if x.exp <= 0 {
			// 0 < |x| < 1
			return 0, acc
		}
		// 1 <= |x| < Inf
		if x.exp <= 64 {
			if i, acc := x.Int(nil); i.IsInt64() {
				return i.Int64(), acc
			}
		}
		// x too large
		if x.neg {
			return math.MinInt64, Above
		}
		return math.MaxInt64, Below

	case zero:
		return 0, Exact

	case inf:
		if x.neg {
			return math.MinInt64, Above
		}
		return math.MaxInt64, Below
	}

	panic("unreachable")
}

// Float32 returns the float32 value nearest to x. If x is too small to be
// represented by a float32 (|x| < math.SmallestNonzeroFloat32), the result
// is (0, Below) or (-0, Above), respectively, depending on the sign of x.
// If x is too large to be represented by a float32 (|x| > math.MaxFloat32),
// the result is (+Inf, Above) or (-Inf, Below), depending on the sign of x.
func (x *Float) Float32() (float32, Accuracy) {
	f, acc := x.toFloat(23, 8)
	return float32(f), acc
}

// Float64 returns the float64 value nearest to x. If x is too small to be
// represented by a float64 (|x| < math.SmallestNonzeroFloat64), the result
// is (0, Below) or (-0, Above), respectively, depending on the sign of x.
// If x is too large to be represented by a float64 (|x| > math.MaxFloat64),
// the result is (+Inf, Above) or (-Inf, Below), depending on the sign of x.
func (x *Float) Float64() (float64, Accuracy) {
	return x.toFloat(52, 11)
}

// toFloat rounds x to an IEEE-754 binary format with mbits mantissa bits and
// ebits exponent bits. The result is exactly representable in that format
// and converts to it without loss.
func (x *Float) toFloat(mbits, ebits int) (float64, Accuracy) {
	if debugFloat {
		x.validate()
	}

	switch x.form {
	case finite:
		// 0 < |x| < +Inf

		var (
			bias = 1<<(ebits-1) - 1
			dmin = 1 - bias - mbits
			emin = 1 - bias
			emax = bias
		)

		// Float mantissa m is 0.5 <= m < 1.0; compute exponent e for
		// IEEE-754 mantissa.
		e := int64(x.exp) - 1 // exponent for normal mantissa m with 1.0 <= m < 2.0

		// Compute precision p for IEEE-754 mantissa.
		// If the exponent is too small, we have a denormal number before
		// rounding and fewer than p mantissa bits of precision available
		// (the exponent remains fixed but the mantissa gets shifted right).
		p := int64(mbits + 1) // precision of normal float
		if e < int64(emin) {
			// recompute precision
			p = int64(mbits) + 1 - int64(emin) + e
			// If p == 0, the mantissa of x is shifted so much to the right
			// that its msb falls immediately to the right of the float
			// mantissa space. In other words, if the smallest denormal is
			// considered "1.0", for p == 0, the mantissa value m is >= 0.5.
			// If m > 0.5, it is rounded up to 1.0; i.e., the smallest denormal.
			// If m == 0.5, it is rounded down to even, i.e., 0.0.
			// If p < 0, the mantissa value m is <= "0.25" which is never
			// rounded up.
			if p < 0 /* m <= 0.25 */ || p == 0 && x.mant.BitLen() == 1 /* m == 0.5 */ {
				// underflow to ±0
				if x.neg {
					return math.Copysign(0, -1), Above
				}
				return 0.0, Below
			}
			// otherwise, round up
			// We handle p == 0 explicitly because it's easy and because
			// Float.round doesn't support rounding to 0 bits of precision.
			if p == 0 {
				smallest := math.Ldexp(1, dmin)
				if x.neg {
					return -smallest, Below
				}
				return smallest, Above
			}
		}
		// p > 0

		// round
		var r Float
		r.prec = uint32(p)
		r.mode = x.mode
		r.Set(x)
		e = int64(r.exp) - 1

		// Rounding may have caused r to overflow to ±Inf
		// (rounding never causes underflows to 0).
		// If the exponent is too large, also overflow to ±Inf.
		if r.form == inf || e > int64(emax) {
			// overflow
			if x.neg {
				return math.Inf(-1), Below
			}
			return math.Inf(+1), Above
		}
		// e <= emax

		f := math.Ldexp(float64(r.mant.Uint64()), int(r.lsb()))
		if x.neg {
			f = -f
		}
		return f, r.acc

	case zero:
		if x.neg {
			return math.Copysign(0, -1), Exact
		}
		return 0.0, Exact

	case inf:
		if x.neg {
			return math.Inf(-1), Exact
		}
		return math.Inf(+1), Exact
	}

	panic("unreachable")
}

// Int returns the result of truncating x towards zero;
// or nil if x is an infinity.
// The result is Exact if x.IsInt(); otherwise it is Below
// for x > 0, and Above for x < 0.
// If a non-nil *big.Int argument z is provided, Int stores
// the result in z instead of allocating a new big.Int.
func (x *Float) Int(z *big.Int) (*big.Int, Accuracy) {
	if debugFloat {
		x.validate()
	}

	if z == nil && x.form <= finite {
		z = new(big.Int)
	}

	switch x.form {
	case finite:
		// 0 < |x| < +Inf
		acc := makeAcc(x.neg)
		if x.exp <= 0 {
			// 0 < |x| < 1
			return z.SetInt64(0), acc
		}
		// x.exp > 0

		// 1 <= |x| < +Inf
		// calculate exponent
		if lsb := x.lsb(); lsb >= 0 {
			z.Lsh(&x.mant, uint(lsb))
			acc = Exact
		} else {
			// the mantissa is odd so any shift drops a set bit
			z.Rsh(&x.mant, uint(-lsb))
		}
		if x.neg {
			z.Neg(z)
		}
		return z, acc

	case zero:
		return z.SetInt64(0), Exact

	case inf:
		return nil, makeAcc(x.neg)
	}

	panic("unreachable")
}

// Rat returns the rational number corresponding to x;
// or nil if x is an infinity.
// The result is Exact if x is not an Inf.
// If a non-nil *big.Rat argument z is provided, Rat stores
// the result in z instead of allocating a new big.Rat.
func (x *Float) Rat(z *big.Rat) (*big.Rat, Accuracy) {
	if debugFloat {
		x.validate()
	}

	if z == nil && x.form <= finite {
		z = new(big.Rat)
	}

	switch x.form {
	case finite:
		// 0 < |x| < +Inf
		num := new(big.Int).Set(&x.mant)
		den := big.NewInt(1)
		if lsb := x.lsb(); lsb >= 0 {
			num.Lsh(num, uint(lsb))
		} else {
			den.Lsh(den, uint(-lsb))
		}
		if x.neg {
			num.Neg(num)
		}
		return z.SetFrac(num, den), Exact

	case zero:
		return z.SetInt64(0), Exact

	case inf:
		return nil, makeAcc(x.neg)
	}

	panic("unreachable")
}

// Abs sets z to the (possibly rounded) value |x| (the absolute value of x)
// and returns z.
func (z *Float) Abs(x *Float) *Float {
	z.Set(x)
	z.neg = false
	return z
}

// Neg sets z to the (possibly rounded) value of x with its sign negated,
// and returns z.
func (z *Float) Neg(x *Float) *Float {
	z.Set(x)
	z.neg = !z.neg
	return z
}

// add sets z to the sum of the finite values (-1)**xneg × |x| and
// (-1)**yneg × |y|, rounded to z's precision. z's precision must be set.
func (z *Float) add(x *Float, xneg bool, y *Float, yneg bool) {
	xm, xl := &x.mant, x.lsb()
	ym, yl := &y.mant, y.lsb()

	// An operand that lies entirely below the rounding position of the other
	// only contributes a sticky bit: replace it by a single bit at a position
	// far enough below both the other's lsb and its rounding and guard bits.
	// This keeps the exact alignment below bounded.
	var tiny big.Int
	p := int64(z.prec)
	if m := min64(xl, int64(x.exp)-p-3); int64(y.exp) <= m {
		ym, yl = tiny.SetInt64(1), m-1
	} else if m := min64(yl, int64(y.exp)-p-3); int64(x.exp) <= m {
		xm, xl = tiny.SetInt64(1), m-1
	}

	lsb := min64(xl, yl)
	a, b := getInt(), getInt()
	a.Lsh(xm, uint(xl-lsb))
	b.Lsh(ym, uint(yl-lsb))

	if xneg == yneg {
		a.Add(a, b)
		z.neg = xneg
	} else {
		// x + (-y) == x - y == -(y - x)
		// (-x) + y == y - x == -(x - y)
		switch a.Cmp(b) {
		case 1:
			a.Sub(a, b)
			z.neg = xneg
		case -1:
			a.Sub(b, a)
			z.neg = yneg
		default:
			// x - x == +0 unless rounding toward -Inf
			a.SetInt64(0)
			z.neg = z.mode == ToNegativeInf
		}
	}

	z.mant.Set(a)
	putInt(a)
	putInt(b)
	z.setBits(lsb, false)
}

// Add sets z to the rounded sum x+y and returns z. If z's precision is 0,
// it is changed to the larger of x's or y's precision before the operation.
// Rounding is performed according to z's precision and rounding mode; and
// z's accuracy reports the result error relative to the exact (not rounded)
// result. Add panics with ErrNaN if x and y are infinities with opposite
// signs. The value of z is undefined in that case.
func (z *Float) Add(x, y *Float) *Float {
	if debugFloat {
		x.validate()
		y.validate()
	}

	if z.prec == 0 {
		z.prec = umax32(x.prec, y.prec)
	}

	if x.form == finite && y.form == finite {
		// x + y (common case)
		z.add(x, x.neg, y, y.neg)
		return z
	}

	if x.form == inf && y.form == inf && x.neg != y.neg {
		// +Inf + -Inf
		// -Inf + +Inf
		// value of z is undefined but make sure it's valid
		z.acc = Exact
		z.form = zero
		z.neg = false
		panic(domainNaN("addition of infinities with opposite signs"))
	}

	if x.form == zero && y.form == zero {
		// ±0 + ±0
		z.acc = Exact
		z.form = zero
		z.neg = x.neg && y.neg // -0 + -0 == -0
		return z
	}

	if x.form == inf || y.form == zero {
		// ±Inf + y
		// x + ±0
		return z.Set(x)
	}

	// ±0 + y
	// x + ±Inf
	return z.Set(y)
}

// Sub sets z to the rounded difference x-y and returns z.
// Precision, rounding, and accuracy reporting are as for Add.
// Sub panics with ErrNaN if x and y are infinities with equal
// signs. The value of z is undefined in that case.
func (z *Float) Sub(x, y *Float) *Float {
	if debugFloat {
		x.validate()
		y.validate()
	}

	if z.prec == 0 {
		z.prec = umax32(x.prec, y.prec)
	}

	if x.form == finite && y.form == finite {
		// x - y (common case)
		z.add(x, x.neg, y, !y.neg)
		return z
	}

	if x.form == inf && y.form == inf && x.neg == y.neg {
		// +Inf - +Inf
		// -Inf - -Inf
		// value of z is undefined but make sure it's valid
		z.acc = Exact
		z.form = zero
		z.neg = false
		panic(domainNaN("subtraction of infinities with equal signs"))
	}

	if x.form == zero && y.form == zero {
		// ±0 - ±0
		z.acc = Exact
		z.form = zero
		z.neg = x.neg && !y.neg // -0 - +0 == -0
		return z
	}

	if x.form == inf || y.form == zero {
		// ±Inf - y
		// x - ±0
		return z.Set(x)
	}

	// ±0 - y
	// x - ±Inf
	return z.Neg(y)
}

// Mul sets z to the rounded product x*y and returns z.
// Precision, rounding, and accuracy reporting are as for Add.
// Mul panics with ErrNaN if one operand is zero and the other
// operand an infinity. The value of z is undefined in that case.
func (z *Float) Mul(x, y *Float) *Float {
	if debugFloat {
		x.validate()
		y.validate()
	}

	if z.prec == 0 {
		z.prec = umax32(x.prec, y.prec)
	}

	z.neg = x.neg != y.neg

	if x.form == finite && y.form == finite {
		// x * y (common case)
		lsb := x.lsb() + y.lsb()
		mulInt(&z.mant, &x.mant, &y.mant)
		z.setBits(lsb, false)
		return z
	}

	z.acc = Exact
	if x.form == zero && y.form == inf || x.form == inf && y.form == zero {
		// ±0 * ±Inf
		// ±Inf * ±0
		// value of z is undefined but make sure it's valid
		z.form = zero
		z.neg = false
		panic(domainNaN("multiplication of zero with infinity"))
	}

	if x.form == inf || y.form == inf {
		// ±Inf * y
		// x * ±Inf
		z.form = inf
		return z
	}

	// ±0 * y
	// x * ±0
	z.form = zero
	return z
}

// Quo sets z to the rounded quotient x/y and returns z.
// Precision, rounding, and accuracy reporting are as for Add.
// A finite nonzero x divided by ±0 is a signed infinity. Quo panics with
// ErrNaN if both operands are zero or infinities. The value of z is
// undefined in that case.
func (z *Float) Quo(x, y *Float) *Float {
	if debugFloat {
		x.validate()
		y.validate()
	}

	if z.prec == 0 {
		z.prec = umax32(x.prec, y.prec)
	}

	z.neg = x.neg != y.neg

	if x.form == finite && y.form == finite {
		// x / y (common case)
		z.setQuo(&x.mant, &y.mant, x.lsb()-y.lsb())
		return z
	}

	z.acc = Exact
	if x.form == zero && y.form == zero {
		// ±0 / ±0
		// value of z is undefined but make sure it's valid
		z.form = zero
		z.neg = false
		panic(ErrNaN{Msg: "division of zero by zero", Class: &DivisionByZero})
	}
	if x.form == inf && y.form == inf {
		// ±Inf / ±Inf
		z.form = zero
		z.neg = false
		panic(domainNaN("division of infinity by infinity"))
	}

	if x.form == zero || y.form == inf {
		// ±0 / y
		// x / ±Inf
		z.form = zero
		return z
	}

	// x / ±0
	// ±Inf / y
	z.form = inf
	return z
}

// FMA sets z to x * y + u, computed with only one rounding, and returns z.
// Precision, rounding, and accuracy reporting are as for Add. If z's
// precision is 0, it is changed to the largest of x's, y's, or u's precision
// before the operation. FMA panics with ErrNaN if it multiplies zero with an
// infinity, or adds two infinities of opposite sign.
func (z *Float) FMA(x, y, u *Float) *Float {
	if z.prec == 0 {
		z.prec = umax32(umax32(x.prec, y.prec), u.prec)
	}
	// The product of two mantissas fits in the sum of their lengths.
	var p Float
	p.prec = 1
	if x.form == finite && y.form == finite {
		p.prec = uint32(x.mant.BitLen() + y.mant.BitLen())
	}
	p.Mul(x, y)
	return z.Add(&p, u)
}

// setQuo sets z to a/b × 2**lsb rounded to z's precision, for a, b > 0. The
// sign of z must be set. a and b may alias z's mantissa.
func (z *Float) setQuo(a, b *big.Int, lsb int64) {
	// Shift the dividend so that the quotient has at least z.prec+2 bits:
	// one rounding bit, and one more so that a nonzero remainder can be
	// folded into a sticky bit.
	s := int64(z.prec) + 2 + int64(b.BitLen()) - int64(a.BitLen())
	u := getInt()
	if s > 0 {
		u.Lsh(a, uint(s))
	} else {
		s = 0
		u.Set(a)
	}
	q, r := getInt(), getInt()
	q.QuoRem(u, b, r)
	z.mant.Set(q)
	sticky := r.Sign() != 0
	putInt(u)
	putInt(q)
	putInt(r)
	z.setBits(lsb-s, sticky)
}

// ucmp returns -1, 0, or +1, depending on whether
// |x| < |y|, |x| == |y|, or |x| > |y|.
// x and y must have a non-empty mantissa and valid exponent.
func (x *Float) ucmp(y *Float) int {
	switch {
	case x.exp < y.exp:
		return -1
	case x.exp > y.exp:
		return +1
	}
	// x.exp == y.exp

	// compare mantissas aligned at their most significant bit
	xb, yb := x.mant.BitLen(), y.mant.BitLen()
	switch {
	case xb == yb:
		return x.mant.Cmp(&y.mant)
	case xb < yb:
		t := getInt().Lsh(&x.mant, uint(yb-xb))
		defer putInt(t)
		return t.Cmp(&y.mant)
	}
	t := getInt().Lsh(&y.mant, uint(xb-yb))
	defer putInt(t)
	return x.mant.Cmp(t)
}

// Cmp compares x and y and returns:
//
//	-1 if x <  y
//	 0 if x == y (incl. -0 == 0, -Inf == -Inf, and +Inf == +Inf)
//	+1 if x >  y
func (x *Float) Cmp(y *Float) int {
	if debugFloat {
		x.validate()
		y.validate()
	}

	mx := x.ord()
	my := y.ord()
	switch {
	case mx < my:
		return -1
	case mx > my:
		return +1
	}
	// mx == my

	// only if |mx| == 1 we have to compare the mantissae
	switch mx {
	case -1:
		return y.ucmp(x)
	case +1:
		return x.ucmp(y)
	}

	return 0
}

// CmpAbs compares the absolute values of x and y and returns:
//
//	-1 if |x| <  |y|
//	 0 if |x| == |y| (incl. -0 == 0, -Inf == +Inf)
//	+1 if |x| >  |y|
func (x *Float) CmpAbs(y *Float) int {
	mx := x.ord()
	if mx < 0 {
		mx = -mx
	}
	my := y.ord()
	if my < 0 {
		my = -my
	}
	switch {
	case mx < my:
		return -1
	case mx > my:
		return +1
	}
	if mx == 1 {
		return x.ucmp(y)
	}
	return 0
}

// ord classifies x and returns:
//
//	-2 if -Inf == x
//	-1 if -Inf < x < 0
//	 0 if x == 0 (signed or unsigned)
//	+1 if 0 < x < +Inf
//	+2 if x == +Inf
func (x *Float) ord() int {
	var m int
	switch x.form {
	case finite:
		m = 1
	case zero:
		return 0
	case inf:
		m = 2
	}
	if x.neg {
		m = -m
	}
	return m
}
