// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

func TestFloatSqrt(t *testing.T) {
	for _, test := range []struct {
		x    string
		want string
	}{
		// Test values were generated on Wolfram Alpha using query
		//   'sqrt(N) to 350 digits'
		// 350 decimal digits give up to 1000 binary digits.
		{"0.03125", "0.17677669529663688110021109052621225982120898442211850914708496724884155980776337985629844179095519659187673077886403712811560450698134215158051518713749197892665283324093819909447499381264409775757143376369499645074628431682460775184106467733011114982619404115381053858929018135497032545349940642599871090667456829147610370507757690729404938184321879"},
		{"0.125", "0.35355339059327376220042218105242451964241796884423701829416993449768311961552675971259688358191039318375346155772807425623120901396268430316103037427498395785330566648187639818894998762528819551514286752738999290149256863364921550368212935466022229965238808230762107717858036270994065090699881285199742181334913658295220741015515381458809876368643757"},
		{"0.5", "0.70710678118654752440084436210484903928483593768847403658833986899536623923105351942519376716382078636750692311545614851246241802792536860632206074854996791570661133296375279637789997525057639103028573505477998580298513726729843100736425870932044459930477616461524215435716072541988130181399762570399484362669827316590441482031030762917619752737287514"},
		{"2.0", "1.4142135623730950488016887242096980785696718753769480731766797379907324784621070388503875343276415727350138462309122970249248360558507372126441214970999358314132226659275055927557999505011527820605714701095599716059702745345968620147285174186408891986095523292304843087143214508397626036279952514079896872533965463318088296406206152583523950547457503"},
		{"3.0", "1.7320508075688772935274463415058723669428052538103806280558069794519330169088000370811461867572485756756261414154067030299699450949989524788116555120943736485280932319023055820679748201010846749232650153123432669033228866506722546689218379712270471316603678615880190499865373798593894676503475065760507566183481296061009476021871903250831458295239598"},
		{"4.0", "2.0"},

		{"0x1p1024", "0x1p512"},
		{"0x9p2048", "0x3p1024"},
		{"0x1p-1024", "0x1p-512"},
		{"0x19p-4096", "0x5p-2048"},
	} {
		for _, prec := range []uint{24, 53, 64, 100, 113, 200, 500, 1000} {
			x := new(Float).SetPrec(prec)
			x.Parse(test.x, 0)

			got := new(Float).SetPrec(prec).Sqrt(x)
			want := new(Float).SetPrec(prec)
			want.Parse(test.want, 0)
			if got.Cmp(want) != 0 {
				t.Errorf("prec = %d, Sqrt(%v) =\ngot  %g;\nwant %g",
					prec, test.x, got, want)
			}

			// Square test.
			// If got holds the square root of x to precision p, then
			//   got = √x + k
			// for some k such that |k| < 2**(-p). Thus,
			//   got² = (√x + k)² = x + 2k√n + k²
			// and the error must satisfy
			//   err = |got² - x| ≈ | 2k√n | < 2**(-p+1)*√n
			// Ignoring the k² term for simplicity.

			// err = |got² - x|
			// (but do intermediate steps with 32 guard bits to
			// avoid introducing spurious rounding-related errors)
			sq := new(Float).SetPrec(prec+32).Mul(got, got)
			diff := new(Float).Sub(sq, x)
			err := diff.Abs(diff).SetPrec(prec)

			// maxErr = 2**(-p+1)*√x, relative to the exponent of √x
			one := new(Float).SetPrec(prec).SetInt64(1)
			maxErr := new(Float).Mul(new(Float).SetMantExp(one, -int(prec)+2), got)
			maxErr.Mul(maxErr, got)

			if err.Cmp(maxErr) >= 0 {
				t.Errorf("prec = %d, Sqrt(%v) =\ngot err  %g;\nwant maxErr %g",
					prec, test.x, err, maxErr)
			}
		}
	}
}

// TestFloatSqrtRounding checks Sqrt against the exact square of its result
// and of the neighboring values: got is correctly rounded if x lies between
// the squares of the midpoints around got.
func TestFloatSqrtRounding(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		prec := uint(2 + rnd.Intn(200))
		x := new(Float).SetPrec(prec + uint(rnd.Intn(100)))
		x.SetFloat64(rnd.Float64() * 1e10)
		if x.Sign() == 0 {
			continue
		}
		got := new(Float).SetPrec(prec).Sqrt(x)

		// midpoints lo and hi of the rounding interval around got
		var m Float
		exp := got.MantExp(&m)
		half := new(Float).SetMantExp(NewFloat(1), exp-int(prec)-1)
		lo := new(Float).SetPrec(prec+2).Sub(got, half)
		hi := new(Float).SetPrec(prec+2).Add(got, half)

		// squares are exact with enough bits
		lo2 := new(Float).SetPrec(2*prec+4).Mul(lo, lo)
		hi2 := new(Float).SetPrec(2*prec+4).Mul(hi, hi)
		if x.Cmp(lo2) < 0 || x.Cmp(hi2) > 0 {
			t.Fatalf("prec = %d, Sqrt(%s) = %s is not correctly rounded", prec, x.Text('p', 0), got.Text('p', 0))
		}

		// accuracy must match the position of x relative to got²
		sq := new(Float).SetPrec(2*prec+2).Mul(got, got)
		want := Exact
		switch sq.Cmp(x) {
		case -1:
			want = Below
		case 1:
			want = Above
		}
		if got.Acc() != want {
			t.Errorf("prec = %d, Sqrt(%s): got accuracy %s; want %s", prec, x.Text('p', 0), got.Acc(), want)
		}
	}
}

func TestFloatSqrtFloat64(t *testing.T) {
	for _, v := range []float64{2, 3, 0.5, 1e-300, 1.5e300, 12345.678} {
		x := NewFloat(v)
		got := new(Float).SetPrec(53).Sqrt(x)
		f, acc := got.Float64()
		if want := math.Sqrt(v); f != want || acc != Exact {
			t.Errorf("Sqrt(%g) = %g (%s); want %g", v, f, acc, want)
		}
	}
}

func TestFloatSqrtSpecial(t *testing.T) {
	for _, test := range []struct {
		x    *Float
		want *Float
	}{
		{NewFloat(+0), NewFloat(+0)},
		{NewFloat(math.Copysign(0, -1)), NewFloat(math.Copysign(0, -1))},
		{NewFloat(math.Inf(+1)), NewFloat(math.Inf(+1))},
	} {
		got := new(Float).Sqrt(test.x)
		if got.neg != test.want.neg || got.form != test.want.form {
			t.Errorf("Sqrt(%v) = %v (neg: %v); want %v (neg: %v)",
				test.x, got, got.neg, test.want, test.want.neg)
		}
	}
}

// Benchmarks

func BenchmarkFloatSqrt(b *testing.B) {
	for _, prec := range []uint{64, 128, 256, 1e3, 1e4, 1e5, 1e6} {
		x := NewFloat(2)
		z := new(Float).SetPrec(prec)
		b.Run(fmt.Sprintf("%v", prec), func(b *testing.B) {
			b.ReportAllocs()
			for n := 0; n < b.N; n++ {
				z.Sqrt(x)
			}
		})
	}
}
