// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatText(t *testing.T) {
	for _, test := range []struct {
		x      string
		prec   uint // 0 selects 1000 bits
		format byte
		digits int
		want   string
	}{
		{"0", 0, 'f', 0, "0"},
		{"-0", 0, 'f', 1, "-0.0"},
		{"-0", 0, 'g', 10, "-0"},
		{"0", 0, 'e', 2, "0.00e+00"},
		{"1", 0, 'f', 2, "1.00"},
		{"-1", 0, 'f', 2, "-1.00"},
		{"1.5", 0, 'f', 0, "2"},
		{"2.5", 0, 'f', 0, "2"},
		{"0.125", 0, 'f', 2, "0.12"},
		{"0.375", 0, 'f', 2, "0.38"},
		{"9.999", 0, 'f', 2, "10.00"},
		{"1e-10", 0, 'f', 3, "0.000"},
		{"0.001", 0, 'f', 5, "0.00100"},
		{"12345", 0, 'f', -1, "12345"},
		{"123.456", 0, 'f', -1, "123.456"},

		{"1234.5678", 0, 'e', 3, "1.235e+03"},
		{"1234.5678", 0, 'E', 3, "1.235E+03"},
		{"1e-10", 0, 'e', 2, "1.00e-10"},
		{"9.5", 0, 'e', 0, "1e+01"},
		{"8.5", 0, 'e', 0, "8e+00"},
		{"123.456", 0, 'e', -1, "1.23456e+02"},
		{"1e100", 0, 'e', -1, "1e+100"},

		{"123456", 0, 'g', 3, "1.23e+05"},
		{"0.000012345", 0, 'g', 3, "1.23e-05"},
		{"0.0012345", 0, 'g', 3, "0.00123"},
		{"100", 0, 'g', 10, "100"},
		{"1e100", 0, 'g', -1, "1e+100"},
		{"1e-5", 0, 'g', -1, "1e-05"},
		{"1e-5", 0, 'G', -1, "1E-05"},
		{"0.1", 53, 'g', -1, "0.1"},
		{"0.1", 53, 'g', 20, "0.10000000000000000555"},
		{"0.1", 24, 'g', -1, "0.1"},
		{"0.1", 24, 'g', 12, "0.10000000149"},

		{"Inf", 0, 'f', 2, "+Inf"},
		{"-Inf", 0, 'g', 5, "-Inf"},
		{"+Inf", 0, 'p', 0, "+Inf"},

		{"0", 0, 'b', 0, "0"},
		{"-0", 0, 'b', 0, "-0"},
		{"1", 53, 'b', 0, "4503599627370496p-52"},
		{"3", 4, 'b', 0, "12p-2"},
		{"-0.5", 4, 'b', 0, "-8p-4"},

		{"0", 0, 'p', 0, "0"},
		{"0.5", 0, 'p', 0, "0x.8p+0"},
		{"-1", 0, 'p', 0, "-0x.8p+1"},
		{"3", 0, 'p', 0, "0x.cp+2"},
		{"1023", 0, 'p', 0, "0x.ffcp+10"},
		{"0x1p-1000", 0, 'p', 0, "0x.8p-999"},

		{"1", 0, 'x', 0, "%x"},
		{"-1", 0, 'x', 0, "%x"},
	} {
		prec := test.prec
		if prec == 0 {
			prec = 1000
		}
		x, _, err := ParseFloat(test.x, 0, prec, ToNearestEven)
		if err != nil {
			t.Fatalf("%s: %v", test.x, err)
		}
		if got := x.Text(test.format, test.digits); got != test.want {
			t.Errorf("%s (%d bits).Text('%c', %d) = %s; want %s", test.x, prec, test.format, test.digits, got, test.want)
		}
	}
}

// TestFloatTextFloat64 checks decimal output with an explicit number of
// digits against strconv for the exact values of random float64s.
func TestFloatTextFloat64(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 2000; i++ {
		f := math.Float64frombits(rnd.Uint64())
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		x := NewFloat(f)
		for _, format := range []byte{'e', 'f', 'g'} {
			digits := rnd.Intn(25)
			want := strconv.FormatFloat(f, format, digits, 64)
			if got := x.Text(format, digits); got != want {
				t.Fatalf("%s.Text('%c', %d) = %s; want %s", x.Text('p', 0), format, digits, got, want)
			}
		}
	}
}

func TestFloatTextShortest(t *testing.T) {
	for _, f := range []float64{
		0.1,
		0.2,
		0.3,
		1.0 / 3,
		2.0 / 3,
		1e23,
		123456789,
		1.7976931348623157e308,
		3.14159,
		math.Pi,
		math.E,
		1e-7,
		123.456,
		5e-300,
		-2.5e-5,
		100,
		1e21,
	} {
		x := NewFloat(f)
		want := strconv.FormatFloat(f, 'g', -1, 64)
		if got := x.Text('g', -1); got != want {
			t.Errorf("%g: got %s; want %s", f, got, want)
		}

		// shortest output parses back to the same value
		y, _, err := ParseFloat(x.Text('e', -1), 0, 53, ToNearestEven)
		if err != nil {
			t.Fatal(err)
		}
		if y.Cmp(x) != 0 {
			t.Errorf("%g: %s does not round trip", f, x.Text('e', -1))
		}
	}
}

func TestFloatFormat(t *testing.T) {
	for _, test := range []struct {
		format string
		value  any // float32, float64, or string (== 512bit *Float)
		want   string
	}{
		// from fmt/fmt_test.go
		{"%+.3e", 0.0, "+0.000e+00"},
		{"%+.3e", 1.0, "+1.000e+00"},
		{"%+.3f", -1.0, "-1.000"},
		{"%+.3F", -1.0, "-1.000"},
		{"%+07.2f", 1.0, "+001.00"},
		{"%+07.2f", -1.0, "-001.00"},
		{"%+10.2f", +1.0, "     +1.00"},
		{"%+10.2f", -1.0, "     -1.00"},
		{"% .3E", -1.0, "-1.000E+00"},
		{"% .3e", 1.0, " 1.000e+00"},
		{"%+.3g", 0.0, "+0"},
		{"%+.3g", 1.0, "+1"},
		{"%+.3g", -1.0, "-1"},
		{"% .3g", -1.0, "-1"},
		{"% .3g", 1.0, " 1"},
		{"%-8.3f", 1.25, "1.250   "},
		{"%8.3f", 1.25, "   1.250"},
		{"%08.3f", -1.25, "-001.250"},

		// other formats
		{"%v", 0.0, "0"},
		{"%v", 1.0, "1"},
		{"%+v", 1.0, "+1"},
		{"%v", -1.0, "-1"},
		{"% v", 1.0, " 1"},
		{"%.3g", 1.23456, "1.23"},
		{"%e", 1000.0, "1.000000e+03"},
		{"%E", 1000.0, "1.000000E+03"},
		{"%f", 1.0 / 3, "0.333333"},
		{"%F", 2.5, "2.500000"},
		{"%g", 100000.0, "100000"},
		{"%g", 1e6, "1e+06"},
		{"%g", float32(0.1), "0.1"},
		{"%.20g", "1", "1"},
		{"%.60f", "1", "1.000000000000000000000000000000000000000000000000000000000000"},

		// infinities
		{"%10v", math.Inf(1), "      +Inf"},
		{"%-10v", math.Inf(-1), "-Inf      "},
		{"%010v", math.Inf(1), "      +Inf"},
		{"% f", math.Inf(1), " Inf"},
		{"%+g", math.Inf(-1), "-Inf"},

		// binary formats
		{"%b", 1.0, "4503599627370496p-52"},
		{"%p", 1.0, "0x.8p+1"},
		{"%.3p", -0.25, "-0x.8p-1"},

		// unsupported verbs
		{"%x", 1.0, "%!x(*bigfloat.Float=1)"},
		{"%s", -2.0, "%!s(*bigfloat.Float=-2)"},
	} {
		var x *Float
		switch v := test.value.(type) {
		case float32:
			x = new(Float).SetPrec(24).SetFloat64(float64(v))
		case float64:
			x = NewFloat(v)
		case string:
			x = new(Float).SetPrec(512)
			x.SetString(v)
		}
		assert.Equal(t, test.want, fmt.Sprintf(test.format, x), test.format)
	}
}

func BenchmarkFloatText(b *testing.B) {
	x := new(Float).SetPrec(1000)
	x.SetRat(big.NewRat(1, 3))
	for _, format := range []byte{'e', 'f', 'g'} {
		for _, digits := range []int{-1, 10, 100, 300} {
			b.Run(fmt.Sprintf("%c/%d", format, digits), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = x.Text(format, digits)
				}
			})
		}
	}
}
