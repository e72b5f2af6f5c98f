// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demo computes the sections of the mpfdemo report.
package demo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/db47h/bigfloat"
	bfcontext "github.com/db47h/bigfloat/context"
	"github.com/db47h/bigfloat/mpf"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// Config holds the parameters of a report.
type Config struct {
	Prec     uint         // default precision in bits
	Terms    int          // number of terms of the Leibniz series
	Digits   int          // digits after the decimal point
	Notation mpf.Notation // output notation
}

// A Section is a titled block of output lines.
type Section struct {
	Title string
	Lines []string
}

// checkEvery is the number of Leibniz terms summed between two cancellation
// checks.
const checkEvery = 1 << 16

// Run computes all sections of the report with the default precision set to
// cfg.Prec. Sections are computed concurrently and returned in report order.
func Run(ctx context.Context, log *slog.Logger, cfg Config) ([]Section, error) {
	if err := bigfloat.ValidPrec(cfg.Prec); err != nil {
		return nil, err
	}
	if cfg.Terms < 1 {
		return nil, fmt.Errorf("number of terms must be positive, got %d", cfg.Terms)
	}
	pop, err := bfcontext.PushDefaultPrec(cfg.Prec)
	if err != nil {
		return nil, err
	}
	defer pop()

	r := report{log: log, cfg: cfg}
	builders := []func(context.Context) (Section, error){
		r.basic,
		r.leibniz,
		r.functions,
		r.doubleVsMP,
		r.precisions,
		r.defaultPrec,
	}
	sections := make([]Section, len(builders))
	g, ctx := errgroup.WithContext(ctx)
	for i, build := range builders {
		i, build := i, build
		g.Go(func() (err error) {
			sections[i], err = build(ctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

// Write prints sections to w.
func Write(w io.Writer, sections []Section) error {
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n", s.Title); err != nil {
			return err
		}
		for _, l := range s.Lines {
			if _, err := fmt.Fprintln(w, l); err != nil {
				return err
			}
		}
	}
	return nil
}

type report struct {
	log *slog.Logger
	cfg Config
}

func (r *report) text(x mpf.Float) string {
	return x.Text(r.cfg.Digits, r.cfg.Notation)
}

func (r *report) basic(context.Context) (Section, error) {
	a, b := mpf.New(1), mpf.New(3)
	q, err := a.Quo(b)
	if err != nil {
		return Section{}, err
	}
	return Section{
		Title: "Basic arithmetic",
		Lines: []string{
			"a       = " + r.text(a),
			"b       = " + r.text(b),
			"a + b   = " + r.text(a.Add(b)),
			"a - b   = " + r.text(a.Sub(b)),
			"a × b   = " + r.text(a.Mul(b)),
			"a / b   = " + r.text(q),
		},
	}, nil
}

func (r *report) leibniz(ctx context.Context) (Section, error) {
	s, err := Leibniz(ctx, r.log, r.cfg.Terms, r.cfg.Prec)
	if err != nil {
		return Section{}, err
	}
	pi := mpf.Pi()
	return Section{
		Title: fmt.Sprintf("Leibniz series, %s terms", humanize.Comma(int64(r.cfg.Terms))),
		Lines: []string{
			"sum     = " + r.text(s),
			"π       = " + r.text(pi),
			"error   = " + pi.Sub(s).Text(3, mpf.Scientific),
		},
	}, nil
}

// Leibniz returns the sum of the first terms terms of the Leibniz series
// 4 - 4/3 + 4/5 - 4/7 + ... computed with prec bits. It returns ctx.Err() if
// ctx is done before the summation completes.
func Leibniz(ctx context.Context, log *slog.Logger, terms int, prec uint) (mpf.Float, error) {
	four := bigfloat.NewFloat(4)
	sum := new(bigfloat.Float).SetPrec(prec)
	t := new(bigfloat.Float).SetPrec(prec)
	d := new(bigfloat.Float)
	for k := 0; k < terms; k++ {
		if k%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return mpf.Float{}, err
			}
			if k > 0 {
				log.Debug("leibniz", "terms", humanize.Comma(int64(k)), "of", humanize.Comma(int64(terms)))
			}
		}
		t.Quo(four, d.SetInt64(int64(2*k+1)))
		if k&1 != 0 {
			t.Neg(t)
		}
		sum.Add(sum, t)
	}
	log.Info("leibniz done", "terms", humanize.Comma(int64(terms)), "prec", prec)
	return mpf.NewBig(sum)
}

func (r *report) functions(context.Context) (Section, error) {
	two := mpf.New(2)
	sqrt, err := mpf.Sqrt(two)
	if err != nil {
		return Section{}, err
	}
	log, err := mpf.Log(two)
	if err != nil {
		return Section{}, err
	}
	return Section{
		Title: "Functions of 2",
		Lines: []string{
			"sqrt(2) = " + r.text(sqrt),
			"exp(2)  = " + r.text(mpf.Exp(two)),
			"log(2)  = " + r.text(log),
			"sin(2)  = " + r.text(mpf.Sin(two)),
			"cos(2)  = " + r.text(mpf.Cos(two)),
		},
	}, nil
}

func (r *report) doubleVsMP(context.Context) (Section, error) {
	q, err := mpf.New(1).Quo(mpf.New(3))
	if err != nil {
		return Section{}, err
	}
	double := strconv.FormatFloat(1.0/3, 'f', r.cfg.Digits, 64)
	if r.cfg.Notation == mpf.Scientific {
		double = strconv.FormatFloat(1.0/3, 'e', r.cfg.Digits, 64)
	}
	return Section{
		Title: "Double vs multiple precision",
		Lines: []string{
			"double  1/3 = " + double,
			fmt.Sprintf("%d bits 1/3 = %s", q.Prec(), r.text(q)),
		},
	}, nil
}

// thirds lists the precisions and digit counts of the precision comparison.
var thirds = []struct {
	prec   uint
	digits int
}{
	{50, 20},
	{200, 30},
	{1000, 70},
}

func (r *report) precisions(context.Context) (Section, error) {
	s := Section{Title: "Precision comparison"}
	for _, t := range thirds {
		one, err := mpf.NewIntPrec(1, t.prec)
		if err != nil {
			return Section{}, err
		}
		three, err := mpf.NewIntPrec(3, t.prec)
		if err != nil {
			return Section{}, err
		}
		q, err := one.Quo(three)
		if err != nil {
			return Section{}, err
		}
		s.Lines = append(s.Lines, fmt.Sprintf("%4d bits: %s", t.prec, q.Text(t.digits, mpf.Fixed)))
	}
	return s, nil
}

func (r *report) defaultPrec(context.Context) (Section, error) {
	return Section{
		Title: "Default precision",
		Lines: []string{
			fmt.Sprintf("%d bits", bfcontext.DefaultPrec()),
		},
	}, nil
}
