// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bigfloat

import (
	"github.com/zeebo/errs"
)

// Error classes for the conditions reported by this module. Use Has to check
// whether an error belongs to a class:
//
//	if bigfloat.DomainError.Has(err) {
//		// ...
//	}
var (
	// InvalidPrecision is the class of errors returned when a precision
	// outside [MinValidPrec, MaxPrec] is requested.
	InvalidPrecision = errs.Class("invalid precision")

	// DivisionByZero is the class of errors for divisions by zero.
	DivisionByZero = errs.Class("division by zero")

	// DomainError is the class of errors for operands outside of the domain
	// of a function, like the square root of a negative number.
	DomainError = errs.Class("domain error")
)

// ValidPrec returns an InvalidPrecision error if prec cannot be used as an
// explicit precision.
func ValidPrec(prec uint) error {
	if prec < MinValidPrec || uint64(prec) > MaxPrec {
		return InvalidPrecision.New("%d bits is outside of [%d, %d]", prec, MinValidPrec, uint64(MaxPrec))
	}
	return nil
}

// An ErrNaN panic is raised by a Float operation that would lead to
// a NaN under IEEE-754 rules. An ErrNaN implements the error interface.
type ErrNaN struct {
	Msg   string
	Class *errs.Class
}

func (err ErrNaN) Error() string {
	return err.Msg
}

// Unwrap returns err as an error of its class. It returns nil if err has no
// class.
func (err ErrNaN) Unwrap() error {
	if err.Class == nil {
		return nil
	}
	return err.Class.New("%s", err.Msg)
}

func domainNaN(msg string) ErrNaN {
	return ErrNaN{Msg: msg, Class: &DomainError}
}
