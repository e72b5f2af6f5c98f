// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package context

import (
	"sync"

	"github.com/db47h/bigfloat"
)

// defaults holds the process-wide default precision: a base value, shadowed by
// the most recent scope pushed by PushDefaultPrec.
var defaults = struct {
	sync.RWMutex
	prec   uint
	scopes []*scope
}{
	prec: bigfloat.DefaultPrec,
}

type scope struct {
	prec uint
}

// DefaultPrec returns the current default precision in bits.
func DefaultPrec() uint {
	defaults.RLock()
	defer defaults.RUnlock()
	if n := len(defaults.scopes); n > 0 {
		return defaults.scopes[n-1].prec
	}
	return defaults.prec
}

// SetDefaultPrec sets the default precision to prec bits. It returns an
// InvalidPrecision error if prec is not a valid precision.
//
// Values built at the default precision before the call keep their
// precision. If scopes pushed with PushDefaultPrec are active, SetDefaultPrec
// changes the precision of the innermost one: the value is lost when that
// scope is popped.
func SetDefaultPrec(prec uint) error {
	if err := bigfloat.ValidPrec(prec); err != nil {
		return err
	}
	defaults.Lock()
	defer defaults.Unlock()
	if n := len(defaults.scopes); n > 0 {
		defaults.scopes[n-1].prec = prec
		return nil
	}
	defaults.prec = prec
	return nil
}

// PushDefaultPrec overrides the default precision with prec until the returned
// pop function is called. Scopes nest: popping a scope restores the value of
// the most recent scope still active, or the value in effect before the first
// scope was pushed.
// Scopes may be popped in any order, and calling pop more than once has no
// further effect.
//
// It returns an InvalidPrecision error and a no-op pop function if prec is not
// a valid precision.
//
//	pop, err := context.PushDefaultPrec(256)
//	if err != nil {
//		return err
//	}
//	defer pop()
func PushDefaultPrec(prec uint) (pop func(), err error) {
	if err := bigfloat.ValidPrec(prec); err != nil {
		return func() {}, err
	}
	s := &scope{prec: prec}
	defaults.Lock()
	defaults.scopes = append(defaults.scopes, s)
	defaults.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			defaults.Lock()
			defer defaults.Unlock()
			for i := len(defaults.scopes) - 1; i >= 0; i-- {
				if defaults.scopes[i] == s {
					defaults.scopes = append(defaults.scopes[:i], defaults.scopes[i+1:]...)
					break
				}
			}
		})
	}, nil
}
