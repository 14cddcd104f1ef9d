// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstate

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_pstate01(tst *testing.T) {

	chk.PrintTitle("pstate01: associativity and inverse")

	a := PairState{I: 0, J: 1, R: [3]int{1, 0, 0}, Dx: [3]float64{1, 0, 0}}
	b := PairState{I: 1, J: 2, R: [3]int{0, 1, 0}, Dx: [3]float64{0, 1, 0}}
	c := PairState{I: 2, J: 0, R: [3]int{-1, -1, 0}, Dx: [3]float64{-1, -1, 0}}

	ab, err := a.Add(b)
	if err != nil {
		tst.Errorf("a+b failed: %v", err)
		return
	}
	abc1, err := ab.Add(c)
	if err != nil {
		tst.Errorf("(a+b)+c failed: %v", err)
		return
	}
	bc, err := b.Add(c)
	if err != nil {
		tst.Errorf("b+c failed: %v", err)
		return
	}
	abc2, err := a.Add(bc)
	if err != nil {
		tst.Errorf("a+(b+c) failed: %v", err)
		return
	}
	if !abc1.Equal(abc2) {
		tst.Errorf("associativity failed: %v != %v", abc1, abc2)
	}

	// a + (-a) = zero(a.i)
	na := a.Neg()
	sum, err := a.Add(na)
	if err != nil {
		tst.Errorf("a+(-a) failed: %v", err)
		return
	}
	if !sum.Equal(Zero(a.I)) {
		tst.Errorf("a+(-a) != zero: got %v", sum)
	}
	sum2, err := na.Add(a)
	if err != nil {
		tst.Errorf("(-a)+a failed: %v", err)
		return
	}
	if !sum2.Equal(Zero(a.J)) {
		tst.Errorf("(-a)+a != zero: got %v", sum2)
	}
}

func Test_pstate02(tst *testing.T) {

	chk.PrintTitle("pstate02: endpoint subtraction and composability")

	a := PairState{I: 0, J: 2, R: [3]int{2, 0, 0}, Dx: [3]float64{2, 0, 0}}
	b := PairState{I: 0, J: 1, R: [3]int{1, 0, 0}, Dx: [3]float64{1, 0, 0}}

	// b + (a^b) = a
	diff, err := a.Sub(b)
	if err != nil {
		tst.Errorf("a^b failed: %v", err)
		return
	}
	sum, err := b.Add(diff)
	if err != nil {
		tst.Errorf("b+(a^b) failed: %v", err)
		return
	}
	if !sum.Equal(a) {
		tst.Errorf("b+(a^b) != a: got %v want %v", sum, a)
	}

	// mismatched endpoints fail
	bad := PairState{I: 5, J: 6}
	if _, err := a.Add(bad); err == nil {
		tst.Errorf("expected NotComposable error")
	}
}

func Test_pstate03(tst *testing.T) {

	chk.PrintTitle("pstate03: equality ignores dx")

	a := PairState{I: 0, J: 1, R: [3]int{1, 0, 0}, Dx: [3]float64{99, 99, 99}}
	b := PairState{I: 0, J: 1, R: [3]int{1, 0, 0}, Dx: [3]float64{1, 0, 0}}
	if !a.Equal(b) {
		tst.Errorf("expected equal pair states despite differing dx")
	}
	if a.Key() != b.Key() {
		tst.Errorf("expected equal keys")
	}
}
