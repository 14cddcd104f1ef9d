// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package starset

import (
	"sort"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/onsager/crystal"
)

func Test_star01(tst *testing.T) {

	chk.PrintTitle("star01: FCC NN, N=1 -> 1 star of 12")

	cr := crystal.FCC(1.0)
	omega0 := cr.JumpNetwork(0, 0.71)

	ss := New(cr, 0, omega0)
	if err := ss.Generate(1); err != nil {
		tst.Errorf("Generate failed: %v", err)
		return
	}
	if ss.NumStars() != 1 {
		tst.Errorf("expected 1 star, got %d", ss.NumStars())
		return
	}
	if len(ss.Stars[0]) != 12 {
		tst.Errorf("expected star of size 12, got %d", len(ss.Stars[0]))
	}

	// every state must be present in exactly one star, and closed under G
	for si, p := range ss.States {
		if ss.StarOf[si] < 0 {
			tst.Errorf("state %d not assigned to any star", si)
		}
		for _, g := range cr.G {
			gp, err := cr.ActOnPair(g, 0, p)
			if err != nil {
				continue
			}
			if _, ok := ss.Lookup(gp); !ok {
				tst.Errorf("state %v not closed under group action (image %v missing)", p, gp)
			}
		}
	}
}

func Test_star02(tst *testing.T) {

	chk.PrintTitle("star02: FCC NN, N=2 -> 4 stars of sizes 12,6,24,12")

	cr := crystal.FCC(1.0)
	omega0 := cr.JumpNetwork(0, 0.71)

	ss := New(cr, 0, omega0)
	if err := ss.Generate(2); err != nil {
		tst.Errorf("Generate failed: %v", err)
		return
	}
	if ss.NumStars() != 4 {
		tst.Errorf("expected 4 stars, got %d", ss.NumStars())
		return
	}
	var sizes []int
	for _, st := range ss.Stars {
		sizes = append(sizes, len(st))
	}
	sort.Ints(sizes)
	want := []int{6, 12, 12, 24}
	for i := range want {
		if sizes[i] != want[i] {
			tst.Errorf("expected star sizes %v, got %v", want, sizes)
			break
		}
	}
}

func Test_star03(tst *testing.T) {

	chk.PrintTitle("star03: extending with the same N is a no-op")

	cr := crystal.FCC(1.0)
	omega0 := cr.JumpNetwork(0, 0.71)
	ss := New(cr, 0, omega0)
	ss.Generate(1)
	n := len(ss.States)
	ss.Generate(1)
	if len(ss.States) != n {
		tst.Errorf("expected no-op on repeated Generate(1), state count changed %d -> %d", n, len(ss.States))
	}
}

func Test_star04(tst *testing.T) {

	chk.PrintTitle("star04: origin states are excluded unless explicitly added")

	cr := crystal.FCC(1.0)
	omega0 := cr.JumpNetwork(0, 0.71)
	ss := New(cr, 0, omega0)
	ss.Generate(1)

	for _, p := range ss.States {
		if p.IsZero() {
			tst.Errorf("zero state present before AddOriginStates")
		}
	}
	n := len(ss.States)
	nstars := ss.NumStars()

	if err := ss.AddOriginStates(); err != nil {
		tst.Errorf("AddOriginStates failed: %v", err)
		return
	}
	if len(ss.States) != n+len(cr.Basis[0]) {
		tst.Errorf("expected %d new origin states, got %d -> %d", len(cr.Basis[0]), n, len(ss.States))
	}
	if ss.NumStars() != nstars+1 {
		tst.Errorf("expected one new origin star, got %d -> %d", nstars, ss.NumStars())
	}

	// idempotent: calling again changes nothing
	n2, nstars2 := len(ss.States), ss.NumStars()
	if err := ss.AddOriginStates(); err != nil {
		tst.Errorf("second AddOriginStates failed: %v", err)
	}
	if len(ss.States) != n2 || ss.NumStars() != nstars2 {
		tst.Errorf("AddOriginStates not idempotent: (%d,%d) -> (%d,%d)", n2, nstars2, len(ss.States), ss.NumStars())
	}
}
