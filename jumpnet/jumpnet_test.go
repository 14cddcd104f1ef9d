// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jumpnet

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/starset"
)

func buildFCC(tst *testing.T, n int) *starset.StarSet {
	cr := crystal.FCC(1.0)
	omega0 := cr.JumpNetwork(0, 0.71)
	ss := starset.New(cr, 0, omega0)
	if err := ss.Generate(n); err != nil {
		tst.Fatalf("Generate failed: %v", err)
	}
	return ss
}

func Test_jumpnet01(tst *testing.T) {

	chk.PrintTitle("jumpnet01: omega2 endpoints are the negated origin state")

	ss := buildFCC(tst, 2)
	net := Omega2(ss)
	if len(net.Jumps) == 0 {
		tst.Errorf("expected at least one omega2 orbit")
		return
	}
	for _, orbit := range net.Jumps {
		for _, im := range orbit {
			psI := ss.States[im.IS]
			psF := ss.States[im.FS]
			neg := psI.Neg()
			if !psF.Equal(neg) {
				tst.Errorf("omega2 FS is not the negated origin state: i=%v f=%v", psI, psF)
			}
		}
	}
}

func Test_jumpnet02(tst *testing.T) {

	chk.PrintTitle("jumpnet02: omega1 reversal invariant")

	ss := buildFCC(tst, 2)
	net := Omega1(ss)
	if len(net.Jumps) == 0 {
		tst.Errorf("expected at least one omega1 orbit")
		return
	}
	pairs := map[[2]int][3]float64{}
	for _, orbit := range net.Jumps {
		for _, im := range orbit {
			pairs[[2]int{im.IS, im.FS}] = im.Dx
		}
	}
	for k, dx := range pairs {
		rev := [2]int{k[1], k[0]}
		rdx, ok := pairs[rev]
		if !ok {
			tst.Errorf("reverse jump %v missing for forward jump %v", rev, k)
			continue
		}
		for d := 0; d < 3; d++ {
			if abs(rdx[d]+dx[d]) > 1e-8 {
				tst.Errorf("reverse jump dx mismatch: %v vs -%v", rdx, dx)
			}
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
