// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystal

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_crystal01(tst *testing.T) {

	chk.PrintTitle("crystal01: FCC point group and NN jump network")

	cr := FCC(1.0)
	if len(cr.G) != 48 {
		tst.Errorf("expected 48 operations in the FCC point group, got %d", len(cr.G))
	}

	jn := cr.JumpNetwork(0, 0.71) // <110>/2 * a=1 has length ~0.707
	if len(jn) != 1 {
		tst.Errorf("expected 1 symmetry-unique FCC NN jump type, got %d", len(jn))
		return
	}
	if len(jn[0]) != 12 {
		tst.Errorf("expected 12 images in the FCC NN orbit, got %d", len(jn[0]))
	}
}

func Test_crystal02(tst *testing.T) {

	chk.PrintTitle("crystal02: BCC point group and NN jump network")

	cr := BCC(1.0)
	if len(cr.G) != 48 {
		tst.Errorf("expected 48 operations in the BCC point group, got %d", len(cr.G))
	}

	jn := cr.JumpNetwork(0, 0.88) // <111>/2 * a=1 has length sqrt(3)/2 ~ 0.866
	if len(jn) != 1 {
		tst.Errorf("expected 1 symmetry-unique BCC NN jump type, got %d", len(jn))
		return
	}
	if len(jn[0]) != 8 {
		tst.Errorf("expected 8 images in the BCC NN orbit, got %d", len(jn[0]))
	}
}

func Test_crystal03(tst *testing.T) {

	chk.PrintTitle("crystal03: group action preserves |dx|^2")

	cr := FCC(1.0)
	jn := cr.JumpNetwork(0, 0.71)
	p := jn[0][0]
	for _, g := range cr.G {
		gp, err := cr.ActOnPair(g, 0, p)
		if err != nil {
			tst.Errorf("ActOnPair failed: %v", err)
			return
		}
		if gp.Dx2() < p.Dx2()-1e-6 || gp.Dx2() > p.Dx2()+1e-6 {
			tst.Errorf("group action changed |dx|^2: %g -> %g", p.Dx2(), gp.Dx2())
		}
	}
}
