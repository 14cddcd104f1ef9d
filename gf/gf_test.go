// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/jumpnet"
	"github.com/cpmech/onsager/starset"
)

func buildFCCNetwork() (*crystal.Crystal, *jumpnet.Network) {
	cr := crystal.FCC(1.0)
	return cr, jumpnet.WrapOmega0(cr.JumpNetwork(0, 0.71))
}

func Test_gf01(tst *testing.T) {

	chk.PrintTitle("gf01: bare vacancy diffusivity is isotropic for FCC NN hops")

	cr, net := buildFCCNetwork()
	o := New(cr, 0, net, 9)
	if err := o.SetRates([]float64{1.0}, []float64{0.0}); err != nil {
		tst.Fatalf("SetRates failed: %v", err)
	}
	D := o.Diffusivity()
	if math.Abs(D[0][0]-D[1][1]) > 1e-8 || math.Abs(D[1][1]-D[2][2]) > 1e-8 {
		tst.Errorf("expected isotropic diagonal, got %v", D)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j && math.Abs(D[i][j]) > 1e-8 {
				tst.Errorf("expected zero off-diagonal, got %v", D)
			}
		}
	}
}

func Test_gf02(tst *testing.T) {

	chk.PrintTitle("gf02: Eval is finite and symmetric under R -> -R")

	cr, net := buildFCCNetwork()
	o := New(cr, 0, net, 7)
	o.SetRates([]float64{1.0}, []float64{0.0})

	ss := starset.New(cr, 0, cr.JumpNetwork(0, 0.71))
	ss.Generate(1)
	for _, p := range ss.States {
		g := o.Eval(p.R, p.I, p.J)
		if math.IsNaN(g) || math.IsInf(g, 0) {
			tst.Errorf("Eval produced a non-finite value at %v: %g", p, g)
		}
		neg := p.Neg()
		gneg := o.Eval(neg.R, neg.I, neg.J)
		if math.Abs(g-gneg) > 1e-6 {
			tst.Errorf("expected Eval(R) == Eval(-R) by inversion symmetry, got %g vs %g", g, gneg)
		}
	}
}
