// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expand

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/jumpnet"
	"github.com/cpmech/onsager/starset"
	"github.com/cpmech/onsager/vstar"
)

func Test_expand01(tst *testing.T) {

	chk.PrintTitle("expand01: bare diffusivity of the FCC NN shell is isotropic")

	cr := crystal.FCC(1.0)
	orbits := cr.JumpNetwork(0, 0.71)
	net := &jumpnet.Network{}
	for _, orbit := range orbits {
		var images []jumpnet.Image
		for _, p := range orbit {
			images = append(images, jumpnet.Image{IS: 0, FS: 0, Dx: p.Dx})
		}
		net.Jumps = append(net.Jumps, images)
		net.JumpType = append(net.JumpType, 0)
	}

	D0 := BuildBareDiffusivity(net)
	if len(D0) != 1 {
		tst.Fatalf("expected 1 jump type, got %d", len(D0))
	}
	T := D0[0]
	if abs(T[0][0]-T[1][1]) > 1e-8 || abs(T[1][1]-T[2][2]) > 1e-8 {
		tst.Errorf("expected isotropic diagonal for cubic symmetry, got %v", T)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i != j && abs(T[i][j]) > 1e-8 {
				tst.Errorf("expected zero off-diagonal for cubic symmetry, got %v", T)
			}
		}
	}
}

func Test_expand02(tst *testing.T) {

	chk.PrintTitle("expand02: GF expansion has consistent shape and projects linearly")

	cr := crystal.FCC(1.0)
	omega0 := cr.JumpNetwork(0, 0.71)
	ss := starset.New(cr, 0, omega0)
	ss.Generate(1)
	vs := vstar.New(ss)

	gfe, err := BuildGF(vs)
	if err != nil {
		tst.Fatalf("BuildGF failed: %v", err)
	}
	n := vs.NumVStars()
	if len(gfe.Coef) != n {
		tst.Fatalf("expected %d rows, got %d", n, len(gfe.Coef))
	}
	nk := gfe.GFStars.NumStars()
	for a := 0; a < n; a++ {
		if len(gfe.Coef[a]) != n {
			tst.Errorf("expected %d cols at row %d, got %d", n, a, len(gfe.Coef[a]))
		}
		for b := 0; b < n; b++ {
			if len(gfe.Coef[a][b]) != nk {
				tst.Errorf("expected %d GF stars, got %d", nk, len(gfe.Coef[a][b]))
			}
		}
	}

	GF := make([]float64, nk)
	for k := range GF {
		GF[k] = float64(k + 1)
	}
	G0a := gfe.Project(GF)
	GF2 := make([]float64, nk)
	for k := range GF2 {
		GF2[k] = 2 * GF[k]
	}
	G0b := gfe.Project(GF2)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if abs(G0b[a][b]-2*G0a[a][b]) > 1e-8 {
				tst.Errorf("Project not linear at (%d,%d): %g vs %g", a, b, G0b[a][b], 2*G0a[a][b])
			}
		}
	}
}

func Test_expand03(tst *testing.T) {

	chk.PrintTitle("expand03: rate and bias expansion escape terms are nonpositive and well-shaped")

	cr := crystal.FCC(1.0)
	omega0 := cr.JumpNetwork(0, 0.71)
	ss := starset.New(cr, 0, omega0)
	ss.Generate(2)
	vs := vstar.New(ss)
	net := jumpnet.Omega1(ss)
	if len(net.Jumps) == 0 {
		tst.Fatalf("expected at least one omega1 jump orbit")
	}

	rate := BuildRate(vs, net, len(omega0))
	for a := range rate.Escape {
		for k := range rate.Escape[a] {
			if rate.Escape[a][k] > 1e-12 {
				tst.Errorf("expected nonpositive escape term, got %g at (%d,%d)", rate.Escape[a][k], a, k)
			}
		}
	}

	bias := BuildBias(vs, net, len(omega0))
	if len(bias.Expand) != vs.NumVStars() {
		tst.Errorf("expected %d bias rows, got %d", vs.NumVStars(), len(bias.Expand))
	}
	if len(bias.Expand) > 0 && len(bias.Expand[0]) != len(net.Jumps) {
		tst.Errorf("expected %d bias columns, got %d", len(net.Jumps), len(bias.Expand[0]))
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
