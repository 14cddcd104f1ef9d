// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffuser

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/gf"
	"github.com/cpmech/onsager/jumpnet"
)

func buildFCCOracle(cr *crystal.Crystal, ngrid int) *gf.BZOracle {
	return gf.New(cr, 0, jumpnet.WrapOmega0(cr.JumpNetwork(0, 0.71)), ngrid)
}

func buildFCCDiffuser(tst *testing.T) *Diffuser {
	cr := crystal.FCC(1.0)
	sitelist := cr.SiteList(0)
	omega0 := cr.JumpNetwork(0, 0.71)
	oracle := buildFCCOracle(cr, 5)
	d, err := New(cr, 0, sitelist, omega0, 1, oracle)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	return d
}

func Test_diffuser01(tst *testing.T) {

	chk.PrintTitle("diffuser01: FCC thermodynamic/kinetic shells and networks are non-empty")

	d := buildFCCDiffuser(tst)
	if d.Thermo.NumStars() == 0 || d.Kin.NumStars() == 0 {
		tst.Errorf("expected non-empty thermodynamic and kinetic shells")
	}
	if len(d.Net1.Jumps) == 0 {
		tst.Errorf("expected a non-empty omega1 network")
	}
	if d.VS.NumVStars() == 0 {
		tst.Errorf("expected a non-empty vector-star basis")
	}
	// Thermo never gets AddOriginStates (only Kin does, for the vector-star
	// origin branch), so none of its stars are the zero state.
	il := d.InteractList()
	if len(il) != d.Thermo.NumStars() {
		tst.Errorf("expected InteractList to cover every thermodynamic star, got %d of %d", len(il), d.Thermo.NumStars())
	}
}

func Test_diffuser02(tst *testing.T) {

	chk.PrintTitle("diffuser02: Lij runs end-to-end and returns finite, symmetric L_vv")

	d := buildFCCDiffuser(tst)
	pe := d.MakeTracerPreEne()
	bFV, bFS, bFSV, bFT0, bFT1, bFT2 := PreEne2BetaFree(1.0, pe)

	Lvv, Lss, Lsv, Lvv1, err := d.Lij(bFV, bFS, bFSV, bFT0, bFT1, bFT2)
	if err != nil {
		tst.Fatalf("Lij failed: %v", err)
	}

	for _, T := range [][3][3]float64{Lvv, Lss, Lsv, Lvv1} {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if math.IsNaN(T[i][j]) || math.IsInf(T[i][j], 0) {
					tst.Fatalf("expected finite tensor entries, got %v", T)
				}
			}
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(Lvv[i][j]-Lvv[j][i]) > 1e-9 {
				tst.Errorf("expected L_vv symmetric, got %v", Lvv)
			}
		}
	}
	if math.Abs(Lvv[0][0]-Lvv[1][1]) > 1e-8 || math.Abs(Lvv[1][1]-Lvv[2][2]) > 1e-8 {
		tst.Errorf("expected isotropic L_vv for cubic FCC, got %v", Lvv)
	}
}

func Test_diffuser03(tst *testing.T) {

	chk.PrintTitle("diffuser03: OmegaList and PreEne2BetaFree shapes agree with the networks")

	d := buildFCCDiffuser(tst)
	jl1, err := d.OmegaList(1)
	if err != nil {
		tst.Fatalf("OmegaList(1) failed: %v", err)
	}
	if len(jl1) != len(d.Net1.Jumps) {
		tst.Errorf("expected %d omega1 entries, got %d", len(d.Net1.Jumps), len(jl1))
	}
	if _, err := d.OmegaList(3); err == nil {
		tst.Errorf("expected an error for an invalid omega index")
	}

	pe := d.MakeLIMBPreEne(
		ones(len(d.SiteList)), zeros(len(d.SiteList)),
		ones(len(d.SiteList)), zeros(len(d.SiteList)),
		ones(d.Thermo.NumStars()), zeros(d.Thermo.NumStars()),
		1.0,
	)
	bFV, bFS, bFSV, bFT0, bFT1, bFT2 := PreEne2BetaFree(1.0, pe)
	if len(bFV) != len(d.SiteList) || len(bFT1) != len(d.Net1.Jumps) || len(bFT2) != len(d.Net2.Jumps) {
		tst.Errorf("expected PreEne2BetaFree shapes to match the diffuser's networks")
	}
	if len(bFS) != len(d.SiteList) || len(bFSV) != d.Thermo.NumStars() || len(bFT0) != len(d.Omega0) {
		tst.Errorf("expected the remaining PreEne2BetaFree shapes to match too")
	}
}

// isotopicCorrelationFactor builds the crystal's isotopic-tracer scenario
// (spec.md §8 property 15 and its "Concrete scenario" worked examples) at
// Nthermo=2, kT=1, and returns Lvv, Lss, Lsv and the correlation factor
// f0 = -Lsv[0][0]/Lvv[0][0].
func isotopicCorrelationFactor(tst *testing.T, cr *crystal.Crystal, cutoff float64) (Lvv, Lss, Lsv [3][3]float64, f0 float64) {
	sitelist := cr.SiteList(0)
	omega0 := cr.JumpNetwork(0, cutoff)
	oracle := gf.New(cr, 0, jumpnet.WrapOmega0(omega0), 11)
	d, err := New(cr, 0, sitelist, omega0, 2, oracle)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	pe := d.MakeTracerPreEne()
	bFV, bFS, bFSV, bFT0, bFT1, bFT2 := PreEne2BetaFree(1.0, pe)
	Lvv, Lss, Lsv, _, err = d.Lij(bFV, bFS, bFSV, bFT0, bFT1, bFT2)
	if err != nil {
		tst.Fatalf("Lij failed: %v", err)
	}
	f0 = -Lsv[0][0] / Lvv[0][0]
	return
}

func Test_diffuser04(tst *testing.T) {

	chk.PrintTitle("diffuser04: isotopic-tracer identity L_ss+L_sv ~= 0 (spec.md §8 property 15, FCC/BCC)")

	cases := []struct {
		name   string
		cr     *crystal.Crystal
		cutoff float64
		wantF0 float64
	}{
		{"FCC", crystal.FCC(1.0), 0.71, 0.7815},
		{"BCC", crystal.BCC(1.0), 0.87, 0.7272},
	}

	for _, c := range cases {
		Lvv, Lss, Lsv, f0 := isotopicCorrelationFactor(tst, c.cr, c.cutoff)

		tol := 1e-2 * math.Abs(Lvv[0][0])
		if tol == 0 {
			tol = 1e-6
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if math.Abs(Lss[i][j]+Lsv[i][j]) > tol {
					tst.Errorf("%s: expected L_ss+L_sv ~= 0 (isotopic tracer identity), got Lss=%v Lsv=%v", c.name, Lss, Lsv)
				}
			}
		}

		// The correlation factor's exact value depends on the Brillouin-zone
		// quadrature resolution (gf.BZOracle approximates the reference's
		// analytic GF, see DESIGN.md); this checks the right regime, not an
		// exact match.
		if math.Abs(f0-c.wantF0) > 0.3 {
			tst.Errorf("%s: expected correlation factor f0 ~ %g, got %g", c.name, c.wantF0, f0)
		}
	}
}
