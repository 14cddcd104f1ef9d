// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package persist

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/diffuser"
	"github.com/cpmech/onsager/gfcache"
)

// stubOracle is a minimal gf.Oracle that never touches the Brillouin-zone
// quadrature, used so persist's tests exercise only the serialization path.
type stubOracle struct{ n int }

func (o *stubOracle) SetRates(pre, bE []float64) error { o.n = len(pre); return nil }
func (o *stubOracle) Eval(R [3]int, i, j int) float64   { return 0 }
func (o *stubOracle) Diffusivity() [3][3]float64        { return [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} }

func buildFCCDiffuser(tst *testing.T) *diffuser.Diffuser {
	cr := crystal.FCC(1.0)
	sitelist := cr.SiteList(0)
	omega0 := cr.JumpNetwork(0, 0.71)
	d, err := diffuser.New(cr, 0, sitelist, omega0, 1, &stubOracle{})
	if err != nil {
		tst.Fatalf("diffuser.New failed: %v", err)
	}
	return d
}

func Test_persist01(tst *testing.T) {

	chk.PrintTitle("persist01: gob Save/Load round-trips a Diffuser's construction inputs")

	d := buildFCCDiffuser(tst)
	d.Cache.Put(gfcache.MakeKey([]float64{1.0}, nil), &gfcache.Entry{GF: []float64{0.1, 0.2}, D0vv: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}})

	var buf bytes.Buffer
	if err := Save(&buf, d, "gob"); err != nil {
		tst.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(&buf, "gob", &stubOracle{})
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}

	if loaded.Chem != d.Chem || len(loaded.SiteList) != len(d.SiteList) || len(loaded.Omega0) != len(d.Omega0) {
		tst.Errorf("expected construction inputs to round-trip, got chem=%d sitelist=%d omega0=%d",
			loaded.Chem, len(loaded.SiteList), len(loaded.Omega0))
	}
	if loaded.Thermo.NumStars() != d.Thermo.NumStars() || loaded.Kin.NumStars() != d.Kin.NumStars() {
		tst.Errorf("expected re-derived shells to match the original")
	}
	if loaded.Cache.Len() != 1 {
		tst.Errorf("expected the warm GF cache entry to round-trip, got %d entries", loaded.Cache.Len())
	}
}

func Test_persist02(tst *testing.T) {

	chk.PrintTitle("persist02: json encoding also round-trips")

	d := buildFCCDiffuser(tst)
	data, err := EncodeBytes(d, "json")
	if err != nil {
		tst.Fatalf("EncodeBytes failed: %v", err)
	}
	loaded, err := Load(bytes.NewReader(data), "json", &stubOracle{})
	if err != nil {
		tst.Fatalf("Load failed: %v", err)
	}
	if loaded.Thermo.NumStars() != d.Thermo.NumStars() {
		tst.Errorf("expected thermodynamic shell to round-trip under json too")
	}
}
