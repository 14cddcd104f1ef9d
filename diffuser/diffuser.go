// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffuser implements Component C6: it assembles the thermodynamic
// shell, the vector-star basis, the omega1/omega2 networks and their
// expansions into a single Lij operation that turns per-site and per-jump
// free energies into the L_vv, L_ss, L_sv, L_vv1 Onsager transport tensors
// (spec.md §4.6).
package diffuser

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/expand"
	"github.com/cpmech/onsager/gf"
	"github.com/cpmech/onsager/gfcache"
	"github.com/cpmech/onsager/jumpnet"
	"github.com/cpmech/onsager/pstate"
	"github.com/cpmech/onsager/starset"
	"github.com/cpmech/onsager/vstar"
)

// Diffuser bundles every component built at construction time: the
// thermodynamic and kinetic StarSets, the vector-star basis over the kinetic
// shell, the omega1/omega2 networks and their four expansions. Per §5
// ("Ordering guarantees"), everything here is immutable once New returns;
// only the GF cache mutates afterward.
type Diffuser struct {
	Crystal  *crystal.Crystal
	Chem     int
	SiteList [][]int
	Omega0   [][]pstate.PairState

	Thermo *starset.StarSet // thermodynamic shell, N = nthermo
	Kin    *starset.StarSet // kinetic shell, N = nthermo+1 (§7, OutOfShell)

	VS *vstar.VectorStarSet

	Net1, Net2 *jumpnet.Network

	GFExp  *expand.GFExpansion
	Rate1  *expand.RateExpansion
	Rate2  *expand.RateExpansion
	Bias1  *expand.BiasExpansion
	Bias2  *expand.BiasExpansion

	Oracle gf.Oracle
	Cache  *gfcache.Cache
}

// New builds a Diffuser. sitelist groups symmetry-equivalent mobile-species
// sites (crystal.SiteList(chem)); omega0 is the bare vacancy jump network
// (crystal.JumpNetwork(chem, cutoff)); nthermo is the thermodynamic shell
// count (§4.6). The kinetic shell is grown one step larger than the
// thermodynamic shell, per §7's OutOfShell note, so every omega1/omega2
// endpoint the thermodynamic shell can reach is itself enumerated.
func New(cr *crystal.Crystal, chem int, sitelist [][]int, omega0 [][]pstate.PairState, nthermo int, oracle gf.Oracle) (*Diffuser, error) {
	if nthermo < 1 {
		return nil, chk.Err("diffuser: New: ShellNotInitialized: nthermo must be >= 1, got %d", nthermo)
	}

	thermo := starset.New(cr, chem, omega0)
	if err := thermo.Generate(nthermo); err != nil {
		return nil, err
	}

	kin := starset.New(cr, chem, omega0)
	if err := kin.Generate(nthermo + 1); err != nil {
		return nil, err
	}
	if err := kin.AddOriginStates(); err != nil {
		return nil, err
	}

	vs := vstar.New(kin)

	net1 := jumpnet.Omega1(kin)
	net2 := jumpnet.Omega2(kin)
	net2.SVSVWyckoff = jumpnet.BuildSVSVWyckoff(net2, kin, sitelist)

	gfexp, err := expand.BuildGF(vs)
	if err != nil {
		return nil, err
	}
	rate1 := expand.BuildRate(vs, net1, len(omega0))
	rate2 := expand.BuildRate(vs, net2, len(omega0))
	bias1 := expand.BuildBias(vs, net1, len(omega0))
	bias2 := expand.BuildBias(vs, net2, len(omega0))

	return &Diffuser{
		Crystal: cr, Chem: chem, SiteList: sitelist, Omega0: omega0,
		Thermo: thermo, Kin: kin, VS: vs,
		Net1: net1, Net2: net2,
		GFExp: gfexp, Rate1: rate1, Rate2: rate2, Bias1: bias1, Bias2: bias2,
		Oracle: oracle, Cache: gfcache.New(),
	}, nil
}

// InteractList returns the thermodynamic-shell representatives (§6,
// "interactlist()"): one PairState per thermodynamic star, the non-origin
// solute-vacancy configurations that carry a binding free energy.
func (d *Diffuser) InteractList() []pstate.PairState {
	out := make([]pstate.PairState, 0, d.Thermo.NumStars())
	for _, members := range d.Thermo.Stars {
		ps := d.Thermo.States[members[0]]
		if ps.IsZero() {
			continue
		}
		out = append(out, ps)
	}
	return out
}

// JumpPair is one omega1/omega2 jump-orbit representative, tagged with its
// parent omega0 jump type (§6, "omegalist(1|2)").
type JumpPair struct {
	IS, FS  pstate.PairState
	JumpType int
}

// OmegaList returns the omega1 (which==1) or omega2 (which==2) network's
// per-orbit endpoint pairs and their omega0-type tags.
func (d *Diffuser) OmegaList(which int) ([]JumpPair, error) {
	var net *jumpnet.Network
	switch which {
	case 1:
		net = d.Net1
	case 2:
		net = d.Net2
	default:
		return nil, chk.Err("diffuser: OmegaList: which must be 1 or 2, got %d", which)
	}
	out := make([]JumpPair, len(net.Jumps))
	for k, orbit := range net.Jumps {
		im := orbit[0]
		out[k] = JumpPair{IS: d.Kin.States[im.IS], FS: d.Kin.States[im.FS], JumpType: net.JumpType[k]}
	}
	return out, nil
}

// wyckOf returns the Wyckoff class (index into sitelist) containing site.
func wyckOf(sitelist [][]int, site int) int {
	for w, list := range sitelist {
		for _, s := range list {
			if s == site {
				return w
			}
		}
	}
	return -1
}

// siteProbabilities returns the normalized per-site probabilities proportional
// to exp(-bF[wyck(site)]), one entry per mobile-species sublattice site
// (§4.6 step 2).
func siteProbabilities(sitelist [][]int, nsites int, bF []float64) []float64 {
	raw := make([]float64, nsites)
	var z float64
	for s := 0; s < nsites; s++ {
		w := wyckOf(sitelist, s)
		raw[s] = math.Exp(-bF[w])
		z += raw[s]
	}
	out := make([]float64, nsites)
	if z == 0 {
		return out
	}
	for s := range out {
		out[s] = raw[s] / z
	}
	return out
}

// omega0Rates computes the symmetric omega0 rate per bare jump type (§4.6
// step 3, omega0).
func (d *Diffuser) omega0Rates(bFV, bFT0 []float64) []float64 {
	out := make([]float64, len(d.Omega0))
	for t, orbit := range d.Omega0 {
		rep := orbit[0]
		v1 := wyckOf(d.SiteList, rep.I)
		v2 := wyckOf(d.SiteList, rep.J)
		eF := math.Exp(-bFT0[t] + bFV[v1])
		eB := math.Exp(-bFT0[t] + bFV[v2])
		out[t] = math.Sqrt(eF * eB)
	}
	return out
}

// jumpRates computes the symmetric rate omega[k] = sqrt(omegaF*omegaB) for
// every jump orbit of net (omega1 or omega2), using the kinetic-shell-
// embedded binding free energy bFSV lifted from the thermodynamic shell
// (§4.6 step 3). States beyond the thermodynamic shell are treated as
// unbound (bFSV=0): see DESIGN.md.
//
// When net carries a precomputed SVSVWyckoff table (net.SVSVWyckoff, built by
// jumpnet.BuildSVSVWyckoff for the omega2 network), the per-orbit Wyckoff
// classes are read from it instead of being re-derived from d.Kin.States.
func (d *Diffuser) jumpRates(net *jumpnet.Network, bFS, bFV, bFSV, bFT []float64) []float64 {
	out := make([]float64, len(net.Jumps))
	for k, orbit := range net.Jumps {
		im := orbit[0]
		psI, psF := d.Kin.States[im.IS], d.Kin.States[im.FS]
		var s1, v1, s2, v2 int
		if net.SVSVWyckoff != nil {
			sv := net.SVSVWyckoff[k]
			s1, v1, s2, v2 = sv[0], sv[1], sv[2], sv[3]
		} else {
			s1, v1 = wyckOf(d.SiteList, psI.I), wyckOf(d.SiteList, psI.J)
			s2, v2 = wyckOf(d.SiteList, psF.I), wyckOf(d.SiteList, psF.J)
		}
		eF := -bFT[k] + bFS[s1] + bFV[v1] + d.bfsvAt(psI, bFSV)
		eB := -bFT[k] + bFS[s2] + bFV[v2] + d.bfsvAt(psF, bFSV)
		out[k] = math.Sqrt(math.Exp(eF) * math.Exp(eB))
	}
	return out
}

// bfsvAt returns the thermodynamic-shell binding free energy for ps, 0 if ps
// lies outside the thermodynamic shell (the kinetic shell's one-hop margin).
func (d *Diffuser) bfsvAt(ps pstate.PairState, bFSV []float64) float64 {
	e, ok := d.Thermo.Lookup(ps)
	if !ok {
		return 0
	}
	return bFSV[e.Star]
}

// pairProbabilities computes prob[kin-star] = probS[s]*probV[v]*exp(-bFSV[thermo-star])
// (§4.6 step 2), one entry per kinetic-shell star.
func (d *Diffuser) pairProbabilities(probS, probV, bFSV []float64) []float64 {
	out := make([]float64, d.Kin.NumStars())
	for st, members := range d.Kin.Stars {
		ps := d.Kin.States[members[0]]
		out[st] = probS[ps.I] * probV[ps.J] * math.Exp(-d.bfsvAt(ps, bFSV))
	}
	return out
}

// vstarRep returns a deterministic representative state index for vector
// star alpha (the smallest state index it carries a vector at): Go map
// iteration order is randomized, so the bias/probability lookups below need
// a stable choice of representative.
func (d *Diffuser) vstarRep(alpha int) int {
	best := -1
	for s := range d.VS.Stars[alpha].Vecs {
		if best == -1 || s < best {
			best = s
		}
	}
	return best
}

// Lij computes the L_vv, L_ss, L_sv, L_vv1 Onsager transport tensors from
// per-site and per-jump-type beta-free energies (spec.md §4.6). bFV/bFS are
// indexed by Wyckoff class (len(SiteList)); bFSV is indexed by thermodynamic
// star (d.Thermo.NumStars()); bFT0/bFT1/bFT2 are indexed by omega0/omega1/
// omega2 jump type.
func (d *Diffuser) Lij(bFV, bFS, bFSV, bFT0, bFT1, bFT2 []float64) (Lvv, Lss, Lsv, Lvv1 [3][3]float64, err error) {
	if len(bFV) != len(d.SiteList) || len(bFS) != len(d.SiteList) {
		return Lvv, Lss, Lsv, Lvv1, chk.Err("diffuser: Lij: ShapeMismatch: bFV/bFS must have %d entries", len(d.SiteList))
	}
	if len(bFSV) != d.Thermo.NumStars() {
		return Lvv, Lss, Lsv, Lvv1, chk.Err("diffuser: Lij: ShapeMismatch: bFSV must have %d entries", d.Thermo.NumStars())
	}
	if len(bFT0) != len(d.Omega0) || len(bFT1) != len(d.Net1.Jumps) || len(bFT2) != len(d.Net2.Jumps) {
		return Lvv, Lss, Lsv, Lvv1, chk.Err("diffuser: Lij: ShapeMismatch: jump-type energy arrays disagree with the networks")
	}

	// Step 1: GF retrieval via cache.
	omega0 := d.omega0Rates(bFV, bFT0)
	key := gfcache.MakeKey(omega0, nil)
	entry, hit := d.Cache.Get(key)
	if !hit {
		zeros := make([]float64, len(omega0))
		if e := d.Oracle.SetRates(omega0, zeros); e != nil {
			return Lvv, Lss, Lsv, Lvv1, e
		}
		gfVals := make([]float64, d.GFExp.GFStars.NumStars())
		for k, members := range d.GFExp.GFStars.Stars {
			rep := d.GFExp.GFStars.States[members[0]]
			gfVals[k] = d.Oracle.Eval(rep.R, rep.I, rep.J)
		}
		entry = &gfcache.Entry{GF: gfVals, D0vv: d.Oracle.Diffusivity()}
		d.Cache.Put(key, entry)
	}
	Lvv = entry.D0vv

	// Step 2: probabilities.
	nsites := len(d.Crystal.Basis[d.Chem])
	probV := siteProbabilities(d.SiteList, nsites, bFV)
	probS := siteProbabilities(d.SiteList, nsites, bFS)
	prob := d.pairProbabilities(probS, probV, bFSV)

	// Step 3: rates.
	omega1 := d.jumpRates(d.Net1, bFS, bFV, bFSV, bFT1)
	omega2 := d.jumpRates(d.Net2, bFS, bFV, bFSV, bFT2)

	n := d.VS.NumVStars()
	G0 := d.GFExp.Project(entry.GF)

	// Step 4: projected rate deviation.
	delta := la.MatAlloc(n, n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			var s float64
			for k, w := range omega1 {
				s += d.Rate1.Expand[a][b][k] * w
			}
			for k, w := range omega2 {
				s += d.Rate2.Expand[a][b][k] * w
			}
			for t, w := range omega0 {
				s -= (d.Rate1.Ref[a][b][t] + d.Rate2.Ref[a][b][t]) * w
			}
			delta[a][b] = s
		}
		var esc float64
		for k, w := range omega1 {
			esc += d.Rate1.Escape[a][k] * w
		}
		for k, w := range omega2 {
			esc += d.Rate2.Escape[a][k] * w
		}
		for t, w := range omega0 {
			esc -= (d.Rate1.RefEscape[a][t] + d.Rate2.RefEscape[a][t]) * w
		}
		delta[a][a] += esc
	}

	// Step 5: bias vectors.
	biasS := make([]float64, n)
	biasV := make([]float64, n)
	for a := 0; a < n; a++ {
		rep := d.Kin.States[d.vstarRep(a)]
		star := d.VS.Stars[a].Star
		pAlpha := prob[star]
		pVAlpha := probV[rep.J]

		var b2 float64
		for k, w := range omega2 {
			b2 += d.Bias2.Expand[a][k] * w
		}
		biasS[a] = -b2 * math.Sqrt(pAlpha)

		var b1 float64
		for k, w := range omega1 {
			b1 += d.Bias1.Expand[a][k] * w
		}
		var b0 float64
		for t, w := range omega0 {
			b0 += d.Bias1.Ref[a][t] * w
		}
		var b2ref float64
		for t, w := range omega0 {
			b2ref += d.Bias2.Ref[a][t] * w
		}
		biasV[a] = b1*math.Sqrt(pAlpha) - b0*math.Sqrt(pVAlpha) - biasS[a] - b2ref*math.Sqrt(pVAlpha)
	}

	// Step 6: solve G = (I + G0.delta)^-1 . G0
	M := la.MatAlloc(n, n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			var s float64
			for c := 0; c < n; c++ {
				s += G0[a][c] * delta[c][b]
			}
			if a == b {
				s += 1
			}
			M[a][b] = s
		}
	}
	Minv := la.MatAlloc(n, n)
	if _, e := la.MatInv(Minv, M, 1e-13); e != nil {
		return Lvv, Lss, Lsv, Lvv1, chk.Err("diffuser: Lij: singular (I+G0.delta): %v", e)
	}
	G := la.MatAlloc(n, n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			var s float64
			for c := 0; c < n; c++ {
				s += Minv[a][c] * G0[c][b]
			}
			G[a][b] = s
		}
	}
	etaS := make([]float64, n)
	etaV := make([]float64, n)
	for a := 0; a < n; a++ {
		var s, v float64
		for b := 0; b < n; b++ {
			s += G[a][b] * biasS[b]
			v += G[a][b] * biasV[b]
		}
		etaS[a] = s
		etaV[a] = v
	}

	// Step 7: assemble.
	var L2ss, L1sv, L1vv [3][3]float64
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			o := d.VS.Outer(a, b)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					L2ss[i][j] += o[i][j] * etaS[a] * biasS[b]
					L1sv[i][j] += o[i][j] * etaS[a] * biasV[b]
					L1vv[i][j] += o[i][j] * etaV[a] * biasV[b]
				}
			}
		}
	}

	var L0ss [3][3]float64
	for k, orbit := range d.Net2.Jumps {
		rate := omega2[k]
		for _, im := range orbit {
			p := prob[d.Kin.StarOf[im.IS]]
			w := 0.5 * rate * p
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					L0ss[i][j] += w * im.Dx[i] * im.Dx[j]
				}
			}
		}
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Lss[i][j] = L0ss[i][j] + L2ss[i][j]
			Lsv[i][j] = -L0ss[i][j] + L1sv[i][j]
			Lvv1[i][j] = L1vv[i][j]
		}
	}
	return Lvv, Lss, Lsv, Lvv1, nil
}
