// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffuser

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/onsager/jumpnet"
	"github.com/cpmech/onsager/pstate"
)

// PreEne is the prefactor/energy configuration bundle named in spec.md §9
// ("Dynamic typed configuration bundles"): one (prefactor, energy) pair per
// site or jump-type family Lij consumes.
type PreEne struct {
	PreV, EneV   []float64 // per vacancy Wyckoff class
	PreS, EneS   []float64 // per solute Wyckoff class
	PreSV, EneSV []float64 // per thermodynamic-shell star
	PreT0, EneT0 []float64 // per omega0 jump type
	PreT1, EneT1 []float64 // per omega1 jump type
	PreT2, EneT2 []float64 // per omega2 jump type
}

// betafree converts one (pre,ene) pair into a beta-free-energy array of the
// form bF = ene/kT - log(pre), the input form Lij documents (§4.6: "all of
// the form β·E − log(prefactor)").
func betafree(kT float64, pre, ene []float64) []float64 {
	out := make([]float64, len(pre))
	for i := range pre {
		out[i] = ene[i]/kT - math.Log(pre[i])
	}
	return out
}

// PreEne2BetaFree converts a PreEne bundle into the six beta-free-energy
// arrays Lij consumes (§6, "preene2betafree(kT, …) -> tuple of β-free-energy
// arrays").
func PreEne2BetaFree(kT float64, pe PreEne) (bFV, bFS, bFSV, bFT0, bFT1, bFT2 []float64) {
	bFV = betafree(kT, pe.PreV, pe.EneV)
	bFS = betafree(kT, pe.PreS, pe.EneS)
	bFSV = betafree(kT, pe.PreSV, pe.EneSV)
	bFT0 = betafree(kT, pe.PreT0, pe.EneT0)
	bFT1 = betafree(kT, pe.PreT1, pe.EneT1)
	bFT2 = betafree(kT, pe.PreT2, pe.EneT2)
	return
}

// dbfAppend appends one dbf.P per entry of vals, named prefix+index, e.g.
// "preV0", "preV1".
func dbfAppend(out dbf.Params, prefix string, vals []float64) dbf.Params {
	for i, v := range vals {
		out = append(out, &dbf.P{N: fmt.Sprintf("%s%d", prefix, i), V: v})
	}
	return out
}

// ToDbfParams flattens pe into a gosl/fun/dbf.Params bundle (spec.md §9:
// the energy/prefactor bundle is "additionally exposed as a dbf.Params
// bundle for the CLI/config-file path"), the same named (N,V) parameter-list
// convention the teacher's material models take their inputs through
// (mdl/solid/elasticity.go's SmallElasticity.Init).
func (pe PreEne) ToDbfParams() dbf.Params {
	var out dbf.Params
	out = dbfAppend(out, "preV", pe.PreV)
	out = dbfAppend(out, "eneV", pe.EneV)
	out = dbfAppend(out, "preS", pe.PreS)
	out = dbfAppend(out, "eneS", pe.EneS)
	out = dbfAppend(out, "preSV", pe.PreSV)
	out = dbfAppend(out, "eneSV", pe.EneSV)
	out = dbfAppend(out, "preT0", pe.PreT0)
	out = dbfAppend(out, "eneT0", pe.EneT0)
	out = dbfAppend(out, "preT1", pe.PreT1)
	out = dbfAppend(out, "eneT1", pe.EneT1)
	out = dbfAppend(out, "preT2", pe.PreT2)
	out = dbfAppend(out, "eneT2", pe.EneT2)
	return out
}

// dbfFetch reads n sequentially-named prefix+index entries back out of prms.
func dbfFetch(prms dbf.Params, prefix string, n int) []float64 {
	lookup := make(map[string]float64, len(prms))
	for _, p := range prms {
		lookup[p.N] = p.V
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lookup[fmt.Sprintf("%s%d", prefix, i)]
	}
	return out
}

// PreEneFromDbfParams reverses ToDbfParams, given the (nv,ns,nsv,nt0,nt1,nt2)
// array lengths a Diffuser already knows from its own construction
// (len(SiteList) for both nv and ns, Thermo.NumStars(), len(Omega0),
// len(Net1.Jumps), len(Net2.Jumps)).
func PreEneFromDbfParams(prms dbf.Params, nv, ns, nsv, nt0, nt1, nt2 int) PreEne {
	return PreEne{
		PreV: dbfFetch(prms, "preV", nv), EneV: dbfFetch(prms, "eneV", nv),
		PreS: dbfFetch(prms, "preS", ns), EneS: dbfFetch(prms, "eneS", ns),
		PreSV: dbfFetch(prms, "preSV", nsv), EneSV: dbfFetch(prms, "eneSV", nsv),
		PreT0: dbfFetch(prms, "preT0", nt0), EneT0: dbfFetch(prms, "eneT0", nt0),
		PreT1: dbfFetch(prms, "preT1", nt1), EneT1: dbfFetch(prms, "eneT1", nt1),
		PreT2: dbfFetch(prms, "preT2", nt2), EneT2: dbfFetch(prms, "eneT2", nt2),
	}
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func zeros(n int) []float64 {
	return make([]float64, n)
}

// MakeTracerPreEne builds the uniform isotopic-tracer configuration used by
// spec.md §8's correlation-factor scenarios: every energy is zero, every
// prefactor is one, so the solute is indistinguishable from the host atom
// and L_ss + L_sv should vanish (tracer identity, §8 property 15).
func (d *Diffuser) MakeTracerPreEne() PreEne {
	nv := len(d.SiteList)
	return PreEne{
		PreV: ones(nv), EneV: zeros(nv),
		PreS: ones(nv), EneS: zeros(nv),
		PreSV: ones(d.Thermo.NumStars()), EneSV: zeros(d.Thermo.NumStars()),
		PreT0: ones(len(d.Omega0)), EneT0: zeros(len(d.Omega0)),
		PreT1: ones(len(d.Net1.Jumps)), EneT1: zeros(len(d.Net1.Jumps)),
		PreT2: ones(len(d.Net2.Jumps)), EneT2: zeros(len(d.Net2.Jumps)),
	}
}

// MakeLIMBPreEne builds a configuration under the LIMB (linear interpolation
// of migration barriers) approximation named in spec.md §6
// ("makeLIMBpreene(…) -> dict"): every omega0 jump-type barrier is the
// average of its two endpoint vacancy energies, and every omega1/omega2
// jump-type barrier is the average of its two endpoint energies (solute plus
// vacancy, plus the binding energy for each endpoint inside the
// thermodynamic shell), a standard approximation when explicit saddle-point
// energies are unavailable. Every jump prefactor is preT0 (a single attempt
// frequency shared by every jump); preV, preS and preSV are passed through.
func (d *Diffuser) MakeLIMBPreEne(preV, eneV, preS, eneS, preSV, eneSV []float64, preT0 float64) PreEne {
	nt0 := len(d.Omega0)
	preT0s := make([]float64, nt0)
	eneT0 := make([]float64, nt0)
	for t, orbit := range d.Omega0 {
		rep := orbit[0]
		v1, v2 := wyckOf(d.SiteList, rep.I), wyckOf(d.SiteList, rep.J)
		preT0s[t] = preT0
		eneT0[t] = 0.5 * (eneV[v1] + eneV[v2])
	}

	preT1, eneT1 := d.limbRates(d.Net1, preT0, eneS, eneV, eneSV)
	preT2, eneT2 := d.limbRates(d.Net2, preT0, eneS, eneV, eneSV)

	return PreEne{
		PreV: preV, EneV: eneV,
		PreS: preS, EneS: eneS,
		PreSV: preSV, EneSV: eneSV,
		PreT0: preT0s, EneT0: eneT0,
		PreT1: preT1, EneT1: eneT1,
		PreT2: preT2, EneT2: eneT2,
	}
}

// limbRates applies the LIMB approximation to one omega1/omega2 network: the
// barrier of jump orbit k is the average of its two endpoints' site energy
// (solute + vacancy + binding), all sharing the single attempt prefactor
// preT0.
func (d *Diffuser) limbRates(net *jumpnet.Network, preT0 float64, eneS, eneV, eneSV []float64) (pre, ene []float64) {
	pre = make([]float64, len(net.Jumps))
	ene = make([]float64, len(net.Jumps))
	for k, orbit := range net.Jumps {
		im := orbit[0]
		psI, psF := d.Kin.States[im.IS], d.Kin.States[im.FS]
		eI := d.siteEnergy(psI, eneS, eneV, eneSV)
		eF := d.siteEnergy(psF, eneS, eneV, eneSV)
		pre[k] = preT0
		ene[k] = 0.5 * (eI + eF)
	}
	return
}

// siteEnergy sums the solute, vacancy and (if within the thermodynamic
// shell) binding energy of a pair state, used by the LIMB approximation.
func (d *Diffuser) siteEnergy(ps pstate.PairState, eneS, eneV, eneSV []float64) float64 {
	s, v := wyckOf(d.SiteList, ps.I), wyckOf(d.SiteList, ps.J)
	e := eneS[s] + eneV[v]
	if entry, ok := d.Thermo.Lookup(ps); ok {
		e += eneSV[entry.Star]
	}
	return e
}
