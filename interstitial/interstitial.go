// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package interstitial implements the parallel, simpler calculator named
// in spec.md §4.8 (Component C8): diffusivity of a single mobile species
// hopping on its own sublattice, with no solute or vacancy. It carries its
// own copy of the symmetry-adapted vector-basis/outer-product machinery
// that vstar and expand implement, applied directly to the crystal's site list instead of to a
// StarSet of enumerated pair states, since there is no second defect to
// track.
package interstitial

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/pstate"
)

// VectorStar is one symmetry-adapted vector field over the sublattice's
// real site indices -- the same role vstar.VectorStar plays over a
// StarSet's enumerated pair states, but indexed by site rather than by
// (I,J,R) pair.
type VectorStar struct {
	Vecs map[int][3]float64
}

// Calculator computes the interstitial diffusivity tensor (and, via
// elastodiffusion.go, the elastodiffusion tensor) for one mobile species
// on its own sublattice.
type Calculator struct {
	Crystal  *crystal.Crystal
	Chem     int
	SiteList [][]int
	JumpNet  [][]pstate.PairState

	N      int   // total number of sites of species Chem
	invmap []int // site index -> index into SiteList
	VStars []VectorStar

	siteGroupOpsCache [][]crystal.GroupOp
	jumpGroupOpsCache [][]crystal.GroupOp
}

// New builds a Calculator from the crystal's own site list and jump
// network for species chem, e.g. cr.SiteList(chem) and
// cr.JumpNetwork(chem, cutoff).
func New(cr *crystal.Crystal, chem int, sitelist [][]int, jumpnet [][]pstate.PairState) *Calculator {
	c := &Calculator{Crystal: cr, Chem: chem, SiteList: sitelist, JumpNet: jumpnet}
	for _, w := range sitelist {
		c.N += len(w)
	}
	c.invmap = make([]int, c.N)
	for wi, w := range sitelist {
		for _, i := range w {
			c.invmap[i] = wi
		}
	}
	c.VStars = c.buildVectorBasis()
	return c
}

// NumVStars returns the size of the vector-star basis.
func (c *Calculator) NumVStars() int { return len(c.VStars) }

// buildVectorBasis constructs one vector star per (Wyckoff orbit, seed
// vector) pair: the seed is drawn from the crystal's site vector basis at
// the orbit's first representative (spec.md §4.4's origin-star
// construction), then spread across every other site of the orbit by
// applying a point-group operation that carries the representative onto
// it -- the same idea as vstar.propagate, but over raw site indices since
// there is no StarSet here.
func (c *Calculator) buildVectorBasis() []VectorStar {
	var out []VectorStar
	for _, w := range c.SiteList {
		i0 := w[0]
		scale := 1 / math.Sqrt(float64(len(w)))
		for _, v := range c.Crystal.VectorBasis(c.Chem, i0) {
			vs := VectorStar{Vecs: map[int][3]float64{}}
			for _, g := range c.Crystal.G {
				ip := g.IndexMap[c.Chem][i0]
				if _, done := vs.Vecs[ip]; done {
					continue
				}
				d := c.Crystal.GDirec(g, v)
				vs.Vecs[ip] = [3]float64{d[0] * scale, d[1] * scale, d[2] * scale}
			}
			out = append(out, vs)
		}
	}
	return out
}

// Outer returns sum over sites s of vstar alpha's vector at s (x) vstar
// beta's vector at s; zero when the two vector stars share no site
// (vector stars of distinct Wyckoff orbits have disjoint support, the
// same disjointness vstar.Outer relies on for distinct stars).
func (c *Calculator) Outer(alpha, beta int) [3][3]float64 {
	var out [3][3]float64
	a, b := c.VStars[alpha], c.VStars[beta]
	for s, va := range a.Vecs {
		vb, ok := b.Vecs[s]
		if !ok {
			continue
		}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				out[i][j] += va[i] * vb[j]
			}
		}
	}
	return out
}

// Diffusivity returns the diffusivity tensor for site prefactors/energies
// pre/betaene (indexed by position in SiteList) and jump
// prefactors/energies preT/betaeneT (indexed by position in JumpNet).
func (c *Calculator) Diffusivity(pre, betaene, preT, betaeneT []float64) ([3][3]float64, error) {
	D, _, err := c.diffusivity(pre, betaene, preT, betaeneT, false)
	return D, err
}

// DiffusivityDeriv additionally returns Db, the diffusivity tensor times
// the negative beta-derivative (used to form the activation-energy
// tensor), reusing the same rate/bias expansion in a single pass.
func (c *Calculator) DiffusivityDeriv(pre, betaene, preT, betaeneT []float64) (D, Db [3][3]float64, err error) {
	return c.diffusivity(pre, betaene, preT, betaeneT, true)
}

func (c *Calculator) diffusivity(pre, betaene, preT, betaeneT []float64, calcDeriv bool) (D, Db [3][3]float64, err error) {
	if len(pre) != len(c.SiteList) || len(betaene) != len(c.SiteList) {
		return D, Db, chk.Err("interstitial: Diffusivity: pre/betaene must have length %d, got %d/%d", len(c.SiteList), len(pre), len(betaene))
	}
	if len(preT) != len(c.JumpNet) || len(betaeneT) != len(c.JumpNet) {
		return D, Db, chk.Err("interstitial: Diffusivity: preT/betaeneT must have length %d, got %d/%d", len(c.JumpNet), len(preT), len(betaeneT))
	}

	siteene := make([]float64, c.N)
	for i := range siteene {
		siteene[i] = betaene[c.invmap[i]]
	}
	rho := c.siteProb(siteene)
	sqrtrho := make([]float64, c.N)
	for i, r := range rho {
		sqrtrho[i] = math.Sqrt(r)
	}
	var eAve float64
	for i, r := range rho {
		eAve += r * siteene[i]
	}

	omega := la.MatAlloc(c.N, c.N)
	domega := la.MatAlloc(c.N, c.N)
	bias := make([][3]float64, c.N)
	dbias := make([][3]float64, c.N)

	for t, orbit := range c.JumpNet {
		pT, beT := preT[t], betaeneT[t]
		for _, p := range orbit {
			i, j := p.I, p.J
			rate := pT * math.Exp(siteene[i]-beT) / pre[c.invmap[i]]
			symmrate := pT * math.Exp(0.5*(siteene[i]+siteene[j])-beT) / math.Sqrt(pre[c.invmap[i]]*pre[c.invmap[j]])
			omega[i][j] += symmrate
			omega[i][i] -= rate
			domega[i][j] += symmrate * (beT - 0.5*(siteene[i]+siteene[j]))
			domega[i][i] -= rate * (beT - siteene[i])
			for d := 0; d < 3; d++ {
				bias[i][d] += sqrtrho[i] * rate * p.Dx[d]
				dbias[i][d] += sqrtrho[i] * rate * p.Dx[d] * (beT - 0.5*(siteene[i]+eAve))
			}
			for d := 0; d < 3; d++ {
				for e := 0; e < 3; e++ {
					D[d][e] += 0.5 * p.Dx[d] * p.Dx[e] * rho[i] * rate
					if calcDeriv {
						Db[d][e] += 0.5 * p.Dx[d] * p.Dx[e] * rho[i] * rate * (beT - eAve)
					}
				}
			}
		}
	}

	nv := len(c.VStars)
	if nv == 0 {
		return D, Db, nil
	}

	omegaV := la.MatAlloc(nv, nv)
	domegaV := la.MatAlloc(nv, nv)
	biasV := make([]float64, nv)
	dbiasV := make([]float64, nv)
	for a := 0; a < nv; a++ {
		for s, va := range c.VStars[a].Vecs {
			for d := 0; d < 3; d++ {
				biasV[a] += bias[s][d] * va[d]
				dbiasV[a] += dbias[s][d] * va[d]
			}
		}
		for b := 0; b < nv; b++ {
			var sum, dsum float64
			for i, va := range c.VStars[a].Vecs {
				for j, vb := range c.VStars[b].Vecs {
					d := va[0]*vb[0] + va[1]*vb[1] + va[2]*vb[2]
					sum += omega[i][j] * d
					dsum += domega[i][j] * d
				}
			}
			omegaV[a][b] = sum
			domegaV[a][b] = dsum
		}
	}

	// omega_v is negative (semi-)definite; solve -omega_v . gamma = -bias.
	neg := la.MatAlloc(nv, nv)
	for a := 0; a < nv; a++ {
		for b := 0; b < nv; b++ {
			neg[a][b] = -omegaV[a][b]
		}
	}
	Minv := la.MatAlloc(nv, nv)
	if _, e := la.MatInv(Minv, neg, 1e-13); e != nil {
		return D, Db, chk.Err("interstitial: Diffusivity: singular vector-star system: %v", e)
	}
	gammaV := make([]float64, nv)
	for a := 0; a < nv; a++ {
		var s float64
		for b := 0; b < nv; b++ {
			s += Minv[a][b] * biasV[b]
		}
		gammaV[a] = -s
	}
	dgammaV := make([]float64, nv)
	for a := 0; a < nv; a++ {
		var s float64
		for b := 0; b < nv; b++ {
			s += domegaV[a][b] * gammaV[b]
		}
		dgammaV[a] = s
	}

	for a := 0; a < nv; a++ {
		for b := 0; b < nv; b++ {
			vv := c.Outer(a, b)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					D[i][j] += vv[i][j] * biasV[a] * gammaV[b]
					if calcDeriv {
						Db[i][j] += vv[i][j] * dbiasV[a] * gammaV[b]
						Db[i][j] += vv[i][j] * gammaV[a] * dbiasV[b]
						Db[i][j] -= vv[i][j] * gammaV[a] * dgammaV[b]
					}
				}
			}
		}
	}

	return D, Db, nil
}

// siteProb returns normalized site occupation probabilities from
// per-site (already-expanded, one entry per real site index) energies.
func (c *Calculator) siteProb(siteene []float64) []float64 {
	minE := siteene[0]
	for _, e := range siteene[1:] {
		if e < minE {
			minE = e
		}
	}
	rho := make([]float64, c.N)
	var sum float64
	for i := range rho {
		rho[i] = math.Exp(minE - siteene[i])
		sum += rho[i]
	}
	for i := range rho {
		rho[i] /= sum
	}
	return rho
}
