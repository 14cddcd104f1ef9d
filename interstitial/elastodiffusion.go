// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interstitial

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/pstate"
)

// ElasticDiffusion computes the diffusivity tensor D and the elastodiffusion
// tensor dD (the derivative of D with respect to an applied strain,
// weighted by the site/jump elastic dipole tensors), grounded directly on
// original_source/onsager/OnsagerCalc.py's Interstitial.elastodiffusion
// (spec.md §4.8, "contract detailed in the source but not required").
// dipole and dipoleT are the elastic dipole tensors (already divided by
// kT) of the first representative of each site Wyckoff orbit and each
// jump orbit; every other member's dipole is obtained by propagating the
// representative's symmetry-projected dipole through the point group.
func (c *Calculator) ElasticDiffusion(pre, betaene []float64, dipole [][3][3]float64, preT, betaeneT []float64, dipoleT [][3][3]float64) (D [3][3]float64, dD [3][3][3][3]float64, err error) {
	if len(pre) != len(c.SiteList) || len(betaene) != len(c.SiteList) || len(dipole) != len(c.SiteList) {
		return D, dD, chk.Err("interstitial: ElasticDiffusion: pre/betaene/dipole must have length %d", len(c.SiteList))
	}
	if len(preT) != len(c.JumpNet) || len(betaeneT) != len(c.JumpNet) || len(dipoleT) != len(c.JumpNet) {
		return D, dD, chk.Err("interstitial: ElasticDiffusion: preT/betaeneT/dipoleT must have length %d", len(c.JumpNet))
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

	siteDipole := c.siteDipoles(dipole)
	jumpDipole := c.jumpDipoles(dipoleT)
	var dipoleAve [3][3]float64
	for i, r := range rho {
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				dipoleAve[a][b] += r * siteDipole[i][a][b]
			}
		}
	}

	omega := la.MatAlloc(c.N, c.N)
	bias := make([][3]float64, c.N)
	biasP := make([][3][3][3]float64, c.N)
	domega := make([][][3][3]float64, c.N)
	for i := range domega {
		domega[i] = make([][3][3]float64, c.N)
	}

	for t, orbit := range c.JumpNet {
		pT, beT := preT[t], betaeneT[t]
		for k, p := range orbit {
			i, j := p.I, p.J
			dip := jumpDipole[t][k]
			rate := pT * math.Exp(siteene[i]-beT) / pre[c.invmap[i]]
			symmrate := pT * math.Exp(0.5*(siteene[i]+siteene[j])-beT) / math.Sqrt(pre[c.invmap[i]]*pre[c.invmap[j]])
			omega[i][j] += symmrate
			omega[i][i] -= rate
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					half := 0.5 * (siteDipole[i][a][b] + siteDipole[j][a][b])
					domega[i][j][a][b] -= symmrate * (dip[a][b] - half)
					domega[i][i][a][b] += rate * (dip[a][b] - siteDipole[i][a][b])
				}
			}
			for d := 0; d < 3; d++ {
				bias[i][d] += sqrtrho[i] * rate * p.Dx[d]
				for a := 0; a < 3; a++ {
					for b := 0; b < 3; b++ {
						biasP[i][d][a][b] += sqrtrho[i] * rate * p.Dx[d] * (dip[a][b] - 0.5*(siteDipole[i][a][b]+dipoleAve[a][b]))
					}
				}
			}
			for d := 0; d < 3; d++ {
				for e := 0; e < 3; e++ {
					D[d][e] += 0.5 * p.Dx[d] * p.Dx[e] * rho[i] * rate
					for a := 0; a < 3; a++ {
						for b := 0; b < 3; b++ {
							dD[d][e][a][b] += 0.5 * p.Dx[d] * p.Dx[e] * rho[i] * rate * (dip[a][b] - dipoleAve[a][b])
						}
					}
				}
			}
		}
	}

	nv := len(c.VStars)
	if nv > 0 {
		omegaV := la.MatAlloc(nv, nv)
		biasV := make([]float64, nv)
		domegaV := make([][][3][3]float64, nv)
		for a := range domegaV {
			domegaV[a] = make([][3][3]float64, nv)
		}
		for a := 0; a < nv; a++ {
			for s, va := range c.VStars[a].Vecs {
				for d := 0; d < 3; d++ {
					biasV[a] += bias[s][d] * va[d]
				}
			}
			for b := 0; b < nv; b++ {
				var sum float64
				var dsum [3][3]float64
				for i, va := range c.VStars[a].Vecs {
					for j, vb := range c.VStars[b].Vecs {
						d := va[0]*vb[0] + va[1]*vb[1] + va[2]*vb[2]
						sum += omega[i][j] * d
						for p := 0; p < 3; p++ {
							for q := 0; q < 3; q++ {
								dsum[p][q] += domega[i][j][p][q] * d
							}
						}
					}
				}
				omegaV[a][b] = sum
				domegaV[a][b] = dsum
			}
		}

		neg := la.MatAlloc(nv, nv)
		for a := 0; a < nv; a++ {
			for b := 0; b < nv; b++ {
				neg[a][b] = -omegaV[a][b]
			}
		}
		Minv := la.MatAlloc(nv, nv)
		if _, e := la.MatInv(Minv, neg, 1e-13); e != nil {
			return D, dD, chk.Err("interstitial: ElasticDiffusion: singular vector-star system: %v", e)
		}
		gammaV := make([]float64, nv)
		for a := 0; a < nv; a++ {
			var s float64
			for b := 0; b < nv; b++ {
				s += Minv[a][b] * biasV[b]
			}
			gammaV[a] = -s
		}
		dg := make([][3][3]float64, nv)
		for a := 0; a < nv; a++ {
			for b := 0; b < nv; b++ {
				for p := 0; p < 3; p++ {
					for q := 0; q < 3; q++ {
						dg[a][p][q] += domegaV[a][b][p][q] * gammaV[b]
					}
				}
			}
		}

		// gamma_i: project gamma_v back onto the real sites.
		gammaI := make([][3]float64, c.N)
		for a := 0; a < nv; a++ {
			for s, va := range c.VStars[a].Vecs {
				for d := 0; d < 3; d++ {
					gammaI[s][d] += gammaV[a] * va[d]
				}
			}
		}

		for a := 0; a < nv; a++ {
			for b := 0; b < nv; b++ {
				vv := c.Outer(a, b)
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						D[i][j] += vv[i][j] * biasV[a] * gammaV[b]
					}
				}
			}
		}
		// dD += gamma_i (x) biasP + biasP (x) gamma_i, contracted over sites.
		for s := 0; s < c.N; s++ {
			for p := 0; p < 3; p++ {
				for q := 0; q < 3; q++ {
					for i := 0; i < 3; i++ {
						for j := 0; j < 3; j++ {
							dD[i][j][p][q] += gammaI[s][i] * biasP[s][j][p][q]
							dD[i][j][p][q] += biasP[s][i][p][q] * gammaI[s][j]
						}
					}
				}
			}
		}
		// dD += VV contracted with dg (x) gamma_v: dD[i,j,p,q] += sum_ab
		// VV(a,b)[i,j] * gamma_v[b] * dg[a][p,q].
		for a := 0; a < nv; a++ {
			for b := 0; b < nv; b++ {
				vv := c.Outer(a, b)
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						for p := 0; p < 3; p++ {
							for q := 0; q < 3; q++ {
								dD[i][j][p][q] += vv[i][j] * gammaV[b] * dg[a][p][q]
							}
						}
					}
				}
			}
		}
	}

	// Isotropic correction terms shared by every elastodiffusion tensor
	// (OnsagerCalc.py's trailing loop): the symmetrized coupling between
	// strain indices and the bare diffusivity.
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			for cc := 0; cc < 3; cc++ {
				for d := 0; d < 3; d++ {
					if a == cc {
						dD[a][b][cc][d] += 0.5 * D[b][d]
					}
					if a == d {
						dD[a][b][cc][d] += 0.5 * D[b][cc]
					}
					if b == cc {
						dD[a][b][cc][d] += 0.5 * D[a][d]
					}
					if b == d {
						dD[a][b][cc][d] += 0.5 * D[a][cc]
					}
				}
			}
		}
	}

	return D, dD, nil
}

// siteDipoles returns, for every real site index, the elastic dipole
// tensor obtained by symmetry-projecting dipole[w] onto the Wyckoff
// orbit's invariant tensor basis and propagating it through the point
// group to every member of the orbit (OnsagerCalc.py's siteDipoles).
func (c *Calculator) siteDipoles(dipole [][3][3]float64) [][3][3]float64 {
	out := make([][3][3]float64, c.N)
	ops := c.siteGroupOps()
	for wi, w := range c.SiteList {
		basis := c.Crystal.SymmTensorBasis(c.Chem, w[0])
		symm := crystal.ProjectSymmTensor(dipole[wi], basis)
		for k, i := range w {
			out[i] = c.Crystal.GTensor(ops[wi][k], symm)
		}
	}
	return out
}

// jumpDipoles returns, for every jump orbit, the elastic dipole tensor of
// each member obtained by symmetry-projecting dipoleT[t] onto the orbit's
// invariant tensor basis and propagating it (OnsagerCalc.py's
// jumpDipoles).
func (c *Calculator) jumpDipoles(dipoleT [][3][3]float64) [][][3][3]float64 {
	out := make([][][3][3]float64, len(c.JumpNet))
	ops := c.jumpGroupOps()
	for t, orbit := range c.JumpNet {
		basis := crystal.TensorBasisFixedBy(c.jumpLittleGroup(orbit[0]))
		symm := crystal.ProjectSymmTensor(dipoleT[t], basis)
		members := make([][3][3]float64, len(orbit))
		for k := range orbit {
			members[k] = c.Crystal.GTensor(ops[t][k], symm)
		}
		out[t] = members
	}
	return out
}

// siteGroupOps returns, per Wyckoff orbit, the group operation carrying
// the orbit's first representative onto each of its members.
func (c *Calculator) siteGroupOps() [][]crystal.GroupOp {
	if c.siteGroupOpsCache != nil {
		return c.siteGroupOpsCache
	}
	out := make([][]crystal.GroupOp, len(c.SiteList))
	for wi, w := range c.SiteList {
		i0 := w[0]
		ops := make([]crystal.GroupOp, len(w))
		for k, i := range w {
			for _, g := range c.Crystal.G {
				if g.IndexMap[c.Chem][i0] == i {
					ops[k] = g
					break
				}
			}
		}
		out[wi] = ops
	}
	c.siteGroupOpsCache = out
	return out
}

// jumpGroupOps returns, per jump orbit, the group operation carrying the
// orbit's first representative onto each of its members (possibly via the
// representative's reversal, since a jump orbit lists both i->j and its
// reverse when they are symmetry-distinguishable).
func (c *Calculator) jumpGroupOps() [][]crystal.GroupOp {
	if c.jumpGroupOpsCache != nil {
		return c.jumpGroupOpsCache
	}
	out := make([][]crystal.GroupOp, len(c.JumpNet))
	for t, orbit := range c.JumpNet {
		p0 := orbit[0]
		rev := p0.Neg()
		ops := make([]crystal.GroupOp, len(orbit))
		for k, p := range orbit {
			for _, g := range c.Crystal.G {
				gp, err := c.Crystal.ActOnPair(g, c.Chem, p0)
				if err != nil {
					continue
				}
				if gp.Equal(p) {
					ops[k] = g
					break
				}
				gr, err := c.Crystal.ActOnPair(g, c.Chem, rev)
				if err != nil {
					continue
				}
				if gr.Equal(p) {
					ops[k] = g
					break
				}
			}
		}
		out[t] = ops
	}
	c.jumpGroupOpsCache = out
	return out
}

// jumpLittleGroup returns the operations that fix the undirected jump p0:
// those that map p0 onto itself directly, or onto its reversal (the jump's
// stabilizer, used to build the invariant tensor basis a jump's elastic
// dipole must respect).
func (c *Calculator) jumpLittleGroup(p0 pstate.PairState) []crystal.GroupOp {
	rev := p0.Neg()
	var out []crystal.GroupOp
	for _, g := range c.Crystal.G {
		gp, err := c.Crystal.ActOnPair(g, c.Chem, p0)
		if err != nil {
			continue
		}
		if gp.Equal(p0) || gp.Equal(rev) {
			out = append(out, g)
		}
	}
	return out
}
