// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package expand builds the linear maps from per-jump-type scalar rates (or
// per-GFstar Green-function values) to dense matrices over a vector-star
// basis (§4.5, Component C5): the Green-function expansion, the rate
// expansion (omega1/omega2 against an omega0 reference), the bias
// expansion, and the bare-diffusivity expansion. All four are purely
// geometric -- they depend only on the crystal, the jump-network topology
// and the vector stars, never on temperature, and are computed once per
// thermodynamic shell.
package expand

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/onsager/jumpnet"
	"github.com/cpmech/onsager/starset"
	"github.com/cpmech/onsager/vstar"
)

// GFExpansion projects the Green function onto the vector-star basis.
// GFStars is diffgenerate(StarSet, StarSet) (§4.2); Coef[alpha][beta][k] is
// the accumulated v_i.v_j weight for every (s_i in alpha, s_j in beta) pair
// whose endpoint difference falls in GFStars' star k.
type GFExpansion struct {
	GFStars *starset.StarSet
	Coef    [][][]float64
}

// BuildGF constructs the GF expansion over vs's vector-star basis.
func BuildGF(vs *vstar.VectorStarSet) (*GFExpansion, error) {
	gfss, err := starset.DiffGenerate(vs.SS, vs.SS)
	if err != nil {
		return nil, err
	}
	n := vs.NumVStars()
	nk := gfss.NumStars()
	coef := alloc3(n, n, nk)
	for a := 0; a < n; a++ {
		for si, vi := range vs.Stars[a].Vecs {
			psI := vs.SS.States[si]
			for b := 0; b < n; b++ {
				for sj, vj := range vs.Stars[b].Vecs {
					psJ := vs.SS.States[sj]
					if psJ.I != psI.I {
						continue
					}
					ds, err := psJ.Sub(psI)
					if err != nil {
						continue
					}
					entry, ok := gfss.Lookup(ds)
					if !ok {
						continue
					}
					coef[a][b][entry.Star] += dot3(vi, vj)
				}
			}
		}
	}
	return &GFExpansion{GFStars: gfss, Coef: coef}, nil
}

// Project contracts Coef with per-GFstar scalar Green-function values GF
// (one per g.GFStars star, evaluated at that star's representative state)
// to produce the projected Green-function matrix G0[alpha][beta] (§4.5).
func (g *GFExpansion) Project(GF []float64) [][]float64 {
	n := len(g.Coef)
	out := la.MatAlloc(n, n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			var s float64
			for k, c := range g.Coef[a][b] {
				s += c * GF[k]
			}
			out[a][b] = s
		}
	}
	return out
}

// RateExpansion holds the rate and escape tensors of an omega1- or
// omega2-type jump network, plus the parallel reference tensors built
// against its omega0 ancestry (§4.5, "Rate expansion").
type RateExpansion struct {
	Expand    [][][]float64 // Expand[alpha][beta][k], k over net.Jumps
	Escape    [][]float64   // Escape[alpha][k]
	Ref       [][][]float64 // Ref[alpha][beta][t], t over omega0 jump types
	RefEscape [][]float64   // RefEscape[alpha][t]
}

// BuildRate derives the rate expansion of net (an omega1 or omega2 network,
// each jump tagged with its parent omega0 type index) over vs's vector-star
// basis. numOmega0Types is the number of distinct omega0 jump types.
func BuildRate(vs *vstar.VectorStarSet, net *jumpnet.Network, numOmega0Types int) *RateExpansion {
	n := vs.NumVStars()
	nk := len(net.Jumps)
	exp := alloc3(n, n, nk)
	esc := la.MatAlloc(n, nk)
	ref := alloc3(n, n, numOmega0Types)
	refEsc := la.MatAlloc(n, numOmega0Types)

	for k, orbit := range net.Jumps {
		t := net.JumpType[k]
		for _, im := range orbit {
			for _, a := range vs.StarsAt(im.IS) {
				va, _ := vs.Vec(a, im.IS)
				esc[a][k] -= dot3(va, va)
				refEsc[a][t] -= dot3(va, va)
				for _, b := range vs.StarsAt(im.FS) {
					vb, _ := vs.Vec(b, im.FS)
					exp[a][b][k] += dot3(va, vb)
					ref[a][b][t] += dot3(va, vb)
				}
			}
		}
	}
	return &RateExpansion{Expand: exp, Escape: esc, Ref: ref, RefEscape: refEsc}
}

// BiasExpansion holds the bias-vector expansion of a jump network and its
// parallel reference against the omega0 ancestry (§4.5, "Bias expansion").
type BiasExpansion struct {
	Expand [][]float64 // Expand[alpha][k]
	Ref    [][]float64 // Ref[alpha][t]
}

// BuildBias derives the bias expansion of net over vs's vector-star basis.
func BuildBias(vs *vstar.VectorStarSet, net *jumpnet.Network, numOmega0Types int) *BiasExpansion {
	n := vs.NumVStars()
	nk := len(net.Jumps)
	exp := la.MatAlloc(n, nk)
	ref := la.MatAlloc(n, numOmega0Types)

	for k, orbit := range net.Jumps {
		t := net.JumpType[k]
		for _, im := range orbit {
			for _, a := range vs.StarsAt(im.IS) {
				va, _ := vs.Vec(a, im.IS)
				starSize := float64(len(vs.SS.Stars[vs.Stars[a].Star]))
				contrib := starSize * dot3(va, im.Dx)
				exp[a][k] += contrib
				ref[a][t] += contrib
			}
		}
	}
	return &BiasExpansion{Expand: exp, Ref: ref}
}

// BuildBareDiffusivity returns, for each jump orbit k of net, the 3x3 tensor
// D0expand[k] = 1/2 * sum_{(IS,FS),dx in orbit_k} dx (x) dx (§4.5,
// "Bare diffusivity expansion"). Unlike the other three expansions this one
// does not project onto the vector-star basis -- the bare diffusivity is a
// lattice property, evaluated once per omega0 jump type.
func BuildBareDiffusivity(net *jumpnet.Network) [][3][3]float64 {
	out := make([][3][3]float64, len(net.Jumps))
	for k, orbit := range net.Jumps {
		var T [3][3]float64
		for _, im := range orbit {
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					T[i][j] += 0.5 * im.Dx[i] * im.Dx[j]
				}
			}
		}
		out[k] = T
	}
	return out
}

func alloc3(n1, n2, n3 int) [][][]float64 {
	out := make([][][]float64, n1)
	for i := range out {
		out[i] = make([][]float64, n2)
		for j := range out[i] {
			out[i][j] = make([]float64, n3)
		}
	}
	return out
}

// dot3 wraps gosl/utl.Dot3d (the same primitive the teacher's Beam/e_beam
// elements use for their local-triad arithmetic) for the fixed-size
// [3]float64 type used throughout this package.
func dot3(a, b [3]float64) float64 {
	return utl.Dot3d(a[:], b[:])
}
