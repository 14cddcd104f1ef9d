// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package vstar builds the orthonormal symmetry-adapted vector basis over a
// StarSet's orbits (§4.4, Component C4): the "vector stars" that the rate,
// bias and Green-function expansions (package expand) project onto.
package vstar

import (
	"math"

	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/pstate"
	"github.com/cpmech/onsager/starset"
)

// VectorStar is one symmetry-adapted vector field over the states of a
// single star: Vecs maps a state index (into the parent StarSet's States)
// to the Cartesian vector assigned to that state. Star names the parent
// star's index.
type VectorStar struct {
	Star int
	Vecs map[int][3]float64
}

// VectorStarSet is the vector-star basis built over every star already
// enumerated in a StarSet.
type VectorStarSet struct {
	SS    *starset.StarSet
	Stars []VectorStar
}

// New builds the vector-star basis over every star of ss. A star whose
// representative is the zero pair state draws its vectors from the
// crystal's site vector basis (the "origin star" branch of §4.4); call
// ss.AddOriginStates() beforehand if those are wanted, otherwise origin
// states simply never appear among ss.Stars and contribute nothing.
func New(ss *starset.StarSet) *VectorStarSet {
	vs := &VectorStarSet{SS: ss}
	for s, members := range ss.Stars {
		if len(members) == 0 {
			continue
		}
		ps0 := ss.States[members[0]]
		if ps0.IsZero() {
			vs.Stars = append(vs.Stars, originVectorStars(ss, s, members, ps0)...)
		} else {
			vs.Stars = append(vs.Stars, nonOriginVectorStars(ss, s, members, ps0)...)
		}
	}
	return vs
}

// NumVStars returns the number of vector stars in the basis.
func (vs *VectorStarSet) NumVStars() int { return len(vs.Stars) }

// Vec returns the vector assigned to state s by vector star alpha, if any.
func (vs *VectorStarSet) Vec(alpha, s int) ([3]float64, bool) {
	v, ok := vs.Stars[alpha].Vecs[s]
	return v, ok
}

// StarsAt returns the indices of the vector stars that carry a vector at
// state s; Vec returns that vector. Expansions (§4.5) iterate this to find "the
// vector star with a representative at IS/FS" for a given jump endpoint.
func (vs *VectorStarSet) StarsAt(s int) []int {
	var out []int
	for a, v := range vs.Stars {
		if _, ok := v.Vecs[s]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Outer returns outer[alpha,beta] = sum over PS of v_alpha(PS) (x) v_beta(PS)
// (§4.4). Nonzero only when alpha and beta belong to the same star, since
// vector stars over distinct orbits have disjoint support.
func (vs *VectorStarSet) Outer(alpha, beta int) [3][3]float64 {
	var out [3][3]float64
	a, b := vs.Stars[alpha], vs.Stars[beta]
	if a.Star != b.Star {
		return out
	}
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

// nonOriginVectorStars builds the parallel vector-star (always present) and
// 0, 1 or 2 perpendicular vector-stars for a star whose representative PS0
// has a nonzero displacement.
func nonOriginVectorStars(ss *starset.StarSet, starIdx int, members []int, ps0 pstate.PairState) []VectorStar {
	n := float64(len(members))
	out := []VectorStar{parallelVectorStar(ss, starIdx, members, ps0, n)}

	vpara := normalize(ps0.Dx)
	v0, v1 := perpBasis(vpara)
	little := pairLittleGroup(ss.Crystal, ss.Chem, ps0)
	reps := make([][][]float64, len(little))
	for k, g := range little {
		r0 := ss.Crystal.GDirec(g, v0)
		r1 := ss.Crystal.GDirec(g, v1)
		reps[k] = [][]float64{
			{dot3(v0, r0), dot3(v0, r1)},
			{dot3(v1, r0), dot3(v1, r1)},
		}
	}
	for _, coef := range crystal.InvariantSubspace(reps, 2) {
		w := [3]float64{
			coef[0]*v0[0] + coef[1]*v1[0],
			coef[0]*v0[1] + coef[1]*v1[1],
			coef[0]*v0[2] + coef[1]*v1[2],
		}
		out = append(out, propagate(ss, starIdx, members, ps0, w, 1/math.Sqrt(n)))
	}
	return out
}

// parallelVectorStar builds v_i = PS_i.dx, scaled by 1/sqrt(|PS0.dx|^2*|star|)
// so that sum_i v_i.v_i = 1.
func parallelVectorStar(ss *starset.StarSet, starIdx int, members []int, ps0 pstate.PairState, n float64) VectorStar {
	scale := 1 / math.Sqrt(ps0.Dx2()*n)
	vstar := VectorStar{Star: starIdx, Vecs: map[int][3]float64{}}
	for _, idx := range members {
		p := ss.States[idx]
		vstar.Vecs[idx] = [3]float64{p.Dx[0] * scale, p.Dx[1] * scale, p.Dx[2] * scale}
	}
	return vstar
}

// originVectorStars draws the vector-star seeds from the crystal's site
// vector basis at the zero state's site (§4.4, "Origin star").
func originVectorStars(ss *starset.StarSet, starIdx int, members []int, ps0 pstate.PairState) []VectorStar {
	n := float64(len(members))
	var out []VectorStar
	for _, w := range ss.Crystal.VectorBasis(ss.Chem, ps0.I) {
		out = append(out, propagate(ss, starIdx, members, ps0, w, 1/math.Sqrt(n)))
	}
	return out
}

// propagate scales seed vector w (defined at ps0) by scale, then spreads it
// across every other member of the star by applying a point-group operation
// that carries ps0 onto that member. w must already be invariant under the
// little group of ps0 (guaranteed by construction in both callers), so the
// choice of carrying operation does not matter.
func propagate(ss *starset.StarSet, starIdx int, members []int, ps0 pstate.PairState, w [3]float64, scale float64) VectorStar {
	ws := [3]float64{w[0] * scale, w[1] * scale, w[2] * scale}
	vstar := VectorStar{Star: starIdx, Vecs: map[int][3]float64{}}
	for _, idx := range members {
		target := ss.States[idx]
		g, ok := findGroupOp(ss, ps0, target)
		if !ok {
			continue
		}
		vstar.Vecs[idx] = ss.Crystal.GDirec(g, ws)
	}
	return vstar
}

func findGroupOp(ss *starset.StarSet, from, to pstate.PairState) (crystal.GroupOp, bool) {
	for _, g := range ss.Crystal.G {
		gp, err := ss.Crystal.ActOnPair(g, ss.Chem, from)
		if err != nil {
			continue
		}
		if gp.Equal(to) {
			return g, true
		}
	}
	return crystal.GroupOp{}, false
}

// pairLittleGroup returns the operations that fix the pair state ps0
// exactly (g.ps0 == ps0), the little group §4.4's perpendicular-vector
// construction narrows against.
func pairLittleGroup(cr *crystal.Crystal, chem int, ps0 pstate.PairState) []crystal.GroupOp {
	var out []crystal.GroupOp
	for _, g := range cr.G {
		gp, err := cr.ActOnPair(g, chem, ps0)
		if err != nil {
			continue
		}
		if gp.Equal(ps0) {
			out = append(out, g)
		}
	}
	return out
}

// perpBasis returns two mutually orthonormal vectors perpendicular to the
// unit vector vpara, built the way the reference does: cross with the
// z-axis, falling back to the x-axis when vpara is (nearly) parallel to z.
func perpBasis(vpara [3]float64) (v0, v1 [3]float64) {
	z := [3]float64{0, 0, 1}
	c := cross3(vpara, z)
	if dot3(c, c) < 1e-12 {
		z = [3]float64{1, 0, 0}
		c = cross3(vpara, z)
	}
	v0 = normalize(c)
	v1 = normalize(cross3(vpara, v0))
	return
}

func normalize(v [3]float64) [3]float64 {
	n := math.Sqrt(dot3(v, v))
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

// dot3/cross3 wrap gosl/utl's vector primitives (utl.Dot3d/utl.Cross3d, the
// same pair the teacher's Beam element uses to build its local triad) for
// the fixed-size [3]float64 type used throughout this package.
func dot3(a, b [3]float64) float64 {
	return utl.Dot3d(a[:], b[:])
}

func cross3(a, b [3]float64) [3]float64 {
	var c [3]float64
	utl.Cross3d(c[:], a[:], b[:])
	return c
}
