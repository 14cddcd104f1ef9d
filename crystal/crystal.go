// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package crystal implements the external crystal collaborator named in
// the specification: lattice, basis, point-group operations, site lists,
// and the symmetry-adapted vector/tensor bases needed at origin states.
// Construction of arbitrary space groups is out of the calculator's core
// scope (spec.md, "external collaborators"); this package supplies the
// handful of concrete lattices (FCC, BCC, HCP) needed to exercise and test
// the rest of the module, plus the GroupOp machinery any caller-supplied
// crystal must provide.
package crystal

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// GroupOp is one crystallographic point-group operation: a Cartesian
// rotation (possibly improper), a fractional translation, and the
// per-species site permutation it induces.
type GroupOp struct {
	CartRot  [][]float64 // 3x3 Cartesian rotation matrix
	FracTran []float64   // fractional translation (length 3)
	IndexMap [][]int     // IndexMap[chem][i] -> i'
}

// Crystal bundles the lattice, basis, and point group for one structure.
// Basis[chem][i] gives the fractional coordinates of site i of species chem.
type Crystal struct {
	Lattice [][]float64   // 3x3 Cartesian lattice matrix (columns = primitive vectors)
	InvLatt [][]float64   // inverse of Lattice
	Basis   [][][]float64 // Basis[chem][i] -> fractional coords (length 3)
	G       []GroupOp
}

// frac2cart converts fractional coordinates to Cartesian using Lattice
func (c *Crystal) frac2cart(x []float64) []float64 {
	v := make([]float64, 3)
	la.MatVecMul(v, 1, c.Lattice, x)
	return v
}

// mat3mul computes c = a*b for 3x3 dense matrices. gosl/la's matrix-multiply
// helpers (MatTrMul3 and friends) are fused with a transpose on the first
// operand for the FEM stiffness-assembly pattern they were written for
// (c = aᵀ*b*d); composing two plain, untransposed rotations doesn't fit
// that shape, so this narrow helper is hand-rolled (documented in
// DESIGN.md) while still using la.MatAlloc for the allocation itself.
func mat3mul(a, b [][]float64) [][]float64 {
	c := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			c[i][j] = s
		}
	}
	return c
}

// fracRot returns the fractional-coordinate rotation matrix corresponding
// to a Cartesian rotation: Rfrac = InvLatt * Rcart * Lattice
func (c *Crystal) fracRot(cartRot [][]float64) [][]float64 {
	return mat3mul(c.InvLatt, mat3mul(cartRot, c.Lattice))
}

// GPos applies group operation g to the pair-state endpoint (R,(chem,i)),
// returning the image lattice vector R' and site index i'.
func (c *Crystal) GPos(g GroupOp, R [3]int, chem, i int) (Rp [3]int, ip int, err error) {
	if chem < 0 || chem >= len(c.Basis) || i < 0 || i >= len(c.Basis[chem]) {
		return Rp, 0, chk.Err("crystal: GPos: site (%d,%d) out of range", chem, i)
	}
	ip = g.IndexMap[chem][i]
	x := make([]float64, 3)
	for d := 0; d < 3; d++ {
		x[d] = float64(R[d]) + c.Basis[chem][i][d]
	}
	frot := c.fracRot(g.CartRot)
	xp := make([]float64, 3)
	la.MatVecMul(xp, 1, frot, x)
	for d := 0; d < 3; d++ {
		xp[d] += g.FracTran[d]
	}
	bp := c.Basis[chem][ip]
	for d := 0; d < 3; d++ {
		f := xp[d] - bp[d]
		n := round(f)
		if absf(f-n) > 1e-6 {
			return Rp, 0, chk.Err("crystal: GPos: group operation did not map onto lattice (residual=%g)", f-n)
		}
		Rp[d] = int(n)
	}
	return Rp, ip, nil
}

// GDirec rotates a Cartesian direction vector
func (c *Crystal) GDirec(g GroupOp, v [3]float64) [3]float64 {
	in := []float64{v[0], v[1], v[2]}
	out := make([]float64, 3)
	la.MatVecMul(out, 1, g.CartRot, in)
	return [3]float64{out[0], out[1], out[2]}
}

// GTensor rotates a 3x3 Cartesian tensor: T' = R T R^T
func (c *Crystal) GTensor(g GroupOp, T [3][3]float64) [3][3]float64 {
	Tm := la.MatAlloc(3, 3)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			Tm[a][b] = T[a][b]
		}
	}
	Rt := la.MatAlloc(3, 3)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			Rt[a][b] = g.CartRot[b][a]
		}
	}
	out := mat3mul(mat3mul(g.CartRot, Tm), Rt)
	var res [3][3]float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			res[a][b] = out[a][b]
		}
	}
	return res
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int(x + 0.5))
	}
	return float64(int(x - 0.5))
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// SiteList groups the sites of species chem into Wyckoff-equivalent lists,
// by orbit under the full point group applied at R=0.
func (c *Crystal) SiteList(chem int) [][]int {
	n := len(c.Basis[chem])
	visited := make([]bool, n)
	var lists [][]int
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		var orbit []int
		seen := map[int]bool{}
		for _, g := range c.G {
			ip := g.IndexMap[chem][i]
			if !seen[ip] {
				seen[ip] = true
				orbit = append(orbit, ip)
				visited[ip] = true
			}
		}
		lists = append(lists, orbit)
	}
	return lists
}
