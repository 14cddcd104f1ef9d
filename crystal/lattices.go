// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystal

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// cubicCandidateRots returns the 48 signed-permutation matrices of the
// full cubic point group Oh -- the point group of both the FCC and the BCC
// Bravais lattices regardless of the (non-orthogonal) primitive vectors
// chosen to span them.
func cubicCandidateRots() [][][]float64 {
	perms := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	signs := [][3]float64{}
	for _, sx := range []float64{1, -1} {
		for _, sy := range []float64{1, -1} {
			for _, sz := range []float64{1, -1} {
				signs = append(signs, [3]float64{sx, sy, sz})
			}
		}
	}
	var out [][][]float64
	for _, p := range perms {
		for _, s := range signs {
			M := la.MatAlloc(3, 3)
			M[0][p[0]] = s[0]
			M[1][p[1]] = s[1]
			M[2][p[2]] = s[2]
			out = append(out, M)
		}
	}
	return out
}

// hexCandidateRots returns the 24 matrices of the hexagonal point group
// D6h: the 6 rotations about the c-axis and 6 in-plane C2 axes (D6, order
// 12), doubled by inversion.
func hexCandidateRots() [][][]float64 {
	var d6 [][][]float64
	for k := 0; k < 6; k++ {
		th := float64(k) * math.Pi / 3
		c, s := math.Cos(th), math.Sin(th)
		M := la.MatAlloc(3, 3)
		M[0][0], M[0][1] = c, -s
		M[1][0], M[1][1] = s, c
		M[2][2] = 1
		d6 = append(d6, M)
	}
	for k := 0; k < 6; k++ {
		phi := float64(k) * math.Pi / 6
		n := [3]float64{math.Cos(phi), math.Sin(phi), 0}
		M := la.MatAlloc(3, 3)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				id := 0.0
				if i == j {
					id = 1.0
				}
				M[i][j] = 2*n[i]*n[j] - id
			}
		}
		d6 = append(d6, M)
	}
	var out [][][]float64
	out = append(out, d6...)
	for _, M := range d6 {
		inv := la.MatAlloc(3, 3)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				inv[i][j] = -M[i][j]
			}
		}
		out = append(out, inv)
	}
	return out
}

// discoverGroupOps finds, for every candidate Cartesian rotation, a
// fractional translation (from candidateTrans) under which the single
// mobile species' basis maps onto itself -- i.e. it derives the
// crystal's (possibly non-symmorphic) space-group operations relevant to
// the mobile sublattice numerically, rather than by hand-derivation.
// Candidate rotations that map the basis onto itself under no candidate
// translation are skipped (they are not symmetries of the decorated
// lattice, only of the bare Bravais lattice).
func discoverGroupOps(lattice, invlatt [][]float64, basis [][]float64, candidateRots [][][]float64, candidateTrans [][]float64) []GroupOp {
	n := len(basis)
	tmp := &Crystal{Lattice: lattice, InvLatt: invlatt}
	var ops []GroupOp
	for _, R := range candidateRots {
		frot := tmp.fracRot(R)
	tryTrans:
		for _, t := range candidateTrans {
			indexmap := make([]int, n)
			used := make([]bool, n)
			for i := 0; i < n; i++ {
				x := matvec(frot, basis[i])
				for d := 0; d < 3; d++ {
					x[d] += t[d]
				}
				found := -1
				for j := 0; j < n; j++ {
					ok := true
					for d := 0; d < 3; d++ {
						f := x[d] - basis[j][d]
						r := round(f)
						if absf(f-r) > 1e-6 {
							ok = false
							break
						}
					}
					if ok {
						found = j
						break
					}
				}
				if found < 0 || used[found] {
					continue tryTrans
				}
				used[found] = true
				indexmap[i] = found
			}
			ops = append(ops, GroupOp{
				CartRot:  R,
				FracTran: append([]float64{}, t...),
				IndexMap: [][]int{indexmap},
			})
			continue
		}
	}
	return ops
}

func invert3(M [][]float64) [][]float64 {
	det := M[0][0]*(M[1][1]*M[2][2]-M[1][2]*M[2][1]) -
		M[0][1]*(M[1][0]*M[2][2]-M[1][2]*M[2][0]) +
		M[0][2]*(M[1][0]*M[2][1]-M[1][1]*M[2][0])
	if math.Abs(det) < 1e-14 {
		chk.Panic("crystal: singular lattice matrix")
	}
	inv := la.MatAlloc(3, 3)
	inv[0][0] = (M[1][1]*M[2][2] - M[1][2]*M[2][1]) / det
	inv[0][1] = (M[0][2]*M[2][1] - M[0][1]*M[2][2]) / det
	inv[0][2] = (M[0][1]*M[1][2] - M[0][2]*M[1][1]) / det
	inv[1][0] = (M[1][2]*M[2][0] - M[1][0]*M[2][2]) / det
	inv[1][1] = (M[0][0]*M[2][2] - M[0][2]*M[2][0]) / det
	inv[1][2] = (M[0][2]*M[1][0] - M[0][0]*M[1][2]) / det
	inv[2][0] = (M[1][0]*M[2][1] - M[1][1]*M[2][0]) / det
	inv[2][1] = (M[0][1]*M[2][0] - M[0][0]*M[2][1]) / det
	inv[2][2] = (M[0][0]*M[1][1] - M[0][1]*M[1][0]) / det
	return inv
}

// FCC builds the face-centred-cubic crystal (one mobile species, Fm-3m,
// lattice constant a, conventional-cell edge length) from its primitive
// cell: one atom per cell, full Oh=48 point group.
func FCC(a float64) *Crystal {
	lat := la.MatAlloc(3, 3)
	vecs := [3][3]float64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			lat[row][col] = a / 2 * vecs[col][row]
		}
	}
	inv := invert3(lat)
	basis := [][]float64{{0, 0, 0}}
	ops := discoverGroupOps(lat, inv, basis, cubicCandidateRots(), [][]float64{{0, 0, 0}})
	return &Crystal{Lattice: lat, InvLatt: inv, Basis: [][][]float64{basis}, G: ops}
}

// BCC builds the body-centred-cubic crystal (Im-3m), analogous to FCC.
func BCC(a float64) *Crystal {
	lat := la.MatAlloc(3, 3)
	vecs := [3][3]float64{{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			lat[row][col] = a / 2 * vecs[col][row]
		}
	}
	inv := invert3(lat)
	basis := [][]float64{{0, 0, 0}}
	ops := discoverGroupOps(lat, inv, basis, cubicCandidateRots(), [][]float64{{0, 0, 0}})
	return &Crystal{Lattice: lat, InvLatt: inv, Basis: [][][]float64{basis}, G: ops}
}

// HCP builds the hexagonal-close-packed crystal (P6_3/mmc), lattice
// constant a and axial ratio covera (ideal value math.Sqrt(8.0/3.0)), two
// mobile-species sites per primitive cell at (0,0,0) and (1/3,2/3,1/2).
// Point-group operations are discovered numerically (discoverGroupOps)
// since several of D6h's operations here carry a non-symmorphic (0,0,1/2)
// or in-plane screw/glide translation.
func HCP(a, covera float64) *Crystal {
	lat := la.MatAlloc(3, 3)
	vecs := [3][3]float64{{1, 0, 0}, {-0.5, math.Sqrt(3) / 2, 0}, {0, 0, covera}}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			lat[row][col] = a * vecs[col][row]
		}
	}
	inv := invert3(lat)
	basis := [][]float64{{0, 0, 0}, {1.0 / 3, 2.0 / 3, 0.5}}
	trans := [][]float64{
		{0, 0, 0}, {0, 0, 0.5},
		{1.0 / 3, 2.0 / 3, 0}, {2.0 / 3, 1.0 / 3, 0},
		{1.0 / 3, 2.0 / 3, 0.5}, {2.0 / 3, 1.0 / 3, 0.5},
	}
	ops := discoverGroupOps(lat, inv, basis, hexCandidateRots(), trans)
	return &Crystal{Lattice: lat, InvLatt: inv, Basis: [][][]float64{basis}, G: ops}
}
