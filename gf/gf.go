// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gf implements the Green-function external collaborator named in
// spec.md §6: given a crystal, a mobile-species index and a bare vacancy
// jump network, it evaluates the lattice random-walk Green's function
// G(i,j,R) at an arbitrary pair-state endpoint and reports the bare
// vacancy diffusivity tensor, for a given set of symmetrized jump rates.
// diffuser consumes any Oracle as a black box (spec.md's "external
// collaborator" seam); this package additionally supplies one concrete
// implementation so the module is buildable and testable end-to-end.
package gf

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/jumpnet"
)

// Oracle is the GF collaborator's interface (spec.md §6). diffuser accepts
// any Oracle, so a test may substitute a stub without touching the
// Brillouin-zone quadrature below.
type Oracle interface {
	SetRates(pre, bE []float64) error
	Eval(R [3]int, i, j int) float64
	Diffusivity() [3][3]float64
}

// BZOracle evaluates the lattice Green's function by direct numerical
// quadrature of its Brillouin-zone integral representation
//
//	G(i,j,R) = (1/V) * Integral_BZ (exp(iq.dx(R,i,j)) - 1) / F(q) dq
//	F(q) = sum_k rate_k * (cos(q.dx_k) - 1)
//
// grounded on the discrete-Fourier-transform construction in
// original_source/GFcalc.py (DFTfunc). F(q) vanishes quadratically at
// q=0 (the random walk is unbiased) but the BZ integral itself is finite
// in three dimensions; rather than the reference's analytic small-q
// pole subtraction (GFcalc.py's D2/calcDE continuum correction, which
// needs a 3x3 eigensolver nothing in the pack otherwise exercises), this
// quadrature uses a cell-centered (never-exactly-zero) reciprocal grid,
// which avoids the 0/0 indeterminacy directly (see DESIGN.md).
type BZOracle struct {
	Crystal *crystal.Crystal
	Chem    int
	Omega0  *jumpnet.Network
	NGrid   int // quadrature points per reciprocal axis

	rates []float64
	volBZ float64
}

// New builds a BZOracle. ngrid is the number of quadrature points per
// reciprocal axis; it is rounded up to even so that no cell center of the
// symmetric grid lands on q=0.
func New(cr *crystal.Crystal, chem int, omega0 *jumpnet.Network, ngrid int) *BZOracle {
	if ngrid < 1 {
		ngrid = 1
	}
	if ngrid%2 != 0 {
		ngrid++
	}
	return &BZOracle{Crystal: cr, Chem: chem, Omega0: omega0, NGrid: ngrid}
}

// SetRates assigns one symmetrized rate per omega0 jump orbit.
func (o *BZOracle) SetRates(pre, bE []float64) error {
	if len(pre) != len(o.Omega0.Jumps) || len(bE) != len(o.Omega0.Jumps) {
		return chk.Err("gf: SetRates: expected %d rates, got pre=%d bE=%d", len(o.Omega0.Jumps), len(pre), len(bE))
	}
	o.rates = make([]float64, len(pre))
	for k := range pre {
		o.rates[k] = pre[k] * math.Exp(-bE[k])
	}
	return nil
}

// dftF evaluates F(q) = sum over every image of every omega0 orbit of
// rate*(cos(q.dx)-1), the Fourier transform of the escape-corrected jump
// rates (GFcalc.py's DFTfunc).
func (o *BZOracle) dftF(q [3]float64) float64 {
	var f float64
	for k, orbit := range o.Omega0.Jumps {
		r := o.rates[k]
		for _, im := range orbit {
			qx := q[0]*im.Dx[0] + q[1]*im.Dx[1] + q[2]*im.Dx[2]
			f += r * (math.Cos(qx) - 1)
		}
	}
	return f
}

// Eval returns the lattice Green's function value G(i,j,R): the expected
// number of visits to site (chem,j,R) of a random walk started at
// (chem,i,0), relative to a uniform reference (spec.md §6, "(i,j,R) ->
// scalar").
func (o *BZOracle) Eval(R [3]int, i, j int) float64 {
	dx := o.Crystal.Dx(o.Chem, R, i, j)
	n := o.NGrid
	xs := cellCenters(n)
	grid := make([]float64, n)
	for a, qa := range xs {
		ys := make([]float64, n)
		for b, qb := range xs {
			zs := make([]float64, n)
			for c, qc := range xs {
				q := [3]float64{qa, qb, qc}
				f := o.dftF(q)
				qx := q[0]*dx[0] + q[1]*dx[1] + q[2]*dx[2]
				zs[c] = (math.Cos(qx) - 1) / f
			}
			ys[b] = num.Trapz(xs, zs)
		}
		grid[a] = num.Trapz(xs, ys)
	}
	integral := num.Trapz(xs, grid)
	span := xs[n-1] - xs[0]
	vol := span * span * span
	if vol == 0 {
		return 0
	}
	return -integral / vol
}

// Diffusivity returns the bare vacancy diffusivity L0vv = 1/2 *
// sum_k rate_k * dx_k (x) dx_k, the long-wavelength (q->0) limit of the
// Fourier-transformed jump rates (GFcalc.py's D2).
func (o *BZOracle) Diffusivity() [3][3]float64 {
	var D [3][3]float64
	for k, orbit := range o.Omega0.Jumps {
		r := o.rates[k]
		for _, im := range orbit {
			for a := 0; a < 3; a++ {
				for b := 0; b < 3; b++ {
					D[a][b] += 0.5 * r * im.Dx[a] * im.Dx[b]
				}
			}
		}
	}
	return D
}

// cellCenters returns n reciprocal-space sample points in (-pi,pi),
// centered in n equal cells; for even n (as New guarantees) none lands on
// q=0, avoiding the F(q)=0 pole there without an analytic subtraction.
func cellCenters(n int) []float64 {
	out := make([]float64, n)
	width := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		out[i] = -math.Pi + width*(float64(i)+0.5)
	}
	return out
}
