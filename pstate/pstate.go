// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pstate implements the pair-state algebra: ordered solute-vacancy
// configurations living in the primitive unit cell, connected by an integer
// lattice translation R and a derived Cartesian vector dx.
package pstate

import (
	"github.com/cpmech/gosl/chk"
)

// PairState is an ordered pair of sites (I,J) connected by the lattice
// translation R (in units of primitive lattice vectors) and the Cartesian
// displacement Dx from the position of I in the origin cell to the position
// of J in cell R. Dx is derived data: it is carried for convenience but
// equality and hashing depend only on (I,J,R) -- see Equal and Key.
type PairState struct {
	I, J int
	R    [3]int
	Dx   [3]float64
}

// Zero returns the zero pair state anchored at site i (i==j, R=0, dx=0)
func Zero(i int) PairState {
	return PairState{I: i, J: i}
}

// IsZero returns true if p is the zero pair state (same site, no translation)
func (p PairState) IsZero() bool {
	return p.I == p.J && p.R == [3]int{0, 0, 0}
}

// Key is the equality/hash key: dx is derived from (i,j,R) by the crystal
// geometry and therefore is deliberately excluded. Two PairStates with the
// same (I,J,R) but numerically different Dx (e.g. from two independent group
// actions that both reduce to the same image) are the same state.
type Key struct {
	I, J int
	R    [3]int
}

// Key returns the hashable equality key of p
func (p PairState) Key() Key { return Key{p.I, p.J, p.R} }

// Equal compares two pair states by (I,J,R) only, per the spec invariant
// that equality ignores Dx
func (p PairState) Equal(q PairState) bool { return p.Key() == q.Key() }

// Composable reports whether a+b is defined (a.J == b.I)
func (a PairState) Composable(b PairState) bool { return a.J == b.I }

// Add composes a then b: a+b is defined iff a.J == b.I. Returns a
// NotComposable error otherwise -- the algebra never silently returns a
// wrong value.
func (a PairState) Add(b PairState) (PairState, error) {
	if !a.Composable(b) {
		return PairState{}, chk.Err("pstate: NotComposable: a.J=%d != b.I=%d", a.J, b.I)
	}
	return PairState{
		I: a.I, J: b.J,
		R:  [3]int{a.R[0] + b.R[0], a.R[1] + b.R[1], a.R[2] + b.R[2]},
		Dx: [3]float64{a.Dx[0] + b.Dx[0], a.Dx[1] + b.Dx[1], a.Dx[2] + b.Dx[2]},
	}, nil
}

// Neg returns the reversal of p: (j,i,-R,-dx)
func (p PairState) Neg() PairState {
	return PairState{
		I: p.J, J: p.I,
		R:  [3]int{-p.R[0], -p.R[1], -p.R[2]},
		Dx: [3]float64{-p.Dx[0], -p.Dx[1], -p.Dx[2]},
	}
}

// Sub is the endpoint-difference operator a^b, defined iff a.I == b.I:
// returns (b.J, a.J, a.R-b.R, a.dx-b.dx)
func (a PairState) Sub(b PairState) (PairState, error) {
	if a.I != b.I {
		return PairState{}, chk.Err("pstate: NotComposable (Sub): a.I=%d != b.I=%d", a.I, b.I)
	}
	return PairState{
		I: b.J, J: a.J,
		R:  [3]int{a.R[0] - b.R[0], a.R[1] - b.R[1], a.R[2] - b.R[2]},
		Dx: [3]float64{a.Dx[0] - b.Dx[0], a.Dx[1] - b.Dx[1], a.Dx[2] - b.Dx[2]},
	}, nil
}

// Dx2 returns |dx|^2
func (p PairState) Dx2() float64 {
	return p.Dx[0]*p.Dx[0] + p.Dx[1]*p.Dx[1] + p.Dx[2]*p.Dx[2]
}
