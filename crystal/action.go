// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crystal

import (
	"math"
	"sort"

	"github.com/cpmech/onsager/pstate"
)

// Dx returns the Cartesian vector from site i (cell 0) to site j (cell R)
// of species chem: dx = L*(R + b[j] - b[i]), the invariant of §3.
func (c *Crystal) Dx(chem int, R [3]int, i, j int) [3]float64 {
	x := make([]float64, 3)
	for d := 0; d < 3; d++ {
		x[d] = float64(R[d]) + c.Basis[chem][j][d] - c.Basis[chem][i][d]
	}
	v := c.frac2cart(x)
	return [3]float64{v[0], v[1], v[2]}
}

// ActOnPair applies group operation g to pair state p (species chem),
// returning the image pair state g*p with its Dx recomputed from the
// crystal geometry.
func (c *Crystal) ActOnPair(g GroupOp, chem int, p pstate.PairState) (pstate.PairState, error) {
	Ri, ip, err := c.GPos(g, [3]int{0, 0, 0}, chem, p.I)
	if err != nil {
		return pstate.PairState{}, err
	}
	Rj, jp, err := c.GPos(g, p.R, chem, p.J)
	if err != nil {
		return pstate.PairState{}, err
	}
	Rp := [3]int{Rj[0] - Ri[0], Rj[1] - Ri[1], Rj[2] - Ri[2]}
	dx := c.Dx(chem, Rp, ip, jp)
	return pstate.PairState{I: ip, J: jp, R: Rp, Dx: dx}, nil
}

// JumpNetwork enumerates the symmetry-unique bare-vacancy (omega0) jumps
// of species chem within cutoff (Cartesian distance), grouped into orbits
// under the full point group. This is the external crystal collaborator's
// jumpnetwork(chem, cutoff) named in spec.md §6; the core only ever
// consumes its result, never reconstructs it.
func (c *Crystal) JumpNetwork(chem int, cutoff float64) [][]pstate.PairState {
	n := len(c.Basis[chem])
	// search range of R wide enough to capture anything within cutoff
	rmax := int(math.Ceil(cutoff/cellScale(c.Lattice))) + 1

	var candidates []pstate.PairState
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for rx := -rmax; rx <= rmax; rx++ {
				for ry := -rmax; ry <= rmax; ry++ {
					for rz := -rmax; rz <= rmax; rz++ {
						R := [3]int{rx, ry, rz}
						if i == j && R == [3]int{0, 0, 0} {
							continue
						}
						dx := c.Dx(chem, R, i, j)
						d2 := dx[0]*dx[0] + dx[1]*dx[1] + dx[2]*dx[2]
						if d2 <= cutoff*cutoff+1e-8 {
							candidates = append(candidates, pstate.PairState{I: i, J: j, R: R, Dx: dx})
						}
					}
				}
			}
		}
	}

	sort.Slice(candidates, func(a, b int) bool { return candidates[a].Dx2() < candidates[b].Dx2() })

	visited := make(map[pstate.Key]bool)
	var orbits [][]pstate.PairState
	for _, s := range candidates {
		if visited[s.Key()] {
			continue
		}
		seen := map[pstate.Key]bool{}
		var orbit []pstate.PairState
		for _, g := range c.G {
			gs, err := c.ActOnPair(g, chem, s)
			if err != nil {
				continue
			}
			if !seen[gs.Key()] {
				seen[gs.Key()] = true
				orbit = append(orbit, gs)
				visited[gs.Key()] = true
			}
		}
		orbits = append(orbits, orbit)
	}
	return orbits
}

// cellScale returns a representative length scale of the lattice (the
// shortest primitive-vector norm), used to bound the R-search range.
func cellScale(lat [][]float64) float64 {
	min := math.Inf(1)
	for col := 0; col < 3; col++ {
		n := math.Sqrt(lat[0][col]*lat[0][col] + lat[1][col]*lat[1][col] + lat[2][col]*lat[2][col])
		if n < min {
			min = n
		}
	}
	if min == 0 {
		return 1
	}
	return min
}
