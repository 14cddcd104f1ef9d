// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package starset enumerates solute-vacancy pair states reachable within a
// finite thermodynamic shell and partitions them into orbits ("stars")
// under the crystallographic point group.
package starset

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/pstate"
)

// IndexEntry is the (state-index, star-index) pair stored per PairState key
type IndexEntry struct {
	State int
	Star  int
}

// StarSet is the result of enumerating and orbit-decomposing pair states.
type StarSet struct {
	Crystal *crystal.Crystal
	Chem    int
	Omega0  [][]pstate.PairState // the jump list used to grow shells

	States    []pstate.PairState // ordered, sorted by |dx|^2
	Stars     [][]int            // Stars[s] -> state indices
	StarOf    []int              // StarOf[stateIndex] -> star index
	IndexDict map[pstate.Key]IndexEntry

	Nshells int
}

// New creates an empty StarSet bound to a crystal, mobile species and
// omega0 jump network. Call Generate to populate it.
func New(cr *crystal.Crystal, chem int, omega0 [][]pstate.PairState) *StarSet {
	return &StarSet{Crystal: cr, Chem: chem, Omega0: omega0, IndexDict: map[pstate.Key]IndexEntry{}}
}

// flatJumps flattens the omega0 orbit list into a plain jump list
func (s *StarSet) flatJumps() []pstate.PairState {
	var out []pstate.PairState
	for _, orbit := range s.Omega0 {
		out = append(out, orbit...)
	}
	return out
}

// Generate (re)builds the star set from scratch for shell count N >= 1.
// Extending with the same N already constructed is a no-op (§4.2).
func (s *StarSet) Generate(N int) error {
	if N < 1 {
		return chk.Err("starset: Generate: N must be >= 1, got %d", N)
	}
	if N == s.Nshells && s.States != nil {
		return nil // no-op: already generated at this shell count
	}

	jumps := s.flatJumps()

	seen := map[pstate.Key]bool{}
	var all []pstate.PairState
	shell := append([]pstate.PairState{}, jumps...)
	for _, p := range shell {
		if !seen[p.Key()] {
			seen[p.Key()] = true
			all = append(all, p)
		}
	}

	for k := 1; k < N; k++ {
		var next []pstate.PairState
		for _, s1 := range shell {
			for _, s2 := range jumps {
				if !s1.Composable(s2) {
					continue
				}
				sum, err := s1.Add(s2)
				if err != nil {
					continue
				}
				if sum.IsZero() {
					continue
				}
				next = append(next, sum)
			}
		}
		shell = next
		for _, p := range shell {
			if !seen[p.Key()] {
				seen[p.Key()] = true
				all = append(all, p)
			}
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Dx2() < all[j].Dx2() })
	s.rebuildFrom(all)
	s.Nshells = N
	return nil
}

// rebuildFrom (re)computes States/Stars/StarOf/IndexDict from an already
// deduplicated, sorted state list by decomposing it into orbits under the
// crystal's point group. Shared by Generate, Union, DiffGenerate and
// AddOriginStates so the orbit-decomposition logic lives in one place.
func (s *StarSet) rebuildFrom(all []pstate.PairState) {
	s.States = all
	s.StarOf = make([]int, len(all))
	for i := range s.StarOf {
		s.StarOf[i] = -1
	}
	s.Stars = nil
	s.IndexDict = map[pstate.Key]IndexEntry{}

	keyToIdx := map[pstate.Key]int{}
	for i, p := range all {
		keyToIdx[p.Key()] = i
	}

	visited := make([]bool, len(all))
	for i, p := range all {
		if visited[i] {
			continue
		}
		starIdx := len(s.Stars)
		seenKeys := map[pstate.Key]bool{}
		var members []int
		for _, g := range s.Crystal.G {
			gp, err := s.Crystal.ActOnPair(g, s.Chem, p)
			if err != nil {
				continue
			}
			if seenKeys[gp.Key()] {
				continue
			}
			seenKeys[gp.Key()] = true
			idx, ok := keyToIdx[gp.Key()]
			if !ok {
				continue // image fell outside the enumerated set (shouldn't happen if closed)
			}
			if !visited[idx] {
				visited[idx] = true
				members = append(members, idx)
				s.StarOf[idx] = starIdx
			}
		}
		if len(members) == 0 {
			visited[i] = true
			members = []int{i}
			s.StarOf[i] = starIdx
		}
		s.Stars = append(s.Stars, members)
	}

	for i, p := range all {
		s.IndexDict[p.Key()] = IndexEntry{State: i, Star: s.StarOf[i]}
	}
}

// AddOriginStates extends the enumerated set with the zero PairState for
// every site of the mobile species' sublattice (§4.2, "origin states"). The
// zero state is excluded from ordinary shell growth, but the vector-star
// origin branch (§4.4) needs one entry per symmetry-distinct site to anchor
// a solute sitting on-site with no paired vacancy displacement. Callers
// that don't build vector stars never need to call this. Idempotent.
func (s *StarSet) AddOriginStates() error {
	if s.States == nil {
		return chk.Err("starset: AddOriginStates: call Generate first")
	}
	var all []pstate.PairState
	added := false
	for i := range s.Crystal.Basis[s.Chem] {
		z := pstate.Zero(i)
		if _, ok := s.IndexDict[z.Key()]; ok {
			continue
		}
		all = append(all, z)
		added = true
	}
	if !added {
		return nil
	}
	all = append(all, s.States...)
	sort.Slice(all, func(i, j int) bool { return all[i].Dx2() < all[j].Dx2() })
	s.rebuildFrom(all)
	return nil
}

// Lookup finds the (state,star) index pair for a pair state, if enumerated.
func (s *StarSet) Lookup(p pstate.PairState) (IndexEntry, bool) {
	e, ok := s.IndexDict[p.Key()]
	return e, ok
}

// NumStars returns the number of stars
func (s *StarSet) NumStars() int { return len(s.Stars) }

// Union returns a new StarSet containing all states reachable from the
// union of s and o's states plus their pairwise compositions (§4.2,
// "Star union"). Mixing different species is rejected.
func Union(s, o *StarSet) (*StarSet, error) {
	if s.Chem != o.Chem {
		return nil, chk.Err("starset: Union: mismatched species %d != %d", s.Chem, o.Chem)
	}
	merged := map[pstate.Key]pstate.PairState{}
	for _, p := range s.States {
		merged[p.Key()] = p
	}
	for _, p := range o.States {
		merged[p.Key()] = p
	}
	for _, a := range s.States {
		for _, b := range o.States {
			if a.Composable(b) {
				if c, err := a.Add(b); err == nil && !c.IsZero() {
					merged[c.Key()] = c
				}
			}
		}
	}
	var all []pstate.PairState
	for _, p := range merged {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Dx2() < all[j].Dx2() })

	out := New(s.Crystal, s.Chem, s.Omega0)
	out.rebuildFrom(all)
	return out, nil
}

// DiffGenerate produces the endpoint-difference generator set described in
// §4.2: { sB ^ sA : sA in A, sB in B, composable }, itself decomposed into
// stars. This is the Green-function "difference star set" used by the GF
// expansion (§4.5).
func DiffGenerate(a, b *StarSet) (*StarSet, error) {
	if a.Chem != b.Chem {
		return nil, chk.Err("starset: DiffGenerate: mismatched species")
	}
	seen := map[pstate.Key]pstate.PairState{}
	for _, sa := range a.States {
		for _, sb := range b.States {
			if sb.I != sa.I {
				continue
			}
			d, err := sb.Sub(sa)
			if err != nil {
				continue
			}
			seen[d.Key()] = d
		}
	}
	// also include the zero state explicitly: GF(i,i,0) is always needed
	for chemIdx := range a.Crystal.Basis[a.Chem] {
		z := pstate.Zero(chemIdx)
		seen[z.Key()] = z
	}
	var all []pstate.PairState
	for _, p := range seen {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Dx2() < all[j].Dx2() })

	out := New(a.Crystal, a.Chem, a.Omega0)
	out.rebuildFrom(all)
	return out, nil
}
