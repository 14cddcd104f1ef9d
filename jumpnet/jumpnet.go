// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package jumpnet derives the omega1 (vacancy hop near solute) and omega2
// (solute-vacancy exchange) jump networks from the bare vacancy omega0
// network and a StarSet enumeration, tagging each symmetry-unique jump with
// its parent omega0 type and the pair of stars it connects.
package jumpnet

import (
	"github.com/cpmech/onsager/pstate"
	"github.com/cpmech/onsager/starset"
)

// Image is one symmetry-equivalent occurrence of a jump: IS/FS are indices
// into the bound StarSet's enumerated state list, Dx is the vacancy
// displacement associated with the jump.
type Image struct {
	IS, FS int
	Dx     [3]float64
}

// Network is a symmetrized jump network: Jumps[k] lists the symmetry images
// of jump orbit k, JumpType[k] names the parent omega0 jump type index, and
// StarPair[k] names the (star(IS),star(FS)) pair orbit k connects.
//
// SVSVWyckoff[k] is the (soluteI,vacancyI,soluteF,vacancyF) Wyckoff-class
// quadruple of orbit k's representative image, set by BuildSVSVWyckoff; nil
// until then.
type Network struct {
	Jumps    [][]Image
	JumpType []int
	StarPair [][2]int

	SVSVWyckoff [][4]int
}

type candidate struct {
	i, f   pstate.PairState
	typ    int
	starI  int
	starF  int
}

// WrapOmega0 adapts a bare omega0 jump-orbit list (crystal.JumpNetwork's
// return value) into a Network, the shape the GF oracle and bare-
// diffusivity expansion consume. IS/FS are set to 0 throughout: omega0
// jumps carry no solute and the oracle/expansion only ever read Dx and the
// per-type tag for this network.
func WrapOmega0(omega0 [][]pstate.PairState) *Network {
	net := &Network{}
	for t, orbit := range omega0 {
		images := make([]Image, len(orbit))
		for i, p := range orbit {
			images[i] = Image{IS: 0, FS: 0, Dx: p.Dx}
		}
		net.Jumps = append(net.Jumps, images)
		net.JumpType = append(net.JumpType, t)
	}
	return net
}

// Omega1 derives the vacancy-hops-near-solute network (§4.3).
func Omega1(ss *starset.StarSet) *Network {
	return derive(ss, false)
}

// Omega2 derives the solute-vacancy exchange network (§4.3).
func Omega2(ss *starset.StarSet) *Network {
	return derive(ss, true)
}

// BuildSVSVWyckoff computes the SVSVWyckoff table for net (its representative
// image's solute/vacancy Wyckoff classes at each end, per sitelist) and
// returns it; it does not mutate net. kin must be the same StarSet net's
// images were derived against (IS/FS index into kin.States).
//
// spec.md's reference (OnsagerCalc.py's omega2svsvWyckoff) builds this table
// by copy-pasting the omega1 jump list instead of omega2's -- a bug. Always
// pass Omega2's own network here to get the corrected table.
func BuildSVSVWyckoff(net *Network, kin *starset.StarSet, sitelist [][]int) [][4]int {
	out := make([][4]int, len(net.Jumps))
	for k, orbit := range net.Jumps {
		im := orbit[0]
		psI, psF := kin.States[im.IS], kin.States[im.FS]
		out[k] = [4]int{
			wyckOf(sitelist, psI.I), wyckOf(sitelist, psI.J),
			wyckOf(sitelist, psF.I), wyckOf(sitelist, psF.J),
		}
	}
	return out
}

func wyckOf(sitelist [][]int, site int) int {
	for w, list := range sitelist {
		for _, s := range list {
			if s == site {
				return w
			}
		}
	}
	return -1
}

func derive(ss *starset.StarSet, exchange bool) *Network {
	var cands []candidate
	for t, orbit := range ss.Omega0 {
		for _, j := range orbit {
			for _, psI := range ss.States {
				if psI.IsZero() {
					continue
				}
				if !psI.Composable(j) {
					continue
				}
				psF, err := psI.Add(j)
				if err != nil {
					continue
				}
				if exchange {
					if !psF.IsZero() {
						continue
					}
					neg := psI.Neg()
					nentry, ok := ss.Lookup(neg)
					if !ok {
						continue
					}
					ientry, ok := ss.Lookup(psI)
					if !ok {
						continue
					}
					cands = append(cands, candidate{i: psI, f: neg, typ: t, starI: ientry.Star, starF: nentry.Star})
				} else {
					if psF.IsZero() {
						continue
					}
					if _, ok := ss.Lookup(psF); !ok {
						continue
					}
					ientry, _ := ss.Lookup(psI)
					fentry, _ := ss.Lookup(psF)
					cands = append(cands, candidate{i: psI, f: psF, typ: t, starI: ientry.Star, starF: fentry.Star})
				}
			}
		}
	}

	net := &Network{}
	seenOrbit := map[[2]int]bool{}
	for _, c := range cands {
		ientry, _ := ss.Lookup(c.i)
		fentry, _ := ss.Lookup(c.f)
		key := [2]int{ientry.State, fentry.State}
		if seenOrbit[key] {
			continue
		}
		var images []Image
		seenPair := map[[2]int]bool{}
		for _, g := range ss.Crystal.G {
			gi, err := ss.Crystal.ActOnPair(g, ss.Chem, c.i)
			if err != nil {
				continue
			}
			gf, err := ss.Crystal.ActOnPair(g, ss.Chem, c.f)
			if err != nil {
				continue
			}
			ie, ok1 := ss.Lookup(gi)
			fe, ok2 := ss.Lookup(gf)
			if !ok1 || !ok2 {
				continue
			}
			pk := [2]int{ie.State, fe.State}
			if seenPair[pk] {
				continue
			}
			seenPair[pk] = true
			seenOrbit[pk] = true
			dx := [3]float64{gf.Dx[0] - gi.Dx[0], gf.Dx[1] - gi.Dx[1], gf.Dx[2] - gi.Dx[2]}
			if exchange {
				// the vacancy moves onto the solute site: displacement -PS_i.dx
				dx = [3]float64{-gi.Dx[0], -gi.Dx[1], -gi.Dx[2]}
			}
			images = append(images, Image{IS: ie.State, FS: fe.State, Dx: dx})
		}
		if len(images) == 0 {
			continue
		}
		net.Jumps = append(net.Jumps, images)
		net.JumpType = append(net.JumpType, c.typ)
		net.StarPair = append(net.StarPair, [2]int{c.starI, c.starF})
	}
	return net
}
