// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstate

import "github.com/cpmech/gosl/chk"

// Dumbbell is a single-species self-interstitial orientation state: a site
// in the primitive cell plus an orientation index into the crystal's
// direction table, translated by R. Grounded on the reference
// implementation's dumbbell(iorind, R) namedtuple (DB_structs.py) -- here
// the orientation index and site index are split for clarity since Go has
// no namedtuple destructuring.
type Dumbbell struct {
	Site  int // intra-species site index
	Orind int // orientation index into the crystal's direction table
	R     [3]int
}

// Equal compares two dumbbells by (Site,Orind,R)
func (d Dumbbell) Equal(o Dumbbell) bool {
	return d.Site == o.Site && d.Orind == o.Orind && d.R == o.R
}

// Translate returns d shifted by the lattice translation t
func (d Dumbbell) Translate(t [3]int) Dumbbell {
	return Dumbbell{Site: d.Site, Orind: d.Orind, R: [3]int{d.R[0] + t[0], d.R[1] + t[1], d.R[2] + t[2]}}
}

// SVPair is a solute-vacancy (here: solute-dumbbell) pair state: the solute
// sits at (iSolute, Rsolute), the dumbbell is Db. Grounded on the
// reference's SdPair(i_s, R_s, db) namedtuple.
type SVPair struct {
	ISolute int
	RSolute [3]int
	Db      Dumbbell
}

// Equal compares two SVPairs
func (p SVPair) Equal(o SVPair) bool {
	return p.ISolute == o.ISolute && p.RSolute == o.RSolute && p.Db.Equal(o.Db)
}

// State is the tagged sum type named in the design notes: a PairState, a
// Dumbbell, or an SVPair. Arithmetic across variants is rejected by
// State.Add with a WrongType error rather than silently coerced -- Go's type
// system already prevents a PairState.Add(Dumbbell) from type-checking; this
// wrapper exists for code paths (e.g. persistence, generic printing) that
// need to hold any one of the three without a type switch at every call
// site.
type Kind int

const (
	KindPair Kind = iota
	KindDumbbell
	KindSVPair
)

type State struct {
	Kind     Kind
	Pair     PairState
	Dumbbell Dumbbell
	SVPair   SVPair
}

// NewPairState wraps a PairState as a State
func NewPairState(p PairState) State { return State{Kind: KindPair, Pair: p} }

// NewDumbbell wraps a Dumbbell as a State
func NewDumbbell(d Dumbbell) State { return State{Kind: KindDumbbell, Dumbbell: d} }

// NewSVPair wraps an SVPair as a State
func NewSVPair(p SVPair) State { return State{Kind: KindSVPair, SVPair: p} }

// Add composes two states of the same kind; mixing kinds is a WrongType error
func (a State) Add(b State) (State, error) {
	if a.Kind != b.Kind {
		return State{}, chk.Err("pstate: WrongType: cannot add %v to %v", b.Kind, a.Kind)
	}
	switch a.Kind {
	case KindPair:
		r, err := a.Pair.Add(b.Pair)
		if err != nil {
			return State{}, err
		}
		return NewPairState(r), nil
	case KindDumbbell:
		return NewDumbbell(a.Dumbbell.Translate(b.Dumbbell.R)), nil
	default:
		return State{}, chk.Err("pstate: WrongType: SVPair does not support Add")
	}
}
