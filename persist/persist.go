// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package persist saves and loads a Diffuser to/from an opaque keyed blob
// store (spec.md §6, "Persistence"): the construction inputs (crystal,
// species, site list, omega0 network, shell count) and the GF cache are
// written; stars, vector-stars, networks and expansions are re-derived on
// load. Encoding goes through the pluggable gob/json seam the teacher's element types encode
// their internal state through, `gosl/utl.Encoder`/`gosl/utl.Decoder`.
package persist

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/diffuser"
	"github.com/cpmech/onsager/gf"
	"github.com/cpmech/onsager/gfcache"
	"github.com/cpmech/onsager/pstate"
)

// GetEncoder returns a gob encoder unless enctype=="json". *gob.Encoder and
// *json.Encoder both already satisfy utl.Encoder structurally.
func GetEncoder(w goio.Writer, enctype string) utl.Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a gob decoder unless enctype=="json".
func GetDecoder(r goio.Reader, enctype string) utl.Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// crystalState is the plain-data mirror of crystal.Crystal: the construction
// route (discoverGroupOps) is not re-run on load, every group operation is
// persisted directly.
type crystalState struct {
	Lattice, InvLatt [][]float64
	Basis            [][][]float64
	G                []crystal.GroupOp
}

// state is everything a Diffuser needs to be reconstructed, except the GF
// oracle (an external collaborator, supplied fresh by the caller on Load,
// per spec.md §6's "GF oracle (consumed)").
type state struct {
	Crystal  crystalState
	Chem     int
	SiteList [][]int
	Omega0   [][]pstate.PairState
	NThermo  int
	Cache    map[gfcache.Key]*gfcache.Entry
}

// Save writes d's construction inputs and warm GF cache to w.
func Save(w goio.Writer, d *diffuser.Diffuser, enctype string) error {
	st := state{
		Crystal: crystalState{
			Lattice: d.Crystal.Lattice,
			InvLatt: d.Crystal.InvLatt,
			Basis:   d.Crystal.Basis,
			G:       d.Crystal.G,
		},
		Chem:     d.Chem,
		SiteList: d.SiteList,
		Omega0:   d.Omega0,
		NThermo:  d.Thermo.Nshells,
		Cache:    d.Cache.Entries(),
	}
	enc := GetEncoder(w, enctype)
	if err := enc.Encode(&st); err != nil {
		return chk.Err("persist: Save: %v", err)
	}
	return nil
}

// Load rebuilds a Diffuser from r, re-deriving every geometric component
// (stars, vector-stars, networks, expansions) via diffuser.New -- only the
// GF cache is restored verbatim, since it is the sole mutable structure
// (§5, "Shared-resource policy"). oracle is supplied fresh by the caller,
// matching the GF oracle's role as an external collaborator (§6).
func Load(r goio.Reader, enctype string, oracle gf.Oracle) (*diffuser.Diffuser, error) {
	var st state
	dec := GetDecoder(r, enctype)
	if err := dec.Decode(&st); err != nil {
		return nil, chk.Err("persist: Load: %v", err)
	}
	cr := &crystal.Crystal{
		Lattice: st.Crystal.Lattice,
		InvLatt: st.Crystal.InvLatt,
		Basis:   st.Crystal.Basis,
		G:       st.Crystal.G,
	}
	d, err := diffuser.New(cr, st.Chem, st.SiteList, st.Omega0, st.NThermo, oracle)
	if err != nil {
		return nil, err
	}
	for k, e := range st.Cache {
		d.Cache.Put(k, e)
	}
	return d, nil
}

// EncodeBytes is a convenience wrapper returning the encoded state as a
// byte slice, matching the teacher's bytes.Buffer + save_file pattern
// (fem/fileio.go) without binding persist to a specific filesystem layout.
func EncodeBytes(d *diffuser.Diffuser, enctype string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Save(&buf, d, enctype); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
