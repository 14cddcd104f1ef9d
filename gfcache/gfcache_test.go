// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gfcache

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_gfcache01(tst *testing.T) {

	chk.PrintTitle("gfcache01: identical rates within rounding tolerance hit the same key")

	k1 := MakeKey([]float64{1.0, 2.0}, []float64{0.5})
	k2 := MakeKey([]float64{1.0 + 1e-13, 2.0 - 1e-13}, []float64{0.5})
	if k1 != k2 {
		tst.Errorf("expected keys within rounding tolerance to collide")
	}

	k3 := MakeKey([]float64{1.0, 2.0}, []float64{0.6})
	if k1 == k3 {
		tst.Errorf("expected distinct beta-energies to produce distinct keys")
	}
}

func Test_gfcache02(tst *testing.T) {

	chk.PrintTitle("gfcache02: Put then Get round-trips")

	c := New()
	key := MakeKey([]float64{1.0}, []float64{0.0})
	if _, ok := c.Get(key); ok {
		tst.Errorf("expected miss on empty cache")
	}
	e := &Entry{GF: []float64{1, 2, 3}, D0vv: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
	c.Put(key, e)
	got, ok := c.Get(key)
	if !ok {
		tst.Fatalf("expected hit after Put")
	}
	if len(got.GF) != 3 || got.GF[1] != 2 {
		tst.Errorf("expected GF round-trip, got %v", got.GF)
	}
	if c.Len() != 1 {
		tst.Errorf("expected 1 cached entry, got %d", c.Len())
	}
}

func Test_gfcache03(tst *testing.T) {

	chk.PrintTitle("gfcache03: Guarded cache round-trips under the same semantics")

	g := NewGuarded()
	key := MakeKey([]float64{2.0}, []float64{1.0})
	e := &Entry{GF: []float64{5}}
	g.Put(key, e)
	got, ok := g.Get(key)
	if !ok || len(got.GF) != 1 || got.GF[0] != 5 {
		tst.Errorf("expected Guarded round-trip, got %v ok=%v", got, ok)
	}
}
