// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gfcache implements Component C7: a memoization table from a
// thermodynamic-kinetic input key (the bare vacancy prefactors and
// beta-energies) to the resulting GF array and bare vacancy diffusivity,
// so that an Arrhenius-style temperature sweep that revisits the same
// omega0 rates does not re-run the Brillouin-zone quadrature.
package gfcache

import (
	"math"
	"sync"
)

// Entry is one cached Green-function evaluation: GF[k] is one scalar per
// GFstar (§4.5), D0vv the bare vacancy diffusivity at the same rates.
type Entry struct {
	GF   []float64
	D0vv [3][3]float64
}

// Key is the hashable cache key built from the hex-encoded bit patterns of
// the rounded rate-determining prefactor/energy arrays (§4.7, §9
// "Dictionaries keyed by numeric tuples"). Rounding to a fixed number of
// decimal digits defeats floating-point representation jitter between
// otherwise-identical calls; hex encoding keeps the key valid UTF-8, so it
// survives a json round trip.
type Key string

// digits is the number of decimal digits values are rounded to before
// hashing, matching §9's "rounded to e.g. 12 decimal digits" guidance.
const digits = 12

// MakeKey builds a Key from the prefactor and beta-energy arrays that
// determine the omega0 rates (§4.7: "keyed by the tuple (prefactors, βE,
// prefactorsT, βE_T)").
func MakeKey(pre, bE []float64) Key {
	buf := make([]byte, 0, 16*(len(pre)+len(bE)))
	for _, v := range pre {
		buf = appendRounded(buf, v)
	}
	for _, v := range bE {
		buf = appendRounded(buf, v)
	}
	return Key(buf)
}

func appendRounded(buf []byte, v float64) []byte {
	scale := math.Pow(10, digits)
	r := math.Round(v*scale) / scale
	bits := math.Float64bits(r)
	const hexDigits = "0123456789abcdef"
	for shift := 60; shift >= 0; shift -= 4 {
		buf = append(buf, hexDigits[(bits>>uint(shift))&0xf])
	}
	return buf
}

// Cache is the GF memoization table. The zero value is ready to use. Per
// spec.md §5, a serial caller needs no synchronization; Guarded wraps a
// Cache with a plain mutex for callers that share one cache across
// goroutines.
type Cache struct {
	m map[Key]*Entry
}

// New returns an empty, ready-to-use Cache.
func New() *Cache {
	return &Cache{m: map[Key]*Entry{}}
}

// Get returns the cached entry for key, if present.
func (c *Cache) Get(key Key) (*Entry, bool) {
	e, ok := c.m[key]
	return e, ok
}

// Put stores an entry under key, overwriting any previous value.
func (c *Cache) Put(key Key, e *Entry) {
	if c.m == nil {
		c.m = map[Key]*Entry{}
	}
	c.m[key] = e
}

// Len returns the number of distinct keys currently cached.
func (c *Cache) Len() int { return len(c.m) }

// Entries returns a shallow copy of the cache's key/entry map, used by
// persist to serialize a warm cache (§6, "Persistence").
func (c *Cache) Entries() map[Key]*Entry {
	out := make(map[Key]*Entry, len(c.m))
	for k, v := range c.m {
		out[k] = v
	}
	return out
}

// Guarded wraps a Cache with a mutex for concurrent access; nothing in this
// module uses it, and the single-threaded Lij path uses a plain Cache.
type Guarded struct {
	mu    sync.Mutex
	cache *Cache
}

// NewGuarded returns an empty, ready-to-use Guarded cache.
func NewGuarded() *Guarded {
	return &Guarded{cache: New()}
}

// Get returns the cached entry for key, if present.
func (g *Guarded) Get(key Key) (*Entry, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cache.Get(key)
}

// Put stores an entry under key, overwriting any previous value.
func (g *Guarded) Put(key Key, e *Entry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cache.Put(key, e)
}
