// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config implements the input data read from a (.onsager) JSON
// file, the same role the teacher's inp package plays for a (.sim) file:
// crystal selection, shell/cutoff parameters, output encoding, and the
// site/jump free-energy bundle Lij consumes.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/onsager/crystal"
	"github.com/cpmech/onsager/diffuser"
)

// CrystalData selects and parametrizes one of the built-in Bravais
// lattices (§6, "Crystal oracle"); a != 0 is the lattice constant, covera
// is only used by the hexagonal lattice.
type CrystalData struct {
	Kind   string  `json:"kind"`   // "fcc", "bcc" or "hcp"
	A      float64 `json:"a"`      // lattice constant
	CovorA float64 `json:"covera"` // c/a ratio, hcp only
}

// Build constructs the concrete crystal named by Kind.
func (c CrystalData) Build() (*crystal.Crystal, error) {
	switch c.Kind {
	case "fcc":
		return crystal.FCC(c.A), nil
	case "bcc":
		return crystal.BCC(c.A), nil
	case "hcp":
		return crystal.HCP(c.A, c.CovorA), nil
	default:
		return nil, chk.Err("config: CrystalData.Build: unknown crystal kind %q", c.Kind)
	}
}

// Data holds global run configuration, mirroring the teacher's inp.Data
// (description, output directory, encoder) narrowed to this module's
// domain.
type Data struct {
	Desc    string `json:"desc"`    // description of the run
	DirOut  string `json:"dirout"`  // output directory for persisted state
	Encoder string `json:"encoder"` // "gob" or "json"
}

// SetDefault fills zero-value fields with sensible defaults, matching the
// teacher's SolverData.SetDefault pattern (inp/sim.go).
func (d *Data) SetDefault() {
	if d.Encoder != "gob" && d.Encoder != "json" {
		d.Encoder = "gob"
	}
	if d.DirOut == "" {
		d.DirOut = "/tmp/onsager"
	}
}

// Config is the full (.onsager) file contents.
type Config struct {
	Data    Data            `json:"data"`
	Crystal CrystalData     `json:"crystal"`
	Chem    int             `json:"chem"`    // mobile-species index
	Cutoff  float64         `json:"cutoff"`  // omega0 jump network cutoff
	NThermo int             `json:"nthermo"` // thermodynamic shell count
	NGrid   int             `json:"ngrid"`   // GF Brillouin-zone quadrature points per axis
	PreEne  diffuser.PreEne `json:"preene"`  // site/jump prefactor-energy bundle

	// derived, not read from the file
	Key string
}

// Read loads and validates a (.onsager) JSON configuration file, the
// Config analogue of the teacher's inp.ReadSim.
func Read(path string) (*Config, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("config: Read: cannot read %q: %v", path, err)
	}
	var c Config
	c.NGrid = 9
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, chk.Err("config: Read: cannot unmarshal %q: %v", path, err)
	}
	c.Data.SetDefault()
	fn := filepath.Base(path)
	c.Key = io.FnKey(fn)
	if c.NThermo < 1 {
		return nil, chk.Err("config: Read: ShellNotInitialized: nthermo must be >= 1, got %d", c.NThermo)
	}
	if err := os.MkdirAll(c.Data.DirOut, 0755); err != nil {
		return nil, chk.Err("config: Read: cannot create output directory %q: %v", c.Data.DirOut, err)
	}
	return &c, nil
}
