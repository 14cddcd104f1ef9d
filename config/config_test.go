// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_config01(tst *testing.T) {

	chk.PrintTitle("config01: Read loads and defaults a .onsager file")

	dir := tst.TempDir()
	path := filepath.Join(dir, "run.onsager")
	body := `{
		"data": {"desc": "fcc nn test"},
		"crystal": {"kind": "fcc", "a": 1.0},
		"chem": 0,
		"cutoff": 0.71,
		"nthermo": 1
	}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Fatalf("WriteFile failed: %v", err)
	}

	c, err := Read(path)
	if err != nil {
		tst.Fatalf("Read failed: %v", err)
	}
	if c.Data.Encoder != "gob" {
		tst.Errorf("expected default encoder gob, got %q", c.Data.Encoder)
	}
	if c.NGrid != 9 {
		tst.Errorf("expected default ngrid 9, got %d", c.NGrid)
	}
	if c.Key != "run" {
		tst.Errorf("expected key 'run', got %q", c.Key)
	}

	cr, err := c.Crystal.Build()
	if err != nil {
		tst.Fatalf("Crystal.Build failed: %v", err)
	}
	if len(cr.Basis[0]) != 1 {
		tst.Errorf("expected FCC to have a single basis site, got %d", len(cr.Basis[0]))
	}
}

func Test_config02(tst *testing.T) {

	chk.PrintTitle("config02: Read rejects an uninitialized thermodynamic shell")

	dir := tst.TempDir()
	path := filepath.Join(dir, "bad.onsager")
	body := `{"crystal": {"kind": "bcc", "a": 1.0}, "nthermo": 0}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Read(path); err == nil {
		tst.Errorf("expected an error for nthermo=0")
	}
}
