// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/onsager/config"
	"github.com/cpmech/onsager/diffuser"
	"github.com/cpmech/onsager/gf"
	"github.com/cpmech/onsager/jumpnet"
)

func main() {

	verbose := true

	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nonsager -- Onsager transport-coefficient calculator\n\n")
	io.Pf("Copyright 2016 The Gofem Authors. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	kT := flag.Float64("kT", 1.0, "thermal energy kT used to convert prefactor/energy pairs to beta-free-energies")
	flag.Parse()

	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a configuration filename. Ex.: fcc.onsager")
	}
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".onsager"
	}

	cfg, err := config.Read(fnamepath)
	if err != nil {
		chk.Panic("%v", err)
	}

	cr, err := cfg.Crystal.Build()
	if err != nil {
		chk.Panic("%v", err)
	}

	sitelist := cr.SiteList(cfg.Chem)
	omega0 := cr.JumpNetwork(cfg.Chem, cfg.Cutoff)

	oracle := gf.New(cr, cfg.Chem, jumpnet.WrapOmega0(omega0), cfg.NGrid)

	d, err := diffuser.New(cr, cfg.Chem, sitelist, omega0, cfg.NThermo, oracle)
	if err != nil {
		chk.Panic("%v", err)
	}

	if verbose {
		io.Pf("\nconfigured parameters:\n")
		for _, p := range cfg.PreEne.ToDbfParams() {
			io.Pf("  %-8s = %g\n", p.N, p.V)
		}
	}

	bFV, bFS, bFSV, bFT0, bFT1, bFT2 := diffuser.PreEne2BetaFree(*kT, cfg.PreEne)
	Lvv, Lss, Lsv, Lvv1, err := d.Lij(bFV, bFS, bFSV, bFT0, bFT1, bFT2)
	if err != nil {
		chk.Panic("%v", err)
	}

	if verbose {
		io.Pf("\nrun: %s (kT=%g)\n\n", cfg.Key, *kT)
		printTensor("L_vv ", Lvv)
		printTensor("L_ss ", Lss)
		printTensor("L_sv ", Lsv)
		printTensor("L_vv1", Lvv1)
	}
}

func printTensor(name string, T [3][3]float64) {
	io.Pf("%s = [% .6e % .6e % .6e]\n", name, T[0][0], T[0][1], T[0][2])
	io.Pf("         [% .6e % .6e % .6e]\n", T[1][0], T[1][1], T[1][2])
	io.Pf("         [% .6e % .6e % .6e]\n\n", T[2][0], T[2][1], T[2][2])
}
