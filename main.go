// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/issacpang/Parallel-Compute/ddm"
	"github.com/issacpang/Parallel-Compute/inp"
	"github.com/issacpang/Parallel-Compute/sol"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input parameters
	method := io.ArgToString(0, "schur")
	nx := io.ArgToInt(1, 6)
	ny := io.ArgToInt(2, 3)
	tol := io.ArgToFloat(3, 1e-6)
	maxit := io.ArgToInt(4, 100)
	verbose := io.ArgToBool(5, true)

	// message
	if verbose {
		io.PfWhite("\nParallel-Compute -- domain-decomposition coupling of subdomain solvers\n\n")
		io.Pf("%v\n", io.ArgsTable(
			"coupling method: schur or schwarz", "method", method,
			"number of cells along x", "nx", nx,
			"number of cells along y", "ny", ny,
			"schwarz tolerance", "tol", tol,
			"schwarz sweep budget", "maxit", maxit,
			"show messages", "verbose", verbose,
		))
	}

	// canonical two-partition problem on the unit square: pinned lower
	// corners, one downward load next to the split
	mesh := inp.NewUnitSquareMesh(nx, ny)
	mat := inp.Mat{E: 2.0e11, Nu: 0.3, Thick: 1}
	fixL := []int{mesh.Tag(0, 0)}
	fixR := []int{mesh.Tag(nx, 0)}
	loads := map[int][]float64{mesh.Tag(nx/2, ny/2): {0, -2.0e3}}
	alloc := func() sol.Model { return new(sol.LinElastic) }

	switch method {

	case "schur":
		left, right := mesh.SplitTwo(fixL, fixR, loads, nil, mat)
		schema := ddm.NewSchema(mesh.ColTags(0.5))
		dom, err := ddm.NewDomain([]*inp.Partition{left, right}, schema, alloc)
		if err != nil {
			chk.Panic("cannot spawn workers:\n%v", err)
		}
		defer dom.Shutdown()
		dom.Verbose = verbose
		if _, err = dom.SchurUpdate(); err != nil {
			chk.Panic("schur coupling failed:\n%v", err)
		}
		io.Pf("\ninterface solution\n node | dof |    value\n------+-----+--------------\n")
		for _, t := range mesh.ColTags(0.5) {
			for d := 0; d < 2; d++ {
				io.Pf(" %4d |  %d  | % .6e\n", t, d, dom.Guess[inp.Key{Node: t, Dof: d}])
			}
		}

	case "schwarz":
		// the load node sits in the overlap band where the left partition
		// receives prescribed values, so the load belongs to the right side
		left, right := mesh.SplitTwoOverlap(fixL, fixR, nil, loads, mat)
		parts := []*inp.Partition{left, right}
		dom, err := ddm.NewDomain(parts, ddm.NewOverlapSchema(parts), alloc)
		if err != nil {
			chk.Panic("cannot spawn workers:\n%v", err)
		}
		defer dom.Shutdown()
		dom.Verbose = verbose
		alt, err := ddm.NewSchwarz(dom, tol, maxit)
		if err != nil {
			chk.Panic("cannot pair overlapping partitions:\n%v", err)
		}
		converged, res, err := alt.Run(1, 1)
		if err != nil {
			chk.Panic("schwarz coupling failed:\n%v", err)
		}
		if !converged {
			io.PfRed("no convergence within %d sweeps; best estimate follows\n", maxit)
		}
		io.Pf("\ncentral-node solution\n node | dof |    value\n------+-----+--------------\n")
		for _, t := range left.Central {
			for d := 0; d < 2; d++ {
				io.Pf(" %4d |  %d  | % .6e\n", t, d, res[0].Disp[inp.Key{Node: t, Dof: d}])
			}
		}

	default:
		chk.Panic("unknown coupling method %q. methods are \"schur\" and \"schwarz\"", method)
	}
}
