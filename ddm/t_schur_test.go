// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddm

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/issacpang/Parallel-Compute/inp"
)

func Test_schur01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("schur01. zero load gives a trivial interface solution")

	parts, schema := twoPartitions(nil, inp.Mat{E: 2.0e11, Nu: 0.3, Thick: 1})
	dom, err := NewDomain(parts, schema, allocLin())
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Shutdown()

	u, err := dom.SchurUpdate()
	if err != nil {
		tst.Errorf("SchurUpdate failed:\n%v", err)
		return
	}
	chk.Vector(tst, "u", 1e-17, u, nil)
	for key, v := range dom.Guess {
		chk.Scalar(tst, io.Sf("guess(%d,%d)", key.Node, key.Dof), 1e-17, v, 0)
	}
}

func Test_schur02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("schur02. equivalence with the undivided Schur complement")

	mat := inp.Mat{E: 2.0e11, Nu: 0.3, Thick: 1}
	loads := map[int][]float64{4: {0, -2.0e3}}
	parts, schema := twoPartitions(loads, mat)
	dom, err := NewDomain(parts, schema, allocLin())
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Shutdown()

	// reference: one subdomain covering the whole mesh, condensed along the
	// same interface set
	m := inp.NewUnitSquareMesh(2, 2)
	full := &inp.Partition{Id: 9, Verts: m.Verts, Cells: m.Cells, Fixed: []int{1, 3}, Loads: loads, Iface: m.ColTags(0.5), Mdata: mat}
	ref, err := NewDomain([]*inp.Partition{full}, schema, allocLin())
	if err != nil {
		tst.Errorf("NewDomain (reference) failed:\n%v", err)
		return
	}
	defer ref.Shutdown()

	// assembled global pairs must match
	for _, w := range dom.Workers {
		w.Send(Request{Cmd: CmdSchur})
	}
	res, err := dom.collect()
	if err != nil {
		tst.Errorf("collect failed:\n%v", err)
		return
	}
	S, g, err := dom.assemble(res)
	if err != nil {
		tst.Errorf("assemble failed:\n%v", err)
		return
	}
	ref.Workers[0].Send(Request{Cmd: CmdSchur})
	rres, err := ref.collect()
	if err != nil {
		tst.Errorf("collect (reference) failed:\n%v", err)
		return
	}
	Sref, gref, err := ref.assemble(rres)
	if err != nil {
		tst.Errorf("assemble (reference) failed:\n%v", err)
		return
	}
	chk.Matrix(tst, "S_total", 1e-2, S, Sref)
	chk.Vector(tst, "g_total", 1e-9, g, gref)

	// and so must the interface solutions
	u, err := dom.SchurUpdate()
	if err != nil {
		tst.Errorf("SchurUpdate failed:\n%v", err)
		return
	}
	uref, err := ref.SchurUpdate()
	if err != nil {
		tst.Errorf("SchurUpdate (reference) failed:\n%v", err)
		return
	}
	io.Pforan("u    = %v\n", u)
	io.Pforan("uref = %v\n", uref)
	chk.Vector(tst, "u_gamma", 1e-15, u, uref)
}

func Test_schur03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("schur03. block-Jacobi step returns raw subdomain reactions")

	mat := inp.Mat{E: 1000, Nu: 0.3, Thick: 1}
	parts, schema := twoPartitions(map[int][]float64{4: {0, -10}}, mat)
	dom, err := NewDomain(parts, schema, allocLin())
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer dom.Shutdown()

	// prescribe a nonzero interface guess
	for i, key := range schema.Keys() {
		dom.Guess[key] = 0.001 * float64(i+1)
	}
	res, err := dom.Step()
	if err != nil {
		tst.Errorf("Step failed:\n%v", err)
		return
	}
	chk.IntAssert(len(res), 2)
	chk.IntAssert(res[0].Part, 0)
	chk.IntAssert(res[1].Part, 1)

	// each subdomain reproduces the prescribed values at its interface and
	// reports displacements for every one of its free nodes
	for i, p := range parts {
		for _, key := range p.IfaceKeys() {
			chk.Scalar(tst, io.Sf("part%d u(%d,%d)", i, key.Node, key.Dof), 1e-17, res[i].Disp[key], dom.Guess[key])
		}
		chk.IntAssert(len(res[i].Disp), 2*len(p.FreeTags()))
	}

	// no global system was assembled: the guess is untouched
	for i, key := range schema.Keys() {
		chk.Scalar(tst, io.Sf("guess(%d,%d)", key.Node, key.Dof), 1e-17, dom.Guess[key], 0.001*float64(i+1))
	}
}

func Test_schur04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("schur04. failures cross the channel as typed errors")

	// a non-invertible global interface matrix (e.g. unpinned rigid-body
	// modes) is classified at the dense-solve step
	S := [][]float64{{2, 1, 0}, {1, 2, 0}, {0, 0, 0}}
	_, err := solveInterface(S, []float64{1, 1, 0})
	if err == nil {
		tst.Errorf("solving a singular interface system must fail")
		return
	}
	io.Pforan("err = %v\n", err)
	chk.IntAssert(int(KindOf(err)), int(SingularInterfaceSystem))

	// a distorted cell (reversed connectivity) fails the local assembly; the
	// worker reports it instead of dying and the offender is identified
	m := inp.NewUnitSquareMesh(2, 2)
	mat := inp.Mat{E: 1000, Nu: 0.3, Thick: 1}
	schema := NewSchema(m.ColTags(0.5))
	badL, badR := m.SplitTwo([]int{1}, []int{3}, nil, nil, mat)
	c := badL.Cells[0].Verts
	c[1], c[3] = c[3], c[1]
	bad, err := NewDomain([]*inp.Partition{badL, badR}, schema, allocLin())
	if err != nil {
		tst.Errorf("NewDomain failed:\n%v", err)
		return
	}
	defer bad.Shutdown()

	_, err = bad.SchurUpdate()
	if err == nil {
		tst.Errorf("assembling a distorted cell must fail")
		return
	}
	io.Pforan("err = %v\n", err)
	chk.IntAssert(int(KindOf(err)), int(AssemblyFailure))
	chk.IntAssert(err.(*Error).Part, 0)
}
