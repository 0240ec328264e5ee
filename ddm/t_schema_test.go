// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddm

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/issacpang/Parallel-Compute/inp"
	"github.com/issacpang/Parallel-Compute/sol"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// twoPartitions builds the canonical 2x2 unit-square problem split at
// x = 0.5: 9 nodes, two partitions sharing the 3-node interface column
func twoPartitions(loads map[int][]float64, mat inp.Mat) (parts []*inp.Partition, schema *Schema) {
	m := inp.NewUnitSquareMesh(2, 2)
	left, right := m.SplitTwo([]int{1}, []int{3}, loads, nil, mat)
	return []*inp.Partition{left, right}, NewSchema(m.ColTags(0.5))
}

func allocLin() sol.Model {
	return new(sol.LinElastic)
}

func Test_schema01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("schema01. interface order round-trip")

	sch := NewSchema([]int{2, 5, 8})
	chk.IntAssert(sch.Len(), 6)

	// index follows the fixed order: both dofs per node
	chk.IntAssert(sch.Index(inp.Key{Node: 2, Dof: 0}), 0)
	chk.IntAssert(sch.Index(inp.Key{Node: 2, Dof: 1}), 1)
	chk.IntAssert(sch.Index(inp.Key{Node: 5, Dof: 0}), 2)
	chk.IntAssert(sch.Index(inp.Key{Node: 8, Dof: 1}), 5)
	chk.IntAssert(sch.Index(inp.Key{Node: 99, Dof: 0}), -1)

	// unpack(pack(V)) == V for any value set keyed by the order
	vals := map[inp.Key]float64{
		{Node: 2, Dof: 0}: 0.1, {Node: 2, Dof: 1}: -0.2,
		{Node: 5, Dof: 0}: 0.3, {Node: 5, Dof: 1}: -0.4,
		{Node: 8, Dof: 0}: 0.5, {Node: 8, Dof: 1}: -0.6,
	}
	v := sch.Pack(vals)
	chk.Vector(tst, "packed", 1e-17, v, []float64{0.1, -0.2, 0.3, -0.4, 0.5, -0.6})
	back := sch.Unpack(v)
	chk.IntAssert(len(back), len(vals))
	for key, val := range vals {
		chk.Scalar(tst, io.Sf("back(%d,%d)", key.Node, key.Dof), 1e-17, back[key], val)
	}

	// keys copies are detached from the schema
	keys := sch.Keys()
	keys[0] = inp.Key{Node: 99, Dof: 0}
	chk.IntAssert(sch.Index(inp.Key{Node: 2, Dof: 0}), 0)
}

func Test_schema02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("schema02. overlap schema spans send+recv of all partitions")

	m := inp.NewUnitSquareMesh(6, 3)
	mat := inp.Mat{E: 1000, Nu: 0.3, Thick: 1}
	left, right := m.SplitTwoOverlap([]int{1}, []int{7}, nil, nil, mat)
	sch := NewOverlapSchema([]*inp.Partition{left, right})

	// 3 columns x 4 rows x 2 dofs
	chk.IntAssert(sch.Len(), 24)
	for _, t := range append(append([]int{}, left.Send...), left.Recv...) {
		if sch.Index(inp.Key{Node: t, Dof: 0}) < 0 || sch.Index(inp.Key{Node: t, Dof: 1}) < 0 {
			tst.Errorf("overlap schema misses node %d", t)
			return
		}
	}
}
