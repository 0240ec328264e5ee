// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data structures describing mesh partitions
// (subdomains) for domain-decomposition analyses
package inp

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Vert holds vertex data
type Vert struct {
	Tag int       // global tag; unique and shared across partitions touching the same physical node
	C   []float64 // coordinates (size==2)
}

// Cell holds cell (quad4) data
type Cell struct {
	Id    int   // id
	Verts []int // vertices (4 global tags, counter-clockwise)
}

// Key identifies one degree of freedom by global node tag and local dof index (0=ux, 1=uy)
type Key struct {
	Node int // global node tag
	Dof  int // local dof index: 0 or 1
}

// Mat holds the (linear elastic, plane stress) material data of one partition
type Mat struct {
	E     float64 // Young's modulus
	Nu    float64 // Poisson's coefficient
	Thick float64 // out-of-plane thickness
}

// Partition describes one subdomain: its share of the global mesh plus the
// boundary sets coupling it to its neighbours. All node references use the
// shared global numbering.
type Partition struct {

	// essential
	Id    int               // partition id
	Verts []*Vert           // ordered node-tag sequence with coordinates
	Cells []*Cell           // connectivity; cells lie wholly inside this partition
	Fixed []int             // fully fixed node tags
	Loads map[int][]float64 // node tag => {fx, fy}
	Mdata Mat               // material data

	// coupling: non-overlapping (Schur) variant
	Iface []int // node tags shared with a neighbour partition

	// coupling: overlapping (Schwarz) variant
	Send    []int // send-overlap: tags whose values are shipped to the neighbour
	Recv    []int // recv-overlap: tags receiving prescribed values from the neighbour
	Central []int // central overlap tags; convergence probe set only
}

// Check verifies that this descriptor honours the contract expected by the
// solvers. A partition lacking its node-tag set is a contract violation and
// must fail fast rather than silently produce empty results.
func (o *Partition) Check() (err error) {
	if len(o.Verts) < 1 {
		return chk.Err("partition %d has an empty node-tag set", o.Id)
	}
	tags := make(map[int]bool)
	for _, v := range o.Verts {
		if len(v.C) != 2 {
			return chk.Err("partition %d: node %d must have 2 coordinates", o.Id, v.Tag)
		}
		if tags[v.Tag] {
			return chk.Err("partition %d: duplicated node tag %d", o.Id, v.Tag)
		}
		tags[v.Tag] = true
	}
	for _, c := range o.Cells {
		if len(c.Verts) != 4 {
			return chk.Err("partition %d: cell %d is not a quad4", o.Id, c.Id)
		}
		for _, t := range c.Verts {
			if !tags[t] {
				return chk.Err("partition %d: cell %d references unknown node %d", o.Id, c.Id, t)
			}
		}
	}
	for _, t := range o.Fixed {
		if !tags[t] {
			return chk.Err("partition %d: fixed node %d is not in the node-tag set", o.Id, t)
		}
	}
	for t, f := range o.Loads {
		if !tags[t] {
			return chk.Err("partition %d: loaded node %d is not in the node-tag set", o.Id, t)
		}
		if len(f) != 2 {
			return chk.Err("partition %d: load at node %d must have 2 components", o.Id, t)
		}
	}
	for _, set := range [][]int{o.Iface, o.Send, o.Recv, o.Central} {
		for _, t := range set {
			if !tags[t] {
				return chk.Err("partition %d: coupling node %d is not in the node-tag set", o.Id, t)
			}
		}
	}

	// interior and interface dofs must be disjoint and cover all free dofs
	ndof := 2 * len(o.FreeTags())
	interior, iface := o.DofPartition()
	if len(interior)+len(iface) != ndof {
		return chk.Err("partition %d: interior and interface dofs do not cover all %d free dofs", o.Id, ndof)
	}
	seen := make(map[int]bool)
	for _, eq := range interior {
		seen[eq] = true
	}
	for _, eq := range iface {
		if seen[eq] {
			return chk.Err("partition %d: dof %d is both interior and interface", o.Id, eq)
		}
	}
	return
}

// FreeTags returns the non-fixed node tags, ascending. The free-dof numbering
// of the local solver follows this order with two dofs per node.
func (o *Partition) FreeTags() []int {
	fixed := make(map[int]bool)
	for _, t := range o.Fixed {
		fixed[t] = true
	}
	var free []int
	for _, v := range o.Verts {
		if !fixed[v.Tag] {
			free = append(free, v.Tag)
		}
	}
	sort.Ints(free)
	return free
}

// Eq returns the equation number (free-dof index) of (tag, dof); -1 if fixed or unknown
func (o *Partition) Eq(tag, dof int) int {
	for i, t := range o.FreeTags() {
		if t == tag {
			return i*2 + dof
		}
	}
	return -1
}

// IfaceTags returns the node tags making up this partition's coupling
// boundary: Iface for the non-overlapping variant, send+recv for the
// overlapping one.
func (o *Partition) IfaceTags() []int {
	if len(o.Iface) > 0 {
		return o.Iface
	}
	return append(append([]int{}, o.Send...), o.Recv...)
}

// DofPartition splits the free dofs into {interior, interface} equation
// lists, in the local solver's numbering (ascending free node tag, two dofs
// per node).
func (o *Partition) DofPartition() (interior, iface []int) {
	onbry := make(map[int]bool)
	for _, t := range o.IfaceTags() {
		onbry[t] = true
	}
	for i, t := range o.FreeTags() {
		if onbry[t] {
			iface = append(iface, i*2, i*2+1)
		} else {
			interior = append(interior, i*2, i*2+1)
		}
	}
	return
}

// IfaceKeys returns the free interface (node, dof) keys, ascending free node
// tag, both dofs per node. This is the local interface order matching the
// rows/columns of a condensed (Schur) matrix from this partition.
func (o *Partition) IfaceKeys() (keys []Key) {
	onbry := make(map[int]bool)
	for _, t := range o.IfaceTags() {
		onbry[t] = true
	}
	for _, t := range o.FreeTags() {
		if onbry[t] {
			keys = append(keys, Key{t, 0}, Key{t, 1})
		}
	}
	return
}

// OverlapNodes returns the (send, recv, central) node-tag sets of an
// overlapping partition
func (o *Partition) OverlapNodes() (send, recv, central []int) {
	return o.Send, o.Recv, o.Central
}

// NodalLoads returns the load map
func (o *Partition) NodalLoads() map[int][]float64 {
	return o.Loads
}

// GetCopy returns a deep copy of this partition. Workers receive their
// descriptor by value; the coordinator never shares memory with them.
func (o *Partition) GetCopy() (p *Partition) {
	p = new(Partition)
	p.Id = o.Id
	p.Mdata = o.Mdata
	for _, v := range o.Verts {
		p.Verts = append(p.Verts, &Vert{v.Tag, append([]float64{}, v.C...)})
	}
	for _, c := range o.Cells {
		p.Cells = append(p.Cells, &Cell{c.Id, append([]int{}, c.Verts...)})
	}
	p.Fixed = append([]int{}, o.Fixed...)
	p.Iface = append([]int{}, o.Iface...)
	p.Send = append([]int{}, o.Send...)
	p.Recv = append([]int{}, o.Recv...)
	p.Central = append([]int{}, o.Central...)
	if o.Loads != nil {
		p.Loads = make(map[int][]float64)
		for t, f := range o.Loads {
			p.Loads[t] = append([]float64{}, f...)
		}
	}
	return
}
