// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ddm implements the domain-decomposition coordination core: an
// interface schema shared by all parties, subdomain worker actors driven
// over channel pairs, a coordinator running Schur-complement or block-Jacobi
// coupling, and the alternating Schwarz convergence loop.
package ddm

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/issacpang/Parallel-Compute/inp"
)

// Schema is the immutable global interface ordering. It fixes, once and for
// all parties, how the (node, dof) => value interface mapping packs into and
// unpacks from a dense vector. The coordinator and every worker hold the
// same schema, so packed vectors are never ambiguous.
type Schema struct {
	keys []inp.Key
	idx  map[inp.Key]int
}

// NewSchema builds a schema from interface node tags, in the given order,
// with both in-plane dofs per node
func NewSchema(tags []int) (o *Schema) {
	keys := make([]inp.Key, 0, 2*len(tags))
	for _, t := range tags {
		keys = append(keys, inp.Key{Node: t, Dof: 0}, inp.Key{Node: t, Dof: 1})
	}
	return NewSchemaKeys(keys)
}

// NewSchemaKeys builds a schema from an explicit key sequence
func NewSchemaKeys(keys []inp.Key) (o *Schema) {
	o = &Schema{keys: append([]inp.Key{}, keys...), idx: make(map[inp.Key]int)}
	for i, k := range o.keys {
		if _, dup := o.idx[k]; dup {
			chk.Panic("interface order has duplicated key (node=%d, dof=%d)", k.Node, k.Dof)
		}
		o.idx[k] = i
	}
	return
}

// NewOverlapSchema builds a schema spanning the union of the overlap
// (send + recv) node tags of all partitions, ascending tag order
func NewOverlapSchema(parts []*inp.Partition) *Schema {
	set := make(map[int]bool)
	for _, p := range parts {
		for _, t := range p.Send {
			set[t] = true
		}
		for _, t := range p.Recv {
			set[t] = true
		}
	}
	tags := make([]int, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Ints(tags)
	return NewSchema(tags)
}

// Len returns the number of interface dofs
func (o *Schema) Len() int {
	return len(o.keys)
}

// Keys returns a copy of the interface order
func (o *Schema) Keys() []inp.Key {
	return append([]inp.Key{}, o.keys...)
}

// Index returns the position of key in the interface order; -1 if absent
func (o *Schema) Index(key inp.Key) int {
	if i, ok := o.idx[key]; ok {
		return i
	}
	return -1
}

// Pack lays the mapped values out as a dense vector following the interface
// order. Missing keys pack as zero.
func (o *Schema) Pack(vals map[inp.Key]float64) (v []float64) {
	v = make([]float64, len(o.keys))
	for i, k := range o.keys {
		v[i] = vals[k]
	}
	return
}

// Unpack maps a dense vector back to (node, dof) => value following the
// interface order
func (o *Schema) Unpack(v []float64) (vals map[inp.Key]float64) {
	if len(v) != len(o.keys) {
		chk.Panic("cannot unpack vector with size %d when the interface order has %d keys", len(v), len(o.keys))
	}
	vals = make(map[inp.Key]float64, len(o.keys))
	for i, k := range o.keys {
		vals[k] = v[i]
	}
	return
}
