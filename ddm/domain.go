// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddm

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/issacpang/Parallel-Compute/inp"
	"github.com/issacpang/Parallel-Compute/sol"
)

// Domain is the coordinator: it owns one worker per partition and drives
// them through synchronous rounds. Each round broadcasts to every worker
// before collecting from any; replies are collected in partition-list order.
// One request is outstanding per worker per round, so each FIFO reply
// channel always carries the answer to the most recent request.
type Domain struct {

	// input
	Parts  []*inp.Partition // partitions, in spawn order
	Schema *Schema          // shared interface order

	// state
	Workers []*Worker           // one per partition
	Guess   map[inp.Key]float64 // current interface estimate
	Verbose bool                // print progress messages
}

// NewDomain spawns one worker per partition, each with a fresh solver from
// alloc, all sharing the same interface schema. On any startup failure the
// already-spawned workers are shut down before returning.
func NewDomain(parts []*inp.Partition, schema *Schema, alloc func() sol.Model) (o *Domain, err error) {
	o = &Domain{Parts: parts, Schema: schema}
	for _, p := range parts {
		w, e := NewWorker(p, schema, alloc())
		if e != nil {
			o.Shutdown()
			return nil, e
		}
		o.Workers = append(o.Workers, w)
	}
	o.Guess = make(map[inp.Key]float64)
	for _, k := range schema.Keys() {
		o.Guess[k] = 0
	}
	return
}

// Step performs one block-Jacobi relaxation: the current interface guess is
// broadcast as prescribed displacements (the natural counterpart is carried
// but empty), and each subdomain's raw reaction is returned without
// assembling or solving any global system. Intended as a single relaxation
// step, not iterated to convergence here.
func (o *Domain) Step() (res []Response, err error) {
	guess := make(map[inp.Key]float64, len(o.Guess))
	for k, v := range o.Guess {
		guess[k] = v
	}
	msg := Request{
		Cmd:        CmdSolve,
		Dirichlet:  guess,
		Neumann:    map[inp.Key]float64{},
		LoadFactor: 1,
	}
	for _, w := range o.Workers {
		w.Send(msg)
	}
	return o.collect()
}

// SchurUpdate performs the one-shot direct coupling: broadcast "schur",
// scatter-add every local (S_i, g_i) pair into the global interface system
// keyed by (node, dof), solve the dense system S*u = g, and unpack the flat
// solution into the interface estimate using the shared order.
func (o *Domain) SchurUpdate() (u []float64, err error) {

	// broadcast and collect
	for _, w := range o.Workers {
		w.Send(Request{Cmd: CmdSchur})
	}
	res, err := o.collect()
	if err != nil {
		return
	}

	S, g, err := o.assemble(res)
	if err != nil {
		return
	}

	// dense interface solve
	u, err = solveInterface(S, g)
	if err != nil {
		return
	}
	o.Guess = o.Schema.Unpack(u)
	if o.Verbose {
		io.Pf("interface system solved: %d unknowns\n", len(u))
	}
	return
}

// solveInterface solves the dense global system S*u = g
func solveInterface(S [][]float64, g []float64) (u []float64, err error) {
	n := len(g)
	Si := la.MatAlloc(n, n)
	if e := la.MatInvG(Si, S, 1e-10); e != nil {
		return nil, NewError(SingularInterfaceSystem, -1, "global interface matrix is not invertible (unpinned rigid-body modes?):\n%v", e)
	}
	u = make([]float64, n)
	la.MatVecMul(u, 1, Si, g)
	return
}

// assemble scatter-adds the local Schur pairs into the single global
// interface system. Every entry is mapped through the shared order, so
// differing local orderings can never be summed blindly.
func (o *Domain) assemble(res []Response) (S [][]float64, g []float64, err error) {
	n := o.Schema.Len()
	S = la.MatAlloc(n, n)
	g = make([]float64, n)
	for _, r := range res {
		if len(r.G) != len(r.Keys) || len(r.S) != len(r.Keys) {
			return nil, nil, NewError(ContractViolation, r.Part, "local Schur pair size %dx%d does not match %d interface keys", len(r.S), len(r.G), len(r.Keys))
		}
		for a, ka := range r.Keys {
			A := o.Schema.Index(ka)
			if A < 0 {
				return nil, nil, NewError(ContractViolation, r.Part, "local interface key (node=%d, dof=%d) is not in the shared order", ka.Node, ka.Dof)
			}
			g[A] += r.G[a]
			for b, kb := range r.Keys {
				S[A][o.Schema.Index(kb)] += r.S[a][b]
			}
		}
	}
	return
}

// collect gathers one reply per worker, in partition-list order. The first
// typed error aborts the round and identifies the offending subdomain.
func (o *Domain) collect() (res []Response, err error) {
	for _, w := range o.Workers {
		r := w.Recv()
		if r.Err != nil {
			return nil, r.Err
		}
		res = append(res, r)
	}
	return
}

// Shutdown terminates all workers and waits for them to exit. The terminate
// message goes to every channel before any wait: waiting on worker i while
// worker i+1 still computes would deadlock if sends were interleaved with
// waits.
func (o *Domain) Shutdown() {
	for _, w := range o.Workers {
		w.Terminate()
	}
	for _, w := range o.Workers {
		w.Wait()
	}
	if o.Verbose {
		io.Pf("all %d workers terminated\n", len(o.Workers))
	}
}
