// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddm

import (
	"github.com/cpmech/gosl/io"

	"github.com/issacpang/Parallel-Compute/inp"
)

// Schwarz runs the alternating (overlapping) coupling: a synchronous
// fixed-point iteration where each sweep solves all subdomains under the
// current receive buffers and then swaps send-overlap values into the
// neighbours' buffers. Convergence is probed on the central overlap nodes.
type Schwarz struct {

	// input
	Dom   *Domain // coordinator with overlapping partitions
	Tol   float64 // tolerance on the central-node spread
	MaxIt int     // sweep budget

	// state
	recv    []map[inp.Key]float64 // per-partition receive buffer
	dest    []int                 // dest[i]: partition whose buffer takes i's send values
	central []int                 // probe node tags

	// results
	Spreads []float64 // max central-node spread of each sweep
}

// NewSchwarz pairs the overlapping partitions and zero-initialises the
// receive buffers. Pairing follows the overlap invariant: the recv-overlap
// of a partition equals the send-overlap of exactly one neighbour.
func NewSchwarz(dom *Domain, tol float64, maxit int) (o *Schwarz, err error) {
	o = &Schwarz{Dom: dom, Tol: tol, MaxIt: maxit}
	probe := make(map[int]bool)
	for _, p := range dom.Parts {
		buf := make(map[inp.Key]float64)
		for _, t := range p.Recv {
			buf[inp.Key{Node: t, Dof: 0}] = 0
			buf[inp.Key{Node: t, Dof: 1}] = 0
		}
		o.recv = append(o.recv, buf)
		for _, t := range p.Central {
			probe[t] = true
		}
	}
	for t := range probe {
		o.central = append(o.central, t)
	}
	for i, p := range dom.Parts {
		j := o.pair(p.Send, i)
		if j < 0 {
			return nil, NewError(ContractViolation, p.Id, "send-overlap matches no neighbour's recv-overlap")
		}
		o.dest = append(o.dest, j)
	}
	return
}

// Run iterates sweeps until the maximum spread between the subdomains'
// independent estimates at the central nodes falls below Tol. At least two
// sweeps always execute: a zero initial guess can trivially satisfy a loose
// tolerance before any information has been exchanged. On an exhausted
// budget the last reactions are still returned; the caller may proceed with
// the best estimate or abort.
func (o *Schwarz) Run(time, loadfactor float64) (converged bool, res []Response, err error) {
	o.Spreads = o.Spreads[:0]
	for it := 0; it < o.MaxIt; it++ {

		// broadcast current receive buffers, then collect
		for i, w := range o.Dom.Workers {
			buf := make(map[inp.Key]float64, len(o.recv[i]))
			for k, v := range o.recv[i] {
				buf[k] = v
			}
			w.Send(Request{Cmd: CmdSolve, Dirichlet: buf, Time: time, LoadFactor: loadfactor})
		}
		res, err = o.Dom.collect()
		if err != nil {
			return false, nil, err
		}

		// swap: only send-overlap dofs enter the neighbour's buffer; the rest
		// of the buffer is preserved
		for i, p := range o.Dom.Parts {
			for _, t := range p.Send {
				for d := 0; d < 2; d++ {
					key := inp.Key{Node: t, Dof: d}
					if v, ok := res[i].Disp[key]; ok {
						o.recv[o.dest[i]][key] = v
					}
				}
			}
		}

		// spread between independent estimates at the probe nodes
		maxdiff := 0.0
		for _, t := range o.central {
			for d := 0; d < 2; d++ {
				key := inp.Key{Node: t, Dof: d}
				lo, hi, n := 0.0, 0.0, 0
				for _, r := range res {
					if v, ok := r.Disp[key]; ok {
						if n == 0 || v < lo {
							lo = v
						}
						if n == 0 || v > hi {
							hi = v
						}
						n++
					}
				}
				if n > 1 && hi-lo > maxdiff {
					maxdiff = hi - lo
				}
			}
		}
		o.Spreads = append(o.Spreads, maxdiff)
		if o.Dom.Verbose {
			io.Pf("sweep %3d: max central-node spread = %13.8e\n", it+1, maxdiff)
		}
		if it >= 1 && maxdiff < o.Tol {
			return true, res, nil
		}
	}
	return false, res, nil
}

// pair returns the index of the partition whose recv-overlap equals send; -1 if none
func (o *Schwarz) pair(send []int, self int) int {
	for j, q := range o.Dom.Parts {
		if j == self {
			continue
		}
		if sameTags(send, q.Recv) {
			return j
		}
	}
	return -1
}

// sameTags compares two tag sets regardless of order
func sameTags(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	m := make(map[int]int)
	for _, t := range a {
		m[t]++
	}
	for _, t := range b {
		m[t]--
		if m[t] < 0 {
			return false
		}
	}
	return true
}
