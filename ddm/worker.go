// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddm

import (
	"github.com/cpmech/gosl/la"

	"github.com/issacpang/Parallel-Compute/inp"
	"github.com/issacpang/Parallel-Compute/sol"
)

// Worker is an opaque handle over one subdomain: a local solver instance
// built from a pure-data partition descriptor, serviced by its own
// goroutine. The coordinator talks to it exclusively through two
// unidirectional, ordered channels; the worker owns its descriptor copy and
// is never mutated from outside the message protocol.
type Worker struct {
	part   *inp.Partition // owned copy of the descriptor
	model  sol.Model      // local equilibrium solver
	schema *Schema        // shared interface order
	req    chan Request   // coordinator to worker
	res    chan Response  // worker to coordinator
	done   chan struct{}  // closed when the message loop exits
}

// NewWorker checks the descriptor, populates a fresh solver instance with a
// by-value copy of it, and starts the message loop. Startup failures are
// contract violations and fail fast.
func NewWorker(part *inp.Partition, schema *Schema, model sol.Model) (o *Worker, err error) {
	if err = part.Check(); err != nil {
		return nil, NewError(ContractViolation, part.Id, "invalid partition descriptor:\n%v", err)
	}

	// the shared order must cover this partition's interface by construction,
	// otherwise condensed matrices could never be reconciled
	for _, k := range part.IfaceKeys() {
		if schema.Index(k) < 0 {
			return nil, NewError(ContractViolation, part.Id, "interface key (node=%d, dof=%d) is not in the shared interface order", k.Node, k.Dof)
		}
	}

	o = &Worker{
		part:   part.GetCopy(),
		model:  model,
		schema: schema,
		req:    make(chan Request, 1),
		res:    make(chan Response, 1),
		done:   make(chan struct{}),
	}
	if err = o.model.Populate(o.part); err != nil {
		return nil, NewError(ContractViolation, part.Id, "local solver rejected descriptor:\n%v", err)
	}
	go o.loop()
	return
}

// Send issues one request. The request channel holds one outstanding message,
// so broadcast-then-collect rounds never block the coordinator.
func (o *Worker) Send(msg Request) {
	o.req <- msg
}

// Recv blocks until the reply to the most recently issued request arrives
func (o *Worker) Recv() Response {
	return <-o.res
}

// Terminate tells the message loop to exit; it does not wait
func (o *Worker) Terminate() {
	o.req <- Request{Cmd: CmdTerminate}
}

// Wait blocks until the message loop has exited
func (o *Worker) Wait() {
	<-o.done
}

// loop services commands until terminated. Every failure, including an
// unknown command or a panicking solver, is reported back as a typed error
// response; an unreported worker death would strand the coordinator on a
// blocking read.
func (o *Worker) loop() {
	for {
		msg := <-o.req
		if msg.Cmd == CmdTerminate {
			close(o.done)
			return
		}
		o.res <- o.handle(msg)
	}
}

// handle runs one command
func (o *Worker) handle(msg Request) (res Response) {
	res.Part = o.part.Id
	defer func() {
		if r := recover(); r != nil {
			res = Response{Part: o.part.Id, Err: NewError(AssemblyFailure, o.part.Id, "local solver panicked: %v", r)}
		}
	}()
	switch msg.Cmd {
	case CmdSolve:
		u, err := o.model.SolveStatic(msg.Dirichlet, msg.Neumann, msg.Time, msg.LoadFactor)
		if err != nil {
			res.Err = NewError(AssemblyFailure, o.part.Id, "%v", err)
			return
		}
		res.Disp = u
	case CmdSchur:
		res.Keys, res.S, res.G, res.Err = o.schurPair()
	default:
		res.Err = NewError(ProtocolViolation, o.part.Id, "unknown command %q", msg.Cmd)
	}
	return
}

// schurPair condenses the interior dofs out of the local stiffness/residual
// pair:  S = K_GG - K_GI * inv(K_II) * K_IG  and  g = R_G - K_GI * inv(K_II) * R_I
// where I/G index interior/interface dofs. The local interface order (Keys)
// labels the rows and columns of S.
func (o *Worker) schurPair() (keys []inp.Key, S [][]float64, g []float64, ferr *Error) {
	K, R, err := o.model.StiffRes()
	if err != nil {
		return nil, nil, nil, NewError(AssemblyFailure, o.part.Id, "%v", err)
	}
	I, G := o.part.DofPartition()
	keys = o.part.IfaceKeys()
	nI, nG := len(I), len(G)

	// blocks
	KGG := la.MatAlloc(nG, nG)
	RG := make([]float64, nG)
	for a, ra := range G {
		RG[a] = R[ra]
		for b, rb := range G {
			KGG[a][b] = K[ra][rb]
		}
	}
	S = KGG
	g = RG
	if nI == 0 {
		return
	}
	KII := la.MatAlloc(nI, nI)
	KIG := la.MatAlloc(nI, nG)
	KGI := la.MatAlloc(nG, nI)
	RI := make([]float64, nI)
	for a, ra := range I {
		RI[a] = R[ra]
		for b, rb := range I {
			KII[a][b] = K[ra][rb]
		}
		for b, rb := range G {
			KIG[a][b] = K[ra][rb]
		}
	}
	for a, ra := range G {
		for b, rb := range I {
			KGI[a][b] = K[ra][rb]
		}
	}

	// condensation. a singular interior block means the interior dof set is
	// not structurally pinned and the local problem is ill-posed
	KIIi := la.MatAlloc(nI, nI)
	if err = la.MatInvG(KIIi, KII, 1e-10); err != nil {
		return nil, nil, nil, NewError(AssemblyFailure, o.part.Id, "interior block K_II is singular (unpinned interior dofs?):\n%v", err)
	}
	X := la.MatAlloc(nI, nG)
	la.MatMul(X, 1, KIIi, KIG)
	y := make([]float64, nI)
	la.MatVecMul(y, 1, KIIi, RI)
	T := la.MatAlloc(nG, nG)
	la.MatMul(T, 1, KGI, X)
	z := make([]float64, nG)
	la.MatVecMul(z, 1, KGI, y)
	for a := 0; a < nG; a++ {
		g[a] -= z[a]
		for b := 0; b < nG; b++ {
			S[a][b] -= T[a][b]
		}
	}
	return
}
