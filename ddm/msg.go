// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddm

import "github.com/issacpang/Parallel-Compute/inp"

// commands understood by subdomain workers
const (
	CmdSolve     = "solve"     // run one solve under given interface data; reply with all free displacements
	CmdSchur     = "schur"     // condense interior dofs; reply with the local Schur pair
	CmdTerminate = "terminate" // exit the message loop; no reply
)

// Request is the downstream message (coordinator to worker). Cmd selects the
// variant; the remaining fields only matter for "solve".
type Request struct {
	Cmd        string              // one of the Cmd... constants
	Dirichlet  map[inp.Key]float64 // prescribed interface displacements
	Neumann    map[inp.Key]float64 // prescribed interface forces
	Time       float64             // pseudo time for the load multiplier
	LoadFactor float64             // load scaling
}

// Response is the upstream message (worker to coordinator). Exactly one of
// the variants is filled: Disp for "solve", (Keys, S, G) for "schur", Err
// for any failed or unrecognized request.
type Response struct {
	Part int // replying partition id

	// solve
	Disp map[inp.Key]float64 // displacements at every free (node, dof)

	// schur: local interface pair with the keys labelling its rows/columns
	Keys []inp.Key   // local interface order
	S    [][]float64 // local Schur matrix [len(Keys)][len(Keys)]
	G    []float64   // condensed load vector [len(Keys)]

	// failure, as a value instead of an unobserved worker death
	Err *Error
}
