// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sol defines the local equilibrium solver contract used by the
// domain-decomposition core, together with a reference linear elastic
// implementation. The core only ever talks to the Model interface; any
// engine able to assemble a stiffness/residual pair in the shared free-dof
// numbering can stand behind it.
package sol

import (
	"github.com/issacpang/Parallel-Compute/inp"
)

// Model is the contract of the external equilibrium solver collaborator.
// The free-dof numbering is fixed by convention: ascending free node tag,
// two dofs per node, even index = x, odd index = y.
type Model interface {

	// Populate installs geometry, material, support and load data from a
	// partition descriptor into a fresh model instance
	Populate(p *inp.Partition) (err error)

	// StiffRes assembles and returns the stiffness matrix K and the load
	// (residual) vector R over the free dofs, without any interface boundary
	// data applied
	StiffRes() (K [][]float64, R []float64, err error)

	// SolveStatic runs one linear static solve with the given prescribed
	// displacements (dirichlet) and nodal forces (neumann) applied on top of
	// the partition's own supports and loads, the latter scaled by the load
	// multiplier at the given time and by loadfactor. It returns the
	// displacements at every free (node, dof) of the partition.
	SolveStatic(dirichlet, neumann map[inp.Key]float64, time, loadfactor float64) (u map[inp.Key]float64, err error)
}
