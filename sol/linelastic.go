// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sol

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"

	"github.com/issacpang/Parallel-Compute/inp"
)

// LinElastic is the reference Model implementation: plane-stress quad4
// elements with a homogeneous linear elastic material, assembled over the
// free dofs with fixed supports eliminated.
type LinElastic struct {

	// input
	part    *inp.Partition // partition descriptor (owned copy)
	LoadFcn fun.Func       // load multiplier m(t); constant 1 if not set before Populate returns

	// derived
	free []int       // ascending free node tags
	eqs  map[int]int // free tag => first equation number (ux); uy is +1
	D    [][]float64 // plane-stress modulus matrix
}

// Populate installs the partition data and builds the free-dof numbering
func (o *LinElastic) Populate(p *inp.Partition) (err error) {
	err = p.Check()
	if err != nil {
		return
	}
	o.part = p
	o.free = p.FreeTags()
	o.eqs = make(map[int]int)
	for i, t := range o.free {
		o.eqs[t] = i * 2
	}
	if o.LoadFcn == nil {
		o.LoadFcn = &fun.Cte{C: 1}
	}

	// plane-stress modulus
	E, ν := p.Mdata.E, p.Mdata.Nu
	if E <= 0 || ν < 0 || ν >= 0.5 {
		return chk.Err("partition %d: invalid elastic constants E=%g, nu=%g", p.Id, E, ν)
	}
	c := E / (1.0 - ν*ν)
	o.D = [][]float64{
		{c, c * ν, 0},
		{c * ν, c, 0},
		{0, 0, c * (1.0 - ν) / 2.0},
	}
	return
}

// StiffRes assembles the free-free stiffness matrix and load vector
func (o *LinElastic) StiffRes() (K [][]float64, R []float64, err error) {
	if o.part == nil {
		return nil, nil, chk.Err("model is not populated")
	}
	n := 2 * len(o.free)
	K = la.MatAlloc(n, n)
	R = make([]float64, n)

	// element loop
	ke := la.MatAlloc(8, 8)
	for _, cell := range o.part.Cells {
		err = o.cellK(ke, cell)
		if err != nil {
			return nil, nil, err
		}
		for a, ta := range cell.Verts {
			for i := 0; i < 2; i++ {
				ra, oka := o.eq(ta, i)
				if !oka {
					continue
				}
				for b, tb := range cell.Verts {
					for j := 0; j < 2; j++ {
						rb, okb := o.eq(tb, j)
						if okb {
							K[ra][rb] += ke[a*2+i][b*2+j]
						}
					}
				}
			}
		}
	}

	// nodal loads
	for t, f := range o.part.Loads {
		for i := 0; i < 2; i++ {
			if r, ok := o.eq(t, i); ok {
				R[r] += f[i]
			}
		}
	}
	return
}

// SolveStatic runs one linear static solve. See Model for the semantics.
func (o *LinElastic) SolveStatic(dirichlet, neumann map[inp.Key]float64, time, loadfactor float64) (u map[inp.Key]float64, err error) {

	// assemble
	K, R, err := o.StiffRes()
	if err != nil {
		return
	}
	m := o.LoadFcn.F(time, nil) * loadfactor
	for i := range R {
		R[i] *= m
	}

	// natural interface data
	for key, val := range neumann {
		if r, ok := o.eq(key.Node, key.Dof); ok {
			R[r] += val
		}
	}

	// essential interface data, by row/column elimination
	for key, val := range dirichlet {
		r, ok := o.eq(key.Node, key.Dof)
		if !ok {
			continue
		}
		for i := range R {
			R[i] -= K[i][r] * val
		}
		for i := range K {
			K[i][r] = 0
			K[r][i] = 0
		}
		K[r][r] = 1
		R[r] = val
	}

	// solve
	n := len(R)
	Ki := la.MatAlloc(n, n)
	err = la.MatInvG(Ki, K, 1e-10)
	if err != nil {
		return nil, chk.Err("partition %d: local static solve failed:\n%v", o.part.Id, err)
	}
	x := make([]float64, n)
	la.MatVecMul(x, 1, Ki, R)

	// all free-node displacements
	u = make(map[inp.Key]float64)
	for i, t := range o.free {
		u[inp.Key{Node: t, Dof: 0}] = x[i*2]
		u[inp.Key{Node: t, Dof: 1}] = x[i*2+1]
	}
	return
}

// eq returns the equation number of (tag, dof); ok==false for fixed or foreign nodes
func (o *LinElastic) eq(tag, dof int) (r int, ok bool) {
	r0, ok := o.eqs[tag]
	return r0 + dof, ok
}

// cellK computes the quad4 plane-stress element stiffness with 2x2 Gauss quadrature
func (o *LinElastic) cellK(ke [][]float64, cell *inp.Cell) (err error) {
	la.MatFill(ke, 0)

	// nodal coordinates
	x := la.MatAlloc(4, 2)
	for a, t := range cell.Verts {
		copy(x[a], o.part.Verts[o.vidx(t)].C)
	}

	// integration points
	g := 1.0 / math.Sqrt(3.0)
	ips := [][]float64{{-g, -g}, {g, -g}, {g, g}, {-g, g}}

	dNdR := la.MatAlloc(4, 2)
	dNdX := la.MatAlloc(4, 2)
	B := la.MatAlloc(3, 8)
	for _, ip := range ips {
		r, s := ip[0], ip[1]

		// shape derivatives w.r.t natural coordinates
		dNdR[0][0], dNdR[0][1] = -(1.0-s)/4.0, -(1.0-r)/4.0
		dNdR[1][0], dNdR[1][1] = (1.0-s)/4.0, -(1.0+r)/4.0
		dNdR[2][0], dNdR[2][1] = (1.0+s)/4.0, (1.0+r)/4.0
		dNdR[3][0], dNdR[3][1] = -(1.0+s)/4.0, (1.0-r)/4.0

		// Jacobian dxdR and its determinant
		var J [2][2]float64
		for a := 0; a < 4; a++ {
			for i := 0; i < 2; i++ {
				for k := 0; k < 2; k++ {
					J[k][i] += dNdR[a][k] * x[a][i]
				}
			}
		}
		det := J[0][0]*J[1][1] - J[0][1]*J[1][0]
		if det < 1e-14 {
			return chk.Err("partition %d: cell %d is distorted (det(J)=%g)", o.part.Id, cell.Id, det)
		}
		Ji := [2][2]float64{{J[1][1] / det, -J[0][1] / det}, {-J[1][0] / det, J[0][0] / det}}

		// B matrix
		la.MatFill(B, 0)
		for a := 0; a < 4; a++ {
			dNdX[a][0] = Ji[0][0]*dNdR[a][0] + Ji[0][1]*dNdR[a][1]
			dNdX[a][1] = Ji[1][0]*dNdR[a][0] + Ji[1][1]*dNdR[a][1]
			B[0][a*2] = dNdX[a][0]
			B[1][a*2+1] = dNdX[a][1]
			B[2][a*2] = dNdX[a][1]
			B[2][a*2+1] = dNdX[a][0]
		}

		// ke += trans(B) * D * B * det(J) * w * thickness
		coef := det * o.part.Mdata.Thick
		for i := 0; i < 8; i++ {
			for j := 0; j < 8; j++ {
				var v float64
				for p := 0; p < 3; p++ {
					for q := 0; q < 3; q++ {
						v += B[p][i] * o.D[p][q] * B[q][j]
					}
				}
				ke[i][j] += coef * v
			}
		}
	}
	return
}

// vidx returns the index of tag within the descriptor's vertex list
func (o *LinElastic) vidx(tag int) int {
	for i, v := range o.part.Verts {
		if v.Tag == tag {
			return i
		}
	}
	chk.Panic("partition %d: unknown node tag %d", o.part.Id, tag)
	return -1
}
