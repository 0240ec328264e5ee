// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Mesh holds a structured quad4 grid over the unit square [0,1]x[0,1],
// subdivided into nx * ny cells. Node tags start at 1 and grow with x first,
// then y.
type Mesh struct {
	Nx, Ny int     // number of cells along x and y
	Verts  []*Vert // vertices
	Cells  []*Cell // cells
}

// NewUnitSquareMesh generates a structured grid over the unit square
func NewUnitSquareMesh(nx, ny int) (o *Mesh) {
	if nx < 1 || ny < 1 {
		chk.Panic("mesh needs at least one cell along each direction. nx=%d, ny=%d is invalid", nx, ny)
	}
	o = &Mesh{Nx: nx, Ny: ny}
	dx, dy := 1.0/float64(nx), 1.0/float64(ny)
	tag := 1
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			o.Verts = append(o.Verts, &Vert{tag, []float64{float64(i) * dx, float64(j) * dy}})
			tag++
		}
	}
	n := func(i, j int) int { return 1 + j*(nx+1) + i }
	id := 1
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			o.Cells = append(o.Cells, &Cell{id, []int{n(i, j), n(i+1, j), n(i+1, j+1), n(i, j+1)}})
			id++
		}
	}
	return
}

// Tag returns the node tag at grid position (i, j)
func (o *Mesh) Tag(i, j int) int {
	return 1 + j*(o.Nx+1) + i
}

// ColTags returns the tags of all nodes with x-coordinate equal to xval
// (within a small fraction of the cell size), sorted by y then x
func (o *Mesh) ColTags(xval float64) (tags []int) {
	tol := 0.01 / float64(o.Nx)
	for _, v := range o.Verts {
		if math.Abs(v.C[0]-xval) < tol {
			tags = append(tags, v.Tag)
		}
	}
	sort.Ints(tags)
	return
}

// SplitTwo splits the mesh into two non-overlapping partitions at x = 0.5.
// Both partitions contain the shared interface column; cells are assigned to
// the side holding all four of their vertices.
//  Input:
//   fixL, fixR   -- fixed node tags of the left and right partitions
//   loadL, loadR -- nodal load maps
//   mat          -- material data (same for both sides)
func (o *Mesh) SplitTwo(fixL, fixR []int, loadL, loadR map[int][]float64, mat Mat) (left, right *Partition) {
	iface := o.ColTags(0.5)
	tol := 0.01 / float64(o.Nx)
	left = o.extract(0, func(x float64) bool { return x <= 0.5+tol }, fixL, loadL, mat)
	right = o.extract(1, func(x float64) bool { return x >= 0.5-tol }, fixR, loadR, mat)
	left.Iface = append([]int{}, iface...)
	right.Iface = append([]int{}, iface...)
	return
}

// SplitTwoOverlap splits the mesh into two overlapping (Schwarz) partitions.
// The overlap band spans one cell column each side of x = 0.5. Within each
// band row, the nodes left of the middle feed the right partition's receive
// set and vice versa; the middle node of each row is the central probe.
func (o *Mesh) SplitTwoOverlap(fixL, fixR []int, loadL, loadR map[int][]float64, mat Mat) (left, right *Partition) {
	dx := 1.0 / float64(o.Nx)
	tol := 0.01 * dx
	low, high := 0.5-dx-tol, 0.5+dx+tol

	// overlap band grouped by row
	var band []int
	for _, v := range o.Verts {
		if v.C[0] > low && v.C[0] < high {
			band = append(band, v.Tag)
		}
	}
	coord := func(t int) []float64 { return o.Verts[t-1].C }

	var lowerSend, upperSend, central []int
	dy := 1.0 / float64(o.Ny)
	for j := 0; j <= o.Ny; j++ {
		y := float64(j) * dy
		var row []int
		for _, t := range band {
			if math.Abs(coord(t)[1]-y) < tol {
				row = append(row, t)
			}
		}
		if len(row) == 0 {
			continue
		}
		sort.Ints(row)
		m := len(row) / 2
		lowerSend = append(lowerSend, row[:m]...)
		upperSend = append(upperSend, row[m:]...)
		central = append(central, row[m:m+1]...)
	}

	left = o.extract(0, func(x float64) bool { return x <= high }, fixL, loadL, mat)
	right = o.extract(1, func(x float64) bool { return x >= low }, fixR, loadR, mat)

	// each side sends the values prescribed on the other side's boundary
	left.Send, left.Recv = lowerSend, upperSend
	right.Send, right.Recv = upperSend, lowerSend
	left.Central = append([]int{}, central...)
	right.Central = append([]int{}, central...)
	return
}

// extract builds one partition from the nodes selected by keep; cells are
// included when all four vertices survive
func (o *Mesh) extract(id int, keep func(x float64) bool, fixed []int, loads map[int][]float64, mat Mat) (p *Partition) {
	p = &Partition{Id: id, Mdata: mat}
	in := make(map[int]bool)
	for _, v := range o.Verts {
		if keep(v.C[0]) {
			p.Verts = append(p.Verts, &Vert{v.Tag, append([]float64{}, v.C...)})
			in[v.Tag] = true
		}
	}
	for _, c := range o.Cells {
		all := true
		for _, t := range c.Verts {
			if !in[t] {
				all = false
				break
			}
		}
		if all {
			p.Cells = append(p.Cells, &Cell{c.Id, append([]int{}, c.Verts...)})
		}
	}
	p.Fixed = append([]int{}, fixed...)
	if loads != nil {
		p.Loads = make(map[int][]float64)
		for t, f := range loads {
			p.Loads[t] = append([]float64{}, f...)
		}
	}
	return
}
