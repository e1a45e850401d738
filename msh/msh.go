// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements a minimal mesh structure with vertices, cells and
// boundary tags attached to cell sides
package msh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds one mesh vertex
type Vert struct {
	Id int       // id of vertex
	C  []float64 // [ndim] coordinates
}

// Cell holds one mesh cell
type Cell struct {
	Id       int    // id of cell
	Type     string // shape type; e.g. "qua4"
	Verts    []int  // [nverts] vertex ids
	Part     int    // partition (processor) owning this cell
	Disabled bool   // cell is inactive
}

// Mesh holds vertices and cells. Cells are stored in ascending id order;
// traversals over Cells are therefore deterministic.
type Mesh struct {
	Ndim  int     // space dimension
	Verts []*Vert // all vertices
	Cells []*Cell // all cells
}

// CoordsMatrix returns the coordinates matrix of a particular cell
//  x -- [ndim][nverts]
func (o *Mesh) CoordsMatrix(cell *Cell) (x [][]float64) {
	x = make([][]float64, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		x[i] = make([]float64, len(cell.Verts))
		for j, v := range cell.Verts {
			x[i][j] = o.Verts[v].C[i]
		}
	}
	return
}

// Check performs a consistency check on vertex and cell ids
func (o *Mesh) Check() (err error) {
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertex %d has incorrect id = %d", i, v.Id)
		}
		if len(v.C) != o.Ndim {
			return chk.Err("vertex %d has %d coordinates. %d is incorrect", i, len(v.C), o.Ndim)
		}
	}
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cell %d has incorrect id = %d", i, c.Id)
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d refers to invalid vertex %d", i, v)
			}
		}
	}
	return
}

// PrintInfo prints a summary of the mesh
func (o *Mesh) PrintInfo() {
	io.Pf("mesh: ndim=%d nverts=%d ncells=%d\n", o.Ndim, len(o.Verts), len(o.Cells))
	for _, c := range o.Cells {
		io.Pf("  cell %3d (%s) verts=%v\n", c.Id, c.Type, c.Verts)
	}
}
