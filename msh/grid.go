// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import "github.com/cpmech/gosl/chk"

// Boundary tags assigned by the grid generators
//       -12
//     o-----o
//     |     |
//  -13|     |-11
//     |     |
//     o-----o
//       -10
const (
	TagBottom = -10
	TagRight  = -11
	TagTop    = -12
	TagLeft   = -13
)

// NewGrid2D generates a structured grid of "qua4" or "qua9" cells over the
// rectangle [0,lx] x [0,ly] with nx by ny cells, and tags the outer sides
func NewGrid2D(nx, ny int, lx, ly float64, ctype string) (m *Mesh, bnd *BoundaryInfo, err error) {

	// check
	if nx < 1 || ny < 1 {
		err = chk.Err("grid needs at least one cell in each direction. nx=%d, ny=%d is incorrect", nx, ny)
		return
	}

	// refinement factor: qua9 places vertices at half-steps
	f := 1
	switch ctype {
	case "qua4":
	case "qua9":
		f = 2
	default:
		err = chk.Err("cell type %q is not available for grids", ctype)
		return
	}

	// vertices
	m = &Mesh{Ndim: 2}
	nvx := f*nx + 1
	nvy := f*ny + 1
	dx := lx / float64(nvx-1)
	dy := ly / float64(nvy-1)
	for j := 0; j < nvy; j++ {
		for i := 0; i < nvx; i++ {
			m.Verts = append(m.Verts, &Vert{
				Id: j*nvx + i,
				C:  []float64{float64(i) * dx, float64(j) * dy},
			})
		}
	}

	// cells
	vid := func(i, j int) int { return j*nvx + i }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			var verts []int
			switch ctype {
			case "qua4":
				verts = []int{vid(i, j), vid(i+1, j), vid(i+1, j+1), vid(i, j+1)}
			case "qua9":
				verts = []int{
					vid(2*i, 2*j), vid(2*i+2, 2*j), vid(2*i+2, 2*j+2), vid(2*i, 2*j+2),
					vid(2*i+1, 2*j), vid(2*i+2, 2*j+1), vid(2*i+1, 2*j+2), vid(2*i, 2*j+1),
					vid(2*i+1, 2*j+1),
				}
			}
			m.Cells = append(m.Cells, &Cell{Id: j*nx + i, Type: ctype, Verts: verts})
		}
	}

	// boundary tags. local sides: 0=bottom 1=right 2=top 3=left
	bnd = NewBoundaryInfo()
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cid := j*nx + i
			if j == 0 {
				bnd.AddSide(cid, 0, TagBottom)
			}
			if i == nx-1 {
				bnd.AddSide(cid, 1, TagRight)
			}
			if j == ny-1 {
				bnd.AddSide(cid, 2, TagTop)
			}
			if i == 0 {
				bnd.AddSide(cid, 3, TagLeft)
			}
		}
	}
	return
}

// NewLine1D generates nx "lin2" cells over the segment [0,lx].
// 1D cells have no integrable sides; the returned BoundaryInfo is empty.
func NewLine1D(nx int, lx float64) (m *Mesh, bnd *BoundaryInfo, err error) {
	if nx < 1 {
		err = chk.Err("line needs at least one cell. nx=%d is incorrect", nx)
		return
	}
	m = &Mesh{Ndim: 1}
	dx := lx / float64(nx)
	for i := 0; i <= nx; i++ {
		m.Verts = append(m.Verts, &Vert{Id: i, C: []float64{float64(i) * dx}})
	}
	for i := 0; i < nx; i++ {
		m.Cells = append(m.Cells, &Cell{Id: i, Type: "lin2", Verts: []int{i, i + 1}})
	}
	bnd = NewBoundaryInfo()
	return
}
