// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// qua4 -- 2D bilinear quadrilateral
//
//   3-----------2
//   |     s     |
//   |     |     |
//   |     +--r  |
//   |           |
//   |           |
//   0-----------1
//
func init() {
	factory["qua4"] = func() *Shape {
		o := &Shape{
			Type:   "qua4",
			Gndim:  2,
			Nverts: 4,
			Order:  1,
			NatCoords: [][]float64{
				{-1, 1, 1, -1},
				{-1, -1, 1, 1},
			},
			FaceType:       "lin2",
			FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		}
		rm := []float64{-1, 1, 1, -1}
		sm := []float64{-1, -1, 1, 1}
		o.Fcn = func(S []float64, dSdR [][]float64, r []float64, derivs bool) {
			for m := 0; m < 4; m++ {
				S[m] = 0.25 * (1.0 + r[0]*rm[m]) * (1.0 + r[1]*sm[m])
				if derivs {
					dSdR[m][0] = 0.25 * rm[m] * (1.0 + r[1]*sm[m])
					dSdR[m][1] = 0.25 * sm[m] * (1.0 + r[0]*rm[m])
				}
			}
		}
		o.Dfcn = func(d2 [][][]float64, r []float64) {
			for m := 0; m < 4; m++ {
				d2[m][0][0] = 0
				d2[m][1][1] = 0
				d2[m][0][1] = 0.25 * rm[m] * sm[m]
				d2[m][1][0] = d2[m][0][1]
			}
		}
		o.allocScratch()
		return o
	}
}

// qua9 -- 2D biquadratic quadrilateral
//
//   3-----6-----2
//   |     s     |
//   |     |     |
//   7     8--r  5
//   |           |
//   |           |
//   0-----4-----1
//
func init() {
	factory["qua9"] = func() *Shape {
		o := &Shape{
			Type:   "qua9",
			Gndim:  2,
			Nverts: 9,
			Order:  2,
			NatCoords: [][]float64{
				{-1, 1, 1, -1, 0, 1, 0, -1, 0},
				{-1, -1, 1, 1, -1, 0, 1, 0, 0},
			},
			FaceType:       "lin3",
			FaceLocalVerts: [][]int{{0, 1, 4}, {1, 2, 5}, {2, 3, 6}, {3, 0, 7}},
		}
		o.Fcn = func(S []float64, dSdR [][]float64, r []float64, derivs bool) {
			for m := 0; m < 9; m++ {
				pr := o.NatCoords[0][m]
				ps := o.NatCoords[1][m]
				S[m] = lag3(pr, r[0]) * lag3(ps, r[1])
				if derivs {
					dSdR[m][0] = dlag3(pr, r[0]) * lag3(ps, r[1])
					dSdR[m][1] = lag3(pr, r[0]) * dlag3(ps, r[1])
				}
			}
		}
		o.Dfcn = func(d2 [][][]float64, r []float64) {
			for m := 0; m < 9; m++ {
				pr := o.NatCoords[0][m]
				ps := o.NatCoords[1][m]
				d2[m][0][0] = d2lag3(pr) * lag3(ps, r[1])
				d2[m][1][1] = lag3(pr, r[0]) * d2lag3(ps)
				d2[m][0][1] = dlag3(pr, r[0]) * dlag3(ps, r[1])
				d2[m][1][0] = d2[m][0][1]
			}
		}
		o.allocScratch()
		return o
	}
}

// lag3 evaluates the 1D quadratic Lagrange polynomial attached to node
// position p ∈ {-1, 0, 1} at ξ
func lag3(p, ξ float64) float64 {
	switch {
	case p < 0:
		return 0.5 * ξ * (ξ - 1.0)
	case p > 0:
		return 0.5 * ξ * (ξ + 1.0)
	}
	return 1.0 - ξ*ξ
}

func dlag3(p, ξ float64) float64 {
	switch {
	case p < 0:
		return ξ - 0.5
	case p > 0:
		return ξ + 0.5
	}
	return -2.0 * ξ
}

func d2lag3(p float64) float64 {
	if p < 0 || p > 0 {
		return 1.0
	}
	return -2.0
}
