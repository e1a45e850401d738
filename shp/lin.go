// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// lin2 -- 1D linear segment
//
//   0-----------1   r ∈ [-1, 1]
//
func init() {
	factory["lin2"] = func() *Shape {
		o := &Shape{
			Type:   "lin2",
			Gndim:  1,
			Nverts: 2,
			Order:  1,
			NatCoords: [][]float64{
				{-1, 1},
			},
		}
		o.Fcn = func(S []float64, dSdR [][]float64, r []float64, derivs bool) {
			S[0] = 0.5 * (1.0 - r[0])
			S[1] = 0.5 * (1.0 + r[0])
			if derivs {
				dSdR[0][0] = -0.5
				dSdR[1][0] = 0.5
			}
		}
		o.Dfcn = func(d2 [][][]float64, r []float64) {
			d2[0][0][0] = 0
			d2[1][0][0] = 0
		}
		o.allocScratch()
		return o
	}
}

// lin3 -- 1D quadratic segment
//
//   0-----2-----1   r ∈ [-1, 1]
//
func init() {
	factory["lin3"] = func() *Shape {
		o := &Shape{
			Type:   "lin3",
			Gndim:  1,
			Nverts: 3,
			Order:  2,
			NatCoords: [][]float64{
				{-1, 1, 0},
			},
		}
		o.Fcn = func(S []float64, dSdR [][]float64, r []float64, derivs bool) {
			S[0] = 0.5 * r[0] * (r[0] - 1.0)
			S[1] = 0.5 * r[0] * (r[0] + 1.0)
			S[2] = 1.0 - r[0]*r[0]
			if derivs {
				dSdR[0][0] = r[0] - 0.5
				dSdR[1][0] = r[0] + 0.5
				dSdR[2][0] = -2.0 * r[0]
			}
		}
		o.Dfcn = func(d2 [][][]float64, r []float64) {
			d2[0][0][0] = 1
			d2[1][0][0] = 1
			d2[2][0][0] = -2
		}
		o.allocScratch()
		return o
	}
}
