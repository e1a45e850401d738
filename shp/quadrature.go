// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"gonum.org/v1/gonum/integrate/quad"
)

// Ipoint holds the natural coordinates and weight of one integration point:
// {r, s, t, w}
type Ipoint []float64

// gauss1d caches 1D Gauss-Legendre nodes and weights per number of points
var gauss1d = make(map[int][2][]float64)

// gaussNodes returns n Gauss-Legendre nodes and weights on [-1,1]
func gaussNodes(n int) (x, w []float64) {
	if cached, ok := gauss1d[n]; ok {
		return cached[0], cached[1]
	}
	x = make([]float64, n)
	w = make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	gauss1d[n] = [2][]float64{x, w}
	return
}

// GaussRule returns the tensor-product Gauss-Legendre rule with npts1d points
// per direction, over the reference domain [-1,1]^ndim. The rule integrates
// polynomials of degree up to 2*npts1d-1 exactly in each direction.
// ndim=0 returns a single unit-weight point (point "integration").
func GaussRule(ndim, npts1d int) (ips []Ipoint) {
	if ndim == 0 {
		return []Ipoint{{0, 0, 0, 1}}
	}
	x, w := gaussNodes(npts1d)
	switch ndim {
	case 1:
		for i := 0; i < npts1d; i++ {
			ips = append(ips, Ipoint{x[i], 0, 0, w[i]})
		}
	case 2:
		for j := 0; j < npts1d; j++ {
			for i := 0; i < npts1d; i++ {
				ips = append(ips, Ipoint{x[i], x[j], 0, w[i] * w[j]})
			}
		}
	}
	return
}

// SelectIps returns the smallest Gauss-Legendre rule whose exactness degree
// covers 2*maxOrder+1+extra, where maxOrder is the highest polynomial order
// among the active variables and extra is the user bias. The result never
// under-integrates; a negative extra is honored but the rule keeps at least
// one point.
func SelectIps(ndim, maxOrder, extra int) []Ipoint {
	deg := 2*maxOrder + 1 + extra
	if deg < 1 {
		deg = 1
	}
	npts1d := (deg + 2) / 2 // smallest n with 2n-1 >= deg
	return GaussRule(ndim, npts1d)
}

// SelectFaceIps returns the rule for side integration, computed analogously
// to SelectIps with the side-restricted dimension
func SelectFaceIps(ndim, maxOrder, extra int) []Ipoint {
	return SelectIps(ndim-1, maxOrder, extra)
}
