// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ their own vertex
// and 0.0 @ all others
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Fcn(shape.S, shape.DSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", shape.S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckPartitionOfUnity checks that shape functions sum to 1.0 @ r
func CheckPartitionOfUnity(tst *testing.T, shape *Shape, r []float64, tol float64) {
	shape.Fcn(shape.S, shape.DSdR, r, false)
	sum := 0.0
	for m := 0; m < shape.Nverts; m++ {
		sum += shape.S[m]
	}
	chk.Float64(tst, io.Sf("%s: sum(S) @ %v", shape.Type, r[:shape.Gndim]), tol, sum, 1.0)
}

// CheckDSdR checks the first natural derivatives of shape structures against
// numerical differentiation
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// analytical
	shape.Fcn(shape.S, shape.DSdR, r, true)

	// numerical
	n := shape.Gndim
	chk.DerivVecVec(tst, "dS/dR", tol, shape.DSdR, r[:n], 1e-1, verbose, func(f, x []float64) {
		shape.Fcn(f, nil, x, false) // f := S
	})
}

// CheckD2SdR2 checks the second natural derivatives against numerical
// differentiation of the first ones
func CheckD2SdR2(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {
	shape.Dfcn(shape.D2SdR2, r)
	n := shape.Gndim
	dSdR := make([][]float64, shape.Nverts)
	for m := 0; m < shape.Nverts; m++ {
		dSdR[m] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		d2 := make([][]float64, shape.Nverts)
		for m := 0; m < shape.Nverts; m++ {
			d2[m] = make([]float64, n)
			for i := 0; i < n; i++ {
				d2[m][i] = shape.D2SdR2[m][i][j]
			}
		}
		jcol := j
		chk.DerivVecVec(tst, io.Sf("d²S/dRdR[..][..][%d]", jcol), tol, d2, r[:n], 1e-1, verbose, func(f, x []float64) {
			shape.Fcn(shape.S, dSdR, x, true)
			for m := 0; m < shape.Nverts; m++ {
				f[m] = dSdR[m][jcol]
			}
		})
	}
}
