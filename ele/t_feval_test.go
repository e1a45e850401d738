// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofea/shp"
)

// unit square, one bilinear scalar
func newSquareEval(tst *testing.T) (ev *FieldEval, sol *Solution, ok bool) {
	vars := []Variable{{Name: "u", Index: 0, Shape: "qua4", Order: 1}}
	ev, err := NewFieldEval("qua4", vars, shp.SelectIps(2, 1, 0), shp.SelectFaceIps(2, 1, 0))
	if err != nil {
		tst.Errorf("NewFieldEval failed: %v\n", err)
		return nil, nil, false
	}
	x := [][]float64{
		{0, 1, 1, 0},
		{0, 0, 1, 1},
	}
	sol = NewSolution(4)
	err = ev.Reinit(x, [][]int{{0, 1, 2, 3}}, sol)
	if err != nil {
		tst.Errorf("Reinit failed: %v\n", err)
		return nil, nil, false
	}
	return ev, sol, true
}

func Test_feval01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("feval01. linear field reproduced exactly")

	ev, sol, ok := newSquareEval(tst)
	if !ok {
		return
	}

	// u = 1 + 2x + 3y at the four corners
	copy(sol.Y, []float64{1, 3, 6, 4})

	// interior samples
	gradU := make([]float64, 2)
	for ip := 0; ip < ev.Nip(); ip++ {
		x := ev.IpX(ip)
		u, err := ev.IntValue(0, ip)
		if err != nil {
			tst.Errorf("IntValue failed: %v\n", err)
			return
		}
		chk.Float64(tst, "u @ ip", 1e-14, u, 1+2*x[0]+3*x[1])
		err = ev.IntGrad(gradU, 0, ip)
		if err != nil {
			tst.Errorf("IntGrad failed: %v\n", err)
			return
		}
		chk.Array(tst, "grad(u) @ ip", 1e-14, gradU, []float64{2, 3})
	}

	// samplers are pure: same index, same answer, bit for bit
	u1, _ := ev.IntValue(0, 1)
	u2, _ := ev.IntValue(0, 1)
	if u1 != u2 {
		tst.Errorf("repeated sampling must be identical: %v != %v\n", u1, u2)
		return
	}

	// point sample away from the integration points
	u, err := ev.PointValue(0, []float64{0.3, 0.4})
	if err != nil {
		tst.Errorf("PointValue failed: %v\n", err)
		return
	}
	chk.Float64(tst, "u @ (0.3,0.4)", 1e-12, u, 2.8)

	// bottom side: y=0, outward normal -y, total length 1
	err = ev.ReinitSide(0)
	if err != nil {
		tst.Errorf("ReinitSide failed: %v\n", err)
		return
	}
	length := 0.0
	for ip := 0; ip < ev.NipSide(); ip++ {
		x := ev.SideIpX(ip)
		chk.Float64(tst, "y @ side ip", 1e-14, x[1], 0)
		u, err := ev.SideValue(0, ip)
		if err != nil {
			tst.Errorf("SideValue failed: %v\n", err)
			return
		}
		chk.Float64(tst, "u @ side ip", 1e-14, u, 1+2*x[0])
		err = ev.SideGrad(gradU, 0, ip)
		if err != nil {
			tst.Errorf("SideGrad failed: %v\n", err)
			return
		}
		chk.Array(tst, "grad(u) @ side ip", 1e-14, gradU, []float64{2, 3})
		chk.Array(tst, "normal", 1e-14, ev.Normal(ip), []float64{0, -1})
		length += ev.SideCoef(ip)
	}
	chk.Float64(tst, "side length", 1e-14, length, 1)
}

func Test_feval02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("feval02. frozen snapshot vs current iterate")

	ev, sol, ok := newSquareEval(tst)
	if !ok {
		return
	}
	copy(sol.Y, []float64{1, 3, 6, 4})
	sol.FixCurrent()

	// current iterate moves on; the frozen values stay behind
	for i := range sol.Y {
		sol.Y[i] *= 10
	}
	uNow, err := ev.IntValue(0, 0)
	if err != nil {
		tst.Errorf("IntValue failed: %v\n", err)
		return
	}
	uFix, err := ev.FixedIntValue(0, 0)
	if err != nil {
		tst.Errorf("FixedIntValue failed: %v\n", err)
		return
	}
	chk.Float64(tst, "current = 10 * frozen", 1e-14, uNow, 10*uFix)

	uPt, err := ev.FixedPointValue(0, []float64{0.5, 0.5})
	if err != nil {
		tst.Errorf("FixedPointValue failed: %v\n", err)
		return
	}
	chk.Float64(tst, "frozen @ center", 1e-12, uPt, 3.5)

	// Reset clears both snapshots
	sol.Reset()
	uNow, err = ev.IntValue(0, 0)
	if err != nil {
		tst.Errorf("IntValue failed: %v\n", err)
		return
	}
	chk.Float64(tst, "u after reset", 1e-17, uNow, 0)
}

func Test_feval03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("feval03. precondition failures")

	// family/order mismatches are rejected up front
	_, err := NewFieldEval("qua4", []Variable{{Name: "u", Shape: "lin2", Order: 1}}, nil, nil)
	if !errors.Is(err, ErrConfig) {
		tst.Errorf("family mismatch: want ErrConfig, got %v\n", err)
		return
	}
	_, err = NewFieldEval("qua9", []Variable{{Name: "u", Shape: "qua9", Order: 1}}, nil, nil)
	if !errors.Is(err, ErrConfig) {
		tst.Errorf("order mismatch: want ErrConfig, got %v\n", err)
		return
	}

	// out-of-range variable index
	ev, _, ok := newSquareEval(tst)
	if !ok {
		return
	}
	_, err = ev.IntValue(5, 0)
	if !errors.Is(err, ErrConfig) {
		tst.Errorf("bad variable: want ErrConfig, got %v\n", err)
		return
	}

	// hessians need a build with second-derivative support
	hessU := [][]float64{{0, 0}, {0, 0}}
	err = ev.IntHessian(hessU, 0, 0)
	if shp.HasSecondDerivs {
		if err != nil {
			tst.Errorf("IntHessian failed: %v\n", err)
			return
		}
	} else {
		if !errors.Is(err, ErrConfig) {
			tst.Errorf("hessian without support: want ErrConfig, got %v\n", err)
			return
		}
	}
}
