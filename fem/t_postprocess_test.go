// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gofea/ele"
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gofea/out"
)

func Test_post01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("post01. error estimation preconditions")

	m, bnd, err := msh.NewLine1D(4, 1.0)
	if err != nil {
		tst.Errorf("NewLine1D failed: %v\n", err)
		return
	}

	// a model without the estimation hook cannot fill indicators
	sys := New(m, bnd, &noopModel{ctype: "lin2"}, newCfg())
	err = sys.Init()
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	sol := ele.NewSolution(sys.NumEqs())
	ev := out.NewErrorVec(len(m.Cells))
	err = sys.ErrorEstimate(sol, ev)
	if !errors.Is(err, ele.ErrConfig) {
		tst.Errorf("missing hook: want ErrConfig, got %v\n", err)
		return
	}

	// wrong vector length
	sys2 := New(m, bnd, &gradModel{ctype: "lin2"}, newCfg())
	err = sys2.Init()
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	err = sys2.ErrorEstimate(sol, out.NewErrorVec(2))
	if !errors.Is(err, ele.ErrConfig) {
		tst.Errorf("wrong length: want ErrConfig, got %v\n", err)
		return
	}
}

func Test_post02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("post02. disabled cells keep zero indicators")

	m, bnd, err := msh.NewLine1D(4, 1.0)
	if err != nil {
		tst.Errorf("NewLine1D failed: %v\n", err)
		return
	}
	m.Cells[2].Disabled = true

	sys := New(m, bnd, &gradModel{ctype: "lin2"}, newCfg())
	err = sys.Init()
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	sol := ele.NewSolution(sys.NumEqs())
	for i := range sol.Y {
		sol.Y[i] = float64(i * i) // nonuniform gradient
	}
	ev := out.NewErrorVec(len(m.Cells))
	err = sys.ErrorEstimate(sol, ev)
	if err != nil {
		tst.Errorf("ErrorEstimate failed: %v\n", err)
		return
	}
	if ev[2] != 0 {
		tst.Errorf("disabled cell must keep a zero indicator. got %v\n", ev[2])
		return
	}
	for _, i := range []int{0, 1, 3} {
		if ev[i] <= 0 {
			tst.Errorf("active cell %d must get a positive indicator\n", i)
			return
		}
	}

	// the zero entry is invisible to the statistics
	chk.Float64(tst, "mean", 1e-15, ev.Mean(), (ev[0]+ev[1]+ev[3])/3.0)
	chk.Float64(tst, "min", 1e-17, ev.Min(), ev[0])
	chk.Float64(tst, "median", 1e-17, ev.Median(), ev[1])
}

func Test_post03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("post03. partitioned assembly sums to the serial result")

	newSys := func(proc, nproc int) (*System, *ele.Solution) {
		m, bnd, err := msh.NewLine1D(4, 1.0)
		if err != nil {
			tst.Errorf("NewLine1D failed: %v\n", err)
			return nil, nil
		}
		// partitions: cells 0,1 => proc 0; cells 2,3 => proc 1
		for i, c := range m.Cells {
			c.Part = i / 2
		}
		cfg := newCfg()
		cfg.Proc, cfg.Nproc = proc, nproc
		sys := New(m, bnd, &squareModel{ctype: "lin2"}, cfg)
		err = sys.Init()
		if err != nil {
			tst.Errorf("Init failed: %v\n", err)
			return nil, nil
		}
		sol := ele.NewSolution(sys.NumEqs())
		for i := range sol.Y {
			sol.Y[i] = 1.0 + 0.25*float64(i)
		}
		return sys, sol
	}

	assemble := func(sys *System, sol *ele.Solution) []float64 {
		fb := make([]float64, sys.NumEqs())
		err := sys.Assembly(sol, fb, nil, true, false)
		if err != nil {
			tst.Errorf("Assembly failed: %v\n", err)
			return nil
		}
		return fb
	}

	serial, sol0 := newSys(0, 1)
	p0, solA := newSys(0, 2)
	p1, solB := newSys(1, 2)
	fbS := assemble(serial, sol0)
	fbA := assemble(p0, solA)
	fbB := assemble(p1, solB)
	if fbS == nil || fbA == nil || fbB == nil {
		return
	}
	sum := make([]float64, len(fbS))
	for i := range sum {
		sum[i] = fbA[i] + fbB[i]
	}
	chk.Array(tst, "fb0+fb1", 1e-15, sum, fbS)
}

// gradModel carries only an error indicator: the l2 norm of the gradient
type gradModel struct {
	ctype string
	gradU []float64
}

func (o *gradModel) Variables() []ele.Variable {
	return []ele.Variable{{Name: "u", Index: 0, Shape: o.ctype, Order: 1}}
}

func (o *gradModel) ElemResidual(c *ele.Ctx, wantJac bool) (bool, error) { return true, nil }

func (o *gradModel) SideResidual(c *ele.Ctx, wantJac bool) (bool, error) { return true, nil }

func (o *gradModel) ElemError(c *ele.Ctx) (val float64, err error) {
	ev := c.Ev
	if o.gradU == nil {
		o.gradU = make([]float64, ev.Ndim())
	}
	for ip := 0; ip < ev.Nip(); ip++ {
		err = ev.IntGrad(o.gradU, 0, ip)
		if err != nil {
			return
		}
		for i := 0; i < ev.Ndim(); i++ {
			val += ev.Coef(ip) * o.gradU[i] * o.gradU[i]
		}
	}
	return
}
