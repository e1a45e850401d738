// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gofea/ele"
	"github.com/cpmech/gofea/shp"
)

func Test_diffusion01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diffusion01. conductivity and variables")

	mdl := New("qua4", 2, 1.5, 0.5)
	vars := mdl.Variables()
	chk.IntAssert(len(vars), 1)
	chk.String(tst, vars[0].Name, "u")
	chk.IntAssert(vars[0].Order, 1)
	if !vars[0].Evolving {
		tst.Errorf("transient models must declare u as evolving\n")
		return
	}
	mdl.Steady = true
	if mdl.Variables()[0].Evolving {
		tst.Errorf("steady models must not declare u as evolving\n")
		return
	}

	chk.Float64(tst, "k(2)", 1e-15, mdl.Kval(2), 1.5*(1+0.5*2))
	U := utl.LinSpace(0, 2.0, 5)
	for _, uval := range U {
		dana := mdl.DkDu(uval)
		dnum := num.DerivCen5(uval, 1e-3, func(x float64) float64 {
			return mdl.Kval(x)
		})
		chk.Float64(tst, "DkDu", 1e-9, dana, dnum)
	}
}

// square cell with u = 1 + 2x + 3y
func newSquareCtx(tst *testing.T, mdl *Model) (c *ele.Ctx, ok bool) {
	ev, err := ele.NewFieldEval("qua4", mdl.Variables(), shp.SelectIps(2, 1, 0), shp.SelectFaceIps(2, 1, 0))
	if err != nil {
		tst.Errorf("NewFieldEval failed: %v\n", err)
		return nil, false
	}
	x := [][]float64{
		{0, 1, 1, 0},
		{0, 0, 1, 1},
	}
	sol := ele.NewSolution(4)
	copy(sol.Y, []float64{1, 3, 6, 4})
	err = ev.Reinit(x, [][]int{{0, 1, 2, 3}}, sol)
	if err != nil {
		tst.Errorf("Reinit failed: %v\n", err)
		return nil, false
	}
	c = &ele.Ctx{
		Cid:    0,
		Side:   -1,
		Ev:     ev,
		Sol:    sol,
		Nverts: 4,
		R:      make([]float64, 4),
		K:      utl.Alloc(4, 4),
		Umap:   []int{0, 1, 2, 3},
	}
	return c, true
}

func Test_diffusion02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diffusion02. interior residual and stiffness")

	mdl := New("qua4", 1, 1, 0)
	mdl.Steady = true
	c, ok := newSquareCtx(tst, mdl)
	if !ok {
		return
	}

	// grad(u) = {2,3}: R[m] = grad(u) . int grad(phi_m)
	gotJac, err := mdl.ElemResidual(c, true)
	if err != nil {
		tst.Errorf("ElemResidual failed: %v\n", err)
		return
	}
	if !gotJac {
		tst.Errorf("the model must provide its analytic Jacobian\n")
		return
	}
	chk.Array(tst, "R", 1e-14, c.R, []float64{-2.5, -0.5, 2.5, 0.5})
	chk.Deep2(tst, "K", 1e-14, c.K, [][]float64{
		{4.0 / 6.0, -1.0 / 6.0, -2.0 / 6.0, -1.0 / 6.0},
		{-1.0 / 6.0, 4.0 / 6.0, -1.0 / 6.0, -2.0 / 6.0},
		{-2.0 / 6.0, -1.0 / 6.0, 4.0 / 6.0, -1.0 / 6.0},
		{-1.0 / 6.0, -2.0 / 6.0, -1.0 / 6.0, 4.0 / 6.0},
	})

	// postprocess values of the linear field
	err = mdl.PostElem(c)
	if err != nil {
		tst.Errorf("PostElem failed: %v\n", err)
		return
	}
	chk.Float64(tst, "mean u", 1e-14, mdl.AvgU[0], 3.5)
	val, err := mdl.ElemError(c)
	if err != nil {
		tst.Errorf("ElemError failed: %v\n", err)
		return
	}
	chk.Float64(tst, "indicator", 1e-14, val, math.Sqrt(13))
}

func Test_diffusion03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diffusion03. scaled transient term")

	mdl := New("qua4", 2, 1, 0) // rho = 2
	c, ok := newSquareCtx(tst, mdl)
	if !ok {
		return
	}
	c.Evolving = []int{0}

	gotJac, err := mdl.MassResidual(c, true)
	if err != nil {
		tst.Errorf("MassResidual failed: %v\n", err)
		return
	}
	if !gotJac {
		tst.Errorf("the mass override must provide its analytic Jacobian\n")
		return
	}

	// R = rho * M * u with the consistent mass of the unit square
	chk.Array(tst, "R", 1e-14, c.R, []float64{4.0 / 3.0, 5.0 / 3.0, 13.0 / 6.0, 11.0 / 6.0})
	chk.Float64(tst, "K diag", 1e-14, c.K[0][0], 2.0*4.0/36.0)
	chk.Float64(tst, "K offdiag", 1e-14, c.K[0][2], 2.0*1.0/36.0)
}

func Test_diffusion04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diffusion04. side conditions")

	mdl := New("qua4", 1, 1, 0)
	mdl.Steady = true
	mdl.SetConvection(-10, 2, 1) // qn = 2*(u-1)
	c, ok := newSquareCtx(tst, mdl)
	if !ok {
		return
	}

	// untouched tag: zero contribution counts as analytic
	c.Side, c.Tag = 2, -77
	err := c.Ev.ReinitSide(2)
	if err != nil {
		tst.Errorf("ReinitSide failed: %v\n", err)
		return
	}
	gotJac, err := mdl.SideResidual(c, true)
	if err != nil {
		tst.Errorf("SideResidual failed: %v\n", err)
		return
	}
	if !gotJac {
		tst.Errorf("an untouched tag must not force finite differencing\n")
		return
	}
	chk.Array(tst, "R untouched", 1e-17, c.R, []float64{0, 0, 0, 0})

	// bottom side with convection: u = 1+2x there, so qn = 4x
	c.Side, c.Tag = 0, -10
	err = c.Ev.ReinitSide(0)
	if err != nil {
		tst.Errorf("ReinitSide failed: %v\n", err)
		return
	}
	gotJac, err = mdl.SideResidual(c, true)
	if err != nil {
		tst.Errorf("SideResidual failed: %v\n", err)
		return
	}
	if !gotJac {
		tst.Errorf("the convective Jacobian must be analytic\n")
		return
	}
	chk.Array(tst, "R convection", 1e-14, c.R, []float64{2.0 / 3.0, 4.0 / 3.0, 0, 0})
	chk.Float64(tst, "K00", 1e-14, c.K[0][0], 2.0/3.0)
	chk.Float64(tst, "K02", 1e-17, c.K[0][2], 0)

	// integrated outward flux over the bottom: -k du/dy * (-1) = 3
	err = mdl.PostSide(c)
	if err != nil {
		tst.Errorf("PostSide failed: %v\n", err)
		return
	}
	chk.Float64(tst, "boundary flux", 1e-14, mdl.BndFlux[-10], 3)
}
