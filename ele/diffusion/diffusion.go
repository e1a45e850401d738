// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffusion implements a model for (nonlinear) diffusion problems
package diffusion

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/cpmech/gofea/ele"
	"github.com/cpmech/gofea/shp"
)

// Model implements the physics of the diffusion equation expressed as
//
//     du                                      du
//   ρ ── + div w = s      with      w = -k(u) ──
//     dt                                      dx
//
// with conductivity k(u) = K0 * (1 + Beta*u). Boundary sides may carry a
// prescribed normal flux or a convective (Robin) condition per tag.
type Model struct {

	// parameters
	Rho    float64 // ρ coefficient of the transient term
	K0     float64 // reference conductivity
	Beta   float64 // conductivity nonlinearity coefficient
	Steady bool    // steady problem; "u" becomes a constraint variable
	NoJac  bool    // withhold the analytic Jacobian, forcing the numeric fallback

	// conditions
	src  dbf.T            // source term s(t,x). may be nil
	flux map[int]dbf.T    // prescribed normal flux per boundary tag
	conv map[int]*convectionData  // convective condition per boundary tag

	// postprocess results
	AvgU    map[int]float64 // cell id => mean of u
	BndFlux map[int]float64 // tag => integrated outward flux

	// derived
	ctype string
	order int

	// scratch
	gradU []float64
}

// convectionData holds one convective (Robin) boundary condition
//   qn = H * (u - Uinf)
type convectionData struct {
	H    float64 // film coefficient
	Uinf float64 // ambient value
}

// New returns a new diffusion model for cells of type ctype
func New(ctype string, rho, k0, beta float64) (o *Model) {
	o = new(Model)
	o.Rho = rho
	o.K0 = k0
	o.Beta = beta
	o.ctype = ctype
	shape, err := shp.Get(ctype)
	if err != nil {
		chk.Panic("cannot allocate diffusion model: %v", err)
	}
	o.order = shape.Order
	o.flux = make(map[int]dbf.T)
	o.conv = make(map[int]*convectionData)
	o.AvgU = make(map[int]float64)
	o.BndFlux = make(map[int]float64)
	o.gradU = make([]float64, shape.Gndim)
	return
}

// SetSource sets the source term
func (o *Model) SetSource(s dbf.T) { o.src = s }

// SetFlux prescribes the outward normal flux on sides with the given tag
func (o *Model) SetFlux(tag int, q dbf.T) { o.flux[tag] = q }

// SetConvection prescribes a convective condition qn = H*(u-uinf) on sides
// with the given tag
func (o *Model) SetConvection(tag int, h, uinf float64) {
	o.conv[tag] = &convectionData{h, uinf}
}

// Kval returns the conductivity @ u
func (o *Model) Kval(u float64) float64 { return o.K0 * (1.0 + o.Beta*u) }

// DkDu returns the derivative of the conductivity w.r.t u
func (o *Model) DkDu(u float64) float64 { return o.K0 * o.Beta }

// Variables returns the solution variables: a single scalar "u"
func (o *Model) Variables() []ele.Variable {
	return []ele.Variable{{
		Name:     "u",
		Index:    0,
		Shape:    o.ctype,
		Order:    o.order,
		Evolving: !o.Steady,
	}}
}

// ElemResidual adds the stiffness and source contributions of one cell
//   R[m] += Σip coef * ( k(u) ∇u·∇φm - s φm )
func (o *Model) ElemResidual(c *ele.Ctx, wantJac bool) (gotJac bool, err error) {
	ev := c.Ev
	ndim := ev.Ndim()
	nverts := ev.Nverts()
	for ip := 0; ip < ev.Nip(); ip++ {

		// variables @ ip
		u, err := ev.IntValue(0, ip)
		if err != nil {
			return false, err
		}
		err = ev.IntGrad(o.gradU, 0, ip)
		if err != nil {
			return false, err
		}
		coef := ev.Coef(ip)
		kval := o.Kval(u)
		sval := 0.0
		if o.src != nil {
			sval = o.src.F(c.Sol.T, ev.IpX(ip))
		}

		// residual
		for m := 0; m < nverts; m++ {
			r := c.Loc(0, m)
			G := ev.G(ip, m)
			c.R[r] -= coef * ev.S(ip, m) * sval
			for i := 0; i < ndim; i++ {
				c.R[r] += coef * kval * G[i] * o.gradU[i]
			}
		}

		// Jacobian
		if wantJac && !o.NoJac {
			dkdu := o.DkDu(u)
			for m := 0; m < nverts; m++ {
				Gm := ev.G(ip, m)
				for n := 0; n < nverts; n++ {
					Gn := ev.G(ip, n)
					Sn := ev.S(ip, n)
					v := 0.0
					for i := 0; i < ndim; i++ {
						v += coef * Gm[i] * (kval*Gn[i] + dkdu*Sn*o.gradU[i])
					}
					c.K[c.Loc(0, m)][c.Loc(0, n)] += v
				}
			}
		}
	}
	return wantJac && !o.NoJac, nil
}

// SideResidual adds prescribed-flux and convective contributions of one
// tagged side
//   R[m] += Σip coef * qn φm
func (o *Model) SideResidual(c *ele.Ctx, wantJac bool) (gotJac bool, err error) {
	ev := c.Ev
	nverts := ev.Nverts()
	q, hasFlux := o.flux[c.Tag]
	cv, hasConv := o.conv[c.Tag]
	if !hasFlux && !hasConv {
		return true, nil // nothing on this tag; zero contribution is analytic
	}
	for ip := 0; ip < ev.NipSide(); ip++ {
		coef := ev.SideCoef(ip)
		qn := 0.0
		if hasFlux {
			qn += q.F(c.Sol.T, ev.SideIpX(ip))
		}
		if hasConv {
			u, err := ev.SideValue(0, ip)
			if err != nil {
				return false, err
			}
			qn += cv.H * (u - cv.Uinf)
		}
		for m := 0; m < nverts; m++ {
			c.R[c.Loc(0, m)] += coef * qn * ev.Sside(ip, m)
		}
		if wantJac && !o.NoJac && hasConv {
			for m := 0; m < nverts; m++ {
				for n := 0; n < nverts; n++ {
					c.K[c.Loc(0, m)][c.Loc(0, n)] += coef * cv.H * ev.Sside(ip, m) * ev.Sside(ip, n)
				}
			}
		}
	}
	return wantJac && !o.NoJac, nil
}

// MassResidual overrides the engine default to scale the transient term by ρ
//   R[m] += Σip coef * ρ * u φm        K[m][n] += Σip coef * ρ * φm φn
func (o *Model) MassResidual(c *ele.Ctx, wantJac bool) (gotJac bool, err error) {
	ev := c.Ev
	nverts := ev.Nverts()
	for _, v := range c.Evolving {
		for ip := 0; ip < ev.Nip(); ip++ {
			u, err := ev.IntValue(v, ip)
			if err != nil {
				return false, err
			}
			coef := ev.Coef(ip)
			for m := 0; m < nverts; m++ {
				c.R[c.Loc(v, m)] += coef * o.Rho * u * ev.S(ip, m)
			}
			if wantJac {
				for m := 0; m < nverts; m++ {
					for n := 0; n < nverts; n++ {
						c.K[c.Loc(v, m)][c.Loc(v, n)] += coef * o.Rho * ev.S(ip, m) * ev.S(ip, n)
					}
				}
			}
		}
	}
	return wantJac, nil
}

// PostElem records the mean of u over one cell
func (o *Model) PostElem(c *ele.Ctx) (err error) {
	ev := c.Ev
	num, den := 0.0, 0.0
	for ip := 0; ip < ev.Nip(); ip++ {
		u, err := ev.IntValue(0, ip)
		if err != nil {
			return err
		}
		num += ev.Coef(ip) * u
		den += ev.Coef(ip)
	}
	o.AvgU[c.Cid] = num / den
	return
}

// PostSide integrates the outward flux w·n = -k(u) ∇u·n over one tagged side
func (o *Model) PostSide(c *ele.Ctx) (err error) {
	ev := c.Ev
	for ip := 0; ip < ev.NipSide(); ip++ {
		u, err := ev.SideValue(0, ip)
		if err != nil {
			return err
		}
		err = ev.SideGrad(o.gradU, 0, ip)
		if err != nil {
			return err
		}
		wn := 0.0
		n := ev.Normal(ip)
		for i := 0; i < ev.Ndim(); i++ {
			wn -= o.Kval(u) * o.gradU[i] * n[i]
		}
		o.BndFlux[c.Tag] += ev.SideCoef(ip) * wn
	}
	return
}

// ElemError returns a gradient-norm error indicator for one cell
func (o *Model) ElemError(c *ele.Ctx) (val float64, err error) {
	ev := c.Ev
	for ip := 0; ip < ev.Nip(); ip++ {
		err = ev.IntGrad(o.gradU, 0, ip)
		if err != nil {
			return
		}
		for i := 0; i < ev.Ndim(); i++ {
			val += ev.Coef(ip) * o.gradU[i] * o.gradU[i]
		}
	}
	return math.Sqrt(val), nil
}
