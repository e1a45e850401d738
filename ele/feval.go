// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gofea/shp"
)

// FieldEval caches shape function values, gradients and (optionally)
// hessians at the integration points of the current cell interior and of the
// current side, and samples solution fields from the cached data. The cache
// buffers are owned by the evaluator and reinitialised in place when the
// current cell or side changes; callers must never hold references to cached
// data across a Reinit call.
type FieldEval struct {

	// constants
	shape *shp.Shape // shape functions (scratch owner)
	ndim  int        // space dimension
	nvars int        // number of variables

	// current cell
	x    [][]float64 // [ndim][nverts] coordinates of current cell
	umap [][]int     // [nvars][nverts] global equations of current cell
	sol  *Solution   // solution snapshots

	// interior cache
	ips   []shp.Ipoint    // interior integration points
	sv    [][]float64     // [nip][nverts] shape values
	gv    [][][]float64   // [nip][nverts][ndim] gradients
	hv    [][][][]float64 // [nip][nverts][ndim][ndim] hessians (seconder builds)
	coefs []float64       // [nip] J * w
	xips  [][]float64     // [nip][ndim] real coordinates

	// side cache
	ipsF   []shp.Ipoint    // side integration points
	side   int             // current side; -1 when interior only
	svF    [][]float64     // [nipf][nverts] shape values @ side points
	gvF    [][][]float64   // [nipf][nverts][ndim] gradients @ side points
	hvF    [][][][]float64 // [nipf][nverts][ndim][ndim] hessians @ side points
	coefsF []float64       // [nipf] Jf * w
	norms  [][]float64     // [nipf][ndim] unit outward normals
	xipsF  [][]float64     // [nipf][ndim] real coordinates

	rnat []float64 // scratch natural coordinates
}

// NewFieldEval returns a new FieldEval for cells of type ctype, with the
// given variables and interior/side integration rules. All buffers are
// allocated here; Reinit only overwrites them.
func NewFieldEval(ctype string, vars []Variable, ips, ipsF []shp.Ipoint) (o *FieldEval, err error) {

	// shape functions
	o = new(FieldEval)
	o.shape, err = shp.Get(ctype)
	if err != nil {
		return nil, err
	}
	o.ndim = o.shape.Gndim
	o.nvars = len(vars)
	for _, v := range vars {
		if v.Shape != ctype {
			return nil, cfgErr("variable %q declares family %q but cells are %q", v.Name, v.Shape, ctype)
		}
		if v.Order != o.shape.Order {
			return nil, cfgErr("variable %q declares order %d but family %q has order %d", v.Name, v.Order, ctype, o.shape.Order)
		}
	}

	// interior cache
	nv := o.shape.Nverts
	o.ips = ips
	nip := len(ips)
	o.sv = utl.Alloc(nip, nv)
	o.coefs = make([]float64, nip)
	o.xips = utl.Alloc(nip, o.ndim)
	o.gv = make([][][]float64, nip)
	o.hv = make([][][][]float64, nip)
	for k := 0; k < nip; k++ {
		o.gv[k] = utl.Alloc(nv, o.ndim)
		o.hv[k] = allocHessians(nv, o.ndim)
	}

	// side cache
	o.side = -1
	if o.shape.Nfaces() > 0 {
		o.ipsF = ipsF
		nipf := len(ipsF)
		o.svF = utl.Alloc(nipf, nv)
		o.coefsF = make([]float64, nipf)
		o.norms = utl.Alloc(nipf, o.ndim)
		o.xipsF = utl.Alloc(nipf, o.ndim)
		o.gvF = make([][][]float64, nipf)
		o.hvF = make([][][][]float64, nipf)
		for k := 0; k < nipf; k++ {
			o.gvF[k] = utl.Alloc(nv, o.ndim)
			o.hvF[k] = allocHessians(nv, o.ndim)
		}
	}
	o.rnat = make([]float64, 3)
	return
}

func allocHessians(nverts, ndim int) (h [][][]float64) {
	if !shp.HasSecondDerivs {
		return nil
	}
	h = make([][][]float64, nverts)
	for m := 0; m < nverts; m++ {
		h[m] = utl.Alloc(ndim, ndim)
	}
	return
}

// Reinit rebuilds the interior cache for the cell with coordinates matrix x
// and equation maps umap, invalidating the previous cell's data
func (o *FieldEval) Reinit(x [][]float64, umap [][]int, sol *Solution) (err error) {
	o.x, o.umap, o.sol = x, umap, sol
	o.side = -1
	nv := o.shape.Nverts
	for k, ip := range o.ips {
		err = o.shape.CalcAtIp(x, ip, true)
		if err != nil {
			return
		}
		copy(o.sv[k], o.shape.S)
		for m := 0; m < nv; m++ {
			copy(o.gv[k][m], o.shape.G[m])
		}
		o.coefs[k] = o.shape.J * ip[3]
		for i := 0; i < o.ndim; i++ {
			o.xips[k][i] = 0
			for m := 0; m < nv; m++ {
				o.xips[k][i] += o.sv[k][m] * x[i][m]
			}
		}
		if shp.HasSecondDerivs {
			err = o.shape.CalcHessianAtIp(ip)
			if err != nil {
				return
			}
			for m := 0; m < nv; m++ {
				for i := 0; i < o.ndim; i++ {
					copy(o.hv[k][m][i], o.shape.H[m][i])
				}
			}
		}
	}
	return
}

// ReinitSide rebuilds the side cache for side 'side' of the cell last passed
// to Reinit. Reinit must have been called for the same cell first.
func (o *FieldEval) ReinitSide(side int) (err error) {
	if o.shape.Nfaces() == 0 {
		return chk.Err("cells of type %q have no sides", o.shape.Type)
	}
	o.side = side
	nv := o.shape.Nverts
	for k, ipf := range o.ipsF {

		// full-element basis at the side point
		err = o.shape.FaceIpNat(o.rnat, ipf, side)
		if err != nil {
			return
		}
		err = o.shape.CalcAtIp(o.x, o.rnat, true)
		if err != nil {
			return
		}
		copy(o.svF[k], o.shape.S)
		for m := 0; m < nv; m++ {
			copy(o.gvF[k][m], o.shape.G[m])
		}
		for i := 0; i < o.ndim; i++ {
			o.xipsF[k][i] = 0
			for m := 0; m < nv; m++ {
				o.xipsF[k][i] += o.svF[k][m] * o.x[i][m]
			}
		}
		if shp.HasSecondDerivs {
			err = o.shape.CalcHessianAtIp(o.rnat)
			if err != nil {
				return
			}
			for m := 0; m < nv; m++ {
				for i := 0; i < o.ndim; i++ {
					copy(o.hvF[k][m][i], o.shape.H[m][i])
				}
			}
		}

		// face mapping scale and unit normal
		err = o.shape.CalcAtFaceIp(o.x, ipf, side)
		if err != nil {
			return
		}
		Jf := la.Vector(o.shape.Fnvec).Norm()
		o.coefsF[k] = ipf[3] * Jf
		for i := 0; i < o.ndim; i++ {
			o.norms[k][i] = o.shape.Fnvec[i] / Jf
		}
	}
	return
}

// accessors //////////////////////////////////////////////////////////////////////////////////////

// Nip returns the number of interior integration points
func (o *FieldEval) Nip() int { return len(o.ips) }

// NipSide returns the number of side integration points
func (o *FieldEval) NipSide() int { return len(o.ipsF) }

// Nverts returns the number of basis functions (vertices) per variable
func (o *FieldEval) Nverts() int { return o.shape.Nverts }

// Nfaces returns the number of sides of the cell type. 1D cells have none.
func (o *FieldEval) Nfaces() int { return o.shape.Nfaces() }

// Ndim returns the space dimension
func (o *FieldEval) Ndim() int { return o.ndim }

// Coef returns J*w at interior integration point ip
func (o *FieldEval) Coef(ip int) float64 { return o.coefs[ip] }

// SideCoef returns Jf*w at side integration point ip
func (o *FieldEval) SideCoef(ip int) float64 { return o.coefsF[ip] }

// Normal returns the unit outward normal at side integration point ip.
// The slice is owned by the cache; do not hold it across a reinit.
func (o *FieldEval) Normal(ip int) []float64 { return o.norms[ip] }

// IpX returns the real coordinates of interior integration point ip
func (o *FieldEval) IpX(ip int) []float64 { return o.xips[ip] }

// SideIpX returns the real coordinates of side integration point ip
func (o *FieldEval) SideIpX(ip int) []float64 { return o.xipsF[ip] }

// S returns the value of basis function m at interior integration point ip
func (o *FieldEval) S(ip, m int) float64 { return o.sv[ip][m] }

// G returns the gradient of basis function m at interior integration point
// ip. The slice is owned by the cache.
func (o *FieldEval) G(ip, m int) []float64 { return o.gv[ip][m] }

// Sside returns the value of basis function m at side integration point ip
func (o *FieldEval) Sside(ip, m int) float64 { return o.svF[ip][m] }

// Gside returns the gradient of basis function m at side integration point ip
func (o *FieldEval) Gside(ip, m int) []float64 { return o.gvF[ip][m] }

// sampling ///////////////////////////////////////////////////////////////////////////////////////

// checkVar validates the variable index
func (o *FieldEval) checkVar(v int) error {
	if v < 0 || v >= o.nvars {
		return cfgErr("variable index %d is outside the declared range [0,%d)", v, o.nvars)
	}
	return nil
}

// value combines local coefficients of variable v with cached basis values
func (o *FieldEval) value(sv []float64, y []float64, v int) (u float64, err error) {
	if err = o.checkVar(v); err != nil {
		return
	}
	for m := 0; m < o.shape.Nverts; m++ {
		u += sv[m] * y[o.umap[v][m]]
	}
	return
}

// grad combines local coefficients with cached basis gradients
func (o *FieldEval) grad(gradU []float64, gv [][]float64, y []float64, v int) (err error) {
	if err = o.checkVar(v); err != nil {
		return
	}
	for i := 0; i < o.ndim; i++ {
		gradU[i] = 0
	}
	for m := 0; m < o.shape.Nverts; m++ {
		for i := 0; i < o.ndim; i++ {
			gradU[i] += gv[m][i] * y[o.umap[v][m]]
		}
	}
	return
}

// hessian combines local coefficients with cached basis hessians
func (o *FieldEval) hessian(hessU [][]float64, hv [][][]float64, y []float64, v int) (err error) {
	if !shp.HasSecondDerivs {
		return cfgErr("hessian requested but this build has no second-derivative support")
	}
	if err = o.checkVar(v); err != nil {
		return
	}
	for i := 0; i < o.ndim; i++ {
		for j := 0; j < o.ndim; j++ {
			hessU[i][j] = 0
		}
	}
	for m := 0; m < o.shape.Nverts; m++ {
		for i := 0; i < o.ndim; i++ {
			for j := 0; j < o.ndim; j++ {
				hessU[i][j] += hv[m][i][j] * y[o.umap[v][m]]
			}
		}
	}
	return
}

// IntValue returns the value of variable v at interior integration point ip
func (o *FieldEval) IntValue(v, ip int) (float64, error) {
	return o.value(o.sv[ip], o.sol.Y, v)
}

// IntGrad computes the gradient of variable v at interior integration point ip
func (o *FieldEval) IntGrad(gradU []float64, v, ip int) error {
	return o.grad(gradU, o.gv[ip], o.sol.Y, v)
}

// IntHessian computes the hessian of variable v at interior integration
// point ip. Fails unless the build carries second-derivative support.
func (o *FieldEval) IntHessian(hessU [][]float64, v, ip int) error {
	return o.hessian(hessU, o.hv[ip], o.sol.Y, v)
}

// SideValue returns the value of variable v at side integration point ip
func (o *FieldEval) SideValue(v, ip int) (float64, error) {
	return o.value(o.svF[ip], o.sol.Y, v)
}

// SideGrad computes the gradient of variable v at side integration point ip
func (o *FieldEval) SideGrad(gradU []float64, v, ip int) error {
	return o.grad(gradU, o.gvF[ip], o.sol.Y, v)
}

// SideHessian computes the hessian of variable v at side integration point ip
func (o *FieldEval) SideHessian(hessU [][]float64, v, ip int) error {
	return o.hessian(hessU, o.hvF[ip], o.sol.Y, v)
}

// FixedIntValue returns the fixed-iterate value of variable v at interior
// integration point ip
func (o *FieldEval) FixedIntValue(v, ip int) (float64, error) {
	return o.value(o.sv[ip], o.sol.Yfix, v)
}

// FixedIntGrad computes the fixed-iterate gradient of variable v at interior
// integration point ip
func (o *FieldEval) FixedIntGrad(gradU []float64, v, ip int) error {
	return o.grad(gradU, o.gv[ip], o.sol.Yfix, v)
}

// FixedIntHessian computes the fixed-iterate hessian of variable v at
// interior integration point ip
func (o *FieldEval) FixedIntHessian(hessU [][]float64, v, ip int) error {
	return o.hessian(hessU, o.hv[ip], o.sol.Yfix, v)
}

// FixedSideValue returns the fixed-iterate value of variable v at side
// integration point ip
func (o *FieldEval) FixedSideValue(v, ip int) (float64, error) {
	return o.value(o.svF[ip], o.sol.Yfix, v)
}

// FixedSideGrad computes the fixed-iterate gradient of variable v at side
// integration point ip
func (o *FieldEval) FixedSideGrad(gradU []float64, v, ip int) error {
	return o.grad(gradU, o.gvF[ip], o.sol.Yfix, v)
}

// FixedSideHessian computes the fixed-iterate hessian of variable v at side
// integration point ip
func (o *FieldEval) FixedSideHessian(hessU [][]float64, v, ip int) error {
	return o.hessian(hessU, o.hvF[ip], o.sol.Yfix, v)
}

// PointValue returns the value of variable v at the arbitrary physical point
// xp inside the current cell. Requires an inverse mapping and an on-the-fly
// basis evaluation; nothing is cached.
func (o *FieldEval) PointValue(v int, xp []float64) (u float64, err error) {
	return o.pointValue(o.sol.Y, v, xp)
}

// FixedPointValue returns the fixed-iterate value of variable v at the
// arbitrary physical point xp inside the current cell
func (o *FieldEval) FixedPointValue(v int, xp []float64) (u float64, err error) {
	return o.pointValue(o.sol.Yfix, v, xp)
}

func (o *FieldEval) pointValue(y []float64, v int, xp []float64) (u float64, err error) {
	if err = o.checkVar(v); err != nil {
		return
	}
	err = o.shape.InvMap(o.rnat, xp, o.x)
	if err != nil {
		return
	}
	err = o.shape.CalcAtIp(o.x, o.rnat, false)
	if err != nil {
		return
	}
	for m := 0; m < o.shape.Nverts; m++ {
		u += o.shape.S[m] * y[o.umap[v][m]]
	}
	return
}
