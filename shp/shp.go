// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape (interpolation) functions and quadrature rules
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ShpFunc computes shape functions S and, if derivs is true, the natural
// derivatives dSdR at natural coordinates r
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// D2Func computes second natural derivatives d²S/dRdR at r
type D2Func func(d2SdR2 [][][]float64, r []float64)

// Shape holds the shape functions of one cell type together with scratch
// buffers for computations at one point at a time. The scratch buffers (S, G,
// H, Sf, Fnvec, ...) are overwritten by each Calc call; callers must copy
// what they need before the next call.
type Shape struct {

	// metadata
	Type      string      // type name; e.g. "qua4"
	Gndim     int         // geometry dimension
	Nverts    int         // number of vertices
	Order     int         // polynomial order
	NatCoords [][]float64 // [gndim][nverts] natural coordinates of vertices

	// face topology
	FaceType       string  // type of face shape; e.g. "lin2". empty for 1D shapes
	FaceLocalVerts [][]int // [nfaces][nfverts] local vertex ids on each face

	// functions
	Fcn  ShpFunc // shape functions and first natural derivatives
	Dfcn D2Func  // second natural derivatives

	// scratch: interior
	S      []float64     // [nverts] shape function values
	DSdR   [][]float64   // [nverts][gndim] natural derivatives
	G      [][]float64   // [nverts][gndim] physical derivatives dS/dx
	D2SdR2 [][][]float64 // [nverts][gndim][gndim] second natural derivatives
	H      [][][]float64 // [nverts][gndim][gndim] physical second derivatives
	J      float64       // determinant of mapping Jacobian
	Jmat   [][]float64   // [gndim][gndim] mapping Jacobian
	Jinv   [][]float64   // [gndim][gndim] inverse Jacobian

	// scratch: face
	Sf    []float64 // [nfverts] face shape function values
	DSfdz []float64 // [nfverts] face natural derivatives
	Fnvec []float64 // [gndim] face normal vector (not normalized)

	face *Shape // face shape prototype. nil for 1D shapes
}

// factory of shapes. type name => allocator
var factory = make(map[string]func() *Shape)

// Get returns a new Shape of the given type
func Get(typename string) (o *Shape, err error) {
	alloc, ok := factory[typename]
	if !ok {
		return nil, chk.Err("shape type %q is not available", typename)
	}
	o = alloc()
	return
}

// allocScratch allocates the scratch buffers of a freshly built Shape
func (o *Shape) allocScratch() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = make([][]float64, o.Nverts)
	o.G = make([][]float64, o.Nverts)
	o.D2SdR2 = make([][][]float64, o.Nverts)
	o.H = make([][][]float64, o.Nverts)
	for m := 0; m < o.Nverts; m++ {
		o.DSdR[m] = make([]float64, o.Gndim)
		o.G[m] = make([]float64, o.Gndim)
		o.D2SdR2[m] = make([][]float64, o.Gndim)
		o.H[m] = make([][]float64, o.Gndim)
		for i := 0; i < o.Gndim; i++ {
			o.D2SdR2[m][i] = make([]float64, o.Gndim)
			o.H[m][i] = make([]float64, o.Gndim)
		}
	}
	o.Jmat = make([][]float64, o.Gndim)
	o.Jinv = make([][]float64, o.Gndim)
	for i := 0; i < o.Gndim; i++ {
		o.Jmat[i] = make([]float64, o.Gndim)
		o.Jinv[i] = make([]float64, o.Gndim)
	}
	if o.FaceType != "" {
		o.face, _ = Get(o.FaceType)
		nfv := o.face.Nverts
		o.Sf = make([]float64, nfv)
		o.DSfdz = make([]float64, nfv)
		o.Fnvec = make([]float64, o.Gndim)
	}
}

// Nfaces returns the number of faces (sides). 1D shapes have none.
func (o *Shape) Nfaces() int { return len(o.FaceLocalVerts) }

// CalcAtIp computes S and, if derivs, J, G at the natural coordinates given
// in ip (which may be an integration point; only the first Gndim entries are
// read). Results are stored in the scratch buffers.
//  x -- [ndim][nverts] coordinates matrix of cell
func (o *Shape) CalcAtIp(x [][]float64, ip []float64, derivs bool) (err error) {
	o.Fcn(o.S, o.DSdR, ip, derivs)
	if !derivs {
		return
	}

	// mapping Jacobian: Jmat[i][j] = sum_m x[i][m] * dSm/dRj
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.Jmat[i][j] = 0
			for m := 0; m < o.Nverts; m++ {
				o.Jmat[i][j] += x[i][m] * o.DSdR[m][j]
			}
		}
	}
	o.J, err = invSmall(o.Jinv, o.Jmat, o.Gndim)
	if err != nil {
		return chk.Err("%q: cannot invert mapping Jacobian: %v", o.Type, err)
	}
	if o.J < 0 {
		return chk.Err("%q: negative determinant of Jacobian: %g", o.Type, o.J)
	}

	// physical derivatives: G[m][i] = sum_j dSm/dRj * Jinv[j][i]
	for m := 0; m < o.Nverts; m++ {
		for i := 0; i < o.Gndim; i++ {
			o.G[m][i] = 0
			for j := 0; j < o.Gndim; j++ {
				o.G[m][i] += o.DSdR[m][j] * o.Jinv[j][i]
			}
		}
	}
	return
}

// CalcHessianAtIp computes H = d²S/dxdx at ip, after CalcAtIp has set the
// inverse Jacobian. The transform assumes an affine mapping; curvature terms
// of distorted higher-order cells are not included.
func (o *Shape) CalcHessianAtIp(ip []float64) (err error) {
	if !HasSecondDerivs {
		return chk.Err("shape %q: second derivatives are not enabled in this build", o.Type)
	}
	o.Dfcn(o.D2SdR2, ip)
	for m := 0; m < o.Nverts; m++ {
		for i := 0; i < o.Gndim; i++ {
			for j := 0; j < o.Gndim; j++ {
				o.H[m][i][j] = 0
				for k := 0; k < o.Gndim; k++ {
					for l := 0; l < o.Gndim; l++ {
						o.H[m][i][j] += o.Jinv[k][i] * o.D2SdR2[m][k][l] * o.Jinv[l][j]
					}
				}
			}
		}
	}
	return
}

// CalcAtFaceIp computes the face shape values Sf, face derivatives DSfdz and
// the (non-normalized) outward normal Fnvec at the face integration point
// ipf of face idxFace. The face mapping scale factor is |Fnvec|.
func (o *Shape) CalcAtFaceIp(x [][]float64, ipf []float64, idxFace int) (err error) {
	if o.face == nil {
		return chk.Err("shape %q has no faces", o.Type)
	}
	o.face.Fcn(o.Sf, o.face.DSdR, ipf, true)
	for m := 0; m < o.face.Nverts; m++ {
		o.DSfdz[m] = o.face.DSdR[m][0]
	}

	// tangent along the face
	fv := o.FaceLocalVerts[idxFace]
	var t0, t1 float64
	for m, v := range fv {
		t0 += o.DSfdz[m] * x[0][v]
		t1 += o.DSfdz[m] * x[1][v]
	}

	// outward normal for counter-clockwise vertex ordering
	o.Fnvec[0] = t1
	o.Fnvec[1] = -t0
	return
}

// FaceIpNat maps the face integration point ipf of face idxFace to element
// natural coordinates r. Overwrites the Sf scratch.
func (o *Shape) FaceIpNat(r []float64, ipf []float64, idxFace int) (err error) {
	if o.face == nil {
		return chk.Err("shape %q has no faces", o.Type)
	}
	o.face.Fcn(o.Sf, nil, ipf, false)
	fv := o.FaceLocalVerts[idxFace]
	for i := 0; i < o.Gndim; i++ {
		r[i] = 0
		for m, v := range fv {
			r[i] += o.Sf[m] * o.NatCoords[i][v]
		}
	}
	return
}

// InvMap computes the natural coordinates r corresponding to the physical
// point x inside the cell with coordinates matrix xmat, by Newton iterations
// on the isoparametric mapping
func (o *Shape) InvMap(r, x []float64, xmat [][]float64) (err error) {
	tol := 1e-14
	δr := make([]float64, o.Gndim)
	e := make([]float64, o.Gndim)
	for i := 0; i < o.Gndim; i++ {
		r[i] = 0
	}
	for it := 0; it < 25; it++ {

		// residual e = x(r) - x
		err = o.CalcAtIp(xmat, r, true)
		if err != nil {
			return
		}
		enorm := 0.0
		for i := 0; i < o.Gndim; i++ {
			e[i] = -x[i]
			for m := 0; m < o.Nverts; m++ {
				e[i] += o.S[m] * xmat[i][m]
			}
			enorm += e[i] * e[i]
		}
		if math.Sqrt(enorm) < tol {
			return
		}

		// update r -= Jinv * e
		for i := 0; i < o.Gndim; i++ {
			δr[i] = 0
			for j := 0; j < o.Gndim; j++ {
				δr[i] += o.Jinv[i][j] * e[j]
			}
		}
		for i := 0; i < o.Gndim; i++ {
			r[i] -= δr[i]
		}
	}
	return chk.Err("inverse mapping did not converge for point %v", x)
}

// IpRealCoords returns the real (physical) coordinates of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip []float64) (c []float64) {
	o.Fcn(o.S, nil, ip, false)
	c = make([]float64, o.Gndim)
	for i := 0; i < o.Gndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			c[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// invSmall inverts the n by n (n = 1 or 2) matrix a into ai, returning the
// determinant
func invSmall(ai, a [][]float64, n int) (det float64, err error) {
	switch n {
	case 1:
		det = a[0][0]
		if math.Abs(det) < 1e-15 {
			return 0, chk.Err("singular 1x1 matrix")
		}
		ai[0][0] = 1.0 / det
	case 2:
		det = a[0][0]*a[1][1] - a[0][1]*a[1][0]
		if math.Abs(det) < 1e-15 {
			return 0, chk.Err("singular 2x2 matrix")
		}
		ai[0][0] = a[1][1] / det
		ai[0][1] = -a[0][1] / det
		ai[1][0] = -a[1][0] / det
		ai[1][1] = a[0][0] / det
	default:
		return 0, chk.Err("invSmall works with 1x1 and 2x2 matrices only. n=%d is invalid", n)
	}
	return
}
