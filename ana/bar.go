// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions used to verify assembled
// systems
package ana

import "math"

// SourceBar computes the steady solution of a 1D bar [0,L] with uniform
// source S, conductivity k(u) = K0*(1+Beta*u) and u = 0 at both ends:
//
//   -d/dx [ k(u) du/dx ] = S
//
// The Kirchhoff variable v = u + Beta*u^2/2 satisfies the linear problem,
// giving a closed form for any Beta >= 0.
type SourceBar struct {
	L    float64 // length of bar
	K0   float64 // reference conductivity
	Beta float64 // conductivity nonlinearity coefficient
	S    float64 // uniform source
}

// U returns the solution @ x
func (o SourceBar) U(x float64) float64 {
	v := o.S * x * (o.L - x) / (2.0 * o.K0)
	if o.Beta == 0 {
		return v
	}
	return (math.Sqrt(1.0+2.0*o.Beta*v) - 1.0) / o.Beta
}

// Flux returns the flux w = -k(u) du/dx @ x. Antisymmetric about the
// midpoint; the boundary values balance the total source S*L.
func (o SourceBar) Flux(x float64) float64 {
	return o.S * (x - o.L/2.0)
}
