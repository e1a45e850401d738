// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele defines solution variables, solution snapshots and the model
// (physics callbacks) interface of the assembly engine
package ele

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/io"
)

// ErrConfig indicates a precondition violation such as a hessian request in
// a build without second-derivative support or a variable index outside the
// declared range
var ErrConfig = errors.New("configuration error")

// cfgErr returns an error wrapping ErrConfig
func cfgErr(msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, io.Sf(msg, prm...))
}

// Variable holds the metadata of one solution variable. All variables of a
// model share the basis of the cell they live on; Shape and Order declare
// the expected family and are validated against the cells during engine
// initialisation.
type Variable struct {
	Name     string // name; e.g. "u"
	Index    int    // index of variable. 0, 1, 2, ...
	Shape    string // shape (basis family) name; e.g. "qua4"
	Order    int    // polynomial order
	Evolving bool   // variable behaves like du/dt = F(u); false means 0 = G(u)
}

// Model defines the physics callbacks all PDE models must implement. Each
// residual method accumulates into c.R (and c.K when wantJac is true) and
// returns gotJac telling whether an analytic Jacobian was supplied; a false
// answer is not an error and triggers the engine's finite-difference
// fallback.
type Model interface {

	// Variables returns the metadata of all solution variables
	Variables() []Variable

	// ElemResidual adds the interior (time-derivative and constraint)
	// contributions of the current cell
	ElemResidual(c *Ctx, wantJac bool) (gotJac bool, err error)

	// SideResidual adds the contributions of the current tagged side;
	// c.Tag carries the boundary tag
	SideResidual(c *Ctx, wantJac bool) (gotJac bool, err error)
}

// WithMassResidual defines models overriding the engine's default mass
// contribution (u, phi_i) / (phi_i, phi_j); e.g. for mass lumping or
// divergence-free discretizations. Overrides must restrict themselves to
// evolving variables (c.Evolving).
type WithMassResidual interface {
	MassResidual(c *Ctx, wantJac bool) (gotJac bool, err error)
}

// CanPostprocess defines models with postprocessing hooks, run by the
// engine's postprocess traversal, decoupled from assembly
type CanPostprocess interface {
	PostElem(c *Ctx) (err error)
	PostSide(c *Ctx) (err error)
}

// CanEstimateError defines models producing one non-negative error
// indicator per cell
type CanEstimateError interface {
	ElemError(c *Ctx) (val float64, err error)
}

// Ctx is the per-cell view handed to model callbacks
type Ctx struct {
	Cid      int         // id of current cell
	Side     int         // local side index; -1 on interior callbacks
	Tag      int         // boundary tag of current side
	Ev       *FieldEval  // field evaluator reinitialised for the current cell/side
	Sol      *Solution   // current and fixed solution snapshots
	Evolving []int       // indices of evolving variables (read-only)
	Nverts   int         // number of local dofs per variable
	R        []float64   // local residual; accumulate additively
	K        [][]float64 // local Jacobian; accumulate additively (when requested)
	Umap     []int       // [ndofs] local dof => global equation
}

// Loc returns the local dof index of vertex m of variable v
func (o *Ctx) Loc(v, m int) int { return v*o.Nverts + m }
