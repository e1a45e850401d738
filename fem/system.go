// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gofea/ele"
	"github.com/cpmech/gofea/inp"
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gofea/shp"
)

// System drives the per-cell assembly of the global residual and Jacobian.
// Lifecycle: New => Init => [TimeEvolving...] => Assembly/Postprocess (any
// number of times) => Clear. Init after Init without Clear is a state error,
// as is any traversal before Init.
type System struct {

	// input
	Msh *msh.Mesh         // the mesh
	Bnd *msh.BoundaryInfo // boundary side tags
	Mdl ele.Model         // physics callbacks
	Cfg *inp.Data         // configuration

	// counters
	NumJacCalls int // number of finite-difference Jacobian computations

	// discretisation; set by Init
	ready    bool           // Init done, Clear not yet called
	frozen   bool           // first Assembly done; evolving flags locked
	vars     []ele.Variable // variable metadata from the model
	nvars    int            // number of variables
	nverts   int            // local basis functions per variable
	ndofs    int            // local dofs: nvars * nverts
	ny       int            // global equations: nvars * len(Msh.Verts)
	evolving []bool         // [nvars] du/dt flags
	fe       *ele.FieldEval // shared field evaluator

	// per-cell scratch
	ctx    *ele.Ctx  // callback context; R, K, Umap owned here
	umap   [][]int   // [nvars][nverts] var-major equation map
	rsave  []float64 // residual stash around numeric differencing
	rplus  []float64 // residual at +h
	rminus []float64 // residual at -h
	knum   [][]float64 // numeric Jacobian
}

// New returns a system over mesh m with boundary info bnd (may be nil),
// model mdl and configuration cfg. Init must be called before any traversal.
func New(m *msh.Mesh, bnd *msh.BoundaryInfo, mdl ele.Model, cfg *inp.Data) (o *System) {
	o = new(System)
	o.Msh = m
	o.Bnd = bnd
	if o.Bnd == nil {
		o.Bnd = msh.NewBoundaryInfo()
	}
	o.Mdl = mdl
	o.Cfg = cfg
	return
}

// Init builds the discretisation: equation numbering, quadrature rules,
// basis caches and per-cell scratch. Calling Init on an initialised system
// is a state error; Clear first.
func (o *System) Init() (err error) {

	// state
	if o.ready {
		return stateErr("Init called twice without an intervening Clear")
	}
	if len(o.Msh.Cells) == 0 {
		return cfgErr("mesh has no cells")
	}

	// variables
	o.vars = o.Mdl.Variables()
	o.nvars = len(o.vars)
	if o.nvars == 0 {
		return cfgErr("model declares no variables")
	}
	maxOrder := 0
	o.evolving = make([]bool, o.nvars)
	for i, v := range o.vars {
		if v.Index != i {
			return cfgErr("variable %q declares index %d but sits at position %d", v.Name, v.Index, i)
		}
		if v.Order > maxOrder {
			maxOrder = v.Order
		}
		o.evolving[i] = v.Evolving
	}

	// cells must share one basis family
	ctype := o.Msh.Cells[0].Type
	for _, c := range o.Msh.Cells {
		if c.Type != ctype {
			return cfgErr("cell %d is %q but cell %d is %q. mixed meshes are not supported",
				o.Msh.Cells[0].Id, ctype, c.Id, c.Type)
		}
	}

	// quadrature and field evaluator
	ndim := o.Msh.Ndim
	ips := shp.SelectIps(ndim, maxOrder, o.Cfg.Qextra)
	var ipsF []shp.Ipoint
	if ndim > 1 {
		ipsF = shp.SelectFaceIps(ndim, maxOrder, o.Cfg.Qextra)
	}
	o.fe, err = ele.NewFieldEval(ctype, o.vars, ips, ipsF)
	if err != nil {
		return
	}

	// numbering and scratch
	o.nverts = o.fe.Nverts()
	o.ndofs = o.nvars * o.nverts
	o.ny = o.nvars * len(o.Msh.Verts)
	o.umap = make([][]int, o.nvars)
	for v := 0; v < o.nvars; v++ {
		o.umap[v] = make([]int, o.nverts)
	}
	o.ctx = &ele.Ctx{
		Side:   -1,
		Tag:    msh.TagNone,
		Ev:     o.fe,
		Nverts: o.nverts,
		R:      make([]float64, o.ndofs),
		K:      utl.Alloc(o.ndofs, o.ndofs),
		Umap:   make([]int, o.ndofs),
	}
	o.rsave = make([]float64, o.ndofs)
	o.rplus = make([]float64, o.ndofs)
	o.rminus = make([]float64, o.ndofs)
	o.knum = utl.Alloc(o.ndofs, o.ndofs)
	o.rebuildEvolving()

	o.ready = true
	o.frozen = false
	o.NumJacCalls = 0
	if o.Cfg.Verbose {
		io.Pf("fem: %d cells (%s), %d variables, %d equations, %d+%d ips\n",
			len(o.Msh.Cells), ctype, o.nvars, o.ny, o.fe.Nip(), o.fe.NipSide())
	}
	return
}

// Clear releases the discretisation and returns the system to the
// uninitialised state. Clearing an uninitialised system is a no-op.
func (o *System) Clear() {
	o.ready = false
	o.frozen = false
	o.vars = nil
	o.evolving = nil
	o.fe = nil
	o.ctx = nil
	o.umap = nil
	o.rsave, o.rplus, o.rminus = nil, nil, nil
	o.knum = nil
}

// TimeEvolving overrides the du/dt flag of variable v. Legal only after Init
// and before the first Assembly; the flags are frozen once assembly starts.
func (o *System) TimeEvolving(v int, evolving bool) (err error) {
	if !o.ready {
		return stateErr("TimeEvolving requires an initialised system")
	}
	if o.frozen {
		return stateErr("TimeEvolving cannot change flags after assembly started")
	}
	if v < 0 || v >= o.nvars {
		return cfgErr("variable index %d is outside the declared range [0,%d)", v, o.nvars)
	}
	o.evolving[v] = evolving
	o.rebuildEvolving()
	return
}

// Evolving reports whether variable v carries a du/dt term. False for
// out-of-range indices and on uninitialised systems.
func (o *System) Evolving(v int) bool {
	if !o.ready || v < 0 || v >= o.nvars {
		return false
	}
	return o.evolving[v]
}

// NumEqs returns the number of global equations. Zero before Init.
func (o *System) NumEqs() int { return o.ny }

// rebuildEvolving refreshes the sorted index list handed to callbacks
func (o *System) rebuildEvolving() {
	list := []int{}
	for v, e := range o.evolving {
		if e {
			list = append(list, v)
		}
	}
	sort.Ints(list)
	o.ctx.Evolving = list
}

// active tells whether this processor assembles the given cell
func (o *System) active(c *msh.Cell) bool {
	if c.Disabled {
		return false
	}
	return o.Cfg.Nproc == 1 || c.Part == o.Cfg.Proc
}

// setCell points the scratch context at cell c and rebuilds the basis cache
func (o *System) setCell(c *msh.Cell, sol *ele.Solution) (err error) {
	for v := 0; v < o.nvars; v++ {
		for m := 0; m < o.nverts; m++ {
			eq := c.Verts[m]*o.nvars + v
			o.umap[v][m] = eq
			o.ctx.Umap[o.ctx.Loc(v, m)] = eq
		}
	}
	o.ctx.Cid = c.Id
	o.ctx.Sol = sol
	return o.fe.Reinit(o.Msh.CoordsMatrix(c), o.umap, sol)
}

// Assembly runs one traversal over the owned cells, accumulating the scatter
// of the local residuals into fb (fb[I] -= R[i]) and of the local Jacobians
// into kb. The caller zeroes fb and kb beforehand. wantRes and wantJac
// select the outputs; fb may be nil when wantRes is false and kb may be nil
// when wantJac is false.
func (o *System) Assembly(sol *ele.Solution, fb []float64, kb *la.Triplet, wantRes, wantJac bool) (err error) {

	// state
	if !o.ready {
		return stateErr("Assembly requires an initialised system")
	}
	if wantRes && len(fb) != o.ny {
		return cfgErr("fb has %d entries but the system has %d equations", len(fb), o.ny)
	}
	o.frozen = true

	// cell loop; ascending id
	for _, cell := range o.Msh.Cells {
		if !o.active(cell) {
			continue
		}
		err = o.setCell(cell, sol)
		if err != nil {
			return
		}

		// local residual and analytic Jacobian
		jacOK, err := o.runLocal(cell, sol, wantJac)
		if err != nil {
			return err
		}

		// numeric fallback and verification
		if wantJac && !jacOK {
			err = o.numJacobian(cell, sol)
			if err != nil {
				return err
			}
			for r := 0; r < o.ndofs; r++ {
				copy(o.ctx.K[r], o.knum[r])
			}
		}
		if wantJac && jacOK && o.Cfg.VrfyTol > 0 {
			err = o.numJacobian(cell, sol)
			if err != nil {
				return err
			}
			err = verifyJacobian(cell.Id, o.ctx.K, o.knum, o.Cfg.VrfyTol)
			if err != nil {
				return err
			}
		}

		// scatter
		if wantRes {
			for i, I := range o.ctx.Umap {
				fb[I] -= o.ctx.R[i]
			}
		}
		if wantJac {
			for i, I := range o.ctx.Umap {
				for j, J := range o.ctx.Umap {
					kb.Put(I, J, o.ctx.K[i][j])
				}
			}
		}
	}
	return
}

// runLocal evaluates the full local residual path of the current cell:
// interior constraints, mass terms of the evolving variables and the tagged
// sides. jacOK reports whether every callback supplied its analytic
// Jacobian; meaningful only when wantJac is true.
func (o *System) runLocal(cell *msh.Cell, sol *ele.Solution, wantJac bool) (jacOK bool, err error) {

	// zero locals
	c := o.ctx
	for i := range c.R {
		c.R[i] = 0
	}
	if wantJac {
		for i := range c.K {
			utl.Fill(c.K[i], 0)
		}
	}

	// interior
	c.Side, c.Tag = -1, msh.TagNone
	jacOK = true
	gotJac, err := o.Mdl.ElemResidual(c, wantJac)
	if err != nil {
		return false, err
	}
	if wantJac && !gotJac {
		jacOK = false
	}

	// mass; skipped entirely when nothing evolves
	if len(c.Evolving) > 0 {
		if wm, ok := o.Mdl.(ele.WithMassResidual); ok {
			gotJac, err = wm.MassResidual(c, wantJac)
		} else {
			gotJac, err = o.defaultMassResidual(c, wantJac)
		}
		if err != nil {
			return false, err
		}
		if wantJac && !gotJac {
			jacOK = false
		}
	}

	// tagged sides
	for side := 0; side < o.fe.Nfaces(); side++ {
		tag := o.Bnd.SideTag(cell.Id, side)
		if tag == msh.TagNone {
			continue
		}
		err = o.fe.ReinitSide(side)
		if err != nil {
			return false, err
		}
		c.Side, c.Tag = side, tag
		gotJac, err = o.Mdl.SideResidual(c, wantJac)
		if err != nil {
			return false, err
		}
		if wantJac && !gotJac {
			jacOK = false
		}
	}
	c.Side, c.Tag = -1, msh.TagNone
	return
}

// defaultMassResidual adds the engine's default mass contribution for each
// evolving variable: R += (u, phi_m) and K += (phi_n, phi_m) over the cell
// interior. Models needing lumping or scaling implement WithMassResidual.
func (o *System) defaultMassResidual(c *ele.Ctx, wantJac bool) (gotJac bool, err error) {
	ev := c.Ev
	for _, v := range c.Evolving {
		for ip := 0; ip < ev.Nip(); ip++ {
			u, err := ev.IntValue(v, ip)
			if err != nil {
				return false, err
			}
			coef := ev.Coef(ip)
			for m := 0; m < c.Nverts; m++ {
				c.R[c.Loc(v, m)] += coef * u * ev.S(ip, m)
				if wantJac {
					for n := 0; n < c.Nverts; n++ {
						c.K[c.Loc(v, m)][c.Loc(v, n)] += coef * ev.S(ip, m) * ev.S(ip, n)
					}
				}
			}
		}
	}
	return true, nil
}
