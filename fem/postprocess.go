// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gofea/ele"
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gofea/out"
)

// Postprocess traverses the owned cells and runs the model's postprocess
// hooks against the converged solution: PostElem on each interior and, when
// Cfg.PostSides is set, PostSide on each tagged side. Models without hooks
// make this a plain traversal. With Cfg.NoPostReinit the basis caches are
// left as the last assembly pass built them; point samplers keep working,
// integration-point samplers then refer to the last assembled cell.
func (o *System) Postprocess(sol *ele.Solution) (err error) {
	if !o.ready {
		return stateErr("Postprocess requires an initialised system")
	}
	cp, hasHooks := o.Mdl.(ele.CanPostprocess)
	c := o.ctx
	for _, cell := range o.Msh.Cells {
		if !o.active(cell) {
			continue
		}
		if o.Cfg.NoPostReinit {
			c.Cid = cell.Id
			c.Sol = sol
		} else {
			err = o.setCell(cell, sol)
			if err != nil {
				return
			}
		}
		if !hasHooks {
			continue
		}
		c.Side, c.Tag = -1, msh.TagNone
		err = cp.PostElem(c)
		if err != nil {
			return
		}
		if !o.Cfg.PostSides {
			continue
		}
		for side := 0; side < o.fe.Nfaces(); side++ {
			tag := o.Bnd.SideTag(cell.Id, side)
			if tag == msh.TagNone {
				continue
			}
			if !o.Cfg.NoPostReinit {
				err = o.fe.ReinitSide(side)
				if err != nil {
					return
				}
			}
			c.Side, c.Tag = side, tag
			err = cp.PostSide(c)
			if err != nil {
				return
			}
		}
		c.Side, c.Tag = -1, msh.TagNone
	}
	return
}

// ErrorEstimate traverses the owned cells and fills ev with the model's
// per-cell error indicators. Entries of inactive or unowned cells are set
// to zero so the vector's zero-ignoring statistics skip them. The model
// must implement CanEstimateError and return non-negative values.
func (o *System) ErrorEstimate(sol *ele.Solution, ev out.ErrorVec) (err error) {
	if !o.ready {
		return stateErr("ErrorEstimate requires an initialised system")
	}
	ce, ok := o.Mdl.(ele.CanEstimateError)
	if !ok {
		return cfgErr("model has no error estimation hook")
	}
	if len(ev) != len(o.Msh.Cells) {
		return cfgErr("error vector has %d entries but the mesh has %d cells", len(ev), len(o.Msh.Cells))
	}
	c := o.ctx
	for i, cell := range o.Msh.Cells {
		ev[i] = 0
		if !o.active(cell) {
			continue
		}
		err = o.setCell(cell, sol)
		if err != nil {
			return
		}
		c.Side, c.Tag = -1, msh.TagNone
		val, err := ce.ElemError(c)
		if err != nil {
			return err
		}
		if val < 0 {
			return cfgErr("cell %d: error indicator %g is negative", cell.Id, val)
		}
		ev[i] = val
	}
	return
}
