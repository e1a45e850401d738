// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gofea/ele"
	"github.com/cpmech/gofea/msh"
)

// numJacobian fills o.knum with the central-difference Jacobian of the full
// local residual path of the current cell: column k holds
// (R(y + h e_k) - R(y - h e_k)) / (2 h) with h = Cfg.NumJacH. Each
// perturbation is applied to the global iterate and removed bit-exactly
// afterwards, so the caller observes an unchanged solution. Costs 2*ndofs
// residual evaluations. The residual stored in the context is restored on
// return.
func (o *System) numJacobian(cell *msh.Cell, sol *ele.Solution) (err error) {
	c := o.ctx
	copy(o.rsave, c.R)
	h := o.Cfg.NumJacH
	for k, K := range c.Umap {
		orig := sol.Y[K]

		sol.Y[K] = orig + h
		_, err = o.runLocal(cell, sol, false)
		if err != nil {
			sol.Y[K] = orig
			return
		}
		copy(o.rplus, c.R)

		sol.Y[K] = orig - h
		_, err = o.runLocal(cell, sol, false)
		if err != nil {
			sol.Y[K] = orig
			return
		}
		copy(o.rminus, c.R)

		sol.Y[K] = orig
		for i := 0; i < o.ndofs; i++ {
			o.knum[i][k] = (o.rplus[i] - o.rminus[i]) / (2 * h)
		}
	}
	copy(c.R, o.rsave)
	o.NumJacCalls++
	return
}
