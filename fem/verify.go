// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"gonum.org/v1/gonum/floats"
)

// verifyJacobian compares an analytic local Jacobian against its
// finite-difference reference using the relative l1 norm
// sum|Kana-Knum| / sum|Kana|. A discrepancy larger than tol aborts the
// assembly with ErrConsistency; the mismatch is a programming error in the
// model, not a recoverable condition.
func verifyJacobian(cid int, kana, knum [][]float64, tol float64) error {
	num, den := 0.0, 0.0
	for i := range kana {
		num += floats.Distance(kana[i], knum[i], 1)
		den += floats.Norm(kana[i], 1)
	}
	if den < 1e-300 {
		den = 1
	}
	rel := num / den
	if rel > tol {
		return consistErr("cell %d: analytic Jacobian deviates from the finite-difference reference: |dK|/|K| = %g > %g", cid, rel, tol)
	}
	return nil
}
