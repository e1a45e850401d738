// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the residual/Jacobian assembly engine: per-cell
// traversal, the default mass contribution, the finite-difference Jacobian
// fallback, the analytic-versus-numeric verifier and the postprocess driver
package fem

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gofea/ele"
)

// ErrState indicates an operation invoked in the wrong lifecycle phase; e.g.
// assembly before initialisation or a second initialisation without an
// intervening Clear
var ErrState = errors.New("state error")

// ErrConsistency indicates that a model's analytic Jacobian disagrees with
// the finite-difference reference beyond the configured tolerance
var ErrConsistency = errors.New("consistency error")

func stateErr(msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrState, io.Sf(msg, prm...))
}

func consistErr(msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConsistency, io.Sf(msg, prm...))
}

func cfgErr(msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s", ele.ErrConfig, io.Sf(msg, prm...))
}
