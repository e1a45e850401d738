// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the solution data @ nodes: the current nonlinear iterate Y
// and a frozen previous iterate Yfix (e.g. for extrapolation or
// stabilisation terms). The engine never mutates either during an assembly
// pass.
type Solution struct {
	T    float64   // current time
	Dt   float64   // current time increment
	Y    []float64 // [ny] current iterate
	Yfix []float64 // [ny] fixed (frozen) iterate
}

// NewSolution returns a new Solution with ny degrees of freedom, zeroed
func NewSolution(ny int) (o *Solution) {
	o = new(Solution)
	o.Y = make([]float64, ny)
	o.Yfix = make([]float64, ny)
	return
}

// FixCurrent freezes the current iterate into Yfix. Must be called between
// assembly passes only.
func (o *Solution) FixCurrent() {
	copy(o.Yfix, o.Y)
}

// Reset clears all values
func (o *Solution) Reset() {
	o.T = 0
	o.Dt = 0
	for i := range o.Y {
		o.Y[i] = 0
		o.Yfix[i] = 0
	}
}
