// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.json) run file
package inp

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Data holds the configuration surface of the assembly engine
type Data struct {

	// global information
	Desc string `json:"desc"` // description of run

	// numeric knobs
	NumJacH float64 `json:"numjach"` // perturbation for numeric differencing. default 1e-6
	VrfyTol float64 `json:"vrfytol"` // analytic-vs-numeric Jacobian tolerance. 0 disables verification
	Qextra  int     `json:"qextra"`  // extra quadrature order added to 2p+1

	// postprocess options
	NoPostReinit bool `json:"nopostreinit"` // do not reinit the field evaluator during postprocess
	PostSides    bool `json:"postsides"`    // run side postprocess hooks

	// multiprocessing data
	Proc  int `json:"proc"`  // this processor number
	Nproc int `json:"nproc"` // total number of processors (partitions)

	// options
	Verbose bool `json:"verbose"` // show messages

	// boundary condition and source functions
	Functions FuncsData `json:"functions"` // all functions
}

// Read reads a run file and returns the data with defaults set
func Read(path string) (o *Data, err error) {
	if _, err = os.Stat(path); err != nil {
		return nil, chk.Err("cannot read run file %q:\n%v", path, err)
	}
	b := io.ReadFile(path)
	o = new(Data)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot parse run file %q:\n%v", path, err)
	}
	o.SetDefaults()
	err = o.Validate()
	if err != nil {
		return nil, err
	}
	return
}

// SetDefaults fills in the default values of unset knobs
func (o *Data) SetDefaults() {
	if o.NumJacH == 0 {
		o.NumJacH = 1e-6
	}
	if o.Nproc < 1 {
		o.Nproc = 1
	}
}

// Validate checks the recognized options
func (o *Data) Validate() (err error) {
	if o.NumJacH <= 0 {
		return chk.Err("numjach must be positive. %g is invalid", o.NumJacH)
	}
	if o.VrfyTol < 0 {
		return chk.Err("vrfytol must be non-negative. %g is invalid", o.VrfyTol)
	}
	if o.Proc < 0 || o.Proc >= o.Nproc {
		return chk.Err("proc must be within [0,%d). %d is invalid", o.Nproc, o.Proc)
	}
	return
}
