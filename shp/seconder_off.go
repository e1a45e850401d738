// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !seconder

package shp

// HasSecondDerivs tells whether this build carries second-derivative
// (hessian) support. Enable with: go build -tags seconder
const HasSecondDerivs = false
