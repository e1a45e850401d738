// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output helpers: per-cell error indicator vectors
// and their statistics
package out

import (
	"sort"

	"github.com/cpmech/gosl/io"
)

// ErrorVec holds one non-negative error indicator per cell. A zero entry
// means "no estimate" (e.g. a cell owned by another processor) and is
// ignored by all statistics; only truly active cells influence refinement
// decisions this way.
type ErrorVec []float64

// NewErrorVec returns a zeroed error vector for ncells cells
func NewErrorVec(ncells int) ErrorVec {
	return make(ErrorVec, ncells)
}

// Min returns the smallest nonzero entry. Zero when no entry is active.
func (o ErrorVec) Min() (min float64) {
	first := true
	for _, v := range o {
		if v == 0 {
			continue
		}
		if first || v < min {
			min = v
			first = false
		}
	}
	return
}

// Max returns the largest entry
func (o ErrorVec) Max() (max float64) {
	for _, v := range o {
		if v > max {
			max = v
		}
	}
	return
}

// Mean returns the mean of the nonzero entries. Zero when no entry is active.
func (o ErrorVec) Mean() (mean float64) {
	n := 0
	for _, v := range o {
		if v == 0 {
			continue
		}
		mean += v
		n++
	}
	if n > 0 {
		mean /= float64(n)
	}
	return
}

// Variance returns the population variance of the nonzero entries about
// their mean. Zero when no entry is active.
func (o ErrorVec) Variance() float64 {
	return o.VarianceMean(o.Mean())
}

// VarianceMean returns the population variance of the nonzero entries about
// a given mean
func (o ErrorVec) VarianceMean(mean float64) (vari float64) {
	n := 0
	for _, v := range o {
		if v == 0 {
			continue
		}
		d := v - mean
		vari += d * d
		n++
	}
	if n > 0 {
		vari /= float64(n)
	}
	return
}

// Median returns the median of the nonzero entries: the middle value for an
// odd count, the average of the two middle values for an even count. Zero
// when no entry is active.
func (o ErrorVec) Median() float64 {
	act := o.activeSorted()
	n := len(act)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return act[n/2]
	}
	return 0.5 * (act[n/2-1] + act[n/2])
}

// CutBelow returns the cell indices whose nonzero indicator is smaller than
// cut, in ascending index order; candidates for coarsening
func (o ErrorVec) CutBelow(cut float64) (cells []int) {
	for i, v := range o {
		if v != 0 && v < cut {
			cells = append(cells, i)
		}
	}
	return
}

// CutAbove returns the cell indices whose indicator is larger than cut, in
// ascending index order; candidates for refinement
func (o ErrorVec) CutAbove(cut float64) (cells []int) {
	for i, v := range o {
		if v > cut {
			cells = append(cells, i)
		}
	}
	return
}

// activeSorted collects the nonzero entries in ascending order
func (o ErrorVec) activeSorted() (act []float64) {
	for _, v := range o {
		if v != 0 {
			act = append(act, v)
		}
	}
	sort.Float64s(act)
	return
}

// PrintInfo prints a summary of the statistics
func (o ErrorVec) PrintInfo() {
	io.Pf("error indicators: n=%d min=%g max=%g mean=%g median=%g var=%g\n",
		len(o), o.Min(), o.Max(), o.Mean(), o.Median(), o.Variance())
}
