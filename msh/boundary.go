// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// TagNone is the reserved sentinel returned by tag lookups that miss.
// It lies outside the domain of valid user tags; AddSide rejects it.
// Every routine that can fail to find a tag returns TagNone and nothing else.
const TagNone = math.MinInt32

// sideKey identifies one side of one cell
type sideKey struct {
	cid  int // cell id
	side int // local side index
}

// BoundaryInfo maps cell sides to user-assigned boundary tags. More than one
// tag may be attached to the same side by repeated AddSide calls.
type BoundaryInfo struct {
	side2tags map[sideKey][]int // (cell,side) => tags, in registration order
	tagset    map[int]bool      // distinct user tags
}

// NewBoundaryInfo returns a new BoundaryInfo with no sides tagged
func NewBoundaryInfo() (o *BoundaryInfo) {
	o = new(BoundaryInfo)
	o.side2tags = make(map[sideKey][]int)
	o.tagset = make(map[int]bool)
	return
}

// AddSide attaches tag to side 'side' of cell 'cid'
func (o *BoundaryInfo) AddSide(cid, side, tag int) (err error) {
	if tag == TagNone {
		return chk.Err("tag %d is reserved and cannot be assigned to cell %d side %d", tag, cid, side)
	}
	k := sideKey{cid, side}
	o.side2tags[k] = append(o.side2tags[k], tag)
	o.tagset[tag] = true
	return
}

// SideTag returns the tag of side 'side' of cell 'cid', or TagNone if the
// side is untagged. With more than one tag attached, the result is one of
// them; which one is implementation-defined and must not be relied upon.
func (o *BoundaryInfo) SideTag(cid, side int) int {
	tags := o.side2tags[sideKey{cid, side}]
	if len(tags) == 0 {
		return TagNone
	}
	return tags[len(tags)-1]
}

// SideTags returns all tags attached to side 'side' of cell 'cid', in
// registration order. Returns nil for untagged sides.
func (o *BoundaryInfo) SideTags(cid, side int) []int {
	return o.side2tags[sideKey{cid, side}]
}

// NumSides returns the number of tagged (cell,side) pairs
func (o *BoundaryInfo) NumSides() int {
	return len(o.side2tags)
}

// Tags returns the sorted set of distinct user tags
func (o *BoundaryInfo) Tags() (tags []int) {
	for tag := range o.tagset {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	return
}

// BuildSideList returns parallel lists of cell ids, side indices and tags,
// one entry per registration, sorted by (cell, side, tag) so the output is
// deterministic.
func (o *BoundaryInfo) BuildSideList() (cells, sides, tags []int) {
	keys := make([]sideKey, 0, len(o.side2tags))
	for k := range o.side2tags {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].cid != keys[j].cid {
			return keys[i].cid < keys[j].cid
		}
		return keys[i].side < keys[j].side
	})
	for _, k := range keys {
		for _, tag := range o.side2tags[k] {
			cells = append(cells, k.cid)
			sides = append(sides, k.side)
			tags = append(tags, tag)
		}
	}
	return
}

// Tag2Idx returns a compacted map from user tags to dense indices
// {0, 1, ..., ntags-1}, in ascending tag order, with the sentinel entry
// appended last; i.e. Tag2Idx()[TagNone] == ntags.
func (o *BoundaryInfo) Tag2Idx() (t2i map[int]int) {
	tags := o.Tags()
	t2i = make(map[int]int)
	for i, tag := range tags {
		t2i[tag] = i
	}
	t2i[TagNone] = len(tags)
	return
}

// Clear removes all tagged sides, returning the object to a pristine state
func (o *BoundaryInfo) Clear() {
	o.side2tags = make(map[sideKey][]int)
	o.tagset = make(map[int]bool)
}

// PrintInfo prints the boundary information data structure
func (o *BoundaryInfo) PrintInfo() {
	cells, sides, tags := o.BuildSideList()
	io.Pf("boundary: nsides=%d tags=%v\n", o.NumSides(), o.Tags())
	for i := range cells {
		io.Pf("  cell %3d side %d tag %d\n", cells[i], sides[i], tags[i])
	}
}
