// Copyright 2017 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Gofea assembles and solves a steady diffusion problem over a strip under
// uniform source, driven by a (.json) run file.
package main

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gofea/ana"
	"github.com/cpmech/gofea/ele"
	"github.com/cpmech/gofea/ele/diffusion"
	"github.com/cpmech/gofea/fem"
	"github.com/cpmech/gofea/inp"
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gofea/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "inp/data/run", ".json", false)
	verbose := io.ArgToBool(1, true)
	nx := io.ArgToInt(2, 10)
	beta := io.ArgToFloat(3, 0.5)

	// message
	if verbose {
		io.PfWhite("\nGofea -- Go Finite Element Assembly\n\n")
		io.Pf("%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"run file path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"cells along the strip", "nx", nx,
			"conductivity nonlinearity", "beta", beta,
		))
	}

	// configuration, mesh and model
	cfg, err := inp.Read(fnamepath)
	if err != nil {
		chk.Panic("cannot read run file:\n%v", err)
	}
	cfg.Verbose = verbose
	m, bnd, err := msh.NewGrid2D(nx, 1, 2.0, 1.0, "qua4")
	if err != nil {
		chk.Panic("cannot generate grid:\n%v", err)
	}
	mdl := diffusion.New("qua4", 1, 1, beta)
	mdl.Steady = true
	src, err := cfg.Functions.Get("source")
	if err != nil {
		chk.Panic("cannot get source function:\n%v", err)
	}
	mdl.SetSource(src)

	// system
	sys := fem.New(m, bnd, mdl, cfg)
	err = sys.Init()
	if err != nil {
		chk.Panic("cannot initialise system:\n%v", err)
	}
	ny := sys.NumEqs()

	// u = 0 on the x=0 and x=2 edges
	var dirichlet []int
	for _, v := range m.Verts {
		if math.Abs(v.C[0]) < 1e-14 || math.Abs(v.C[0]-2.0) < 1e-14 {
			dirichlet = append(dirichlet, v.Id)
		}
	}

	// Newton iterations with a dense solve; plenty for a demo
	sol := ele.NewSolution(ny)
	fb := make([]float64, ny)
	var kb la.Triplet
	kb.Init(ny, ny, len(m.Cells)*16)
	it, norm := 0, 0.0
	for ; it < 20; it++ {
		for i := range fb {
			fb[i] = 0
		}
		kb.Start()
		err = sys.Assembly(sol, fb, &kb, true, true)
		if err != nil {
			chk.Panic("assembly failed:\n%v", err)
		}
		for _, eq := range dirichlet {
			fb[eq] = 0
		}
		norm = la.Vector(fb).Norm()
		if verbose {
			io.Pf("it = %2d  |R| = %.3e\n", it, norm)
		}
		if norm < 1e-10 {
			break
		}
		K := denseJacobian(&kb, ny)
		for _, eq := range dirichlet {
			for j := 0; j < ny; j++ {
				K.Set(eq, j, 0)
			}
			K.Set(eq, eq, 1)
		}
		var du mat.VecDense
		err = du.SolveVec(K, mat.NewVecDense(ny, fb))
		if err != nil {
			chk.Panic("linear solve failed:\n%v", err)
		}
		for i := 0; i < ny; i++ {
			sol.Y[i] += du.AtVec(i)
		}
	}
	if norm >= 1e-10 {
		chk.Panic("Newton did not converge: |R| = %g", norm)
	}

	// postprocess
	err = sys.Postprocess(sol)
	if err != nil {
		chk.Panic("postprocess failed:\n%v", err)
	}
	ev := out.NewErrorVec(len(m.Cells))
	err = sys.ErrorEstimate(sol, ev)
	if err != nil {
		chk.Panic("error estimation failed:\n%v", err)
	}

	// results
	bar := ana.SourceBar{L: 2, K0: 1, Beta: beta, S: src.F(0, nil)}
	mid := 0
	for _, v := range m.Verts {
		if math.Abs(v.C[0]-1.0) < 1e-14 && v.C[1] == 0 {
			mid = v.Id
		}
	}
	if verbose {
		io.Pf("\nconverged in %d iterations\n", it)
		io.Pforan("u @ center       = %.6f (closed form %.6f)\n", sol.Y[mid], bar.U(m.Verts[mid].C[0]))
		io.Pforan("flux left/right  = %.6f / %.6f\n", mdl.BndFlux[msh.TagLeft], mdl.BndFlux[msh.TagRight])
		ev.PrintInfo()
	}
}

// denseJacobian converts the assembled triplet into a dense gonum matrix
func denseJacobian(kb *la.Triplet, n int) *mat.Dense {
	A := kb.ToDense()
	K := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			K.Set(i, j, A.Get(i, j))
		}
	}
	return K
}
