package deflection

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/PlatypusBytes/GoRoll/internal/discretization"
	"github.com/PlatypusBytes/GoRoll/internal/excitation"
	"github.com/PlatypusBytes/GoRoll/internal/grid"
	"github.com/PlatypusBytes/GoRoll/internal/simerr"
	"github.com/PlatypusBytes/GoRoll/pkg/sparse"
)

// Options configures a run.
type Options struct {
	// KeepSupport retains the sleeper/slab DOF rows in the result buffer.
	// Rail rows are always retained.
	KeepSupport bool
}

// Result is the deflection history of one run. U is row-major with
// Rows x (Nt+1) entries: row i, column n holds the deflection of node i at
// time step n. Rows 0..nx-1 are rail DOFs; with KeepSupport, rows
// nx..2nx-1 are the support DOFs.
type Result struct {
	Grid         *grid.Grid
	Rows         int
	U            []float64
	Force        []float64
	ExcitIndices []int // Excitation node index per load at the first step
	Warnings     []string
	Valid        bool
}

// At returns the deflection of row i at time step n.
func (r *Result) At(i, n int) float64 {
	return r.U[i*(r.Grid.Nt+1)+n]
}

// Row returns the full time series of row i as a slice view.
func (r *Result) Row(i int) []float64 {
	w := r.Grid.Nt + 1
	return r.U[i*w : (i+1)*w]
}

// Run advances the Crank-Nicolson scheme over the full simulation time and
// returns the deflection history. The first two columns are the rest-state
// initial condition. On a numerical failure or cancellation the returned
// result is partially filled and marked invalid, alongside the error.
func Run(ctx context.Context, d *discretization.Discretization, ex excitation.Excitation, opts Options) (*Result, error) {
	g := d.Grid
	nx := g.Nx

	res := &Result{Grid: g, Rows: nx}
	if opts.KeepSupport {
		res.Rows = 2 * nx
	}

	if err := ex.Validate(g); err != nil {
		return res, err
	}
	res.Force = ex.Force(g)
	res.ExcitIndices = make([]int, ex.Loads())
	for l := range res.ExcitIndices {
		res.ExcitIndices[l] = clampIndex(ex.Index(g, 0, l), nx)
	}

	// Rest-state initial conditions: the first two columns stay zero.
	res.U = make([]float64, res.Rows*(g.Nt+1))

	// Factorization of matrix A (LU decomposition), computed once.
	lu, err := sparse.NewTwoLayerLU(d.A, nx)
	if err != nil {
		return res, simerr.Numericalf(-1, "factorization failed: %v", err)
	}

	// Pre-sized stepping buffers; the loop below does not allocate.
	u0 := make([]float64, 2*nx)
	u1 := make([]float64, 2*nx)
	x := make([]float64, 2*nx)
	bu := make([]float64, 2*nx)
	cu := make([]float64, 2*nx)
	rhs := make([]float64, 2*nx)
	warnedClamp := make([]bool, ex.Loads())

	scale := d.Scale()
	width := g.Nt + 1

	for n := 1; n < g.Nt; n++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("run cancelled at step %d: %w", n, err)
		}

		// Right-hand side of the Crank-Nicolson equation.
		d.B.MulVec(bu, u1)
		d.C.MulVec(cu, u0)
		floats.AddTo(rhs, bu, cu)
		for l := 0; l < ex.Loads(); l++ {
			idx := ex.Index(g, n, l)
			if idx < 0 || idx >= nx {
				idx = clampIndex(idx, nx)
				if !warnedClamp[l] {
					res.Warnings = append(res.Warnings,
						fmt.Sprintf("load %d left the grid at step %d; clamped to node %d", l, n, idx))
					warnedClamp[l] = true
				}
			}
			rhs[idx] += scale * res.Force[n]
		}

		lu.Solve(x, rhs)

		for i := 0; i < 2*nx; i++ {
			if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
				return res, simerr.Numericalf(n, "non-finite deflection at node %d", i)
			}
		}

		for i := 0; i < res.Rows; i++ {
			res.U[i*width+n+1] = x[i]
		}

		u0, u1, x = u1, x, u0
	}

	res.Valid = true
	return res, nil
}

func clampIndex(idx, nx int) int {
	if idx < 0 {
		return 0
	}
	if idx >= nx {
		return nx - 1
	}
	return idx
}
