package sparse

import (
	"fmt"
	"math"
)

// bandwidth of the rail-rail block: the fourth-derivative stencil couples
// two neighbours on each side.
const kd = 2

// TwoLayerLU is the factorization of a 2n x 2n Crank-Nicolson matrix with
// two-layer block structure
//
//	A = | A11 A12 |
//	    | A21 A22 |
//
// where A11 is banded with bandwidth 2 and A12, A21, A22 are diagonal.
// The sleeper layer is eliminated through the Schur complement
// S = A11 - A12 A22^-1 A21, which preserves the band, and S is factorized
// as LU without pivoting.
type TwoLayerLU struct {
	n    int
	band [][]float64 // n rows, 5 entries each: band[i][k] = S[i, i-2+k]
	a12  []float64
	a21  []float64
	a22  []float64
	y    []float64 // forward-substitution scratch
}

// NewTwoLayerLU extracts the blocks of a from its sparsity pattern and
// factorizes the Schur complement. n is the size of one layer (a must be
// 2n x 2n). An entry outside the two-layer pattern or a zero pivot yields
// an error; the caller treats both as fatal.
func NewTwoLayerLU(a *CSC, n int) (*TwoLayerLU, error) {
	if r, c := a.Dims(); r != 2*n || c != 2*n {
		return nil, fmt.Errorf("sparse: matrix is %dx%d, want %dx%d", r, c, 2*n, 2*n)
	}

	lu := &TwoLayerLU{
		n:    n,
		band: make([][]float64, n),
		a12:  make([]float64, n),
		a21:  make([]float64, n),
		a22:  make([]float64, n),
		y:    make([]float64, n),
	}
	for i := range lu.band {
		lu.band[i] = make([]float64, 2*kd+1)
	}

	var structErr error
	a.DoNonZero(func(i, j int, v float64) {
		if structErr != nil {
			return
		}
		switch {
		case i < n && j < n:
			if d := j - i; d >= -kd && d <= kd {
				lu.band[i][d+kd] += v
			} else {
				structErr = fmt.Errorf("sparse: entry (%d,%d) outside rail band", i, j)
			}
		case i < n && j >= n:
			if j-n == i {
				lu.a12[i] += v
			} else {
				structErr = fmt.Errorf("sparse: entry (%d,%d) off the coupling diagonal", i, j)
			}
		case i >= n && j < n:
			if i-n == j {
				lu.a21[j] += v
			} else {
				structErr = fmt.Errorf("sparse: entry (%d,%d) off the coupling diagonal", i, j)
			}
		default:
			if i == j {
				lu.a22[i-n] += v
			} else {
				structErr = fmt.Errorf("sparse: entry (%d,%d) off the support diagonal", i, j)
			}
		}
	})
	if structErr != nil {
		return nil, structErr
	}

	// Schur complement onto the rail block.
	for i := 0; i < n; i++ {
		if lu.a22[i] == 0 || !isFinite(lu.a22[i]) {
			return nil, fmt.Errorf("sparse: support diagonal entry %d is %v", i, lu.a22[i])
		}
		lu.band[i][kd] -= lu.a12[i] * lu.a21[i] / lu.a22[i]
	}

	if err := lu.factorize(); err != nil {
		return nil, err
	}
	return lu, nil
}

// factorize performs the in-place banded LU decomposition of the Schur
// complement. The factors fit inside the original band: L fills the two
// subdiagonals, U the diagonal and the two superdiagonals.
func (lu *TwoLayerLU) factorize() error {
	n := lu.n
	for k := 0; k < n; k++ {
		piv := lu.band[k][kd]
		if piv == 0 || !isFinite(piv) {
			return fmt.Errorf("sparse: singular system: zero pivot at row %d", k)
		}
		for i := k + 1; i <= k+kd && i < n; i++ {
			m := lu.band[i][k-i+kd] / piv
			lu.band[i][k-i+kd] = m
			if m == 0 {
				continue
			}
			for j := k + 1; j <= k+kd && j < n; j++ {
				lu.band[i][j-i+kd] -= m * lu.band[k][j-k+kd]
			}
		}
	}
	return nil
}

// Solve computes x with A*x = b for the full two-layer system. dst and b
// must have length 2n; dst is overwritten and may not alias b. No
// allocation is performed.
func (lu *TwoLayerLU) Solve(dst, b []float64) {
	n := lu.n
	if len(dst) != 2*n || len(b) != 2*n {
		panic(fmt.Sprintf("sparse: dimension mismatch: want %d, dst %d, b %d", 2*n, len(dst), len(b)))
	}

	// Reduced right-hand side and forward substitution in one pass.
	for i := 0; i < n; i++ {
		yi := b[i] - lu.a12[i]*b[n+i]/lu.a22[i]
		for j := i - kd; j < i; j++ {
			if j >= 0 {
				yi -= lu.band[i][j-i+kd] * lu.y[j]
			}
		}
		lu.y[i] = yi
	}

	// Back substitution into the rail part of dst.
	x1 := dst[:n]
	for i := n - 1; i >= 0; i-- {
		xi := lu.y[i]
		for j := i + 1; j <= i+kd && j < n; j++ {
			xi -= lu.band[i][j-i+kd] * x1[j]
		}
		x1[i] = xi / lu.band[i][kd]
	}

	// Recover the support layer.
	for i := 0; i < n; i++ {
		dst[n+i] = (b[n+i] - lu.a21[i]*x1[i]) / lu.a22[i]
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
