package sparse

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CSC is an immutable sparse matrix in compressed sparse column format.
type CSC struct {
	rows, cols int
	colPtr     []int
	rowInd     []int
	values     []float64
}

var _ mat.Matrix = (*CSC)(nil)

// Dims returns the dimensions of the matrix.
func (m *CSC) Dims() (r, c int) { return m.rows, m.cols }

// At returns the value at row i, column j.
func (m *CSC) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	lo, hi := m.colPtr[j], m.colPtr[j+1]
	k := lo + sort.SearchInts(m.rowInd[lo:hi], i)
	if k < hi && m.rowInd[k] == i {
		return m.values[k]
	}
	return 0
}

// T returns the transpose of the matrix.
func (m *CSC) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// NNZ returns the number of stored entries.
func (m *CSC) NNZ() int { return len(m.values) }

// MulVec computes dst = M*x. dst must have length equal to the number of
// rows and x to the number of columns; dst is overwritten. No allocation
// is performed, so the method is safe for use in the stepping hot loop.
func (m *CSC) MulVec(dst, x []float64) {
	if len(x) != m.cols || len(dst) != m.rows {
		panic(fmt.Sprintf("sparse: dimension mismatch: matrix %dx%d, dst %d, x %d",
			m.rows, m.cols, len(dst), len(x)))
	}
	for i := range dst {
		dst[i] = 0
	}
	for j := 0; j < m.cols; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		for k := m.colPtr[j]; k < m.colPtr[j+1]; k++ {
			dst[m.rowInd[k]] += m.values[k] * xj
		}
	}
}

// DoNonZero calls fn for each stored entry in column-major order.
func (m *CSC) DoNonZero(fn func(i, j int, v float64)) {
	for j := 0; j < m.cols; j++ {
		for k := m.colPtr[j]; k < m.colPtr[j+1]; k++ {
			fn(m.rowInd[k], j, m.values[k])
		}
	}
}

// Builder accumulates triplets and assembles them into a CSC matrix.
// Duplicate entries are summed, as in the usual COO-to-CSC conversion.
type Builder struct {
	rows, cols int
	byCol      [][]triplet
}

type triplet struct {
	row int
	val float64
}

// NewBuilder returns a builder for an r x c matrix.
func NewBuilder(r, c int) *Builder {
	return &Builder{rows: r, cols: c, byCol: make([][]triplet, c)}
}

// Add accumulates v at row i, column j.
func (b *Builder) Add(i, j int, v float64) {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	b.byCol[j] = append(b.byCol[j], triplet{row: i, val: v})
}

// AddDiag accumulates the vector d on the diagonal of the block whose top
// left corner is (i0, j0).
func (b *Builder) AddDiag(i0, j0 int, d []float64) {
	for i, v := range d {
		b.Add(i0+i, j0+i, v)
	}
}

// Build assembles the accumulated triplets into an immutable CSC matrix.
// Zero-valued sums are retained so the sparsity pattern is reproducible.
func (b *Builder) Build() *CSC {
	m := &CSC{
		rows:   b.rows,
		cols:   b.cols,
		colPtr: make([]int, b.cols+1),
	}
	for j, col := range b.byCol {
		sort.Slice(col, func(a, c int) bool { return col[a].row < col[c].row })
		for k := 0; k < len(col); {
			row, sum := col[k].row, 0.0
			for k < len(col) && col[k].row == row {
				sum += col[k].val
				k++
			}
			m.rowInd = append(m.rowInd, row)
			m.values = append(m.values, sum)
		}
		m.colPtr[j+1] = len(m.values)
	}
	return m
}
