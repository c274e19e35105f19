package utils

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// DOK is a dictionary-of-keys builder for incidence matrices
type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{sparse.NewDOK(nr, nc)}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	nr, nc := m.Dims()
	if i < 0 || i >= nr || j < 0 || j >= nc {
		panic(fmt.Errorf("index out of bounds: (%d,%d) in %dx%d", i, j, nr, nc))
	}
	m.M.Set(i, j, val)
	return m
}

func (m DOK) ToCSR() CSR {
	return CSR{m.M.ToCSR()}
}

// CSR is a compressed sparse row matrix with row-wise accessors used for
// per-row exclusive accumulation
type CSR struct {
	M *sparse.CSR
}

// NewCSRFromRows assembles a CSR matrix row by row keeping the supplied column
// order within each row, so row traversal order is fixed at construction
func NewCSRFromRows(nc int, cols [][]int, vals [][]float64) (R CSR) {
	var (
		nr     = len(cols)
		indptr = make([]int, nr+1)
		ind    []int
		data   []float64
	)
	for i := 0; i < nr; i++ {
		if len(cols[i]) != len(vals[i]) {
			panic(fmt.Errorf("row %d has %d columns and %d values", i, len(cols[i]), len(vals[i])))
		}
		for ii, j := range cols[i] {
			if j < 0 || j >= nc {
				panic(fmt.Errorf("index out of bounds: (%d,%d) in %dx%d", i, j, nr, nc))
			}
			ind = append(ind, j)
			data = append(data, vals[i][ii])
		}
		indptr[i+1] = len(ind)
	}
	R = CSR{sparse.NewCSR(nr, nc, indptr, ind, data)}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }

// Row returns views of the column indices and values stored for row i
func (m CSR) Row(i int) (cols []int, vals []float64) {
	raw := m.RawMatrix()
	b, e := raw.Indptr[i], raw.Indptr[i+1]
	return raw.Ind[b:e], raw.Data[b:e]
}

// Gram returns A * A^T, which for an entity-to-vertex incidence counts the
// vertices shared between every pair of entities
func (m CSR) Gram() CSR {
	nr, _ := m.Dims()
	G := sparse.NewCSR(nr, nr, nil, nil, nil)
	G.Mul(m.M, m.M.T())
	return CSR{G}
}

// RowPattern returns the sorted column indices of the nonzero entries of row i,
// skipping the diagonal when skipDiag is set
func (m CSR) RowPattern(i int, skipDiag bool) (cols []int) {
	c, v := m.Row(i)
	for ii, j := range c {
		if v[ii] == 0 || (skipDiag && j == i) {
			continue
		}
		cols = append(cols, j)
	}
	sort.Ints(cols)
	return
}
