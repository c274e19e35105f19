package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseIncidence(t *testing.T) {
	{ // Chain of three segments over four vertices
		EToV := [][2]int{{0, 1}, {1, 2}, {2, 3}}
		A := NewDOK(3, 4)
		for k, verts := range EToV {
			for _, v := range verts {
				A.Set(k, v, 1)
			}
		}
		csr := A.ToCSR()
		G := csr.Gram()
		assert.Equal(t, []int{1}, G.RowPattern(0, true))
		assert.Equal(t, []int{0, 2}, G.RowPattern(1, true))
		assert.Equal(t, []int{1, 2}, G.RowPattern(2, false))
		// Shared vertex count lands in the off-diagonal, vertex count on the diagonal
		assert.Equal(t, 1., G.At(0, 1))
		assert.Equal(t, 2., G.At(1, 1))
		assert.Equal(t, 0., G.At(0, 2))
	}
	{ // Rows keep their assembly order
		R := NewCSRFromRows(4, [][]int{{3, 0}, {}, {1}}, [][]float64{{-1, 2}, {}, {5}})
		nr, nc := R.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 4, nc)
		cols, vals := R.Row(0)
		assert.Equal(t, []int{3, 0}, cols)
		assert.Equal(t, []float64{-1, 2}, vals)
		cols, _ = R.Row(1)
		assert.Equal(t, 0, len(cols))
		assert.Equal(t, 5., R.At(2, 1))
		assert.Panics(t, func() { NewCSRFromRows(2, [][]int{{2}}, [][]float64{{1}}) })
	}
	assert.Panics(t, func() { NewDOK(2, 2).Set(2, 0, 1) })
}
