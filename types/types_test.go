package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test face keys are independent of vertex order
		k1 := NewFaceKey([]int{4, 0, 7, 3})
		k2 := NewFaceKey([]int{3, 7, 4, 0})
		assert.Equal(t, k1, k2)
		assert.Equal(t, FaceKey{0, 3, 4, 7}, k1)
		assert.Equal(t, []int{0, 3, 4, 7}, k1.GetVertices())

		k3 := NewFaceKey([]int{9, 2, 5})
		assert.Equal(t, FaceKey{2, 5, 9, -1}, k3)
		assert.Equal(t, []int{2, 5, 9}, k3.GetVertices())
		assert.NotEqual(t, k1, k3)

		assert.Panics(t, func() { NewFaceKey([]int{1, 2}) })
		assert.Panics(t, func() { NewFaceKey([]int{1, -2, 3}) })
	}
	{ // Test boundary condition names
		bc, err := NewBCFLAG(" Outflow ")
		assert.NoError(t, err)
		assert.Equal(t, BC_ZeroGradient, bc)
		assert.Equal(t, "ZeroGradient", bc.String())
		_, err = NewBCFLAG("periodic")
		assert.Error(t, err)
	}
	{ // Test norm selector
		nt, err := NewNormType("LInf")
		assert.NoError(t, err)
		assert.Equal(t, LInf, nt)
		assert.True(t, math.IsInf(nt.Order(), 1))
		nt, err = NewNormType("")
		assert.NoError(t, err)
		assert.Equal(t, L2, nt)
		assert.Equal(t, 1., L1.Order())
		_, err = NewNormType("l3")
		assert.Error(t, err)
	}
}
