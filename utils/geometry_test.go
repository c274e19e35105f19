package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTangentBasis(t *testing.T) {
	normals := []r3.Vec{
		{X: 1}, {Y: -1}, {Z: 1},
		r3.Unit(r3.Vec{X: 1, Y: 1, Z: 1}),
		r3.Unit(r3.Vec{X: -0.3, Y: 0.9, Z: 0.1}),
		r3.Unit(r3.Vec{X: 1e-9, Y: 1e-9, Z: -1}),
	}
	for _, n := range normals {
		t1, t2 := TangentBasis(n)
		assert.InDelta(t, 1., r3.Norm(t1), 1.e-14)
		assert.InDelta(t, 1., r3.Norm(t2), 1.e-14)
		assert.InDelta(t, 0., r3.Dot(n, t1), 1.e-14)
		assert.InDelta(t, 0., r3.Dot(n, t2), 1.e-14)
		assert.InDelta(t, 0., r3.Dot(t1, t2), 1.e-14)
		// Right handed: n x t1 = t2
		c := r3.Sub(r3.Cross(n, t1), t2)
		assert.InDelta(t, 0., r3.Norm(c), 1.e-14)
	}
	{ // Component round trip and centroid of a point set
		v := r3.Vec{X: 1, Y: 2, Z: 3}
		for d := 0; d < 3; d++ {
			assert.Equal(t, float64(d+1), Component(v, d))
		}
		m := Mean([]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}, {}})
		assert.InDelta(t, 0.25, m.X, 1.e-15)
		assert.Equal(t, r3.Vec{}, Mean(nil))
		assert.False(t, math.IsNaN(Mean(nil).X))
	}
}
