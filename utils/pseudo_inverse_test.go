package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPseudoInverse(t *testing.T) {
	{ // Full rank square matrix reproduces the inverse
		A := mat.NewDense(2, 2, []float64{
			2, 0,
			0, 4,
		})
		Ainv, rank := PseudoInverse(A, SingularValueCutoff)
		assert.Equal(t, 2, rank)
		assert.InDelta(t, 0.5, Ainv.At(0, 0), 1.e-14)
		assert.InDelta(t, 0.25, Ainv.At(1, 1), 1.e-14)
		assert.InDelta(t, 0., Ainv.At(0, 1), 1.e-14)
	}
	{ // Singular values below 10% of the largest are dropped
		A := mat.NewDense(2, 2, []float64{
			1, 0,
			0, 0.01,
		})
		Ainv, rank := PseudoInverse(A, SingularValueCutoff)
		assert.Equal(t, 1, rank)
		assert.InDelta(t, 1., Ainv.At(0, 0), 1.e-14)
		assert.InDelta(t, 0., Ainv.At(1, 1), 1.e-14)
	}
	{ // Zero matrix gives a zero operator without failing
		A := mat.NewDense(3, 2, nil)
		Ainv, rank := PseudoInverse(A, SingularValueCutoff)
		assert.Equal(t, 0, rank)
		r, c := Ainv.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 3, c)
		assert.Equal(t, 0., mat.Sum(Ainv))
	}
	{ // Weighted least squares recovers an exact line through weighted samples
		X := []float64{-1, -0.5, 0.25, 1, 2}
		D := mat.NewDense(len(X), 2, nil)
		samples := make([]float64, len(X))
		dist := make([]float64, len(X))
		for i, x := range X {
			D.Set(i, 0, 1)
			D.Set(i, 1, x)
			samples[i] = 3 - 2*x
			dist[i] = math.Abs(x) + 0.1
		}
		w := InverseDistanceWeights(dist)
		var sum float64
		for _, ww := range w {
			sum += ww
		}
		assert.InDelta(t, 1., sum, 1.e-14)
		G, rank := WeightedLeastSquares(D, w, SingularValueCutoff)
		assert.Equal(t, 2, rank)
		coeffs := mat.NewVecDense(2, nil)
		coeffs.MulVec(G, mat.NewVecDense(len(samples), samples))
		assert.InDelta(t, 3., coeffs.AtVec(0), 1.e-12)
		assert.InDelta(t, -2., coeffs.AtVec(1), 1.e-12)
	}
}

func TestGeometry(t *testing.T) {
	{ // Unit square in the z=0 plane, counterclockwise about +z
		pts := []r3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
		av, c := PolygonAreaCentroid(pts)
		assert.InDelta(t, 1., av.Z, 1.e-14)
		assert.InDelta(t, 0., av.X, 1.e-14)
		assert.InDelta(t, 0.5, c.X, 1.e-14)
		assert.InDelta(t, 0.5, c.Y, 1.e-14)
	}
	{ // Triangle centroid
		pts := []r3.Vec{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}}
		av, c := PolygonAreaCentroid(pts)
		assert.InDelta(t, 4.5, r3.Norm(av), 1.e-14)
		assert.InDelta(t, 1., c.X, 1.e-14)
		assert.InDelta(t, 1., c.Y, 1.e-14)
	}
	{ // Mirror across the plane x = 1
		p := MirrorPoint(r3.Vec{X: 0.25, Y: 2, Z: 3}, r3.Vec{X: 1}, r3.Vec{X: 1})
		assert.InDelta(t, 1.75, p.X, 1.e-14)
		assert.Equal(t, 2., p.Y)
		assert.Equal(t, 3., p.Z)
	}
	{
		v := SetComponent(r3.Vec{}, 2, 5)
		assert.Equal(t, 5., Component(v, 2))
		assert.True(t, Near(1., 1.+1.e-10))
		assert.False(t, Near(1., 1.1))
		assert.True(t, IsNan([]float64{1, math.NaN()}))
		assert.False(t, IsNan([][]float64{{1, 2}, {3}}))
		assert.Equal(t, 1./8., POW(2, -3))
	}
}
