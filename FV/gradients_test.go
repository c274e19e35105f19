package FV

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/mesh"
)

func TestCellGradients(t *testing.T) {
	var (
		g      = r3.Vec{X: 1.5, Y: -2, Z: 0.25}
		linear = func(x r3.Vec) float64 { return 0.7 + r3.Dot(g, r3.Sub(x, r3.Vec{X: 0.3, Y: 0.1, Z: 0.9})) }
	)
	checkGradient := func(t *testing.T, m *mesh.Mesh, label string) {
		for c, cell := range m.RealCells() {
			for v := range cell.GradientU {
				want := r3.Scale(float64(v+1), g)
				got := cell.GradientU[v]
				assert.InDelta(t, want.X, got.X, 1.e-12, "%s cell %d", label, c)
				assert.InDelta(t, want.Y, got.Y, 1.e-12, "%s cell %d", label, c)
				assert.InDelta(t, want.Z, got.Z, 1.e-12, "%s cell %d", label, c)
			}
		}
	}
	for _, et := range []mesh.ElementType{mesh.Hex, mesh.Tet} {
		m := newTestMesh(t, 3, et, 2)
		p := NewPartitions(m, 4)
		setField(m, linear)
		{ // Face interpolation reproduces the linear field and its gradient at face centroids
			fi := NewFaceInterpolator(m, p)
			fi.Interpolate(m)
			for f := range m.Faces {
				face := &m.Faces[f]
				assert.Equal(t, 4, fi.Stencils[f].Rank)
				assert.InDelta(t, 2*linear(face.Centroid), face.U[1], 1.e-12)
				assert.InDelta(t, g.Y, face.Gradient[0].Y, 1.e-12)
			}
			gg := NewGreenGauss(p)
			gg.ComputeGradients(m)
			checkGradient(t, m, "green gauss "+et.String())
		}
		{
			ls := NewLeastSquares(m, p, NodeNeighbors)
			ls.ComputeGradients(m)
			checkGradient(t, m, "node least squares "+et.String())
		}
		{
			ls := NewLeastSquares(m, p, FaceNeighbors)
			for _, s := range ls.Stencils {
				assert.Equal(t, 3, s.Rank)
				if et == mesh.Hex {
					assert.Equal(t, 6, len(s.Cells))
				} else {
					assert.Equal(t, 4, len(s.Cells))
				}
			}
			ls.ComputeGradients(m)
			checkGradient(t, m, "face least squares "+et.String())
		}
		{
			var zg CellGradientCalculator = ZeroCellGradient{}
			zg.ComputeGradients(m)
			for _, cell := range m.RealCells() {
				assert.Equal(t, r3.Vec{}, cell.GradientU[0])
			}
		}
	}
	{
		gt, err := NewGradientType("Least-Squares")
		assert.NoError(t, err)
		assert.Equal(t, GRAD_LeastSquares, gt)
		gt, err = NewGradientType("")
		assert.NoError(t, err)
		assert.Equal(t, GRAD_GreenGauss, gt)
		_, err = NewGradientType("spectral")
		assert.Error(t, err)
	}
}

func TestGradientStencil(t *testing.T) {
	m := newTestMesh(t, 2, mesh.Hex, 1)
	{ // Neighbors spread only along x close the other directions artificially
		c := 0
		cells := []int{}
		for _, nb := range m.FaceNeighbors(c) {
			d := r3.Sub(m.Cells[nb].Centroid, m.Cells[c].Centroid)
			if math.Abs(d.Y) < 1.e-12 && math.Abs(d.Z) < 1.e-12 {
				cells = append(cells, nb)
			}
		}
		assert.Equal(t, 2, len(cells))
		s := NewGradientStencil(m, m.Cells[c].Centroid, cells)
		assert.Equal(t, 3, s.Rank)
		r, cols := s.Op.Dims()
		assert.Equal(t, 3, r)
		assert.Equal(t, 2, cols)
		setField(m, func(x r3.Vec) float64 { return 3*x.X + 5*x.Y })
		u0 := m.Cells[c].U[0]
		assert.InDelta(t, 3., s.ApplyDelta(m, 0, 0, u0), 1.e-12)
		assert.InDelta(t, 0., s.ApplyDelta(m, 1, 0, u0), 1.e-12)
		assert.InDelta(t, 0., s.ApplyDelta(m, 2, 0, u0), 1.e-12)
	}
	{ // Coincident neighbors give a rank deficient fit without failing
		s := NewGradientStencil(m, m.Cells[0].Centroid, []int{0, 0})
		assert.Equal(t, 3, s.Rank)
		assert.Equal(t, 0., s.ApplyDelta(m, 0, 0, 7))
	}
}
