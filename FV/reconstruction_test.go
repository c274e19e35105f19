package FV

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/mesh"
)

func TestLimiterFunction(t *testing.T) {
	{ // Unchanged extrapolation is never limited
		assert.Equal(t, 1., Limit(0, -1, 1))
		assert.Equal(t, 1., Limit(0, 0, 0))
	}
	{ // No room to move against a nonzero extrapolation is fully limited
		assert.Equal(t, 0., Limit(0.5, -1, 0))
		assert.Equal(t, 0., Limit(-0.5, 0, 1))
	}
	{ // Values stay in [0,1] and never overshoot the bound
		for _, dm := range []float64{-3, -1, -0.1, 0.01, 0.5, 2, 10} {
			for _, bound := range []float64{0.001, 0.1, 0.5, 1, 2, 5, 100} {
				phi := Limit(dm, -bound, bound)
				assert.True(t, phi >= 0 && phi <= 1, "phi = %v", phi)
				assert.True(t, math.Abs(phi*dm) <= bound*(1+1.e-15))
			}
		}
		assert.Equal(t, 1., VKFunction(2))
		assert.InDelta(t, 0.75, VKFunction(1), 1.e-15)
		assert.Equal(t, 1., Limit(1, -2, 2))
	}
}

func TestReconstruction(t *testing.T) {
	{ // Piecewise constant returns the cell average anywhere
		m := newTestMesh(t, 2, mesh.Tet, 3)
		setField(m, hash01)
		var pc SolutionReconstructor = PiecewiseConstant{}
		pc.Reconstruct(m)
		for c := range m.RealCells() {
			for _, pt := range []r3.Vec{{}, {X: 10, Y: -3}, m.Nodes[m.Cells[c].Nodes[0]]} {
				assert.Equal(t, m.Cells[c].U, pc.ConservativeVars(m, c, pt))
			}
		}
		U := pc.ConservativeVars(m, 0, r3.Vec{})
		U[0] = -100
		assert.NotEqual(t, -100., m.Cells[0].U[0])
	}
	{ // A constant field has no slope
		m := newTestMesh(t, 3, mesh.Hex, 1)
		setField(m, func(x r3.Vec) float64 { return 4 })
		vk := NewVKLimiter(m, NewPartitions(m, 2))
		vk.Reconstruct(m)
		for c, cell := range m.RealCells() {
			assert.Equal(t, r3.Vec{}, cell.ReconstructCoeffs[0])
			assert.Equal(t, []float64{4}, vk.ConservativeVars(m, c, r3.Vec{X: 7}))
		}
	}
	{ // A linear field along x is bounded by its face neighbors at the nodes so it is not limited
		m := newTestMesh(t, 3, mesh.Hex, 1)
		setField(m, func(x r3.Vec) float64 { return 2*x.X - 1 })
		vk := NewVKLimiter(m, NewPartitions(m, 2))
		vk.Reconstruct(m)
		for c, cell := range m.RealCells() {
			assert.InDelta(t, 2., cell.ReconstructCoeffs[0].X, 1.e-12, "cell %d", c)
			assert.InDelta(t, 0., cell.ReconstructCoeffs[0].Y, 1.e-12)
			face := &m.Faces[cell.Faces[3]]
			assert.InDelta(t, 2*face.Centroid.X-1, vk.ConservativeVars(m, c, face.Centroid)[0], 1.e-12)
		}
	}
	{ // A linear field along the diagonal overshoots the face neighbors and is limited
		m := newTestMesh(t, 3, mesh.Hex, 1)
		setField(m, func(x r3.Vec) float64 { return x.X + x.Y + x.Z })
		vk := NewVKLimiter(m, NewPartitions(m, 1))
		vk.Reconstruct(m)
		// Nodes extrapolate 1.5h against a neighbor bound of h, y = 2/3
		phi := VKFunction(2. / 3.)
		for _, cell := range m.RealCells() {
			assert.InDelta(t, phi, cell.ReconstructCoeffs[0].X, 1.e-12)
		}
	}
	{ // Limited reconstruction stays within the neighbor bounds at every node
		m := newTestMesh(t, 3, mesh.Tet, 2)
		setField(m, hash01)
		vk := NewVKLimiter(m, NewPartitions(m, 3))
		vk.Reconstruct(m)
		for c, cell := range m.RealCells() {
			for v := range cell.U {
				lo, hi := cell.U[v], cell.U[v]
				for _, nb := range m.FaceNeighbors(c) {
					lo = math.Min(lo, m.Cells[nb].U[v])
					hi = math.Max(hi, m.Cells[nb].U[v])
				}
				for _, n := range cell.Nodes {
					u := vk.ConservativeVars(m, c, m.Nodes[n])[v]
					assert.True(t, u >= lo-1.e-12 && u <= hi+1.e-12, "cell %d node %d: %v not in [%v,%v]", c, n, u, lo, hi)
				}
			}
		}
	}
	{ // A local maximum with a slope is flattened
		m := newTestMesh(t, 3, mesh.Hex, 1)
		center := 13
		require.InDelta(t, 0.5, m.Cells[center].Centroid.X, 1.e-12)
		setField(m, func(x r3.Vec) float64 { return 0 })
		m.Cells[center].U[0] = 1
		// Lower one neighbor less than the others so the unlimited gradient is nonzero
		nb := m.FaceNeighbors(center)[3]
		m.Cells[nb].U[0] = 0.5
		vk := NewVKLimiter(m, NewPartitions(m, 1))
		vk.Reconstruct(m)
		assert.Equal(t, r3.Vec{}, m.Cells[center].ReconstructCoeffs[0])
	}
	{
		rt, err := NewReconstructionType("VK")
		assert.NoError(t, err)
		assert.Equal(t, RECON_VK, rt)
		rt, err = NewReconstructionType("")
		assert.NoError(t, err)
		assert.Equal(t, RECON_PiecewiseConstant, rt)
		_, err = NewReconstructionType("weno")
		assert.Error(t, err)
	}
}
