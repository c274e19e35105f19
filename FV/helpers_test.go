package FV

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/mesh"
)

func newTestMesh(t *testing.T, n int, et mesh.ElementType, numVars int) (m *mesh.Mesh) {
	var err error
	m, err = mesh.NewCartesianMesh(n, n, n, r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, et)
	require.NoError(t, err)
	m.AllocateVariables(numVars)
	return
}

// setField samples f at every cell centroid, ghosts included
func setField(m *mesh.Mesh, f func(x r3.Vec) float64) {
	for c := range m.Cells {
		cell := &m.Cells[c]
		for v := range cell.U {
			cell.U[v] = f(cell.Centroid) * float64(v+1)
		}
	}
}

// hash01 is a deterministic pseudo random value in [0,1) for a cell position
func hash01(x r3.Vec) float64 {
	s := math.Sin(12.9898*x.X+78.233*x.Y+37.719*x.Z) * 43758.5453
	return s - math.Floor(s)
}

func sumResidual(m *mesh.Mesh) (sum []float64) {
	sum = make([]float64, m.NumVars)
	for _, c := range m.RealCells() {
		for v := range sum {
			sum[v] += c.Residual[v]
		}
	}
	return
}
