package FV

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/mesh"
	"github.com/notargets/gofv/utils"
)

// Stencil is a cached least-squares operator over a fixed list of cells.
// Op has one row per fitted coefficient and one column per stencil cell.
type Stencil struct {
	Cells []int
	Op    *mat.Dense
	Rank  int
}

// Apply returns Op row i dotted with the samples of variable v over the stencil
func (s *Stencil) Apply(m *mesh.Mesh, i, v int) (sum float64) {
	row := s.Op.RawRowView(i)
	for j, c := range s.Cells {
		sum += row[j] * m.Cells[c].U[v]
	}
	return
}

// ApplyDelta is Apply on the differences U[c] - base
func (s *Stencil) ApplyDelta(m *mesh.Mesh, i, v int, base float64) (sum float64) {
	row := s.Op.RawRowView(i)
	for j, c := range s.Cells {
		sum += row[j] * (m.Cells[c].U[v] - base)
	}
	return
}

func stencilOffsets(m *mesh.Mesh, origin r3.Vec, cells []int) (dx []r3.Vec, dist []float64, radius float64) {
	dx = make([]r3.Vec, len(cells))
	dist = make([]float64, len(cells))
	for j, c := range cells {
		dx[j] = r3.Sub(m.Cells[c].Centroid, origin)
		dist[j] = r3.Norm(dx[j])
		radius = math.Max(radius, dist[j])
	}
	if radius == 0 {
		radius = 1
	}
	return
}

// NewGradientStencil fits g in U[c] - U0 = g·(x_c - origin) over cells with
// normalized inverse distance weights, giving a 3 x N operator. Directions
// along which the offsets have no extent are closed with an artificial
// neighbor carrying no change, so the fit stays full rank and the gradient
// along that direction is zero.
func NewGradientStencil(m *mesh.Mesh, origin r3.Vec, cells []int) (s *Stencil) {
	var (
		N                = len(cells)
		dx, dist, radius = stencilOffsets(m, origin, cells)
		rows             []r3.Vec
		w                []float64
	)
	for j := 0; j < N; j++ {
		rows = append(rows, r3.Scale(1./radius, dx[j]))
	}
	w = utils.InverseDistanceWeights(dist)
	for d := 0; d < 3; d++ {
		var extent float64
		for j := 0; j < N; j++ {
			extent = math.Max(extent, math.Abs(utils.Component(rows[j], d)))
		}
		if extent < 1.e-8 {
			rows = append(rows, utils.SetComponent(r3.Vec{}, d, 1))
			w = append(w, 1./float64(N+1))
		}
	}
	D := mat.NewDense(len(rows), 3, nil)
	for j, r := range rows {
		D.Set(j, 0, r.X)
		D.Set(j, 1, r.Y)
		D.Set(j, 2, r.Z)
	}
	G, rank := utils.WeightedLeastSquares(D, w, utils.SingularValueCutoff)
	// Drop the artificial columns, their samples are identically zero, and undo the offset scaling
	s = &Stencil{Cells: cells, Op: mat.NewDense(3, N, nil), Rank: rank}
	for i := 0; i < 3; i++ {
		for j := 0; j < N; j++ {
			s.Op.Set(i, j, G.At(i, j)/radius)
		}
	}
	return
}

// NewInterpolationStencil fits U[c] = u0 + g·(x_c - origin) over cells,
// giving a 4 x N operator whose first row yields the value at origin and
// whose remaining rows yield the gradient
func NewInterpolationStencil(m *mesh.Mesh, origin r3.Vec, cells []int) (s *Stencil) {
	var (
		N                = len(cells)
		dx, dist, radius = stencilOffsets(m, origin, cells)
		D                = mat.NewDense(N, 4, nil)
	)
	for j := 0; j < N; j++ {
		r := r3.Scale(1./radius, dx[j])
		D.Set(j, 0, 1)
		D.Set(j, 1, r.X)
		D.Set(j, 2, r.Y)
		D.Set(j, 3, r.Z)
	}
	G, rank := utils.WeightedLeastSquares(D, utils.InverseDistanceWeights(dist), utils.SingularValueCutoff)
	s = &Stencil{Cells: cells, Op: G, Rank: rank}
	for i := 1; i < 4; i++ {
		for j := 0; j < N; j++ {
			G.Set(i, j, G.At(i, j)/radius)
		}
	}
	return
}
