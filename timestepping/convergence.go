package timestepping

import (
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofv/mesh"
	"github.com/notargets/gofv/types"
)

type Convergence struct {
	Tolerance []float64
}

func NewConvergence(tolerance []float64) *Convergence {
	return &Convergence{Tolerance: tolerance}
}

// HasConverged is true when every variable of total is strictly below its tolerance
func (cv *Convergence) HasConverged(total []float64) bool {
	if len(total) != len(cv.Tolerance) {
		return false
	}
	for i, r := range total {
		if !(r < cv.Tolerance[i]) {
			return false
		}
	}
	return true
}

// TotalResidual reduces the real cell residuals with the selected norm, one
// value per variable
func TotalResidual(m *mesh.Mesh, nt types.NormType) (total []float64) {
	var (
		cells = m.RealCells()
		col   = make([]float64, len(cells))
	)
	total = make([]float64, m.NumVars)
	for v := range total {
		for c := range cells {
			col[c] = cells[c].Residual[v]
		}
		total[v] = floats.Norm(col, nt.Order())
	}
	return
}
