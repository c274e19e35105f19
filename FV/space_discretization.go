package FV

import (
	"fmt"

	"github.com/notargets/gofv/mesh"
)

// SpaceDiscretization evaluates the residual of every real cell. The phases
// run in order, each a fork-join over cells or faces: ghost cells, face
// interpolation, cell gradients, then each residual calculator.
type SpaceDiscretization struct {
	Mesh         *mesh.Mesh
	P            *Partitions
	Interpolator *FaceInterpolator // Optional
	Gradients    CellGradientCalculator
	Residuals    []ResidualCalculator
}

func NewSpaceDiscretization(m *mesh.Mesh, p *Partitions, fi *FaceInterpolator,
	grad CellGradientCalculator, residuals ...ResidualCalculator) (sd *SpaceDiscretization) {
	if grad == nil {
		grad = ZeroCellGradient{}
	}
	sd = &SpaceDiscretization{
		Mesh:         m,
		P:            p,
		Interpolator: fi,
		Gradients:    grad,
		Residuals:    residuals,
	}
	return
}

func (sd *SpaceDiscretization) Evaluate(time float64) (err error) {
	m := sd.Mesh
	sd.zeroResiduals()
	if err = sd.UpdateGhostCells(time); err != nil {
		return
	}
	if sd.Interpolator != nil {
		sd.Interpolator.Interpolate(m)
	}
	sd.Gradients.ComputeGradients(m)
	for _, rc := range sd.Residuals {
		if err = rc.AddResidual(m, time); err != nil {
			return
		}
	}
	return
}

func (sd *SpaceDiscretization) zeroResiduals() {
	m := sd.Mesh
	sd.P.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			R := m.Cells[c].Residual
			for v := range R {
				R[v] = 0
			}
		}
	})
}

// UpdateGhostCells sets the ghost state of every boundary face from its
// boundary condition
func (sd *SpaceDiscretization) UpdateGhostCells(time float64) (err error) {
	m := sd.Mesh
	for _, b := range m.Boundaries {
		if b.Condition == nil {
			return fmt.Errorf("%w: [%s]", mesh.ErrMissingBoundaryCondition, b.Name)
		}
	}
	sd.P.Faces.ParallelFor(func(np, fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			face := &m.Faces[f]
			if face.IsBoundary() {
				m.Boundaries[face.Boundary].Condition.SetGhostCellValues(m, f, time)
			}
		}
	})
	return
}
