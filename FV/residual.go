package FV

import (
	"fmt"

	"github.com/notargets/gofv/equations"
	"github.com/notargets/gofv/mesh"
	"github.com/notargets/gofv/utils"
)

// ResidualCalculator adds one family of contributions into the real cell
// residuals. Residual is the right hand side V dU/dt.
type ResidualCalculator interface {
	AddResidual(m *mesh.Mesh, time float64) error
}

// accumulate adds sign * Σ_f incidence(c,f) * flux[f] into each real cell,
// summing in the cell's face order
func accumulate(m *mesh.Mesh, p *Partitions, incidence utils.CSR, flux func(f int) []float64, sign float64) {
	p.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			var (
				R          = m.Cells[c].Residual
				faces, sAs = incidence.Row(c)
			)
			for i, f := range faces {
				F := flux(f)
				scale := sign * sAs[i]
				for v := range R {
					R[v] += scale * F[v]
				}
			}
		}
	})
}

// Convective evaluates the Riemann flux on internal faces, takes the boundary
// condition flux on boundary faces, and subtracts F·n A from the left cell
// while adding it to the right
type Convective struct {
	P         *Partitions
	Recon     SolutionReconstructor
	Riemann   RiemannSolver
	incidence utils.CSR
}

func NewConvective(m *mesh.Mesh, p *Partitions, recon SolutionReconstructor, rs RiemannSolver) *Convective {
	return &Convective{
		P:         p,
		Recon:     recon,
		Riemann:   rs,
		incidence: NewFaceIncidence(m),
	}
}

func (cr *Convective) AddResidual(m *mesh.Mesh, time float64) (err error) {
	cr.Recon.Reconstruct(m)
	err = cr.P.Faces.ParallelForErr(func(np, fMin, fMax int) (err error) {
		for f := fMin; f < fMax; f++ {
			var (
				face = &m.Faces[f]
				F    []float64
			)
			if face.IsBoundary() {
				F = m.Boundaries[face.Boundary].Condition.ConvectiveFlux(m, f, time)
			} else {
				UL := cr.Recon.ConservativeVars(m, face.Left, face.Centroid)
				UR := cr.Recon.ConservativeVars(m, face.Right, face.Centroid)
				if F, err = cr.Riemann.Flux(UL, UR, face.Normal); err != nil {
					return fmt.Errorf("face %d between cells %d and %d: %w", f, face.Left, face.Right, err)
				}
			}
			copy(face.Flux, F)
		}
		return
	})
	if err != nil {
		return
	}
	accumulate(m, cr.P, cr.incidence, func(f int) []float64 { return m.Faces[f].Flux }, -1)
	return
}

// Diffusive accumulates κ∇U·n A from the interpolated face state, adding to
// the left cell and subtracting from the right. Face U and Gradient must be
// current.
type Diffusive struct {
	P         *Partitions
	Diffusion equations.Diffusion
	FaceFlux  [][]float64
	incidence utils.CSR
}

func NewDiffusive(m *mesh.Mesh, p *Partitions, diff equations.Diffusion) (dr *Diffusive) {
	dr = &Diffusive{
		P:         p,
		Diffusion: diff,
		FaceFlux:  make([][]float64, len(m.Faces)),
		incidence: NewFaceIncidence(m),
	}
	return
}

func (dr *Diffusive) AddResidual(m *mesh.Mesh, time float64) (err error) {
	dr.P.Faces.ParallelFor(func(np, fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			face := &m.Faces[f]
			dr.FaceFlux[f] = dr.Diffusion.Flux(face.U, face.Gradient, face.Normal)
		}
	})
	accumulate(m, dr.P, dr.incidence, func(f int) []float64 { return dr.FaceFlux[f] }, 1)
	return
}

// Source adds the pointwise production term times the cell volume
type Source struct {
	P      *Partitions
	Source equations.Source
}

func NewSource(p *Partitions, src equations.Source) *Source {
	return &Source{P: p, Source: src}
}

func (sr *Source) AddResidual(m *mesh.Mesh, time float64) (err error) {
	sr.P.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			cell := &m.Cells[c]
			S := sr.Source.Term(cell.U, cell.GradientU)
			for v := range cell.Residual {
				cell.Residual[v] += S[v] * cell.Volume
			}
		}
	})
	return
}
