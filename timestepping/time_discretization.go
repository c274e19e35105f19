package timestepping

import (
	"github.com/notargets/gofv/FV"
	"github.com/notargets/gofv/mesh"
)

type SchemeOrder uint

const (
	TwoPoint   SchemeOrder = iota // First order backward difference
	ThreePoint                    // Second order backward difference
)

func (so SchemeOrder) String() string {
	return [...]string{"TwoPoint", "ThreePoint"}[so]
}

/*
TimeDiscretization holds the real time history of a dual time solve. Within
one real step the integrators march pseudo time on

	V dU/dτ = R(U) - V (U - Uⁿ) / Δt                                    (TwoPoint)
	V dU/dτ = R(U) - V (a U - (1+ω) Uⁿ + ω²/(1+ω) Uⁿ⁻¹) / Δt              (ThreePoint)

with ω = Δt / Δtⁿ⁻¹ and a = (1+2ω)/(1+ω). A constant step, ω = 1, is
(3U - 4Uⁿ + Uⁿ⁻¹) / (2Δt). The first real step has no Uⁿ⁻¹ and uses TwoPoint;
ShiftSolution moves to ThreePoint. RealDt may be shortened before any step,
the final one landing on the end time.
*/
type TimeDiscretization struct {
	Order    SchemeOrder
	RealDt   float64
	PrevDt   float64 // Real step that produced Uⁿ
	Un, Unm1 [][]float64
	P        *FV.Partitions
}

func NewTimeDiscretization(m *mesh.Mesh, p *FV.Partitions, realDt float64) (td *TimeDiscretization) {
	td = &TimeDiscretization{
		Order:  TwoPoint,
		RealDt: realDt,
		PrevDt: realDt,
		Un:     make([][]float64, m.NumCells),
		Unm1:   make([][]float64, m.NumCells),
		P:      p,
	}
	for c, cell := range m.RealCells() {
		td.Un[c] = append([]float64(nil), cell.U...)
		td.Unm1[c] = make([]float64, len(cell.U))
	}
	return
}

// AddPseudoSource adds the real time derivative term to every real cell residual
func (td *TimeDiscretization) AddPseudoSource(m *mesh.Mesh) {
	td.P.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			var (
				cell = &m.Cells[c]
				un   = td.Un[c]
				unm1 = td.Unm1[c]
			)
			switch td.Order {
			case TwoPoint:
				fac := cell.Volume / td.RealDt
				for v, u := range cell.U {
					cell.Residual[v] -= fac * (u - un[v])
				}
			case ThreePoint:
				var (
					w   = td.RealDt / td.PrevDt
					a   = (1 + 2*w) / (1 + w)
					b   = 1 + w
					cc  = w * w / (1 + w)
					fac = cell.Volume / td.RealDt
				)
				for v, u := range cell.U {
					cell.Residual[v] -= fac * (a*u - b*un[v] + cc*unm1[v])
				}
			}
		}
	})
}

// ShiftSolution is called after a real time step converges: Uⁿ becomes Uⁿ⁻¹,
// the current solution becomes Uⁿ
func (td *TimeDiscretization) ShiftSolution(m *mesh.Mesh) {
	td.Un, td.Unm1 = td.Unm1, td.Un
	for c, cell := range m.RealCells() {
		copy(td.Un[c], cell.U)
	}
	td.Order = ThreePoint
	td.PrevDt = td.RealDt
}
