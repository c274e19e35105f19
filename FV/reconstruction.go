package FV

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/mesh"
)

// SolutionReconstructor supplies the face states of the Riemann problem
type SolutionReconstructor interface {
	Reconstruct(m *mesh.Mesh)
	ConservativeVars(m *mesh.Mesh, cell int, point r3.Vec) []float64
}

type ReconstructionType uint

const (
	RECON_PiecewiseConstant ReconstructionType = iota
	RECON_VK
)

var (
	ReconstructionNames = map[string]ReconstructionType{
		"constant":          RECON_PiecewiseConstant,
		"piecewiseconstant": RECON_PiecewiseConstant,
		"firstorder":        RECON_PiecewiseConstant,
		"vk":                RECON_VK,
		"venkatakrishnan":   RECON_VK,
		"limited":           RECON_VK,
	}
	ReconstructionPrintNames = []string{"Piecewise Constant", "Venkatakrishnan Limited Linear"}
)

func (rt ReconstructionType) Print() (txt string) {
	txt = ReconstructionPrintNames[rt]
	return
}

func NewReconstructionType(label string) (rt ReconstructionType, err error) {
	var ok bool
	label = strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(label))
	if len(label) == 0 {
		return RECON_PiecewiseConstant, nil
	}
	if rt, ok = ReconstructionNames[label]; !ok {
		err = fmt.Errorf("unknown reconstruction [%s]", label)
	}
	return
}

func NewSolutionReconstructor(rt ReconstructionType, m *mesh.Mesh, p *Partitions) (sr SolutionReconstructor) {
	switch rt {
	case RECON_VK:
		sr = NewVKLimiter(m, p)
	default:
		sr = PiecewiseConstant{}
	}
	return
}

// PiecewiseConstant is the first order reconstruction
type PiecewiseConstant struct{}

func (PiecewiseConstant) Reconstruct(m *mesh.Mesh) {}

func (PiecewiseConstant) ConservativeVars(m *mesh.Mesh, cell int, point r3.Vec) []float64 {
	return append([]float64(nil), m.Cells[cell].U...)
}

// VKLimiter is a limited linear reconstruction using the Venkatakrishnan
// limiter function on a face neighbor least-squares gradient
type VKLimiter struct {
	P        *Partitions
	Stencils []*Stencil
}

func NewVKLimiter(m *mesh.Mesh, p *Partitions) (vk *VKLimiter) {
	vk = &VKLimiter{
		P:        p,
		Stencils: make([]*Stencil, m.NumCells),
	}
	p.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			vk.Stencils[c] = NewGradientStencil(m, m.Cells[c].Centroid, m.FaceNeighbors(c))
		}
	})
	return
}

// VKFunction is φ(y) = (y² + 2y) / (y² + y + 2)
func VKFunction(y float64) float64 {
	return (y*y + 2*y) / (y*y + y + 2)
}

// Limit returns the limiter value of one extrapolated change dm against the
// neighbor bounds duMin <= 0 <= duMax
func Limit(dm, duMin, duMax float64) float64 {
	switch {
	case dm > 0:
		return math.Min(1, VKFunction(duMax/dm))
	case dm < 0:
		return math.Min(1, VKFunction(duMin/dm))
	default:
		return 1
	}
}

func (vk *VKLimiter) Reconstruct(m *mesh.Mesh) {
	vk.P.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			var (
				cell = &m.Cells[c]
				s    = vk.Stencils[c]
			)
			for v := range cell.U {
				var (
					u0           = cell.U[v]
					duMin, duMax float64
					phi          = 1.
				)
				grad := r3.Vec{
					X: s.ApplyDelta(m, 0, v, u0),
					Y: s.ApplyDelta(m, 1, v, u0),
					Z: s.ApplyDelta(m, 2, v, u0),
				}
				for _, nb := range s.Cells {
					du := m.Cells[nb].U[v] - u0
					duMax = math.Max(duMax, du)
					duMin = math.Min(duMin, du)
				}
				for _, n := range cell.Nodes {
					dm := r3.Dot(grad, r3.Sub(m.Nodes[n], cell.Centroid))
					phi = math.Min(phi, Limit(dm, duMin, duMax))
				}
				cell.ReconstructCoeffs[v] = r3.Scale(phi, grad)
			}
		}
	})
}

func (vk *VKLimiter) ConservativeVars(m *mesh.Mesh, c int, point r3.Vec) (U []float64) {
	var (
		cell = &m.Cells[c]
		dx   = r3.Sub(point, cell.Centroid)
	)
	U = make([]float64, len(cell.U))
	for v := range U {
		U[v] = cell.U[v] + r3.Dot(cell.ReconstructCoeffs[v], dx)
	}
	return
}
