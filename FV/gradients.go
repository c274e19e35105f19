package FV

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/mesh"
)

// CellGradientCalculator fills GradientU of every real cell
type CellGradientCalculator interface {
	ComputeGradients(m *mesh.Mesh)
}

type GradientType uint

const (
	GRAD_GreenGauss GradientType = iota
	GRAD_LeastSquares
	GRAD_Zero
)

var (
	GradientNames = map[string]GradientType{
		"greengauss":   GRAD_GreenGauss,
		"gg":           GRAD_GreenGauss,
		"leastsquares": GRAD_LeastSquares,
		"lsq":          GRAD_LeastSquares,
		"zero":         GRAD_Zero,
		"none":         GRAD_Zero,
	}
	GradientPrintNames = []string{"Green Gauss", "Least Squares", "Zero"}
)

func (gt GradientType) Print() (txt string) {
	txt = GradientPrintNames[gt]
	return
}

func NewGradientType(label string) (gt GradientType, err error) {
	var ok bool
	label = strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(label))
	if len(label) == 0 {
		return GRAD_GreenGauss, nil
	}
	if gt, ok = GradientNames[label]; !ok {
		err = fmt.Errorf("unknown gradient calculator [%s]", label)
	}
	return
}

// Neighborhood selects the cells used by a least-squares stencil
type Neighborhood uint8

const (
	FaceNeighbors Neighborhood = iota
	NodeNeighbors
)

// GreenGauss sums face values times outward area vectors over the volume.
// Face U must be current.
type GreenGauss struct {
	P *Partitions
}

func NewGreenGauss(p *Partitions) *GreenGauss { return &GreenGauss{P: p} }

func (gg *GreenGauss) ComputeGradients(m *mesh.Mesh) {
	gg.P.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			cell := &m.Cells[c]
			for v := range cell.GradientU {
				var g r3.Vec
				for _, f := range cell.Faces {
					face := &m.Faces[f]
					sA := face.Area
					if face.Right == c {
						sA = -sA
					}
					g = r3.Add(g, r3.Scale(sA*face.U[v], face.Normal))
				}
				cell.GradientU[v] = r3.Scale(1./cell.Volume, g)
			}
		}
	})
}

// LeastSquares fits the neighbor differences of each real cell through a
// cached 3 x N pseudo-inverse built at construction
type LeastSquares struct {
	P            *Partitions
	Neighborhood Neighborhood
	Stencils     []*Stencil
}

func NewLeastSquares(m *mesh.Mesh, p *Partitions, nb Neighborhood) (ls *LeastSquares) {
	ls = &LeastSquares{
		P:            p,
		Neighborhood: nb,
		Stencils:     make([]*Stencil, m.NumCells),
	}
	p.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			var cells []int
			switch nb {
			case NodeNeighbors:
				cells = m.NodeNeighbors(c)
			default:
				cells = m.FaceNeighbors(c)
			}
			ls.Stencils[c] = NewGradientStencil(m, m.Cells[c].Centroid, cells)
		}
	})
	return
}

func (ls *LeastSquares) ComputeGradients(m *mesh.Mesh) {
	ls.P.Cells.ParallelFor(func(np, kMin, kMax int) {
		for c := kMin; c < kMax; c++ {
			var (
				cell = &m.Cells[c]
				s    = ls.Stencils[c]
			)
			for v := range cell.GradientU {
				u0 := cell.U[v]
				cell.GradientU[v] = r3.Vec{
					X: s.ApplyDelta(m, 0, v, u0),
					Y: s.ApplyDelta(m, 1, v, u0),
					Z: s.ApplyDelta(m, 2, v, u0),
				}
			}
		}
	})
}

// ZeroCellGradient leaves every gradient at zero
type ZeroCellGradient struct{}

func (ZeroCellGradient) ComputeGradients(m *mesh.Mesh) {
	for c := 0; c < m.NumCells; c++ {
		for v := range m.Cells[c].GradientU {
			m.Cells[c].GradientU[v] = r3.Vec{}
		}
	}
}

func NewCellGradientCalculator(gt GradientType, m *mesh.Mesh, p *Partitions,
	nb Neighborhood) (cgc CellGradientCalculator) {
	switch gt {
	case GRAD_LeastSquares:
		cgc = NewLeastSquares(m, p, nb)
	case GRAD_Zero:
		cgc = ZeroCellGradient{}
	default:
		cgc = NewGreenGauss(p)
	}
	return
}
