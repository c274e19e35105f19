package FV

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/mesh"
)

// FaceInterpolator fills face U and Gradient from every cell, real or ghost,
// touching a node of the face
type FaceInterpolator struct {
	P        *Partitions
	Stencils []*Stencil
}

func NewFaceInterpolator(m *mesh.Mesh, p *Partitions) (fi *FaceInterpolator) {
	fi = &FaceInterpolator{
		P:        p,
		Stencils: make([]*Stencil, len(m.Faces)),
	}
	p.Faces.ParallelFor(func(np, fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			face := &m.Faces[f]
			fi.Stencils[f] = NewInterpolationStencil(m, face.Centroid, faceStencil(m, face))
		}
	})
	return
}

func faceStencil(m *mesh.Mesh, face *mesh.Face) (cells []int) {
	seen := make(map[int]bool)
	for _, n := range face.Nodes {
		for _, c := range m.NodeCells[n] {
			if !seen[c] {
				seen[c] = true
				cells = append(cells, c)
			}
		}
	}
	sort.Ints(cells)
	return
}

func (fi *FaceInterpolator) Interpolate(m *mesh.Mesh) {
	fi.P.Faces.ParallelFor(func(np, fMin, fMax int) {
		for f := fMin; f < fMax; f++ {
			var (
				face = &m.Faces[f]
				s    = fi.Stencils[f]
			)
			for v := range face.U {
				face.U[v] = s.Apply(m, 0, v)
				face.Gradient[v] = r3.Vec{
					X: s.Apply(m, 1, v),
					Y: s.Apply(m, 2, v),
					Z: s.Apply(m, 3, v),
				}
			}
		}
	})
}
