package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kuhn decomposition of the unit box into six tetrahedra sharing the main diagonal
var kuhnPermutations = [6][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

// NewCartesianMesh builds an nx by ny by nz block of hexahedra, or of Kuhn
// tetrahedra (six per block) when et is Tet, spanning the box [lo, hi].
// Boundary faces are tagged xmin, xmax, ymin, ymax, zmin and zmax.
func NewCartesianMesh(nx, ny, nz int, lo, hi r3.Vec, et ElementType) (m *Mesh, err error) {
	if nx < 1 || ny < 1 || nz < 1 {
		err = fmt.Errorf("cartesian mesh needs at least one cell per direction, have %dx%dx%d", nx, ny, nz)
		return
	}
	if hi.X <= lo.X || hi.Y <= lo.Y || hi.Z <= lo.Z {
		err = fmt.Errorf("empty box %v to %v", lo, hi)
		return
	}
	var (
		dx       = r3.Vec{X: (hi.X - lo.X) / float64(nx), Y: (hi.Y - lo.Y) / float64(ny), Z: (hi.Z - lo.Z) / float64(nz)}
		vertices = make([]r3.Vec, 0, (nx+1)*(ny+1)*(nz+1))
		elements [][]int
		elTypes  []ElementType
	)
	vertexID := func(i, j, k int) int { return i + (nx+1)*(j+(ny+1)*k) }
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				vertices = append(vertices, r3.Vec{
					X: lo.X + float64(i)*dx.X,
					Y: lo.Y + float64(j)*dx.Y,
					Z: lo.Z + float64(k)*dx.Z,
				})
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				switch et {
				case Hex:
					elements = append(elements, []int{
						vertexID(i, j, k), vertexID(i+1, j, k), vertexID(i+1, j+1, k), vertexID(i, j+1, k),
						vertexID(i, j, k+1), vertexID(i+1, j, k+1), vertexID(i+1, j+1, k+1), vertexID(i, j+1, k+1),
					})
					elTypes = append(elTypes, Hex)
				case Tet:
					for _, p := range kuhnPermutations {
						var (
							off   [3]int
							verts = make([]int, 4)
						)
						verts[0] = vertexID(i, j, k)
						for n := 0; n < 2; n++ {
							off[p[n]] = 1
							verts[n+1] = vertexID(i+off[0], j+off[1], k+off[2])
						}
						verts[3] = vertexID(i+1, j+1, k+1)
						elements = append(elements, verts)
						elTypes = append(elTypes, Tet)
					}
				default:
					err = fmt.Errorf("cartesian mesh does not support %s cells", et)
					return
				}
			}
		}
	}
	return NewMesh(vertices, elements, elTypes, CartesianTagger)
}

// CartesianTagger names a boundary face by the dominant direction of its
// outward normal
func CartesianTagger(centroid, normal r3.Vec) (name string) {
	var (
		comps = [3]float64{normal.X, normal.Y, normal.Z}
		axes  = [3]string{"x", "y", "z"}
		dMax  int
	)
	for d := 1; d < 3; d++ {
		if math.Abs(comps[d]) > math.Abs(comps[dMax]) {
			dMax = d
		}
	}
	if comps[dMax] < 0 {
		return axes[dMax] + "min"
	}
	return axes[dMax] + "max"
}
