package mesh

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gofv/types"
	"github.com/notargets/gofv/utils"
)

var (
	ErrNonManifoldFace          = errors.New("face shared by more than two cells")
	ErrUnknownBoundary          = errors.New("no boundary with that name")
	ErrMissingBoundaryCondition = errors.New("boundary has no boundary condition assigned")
	ErrDegenerateCell           = errors.New("cell has non-positive volume")
)

// BoundaryCondition derives the ghost cell state and the boundary convective
// flux for the faces of one boundary group
type BoundaryCondition interface {
	SetGhostCellValues(m *Mesh, face int, time float64)
	ConvectiveFlux(m *Mesh, face int, time float64) []float64
}

// Cell is a control volume. Real cells carry their arena position as Index,
// ghost cells carry -1.
type Cell struct {
	Index    int
	Volume   float64
	Centroid r3.Vec
	Nodes    []int
	Faces    []int
	// Solution storage, allocated by AllocateVariables
	U                 []float64
	Residual          []float64
	GradientU         []r3.Vec
	ReconstructCoeffs []r3.Vec
	Dt                float64
}

func (c *Cell) IsGhost() bool { return c.Index < 0 }

// Face joins Left to Right, Normal is a unit vector pointing from Left toward
// Right. Right is a ghost cell on boundary faces.
type Face struct {
	Nodes       []int
	Area        float64
	Centroid    r3.Vec
	Normal      r3.Vec
	Left, Right int
	Boundary    int // Index into Mesh.Boundaries, -1 for internal faces
	Flux        []float64
	U           []float64
	Gradient    []r3.Vec
}

func (f *Face) IsBoundary() bool { return f.Boundary >= 0 }

type Boundary struct {
	Name      string
	Faces     []int
	Condition BoundaryCondition
}

// Mesh is an arena of nodes, cells and faces that reference each other by
// integer position. Real cells occupy Cells[0:NumCells], ghost cells follow.
type Mesh struct {
	Nodes         []r3.Vec
	NodeCells     [][]int // Node to cell adjacency, includes ghost cells
	Cells         []Cell
	Faces         []Face
	InternalFaces []int
	Boundaries    []*Boundary
	NumCells      int
	NumGhosts     int
	NumVars       int

	faceNeighbors [][]int
	nodeNeighbors [][]int
}

// BoundaryTagger names the boundary group of a boundary face from its
// centroid and outward unit normal
type BoundaryTagger func(centroid, normal r3.Vec) string

// NewMesh builds faces, geometry, ghost cells and adjacency from element to
// vertex connectivity
func NewMesh(vertices []r3.Vec, elements [][]int, elementTypes []ElementType,
	tagger BoundaryTagger) (m *Mesh, err error) {
	var (
		K       = len(elements)
		faceMap = make(map[types.FaceKey]int)
	)
	if len(elementTypes) != K {
		err = fmt.Errorf("have %d elements and %d element types", K, len(elementTypes))
		return
	}
	m = &Mesh{
		Nodes:    vertices,
		Cells:    make([]Cell, K),
		NumCells: K,
	}
	// Build face connectivity
	for k := 0; k < K; k++ {
		m.Cells[k] = Cell{Index: k, Nodes: elements[k]}
		for _, faceVerts := range GetElementFaces(elementTypes[k], elements[k]) {
			key := types.NewFaceKey(faceVerts)
			if faceID, exists := faceMap[key]; exists {
				face := &m.Faces[faceID]
				if face.Right >= 0 {
					err = fmt.Errorf("%w: face %v", ErrNonManifoldFace, key.GetVertices())
					return
				}
				face.Right = k
				m.Cells[k].Faces = append(m.Cells[k].Faces, faceID)
			} else {
				faceID = len(m.Faces)
				m.Faces = append(m.Faces, Face{
					Nodes:    faceVerts,
					Left:     k,
					Right:    -1,
					Boundary: -1,
				})
				faceMap[key] = faceID
				m.Cells[k].Faces = append(m.Cells[k].Faces, faceID)
			}
		}
	}
	if err = m.computeGeometry(); err != nil {
		return
	}
	m.createGhostCells(tagger)
	m.buildAdjacency()
	return
}

func (m *Mesh) computeGeometry() (err error) {
	areaVec := make([]r3.Vec, len(m.Faces))
	for f := range m.Faces {
		face := &m.Faces[f]
		pts := make([]r3.Vec, len(face.Nodes))
		for i, n := range face.Nodes {
			pts[i] = m.Nodes[n]
		}
		areaVec[f], face.Centroid = utils.PolygonAreaCentroid(pts)
		face.Area = r3.Norm(areaVec[f])
	}
	for k := 0; k < m.NumCells; k++ {
		cell := &m.Cells[k]
		pts := make([]r3.Vec, len(cell.Nodes))
		for i, n := range cell.Nodes {
			pts[i] = m.Nodes[n]
		}
		// Decompose into pyramids from the vertex average to each face
		var (
			xm       = utils.Mean(pts)
			vol      float64
			weighted r3.Vec
		)
		for _, f := range cell.Faces {
			face := &m.Faces[f]
			h := r3.Sub(face.Centroid, xm)
			pv := r3.Dot(h, areaVec[f]) / 3.
			if pv < 0 {
				pv = -pv
			}
			vol += pv
			weighted = r3.Add(weighted, r3.Scale(pv, r3.Add(xm, r3.Scale(0.75, h))))
		}
		if vol <= 0 {
			err = fmt.Errorf("%w: cell %d", ErrDegenerateCell, k)
			return
		}
		cell.Volume = vol
		cell.Centroid = r3.Scale(1./vol, weighted)
	}
	// Orient unit normals from left toward right
	for f := range m.Faces {
		face := &m.Faces[f]
		if face.Area == 0 {
			continue
		}
		n := r3.Scale(1./face.Area, areaVec[f])
		if r3.Dot(n, r3.Sub(face.Centroid, m.Cells[face.Left].Centroid)) < 0 {
			n = r3.Scale(-1, n)
		}
		face.Normal = n
	}
	return
}

func (m *Mesh) createGhostCells(tagger BoundaryTagger) {
	byName := make(map[string]int)
	for f := range m.Faces {
		face := &m.Faces[f]
		if face.Right >= 0 {
			m.InternalFaces = append(m.InternalFaces, f)
			continue
		}
		name := "boundary"
		if tagger != nil {
			name = tagger(face.Centroid, face.Normal)
		}
		b, ok := byName[name]
		if !ok {
			b = len(m.Boundaries)
			byName[name] = b
			m.Boundaries = append(m.Boundaries, &Boundary{Name: name})
		}
		face.Boundary = b
		m.Boundaries[b].Faces = append(m.Boundaries[b].Faces, f)
		left := &m.Cells[face.Left]
		face.Right = len(m.Cells)
		m.Cells = append(m.Cells, Cell{
			Index:    -1,
			Volume:   left.Volume,
			Centroid: utils.MirrorPoint(left.Centroid, face.Centroid, face.Normal),
			Nodes:    face.Nodes,
			Faces:    []int{f},
		})
		m.NumGhosts++
	}
}

func (m *Mesh) buildAdjacency() {
	var (
		NC = len(m.Cells)
		A  = utils.NewDOK(NC, len(m.Nodes))
	)
	m.NodeCells = make([][]int, len(m.Nodes))
	for c := 0; c < NC; c++ {
		for _, n := range m.Cells[c].Nodes {
			A.Set(c, n, 1)
			m.NodeCells[n] = append(m.NodeCells[n], c)
		}
	}
	// Cells sharing at least one node are the nonzero pattern of A * A^T
	G := A.ToCSR().Gram()
	m.nodeNeighbors = make([][]int, NC)
	m.faceNeighbors = make([][]int, NC)
	for c := 0; c < NC; c++ {
		m.nodeNeighbors[c] = G.RowPattern(c, true)
		for _, f := range m.Cells[c].Faces {
			m.faceNeighbors[c] = append(m.faceNeighbors[c], m.OtherCell(f, c))
		}
	}
}

// OtherCell returns the cell across face f from cell c
func (m *Mesh) OtherCell(f, c int) int {
	face := &m.Faces[f]
	if face.Left == c {
		return face.Right
	}
	return face.Left
}

// FaceNeighbors returns the cells across each face of cell c, in face order
func (m *Mesh) FaceNeighbors(c int) []int { return m.faceNeighbors[c] }

// NodeNeighbors returns the sorted cells, real and ghost, sharing a node with cell c
func (m *Mesh) NodeNeighbors(c int) []int { return m.nodeNeighbors[c] }

func (m *Mesh) RealCells() []Cell  { return m.Cells[:m.NumCells] }
func (m *Mesh) GhostCells() []Cell { return m.Cells[m.NumCells:] }

// AllocateVariables sizes the per-cell and per-face solution arrays
func (m *Mesh) AllocateVariables(numVars int) {
	m.NumVars = numVars
	for c := range m.Cells {
		cell := &m.Cells[c]
		cell.U = make([]float64, numVars)
		cell.Residual = make([]float64, numVars)
		cell.GradientU = make([]r3.Vec, numVars)
		cell.ReconstructCoeffs = make([]r3.Vec, numVars)
	}
	for f := range m.Faces {
		face := &m.Faces[f]
		face.Flux = make([]float64, numVars)
		face.U = make([]float64, numVars)
		face.Gradient = make([]r3.Vec, numVars)
	}
}

func (m *Mesh) BoundaryByName(name string) (bnd *Boundary, err error) {
	for _, b := range m.Boundaries {
		if b.Name == name {
			return b, nil
		}
	}
	err = fmt.Errorf("%w: [%s]", ErrUnknownBoundary, name)
	return
}

func (m *Mesh) SetBoundaryCondition(name string, bc BoundaryCondition) (err error) {
	var bnd *Boundary
	if bnd, err = m.BoundaryByName(name); err != nil {
		return
	}
	bnd.Condition = bc
	return
}

// CheckBoundaryConditions fails on the first boundary lacking a condition
func (m *Mesh) CheckBoundaryConditions() (err error) {
	for _, b := range m.Boundaries {
		if b.Condition == nil {
			return fmt.Errorf("%w: [%s]", ErrMissingBoundaryCondition, b.Name)
		}
	}
	return
}

// InteriorCell returns the real cell adjacent to boundary face f
func (m *Mesh) InteriorCell(f int) *Cell { return &m.Cells[m.Faces[f].Left] }

// GhostCell returns the ghost cell of boundary face f
func (m *Mesh) GhostCell(f int) *Cell { return &m.Cells[m.Faces[f].Right] }

func (m *Mesh) TotalVolume() (vol float64) {
	for _, c := range m.RealCells() {
		vol += c.Volume
	}
	return
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Nodes: %d\n", len(m.Nodes))
	fmt.Fprintf(w, "  Cells: %d\n", m.NumCells)
	fmt.Fprintf(w, "  Ghost cells: %d\n", m.NumGhosts)
	fmt.Fprintf(w, "  Faces: %d (%d internal)\n", len(m.Faces), len(m.InternalFaces))
	for _, b := range m.Boundaries {
		fmt.Fprintf(w, "  Boundary [%s]: %d faces\n", b.Name, len(b.Faces))
	}
}
