package FV

import (
	"github.com/notargets/gofv/mesh"
	"github.com/notargets/gofv/utils"
)

// Partitions shards the real cells and the faces of one mesh across
// ParallelDegree goroutines
type Partitions struct {
	ParallelDegree int
	Cells          *utils.PartitionMap
	Faces          *utils.PartitionMap
}

func NewPartitions(m *mesh.Mesh, parallelDegree int) (p *Partitions) {
	p = &Partitions{
		ParallelDegree: utils.ParallelDegree(parallelDegree, m.NumCells),
	}
	p.Cells = utils.NewPartitionMap(p.ParallelDegree, m.NumCells)
	p.Faces = utils.NewPartitionMap(p.ParallelDegree, len(m.Faces))
	return
}

// NewFaceIncidence builds the signed cell to face incidence, one row per real
// cell holding +area for faces the cell owns as left and -area as right, in
// the cell's face order
func NewFaceIncidence(m *mesh.Mesh) utils.CSR {
	var (
		cols = make([][]int, m.NumCells)
		vals = make([][]float64, m.NumCells)
	)
	for c := 0; c < m.NumCells; c++ {
		for _, f := range m.Cells[c].Faces {
			face := &m.Faces[f]
			cols[c] = append(cols[c], f)
			if face.Left == c {
				vals[c] = append(vals[c], face.Area)
			} else {
				vals[c] = append(vals[c], -face.Area)
			}
		}
	}
	return utils.NewCSRFromRows(len(m.Faces), cols, vals)
}
