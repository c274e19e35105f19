package solver

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteSolution writes one row per real cell: centroid, then conservative variables
func (s *Solver) WriteSolution(w io.Writer) (err error) {
	var (
		cw     = csv.NewWriter(w)
		m      = s.Mesh
		header = []string{"x", "y", "z"}
		format = func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	)
	header = append(header, s.Eqn.VariableNames()...)
	if err = cw.Write(header); err != nil {
		return
	}
	for _, cell := range m.RealCells() {
		row := []string{format(cell.Centroid.X), format(cell.Centroid.Y), format(cell.Centroid.Z)}
		for _, v := range cell.U {
			row = append(row, format(v))
		}
		if err = cw.Write(row); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}
