package types

import (
	"fmt"
	"sort"
)

/*
FaceKey stores a face's vertices in ascending order, padded with -1, so that
the same face seen from either neighboring cell hashes to the same key.
Faces have between three and four vertices.
*/
type FaceKey [4]int

func NewFaceKey(verts []int) (key FaceKey) {
	if len(verts) < 3 || len(verts) > 4 {
		panic(fmt.Errorf("faces must have 3 or 4 vertices, have %d", len(verts)))
	}
	sorted := make([]int, len(verts))
	copy(sorted, verts)
	sort.Ints(sorted)
	key = FaceKey{-1, -1, -1, -1}
	for i, v := range sorted {
		if v < 0 {
			panic(fmt.Errorf("negative vertex index %d in face", v))
		}
		key[i] = v
	}
	return
}

func (fk FaceKey) GetVertices() (verts []int) {
	for _, v := range fk {
		if v >= 0 {
			verts = append(verts, v)
		}
	}
	return
}
