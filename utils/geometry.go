package utils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Component returns the d-th cartesian component of v
func Component(v r3.Vec, d int) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SetComponent returns v with its d-th component replaced by val
func SetComponent(v r3.Vec, d int, val float64) r3.Vec {
	switch d {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}

func Mean(pts []r3.Vec) (c r3.Vec) {
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	if len(pts) != 0 {
		c = r3.Scale(1./float64(len(pts)), c)
	}
	return
}

// PolygonAreaCentroid returns the area-weighted normal vector (|v| = area)
// and the area centroid of a planar or mildly warped polygon whose vertices
// are given in order. The polygon is split into a triangle fan about the
// vertex average.
func PolygonAreaCentroid(pts []r3.Vec) (areaVec, centroid r3.Vec) {
	var (
		xm       = Mean(pts)
		n        = len(pts)
		areaSum  float64
		weighted r3.Vec
	)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		av := r3.Scale(0.5, r3.Cross(r3.Sub(a, xm), r3.Sub(b, xm)))
		areaVec = r3.Add(areaVec, av)
		tc := r3.Scale(1./3., r3.Add(xm, r3.Add(a, b)))
		ar := r3.Norm(av)
		weighted = r3.Add(weighted, r3.Scale(ar, tc))
		areaSum += ar
	}
	if areaSum > 0 {
		centroid = r3.Scale(1./areaSum, weighted)
	} else {
		centroid = xm
	}
	return
}

// MirrorPoint reflects p across the plane through x0 with unit normal n
func MirrorPoint(p, x0, n r3.Vec) r3.Vec {
	d := r3.Dot(r3.Sub(x0, p), n)
	return r3.Add(p, r3.Scale(2*d, n))
}

// TangentBasis completes the unit normal n to a right handed orthonormal
// frame (n, t1, t2)
func TangentBasis(n r3.Vec) (t1, t2 r3.Vec) {
	var (
		ax, ay, az = math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
		ref        r3.Vec
	)
	switch {
	case ax <= ay && ax <= az:
		ref = r3.Vec{X: 1}
	case ay <= az:
		ref = r3.Vec{Y: 1}
	default:
		ref = r3.Vec{Z: 1}
	}
	t1 = r3.Unit(r3.Cross(n, ref))
	t2 = r3.Cross(n, t1)
	return
}
