// Package geom provides the 2D vector math used by the contact detector.
// All functions are pure; operations that are undefined for degenerate
// input report it with an ok result instead of returning garbage.
package geom

import (
	"math"

	"github.com/ayusman/mindfultouch/internal/landmark"
)

// Epsilon is the squared-length floor below which a vector is treated as
// zero for angle and orientation purposes.
const Epsilon = 1e-9

// Distance returns the Euclidean distance between p and q.
func Distance(p, q landmark.Point2) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns the vector p - q.
func Sub(p, q landmark.Point2) landmark.Point2 {
	return landmark.Point2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of v1 and v2.
func Dot(v1, v2 landmark.Point2) float64 {
	return v1.X*v2.X + v1.Y*v2.Y
}

// CrossZ returns the z component of the 3D cross product of v1 and v2,
// i.e. the signed area spanned by the two vectors. The sign encodes
// winding: positive when v2 lies counterclockwise of v1 in image
// coordinates.
func CrossZ(v1, v2 landmark.Point2) float64 {
	return v1.X*v2.Y - v1.Y*v2.X
}

// Norm returns the length of v.
func Norm(v landmark.Point2) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// AngleDegrees returns the unsigned angle between v1 and v2 in degrees,
// in [0, 180]. ok is false when either vector is near zero length, in
// which case the angle is undefined and callers must not use it.
func AngleDegrees(v1, v2 landmark.Point2) (deg float64, ok bool) {
	n1 := v1.X*v1.X + v1.Y*v1.Y
	n2 := v2.X*v2.X + v2.Y*v2.Y
	if n1 < Epsilon || n2 < Epsilon {
		return 0, false
	}
	cos := Dot(v1, v2) / math.Sqrt(n1*n2)
	// Clamp against floating error before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi, true
}

// Centroid returns the mean of the given points. The zero point is
// returned for an empty slice.
func Centroid(points []landmark.Point2) landmark.Point2 {
	if len(points) == 0 {
		return landmark.Point2{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return landmark.Point2{X: sx / n, Y: sy / n}
}
