package common

import "math"

// DblEpsilon is the difference between 1 and the next float64.
const DblEpsilon = 2.220446049250313e-16

func Clamp[T IT](v, mn, mx T) T {
	if v < mn {
		return mn
	}
	if v > mx {
		return mx
	}
	return v
}

// /  Derives the distance between two points.
// /  @param[in]		a	A point.
// /  @param[in]		b	A point.
// / @return The distance between the two points.
func Distance(a, b Vec2) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// /  Derives the square of the distance between two points.
func DistanceSquared(a, b Vec2) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	return dx*dx + dy*dy
}

// / Performs a vector subtraction: end - begin.
func FromTo(begin, end Vec2) Vec2 {
	return Vec2{end[0] - begin[0], end[1] - begin[1]}
}

// / Rotates the vector 90 degrees counter-clockwise.
func OrthogonalLeft(v Vec2) Vec2 {
	return Vec2{-v[1], v[0]}
}

// / Rotates the vector 90 degrees clockwise.
func OrthogonalRight(v Vec2) Vec2 {
	return Vec2{v[1], -v[0]}
}

// Perp dot product.
func Perp(u, v Vec2) float64 {
	return u[0]*v[1] - u[1]*v[0]
}

// OrthogonalProjection projects vectorToProject onto the direction of unitVector.
// unitVector does not have to be normalized.
func OrthogonalProjection(unitVector, vectorToProject Vec2) Vec2 {
	n := unitVector.Normalize()
	px, py := vectorToProject[0], vectorToProject[1]
	ax, ay := n[0], n[1]
	return Vec2{px*ax*ax + py*ax*ay, px*ax*ay + py*ay*ay}
}

// IsFinite reports whether both coordinates are finite numbers.
func IsFinite(v Vec2) bool {
	return !math.IsNaN(v[0]) && !math.IsNaN(v[1]) && !math.IsInf(v[0], 0) && !math.IsInf(v[1], 0)
}
