package common

import "slices"

// Last time I checked the if version got compiled using cmov, which was a lot faster than module (with idiv).
func Prev[T IT](i, n T) T {
	if i-1 >= 0 {
		return i - 1
	}
	return n - 1
}
func Next[T IT](i, n T) T {
	if i+1 < n {
		return i + 1
	}
	return 0
}

// Area returns the signed area of the ring. Clockwise rings are negative.
func Area(ring []Vec2) float64 {
	n := len(ring)
	a := 0.0
	for p, q := n-1, 0; q < n; p, q = q, q+1 {
		a += ring[p][0]*ring[q][1] - ring[q][0]*ring[p][1]
	}
	return a * 0.5
}

func IsClockwisePolygon(ring []Vec2) bool {
	return Area(ring) < 0
}

// MakeCounterClockwise reverses the ring in place when it is clockwise.
func MakeCounterClockwise(ring []Vec2) []Vec2 {
	if IsClockwisePolygon(ring) {
		slices.Reverse(ring)
	}
	return ring
}

// MakeClockwise reverses the ring in place when it is counter-clockwise.
func MakeClockwise(ring []Vec2) []Vec2 {
	if !IsClockwisePolygon(ring) {
		slices.Reverse(ring)
	}
	return ring
}

// IsPointInsidePolygon uses the even-odd rule.
// see http://paulbourke.net/geometry/insidepoly/
func IsPointInsidePolygon(point Vec2, ring []Vec2) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	x, y := point[0], point[1]
	odd := false
	for i := 0; i < n; i++ {
		n1 := ring[i]
		n2 := ring[Next(i, n)]
		if n1[1] < y && n2[1] >= y || n2[1] < y && n1[1] >= y {
			if n1[0]+(y-n1[1])/(n2[1]-n1[1])*(n2[0]-n1[0]) < x {
				odd = !odd
			}
		}
	}
	return odd
}

// Bounds returns the axis aligned box of the points.
func Bounds(points []Vec2) (bmin, bmax Vec2) {
	if len(points) == 0 {
		return
	}
	bmin, bmax = points[0], points[0]
	for _, p := range points[1:] {
		bmin = Vec2{min(bmin[0], p[0]), min(bmin[1], p[1])}
		bmax = Vec2{max(bmax[0], p[0]), max(bmax[1], p[1])}
	}
	return
}
