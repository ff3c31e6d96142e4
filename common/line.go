package common

import "math"

// LineLinear2d is a line in general form: A*x + B*y + C = 0.
type LineLinear2d struct {
	A, B, C float64
}

// NewLineLinear2d builds the line passing through p1 and p2.
func NewLineLinear2d(p1, p2 Vec2) LineLinear2d {
	return LineLinear2d{
		A: p1[1] - p2[1],
		B: p2[0] - p1[0],
		C: p1[0]*p2[1] - p2[0]*p1[1],
	}
}

// Collide returns the intersection point of two lines, false for parallel lines.
func (l LineLinear2d) Collide(other LineLinear2d) (Vec2, bool) {
	wab := l.A*other.B - other.A*l.B
	if wab == 0 {
		return Vec2{}, false
	}
	wbc := l.B*other.C - other.B*l.C
	wca := l.C*other.A - other.C*l.A
	return Vec2{wbc / wab, wca / wab}, true
}

func (l LineLinear2d) Contains(p Vec2) bool {
	return math.Abs(p[0]*l.A+p[1]*l.B+l.C) < DblEpsilon
}

// LineParametric2d is a ray starting at A with direction U.
type LineParametric2d struct {
	A Vec2
	U Vec2
}

func (l LineParametric2d) CreateLinearForm() LineLinear2d {
	a := l.U[1]
	b := -l.U[0]
	return LineLinear2d{A: a, B: b, C: -(a*l.A[0] + b*l.A[1])}
}

// CollideRayLine intersects the ray with a line. Points lying behind the ray
// origin (or closer than epsilon along the direction) are rejected.
func CollideRayLine(ray LineParametric2d, line LineLinear2d, epsilon float64) (Vec2, bool) {
	collide, ok := ray.CreateLinearForm().Collide(line)
	if !ok {
		return Vec2{}, false
	}
	if ray.U.Dot(collide.Sub(ray.A)) < epsilon {
		return Vec2{}, false
	}
	return collide, true
}

func (l LineParametric2d) IsOnLeftSite(p Vec2, epsilon float64) bool {
	return OrthogonalRight(l.U).Dot(p.Sub(l.A)) < epsilon
}

func (l LineParametric2d) IsOnRightSite(p Vec2, epsilon float64) bool {
	return OrthogonalRight(l.U).Dot(p.Sub(l.A)) > -epsilon
}
