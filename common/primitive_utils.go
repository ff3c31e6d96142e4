package common

import "math"

// SmallNum guards the parallel test in IntersectRays2D.
const SmallNum = 1e-8

// IntersectPoints holds up to two intersection points. Overlapping collinear
// rays produce a segment, reported as Intersect..IntersectEnd.
type IntersectPoints struct {
	Intersect    Vec2
	IntersectEnd Vec2
	Count        int
}

func (p IntersectPoints) Empty() bool { return p.Count == 0 }

// BisectorNormalized returns the direction a vertex travels when the two
// adjacent edges, given by their unit directions, move inward. The result is
// not normalized.
func BisectorNormalized(norm1, norm2 Vec2) Vec2 {
	e1v := OrthogonalLeft(norm1)
	e2v := OrthogonalLeft(norm2)

	// 90 - 180 || 180 - 270
	if norm1.Dot(norm2) > 0 {
		return e1v.Add(e2v)
	}

	// 0 - 180
	ret := norm2.Sub(norm1)

	// 270 - 360
	if e1v.Dot(norm2) < 0 {
		ret = ret.Mul(-1)
	}
	return ret
}

func InCollinearRay(p, rayStart, rayDirection Vec2) bool {
	return !(rayDirection.Dot(p.Sub(rayStart)) < 0)
}

// IntersectRays2D calculates intersection points for rays. Overlapping
// collinear rays return both ends of the shared part.
// see http://geomalgorithms.com/a05-_intersect-1.html
func IntersectRays2D(r1, r2 LineParametric2d) IntersectPoints {
	s1p0 := r1.A
	s1p1 := r1.A.Add(r1.U)
	s2p0 := r2.A

	u := r1.U
	v := r2.U
	w := s1p0.Sub(s2p0)
	d := Perp(u, v)

	if math.Abs(d) >= SmallNum {
		// skew rays, may intersect in a point
		sI := Perp(v, w) / d
		if sI < 0 {
			return IntersectPoints{}
		}
		tI := Perp(u, w) / d
		if tI < 0 {
			return IntersectPoints{}
		}
		return IntersectPoints{Intersect: s1p0.Add(u.Mul(sI)), Count: 1}
	}

	// parallel, not collinear
	if Perp(u, w) != 0 || Perp(v, w) != 0 {
		return IntersectPoints{}
	}

	du := u.Dot(u)
	dv := v.Dot(v)
	switch {
	case du == 0 && dv == 0:
		if s1p0 != s2p0 {
			return IntersectPoints{}
		}
		return IntersectPoints{Intersect: s1p0, Count: 1}
	case du == 0:
		if !InCollinearRay(s1p0, s2p0, v) {
			return IntersectPoints{}
		}
		return IntersectPoints{Intersect: s1p0, Count: 1}
	case dv == 0:
		if !InCollinearRay(s2p0, s1p0, u) {
			return IntersectPoints{}
		}
		return IntersectPoints{Intersect: s2p0, Count: 1}
	}

	// collinear, endpoints of S1 in eqn for S2
	var t0, t1 float64
	w2 := s1p1.Sub(s2p0)
	if v[0] != 0 {
		t0 = w[0] / v[0]
		t1 = w2[0] / v[0]
	} else {
		t0 = w[1] / v[1]
		t1 = w2[1] / v[1]
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t1 < 0 {
		return IntersectPoints{}
	}
	t0 = math.Max(t0, 0)

	i0 := s2p0.Add(v.Mul(t0))
	if t0 == t1 {
		return IntersectPoints{Intersect: i0, Count: 1}
	}
	return IntersectPoints{Intersect: i0, IntersectEnd: s2p0.Add(v.Mul(t1)), Count: 2}
}
