package common

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func assertTrue(t *testing.T, value bool, msg string) {
	t.Helper()
	if !value {
		t.Error(msg)
	}
}

func nearVec(a, b Vec2) bool {
	return Distance(a, b) < 1e-9
}

func TestClamp(t *testing.T) {
	assertTrue(t, Clamp(2, 0, 1) == 1, "Higher than range error")
	assertTrue(t, Clamp(1, 0, 2) == 1, "Within range error")
	assertTrue(t, Clamp(0, 1, 2) == 1, "Lower than range error")
}

func TestPrevNext(t *testing.T) {
	assertTrue(t, Next(2, 3) == 0, "Next wraps")
	assertTrue(t, Next(0, 3) == 1, "Next increments")
	assertTrue(t, Prev(0, 3) == 2, "Prev wraps")
	assertTrue(t, Prev(2, 3) == 1, "Prev decrements")
}

func TestOrthogonal(t *testing.T) {
	v := Vec2{1, 2}
	assertTrue(t, OrthogonalLeft(v) == Vec2{-2, 1}, "left rotation")
	assertTrue(t, OrthogonalRight(v) == Vec2{2, -1}, "right rotation")
	assertTrue(t, FromTo(Vec2{1, 1}, Vec2{3, 4}) == Vec2{2, 3}, "FromTo is end - begin")
	assertTrue(t, Perp(Vec2{1, 0}, Vec2{0, 1}) == 1, "perp of axes")
	assertTrue(t, nearVec(OrthogonalProjection(Vec2{2, 0}, Vec2{3, 4}), Vec2{3, 0}), "projection on x axis")
	assertTrue(t, DistanceSquared(Vec2{0, 0}, Vec2{3, 4}) == 25, "squared distance")
	assertTrue(t, Distance(Vec2{0, 0}, Vec2{3, 4}) == 5, "distance")
}

func TestIsFinite(t *testing.T) {
	assertTrue(t, IsFinite(Vec2{1, -1}), "regular point")
	assertTrue(t, !IsFinite(Vec2{math.NaN(), 0}), "NaN")
	assertTrue(t, !IsFinite(Vec2{0, math.Inf(-1)}), "Inf")
}

func TestLineLinearCollide(t *testing.T) {
	l1 := NewLineLinear2d(Vec2{0, 0}, Vec2{1, 1})
	l2 := NewLineLinear2d(Vec2{0, 1}, Vec2{1, 0})
	p, ok := l1.Collide(l2)
	assertTrue(t, ok, "diagonals collide")
	assertTrue(t, nearVec(p, Vec2{0.5, 0.5}), "diagonals collide in the middle")
	assertTrue(t, l1.Contains(Vec2{2, 2}), "line contains point on it")
	assertTrue(t, !l1.Contains(Vec2{2, 3}), "line doesn't contain point off it")

	_, ok = l1.Collide(NewLineLinear2d(Vec2{0, 1}, Vec2{1, 2}))
	assertTrue(t, !ok, "parallel lines don't collide")
}

func TestCollideRayLine(t *testing.T) {
	line := NewLineLinear2d(Vec2{2, -1}, Vec2{2, 1})
	p, ok := CollideRayLine(LineParametric2d{A: Vec2{0, 0}, U: Vec2{1, 0}}, line, 1e-6)
	assertTrue(t, ok, "ray reaches the line")
	assertTrue(t, nearVec(p, Vec2{2, 0}), "ray hits line at x=2")

	_, ok = CollideRayLine(LineParametric2d{A: Vec2{0, 0}, U: Vec2{-1, 0}}, line, 1e-6)
	assertTrue(t, !ok, "line behind the ray")

	_, ok = CollideRayLine(LineParametric2d{A: Vec2{0, 0}, U: Vec2{0, 1}}, line, 1e-6)
	assertTrue(t, !ok, "parallel ray")
}

func TestSites(t *testing.T) {
	ray := LineParametric2d{A: Vec2{0, 0}, U: Vec2{1, 0}}
	assertTrue(t, ray.IsOnLeftSite(Vec2{0, 1}, 1e-6), "point above is left")
	assertTrue(t, !ray.IsOnRightSite(Vec2{0, 1}, 1e-6), "point above is not right")
	assertTrue(t, ray.IsOnRightSite(Vec2{0, -1}, 1e-6), "point below is right")
	assertTrue(t, ray.IsOnLeftSite(Vec2{5, 0}, 1e-6) && ray.IsOnRightSite(Vec2{5, 0}, 1e-6), "point on the ray is on both sites")
}

func TestBisectorNormalized(t *testing.T) {
	// corners of a counter clockwise unit square
	b := BisectorNormalized(Vec2{1, 0}, Vec2{0, 1})
	assertTrue(t, nearVec(b.Normalize(), Vec2{-1, 1}.Normalize()), "bisector of right angle points inside")

	// collinear edges move straight inward
	b = BisectorNormalized(Vec2{1, 0}, Vec2{1, 0})
	assertTrue(t, nearVec(b.Normalize(), Vec2{0, 1}), "bisector of straight angle")

	// reflex corner
	b = BisectorNormalized(Vec2{1, 0}, Vec2{0, -1})
	assertTrue(t, nearVec(b.Normalize(), Vec2{1, 1}.Normalize()), "bisector of reflex angle")
}

func TestIntersectRays2D(t *testing.T) {
	r1 := LineParametric2d{A: Vec2{0, 0}, U: Vec2{1, 1}}
	r2 := LineParametric2d{A: Vec2{2, 0}, U: Vec2{-1, 1}}
	res := IntersectRays2D(r1, r2)
	assertTrue(t, res.Count == 1, "skew rays intersect once")
	assertTrue(t, nearVec(res.Intersect, Vec2{1, 1}), "skew rays intersection")

	res = IntersectRays2D(r1, LineParametric2d{A: Vec2{2, 0}, U: Vec2{1, -1}})
	assertTrue(t, res.Empty(), "rays diverging")

	res = IntersectRays2D(LineParametric2d{A: Vec2{0, 0}, U: Vec2{1, 0}}, LineParametric2d{A: Vec2{0, 1}, U: Vec2{1, 0}})
	assertTrue(t, res.Empty(), "parallel rays")

	res = IntersectRays2D(LineParametric2d{A: Vec2{0, 0}, U: Vec2{1, 0}}, LineParametric2d{A: Vec2{2, 0}, U: Vec2{-1, 0}})
	assertTrue(t, res.Count == 2, "opposite collinear rays overlap")
	assertTrue(t, nearVec(res.Intersect, Vec2{1, 0}), "overlap start")
	assertTrue(t, nearVec(res.IntersectEnd, Vec2{0, 0}), "overlap end")

	res = IntersectRays2D(LineParametric2d{A: Vec2{1, 1}}, LineParametric2d{A: Vec2{1, 1}})
	assertTrue(t, res.Count == 1 && res.Intersect == Vec2{1, 1}, "equal degenerate rays")
}

func TestInCollinearRay(t *testing.T) {
	assertTrue(t, InCollinearRay(Vec2{3, 0}, Vec2{0, 0}, Vec2{1, 0}), "collinear ahead")
	assertTrue(t, !InCollinearRay(Vec2{-3, 0}, Vec2{0, 0}, Vec2{1, 0}), "collinear behind")
}

func TestRingUtils(t *testing.T) {
	square := []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	assertTrue(t, Area(square) == 1, "counter clockwise area is positive")
	assertTrue(t, !IsClockwisePolygon(square), "square is counter clockwise")

	cw := MakeClockwise(CopyRing(square))
	assertTrue(t, Area(cw) == -1, "clockwise area is negative")
	assertTrue(t, cw[0] == Vec2{0, 1}, "reversed in place")
	assertTrue(t, MakeClockwise(CopyRing(cw))[0] == cw[0], "MakeClockwise is idempotent")

	ccw := MakeCounterClockwise(cw)
	assertTrue(t, !IsClockwisePolygon(ccw), "back to counter clockwise")

	assertTrue(t, IsPointInsidePolygon(Vec2{0.5, 0.5}, square), "center is inside")
	assertTrue(t, !IsPointInsidePolygon(Vec2{2, 0.5}, square), "point right is outside")
	assertTrue(t, !IsPointInsidePolygon(Vec2{0.5, 0.5}, square[:2]), "degenerate ring")

	bmin, bmax := Bounds([]Vec2{{1, 5}, {-2, 3}, {4, -1}})
	assertTrue(t, bmin == Vec2{-2, -1} && bmax == Vec2{4, 5}, "bounds")
}

func TestFlatten(t *testing.T) {
	ring := []Vec2{{1, 2}, {3, 4}}
	flat := FlattenVec2(ring)
	assertTrue(t, len(flat) == 4 && flat[2] == 3, "flatten order")
	back := UnflattenVec2(append(flat, 9))
	assertTrue(t, len(back) == 2 && back[1] == ring[1], "unflatten ignores trailing value")

	rings := CopyRings([][]Vec2{ring})
	rings[0][0] = Vec2{}
	assertTrue(t, ring[0] == Vec2{1, 2}, "copies are independent")
}

func TestLogger(t *testing.T) {
	assertTrue(t, Logger() != nil, "default logger is set")

	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Logger().Info("ring", ZapRing("polygon", []Vec2{{1, 2}}))
	assertTrue(t, logs.Len() == 1, "message is observed")
	assertTrue(t, logs.All()[0].ContextMap()["polygon"] != nil, "ring field is logged")

	SetLogger(nil)
	assertTrue(t, Logger() != nil, "nil restores the silent logger")
}
