package skeleton

import (
	"bytes"
	"errors"
	"math"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gostraightskeleton/common"
)

const testEpsilon = 5e-6

var (
	quadOuter = []common.Vec2{
		{0, 0},
		{7.087653026630875, -0.0572739636795121},
		{7.035244566479503, -6.5428208800475005},
		{-0.052408459722688594, -6.485546915224834},
	}
	quadHole = []common.Vec2{
		{1.4849939588531493, -1.5250224044562133},
		{1.4341762422598874, -5.1814705083480606},
		{5.747532319228888, -5.241418004618678},
		{5.798350035536362, -1.5849699030131408},
	}
	quadExpected = []common.Vec2{
		{6.3821371859978875, -5.893911100019249},
		{0.7651208111455217, -5.8321836510415475},
		{0.6898242249025952, -5.755213752675646},
		{6.389576876981116, -5.886633146615758},
		{6.443747494495353, -0.9572661447277495},
		{6.310953658294117, -0.8215212379272131},
		{0.7481994722534444, -0.7603900949775717},
		{0.7446762937827887, -0.7638366801629576},
	}

	rectangle = []common.Vec2{{0, 0}, {4, 0}, {4, 2}, {0, 2}}
	square    = []common.Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	triangle  = []common.Vec2{{0, 0}, {4, 0}, {0, 3}}
	pentagon  = []common.Vec2{{0, 0}, {5, -1}, {7, 3}, {3, 6}, {-1, 4}}
	notched   = []common.Vec2{{0, 0}, {6, 0}, {6, 4}, {3, 1.5}, {0, 4}}
	lShape    = []common.Vec2{{0, 0}, {5, 0}, {5, 2}, {2, 2}, {2, 6}, {0, 6}}
)

func containsPoint(points []common.Vec2, p common.Vec2, eps float64) bool {
	for _, q := range points {
		if common.Distance(p, q) < eps {
			return true
		}
	}
	return false
}

// samePoints compares two point sets within eps in both directions.
func samePoints(t *testing.T, expected, actual []common.Vec2, eps float64) {
	t.Helper()
	for _, p := range expected {
		if !containsPoint(actual, p, eps) {
			t.Errorf("expected point %v is missing", p)
		}
	}
	for _, p := range actual {
		if !containsPoint(expected, p, eps) {
			t.Errorf("unexpected point %v", p)
		}
	}
}

func facesArea(sk *Skeleton) float64 {
	ret := 0.0
	for _, e := range sk.Edges {
		ret += math.Abs(common.Area(e.Polygon))
	}
	return ret
}

func mustBuild(t *testing.T, polygon []common.Vec2, holes ...[]common.Vec2) *Skeleton {
	t.Helper()
	sk, err := BuildWithHoles(polygon, holes)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return sk
}

func TestQuadWithHole(t *testing.T) {
	sk := mustBuild(t, quadOuter, quadHole)

	expected := append(common.CopyRing(quadExpected), quadOuter...)
	expected = append(expected, quadHole...)
	samePoints(t, expected, sk.Points(), testEpsilon)

	assertTrue(t, len(sk.Edges) == 8, "one face per input edge")
	for _, p := range quadOuter {
		h, ok := sk.Height(p)
		assertTrue(t, ok && h == 0, "input points are at height 0")
	}
}

func TestSquareApex(t *testing.T) {
	b := NewBuilder(nil)
	sk, err := b.Build(square, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, len(sk.Edges) == 4, "one face per edge")
	samePoints(t, append(common.CopyRing(square), common.Vec2{1, 1}), sk.Points(), testEpsilon)
	assertTrue(t, math.Abs(sk.MaxHeight()-1) < testEpsilon, "apex at half side")
	for _, e := range sk.Edges {
		assertTrue(t, len(e.Polygon) == 3, "square faces are triangles")
		assertTrue(t, math.Abs(math.Abs(common.Area(e.Polygon))-1) < testEpsilon, "faces are congruent")
	}

	stats := b.Stats()
	assertTrue(t, stats.PickEvents == 1, "square collapses in one pick")
	assertTrue(t, stats.MultiEdgeEvents == 0 && stats.MultiSplitEvents == 0, "no other level events")
	assertTrue(t, stats.Levels == 1, "one level")
	assertTrue(t, stats.EdgeEvents >= 4, "every corner queues an edge event")
	assertTrue(t, stats.EdgeEvents > stats.PickEvents, "queued events outnumber processed levels")
	assertTrue(t, stats.SplitEvents == 0 && stats.VertexSplitEvents == 0, "convex polygon queues no splits")
}

func TestTrianglePick(t *testing.T) {
	b := NewBuilder(nil)
	sk, err := b.Build(triangle, nil)
	if err != nil {
		t.Fatal(err)
	}
	assertTrue(t, b.Stats().PickEvents == 1, "triangle collapses in a pick")
	assertTrue(t, b.Stats().MultiEdgeEvents == 0, "no multi edge events")
	assertTrue(t, len(sk.Points()) == 4, "three corners and the incenter")
	// incenter of the 3-4-5 triangle
	assertTrue(t, containsPoint(sk.Points(), common.Vec2{1, 1}, testEpsilon), "apex at the incenter")
	assertTrue(t, math.Abs(sk.MaxHeight()-1) < testEpsilon, "inradius is 1")
}

func TestRectangleRidge(t *testing.T) {
	b := NewBuilder(nil)
	sk, err := b.Build(rectangle, nil)
	if err != nil {
		t.Fatal(err)
	}
	stats := b.Stats()
	assertTrue(t, stats.MultiEdgeEvents == 2, "ridge ends are multi edge events")
	assertTrue(t, stats.PickEvents == 0, "ridge is closed by the two vertex lav")
	assertTrue(t, len(sk.Edges) == 4, "one face per edge")
	samePoints(t, append(common.CopyRing(rectangle), common.Vec2{1, 1}, common.Vec2{3, 1}), sk.Points(), testEpsilon)

	triangles, trapezoids := 0, 0
	for _, e := range sk.Edges {
		switch len(e.Polygon) {
		case 3:
			triangles++
		case 4:
			trapezoids++
		}
	}
	assertTrue(t, triangles == 2 && trapezoids == 2, "short edges give triangles, long edges trapezoids")
}

func TestFacesMatchEdges(t *testing.T) {
	for name, ring := range map[string][]common.Vec2{
		"square":   square,
		"triangle": triangle,
		"pentagon": pentagon,
		"notched":  notched,
		"lShape":   lShape,
	} {
		t.Run(name, func(t *testing.T) {
			sk := mustBuild(t, ring)
			assertTrue(t, len(sk.Edges) == len(ring), "one face per edge")
			for _, e := range sk.Edges {
				assertTrue(t, slices.Contains(e.Polygon, e.Edge.Begin) && slices.Contains(e.Polygon, e.Edge.End), "face contains its edge")
			}
		})
	}
}

func TestAreaConservation(t *testing.T) {
	cases := []struct {
		name  string
		outer []common.Vec2
		holes [][]common.Vec2
	}{
		{"rectangle", rectangle, nil},
		{"pentagon", pentagon, nil},
		{"notched", notched, nil},
		{"lShape", lShape, nil},
		{"quadWithHole", quadOuter, [][]common.Vec2{quadHole}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sk := mustBuild(t, c.outer, c.holes...)
			expected := math.Abs(common.Area(c.outer))
			for _, h := range c.holes {
				expected -= math.Abs(common.Area(h))
			}
			actual := facesArea(sk)
			assertTrue(t, math.Abs(actual-expected) < 1e-6*expected, "faces cover the polygon")
		})
	}
}

func TestWindingNormalisation(t *testing.T) {
	reversedOuter := common.CopyRing(quadOuter)
	slices.Reverse(reversedOuter)
	reversedHole := common.CopyRing(quadHole)
	slices.Reverse(reversedHole)
	before := common.CopyRing(reversedOuter)

	sk1 := mustBuild(t, quadOuter, quadHole)
	sk2 := mustBuild(t, reversedOuter, reversedHole)
	samePoints(t, sk1.Points(), sk2.Points(), testEpsilon)
	assertTrue(t, len(sk1.Edges) == len(sk2.Edges), "same number of faces")

	for i := range before {
		assertTrue(t, before[i] == reversedOuter[i], "input ring is not modified")
	}
}

func TestDeterminism(t *testing.T) {
	b := NewBuilder(nil)
	sk1, err := b.Build(notched, nil)
	if err != nil {
		t.Fatal(err)
	}
	// the same builder is reused
	sk2, err := b.Build(notched, nil)
	if err != nil {
		t.Fatal(err)
	}
	sk3 := mustBuild(t, notched)
	assertTrue(t, bytes.Equal(sk1.ToBin(), sk2.ToBin()), "reused builder gives the same result")
	assertTrue(t, bytes.Equal(sk1.ToBin(), sk3.ToBin()), "fresh builder gives the same result")
}

func TestInvalidPolygon(t *testing.T) {
	cases := map[string]struct {
		outer []common.Vec2
		holes [][]common.Vec2
	}{
		"empty":       {nil, nil},
		"twoPoints":   {[]common.Vec2{{0, 0}, {1, 0}}, nil},
		"closed":      {[]common.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, nil},
		"zeroEdge":    {[]common.Vec2{{0, 0}, {1, 0}, {1, 0}, {1, 1}}, nil},
		"notFinite":   {[]common.Vec2{{0, 0}, {1, math.NaN()}, {1, 1}}, nil},
		"invalidHole": {square, [][]common.Vec2{{{0.5, 0.5}, {1, 0.5}}}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			sk, err := BuildWithHoles(c.outer, c.holes)
			assertTrue(t, sk == nil, "no partial result")
			assertTrue(t, errors.Is(err, ErrInvalidPolygon), "invalid polygon error")
			var be *BuildError
			assertTrue(t, errors.As(err, &be) && be.Op != "", "error names the operation")
		})
	}
}

func TestInvalidConfig(t *testing.T) {
	_, err := Build(square, WithSplitEpsilon(0))
	assertTrue(t, err != nil, "zero epsilon is rejected")
	_, err = Build(square, WithMaxIterations(-1))
	assertTrue(t, err != nil, "negative iterations are rejected")
	_, err = Build(square, WithAntiParallelThreshold(0.5))
	assertTrue(t, err != nil, "positive threshold is rejected")

	var be *BuildError
	assertTrue(t, !errors.As(err, &be), "config errors are not build errors")
	assertTrue(t, DefaultConfig().Validate() == nil, "defaults are valid")
	assertTrue(t, NewBuilder(nil).Config() == DefaultConfig(), "nil config uses defaults")
}

func TestTooManyIterations(t *testing.T) {
	// the rectangle leaves obsolete events for a second level
	_, err := Build(rectangle, WithMaxIterations(1))
	assertTrue(t, errors.Is(err, ErrTooManyIterations), "iteration guard")
}

func TestBuildLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	common.SetLogger(zap.New(core))
	defer common.SetLogger(nil)

	mustBuild(t, square)
	assertTrue(t, logs.FilterMessage("skeleton built").Len() == 1, "success is logged")

	_, err := BuildWithHoles([]common.Vec2{{0, 0}, {1, 0}}, [][]common.Vec2{square})
	assertTrue(t, err != nil, "build fails")
	failed := logs.FilterMessage("skeleton build failed").All()
	assertTrue(t, len(failed) == 1, "failure is logged once")
	if len(failed) == 1 {
		assertTrue(t, failed[0].Level == zapcore.ErrorLevel, "failure is an error")
		fields := failed[0].ContextMap()
		assertTrue(t, fields["polygon"] != nil, "outer ring is logged")
		assertTrue(t, fields["hole_0"] != nil, "holes are logged")
		assertTrue(t, fields["holes"] == int64(1), "hole count is logged")
	}
}
