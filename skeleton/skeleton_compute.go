package skeleton

import (
	"math"
	"sort"

	"gostraightskeleton/common"
)

// splitCandidate is a possible split of the wavefront by a vertex. A set
// oppositePoint marks a vertex split.
type splitCandidate struct {
	point            common.Vec2
	distance         float64
	oppositeEdge     edgeID
	oppositePoint    common.Vec2
	hasOppositePoint bool
}

func (b *Builder) pushEvent(ev *skeletonEvent) {
	switch ev.kind {
	case edgeEventKind:
		b.stats.EdgeEvents++
	case splitEventKind:
		b.stats.SplitEvents++
	case vertexSplitEventKind:
		b.stats.VertexSplitEvents++
	}
	b.queue.push(ev)
}

func (b *Builder) computeEvents(v vertexID) {
	distanceSquared := b.computeCloserEdgeEvent(v)
	b.computeSplitEvents(v, distanceSquared)
}

// computeCloserEdgeEvent queues the nearer of the two edge events of v, or
// both when they are equally far. Returns the squared distance from v to the
// queued event, -1 if there is none.
func (b *Builder) computeCloserEdgeEvent(v vertexID) float64 {
	next := b.v(v).next
	previous := b.v(v).previous
	point := b.v(v).point

	point1, ok1 := b.computeIntersectionBisectors(v, next)
	point2, ok2 := b.computeIntersectionBisectors(previous, v)
	if !ok1 && !ok2 {
		return -1
	}

	distance1 := math.MaxFloat64
	distance2 := math.MaxFloat64
	if ok1 {
		distance1 = common.DistanceSquared(point, point1)
	}
	if ok2 {
		distance2 = common.DistanceSquared(point, point2)
	}

	eps := b.cfg.SplitEpsilon
	if ok1 && distance1-eps < distance2 {
		b.pushEvent(b.createEdgeEvent(point1, v, next))
	}
	if ok2 && distance2-eps < distance1 {
		b.pushEvent(b.createEdgeEvent(point2, previous, v))
	}
	return math.Min(distance1, distance2)
}

func (b *Builder) createEdgeEvent(point common.Vec2, previous, next vertexID) *skeletonEvent {
	return newEdgeEvent(point, b.calcDistance(point, b.v(previous).nextEdge), previous, next)
}

func (b *Builder) computeEdgeEvents(previous, next vertexID) {
	if point, ok := b.computeIntersectionBisectors(previous, next); ok {
		b.pushEvent(b.createEdgeEvent(point, previous, next))
	}
}

// computeIntersectionBisectors intersects the bisectors of two vertices.
// Hits on either vertex itself are ignored.
func (b *Builder) computeIntersectionBisectors(previous, next vertexID) (common.Vec2, bool) {
	vp, vn := b.v(previous), b.v(next)
	res := common.IntersectRays2D(vp.bisector, vn.bisector)
	if res.Empty() {
		return common.Vec2{}, false
	}
	if vp.point == res.Intersect || vn.point == res.Intersect {
		return common.Vec2{}, false
	}
	return res.Intersect, true
}

// computeSplitEvents queues split and vertex split events of v. Candidates
// farther from v than distanceSquared are skipped unless it is -1.
func (b *Builder) computeSplitEvents(v vertexID, distanceSquared float64) {
	eps := b.cfg.SplitEpsilon
	source := b.v(v).point
	for _, candidate := range b.calcOppositeEdges(v) {
		if math.Abs(distanceSquared-(-1)) > eps {
			// the split is farther from its source than the edge event,
			// two events at the same offset can still be far apart
			if common.DistanceSquared(source, candidate.point) > distanceSquared+eps {
				continue
			}
		}
		if candidate.hasOppositePoint {
			// several vertex events can share the same opposite point
			b.pushEvent(newVertexSplitEvent(candidate.point, candidate.distance, v))
			continue
		}
		b.pushEvent(newSplitEvent(candidate.point, candidate.distance, v, candidate.oppositeEdge))
	}
}

func (b *Builder) calcOppositeEdges(v vertexID) []splitCandidate {
	var ret []splitCandidate
	bisector := b.v(v).bisector
	for id := range b.edges {
		e := edgeID(id)
		if b.edgeBehindBisector(bisector, b.e(e).line) {
			continue
		}
		if candidate, ok := b.calcCandidatePointForSplit(v, e); ok {
			ret = append(ret, candidate)
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].distance < ret[j].distance
	})
	return ret
}

// edgeBehindBisector rejects edge lines that the bisector ray can't reach.
func (b *Builder) edgeBehindBisector(bisector common.LineParametric2d, line common.LineLinear2d) bool {
	_, ok := common.CollideRayLine(bisector, line, b.cfg.SplitEpsilon)
	return !ok
}

func (b *Builder) calcCandidatePointForSplit(v vertexID, e edgeID) (splitCandidate, bool) {
	eps := b.cfg.SplitEpsilon
	vertexEdge, ok := b.choseLessParallelVertexEdge(v, e)
	if !ok {
		return splitCandidate{}, false
	}

	ed := b.e(e)
	ve := b.e(vertexEdge)
	edgesBisector := common.BisectorNormalized(ve.norm, ed.norm)
	edgesCollide, ok := ve.line.Collide(ed.line)
	if !ok {
		// excluded by choseLessParallelVertexEdge
		topologyFailure("calcCandidatePointForSplit", "edges %d and %d are parallel", vertexEdge, e)
	}

	// candidate point is where the bisector of v meets the axis of the angle
	// between the chosen vertex edge and the tested edge
	edgesBisectorLine := common.LineParametric2d{A: edgesCollide, U: edgesBisector}.CreateLinearForm()
	candidate, ok := common.CollideRayLine(b.v(v).bisector, edgesBisectorLine, eps)
	if !ok {
		return splitCandidate{}, false
	}

	if !ed.bisectorPrevious.IsOnRightSite(candidate, eps) || !ed.bisectorNext.IsOnLeftSite(candidate, eps) {
		return splitCandidate{}, false
	}

	distance := b.calcDistance(candidate, e)
	if ed.bisectorPrevious.IsOnLeftSite(candidate, eps) || ed.bisectorNext.IsOnRightSite(candidate, eps) {
		return splitCandidate{
			point:            candidate,
			distance:         distance,
			oppositeEdge:     nilEdge,
			oppositePoint:    ed.begin,
			hasOppositePoint: true,
		}, true
	}
	return splitCandidate{point: candidate, distance: distance, oppositeEdge: e}, true
}

// choseLessParallelVertexEdge picks the edge of v less parallel to e. Fails
// when both are parallel to e.
func (b *Builder) choseLessParallelVertexEdge(v vertexID, e edgeID) (edgeID, bool) {
	edgeA := b.v(v).previousEdge
	edgeB := b.v(v).nextEdge
	norm := b.e(e).norm

	edgeADot := math.Abs(norm.Dot(b.e(edgeA).norm))
	edgeBDot := math.Abs(norm.Dot(b.e(edgeB).norm))
	if edgeADot+edgeBDot >= 2-b.cfg.SplitEpsilon {
		return nilEdge, false
	}
	if edgeADot > edgeBDot {
		return edgeB, true
	}
	return edgeA, true
}
