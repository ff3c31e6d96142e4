package skeleton

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"gostraightskeleton/common"
)

// BuildStats counts what happened during the last build.
type BuildStats struct {
	// Levels is the number of event levels processed.
	Levels int

	// Events queued, including ones later dropped as obsolete.
	EdgeEvents        int
	SplitEvents       int
	VertexSplitEvents int

	// Level events processed.
	MultiEdgeEvents  int
	MultiSplitEvents int
	PickEvents       int
}

// Builder computes straight skeletons. A Builder reuses its buffers between
// runs and must not be used concurrently.
type Builder struct {
	arena
	cfg Config

	queue eventQueue
	// active lavs, in creation order
	sLav []lavID
	// face queues of input edges, in creation order
	faces []faceQueueID

	stats BuildStats
}

func NewBuilder(cfg *Config) *Builder {
	b := &Builder{cfg: DefaultConfig()}
	if cfg != nil {
		b.cfg = *cfg
	}
	return b
}

// Build computes the skeleton of a polygon with the package defaults.
func Build(polygon []common.Vec2, opts ...Option) (*Skeleton, error) {
	return BuildWithHoles(polygon, nil, opts...)
}

func BuildWithHoles(polygon []common.Vec2, holes [][]common.Vec2, opts ...Option) (*Skeleton, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewBuilder(&cfg).Build(polygon, holes)
}

func (b *Builder) Config() Config { return b.cfg }

// Stats returns the counters of the last Build call.
func (b *Builder) Stats() BuildStats { return b.stats }

// Build computes the straight skeleton of the outer ring and its holes.
// Rings are open (the first point is not repeated) and may have any
// orientation. The caller's slices are not modified.
func (b *Builder) Build(polygon []common.Vec2, holes [][]common.Vec2) (sk *Skeleton, err error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	outer := common.CopyRing(polygon)
	inner := common.CopyRings(holes)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		be, ok := r.(*BuildError)
		if !ok {
			panic(r)
		}
		fields := []zap.Field{zap.Error(be), common.ZapRing("polygon", polygon), zap.Int("holes", len(holes))}
		for i, h := range holes {
			fields = append(fields, common.ZapRing("hole_"+strconv.Itoa(i), h))
		}
		common.Logger().Error("skeleton build failed", fields...)
		sk, err = nil, be
	}()

	b.reset()

	b.initPolygon(outer)
	b.makeClockwise(inner)

	b.initSlav(outer)
	for _, hole := range inner {
		b.initSlav(hole)
	}
	b.initEvents()

	count := 0
	for b.queue.Len() > 0 {
		// start processing skeleton level
		count = b.assertMaxNumberOfIteration(count)
		levelHeight := b.queue.top().distance
		for _, ev := range b.loadAndGroupLevelEvents() {
			// event is outdated, some parent vertex was processed before
			if b.isObsolete(ev) {
				continue
			}
			switch ev.kind {
			case edgeEventKind, splitEventKind, vertexSplitEventKind:
				topologyFailure("build", "%v should be converted to level event", ev.kind)
			case multiSplitEventKind:
				b.stats.MultiSplitEvents++
				b.emitMultiSplitEvent(ev)
			case pickEventKind:
				b.stats.PickEvents++
				b.emitPickEvent(ev)
			case multiEdgeEventKind:
				b.stats.MultiEdgeEvents++
				b.emitMultiEdgeEvent(ev)
			default:
				topologyFailure("build", "unknown event kind %d", ev.kind)
			}
		}
		b.processTwoNodeLavs()
		b.removeEventsUnderHeight(levelHeight)
		b.removeEmptyLav()
	}
	b.stats.Levels = count

	sk = b.addFacesToOutput()
	common.Logger().Info("skeleton built",
		zap.Int("rings", 1+len(inner)),
		zap.Int("levels", b.stats.Levels),
		zap.Int("faces", len(sk.Edges)),
		zap.Int("points", len(sk.order)))
	return sk, nil
}

func (b *Builder) reset() {
	b.arena.reset()
	b.queue.reset()
	b.sLav = b.sLav[:0]
	b.faces = b.faces[:0]
	b.stats = BuildStats{}
}

func (b *Builder) assertMaxNumberOfIteration(count int) int {
	count++
	if count > b.cfg.MaxIterations {
		fail(ErrTooManyIterations, "build", "more than %d levels", b.cfg.MaxIterations)
	}
	return count
}

func (b *Builder) validateRing(op string, ring []common.Vec2) {
	if len(ring) == 0 {
		fail(ErrInvalidPolygon, op, "polygon can't be empty")
	}
	if ring[0] == ring[len(ring)-1] {
		fail(ErrInvalidPolygon, op, "polygon can't start and end with the same point")
	}
	if len(ring) < 3 {
		fail(ErrInvalidPolygon, op, "polygon needs at least 3 points, got %d", len(ring))
	}
	for i, p := range ring {
		if !common.IsFinite(p) {
			fail(ErrInvalidPolygon, op, "point %d is not finite", i)
		}
		if p == ring[common.Next(i, len(ring))] {
			fail(ErrInvalidPolygon, op, "zero length edge at point %d", i)
		}
	}
}

func (b *Builder) initPolygon(polygon []common.Vec2) {
	b.validateRing("initPolygon", polygon)
	common.MakeCounterClockwise(polygon)
}

func (b *Builder) makeClockwise(holes [][]common.Vec2) {
	for _, hole := range holes {
		b.validateRing("makeClockwise", hole)
		common.MakeClockwise(hole)
	}
}

func (b *Builder) calcBisector(p common.Vec2, e1, e2 edgeID) common.LineParametric2d {
	return common.LineParametric2d{A: p, U: common.BisectorNormalized(b.e(e1).norm, b.e(e2).norm)}
}

// calcDistance is the perpendicular distance from p to the line of e.
func (b *Builder) calcDistance(p common.Vec2, e edgeID) float64 {
	ed := b.e(e)
	edgeVec := ed.end.Sub(ed.begin)
	vec := p.Sub(ed.begin)
	return common.Distance(vec, common.OrthogonalProjection(edgeVec, vec))
}

// initSlav builds the edge ring, the lav and the two initial face nodes of
// every edge for one polygon ring.
func (b *Builder) initSlav(ring []common.Vec2) {
	size := len(ring)
	first := edgeID(len(b.edges))
	for i := 0; i < size; i++ {
		b.newEdge(ring[i], ring[common.Next(i, size)])
	}
	for i := 0; i < size; i++ {
		cur := first + edgeID(i)
		next := first + edgeID(common.Next(i, size))
		b.e(cur).next = next
		b.e(next).previous = cur

		bisector := b.calcBisector(b.e(cur).end, cur, next)
		b.e(cur).bisectorNext = bisector
		b.e(next).bisectorPrevious = bisector
	}

	l := b.newLav()
	b.sLav = append(b.sLav, l)
	for i := 0; i < size; i++ {
		cur := first + edgeID(i)
		next := first + edgeID(common.Next(i, size))
		v := b.newVertex(b.e(cur).end, 0, b.e(cur).bisectorNext, cur, next)
		b.addLast(l, v)
	}

	for _, cur := range b.lavVertices(l) {
		next := b.v(cur).next

		// face on the right site of vertex
		rightFace := b.newFaceNode(cur)
		q := b.newFaceQueue()
		b.fq(q).edge = b.v(cur).nextEdge
		b.addFirst(q, rightFace)
		b.faces = append(b.faces, q)
		b.v(cur).rightFace = rightFace

		// face on the left site of next vertex
		leftFace := b.newFaceNode(next)
		b.addPush(rightFace, leftFace)
		b.v(next).leftFace = leftFace
	}
}

func (b *Builder) initEvents() {
	for _, l := range b.sLav {
		for _, v := range b.lavVertices(l) {
			b.computeSplitEvents(v, -1)
		}
	}
	for _, l := range b.sLav {
		for _, v := range b.lavVertices(l) {
			b.computeEdgeEvents(v, b.v(v).next)
		}
	}
}

// processTwoNodeLavs closes the faces around every lav reduced to a segment.
func (b *Builder) processTwoNodeLavs() {
	for _, l := range b.sLav {
		if b.l(l).size != 2 {
			continue
		}
		first := b.l(l).first
		last := b.v(first).next

		b.connectQueues(b.v(first).leftFace, b.v(last).rightFace)
		b.connectQueues(b.v(first).rightFace, b.v(last).leftFace)

		b.v(first).processed = true
		b.v(last).processed = true

		b.removeFromLav(first)
		b.removeFromLav(last)
	}
}

// removeEmptyLav drops lavs that can no longer produce events. A single
// remaining vertex is retired with its lav.
func (b *Builder) removeEmptyLav() {
	kept := b.sLav[:0]
	for _, l := range b.sLav {
		switch b.l(l).size {
		case 0:
		case 1:
			v := b.l(l).first
			b.v(v).processed = true
			b.removeFromLav(v)
		default:
			kept = append(kept, l)
		}
	}
	b.sLav = kept
}

func (b *Builder) removeEventsUnderHeight(levelHeight float64) {
	for b.queue.Len() > 0 {
		if b.queue.top().distance > levelHeight+b.cfg.SplitEpsilon {
			break
		}
		b.queue.pop()
	}
}

func (b *Builder) addFacesToOutput() *Skeleton {
	sk := newSkeleton()
	for _, q := range b.faces {
		if b.fq(q).size == 0 {
			continue
		}
		nodes := b.queueNodes(q)
		polygon := make([]common.Vec2, 0, len(nodes))
		for _, n := range nodes {
			v := b.v(b.fn(n).vertex)
			polygon = append(polygon, v.point)
			sk.addDistance(v.point, v.distance)
		}
		e := b.e(b.fq(q).edge)
		sk.Edges = append(sk.Edges, EdgeResult{
			Edge:    EdgeSegment{Begin: e.begin, End: e.end},
			Polygon: polygon,
		})
	}
	return sk
}

func nearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}
