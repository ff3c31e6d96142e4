package skeleton

import "gostraightskeleton/common"

type eventKind uint8

const (
	edgeEventKind eventKind = iota
	splitEventKind
	vertexSplitEventKind
	multiEdgeEventKind
	multiSplitEventKind
	pickEventKind
)

func (k eventKind) String() string {
	switch k {
	case edgeEventKind:
		return "EdgeEvent"
	case splitEventKind:
		return "SplitEvent"
	case vertexSplitEventKind:
		return "VertexSplitEvent"
	case multiEdgeEventKind:
		return "MultiEdgeEvent"
	case multiSplitEventKind:
		return "MultiSplitEvent"
	case pickEventKind:
		return "PickEvent"
	}
	return "UnknownEvent"
}

// skeletonEvent is a closed union over eventKind. Only the fields of its
// kind are set.
type skeletonEvent struct {
	kind     eventKind
	point    common.Vec2
	distance float64

	// edgeEventKind
	previousVertex, nextVertex vertexID

	// splitEventKind, vertexSplitEventKind
	parent       vertexID
	oppositeEdge edgeID

	// multiEdgeEventKind, pickEventKind
	chain *chain
	// multiSplitEventKind
	chains []*chain
}

func newEdgeEvent(point common.Vec2, distance float64, previousVertex, nextVertex vertexID) *skeletonEvent {
	return &skeletonEvent{
		kind:           edgeEventKind,
		point:          point,
		distance:       distance,
		previousVertex: previousVertex,
		nextVertex:     nextVertex,
		parent:         nilVertex,
		oppositeEdge:   nilEdge,
	}
}

func newSplitEvent(point common.Vec2, distance float64, parent vertexID, oppositeEdge edgeID) *skeletonEvent {
	return &skeletonEvent{
		kind:           splitEventKind,
		point:          point,
		distance:       distance,
		previousVertex: nilVertex,
		nextVertex:     nilVertex,
		parent:         parent,
		oppositeEdge:   oppositeEdge,
	}
}

func newVertexSplitEvent(point common.Vec2, distance float64, parent vertexID) *skeletonEvent {
	ev := newSplitEvent(point, distance, parent, nilEdge)
	ev.kind = vertexSplitEventKind
	return ev
}

func newLevelEvent(kind eventKind, point common.Vec2, distance float64) *skeletonEvent {
	return &skeletonEvent{
		kind:           kind,
		point:          point,
		distance:       distance,
		previousVertex: nilVertex,
		nextVertex:     nilVertex,
		parent:         nilVertex,
		oppositeEdge:   nilEdge,
	}
}

func (ev *skeletonEvent) isSplit() bool {
	return ev.kind == splitEventKind || ev.kind == vertexSplitEventKind
}

// isObsolete is evaluated lazily: an event is outdated once one of its
// parent vertices was consumed by an earlier event.
func (a *arena) isObsolete(ev *skeletonEvent) bool {
	switch ev.kind {
	case edgeEventKind:
		return a.v(ev.previousVertex).processed || a.v(ev.nextVertex).processed
	case splitEventKind, vertexSplitEventKind:
		return a.v(ev.parent).processed
	}
	return false
}

// eventQueue is a binary min-heap on distance. Obsolete events stay in the
// heap and are skipped on pop.
//
// Events at equal distance have no secondary key; they leave in the order
// given by the hole sifting below (the last element is sifted from the
// root's hole down to a leaf, taking the right child on ties, then back
// up). Level grouping picks its center from the first event of a level, so
// changing this order changes the skeleton of degenerate input.
type eventQueue struct {
	items []*skeletonEvent
}

func (q *eventQueue) Len() int { return len(q.items) }

func (q *eventQueue) push(ev *skeletonEvent) {
	q.items = append(q.items, nil)
	q.siftUp(len(q.items)-1, ev)
}

func (q *eventQueue) pop() *skeletonEvent {
	n := len(q.items)
	top := q.items[0]
	if n > 1 {
		q.siftDown(n-1, q.items[n-1])
	}
	q.items[n-1] = nil
	q.items = q.items[:n-1]
	return top
}

func (q *eventQueue) top() *skeletonEvent {
	return q.items[0]
}

// siftUp stores ev at hole after moving every farther parent down.
func (q *eventQueue) siftUp(hole int, ev *skeletonEvent) {
	parent := (hole - 1) / 2
	for hole > 0 && q.items[parent].distance > ev.distance {
		q.items[hole] = q.items[parent]
		hole = parent
		parent = (hole - 1) / 2
	}
	q.items[hole] = ev
}

// siftDown moves the root hole to a leaf of the first size items, always
// following the nearer child, then places ev from there.
func (q *eventQueue) siftDown(size int, ev *skeletonEvent) {
	hole, child := 0, 0
	for child < (size-1)/2 {
		child = 2 * (child + 1)
		if q.items[child].distance > q.items[child-1].distance {
			child--
		}
		q.items[hole] = q.items[child]
		hole = child
	}
	if size&1 == 0 && child == (size-2)/2 {
		child = 2 * (child + 1)
		q.items[hole] = q.items[child-1]
		hole = child - 1
	}
	q.siftUp(hole, ev)
}

func (q *eventQueue) reset() {
	for i := range q.items {
		q.items[i] = nil
	}
	q.items = q.items[:0]
}
