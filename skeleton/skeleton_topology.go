package skeleton

import "gostraightskeleton/common"

type (
	edgeID      int32
	vertexID    int32
	faceNodeID  int32
	faceQueueID int32
	lavID       int32
)

const (
	nilEdge      edgeID      = -1
	nilVertex    vertexID    = -1
	nilFaceNode  faceNodeID  = -1
	nilFaceQueue faceQueueID = -1
	nilLav       lavID       = -1
)

// edge is one side of an input ring. Immutable once its ring is initialised.
type edge struct {
	begin, end common.Vec2
	norm       common.Vec2
	line       common.LineLinear2d

	bisectorPrevious common.LineParametric2d
	bisectorNext     common.LineParametric2d

	previous, next edgeID
}

// vertex is a wavefront node, created at its collision point.
type vertex struct {
	point    common.Vec2
	distance float64
	bisector common.LineParametric2d

	previousEdge, nextEdge edgeID
	processed              bool

	leftFace, rightFace faceNodeID

	// circular list linkage
	next, previous vertexID
	list           lavID
}

// lav is a circular list of active vertices.
type lav struct {
	first vertexID
	size  int
}

// arena owns every record of one build. Ids index the slices; records are
// never freed before reset. Pointers returned by e/v/fn/fq are only valid
// until the next allocation in the same slice.
type arena struct {
	edges      []edge
	vertices   []vertex
	faceNodes  []faceNode
	faceQueues []faceQueue
	lavs       []lav
}

func (a *arena) reset() {
	a.edges = a.edges[:0]
	a.vertices = a.vertices[:0]
	a.faceNodes = a.faceNodes[:0]
	a.faceQueues = a.faceQueues[:0]
	a.lavs = a.lavs[:0]
}

func (a *arena) e(id edgeID) *edge           { return &a.edges[id] }
func (a *arena) v(id vertexID) *vertex       { return &a.vertices[id] }
func (a *arena) l(id lavID) *lav             { return &a.lavs[id] }
func (a *arena) fn(id faceNodeID) *faceNode  { return &a.faceNodes[id] }
func (a *arena) fq(id faceQueueID) *faceQueue { return &a.faceQueues[id] }

func (a *arena) newEdge(begin, end common.Vec2) edgeID {
	a.edges = append(a.edges, edge{
		begin:    begin,
		end:      end,
		norm:     end.Sub(begin).Normalize(),
		line:     common.NewLineLinear2d(begin, end),
		previous: nilEdge,
		next:     nilEdge,
	})
	return edgeID(len(a.edges) - 1)
}

func (a *arena) newVertex(point common.Vec2, distance float64, bisector common.LineParametric2d, previousEdge, nextEdge edgeID) vertexID {
	a.vertices = append(a.vertices, vertex{
		point:        point,
		distance:     distance,
		bisector:     bisector,
		previousEdge: previousEdge,
		nextEdge:     nextEdge,
		leftFace:     nilFaceNode,
		rightFace:    nilFaceNode,
		next:         nilVertex,
		previous:     nilVertex,
		list:         nilLav,
	})
	return vertexID(len(a.vertices) - 1)
}

func (a *arena) newLav() lavID {
	a.lavs = append(a.lavs, lav{first: nilVertex})
	return lavID(len(a.lavs) - 1)
}

// addNext inserts newNode after node, in node's list.
func (a *arena) addNext(node, newNode vertexID) {
	nn := a.v(newNode)
	if nn.list != nilLav {
		topologyFailure("addNext", "vertex %d is already assigned to lav %d", newNode, nn.list)
	}
	n := a.v(node)
	if n.list == nilLav {
		topologyFailure("addNext", "base vertex %d is not in a lav", node)
	}
	nn.list = n.list
	nn.previous = node
	nn.next = n.next
	a.v(n.next).previous = newNode
	n.next = newNode
	a.l(n.list).size++
}

// addPrevious inserts newNode before node, in node's list.
func (a *arena) addPrevious(node, newNode vertexID) {
	nn := a.v(newNode)
	if nn.list != nilLav {
		topologyFailure("addPrevious", "vertex %d is already assigned to lav %d", newNode, nn.list)
	}
	n := a.v(node)
	if n.list == nilLav {
		topologyFailure("addPrevious", "base vertex %d is not in a lav", node)
	}
	nn.list = n.list
	nn.previous = n.previous
	nn.next = node
	a.v(n.previous).next = newNode
	n.previous = newNode
	a.l(n.list).size++
}

func (a *arena) addLast(l lavID, node vertexID) {
	n := a.v(node)
	if n.list != nilLav {
		topologyFailure("addLast", "vertex %d is already assigned to lav %d", node, n.list)
	}
	list := a.l(l)
	if list.first == nilVertex {
		list.first = node
		list.size = 1
		n.list = l
		n.next = node
		n.previous = node
		return
	}
	a.addPrevious(list.first, node)
}

func (a *arena) remove(l lavID, node vertexID) {
	n := a.v(node)
	if n.list != l {
		topologyFailure("remove", "vertex %d is not assigned to lav %d", node, l)
	}
	list := a.l(l)
	if list.size <= 0 {
		topologyFailure("remove", "lav %d is empty", l)
	}
	if list.size == 1 {
		list.first = nilVertex
	} else {
		if list.first == node {
			list.first = n.next
		}
		a.v(n.previous).next = n.next
		a.v(n.next).previous = n.previous
	}
	n.list = nilLav
	n.next = nilVertex
	n.previous = nilVertex
	list.size--
}

// get walks the list, for diagnostics only.
func (a *arena) get(l lavID, index int) vertexID {
	list := a.l(l)
	if index < 0 || index >= list.size {
		return nilVertex
	}
	node := list.first
	for i := 0; i < index; i++ {
		node = a.v(node).next
	}
	return node
}

// lavVertices returns the list content starting at first.
func (a *arena) lavVertices(l lavID) []vertexID {
	list := a.l(l)
	ret := make([]vertexID, 0, list.size)
	node := list.first
	for i := 0; i < list.size; i++ {
		ret = append(ret, node)
		node = a.v(node).next
	}
	return ret
}

func (a *arena) isSameLav(v1, v2 vertexID) bool {
	l1, l2 := a.v(v1).list, a.v(v2).list
	if l1 == nilLav || l2 == nilLav {
		return false
	}
	return l1 == l2
}

// removeFromLav skips vertices that were removed before.
func (a *arena) removeFromLav(v vertexID) {
	if v == nilVertex || a.v(v).list == nilLav {
		return
	}
	a.remove(a.v(v).list, v)
}

// cutLavPart removes start, end and every vertex between them (following
// next) from their lav and returns them in order.
func (a *arena) cutLavPart(start, end vertexID) []vertexID {
	size := a.l(a.v(start).list).size
	ret := make([]vertexID, 0, size)
	next := start
	for i := 0; i < size; i++ {
		current := next
		next = a.v(current).next
		a.removeFromLav(current)
		ret = append(ret, current)
		if current == end {
			return ret
		}
	}
	topologyFailure("cutLavPart", "end vertex %d can't be found in lav of start vertex %d", end, start)
	return nil
}

// mergeBeforeBaseVertex moves every vertex of merged's lav in front of base,
// starting with the one after merged.
func (a *arena) mergeBeforeBaseVertex(base, merged vertexID) {
	size := a.l(a.v(merged).list).size
	for i := 0; i < size; i++ {
		nextMerged := a.v(merged).next
		a.removeFromLav(nextMerged)
		a.addPrevious(base, nextMerged)
	}
}

// moveAllVertexToLavEnd appends the whole lav of v to newLav, starting at v.
func (a *arena) moveAllVertexToLavEnd(v vertexID, newLav lavID) {
	size := a.l(a.v(v).list).size
	for i := 0; i < size; i++ {
		ver := v
		v = a.v(v).next
		a.removeFromLav(ver)
		a.addLast(newLav, ver)
	}
}
