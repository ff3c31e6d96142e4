package skeleton

import (
	"sort"

	"gostraightskeleton/common"
)

// emitMultiEdgeEvent collapses the run of edges of the chain into one new
// vertex placed where the first chain vertex was.
func (b *Builder) emitMultiEdgeEvent(ev *skeletonEvent) {
	center := ev.point
	previousVertex := b.chainPreviousVertex(ev.chain)
	nextVertex := b.chainNextVertex(ev.chain)
	b.v(previousVertex).processed = true
	b.v(nextVertex).processed = true

	previousEdge := b.v(previousVertex).previousEdge
	nextEdge := b.v(nextVertex).nextEdge
	bisector := b.calcBisector(center, previousEdge, nextEdge)
	edgeVertex := b.newVertex(center, ev.distance, bisector, previousEdge, nextEdge)

	b.addFaceLeft(edgeVertex, previousVertex)
	b.addFaceRight(edgeVertex, nextVertex)

	b.addPrevious(previousVertex, edgeVertex)

	b.addMultiBackFaces(ev.chain.edgeList, edgeVertex)
	b.computeEvents(edgeVertex)
}

func (b *Builder) addMultiBackFaces(edgeList []*skeletonEvent, edgeVertex vertexID) {
	for _, ee := range edgeList {
		b.v(ee.previousVertex).processed = true
		b.removeFromLav(ee.previousVertex)

		b.v(ee.nextVertex).processed = true
		b.removeFromLav(ee.nextVertex)

		b.addFaceBack(edgeVertex, ee.previousVertex, ee.nextVertex)
	}
}

// emitPickEvent closes a lav collapsing into one point. The final vertex
// only closes faces and produces no events.
func (b *Builder) emitPickEvent(ev *skeletonEvent) {
	v := b.newVertex(ev.point, ev.distance, common.LineParametric2d{}, nilEdge, nilEdge)
	b.v(v).processed = true
	b.addMultiBackFaces(ev.chain.edgeList, v)
}

func (b *Builder) emitMultiSplitEvent(ev *skeletonEvent) {
	center := ev.point
	chains := b.createOppositeEdgeChains(ev.chains, center)

	sort.SliceStable(chains, func(i, j int) bool {
		return b.chainAngle(center, chains[i]) < b.chainAngle(center, chains[j])
	})

	// face node of a split is shared between two chains
	lastFaceNode := nilFaceNode

	// connect all edges into new bisectors and lavs
	n := len(chains)
	for i := 0; i < n; i++ {
		chainBegin := chains[i]
		chainEnd := chains[(i+1)%n]

		beginNextEdge := b.chainNextEdge(chainBegin)
		endPreviousEdge := b.chainPreviousEdge(chainEnd)
		newVertex := b.createMultiSplitVertex(beginNextEdge, endPreviousEdge, center, ev.distance)

		beginNextVertex := b.chainNextVertex(chainBegin)
		endPreviousVertex := b.chainPreviousVertex(chainEnd)
		if beginNextVertex == nilVertex || endPreviousVertex == nilVertex {
			topologyFailure("emitMultiSplitEvent", "chain endpoint is missing")
		}

		b.correctBisectorDirection(newVertex, beginNextVertex, endPreviousVertex, beginNextEdge, endPreviousEdge)

		if b.isSameLav(beginNextVertex, endPreviousVertex) {
			// same lav, the middle part becomes a new lav
			lavPart := b.cutLavPart(beginNextVertex, endPreviousVertex)
			l := b.newLav()
			b.sLav = append(b.sLav, l)
			b.addLast(l, newVertex)
			for _, v := range lavPart {
				b.addLast(l, v)
			}
		} else {
			// different lavs are merged into one
			b.mergeBeforeBaseVertex(beginNextVertex, endPreviousVertex)
			b.addNext(endPreviousVertex, newVertex)
		}

		b.computeEvents(newVertex)
		lastFaceNode = b.addSplitFaces(lastFaceNode, chainBegin, chainEnd, newVertex)
	}

	// remove all centers of events from lav
	for i := 0; i < n; i++ {
		for _, v := range []vertexID{chains[i].currentVertex(), chains[(i+1)%n].currentVertex()} {
			b.removeFromLav(v)
			if v != nilVertex {
				b.v(v).processed = true
			}
		}
	}
}

// correctBisectorDirection fixes bisectors of split vertices between
// anti-parallel edges, where the bisector sign is not reliable.
func (b *Builder) correctBisectorDirection(newVertex, beginNextVertex, endPreviousVertex vertexID, beginEdge, endEdge edgeID) {
	if b.v(beginNextVertex).previousEdge != beginEdge || b.v(endPreviousVertex).nextEdge != endEdge {
		topologyFailure("correctBisectorDirection", "chain edges don't match lav edges")
	}

	if b.e(beginEdge).norm.Dot(b.e(endEdge).norm) >= b.cfg.AntiParallelThreshold {
		return
	}
	bisector := b.v(newVertex).bisector
	n1 := common.FromTo(b.v(endPreviousVertex).point, bisector.A).Normalize()
	n2 := common.FromTo(bisector.A, b.v(beginNextVertex).point).Normalize()
	prediction := common.BisectorNormalized(n1, n2)

	// bisector points away from the edges and center
	if bisector.U.Dot(prediction) < 0 {
		b.v(newVertex).bisector.U = bisector.U.Mul(-1)
	}
}

func (b *Builder) createMultiSplitVertex(nextEdge, previousEdge edgeID, center common.Vec2, distance float64) vertexID {
	// edges are mirrored for event
	bisector := b.calcBisector(center, previousEdge, nextEdge)
	return b.newVertex(center, distance, bisector, previousEdge, nextEdge)
}

func (b *Builder) addSplitFaces(lastFaceNode faceNodeID, chainBegin, chainEnd *chain, newVertex vertexID) faceNodeID {
	if chainBegin.kind == singleEdgeChainKind {
		// opposite edge chains share their face between two chains
		if lastFaceNode == nilFaceNode {
			// the vertex borders three faces but stores two, the clone
			// keeps the back face
			beginVertex := b.createOppositeEdgeVertex(newVertex)
			b.v(newVertex).rightFace = b.v(beginVertex).rightFace
			lastFaceNode = b.v(beginVertex).leftFace
		} else {
			if b.v(newVertex).rightFace != nilFaceNode {
				topologyFailure("addSplitFaces", "right face of vertex %d should be empty", newVertex)
			}
			b.v(newVertex).rightFace = lastFaceNode
			lastFaceNode = nilFaceNode
		}
	} else {
		b.addFaceRight(newVertex, chainBegin.currentVertex())
	}

	if chainEnd.kind == singleEdgeChainKind {
		if lastFaceNode == nilFaceNode {
			endVertex := b.createOppositeEdgeVertex(newVertex)
			b.v(newVertex).leftFace = b.v(endVertex).leftFace
			lastFaceNode = b.v(endVertex).leftFace
		} else {
			if b.v(newVertex).leftFace != nilFaceNode {
				topologyFailure("addSplitFaces", "left face of vertex %d should be empty", newVertex)
			}
			b.v(newVertex).leftFace = lastFaceNode
			lastFaceNode = nilFaceNode
		}
	} else {
		b.addFaceLeft(newVertex, chainEnd.currentVertex())
	}
	return lastFaceNode
}

// createOppositeEdgeVertex clones v for the face on the opposite side of a
// split edge. The clone is not part of any lav.
func (b *Builder) createOppositeEdgeVertex(v vertexID) vertexID {
	src := *b.v(v)
	clone := b.newVertex(src.point, src.distance, src.bisector, src.previousEdge, src.nextEdge)

	fn := b.newFaceNode(clone)
	b.v(clone).leftFace = fn
	b.v(clone).rightFace = fn

	q := b.newFaceQueue()
	b.addFirst(q, fn)
	return clone
}

// createOppositeEdgeChains adds a single edge chain for every opposite edge
// still present in a lav. Split chains whose edge is gone are dropped.
func (b *Builder) createOppositeEdgeChains(chains []*chain, center common.Vec2) []*chain {
	oppositeEdges := make(map[edgeID]struct{})
	var oppositeEdgeChains []*chain
	removed := make(map[*chain]struct{})

	for _, c := range chains {
		oppositeEdge := c.splitOppositeEdge()
		if oppositeEdge == nilEdge {
			continue
		}
		if _, seen := oppositeEdges[oppositeEdge]; seen {
			continue
		}
		if nextVertex := b.findOppositeEdgeLav(oppositeEdge, center); nextVertex != nilVertex {
			oppositeEdgeChains = append(oppositeEdgeChains, b.newSingleEdgeChain(oppositeEdge, nextVertex))
		} else {
			removed[c] = struct{}{}
		}
		oppositeEdges[oppositeEdge] = struct{}{}
	}

	ret := make([]*chain, 0, len(chains)+len(oppositeEdgeChains))
	for _, c := range chains {
		if _, ok := removed[c]; !ok {
			ret = append(ret, c)
		}
	}
	return append(ret, oppositeEdgeChains...)
}

func (b *Builder) findOppositeEdgeLav(oppositeEdge edgeID, center common.Vec2) vertexID {
	var edgeLavs []vertexID
	for _, l := range b.sLav {
		if v := b.getEdgeInLav(l, oppositeEdge); v != nilVertex {
			edgeLavs = append(edgeLavs, v)
		}
	}
	return b.chooseOppositeEdgeLav(edgeLavs, oppositeEdge, center)
}

// getEdgeInLav returns the first vertex of the lav that ends the edge.
func (b *Builder) getEdgeInLav(l lavID, oppositeEdge edgeID) vertexID {
	for _, v := range b.lavVertices(l) {
		if b.v(v).previousEdge == oppositeEdge || b.v(b.v(v).previous).nextEdge == oppositeEdge {
			return v
		}
	}
	return nilVertex
}

func (b *Builder) chooseOppositeEdgeLav(edgeLavs []vertexID, oppositeEdge edgeID, center common.Vec2) vertexID {
	switch len(edgeLavs) {
	case 0:
		return nilVertex
	case 1:
		return edgeLavs[0]
	}

	edgeStart := b.e(oppositeEdge).begin
	edgeNorm := b.e(oppositeEdge).norm
	centerDot := edgeNorm.Dot(center.Sub(edgeStart))
	for _, end := range edgeLavs {
		begin := b.v(end).previous
		beginDot := edgeNorm.Dot(b.v(begin).point.Sub(edgeStart))
		endDot := edgeNorm.Dot(b.v(end).point.Sub(edgeStart))

		// the projection of the center on the edge lies between begin and
		// end for exactly one lav
		if (beginDot < centerDot && centerDot < endDot) || (beginDot > centerDot && centerDot > endDot) {
			return end
		}
	}

	for _, end := range edgeLavs {
		vertices := b.lavVertices(b.v(end).list)
		points := make([]common.Vec2, len(vertices))
		for i, v := range vertices {
			points[i] = b.v(v).point
		}
		if common.IsPointInsidePolygon(center, points) {
			return end
		}
	}
	topologyFailure("chooseOppositeEdgeLav", "could not find lav for opposite edge %d", oppositeEdge)
	return nilVertex
}

func (b *Builder) addFaceBack(newVertex, va, vb vertexID) {
	fn := b.newFaceNode(newVertex)
	b.addPush(b.v(va).rightFace, fn)
	b.connectQueues(fn, b.v(vb).leftFace)
}

func (b *Builder) addFaceRight(newVertex, vb vertexID) {
	fn := b.newFaceNode(newVertex)
	b.addPush(b.v(vb).rightFace, fn)
	b.v(newVertex).rightFace = fn
}

func (b *Builder) addFaceLeft(newVertex, va vertexID) {
	fn := b.newFaceNode(newVertex)
	b.addPush(b.v(va).leftFace, fn)
	b.v(newVertex).leftFace = fn
}
