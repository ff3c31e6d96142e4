package skeleton

import (
	"math"

	"github.com/peterstace/simplefeatures/rtree"
	"go.uber.org/zap"

	"gostraightskeleton/common"
)

func (b *Builder) loadAndGroupLevelEvents() []*skeletonEvent {
	return b.groupLevelEvents(b.loadLevelEvents())
}

// loadLevelEvents pops every live event within epsilon of the first live
// event in the queue.
func (b *Builder) loadLevelEvents() []*skeletonEvent {
	var levelStart *skeletonEvent
	// skip all obsolete events in level
	for {
		if b.queue.Len() == 0 {
			return nil
		}
		levelStart = b.queue.pop()
		if !b.isObsolete(levelStart) {
			break
		}
	}

	level := []*skeletonEvent{levelStart}
	for b.queue.Len() > 0 && nearlyEqual(b.queue.top().distance, levelStart.distance, b.cfg.SplitEpsilon) {
		ev := b.queue.pop()
		if !b.isObsolete(ev) {
			level = append(level, ev)
		}
	}
	return level
}

func (b *Builder) eventBox(p common.Vec2) rtree.Box {
	eps := b.cfg.SplitEpsilon
	return rtree.Box{MinX: p[0] - eps, MinY: p[1] - eps, MaxX: p[0] + eps, MaxY: p[1] + eps}
}

// groupLevelEvents clusters the level. Events join the cluster of the first
// remaining event when they share a parent vertex with it (transitively) or
// when their point is within epsilon of its point.
func (b *Builder) groupLevelEvents(levelEvents []*skeletonEvent) []*skeletonEvent {
	if len(levelEvents) == 0 {
		return nil
	}

	var tree rtree.RTree
	for i, ev := range levelEvents {
		tree.Insert(b.eventBox(ev.point), i)
	}
	taken := make([]bool, len(levelEvents))
	take := func(i int) {
		taken[i] = true
		tree.Delete(b.eventBox(levelEvents[i].point), i)
	}

	var ret []*skeletonEvent
	for i, ev := range levelEvents {
		if taken[i] {
			continue
		}
		take(i)
		center := ev.point
		parentGroup := make(map[vertexID]struct{})
		addEventToGroup(parentGroup, ev)
		cluster := []*skeletonEvent{ev}

		near := make(map[int]struct{})
		_ = tree.RangeSearch(b.eventBox(center), func(recordID int) error {
			if common.Distance(center, levelEvents[recordID].point) < b.cfg.SplitEpsilon {
				near[recordID] = struct{}{}
			}
			return nil
		})

		for j := i + 1; j < len(levelEvents); j++ {
			if taken[j] {
				continue
			}
			test := levelEvents[j]
			_, isNear := near[j]
			// numerical errors move split and edge events of one parent
			// apart, so shared parents group regardless of distance
			if isEventInGroup(parentGroup, test) || isNear {
				take(j)
				cluster = append(cluster, test)
				addEventToGroup(parentGroup, test)
			}
		}

		levelEvent := b.createLevelEvent(center, ev.distance, cluster)
		common.Logger().Debug("level event",
			zap.Stringer("kind", levelEvent.kind),
			zap.Float64("distance", ev.distance),
			zap.Float64("x", center[0]),
			zap.Float64("y", center[1]),
			zap.Int("cluster", len(cluster)))
		ret = append(ret, levelEvent)
	}
	return ret
}

func isEventInGroup(parentGroup map[vertexID]struct{}, ev *skeletonEvent) bool {
	switch {
	case ev.isSplit():
		_, ok := parentGroup[ev.parent]
		return ok
	case ev.kind == edgeEventKind:
		_, okPrev := parentGroup[ev.previousVertex]
		_, okNext := parentGroup[ev.nextVertex]
		return okPrev || okNext
	}
	return false
}

func addEventToGroup(parentGroup map[vertexID]struct{}, ev *skeletonEvent) {
	switch {
	case ev.isSplit():
		parentGroup[ev.parent] = struct{}{}
	case ev.kind == edgeEventKind:
		parentGroup[ev.previousVertex] = struct{}{}
		parentGroup[ev.nextVertex] = struct{}{}
	}
}

func (b *Builder) createLevelEvent(center common.Vec2, distance float64, cluster []*skeletonEvent) *skeletonEvent {
	chains := b.createChains(cluster)

	if len(chains) == 1 {
		c := chains[0]
		switch c.chainType() {
		case chainTypeClosedEdge:
			ev := newLevelEvent(pickEventKind, center, distance)
			ev.chain = c
			return ev
		case chainTypeEdge:
			ev := newLevelEvent(multiEdgeEventKind, center, distance)
			ev.chain = c
			return ev
		case chainTypeSplit:
			ev := newLevelEvent(multiSplitEventKind, center, distance)
			ev.chains = chains
			return ev
		default:
			topologyFailure("createLevelEvent", "invalid chain type")
		}
	}

	for _, c := range chains {
		if c.chainType() == chainTypeClosedEdge {
			topologyFailure("createLevelEvent", "found closed chain of events for single point, but found %d chains", len(chains))
		}
	}
	ev := newLevelEvent(multiSplitEventKind, center, distance)
	ev.chains = chains
	return ev
}

// createChains links edge events into edge chains and turns split events
// that are not part of an edge chain into split chains. At most one vertex
// split survives per parent, and only when the parent has no split event.
func (b *Builder) createChains(cluster []*skeletonEvent) []*chain {
	var edgeCluster []*skeletonEvent
	var splitCluster []*skeletonEvent
	vertexEventsParents := make(map[vertexID]struct{})

	for _, ev := range cluster {
		switch ev.kind {
		case edgeEventKind:
			edgeCluster = append(edgeCluster, ev)
		case splitEventKind:
			vertexEventsParents[ev.parent] = struct{}{}
			splitCluster = append(splitCluster, ev)
		}
	}
	for _, ev := range cluster {
		if ev.kind != vertexSplitEventKind {
			continue
		}
		if _, ok := vertexEventsParents[ev.parent]; !ok {
			vertexEventsParents[ev.parent] = struct{}{}
			splitCluster = append(splitCluster, ev)
		}
	}

	var edgeChains []*chain
	for len(edgeCluster) > 0 {
		var edgeList []*skeletonEvent
		edgeList, edgeCluster = createEdgeChain(edgeCluster)
		edgeChains = append(edgeChains, newEdgeChain(edgeList))
	}

	chains := make([]*chain, 0, len(edgeChains)+len(splitCluster))
	chains = append(chains, edgeChains...)

splitLoop:
	for _, split := range splitCluster {
		for _, c := range edgeChains {
			if isInEdgeChain(split, c) {
				continue splitLoop
			}
		}
		chains = append(chains, newSplitChain(split))
	}
	return chains
}

// createEdgeChain grows a chain from the first event by attaching successors
// and predecessors. Returns the chain and the unused events.
func createEdgeChain(edgeCluster []*skeletonEvent) ([]*skeletonEvent, []*skeletonEvent) {
	edgeList := []*skeletonEvent{edgeCluster[0]}
	rest := append([]*skeletonEvent(nil), edgeCluster[1:]...)

loop:
	for {
		beginVertex := edgeList[0].previousVertex
		endVertex := edgeList[len(edgeList)-1].nextVertex
		for i, ev := range rest {
			if ev.previousVertex == endVertex {
				rest = append(rest[:i], rest[i+1:]...)
				edgeList = append(edgeList, ev)
				continue loop
			}
			if ev.nextVertex == beginVertex {
				rest = append(rest[:i], rest[i+1:]...)
				edgeList = append([]*skeletonEvent{ev}, edgeList...)
				continue loop
			}
		}
		break
	}
	return edgeList, rest
}

// chainAngle orders chains around a split center.
func (b *Builder) chainAngle(center common.Vec2, c *chain) float64 {
	p := b.e(b.chainPreviousEdge(c)).begin
	return math.Atan2(p[1]-center[1], p[0]-center[0])
}
