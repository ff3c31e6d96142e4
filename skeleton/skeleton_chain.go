package skeleton

type chainKind uint8

const (
	edgeChainKind chainKind = iota
	splitChainKind
	singleEdgeChainKind
)

type chainType uint8

const (
	chainTypeInvalid chainType = iota
	chainTypeEdge
	chainTypeClosedEdge
	chainTypeSplit
)

// chain groups simultaneous events that are resolved together.
//   - edge chain: a run of edge events where each next vertex is the
//     previous vertex of the following event
//   - split chain: a single split or vertex split event
//   - single edge chain: an opposite edge found while processing a split
type chain struct {
	kind chainKind

	edgeList []*skeletonEvent
	closed   bool

	split *skeletonEvent

	oppositeEdge               edgeID
	previousVertex, nextVertex vertexID
}

func newEdgeChain(edgeList []*skeletonEvent) *chain {
	return &chain{
		kind:     edgeChainKind,
		edgeList: edgeList,
		closed:   edgeList[0].previousVertex == edgeList[len(edgeList)-1].nextVertex,
	}
}

func newSplitChain(split *skeletonEvent) *chain {
	return &chain{kind: splitChainKind, split: split}
}

func (a *arena) newSingleEdgeChain(oppositeEdge edgeID, nextVertex vertexID) *chain {
	return &chain{
		kind:           singleEdgeChainKind,
		oppositeEdge:   oppositeEdge,
		nextVertex:     nextVertex,
		previousVertex: a.v(nextVertex).previous,
	}
}

func (c *chain) chainType() chainType {
	switch c.kind {
	case edgeChainKind:
		if c.closed {
			return chainTypeClosedEdge
		}
		return chainTypeEdge
	case splitChainKind, singleEdgeChainKind:
		return chainTypeSplit
	}
	return chainTypeInvalid
}

func (a *arena) chainPreviousEdge(c *chain) edgeID {
	switch c.kind {
	case edgeChainKind:
		return a.v(c.edgeList[0].previousVertex).previousEdge
	case splitChainKind:
		return a.v(c.split.parent).previousEdge
	}
	return c.oppositeEdge
}

func (a *arena) chainNextEdge(c *chain) edgeID {
	switch c.kind {
	case edgeChainKind:
		return a.v(c.edgeList[len(c.edgeList)-1].nextVertex).nextEdge
	case splitChainKind:
		return a.v(c.split.parent).nextEdge
	}
	return c.oppositeEdge
}

func (a *arena) chainPreviousVertex(c *chain) vertexID {
	switch c.kind {
	case edgeChainKind:
		return c.edgeList[0].previousVertex
	case splitChainKind:
		return a.v(c.split.parent).previous
	}
	return c.previousVertex
}

func (a *arena) chainNextVertex(c *chain) vertexID {
	switch c.kind {
	case edgeChainKind:
		return c.edgeList[len(c.edgeList)-1].nextVertex
	case splitChainKind:
		return a.v(c.split.parent).next
	}
	return c.nextVertex
}

// currentVertex is the split parent; other chains have none.
func (c *chain) currentVertex() vertexID {
	if c.kind == splitChainKind {
		return c.split.parent
	}
	return nilVertex
}

// splitOppositeEdge is nilEdge for vertex splits and non split chains.
func (c *chain) splitOppositeEdge() edgeID {
	if c.kind == splitChainKind && c.split.kind == splitEventKind {
		return c.split.oppositeEdge
	}
	return nilEdge
}

// isInEdgeChain reports whether the split parent takes part in the chain.
func isInEdgeChain(split *skeletonEvent, c *chain) bool {
	for _, ev := range c.edgeList {
		if ev.previousVertex == split.parent || ev.nextVertex == split.parent {
			return true
		}
	}
	return false
}
