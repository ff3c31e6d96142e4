package skeleton

// faceNode is one vertex occurrence in an output face.
type faceNode struct {
	vertex         vertexID
	next, previous faceNodeID
	queue          faceQueueID
}

// faceQueue is a non-circular deque growing one output face from both ends.
// edge is nilEdge while the queue is not connected to an input edge.
type faceQueue struct {
	edge   edgeID
	closed bool
	size   int
	first  faceNodeID
}

func (a *arena) newFaceNode(v vertexID) faceNodeID {
	a.faceNodes = append(a.faceNodes, faceNode{
		vertex:   v,
		next:     nilFaceNode,
		previous: nilFaceNode,
		queue:    nilFaceQueue,
	})
	return faceNodeID(len(a.faceNodes) - 1)
}

func (a *arena) newFaceQueue() faceQueueID {
	a.faceQueues = append(a.faceQueues, faceQueue{edge: nilEdge, first: nilFaceNode})
	return faceQueueID(len(a.faceQueues) - 1)
}

func (a *arena) isEnd(n faceNodeID) bool {
	node := a.fn(n)
	return node.next == nilFaceNode || node.previous == nilFaceNode
}

func (a *arena) isQueueUnconnected(n faceNodeID) bool {
	return a.fq(a.fn(n).queue).edge == nilEdge
}

func (a *arena) addFirst(q faceQueueID, n faceNodeID) {
	node := a.fn(n)
	if node.queue != nilFaceQueue {
		topologyFailure("addFirst", "face node %d is already assigned to queue %d", n, node.queue)
	}
	queue := a.fq(q)
	if queue.first != nilFaceNode {
		topologyFailure("addFirst", "queue %d already has a first node", q)
	}
	queue.first = n
	queue.size++
	node.queue = q
	node.next = nilFaceNode
	node.previous = nilFaceNode
}

// addPush appends newNode at the open end of node, which must be an end of
// its queue.
func (a *arena) addPush(n, newNode faceNodeID) {
	node := a.fn(n)
	if node.queue == nilFaceQueue {
		topologyFailure("addPush", "face node %d has no queue", n)
	}
	queue := a.fq(node.queue)
	if queue.closed {
		topologyFailure("addPush", "can't add node to closed queue %d", node.queue)
	}
	nn := a.fn(newNode)
	if nn.queue != nilFaceQueue {
		topologyFailure("addPush", "face node %d is already assigned to queue %d", newNode, nn.queue)
	}
	if node.previous != nilFaceNode && node.next != nilFaceNode {
		topologyFailure("addPush", "face node %d is inside queue %d", n, node.queue)
	}

	nn.queue = node.queue
	queue.size++
	if node.next == nilFaceNode {
		nn.previous = n
		nn.next = nilFaceNode
		node.next = newNode
	} else {
		nn.previous = nilFaceNode
		nn.next = n
		node.previous = newNode
	}
}

// pop detaches an end node and returns its former neighbour.
func (a *arena) pop(n faceNodeID) faceNodeID {
	node := a.fn(n)
	if node.queue == nilFaceQueue {
		topologyFailure("pop", "face node %d has no queue", n)
	}
	queue := a.fq(node.queue)
	if queue.size <= 0 {
		topologyFailure("pop", "queue %d is empty", node.queue)
	}
	if !a.isEnd(n) {
		topologyFailure("pop", "can pop only from end of queue %d", node.queue)
	}

	neighbour := nilFaceNode
	if queue.size == 1 {
		queue.first = nilFaceNode
	} else {
		if queue.first == n {
			if node.next != nilFaceNode {
				queue.first = node.next
			} else {
				queue.first = node.previous
			}
		}
		if node.next != nilFaceNode {
			a.fn(node.next).previous = nilFaceNode
			neighbour = node.next
		} else if node.previous != nilFaceNode {
			a.fn(node.previous).next = nilFaceNode
			neighbour = node.previous
		}
	}
	node.queue = nilFaceQueue
	node.previous = nilFaceNode
	node.next = nilFaceNode
	queue.size--
	return neighbour
}

// addQueue moves every node of the queue holding from, starting at from, to
// the end of the queue holding nodeQueue. Returns the new end node.
func (a *arena) addQueue(nodeQueue, from faceNodeID) faceNodeID {
	if a.fn(nodeQueue).queue == a.fn(from).queue {
		return nilFaceNode
	}
	current := from
	for current != nilFaceNode {
		next := a.pop(current)
		a.addPush(nodeQueue, current)
		nodeQueue = current
		current = next
	}
	return nodeQueue
}

// connectQueues glues the faces of two nodes. Nodes of the same queue close
// it; otherwise the nodes of the queue that is not connected to an edge move
// into the connected one and the emptied queue is closed.
func (a *arena) connectQueues(first, second faceNodeID) {
	q1, q2 := a.fn(first).queue, a.fn(second).queue
	if q1 == nilFaceQueue {
		topologyFailure("connectQueues", "first face node %d has no queue", first)
	}
	if q2 == nilFaceQueue {
		topologyFailure("connectQueues", "second face node %d has no queue", second)
	}

	if q1 == q2 {
		if !a.isEnd(first) || !a.isEnd(second) {
			topologyFailure("connectQueues", "try to connect queue %d not on end nodes", q1)
		}
		if a.isQueueUnconnected(first) || a.isQueueUnconnected(second) {
			topologyFailure("connectQueues", "can't close queue %d not connected with edge", q1)
		}
		a.fq(q1).closed = true
		return
	}

	if !a.isQueueUnconnected(first) && !a.isQueueUnconnected(second) {
		topologyFailure("connectQueues", "queues %d and %d are both connected to edges", q1, q2)
	}
	if !a.isQueueUnconnected(first) {
		a.addQueue(first, second)
		a.fq(q2).closed = true
	} else {
		a.addQueue(second, first)
		a.fq(q1).closed = true
	}
}

// queueNodes walks the queue from its head.
func (a *arena) queueNodes(q faceQueueID) []faceNodeID {
	queue := a.fq(q)
	ret := make([]faceNodeID, 0, queue.size)
	if queue.size == 0 {
		return ret
	}
	current := queue.first
	for a.fn(current).previous != nilFaceNode {
		current = a.fn(current).previous
	}
	for current != nilFaceNode && len(ret) < queue.size {
		ret = append(ret, current)
		current = a.fn(current).next
	}
	return ret
}
