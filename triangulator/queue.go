package triangulator

// queueEntry is a candidate-error record for one triangle slot. Entries are
// never updated in place: a slot whose candidate changes simply gets a new
// entry, and entries whose generation or error no longer match the slot are
// discarded on pop.
type queueEntry struct {
	err float64
	tri int32
	gen uint32
}

// triQueue is a binary max-heap of queue entries ordered by candidate error.
type triQueue struct {
	heap []queueEntry
}

func (q *triQueue) empty() bool {
	return len(q.heap) == 0
}

func (q *triQueue) push(e queueEntry) {
	q.heap = append(q.heap, e)
	q.bubbleUp(int32(len(q.heap)-1), e)
}

func (q *triQueue) pop() queueEntry {
	result := q.heap[0]
	n := len(q.heap) - 1
	last := q.heap[n]
	q.heap = q.heap[:n]
	if n > 0 {
		q.trickleDown(0, last)
	}
	return result
}

func (q *triQueue) bubbleUp(i int32, e queueEntry) {
	parent := (i - 1) / 2
	// note: (index > 0) means there is a parent
	for (i > 0) && (q.heap[parent].err < e.err) {
		q.heap[i] = q.heap[parent]
		i = parent
		parent = (i - 1) / 2
	}
	q.heap[i] = e
}

func (q *triQueue) trickleDown(i int32, e queueEntry) {
	size := int32(len(q.heap))
	child := (i * 2) + 1
	for child < size {
		if ((child + 1) < size) &&
			(q.heap[child].err < q.heap[child+1].err) {
			child++
		}
		q.heap[i] = q.heap[child]
		i = child
		child = (i * 2) + 1
	}
	q.bubbleUp(i, e)
}
