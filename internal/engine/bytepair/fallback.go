package bytepair

import "container/heap"

// fallbackNode is a linked-list piece plus heap bookkeeping, the same shape
// as the teacher's llama3/priority_queue.go mergeNode, generalized to carry
// a vocabulary position instead of a raw token id string pair.
type fallbackNode struct {
	pos     int // vocabulary priority position
	prev    *fallbackNode
	next    *fallbackNode
	deleted bool
}

// heapEntry is a (rank, position) pair pushed onto the fallback heap. It
// becomes stale when either endpoint has already been consumed by an
// earlier, higher-priority merge (§4.F "Heap entries become stale ...").
type heapEntry struct {
	rank  int
	left  *fallbackNode
	right *fallbackNode
	index int
}

type fallbackHeap []*heapEntry

func (h fallbackHeap) Len() int { return len(h) }
func (h fallbackHeap) Less(i, j int) bool {
	if h[i].rank != h[j].rank {
		return h[i].rank < h[j].rank
	}
	return h[i].index < h[j].index // leftmost wins ties, matching the fast path
}
func (h fallbackHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *fallbackHeap) Push(x any)   { *h = append(*h, x.(*heapEntry)) }
func (h *fallbackHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// fallbackMerge runs the BytePair fallback path: a binary heap keyed on
// (rank, position), with stale-entry detection on pop (§4.F "Fallback
// path"). Chosen by the engine for segments longer than the configured
// threshold.
func fallbackMerge(vocab *Vocab, initialPos []int) []int {
	n := len(initialPos)
	if n <= 1 {
		return initialPos
	}

	nodes := make([]*fallbackNode, n)
	for i, p := range initialPos {
		nodes[i] = &fallbackNode{pos: p}
	}
	for i := 0; i+1 < n; i++ {
		nodes[i].next = nodes[i+1]
		nodes[i+1].prev = nodes[i]
	}

	h := &fallbackHeap{}
	heap.Init(h)
	pushCandidate := func(left *fallbackNode, origIndex int) {
		if left == nil || left.next == nil || left.deleted || left.next.deleted {
			return
		}
		rank, ok := vocab.MergeRank(left.pos, left.next.pos)
		if !ok {
			return
		}
		heap.Push(h, &heapEntry{rank: rank, left: left, right: left.next, index: origIndex})
	}
	for i := 0; i+1 < n; i++ {
		pushCandidate(nodes[i], i)
	}

	first := nodes[0]
	for h.Len() > 0 {
		e := heap.Pop(h).(*heapEntry)
		left, right := e.left, e.right
		if left.deleted || right.deleted || left.next != right {
			continue // stale: an endpoint was already consumed
		}

		mergedPos, ok := vocab.MergeRank(left.pos, right.pos)
		if !ok || mergedPos != e.rank {
			continue // stale: a piece changed since this entry was pushed
		}
		left.pos = mergedPos
		left.next = right.next
		if right.next != nil {
			right.next.prev = left
		}
		right.deleted = true

		if left.prev != nil {
			pushCandidate(left.prev, e.index-1)
		}
		pushCandidate(left, e.index)
	}

	out := make([]int, 0, n)
	for node := first; node != nil; node = node.next {
		out = append(out, node.pos)
	}
	return out
}
