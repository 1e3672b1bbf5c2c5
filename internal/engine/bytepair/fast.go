package bytepair

// fastNode is one arena slot of the doubly linked piece list used by the
// fast path (§9 "Cyclic structure": an arena of piece records indexed by
// integers rather than pointer cycles).
type fastNode struct {
	prev, next int // arena index, or -1 sentinel
	pos        int // vocabulary priority position of this piece's bytes
	dead       bool
}

const sentinel = -1

// fastMerge runs the BytePair fast path: repeatedly scan the linked list for
// the minimum-rank adjacent pair (leftmost wins ties), merge it, and update
// only the two affected neighboring ranks (§4.F BytePair "Fast path").
func fastMerge(vocab *Vocab, initialPos []int) []int {
	n := len(initialPos)
	if n <= 1 {
		return initialPos
	}

	nodes := make([]fastNode, n)
	for i := range nodes {
		nodes[i] = fastNode{prev: i - 1, next: i + 1, pos: initialPos[i]}
	}
	nodes[n-1].next = sentinel

	rank := make([]int, n)
	for i := 0; i < n; i++ {
		rank[i] = fastRankAt(vocab, nodes, i)
	}

	head := 0
	for {
		minIdx, minRank := -1, noRank
		for i := 0; i < n; i++ {
			if nodes[i].dead || nodes[i].next == sentinel {
				continue
			}
			if rank[i] < minRank {
				minRank, minIdx = rank[i], i
			}
		}
		if minIdx == -1 {
			break
		}

		right := nodes[minIdx].next
		mergedPos, _ := vocab.MergeRank(nodes[minIdx].pos, nodes[right].pos)
		nodes[minIdx].pos = mergedPos
		nodes[minIdx].next = nodes[right].next
		if nodes[right].next != sentinel {
			nodes[nodes[right].next].prev = minIdx
		}
		nodes[right].dead = true

		rank[minIdx] = fastRankAt(vocab, nodes, minIdx)
		if p := nodes[minIdx].prev; p != sentinel {
			rank[p] = fastRankAt(vocab, nodes, p)
		}
	}

	out := make([]int, 0, n)
	for i := head; i != sentinel; i = nodes[i].next {
		out = append(out, nodes[i].pos)
	}
	return out
}

func fastRankAt(vocab *Vocab, nodes []fastNode, i int) int {
	if nodes[i].next == sentinel {
		return noRank
	}
	mergedPos, ok := vocab.MergeRank(nodes[i].pos, nodes[nodes[i].next].pos)
	if !ok {
		return noRank
	}
	return mergedPos
}
