// Package unigram implements the Unigram encoding mode of §4.F: a
// left-to-right Viterbi search over byte positions using per-piece
// log-probabilities, with a trie built once at construction time.
//
// Grounded on the merge-queue-over-scores technique in
// other_examples/00974ecc (lancekrogers-go-token-counter's SentencePiece
// processor, which also walks pieces by score) adapted from a greedy
// priority-queue merge into the left-to-right DP the spec calls for.
package unigram

import "math"

// Vocab is the read-optimized view of a Definition's vocabulary plus scores
// that the Unigram engine needs.
type Vocab struct {
	IDs    []uint32
	Bytes  [][]byte
	Scores []float32

	root     *trieNode
	minScore float32
}

type trieNode struct {
	children map[byte]*trieNode
	pos      int // index into IDs/Bytes/Scores, or -1 if not terminal here
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[byte]*trieNode), pos: -1}
}

// NewVocab builds the Unigram trie over bytes, scored by scores (parallel
// to bytes, same convention as Definition.Scores).
func NewVocab(ids []uint32, bytes [][]byte, scores []float32) *Vocab {
	v := &Vocab{IDs: ids, Bytes: bytes, Scores: scores, root: newTrieNode()}
	v.minScore = math.MaxFloat32
	for i, b := range bytes {
		node := v.root
		for _, c := range b {
			next, ok := node.children[c]
			if !ok {
				next = newTrieNode()
				node.children[c] = next
			}
			node = next
		}
		node.pos = i
		if scores[i] < v.minScore {
			v.minScore = scores[i]
		}
	}
	return v
}

// match is one piece found starting at a given input offset.
type match struct {
	length int
	pos    int
}

// matchesAt enumerates every vocabulary piece that starts at data[offset:].
func (v *Vocab) matchesAt(data []byte, offset int) []match {
	var out []match
	node := v.root
	for i := offset; i < len(data); i++ {
		next, ok := node.children[data[i]]
		if !ok {
			break
		}
		node = next
		if node.pos >= 0 {
			out = append(out, match{length: i - offset + 1, pos: node.pos})
		}
	}
	return out
}

// step is one Viterbi backpointer.
type step struct {
	from   int
	length int
	pos    int // -1 means an unk single-byte step
}

// unkPenalty is the score assigned to a single-byte unk fallback step,
// min_score - 10 per §4.F "to preserve coverage".
func (v *Vocab) unkPenalty() float32 { return v.minScore - 10 }

// Processor runs Viterbi over one segment.
type Processor struct {
	Vocab     *Vocab
	OnNoMatch func() bool // returns true if unk-penalty fallback is permitted; false to fail instead
}

// ErrNoPath indicates the Viterbi search could not reach the end of the
// segment (no piece and no unk fallback at some position).
type ErrNoPath struct{ Offset int }

func (e *ErrNoPath) Error() string { return "unigram: no path through input" }

// Encode tokenizes segment via Viterbi, returning token ids in order plus a
// parallel isUnk mask. A true entry marks a no-match single-byte fallback
// step; the corresponding id is a placeholder 0 for the caller to substitute
// the configured unk role onto; id 0 elsewhere is a legitimately matched
// vocabulary entry and must not be reinterpreted, since a real token's
// vocabulary id can itself be 0 (§4.F "treat as an unk ... with a penalty").
func (p *Processor) Encode(segment []byte) ([]uint32, []bool, error) {
	n := len(segment)
	if n == 0 {
		return nil, nil, nil
	}

	const negInf = -math.MaxFloat32
	best := make([]float32, n+1)
	back := make([]step, n+1)
	for i := range best {
		best[i] = negInf
	}
	best[0] = 0

	for j := 0; j < n; j++ {
		if best[j] == negInf {
			continue
		}
		matches := p.Vocab.matchesAt(segment, j)
		if len(matches) == 0 {
			if p.OnNoMatch != nil && !p.OnNoMatch() {
				continue
			}
			candidate := best[j] + p.Vocab.unkPenalty()
			target := j + 1
			if better(candidate, 1, p.Vocab.IDs, -1, best[target], back[target].length, back[target].pos) {
				best[target] = candidate
				back[target] = step{from: j, length: 1, pos: -1}
			}
			continue
		}
		for _, m := range matches {
			candidate := best[j] + p.Vocab.Scores[m.pos]
			target := j + m.length
			if better(candidate, m.length, p.Vocab.IDs, m.pos, best[target], back[target].length, back[target].pos) {
				best[target] = candidate
				back[target] = step{from: j, length: m.length, pos: m.pos}
			}
		}
	}

	if best[n] == negInf {
		return nil, nil, &ErrNoPath{Offset: n}
	}

	var rev []step
	for i := n; i > 0; {
		s := back[i]
		rev = append(rev, s)
		i = s.from
	}

	ids := make([]uint32, len(rev))
	isUnk := make([]bool, len(rev))
	for i := range rev {
		src := rev[len(rev)-1-i]
		if src.pos < 0 {
			ids[i] = 0 // caller substitutes the configured unk id
			isUnk[i] = true
		} else {
			ids[i] = p.Vocab.IDs[src.pos]
		}
	}
	return ids, isUnk, nil
}

// better implements the tie-break rule: strictly higher score wins; on an
// exact tie prefer the longer piece, then the lower vocabulary id (§4.F
// Unigram "Tie-breaking").
func better(candidateScore float32, candidateLen int, ids []uint32, candidatePos int, currentScore float32, currentLen int, currentPos int) bool {
	if candidateScore != currentScore {
		return candidateScore > currentScore
	}
	if candidateLen != currentLen {
		return candidateLen > currentLen
	}
	candidateID := uint32(0)
	if candidatePos >= 0 {
		candidateID = ids[candidatePos]
	}
	currentID := uint32(0)
	if currentPos >= 0 {
		currentID = ids[currentPos]
	}
	return candidateID < currentID
}
