package bytepair

import (
	"errors"
	"strings"
	"testing"
)

// byteVocab builds the 256 single-byte tokens plus a handful of merges in
// decreasing priority order, matching how a byte-level BytePair vocabulary
// is laid out in practice: singletons first, then merges from most to
// least frequent.
func byteVocab(merges ...string) *Vocab {
	ids := make([]uint32, 0, 256+len(merges))
	bytes := make([][]byte, 0, 256+len(merges))
	for b := 0; b < 256; b++ {
		ids = append(ids, uint32(b))
		bytes = append(bytes, []byte{byte(b)})
	}
	for i, m := range merges {
		ids = append(ids, uint32(256+i))
		bytes = append(bytes, []byte(m))
	}
	return NewVocab(ids, bytes)
}

func TestPerformBPEMergesInPriorityOrder(t *testing.T) {
	v := byteVocab("he", "hel", "hell", "hello")
	p := &Processor{Vocab: v}

	ids, err := p.PerformBPE([]byte("hello"))
	if err != nil {
		t.Fatalf("PerformBPE: %v", err)
	}
	if len(ids) != 1 || ids[0] != 259 {
		t.Fatalf("got %v, want [259]", ids)
	}
}

func TestPerformBPEEmptySegment(t *testing.T) {
	v := byteVocab()
	p := &Processor{Vocab: v}
	ids, err := p.PerformBPE(nil)
	if err != nil || ids != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", ids, err)
	}
}

func TestPerformBPENoMergesFallsBackToBytes(t *testing.T) {
	v := byteVocab("he")
	p := &Processor{Vocab: v}

	ids, err := p.PerformBPE([]byte("xyz"))
	if err != nil {
		t.Fatalf("PerformBPE: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("got %v, want 3 single-byte ids", ids)
	}
	for i, want := range []byte("xyz") {
		if ids[i] != uint32(want) {
			t.Fatalf("id %d: got %d, want %d", i, ids[i], want)
		}
	}
}

func TestPerformBPEFastAndFallbackPathsAgree(t *testing.T) {
	v := byteVocab("he", "hel", "hell", "hello", "ll", "lo")
	short := &Processor{Vocab: v}
	longInput := []byte(strings.Repeat("hello", 40)) // > FallbackThreshold units

	shortIDs, err := short.PerformBPE([]byte("hello"))
	if err != nil {
		t.Fatalf("PerformBPE short: %v", err)
	}

	longP := &Processor{Vocab: v}
	longIDs, err := longP.PerformBPE(longInput)
	if err != nil {
		t.Fatalf("PerformBPE long: %v", err)
	}
	if len(longIDs) != len(shortIDs)*40 {
		t.Fatalf("got %d ids from repeated fallback-path input, want %d", len(longIDs), len(shortIDs)*40)
	}
}

func TestPerformBPEUnrepresentableWithoutByteFallback(t *testing.T) {
	// A char-mode vocab missing the multi-byte rune é entirely.
	ids := []uint32{0}
	bytes := [][]byte{[]byte("a")}
	v := NewVocab(ids, bytes)
	p := &Processor{Vocab: v, CharMode: true}

	_, err := p.PerformBPE([]byte("café"))
	if !errors.Is(err, ErrUnrepresentable) {
		t.Fatalf("got %v, want ErrUnrepresentable", err)
	}
}

func TestPerformBPEByteFallbackDecomposesUnknownChar(t *testing.T) {
	ids := []uint32{0}
	bytes := [][]byte{[]byte("a")}
	v := NewVocab(ids, bytes)
	// é is not in the vocab, but its individual bytes must be since
	// the byte range 0-255 is always present in a real byte-level vocab;
	// add them explicitly for this minimal fixture.
	v.IDs = append(v.IDs, 0xc3, 0xa9)
	v.Bytes = append(v.Bytes, []byte{0xc3}, []byte{0xa9})
	for i, b := range v.Bytes {
		v.pos[string(b)] = i
	}

	p := &Processor{Vocab: v, CharMode: true, ByteFallback: true}
	result, err := p.PerformBPE([]byte("é"))
	if err != nil {
		t.Fatalf("PerformBPE: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("got %v, want 2 decomposed byte ids", result)
	}
}

func TestPerformBPECachesResults(t *testing.T) {
	v := byteVocab("he", "hel", "hell", "hello")
	c := NewUnbounded()
	p := &Processor{Vocab: v, Cache: c}

	first, err := p.PerformBPE([]byte("hello"))
	if err != nil {
		t.Fatalf("PerformBPE: %v", err)
	}
	cached, ok := c.Get("hello")
	if !ok {
		t.Fatalf("expected PerformBPE to populate the cache")
	}
	if len(cached) != len(first) || cached[0] != first[0] {
		t.Fatalf("cached result %v does not match computed result %v", cached, first)
	}
}

func TestNewBoundedCacheEvicts(t *testing.T) {
	c := NewBounded(1)
	c.Put("a", []uint32{1})
	c.Put("b", []uint32{2})

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected \"a\" to be evicted once capacity 1 is exceeded")
	}
	if v, ok := c.Get("b"); !ok || v[0] != 2 {
		t.Fatalf("expected \"b\" to remain cached")
	}
}

func TestVocabMergeRank(t *testing.T) {
	v := byteVocab("he")
	posH, _ := v.PositionForBytes([]byte("h"))
	posE, _ := v.PositionForBytes([]byte("e"))

	pos, ok := v.MergeRank(posH, posE)
	if !ok {
		t.Fatalf("expected \"h\"+\"e\" to merge to \"he\"")
	}
	if v.IDs[pos] != 256 {
		t.Fatalf("got id %d, want 256", v.IDs[pos])
	}

	posX, _ := v.PositionForBytes([]byte{'h'})
	_, ok = v.MergeRank(posX, posX) // "hh" not in vocab
	if ok {
		t.Fatalf("expected no merge rank for an unknown concatenation")
	}
}
