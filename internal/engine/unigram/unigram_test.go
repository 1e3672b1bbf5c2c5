package unigram

import "testing"

func TestEncodePrefersHigherScorePath(t *testing.T) {
	// "ab" can be tokenized as ["a","b"] (scores -1,-1 => -2) or ["ab"]
	// (score -0.5); the single-piece path must win.
	ids := []uint32{0, 1, 2}
	bytes := [][]byte{[]byte("a"), []byte("b"), []byte("ab")}
	scores := []float32{-1, -1, -0.5}
	v := NewVocab(ids, bytes, scores)
	p := &Processor{Vocab: v}

	out, _, err := p.Encode([]byte("ab"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) != 1 || out[0] != 2 {
		t.Fatalf("got %v, want [2]", out)
	}
}

func TestEncodeEmptySegment(t *testing.T) {
	v := NewVocab(nil, nil, nil)
	p := &Processor{Vocab: v}
	out, isUnk, err := p.Encode(nil)
	if err != nil || out != nil || isUnk != nil {
		t.Fatalf("got (%v, %v, %v), want (nil, nil, nil)", out, isUnk, err)
	}
}

func TestEncodeTieBreaksOnLengthThenID(t *testing.T) {
	// "aa" covered by two equal-score paths ("a"+"a" via id 0
	// twice, vs "aa" via id 1 as a single two-byte piece with the same
	// score) - longer piece wins on a tie.
	ids := []uint32{0, 1}
	bytes := [][]byte{[]byte("a"), []byte("aa")}
	scores := []float32{-1, -2} // "a"+"a" = -2, "aa" = -2 too: exact tie
	v := NewVocab(ids, bytes, scores)
	p := &Processor{Vocab: v}

	out, _, err := p.Encode([]byte("aa"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) != 1 || out[0] != 1 {
		t.Fatalf("got %v, want [1] (the longer piece wins the tie)", out)
	}
}

func TestEncodeFallsBackToUnkPenalty(t *testing.T) {
	ids := []uint32{0}
	bytes := [][]byte{[]byte("a")}
	scores := []float32{-1}
	v := NewVocab(ids, bytes, scores)
	p := &Processor{Vocab: v, OnNoMatch: func() bool { return true }}

	out, isUnk, err := p.Encode([]byte("ab")) // "b" has no vocab entry
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %v, want 2 steps (\"a\" then unk \"b\")", out)
	}
	if !isUnk[1] {
		t.Fatalf("unk step should be marked in the isUnk mask, got %v", isUnk)
	}
	if isUnk[0] {
		t.Fatalf("matched \"a\" step should not be marked as unk")
	}
}

func TestEncodeNoPathWithoutUnkFallback(t *testing.T) {
	ids := []uint32{0}
	bytes := [][]byte{[]byte("a")}
	scores := []float32{-1}
	v := NewVocab(ids, bytes, scores)
	p := &Processor{Vocab: v, OnNoMatch: func() bool { return false }}

	_, _, err := p.Encode([]byte("ab"))
	if err == nil {
		t.Fatalf("expected an ErrNoPath error")
	}
	if _, ok := err.(*ErrNoPath); !ok {
		t.Fatalf("got %T, want *ErrNoPath", err)
	}
}
