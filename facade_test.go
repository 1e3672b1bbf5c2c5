package tokenizer

import (
	"testing"
)

func byteVocab() []VocabEntry {
	// Byte-mode BytePair vocabulary: every single byte, then a couple of
	// merges in decreasing priority order so "he" and "hel" merge first.
	vocab := make([]VocabEntry, 0, 256+4)
	for b := 0; b < 256; b++ {
		vocab = append(vocab, VocabEntry{ID: uint32(b), Bytes: []byte{byte(b)}})
	}
	vocab = append(vocab,
		VocabEntry{ID: 256, Bytes: []byte("he")},
		VocabEntry{ID: 257, Bytes: []byte("hel")},
		VocabEntry{ID: 258, Bytes: []byte("hell")},
		VocabEntry{ID: 259, Bytes: []byte("hello")},
	)
	return vocab
}

func newByteFacade(t *testing.T) *Facade {
	t.Helper()
	def, err := NewDefinition(byteVocab(), nil, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	f, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestFacadeEncodeDecodeRoundTrip(t *testing.T) {
	f := newByteFacade(t)

	cases := []string{"hello", "hello world", "", "h", "xyz"}
	for _, text := range cases {
		ids, err := f.Encode(text, true)
		if err != nil {
			t.Fatalf("Encode(%q): %v", text, err)
		}
		out, err := f.Decode(ids, true)
		if err != nil {
			t.Fatalf("Decode(%q ids): %v", text, err)
		}
		if string(out) != text {
			t.Fatalf("round trip mismatch: got %q, want %q", out, text)
		}
	}
}

func TestFacadeEncodeMergesGreedily(t *testing.T) {
	f := newByteFacade(t)

	ids, err := f.Encode("hello", true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(ids) != 1 || ids[0] != 259 {
		t.Fatalf("got %v, want [259] (full \"hello\" merge)", ids)
	}
}

func TestFacadeEncodeDeterministic(t *testing.T) {
	f := newByteFacade(t)
	text := "hello world, hello there"

	first, err := f.Encode(text, true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := f.Encode(text, true)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("nondeterministic encode length: %d vs %d", len(again), len(first))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("nondeterministic encode at %d: %d vs %d", j, first[j], again[j])
			}
		}
	}
}

func TestFacadeEncodeAllDecodeAll(t *testing.T) {
	f := newByteFacade(t)
	texts := []string{"hello", "hell", "he"}

	idsList, err := f.EncodeAll(texts, true)
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	if len(idsList) != len(texts) {
		t.Fatalf("got %d results, want %d", len(idsList), len(texts))
	}

	outs, err := f.DecodeAll(idsList, true)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	for i, text := range texts {
		if string(outs[i]) != text {
			t.Fatalf("got %q, want %q", outs[i], text)
		}
	}
}

func TestFacadeSetConfigAtomicOnFailure(t *testing.T) {
	f := newByteFacade(t)
	before := f.Config()

	badCfg := before
	badCfg.Mode = Mode{Kind: ModeUnigram} // requires scores this definition lacks
	if err := f.SetConfig(badCfg); err == nil {
		t.Fatalf("expected SetConfig to reject a config requiring missing scores")
	}

	after := f.Config()
	if after.Mode.Kind != before.Mode.Kind {
		t.Fatalf("facade config changed despite failed SetConfig")
	}
	// The facade must still be usable after a rejected SetConfig.
	if _, err := f.Encode("hello", true); err != nil {
		t.Fatalf("facade unusable after rejected SetConfig: %v", err)
	}
}

func TestFacadeToBytesRoundTrip(t *testing.T) {
	f := newByteFacade(t)
	data := f.ToBytes()

	f2, err := NewFromBytes(data)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}

	ids1, err := f.Encode("hello world", true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	ids2, err := f2.Encode("hello world", true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(ids1) != len(ids2) {
		t.Fatalf("got %v, want %v", ids2, ids1)
	}
	for i := range ids1 {
		if ids1[i] != ids2[i] {
			t.Fatalf("got %v, want %v", ids2, ids1)
		}
	}
}
