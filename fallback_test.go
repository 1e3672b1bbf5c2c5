package tokenizer

import (
	"errors"
	"testing"
)

// asciiOnlyVocab covers only ASCII bytes, so any non-ASCII byte is
// unencodable unless an unk id is configured; byte-fallback needs the
// byte tokens in the vocabulary, which this one lacks.
func asciiOnlyVocab() []VocabEntry {
	vocab := make([]VocabEntry, 0, 128)
	for b := 0; b < 128; b++ {
		vocab = append(vocab, VocabEntry{ID: uint32(b), Bytes: []byte{byte(b)}})
	}
	return vocab
}

func TestEncodeUnknownErrorByDefault(t *testing.T) {
	def, err := NewDefinition(asciiOnlyVocab(), nil, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	f, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = f.Encode("caf\xc3\xa9", true) // é is multi-byte, > ascii range
	if err == nil {
		t.Fatalf("expected an encode error for an unencodable byte")
	}
	if !errors.Is(err, ErrUnencodable) {
		t.Fatalf("got %v, want ErrUnencodable", err)
	}
}

func TestEncodeByteFallbackWinsOverUnknownPolicy(t *testing.T) {
	// Char mode makes "é" one unit missing from the vocabulary; its two
	// byte tokens are present so byte-fallback has somewhere to land.
	vocab := append(asciiOnlyVocab(),
		VocabEntry{ID: 0xc3, Bytes: []byte{0xc3}},
		VocabEntry{ID: 0xa9, Bytes: []byte{0xa9}},
	)
	specials := []SpecialEntry{{ID: 1000, Bytes: []byte("<unk>")}}
	cfg := DefaultConfig()
	cfg.Mode.CharMode = true
	cfg.Fallback.ByteFallback = true
	cfg.Fallback.OnUnknown = UnknownID
	cfg.Specials.Unk = RoleID{ID: 1000, Set: true}

	def, err := NewDefinition(vocab, specials, nil, cfg)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	f, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ids, err := f.Encode("caf\xc3\xa9", true)
	if err != nil {
		t.Fatalf("Encode with byte-fallback enabled should not fail: %v", err)
	}
	for _, id := range ids {
		if id == 1000 {
			t.Fatalf("byte-fallback should take priority over the unk-id policy, got unk id in output: %v", ids)
		}
	}
}

func TestEncodeUnknownIDPolicy(t *testing.T) {
	vocab := asciiOnlyVocab()
	specials := []SpecialEntry{{ID: 1000, Bytes: []byte("<unk>")}}
	cfg := DefaultConfig()
	cfg.Fallback.OnUnknown = UnknownID
	cfg.Specials.Unk = RoleID{ID: 1000, Set: true}

	def, err := NewDefinition(vocab, specials, nil, cfg)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	f, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ids, err := f.Encode("\xc3\xa9", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, id := range ids {
		if id == 1000 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unk id 1000 among %v", ids)
	}
}

func TestEncodeUnknownSkipPolicy(t *testing.T) {
	vocab := asciiOnlyVocab()
	cfg := DefaultConfig()
	cfg.Fallback.OnUnknown = UnknownSkip

	def, err := NewDefinition(vocab, nil, nil, cfg)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	f, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ids, err := f.Encode("a\xc3\xa9b", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected the unencodable segment to be skipped, leaving 2 ids, got %v", ids)
	}
}
