package tokenizer

import "testing"

// TestEncodeDecodeEncodeIsStable checks that re-encoding the decode of an
// encode produces the identical token sequence, for input already "clean"
// with respect to the vocabulary (byte-level, so every string is clean).
func TestEncodeDecodeEncodeIsStable(t *testing.T) {
	f := newByteFacade(t)

	for _, text := range []string{"hello world", "hello", "he hell hello"} {
		first, err := f.Encode(text, true)
		if err != nil {
			t.Fatalf("Encode(%q): %v", text, err)
		}
		decoded, err := f.Decode(first, true)
		if err != nil {
			t.Fatalf("Decode(%q): %v", text, err)
		}
		second, err := f.Encode(string(decoded), true)
		if err != nil {
			t.Fatalf("re-Encode(%q): %v", decoded, err)
		}
		if len(first) != len(second) {
			t.Fatalf("encode(decode(encode(%q))) diverged: %v vs %v", text, first, second)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("encode(decode(encode(%q))) diverged at %d: %v vs %v", text, i, first, second)
			}
		}
	}
}

// TestSpecialTokenPriority checks that a special token's bytes are matched
// atomically and the surrounding text tokenizes as if the special bytes
// were never there.
func TestSpecialTokenPriority(t *testing.T) {
	vocab := byteVocab()
	specials := []SpecialEntry{{ID: 1000, Bytes: []byte("<|endoftext|>")}}
	def, err := NewDefinition(vocab, specials, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	f, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	withSpecial, err := f.Encode("hello<|endoftext|>hello", true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	withoutSpecial, err := f.Encode("hellohello", true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	specialCount := 0
	specialIdx := -1
	for i, id := range withSpecial {
		if id == 1000 {
			specialCount++
			specialIdx = i
		}
	}
	if specialCount != 1 {
		t.Fatalf("expected exactly one special id 1000, got %d occurrences in %v", specialCount, withSpecial)
	}

	surrounding := append(append([]uint32{}, withSpecial[:specialIdx]...), withSpecial[specialIdx+1:]...)
	if len(surrounding) != len(withoutSpecial) {
		t.Fatalf("surrounding tokens %v do not match the special-free encode %v", surrounding, withoutSpecial)
	}
	for i := range surrounding {
		if surrounding[i] != withoutSpecial[i] {
			t.Fatalf("surrounding tokens %v do not match the special-free encode %v", surrounding, withoutSpecial)
		}
	}
}

// TestByteFallbackRoundTripsArbitraryByte checks Testable Property 7: with
// fallback enabled, an input containing byte 0xFF encodes to the 0xFF byte
// token and decodes back to 0xFF.
func TestByteFallbackRoundTripsArbitraryByte(t *testing.T) {
	vocab := asciiOnlyVocab() // bytes 0-127 only
	cfg := DefaultConfig()
	cfg.Mode.CharMode = true
	cfg.Fallback.ByteFallback = true

	// Add the single byte 0xFF as its own vocabulary entry so the
	// byte-fallback decomposition has somewhere to land, matching how a
	// real byte-level vocabulary always covers all 256 byte values.
	vocab = append(vocab, VocabEntry{ID: 255, Bytes: []byte{0xff}})

	def, err := NewDefinition(vocab, nil, nil, cfg)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	f, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ids, err := f.Encode("\xff", true)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(ids) != 1 || ids[0] != 255 {
		t.Fatalf("got %v, want [255]", ids)
	}

	out, err := f.Decode(ids, true)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out) != 1 || out[0] != 0xff {
		t.Fatalf("got %v, want a single 0xff byte", out)
	}
}
