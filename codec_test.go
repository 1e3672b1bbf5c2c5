package tokenizer

import (
	"testing"
)

func TestDefinitionBinaryRoundTrip(t *testing.T) {
	vocab := simpleVocab("a", "b", "c", "d")
	specials := []SpecialEntry{{ID: 100, Bytes: []byte("<bos>")}, {ID: 101, Bytes: []byte("<eos>")}}
	cfg := DefaultConfig()
	cfg.Specials.BOS = RoleID{ID: 100, Set: true}
	cfg.Specials.EOS = RoleID{ID: 101, Set: true}
	cfg.Normalization.Scheme = UnicodeNFC
	cfg.Fallback.ByteFallback = true

	def, err := NewDefinition(vocab, specials, nil, cfg)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}

	data := DefinitionToBytes(def)

	got, err := DefinitionFromBytes(data)
	if err != nil {
		t.Fatalf("DefinitionFromBytes: %v", err)
	}

	if !def.Equal(got) {
		t.Fatalf("round-tripped definition does not match original")
	}
	if !got.Config().Fallback.ByteFallback {
		t.Fatalf("round-tripped config lost ByteFallback=true")
	}
	if got.Config().Normalization.Scheme != UnicodeNFC {
		t.Fatalf("round-tripped config lost normalization scheme")
	}
	if got.Config().Specials.BOS.ID != 100 || !got.Config().Specials.BOS.Set {
		t.Fatalf("round-tripped config lost BOS role")
	}
}

func TestDefinitionBinaryRoundTripWithScores(t *testing.T) {
	vocab := simpleVocab("a", "b", "c")
	scores := []float32{-1.0, -2.5, -0.1}
	cfg := DefaultConfig()
	cfg.Mode = Mode{Kind: ModeUnigram}

	def, err := NewDefinition(vocab, nil, scores, cfg)
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}

	data := DefinitionToBytes(def)
	got, err := DefinitionFromBytes(data)
	if err != nil {
		t.Fatalf("DefinitionFromBytes: %v", err)
	}

	gotScores := got.Scores()
	if len(gotScores) != len(scores) {
		t.Fatalf("got %d scores, want %d", len(gotScores), len(scores))
	}
	for i := range scores {
		if gotScores[i] != scores[i] {
			t.Fatalf("score %d: got %v, want %v", i, gotScores[i], scores[i])
		}
	}
}

func TestDefinitionFromBytesRejectsGarbage(t *testing.T) {
	_, err := DefinitionFromBytes([]byte("this is not a tokenizer definition in any known format"))
	if err == nil {
		t.Fatalf("expected an error for unrecognized data")
	}
}

func TestDefinitionFromBytesEmptyInput(t *testing.T) {
	_, err := DefinitionFromBytes(nil)
	if err == nil {
		t.Fatalf("expected an error for empty input")
	}
}
