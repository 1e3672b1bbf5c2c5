package tokenizer

import (
	"errors"
	"testing"
)

func simpleVocab(words ...string) []VocabEntry {
	vocab := make([]VocabEntry, len(words))
	for i, w := range words {
		vocab[i] = VocabEntry{ID: uint32(i), Bytes: []byte(w)}
	}
	return vocab
}

func TestNewDefinitionValidation(t *testing.T) {
	t.Run("empty vocabulary rejected", func(t *testing.T) {
		_, err := NewDefinition(nil, nil, nil, DefaultConfig())
		if !errors.Is(err, ErrEmptyVocabulary) {
			t.Fatalf("got %v, want ErrEmptyVocabulary", err)
		}
	})

	t.Run("duplicate bytes rejected", func(t *testing.T) {
		vocab := []VocabEntry{{ID: 0, Bytes: []byte("a")}, {ID: 1, Bytes: []byte("a")}}
		_, err := NewDefinition(vocab, nil, nil, DefaultConfig())
		if !errors.Is(err, ErrByteCollision) {
			t.Fatalf("got %v, want ErrByteCollision", err)
		}
	})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		vocab := []VocabEntry{{ID: 0, Bytes: []byte("a")}, {ID: 0, Bytes: []byte("b")}}
		_, err := NewDefinition(vocab, nil, nil, DefaultConfig())
		if !errors.Is(err, ErrIDCollision) {
			t.Fatalf("got %v, want ErrIDCollision", err)
		}
	})

	t.Run("special bytes colliding with vocab rejected", func(t *testing.T) {
		vocab := simpleVocab("a", "b")
		specials := []SpecialEntry{{ID: 10, Bytes: []byte("a")}}
		_, err := NewDefinition(vocab, specials, nil, DefaultConfig())
		if !errors.Is(err, ErrByteCollision) {
			t.Fatalf("got %v, want ErrByteCollision", err)
		}
	})

	t.Run("non-UTF8 special rejected", func(t *testing.T) {
		vocab := simpleVocab("a", "b")
		specials := []SpecialEntry{{ID: 10, Bytes: []byte{0xff, 0xfe}}}
		_, err := NewDefinition(vocab, specials, nil, DefaultConfig())
		if !errors.Is(err, ErrSpecialNotUTF8) {
			t.Fatalf("got %v, want ErrSpecialNotUTF8", err)
		}
	})

	t.Run("score count mismatch rejected", func(t *testing.T) {
		vocab := simpleVocab("a", "b")
		_, err := NewDefinition(vocab, nil, []float32{1.0}, DefaultConfig())
		if !errors.Is(err, ErrScoreCountMismatch) {
			t.Fatalf("got %v, want ErrScoreCountMismatch", err)
		}
	})

	t.Run("unigram mode requires scores", func(t *testing.T) {
		vocab := simpleVocab("a", "b")
		cfg := DefaultConfig()
		cfg.Mode = Mode{Kind: ModeUnigram}
		_, err := NewDefinition(vocab, nil, nil, cfg)
		if !errors.Is(err, ErrMissingScores) {
			t.Fatalf("got %v, want ErrMissingScores", err)
		}
	})

	t.Run("dangling role rejected", func(t *testing.T) {
		vocab := simpleVocab("a", "b")
		cfg := DefaultConfig()
		cfg.Specials.Unk = RoleID{ID: 999, Set: true}
		_, err := NewDefinition(vocab, nil, nil, cfg)
		if !errors.Is(err, ErrDanglingRole) {
			t.Fatalf("got %v, want ErrDanglingRole", err)
		}
	})

	t.Run("role resolved against vocab id is accepted", func(t *testing.T) {
		vocab := simpleVocab("a", "b")
		cfg := DefaultConfig()
		cfg.Specials.Unk = RoleID{ID: 0, Set: true}
		if _, err := NewDefinition(vocab, nil, nil, cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("valid definition accepted", func(t *testing.T) {
		vocab := simpleVocab("a", "b", "c")
		def, err := NewDefinition(vocab, nil, nil, DefaultConfig())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(def.Vocabulary()) != 3 {
			t.Fatalf("got %d vocab entries, want 3", len(def.Vocabulary()))
		}
	})
}

func TestDefinitionVocabularyIsACopy(t *testing.T) {
	def, err := NewDefinition(simpleVocab("a", "b"), nil, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := def.Vocabulary()
	v[0].Bytes[0] = 'z'
	if string(def.Vocabulary()[0].Bytes) != "a" {
		t.Fatalf("mutating a returned slice affected the definition")
	}
}

func TestDefinitionWithConfigRevalidates(t *testing.T) {
	def, err := NewDefinition(simpleVocab("a", "b"), nil, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badCfg := DefaultConfig()
	badCfg.Mode = Mode{Kind: ModeUnigram}
	if _, err := def.WithConfig(badCfg); !errors.Is(err, ErrMissingScores) {
		t.Fatalf("got %v, want ErrMissingScores", err)
	}

	okCfg := DefaultConfig()
	okCfg.Fallback.ByteFallback = true
	updated, err := def.WithConfig(okCfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Config().Fallback.ByteFallback {
		t.Fatalf("updated config was not applied")
	}
}

func TestDefinitionEqual(t *testing.T) {
	a, _ := NewDefinition(simpleVocab("a", "b"), nil, nil, DefaultConfig())
	b, _ := NewDefinition(simpleVocab("a", "b"), nil, nil, DefaultConfig())
	c, _ := NewDefinition(simpleVocab("a", "c"), nil, nil, DefaultConfig())

	if !a.Equal(b) {
		t.Fatalf("expected equal definitions to compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected different definitions to compare unequal")
	}
	if a.Equal(nil) {
		t.Fatalf("expected comparison against nil to be false")
	}
}

func TestDefinitionEqualCatchesConfigOnlyDifference(t *testing.T) {
	vocab := simpleVocab("a", "b")
	cfgA := DefaultConfig()
	cfgB := DefaultConfig()
	cfgB.Fallback.ByteFallback = true

	a, _ := NewDefinition(vocab, nil, nil, cfgA)
	b, _ := NewDefinition(vocab, nil, nil, cfgB)

	if a.Equal(b) {
		t.Fatalf("expected definitions differing only in config to compare unequal")
	}
}
