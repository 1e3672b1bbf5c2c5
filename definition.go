// Package tokenizer implements a merge-list-free tokenizer core compatible
// with SentencePiece BPE/Unigram, HuggingFace Tokenizers BPE/Unigram/WordPiece,
// Tiktoken BPE, and Tekken BPE vocabularies.
//
// The package centers on three collaborating pieces: a [Definition] (the
// persistent vocabulary/config model), a [Facade] (the constructed,
// read-optimized tokenizer built from a Definition), and a binary codec
// plus a family of foreign-format converters that produce Definitions.
//
// # Basic usage
//
//	def, _, err := tokenizer.FromTiktoken(tiktokenBytes)
//	facade, err := tokenizer.New(def)
//	ids, err := facade.Encode("hello world", true)
//	text, err := facade.Decode(ids, true)
package tokenizer

import "unicode/utf8"

// VocabEntry is one (bytes, id) pair in the vocabulary. Order expresses merge
// priority: lower index is higher priority (§3 "Vocabulary").
type VocabEntry struct {
	Bytes []byte
	ID    uint32
}

// SpecialEntry is one (bytes, id) pair among the special tokens. Order
// expresses split priority during input scanning (§3 "Specials").
type SpecialEntry struct {
	Bytes []byte
	ID    uint32
}

// Definition is the persistent, serializable tokenizer model: vocabulary,
// specials, optional per-piece scores, and configuration (§3).
//
// A Definition is immutable after construction; NewDefinition validates all
// invariants and fails with a *DefinitionError otherwise. Use WithConfig to
// obtain a revalidated copy with a different Config.
type Definition struct {
	vocab    []VocabEntry
	specials []SpecialEntry
	scores   []float32
	config   Config
}

// NewDefinition constructs and validates a Definition. Scores may be nil
// unless config.Mode.Kind is ModeUnigram.
func NewDefinition(vocab []VocabEntry, specials []SpecialEntry, scores []float32, config Config) (*Definition, error) {
	d := &Definition{
		vocab:    append([]VocabEntry(nil), vocab...),
		specials: append([]SpecialEntry(nil), specials...),
		scores:   append([]float32(nil), scores...),
		config:   config,
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Definition) validate() error {
	if len(d.vocab) == 0 {
		return NewDefinitionError("validate", "vocabulary", ErrEmptyVocabulary)
	}
	if len(d.scores) > 0 && len(d.scores) != len(d.vocab) {
		return NewDefinitionError("validate", "scores", ErrScoreCountMismatch)
	}
	if d.config.Mode.Kind == ModeUnigram && len(d.scores) == 0 {
		return NewDefinitionError("validate", "scores", ErrMissingScores)
	}

	seenBytes := make(map[string]struct{}, len(d.vocab)+len(d.specials))
	seenIDs := make(map[uint32]struct{}, len(d.vocab))
	for _, v := range d.vocab {
		key := string(v.Bytes)
		if _, dup := seenBytes[key]; dup {
			return NewDefinitionError("validate", "vocabulary bytes", ErrByteCollision)
		}
		seenBytes[key] = struct{}{}
		if _, dup := seenIDs[v.ID]; dup {
			return NewDefinitionError("validate", "vocabulary id", ErrIDCollision)
		}
		seenIDs[v.ID] = struct{}{}
	}

	specialIDs := make(map[uint32]struct{}, len(d.specials))
	for _, s := range d.specials {
		key := string(s.Bytes)
		if _, dup := seenBytes[key]; dup {
			return NewDefinitionError("validate", "special bytes", ErrByteCollision)
		}
		seenBytes[key] = struct{}{}
		if !utf8.Valid(s.Bytes) {
			return NewDefinitionError("validate", "special bytes", ErrSpecialNotUTF8)
		}
		specialIDs[s.ID] = struct{}{}
	}

	for _, role := range []RoleID{
		d.config.Specials.Unk, d.config.Specials.Pad, d.config.Specials.BOS,
		d.config.Specials.EOS, d.config.Specials.Sep, d.config.Specials.Mask,
	} {
		if !role.Set {
			continue
		}
		if _, ok := specialIDs[role.ID]; !ok {
			if _, ok := seenIDs[role.ID]; !ok {
				return NewDefinitionError("validate", "special role", ErrDanglingRole)
			}
		}
	}
	return nil
}

// Vocabulary returns a copy of the vocabulary entries in priority order.
func (d *Definition) Vocabulary() []VocabEntry {
	out := make([]VocabEntry, len(d.vocab))
	for i, v := range d.vocab {
		out[i] = VocabEntry{Bytes: append([]byte(nil), v.Bytes...), ID: v.ID}
	}
	return out
}

// Specials returns a copy of the special-token entries in split-priority order.
func (d *Definition) Specials() []SpecialEntry { return append([]SpecialEntry(nil), d.specials...) }

// Scores returns a copy of the per-vocab-entry scores, or nil if absent.
func (d *Definition) Scores() []float32 {
	if len(d.scores) == 0 {
		return nil
	}
	return append([]float32(nil), d.scores...)
}

// Config returns the configuration accompanying this definition.
func (d *Definition) Config() Config { return d.config }

// WithConfig returns a new Definition sharing this one's vocabulary, specials
// and scores but with cfg substituted, revalidated (§4.A "Config mutation via
// replacement only; any partial edit re-runs validation").
func (d *Definition) WithConfig(cfg Config) (*Definition, error) {
	return NewDefinition(d.vocab, d.specials, d.scores, cfg)
}

// Equal reports whether two definitions have identical content (§4.A
// "compare for equality by content").
func (d *Definition) Equal(other *Definition) bool {
	if other == nil {
		return false
	}
	if len(d.vocab) != len(other.vocab) || len(d.specials) != len(other.specials) || len(d.scores) != len(other.scores) {
		return false
	}
	for i := range d.vocab {
		if d.vocab[i].ID != other.vocab[i].ID || string(d.vocab[i].Bytes) != string(other.vocab[i].Bytes) {
			return false
		}
	}
	for i := range d.specials {
		if d.specials[i].ID != other.specials[i].ID || string(d.specials[i].Bytes) != string(other.specials[i].Bytes) {
			return false
		}
	}
	for i := range d.scores {
		if d.scores[i] != other.scores[i] {
			return false
		}
	}
	return d.config.Equal(other.config)
}
