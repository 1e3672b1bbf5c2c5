package tokenizer

import (
	"encoding/json"
	"fmt"

	"github.com/agentstation/tokenizer/internal/codec"
)

// configBlob is the JSON-serialized form of Config stored inside the
// native binary envelope's config_blob field (§4.B). JSON keeps the blob
// human-diffable and avoids hand-rolling a second binary layout for a
// structure that changes shape far more often than the vocabulary.
type configBlob struct {
	Mode          Mode
	Split         SplitConfig
	Normalization NormalizationConfig
	Decoding      DecodingConfig
	Templates     Templates
	Specials      SpecialRoles
	Fallback      FallbackConfig
}

// DefinitionToBytes serializes def in the native binary format (§4.B).
func DefinitionToBytes(def *Definition) []byte {
	cfg := def.Config()
	blob, _ := json.Marshal(configBlob{
		Mode: cfg.Mode, Split: cfg.Split, Normalization: cfg.Normalization,
		Decoding: cfg.Decoding, Templates: cfg.Templates, Specials: cfg.Specials,
		Fallback: cfg.Fallback,
	})

	vocab := def.Vocabulary()
	entries := make([]codec.Entry, len(vocab))
	for i, v := range vocab {
		entries[i] = codec.Entry{ID: v.ID, Bytes: v.Bytes}
	}
	specials := def.Specials()
	specialEntries := make([]codec.Entry, len(specials))
	for i, s := range specials {
		specialEntries[i] = codec.Entry{ID: s.ID, Bytes: s.Bytes}
	}

	return codec.Encode(&codec.Native{
		ConfigBlob: blob,
		Vocab:      entries,
		Specials:   specialEntries,
		Scores:     def.Scores(),
	})
}

// DefinitionFromBytes auto-detects data's format and produces a
// Definition: native binary decodes directly, anything else is dispatched
// to the matching converter in priority order, the first to parse
// without error winning (§4.B).
func DefinitionFromBytes(data []byte) (*Definition, error) {
	candidates := codec.Detect(data)
	var lastErr error
	for _, format := range candidates {
		switch format {
		case codec.FormatNative:
			return definitionFromNative(data)
		case codec.FormatSentencePiece:
			if def, _, err := FromSentencePiece(data); err == nil {
				return def, nil
			} else {
				lastErr = err
			}
		case codec.FormatTokenizers:
			if def, _, err := FromTokenizers(data); err == nil {
				return def, nil
			} else {
				lastErr = err
			}
		case codec.FormatTiktoken:
			if def, _, err := FromTiktoken(data); err == nil {
				return def, nil
			} else {
				lastErr = err
			}
		case codec.FormatTekken:
			if def, _, err := FromTekken(data); err == nil {
				return def, nil
			} else {
				lastErr = err
			}
		}
	}
	if lastErr != nil {
		return nil, NewFormatError("detect", fmt.Errorf("%w: %v", ErrFormatUnrecognized, lastErr))
	}
	return nil, NewFormatError("detect", ErrFormatUnrecognized)
}

func definitionFromNative(data []byte) (*Definition, error) {
	native, err := codec.Decode(data)
	if err != nil {
		return nil, NewFormatError("decode", err)
	}

	var blob configBlob
	if err := json.Unmarshal(native.ConfigBlob, &blob); err != nil {
		return nil, NewFormatError("decode", fmt.Errorf("config_blob: %w", err))
	}
	cfg := Config{
		Mode: blob.Mode, Split: blob.Split, Normalization: blob.Normalization,
		Decoding: blob.Decoding, Templates: blob.Templates, Specials: blob.Specials,
		Fallback: blob.Fallback,
	}

	vocab := make([]VocabEntry, len(native.Vocab))
	for i, e := range native.Vocab {
		vocab[i] = VocabEntry{ID: e.ID, Bytes: e.Bytes}
	}
	specials := make([]SpecialEntry, len(native.Specials))
	for i, e := range native.Specials {
		specials[i] = SpecialEntry{ID: e.ID, Bytes: e.Bytes}
	}

	return NewDefinition(vocab, specials, native.Scores, cfg)
}
