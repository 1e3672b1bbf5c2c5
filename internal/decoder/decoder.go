// Package decoder implements component G: turning a sequence of token ids
// back into bytes. It mirrors the Facade's encode-side pipeline in
// reverse — special-token stripping, inverse byte-level mapping, ordered
// textual replacements, and an optional leading-marker strip — each stage
// grounded on the teacher's llama3 Decode path (llama3/tokenizer.go
// Decode, llama3/internal/encoding/encoding.go for the byte-level
// inverse).
package decoder

import "bytes"

// ReplacementRule is one ordered decode-time byte replacement (e.g. the
// escape-whitespace marker "▁" back to a literal space).
type ReplacementRule struct {
	From []byte
	To   []byte
}

// Config carries the decode-time knobs from the root Definition's config.
type Config struct {
	StripPrefix    []byte
	Replacements   []ReplacementRule
	ByteLevel      bool
	DecodeSpecials bool
}

// UnknownPolicy controls behavior when an id has no vocabulary entry.
type UnknownPolicy int

const (
	UnknownError UnknownPolicy = iota
	UnknownSkip
)

// ByteLevelCodec is the subset of internal/bytelevel.Mapping the decoder
// needs, kept as an interface to avoid a hard dependency when byte-level
// mode is off.
type ByteLevelCodec interface {
	Decode(s string) []byte
}

// UnknownTokenError reports an id absent from the vocabulary and specials
// table, surfaced as UnknownTokenId per §7 unless the unknown policy is
// set to skip.
type UnknownTokenError struct{ ID uint32 }

func (e *UnknownTokenError) Error() string { return "decoder: unknown token id" }

// Decoder converts ids to bytes given a flat id->bytes lookup built from
// the Definition's vocabulary and specials.
type Decoder struct {
	BytesByID  map[uint32][]byte
	SpecialIDs map[uint32]bool
	Config     Config
	Unknown    UnknownPolicy
	ByteLevel  ByteLevelCodec // required when Config.ByteLevel is true
}

// Decode renders ids to bytes. Specials are dropped unless DecodeSpecials
// is set; an id with no lookup entry either fails with UnknownTokenError
// or is skipped, per Unknown.
func (d *Decoder) Decode(ids []uint32) ([]byte, error) {
	var buf []byte
	for _, id := range ids {
		if d.SpecialIDs[id] && !d.Config.DecodeSpecials {
			continue
		}
		raw, ok := d.BytesByID[id]
		if !ok {
			if d.Unknown == UnknownSkip {
				continue
			}
			return nil, &UnknownTokenError{ID: id}
		}
		buf = append(buf, raw...)
	}

	if d.Config.ByteLevel && d.ByteLevel != nil {
		buf = d.ByteLevel.Decode(string(buf))
	}

	if len(d.Config.StripPrefix) > 0 {
		buf = bytes.TrimPrefix(buf, d.Config.StripPrefix)
	}

	for _, rule := range d.Config.Replacements {
		if len(rule.From) == 0 {
			continue
		}
		buf = bytes.ReplaceAll(buf, rule.From, rule.To)
	}

	return buf, nil
}
