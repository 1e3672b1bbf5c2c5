package tokenizer

import (
	"errors"

	"github.com/agentstation/tokenizer/internal/decoder"
	"github.com/agentstation/tokenizer/internal/normalize"
)

// Encode tokenizes text into ids (§4.H "encode"). When encodeSpecials is
// true, special-token spans are recognized and emitted as their own ids
// (before and after which bos/eos templates, if enabled, are applied);
// when false, special-token scanning is skipped and the whole input runs
// through ordinary normalization/splitting/encoding.
func (f *Facade) Encode(text string, encodeSpecials bool) ([]uint32, error) {
	normalized := normalize.Normalize([]byte(text), f.normCfg)
	segments := f.splitter.Split(normalized, encodeSpecials)

	var ids []uint32
	if encodeSpecials && f.def.config.Templates.Enable {
		ids = append(ids, f.def.config.Templates.BOS...)
	}

	offset := 0
	for _, seg := range segments {
		if seg.IsSpecial {
			ids = append(ids, seg.SpecialID)
			offset += len(seg.Bytes)
			continue
		}
		segIDs, err := f.encodeSegment(seg.Bytes, offset)
		if err != nil {
			return nil, err
		}
		ids = append(ids, segIDs...)
		offset += len(seg.Bytes)
	}

	if encodeSpecials && f.def.config.Templates.Enable {
		ids = append(ids, f.def.config.Templates.EOS...)
	}

	return ids, nil
}

// encodeSegment runs one non-special segment through the configured
// encoding mode, applying the byte-fallback/unk-id/error precedence when
// a piece is unencodable (§9 "byte-fallback wins if enabled, else unk_id,
// else error").
func (f *Facade) encodeSegment(segment []byte, byteOffset int) ([]uint32, error) {
	switch f.def.config.Mode.Kind {
	case ModeBytePair:
		ids, err := f.bytePair.PerformBPE(segment)
		if err != nil {
			return f.onUnencodable(segment, byteOffset, err)
		}
		return ids, nil

	case ModeUnigram:
		ids, isUnk, err := f.unigram.Encode(segment)
		if err != nil {
			return f.onUnencodable(segment, byteOffset, err)
		}
		return f.substituteUnigramUnk(ids, isUnk), nil

	case ModeWordPiece:
		ids, err := f.wordpiece.Encode(segment)
		if err != nil {
			return f.onWordPieceFailure(segment, byteOffset)
		}
		return ids, nil

	default:
		return nil, NewEncodeError("encode", byteOffset, segment, errors.New("unrecognized mode"))
	}
}

// substituteUnigramUnk replaces the placeholder id the Unigram processor
// emits for single-byte unk fallback steps (marked by isUnk, not by the id
// value itself, since a legitimately matched vocabulary entry can also have
// id 0) with the configured unk role id, if any.
func (f *Facade) substituteUnigramUnk(ids []uint32, isUnk []bool) []uint32 {
	if !f.unkID.Set {
		return ids
	}
	for i, unk := range isUnk {
		if unk {
			ids[i] = f.unkID.ID
		}
	}
	return ids
}

func (f *Facade) onUnencodable(segment []byte, byteOffset int, cause error) ([]uint32, error) {
	switch f.def.config.Fallback.OnUnknown {
	case UnknownID:
		if f.unkID.Set {
			return []uint32{f.unkID.ID}, nil
		}
	case UnknownSkip:
		return nil, nil
	}
	_ = cause
	return nil, NewEncodeError("encode", byteOffset, segment, ErrUnencodable)
}

func (f *Facade) onWordPieceFailure(segment []byte, byteOffset int) ([]uint32, error) {
	switch f.def.config.Fallback.OnUnknown {
	case UnknownID:
		if f.unkID.Set {
			return []uint32{f.unkID.ID}, nil
		}
	case UnknownSkip:
		return nil, nil
	}
	return nil, NewEncodeError("encode", byteOffset, segment, ErrUnencodable)
}

// Decode renders ids back to bytes (§4.H "decode").
func (f *Facade) Decode(ids []uint32, decodeSpecials bool) ([]byte, error) {
	cfg := f.dec.Config
	cfg.DecodeSpecials = decodeSpecials
	d := *f.dec
	d.Config = cfg
	out, err := d.Decode(ids)
	if err != nil {
		var unk *decoder.UnknownTokenError
		if errors.As(err, &unk) {
			return nil, NewDecodeError("decode", int(unk.ID), ErrUnknownTokenID)
		}
		return nil, err
	}
	return out, nil
}

// EncodeAll maps Encode over inputs. Implementations may share working
// buffers within the call but the returned results are independent and
// the call itself is not safe to invoke concurrently with other EncodeAll/
// Encode calls that mutate shared per-call state (§5).
func (f *Facade) EncodeAll(texts []string, encodeSpecials bool) ([][]uint32, error) {
	out := make([][]uint32, len(texts))
	for i, t := range texts {
		ids, err := f.Encode(t, encodeSpecials)
		if err != nil {
			return nil, err
		}
		out[i] = ids
	}
	return out, nil
}

// DecodeAll maps Decode over inputs.
func (f *Facade) DecodeAll(idsList [][]uint32, decodeSpecials bool) ([][]byte, error) {
	out := make([][]byte, len(idsList))
	for i, ids := range idsList {
		b, err := f.Decode(ids, decodeSpecials)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// EncodeOptimistic is the supplemented "optimistic count" operation
// (SPEC_FULL.md §12): it runs Encode and returns the number of ids with
// exact=true. If Encode fails, it returns the byte length of the whole
// input with exact=false instead of an error; no per-segment estimate is
// made. Useful for budget checks where an exact failure is not actionable.
func (f *Facade) EncodeOptimistic(text string, encodeSpecials bool) (count int, exact bool) {
	ids, err := f.Encode(text, encodeSpecials)
	if err == nil {
		return len(ids), true
	}
	return len(text), false
}
