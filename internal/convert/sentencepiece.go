// SentencePiece conversion (§4.C). Parses the ModelProto wire format
// directly with protowire rather than generated message types — the
// field numbers below are the public, stable layout of SentencePiece's
// model.proto (pieces=1, trainer_spec=2, normalizer_spec=3; nested
// SentencePiece.piece=1/score=2/type=3; TrainerSpec.model_type=3/
// byte_fallback=35; NormalizerSpec.name=1/precompiled_charsmap=2/
// add_dummy_prefix=3/remove_extra_whitespaces=4/escape_whitespaces=5).
//
// Grounded on other_examples/00974ecc (lancekrogers-go-token-counter's
// spm.Processor), which parses the same ModelProto shape through
// generated code; we reimplement its field reads over protowire so the
// converter needs no protoc-generated package, while keeping its
// byte_fallback / piece-type handling.
package convert

import (
	"fmt"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	spPieceTypeNormal      = 1
	spPieceTypeUnknown     = 2
	spPieceTypeControl     = 3
	spPieceTypeUserDefined = 4
	spPieceTypeUnused      = 5
	spPieceTypeByte        = 6

	spModelUnigram = 1
	spModelBPE     = 2
	spModelWord    = 3
	spModelChar    = 4
)

type spPiece struct {
	Piece string
	Score float32
	Type  int32
}

type spTrainerSpec struct {
	ModelType    int32
	ByteFallback bool
}

type spNormalizerSpec struct {
	Name                   string
	PrecompiledCharsmap    []byte
	AddDummyPrefix         bool
	RemoveExtraWhitespaces bool
	EscapeWhitespaces      bool
	HasAddDummyPrefix      bool
	HasEscapeWhitespaces   bool
}

type spModel struct {
	Pieces     []spPiece
	Trainer    spTrainerSpec
	Normalizer spNormalizerSpec
}

func parseSentencePieceModel(data []byte) (*spModel, error) {
	m := &spModel{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("sentencepiece: bad tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("sentencepiece: bad piece: %w", protowire.ParseError(n))
			}
			piece, err := parseSentencePieceEntry(v)
			if err != nil {
				return nil, err
			}
			m.Pieces = append(m.Pieces, piece)
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("sentencepiece: bad trainer_spec: %w", protowire.ParseError(n))
			}
			trainer, err := parseTrainerSpec(v)
			if err != nil {
				return nil, err
			}
			m.Trainer = trainer
			b = b[n:]
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("sentencepiece: bad normalizer_spec: %w", protowire.ParseError(n))
			}
			norm, err := parseNormalizerSpec(v)
			if err != nil {
				return nil, err
			}
			m.Normalizer = norm
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("sentencepiece: bad field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return m, nil
}

func parseSentencePieceEntry(data []byte) (spPiece, error) {
	p := spPiece{Type: spPieceTypeNormal}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return p, fmt.Errorf("sentencepiece: bad piece tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return p, fmt.Errorf("sentencepiece: bad piece text: %w", protowire.ParseError(n))
			}
			p.Piece = string(v)
			b = b[n:]
		case num == 2 && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return p, fmt.Errorf("sentencepiece: bad piece score: %w", protowire.ParseError(n))
			}
			p.Score = protowire.DecodeFloat(v)
			b = b[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return p, fmt.Errorf("sentencepiece: bad piece type: %w", protowire.ParseError(n))
			}
			p.Type = int32(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return p, fmt.Errorf("sentencepiece: bad piece field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return p, nil
}

func parseTrainerSpec(data []byte) (spTrainerSpec, error) {
	var t spTrainerSpec
	t.ModelType = spModelUnigram
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return t, fmt.Errorf("sentencepiece: bad trainer tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return t, fmt.Errorf("sentencepiece: bad model_type: %w", protowire.ParseError(n))
			}
			t.ModelType = int32(v)
			b = b[n:]
		case num == 35 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return t, fmt.Errorf("sentencepiece: bad byte_fallback: %w", protowire.ParseError(n))
			}
			t.ByteFallback = v != 0
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return t, fmt.Errorf("sentencepiece: bad trainer field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return t, nil
}

func parseNormalizerSpec(data []byte) (spNormalizerSpec, error) {
	var ns spNormalizerSpec
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return ns, fmt.Errorf("sentencepiece: bad normalizer tag: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return ns, fmt.Errorf("sentencepiece: bad normalizer name: %w", protowire.ParseError(n))
			}
			ns.Name = string(v)
			b = b[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return ns, fmt.Errorf("sentencepiece: bad charsmap: %w", protowire.ParseError(n))
			}
			ns.PrecompiledCharsmap = append([]byte(nil), v...)
			b = b[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return ns, fmt.Errorf("sentencepiece: bad add_dummy_prefix: %w", protowire.ParseError(n))
			}
			ns.AddDummyPrefix = v != 0
			ns.HasAddDummyPrefix = true
			b = b[n:]
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return ns, fmt.Errorf("sentencepiece: bad remove_extra_whitespaces: %w", protowire.ParseError(n))
			}
			ns.RemoveExtraWhitespaces = v != 0
			b = b[n:]
		case num == 5 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return ns, fmt.Errorf("sentencepiece: bad escape_whitespaces: %w", protowire.ParseError(n))
			}
			ns.EscapeWhitespaces = v != 0
			ns.HasEscapeWhitespaces = true
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return ns, fmt.Errorf("sentencepiece: bad normalizer field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return ns, nil
}

// normalizerRuleName translates a SentencePiece normalizer_spec name
// (e.g. "nmt_nfkc", "identity", "nfkc") to a normalization scheme tag,
// per §4.C "translate the normalizer's name".
func normalizerRuleName(name string) string {
	switch name {
	case "nfkc", "nmt_nfkc", "nmt_nfkc_cf":
		return "nfkc"
	case "nfc":
		return "nfc"
	case "nfd":
		return "nfd"
	case "nfkd":
		return "nfkd"
	default:
		return "none"
	}
}

// sortByScoreThenID orders pieces by descending score, ties broken by
// ascending id — the merge-priority order BPE vocabularies need (§4.C
// "generate a merge list by sorting pieces by descending score with ties
// broken by id, then sort the vocabulary by the same priority").
func sortByScoreThenID(order []int, score func(i int) float32) {
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := score(order[a]), score(order[b])
		if sa != sb {
			return sa > sb
		}
		return order[a] < order[b]
	})
}
