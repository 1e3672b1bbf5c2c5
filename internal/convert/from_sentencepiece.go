package convert

import "sort"

// FromSentencePieceBytes parses a serialized ModelProto and produces a
// Result, per §4.C "SentencePiece".
func FromSentencePieceBytes(data []byte) (*Result, error) {
	model, err := parseSentencePieceModel(data)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	res.Fallback.ByteFallback = model.Trainer.ByteFallback
	res.Fallback.OnUnknown = "id"

	switch model.Trainer.ModelType {
	case spModelBPE:
		res.Mode = ModeResult{Kind: "bytepair", CharMode: true}
	case spModelUnigram, 0:
		res.Mode = ModeResult{Kind: "unigram"}
	default:
		res.Mode = ModeResult{Kind: "unigram"}
		res.Warnings = append(res.Warnings, Warning{
			Feature: "trainer_spec.model_type",
			Detail:  "WORD/CHAR model types have no direct equivalent; treated as Unigram",
		})
	}

	res.Normalization.Scheme = normalizerRuleName(model.Normalizer.Name)
	res.Normalization.EscapeWhitespace = []byte("▁")
	if model.Normalizer.HasEscapeWhitespaces && !model.Normalizer.EscapeWhitespaces {
		res.Normalization.EscapeWhitespace = nil
	}
	res.Normalization.Prepend = "never"
	if !model.Normalizer.HasAddDummyPrefix || model.Normalizer.AddDummyPrefix {
		res.Normalization.Prepend = "first"
	}
	res.Normalization.CollapseWhitespace = model.Normalizer.RemoveExtraWhitespaces
	if len(model.Normalizer.PrecompiledCharsmap) > 0 {
		// The darts-clone double-array trie inside precompiled_charsmap has
		// no publicly documented wire format outside SentencePiece's own C++
		// decoder; faithfully rebuilding it is out of reach without that
		// decoder to check against, so it is dropped with a warning (§7
		// "features the core cannot faithfully represent ... dropped with a
		// warning") rather than risk a silently wrong normalization table.
		res.Warnings = append(res.Warnings, Warning{
			Feature: "normalizer_spec.precompiled_charsmap",
			Detail:  "darts-clone trie decoding is not implemented; char-map normalization rules from this model are skipped",
		})
	}

	unkID := -1
	keepOrder := make([]int, 0, len(model.Pieces))
	for i, p := range model.Pieces {
		switch p.Type {
		case spPieceTypeUnknown:
			unkID = i
			res.Specials = append(res.Specials, Entry{ID: uint32(i), Bytes: []byte(p.Piece)})
		case spPieceTypeNormal, spPieceTypeUserDefined, spPieceTypeUnused, spPieceTypeByte:
			keepOrder = append(keepOrder, i)
		case spPieceTypeControl:
			res.Specials = append(res.Specials, Entry{ID: uint32(i), Bytes: []byte(p.Piece)})
		}
	}

	if res.Mode.Kind == "bytepair" {
		sortByScoreThenID(keepOrder, func(i int) float32 { return model.Pieces[i].Score })
	} else {
		sort.Ints(keepOrder) // Unigram keeps natural (already priority/score-bearing) order
	}

	res.Vocab = make([]Entry, 0, len(keepOrder))
	if res.Mode.Kind == "unigram" {
		res.Scores = make([]float32, 0, len(keepOrder))
	}
	for _, i := range keepOrder {
		p := model.Pieces[i]
		res.Vocab = append(res.Vocab, Entry{ID: uint32(i), Bytes: []byte(p.Piece)})
		if res.Mode.Kind == "unigram" {
			res.Scores = append(res.Scores, p.Score)
		}
	}

	if unkID >= 0 {
		res.Roles.Unk = []byte(model.Pieces[unkID].Piece)
	}

	return res, nil
}
