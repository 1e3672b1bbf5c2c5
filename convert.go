package tokenizer

import "github.com/agentstation/tokenizer/internal/convert"

// FromSentencePiece parses a serialized SentencePiece ModelProto and
// produces a Definition with DefaultConfig()'s unset fields filled in
// from the model (§4.C, §6 "Specific format named constructors ...
// bypass auto-detect").
func FromSentencePiece(data []byte) (*Definition, []ConversionWarning, error) {
	res, err := convert.FromSentencePieceBytes(data)
	if err != nil {
		return nil, nil, NewConversionError("sentencepiece", "parse", err)
	}
	return definitionFromConvertResult("sentencepiece", res)
}

// FromTokenizers parses a HuggingFace tokenizer.json document.
func FromTokenizers(data []byte) (*Definition, []ConversionWarning, error) {
	res, err := convert.FromTokenizersBytes(data)
	if err != nil {
		return nil, nil, NewConversionError("tokenizers", "parse", err)
	}
	return definitionFromConvertResult("tokenizers", res)
}

// FromTiktoken parses a tiktoken "<base64> <id>" vocabulary file.
func FromTiktoken(data []byte) (*Definition, []ConversionWarning, error) {
	res, err := convert.FromTiktokenBytes(data)
	if err != nil {
		return nil, nil, NewConversionError("tiktoken", "parse", err)
	}
	return definitionFromConvertResult("tiktoken", res)
}

// FromTekken parses a Tekken JSON document.
func FromTekken(data []byte) (*Definition, []ConversionWarning, error) {
	res, err := convert.FromTekkenBytes(data)
	if err != nil {
		return nil, nil, NewConversionError("tekken", "parse", err)
	}
	return definitionFromConvertResult("tekken", res)
}

func definitionFromConvertResult(sourceFormat string, res *convert.Result) (*Definition, []ConversionWarning, error) {
	vocab := make([]VocabEntry, len(res.Vocab))
	for i, e := range res.Vocab {
		vocab[i] = VocabEntry{ID: e.ID, Bytes: e.Bytes}
	}
	specials := make([]SpecialEntry, len(res.Specials))
	for i, e := range res.Specials {
		specials[i] = SpecialEntry{ID: e.ID, Bytes: e.Bytes}
	}

	cfg := Config{
		Mode:          toMode(res.Mode),
		Split:         toSplitConfig(res.Split),
		Normalization: toNormalizationConfig(res.Normalization),
		Decoding:      toDecodingConfig(res.Decoding),
		Templates:     Templates{BOS: res.Templates.BOS, EOS: res.Templates.EOS, Enable: res.Templates.Enable},
		Fallback:      FallbackConfig{ByteFallback: res.Fallback.ByteFallback, OnUnknown: toUnknownPolicy(res.Fallback.OnUnknown)},
	}
	cfg.Specials = resolveRoles(res.Roles, vocab, specials)

	def, err := NewDefinition(vocab, specials, res.Scores, cfg)
	if err != nil {
		return nil, nil, NewConversionError(sourceFormat, "validate", err)
	}

	warnings := make([]ConversionWarning, len(res.Warnings))
	for i, w := range res.Warnings {
		warnings[i] = ConversionWarning{Feature: w.Feature, Detail: w.Detail}
	}
	return def, warnings, nil
}

func toMode(m convert.ModeResult) Mode {
	switch m.Kind {
	case "bytepair":
		return Mode{Kind: ModeBytePair, CharMode: m.CharMode}
	case "wordpiece":
		return Mode{Kind: ModeWordPiece, ContinuingPrefix: m.ContinuingPrefix, MaxWordLen: uint(m.MaxWordLen)}
	default:
		return Mode{Kind: ModeUnigram}
	}
}

func toSplitConfig(s convert.SplitResult) SplitConfig {
	return SplitConfig{
		Pattern: s.Pattern, ScriptSplit: s.ScriptSplit, WhitespaceSplit: s.WhitespaceSplit,
		DigitSplit: s.DigitSplit, PunctuationSplit: s.PunctuationSplit,
	}
}

func toNormalizationConfig(n convert.NormalizationResult) NormalizationConfig {
	cfg := NormalizationConfig{
		Scheme:              toScheme(n.Scheme),
		Fold:                toFold(n.Fold),
		StripAccents:        n.StripAccents,
		StripControls:       n.StripControls,
		CollapseWhitespace:  n.CollapseWhitespace,
		EscapeWhitespace:    n.EscapeWhitespace,
		HasEscapeWhitespace: len(n.EscapeWhitespace) > 0,
		Prepend:             toPrepend(n.Prepend),
	}
	if n.CharsMapTable != nil {
		maxLen := 0
		for k := range n.CharsMapTable {
			if len(k) > maxLen {
				maxLen = len(k)
			}
		}
		cfg.CharsMap = &CharsMap{Table: n.CharsMapTable, MaxKeyLen: maxLen}
	}
	for _, r := range n.Replacements {
		cfg.Replacements = append(cfg.Replacements, ReplacementRule{From: r[0], To: r[1]})
	}
	return cfg
}

func toDecodingConfig(d convert.DecodingResult) DecodingConfig {
	cfg := DecodingConfig{StripPrefix: d.StripPrefix, ByteLevel: d.ByteLevel, DecodeSpecials: d.DecodeSpecials}
	for _, r := range d.Replacements {
		cfg.Replacements = append(cfg.Replacements, ReplacementRule{From: r[0], To: r[1]})
	}
	return cfg
}

func toScheme(s string) UnicodeScheme {
	switch s {
	case "nfc":
		return UnicodeNFC
	case "nfd":
		return UnicodeNFD
	case "nfkc":
		return UnicodeNFKC
	case "nfkd":
		return UnicodeNFKD
	default:
		return UnicodeNone
	}
}

func toFold(s string) CaseFold {
	switch s {
	case "lower":
		return CaseFoldLower
	case "upper":
		return CaseFoldUpper
	default:
		return CaseFoldNone
	}
}

func toPrepend(s string) PrependScheme {
	switch s {
	case "first":
		return PrependFirst
	case "always":
		return PrependAlways
	default:
		return PrependNever
	}
}

func toUnknownPolicy(s string) UnknownPolicy {
	switch s {
	case "id":
		return UnknownID
	case "skip":
		return UnknownSkip
	default:
		return UnknownError
	}
}

// resolveRoles maps the byte-named roles a converter produced onto ids,
// searching specials first (the common case) then the vocabulary.
func resolveRoles(roles convert.SpecialsResult, vocab []VocabEntry, specials []SpecialEntry) SpecialRoles {
	lookup := make(map[string]uint32, len(vocab)+len(specials))
	for _, v := range vocab {
		lookup[string(v.Bytes)] = v.ID
	}
	for _, s := range specials {
		lookup[string(s.Bytes)] = s.ID
	}
	resolve := func(name []byte) RoleID {
		if len(name) == 0 {
			return RoleID{}
		}
		if id, ok := lookup[string(name)]; ok {
			return RoleID{ID: id, Set: true}
		}
		return RoleID{}
	}
	return SpecialRoles{
		Unk:  resolve(roles.Unk),
		Pad:  resolve(roles.Pad),
		BOS:  resolve(roles.BOS),
		EOS:  resolve(roles.EOS),
		Sep:  resolve(roles.Sep),
		Mask: resolve(roles.Mask),
	}
}
