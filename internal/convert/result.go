// Package convert implements component C: format converters that load a
// foreign tokenizer representation and normalize it into the plain data
// this package exposes as Result. The root package's convert.go maps a
// Result onto a Definition/Config, keeping this package free of a
// dependency on the root package (which depends on convert, not the
// other way around).
package convert

// Warning is a dropped, unsupported-but-droppable feature, never an
// error (§4.C, §7 "unsupported-but-droppable features ... dropped with a
// warning").
type Warning struct {
	Feature string
	Detail  string
}

// Entry mirrors codec.Entry without importing the codec package, to keep
// convert's dependency surface to protobuf/json/base64 decoders only.
type Entry struct {
	ID    uint32
	Bytes []byte
}

// ModeResult describes the inferred encoding mode.
type ModeResult struct {
	Kind             string // "bytepair" | "unigram" | "wordpiece"
	CharMode         bool
	ContinuingPrefix []byte
	MaxWordLen       uint32
}

// NormalizationResult mirrors config.NormalizationConfig with plain
// fields so this package need not import the root package.
type NormalizationResult struct {
	Scheme              string // "none"|"nfc"|"nfd"|"nfkc"|"nfkd"
	Fold                string // "none"|"lower"|"upper"
	StripAccents         bool
	StripControls        bool
	CollapseWhitespace   bool
	EscapeWhitespace     []byte
	Prepend              string // "never"|"first"|"always"
	CharsMapTable        map[string][]byte
	Replacements         [][2][]byte
}

// SplitResult mirrors config.SplitConfig.
type SplitResult struct {
	Pattern          string
	ScriptSplit      bool
	WhitespaceSplit  bool
	DigitSplit       bool
	PunctuationSplit bool
}

// DecodingResult mirrors config.DecodingConfig.
type DecodingResult struct {
	StripPrefix    []byte
	Replacements   [][2][]byte
	ByteLevel      bool
	DecodeSpecials bool
}

// TemplatesResult mirrors config.Templates.
type TemplatesResult struct {
	BOS    []uint32
	EOS    []uint32
	Enable bool
}

// SpecialsResult names each role by special-token bytes (resolved to ids
// by the caller once the specials list is final), empty meaning unset.
type SpecialsResult struct {
	Unk, Pad, BOS, EOS, Sep, Mask []byte
}

// FallbackResult mirrors config.FallbackConfig.
type FallbackResult struct {
	ByteFallback bool
	OnUnknown    string // "error"|"id"|"skip"
}

// Result is everything a converter produces from one foreign file.
type Result struct {
	Vocab         []Entry
	Specials      []Entry
	Scores        []float32 // nil unless mode is unigram
	Mode          ModeResult
	Normalization NormalizationResult
	Split         SplitResult
	Decoding      DecodingResult
	Templates     TemplatesResult
	Roles         SpecialsResult
	Fallback      FallbackResult
	Warnings      []Warning
}
