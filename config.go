package tokenizer

import "bytes"

// UnicodeScheme selects a unicode normalization form (§3 Config.normalization).
type UnicodeScheme uint8

const (
	UnicodeNone UnicodeScheme = iota
	UnicodeNFC
	UnicodeNFD
	UnicodeNFKC
	UnicodeNFKD
)

// CaseFold selects a case-folding policy.
type CaseFold uint8

const (
	CaseFoldNone CaseFold = iota
	CaseFoldLower
	CaseFoldUpper
)

// PrependScheme controls when the escape-whitespace byte is inserted at the
// start of normalized input (§3, §4.D step 6).
type PrependScheme uint8

const (
	PrependNever PrependScheme = iota
	PrependFirst
	PrependAlways
)

// UnknownPolicy controls what happens when a piece has no covering token and
// byte-fallback does not apply (§7, §9 "unknown-token policy").
type UnknownPolicy uint8

const (
	UnknownError UnknownPolicy = iota
	UnknownID
	UnknownSkip
)

// ModeKind tags which of the three merge-list-free algorithms a Config selects.
type ModeKind uint8

const (
	ModeBytePair ModeKind = iota
	ModeUnigram
	ModeWordPiece
)

// Mode is a tagged variant over {BytePairState, UnigramState, WordPieceState}
// precomputations (§9 "Dynamic dispatch over encoding modes"). Only the field
// matching Kind is meaningful.
type Mode struct {
	Kind ModeKind

	// BytePair
	CharMode bool

	// WordPiece
	ContinuingPrefix []byte
	MaxWordLen       uint
}

// ReplacementRule is an ordered (from, to) byte-span substitution.
type ReplacementRule struct {
	From []byte
	To   []byte
}

// CharsMap is a precompiled mapping of input byte spans to output byte spans,
// walked greedily left-to-right (§4.D step 1, the SentencePiece precompiled
// charsmap). A nil/empty CharsMap is a no-op stage.
type CharsMap struct {
	// Table maps an exact input span to its replacement. Longest match wins.
	Table map[string][]byte
	// MaxKeyLen is the longest key in Table, used to bound the greedy probe.
	MaxKeyLen int
}

// NormalizationConfig configures the normalizer pipeline (§4.D).
type NormalizationConfig struct {
	Scheme             UnicodeScheme
	Fold               CaseFold
	StripAccents       bool
	StripControls      bool
	CollapseWhitespace bool
	EscapeWhitespace   []byte // nil/empty means disabled, e.g. "▁" (▁)
	HasEscapeWhitespace bool
	Prepend            PrependScheme
	CharsMap           *CharsMap
	Replacements       []ReplacementRule
}

// SplitConfig configures pre-tokenization segmentation (§4.E).
type SplitConfig struct {
	Pattern         string // regexp2 (lookaround-capable) pattern; empty disables regex splitting
	ScriptSplit     bool
	WhitespaceSplit bool
	DigitSplit      bool
	PunctuationSplit bool
}

// DecodingConfig configures the decode-time inverse rules (§4.G).
type DecodingConfig struct {
	StripPrefix  []byte
	Replacements []ReplacementRule
	ByteLevel    bool // invert the Tokenizers "bytes" pre-tokenizer's byte<->char map
	DecodeSpecials bool
}

// Templates holds fixed bos/eos ids prepended/appended around an encoded
// sequence when requested (§4.F "Template application").
type Templates struct {
	BOS    []uint32
	EOS    []uint32
	Enable bool
}

// RoleID names the token of one special role by id. A role is "unset" when Set is false.
type RoleID struct {
	ID  uint32
	Set bool
}

// SpecialRoles collects the six recognized special-token roles (§3 Config.specials).
type SpecialRoles struct {
	Unk  RoleID
	Pad  RoleID
	BOS  RoleID
	EOS  RoleID
	Sep  RoleID
	Mask RoleID
}

// FallbackConfig controls unencodable-piece and unknown-id recovery (§3, §9).
type FallbackConfig struct {
	ByteFallback bool
	OnUnknown    UnknownPolicy
}

// Config is the persistent pipeline configuration accompanying a Definition (§3).
// Config is immutable once handed to a Facade: mutation is by wholesale
// replacement via Facade.SetConfig, never partial field edits (§4.A, §4.H).
type Config struct {
	Mode          Mode
	Split         SplitConfig
	Normalization NormalizationConfig
	Decoding      DecodingConfig
	Templates     Templates
	Specials      SpecialRoles
	Fallback      FallbackConfig
}

// DefaultConfig returns a Config with every stage disabled: BytePair byte
// mode, no normalization, no splitting (each span between special tokens is
// one segment), error-on-unknown.
// Mirrors the teacher's defaultEncodeOptions / constructor-sets-defaults
// convention (§9 "Configuration object ... defaulting ... done by the
// constructor, not by readers").
func DefaultConfig() Config {
	return Config{
		Mode:     Mode{Kind: ModeBytePair, CharMode: false},
		Split:    SplitConfig{},
		Fallback: FallbackConfig{OnUnknown: UnknownError},
	}
}

// Equal reports whether two configs are identical in content, including the
// tagged-union Mode and every sub-config (§4.A "compare for equality by
// content" applies to the whole Definition, of which Config is a part).
func (c Config) Equal(other Config) bool {
	return c.Mode.equal(other.Mode) &&
		c.Split == other.Split &&
		c.Normalization.equal(other.Normalization) &&
		c.Decoding.equal(other.Decoding) &&
		c.Templates.equal(other.Templates) &&
		c.Specials == other.Specials &&
		c.Fallback == other.Fallback
}

func (m Mode) equal(other Mode) bool {
	return m.Kind == other.Kind &&
		m.CharMode == other.CharMode &&
		bytes.Equal(m.ContinuingPrefix, other.ContinuingPrefix) &&
		m.MaxWordLen == other.MaxWordLen
}

func (n NormalizationConfig) equal(other NormalizationConfig) bool {
	return n.Scheme == other.Scheme &&
		n.Fold == other.Fold &&
		n.StripAccents == other.StripAccents &&
		n.StripControls == other.StripControls &&
		n.CollapseWhitespace == other.CollapseWhitespace &&
		bytes.Equal(n.EscapeWhitespace, other.EscapeWhitespace) &&
		n.HasEscapeWhitespace == other.HasEscapeWhitespace &&
		n.Prepend == other.Prepend &&
		charsMapsEqual(n.CharsMap, other.CharsMap) &&
		replacementRulesEqual(n.Replacements, other.Replacements)
}

func (d DecodingConfig) equal(other DecodingConfig) bool {
	return bytes.Equal(d.StripPrefix, other.StripPrefix) &&
		replacementRulesEqual(d.Replacements, other.Replacements) &&
		d.ByteLevel == other.ByteLevel &&
		d.DecodeSpecials == other.DecodeSpecials
}

func (t Templates) equal(other Templates) bool {
	return uint32SliceEqual(t.BOS, other.BOS) &&
		uint32SliceEqual(t.EOS, other.EOS) &&
		t.Enable == other.Enable
}

func replacementRulesEqual(a, b []ReplacementRule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i].From, b[i].From) || !bytes.Equal(a[i].To, b[i].To) {
			return false
		}
	}
	return true
}

func uint32SliceEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func charsMapsEqual(a, b *CharsMap) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.MaxKeyLen != b.MaxKeyLen || len(a.Table) != len(b.Table) {
		return false
	}
	for k, v := range a.Table {
		ov, ok := b.Table[k]
		if !ok || !bytes.Equal(v, ov) {
			return false
		}
	}
	return true
}
