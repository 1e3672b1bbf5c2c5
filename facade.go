package tokenizer

import (
	"fmt"

	"github.com/agentstation/tokenizer/internal/bytelevel"
	"github.com/agentstation/tokenizer/internal/codec"
	"github.com/agentstation/tokenizer/internal/decoder"
	"github.com/agentstation/tokenizer/internal/engine/bytepair"
	"github.com/agentstation/tokenizer/internal/engine/unigram"
	"github.com/agentstation/tokenizer/internal/engine/wordpiece"
	"github.com/agentstation/tokenizer/internal/normalize"
	"github.com/agentstation/tokenizer/internal/split"
)

// Facade is the constructed, read-optimized tokenizer (component H):
// coordinates normalize -> split -> encode on the way in, and lookup ->
// decode rules on the way out. A *Facade is safe for concurrent Encode/
// Decode calls; SetDefinition and SetConfig require exclusive access
// (§5 "Concurrency & resource model").
type Facade struct {
	def *Definition

	normCfg  normalize.Config
	splitter *split.Splitter
	dec      *decoder.Decoder

	bytePair  *bytepair.Processor
	unigram   *unigram.Processor
	wordpiece *wordpiece.Processor

	byIDVocab    map[uint32][]byte
	bySpecialBytes map[string]uint32
	unkID        RoleID
	cacheSize    int
}

// Option configures a Facade at construction time.
type Option func(*facadeOptions)

type facadeOptions struct {
	cacheSize int
}

// WithCacheSize sets the BytePair merge-result cache capacity. Zero (the
// default) selects an unbounded cache, mirroring the teacher's
// "cacheSize==0 means unlimited caching" convention.
func WithCacheSize(n int) Option {
	return func(o *facadeOptions) { o.cacheSize = n }
}

// New constructs a Facade directly from a validated Definition.
func New(def *Definition, opts ...Option) (*Facade, error) {
	options := facadeOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	f := &Facade{def: def, cacheSize: options.cacheSize}
	if err := f.rebuild(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewFromBytes auto-detects the input format (native binary, or one of
// the foreign formats) and constructs a Facade (§4.B, §4.H "Constructor
// takes raw bytes and invokes 4.B's auto-detect").
func NewFromBytes(data []byte) (*Facade, error) {
	def, err := DefinitionFromBytes(data)
	if err != nil {
		return nil, err
	}
	return New(def)
}

func (f *Facade) rebuild() error {
	cfg := f.def.config

	f.normCfg = toNormalizeConfig(cfg.Normalization)

	specials := f.def.Specials()
	splitSpecials := make([]split.SpecialEntry, len(specials))
	for i, s := range specials {
		splitSpecials[i] = split.SpecialEntry{Bytes: s.Bytes, ID: s.ID}
	}
	splitter, err := split.New(splitSpecials, cfg.Split.Pattern, split.BoundaryConfig{
		Script:      cfg.Split.ScriptSplit,
		Digit:       cfg.Split.DigitSplit,
		Punctuation: cfg.Split.PunctuationSplit,
		Whitespace:  cfg.Split.WhitespaceSplit,
	})
	if err != nil {
		return NewConfigError("split.pattern", cfg.Split.Pattern, err)
	}
	f.splitter = splitter

	vocab := f.def.Vocabulary()
	ids := make([]uint32, len(vocab))
	byteSlices := make([][]byte, len(vocab))
	for i, v := range vocab {
		ids[i] = v.ID
		byteSlices[i] = v.Bytes
	}

	f.byIDVocab = make(map[uint32][]byte, len(vocab)+len(specials))
	for _, v := range vocab {
		f.byIDVocab[v.ID] = v.Bytes
	}
	f.bySpecialBytes = make(map[string]uint32, len(specials))
	specialIDSet := make(map[uint32]bool, len(specials))
	for _, s := range specials {
		f.byIDVocab[s.ID] = s.Bytes
		f.bySpecialBytes[string(s.Bytes)] = s.ID
		specialIDSet[s.ID] = true
	}

	switch cfg.Mode.Kind {
	case ModeBytePair:
		var cache bytepair.Cache
		if f.cacheSize > 0 {
			cache = bytepair.NewBounded(f.cacheSize)
		} else {
			cache = bytepair.NewUnbounded()
		}
		f.bytePair = &bytepair.Processor{
			Vocab:        bytepair.NewVocab(ids, byteSlices),
			CharMode:     cfg.Mode.CharMode,
			ByteFallback: cfg.Fallback.ByteFallback,
			Cache:        cache,
		}
	case ModeUnigram:
		f.unigram = &unigram.Processor{Vocab: unigram.NewVocab(ids, byteSlices, f.def.Scores())}
	case ModeWordPiece:
		f.wordpiece = &wordpiece.Processor{
			Vocab:      wordpiece.NewVocab(ids, byteSlices, string(cfg.Mode.ContinuingPrefix)),
			MaxWordLen: int(cfg.Mode.MaxWordLen),
		}
		if cfg.Specials.Unk.Set {
			f.wordpiece.UnkID = cfg.Specials.Unk.ID
		}
	default:
		return NewConfigError("mode.kind", fmt.Sprintf("%d", cfg.Mode.Kind), fmt.Errorf("unrecognized mode"))
	}

	f.unkID = cfg.Specials.Unk

	var byteLevelCodec decoder.ByteLevelCodec
	if cfg.Decoding.ByteLevel {
		byteLevelCodec = bytelevel.Default()
	}
	decRules := make([]decoder.ReplacementRule, len(cfg.Decoding.Replacements))
	for i, r := range cfg.Decoding.Replacements {
		decRules[i] = decoder.ReplacementRule{From: r.From, To: r.To}
	}
	unknown := decoder.UnknownError
	if cfg.Fallback.OnUnknown == UnknownSkip {
		unknown = decoder.UnknownSkip
	}
	f.dec = &decoder.Decoder{
		BytesByID:  f.byIDVocab,
		SpecialIDs: specialIDSet,
		Config: decoder.Config{
			StripPrefix:    cfg.Decoding.StripPrefix,
			Replacements:   decRules,
			ByteLevel:      cfg.Decoding.ByteLevel,
			DecodeSpecials: cfg.Decoding.DecodeSpecials,
		},
		Unknown:   unknown,
		ByteLevel: byteLevelCodec,
	}

	return nil
}

func toNormalizeConfig(n NormalizationConfig) normalize.Config {
	out := normalize.Config{
		Scheme:              normalize.Scheme(n.Scheme),
		Fold:                normalize.Fold(n.Fold),
		StripAccents:        n.StripAccents,
		StripControls:       n.StripControls,
		CollapseWhitespace:  n.CollapseWhitespace,
		EscapeWhitespace:    n.EscapeWhitespace,
		HasEscapeWhitespace: n.HasEscapeWhitespace || len(n.EscapeWhitespace) > 0,
		Prepend:             normalize.Prepend(n.Prepend),
	}
	if n.CharsMap != nil {
		out.CharsMap = normalize.CharsMap{Table: n.CharsMap.Table, MaxKeyLen: n.CharsMap.MaxKeyLen}
	}
	for _, r := range n.Replacements {
		out.Replacements = append(out.Replacements, normalize.Rule{From: r.From, To: r.To})
	}
	return out
}

// Definition returns the Definition this Facade was built from.
func (f *Facade) Definition() *Definition { return f.def }

// Config returns the Definition's configuration.
func (f *Facade) Config() Config { return f.def.config }

// SetDefinition replaces the Definition wholesale and rebuilds all
// derived indexes, validating first; on failure the prior state is
// preserved (§7 "Mutation APIs validate before taking effect").
func (f *Facade) SetDefinition(def *Definition) error {
	prev := f.def
	f.def = def
	if err := f.rebuild(); err != nil {
		f.def = prev
		_ = f.rebuild()
		return err
	}
	return nil
}

// SetConfig replaces the configuration, revalidating and rebuilding
// indexes; on failure the prior Definition (and thus config) is kept.
func (f *Facade) SetConfig(cfg Config) error {
	next, err := f.def.WithConfig(cfg)
	if err != nil {
		return err
	}
	return f.SetDefinition(next)
}

// ToBytes serializes the current Definition in the native binary format.
func (f *Facade) ToBytes() []byte {
	return DefinitionToBytes(f.def)
}
