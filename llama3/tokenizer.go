// Package llama3 is a thin, model-specific preset over the generic
// tokenizer package: it knows how to turn the Llama 3 vocabulary data
// (byte-level-mapped vocabulary lines plus the 256 fixed special tokens)
// into a [tokenizer.Definition] and wraps the resulting [tokenizer.Facade]
// behind an API shaped like the reference Llama 3 tokenizers (BOS/EOS
// options per call, a vocabulary size, special-token id lookup).
package llama3

import (
	"github.com/agentstation/tokenizer/internal/bytelevel"
	"github.com/agentstation/tokenizer/internal/convert"
	tok "github.com/agentstation/tokenizer/llama3/internal/vocabulary"

	tokenizer "github.com/agentstation/tokenizer"
)

// tokenizerConfig accumulates Option settings before New builds the
// Facade.
type tokenizerConfig struct {
	loader        tok.Loader
	specialTokens []string
	cacheSize     int
}

// Tokenizer implements Llama 3's byte-level BPE tokenization on top of the
// generic [tokenizer.Facade].
type Tokenizer struct {
	f *tokenizer.Facade

	specialByToken map[string]int
	bosID, eosID   int
	haveBOS, haveEOS bool
}

// EncodeOptions controls the encoding behavior.
type EncodeOptions struct {
	// BOS adds the beginning-of-text token if true (default: true)
	BOS bool
	// EOS adds the end-of-text token if true (default: true)
	EOS bool
}

func defaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{BOS: true, EOS: true}
}

// New creates a new Llama 3 tokenizer with the given options. Without
// [WithDataFiles] or [WithVocabulary], it loads data embedded via -tags
// embed (see internal/vocabulary/embed_data.go); with neither, New fails
// with ErrDataNotFound.
func New(opts ...Option) (*Tokenizer, error) {
	cfg := &tokenizerConfig{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.loader == nil {
		if tok.EmbeddedVocabulary == "" {
			return nil, NewDataError("load vocabulary", "", ErrDataNotFound)
		}
		cfg.loader = tok.NewDefaultLoader()
	}

	vocabLines, err := cfg.loader.LoadVocabulary()
	if err != nil {
		return nil, NewDataError("load vocabulary", "", err)
	}
	if len(vocabLines) == 0 {
		return nil, NewDataError("load vocabulary", "", ErrDataNotFound)
	}

	mapping := bytelevel.Default()
	vocab := make([]tokenizer.VocabEntry, len(vocabLines))
	for i, line := range vocabLines {
		vocab[i] = tokenizer.VocabEntry{ID: uint32(i), Bytes: mapping.Decode(line)}
	}

	specialTokens := cfg.specialTokens
	if specialTokens == nil {
		specialTokens = getDefaultSpecialTokens()
	}
	base := uint32(len(vocab))
	specials := make([]tokenizer.SpecialEntry, len(specialTokens))
	specialByToken := make(map[string]int, len(specialTokens))
	for i, tk := range specialTokens {
		id := base + uint32(i)
		specials[i] = tokenizer.SpecialEntry{ID: id, Bytes: []byte(tk)}
		specialByToken[tk] = int(id)
	}

	config := tokenizer.DefaultConfig()
	config.Mode = tokenizer.Mode{Kind: tokenizer.ModeBytePair, CharMode: false}
	config.Split = tokenizer.SplitConfig{Pattern: convert.CL100kPattern}
	config.Decoding = tokenizer.DecodingConfig{ByteLevel: false}
	config.Fallback = tokenizer.FallbackConfig{OnUnknown: tokenizer.UnknownError}

	def, err := tokenizer.NewDefinition(vocab, specials, nil, config)
	if err != nil {
		return nil, NewDataError("build definition", "", err)
	}

	var facadeOpts []tokenizer.Option
	if cfg.cacheSize > 0 {
		facadeOpts = append(facadeOpts, tokenizer.WithCacheSize(cfg.cacheSize))
	}
	facade, err := tokenizer.New(def, facadeOpts...)
	if err != nil {
		return nil, NewDataError("build tokenizer", "", err)
	}

	t := &Tokenizer{f: facade, specialByToken: specialByToken}
	if id, ok := specialByToken[beginOfTextToken]; ok {
		t.bosID, t.haveBOS = id, true
	}
	if id, ok := specialByToken[endOfTextToken]; ok {
		t.eosID, t.haveEOS = id, true
	}
	return t, nil
}

// Encode converts text into a sequence of token IDs. If opts is nil,
// default options (BOS and EOS both on) are used.
func (t *Tokenizer) Encode(text string, opts *EncodeOptions) ([]int, error) {
	if opts == nil {
		opts = defaultEncodeOptions()
	}
	ids, err := t.f.Encode(text, true)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(ids)+2)
	if opts.BOS && t.haveBOS {
		out = append(out, t.bosID)
	}
	for _, id := range ids {
		out = append(out, int(id))
	}
	if opts.EOS && t.haveEOS {
		out = append(out, t.eosID)
	}
	return out, nil
}

// Decode converts a sequence of token IDs back into text.
func (t *Tokenizer) Decode(tokenIDs []int) (string, error) {
	ids := make([]uint32, 0, len(tokenIDs))
	for _, id := range tokenIDs {
		if id < 0 {
			continue
		}
		ids = append(ids, uint32(id))
	}
	out, err := t.f.Decode(ids, true)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// GetSpecialTokenID returns the token ID for a special token string.
func (t *Tokenizer) GetSpecialTokenID(token string) (int, error) {
	if !isSpecialToken(token) {
		return 0, NewTokenError("validate special token", token, ErrInvalidToken)
	}
	id, ok := t.specialByToken[token]
	if !ok {
		return 0, NewTokenError("get special token ID", token, ErrTokenNotFound)
	}
	return id, nil
}

// OptimisticCount returns the token count including BOS and EOS. If the
// text cannot be encoded, the byte length of the whole text stands in for
// the encoded part rather than an error being returned; no per-segment
// estimate is made.
func (t *Tokenizer) OptimisticCount(text string) int {
	count, _ := t.f.EncodeOptimistic(text, true)
	if t.haveBOS {
		count++
	}
	if t.haveEOS {
		count++
	}
	return count
}

// VocabSize returns the size of the vocabulary including special tokens.
func (t *Tokenizer) VocabSize() int {
	return len(t.f.Definition().Vocabulary()) + len(t.f.Definition().Specials())
}

// Facade exposes the underlying generic tokenizer for callers that need
// direct access to Definition/Config mutation or the binary codec.
func (t *Tokenizer) Facade() *tokenizer.Facade { return t.f }
