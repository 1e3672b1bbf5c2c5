package llama3

import (
	tok "github.com/agentstation/tokenizer/llama3/internal/vocabulary"
)

// Option is a functional option for configuring a Tokenizer.
type Option func(*tokenizerConfig) error

// WithVocabulary sets custom base64-encoded vocabulary data, keeping the
// default special-token set unless combined with WithSpecialTokens.
func WithVocabulary(vocabBase64 string) Option {
	return func(cfg *tokenizerConfig) error {
		if vocabBase64 == "" {
			return NewConfigError("vocabulary", "empty string", ErrInvalidToken)
		}
		cfg.loader = tok.NewCustomLoader(vocabBase64)
		return nil
	}
}

// WithDataFiles loads the vocabulary from a file instead of the data
// embedded via -tags embed.
func WithDataFiles(vocabPath string) Option {
	return func(cfg *tokenizerConfig) error {
		cfg.loader = tok.NewFileLoader(vocabPath)
		return nil
	}
}

// WithSpecialTokens sets custom special tokens for the tokenizer.
// If nil, the default Llama 3 special tokens will be used.
func WithSpecialTokens(tokens []string) Option {
	return func(cfg *tokenizerConfig) error {
		for i, token := range tokens {
			if !isSpecialToken(token) {
				return NewConfigError("special_tokens", token,
					NewTokenError("validate", token, ErrInvalidToken))
			}
			for j := i + 1; j < len(tokens); j++ {
				if token == tokens[j] {
					return NewConfigError("special_tokens", token,
						NewTokenError("duplicate", token, ErrInvalidToken))
				}
			}
		}
		cfg.specialTokens = tokens
		return nil
	}
}

// WithCacheSize sets the maximum size of the BPE merge cache. Zero (the
// default) selects an unbounded cache.
func WithCacheSize(size int) Option {
	return func(cfg *tokenizerConfig) error {
		if size < 0 {
			return NewConfigError("cache_size", size, ErrInvalidToken)
		}
		cfg.cacheSize = size
		return nil
	}
}
