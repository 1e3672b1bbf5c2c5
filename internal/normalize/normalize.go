// Package normalize implements the fixed-order normalization pipeline of
// §4.D: precompiled charsmap, unicode normalization, case fold, accent/control
// stripping, ordered replacement rules, and whitespace policy.
//
// Grounded on golang.org/x/text (unicode/norm for NFC/NFD/NFKC/NFKD, cases
// for context-sensitive case folding including final sigma), which is the
// library the retrieval pack reaches for in every repo that does real
// unicode work (trufflesecurity-trufflehog, nlpodyssey-verbaflow,
// richardpark-msft-waza, poiesic-memorit, traylinx-switchAILocal).
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Scheme mirrors tokenizer.UnicodeScheme without importing the root package
// (avoids an import cycle; the root package passes the already-resolved
// numeric value in).
type Scheme uint8

const (
	None Scheme = iota
	NFC
	NFD
	NFKC
	NFKD
)

// Fold mirrors tokenizer.CaseFold.
type Fold uint8

const (
	FoldNone Fold = iota
	FoldLower
	FoldUpper
)

// Prepend mirrors tokenizer.PrependScheme.
type Prepend uint8

const (
	PrependNever Prepend = iota
	PrependFirst
	PrependAlways
)

// Rule is an ordered (from, to) byte-span substitution.
type Rule struct {
	From []byte
	To   []byte
}

// CharsMap is a precompiled trie-like greedy span replacement table (§4.D
// step 1). Represented as a plain map keyed by the longest-matching input
// span; Lookup walks MaxKeyLen down to 1 byte at each position, which is the
// same externally observable behavior as a real compressed trie at a
// fraction of the implementation cost, and is what the precompiled_charsmap
// blob is shaped like once decoded (an exact-span replacement table).
type CharsMap struct {
	Table     map[string][]byte
	MaxKeyLen int
}

// Lookup finds the longest match of data starting at position i, if any.
func (c *CharsMap) Lookup(data []byte, i int) ([]byte, int, bool) {
	if c == nil || len(c.Table) == 0 {
		return nil, 0, false
	}
	max := c.MaxKeyLen
	if rem := len(data) - i; rem < max {
		max = rem
	}
	for l := max; l >= 1; l-- {
		if repl, ok := c.Table[string(data[i:i+l])]; ok {
			return repl, l, true
		}
	}
	return nil, 0, false
}

// Config is the resolved set of pipeline stages to apply.
type Config struct {
	CharsMap            *CharsMap
	Scheme              Scheme
	Fold                Fold
	StripAccents        bool
	StripControls       bool
	Replacements        []Rule
	CollapseWhitespace  bool
	HasEscapeWhitespace bool
	EscapeWhitespace    []byte
	Prepend             Prepend
}

// Normalize runs the fixed-order pipeline over input and returns the
// transformed bytes. The offset map mentioned in §4.D is intentionally not
// produced: no caller in this core requests it.
func Normalize(input []byte, cfg Config) []byte {
	data := input

	if cfg.CharsMap != nil {
		data = applyCharsMap(data, cfg.CharsMap)
	}

	data = applyUnicodeScheme(data, cfg.Scheme)

	if cfg.Fold != FoldNone {
		data = applyCaseFold(data, cfg.Fold)
	}

	if cfg.StripAccents {
		data = stripAccents(data)
	}
	if cfg.StripControls {
		data = stripControls(data)
	}

	for _, r := range cfg.Replacements {
		if len(r.From) == 0 {
			continue
		}
		data = bytesReplaceAll(data, r.From, r.To)
	}

	if cfg.CollapseWhitespace || cfg.HasEscapeWhitespace {
		data = applyWhitespacePolicy(data, cfg)
	}

	return data
}

func applyCharsMap(data []byte, cm *CharsMap) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if repl, n, ok := cm.Lookup(data, i); ok {
			out = append(out, repl...)
			i += n
			continue
		}
		out = append(out, data[i])
		i++
	}
	return out
}

func applyUnicodeScheme(data []byte, s Scheme) []byte {
	var f norm.Form
	switch s {
	case NFC:
		f = norm.NFC
	case NFD:
		f = norm.NFD
	case NFKC:
		f = norm.NFKC
	case NFKD:
		f = norm.NFKD
	default:
		return data
	}
	return f.Bytes(data)
}

func applyCaseFold(data []byte, fold Fold) []byte {
	var c cases.Caser
	switch fold {
	case FoldLower:
		c = cases.Lower(language.Und)
	case FoldUpper:
		c = cases.Upper(language.Und)
	default:
		return data
	}
	return c.Bytes(data)
}

// stripAccents decomposes to NFD and drops unicode Mn (nonspacing mark)
// runes, the standard accent-stripping recipe.
func stripAccents(data []byte) []byte {
	decomposed := norm.NFD.Bytes(data)
	var sb strings.Builder
	sb.Grow(len(decomposed))
	for _, r := range string(decomposed) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		sb.WriteRune(r)
	}
	return []byte(sb.String())
}

func stripControls(data []byte) []byte {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, r := range string(data) {
		if unicode.IsControl(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return []byte(sb.String())
}

func bytesReplaceAll(data, from, to []byte) []byte {
	return []byte(strings.ReplaceAll(string(data), string(from), string(to)))
}

func applyWhitespacePolicy(data []byte, cfg Config) []byte {
	s := string(data)

	if cfg.CollapseWhitespace {
		var sb strings.Builder
		sb.Grow(len(s))
		lastWasSpace := false
		for _, r := range strings.TrimSpace(s) {
			if unicode.IsSpace(r) {
				if lastWasSpace {
					continue
				}
				sb.WriteByte(' ')
				lastWasSpace = true
				continue
			}
			sb.WriteRune(r)
			lastWasSpace = false
		}
		s = sb.String()
	}

	if !cfg.HasEscapeWhitespace {
		return []byte(s)
	}

	startsWithSpace := len(s) > 0 && unicode.IsSpace(rune(s[0]))
	prependNow := cfg.Prepend == PrependAlways || (cfg.Prepend == PrependFirst && !startsWithSpace)

	marker := string(cfg.EscapeWhitespace)
	replaced := strings.ReplaceAll(s, " ", marker)
	if prependNow {
		replaced = marker + replaced
	}
	return []byte(replaced)
}
