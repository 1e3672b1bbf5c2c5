// Package split implements pre-tokenization (§4.E): special-token
// extraction, then regex-driven or boundary-driven segmentation of the
// remaining text.
//
// The regex dialect needs lookaround (the GPT-4/Tiktoken/Tekken split
// patterns all use negative lookahead), so splitting is grounded on
// github.com/dlclark/regexp2, which several pack repos already vendor for
// exactly this reason (alexcabrera-ayo, arloliu-mebo, richardpark-msft-waza,
// XTheocharis-crush).
package split

import (
	"github.com/dlclark/regexp2"
)

// Segment is one maximal pre-tokenized run of input (§GLOSSARY "Segment").
type Segment struct {
	Bytes     []byte
	IsSpecial bool
	SpecialID uint32
}

// Splitter holds the precomputed special-token automaton and compiled split
// regex for one Facade (§3 "Entity lifecycle": auxiliary indexes are derived
// once at construction).
type Splitter struct {
	automaton  *Automaton
	pattern    *regexp2.Regexp
	boundaries BoundaryConfig
}

// New builds a Splitter. pattern may be empty to disable regex splitting,
// in which case boundaries (if any are set) apply instead.
func New(specials []SpecialEntry, pattern string, boundaries BoundaryConfig) (*Splitter, error) {
	s := &Splitter{
		automaton:  NewAutomaton(specials),
		boundaries: boundaries,
	}
	if pattern != "" {
		re, err := regexp2.Compile(pattern, regexp2.Unicode)
		if err != nil {
			return nil, err
		}
		s.pattern = re
	}
	return s, nil
}

// Split scans normalized input for special tokens first, then splits the
// remaining non-special runs by regex or boundary rules (§4.E).
func (s *Splitter) Split(input []byte, encodeSpecials bool) []Segment {
	var out []Segment
	i := 0
	accStart := 0

	flushNonSpecial := func(end int) {
		if end > accStart {
			out = append(out, s.splitNonSpecial(input[accStart:end])...)
		}
	}

	for i < len(input) {
		if encodeSpecials {
			if id, n, ok := s.automaton.MatchAt(input, i); ok {
				flushNonSpecial(i)
				out = append(out, Segment{Bytes: input[i : i+n], IsSpecial: true, SpecialID: id})
				i += n
				accStart = i
				continue
			}
		}
		i++
	}
	flushNonSpecial(len(input))
	return out
}

// splitNonSpecial applies the configured regex (if any) or boundary rules to
// a non-special run, dropping empty sub-segments (§4.E step 4).
func (s *Splitter) splitNonSpecial(data []byte) []Segment {
	if len(data) == 0 {
		return nil
	}
	var parts []string
	if s.pattern != nil {
		parts = regexSplit(s.pattern, string(data))
	} else {
		parts = SplitByBoundaries(string(data), s.boundaries)
	}

	out := make([]Segment, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, Segment{Bytes: []byte(p)})
	}
	return out
}

// regexSplit returns every match of pattern against text, in order. Unlike a
// delimiter-style Split, the split regex here names the pieces to keep
// (word/number/punctuation/whitespace alternatives), so the segmentation is
// "find all matches", not "split on matches" (matches §4.E's
// GPT-4-pattern-style split regexes, and the teacher's own
// specialTokenRegex.FindAllStringIndex usage in llama3/special_tokens.go).
func regexSplit(re *regexp2.Regexp, text string) []string {
	var out []string
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		out = append(out, m.String())
		m, err = re.FindNextMatch(m)
	}
	return out
}
