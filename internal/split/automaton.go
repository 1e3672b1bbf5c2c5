package split

import "sort"

// SpecialEntry is the subset of a special-token entry the automaton needs.
type SpecialEntry struct {
	Bytes []byte
	ID    uint32
}

// Automaton is a longest-match-wins prefix scanner over special tokens,
// built once and cached by the facade (§4.E step 1: "Build/cache a prefix
// automaton of the special tokens sorted by decreasing length").
//
// A trie would give the same asymptotics; for the typical vocab (a few
// hundred special tokens at most) a length-sorted linear probe at each
// input position is simpler and just as fast, and is the same externally
// observable algorithm the spec describes (longest-wins, leftmost scan).
type Automaton struct {
	entries []SpecialEntry // sorted by descending byte length, ties by original order
}

// NewAutomaton builds an Automaton over specials.
func NewAutomaton(specials []SpecialEntry) *Automaton {
	entries := append([]SpecialEntry(nil), specials...)
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Bytes) > len(entries[j].Bytes)
	})
	return &Automaton{entries: entries}
}

// MatchAt returns the id and byte length of the longest special token whose
// bytes match data starting at position i, or ok=false if none match.
func (a *Automaton) MatchAt(data []byte, i int) (id uint32, length int, ok bool) {
	for _, e := range a.entries {
		n := len(e.Bytes)
		if n == 0 || i+n > len(data) {
			continue
		}
		if string(data[i:i+n]) == string(e.Bytes) {
			return e.ID, n, true
		}
	}
	return 0, 0, false
}
