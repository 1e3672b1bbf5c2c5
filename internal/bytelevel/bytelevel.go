// Package bytelevel implements the GPT-2/Tokenizers "ByteLevel" reversible
// byte<->unicode mapping: every possible byte value is represented as one
// printable unicode code point, so arbitrary binary data can round-trip
// through a text-oriented vocabulary.
//
// Grounded on the teacher's llama3/utils.go and
// llama3/internal/encoding/encoding.go, generalized into a reusable pair of
// maps so the facade, the Tokenizers converter (§4.C "ByteLevel
// pre-tokenizer ... pre-applies the inverse byte map to the vocabulary")
// and the llama3 preset can share one implementation.
package bytelevel

import "strings"

const (
	asciiPrintableStart = '!'
	asciiPrintableEnd   = '~'
	extendedStart1      = '¡'
	extendedEnd1        = '¬'
	extendedStart2      = '®'
	extendedEnd2        = 'ÿ'
	unicodeOffset       = 256
)

// Mapping is a reversible byte<->rune table.
type Mapping struct {
	bytesToUnicode map[byte]rune
	unicodeToBytes map[rune]byte
}

var defaultMapping = New()

// New builds the canonical GPT-2-style byte<->unicode mapping.
func New() *Mapping {
	bs := make([]int, 0, 256)
	for i := asciiPrintableStart; i <= asciiPrintableEnd; i++ {
		bs = append(bs, int(i))
	}
	for i := extendedStart1; i <= extendedEnd1; i++ {
		bs = append(bs, int(i))
	}
	for i := extendedStart2; i <= extendedEnd2; i++ {
		bs = append(bs, int(i))
	}

	present := make(map[int]bool, len(bs))
	for _, b := range bs {
		present[b] = true
	}

	cs := make([]int, len(bs))
	copy(cs, bs)

	n := 0
	for b := 0; b < 256; b++ {
		if present[b] {
			continue
		}
		bs = append(bs, b)
		cs = append(cs, unicodeOffset+n)
		n++
	}

	m := &Mapping{
		bytesToUnicode: make(map[byte]rune, 256),
		unicodeToBytes: make(map[rune]byte, 256),
	}
	for i, b := range bs {
		m.bytesToUnicode[byte(b)] = rune(cs[i])
		m.unicodeToBytes[rune(cs[i])] = byte(b)
	}
	return m
}

// Default returns the shared canonical mapping instance.
func Default() *Mapping { return defaultMapping }

// Encode converts raw bytes to their byte-level unicode string representation.
func (m *Mapping) Encode(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(m.bytesToUnicode[b])
	}
	return sb.String()
}

// Decode converts a byte-level unicode string back to raw bytes. Runes not
// present in the mapping are skipped.
func (m *Mapping) Decode(s string) []byte {
	result := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := m.unicodeToBytes[r]; ok {
			result = append(result, b)
		}
	}
	return result
}
