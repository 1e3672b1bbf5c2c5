package llama3

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/agentstation/tokenizer/internal/bytelevel"
	internaltesting "github.com/agentstation/tokenizer/llama3/internal/testing"
)

// byteLevelVocabulary returns a base64-encoded vocabulary covering every
// byte value, one token per byte, which is enough for a BytePair byte-mode
// tokenizer to encode and decode arbitrary binary text without ever
// hitting an unencodable unit.
func byteLevelVocabulary() string {
	mapping := bytelevel.Default()
	lines := make([]string, 256)
	for b := 0; b < 256; b++ {
		lines[b] = mapping.Encode([]byte{byte(b)})
	}
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(lines, "\n")))
}

// TestTokenizerCorpusRoundTrip exercises the tokenizer against the
// generated corpus of edge cases, whitespace runs, contractions, unicode
// scripts, real-world strings, and boundary-length inputs, checking that
// every case encodes and decodes back to its original text.
func TestTokenizerCorpusRoundTrip(t *testing.T) {
	tok, err := New(WithVocabulary(byteLevelVocabulary()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	noTemplate := &EncodeOptions{BOS: false, EOS: false}
	cases := internaltesting.GenerateTestCases()
	if len(cases) == 0 {
		t.Fatalf("expected a non-empty generated corpus")
	}

	for _, tc := range cases {
		ids, err := tok.Encode(tc.Input, noTemplate)
		if err != nil {
			t.Errorf("[%s] Encode(%q): %v", tc.Category, tc.Description, err)
			continue
		}
		out, err := tok.Decode(ids)
		if err != nil {
			t.Errorf("[%s] Decode for %q: %v", tc.Category, tc.Description, err)
			continue
		}
		if out != tc.Input {
			t.Errorf("[%s] %s: round trip mismatch: got %q, want %q", tc.Category, tc.Description, out, tc.Input)
		}
	}
}

// TestTokenizerCorpusOptimisticCountNeverPanics exercises OptimisticCount,
// which is documented to fall back to a heuristic rather than fail, against
// the same corpus.
func TestTokenizerCorpusOptimisticCountNeverPanics(t *testing.T) {
	tok, err := New(WithVocabulary(byteLevelVocabulary()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, tc := range internaltesting.GenerateTestCases() {
		if count := tok.OptimisticCount(tc.Input); count < 0 {
			t.Errorf("[%s] %s: negative optimistic count %d", tc.Category, tc.Description, count)
		}
	}
}
