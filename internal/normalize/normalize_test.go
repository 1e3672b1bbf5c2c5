package normalize

import "testing"

func TestNormalizeNoopByDefault(t *testing.T) {
	got := Normalize([]byte("Hello, World!"), Config{})
	if string(got) != "Hello, World!" {
		t.Fatalf("got %q, want input unchanged", got)
	}
}

func TestNormalizeCaseFold(t *testing.T) {
	got := Normalize([]byte("Hello"), Config{Fold: FoldLower})
	if string(got) != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}

	got = Normalize([]byte("Hello"), Config{Fold: FoldUpper})
	if string(got) != "HELLO" {
		t.Fatalf("got %q, want %q", got, "HELLO")
	}
}

func TestNormalizeStripAccents(t *testing.T) {
	got := Normalize([]byte("café"), Config{StripAccents: true})
	if string(got) != "cafe" {
		t.Fatalf("got %q, want %q", got, "cafe")
	}
}

func TestNormalizeStripControls(t *testing.T) {
	got := Normalize([]byte("a\x00b\x01c"), Config{StripControls: true})
	if string(got) != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}
}

func TestNormalizeReplacementRules(t *testing.T) {
	cfg := Config{Replacements: []Rule{{From: []byte("foo"), To: []byte("bar")}}}
	got := Normalize([]byte("foofoo baz"), cfg)
	if string(got) != "barbar baz" {
		t.Fatalf("got %q, want %q", got, "barbar baz")
	}
}

func TestNormalizeCollapseWhitespace(t *testing.T) {
	cfg := Config{CollapseWhitespace: true}
	got := Normalize([]byte("  a   b\t\tc  "), cfg)
	if string(got) != "a b c" {
		t.Fatalf("got %q, want %q", got, "a b c")
	}
}

func TestNormalizeEscapeWhitespacePrependFirst(t *testing.T) {
	cfg := Config{
		HasEscapeWhitespace: true,
		EscapeWhitespace:    []byte("▁"),
		Prepend:             PrependFirst,
	}
	got := Normalize([]byte("a b"), cfg)
	want := "▁a▁b"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeEscapeWhitespacePrependFirstSkipsLeadingSpace(t *testing.T) {
	cfg := Config{
		HasEscapeWhitespace: true,
		EscapeWhitespace:    []byte("▁"),
		Prepend:             PrependFirst,
	}
	got := Normalize([]byte(" a b"), cfg)
	// input already starts with a space, so PrependFirst does not add
	// another marker in front - the existing leading space becomes one.
	want := "▁a▁b"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCharsMapLookupLongestMatch(t *testing.T) {
	cm := &CharsMap{
		Table: map[string][]byte{
			"a":  []byte("X"),
			"ab": []byte("Y"),
		},
		MaxKeyLen: 2,
	}
	repl, n, ok := cm.Lookup([]byte("abc"), 0)
	if !ok || n != 2 || string(repl) != "Y" {
		t.Fatalf("got (%q, %d, %v), want (\"Y\", 2, true)", repl, n, ok)
	}
}

func TestNormalizeAppliesCharsMap(t *testing.T) {
	cfg := Config{
		CharsMap: &CharsMap{
			Table:     map[string][]byte{"e": []byte("3")},
			MaxKeyLen: 1,
		},
	}
	got := Normalize([]byte("hello"), cfg)
	if string(got) != "h3llo" {
		t.Fatalf("got %q, want %q", got, "h3llo")
	}
}

func TestNormalizeUnicodeSchemeNFC(t *testing.T) {
	// "e" + combining acute accent (U+0301) should compose to "é" under NFC.
	decomposed := "é"
	got := Normalize([]byte(decomposed), Config{Scheme: NFC})
	want := "é"
	if string(got) != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
