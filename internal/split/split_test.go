package split

import "testing"

func TestAutomatonMatchAtLongestWins(t *testing.T) {
	a := NewAutomaton([]SpecialEntry{
		{ID: 1, Bytes: []byte("<s>")},
		{ID: 2, Bytes: []byte("<s|end>")},
	})

	id, n, ok := a.MatchAt([]byte("<s|end>rest"), 0)
	if !ok {
		t.Fatalf("expected a match")
	}
	if id != 2 || n != len("<s|end>") {
		t.Fatalf("got (id=%d, n=%d), want (id=2, n=%d)", id, n, len("<s|end>"))
	}
}

func TestAutomatonMatchAtNoMatch(t *testing.T) {
	a := NewAutomaton([]SpecialEntry{{ID: 1, Bytes: []byte("<s>")}})
	_, _, ok := a.MatchAt([]byte("hello"), 0)
	if ok {
		t.Fatalf("expected no match")
	}
}

func TestSplitByBoundariesWhitespace(t *testing.T) {
	out := SplitByBoundaries("hello world", BoundaryConfig{Whitespace: true})
	want := []string{"hello", " ", "world"}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
}

func TestSplitByBoundariesDigit(t *testing.T) {
	out := SplitByBoundaries("abc123def", BoundaryConfig{Digit: true})
	want := []string{"abc", "123", "def"}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
}

func TestSplitByBoundariesNoConfigIsNoop(t *testing.T) {
	out := SplitByBoundaries("hello world", BoundaryConfig{})
	if len(out) != 1 || out[0] != "hello world" {
		t.Fatalf("got %v, want unsplit input", out)
	}
}

func TestSplitterSplitExtractsSpecialTokens(t *testing.T) {
	s, err := New([]SpecialEntry{{ID: 5, Bytes: []byte("<eos>")}}, "", BoundaryConfig{Whitespace: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	segs := s.Split([]byte("hi<eos>there"), true)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	if segs[0].IsSpecial || string(segs[0].Bytes) != "hi" {
		t.Fatalf("segment 0: got %+v", segs[0])
	}
	if !segs[1].IsSpecial || segs[1].SpecialID != 5 {
		t.Fatalf("segment 1: got %+v, want special id 5", segs[1])
	}
	if segs[2].IsSpecial || string(segs[2].Bytes) != "there" {
		t.Fatalf("segment 2: got %+v", segs[2])
	}
}

func TestSplitterSplitIgnoresSpecialsWhenDisabled(t *testing.T) {
	s, err := New([]SpecialEntry{{ID: 5, Bytes: []byte("<eos>")}}, "", BoundaryConfig{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	segs := s.Split([]byte("hi<eos>there"), false)
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1 (special extraction disabled): %+v", len(segs), segs)
	}
	if segs[0].IsSpecial || string(segs[0].Bytes) != "hi<eos>there" {
		t.Fatalf("got %+v", segs[0])
	}
}

func TestSplitterSplitWithRegexPattern(t *testing.T) {
	// A minimal word/non-word alternation, similar in shape to the
	// GPT-style split patterns but without lookaround.
	s, err := New(nil, `\w+|\s+|[^\w\s]+`, BoundaryConfig{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	segs := s.Split([]byte("hello, world"), false)
	var got []string
	for _, seg := range segs {
		got = append(got, string(seg.Bytes))
	}
	want := []string{"hello", ",", " ", "world"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New(nil, `(unterminated`, BoundaryConfig{})
	if err == nil {
		t.Fatalf("expected an error for an invalid regex pattern")
	}
}
