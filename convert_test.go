package tokenizer

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"testing"
)

func tiktokenLine(piece string, id int) string {
	return base64.StdEncoding.EncodeToString([]byte(piece)) + " " + strconv.Itoa(id) + "\n"
}

func TestFromTiktoken(t *testing.T) {
	var data []byte
	for i, piece := range []string{"a", "b", "c", "he", "hello"} {
		data = append(data, []byte(tiktokenLine(piece, i))...)
	}

	def, warnings, err := FromTiktoken(data)
	if err != nil {
		t.Fatalf("FromTiktoken: %v", err)
	}
	if len(def.Vocabulary()) != 5 {
		t.Fatalf("got %d vocab entries, want 5", len(def.Vocabulary()))
	}
	_ = warnings

	ids, err := New(def)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = ids.Encode("a", false)
	if err != nil {
		t.Fatalf("Encode on converted definition: %v", err)
	}
}

func TestFromTiktokenRejectsMalformedLine(t *testing.T) {
	_, _, err := FromTiktoken([]byte("not-a-valid-line-at-all\n"))
	if err == nil {
		t.Fatalf("expected an error for a malformed tiktoken line")
	}
}

type tekkenVocabEntry struct {
	Rank       uint32 `json:"rank"`
	TokenBytes string `json:"token_bytes"`
}

type tekkenSpecialEntry struct {
	Rank     uint32 `json:"rank"`
	TokenStr string `json:"token_str"`
}

type tekkenDoc struct {
	Vocab         []tekkenVocabEntry   `json:"vocab"`
	SpecialTokens []tekkenSpecialEntry `json:"special_tokens"`
	Pattern       string               `json:"pattern"`
}

func TestFromTekken(t *testing.T) {
	doc := tekkenDoc{
		Vocab: []tekkenVocabEntry{
			{Rank: 0, TokenBytes: base64.StdEncoding.EncodeToString([]byte("a"))},
			{Rank: 1, TokenBytes: base64.StdEncoding.EncodeToString([]byte("b"))},
			{Rank: 2, TokenBytes: base64.StdEncoding.EncodeToString([]byte("ab"))},
		},
		SpecialTokens: []tekkenSpecialEntry{
			{Rank: 3, TokenStr: "<s>"},
			{Rank: 4, TokenStr: "</s>"},
		},
		Pattern: `[^\s]+|\s+`,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	def, _, err := FromTekken(data)
	if err != nil {
		t.Fatalf("FromTekken: %v", err)
	}
	if len(def.Vocabulary()) != 3 {
		t.Fatalf("got %d vocab entries, want 3", len(def.Vocabulary()))
	}
	if len(def.Specials()) != 2 {
		t.Fatalf("got %d special entries, want 2", len(def.Specials()))
	}
}

func TestFromTekkenRejectsInvalidJSON(t *testing.T) {
	_, _, err := FromTekken([]byte("{not json"))
	if err == nil {
		t.Fatalf("expected an error for invalid JSON")
	}
}

func TestDefinitionFromBytesAutoDetectsTekken(t *testing.T) {
	doc := tekkenDoc{
		Vocab: []tekkenVocabEntry{
			{Rank: 0, TokenBytes: base64.StdEncoding.EncodeToString([]byte("x"))},
			{Rank: 1, TokenBytes: base64.StdEncoding.EncodeToString([]byte("y"))},
		},
		Pattern: `[^\s]+|\s+`,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	explicit, _, err := FromTekken(data)
	if err != nil {
		t.Fatalf("FromTekken: %v", err)
	}
	detected, err := DefinitionFromBytes(data)
	if err != nil {
		t.Fatalf("DefinitionFromBytes: %v", err)
	}
	if !explicit.Equal(detected) {
		t.Fatalf("auto-detected conversion diverged from explicit FromTekken conversion")
	}
}
