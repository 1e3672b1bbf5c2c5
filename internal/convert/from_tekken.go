// Tekken conversion (§4.C "Tekken"). Like Tiktoken but the split regex
// and special tokens already live in the file, so they are applied
// directly instead of inferred from a catalog.
package convert

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
)

type tekkenFile struct {
	Vocab []struct {
		Rank       uint32 `json:"rank"`
		TokenBytes string `json:"token_bytes"`
		TokenStr   string `json:"token_str"`
	} `json:"vocab"`
	SpecialTokens []struct {
		Rank uint32 `json:"rank"`
		// Tekken special tokens may be named "token_str" or "token", depending
		// on export version; both are accepted.
		TokenStr string `json:"token_str"`
		Token    string `json:"token"`
	} `json:"special_tokens"`
	Pattern                 string `json:"pattern"`
	DefaultNumSpecialTokens uint32 `json:"default_num_special_tokens"`
}

// FromTekkenBytes parses a Tekken JSON document into a Result.
func FromTekkenBytes(data []byte) (*Result, error) {
	var tf tekkenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("tekken: %w", err)
	}

	res := &Result{Mode: ModeResult{Kind: "bytepair", CharMode: true}}
	res.Fallback.OnUnknown = "error"
	res.Split.Pattern = tf.Pattern

	sort.Slice(tf.Vocab, func(i, j int) bool { return tf.Vocab[i].Rank < tf.Vocab[j].Rank })
	res.Vocab = make([]Entry, 0, len(tf.Vocab))
	for _, v := range tf.Vocab {
		raw, err := decodeTekkenBytes(v)
		if err != nil {
			return nil, fmt.Errorf("tekken: rank %d: %w", v.Rank, err)
		}
		res.Vocab = append(res.Vocab, Entry{ID: v.Rank, Bytes: raw})
	}

	for _, s := range tf.SpecialTokens {
		name := s.TokenStr
		if name == "" {
			name = s.Token
		}
		res.Specials = append(res.Specials, Entry{ID: s.Rank, Bytes: []byte(name)})
	}

	return res, nil
}

func decodeTekkenBytes(v struct {
	Rank       uint32 `json:"rank"`
	TokenBytes string `json:"token_bytes"`
	TokenStr   string `json:"token_str"`
}) ([]byte, error) {
	if v.TokenBytes != "" {
		return base64.StdEncoding.DecodeString(v.TokenBytes)
	}
	return []byte(v.TokenStr), nil
}
