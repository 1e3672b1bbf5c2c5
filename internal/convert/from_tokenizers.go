// HuggingFace Tokenizers JSON conversion (§4.C "Tokenizers"). Grounded on
// other_examples/f5d7fddd's TokenizerJSON struct (model.vocab,
// added_tokens) for the vocab/specials shape, generalized here to also
// read merges, normalizer, pre_tokenizer and decoder sections.
package convert

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/agentstation/tokenizer/internal/bytelevel"
)

type tokenizersFile struct {
	Model struct {
		Type             string            `json:"type"`
		Vocab            map[string]uint32 `json:"vocab"`
		Merges           []json.RawMessage `json:"merges"`
		ContinuingPrefix string            `json:"continuing_subword_prefix"`
		MaxInputChars    uint32            `json:"max_input_chars_per_word"`
		UnkToken         string            `json:"unk_token"`
	} `json:"model"`
	AddedTokens []struct {
		ID      uint32 `json:"id"`
		Content string `json:"content"`
		Special bool   `json:"special"`
	} `json:"added_tokens"`
	Normalizer   json.RawMessage `json:"normalizer"`
	PreTokenizer json.RawMessage `json:"pre_tokenizer"`
	Decoder      json.RawMessage `json:"decoder"`
}

type tokenizersStep struct {
	Type     string            `json:"type"`
	Pattern  json.RawMessage   `json:"pattern"`
	Sequence []tokenizersStep  `json:"pretokenizers"`
	Norms    []tokenizersStep  `json:"normalizers"`
	Lowercase bool             `json:"lowercase"`
}

// FromTokenizersBytes parses a tokenizer.json document into a Result.
func FromTokenizersBytes(data []byte) (*Result, error) {
	var tf tokenizersFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("tokenizers: %w", err)
	}

	res := &Result{}
	res.Fallback.OnUnknown = "id"

	switch tf.Model.Type {
	case "BPE":
		res.Mode = ModeResult{Kind: "bytepair"}
		order := mergeOrderFromMerges(tf.Model.Merges, tf.Model.Vocab)
		res.Vocab = vocabInOrder(tf.Model.Vocab, order)
	case "Unigram":
		res.Mode = ModeResult{Kind: "unigram"}
		res.Vocab, res.Scores = vocabPlain(tf.Model.Vocab), make([]float32, len(tf.Model.Vocab))
	case "WordPiece":
		res.Mode = ModeResult{
			Kind:             "wordpiece",
			ContinuingPrefix: []byte(orDefault(tf.Model.ContinuingPrefix, "##")),
			MaxWordLen:       orDefaultU32(tf.Model.MaxInputChars, 100),
		}
		res.Vocab = vocabPlain(tf.Model.Vocab)
	default:
		return nil, fmt.Errorf("tokenizers: unsupported model.type %q", tf.Model.Type)
	}

	for _, at := range tf.AddedTokens {
		res.Specials = append(res.Specials, Entry{ID: at.ID, Bytes: []byte(at.Content)})
		if at.Content == tf.Model.UnkToken {
			res.Roles.Unk = []byte(at.Content)
		}
	}

	if len(tf.Normalizer) > 0 {
		var steps []tokenizersStep
		flattenNormalizerSteps(tf.Normalizer, &steps)
		applyNormalizerSteps(steps, res)
	}

	if len(tf.PreTokenizer) > 0 {
		var steps []tokenizersStep
		flattenPreTokenizerSteps(tf.PreTokenizer, &steps)
		applyPreTokenizerSteps(steps, res)
	}

	if len(tf.Decoder) > 0 {
		applyDecoderStep(tf.Decoder, res)
	}

	if res.Decoding.ByteLevel {
		// §4.C "The ByteLevel pre-tokenizer ... pre-applies the inverse
		// byte map to the vocabulary so tokens are stored as real bytes":
		// the JSON vocab's token strings are the GPT-2 byte<->unicode
		// encoding, so invert them once here rather than at every encode.
		mapping := bytelevel.Default()
		for i, e := range res.Vocab {
			res.Vocab[i] = Entry{ID: e.ID, Bytes: mapping.Decode(string(e.Bytes))}
		}
	}

	return res, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultU32(v, def uint32) uint32 {
	if v == 0 {
		return def
	}
	return v
}

func vocabPlain(vocab map[string]uint32) []Entry {
	out := make([]Entry, 0, len(vocab))
	for tok, id := range vocab {
		out = append(out, Entry{ID: id, Bytes: []byte(tok)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// mergeOrderFromMerges sorts vocab tokens by their position in the merge
// list (earlier merge = higher priority), with single-byte/unmerged
// tokens kept at the front in id order, per §4.C "use the provided merge
// list to sort the vocabulary, then discard the list".
func mergeOrderFromMerges(merges []json.RawMessage, vocab map[string]uint32) []string {
	rank := make(map[string]int, len(merges))
	for i, raw := range merges {
		var pair [2]string
		if err := json.Unmarshal(raw, &pair); err == nil {
			rank[pair[0]+pair[1]] = i
			continue
		}
		var joined string
		if err := json.Unmarshal(raw, &joined); err == nil {
			rank[joined] = i
		}
	}

	tokens := make([]string, 0, len(vocab))
	for tok := range vocab {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		ri, iok := rank[tokens[i]]
		rj, jok := rank[tokens[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return jok // merged tokens sort after base tokens
		default:
			return vocab[tokens[i]] < vocab[tokens[j]]
		}
	})
	return tokens
}

func vocabInOrder(vocab map[string]uint32, order []string) []Entry {
	out := make([]Entry, 0, len(order))
	for _, tok := range order {
		out = append(out, Entry{ID: vocab[tok], Bytes: []byte(tok)})
	}
	return out
}

func flattenNormalizerSteps(raw json.RawMessage, out *[]tokenizersStep) {
	var step tokenizersStep
	if err := json.Unmarshal(raw, &step); err != nil {
		return
	}
	if step.Type == "Sequence" {
		for _, sub := range step.Norms {
			*out = append(*out, sub)
		}
		return
	}
	*out = append(*out, step)
}

func flattenPreTokenizerSteps(raw json.RawMessage, out *[]tokenizersStep) {
	var step tokenizersStep
	if err := json.Unmarshal(raw, &step); err != nil {
		return
	}
	if step.Type == "Sequence" {
		for _, sub := range step.Sequence {
			*out = append(*out, sub)
		}
		return
	}
	*out = append(*out, step)
}

func applyNormalizerSteps(steps []tokenizersStep, res *Result) {
	for _, s := range steps {
		switch s.Type {
		case "NFC":
			res.Normalization.Scheme = "nfc"
		case "NFD":
			res.Normalization.Scheme = "nfd"
		case "NFKC":
			res.Normalization.Scheme = "nfkc"
		case "NFKD":
			res.Normalization.Scheme = "nfkd"
		case "Lowercase":
			res.Normalization.Fold = "lower"
		case "StripAccents":
			res.Normalization.StripAccents = true
		case "BertNormalizer":
			if s.Lowercase {
				res.Normalization.Fold = "lower"
			}
			res.Normalization.StripControls = true
			res.Normalization.CollapseWhitespace = true
		default:
			res.Warnings = append(res.Warnings, Warning{
				Feature: "normalizer:" + s.Type,
				Detail:  "unsupported normalizer leaf dropped",
			})
		}
	}
}

func applyPreTokenizerSteps(steps []tokenizersStep, res *Result) {
	for _, s := range steps {
		switch s.Type {
		case "ByteLevel":
			res.Fallback.ByteFallback = false
			res.Decoding.ByteLevel = true
			res.Mode.CharMode = true
		case "Whitespace", "WhitespaceSplit":
			res.Split.WhitespaceSplit = true
		case "Digits":
			res.Split.DigitSplit = true
		case "Punctuation":
			res.Split.PunctuationSplit = true
		case "UnicodeScripts":
			res.Warnings = append(res.Warnings, Warning{
				Feature: "pre_tokenizer:UnicodeScripts",
				Detail:  "script-aware pre-tokenizer leaf dropped; falling back to script-boundary splitting only if explicitly enabled",
			})
		default:
			res.Warnings = append(res.Warnings, Warning{
				Feature: "pre_tokenizer:" + s.Type,
				Detail:  "unsupported pre-tokenizer leaf dropped",
			})
		}
	}
}

func applyDecoderStep(raw json.RawMessage, res *Result) {
	var step tokenizersStep
	if err := json.Unmarshal(raw, &step); err != nil {
		return
	}
	switch step.Type {
	case "ByteLevel":
		res.Decoding.ByteLevel = true
	case "WordPiece":
		if res.Mode.Kind != "wordpiece" {
			res.Warnings = append(res.Warnings, Warning{
				Feature: "decoder:WordPiece",
				Detail:  "WordPiece decoder present on a non-WordPiece model; dropped",
			})
		}
	case "Replace":
		res.Warnings = append(res.Warnings, Warning{
			Feature: "decoder:Replace",
			Detail:  "regex-based decode replacement dropped; only literal replacement rules are supported",
		})
	default:
		res.Warnings = append(res.Warnings, Warning{
			Feature: "decoder:" + step.Type,
			Detail:  "unsupported decoder leaf dropped",
		})
	}
}
