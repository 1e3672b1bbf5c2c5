package main

import (
	"fmt"
	"io"
	"os"

	tokenizer "github.com/agentstation/tokenizer"
)

// loadFacade reads a definition from path (or stdin when path is "-" or
// empty) and constructs a Facade. When format is "auto" (the default) the
// bytes are auto-detected per the binary codec's format-detection order;
// otherwise the named foreign-format constructor is used directly,
// bypassing auto-detect, returning any conversion warnings it produced.
func loadFacade(path, format string) (*tokenizer.Facade, []tokenizer.ConversionWarning, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, nil, err
	}

	if format == "" || format == "auto" {
		f, err := tokenizer.NewFromBytes(data)
		return f, nil, err
	}

	def, warnings, err := convertNamed(format, data)
	if err != nil {
		return nil, nil, err
	}
	f, err := tokenizer.New(def)
	return f, warnings, err
}

func convertNamed(format string, data []byte) (*tokenizer.Definition, []tokenizer.ConversionWarning, error) {
	switch format {
	case "native":
		def, err := tokenizer.DefinitionFromBytes(data)
		return def, nil, err
	case "sentencepiece":
		return tokenizer.FromSentencePiece(data)
	case "tokenizers":
		return tokenizer.FromTokenizers(data)
	case "tiktoken":
		return tokenizer.FromTiktoken(data)
	case "tekken":
		return tokenizer.FromTekken(data)
	default:
		return nil, nil, fmt.Errorf("unknown format %q: must be one of auto, native, sentencepiece, tokenizers, tiktoken, tekken", format)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printWarnings(warnings []tokenizer.ConversionWarning) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}
}
