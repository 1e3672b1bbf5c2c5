package vocabulary

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// DecodeVocabulary decodes a base64-encoded, newline-delimited vocabulary
// blob into one entry per line, dropping empty lines.
func DecodeVocabulary(vocabBase64 string) ([]string, error) {
	decoded, err := base64.StdEncoding.DecodeString(vocabBase64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 vocabulary: %w", err)
	}

	lines := strings.Split(string(decoded), "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		result = append(result, line)
	}
	return result, nil
}

// EmbeddedDataLoader implements Loader over base64-encoded vocabulary data
// held in memory, typically the data embedded via -tags embed.
type EmbeddedDataLoader struct {
	vocabBase64 string
}

// NewDefaultLoader creates a loader over the default embedded data.
func NewDefaultLoader() *EmbeddedDataLoader {
	return &EmbeddedDataLoader{vocabBase64: EmbeddedVocabulary}
}

// NewCustomLoader creates a loader over caller-supplied base64 vocabulary
// data.
func NewCustomLoader(vocabBase64 string) *EmbeddedDataLoader {
	return &EmbeddedDataLoader{vocabBase64: vocabBase64}
}

// LoadVocabulary decodes the vocabulary data.
func (d *EmbeddedDataLoader) LoadVocabulary() ([]string, error) {
	if d.vocabBase64 == "" {
		return nil, fmt.Errorf("vocabulary data not found")
	}
	return DecodeVocabulary(d.vocabBase64)
}

// FileLoader implements Loader by reading a base64-encoded vocabulary file
// from disk.
type FileLoader struct {
	VocabPath string
}

// NewFileLoader creates a loader that reads the vocabulary from vocabPath.
func NewFileLoader(vocabPath string) *FileLoader {
	return &FileLoader{VocabPath: vocabPath}
}

// LoadVocabulary reads and decodes the vocabulary file.
func (f *FileLoader) LoadVocabulary() ([]string, error) {
	data, err := os.ReadFile(f.VocabPath)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file %s: %w", f.VocabPath, err)
	}
	return DecodeVocabulary(string(data))
}
