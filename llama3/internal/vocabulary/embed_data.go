//go:build embed

package vocabulary

import _ "embed"

// Build with -tags embed after placing vocab_base64.txt (from the
// llama3-tokenizer-js project: https://github.com/belladoreai/llama3-tokenizer-js)
// in this directory.

//go:embed vocab_base64.txt
var embeddedVocabularyFile string

func init() {
	EmbeddedVocabulary = embeddedVocabularyFile
}
