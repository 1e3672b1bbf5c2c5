// Package llama3 implements the Llama 3 tokenizer preset in pure Go.
//
// This package is a thin, model-specific layer over the generic
// [github.com/agentstation/tokenizer] engine: it supplies the Llama 3
// vocabulary (a base vocabulary of byte-level-mapped BPE tokens plus 256
// fixed special tokens) and the cl100k-family split pattern, then wraps the
// resulting [tokenizer.Facade] behind an API shaped like the reference
// Llama 3 tokenizers — per-call BOS/EOS options, vocabulary size, and
// special-token ID lookup.
//
// # Basic Usage
//
//	tok, err := llama3.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Encode text to token IDs
//	tokens, err := tok.Encode("Hello, world!", nil)
//
//	// Decode token IDs back to text
//	text, err := tok.Decode(tokens)
//
// # Advanced Usage
//
// The tokenizer can be configured with various options:
//
//	// Create with a bounded LRU cache instead of the default unbounded one
//	tok, err := llama3.New(
//	    llama3.WithCacheSize(4096),
//	)
//
//	// Create from a base64 vocabulary file on disk instead of the
//	// embedded build
//	tok, err := llama3.New(
//	    llama3.WithDataFiles("vocab_base64.txt"),
//	)
//
// # Streaming
//
// For input too large to buffer in one string, [Tokenizer.NewScanner] wraps
// an io.Reader in a bufio.Scanner-style interface that tokenizes chunks at
// whitespace or UTF-8 boundaries, applying BOS to the first chunk and EOS to
// the last. No BPE state is carried between chunks.
//
// # Error Handling
//
// The package defines custom error types for better error handling:
//   - DataError: issues loading or processing tokenizer data
//   - TokenError: issues with specific tokens or token IDs
//   - ConfigError: issues with tokenizer configuration
//
// All errors implement the error interface and support error wrapping via
// errors.Is/errors.As against the package's sentinel errors.
//
// # Thread Safety
//
// A *Tokenizer is safe for concurrent use once constructed: Encode and
// Decode may be called from multiple goroutines. The underlying BPE cache
// uses its own internal locking.
package llama3
