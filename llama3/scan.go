package llama3

import (
	"io"

	"github.com/agentstation/tokenizer/llama3/scanner"
)

// scannerAdapter satisfies scanner.Tokenizer over a *Tokenizer: the scanner
// package has no dependency on this package's EncodeOptions type, so calls
// are translated at the boundary (SPEC_FULL.md §12 "generalized ... never
// threading partial BPE state across Scan() calls": each Scan() still
// drives a single whole-buffer Tokenizer.Encode call).
type scannerAdapter struct{ t *Tokenizer }

func (a scannerAdapter) Encode(text string, opts *scanner.EncodeOptions) ([]int, error) {
	return a.t.Encode(text, &EncodeOptions{BOS: opts.BOS, EOS: opts.EOS})
}

func (a scannerAdapter) GetSpecialTokenID(token string) (int, error) {
	return a.t.GetSpecialTokenID(token)
}

// ScannerOption configures streaming tokenization started via NewScanner.
type ScannerOption = scanner.Option

// WithBufferSize sets the scanner's internal read buffer size (default 4096).
func WithBufferSize(size int) ScannerOption { return scanner.WithBufferSize(size) }

// WithMaxBuffer sets the maximum buffer size before forcing tokenization of
// whatever has accumulated so far, bounding memory on pathological input
// with no tokenization boundary (default 1MB).
func WithMaxBuffer(size int) ScannerOption { return scanner.WithMaxBuffer(size) }

// WithEncodeOptions sets the BOS/EOS behavior applied around the streamed
// sequence (BOS on the first chunk, EOS on the last).
func WithEncodeOptions(opts *EncodeOptions) ScannerOption {
	if opts == nil {
		opts = defaultEncodeOptions()
	}
	return scanner.WithEncodeOptions(&scanner.EncodeOptions{BOS: opts.BOS, EOS: opts.EOS})
}

// NewScanner creates a streaming Scanner over r using this tokenizer. The
// scanner accumulates bytes to a tokenization boundary (whitespace, or a
// UTF-8 character boundary once the internal buffer fills) and calls
// Tokenizer.Encode on each accumulated chunk — there is no encoder state
// carried between chunks (spec.md Non-goals: "no streaming tokenization
// with incremental state beyond a single call").
func (t *Tokenizer) NewScanner(r io.Reader, opts ...ScannerOption) scanner.Scanner {
	return scanner.NewWithOptions(scannerAdapter{t: t}, r, opts...)
}

// NewScannerOptions is NewScanner under the name the teacher's CLI
// (llama3/cmd/llama3/stream.go) uses when passing buffer-size options
// alongside encode options.
func (t *Tokenizer) NewScannerOptions(r io.Reader, opts ...ScannerOption) scanner.Scanner {
	return t.NewScanner(r, opts...)
}
