package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors usable with errors.Is.
var (
	// ErrEmptyVocabulary indicates a definition was built with no vocabulary entries.
	ErrEmptyVocabulary = errors.New("vocabulary is empty")
	// ErrScoreCountMismatch indicates the scores slice length does not match the vocabulary.
	ErrScoreCountMismatch = errors.New("score count does not match vocabulary count")
	// ErrSpecialNotUTF8 indicates a special token's bytes are not valid UTF-8.
	ErrSpecialNotUTF8 = errors.New("special token bytes are not valid UTF-8")
	// ErrByteCollision indicates two vocabulary or special entries share the same bytes.
	ErrByteCollision = errors.New("duplicate token bytes")
	// ErrIDCollision indicates two vocabulary entries share the same id.
	ErrIDCollision = errors.New("duplicate token id")
	// ErrDanglingRole indicates a config role (unk/pad/bos/eos/sep/mask) references an id found in neither the specials nor the vocabulary.
	ErrDanglingRole = errors.New("config role references an id not present among specials or vocabulary")
	// ErrMissingScores indicates Unigram mode was selected without scores.
	ErrMissingScores = errors.New("unigram mode requires scores")

	// ErrFormatUnrecognized indicates auto-detection could not identify a foreign format.
	ErrFormatUnrecognized = errors.New("unrecognized tokenizer format")

	// ErrUnencodable indicates a piece could not be covered by the vocabulary and no fallback applied.
	ErrUnencodable = errors.New("piece is not encodable")
	// ErrUnknownTokenID indicates a decode request referenced an id outside the vocabulary.
	ErrUnknownTokenID = errors.New("unknown token id")
	// ErrInvalidUTF8Output indicates decoded bytes were requested as UTF-8 but are not valid.
	ErrInvalidUTF8Output = errors.New("decoded output is not valid UTF-8")
)

// DefinitionError reports a failure validating or constructing a Definition.
type DefinitionError struct {
	Op     string
	Reason string
	Err    error
}

func (e *DefinitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid definition: %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid definition: %s: %v", e.Op, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// NewDefinitionError builds a *DefinitionError.
func NewDefinitionError(op, reason string, err error) error {
	return &DefinitionError{Op: op, Reason: reason, Err: err}
}

// FormatError reports that a foreign format could not be recognized at all.
type FormatError struct {
	Op  string
	Err error
}

func (e *FormatError) Error() string { return fmt.Sprintf("format: %s: %v", e.Op, e.Err) }
func (e *FormatError) Unwrap() error { return e.Err }

// NewFormatError builds a *FormatError.
func NewFormatError(op string, err error) error {
	return &FormatError{Op: op, Err: err}
}

// ConversionError reports a foreign-format converter failure.
type ConversionError struct {
	SourceFormat string
	Reason       string
	Err          error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %s: %v", e.SourceFormat, e.Reason, e.Err)
}
func (e *ConversionError) Unwrap() error { return e.Err }

// NewConversionError builds a *ConversionError.
func NewConversionError(sourceFormat, reason string, err error) error {
	return &ConversionError{SourceFormat: sourceFormat, Reason: reason, Err: err}
}

// ConversionWarning records an unsupported-but-droppable foreign feature that a
// converter silently discarded instead of failing (§4.C, §7).
type ConversionWarning struct {
	Feature string
	Detail  string
}

func (w ConversionWarning) String() string {
	if w.Detail == "" {
		return w.Feature
	}
	return fmt.Sprintf("%s: %s", w.Feature, w.Detail)
}

// EncodeError reports an encoding-time failure (Unencodable, §7).
type EncodeError struct {
	Op         string
	ByteOffset int
	Piece      string
	Err        error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode: %s: offset %d: piece %q: %v", e.Op, e.ByteOffset, e.Piece, e.Err)
}
func (e *EncodeError) Unwrap() error { return e.Err }

// NewEncodeError builds an *EncodeError.
func NewEncodeError(op string, byteOffset int, piece []byte, err error) error {
	return &EncodeError{Op: op, ByteOffset: byteOffset, Piece: string(piece), Err: err}
}

// DecodeError reports a decoding-time failure (UnknownTokenId, InvalidUtf8, §7).
type DecodeError struct {
	Op string
	ID int
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s: id %d: %v", e.Op, e.ID, e.Err)
}
func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError builds a *DecodeError.
func NewDecodeError(op string, id int, err error) error {
	return &DecodeError{Op: op, ID: id, Err: err}
}

// ConfigError reports an invalid Config mutation. Mirrors the teacher's
// errors.go ConfigError: mutation validates before taking effect, and on
// failure the prior state is preserved (§7 "mutation APIs validate before
// taking effect").
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s=%v: %v", e.Field, e.Value, e.Err)
}
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError builds a *ConfigError.
func NewConfigError(field string, value any, err error) error {
	return &ConfigError{Field: field, Value: value, Err: err}
}
