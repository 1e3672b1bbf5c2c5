package codec

import "bytes"

// Format identifies which wire format a blob of bytes looks like.
type Format int

const (
	FormatUnknown Format = iota
	FormatNative
	FormatSentencePiece
	FormatTokenizers
	FormatTiktoken
	FormatTekken
)

// Detect peeks at data and returns its best guess at the format, without
// fully parsing it. Callers attempt parsers in the returned priority
// order; the first to succeed wins (§4.B "First that parses without
// error wins; others' errors are suppressed").
func Detect(data []byte) []Format {
	if bytes.HasPrefix(data, Magic[:]) {
		return []Format{FormatNative}
	}

	var order []Format
	if len(data) > 0 && data[0] == 0x0a {
		order = append(order, FormatSentencePiece)
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		order = append(order, FormatTekken, FormatTokenizers)
	}
	if looksLikeTiktokenLines(data) {
		order = append(order, FormatTiktoken)
	}
	if len(order) == 0 {
		order = []Format{FormatSentencePiece, FormatTokenizers, FormatTiktoken, FormatTekken}
	}
	return order
}

// looksLikeTiktokenLines checks whether data resembles "<base64> <int>"
// lines: the first line must split into exactly two whitespace-separated
// fields whose second field is all digits. Later lines and the character
// set are not checked.
func looksLikeTiktokenLines(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	nl := bytes.IndexByte(data, '\n')
	line := data
	if nl >= 0 {
		line = data[:nl]
	}
	line = bytes.TrimRight(line, "\r")
	parts := bytes.Fields(line)
	if len(parts) != 2 {
		return false
	}
	for _, c := range parts[1] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
