// Package codec implements component B: the native binary definition
// format and foreign-format auto-detection. The native layout is a
// bespoke, postcard-style varint length-delimited encoding defined by the
// wire format itself rather than any general-purpose serialization
// scheme, so it is built directly on encoding/binary's varint helpers
// (see DESIGN.md for why no third-party codec library fits here).
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// Magic is the four-byte preamble identifying the native format.
var Magic = [4]byte{'T', 'K', 'Z', 'D'}

// Version is the current native format version.
const Version = 1

// ErrBadMagic means the input does not start with the native preamble.
var ErrBadMagic = errors.New("codec: bad magic")

// ErrUnsupportedVersion means the preamble matched but the version byte
// is one this build does not know how to read.
var ErrUnsupportedVersion = errors.New("codec: unsupported version")

// Entry is one vocabulary or specials record.
type Entry struct {
	ID    uint32
	Bytes []byte
}

// Native is the flat, codec-level view of a Definition: everything
// binary.go needs to read or write, independent of the root package's
// richer Config type (kept in ConfigBlob as an opaque, separately-coded
// byte string so the two concerns stay decoupled).
type Native struct {
	ConfigBlob []byte
	Vocab      []Entry
	Specials   []Entry
	Scores     []float32 // nil if absent
}

// Encode writes n in the native binary layout.
func Encode(n *Native) []byte {
	var buf bytes.Buffer
	buf.Write(Magic[:])
	buf.WriteByte(Version)

	writeVarint(&buf, uint64(len(n.ConfigBlob)))
	buf.Write(n.ConfigBlob)

	writeVarint(&buf, uint64(len(n.Vocab)))
	for _, e := range n.Vocab {
		writeEntry(&buf, e)
	}

	writeVarint(&buf, uint64(len(n.Specials)))
	for _, e := range n.Specials {
		writeEntry(&buf, e)
	}

	hasScores := n.Scores != nil
	if hasScores {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
	if hasScores {
		for _, s := range n.Scores {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(s))
			buf.Write(b[:])
		}
	}

	return buf.Bytes()
}

func writeEntry(buf *bytes.Buffer, e Entry) {
	writeVarint(buf, uint64(e.ID))
	writeVarint(buf, uint64(len(e.Bytes)))
	buf.Write(e.Bytes)
}

func writeVarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

// Decode parses the native binary layout, or returns ErrBadMagic /
// ErrUnsupportedVersion / io.ErrUnexpectedEOF on malformed input.
func Decode(data []byte) (*Native, error) {
	r := bytes.NewReader(data)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, ErrBadMagic
	}
	if magic != Magic {
		return nil, ErrBadMagic
	}

	version, err := r.ReadByte()
	if err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	if version != Version {
		return nil, ErrUnsupportedVersion
	}

	configLen, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	configBlob := make([]byte, configLen)
	if _, err := io.ReadFull(r, configBlob); err != nil {
		return nil, io.ErrUnexpectedEOF
	}

	vocabCount, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	vocab := make([]Entry, vocabCount)
	for i := range vocab {
		e, err := readEntry(r)
		if err != nil {
			return nil, err
		}
		vocab[i] = e
	}

	specialsCount, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	specials := make([]Entry, specialsCount)
	for i := range specials {
		e, err := readEntry(r)
		if err != nil {
			return nil, err
		}
		specials[i] = e
	}

	hasScores, err := r.ReadByte()
	if err != nil {
		return nil, io.ErrUnexpectedEOF
	}

	var scores []float32
	if hasScores != 0 {
		scores = make([]float32, vocabCount)
		for i := range scores {
			var b [4]byte
			if _, err := io.ReadFull(r, b[:]); err != nil {
				return nil, io.ErrUnexpectedEOF
			}
			scores[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[:]))
		}
	}

	return &Native{ConfigBlob: configBlob, Vocab: vocab, Specials: specials, Scores: scores}, nil
}

func readEntry(r *bytes.Reader) (Entry, error) {
	id, err := binary.ReadUvarint(r)
	if err != nil {
		return Entry{}, io.ErrUnexpectedEOF
	}
	length, err := binary.ReadUvarint(r)
	if err != nil {
		return Entry{}, io.ErrUnexpectedEOF
	}
	b := make([]byte, length)
	if _, err := io.ReadFull(r, b); err != nil {
		return Entry{}, io.ErrUnexpectedEOF
	}
	return Entry{ID: uint32(id), Bytes: b}, nil
}
