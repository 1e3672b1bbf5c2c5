// Tiktoken conversion (§4.C "Tiktoken"). Each line is "<base64> <id>";
// decoding order already matches file order, and since ids in a tiktoken
// file are assigned in merge-priority order, sorting by id recovers the
// merge priority (§4.C "sort by id; the resulting order is already the
// merge priority").
package convert

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
)

// FromTiktokenBytes parses a tiktoken vocabulary file into a Result.
// Split pattern and special tokens are inferred via a small catalog keyed
// on vocabulary size for the GPT-2/3/4/4o families, falling
// back to a permissive default when no match is found.
func FromTiktokenBytes(data []byte) (*Result, error) {
	res := &Result{Mode: ModeResult{Kind: "bytepair", CharMode: true}}
	res.Fallback.OnUnknown = "error"
	res.Decoding.ByteLevel = false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	type rawEntry struct {
		id    uint32
		bytes []byte
	}
	var entries []rawEntry

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		fields := bytes.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("tiktoken: line %d: expected \"<base64> <id>\"", lineNo)
		}
		raw, err := base64.StdEncoding.DecodeString(string(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("tiktoken: line %d: %w", lineNo, err)
		}
		id, err := strconv.ParseUint(string(fields[1]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("tiktoken: line %d: %w", lineNo, err)
		}
		entries = append(entries, rawEntry{id: uint32(id), bytes: raw})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tiktoken: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("tiktoken: empty vocabulary")
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	res.Vocab = make([]Entry, len(entries))
	for i, e := range entries {
		res.Vocab[i] = Entry{ID: e.id, Bytes: e.bytes}
	}

	pattern, specials := catalogLookup(len(entries))
	res.Split.Pattern = pattern
	nextID := uint32(len(entries))
	for _, s := range specials {
		res.Specials = append(res.Specials, Entry{ID: nextID, Bytes: []byte(s)})
		nextID++
	}
	if len(specials) > 0 {
		res.Roles.EOS = []byte(specials[0])
	}

	return res, nil
}
