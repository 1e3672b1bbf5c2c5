package bytepair

import "errors"

// ErrUnrepresentable is returned internally when a unit of the input segment
// has no vocabulary entry and byte-fallback is disabled; the caller (the
// Facade) turns this into Unencodable or the configured unk policy per §9
// ("byte-fallback wins if enabled, else unk_id, else error").
var ErrUnrepresentable = errors.New("unit not representable in vocabulary")

// FallbackThreshold is the segment-length cutoff above which the heap-based
// fallback path runs instead of the linear-scan fast path (§4.F "empirically
// around 128 units").
const FallbackThreshold = 128

// Processor executes the BytePair algorithm for one segment (§4.F).
type Processor struct {
	Vocab        *Vocab
	CharMode     bool
	ByteFallback bool
	Cache        Cache // may be nil to disable caching
}

// PerformBPE tokenizes a single non-special segment.
func (p *Processor) PerformBPE(segment []byte) ([]uint32, error) {
	if len(segment) == 0 {
		return nil, nil
	}
	key := string(segment)
	if p.Cache != nil {
		if cached, ok := p.Cache.Get(key); ok {
			return cached, nil
		}
	}

	if pos, ok := p.Vocab.PositionForBytes(segment); ok {
		result := []uint32{p.Vocab.IDs[pos]}
		p.store(key, result)
		return result, nil
	}

	units, ok := p.initialPositions(segment)
	if !ok {
		return nil, ErrUnrepresentable
	}
	if len(units) <= 1 {
		result := idsFromPositions(p.Vocab, units)
		p.store(key, result)
		return result, nil
	}

	var merged []int
	if len(units) > FallbackThreshold {
		merged = fallbackMerge(p.Vocab, units)
	} else {
		merged = fastMerge(p.Vocab, units)
	}

	result := idsFromPositions(p.Vocab, merged)
	p.store(key, result)
	return result, nil
}

func (p *Processor) store(key string, value []uint32) {
	if p.Cache != nil {
		p.Cache.Put(key, value)
	}
}

func idsFromPositions(vocab *Vocab, positions []int) []uint32 {
	ids := make([]uint32, len(positions))
	for i, pos := range positions {
		ids[i] = vocab.IDs[pos]
	}
	return ids
}

// initialPositions breaks segment into its initial pieces (UTF-8 characters
// if CharMode, otherwise individual bytes), resolving each to a vocabulary
// position. A unit absent from the vocabulary is decomposed into its raw
// bytes when ByteFallback is enabled; otherwise the whole segment is
// reported unrepresentable.
func (p *Processor) initialPositions(segment []byte) ([]int, bool) {
	units := make([]int, 0, len(segment))

	if !p.CharMode {
		for _, raw := range segment {
			pos, ok := p.Vocab.PositionForBytes([]byte{raw})
			if !ok {
				return nil, false
			}
			units = append(units, pos)
		}
		return units, true
	}

	for _, r := range string(segment) {
		b := []byte(string(r))
		if pos, ok := p.Vocab.PositionForBytes(b); ok {
			units = append(units, pos)
			continue
		}
		if !p.ByteFallback {
			return nil, false
		}
		for _, raw := range b {
			pos, ok := p.Vocab.PositionForBytes([]byte{raw})
			if !ok {
				return nil, false
			}
			units = append(units, pos)
		}
	}
	return units, true
}
