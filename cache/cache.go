// Package cache provides an optional, purely in-memory decode cache in
// front of topaz.FromData and topaz.GetXML: a content-addressed Store keyed
// on the dictionary and page bytes, so a caller that re-renders the same
// page repeatedly (a plugin host redrawing a page, say) does not pay for the
// parse a second time.
package cache

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/bkaradzic/go-lz4"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/tpzdecode/topaz"
	"github.com/tpzdecode/topaz/dict"
)

// Store is a content-addressed cache of rendered decodes. The zero value is
// not usable; construct with NewStore. A Store is safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	// buckets groups entries by the xxhash of their blake2b digest, so a
	// lookup's hot path compares a cheap 64-bit hash before ever comparing
	// the full 32-byte digest.
	buckets map[uint64][]entry
}

type entry struct {
	digest     [32]byte
	compressed []byte
	rawLen     int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{buckets: make(map[uint64][]entry)}
}

// FromData is a cached wrapper around topaz.FromData: dictData and pageData
// are the raw dictionary and page file contents (not pre-loaded), so the
// Store can hash them before deciding whether to parse at all.
func (s *Store) FromData(dictData, pageData []byte, opts topaz.DecodeOptions) (string, error) {
	return s.render(dictData, pageData, true, opts)
}

// GetXML is a cached wrapper around topaz.GetXML.
func (s *Store) GetXML(dictData, pageData []byte, opts topaz.DecodeOptions) (string, error) {
	return s.render(dictData, pageData, false, opts)
}

func (s *Store) render(dictData, pageData []byte, flat bool, opts topaz.DecodeOptions) (string, error) {
	digest := digestFor(dictData, pageData, flat)

	if out, ok := s.lookup(digest); ok {
		return out, nil
	}

	d, err := dict.Load(bytes.NewReader(dictData))
	if err != nil {
		return "", err
	}

	var out string
	if flat {
		out, err = topaz.FromData(d, bytes.NewReader(pageData), opts)
	} else {
		out, err = topaz.GetXML(d, bytes.NewReader(pageData), opts)
	}
	if err != nil {
		return "", err
	}

	// A compression failure should never fail the decode itself; the
	// caller still gets a correct render, it just won't be cached.
	_ = s.store(digest, out)
	return out, nil
}

// digestFor computes the cache key for a (dictionary, page, rendering form)
// triple. Each segment is length-prefixed so no concatenation of dictData
// and pageData can collide with a different split of the same bytes.
func digestFor(dictData, pageData []byte, flat bool) [32]byte {
	var lenBuf [8]byte
	h, _ := blake2b.New256(nil)

	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(dictData)))
	h.Write(lenBuf[:])
	h.Write(dictData)

	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(pageData)))
	h.Write(lenBuf[:])
	h.Write(pageData)

	if flat {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}

	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

func (s *Store) lookup(digest [32]byte) (string, bool) {
	bucket := xxhash.Sum64(digest[:])

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.buckets[bucket] {
		if e.digest != digest {
			continue
		}
		raw := make([]byte, e.rawLen)
		if _, err := lz4.Decode(raw, e.compressed); err != nil {
			return "", false
		}
		return string(raw), true
	}
	return "", false
}

func (s *Store) store(digest [32]byte, rendered string) error {
	compressed, err := lz4.Encode(nil, []byte(rendered))
	if err != nil {
		return err
	}

	bucket := xxhash.Sum64(digest[:])

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.buckets[bucket] {
		if e.digest == digest {
			s.buckets[bucket][i] = entry{digest: digest, compressed: compressed, rawLen: len(rendered)}
			return nil
		}
	}
	s.buckets[bucket] = append(s.buckets[bucket], entry{digest: digest, compressed: compressed, rawLen: len(rendered)})
	return nil
}

// Len returns the number of distinct (dictionary, page, form) renders
// currently held, for tests and diagnostics.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, bucket := range s.buckets {
		n += len(bucket)
	}
	return n
}
