package cache_test

import (
	"bytes"
	"testing"

	"github.com/tpzdecode/topaz"
	"github.com/tpzdecode/topaz/cache"
	"github.com/tpzdecode/topaz/varint"
)

func buildDictBytes(strs []string) []byte {
	var buf bytes.Buffer
	buf.Write(varint.Encode(int64(len(strs))))
	for _, s := range strs {
		buf.Write(varint.LengthPrefixed(s))
	}
	return buf.Bytes()
}

func TestStoreCachesIdenticalRequest(t *testing.T) {
	s := cache.NewStore()
	dictData := buildDictBytes([]string{"zero", "page", "class", "body"})
	pageData := []byte{0x01, 0x01, 0x02, 0x03, 0x00}

	first, err := s.FromData(dictData, pageData, topaz.DecodeOptions{})
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after first render", s.Len())
	}

	second, err := s.FromData(dictData, pageData, topaz.DecodeOptions{})
	if err != nil {
		t.Fatalf("FromData (cached): %v", err)
	}
	if second != first {
		t.Errorf("cached FromData = %q, want %q", second, first)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d after cache hit, want still 1", s.Len())
	}
}

func TestStoreDistinguishesFlatAndNested(t *testing.T) {
	s := cache.NewStore()
	dictData := buildDictBytes([]string{"zero", "page", "class", "body"})
	pageData := []byte{0x01, 0x01, 0x02, 0x03, 0x00}

	flat, err := s.FromData(dictData, pageData, topaz.DecodeOptions{})
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	nested, err := s.GetXML(dictData, pageData, topaz.DecodeOptions{})
	if err != nil {
		t.Fatalf("GetXML: %v", err)
	}
	if flat == nested {
		t.Error("flat and nested renders should differ in shape")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (one entry per rendering form)", s.Len())
	}
}

func TestStoreDistinguishesDifferentPages(t *testing.T) {
	s := cache.NewStore()
	dictData := buildDictBytes([]string{"zero", "page", "class", "body"})

	pageA := []byte{0x01, 0x01, 0x02, 0x03, 0x00}
	pageB := []byte{0x01, 0x00, 0x00}

	outA, err := s.FromData(dictData, pageA, topaz.DecodeOptions{})
	if err != nil {
		t.Fatalf("FromData(A): %v", err)
	}
	outB, err := s.FromData(dictData, pageB, topaz.DecodeOptions{})
	if err != nil {
		t.Fatalf("FromData(B): %v", err)
	}
	if outA == outB {
		t.Error("distinct page streams should not collapse to the same render")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStorePropagatesDecodeError(t *testing.T) {
	s := cache.NewStore()
	badDict := []byte{0x7f} // truncated: claims 127 entries, supplies none
	_, err := s.FromData(badDict, nil, topaz.DecodeOptions{})
	if err == nil {
		t.Error("FromData with a truncated dictionary should fail")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after a failed render, want 0", s.Len())
	}
}
