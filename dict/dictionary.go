// Package dict implements the Topaz string dictionary: an immutable,
// index-addressed table of strings loaded once from a dictionary file and
// shared by every Page Parser that decodes against it.
package dict

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tpzdecode/topaz/varint"
)

// Dictionary is an immutable, order-indexed sequence of strings, each
// XML-escaped on load (spec.md §3.1, §4.2).
type Dictionary struct {
	strings []string
}

// Load reads a dictionary file from r: a VarInt count followed by that many
// VarInt-length-prefixed strings (spec.md §6.1). Each string is XML-escaped
// as it is read.
func Load(r io.Reader) (*Dictionary, error) {
	br := varint.NewReader(r)

	size, ok := varint.Decode(br)
	if !ok {
		return nil, fmt.Errorf("dict: %w: reading dictionary size", errTruncated)
	}
	if size < 0 {
		return nil, fmt.Errorf("dict: negative dictionary size %d", size)
	}

	d := &Dictionary{strings: make([]string, 0, size)}
	for i := int64(0); i < size; i++ {
		s, err := readString(br)
		if err != nil {
			return nil, fmt.Errorf("dict: reading string %d of %d: %w", i, size, err)
		}
		d.strings = append(d.strings, escape(s))
	}
	return d, nil
}

func readString(br *bufio.Reader) (string, error) {
	length, ok := varint.Decode(br)
	if !ok {
		return "", errTruncated
	}
	if length < 0 {
		return "", fmt.Errorf("negative string length %d", length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(br, buf); err != nil {
		return "", fmt.Errorf("%w: %v", errTruncated, err)
	}
	return string(buf), nil
}

var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"=", "&#61;",
)

// escape applies the dictionary's fixed XML-escaping rule (spec.md §3.1):
// &, <, >, = become &amp;, &lt;, &gt;, &#61;. strings.Replacer performs a
// single simultaneous pass, so the escape sequences it introduces are never
// themselves re-escaped, regardless of rule order.
func escape(s string) string {
	return replacer.Replace(s)
}

// Size returns the number of strings in the dictionary.
func (d *Dictionary) Size() int {
	return len(d.strings)
}

// Lookup returns the escaped string at index i. It is fatal (spec.md §7) to
// look up an index outside [0, Size()).
func (d *Dictionary) Lookup(i int64) (string, error) {
	if i < 0 || i >= int64(len(d.strings)) {
		return "", &OutOfRangeError{Index: i, Size: len(d.strings)}
	}
	return d.strings[i], nil
}

// OutOfRangeError reports a dictionary lookup outside the table's bounds.
type OutOfRangeError struct {
	Index int64
	Size  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("dict: index %d outside of string table limits [0, %d)", e.Index, e.Size)
}

var errTruncated = fmt.Errorf("truncated dictionary stream")
