// Package varint implements the Topaz page-stream's variable-length integer
// encoding: a big-endian, high-bit-continuation, optionally sign-flagged
// 7-bit encoding used uniformly for every size, index, argument, and opcode
// in the format.
//
// Decoding reads from a *bufio.Reader so a single byte of lookahead (peek)
// is always available without a manual read-then-seek-back dance, matching
// the one-byte-lookahead resource model the format calls for.
package varint

import (
	"bufio"
	"io"
)

// continuationBit marks a byte as non-terminal: more magnitude bytes follow.
const continuationBit = 0x80

// signFlag is a leading byte that negates the value that follows. It is not
// itself part of the magnitude.
const signFlag = 0xFF

// Decode reads one VarInt from r. ok is false if EOF was reached before any
// byte could be read, or if the stream was truncated mid-value (no
// terminating byte found); both cases are reported identically, matching the
// format's own tolerance for a parser that simply stops at end of stream.
func Decode(r *bufio.Reader) (value int64, ok bool) {
	negate := false

	b, err := r.ReadByte()
	if err != nil {
		return 0, false
	}
	if b == signFlag {
		negate = true
		b, err = r.ReadByte()
		if err != nil {
			return 0, false
		}
	}

	if b&continuationBit == 0 {
		value = int64(b)
	} else {
		v := int64(b & 0x7F)
		for {
			b, err = r.ReadByte()
			if err != nil {
				return 0, false
			}
			v = (v << 7) | int64(b&0x7F)
			if b&continuationBit == 0 {
				break
			}
		}
		value = v
	}

	if negate {
		value = -value
	}
	return value, true
}

// PeekByte returns the next byte in r without consuming it, and whether one
// was available. It is the one-byte lookahead procToken uses to decide
// whether an upcoming VarInt is actually a vector opcode or an escape
// marker.
func PeekByte(r *bufio.Reader) (b byte, ok bool) {
	peeked, err := r.Peek(1)
	if err != nil || len(peeked) == 0 {
		return 0, false
	}
	return peeked[0], true
}

// Encode renders n in the VarInt encoding. It exists for round-trip testing
// and to build LengthPrefixed strings; the decoder itself never calls it.
func Encode(n int64) []byte {
	negative := n < 0
	magnitude := n
	if negative {
		magnitude = -n
	}

	var groups []byte
	flag := byte(0)
	for {
		b := byte(magnitude&0x7F) | flag
		magnitude >>= 7
		groups = append(groups, b)
		flag = continuationBit
		if magnitude == 0 {
			if b == 0xFF && !negative {
				// Disambiguate against the sign-flag byte: without this
				// extra byte, a non-negative value whose leading group is
				// 0xFF would be indistinguishable from a negated value.
				groups = append(groups, 0x80)
			}
			break
		}
	}
	if negative {
		groups = append(groups, signFlag)
	}

	// groups was built least-significant-group-first; the wire format wants
	// most-significant-byte-first.
	out := make([]byte, len(groups))
	for i, b := range groups {
		out[len(groups)-1-i] = b
	}
	return out
}

// LengthPrefixed returns encode(len(s)) ++ s, the on-disk form of a string in
// both the dictionary file and any VarInt-length-prefixed payload.
func LengthPrefixed(s string) []byte {
	prefix := Encode(int64(len(s)))
	out := make([]byte, 0, len(prefix)+len(s))
	out = append(out, prefix...)
	out = append(out, s...)
	return out
}

// NewReader wraps r in a *bufio.Reader sized for the decoder's one-byte
// lookahead pattern, mirroring the low-level reader the teacher codebase
// builds around every binary stream it decodes.
func NewReader(r io.Reader) *bufio.Reader {
	return bufio.NewReader(r)
}
