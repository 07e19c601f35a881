// Package substring implements fixed-width substring extraction and
// deduplication over pattern byte windows (the keys stored in the cuckoo
// index).
//
// Substring is generic over its integer width because the window width L is
// fixed for any one extraction, but L itself is a runtime scenario
// parameter (1, 2, 4, or 8 bytes) — see Extract, which hides the generic
// family behind a width-agnostic entry point.
package substring

import (
	"fmt"
	"strings"

	"github.com/coregx/sigharness/hexcodec"
	"github.com/coregx/sigharness/pattern"
)

// Width is the set of unsigned integer types a Substring can be keyed by.
type Width interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Substring is a fixed-width unsigned integer key derived from a byte
// window, carrying the union of SIDs of every pattern that contributed an
// occurrence of this value and a count of how many additional (duplicate)
// occurrences were merged into it.
type Substring[T Width] struct {
	Value         T
	SIDs          map[pattern.SID]struct{}
	NumDuplicates int
}

// New constructs a Substring from a raw integer value and a SID set.
func New[T Width](value T, sids map[pattern.SID]struct{}) *Substring[T] {
	return &Substring[T]{Value: value, SIDs: sids}
}

// FromHex constructs a Substring by decoding a hex literal as exactly
// sizeof(T) bytes, big-endian.
func FromHex[T Width](literal string, sids map[pattern.SID]struct{}) (*Substring[T], error) {
	raw, err := hexcodec.Decode(literal)
	if err != nil {
		return nil, err
	}
	width := widthOf[T]()
	if len(raw) != width {
		return nil, fmt.Errorf("substring: hex literal %q decodes to %d bytes, want %d", literal, len(raw), width)
	}
	return New[T](T(hexcodec.BytesToUint(raw)), sids), nil
}

// Less reports whether s sorts before other by integer value.
func (s *Substring[T]) Less(other *Substring[T]) bool {
	return s.Value < other.Value
}

// MergeDuplicate unions sids into s's SID set and increments s's duplicate
// counter, reflecting that an equal-valued occurrence was found.
func (s *Substring[T]) MergeDuplicate(sids map[pattern.SID]struct{}) {
	s.SIDs = pattern.UnionSIDs(s.SIDs, sids)
	s.NumDuplicates++
}

// String renders the substring as its constituent bytes, each shown as
// "0x.." with a printable-character gloss, matching the verbose rendering
// the original measurement harness used for debugging dumps.
func (s *Substring[T]) String() string {
	width := widthOf[T]()
	raw := hexcodec.UintToBytes(uint64(s.Value), width)

	var b strings.Builder
	for i, by := range raw {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "0x%02x", by)
		if by >= 0x20 && by < 0x7f {
			fmt.Fprintf(&b, "('%c')", by)
		} else {
			b.WriteString("(?)")
		}
	}
	return b.String()
}

// widthOf returns sizeof(T) in bytes for the supported Width types.
func widthOf[T Width]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	case uint64:
		return 8
	default:
		panic("substring: unsupported width type")
	}
}
