// Package pattern holds the ordered collection of (pattern bytes, SID set)
// records that both the cuckoo and Aho-Corasick indexes are built from.
package pattern

// SID is a signature identifier: an unsigned 32-bit integer tagging the rule
// a pattern belongs to.
type SID = uint32

// Record is an immutable (bytes, SIDs) pair. The core never mutates a
// Record's Bytes after construction; SIDs is a set so membership, not order,
// is meaningful.
type Record struct {
	Bytes []byte
	SIDs  map[SID]struct{}
}

// NewRecord builds a Record from bytes and a slice of SIDs, deduplicating
// the SIDs into a set.
func NewRecord(bytes []byte, sids []SID) Record {
	set := make(map[SID]struct{}, len(sids))
	for _, s := range sids {
		set[s] = struct{}{}
	}
	return Record{Bytes: bytes, SIDs: set}
}

// SIDSlice returns the Record's SIDs as a sorted slice, for deterministic
// iteration (e.g. in tests or serialization).
func (r Record) SIDSlice() []SID {
	return sortedSIDs(r.SIDs)
}

// Set is an append-only ordered sequence of pattern Records, consumed by
// both the substring extractor and the Aho-Corasick trie.
type Set struct {
	records []Record
}

// NewSet constructs an empty pattern Set.
func NewSet() *Set {
	return &Set{}
}

// Add appends a Record to the set.
func (s *Set) Add(r Record) {
	s.records = append(s.records, r)
}

// Len returns the number of records in the set.
func (s *Set) Len() int {
	return len(s.records)
}

// At returns the record at the given index.
func (s *Set) At(i int) Record {
	return s.records[i]
}

// All returns the records in insertion order. The returned slice must not
// be mutated by the caller.
func (s *Set) All() []Record {
	return s.records
}

// BytesToSIDs derives a map from pattern bytes (as a string key) to the
// union of SIDs across every record sharing those exact bytes. This is used
// by the Aho-Corasick search path to attribute an emitted pattern back to
// the rules it belongs to.
func (s *Set) BytesToSIDs() map[string]map[SID]struct{} {
	out := make(map[string]map[SID]struct{}, len(s.records))
	for _, r := range s.records {
		key := string(r.Bytes)
		existing, ok := out[key]
		if !ok {
			existing = make(map[SID]struct{}, len(r.SIDs))
			out[key] = existing
		}
		for sid := range r.SIDs {
			existing[sid] = struct{}{}
		}
	}
	return out
}

func sortedSIDs(set map[SID]struct{}) []SID {
	out := make([]SID, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	// Insertion sort is fine: SID sets are small (a handful of rule ids per
	// pattern in practice).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// UnionSIDs merges src into dst in place, returning dst.
func UnionSIDs(dst, src map[SID]struct{}) map[SID]struct{} {
	if dst == nil {
		dst = make(map[SID]struct{}, len(src))
	}
	for s := range src {
		dst[s] = struct{}{}
	}
	return dst
}
