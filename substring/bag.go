package substring

import "github.com/coregx/sigharness/pattern"

// TypedBag is the multiset of Substring(L) values produced by extraction,
// keyed by integer value so that equal-valued occurrences merge rather than
// duplicate.
type TypedBag[T Width] struct {
	entries map[T]*Substring[T]
	// order preserves first-seen insertion order, for deterministic
	// iteration in tests and trial shuffling.
	order []T
}

// NewTypedBag constructs an empty bag.
func NewTypedBag[T Width]() *TypedBag[T] {
	return &TypedBag[T]{entries: make(map[T]*Substring[T])}
}

// Insert adds value tagged with sids to the bag. If value is already
// present, the existing entry's SIDs are unioned with sids and its
// duplicate counter is incremented; otherwise a new entry is created.
func (b *TypedBag[T]) Insert(value T, sids map[pattern.SID]struct{}) {
	if existing, ok := b.entries[value]; ok {
		existing.MergeDuplicate(sids)
		return
	}
	clone := make(map[pattern.SID]struct{}, len(sids))
	for s := range sids {
		clone[s] = struct{}{}
	}
	b.entries[value] = New[T](value, clone)
	b.order = append(b.order, value)
}

// Len returns the number of distinct Substring values in the bag.
func (b *TypedBag[T]) Len() int {
	return len(b.entries)
}

// Get returns the entry for value, if present.
func (b *TypedBag[T]) Get(value T) (*Substring[T], bool) {
	e, ok := b.entries[value]
	return e, ok
}

// All returns every entry in first-seen insertion order. The returned slice
// must not be mutated by the caller.
func (b *TypedBag[T]) All() []*Substring[T] {
	out := make([]*Substring[T], 0, len(b.order))
	for _, v := range b.order {
		out = append(out, b.entries[v])
	}
	return out
}

// Bag is a width-erased view over a TypedBag, used so callers that pick L
// at runtime (see Extract) can work with a single interface rather than a
// generic type parameter.
type Bag interface {
	// Len returns the number of distinct substring values in the bag.
	Len() int
	// Values returns every entry's raw integer value widened to uint64, its
	// SID set, and its duplicate count, in first-seen insertion order.
	Values() []BagEntry
	// Width returns the byte width (1, 2, 4, or 8) of the substrings in
	// this bag.
	Width() int
}

// BagEntry is a width-erased view of a single Substring bag entry.
type BagEntry struct {
	Value         uint64
	SIDs          map[pattern.SID]struct{}
	NumDuplicates int
}

type erasedBag[T Width] struct {
	bag   *TypedBag[T]
	width int
}

func (e *erasedBag[T]) Len() int { return e.bag.Len() }

func (e *erasedBag[T]) Width() int { return e.width }

func (e *erasedBag[T]) Values() []BagEntry {
	all := e.bag.All()
	out := make([]BagEntry, 0, len(all))
	for _, s := range all {
		out = append(out, BagEntry{
			Value:         uint64(s.Value),
			SIDs:          s.SIDs,
			NumDuplicates: s.NumDuplicates,
		})
	}
	return out
}
