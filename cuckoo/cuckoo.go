// Package cuckoo implements a bounded-capacity, bucketized cuckoo hash map
// keyed by fixed-width substrings, with a deterministic custom hash, a
// load-factor-and-byte-budget admission policy, and bounded displacement.
//
// Unlike the unbounded bucketized cuckoo hashing found in typical reference
// implementations, this table never grows: once the admission predicate
// denies an insert, or a displacement chain runs out of kicks, the caller
// gets back a normal (non-error) outcome describing why. This mirrors the
// bounded-resource experiment the table is built to measure.
package cuckoo

import (
	"fmt"
	"math/bits"

	"github.com/coregx/sigharness/hashfn"
)

// bucketWidth is the number of slots per bucket. The spec requires bucket
// width >= 4.
const bucketWidth = 4

// bytesPerEntry is the per-slot storage cost used by the admission
// predicate and CapacityBytes: a fixed-width key plus a 32-bit value
// handle, sized for parity with a 32-bit target platform.
const bytesPerEntry = 12 // 8-byte key (widest Substring) + 4-byte value handle

// Outcome is the result of an Insert call. Rejected and DisplacementExhausted
// are normal outcomes, not errors: the caller is expected to branch on them.
type Outcome int

const (
	// Admitted means the key was installed.
	Admitted Outcome = iota
	// Rejected means the admission predicate denied the insert before any
	// state was touched.
	Rejected
	// DisplacementExhausted means the admission predicate allowed the
	// insert, but the bounded eviction chain could not find a free slot.
	// The table is left completely unchanged.
	DisplacementExhausted
)

func (o Outcome) String() string {
	switch o {
	case Admitted:
		return "Admitted"
	case Rejected:
		return "Rejected"
	case DisplacementExhausted:
		return "DisplacementExhausted"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

type slot struct {
	key      uint64
	value    uint32
	occupied bool
}

type bucket struct {
	slots [bucketWidth]slot
}

// Index is a bounded-capacity cuckoo hash map from fixed-width keys to
// 32-bit value handles. It is not safe for concurrent use; callers must
// externally synchronize mutation.
type Index struct {
	buckets       []bucket
	bucketMask    uint64
	maxLoadFactor float64
	maxBytes      int
	size          int
	maxKicks      int
}

// New constructs an Index with slotCount slots (rounded up to the nearest
// power of two, bucketed into groups of bucketWidth), an admission load
// factor ceiling, and a byte budget.
func New(slotCount int, maxLoadFactor float64, maxBytes int) *Index {
	if slotCount < bucketWidth {
		slotCount = bucketWidth
	}
	numBuckets := nextPowerOfTwo((slotCount + bucketWidth - 1) / bucketWidth)

	idx := &Index{
		buckets:       make([]bucket, numBuckets),
		bucketMask:    uint64(numBuckets - 1),
		maxLoadFactor: maxLoadFactor,
		maxBytes:      maxBytes,
		maxKicks:      maxDisplacements(numBuckets),
	}
	return idx
}

// maxDisplacements bounds the eviction chain length proportional to
// log2(capacity), per the spec's "bounded displacement count proportional
// to log(capacity)".
func maxDisplacements(numBuckets int) int {
	const minKicks = 8
	log2 := bits.Len(uint(numBuckets))
	kicks := log2 * 4
	if kicks < minKicks {
		kicks = minKicks
	}
	return kicks
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// positions returns the two candidate bucket indices for key, derived by
// hashing the key for the primary position and xor-folding the key's
// alternate hash for the secondary, so that positions(positions(k)[1], k)
// always yields positions(k)[0] back (partial-key cuckoo hashing).
func (idx *Index) positions(key uint64) (primary, secondary uint64) {
	h1 := hashfn.Finalize64(key)
	primary = h1 & idx.bucketMask

	h2 := hashfn.Finalize64(key ^ 0x5bd1e995c6a4a793) // distinct seed-salted fold
	secondary = (primary ^ h2) & idx.bucketMask
	return primary, secondary
}

// Size returns the number of keys currently resident.
func (idx *Index) Size() int {
	return idx.size
}

// Capacity returns the total number of slots in the table.
func (idx *Index) Capacity() int {
	return len(idx.buckets) * bucketWidth
}

// CapacityBytes returns the table's total byte capacity (slots * bytesPerEntry).
func (idx *Index) CapacityBytes() int {
	return idx.Capacity() * bytesPerEntry
}

// LoadFactor returns size / capacity.
func (idx *Index) LoadFactor() float64 {
	cap := idx.Capacity()
	if cap == 0 {
		return 0
	}
	return float64(idx.size) / float64(cap)
}

// admit applies the admission predicate: reject once both the byte budget
// and the load-factor ceiling are simultaneously exceeded. capacity_bytes *
// current_size / slot_count algebraically reduces to "bytes currently
// resident" (capacity_bytes = slot_count * bytesPerEntry), so it is computed
// directly rather than via the multiplication-then-division in the spec's
// literal formula.
func (idx *Index) admit() bool {
	bytesInUse := idx.size * bytesPerEntry
	if bytesInUse >= idx.maxBytes && idx.LoadFactor() >= idx.maxLoadFactor {
		return false
	}
	return true
}

// Contains reports whether key is present.
func (idx *Index) Contains(key uint64) bool {
	_, ok := idx.Find(key)
	return ok
}

// Find returns the value associated with key, if present.
func (idx *Index) Find(key uint64) (uint32, bool) {
	p, s := idx.positions(key)
	if v, ok := idx.buckets[p].find(key); ok {
		return v, true
	}
	if v, ok := idx.buckets[s].find(key); ok {
		return v, true
	}
	return 0, false
}

// Insert places key/value into the table, returning the outcome. If key is
// already present, its value is overwritten in place (this counts as
// Admitted, not a new entry, and does not affect Size).
func (idx *Index) Insert(key uint64, value uint32) Outcome {
	p, s := idx.positions(key)

	if i, ok := idx.buckets[p].indexOf(key); ok {
		idx.buckets[p].slots[i].value = value
		return Admitted
	}
	if i, ok := idx.buckets[s].indexOf(key); ok {
		idx.buckets[s].slots[i].value = value
		return Admitted
	}

	if !idx.admit() {
		return Rejected
	}

	if i, ok := idx.buckets[p].freeSlot(); ok {
		idx.buckets[p].slots[i] = slot{key: key, value: value, occupied: true}
		idx.size++
		return Admitted
	}
	if i, ok := idx.buckets[s].freeSlot(); ok {
		idx.buckets[s].slots[i] = slot{key: key, value: value, occupied: true}
		idx.size++
		return Admitted
	}

	path, ok := idx.planDisplacement(p, key, value)
	if !ok {
		return DisplacementExhausted
	}
	idx.commitDisplacement(path)
	idx.size++
	return Admitted
}

// displacementStep records a single planned eviction: the bucket and slot
// index that will receive incomingKey/incomingValue, and the key/value that
// slot currently holds (which must be re-placed at its alternate position,
// the next step in the path, unless it is the path's final step).
type displacementStep struct {
	bucketIdx uint64
	slotIdx   int
	inKey     uint64
	inValue   uint32
}

// planDisplacement simulates a bounded random-walk eviction chain starting
// at startBucket without mutating any table state, so that a failed plan
// (DisplacementExhausted) leaves the table untouched. It returns the
// sequence of steps to commit, oldest (tie-break: lowest slot index)
// resident evicted first at each bucket, on success.
func (idx *Index) planDisplacement(startBucket uint64, key uint64, value uint32) ([]displacementStep, bool) {
	type virtualSlot struct {
		key      uint64
		value    uint32
		occupied bool
	}
	// overrides tracks slots already claimed by an earlier step in this
	// plan, so the simulation doesn't re-evict a slot it already emptied.
	overrides := make(map[uint64]map[int]virtualSlot)

	readSlot := func(b uint64, i int) virtualSlot {
		if ov, ok := overrides[b]; ok {
			if v, ok := ov[i]; ok {
				return v
			}
		}
		s := idx.buckets[b].slots[i]
		return virtualSlot{key: s.key, value: s.value, occupied: s.occupied}
	}
	writeSlot := func(b uint64, i int, v virtualSlot) {
		if overrides[b] == nil {
			overrides[b] = make(map[int]virtualSlot)
		}
		overrides[b][i] = v
	}

	var path []displacementStep
	curBucket := startBucket
	curKey, curValue := key, value

	for kick := 0; kick < idx.maxKicks; kick++ {
		// Lowest-index occupied slot is evicted first, for determinism.
		victimIdx := -1
		for i := 0; i < bucketWidth; i++ {
			if readSlot(curBucket, i).occupied {
				victimIdx = i
				break
			}
		}
		if victimIdx == -1 {
			// Shouldn't happen: we only enter planDisplacement when both
			// hashed positions were full, but a prior step in this same
			// plan may have freed a slot here.
			for i := 0; i < bucketWidth; i++ {
				s := readSlot(curBucket, i)
				if !s.occupied {
					path = append(path, displacementStep{bucketIdx: curBucket, slotIdx: i, inKey: curKey, inValue: curValue})
					writeSlot(curBucket, i, virtualSlot{key: curKey, value: curValue, occupied: true})
					return path, true
				}
			}
			return nil, false
		}

		victim := readSlot(curBucket, victimIdx)
		path = append(path, displacementStep{bucketIdx: curBucket, slotIdx: victimIdx, inKey: curKey, inValue: curValue})
		writeSlot(curBucket, victimIdx, virtualSlot{key: curKey, value: curValue, occupied: true})

		// Re-place the victim at its alternate bucket.
		altBucket := idx.alternateBucket(curBucket, victim.key)
		for i := 0; i < bucketWidth; i++ {
			if !readSlot(altBucket, i).occupied {
				path = append(path, displacementStep{bucketIdx: altBucket, slotIdx: i, inKey: victim.key, inValue: victim.value})
				writeSlot(altBucket, i, virtualSlot{key: victim.key, value: victim.value, occupied: true})
				return path, true
			}
		}

		curBucket = altBucket
		curKey, curValue = victim.key, victim.value
	}

	return nil, false
}

// alternateBucket returns the other hashed position for key, given that it
// currently resides in bucket b (one of its two positions).
func (idx *Index) alternateBucket(b uint64, key uint64) uint64 {
	p, s := idx.positions(key)
	if b == p {
		return s
	}
	return p
}

// commitDisplacement applies a successfully planned eviction chain to the
// real table in order.
func (idx *Index) commitDisplacement(path []displacementStep) {
	for _, step := range path {
		idx.buckets[step.bucketIdx].slots[step.slotIdx] = slot{
			key:      step.inKey,
			value:    step.inValue,
			occupied: true,
		}
	}
}

// Clear empties the table.
func (idx *Index) Clear() {
	for i := range idx.buckets {
		idx.buckets[i] = bucket{}
	}
	idx.size = 0
}

func (b *bucket) find(key uint64) (uint32, bool) {
	for i := 0; i < bucketWidth; i++ {
		if b.slots[i].occupied && b.slots[i].key == key {
			return b.slots[i].value, true
		}
	}
	return 0, false
}

func (b *bucket) indexOf(key uint64) (int, bool) {
	for i := 0; i < bucketWidth; i++ {
		if b.slots[i].occupied && b.slots[i].key == key {
			return i, true
		}
	}
	return 0, false
}

func (b *bucket) freeSlot() (int, bool) {
	for i := 0; i < bucketWidth; i++ {
		if !b.slots[i].occupied {
			return i, true
		}
	}
	return 0, false
}
