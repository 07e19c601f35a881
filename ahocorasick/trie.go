package ahocorasick

import (
	"sync"
	"sync/atomic"

	"github.com/coregx/sigharness/internal/conv"
	"github.com/coregx/sigharness/internal/sparse"
)

// Options configures an AhoCorasick automaton.
type Options struct {
	// AllowOverlaps, if true (the default), returns every emit, including
	// ones that overlap each other. If false, Scan retains only a maximal
	// non-overlapping subset preferring longer matches.
	AllowOverlaps bool
	// OnlyWholeWords, if true, drops any emit whose adjacent text byte on
	// either side is an ASCII letter.
	OnlyWholeWords bool
	// CaseInsensitive, if true (the default), lowercases scanned text
	// before matching. Inserted patterns are not folded — callers must
	// pre-normalize patterns themselves if they want full insensitivity;
	// this asymmetry is intentional, see SPEC_FULL.md §9.
	CaseInsensitive bool
}

// DefaultOptions returns the spec's defaults: overlaps allowed, whole-word
// filtering off, case-insensitive scanning on.
func DefaultOptions() Options {
	return Options{AllowOverlaps: true, OnlyWholeWords: false, CaseInsensitive: true}
}

// AhoCorasick is a trie with failure links and emit sets over
// variable-length byte patterns.
//
// It is safe for one builder (Insert) and any number of concurrent readers
// (Scan, Tokenize, Traverse) once the failure graph has been built, but
// Insert must not race with a Scan: invalidating the failure graph mid-scan
// is a caller error.
type AhoCorasick struct {
	opts    Options
	arena   []node
	built   atomic.Bool
	buildMu sync.Mutex
	count   int // number of Insert calls, used as each emit's insertionIndex
}

// New constructs an empty AhoCorasick automaton with a root node.
func New(opts Options) *AhoCorasick {
	ac := &AhoCorasick{opts: opts}
	ac.arena = append(ac.arena, newNode(0))
	ac.arena[rootIndex].failure = rootIndex
	return ac
}

// Insert adds patternBytes to the trie, walking from the root and creating
// child nodes as needed. The terminal node records an emit tagging this
// pattern with its insertion index. Invalidates any previously computed
// failure graph.
func (ac *AhoCorasick) Insert(patternBytes []byte) {
	cur := int32(rootIndex)
	for _, b := range patternBytes {
		next, ok := ac.arena[cur].transitions[b]
		if !ok {
			next = conv.IntToInt32(len(ac.arena))
			ac.arena = append(ac.arena, newNode(int(ac.arena[cur].depth)+1))
			ac.arena[cur].transitions[b] = next
		}
		cur = next
	}

	patCopy := make([]byte, len(patternBytes))
	copy(patCopy, patternBytes)
	ac.arena[cur].emits = append(ac.arena[cur].emits, emit{patternBytes: patCopy, insertionIndex: ac.count})
	ac.count++

	ac.built.Store(false)
}

// ensureBuilt builds the failure graph if it is not already built. Guarded
// by buildMu so concurrent first-scans do not double-build; the built flag
// is read with acquire semantics and written with release semantics via
// atomic.Bool, so a scanner observing built == true is guaranteed to see
// the complete failure graph without needing to hold the lock.
func (ac *AhoCorasick) ensureBuilt() {
	if ac.built.Load() {
		return
	}

	ac.buildMu.Lock()
	defer ac.buildMu.Unlock()

	if ac.built.Load() {
		return
	}

	ac.buildFailureLinks()
	ac.built.Store(true)
}

// buildFailureLinks performs a breadth-first construction of failure links
// starting from the root's direct children (which always fail to the
// root), using a sparse set to track visited arena indices so the BFS
// frontier never revisits a node.
func (ac *AhoCorasick) buildFailureLinks() {
	// Drop emits propagated by an earlier build, keeping each node's own
	// (pattern length == depth), so a rebuild does not append them twice.
	for i := range ac.arena {
		n := &ac.arena[i]
		own := n.emits[:0]
		for _, e := range n.emits {
			if len(e.patternBytes) == n.depth {
				own = append(own, e)
			}
		}
		n.emits = own
	}

	visited := sparse.NewSparseSet(uint32(len(ac.arena)))
	queue := make([]int32, 0, len(ac.arena))

	root := &ac.arena[rootIndex]
	for _, child := range root.transitions {
		ac.arena[child].failure = rootIndex
		queue = append(queue, child)
		visited.Insert(uint32(child))
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		curNode := &ac.arena[cur]
		for b, child := range curNode.transitions {
			failTarget := ac.findFailureTarget(curNode.failure, b)
			ac.arena[child].failure = failTarget

			// Propagate the failure target's emits so scanning is
			// single-pass.
			ac.arena[child].emits = append(ac.arena[child].emits, ac.arena[failTarget].emits...)

			if !visited.Contains(uint32(child)) {
				visited.Insert(uint32(child))
				queue = append(queue, child)
			}
		}
	}
}

// findFailureTarget walks failure links starting at from (a node's
// parent's failure target) looking for the deepest ancestor with a
// transition on b, or the root if none exists.
func (ac *AhoCorasick) findFailureTarget(from int32, b byte) int32 {
	cur := from
	for {
		if cur == unsetFailure {
			invariantViolation("failure link unset while building failure graph")
		}
		if child, ok := ac.arena[cur].transitions[b]; ok {
			return child
		}
		if cur == rootIndex {
			return rootIndex
		}
		cur = ac.arena[cur].failure
	}
}

// ShapeStats summarizes the trie's memory footprint, matching the
// accounting the original measurement harness performed via
// state::get_size(include_emits, include_peripherals).
type ShapeStats struct {
	NodeCount           int
	EdgeCount           int
	BytesExcludingEmits int64
	BytesIncludingEmits int64
}

// Traverse walks the entire arena and measures its shape: node and edge
// counts, and two byte totals (with and without emit payloads).
//
// Per node, edge bytes are charged as (1 byte key + arenaIndexSize) per
// transition, plus a depth/root/failure peripheral overhead; emit bytes
// (when included) are the pattern bytes plus an int for insertionIndex,
// for every emit recorded at that node (including emits propagated along
// failure links).
func (ac *AhoCorasick) Traverse() ShapeStats {
	const arenaIndexSize = 4 // int32 arena index
	const peripheralSize = 8 /* depth int, 8 bytes on 64-bit */ + arenaIndexSize /* root back-ref, constant */ + arenaIndexSize /* failure */
	const intSize = 8

	var stats ShapeStats
	stats.NodeCount = len(ac.arena)

	for i := range ac.arena {
		n := &ac.arena[i]
		edgeBytes := int64(len(n.transitions)) * (1 + arenaIndexSize)
		stats.EdgeCount += len(n.transitions)
		stats.BytesExcludingEmits += edgeBytes + peripheralSize

		emitBytes := int64(0)
		for _, e := range n.emits {
			emitBytes += int64(len(e.patternBytes)) + intSize
		}
		stats.BytesIncludingEmits += edgeBytes + peripheralSize + emitBytes
	}

	return stats
}
