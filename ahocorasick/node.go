// Package ahocorasick implements an Aho-Corasick keyword automaton over
// variable-length byte patterns: trie construction, failure-link
// construction, single-pass scanning with emit propagation, and a
// traversal that measures the shape of the trie.
//
// Nodes live in an arena (a slice) and refer to each other by index rather
// than by pointer. This resolves the failure link's cyclic back-reference
// without ambiguous ownership: the arena owns every node, parent-to-child
// is expressed by child index, and failure links are plain indices that
// never affect node lifetime.
package ahocorasick

// rootIndex is the arena index of the trie's root node.
const rootIndex = 0

// unsetFailure marks a node whose failure link has not yet been computed.
const unsetFailure = -1

// emit is one occurrence of a pattern recorded at a terminal node: the
// pattern's bytes and the index at which it was inserted. Re-inserting an
// identical pattern appends a second emit at the same node with a new
// insertionIndex, disambiguating repeats without changing trie shape.
type emit struct {
	patternBytes   []byte
	insertionIndex int
}

// node is one state in the trie arena.
type node struct {
	transitions map[byte]int32 // byte -> child arena index
	failure     int32          // arena index of the failure target, or unsetFailure
	depth       int
	emits       []emit
}

func newNode(depth int) node {
	return node{
		transitions: make(map[byte]int32),
		failure:     unsetFailure,
		depth:       depth,
	}
}

// isTerminal reports whether n has any emits of its own (not counting
// emits propagated to it from a failure target).
func (n *node) isTerminal() bool {
	for _, e := range n.emits {
		if len(e.patternBytes) == n.depth {
			return true
		}
	}
	return false
}
