// Package interval implements an augmented median-split interval tree used
// to prune overlapping Aho-Corasick emits when non-overlapping output is
// requested.
package interval

// Interval is a closed range [Start, End] with an arbitrary caller payload
// (typically an index back into the original emit slice).
type Interval struct {
	Start, End int
	Payload    any
}

// Len returns the interval's length in covered positions.
func (iv Interval) Len() int {
	return iv.End - iv.Start + 1
}

// Overlaps reports whether iv and other share at least one position.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start <= other.End && other.Start <= iv.End
}

// mid is the split point at a tree node: the median of the intervals'
// midpoints.
func mid(ivs []Interval) int {
	mids := make([]int, len(ivs))
	for i, iv := range ivs {
		mids[i] = (iv.Start + iv.End) / 2
	}
	for i := 1; i < len(mids); i++ {
		for j := i; j > 0 && mids[j-1] > mids[j]; j-- {
			mids[j-1], mids[j] = mids[j], mids[j-1]
		}
	}
	return mids[len(mids)/2]
}

// node is one node of the median-split interval tree.
type node struct {
	median    int
	spanning  []Interval // intervals that span node.median
	left      *node
	right     *node
}

// Tree is an augmented binary tree over intervals supporting overlap
// queries.
type Tree struct {
	root *node
}

// Build constructs a Tree from ivs. Build chooses the median of the
// given intervals' midpoints, places every
// interval spanning that median at this node, and recurses left/right with
// the strictly-before and strictly-after remainders.
func Build(ivs []Interval) *Tree {
	return &Tree{root: build(ivs)}
}

func build(ivs []Interval) *node {
	if len(ivs) == 0 {
		return nil
	}

	m := mid(ivs)
	var spanning, left, right []Interval
	for _, iv := range ivs {
		switch {
		case iv.End < m:
			left = append(left, iv)
		case iv.Start > m:
			right = append(right, iv)
		default:
			spanning = append(spanning, iv)
		}
	}

	return &node{
		median:   m,
		spanning: spanning,
		left:     build(left),
		right:    build(right),
	}
}

// Overlaps returns every interval in the tree that overlaps q.
func (t *Tree) Overlaps(q Interval) []Interval {
	var out []Interval
	overlapsNode(t.root, q, &out)
	return out
}

func overlapsNode(n *node, q Interval, out *[]Interval) {
	if n == nil {
		return
	}

	for _, iv := range n.spanning {
		if iv.Overlaps(q) {
			*out = append(*out, iv)
		}
	}

	if q.Start <= n.median && n.left != nil {
		overlapsNode(n.left, q, out)
	}
	if q.End >= n.median && n.right != nil {
		overlapsNode(n.right, q, out)
	}
}

// RemoveOverlaps returns a maximal non-overlapping subset of ivs: sort by
// length descending then start descending, greedily keep each interval
// that doesn't overlap an already-kept one (found by querying a Tree built
// over all of ivs), then re-sort the kept set by start ascending.
func RemoveOverlaps(ivs []Interval) []Interval {
	candidates := make([]Interval, len(ivs))
	copy(candidates, ivs)
	sortByLenDescThenStartDesc(candidates)

	indexed := make([]Interval, len(candidates))
	for i, c := range candidates {
		indexed[i] = Interval{Start: c.Start, End: c.End, Payload: i}
	}
	tree := Build(indexed)

	keptIdx := make(map[int]bool)
	var kept []Interval
	for i, c := range candidates {
		overlapsKept := false
		for _, o := range tree.Overlaps(indexed[i]) {
			if keptIdx[o.Payload.(int)] {
				overlapsKept = true
				break
			}
		}
		if !overlapsKept {
			keptIdx[i] = true
			kept = append(kept, c)
		}
	}

	sortByStartAsc(kept)
	return kept
}

func sortByLenDescThenStartDesc(ivs []Interval) {
	for i := 1; i < len(ivs); i++ {
		for j := i; j > 0; j-- {
			a, b := ivs[j-1], ivs[j]
			if a.Len() > b.Len() || (a.Len() == b.Len() && a.Start >= b.Start) {
				break
			}
			ivs[j-1], ivs[j] = ivs[j], ivs[j-1]
		}
	}
}

func sortByStartAsc(ivs []Interval) {
	for i := 1; i < len(ivs); i++ {
		for j := i; j > 0 && ivs[j-1].Start > ivs[j].Start; j-- {
			ivs[j-1], ivs[j] = ivs[j], ivs[j-1]
		}
	}
}
