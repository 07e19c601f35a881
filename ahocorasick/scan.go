package ahocorasick

import (
	"github.com/coregx/sigharness/interval"
)

// Emit is a notification that a pattern occurs at a specific interval in
// scanned text: zero-based inclusive Start/End such that End - Start + 1
// equals the pattern's length.
type Emit struct {
	Start        int
	End          int
	PatternBytes []byte
}

// Scan builds the failure graph on first call after any Insert, then runs
// a single pass over text, returning every match subject to the
// OnlyWholeWords and AllowOverlaps post-processing options.
func (ac *AhoCorasick) Scan(text []byte) []Emit {
	ac.ensureBuilt()

	raw := ac.rawScan(text)

	if ac.opts.OnlyWholeWords {
		raw = filterWholeWords(raw, text)
	}
	if !ac.opts.AllowOverlaps {
		raw = removeOverlaps(raw)
	}
	return raw
}

// rawScan performs the single-pass automaton walk with no post-processing.
func (ac *AhoCorasick) rawScan(text []byte) []Emit {
	var emits []Emit
	cur := int32(rootIndex)

	for pos, c := range text {
		if ac.opts.CaseInsensitive {
			c = toLowerASCII(c)
		}

		for {
			if next, ok := ac.arena[cur].transitions[c]; ok {
				cur = next
				break
			}
			if cur == rootIndex {
				break
			}
			if ac.arena[cur].failure == unsetFailure {
				invariantViolation("failure link unset during scan")
			}
			cur = ac.arena[cur].failure
		}

		for _, e := range ac.arena[cur].emits {
			end := pos
			start := end - len(e.patternBytes) + 1
			emits = append(emits, Emit{Start: start, End: end, PatternBytes: e.patternBytes})
		}
	}

	return emits
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// filterWholeWords drops any emit whose adjacent text byte on either side
// is an ASCII letter.
func filterWholeWords(emits []Emit, text []byte) []Emit {
	out := emits[:0:0]
	for _, e := range emits {
		if e.Start > 0 && isWordByte(text[e.Start-1]) {
			continue
		}
		if e.End+1 < len(text) && isWordByte(text[e.End+1]) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// removeOverlaps feeds emits to interval.RemoveOverlaps, which uses an
// interval tree to retain a maximal
// non-overlapping subset preferring longer intervals, breaking ties by
// later start, re-sorted by start ascending.
func removeOverlaps(emits []Emit) []Emit {
	if len(emits) == 0 {
		return emits
	}

	ivs := make([]interval.Interval, len(emits))
	for i, e := range emits {
		ivs[i] = interval.Interval{Start: e.Start, End: e.End, Payload: i}
	}

	kept := interval.RemoveOverlaps(ivs)

	out := make([]Emit, len(kept))
	for i, iv := range kept {
		out[i] = emits[iv.Payload.(int)]
	}
	return out
}
