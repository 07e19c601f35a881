package ahocorasick

import (
	"reflect"
	"sort"
	"testing"
)

func emitStrings(emits []Emit) []string {
	out := make([]string, len(emits))
	for i, e := range emits {
		out[i] = string(e.PatternBytes)
	}
	sort.Strings(out)
	return out
}

// Scenario 1 from the spec: patterns he/she/his/hers, text "ushers",
// overlaps on, case-insensitive: emits she@(1,3), he@(2,3), hers@(2,5).
func TestScenario1OverlappingEmits(t *testing.T) {
	ac := New(DefaultOptions())
	for _, p := range []string{"he", "she", "his", "hers"} {
		ac.Insert([]byte(p))
	}

	emits := ac.Scan([]byte("ushers"))

	want := map[string][2]int{
		"she":  {1, 3},
		"he":   {2, 3},
		"hers": {2, 5},
	}
	if len(emits) != len(want) {
		t.Fatalf("got %d emits, want %d: %+v", len(emits), len(want), emits)
	}
	for _, e := range emits {
		span, ok := want[string(e.PatternBytes)]
		if !ok {
			t.Fatalf("unexpected emit %q", e.PatternBytes)
		}
		if e.Start != span[0] || e.End != span[1] {
			t.Errorf("%q: got (%d,%d), want (%d,%d)", e.PatternBytes, e.Start, e.End, span[0], span[1])
		}
	}
}

// Scenario 2 from the spec: same patterns, overlaps off. The raw emits
// pairwise overlap, so the only maximal non-overlapping subset is the
// single longest one, hers@(2,5). See DESIGN.md.
func TestScenario2NonOverlapping(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowOverlaps = false
	ac := New(opts)
	for _, p := range []string{"he", "she", "his", "hers"} {
		ac.Insert([]byte(p))
	}

	emits := ac.Scan([]byte("ushers"))
	if len(emits) != 1 || string(emits[0].PatternBytes) != "hers" {
		t.Fatalf("got %+v, want single emit 'hers'", emits)
	}
}

func TestEmitSoundness(t *testing.T) {
	ac := New(DefaultOptions())
	ac.Insert([]byte("cat"))
	ac.Insert([]byte("dog"))

	text := []byte("the cat sat with a dog")
	for _, e := range ac.Scan(text) {
		got := string(text[e.Start : e.End+1])
		if got != string(e.PatternBytes) {
			t.Errorf("emit text[%d:%d] = %q, want %q", e.Start, e.End+1, got, e.PatternBytes)
		}
	}
}

func TestCaseInsensitiveScanning(t *testing.T) {
	ac := New(DefaultOptions())
	ac.Insert([]byte("cat"))

	emits := ac.Scan([]byte("The CAT sat"))
	if len(emits) != 1 {
		t.Fatalf("expected 1 emit, got %d", len(emits))
	}
}

func TestCaseSensitiveScanning(t *testing.T) {
	opts := DefaultOptions()
	opts.CaseInsensitive = false
	ac := New(opts)
	ac.Insert([]byte("cat"))

	emits := ac.Scan([]byte("The CAT sat with a cat"))
	if len(emits) != 1 {
		t.Fatalf("expected 1 case-sensitive emit, got %d", len(emits))
	}
}

func TestOnlyWholeWords(t *testing.T) {
	opts := DefaultOptions()
	opts.OnlyWholeWords = true
	ac := New(opts)
	ac.Insert([]byte("cat"))

	emits := ac.Scan([]byte("cat concatenate"))
	if len(emits) != 1 {
		t.Fatalf("expected 1 whole-word emit, got %d: %+v", len(emits), emits)
	}
	if emits[0].Start != 0 {
		t.Errorf("expected the standalone 'cat' at 0, got start=%d", emits[0].Start)
	}
}

// A digit adjacent to a match is not a word boundary violation: only
// letters gate OnlyWholeWords, matching the original harness's isalpha
// check.
func TestOnlyWholeWordsDigitsAreNotWordBytes(t *testing.T) {
	opts := DefaultOptions()
	opts.OnlyWholeWords = true
	ac := New(opts)
	ac.Insert([]byte("cat"))

	emits := ac.Scan([]byte("1cat9 cat2"))
	if len(emits) != 2 {
		t.Fatalf("expected 2 whole-word emits despite adjacent digits, got %d: %+v", len(emits), emits)
	}
}

func TestDuplicatePatternInsertionGrowsEmitMultiplicity(t *testing.T) {
	ac := New(DefaultOptions())
	ac.Insert([]byte("ab"))
	ac.Insert([]byte("ab"))

	before := ac.Traverse().NodeCount
	emits := ac.Scan([]byte("ab"))
	after := ac.Traverse().NodeCount

	if before != after {
		t.Errorf("re-inserting an identical pattern should not change trie shape: %d != %d", before, after)
	}
	if len(emits) != 2 {
		t.Fatalf("expected 2 emits from 2 insertions of the same pattern, got %d", len(emits))
	}
}

func TestTraverseCounts(t *testing.T) {
	ac := New(DefaultOptions())
	ac.Insert([]byte("he"))
	ac.Insert([]byte("she"))

	stats := ac.Traverse()
	if stats.NodeCount <= 1 {
		t.Errorf("expected more than just the root node, got %d", stats.NodeCount)
	}
	if stats.EdgeCount <= 0 {
		t.Errorf("expected at least one edge, got %d", stats.EdgeCount)
	}
	if stats.BytesIncludingEmits < stats.BytesExcludingEmits {
		t.Errorf("BytesIncludingEmits (%d) should be >= BytesExcludingEmits (%d)",
			stats.BytesIncludingEmits, stats.BytesExcludingEmits)
	}
}

func TestTokenizeProducesContiguousTokens(t *testing.T) {
	ac := New(DefaultOptions())
	ac.Insert([]byte("cat"))

	text := []byte("the cat sat")
	tokens := ac.Tokenize(text)

	if len(tokens) == 0 {
		t.Fatal("expected at least one token")
	}
	if tokens[0].Start != 0 {
		t.Errorf("first token should start at 0, got %d", tokens[0].Start)
	}
	last := tokens[len(tokens)-1]
	if last.End != len(text)-1 {
		t.Errorf("last token should end at %d, got %d", len(text)-1, last.End)
	}
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Start != tokens[i-1].End+1 {
			t.Errorf("tokens not contiguous at %d: prev end %d, cur start %d", i, tokens[i-1].End, tokens[i].Start)
		}
	}

	foundMatch := false
	for _, tok := range tokens {
		if tok.Kind == TokenMatch && string(tok.Emit.PatternBytes) == "cat" {
			foundMatch = true
		}
	}
	if !foundMatch {
		t.Error("expected a TokenMatch for 'cat'")
	}
}

func TestScanRebuildsAfterInsert(t *testing.T) {
	ac := New(DefaultOptions())
	ac.Insert([]byte("a"))
	_ = ac.Scan([]byte("a")) // force first build

	ac.Insert([]byte("ab"))
	emits := ac.Scan([]byte("ab"))

	got := emitStrings(emits)
	want := []string{"a", "ab"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
