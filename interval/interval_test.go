package interval

import "testing"

func TestOverlaps(t *testing.T) {
	a := Interval{Start: 1, End: 3}
	b := Interval{Start: 3, End: 5}
	c := Interval{Start: 4, End: 5}

	if !a.Overlaps(b) {
		t.Error("expected [1,3] and [3,5] to overlap at 3")
	}
	if a.Overlaps(c) {
		t.Error("expected [1,3] and [4,5] to not overlap")
	}
}

func TestTreeOverlapsQuery(t *testing.T) {
	ivs := []Interval{
		{Start: 0, End: 2, Payload: "a"},
		{Start: 5, End: 8, Payload: "b"},
		{Start: 10, End: 12, Payload: "c"},
	}
	tree := Build(ivs)

	got := tree.Overlaps(Interval{Start: 6, End: 6})
	if len(got) != 1 || got[0].Payload != "b" {
		t.Errorf("Overlaps(6,6) = %v, want [b]", got)
	}

	got = tree.Overlaps(Interval{Start: 2, End: 5})
	if len(got) != 2 {
		t.Errorf("Overlaps(2,5) = %v, want 2 matches", got)
	}
}

// Scenario 2's raw emits (she@(1,3), he@(2,3), hers@(2,5) over "ushers")
// pairwise overlap at positions 2-3, so the only maximal non-overlapping
// subset under "longer first, later start" is the single longest interval,
// hers@(2,5) (length 4 beats both she's length 3 and he's length 2). See
// DESIGN.md for why this differs from the spec's literal scenario-2 prose.
func TestRemoveOverlapsScenario2(t *testing.T) {
	ivs := []Interval{
		{Start: 1, End: 3, Payload: "she"},
		{Start: 2, End: 3, Payload: "he"},
		{Start: 2, End: 5, Payload: "hers"},
	}

	kept := RemoveOverlaps(ivs)
	if len(kept) != 1 || kept[0].Payload != "hers" {
		t.Fatalf("got %v, want single retained interval [hers]", kept)
	}
}

func TestRemoveOverlapsMaximality(t *testing.T) {
	ivs := []Interval{
		{Start: 0, End: 1},
		{Start: 2, End: 3},
		{Start: 0, End: 3},
	}
	kept := RemoveOverlaps(ivs)
	// The longest interval [0,3] should win over the two shorter disjoint ones.
	if len(kept) != 1 || kept[0].Start != 0 || kept[0].End != 3 {
		t.Errorf("got %v, want single interval [0,3]", kept)
	}
}

func TestRemoveOverlapsEmpty(t *testing.T) {
	if got := RemoveOverlaps(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
