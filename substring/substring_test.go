package substring

import (
	"testing"

	"github.com/coregx/sigharness/pattern"
)

func TestFromHexRoundTrip(t *testing.T) {
	s, err := FromHex[uint32]("0x01020304", map[pattern.SID]struct{}{1: {}})
	if err != nil {
		t.Fatalf("FromHex error: %v", err)
	}
	if s.Value != 0x01020304 {
		t.Errorf("Value = %#x, want 0x01020304", s.Value)
	}
}

func TestFromHexWrongWidth(t *testing.T) {
	if _, err := FromHex[uint32]("0x0102", nil); err == nil {
		t.Fatal("expected error for short literal")
	}
}

func TestMergeDuplicate(t *testing.T) {
	s := New[uint16](0xABCD, map[pattern.SID]struct{}{1: {}})
	s.MergeDuplicate(map[pattern.SID]struct{}{2: {}})

	if s.NumDuplicates != 1 {
		t.Errorf("NumDuplicates = %d, want 1", s.NumDuplicates)
	}
	if len(s.SIDs) != 2 {
		t.Errorf("len(SIDs) = %d, want 2", len(s.SIDs))
	}
}

func TestLess(t *testing.T) {
	a := New[uint8](1, nil)
	b := New[uint8](2, nil)
	if !a.Less(b) {
		t.Error("expected 1 < 2")
	}
	if b.Less(a) {
		t.Error("expected 2 !< 1")
	}
}
