package cuckoo

import "testing"

// Scenario 6 from the spec: slot_count=4, max_load_factor=0.5 — the third
// distinct-key insert after two admitted ones must return Rejected.
func TestScenario6AdmissionRejection(t *testing.T) {
	idx := New(4, 0.5, 0)

	if out := idx.Insert(1, 100); out != Admitted {
		t.Fatalf("first insert: got %v, want Admitted", out)
	}
	if out := idx.Insert(2, 200); out != Admitted {
		t.Fatalf("second insert: got %v, want Admitted", out)
	}
	if out := idx.Insert(3, 300); out != Rejected {
		t.Fatalf("third insert: got %v, want Rejected", out)
	}
	if idx.Contains(3) {
		t.Error("rejected key must not be present")
	}
	if idx.Size() != 2 {
		t.Errorf("Size() = %d, want 2 (rejected insert must not mutate state)", idx.Size())
	}
}

func TestInsertThenContainsAndFind(t *testing.T) {
	idx := New(64, 0.9, 1<<20)

	if out := idx.Insert(42, 7); out != Admitted {
		t.Fatalf("insert: got %v, want Admitted", out)
	}
	if !idx.Contains(42) {
		t.Error("expected Contains(42) to be true")
	}
	v, ok := idx.Find(42)
	if !ok || v != 7 {
		t.Errorf("Find(42) = (%d, %v), want (7, true)", v, ok)
	}
}

func TestFindAbsentKeyReturnsFalse(t *testing.T) {
	idx := New(64, 0.9, 1<<20)
	if _, ok := idx.Find(999); ok {
		t.Error("expected Find on absent key to return false")
	}
}

func TestInsertOverwritesExistingKey(t *testing.T) {
	idx := New(64, 0.9, 1<<20)
	idx.Insert(5, 1)
	idx.Insert(5, 2)

	v, ok := idx.Find(5)
	if !ok || v != 2 {
		t.Errorf("Find(5) = (%d, %v), want (2, true)", v, ok)
	}
	if idx.Size() != 1 {
		t.Errorf("Size() = %d, want 1 (overwrite must not grow size)", idx.Size())
	}
}

func TestClear(t *testing.T) {
	idx := New(64, 0.9, 1<<20)
	idx.Insert(1, 1)
	idx.Insert(2, 2)
	idx.Clear()

	if idx.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", idx.Size())
	}
	if idx.Contains(1) || idx.Contains(2) {
		t.Error("expected no keys present after Clear")
	}
}

func TestLoadFactorAndCapacityBytes(t *testing.T) {
	idx := New(16, 0.9, 1<<20)
	if idx.Capacity() < 16 {
		t.Fatalf("Capacity() = %d, want >= 16", idx.Capacity())
	}
	idx.Insert(1, 1)
	lf := idx.LoadFactor()
	if lf <= 0 || lf > 1 {
		t.Errorf("LoadFactor() = %f, want in (0, 1]", lf)
	}
	if idx.CapacityBytes() != idx.Capacity()*bytesPerEntry {
		t.Errorf("CapacityBytes() = %d, want %d", idx.CapacityBytes(), idx.Capacity()*bytesPerEntry)
	}
}

func TestManyInsertsWithinBudgetAllAdmitted(t *testing.T) {
	idx := New(1024, 0.75, 1<<20)

	admitted := 0
	for k := uint64(0); k < 500; k++ {
		out := idx.Insert(k*2654435761+1, uint32(k))
		if out == Admitted {
			admitted++
		}
	}
	if admitted == 0 {
		t.Fatal("expected at least some inserts admitted")
	}
	if idx.Size() != admitted {
		t.Errorf("Size() = %d, want %d", idx.Size(), admitted)
	}
}

func TestPositionsAreSymmetric(t *testing.T) {
	idx := New(64, 0.9, 1<<20)
	p, s := idx.positions(12345)
	altOfS := idx.alternateBucket(s, 12345)
	if altOfS != p {
		t.Errorf("alternateBucket(secondary) = %d, want primary %d", altOfS, p)
	}
}
