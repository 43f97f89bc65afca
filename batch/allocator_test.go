package batch

import "testing"

func TestAllocateZeroIsEmpty(t *testing.T) {
	a := New[int](0)
	h := a.Allocate(0)
	if !h.IsEmpty() {
		t.Errorf("Allocate(0) = %+v, want empty", h)
	}
	if a.Free(h) {
		t.Error("freeing the empty handle should fail")
	}
}

func TestAllocationsDoNotOverlap(t *testing.T) {
	a := New[int](0)
	h1 := a.Allocate(4)
	h2 := a.Allocate(3)
	h3 := a.Allocate(5)

	for i := range a.Slice(h1) {
		a.Slice(h1)[i] = 1
	}
	for i := range a.Slice(h2) {
		a.Slice(h2)[i] = 2
	}
	for i := range a.Slice(h3) {
		a.Slice(h3)[i] = 3
	}
	check := func(h Handle, want int) {
		t.Helper()
		for i, v := range a.Slice(h) {
			if v != want {
				t.Errorf("block %+v [%d] = %d, want %d", h, i, v, want)
			}
		}
	}
	check(h1, 1)
	check(h2, 2)
	check(h3, 3)
	if a.Len() != 12 {
		t.Errorf("Len = %d, want 12", a.Len())
	}
}

func TestFreedBlockIsReused(t *testing.T) {
	a := New[int](0)
	h1 := a.Allocate(4)
	a.Allocate(4)
	a.Free(h1)

	h3 := a.Allocate(3)
	if h3.Index != h1.Index {
		t.Errorf("reuse index = %d, want %d", h3.Index, h1.Index)
	}
	h4 := a.Allocate(1)
	if h4.Index != 3 {
		t.Errorf("remainder index = %d, want 3", h4.Index)
	}
	if a.Extent() != 8 {
		t.Errorf("Extent = %d, want 8", a.Extent())
	}
}

func TestFreeCoalesces(t *testing.T) {
	a := New[int](0)
	h1 := a.Allocate(2)
	h2 := a.Allocate(2)
	h3 := a.Allocate(2)
	a.Allocate(2) // keeps the tail in use

	a.Free(h1)
	a.Free(h3)
	a.Free(h2)

	h := a.Allocate(6)
	if h.Index != 0 {
		t.Errorf("coalesced allocation index = %d, want 0", h.Index)
	}
	if a.Extent() != 8 {
		t.Errorf("Extent = %d, want 8", a.Extent())
	}
}

func TestFreeTailShrinks(t *testing.T) {
	a := New[int](0)
	a.Allocate(2)
	h := a.Allocate(5)
	a.Free(h)
	if a.Extent() != 2 {
		t.Errorf("Extent = %d, want 2", a.Extent())
	}
}

func TestDoubleFreeRejected(t *testing.T) {
	a := New[int](0)
	h := a.Allocate(3)
	if !a.Free(h) {
		t.Fatal("first Free failed")
	}
	if a.Free(h) {
		t.Error("second Free should fail")
	}
	if a.Free(Handle{Index: 0, Size: 2}) {
		t.Error("Free of a never-allocated block should fail")
	}
}

func TestAllocateZeroesReusedRecords(t *testing.T) {
	a := New[int](0)
	h := a.Allocate(3)
	a.Allocate(1)
	for i := range a.Slice(h) {
		a.Slice(h)[i] = 9
	}
	a.Free(h)
	h2 := a.Allocate(3)
	for i, v := range a.Slice(h2) {
		if v != 0 {
			t.Errorf("[%d] = %d, want 0", i, v)
		}
	}
}

func TestGetOutOfRange(t *testing.T) {
	a := New[int](0)
	a.Allocate(2)
	if a.Get(2) != nil || a.Get(-1) != nil {
		t.Error("Get out of range should return nil")
	}
	if a.Get(1) == nil {
		t.Error("Get(1) should be non-nil")
	}
}

func TestClear(t *testing.T) {
	a := New[int](0)
	h := a.Allocate(4)
	a.Clear()
	if a.Len() != 0 || a.Extent() != 0 {
		t.Errorf("Len/Extent = %d/%d, want 0/0", a.Len(), a.Extent())
	}
	if a.Free(h) {
		t.Error("Free after Clear should fail")
	}
}
