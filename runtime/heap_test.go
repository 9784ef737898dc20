package runtime

import (
	"errors"
	"testing"
	"unsafe"
)

func newTestHeap(t *testing.T) *Heap {
	t.Helper()
	h := NewHeap(NewArenaBreak(1 << 20))
	if h.Disabled() {
		t.Fatal("heap bootstrap failed")
	}
	return h
}

func TestAllocateIsAligned(t *testing.T) {
	h := newTestHeap(t)
	for _, n := range []uintptr{1, 2, 15, 17, 100, 4095} {
		p := h.Allocate(n)
		if p == nil {
			t.Fatalf("Allocate(%d) = nil", n)
		}
		if addr := uintptr(p); addr%Alignment != 0 {
			t.Errorf("Allocate(%d) = %#x, not %d-byte aligned", n, addr, Alignment)
		}
	}
}

func TestAllocateZero(t *testing.T) {
	h := newTestHeap(t)
	if p := h.Allocate(0); p != nil {
		t.Errorf("Allocate(0) = %p, want nil", p)
	}
}

func TestAllocationsDoNotOverlap(t *testing.T) {
	h := newTestHeap(t)
	sizes := []uintptr{8, 40, 1, 4096, 17}
	ptrs := make([]unsafe.Pointer, len(sizes))
	for i, n := range sizes {
		ptrs[i] = h.Allocate(n)
		if ptrs[i] == nil {
			t.Fatalf("Allocate(%d) = nil", n)
		}
	}
	for i := range ptrs {
		want := alignUp(sizes[i], Alignment)
		lo := uintptr(ptrs[i])
		hi := lo + want
		for j := range ptrs {
			if i == j {
				continue
			}
			p := uintptr(ptrs[j])
			if p >= lo && p < hi {
				t.Errorf("allocation %d [%#x,%#x) overlaps allocation %d at %#x", i, lo, hi, j, p)
			}
		}
	}
}

func TestFreeThenReuse(t *testing.T) {
	h := newTestHeap(t)
	p1 := h.Allocate(64)
	if p1 == nil {
		t.Fatal("Allocate(64) = nil")
	}
	h.Free(p1)

	p2 := h.Allocate(64)
	if p2 == nil {
		t.Fatal("Allocate(64) after free = nil")
	}
	if p2 != p1 {
		t.Errorf("first-fit reuse: got %p, want the freed block at %p", p2, p1)
	}
}

func TestFreeCoalescesForward(t *testing.T) {
	h := newTestHeap(t)
	a := h.Allocate(64)
	b := h.Allocate(64)
	if a == nil || b == nil {
		t.Fatal("allocation failed")
	}

	// Forward coalescing only ever looks at a block's next neighbor, so the
	// higher-address block must be freed first: freeing a before b would
	// leave both blocks free but unmerged, since a's Free sees b still
	// allocated and b's Free has only the sentinel ahead of it.
	h.Free(b)
	h.Free(a)

	big := h.Allocate(64 + 64 + headerSize)
	if big == nil {
		t.Fatal("Allocate after coalescing two adjacent frees returned nil")
	}
	if big != a {
		t.Errorf("coalesced allocation at %p, want the first freed block at %p", big, a)
	}
}

func TestHeapGrowsMonotonically(t *testing.T) {
	h := newTestHeap(t)
	before := h.Stats().Break

	if p := h.Allocate(1 << 16); p == nil {
		t.Fatal("large allocation failed")
	}

	after := h.Stats().Break
	if after <= before {
		t.Errorf("break did not grow: before=%#x after=%#x", before, after)
	}
}

func TestReallocateGrowsAndPreservesContent(t *testing.T) {
	h := newTestHeap(t)
	p := h.Allocate(16)
	if p == nil {
		t.Fatal("Allocate(16) = nil")
	}
	src := unsafe.Slice((*byte)(p), 16)
	for i := range src {
		src[i] = byte(i)
	}

	np := h.Reallocate(p, 256)
	if np == nil {
		t.Fatal("Reallocate to a larger size returned nil")
	}
	dst := unsafe.Slice((*byte)(np), 16)
	for i := range dst {
		if dst[i] != byte(i) {
			t.Fatalf("byte %d = %d, want %d after growing realloc", i, dst[i], byte(i))
		}
	}
}

func TestReallocateNilActsAsAllocate(t *testing.T) {
	h := newTestHeap(t)
	p := h.Reallocate(nil, 32)
	if p == nil {
		t.Fatal("Reallocate(nil, 32) = nil")
	}
}

func TestReallocateZeroSizeFrees(t *testing.T) {
	h := newTestHeap(t)
	p := h.Allocate(32)
	if p == nil {
		t.Fatal("Allocate(32) = nil")
	}
	if got := h.Reallocate(p, 0); got != nil {
		t.Errorf("Reallocate(p, 0) = %p, want nil", got)
	}

	p2 := h.Allocate(32)
	if p2 != p {
		t.Errorf("block freed by Reallocate(p, 0) was not reused: got %p, want %p", p2, p)
	}
}

func TestAllocateZeroedClears(t *testing.T) {
	h := newTestHeap(t)
	p := h.Allocate(64)
	if p == nil {
		t.Fatal("Allocate(64) = nil")
	}
	buf := unsafe.Slice((*byte)(p), 64)
	for i := range buf {
		buf[i] = 0xff
	}
	h.Free(p)

	z := h.AllocateZeroed(8, 8)
	if z == nil {
		t.Fatal("AllocateZeroed(8, 8) = nil")
	}
	zbuf := unsafe.Slice((*byte)(z), 64)
	for i, b := range zbuf {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want 0", i, b)
		}
	}
}

func TestDisabledHeapReturnsNil(t *testing.T) {
	alwaysFails := func(target uintptr) (uintptr, error) {
		return 0, errors.New("break unavailable")
	}
	h := NewHeap(alwaysFails)
	if !h.Disabled() {
		t.Fatal("heap with a failing break should be disabled")
	}
	if p := h.Allocate(16); p != nil {
		t.Errorf("Allocate on a disabled heap = %p, want nil", p)
	}
}
