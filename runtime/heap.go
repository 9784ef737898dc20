package runtime

import "unsafe"

// Alignment is the power-of-two alignment every payload address and every
// recorded block size is a multiple of. 16 is required: it is wide enough
// for any scalar this package hands back to a caller.
const Alignment = 16

// blockHeader is the fixed metadata prepended to every block in the heap
// region. next holds the address of the following block's header, or nil at
// the list tail (the sentinel). It is laid out directly over raw heap bytes
// via unsafe.Pointer, the same representation TinyGo's own gc_blocks.go uses
// for its block metadata.
type blockHeader struct {
	size uintptr
	next *blockHeader
	free bool
}

// headerSize is sizeof(blockHeader), padded up to a multiple of Alignment.
// Every payload therefore starts headerSize bytes past an Alignment-aligned
// header address, and is itself Alignment-aligned.
const headerSize = (unsafe.Sizeof(blockHeader{}) + Alignment - 1) &^ (Alignment - 1)

// minSplitSize is the smallest leftover worth splitting off as its own free
// block: a header plus one aligned unit of payload.
const minSplitSize = headerSize + Alignment

// Heap is a first-fit, singly linked free-list allocator over the region
// [start, break), grown on demand through a BreakFunc. It has no locking: it
// is not safe to call from more than one goroutine, and must not be
// re-entered from a signal-like context while an allocation is in progress.
type Heap struct {
	brk      BreakFunc
	start    uintptr // S: address of the head block
	last     uintptr // address of the current tail sentinel
	disabled bool
}

// NewHeap allocates a Heap and constructs it over the region brk controls.
// It never returns nil: if the initial set_break fails, the returned Heap is
// permanently disabled and every Allocate call on it returns nil for the
// life of the process, per the bootstrap failure state machine. This is the
// convenient entry point for tests and any caller happy to let the Heap
// value itself live on the Go heap; the placement-construction protocol in
// heap_init.go instead calls initHeap directly so that bootstrapping the
// process-wide allocator performs no allocation of its own.
func NewHeap(brk BreakFunc) *Heap {
	h := &Heap{}
	initHeap(h, brk)
	return h
}

// initHeap constructs h in place against brk: the shared logic behind both
// NewHeap and the statically-reserved placement-construction path in
// heap_init.go. It never allocates — h must already point at live,
// zeroed-or-better storage, and every field is written through the pointer
// rather than built up in a local composite literal.
func initHeap(h *Heap, brk BreakFunc) {
	h.brk = brk

	s0, err := brk(0)
	if err != nil {
		h.disabled = true
		return
	}
	start := alignUp(s0, Alignment)

	if _, err := brk(start + headerSize); err != nil {
		h.disabled = true
		return
	}

	sentinel := headerAt(start)
	sentinel.size = 0
	sentinel.next = nil
	sentinel.free = true

	h.start = start
	h.last = start
}

func alignUp(x, a uintptr) uintptr {
	return (x + a - 1) &^ (a - 1)
}

func headerAt(addr uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(addr))
}

func addrOf(b *blockHeader) uintptr {
	return uintptr(unsafe.Pointer(b))
}

// Disabled reports whether this Heap's bootstrap set_break failed.
func (h *Heap) Disabled() bool { return h.disabled }

// Allocate returns a payload pointer of at least n bytes, or nil if n is
// zero, the heap is disabled, or the request cannot be satisfied even after
// growing the break.
func (h *Heap) Allocate(n uintptr) unsafe.Pointer {
	if h.disabled || n == 0 {
		return nil
	}
	n = alignUp(n, Alignment)

	b := headerAt(h.start)
	for b.next != nil && !(b.free && b.size >= n) {
		b = b.next
	}

	if b.next != nil {
		// b is a free, non-sentinel block large enough for the request.
		if b.size >= n+minSplitSize {
			h.split(b, n)
		}
		b.free = false
		return unsafe.Pointer(addrOf(b) + headerSize)
	}

	// b is the sentinel: no existing block fits, grow the heap.
	nb := h.newBlock(n)
	if nb == nil {
		return nil
	}
	return unsafe.Pointer(addrOf(nb) + headerSize)
}

// split carves an n-byte block off the front of b, leaving the remainder as
// a new free block immediately after it. Only called when b has at least
// minSplitSize bytes of leftover.
func (h *Heap) split(b *blockHeader, n uintptr) {
	newAddr := addrOf(b) + headerSize + n
	nb := headerAt(newAddr)
	nb.size = b.size - n - headerSize
	nb.free = true
	nb.next = b.next

	b.next = nb
	b.size = n
}

// newBlock grows the break to make room for an n-byte block at the current
// tail, turning the old sentinel into that block and installing a fresh
// sentinel past it. Returns nil if the break cannot be grown.
func (h *Heap) newBlock(n uintptr) *blockHeader {
	target := h.last + 2*headerSize + n
	if newEnd, err := h.brk(target); err != nil || newEnd < target {
		return nil
	}

	old := headerAt(h.last)
	old.size = n
	old.free = false

	sentinelAddr := h.last + headerSize + n
	sentinel := headerAt(sentinelAddr)
	sentinel.size = 0
	sentinel.free = true
	sentinel.next = nil

	old.next = sentinel
	h.last = sentinelAddr
	return old
}

// Free marks p's block free again and forward-coalesces it with any
// immediately following free block, stopping at the sentinel. p must be a
// pointer previously returned by Allocate/AllocateZeroed/Reallocate, or nil.
func (h *Heap) Free(p unsafe.Pointer) {
	if p == nil || h.disabled {
		return
	}
	b := headerAt(uintptr(p) - headerSize)
	b.free = true

	for b.next != nil && b.next.next != nil && b.next.free {
		b.size += headerSize + b.next.size
		b.next = b.next.next
	}
}

// AllocateZeroed allocates count*size bytes and zero-fills them. The caller
// is trusted not to overflow count*size; this package does not check.
func (h *Heap) AllocateZeroed(count, size uintptr) unsafe.Pointer {
	total := count * size
	p := h.Allocate(total)
	if p == nil {
		return nil
	}
	zero := unsafe.Slice((*byte)(p), total)
	for i := range zero {
		zero[i] = 0
	}
	return p
}

// Reallocate implements the conventional realloc contract: a nil p behaves
// as Allocate(n); n == 0 with a non-nil p frees p and returns nil;
// otherwise a new n-byte region is allocated, min(old size, n) bytes are
// copied across, the old region is freed, and the new pointer is returned.
func (h *Heap) Reallocate(p unsafe.Pointer, n uintptr) unsafe.Pointer {
	if p == nil {
		return h.Allocate(n)
	}
	if n == 0 {
		h.Free(p)
		return nil
	}

	oldSize := headerAt(uintptr(p) - headerSize).size
	np := h.Allocate(n)
	if np == nil {
		return nil
	}

	copySize := oldSize
	if n < copySize {
		copySize = n
	}
	copy(unsafe.Slice((*byte)(np), copySize), unsafe.Slice((*byte)(p), copySize))

	h.Free(p)
	return np
}
