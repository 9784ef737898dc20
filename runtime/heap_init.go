package runtime

import (
	"sync"
	"unsafe"
)

// heapStorage is the statically reserved region the process-wide Heap is
// placement-constructed into, exactly sizeof(Heap) bytes. No dynamic
// allocation is used to obtain it: it is a package-level array, the Go
// equivalent of the zero-initialized static byte array the original
// UserHeap construction protocol requires.
var heapStorage [unsafe.Sizeof(Heap{})]byte

// theHeap is the process-wide allocator pointer, set exactly once by
// InitHeap before any allocation is attempted.
var theHeap *Heap

var initOnce sync.Once

// InitHeap constructs the process-wide Heap in place over heapStorage,
// using brk as its BreakFunc. It must run once, before main, the same role
// TinyGo's own initHeap() plays ahead of calling user code: nothing in this
// package may allocate before it has run. Calling it more than once is a
// no-op; the first call wins.
//
// InitHeap itself performs no dynamic allocation: it constructs theHeap in
// place over heapStorage via initHeap, which only does arithmetic and one or
// two BreakFunc calls — never a composite literal that would put a fresh
// Heap value on the Go heap, and never a call into this package's own
// Allocate. See TestHeapConstructionDoesNotAllocate in heap_init_test.go.
func InitHeap(brk BreakFunc) *Heap {
	initOnce.Do(func() {
		theHeap = (*Heap)(unsafe.Pointer(&heapStorage[0]))
		initHeap(theHeap, brk)
	})
	return theHeap
}

// Default returns the process-wide Heap, constructing it against
// defaultBreak (the real brk(2) on Linux, a simulated arena break on other
// targets) on first use if InitHeap has not already been called explicitly
// (e.g. by a test supplying an arena-backed BreakFunc).
func Default() *Heap {
	initOnce.Do(func() {
		theHeap = (*Heap)(unsafe.Pointer(&heapStorage[0]))
		initHeap(theHeap, defaultBreak)
	})
	return theHeap
}
