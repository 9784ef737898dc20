package runtime

import (
	"fmt"
	"unsafe"
)

// NewArenaBreak returns a BreakFunc whose backing store is a pre-reserved,
// pinned Go byte slice rather than a real operating-system break. Growth is
// a high-water mark inside memory that is already reserved and never
// returned to the host, exactly the model TinyGo's own WebAssembly build
// uses for linear memory growth (see arch_tinygowasm_malloc.go in the
// upstream tree) instead of a real brk syscall. It backs every test in this
// package and is the fallback BreakFunc on targets with no real brk.
func NewArenaBreak(capacity uintptr) BreakFunc {
	arena := make([]byte, capacity)
	base := uintptr(unsafe.Pointer(&arena[0]))
	limit := base + capacity
	cur := base

	return func(target uintptr) (uintptr, error) {
		if target == 0 {
			return cur, nil
		}
		if target > limit {
			return cur, fmt.Errorf("runtime: arena break exhausted (want %#x, capacity ends at %#x)", target, limit)
		}
		if target > cur {
			cur = target
		}
		return cur, nil
	}
}
