package runtime

import (
	"fmt"

	"github.com/inhies/go-bytesize"
)

// Stats is a read-only snapshot of a Heap's free-list state. It gives the
// heap-metrics shape TinyGo's own (stubbed) src/runtime/metrics package and
// src/runtime/debug.GCStats gesture at a real body, scoped to this package's
// own allocator rather than a whole Go runtime.
type Stats struct {
	Blocks    int     // total blocks, including the sentinel
	FreeBytes uintptr // payload bytes currently free
	UsedBytes uintptr // payload bytes currently in use
	Break     uintptr // current process break (== end of the sentinel)
}

// Stats walks the free list once and reports its current shape. It performs
// no allocation and never mutates the heap.
func (h *Heap) Stats() Stats {
	var s Stats
	if h.disabled {
		return s
	}

	for b := headerAt(h.start); ; b = b.next {
		s.Blocks++
		if b.next == nil {
			s.Break = addrOf(b) + headerSize
			break
		}
		if b.free {
			s.FreeBytes += b.size
		} else {
			s.UsedBytes += b.size
		}
	}
	return s
}

// String renders a Stats snapshot with human-readable byte sizes, e.g.
// "3 blocks, 128.00B used, 896.00B free, break=0x...".
func (s Stats) String() string {
	used := bytesize.New(float64(s.UsedBytes))
	free := bytesize.New(float64(s.FreeBytes))
	return fmt.Sprintf("%d blocks, %s used, %s free, break=%#x", s.Blocks, used, free, s.Break)
}
