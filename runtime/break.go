// Package runtime provides the allocator and numeric-conversion core that a
// freestanding TinyGo target links against in place of a host C runtime: a
// first-fit free-list heap grown through a process-break abstraction, and
// the integer/float parsing and formatting routines the rest of such a
// runtime builds its I/O streams on top of.
package runtime

// BreakFunc abstracts a process break: the single system-call boundary the
// heap depends on to grow its backing region.
//
// Calling it with target == 0 queries the current break without moving it.
// Calling it with any other value requests that the break move to at least
// target; the call returns the resulting break, which must be >= target on
// success. It returns a non-nil error only when the break cannot be moved,
// typically because the underlying resource (real memory, or a reserved
// arena) is exhausted. A BreakFunc is never expected to move the break
// backwards.
type BreakFunc func(target uintptr) (uintptr, error)
