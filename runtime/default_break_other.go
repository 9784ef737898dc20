//go:build !linux

package runtime

// defaultArenaCapacity is the size of the simulated heap region on targets
// with no real brk(2) system call available.
const defaultArenaCapacity = 64 << 20 // 64 MiB

// defaultBreak is the BreakFunc Default() bootstraps against when there is
// no real process break to grow.
var defaultBreak BreakFunc = NewArenaBreak(defaultArenaCapacity)
