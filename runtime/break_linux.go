//go:build linux

package runtime

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// UnixBreak is a BreakFunc backed by the real brk(2) system call, issued as
// a raw syscall the same way the TinyGo compiler itself recognizes and
// special-cases golang.org/x/sys/unix.Syscall/RawSyscall call sites for
// freestanding targets.
func UnixBreak(target uintptr) (uintptr, error) {
	current, _, errno := unix.RawSyscall(unix.SYS_BRK, target, 0, 0)
	if errno != 0 {
		return 0, fmt.Errorf("runtime: brk(%#x): %w", target, errno)
	}
	if target != 0 && current < target {
		return current, fmt.Errorf("runtime: brk(%#x): kernel only granted %#x", target, current)
	}
	return current, nil
}
