package runtime

import "unsafe"

// Malloc, Free, Calloc and Realloc are the public contract a freestanding
// target's compiled code links against in place of a host libc, delegating
// to the process-wide Heap. They carry the //export names TinyGo's own
// arch_tinygowasm_malloc.go uses for its libc_malloc/libc_free overrides, so
// a cgo-free build can export these symbols directly under the C names.

//export malloc
func Malloc(size uintptr) unsafe.Pointer {
	return Default().Allocate(size)
}

//export free
func Free(ptr unsafe.Pointer) {
	Default().Free(ptr)
}

//export calloc
func Calloc(count, size uintptr) unsafe.Pointer {
	return Default().AllocateZeroed(count, size)
}

//export realloc
func Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	return Default().Reallocate(ptr, size)
}
