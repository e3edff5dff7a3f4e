package slab

import (
	"fmt"
	"syscall"
	"unsafe"
)

// osPageSize returns the operating system's page size in bytes. A Cache
// queries it once, at Init, and caches the result.
//
// syscall.Getpagesize is used here, not golang.org/x/sys/unix, matching
// acquirePages and releasePages, which also use the stdlib syscall package.
func osPageSize() int {
	return syscall.Getpagesize()
}

// acquirePages asks the OS for n contiguous, read/write, zero-initialized,
// private anonymous pages and returns a pointer to the first byte.
//
// The pages are zeroed by the kernel as part of the anonymous mapping.
// acquirePages never clears them itself, and nothing built on top of it
// may either: a slot's contents are guaranteed zero only the first time it
// is handed out, never again after a subsequent free/alloc cycle.
func acquirePages(n, pageSize int) (unsafe.Pointer, error) {
	size := n * pageSize
	data, err := syscall.Mmap(-1, 0, size,
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_PRIVATE|syscall.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageAcquireFailed, err)
	}
	return unsafe.Pointer(&data[0]), nil
}

// releasePages returns a page range previously obtained from acquirePages
// to the OS. Nothing about the range is retained anywhere after this call
// returns, satisfying the resource-model requirement that released pages
// must not be retained in allocator state.
func releasePages(base unsafe.Pointer, n, pageSize int) error {
	size := n * pageSize
	b := unsafe.Slice((*byte)(base), size)
	return syscall.Munmap(b)
}
