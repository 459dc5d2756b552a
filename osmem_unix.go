// +build darwin dragonfly freebsd linux netbsd openbsd

package malloc

import "unsafe"

import "golang.org/x/sys/unix"

// mapAnonymous asks the OS for a fresh, zeroed, page-aligned anonymous
// mapping of size bytes. size must already be a page multiple.
func mapAnonymous(size int64) (uintptr, error) {
	raw, err := unix.Mmap(
		-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return 0, err
	}
	return uintptr(ptrFromBytes(raw)), nil
}

// unmapRegion releases a mapping previously returned by mapAnonymous.
func unmapRegion(base uintptr, size int64) error {
	return unix.Munmap(bytesFromPtr(unsafe.Pointer(base), size))
}
