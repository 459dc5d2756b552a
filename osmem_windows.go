// +build windows

package malloc

import "golang.org/x/sys/windows"

// mapAnonymous is the Windows collaborator for spec.md §6's
// map_anonymous contract, backed by VirtualAlloc rather than mmap.
func mapAnonymous(size int64) (uintptr, error) {
	addr, err := windows.VirtualAlloc(
		0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE,
		windows.PAGE_READWRITE,
	)
	if err != nil {
		return 0, err
	}
	return addr, nil
}

// unmapRegion releases a mapping previously returned by mapAnonymous.
func unmapRegion(base uintptr, size int64) error {
	return windows.VirtualFree(base, 0, windows.MEM_RELEASE)
}
