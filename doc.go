// Package malloc implements a general purpose arena/slab memory allocator
// in the jemalloc/tcmalloc family, backed directly by the operating
// system's anonymous memory mapping facility.
//
// The package is organised leaves-first, mirroring the components of the
// allocator:
//
// sizeclass.go:
//
// Compile-time ordered table of small size-classes plus the classifier
// that rounds a requested byte count up to a size-class or a page-aligned
// large size.
//
// pagemap.go:
//
// Per-arena index of PageDescriptors (one per slab or large allocation),
// ordered for predecessor lookup by page-aligned base address. Built on
// an adapted left-leaning red-black tree.
//
// bin.go:
//
// Size-class local slab free-list, serialised by a mutex, with
// address-ordered coalescing of adjacent free chunks.
//
// arena.go:
//
// A sub-heap: one bin per small size-class, a pagemap, and the large
// object path, serialised by a reader-writer lock.
//
// tcache.go:
//
// Per-thread, per-size-class LIFO cache of recently freed chunks, with an
// exponential decay counter drained by a periodic purge timer.
//
// osmem_*.go:
//
// Thin wrapper over the operating system's anonymous mmap/munmap,
// consumed by bin and arena when a fresh slab or large mapping is
// required.
//
// allocator.go:
//
// Ties the above together behind Allocate/Deallocate, sharding
// contention across a fixed array of arenas and keeping a thread registry
// so that a small allocate/deallocate is served from the calling
// goroutine's own thread cache, taking a bin mutex only on a cache miss
// or overflow. Every Allocate also briefly takes the façade read lock and
// a façade mutex that guards the request-size statistics.
package malloc
