package malloc

import "sort"
import "sync"

// DefaultMmapMinObjectsTaken is the default MMAP_MIN_OBJECTS_TAKEN
// threshold (spec.md §6): size classes smaller than PageSize/this get a
// single-page slab, larger ones get a slab sized for at least 32 objects.
const DefaultMmapMinObjectsTaken = 32

// Bin is a slab free-list for one size class inside one arena. Its
// free-list is an ordered map from chunk address to the number of
// consecutive free chunks (of this size class) starting at that address
// within the same slab, per spec.md §4.2.
type Bin struct {
	mu     sync.Mutex
	idx    int   // index into sizeClasses
	size   int64 // sizeClasses[idx]
	arena  *Arena
	// freelist is kept as a sorted slice of addresses into a map, since
	// Go has no ordered map; addrs stays sorted so allocate() can always
	// take the lowest address in O(log n) (binary search) / O(n) splice.
	free  map[uintptr]int64
	addrs []uintptr

	// occupancy tracks the free-list depth (len(addrs)) sampled on every
	// Allocate/GiveBack, giving each bin's own allocation-pressure
	// histogram for Allocator.Stats() diagnostics.
	occupancy *histogramInt64
}

// occupancyHistogramWidth buckets free-list depth in steps of this many
// chunks; DefaultThreadCacheSize*4 is a generous upper bound on the depth
// any bin is expected to carry between refills.
const occupancyHistogramWidth = 4

func newBin(idx int, arena *Arena) *Bin {
	return &Bin{
		idx:       idx,
		size:      sizeClasses[idx],
		arena:     arena,
		free:      make(map[uintptr]int64),
		occupancy: newhistorgramInt64(0, DefaultThreadCacheSize*4, occupancyHistogramWidth),
	}
}

// sample records the current free-list depth. Called with b.mu held.
func (b *Bin) sample() {
	b.occupancy.add(int64(len(b.addrs)))
}

func (b *Bin) insertAddr(a uintptr) {
	i := sort.Search(len(b.addrs), func(i int) bool { return b.addrs[i] >= a })
	b.addrs = append(b.addrs, 0)
	copy(b.addrs[i+1:], b.addrs[i:])
	b.addrs[i] = a
}

func (b *Bin) removeAddr(a uintptr) {
	i := sort.Search(len(b.addrs), func(i int) bool { return b.addrs[i] >= a })
	if i < len(b.addrs) && b.addrs[i] == a {
		b.addrs = append(b.addrs[:i], b.addrs[i+1:]...)
	}
}

// Allocate returns one free chunk of this bin's size class, acquiring a
// fresh slab from the arena's OS collaborator if the free-list is empty.
func (b *Bin) Allocate() uintptr {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.addrs) == 0 {
		return b.refill()
	}

	a := b.addrs[0]
	k := b.free[a] - 1
	delete(b.free, a)
	b.removeAddr(a)
	if k > 0 {
		next := a + uintptr(b.size)
		b.free[next] = k
		b.insertAddr(next)
	}
	b.sample()
	return a
}

// slabSize computes the slab size for this bin's size class per
// spec.md §4.2: one page for small-ish classes, else the smallest
// page-multiple covering at least mmapMinObjectsTaken objects.
func (b *Bin) slabSize(mmapMinObjectsTaken int64) int64 {
	if b.size < PageSize/mmapMinObjectsTaken {
		return PageSize
	}
	return ceil(mmapMinObjectsTaken*b.size, PageSize)
}

// refill acquires a fresh slab from the OS, registers its PageDescriptor
// in the owning arena, seeds the free-list with every chunk but the
// first, and returns that first chunk directly to the caller of
// Allocate. Must be called with b.mu held.
func (b *Bin) refill() uintptr {
	slab := b.slabSize(b.arena.mmapMinObjectsTaken)
	base, err := mapAnonymous(slab)
	if err != nil {
		fatal(ErrOutOfMemory, "bin.refill")
	}
	objects := slab / b.size
	b.arena.registerSlab(base, b.idx, slab/PageSize)

	if objects > 1 {
		next := base + uintptr(b.size)
		b.free[next] = objects - 1
		b.insertAddr(next)
	}
	b.sample()
	return base
}

// bootstrap primes an empty bin with one OS-acquired slab, seeding the
// free-list with every object the slab holds (unlike refill, nothing is
// handed out immediately). Arena construction calls this eagerly so the
// hot path never takes the arena write lock for a small allocation
// (spec.md §4.3 init, §9 "global singleton").
func (b *Bin) bootstrap() {
	b.mu.Lock()
	defer b.mu.Unlock()

	slab := b.slabSize(b.arena.mmapMinObjectsTaken)
	base, err := mapAnonymous(slab)
	if err != nil {
		fatal(ErrOutOfMemory, "bin.bootstrap")
	}
	objects := slab / b.size
	b.arena.registerSlab(base, b.idx, slab/PageSize)

	b.free[base] = objects
	b.insertAddr(base)
	b.sample()
}

// GiveBack returns a freed chunk to the free-list, coalescing with its
// immediate address-ordered neighbours per spec.md §4.2. Unlike the
// buggy reference source, the "neither neighbour present" case always
// inserts (p, 1).
func (b *Bin) GiveBack(p uintptr) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := p + uintptr(b.size)
	rcount, rok := b.free[r]
	// The left neighbour is the free run whose last chunk sits right
	// before p; it is keyed by its first chunk, not by p-size.
	var l uintptr
	var lcount int64
	var lok bool
	if i := sort.Search(len(b.addrs), func(i int) bool { return b.addrs[i] >= p }); i > 0 {
		l = b.addrs[i-1]
		lcount = b.free[l]
		lok = l+uintptr(lcount)*uintptr(b.size) == p
	}

	switch {
	case lok && rok:
		b.free[l] = lcount + 1 + rcount
		delete(b.free, r)
		b.removeAddr(r)
	case lok:
		b.free[l] = lcount + 1
	case rok:
		b.free[p] = rcount + 1
		delete(b.free, r)
		b.removeAddr(r)
		b.insertAddr(p)
	default:
		b.free[p] = 1
		b.insertAddr(p)
	}
	b.sample()
}

// Stats reports this bin's free-list depth histogram for diagnostics.
func (b *Bin) Stats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.occupancy.fullstats()
}

// entries returns a snapshot of the free-list for diagnostics/tests.
func (b *Bin) entries() map[uintptr]int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := make(map[uintptr]int64, len(b.free))
	for k, v := range b.free {
		m[k] = v
	}
	return m
}
