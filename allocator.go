package malloc

import "sync"
import "sync/atomic"
import "time"
import "unsafe"

// Allocator is the top-level façade spec.md §4.5 and §2 describe: it
// owns the fixed array of arenas and the mapping from thread identity
// to thread descriptor, and exposes Allocate/Deallocate. A global
// reader-writer lock is taken in read mode for every request and in
// write mode only when a new goroutine is first registered.
type Allocator struct {
	mu       sync.RWMutex
	arenas   []*Arena
	threads  sync.Map // goroutine id (int64) -> *TCache
	settings Settings
	nextID   int64 // round-robin arena assignment counter
	period   time.Duration

	statsMu  sync.Mutex
	reqSizes averageInt64 // running stats over every Allocate(n) request
}

// NewAllocator constructs a façade with settings.Int64("arena.count")
// arenas, each pre-seeded per spec.md §9 "global singleton" so the hot
// path never takes an arena write lock for a small allocation.
func NewAllocator(settings Settings) *Allocator {
	n := settings.Int64("arena.count")
	a := &Allocator{
		arenas:   make([]*Arena, n),
		settings: settings,
		period:   time.Duration(settings.Int64("tcache.purge.period.sec")) * time.Second,
	}
	for i := range a.arenas {
		a.arenas[i] = newArena(i, settings)
	}
	return a
}

// getOrCreateTCache resolves the calling goroutine's thread descriptor,
// registering one with round-robin arena assignment on first touch
// (spec.md §4.5 step 3, §9 first open question resolved in favor of
// round-robin).
func (a *Allocator) getOrCreateTCache() *TCache {
	id := goid()

	a.mu.RLock()
	if v, ok := a.threads.Load(id); ok {
		a.mu.RUnlock()
		return v.(*TCache)
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if v, ok := a.threads.Load(id); ok {
		return v.(*TCache)
	}
	arenaIdx := int(atomic.AddInt64(&a.nextID, 1)-1) % len(a.arenas)
	tc := newTCache(arenaIdx, a.settings.Int64("tcache.size"))
	tc.timer = startDecayTimer(tc, a.arenas[arenaIdx].bins[:], a.period)
	a.threads.Store(id, tc)
	return tc
}

func (a *Allocator) getTCache() (*TCache, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.threads.Load(goid())
	if !ok {
		return nil, false
	}
	return v.(*TCache), true
}

// Allocate returns a writable region of at least n bytes, aligned to at
// least the size class (8-byte aligned for small, page-aligned for
// large), per spec.md §6. OS-mapping failure is fatal.
func (a *Allocator) Allocate(n int64) ([]byte, error) {
	if n < 0 {
		panicerr("malloc: Allocate called with negative size %v", n)
	}
	a.statsMu.Lock()
	a.reqSizes.add(n)
	a.statsMu.Unlock()

	size, large := roundUp(n)
	tc := a.getOrCreateTCache()
	arena := a.arenas[tc.arenaIdx]

	if large {
		base, err := arena.AllocateLarge(size)
		if err != nil {
			fatal(ErrOutOfMemory, "Allocator.Allocate")
			return nil, err
		}
		return bytesFromPtr(unsafe.Pointer(base), size), nil
	}

	p := arena.AllocateSmall(binIdx(size), tc)
	return bytesFromPtr(unsafe.Pointer(p), size), nil
}

// Deallocate releases a region previously returned by Allocate on this
// same goroutine. A call from a goroutine that has never allocated, or a
// pointer that no PageDescriptor in the calling goroutine's arena covers
// (including a large region already freed), is an InvalidFree and is
// fatal. A small chunk freed twice, or freed by another goroutine that
// shares its arena, is still covered by its slab's descriptor: it is not
// detected and is pushed onto the calling goroutine's thread cache.
func (a *Allocator) Deallocate(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	tc, ok := a.getTCache()
	if !ok {
		fatal(ErrInvalidFree, "Allocator.Deallocate: no thread descriptor")
		return ErrInvalidFree
	}
	arena := a.arenas[tc.arenaIdx]
	base := uintptr(ptrFromBytes(p))
	if err := arena.Deallocate(base, tc); err != nil {
		fatal(err, "Allocator.Deallocate")
		return err
	}
	return nil
}

// NumArenas reports how many arenas this façade shards contention over.
func (a *Allocator) NumArenas() int {
	return len(a.arenas)
}

// Stats reports diagnostics for the whole façade: running statistics over
// every Allocate(n) request size, plus each arena's per-bin free-list
// depth histogram, indexed [arena][binIdx].
func (a *Allocator) Stats() map[string]interface{} {
	a.statsMu.Lock()
	reqSizes := a.reqSizes.stats()
	a.statsMu.Unlock()

	binStats := make([][]map[string]interface{}, len(a.arenas))
	for i, arena := range a.arenas {
		binStats[i] = arena.Stats()
	}
	return map[string]interface{}{
		"requestSizes": reqSizes,
		"bins":         binStats,
	}
}

var (
	defaultAllocator *Allocator
	defaultOnce      sync.Once
)

// Default returns the process-wide allocator façade, constructing it
// with DefaultSettings on first use (spec.md §9 "global singleton":
// initialisation must be idempotent and safe before the first user
// thread starts).
func Default() *Allocator {
	defaultOnce.Do(func() {
		defaultAllocator = NewAllocator(DefaultSettings())
	})
	return defaultAllocator
}
