package malloc

import "sync"

// Arena is a sub-heap: one Bin per small size class, plus a PageMap
// indexing every slab and large allocation it owns. Lock order per
// spec.md §5 is façade -> arena -> bin; mu below is the "arena
// reader-writer lock" that guards PageDescriptor insertion/removal.
type Arena struct {
	id                  int
	mu                  sync.RWMutex
	bins                [numSizeClasses]*Bin
	pagemap             *PageMap
	mmapMinObjectsTaken int64
}

func newArena(id int, settings Settings) *Arena {
	a := &Arena{
		id:                  id,
		pagemap:             NewPageMap(),
		mmapMinObjectsTaken: settings.Int64("bin.mmap.minobjects"),
	}
	for i := range a.bins {
		a.bins[i] = newBin(i, a)
	}
	for i := range a.bins {
		a.bins[i].bootstrap()
	}
	return a
}

// registerSlab inserts a freshly acquired slab's PageDescriptor. Called
// by a Bin while it holds its own mutex but not the arena lock, so the
// lock order here is bin-then-arena for this one path; this is the only
// place that inversion happens and it is safe because no lock other than
// the PageMap's own leaf lock is acquired while a.mu is held for a slab
// insert.
func (a *Arena) registerSlab(base uintptr, idx int, consecutivePages int64) {
	a.mu.Lock()
	a.pagemap.Insert(PageDescriptor{
		Base: base, IsSlab: true, BinIdx: idx, Consecutive: consecutivePages,
	})
	a.mu.Unlock()
}

// AllocateSmall serves a small request of size class idx, trying the
// calling thread's cache before falling back to the owning bin.
func (a *Arena) AllocateSmall(idx int, tc *TCache) uintptr {
	if p, ok := tc.Pop(idx); ok {
		return p
	}
	return a.bins[idx].Allocate()
}

// AllocateLarge maps size bytes fresh from the OS and records a large
// PageDescriptor for it.
func (a *Arena) AllocateLarge(size int64) (uintptr, error) {
	base, err := mapAnonymous(size)
	if err != nil {
		return 0, err
	}
	a.mu.Lock()
	a.pagemap.Insert(PageDescriptor{Base: base, IsSlab: false, Length: size})
	a.mu.Unlock()
	return base, nil
}

// Deallocate resolves p against the arena's PageDescriptor index and
// either releases a large mapping back to the OS or pushes a small
// chunk onto tc's cache. It reports ErrInvalidFree when no descriptor
// covers p, per spec.md §4.3 step 2.
func (a *Arena) Deallocate(p uintptr, tc *TCache) error {
	a.mu.RLock()
	desc, ok := a.pagemap.Floor(pageBase(p))
	a.mu.RUnlock()

	if !ok || !desc.covers(p) {
		return ErrInvalidFree
	}

	if !desc.IsSlab {
		a.mu.Lock()
		a.pagemap.Remove(desc.Base)
		a.mu.Unlock()
		if err := unmapRegion(desc.Base, desc.Length); err != nil {
			return err
		}
		return nil
	}

	tc.Push(desc.BinIdx, p, a.bins[desc.BinIdx])
	return nil
}

// Stats reports every bin's free-list depth histogram, indexed by
// size-class index.
func (a *Arena) Stats() []map[string]interface{} {
	stats := make([]map[string]interface{}, len(a.bins))
	for i, bin := range a.bins {
		stats[i] = bin.Stats()
	}
	return stats
}
