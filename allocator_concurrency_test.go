package malloc

import "sync"
import "testing"

import "github.com/stretchr/testify/require"

// S5: 8 threads each running 10,000 iterations of allocate(64);
// deallocate(p) must not crash and must require far fewer OS mappings
// than one-mapping-per-call would. Overlap of live pointers across
// goroutines is checked by TestAllocatorExclusivityAcrossGoroutines.
func TestAllocatorMultiThreadContention(t *testing.T) {
	settings := DefaultSettings()
	settings["arena.count"] = int64(4)
	a := NewAllocator(settings)

	const goroutines = 8
	const iterations = 10000

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				p, err := a.Allocate(64)
				if err != nil {
					errs <- err
					return
				}
				if err := a.Deallocate(p); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var totalDescriptors int64
	for _, arena := range a.arenas {
		totalDescriptors += arena.pagemap.Count()
	}
	// one bootstrap slab per size class per arena; 10,000 alternating
	// allocate/deallocate pairs per goroutine may add at most one slab
	// per goroutine beyond that bootstrap set.
	require.LessOrEqual(t, totalDescriptors, int64(len(a.arenas)*numSizeClasses)+int64(goroutines))
}

// Exercises concurrent live pointers across goroutines for overlap: each
// goroutine holds a batch of live allocations simultaneously before
// freeing them, so any address collision would show up as a duplicate
// in the shared set.
func TestAllocatorExclusivityAcrossGoroutines(t *testing.T) {
	a := newTestAllocator()
	const goroutines = 8
	const batch = 200

	var mu sync.Mutex
	seen := make(map[uintptr]bool)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			ptrs := make([][]byte, batch)
			for i := range ptrs {
				p, err := a.Allocate(64)
				require.NoError(t, err)
				ptrs[i] = p
			}
			mu.Lock()
			for _, p := range ptrs {
				base := uintptr(ptrFromBytes(p))
				require.False(t, seen[base], "duplicate live pointer across goroutines")
				seen[base] = true
			}
			mu.Unlock()
			for _, p := range ptrs {
				require.NoError(t, a.Deallocate(p))
			}
		}()
	}
	wg.Wait()
}
