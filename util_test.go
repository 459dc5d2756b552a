package malloc

import "testing"
import "sync"

func TestCeil(t *testing.T) {
	cases := []struct{ n, m, want int64 }{
		{0, 8, 0}, {1, 8, 8}, {8, 8, 8}, {9, 8, 16}, {4096, 4096, 4096}, {4097, 4096, 8192},
	}
	for _, c := range cases {
		if got := ceil(c.n, c.m); got != c.want {
			t.Errorf("ceil(%v,%v) expected %v, got %v", c.n, c.m, c.want, got)
		}
	}
}

func TestBytesPtrRoundtrip(t *testing.T) {
	orig := make([]byte, 32)
	for i := range orig {
		orig[i] = byte(i)
	}
	ptr := ptrFromBytes(orig)
	back := bytesFromPtr(ptr, int64(len(orig)))
	for i := range orig {
		if back[i] != orig[i] {
			t.Fatalf("byte %v: expected %v, got %v", i, orig[i], back[i])
		}
	}
	back[0] = 0xff
	if orig[0] != 0xff {
		t.Fatalf("bytesFromPtr should alias the same memory")
	}
}

func TestGoidDistinctPerGoroutine(t *testing.T) {
	n := 16
	ids := make([]int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			ids[i] = goid()
		}(i)
	}
	wg.Wait()
	seen := make(map[int64]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("goid collided across goroutines: %v", ids)
		}
		seen[id] = true
	}
}

func TestGoidStableWithinGoroutine(t *testing.T) {
	a, b := goid(), goid()
	if a != b {
		t.Fatalf("goid changed within the same goroutine: %v vs %v", a, b)
	}
}
