package malloc

import "time"

// decayTimer is the per-thread collaborator spec.md §6 calls
// install_timer: it invokes a thread cache's Purge on a fixed period
// until Stop is called, standing in for the dedicated timer thread the
// spec treats as an external contract.
type decayTimer struct {
	ticker *time.Ticker
	done   chan struct{}
}

func startDecayTimer(tc *TCache, bins []*Bin, period time.Duration) *decayTimer {
	dt := &decayTimer{ticker: time.NewTicker(period), done: make(chan struct{})}
	go dt.run(tc, bins)
	return dt
}

func (dt *decayTimer) run(tc *TCache, bins []*Bin) {
	for {
		select {
		case <-dt.ticker.C:
			tc.Purge(bins)
		case <-dt.done:
			dt.ticker.Stop()
			return
		}
	}
}

// Stop ends the timer's goroutine. Only tests call it; the façade never
// stops a thread descriptor's timer, so it runs for the life of the
// program.
func (dt *decayTimer) Stop() {
	close(dt.done)
}
