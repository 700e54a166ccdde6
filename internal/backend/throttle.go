package backend

import (
	"sync"
	"time"
)

// throttle enforces a minimum spacing between successive catalog fetches so a
// short poll interval cannot hammer the forum API.
type throttle struct {
	spacing time.Duration

	mu       sync.Mutex
	earliest time.Time
}

func newThrottle(spacing time.Duration) *throttle {
	if spacing <= 0 {
		return &throttle{}
	}
	return &throttle{spacing: spacing}
}

// wait blocks until the spacing since the previous permitted call has
// elapsed, then claims the next slot.
func (t *throttle) wait() {
	if t == nil || t.spacing <= 0 {
		return
	}
	for {
		t.mu.Lock()
		remaining := time.Until(t.earliest)
		if remaining <= 0 {
			t.earliest = time.Now().Add(t.spacing)
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
		if remaining > t.spacing {
			remaining = t.spacing
		}
		time.Sleep(remaining)
	}
}
