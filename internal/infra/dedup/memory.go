package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryGuard keeps the last send time per key in process memory.
// The cache evicts entries after twice the window; the window itself is measured
// on the injected clock so tests can move time without sleeping.
type MemoryGuard struct {
	mu       sync.Mutex // makes the get-then-set in ShouldSuppress atomic
	window   time.Duration
	now      func() time.Time
	lastSent *ttlcache.Cache[string, time.Time]
}

func NewMemoryGuard(window time.Duration, now func() time.Time) *MemoryGuard {
	if now == nil {
		now = time.Now
	}
	return &MemoryGuard{
		window: window,
		now:    now,
		lastSent: ttlcache.New[string, time.Time](
			ttlcache.WithTTL[string, time.Time](2*window),
			ttlcache.WithDisableTouchOnHit[string, time.Time](),
		),
	}
}

func (g *MemoryGuard) ShouldSuppress(_ context.Context, key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if item := g.lastSent.Get(key); item != nil && now.Sub(item.Value()) < g.window {
		return true
	}
	g.lastSent.Set(key, now, ttlcache.DefaultTTL)
	return false
}

// Sweep drops entries older than twice the window.
func (g *MemoryGuard) Sweep() {
	g.lastSent.DeleteExpired()
}

// Len returns the number of tracked keys.
func (g *MemoryGuard) Len() int {
	return g.lastSent.Len()
}

// Run sweeps once per window until ctx is cancelled.
func (g *MemoryGuard) Run(ctx context.Context) {
	ticker := time.NewTicker(g.window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Sweep()
		}
	}
}
