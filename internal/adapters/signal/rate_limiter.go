package signal

import (
	"sync"
	"time"

	"github.com/arlet/classroom/internal/domain"
)

const (
	claimLimit  = 5
	claimWindow = time.Minute
)

// ClaimRateLimiter bounds admin-claim attempts per connection with a sliding
// window, so the shared secret cannot be brute-forced over one socket.
type ClaimRateLimiter struct {
	mu       sync.Mutex
	history  map[domain.ConnID][]time.Time
	limit    int
	interval time.Duration
}

func NewClaimRateLimiter(limit int, interval time.Duration) *ClaimRateLimiter {
	return &ClaimRateLimiter{
		history:  make(map[domain.ConnID][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (rl *ClaimRateLimiter) Allow(id domain.ConnID) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-rl.interval)

	attempts := rl.history[id]
	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= rl.limit {
		rl.history[id] = fresh
		return false
	}

	fresh = append(fresh, now)
	rl.history[id] = fresh
	return true
}

// Forget drops a connection's attempt history once the connection is gone,
// keeping the map bounded by the number of live sockets.
func (rl *ClaimRateLimiter) Forget(id domain.ConnID) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.history, id)
}
