package server

import (
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	// bucketCleanupThreshold is the minimum idle time before a client's
	// bucket is forgotten. Windows longer than it raise the threshold to the
	// window so that forgetting a bucket never refills it early.
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

// clientBucket is the remaining allowance of one client in the current window.
type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter hands out a fixed number of requests per client per window.
// The bucket refills completely once the window has elapsed since its last
// refill, so bursts of up to capacity requests are allowed at the start of
// each window. Clients are keyed by remote IP (see clientKey) and idle
// buckets are dropped by a background loop. A capacity of zero or less
// rejects every request.
//
// A RateLimiter is safe for concurrent use.
type RateLimiter struct {
	mu          sync.Mutex
	capacity    int
	refillDur   time.Duration
	clients     map[string]*clientBucket
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter starts a limiter that allows capacity requests per client
// every refillDur, together with its background cleanup loop. Callers must
// call Stop when done or the loop goroutine leaks.
func NewRateLimiter(capacity int, refillDur time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity:    capacity,
		refillDur:   refillDur,
		clients:     make(map[string]*clientBucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// cleanupLoop runs cleanup every cleanupInterval until Stop is called.
func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

// cleanup forgets clients whose bucket has not refilled within
// bucketCleanupThreshold or the window, whichever is longer.
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	idle := bucketCleanupThreshold
	if r.refillDur > idle {
		idle = r.refillDur
	}

	now := r.now()
	for client, bucket := range r.clients {
		if now.Sub(bucket.lastRefill) > idle {
			delete(r.clients, client)
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// Allow reports whether client may make another request and consumes a
// token when it may. A client seen for the first time starts with a full
// bucket. Rejected requests do not consume tokens or delay the refill.
func (r *RateLimiter) Allow(client string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[client]

	if !exists {
		if r.capacity <= 0 {
			return false
		}
		r.clients[client] = &clientBucket{
			tokens:     r.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	if now.Sub(bucket.lastRefill) >= r.refillDur {
		bucket.tokens = r.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}

	bucket.tokens--
	return true
}

// clientKey identifies the caller by the host part of RemoteAddr, falling
// back to the raw address when it has no port. Forwarding headers are not
// trusted.
func clientKey(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
