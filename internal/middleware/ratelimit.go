package middleware

import (
	"net/http"
	"sync"
	"time"
)

// rateLimiter is a fixed-window per-client counter. Windows reset lazily on
// the first request after expiry; stale entries are swept by a background
// ticker so the map does not grow with one-off clients.
type rateLimiter struct {
	mu       sync.Mutex
	requests map[string]*clientWindow
	limit    int
	window   time.Duration
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

// NewRateLimiter returns a middleware that allows at most limit requests per
// window per client IP, answering excess requests with 429.
// The client key is r.RemoteAddr — wire chi's RealIP middleware before this
// one so the key is the real client address behind a proxy.
func NewRateLimiter(limit int, window time.Duration) func(http.Handler) http.Handler {
	rl := &rateLimiter{
		requests: make(map[string]*clientWindow),
		limit:    limit,
		window:   window,
	}

	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for range ticker.C {
			rl.sweep()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(r.RemoteAddr) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":{"code":"rate_limited","message":"rate limit exceeded"}}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	c, ok := rl.requests[key]
	if !ok || now.After(c.resetAt) {
		rl.requests[key] = &clientWindow{count: 1, resetAt: now.Add(rl.window)}
		return true
	}
	if c.count >= rl.limit {
		return false
	}
	c.count++
	return true
}

func (rl *rateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, c := range rl.requests {
		if now.After(c.resetAt) {
			delete(rl.requests, key)
		}
	}
}
