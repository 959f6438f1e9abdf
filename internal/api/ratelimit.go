package api

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a fixed-window per-IP limiter: at most maxRequests per
// window, counted from the first request of the window. Expired windows are
// swept periodically so the maps do not grow with every distinct client seen.
type RateLimiter struct {
	mu          sync.Mutex
	counts      map[string]int
	windowStart map[string]time.Time
	maxRequests int
	window      time.Duration
	lastSweep   time.Time
}

func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counts:      make(map[string]int),
		windowStart: make(map[string]time.Time),
		maxRequests: maxRequests,
		window:      window,
		lastSweep:   time.Now(),
	}
}

// Middleware rejects over-limit clients with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limited(clientIP(r), time.Now()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limited(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.window {
		for client, start := range rl.windowStart {
			if now.Sub(start) > rl.window {
				delete(rl.windowStart, client)
				delete(rl.counts, client)
			}
		}
		rl.lastSweep = now
	}

	start, seen := rl.windowStart[ip]
	if !seen || now.Sub(start) > rl.window {
		rl.windowStart[ip] = now
		rl.counts[ip] = 1
		return false
	}
	rl.counts[ip]++
	return rl.counts[ip] > rl.maxRequests
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return r.RemoteAddr
}
