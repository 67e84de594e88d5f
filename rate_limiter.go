package main

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a token-bucket limiter keyed by client IP, applied to
// the authentication endpoints on top of the per-session login lockout
// (the lockout resets with the cookie; the IP bucket does not).
type RateLimiter struct {
	rate       time.Duration
	capacity   int
	buckets    map[string]*tokenBucket
	mutex      sync.Mutex
	cleanupTTL time.Duration
}

type tokenBucket struct {
	tokens     int
	lastRefill time.Time
}

func NewRateLimiter(requestsPerMinute, burstCapacity int) *RateLimiter {
	return &RateLimiter{
		rate:       time.Minute / time.Duration(requestsPerMinute),
		capacity:   burstCapacity,
		buckets:    make(map[string]*tokenBucket),
		cleanupTTL: 10 * time.Minute,
	}
}

// Allow reports whether a request from ip may proceed, consuming a
// token when it does.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	bucket, exists := rl.buckets[ip]
	if !exists {
		bucket = &tokenBucket{tokens: rl.capacity, lastRefill: time.Now()}
		rl.buckets[ip] = bucket
	}

	now := time.Now()
	if refill := int(now.Sub(bucket.lastRefill) / rl.rate); refill > 0 {
		bucket.tokens += refill
		if bucket.tokens > rl.capacity {
			bucket.tokens = rl.capacity
		}
		bucket.lastRefill = now
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}
	return false
}

// removeIdleBuckets drops buckets that have not been touched within
// the cleanup TTL so the map doesn't grow without bound.
func (rl *RateLimiter) removeIdleBuckets(now time.Time) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	for ip, bucket := range rl.buckets {
		if now.Sub(bucket.lastRefill) > rl.cleanupTTL {
			delete(rl.buckets, ip)
		}
	}
}

// StartCleanupRoutine runs removeIdleBuckets on a timer until the
// returned stop function is called.
func (rl *RateLimiter) StartCleanupRoutine() (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				rl.removeIdleBuckets(time.Now())
			}
		}
	}()
	return func() { close(done) }
}

// RateLimitMiddleware rejects mutating requests from clients that have
// exhausted their bucket.
func (app *App) RateLimitMiddleware(limiter *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			ip := getRealIP(r)
			if !limiter.Allow(ip) {
				AppLogger.Warnw("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
				return
			}
		}
		next(w, r)
	}
}

// getRealIP resolves the client address behind common proxy headers.
func getRealIP(r *http.Request) string {
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
