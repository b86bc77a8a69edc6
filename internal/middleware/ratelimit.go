// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter throttles requests per client IP with a sliding window.
// It guards the public view-reporting endpoint: each accepted view
// increment resets an entire cache namespace, so the limit caps how
// fast one client can force cache rebuilds. The window is sized for a
// human browsing the catalog, not for crawlers.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	limit   int
	window  time.Duration
	stopCh  chan struct{}
}

// clientWindow holds the accepted-request timestamps for one IP, oldest
// first. Its own lock keeps contention per client, not per limiter.
type clientWindow struct {
	mu   sync.Mutex
	hits []time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window
// and starts a background sweep that drops idle clients.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.sweep()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// take records a request for key if it fits the window. When the limit
// is hit it returns false plus how long until the oldest hit expires,
// which becomes the Retry-After hint.
func (rl *RateLimiter) take(key string) (bool, time.Duration) {
	rl.mu.Lock()
	cw, ok := rl.clients[key]
	if !ok {
		cw = &clientWindow{}
		rl.clients[key] = cw
	}
	rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	cw.mu.Lock()
	defer cw.mu.Unlock()

	// Drop hits that slid out of the window; the slice stays ordered.
	kept := cw.hits[:0]
	for _, ts := range cw.hits {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	cw.hits = kept

	if len(cw.hits) >= rl.limit {
		return false, cw.hits[0].Sub(cutoff)
	}

	cw.hits = append(cw.hits, now)
	return true, 0
}

// sweep removes clients with no hits inside the current window.
func (rl *RateLimiter) sweep() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cw := range rl.clients {
		cw.mu.Lock()
		active := len(cw.hits) > 0 && cw.hits[len(cw.hits)-1].After(cutoff)
		cw.mu.Unlock()
		if !active {
			delete(rl.clients, key)
		}
	}
}

// Middleware rejects over-limit requests with the API's JSON error
// shape and a Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retryAfter := rl.take(clientIP(r))
		if !ok {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"RATE_LIMITED","message":"too many requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The leftmost entry is the original client.
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr (strip port).
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
