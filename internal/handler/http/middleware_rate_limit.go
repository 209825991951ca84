// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultLoginRateLimit  = 10
	defaultLoginRateWindow = time.Minute

	// maxTrackedClients bounds the limiter map; idle entries are pruned
	// once it is exceeded.
	maxTrackedClients = 5000
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginRateLimiter allows limit login attempts per client IP per window,
// using a token bucket that refills one attempt every window/limit.
type loginRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*clientLimiter

	now func() time.Time
}

func newLoginRateLimiter(limit int, window time.Duration) *loginRateLimiter {
	if limit <= 0 {
		limit = defaultLoginRateLimit
	}
	if window <= 0 {
		window = defaultLoginRateWindow
	}

	return &loginRateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

// allow consumes one attempt for ip. When the bucket is empty it returns
// false and how long the client should wait.
func (l *loginRateLimiter) allow(ip string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit),
		}
		l.clients[ip] = c
		l.prune(now)
	}
	c.lastSeen = now

	reservation := c.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}

	return true, 0
}

// prune drops clients idle for longer than a full window, whose buckets
// are therefore full again.
func (l *loginRateLimiter) prune(now time.Time) {
	if len(l.clients) <= maxTrackedClients {
		return
	}
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.window {
			delete(l.clients, ip)
		}
	}
}

// rateLimitLogin rejects clients exceeding the login rate with
// 429 TOO_MANY_REQUESTS and a Retry-After header in whole seconds.
func (h *Handler) rateLimitLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := h.loginLimiter.allow(clientIP(r))
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			h.writeError(w, r, ErrTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of RemoteAddr. Proxy headers are never read
// here; middleware.RealIP rewrites RemoteAddr when the proxy is trusted.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return "unknown"
}
