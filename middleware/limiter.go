// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/keepsake/auth"
)

const (
	limiterIdleTTL  = 10 * time.Minute
	limiterSweepLen = 1024
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// AttemptLimiter caps requests per client per minute. Clients are keyed by a
// salted hash of their IP, so raw addresses are never held.
type AttemptLimiter struct {
	perMinute int
	salt      string
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*limiterEntry
}

// NewAttemptLimiter allows perMinute attempts per client, refilled evenly
// over the minute. perMinute <= 0 disables limiting.
func NewAttemptLimiter(perMinute int, salt string) *AttemptLimiter {
	return &AttemptLimiter{
		perMinute: perMinute,
		salt:      salt,
		now:       time.Now,
		clients:   make(map[string]*limiterEntry),
	}
}

// Allow reports whether the client behind r may make another attempt.
func (l *AttemptLimiter) Allow(r *http.Request) bool {
	if l == nil || l.perMinute <= 0 {
		return true
	}

	key := auth.HashIP(GetClientIP(r), l.salt)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.clients) >= limiterSweepLen {
		l.sweepLocked(now)
	}

	e, ok := l.clients[key]
	if !ok {
		e = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute),
		}
		l.clients[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (l *AttemptLimiter) sweepLocked(now time.Time) {
	for k, e := range l.clients {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(l.clients, k)
		}
	}
}

// Wrap rejects over-limit requests with 429.
func (l *AttemptLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r) {
			slog.Warn("attempt limit reached", "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			ErrorResponse(w, http.StatusTooManyRequests, "Too many attempts, try again in a minute")
			return
		}
		next(w, r)
	}
}
