// Package ratelimit throttles state-changing requests per client address.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	applog "diario/internal/log"
)

// Limiter counts requests per client in fixed windows. Stale clients are
// pruned while handling requests, so there is nothing to stop.
type Limiter struct {
	mu        sync.Mutex
	clients   map[string]*window
	lastPrune time.Time

	limit  int
	period time.Duration
	now    func() time.Time
}

type window struct {
	start    time.Time
	requests int
}

// Config holds rate limiter configuration
type Config struct {
	RequestsPerWindow int
	Window            time.Duration
}

func DefaultConfig() Config {
	return Config{
		RequestsPerWindow: 60,
		Window:            time.Minute,
	}
}

func NewLimiter(config Config) *Limiter {
	defaults := DefaultConfig()
	if config.RequestsPerWindow <= 0 {
		config.RequestsPerWindow = defaults.RequestsPerWindow
	}
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	return &Limiter{
		clients: make(map[string]*window),
		limit:   config.RequestsPerWindow,
		period:  config.Window,
		now:     time.Now,
	}
}

// Allow records a request from clientIP. When the window is exhausted it
// returns false and how long until the next window opens.
func (rl *Limiter) Allow(clientIP string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.pruneLocked(now)

	w, ok := rl.clients[clientIP]
	if !ok || now.Sub(w.start) >= rl.period {
		rl.clients[clientIP] = &window{start: now, requests: 1}
		return true, 0
	}

	w.requests++
	if w.requests > rl.limit {
		return false, w.start.Add(rl.period).Sub(now)
	}
	return true, 0
}

// pruneLocked drops expired windows at most once per period.
func (rl *Limiter) pruneLocked(now time.Time) {
	if now.Sub(rl.lastPrune) < rl.period {
		return
	}
	for ip, w := range rl.clients {
		if now.Sub(w.start) >= rl.period {
			delete(rl.clients, ip)
		}
	}
	rl.lastPrune = now
}

// ActiveClients returns the number of currently tracked clients
func (rl *Limiter) ActiveClients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Middleware limits POST requests only; reads are never throttled.
// onLimited may be nil.
func (rl *Limiter) Middleware(extractIP func(*http.Request) string, onLimited func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := extractIP(r)
			allowed, retryAfter := rl.Allow(clientIP)
			if !allowed {
				if onLimited != nil {
					onLimited()
				}
				applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).WarnContext(r.Context(),
					"Rate limit exceeded",
					applog.FieldClientIP, clientIP,
					applog.FieldPath, r.URL.Path)

				seconds := int(retryAfter.Round(time.Second) / time.Second)
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
