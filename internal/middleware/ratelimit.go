package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// DefaultRateLimitConfig returns default rate limiting configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: 60,
		BurstSize:         10,
	}
}

// RateLimit limits requests per client address. The key is r.RemoteAddr,
// so proxy headers only count when chi's RealIP ran earlier in the chain.
// State is in memory and per process.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.RequestsPerMinute <= 0 || cfg.BurstSize <= 0 {
		cfg = DefaultRateLimitConfig()
	}
	limiter := NewSimpleRateLimiter(cfg.RequestsPerMinute, cfg.BurstSize)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get client address
			clientIP := clientKey(r)

			// Check rate limit
			if !limiter.Allow(clientIP) {
				log.Warn().
					Str("client_ip", clientIP).
					Str("url", r.URL.String()).
					Msg("Rate limit exceeded")

				// Return rate limit error
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)

				errorResponse := map[string]interface{}{
					"error": map[string]interface{}{
						"code":    "RATE_LIMIT",
						"message": "Rate limit exceeded. Please try again later.",
					},
				}

				if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
					http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey returns the host part of r.RemoteAddr, or the whole value when
// it carries no port (RealIP stores a bare IP).
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// SimpleRateLimiter is a token bucket per client key. Buckets idle for a
// full refill window are dropped, since a new bucket starts full anyway.
type SimpleRateLimiter struct {
	mu                sync.Mutex
	requestsPerMinute int
	burstSize         int
	clients           map[string]*clientLimit
	window            time.Duration
	lastSweep         time.Time
	now               func() time.Time
}

type clientLimit struct {
	tokens     int
	lastRefill time.Time
}

func NewSimpleRateLimiter(requestsPerMinute, burstSize int) *SimpleRateLimiter {
	// Time for an empty bucket to refill completely.
	window := time.Duration(burstSize) * time.Minute / time.Duration(requestsPerMinute)
	if window < time.Minute {
		window = time.Minute
	}

	return &SimpleRateLimiter{
		requestsPerMinute: requestsPerMinute,
		burstSize:         burstSize,
		clients:           make(map[string]*clientLimit),
		window:            window,
		now:               time.Now,
	}
}

func (rl *SimpleRateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	// Get or create client limit
	client, exists := rl.clients[clientIP]
	if !exists {
		client = &clientLimit{
			tokens:     rl.burstSize,
			lastRefill: now,
		}
		rl.clients[clientIP] = client
	}

	// Refill tokens based on time passed
	tokensToAdd := int(now.Sub(client.lastRefill).Minutes() * float64(rl.requestsPerMinute))
	if tokensToAdd > 0 {
		client.tokens = min(client.tokens+tokensToAdd, rl.burstSize)
		client.lastRefill = now
	}

	// Check if we have tokens
	if client.tokens > 0 {
		client.tokens--
		return true
	}

	return false
}

// Len reports how many client buckets are currently tracked.
func (rl *SimpleRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// sweep runs at most once per window. Caller holds rl.mu.
func (rl *SimpleRateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now

	for key, client := range rl.clients {
		if now.Sub(client.lastRefill) >= rl.window {
			delete(rl.clients, key)
		}
	}
}
