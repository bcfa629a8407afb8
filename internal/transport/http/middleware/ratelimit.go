package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"kpi/internal/requestctx"
	"kpi/internal/transport/http/api"
)

type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*rateLimiter)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	keyFn   RateLimitKeyFunc
	now     func() time.Time
	clients map[string]*clientLimiter
}

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(rl *rateLimiter) {
		if fn != nil {
			rl.keyFn = fn
		}
	}
}

func withClock(now func() time.Time) RateLimitOption {
	return func(rl *rateLimiter) {
		rl.now = now
	}
}

// RateLimit allows perWindow requests per client within window, refilled
// continuously. A non-positive perWindow disables the limiter.
func RateLimit(perWindow int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	rl := &rateLimiter{
		burst:   perWindow,
		idleTTL: 10 * window,
		keyFn:   ClientIP,
		now:     time.Now,
		clients: map[string]*clientLimiter{},
	}
	if perWindow > 0 && window > 0 {
		rl.limit = rate.Every(window / time.Duration(perWindow))
	}
	for _, opt := range opts {
		opt(rl)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.enforce(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *rateLimiter) enforce(w http.ResponseWriter, r *http.Request) bool {
	if rl.burst <= 0 || rl.limit == 0 {
		return true
	}

	key := rl.keyFn(r)
	if key == "" {
		key = ClientIP(r)
	}
	now := rl.now()

	rl.mu.Lock()
	rl.evict(now)
	client, ok := rl.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = client
	}
	client.lastSeen = now
	reservation := client.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
	}
	remaining := int(math.Max(0, math.Floor(client.limiter.TokensAt(now))))
	rl.mu.Unlock()

	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

	if delay > 0 {
		retry := int(math.Ceil(delay.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
		requestctx.Logger(r.Context()).Warn("rate limit exceeded",
			"key", key,
			"path", r.URL.Path,
			"method", r.Method,
			"limit", rl.burst,
		)
		api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
		return false
	}
	return true
}

func (rl *rateLimiter) evict(now time.Time) {
	for key, client := range rl.clients {
		if now.Sub(client.lastSeen) > rl.idleTTL {
			delete(rl.clients, key)
		}
	}
}

// ClientIP keys on the connection address only. Forwarded headers are
// honoured when the server installs chi's RealIP in front of the limiter.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
