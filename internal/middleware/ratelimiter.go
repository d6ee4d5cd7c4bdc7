package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/haguru/cookbook/internal/interfaces"
	"golang.org/x/time/rate"
)

const (
	// RateLimitedTotal counts requests rejected by a ClientRateLimiter.
	RateLimitedTotal     = "rate_limited_total"
	RateLimitedTotalHelp = "Total number of requests rejected by the rate limiter"

	MsgTooManyRequests = "Too many requests. Please try again later."
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client address.
type ClientRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time

	Logger  interfaces.Logger
	Metrics interfaces.Metrics
}

func NewClientRateLimiter(requestsPerSecond float64, burst int, logger interfaces.Logger, metrics interfaces.Metrics) *ClientRateLimiter {
	return &ClientRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
		now:      time.Now,
		Logger:   logger,
		Metrics:  metrics,
	}
}

// Allow takes a token from the bucket of client.
func (l *ClientRateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[client]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[client] = v
	}
	v.lastSeen = l.now()
	return v.limiter.AllowN(v.lastSeen, 1)
}

// Sweep forgets clients idle for longer than maxIdle and returns how many
// were removed.
func (l *ClientRateLimiter) Sweep(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	cutoff := l.now().Add(-maxIdle)
	for client, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, client)
			removed++
		}
	}
	return removed
}

// Run sweeps idle clients every interval until ctx is done.
func (l *ClientRateLimiter) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Sweep(maxIdle); n > 0 {
				l.Logger.Debug("Swept idle rate limit clients", "count", n)
			}
		}
	}
}

// Middleware rejects requests over the client's budget with 429. Only the
// methods listed are limited; with none listed every request is.
func (l *ClientRateLimiter) Middleware(methods ...string) func(http.Handler) http.Handler {
	limited := make(map[string]bool, len(methods))
	for _, m := range methods {
		limited[m] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(limited) > 0 && !limited[r.Method] {
				next.ServeHTTP(w, r)
				return
			}

			client := clientAddress(r)
			if !l.Allow(client) {
				l.Logger.Warn("Rate limit exceeded", "client", client, "path", r.URL.Path)
				if l.Metrics != nil {
					l.Metrics.IncCounter(RateLimitedTotal)
				}
				http.Error(w, MsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddress strips the port from RemoteAddr, which chi's RealIP
// middleware may already have replaced with a forwarded address.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
