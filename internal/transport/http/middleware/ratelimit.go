package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "users-api/internal/transport/http/response"
)

// RateLimit is a global token bucket. rps <= 0 disables it.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, resp.Error("too many requests"))
	}
}

// ipIdleTTL is how long a client IP may stay quiet before its bucket is
// dropped. A bucket idle that long has refilled, so dropping it is invisible.
const ipIdleTTL = 10 * time.Minute

// RateLimitPerIP keeps one bucket per client IP.
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	b := newIPBuckets(rps, burst, ipIdleTTL, time.Now)
	return func(c *gin.Context) {
		if b.limiter(c.ClientIP()).Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, resp.Error("too many requests"))
	}
}

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

type ipBuckets struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
	m         map[string]*ipBucket
}

func newIPBuckets(rps rate.Limit, burst int, idle time.Duration, now func() time.Time) *ipBuckets {
	return &ipBuckets{rps: rps, burst: burst, idle: idle, now: now, lastSweep: now(), m: make(map[string]*ipBucket)}
}

// limiter returns the bucket for ip, sweeping idle ones at most once per
// idle period.
func (b *ipBuckets) limiter(ip string) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	if now.Sub(b.lastSweep) >= b.idle {
		for k, e := range b.m {
			if now.Sub(e.seen) >= b.idle {
				delete(b.m, k)
			}
		}
		b.lastSweep = now
	}
	e, ok := b.m[ip]
	if !ok {
		e = &ipBucket{lim: rate.NewLimiter(b.rps, b.burst)}
		b.m[ip] = e
	}
	e.seen = now
	return e.lim
}
