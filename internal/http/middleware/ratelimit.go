package middleware

// Per-client token buckets for the public API. The limiter lives in process
// memory, so each replica enforces its own budget; it exists to blunt scripted
// comment floods and vote spam, not to authorize anyone.

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyFunc maps a request to the identity whose bucket it draws from.
type KeyFunc func(*gin.Context) string

// KeyByIP buckets by client address. The API has no accounts, so the
// address is the only identity available.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "ip:" + c.ClientIP() }
}

// bucketIdleTTL is how long an untouched bucket survives a sweep.
const bucketIdleTTL = 10 * time.Minute

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter hands out one token bucket per key. Safe for concurrent use.
type RateLimiter struct {
	limit rate.Limit
	burst int
	key   KeyFunc
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	exempt    map[string]bool
}

// NewRateLimiter allows rps sustained requests per key with bursts of up to
// burst. A burst below 1 is raised to 1.
func NewRateLimiter(rps float64, burst int, key KeyFunc) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		key:     key,
		now:     time.Now,
		buckets: map[string]*bucket{},
		exempt:  map[string]bool{},
	}
}

// Exempt lists paths that are never limited, such as probes and scrapes.
func (rl *RateLimiter) Exempt(paths ...string) *RateLimiter {
	rl.mu.Lock()
	for _, p := range paths {
		rl.exempt[p] = true
	}
	rl.mu.Unlock()
	return rl
}

// bucketFor returns the limiter for key, or nil when path is exempt.
// Idle buckets are swept at most once per TTL, before the lookup, so a stale
// bucket is replaced rather than refreshed.
func (rl *RateLimiter) bucketFor(path, key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.exempt[path] {
		return nil
	}

	now := rl.now()
	if now.Sub(rl.lastSweep) >= bucketIdleTTL {
		for k, b := range rl.buckets {
			if now.Sub(b.seen) >= bucketIdleTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[key] = b
	}
	b.seen = now
	return b.lim
}

// size reports the number of live buckets.
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// Handler rejects over-budget requests with 429 {"msg":"Too Many Requests"}
// and a Retry-After header in whole seconds.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.key(c)
		lim := rl.bucketFor(c.Request.URL.Path, key)
		if lim == nil {
			c.Next()
			return
		}

		now := rl.now()
		if lim.AllowN(now, 1) {
			c.Next()
			return
		}

		c.Header("Retry-After", retryAfter(lim, now))
		LoggerFrom(c).Debug().Str("key", key).Str("path", c.Request.URL.Path).Msg("rate limited")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"msg": http.StatusText(http.StatusTooManyRequests),
		})
	}
}

// retryAfter estimates when the next token arrives, rounded up to a second.
func retryAfter(lim *rate.Limiter, now time.Time) string {
	r := lim.ReserveN(now, 1)
	defer r.CancelAt(now)
	if !r.OK() {
		return "1"
	}
	secs := int(math.Ceil(r.DelayFrom(now).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
