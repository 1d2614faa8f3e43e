package rate_limiter

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const idleTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     limit,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// NewWindowLimiter allows roughly attempts requests per window with the
// whole allowance available up front.
func NewWindowLimiter(attempts int, window time.Duration) *RateLimiter {
	return NewRateLimiter(rate.Every(window/time.Duration(attempts)), attempts)
}

func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > time.Minute {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > idleTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastSweep = now
	}

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter
}

func (rl *RateLimiter) IsAllowed(key string) bool {
	return rl.getVisitor(key).AllowN(rl.now(), 1)
}

// GetRemainingRequests returns the whole tokens left for key.
func (rl *RateLimiter) GetRemainingRequests(key string) int {
	tokens := rl.getVisitor(key).TokensAt(rl.now())
	return int(math.Max(0, math.Floor(tokens)))
}

func (rl *RateLimiter) retryAfter() time.Duration {
	if rl.limit <= 0 || rl.limit == rate.Inf {
		return time.Second
	}
	return time.Duration(float64(time.Second) / float64(rl.limit))
}

// Middleware rejects clients that ran out of tokens with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientKey(c)
		if !rl.IsAllowed(key) {
			retryAfter := rl.retryAfter()
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.GetRemainingRequests(key)))
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":    "Too many requests, try again later",
				"reset_at": rl.now().Add(retryAfter).Format(time.RFC3339),
			})
			return
		}

		c.Next()
	}
}

// ClientKey identifies a caller by gin's ClientIP. Forwarding headers only
// count when the direct peer is one of the engine's trusted proxies, so a
// client cannot pick its own bucket.
func ClientKey(c *gin.Context) string {
	return c.ClientIP()
}
