package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/codetroops/pos-lebanon/internal/apierrors"
)

// clientIdleTTL is how long an idle client keeps its bucket
const clientIdleTTL = 2 * time.Minute

// rateLimiter holds one token bucket per client IP
type rateLimiter struct {
	mu          sync.Mutex
	clients     map[string]*clientLimiter
	limit       int
	lastCleanup time.Time
	now         func() time.Time
}

// clientLimiter is the bucket of a single client
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(limit int) *rateLimiter {
	return &rateLimiter{
		clients:     make(map[string]*clientLimiter),
		limit:       limit,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

// NewRateLimiter creates a rate limiting middleware
// limit: requests per minute per client IP, 0 disables limiting
func NewRateLimiter(limit int, onLimited func()) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := newRateLimiter(limit)
	retryAfter := strconv.Itoa(limiter.retryAfterSeconds())

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			if onLimited != nil {
				onLimited()
			}
			c.Header("Retry-After", retryAfter)
			apierrors.WriteError(c, apierrors.ErrCodeRateLimited, "Too Many Requests", http.StatusTooManyRequests, nil)
			return
		}
		c.Next()
	}
}

// retryAfterSeconds is the time one token takes to refill, rounded up
func (rl *rateLimiter) retryAfterSeconds() int {
	return max((60+rl.limit-1)/rl.limit, 1)
}

// allow checks if a request is allowed
func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastCleanup) >= time.Minute {
		rl.cleanup(now)
	}

	client, exists := rl.clients[clientIP]
	if !exists {
		// Bucket holds a full minute of requests and refills continuously
		client = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.limit)/60), rl.limit),
		}
		rl.clients[clientIP] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1)
}

// cleanup removes idle client entries; caller holds the lock
func (rl *rateLimiter) cleanup(now time.Time) {
	for ip, client := range rl.clients {
		if now.Sub(client.lastSeen) > clientIdleTTL {
			delete(rl.clients, ip)
		}
	}
	rl.lastCleanup = now
}
