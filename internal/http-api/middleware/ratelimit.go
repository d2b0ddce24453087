package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per client IP. Used on the auth endpoints
// to slow down credential stuffing.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	lastSeen time.Duration
}

type clientLimiter struct {
	limiter *rate.Limiter
	seen    time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		lastSeen: 10 * time.Minute,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = cl
	}
	cl.seen = time.Now()
	return cl.limiter.Allow()
}

// cleanup drops buckets for clients not seen recently
func (rl *RateLimiter) cleanup() {
	for range time.Tick(time.Minute) {
		rl.mu.Lock()
		for key, cl := range rl.clients {
			if time.Since(cl.seen) > rl.lastSeen {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Middleware rejects requests over the per-client limit with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
