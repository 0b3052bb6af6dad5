// Package ratelimit provides per-client token-bucket rate limiting. Buckets
// are keyed by client IP and kept in process memory only.
package ratelimit

import (
	"math"
	"strconv"
	"sync"
	"time"

	"readinglist-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Config holds the limiter settings.
type Config struct {
	Rate            rate.Limit
	Burst           int
	CleanupInterval time.Duration
}

// DefaultConfig allows 120 requests per minute per client.
func DefaultConfig() Config {
	return Config{
		Rate:            rate.Limit(120.0 / 60.0),
		Burst:           120,
		CleanupInterval: 5 * time.Minute,
	}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter manages one token bucket per client.
type Limiter struct {
	config Config

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewLimiter creates a Limiter and starts the background cleanup of stale
// entries.
func NewLimiter(config Config) *Limiter {
	l := &Limiter{
		config:   config,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.stopCh)
}

// Middleware rejects requests exceeding the per-client rate with 429 and a
// Retry-After hint.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			retryAfter := int(math.Ceil(1.0 / float64(l.config.Rate)))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Error(apperror.RateLimited())
			c.Abort()
			return
		}
		c.Next()
	}
}

func (l *Limiter) allow(key string) bool {
	l.mu.Lock()
	cl, ok := l.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.config.Rate, l.config.Burst)}
		l.limiters[key] = cl
	}
	cl.lastAccess = time.Now()
	l.mu.Unlock()

	return cl.limiter.Allow()
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *Limiter) cleanup() {
	ttl := l.config.CleanupInterval * 2
	now := time.Now()

	l.mu.Lock()
	for key, cl := range l.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(l.limiters, key)
		}
	}
	l.mu.Unlock()
}
