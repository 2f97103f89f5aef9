package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type windowCounter struct {
	windowStart time.Time
	count       int
}

var (
	rlMu      sync.Mutex
	rlClients = make(map[string]*windowCounter)
	rlSweep   time.Time
)

// SimpleRateLimit is the in-process fallback used when Redis is not
// configured: a fixed window per client IP. State is local to the
// process, so limits apply per instance.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rlMu.Lock()
		if now.Sub(rlSweep) > 10*window {
			for k, wc := range rlClients {
				if now.Sub(wc.windowStart) > window {
					delete(rlClients, k)
				}
			}
			rlSweep = now
		}

		wc, ok := rlClients[ip]
		if !ok || now.Sub(wc.windowStart) > window {
			rlClients[ip] = &windowCounter{windowStart: now, count: 1}
			rlMu.Unlock()
			c.Next()
			return
		}

		wc.count++
		blocked := wc.count > maxRequests
		rlMu.Unlock()

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		if blocked {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
