package middleware

import (
	"net/http"
	"sync"
	"time"

	"project-tracker/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit applies a per-client-IP token bucket. Stale client entries are
// swept on the configured interval.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)

	perSecond := rate.Limit(float64(cfg.RequestsPerMin) / 60.0)

	go func() {
		for {
			time.Sleep(cfg.CleanupInterval)
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > cfg.CleanupInterval {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		client, exists := clients[ip]
		if !exists {
			client = &clientLimiter{limiter: rate.NewLimiter(perSecond, cfg.BurstSize)}
			clients[ip] = client
		}
		client.lastSeen = time.Now()
		allowed := client.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "Too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}
