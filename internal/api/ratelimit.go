package api

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware shares one token bucket of rps requests per second
// across every client. Routes in exempt, matched by their registered
// pattern, bypass it; long-lived streams belong there.
func RateLimitMiddleware(rps int, exempt ...string) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	return func(c *gin.Context) {
		if slices.Contains(exempt, c.FullPath()) {
			c.Next()
			return
		}
		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// StreamPaths lists the routes that hold a connection open.
func StreamPaths() []string {
	return []string{streamPath}
}
