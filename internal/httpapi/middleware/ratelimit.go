package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge/internal/common"
)

// Limiter is a shared keyed counter; see internal/store/redisstore.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit throttles by client IP + route using the injected counter store.
// A limiter error fails open: throttling is protection, not correctness.
func RateLimit(l Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()
		allowed, err := l.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			log.Printf("rate limiter error key=%s: %v", key, err)
			c.Next()
			return
		}
		if !allowed {
			common.Fail(c, http.StatusTooManyRequests, 42900, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
