package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HitCounter counts requests per key in fixed windows.
type HitCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}

// RateLimitMiddleware allows limit requests per client IP in each window.
// Counter failures let the request through.
func RateLimitMiddleware(counter HitCounter, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, resetIn, err := counter.Hit(c.Request.Context(), scope+":"+c.ClientIP(), window)
		if err != nil {
			zap.L().Warn("Rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(resetIn.Round(time.Second).Seconds())))
			RespondWithError(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
